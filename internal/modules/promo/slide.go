package promo

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var ErrNoSlides = errors.New("promo: slide set is empty")

type Slide struct {
	ID       string `yaml:"id" json:"id"`
	Title    string `yaml:"title" json:"title"`
	Subtitle string `yaml:"subtitle" json:"subtitle,omitempty"`
	ImageURL string `yaml:"image_url" json:"image_url,omitempty"`
	LinkURL  string `yaml:"link_url" json:"link_url,omitempty"`
}

type slideFile struct {
	Slides []Slide `yaml:"slides"`
}

// LoadSlides reads a YAML file of the form `slides: [{id, title, ...}]`.
func LoadSlides(path string) ([]Slide, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read slides: %w", err)
	}
	var f slideFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse slides %s: %w", path, err)
	}
	if len(f.Slides) == 0 {
		return nil, ErrNoSlides
	}
	return f.Slides, nil
}

// DefaultSlides is the built-in rotation used when no slide file is configured.
func DefaultSlides() []Slide {
	return []Slide{
		{ID: "new-season", Title: "New season rituals", Subtitle: "Fresh arrivals for every routine", LinkURL: "/products?sort=new"},
		{ID: "top-rated", Title: "Loved by our community", Subtitle: "Shop the highest rated picks", LinkURL: "/products?sort=rating"},
		{ID: "under-25", Title: "Little luxuries", Subtitle: "Everything under $25", LinkURL: "/products?price=0-25"},
	}
}
