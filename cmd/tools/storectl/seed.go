package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"

	"lunor.shop/app/internal/database"
	"lunor.shop/app/internal/modules/products"
	"lunor.shop/app/internal/shared/slug"
	"lunor.shop/app/internal/storage"
)

var seedOpts struct {
	file   string
	images string
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load products from a YAML catalog file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		items, err := loadCatalog(seedOpts.file)
		if err != nil {
			return err
		}
		cfg, db, err := openDB()
		if err != nil {
			return err
		}
		defer database.Close(db)

		s := seeder{repo: products.NewRepo(db), images: seedOpts.images, log: logger}
		if seedOpts.images != "" {
			if s.store, err = storage.New(cmd.Context(), cfg.Storage); err != nil {
				return err
			}
		}
		n, err := s.run(cmd.Context(), items)
		logger.Info("seeded", "products", n, "file", seedOpts.file)
		return err
	},
}

func init() {
	f := seedCmd.Flags()
	f.StringVar(&seedOpts.file, "file", "catalog.yaml", "YAML catalog")
	f.StringVar(&seedOpts.images, "images", "", "directory holding the image files named in the catalog")
}

type catalogItem struct {
	Name           string   `yaml:"name"`
	Brand          string   `yaml:"brand"`
	Category       string   `yaml:"category"`
	Description    string   `yaml:"description"`
	PriceCents     int64    `yaml:"price_cents"`
	SalePriceCents *int64   `yaml:"sale_price_cents"`
	Currency       string   `yaml:"currency"`
	Rating         *float64 `yaml:"rating"`
	Reviews        int      `yaml:"reviews"`
	IsNew          bool     `yaml:"is_new"`
	Image          string   `yaml:"image"`
	Highlights     []string `yaml:"highlights"`
}

type catalogFile struct {
	Products []catalogItem `yaml:"products"`
}

func loadCatalog(path string) ([]catalogItem, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f catalogFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	for i, it := range f.Products {
		if strings.TrimSpace(it.Name) == "" {
			return nil, fmt.Errorf("%s: product %d has no name", path, i+1)
		}
		if it.PriceCents < 0 {
			return nil, fmt.Errorf("%s: %q has a negative price", path, it.Name)
		}
	}
	return f.Products, nil
}

type seeder struct {
	repo   *products.Repo
	store  storage.Storage
	images string
	log    *slog.Logger
}

// run inserts every item and returns how many were created. Slugs that are
// already taken get a numeric suffix.
func (s seeder) run(ctx context.Context, items []catalogItem) (int, error) {
	created := 0
	for _, it := range items {
		p, err := s.product(ctx, it)
		if err != nil {
			return created, fmt.Errorf("%s: %w", it.Name, err)
		}
		if err := s.repo.Create(ctx, &p); err != nil {
			if p.ImageKey != "" {
				_ = s.store.Delete(ctx, p.ImageKey)
			}
			return created, fmt.Errorf("%s: %w", it.Name, err)
		}
		s.log.Debug("product created", "id", p.ID, "slug", p.Slug)
		created++
	}
	return created, nil
}

func (s seeder) product(ctx context.Context, it catalogItem) (products.Product, error) {
	var lookupErr error
	ref := slug.Unique(it.Name, func(candidate string) bool {
		taken, err := s.repo.SlugExists(ctx, candidate)
		if err != nil {
			lookupErr = err
			return false
		}
		return taken
	})
	if lookupErr != nil {
		return products.Product{}, lookupErr
	}

	p := products.Product{
		Slug:           ref,
		Name:           strings.TrimSpace(it.Name),
		Brand:          it.Brand,
		Category:       it.Category,
		Description:    it.Description,
		PriceCents:     it.PriceCents,
		SalePriceCents: it.SalePriceCents,
		Currency:       strings.ToUpper(it.Currency),
		Rating:         it.Rating,
		Reviews:        it.Reviews,
		IsNew:          it.IsNew,
	}
	if len(it.Highlights) > 0 {
		raw, err := json.Marshal(it.Highlights)
		if err != nil {
			return products.Product{}, err
		}
		p.Highlights = datatypes.JSON(raw)
	}

	if it.Image == "" {
		return p, nil
	}
	if s.store == nil {
		return p, errors.New("catalog names an image but --images was not given")
	}
	f, err := os.Open(filepath.Join(s.images, filepath.Base(it.Image)))
	if err != nil {
		return p, err
	}
	defer f.Close()

	res, err := s.store.Put(ctx, f, storage.PutInput{Filename: it.Image, Hint: ref})
	if err != nil {
		return p, err
	}
	p.ImageURL, p.ImageKey = res.URL, res.Key
	return p, nil
}
