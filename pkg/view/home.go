package view

type Slide struct {
	Title    string
	Subtitle string
	ImageURL string
	Link     string
}

// Slider is one rendered carousel frame.
type Slider struct {
	Slides        []Slide
	Index         int
	OffsetPercent int
	Active        []bool
}

type HomePage struct {
	Slider        Slider
	FeaturedBrand string
	Featured      []ProductCard
}
