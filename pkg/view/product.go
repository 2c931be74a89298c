package view

type ProductCard struct {
	ID       uint
	Ref      string
	Name     string
	Brand    string
	Category string
	Price    string
	OldPrice string
	Rating   float64
	Reviews  int
	IsNew    bool
	ImageURL string
	Hidden   bool
}

type ProductDetail struct {
	ID          uint
	Name        string
	Brand       string
	Category    string
	Description string
	Price       string
	OldPrice    string
	Rating      float64
	Reviews     int
	ImageURL    string
	Highlights  []string
}

type Option struct {
	Value    string
	Label    string
	Selected bool
}

type ProductsPage struct {
	Search     string
	Categories []Option
	Prices     []Option
	Sorts      []Option
	Cards      []ProductCard
	Visible    int
}
