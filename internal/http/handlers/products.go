package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"lunor.shop/app/internal/http/middleware"
	"lunor.shop/app/internal/http/render"
	"lunor.shop/app/internal/modules/catalog"
	"lunor.shop/app/internal/modules/products"
	"lunor.shop/app/internal/shared/apperr"
	"lunor.shop/app/pkg/view"
	"lunor.shop/app/templates/pages"
)

// ProductsHandler serves the listing, its JSON twin and the header search.
type ProductsHandler struct {
	products products.Repository
}

func NewProductsHandler(repo products.Repository) *ProductsHandler {
	return &ProductsHandler{products: repo}
}

// listing runs the filter engine over the whole catalog.
type listing struct {
	form     catalog.Form
	all      []products.Product
	visible  []catalog.Record
	display  *catalog.Listing
	criteria catalog.Criteria
}

func (h *ProductsHandler) run(c *gin.Context) (listing, error) {
	all, err := h.products.List(c.Request.Context())
	if err != nil {
		return listing{}, err
	}
	form := catalog.FormFromQuery(c.Request.URL.Query())
	display := catalog.NewListing()
	engine := catalog.NewEngine(products.Records(all), display)
	visible := engine.ApplyFilters(form)
	return listing{form: form, all: all, visible: visible, display: display, criteria: form.Criteria()}, nil
}

// List handles GET /products. Matching cards come first in engine order;
// the rest follow, hidden.
func (h *ProductsHandler) List(c *gin.Context) {
	l, err := h.run(c)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	bySlug := make(map[string]products.Product, len(l.all))
	for _, p := range l.all {
		bySlug[p.Slug] = p
	}
	cards := make([]view.ProductCard, 0, len(l.all))
	for _, ref := range l.display.Visible() {
		cards = append(cards, productCard(bySlug[ref]))
	}
	for _, p := range l.all {
		if l.display.Hidden(p.Slug) {
			card := productCard(p)
			card.Hidden = true
			cards = append(cards, card)
		}
	}

	render.Component(c, http.StatusOK, pages.Products(render.Page(c, "Shop"), view.ProductsPage{
		Search:     l.form.Search,
		Categories: categoryOptions(catalog.Categories(products.Records(l.all)), l.form.Category),
		Prices:     priceOptions(l.criteria.Price),
		Sorts:      sortOptions(l.criteria.Sort),
		Cards:      cards,
		Visible:    len(l.visible),
	}))
}

type productJSON struct {
	ID         uint    `json:"id"`
	Slug       string  `json:"slug"`
	Name       string  `json:"name"`
	Brand      string  `json:"brand"`
	Category   string  `json:"category"`
	PriceCents int64   `json:"price_cents"`
	Price      string  `json:"price"`
	Rating     float64 `json:"rating"`
	Reviews    int     `json:"reviews"`
	IsNew      bool    `json:"is_new"`
	ImageURL   string  `json:"image_url,omitempty"`
}

// API handles GET /api/products with the same query parameters as the page.
func (h *ProductsHandler) API(c *gin.Context) {
	l, err := h.run(c)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	bySlug := make(map[string]products.Product, len(l.all))
	for _, p := range l.all {
		bySlug[p.Slug] = p
	}
	items := make([]productJSON, 0, len(l.visible))
	for _, r := range l.visible {
		p := bySlug[r.Ref]
		items = append(items, productJSON{
			ID:         p.ID,
			Slug:       p.Slug,
			Name:       p.Name,
			Brand:      p.Brand,
			Category:   p.Category,
			PriceCents: r.PriceCents,
			Price:      view.MoneyFromCents(r.PriceCents, p.Currency),
			Rating:     r.Rating,
			Reviews:    p.Reviews,
			IsNew:      r.IsNew,
			ImageURL:   p.ImageURL,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"items":    items,
		"total":    len(items),
		"criteria": l.criteria,
	})
}

// Search handles the header search box: the text moves into the listing's
// search field and the browser lands on the filter section.
func (h *ProductsHandler) Search(c *gin.Context) {
	var form catalog.Form
	form.SubmitHeaderSearch(strings.TrimSpace(c.Query("q")))

	dest := "/products"
	if q := form.Query().Encode(); q != "" {
		dest += "?" + q
	}
	c.Redirect(http.StatusFound, dest+"#filters")
}

func (h *ProductsHandler) Detail(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		middleware.Fail(c, apperr.NotFoundErr("Product not found"))
		return
	}
	p, err := h.products.Get(c.Request.Context(), id)
	if errors.Is(err, products.ErrNotFound) {
		middleware.Fail(c, apperr.NotFoundErr("Product not found"))
		return
	}
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	render.Component(c, http.StatusOK, pages.ProductDetail(render.Page(c, p.Name), productDetail(p)))
}

func categoryOptions(categories []string, selected string) []view.Option {
	out := make([]view.Option, 0, len(categories))
	for _, cat := range categories {
		out = append(out, view.Option{Value: cat, Label: cat, Selected: cat == selected})
	}
	return out
}

var priceLabels = map[catalog.PriceBucket]string{
	catalog.PriceUpTo25:  "Under $25",
	catalog.Price25To50:  "$25 to $50",
	catalog.Price50To100: "$50 to $100",
	catalog.PriceOver100: "Over $100",
}

func priceOptions(selected catalog.PriceBucket) []view.Option {
	var out []view.Option
	for _, b := range catalog.PriceBuckets() {
		out = append(out, view.Option{Value: string(b), Label: priceLabels[b], Selected: b == selected})
	}
	return out
}

var sortLabels = map[catalog.SortKey]string{
	catalog.SortRating:    "Top rated",
	catalog.SortPriceLow:  "Price: low to high",
	catalog.SortPriceHigh: "Price: high to low",
	catalog.SortNew:       "New arrivals",
}

func sortOptions(selected catalog.SortKey) []view.Option {
	var out []view.Option
	for _, k := range catalog.SortKeys() {
		out = append(out, view.Option{Value: string(k), Label: sortLabels[k], Selected: k == selected})
	}
	return out
}
