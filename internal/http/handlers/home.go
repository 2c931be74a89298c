package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"lunor.shop/app/internal/http/middleware"
	"lunor.shop/app/internal/http/render"
	"lunor.shop/app/internal/modules/products"
	"lunor.shop/app/internal/modules/promo"
	"lunor.shop/app/pkg/view"
	"lunor.shop/app/templates/pages"
)

type HomeHandler struct {
	products products.Repository
	promo    *promo.Hub
	brand    string
	limit    int
	log      *slog.Logger
}

func NewHomeHandler(repo products.Repository, hub *promo.Hub, brand string, limit int, log *slog.Logger) *HomeHandler {
	return &HomeHandler{products: repo, promo: hub, brand: brand, limit: limit, log: log}
}

// Show handles GET /. A failed featured query degrades to an empty shelf.
func (h *HomeHandler) Show(c *gin.Context) {
	featured, err := h.products.TopRatedByBrand(c.Request.Context(), h.brand, h.limit)
	if err != nil {
		h.log.LogAttrs(c.Request.Context(), slog.LevelError, "featured_products_failed",
			slog.String("request_id", middleware.GetRequestID(c)),
			slog.String("brand", h.brand),
			slog.Any("err", err),
		)
		featured = nil
	}

	cards := make([]view.ProductCard, 0, len(featured))
	for _, p := range featured {
		cards = append(cards, productCard(p))
	}

	render.Component(c, http.StatusOK, pages.Home(render.Page(c, ""), view.HomePage{
		Slider:        sliderView(h.promo),
		FeaturedBrand: h.brand,
		Featured:      cards,
	}))
}

// sliderView is the first frame of a fresh carousel; the page script takes
// over once its stream is open.
func sliderView(hub *promo.Hub) view.Slider {
	if hub == nil {
		return view.Slider{}
	}
	src := hub.Slides()
	slides := make([]view.Slide, 0, len(src))
	active := make([]bool, len(src))
	for _, s := range src {
		slides = append(slides, view.Slide{Title: s.Title, Subtitle: s.Subtitle, ImageURL: s.ImageURL, Link: s.LinkURL})
	}
	if len(active) > 0 {
		active[0] = true
	}
	return view.Slider{Slides: slides, Active: active}
}
