package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"lunor.shop/app/internal/http/cartcookie"
	"lunor.shop/app/internal/http/flash"
	"lunor.shop/app/internal/http/middleware"
	"lunor.shop/app/internal/http/render"
	"lunor.shop/app/internal/modules/cart"
	"lunor.shop/app/internal/modules/products"
	"lunor.shop/app/internal/shared/apperr"
	"lunor.shop/app/pkg/view"
	"lunor.shop/app/templates/pages"
)

// CartHandler serves the cookie cart: add, show, checkout.
type CartHandler struct {
	svc   *cart.Service
	ck    *cartcookie.Codec
	flash *flash.Codec
	log   *slog.Logger
}

func NewCartHandler(svc *cart.Service, ck *cartcookie.Codec, flashCodec *flash.Codec, log *slog.Logger) *CartHandler {
	return &CartHandler{svc: svc, ck: ck, flash: flashCodec, log: log}
}

type addToCartJSON struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Count     int    `json:"count"`
}

// Add handles GET /add_to_cart/:productId. Every call adds one unit.
func (h *CartHandler) Add(c *gin.Context) {
	id, ok := parseID(c.Param("productId"))
	if !ok {
		middleware.Fail(c, apperr.InvalidErr("Invalid product id", nil))
		return
	}

	current := h.ck.Get(c)
	added, err := h.svc.Add(c.Request.Context(), current, id)
	if errors.Is(err, products.ErrNotFound) {
		middleware.Fail(c, apperr.NotFoundErr("Product not found"))
		return
	}
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	if err := h.ck.Set(c, current); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	middleware.SetCartCount(c, added.Count)

	h.log.LogAttrs(c.Request.Context(), slog.LevelInfo, "cart_item_added",
		slog.String("request_id", middleware.GetRequestID(c)),
		slog.Uint64("product_id", uint64(id)),
		slog.Int("quantity", added.Quantity),
		slog.Int("count", added.Count),
	)

	if middleware.WantsJSON(c) {
		c.JSON(http.StatusOK, addToCartJSON{
			ProductID: added.Product.ID,
			Name:      added.Product.Name,
			Quantity:  added.Quantity,
			Count:     added.Count,
		})
		return
	}
	render.RedirectWithFlash(c, h.flash, "/cart", view.FlashSuccess, `"`+added.Product.Name+`" added to cart!`)
}

// Show handles GET /cart.
func (h *CartHandler) Show(c *gin.Context) {
	page, err := h.svc.BuildPage(c.Request.Context(), h.ck.Get(c))
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	render.Component(c, http.StatusOK, pages.Cart(render.Page(c, "Cart"), page))
}

// Checkout handles POST /checkout: the cart is emptied and the visitor
// goes back to the home page.
func (h *CartHandler) Checkout(c *gin.Context) {
	h.ck.Clear(c)
	render.RedirectWithFlash(c, h.flash, "/", view.FlashSuccess, "Thanks for your order!")
}
