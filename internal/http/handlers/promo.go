package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"lunor.shop/app/internal/http/middleware"
	"lunor.shop/app/internal/http/validation"
	"lunor.shop/app/internal/modules/promo"
	"lunor.shop/app/internal/shared/apperr"
)

// PromoHandler gives every home page view its own carousel. The page opens
// an event stream, which creates the carousel and pushes its frames; the
// carousel is closed when the stream ends.
type PromoHandler struct {
	hub       *promo.Hub
	heartbeat time.Duration
	log       *slog.Logger
}

func NewPromoHandler(hub *promo.Hub, log *slog.Logger) *PromoHandler {
	return &PromoHandler{hub: hub, heartbeat: 25 * time.Second, log: log}
}

type frameJSON struct {
	ID string `json:"id"`
	promo.Frame
	Playing bool `json:"playing"`
}

func frameOf(car *promo.Carousel, f promo.Frame) frameJSON {
	return frameJSON{ID: car.ID, Frame: f, Playing: car.Playing()}
}

// Stream handles GET /api/promo/stream.
func (h *PromoHandler) Stream(c *gin.Context) {
	car, err := h.hub.Open()
	if errors.Is(err, promo.ErrHubFull) {
		middleware.Fail(c, apperr.TooManyRequestsErr("Too many open sliders. Please try again later."))
		return
	}
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	defer h.hub.Close(car.ID)

	ctx := c.Request.Context()
	h.log.LogAttrs(ctx, slog.LevelDebug, "promo_carousel_opened",
		slog.String("request_id", middleware.GetRequestID(c)),
		slog.String("carousel", car.ID),
	)

	c.Header("Cache-Control", "no-store")
	c.Header("X-Accel-Buffering", "no")

	ping := time.NewTicker(h.heartbeat)
	defer ping.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case f := <-car.Frames():
			c.SSEvent("frame", frameOf(car, f))
		case <-ping.C:
			if _, err := io.WriteString(c.Writer, ": ping\n\n"); err != nil {
				return
			}
		}
		c.Writer.Flush()
	}
}

func (h *PromoHandler) carousel(c *gin.Context) (*promo.Carousel, bool) {
	car, err := h.hub.Get(c.Param("id"))
	if err != nil {
		middleware.Fail(c, apperr.NotFoundErr("Slider not found"))
		return nil, false
	}
	return car, true
}

func (h *PromoHandler) respond(c *gin.Context, car *promo.Carousel) {
	c.JSON(http.StatusOK, frameOf(car, car.Frame()))
}

func (h *PromoHandler) Get(c *gin.Context) {
	if car, ok := h.carousel(c); ok {
		h.respond(c, car)
	}
}

func (h *PromoHandler) Next(c *gin.Context) {
	if car, ok := h.carousel(c); ok {
		car.Next()
		h.respond(c, car)
	}
}

func (h *PromoHandler) Prev(c *gin.Context) {
	if car, ok := h.carousel(c); ok {
		car.Prev()
		h.respond(c, car)
	}
}

// GoTo accepts any integer; out-of-range values wrap around.
func (h *PromoHandler) GoTo(c *gin.Context) {
	car, ok := h.carousel(c)
	if !ok {
		return
	}
	idx, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		middleware.Fail(c, apperr.InvalidErr("Slide index must be an integer", map[string]string{"index": "Invalid value."}))
		return
	}
	car.GoTo(idx)
	h.respond(c, car)
}

type hoverInput struct {
	State string `json:"state" binding:"required,oneof=enter leave"`
}

// Hover pauses autoplay while the pointer is over the slider.
func (h *PromoHandler) Hover(c *gin.Context) {
	car, ok := h.carousel(c)
	if !ok {
		return
	}
	var in hoverInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid hover state", validation.FromBindError(err, &in)))
		return
	}
	if in.State == "enter" {
		car.HoverEnter()
	} else {
		car.HoverLeave()
	}
	h.respond(c, car)
}
