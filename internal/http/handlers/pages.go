package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"lunor.shop/app/internal/http/render"
	"lunor.shop/app/templates/pages"
)

// Static serves one of the fixed content pages.
func Static(key string) gin.HandlerFunc {
	content, ok := pages.StaticPages[key]
	if !ok {
		panic("handlers: unknown static page " + key)
	}
	return func(c *gin.Context) {
		render.Component(c, http.StatusOK, pages.Static(render.Page(c, content.Title), content))
	}
}

// Pinger is a dependency the health check probes.
type Pinger interface {
	Ping(ctx context.Context) error
}

type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// Health handles GET /healthz. Each check gets two seconds.
func Health(checks map[string]Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := http.StatusOK
		out := gin.H{}
		for name, p := range checks {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			err := p.Ping(ctx)
			cancel()
			if err != nil {
				status = http.StatusServiceUnavailable
				out[name] = "down"
				continue
			}
			out[name] = "ok"
		}
		c.JSON(status, gin.H{"status": http.StatusText(status), "checks": out})
	}
}
