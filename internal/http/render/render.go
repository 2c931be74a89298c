// Package render writes templ components and redirects for gin handlers.
package render

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"

	"lunor.shop/app/internal/http/flash"
	"lunor.shop/app/internal/http/middleware"
	"lunor.shop/app/pkg/view"
	"lunor.shop/app/templates/pages"
)

// Component renders comp as an HTML response.
func Component(c *gin.Context, status int, comp templ.Component) {
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := comp.Render(c.Request.Context(), c.Writer); err != nil {
		_ = c.Error(err)
	}
}

// Page is the layout state for the current request.
func Page(c *gin.Context, title string) view.Page {
	return middleware.PageData(c, title)
}

func RedirectWithFlash(c *gin.Context, codec *flash.Codec, location string, kind view.FlashKind, msg string) {
	middleware.SetFlashCookie(c, codec, view.Flash{Kind: kind, Message: msg})
	c.Redirect(http.StatusFound, location)
}

func ErrorPage(c *gin.Context, status int, msg string) {
	Component(c, status, pages.Error(Page(c, ""), view.ErrorPage{
		Status:    status,
		Message:   msg,
		RequestID: middleware.GetRequestID(c),
	}))
}
