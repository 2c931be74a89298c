package middleware

import (
	"github.com/gin-gonic/gin"

	"lunor.shop/app/pkg/view"
)

// PageData collects the layout state the middleware chain put on c.
func PageData(c *gin.Context, title string) view.Page {
	p := view.Page{
		Title:     title,
		Flash:     GetFlash(c),
		CartCount: GetCartCount(c),
		Search:    c.Query("q"),
	}
	if u, ok := CurrentUser(c); ok {
		p.Username = u.Username
	}
	return p
}
