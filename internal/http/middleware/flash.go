package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lunor.shop/app/internal/http/flash"
	"lunor.shop/app/pkg/view"
)

const flashKey = "flash"

// Flash consumes the one-shot notice cookie set by the previous response.
// The cookie is expired on read whether or not it decoded.
func Flash(codec *flash.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		if f := takeFlash(c, codec); f != nil {
			c.Set(flashKey, f)
		}
		c.Next()
	}
}

func takeFlash(c *gin.Context, codec *flash.Codec) *view.Flash {
	raw, err := c.Cookie(codec.CookieName)
	if err != nil || raw == "" {
		return nil
	}
	expireCookie(c, codec.CookieName, codec.Secure)
	f, err := codec.Decode(raw)
	if err != nil {
		return nil
	}
	return f
}

// GetFlash returns the notice for this request, or nil.
func GetFlash(c *gin.Context) *view.Flash {
	v, _ := c.Get(flashKey)
	f, _ := v.(*view.Flash)
	return f
}

// SetFlashCookie queues f for the next page the browser loads. Encoding
// failures drop the notice silently.
func SetFlashCookie(c *gin.Context, codec *flash.Codec, f view.Flash) {
	if val, err := codec.Encode(f); err == nil {
		writeCookie(c, codec.CookieName, val, codec.CookieMaxAge(), codec.Secure)
	}
}

func expireCookie(c *gin.Context, name string, secure bool) {
	writeCookie(c, name, "", -1, secure)
}

// writeCookie sets a site-wide HttpOnly Lax cookie.
func writeCookie(c *gin.Context, name, value string, maxAge int, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", secure, true)
}
