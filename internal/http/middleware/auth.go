package middleware

import (
	"github.com/gin-gonic/gin"

	"lunor.shop/app/internal/modules/auth"
)

const ctxKeyUser = "user"

// ContextUser is the signed-in visitor as read from the token cookie.
type ContextUser struct {
	Username string
}

// TokenParser is satisfied by *auth.Tokens.
type TokenParser interface {
	Parse(raw string) (string, error)
}

// Auth reads the token cookie. An invalid or expired token leaves the
// request anonymous and deletes the cookie.
func Auth(tokens TokenParser, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(auth.TokenCookie)
		if err != nil || raw == "" {
			c.Next()
			return
		}
		username, err := tokens.Parse(raw)
		if err != nil {
			expireCookie(c, auth.TokenCookie, secure)
			c.Next()
			return
		}
		c.Set(ctxKeyUser, ContextUser{Username: username})
		c.Next()
	}
}

func CurrentUser(c *gin.Context) (ContextUser, bool) {
	v, ok := c.Get(ctxKeyUser)
	if !ok {
		return ContextUser{}, false
	}
	u, ok := v.(ContextUser)
	return u, ok && u.Username != ""
}
