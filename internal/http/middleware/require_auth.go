package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lunor.shop/app/internal/shared/apperr"
)

// LoginRequiredURL is where a browser lands when a page needs a member.
const LoginRequiredURL = "/login?error=not_logged_in"

// RequireAuth guards member-only routes. Page requests are sent to the
// login form; API calls fail with 401 through ErrorHandler.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			rejectAnonymous(c)
			return
		}
		c.Next()
	}
}

func rejectAnonymous(c *gin.Context) {
	if WantsJSON(c) {
		Fail(c, apperr.UnauthorizedErr("Please log in to continue."))
		return
	}
	c.Redirect(http.StatusFound, LoginRequiredURL)
	c.Abort()
}
