package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"lunor.shop/app/internal/http/middleware"
	"lunor.shop/app/internal/http/render"
	"lunor.shop/app/internal/modules/auth"
	"lunor.shop/app/internal/shared/apperr"
	"lunor.shop/app/pkg/view"
	"lunor.shop/app/templates/pages"
)

type AccountHandler struct {
	users  *auth.Service
	secure bool
}

func NewAccountHandler(users *auth.Service, secureCookies bool) *AccountHandler {
	return &AccountHandler{users: users, secure: secureCookies}
}

// Show handles GET /account behind RequireAuth. A valid token for a user
// that no longer exists is treated as logged out.
func (h *AccountHandler) Show(c *gin.Context) {
	cu, _ := middleware.CurrentUser(c)

	u, err := h.users.Lookup(c.Request.Context(), cu.Username)
	if errors.Is(err, auth.ErrUserNotFound) {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(auth.TokenCookie, "", -1, "/", "", h.secure, true)
		c.Redirect(http.StatusFound, middleware.LoginRequiredURL)
		return
	}
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	render.Component(c, http.StatusOK, pages.Account(render.Page(c, "Account"), view.AccountPage{
		Username:    u.Username,
		Country:     u.Country,
		MemberSince: u.CreatedAt.Format("January 2006"),
	}))
}
