package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"lunor.shop/app/internal/http/middleware"
	"lunor.shop/app/internal/http/render"
	"lunor.shop/app/internal/http/validation"
	"lunor.shop/app/internal/modules/auth"
	"lunor.shop/app/internal/shared/apperr"
	"lunor.shop/app/pkg/view"
	"lunor.shop/app/templates/pages"
)

const (
	msgUserExists     = "User already exists"
	msgBadCredentials = "Incorrect username or password"
	msgLoginRequired  = "Please log in to see your account."
)

// AuthHandler covers registration, login and logout.
type AuthHandler struct {
	users  *auth.Service
	tokens *auth.Tokens
	secure bool
}

func NewAuthHandler(users *auth.Service, tokens *auth.Tokens, secureCookies bool) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, secure: secureCookies}
}

type registerInput struct {
	Username string `form:"username" json:"username" binding:"required,min=3,max=50"`
	Password string `form:"password" json:"password" binding:"required,min=6"`
	Country  string `form:"country" json:"country" binding:"required,min=2,max=50"`
}

type loginInput struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

func (h *AuthHandler) RegisterGet(c *gin.Context) {
	render.Component(c, http.StatusOK, pages.Register(render.Page(c, "Register"), view.RegisterForm{}, nil, ""))
}

func (h *AuthHandler) RegisterPost(c *gin.Context) {
	var in registerInput
	if err := c.ShouldBind(&in); err != nil {
		errs := validation.FromBindError(err, &in)
		if middleware.WantsJSON(c) {
			middleware.Fail(c, apperr.InvalidErr("Please check the form.", errs))
			return
		}
		h.registerPage(c, http.StatusBadRequest, in, errs, "")
		return
	}

	u, err := h.users.Register(c.Request.Context(), in.Username, in.Password, in.Country)
	if errors.Is(err, auth.ErrUserExists) {
		if middleware.WantsJSON(c) {
			middleware.Fail(c, apperr.InvalidErr(msgUserExists, nil))
			return
		}
		h.registerPage(c, http.StatusBadRequest, in, nil, msgUserExists)
		return
	}
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	h.signIn(c, u.Username)
}

func (h *AuthHandler) registerPage(c *gin.Context, status int, in registerInput, errs validation.FieldErrors, notice string) {
	form := view.RegisterForm{Username: in.Username, Country: in.Country}
	render.Component(c, status, pages.Register(render.Page(c, "Register"), form, errs, notice))
}

func (h *AuthHandler) LoginGet(c *gin.Context) {
	notice := ""
	if c.Query("error") == "not_logged_in" {
		notice = msgLoginRequired
	}
	render.Component(c, http.StatusOK, pages.Login(render.Page(c, "Log in"), view.LoginForm{}, nil, notice))
}

func (h *AuthHandler) LoginPost(c *gin.Context) {
	var in loginInput
	if err := c.ShouldBind(&in); err != nil {
		errs := validation.FromBindError(err, &in)
		if middleware.WantsJSON(c) {
			middleware.Fail(c, apperr.InvalidErr("Please check the form.", errs))
			return
		}
		render.Component(c, http.StatusBadRequest,
			pages.Login(render.Page(c, "Log in"), view.LoginForm{Username: in.Username}, errs, ""))
		return
	}

	u, err := h.users.Authenticate(c.Request.Context(), in.Username, in.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		if middleware.WantsJSON(c) {
			middleware.Fail(c, apperr.UnauthorizedErr(msgBadCredentials))
			return
		}
		render.Component(c, http.StatusUnauthorized,
			pages.Login(render.Page(c, "Log in"), view.LoginForm{Username: in.Username}, nil, msgBadCredentials))
		return
	}
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	h.signIn(c, u.Username)
}

// signIn sets the token cookie and sends the visitor to their account.
func (h *AuthHandler) signIn(c *gin.Context, username string) {
	token, err := h.tokens.Issue(username)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.TokenCookie, token, int(h.tokens.TTL().Seconds()), "/", "", h.secure, true)
	c.Redirect(http.StatusFound, "/account")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.TokenCookie, "", -1, "/", "", h.secure, true)
	c.Redirect(http.StatusFound, "/")
}
