package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lunor.shop/app/internal/http/cartcookie"
	"lunor.shop/app/internal/http/flash"
	"lunor.shop/app/internal/modules/auth"
	"lunor.shop/app/internal/shared/apperr"
	"lunor.shop/app/pkg/view"
)

func init() { gin.SetMode(gin.TestMode) }

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func do(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	w := do(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, w.Body.String(), 36)
	assert.Equal(t, w.Body.String(), w.Header().Get(HeaderRequestID))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	assert.Equal(t, "abc-123", do(r, req).Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "has space")
	assert.NotEqual(t, "has space", do(r, req).Body.String())
}

func newErrorRouter() *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), ErrorHandler(discard()), Recovery(discard()))
	r.GET("/missing", func(c *gin.Context) { Fail(c, apperr.NotFoundErr("Product not found")) })
	r.GET("/api/invalid", func(c *gin.Context) {
		Fail(c, apperr.InvalidErr("Bad input", map[string]string{"state": "Invalid value."}))
	})
	r.GET("/boom", func(c *gin.Context) { Fail(c, errors.New("db exploded")) })
	r.GET("/panic", func(c *gin.Context) { panic("kaboom") })
	return r
}

func TestErrorHandlerHTML(t *testing.T) {
	w := do(newErrorRouter(), httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Product not found")
	assert.Contains(t, w.Body.String(), w.Header().Get(HeaderRequestID))
}

func TestErrorHandlerJSON(t *testing.T) {
	w := do(newErrorRouter(), httptest.NewRequest(http.MethodGet, "/api/invalid", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Error     string            `json:"error"`
		RequestID string            `json:"request_id"`
		Fields    map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Bad input", body.Error)
	assert.NotEmpty(t, body.RequestID)
	assert.Equal(t, "Invalid value.", body.Fields["state"])
}

func TestErrorHandlerHidesInternalErrors(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set("Accept", "application/json")
	w := do(newErrorRouter(), req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "exploded")
}

func TestRecovery(t *testing.T) {
	w := do(newErrorRouter(), httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "kaboom")
}

func TestRecoveryLogsRequest(t *testing.T) {
	var logs strings.Builder
	l := slog.New(slog.NewJSONHandler(&logs, nil))
	r := gin.New()
	r.Use(RequestID(), ErrorHandler(discard()), Recovery(l))
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w := do(r, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(logs.String()), &entry))
	assert.Equal(t, "panic_recovered", entry["msg"])
	assert.Equal(t, "/boom", entry["path"])
	assert.Equal(t, "kaboom", entry["panic"])
	assert.Equal(t, w.Header().Get(HeaderRequestID), entry["request_id"])
	assert.NotEmpty(t, entry["stack"])
}

func TestFlashIsShownOnce(t *testing.T) {
	codec := flash.NewCodec([]byte("k"), "", false)
	r := gin.New()
	r.Use(Flash(codec))
	r.GET("/set", func(c *gin.Context) {
		SetFlashCookie(c, codec, view.Flash{Kind: view.FlashSuccess, Message: "saved"})
		c.Status(http.StatusNoContent)
	})
	r.GET("/read", func(c *gin.Context) {
		if f := GetFlash(c); f != nil {
			c.String(http.StatusOK, f.Message)
			return
		}
		c.String(http.StatusOK, "none")
	})

	set := do(r, httptest.NewRequest(http.MethodGet, "/set", nil))
	require.Len(t, set.Result().Cookies(), 1)

	req := httptest.NewRequest(http.MethodGet, "/read", nil)
	req.AddCookie(set.Result().Cookies()[0])
	w := do(r, req)
	assert.Equal(t, "saved", w.Body.String())
	require.Len(t, w.Result().Cookies(), 1)
	assert.Equal(t, -1, w.Result().Cookies()[0].MaxAge)

	assert.Equal(t, "none", do(r, httptest.NewRequest(http.MethodGet, "/read", nil)).Body.String())
}

func TestFlashTamperedCookieIsExpired(t *testing.T) {
	codec := flash.NewCodec([]byte("k"), "", false)
	r := gin.New()
	r.Use(Flash(codec))
	r.GET("/read", func(c *gin.Context) {
		assert.Nil(t, GetFlash(c))
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/read", nil)
	req.AddCookie(&http.Cookie{Name: codec.CookieName, Value: "not-a-flash"})
	w := do(r, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	require.Len(t, w.Result().Cookies(), 1)
	assert.Equal(t, codec.CookieName, w.Result().Cookies()[0].Name)
	assert.Equal(t, -1, w.Result().Cookies()[0].MaxAge)
}

func TestAuthAndRequireAuth(t *testing.T) {
	tokens := auth.NewTokens([]byte("k"), time.Hour)
	r := gin.New()
	r.Use(RequestID(), ErrorHandler(discard()), Auth(tokens, false))
	r.GET("/account", RequireAuth(), func(c *gin.Context) {
		u, _ := CurrentUser(c)
		c.String(http.StatusOK, u.Username)
	})
	r.GET("/api/me", RequireAuth(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := do(r, httptest.NewRequest(http.MethodGet, "/account", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, LoginRequiredURL, w.Header().Get("Location"))

	w = do(r, httptest.NewRequest(http.MethodGet, "/api/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Please log in to continue.", body["error"])
	assert.Equal(t, w.Header().Get(HeaderRequestID), body["request_id"])

	raw, err := tokens.Issue("ada")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/account", nil)
	req.AddCookie(&http.Cookie{Name: auth.TokenCookie, Value: raw})
	w = do(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ada", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/account", nil)
	req.AddCookie(&http.Cookie{Name: auth.TokenCookie, Value: "garbage"})
	w = do(r, req)
	assert.Equal(t, http.StatusFound, w.Code)
	require.Len(t, w.Result().Cookies(), 1)
	assert.Equal(t, auth.TokenCookie, w.Result().Cookies()[0].Name)
}

func TestCartCount(t *testing.T) {
	codec := cartcookie.New([]byte("k"), "", false)
	cart := cartcookie.NewCart()
	cart.Add(1)
	cart.Add(1)
	cart.Add(2)
	v, err := codec.Encode(cart)
	require.NoError(t, err)

	r := gin.New()
	r.Use(CartCount(codec))
	r.GET("/", func(c *gin.Context) { c.JSON(http.StatusOK, GetCartCount(c)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: codec.CookieName, Value: v})
	assert.Equal(t, "3", do(r, req).Body.String())
	assert.Equal(t, "0", do(r, httptest.NewRequest(http.MethodGet, "/", nil)).Body.String())
}

func TestRateLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	r := gin.New()
	r.Use(RequestID(), ErrorHandler(discard()))
	r.GET("/add_to_cart/:productId", RateLimit(RateLimitCfg{Client: rdb, Limit: 2, Window: time.Minute, Logger: discard()}),
		func(c *gin.Context) { c.Status(http.StatusOK) })

	for i, want := range []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests} {
		w := do(r, httptest.NewRequest(http.MethodGet, "/add_to_cart/"+strings.Repeat("1", i+1), nil))
		assert.Equal(t, want, w.Code, "request %d", i)
		assert.Equal(t, "2", w.Header().Get(HeaderRateLimit))
	}

	mr.FastForward(time.Minute + time.Second)
	assert.Equal(t, http.StatusOK, do(r, httptest.NewRequest(http.MethodGet, "/add_to_cart/9", nil)).Code)
}

func TestRateLimitFailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	mr.Close()

	r := gin.New()
	r.GET("/", RateLimit(RateLimitCfg{Client: rdb, Limit: 1, Window: time.Minute, Logger: discard()}),
		func(c *gin.Context) { c.Status(http.StatusOK) })
	assert.Equal(t, http.StatusOK, do(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"https://shop.example"}))
	r.GET("/api/products", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Origin", "https://shop.example")
	w := do(r, req)
	assert.Equal(t, "https://shop.example", w.Header().Get("Access-Control-Allow-Origin"))

	open := gin.New()
	open.Use(CORS(nil))
	open.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://shop.example")
	assert.Empty(t, do(open, req).Header().Get("Access-Control-Allow-Origin"))
}
