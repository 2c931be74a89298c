package http_test

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lunor.shop/app/internal/config"
	"lunor.shop/app/internal/database/dbtest"
	apphttp "lunor.shop/app/internal/http"
	"lunor.shop/app/internal/modules/auth"
	"lunor.shop/app/internal/modules/products"
	"lunor.shop/app/internal/modules/promo"
)

func init() { gin.SetMode(gin.TestMode) }

// idleScheduler arms nothing; the tests drive the carousel by hand.
type idleScheduler struct{}

type idleTask struct{}

func (idleTask) Cancel() {}

func (idleScheduler) Every(time.Duration, func()) promo.Task { return idleTask{} }

type app struct {
	t       *testing.T
	handler http.Handler
	cookies map[string]*http.Cookie
	ids     map[string]uint
	hub     *promo.Hub
}

type option func(*apphttp.Deps)

func withRedis(rdb *redis.Client, limit int) option {
	return func(d *apphttp.Deps) {
		d.Redis = rdb
		d.Config.RateLimit = limit
	}
}

func newApp(t *testing.T, opts ...option) *app {
	t.Helper()
	cfg, err := config.FromLookup(func(k string) (string, bool) {
		v, ok := map[string]string{
			"JWT_SECRET":       "test-jwt",
			"COOKIE_SECRET":    "test-cookie",
			"LOCAL_UPLOAD_DIR": t.TempDir(),
		}[k]
		return v, ok
	})
	require.NoError(t, err)

	db := dbtest.Open(t)
	repo := products.NewRepo(db)
	ids := map[string]uint{}
	rating := func(v float64) *float64 { return &v }
	for _, p := range []products.Product{
		{Slug: "hat", Name: "Hat", Category: "Accessories", PriceCents: 1000},
		{Slug: "shirt", Name: "Shirt", Brand: "Herbivore", Category: "Apparel", PriceCents: 2000, Rating: rating(4.1), Reviews: 8},
		{Slug: "shawl", Name: "Shawl", Category: "Apparel", PriceCents: 3000},
		{Slug: "shoe", Name: "Shoe", Brand: "Herbivore", Category: "Footwear", PriceCents: 2400, Rating: rating(4.7), Reviews: 2, IsNew: true},
		{Slug: "mist", Name: "Rose Mist", Brand: "Herbivore", Category: "Skincare", PriceCents: 3600, Rating: rating(4.7), Reviews: 30},
	} {
		require.NoError(t, repo.Create(context.Background(), &p))
		ids[p.Slug] = p.ID
	}

	hub, err := promo.NewHub(promo.DefaultSlides(), 0, promo.WithScheduler(idleScheduler{}))
	require.NoError(t, err)
	t.Cleanup(hub.Shutdown)

	deps := apphttp.Deps{
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Config:   cfg,
		DB:       db,
		Products: repo,
		Promo:    hub,
	}
	for _, o := range opts {
		o(&deps)
	}
	return &app{t: t, handler: apphttp.NewRouter(deps), cookies: map[string]*http.Cookie{}, ids: ids, hub: hub}
}

// do sends a request with the cookies collected so far and records new ones.
func (a *app) do(method, target string, body io.Reader, header map[string]string) *httptest.ResponseRecorder {
	a.t.Helper()
	req := httptest.NewRequest(method, target, body)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	for _, ck := range a.cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, req)
	for _, ck := range w.Result().Cookies() {
		if ck.MaxAge < 0 {
			delete(a.cookies, ck.Name)
			continue
		}
		a.cookies[ck.Name] = ck
	}
	return w
}

func (a *app) get(target string) *httptest.ResponseRecorder { return a.do(http.MethodGet, target, nil, nil) }

func (a *app) getJSON(target string) *httptest.ResponseRecorder {
	return a.do(http.MethodGet, target, nil, map[string]string{"Accept": "application/json"})
}

func (a *app) postForm(target string, form url.Values) *httptest.ResponseRecorder {
	return a.do(http.MethodPost, target, strings.NewReader(form.Encode()),
		map[string]string{"Content-Type": "application/x-www-form-urlencoded"})
}

func (a *app) postJSON(target, body string) *httptest.ResponseRecorder {
	return a.do(http.MethodPost, target, strings.NewReader(body),
		map[string]string{"Content-Type": "application/json", "Accept": "application/json"})
}

func idOf(a *app, slug string) string {
	return strconv.FormatUint(uint64(a.ids[slug]), 10)
}

var cardRe = regexp.MustCompile(`<article class="product-card" id="product-([a-z]+)"[^>]*?( hidden)?>`)

type card struct {
	slug   string
	hidden bool
}

func cards(body string) []card {
	var out []card
	for _, m := range cardRe.FindAllStringSubmatch(body, -1) {
		out = append(out, card{slug: m[1], hidden: m[2] != ""})
	}
	return out
}

func TestProductsListing(t *testing.T) {
	a := newApp(t)
	w := a.get("/products?q=sh&price=0-25&sort=price_low")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, []card{
		{"shirt", false}, {"shoe", false},
		{"hat", true}, {"shawl", true}, {"mist", true},
	}, cards(w.Body.String()))
	assert.Contains(t, w.Body.String(), "2 of 5 products")
	assert.Contains(t, w.Body.String(), `<option value="Apparel">Apparel</option>`)
}

func TestProductsListingNoFilters(t *testing.T) {
	a := newApp(t)
	got := cards(a.get("/products").Body.String())
	require.Len(t, got, 5)
	for _, c := range got {
		assert.False(t, c.hidden, c.slug)
	}
	assert.Equal(t, "hat", got[0].slug)
}

func TestProductsAPI(t *testing.T) {
	a := newApp(t)
	w := a.get("/api/products?q=SH&sort=price_high&category=Apparel")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Items []struct {
			Name       string `json:"name"`
			PriceCents int64  `json:"price_cents"`
		} `json:"items"`
		Total    int `json:"total"`
		Criteria struct {
			Search   string `json:"search"`
			Category string `json:"category"`
			Sort     string `json:"sort"`
		} `json:"criteria"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Items, 2)
	assert.Equal(t, "Shawl", body.Items[0].Name)
	assert.Equal(t, "Shirt", body.Items[1].Name)
	assert.Equal(t, 2, body.Total)
	assert.Equal(t, "SH", body.Criteria.Search)
	assert.Equal(t, "price_high", body.Criteria.Sort)
}

func TestHeaderSearchRedirect(t *testing.T) {
	a := newApp(t)
	w := a.get("/search?q=rose+mist")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/products?q=rose+mist#filters", w.Header().Get("Location"))

	w = a.get("/search?q=")
	assert.Equal(t, "/products#filters", w.Header().Get("Location"))
}

func TestProductDetail(t *testing.T) {
	a := newApp(t)
	w := a.get("/product/" + idOf(a, "mist"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<h1>Rose Mist</h1>")

	assert.Equal(t, http.StatusNotFound, a.get("/product/9999").Code)
	assert.Equal(t, http.StatusNotFound, a.get("/product/abc").Code)
}

func TestAddToCartHTML(t *testing.T) {
	a := newApp(t)
	w := a.get("/add_to_cart/" + idOf(a, "mist"))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/cart", w.Header().Get("Location"))
	require.Contains(t, a.cookies, "cart")

	w = a.get("/cart")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "&#34;Rose Mist&#34; added to cart!")
	assert.Contains(t, body, "Subtotal: <strong>$36.00</strong>")
	assert.Contains(t, body, `data-cart-count>1</span>`)
}

func TestAddToCartJSONIncrements(t *testing.T) {
	a := newApp(t)
	type resp struct {
		ProductID uint   `json:"product_id"`
		Name      string `json:"name"`
		Quantity  int    `json:"quantity"`
		Count     int    `json:"count"`
	}
	var r resp
	for i := 1; i <= 2; i++ {
		w := a.getJSON("/add_to_cart/" + idOf(a, "shoe"))
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &r))
		assert.Equal(t, i, r.Quantity)
	}
	w := a.getJSON("/add_to_cart/" + idOf(a, "hat"))
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &r))
	assert.Equal(t, resp{ProductID: a.ids["hat"], Name: "Hat", Quantity: 1, Count: 3}, r)

	body := a.get("/cart").Body.String()
	assert.Less(t, strings.Index(body, ">Shoe<"), strings.Index(body, ">Hat<"))
	assert.Contains(t, body, "Subtotal: <strong>$58.00</strong>")
}

func TestAddToCartErrors(t *testing.T) {
	a := newApp(t)
	assert.Equal(t, http.StatusBadRequest, a.getJSON("/add_to_cart/abc").Code)
	assert.Equal(t, http.StatusBadRequest, a.get("/add_to_cart/-1").Code)
	assert.Equal(t, http.StatusNotFound, a.getJSON("/add_to_cart/9999").Code)
	assert.NotContains(t, a.cookies, "cart")
}

func TestAddToCartRateLimited(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	a := newApp(t, withRedis(rdb, 1))
	assert.Equal(t, http.StatusOK, a.getJSON("/add_to_cart/"+idOf(a, "hat")).Code)
	w := a.getJSON("/add_to_cart/" + idOf(a, "hat"))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestCheckoutClearsCart(t *testing.T) {
	a := newApp(t)
	a.get("/add_to_cart/" + idOf(a, "hat"))
	require.Contains(t, a.cookies, "cart")

	w := a.postForm("/checkout", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.NotContains(t, a.cookies, "cart")
	assert.Contains(t, a.get("/cart").Body.String(), "Your cart is empty")
}

func TestHomeFeatured(t *testing.T) {
	a := newApp(t)
	w := a.get("/")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()

	mist, shoe, shirt := strings.Index(body, "Rose Mist"), strings.Index(body, "<h3>Shoe"), strings.Index(body, "<h3>Shirt")
	require.True(t, mist >= 0 && shoe >= 0 && shirt >= 0)
	assert.Less(t, mist, shoe)
	assert.Less(t, shoe, shirt)
	assert.Contains(t, body, `class="indicator active" data-promo-goto="0"`)
}

func TestRegisterLoginAccount(t *testing.T) {
	a := newApp(t)

	w := a.get("/account")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login?error=not_logged_in", w.Header().Get("Location"))
	assert.Contains(t, a.get("/login?error=not_logged_in").Body.String(), "Please log in")

	form := url.Values{"username": {"ada"}, "password": {"lovelace"}, "country": {"UK"}}
	w = a.postForm("/register", form)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/account", w.Header().Get("Location"))
	require.Contains(t, a.cookies, auth.TokenCookie)

	w = a.get("/account")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Hello, ada")
	assert.Contains(t, w.Body.String(), "UK")

	w = a.get("/logout")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.NotContains(t, a.cookies, auth.TokenCookie)

	w = a.postForm("/register", form)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "User already exists")

	w = a.postForm("/login", url.Values{"username": {"ada"}, "password": {"wrong-pass"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Incorrect username or password")

	w = a.postForm("/login", url.Values{"username": {"ada"}, "password": {"lovelace"}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, http.StatusOK, a.get("/account").Code)
}

func TestRegisterValidation(t *testing.T) {
	a := newApp(t)
	w := a.postForm("/register", url.Values{"username": {"ab"}, "password": {"123"}, "country": {"U"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Must be at least 3 characters.")
	assert.Contains(t, w.Body.String(), "Must be at least 6 characters.")
	assert.NotContains(t, a.cookies, auth.TokenCookie)
}

type promoFrame struct {
	ID            string `json:"id"`
	Index         int    `json:"index"`
	OffsetPercent int    `json:"offset_percent"`
	Active        []bool `json:"active"`
	Playing       bool   `json:"playing"`
}

func decodeFrame(t *testing.T, w *httptest.ResponseRecorder) promoFrame {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var f promoFrame
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &f))
	return f
}

func TestPromoAPI(t *testing.T) {
	a := newApp(t)
	car, err := a.hub.Open()
	require.NoError(t, err)
	base := "/api/promo/carousels/" + car.ID

	f := decodeFrame(t, a.get(base))
	assert.Equal(t, car.ID, f.ID)
	assert.Equal(t, 0, f.Index)

	f = decodeFrame(t, a.postJSON(base+"/prev", ""))
	assert.Equal(t, 2, f.Index)
	assert.Equal(t, -200, f.OffsetPercent)
	assert.Equal(t, []bool{false, false, true}, f.Active)
	assert.True(t, f.Playing)

	assert.Equal(t, 0, decodeFrame(t, a.postJSON(base+"/next", "")).Index)
	assert.Equal(t, 1, decodeFrame(t, a.postJSON(base+"/slides/7", "")).Index)
	assert.Equal(t, 2, decodeFrame(t, a.postJSON(base+"/slides/-1", "")).Index)
	assert.Equal(t, http.StatusBadRequest, a.postJSON(base+"/slides/two", "").Code)

	assert.False(t, decodeFrame(t, a.postJSON(base+"/hover", `{"state":"enter"}`)).Playing)
	assert.True(t, decodeFrame(t, a.postJSON(base+"/hover", `{"state":"leave"}`)).Playing)
	assert.Equal(t, http.StatusBadRequest, a.postJSON(base+"/hover", `{"state":"wiggle"}`).Code)
}

func TestPromoUnknownCarousel(t *testing.T) {
	a := newApp(t)
	assert.Equal(t, http.StatusNotFound, a.getJSON("/api/promo/carousels/nope").Code)
	assert.Equal(t, http.StatusNotFound, a.postJSON("/api/promo/carousels/nope/next", "").Code)
	// the old process-wide endpoints are gone
	assert.Equal(t, http.StatusNotFound, a.postJSON("/api/promo/next", "").Code)
}

// openStream connects to the slider event stream and returns the first frame.
func openStream(t *testing.T, ctx context.Context, srv *httptest.Server) promoFrame {
	t.Helper()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/promo/stream", nil)
	require.NoError(t, err)
	res, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { res.Body.Close() })
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, res.Header.Get("Content-Type"), "text/event-stream")

	sc := bufio.NewScanner(res.Body)
	for sc.Scan() {
		data, ok := strings.CutPrefix(sc.Text(), "data:")
		if !ok {
			continue
		}
		var f promoFrame
		require.NoError(t, json.Unmarshal([]byte(data), &f))
		return f
	}
	t.Fatalf("stream ended without a frame: %v", sc.Err())
	return promoFrame{}
}

func postTo(t *testing.T, srv *httptest.Server, path, body string) promoFrame {
	t.Helper()
	res, err := srv.Client().Post(srv.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	var f promoFrame
	require.NoError(t, json.NewDecoder(res.Body).Decode(&f))
	return f
}

func TestPromoVisitorsNavigateIndependently(t *testing.T) {
	a := newApp(t)
	srv := httptest.NewServer(a.handler)
	defer srv.Close()

	ctxA, cancelA := context.WithCancel(context.Background())
	defer cancelA()
	ctxB, cancelB := context.WithCancel(context.Background())
	defer cancelB()

	fa := openStream(t, ctxA, srv)
	fb := openStream(t, ctxB, srv)
	require.NotEqual(t, fa.ID, fb.ID)
	assert.Equal(t, 0, fa.Index)
	assert.Equal(t, 0, fb.Index)
	assert.Equal(t, 2, a.hub.Len())

	assert.False(t, postTo(t, srv, "/api/promo/carousels/"+fa.ID+"/hover", `{"state":"enter"}`).Playing)
	assert.Equal(t, 2, postTo(t, srv, "/api/promo/carousels/"+fa.ID+"/slides/2", "").Index)

	res, err := srv.Client().Get(srv.URL + "/api/promo/carousels/" + fb.ID)
	require.NoError(t, err)
	defer res.Body.Close()
	var got promoFrame
	require.NoError(t, json.NewDecoder(res.Body).Decode(&got))
	assert.Equal(t, 0, got.Index)
	assert.True(t, got.Playing)
	assert.Equal(t, []bool{true, false, false}, got.Active)

	cancelA()
	require.Eventually(t, func() bool { return a.hub.Len() == 1 }, 2*time.Second, 10*time.Millisecond)
	_, err = a.hub.Get(fa.ID)
	assert.ErrorIs(t, err, promo.ErrNotFound)
	_, err = a.hub.Get(fb.ID)
	assert.NoError(t, err)
}

func TestStaticPagesAndHealth(t *testing.T) {
	a := newApp(t)
	for _, p := range []string{"/about", "/privacy", "/accessibility", "/faqs", "/returns"} {
		assert.Equal(t, http.StatusOK, a.get(p).Code, p)
	}
	assert.Equal(t, http.StatusOK, a.get("/static/site.css").Code)

	w := a.get("/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"db":"ok"`)

	w = a.get("/definitely-not-here")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Page not found")
}

func TestSiteScriptFollowsSliderStream(t *testing.T) {
	a := newApp(t)
	w := a.get("/static/site.js")
	require.Equal(t, http.StatusOK, w.Code)
	js := w.Body.String()
	assert.Contains(t, js, `new EventSource("/api/promo/stream")`)
	assert.Contains(t, js, `"/api/promo/carousels/"`)
	assert.NotContains(t, js, "setInterval")
}
