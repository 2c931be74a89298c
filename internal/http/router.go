package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"lunor.shop/app/internal/config"
	"lunor.shop/app/internal/http/cartcookie"
	"lunor.shop/app/internal/http/flash"
	"lunor.shop/app/internal/http/handlers"
	"lunor.shop/app/internal/http/middleware"
	"lunor.shop/app/internal/modules/auth"
	"lunor.shop/app/internal/modules/cart"
	"lunor.shop/app/internal/modules/products"
	"lunor.shop/app/internal/modules/promo"
	"lunor.shop/app/internal/shared/apperr"
	"lunor.shop/app/web"
)

// Deps is everything the router wires into handlers.
type Deps struct {
	Logger   *slog.Logger
	Config   config.Config
	DB       *gorm.DB
	Products products.Repository
	Promo    *promo.Hub
	// Redis enables rate limiting on add-to-cart; nil disables it.
	Redis *redis.Client
}

func NewRouter(d Deps) *gin.Engine {
	cfg := d.Config
	log := d.Logger

	r := gin.New()
	_ = r.SetTrustedProxies(nil)

	flashCodec := flash.NewCodec(cfg.CookieSecret, flash.DefaultName, cfg.CookieSecure)
	cartCodec := cartcookie.New(cfg.CookieSecret, cartcookie.DefaultName, cfg.CookieSecure)
	tokens := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)
	users := auth.NewService(auth.NewRepo(d.DB))

	r.Use(
		middleware.RequestID(),
		middleware.CORS(cfg.CORSOrigins),
		middleware.Logger(log, "/healthz"),
		middleware.ErrorHandler(log),
		middleware.Recovery(log),
		middleware.Flash(flashCodec),
		middleware.Auth(tokens, cfg.CookieSecure),
		middleware.CartCount(cartCodec),
	)

	r.StaticFS("/static", http.FS(web.Static()))
	if cfg.Storage.Driver == "local" {
		r.Static(cfg.Storage.LocalURLPrefix, cfg.Storage.LocalDir)
	}

	checks := map[string]handlers.Pinger{
		"db": handlers.PingFunc(func(ctx context.Context) error {
			sqlDB, err := d.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}),
	}
	if d.Redis != nil {
		checks["redis"] = handlers.PingFunc(func(ctx context.Context) error { return d.Redis.Ping(ctx).Err() })
	}
	r.GET("/healthz", handlers.Health(checks))

	home := handlers.NewHomeHandler(d.Products, d.Promo, cfg.FeaturedBrand, cfg.FeaturedLimit, log)
	r.GET("/", home.Show)

	prod := handlers.NewProductsHandler(d.Products)
	r.GET("/products", prod.List)
	r.GET("/product/:id", prod.Detail)
	r.GET("/search", prod.Search)

	cartH := handlers.NewCartHandler(cart.NewService(d.Products), cartCodec, flashCodec, log)
	addToCart := []gin.HandlerFunc{}
	if d.Redis != nil {
		addToCart = append(addToCart, middleware.RateLimit(middleware.RateLimitCfg{
			Client: d.Redis,
			Limit:  cfg.RateLimit,
			Window: cfg.RateWindow,
			Prefix: "rl:cart",
			Logger: log,
		}))
	}
	r.GET("/add_to_cart/:productId", append(addToCart, cartH.Add)...)
	r.GET("/cart", cartH.Show)
	r.POST("/checkout", cartH.Checkout)

	authH := handlers.NewAuthHandler(users, tokens, cfg.CookieSecure)
	r.GET("/register", authH.RegisterGet)
	r.POST("/register", authH.RegisterPost)
	r.GET("/login", authH.LoginGet)
	r.POST("/login", authH.LoginPost)
	r.GET("/logout", authH.Logout)

	account := handlers.NewAccountHandler(users, cfg.CookieSecure)
	r.GET("/account", middleware.RequireAuth(), account.Show)

	for _, key := range []string{"about", "privacy", "accessibility", "faqs", "returns"} {
		r.GET("/"+key, handlers.Static(key))
	}

	api := r.Group("/api")
	api.GET("/products", prod.API)
	if d.Promo != nil {
		p := handlers.NewPromoHandler(d.Promo, log)
		api.GET("/promo/stream", p.Stream)
		car := api.Group("/promo/carousels/:id")
		car.GET("", p.Get)
		car.POST("/next", p.Next)
		car.POST("/prev", p.Prev)
		car.POST("/slides/:index", p.GoTo)
		car.POST("/hover", p.Hover)
	}

	r.NoRoute(func(c *gin.Context) {
		middleware.Fail(c, apperr.NotFoundErr("Page not found"))
	})

	return r
}
