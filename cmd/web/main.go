package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"lunor.shop/app/internal/config"
	"lunor.shop/app/internal/database"
	apphttp "lunor.shop/app/internal/http"
	"lunor.shop/app/internal/modules/products"
	"lunor.shop/app/internal/modules/promo"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	if len(cfg.Generated) > 0 {
		logger.Warn("using random secrets; sessions and carts reset on restart", "keys", cfg.Generated)
	}

	db, err := database.Open(cfg.DB, logger)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		return err
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return err
		}
		rdb = redis.NewClient(opts)
		defer rdb.Close()
	}

	repo := products.NewRepo(db)
	catalog := products.NewCachedRepo(repo, products.NewCache(repo, products.CacheTTL))

	slides := promo.DefaultSlides()
	if cfg.PromoSlidesFile != "" {
		if slides, err = promo.LoadSlides(cfg.PromoSlidesFile); err != nil {
			return err
		}
	}
	carousels, err := promo.NewHub(slides, cfg.PromoMaxCarousels,
		promo.WithInterval(cfg.PromoInterval),
		promo.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	defer carousels.Shutdown()

	r := apphttp.NewRouter(apphttp.Deps{
		Logger:   logger,
		Config:   cfg,
		DB:       db,
		Products: catalog,
		Promo:    carousels,
		Redis:    rdb,
	})

	// No WriteTimeout: slider event streams stay open for the life of the page.
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Addr, "env", cfg.Env, "db", cfg.DB.Driver)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
