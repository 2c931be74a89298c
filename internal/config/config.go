// Package config reads the storefront settings from the environment.
package config

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type DB struct {
	Driver string // mysql | sqlite
	DSN    string
}

type Storage struct {
	Driver          string // local | s3
	LocalDir        string
	LocalURLPrefix  string
	S3Region        string
	S3Bucket        string
	S3Prefix        string
	S3PublicBaseURL string
}

type Config struct {
	Env      string
	Addr     string
	LogLevel slog.Level

	DB      DB
	Storage Storage

	CookieSecret []byte
	CookieSecure bool
	JWTSecret    []byte
	TokenTTL     time.Duration

	// Generated lists the secrets that were not configured and were
	// replaced by random per-process values.
	Generated []string

	RedisURL   string
	RateLimit  int
	RateWindow time.Duration

	CORSOrigins []string

	FeaturedBrand string
	FeaturedLimit int

	PromoSlidesFile   string
	PromoInterval     time.Duration
	PromoMaxCarousels int
}

func (c Config) IsProduction() bool { return c.Env == "production" }

// Load reads .env when present (production uses real env vars) and then the
// process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from any key lookup, e.g. os.LookupEnv.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	r := reader{lookup: lookup}

	cfg := Config{
		Env:  r.str("APP_ENV", "development"),
		Addr: r.str("HTTP_ADDR", ":8080"),
		DB: DB{
			Driver: strings.ToLower(r.str("DB_DRIVER", "sqlite")),
			DSN:    r.str("DB_DSN", "file:lunor.db?_foreign_keys=on"),
		},
		Storage: Storage{
			Driver:          strings.ToLower(r.str("STORAGE_DRIVER", "local")),
			LocalDir:        r.str("LOCAL_UPLOAD_DIR", "./storage/uploads"),
			LocalURLPrefix:  r.str("LOCAL_UPLOAD_URL_PREFIX", "/uploads"),
			S3Region:        r.str("S3_REGION", ""),
			S3Bucket:        r.str("S3_BUCKET", ""),
			S3Prefix:        r.str("S3_PREFIX", "uploads"),
			S3PublicBaseURL: r.str("S3_PUBLIC_BASE_URL", ""),
		},
		CookieSecure:      r.boolean("COOKIE_SECURE", false),
		TokenTTL:          r.duration("TOKEN_TTL", 30*time.Minute),
		RedisURL:          r.str("REDIS_URL", ""),
		RateLimit:         r.integer("RATE_LIMIT", 60),
		RateWindow:        r.duration("RATE_WINDOW", time.Minute),
		CORSOrigins:       r.list("CORS_ORIGINS"),
		FeaturedBrand:     r.str("FEATURED_BRAND", "Herbivore"),
		FeaturedLimit:     r.integer("FEATURED_LIMIT", 3),
		PromoSlidesFile:   r.str("PROMO_SLIDES_FILE", ""),
		PromoInterval:     r.duration("PROMO_INTERVAL", 5*time.Second),
		PromoMaxCarousels: r.integer("PROMO_MAX_CAROUSELS", 1000),
	}

	level, err := parseLevel(r.str("LOG_LEVEL", "info"))
	if err != nil {
		r.errs = append(r.errs, err)
	}
	cfg.LogLevel = level

	cfg.CookieSecret = r.secret("COOKIE_SECRET", &cfg.Generated)
	cfg.JWTSecret = r.secret("JWT_SECRET", &cfg.Generated)

	if err := errors.Join(r.errs...); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var errs []error
	switch c.DB.Driver {
	case "mysql", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER: unsupported driver %q", c.DB.Driver))
	}
	switch c.Storage.Driver {
	case "local", "s3":
	default:
		errs = append(errs, fmt.Errorf("STORAGE_DRIVER: unsupported driver %q", c.Storage.Driver))
	}
	if c.IsProduction() && len(c.Generated) > 0 {
		errs = append(errs, fmt.Errorf("%s must be set in production", strings.Join(c.Generated, ", ")))
	}
	if c.RateLimit <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT must be positive"))
	}
	if c.PromoMaxCarousels <= 0 {
		errs = append(errs, errors.New("PROMO_MAX_CAROUSELS must be positive"))
	}
	if c.FeaturedLimit <= 0 {
		errs = append(errs, errors.New("FEATURED_LIMIT must be positive"))
	}
	if c.TokenTTL <= 0 || c.PromoInterval <= 0 || c.RateWindow <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL, PROMO_INTERVAL and RATE_WINDOW must be positive"))
	}
	return errors.Join(errs...)
}

type reader struct {
	lookup func(string) (string, bool)
	errs   []error
}

func (r *reader) str(key, def string) string {
	if v, ok := r.lookup(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func (r *reader) integer(key string, def int) int {
	v := r.str(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return n
}

func (r *reader) boolean(key string, def bool) bool {
	v := r.str(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return b
}

func (r *reader) duration(key string, def time.Duration) time.Duration {
	v := r.str(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return d
}

func (r *reader) list(key string) []string {
	var out []string
	for _, part := range strings.Split(r.str(key, ""), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (r *reader) secret(key string, generated *[]string) []byte {
	if v := r.str(key, ""); v != "" {
		return []byte(v)
	}
	*generated = append(*generated, key)
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: generate: %w", key, err))
		return nil
	}
	return []byte(base64.RawURLEncoding.EncodeToString(b))
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return l, nil
}
