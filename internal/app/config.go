package app

import (
	"time"

	"github.com/yungbote/blog-backend/internal/http/handlers"
	"github.com/yungbote/blog-backend/internal/platform/envutil"
	"github.com/yungbote/blog-backend/internal/services"
)

type Config struct {
	Addr            string
	LogMode         string
	Environment     string
	Version         string
	ServiceName     string
	JWTSecretKey    string
	AllowedOrigins  []string
	Cookies         handlers.CookieConfig
	TaxonomyFile    string
	ExportOnStart   bool
	MetricsEnabled  bool
	ShutdownTimeout time.Duration
	CategoryViews   services.CategoryViewConfig
}

func LoadConfig() Config {
	return Config{
		Addr:           ":" + envutil.String("PORT", "8080"),
		LogMode:        envutil.String("LOG_MODE", "development"),
		Environment:    envutil.String("APP_ENV", "development"),
		Version:        envutil.String("APP_VERSION", ""),
		ServiceName:    envutil.String("OTEL_SERVICE_NAME", "blog-web"),
		JWTSecretKey:   envutil.String("JWT_SECRET_KEY", ""),
		AllowedOrigins: envutil.List("CORS_ORIGINS", nil),
		Cookies: handlers.CookieConfig{
			Domain: envutil.String("COOKIE_DOMAIN", ""),
			Secure: envutil.Bool("COOKIE_SECURE", false),
			MaxAge: envutil.Duration("COOKIE_MAX_AGE", 7*24*time.Hour),
		},
		TaxonomyFile:    envutil.String("CATEGORY_TAXONOMY_FILE", ""),
		ExportOnStart:   envutil.Bool("NEO4J_EXPORT_ON_START", true),
		MetricsEnabled:  envutil.Bool("METRICS_ENABLED", true),
		ShutdownTimeout: envutil.Duration("SHUTDOWN_TIMEOUT", 10*time.Second),
		CategoryViews:   services.CategoryViewConfigFromEnv(),
	}
}
