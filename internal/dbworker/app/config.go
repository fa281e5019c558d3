package app

import (
	"time"

	"github.com/yungbote/blog-backend/internal/data/db"
	"github.com/yungbote/blog-backend/internal/platform/authtoken"
	"github.com/yungbote/blog-backend/internal/platform/envutil"
)

type Config struct {
	Addr            string
	LogMode         string
	JWTSecretKey    string
	TokenTTL        time.Duration
	ShutdownTimeout time.Duration
	MetricsEnabled  bool
	DB              db.Config
}

func LoadConfig() Config {
	return Config{
		Addr:            envutil.String("WORKER_ADDR", ":8787"),
		LogMode:         envutil.String("LOG_MODE", "development"),
		JWTSecretKey:    envutil.String("JWT_SECRET_KEY", ""),
		TokenTTL:        envutil.Duration("JWT_TTL", authtoken.DefaultTTL),
		ShutdownTimeout: envutil.Duration("SHUTDOWN_TIMEOUT", 10*time.Second),
		MetricsEnabled:  envutil.Bool("METRICS_ENABLED", false),
		DB:              db.ConfigFromEnv(),
	}
}
