package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	// NotifyWorkers sizes the notification dispatcher pool.
	NotifyWorkers int `env:"NOTIFY_WORKERS, default=4"`

	Mongo   MongoConfig
	Redis   RedisConfig
	Gateway GatewayConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=mentorship"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type GatewayConfig struct {
	BaseURL      string        `env:"GATEWAY_BASE_URL, default=https://sandbox.cashfree.com"`
	ClientID     string        `env:"GATEWAY_CLIENT_ID"`
	ClientSecret string        `env:"GATEWAY_CLIENT_SECRET"`
	Timeout      time.Duration `env:"GATEWAY_TIMEOUT, default=15s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
