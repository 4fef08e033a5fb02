package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// BOT_TOKEN is the deployment-specific Telegram bot secret. It derives
	// the HMAC key for widget verification and authenticates the notifier.
	BotToken string `env:"BOT_TOKEN"`

	// ADMIN_HANDLE is the reserved super-admin handle: a user whose widget
	// handle matches it case-insensitively gets the admin role on login.
	AdminHandle string `env:"ADMIN_HANDLE, default=aurorastore_safe"`

	SessionSecret   string `env:"SESSION_SECRET"`
	EnforceSessions bool   `env:"ENFORCE_SESSIONS, default=false"`
	NotifyEnabled   bool   `env:"NOTIFY_ENABLED, default=false"`

	Store StoreConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type StoreConfig struct {
	Driver string `env:"STORE_DRIVER, default=file"`
	Path   string `env:"STORE_PATH,   default=data/db.json"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=shop_backend"`
}

type RedisConfig struct {
	// Addr left empty disables the login replay guard.
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
