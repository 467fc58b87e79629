package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds every runtime setting of the storefront API. Values come
// from STORE_-prefixed environment variables, optionally seeded from a
// local .env file.
type Config struct {
	Port           string   `envconfig:"STORE_PORT" default:"5000"`
	MongoURI       string   `envconfig:"STORE_MONGO_URI" default:"mongodb://localhost:27017/"`
	Database       string   `envconfig:"STORE_DB_NAME" default:"Ecommerce-website"`
	LogLevel       string   `envconfig:"STORE_LOG_LEVEL" default:"info"`
	AllowedOrigins []string `envconfig:"STORE_ALLOWED_ORIGINS" default:"*"`
	Redis          RedisConfig
}

// RedisConfig holds the product cache connection settings
type RedisConfig struct {
	Addr     string `envconfig:"STORE_REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"STORE_REDIS_PASSWORD"`
	DB       int    `envconfig:"STORE_REDIS_DB" default:"0"`
}

// Load reads configuration from the environment. A missing .env file is
// not an error; explicit environment variables win over it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("store", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}
