package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Credential store kinds accepted by CREDENTIAL_STORE.
const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

type Config struct {
	AppPort         int           `mapstructure:"APP_PORT"`
	BackendURL      string        `mapstructure:"BACKEND_URL"`
	DatabasePath    string        `mapstructure:"DATABASE_PATH"`
	CredentialStore string        `mapstructure:"CREDENTIAL_STORE"`
	RedisAddr       string        `mapstructure:"REDIS_ADDR"`
	RequestTimeout  time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	ViewCookieName  string        `mapstructure:"VIEW_COOKIE_NAME"`
	ViewIdleTTL     time.Duration `mapstructure:"VIEW_IDLE_TTL"`
	FrontendDir     string        `mapstructure:"FRONTEND_DIR"`
	LogLevel        string        `mapstructure:"LOG_LEVEL"`
}

func LoadConfig() (*Config, error) {
	viper.SetDefault("APP_PORT", 3000)
	viper.SetDefault("BACKEND_URL", "http://127.0.0.1:8000")
	viper.SetDefault("DATABASE_PATH", "./data/askai.db")
	viper.SetDefault("CREDENTIAL_STORE", StoreSQLite)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REQUEST_TIMEOUT", "60s")
	viper.SetDefault("VIEW_COOKIE_NAME", "askai_view")
	viper.SetDefault("VIEW_IDLE_TTL", "24h")
	viper.SetDefault("FRONTEND_DIR", "./frontend/dist")
	viper.SetDefault("LOG_LEVEL", "INFO")

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.askai")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the fields the client cannot run without are usable.
func (c *Config) Validate() error {
	if c.AppPort <= 0 || c.AppPort > 65535 {
		return fmt.Errorf("APP_PORT must be between 1 and 65535, got %d", c.AppPort)
	}
	if strings.TrimSpace(c.BackendURL) == "" {
		return fmt.Errorf("BACKEND_URL cannot be empty")
	}
	switch c.CredentialStore {
	case StoreSQLite:
		if c.DatabasePath == "" {
			return fmt.Errorf("DATABASE_PATH cannot be empty when CREDENTIAL_STORE=%s", StoreSQLite)
		}
	case StoreRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR cannot be empty when CREDENTIAL_STORE=%s", StoreRedis)
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown CREDENTIAL_STORE %q", c.CredentialStore)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}
	if c.ViewCookieName == "" {
		return fmt.Errorf("VIEW_COOKIE_NAME cannot be empty")
	}
	return nil
}
