package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Settings holds everything read from .env and the process environment.
type Settings struct {
	Env           string        `mapstructure:"APP_ENV"`
	Port          string        `mapstructure:"APP_PORT"`
	DBDSN         string        `mapstructure:"DB_DSN"`
	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int           `mapstructure:"REDIS_DB"`
	JWTSecret     string        `mapstructure:"JWT_SECRET"`
	CounterTTL    time.Duration `mapstructure:"COUNTER_TTL"`
	PurgeAfter    time.Duration `mapstructure:"PURGE_AFTER"`
	PurgeInterval time.Duration `mapstructure:"PURGE_INTERVAL"`
	BatchSize     int           `mapstructure:"BATCH_SIZE"`
}

var settingKeys = []string{
	"APP_ENV", "APP_PORT", "DB_DSN", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
	"JWT_SECRET", "COUNTER_TTL", "PURGE_AFTER", "PURGE_INTERVAL", "BATCH_SIZE",
}

// Load reads .env (if present) and the environment into Settings.
func Load() (*Settings, error) {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	for _, key := range settingKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("COUNTER_TTL", time.Minute)
	v.SetDefault("PURGE_AFTER", time.Duration(0))
	v.SetDefault("PURGE_INTERVAL", time.Minute)
	v.SetDefault("BATCH_SIZE", 100)

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unable to decode settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &s, nil
}

func (s *Settings) Validate() error {
	if strings.TrimSpace(s.DBDSN) == "" {
		return errors.New("DB_DSN is not set")
	}
	if strings.TrimSpace(s.JWTSecret) == "" {
		return errors.New("JWT_SECRET is not set")
	}
	if s.Port == "" {
		return errors.New("APP_PORT is not set")
	}
	if s.BatchSize <= 0 {
		return errors.New("BATCH_SIZE must be positive")
	}
	if s.PurgeAfter < 0 {
		return errors.New("PURGE_AFTER must not be negative")
	}
	if s.PurgeAfter > 0 && s.PurgeInterval <= 0 {
		return errors.New("PURGE_INTERVAL must be positive when PURGE_AFTER is set")
	}
	return nil
}

// RedisEnabled reports whether a counter cache backend is configured.
func (s *Settings) RedisEnabled() bool {
	return strings.TrimSpace(s.RedisAddr) != ""
}
