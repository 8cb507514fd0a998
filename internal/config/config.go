package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port                string   `mapstructure:"PORT"`
	Env                 string   `mapstructure:"ENV"`
	DatabaseURL         string   `mapstructure:"DATABASE_URL"`
	DBMaxConns          int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns          int32    `mapstructure:"DB_MIN_CONNS"`
	CORSOrigins         []string `mapstructure:"CORS_ORIGINS"`
	JWTSecret           string   `mapstructure:"JWT_SECRET"`
	AvailabilitySeconds int      `mapstructure:"AVAILABILITY_INTERVAL_SECONDS"`
	NotifyOnTriage      bool     `mapstructure:"NOTIFY_ON_TRIAGE"`
	SeedDoctors         bool     `mapstructure:"SEED_DOCTORS"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 2)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("AVAILABILITY_INTERVAL_SECONDS", 10)
	v.SetDefault("NOTIFY_ON_TRIAGE", true)
	v.SetDefault("SEED_DOCTORS", true)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("JWT_SECRET")
	v.BindEnv("AVAILABILITY_INTERVAL_SECONDS")
	v.BindEnv("NOTIFY_ON_TRIAGE")
	v.BindEnv("SEED_DOCTORS")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// AvailabilityInterval returns how often the availability simulator
// reassigns doctor online status.
func (c *Config) AvailabilityInterval() time.Duration {
	return time.Duration(c.AvailabilitySeconds) * time.Second
}

// InMemory reports whether the server should run on the in-memory stores.
// Without DATABASE_URL there is nothing to connect to, so this is a
// supported mode rather than a configuration error.
func (c *Config) InMemory() bool {
	return c.DatabaseURL == ""
}

// Validate checks that the configuration is safe to run. Development mode
// may run without a JWT secret (requests are given admin access); any other
// mode must configure one.
func (c *Config) Validate() error {
	if !c.IsDev() && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when ENV is %q", c.Env)
	}
	if c.IsProduction() && c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required in production")
	}
	if c.AvailabilitySeconds <= 0 {
		return fmt.Errorf("AVAILABILITY_INTERVAL_SECONDS must be positive, got %d", c.AvailabilitySeconds)
	}
	return nil
}
