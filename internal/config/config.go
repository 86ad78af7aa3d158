package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Settings struct {
	Port            int           `mapstructure:"port"`
	DatabaseDSN     string        `mapstructure:"database_dsn"`
	JWTSecret       string        `mapstructure:"jwt_secret"`
	LogLevel        string        `mapstructure:"log_level"`
	DefaultTimezone string        `mapstructure:"default_timezone"`
	CacheEnabled    bool          `mapstructure:"cache_enabled"`
	CacheSizeMB     int           `mapstructure:"cache_size_mb"`
	CacheTTL        time.Duration `mapstructure:"cache_ttl"`
	MetricsEnabled  bool          `mapstructure:"metrics_enabled"`
	CookieDomain    string        `mapstructure:"cookie_domain"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	RunMigrations   bool          `mapstructure:"run_migrations"`
}

var keys = []string{
	"port",
	"database_dsn",
	"jwt_secret",
	"log_level",
	"default_timezone",
	"cache_enabled",
	"cache_size_mb",
	"cache_ttl",
	"metrics_enabled",
	"cookie_domain",
	"allowed_origins",
	"run_migrations",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 8080)
	v.SetDefault("log_level", "info")
	v.SetDefault("default_timezone", "UTC")
	v.SetDefault("cache_enabled", false)
	v.SetDefault("cache_size_mb", 16)
	v.SetDefault("cache_ttl", 10*time.Minute)
	v.SetDefault("metrics_enabled", true)
	v.SetDefault("allowed_origins", []string{"*"})
	v.SetDefault("run_migrations", true)
}

// Load reads settings from the environment (PORT, DATABASE_DSN, JWT_SECRET, ...).
func Load() (*Settings, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (*Settings, error) {
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, k := range keys {
		if err := v.BindEnv(k, strings.ToUpper(k)); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", k, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unable to decode settings: %w", err)
	}

	if len(s.AllowedOrigins) == 1 && strings.Contains(s.AllowedOrigins[0], ",") {
		s.AllowedOrigins = strings.Split(s.AllowedOrigins[0], ",")
	}

	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Settings) validate() error {
	if s.Port <= 0 || s.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", s.Port)
	}
	if _, err := time.LoadLocation(s.DefaultTimezone); err != nil {
		return fmt.Errorf("invalid DEFAULT_TIMEZONE %q: %w", s.DefaultTimezone, err)
	}
	if s.CacheEnabled && s.CacheSizeMB <= 0 {
		return fmt.Errorf("CACHE_SIZE_MB must be positive when the cache is enabled")
	}
	return nil
}

// Location returns the zone used when a request does not declare one.
func (s *Settings) Location() *time.Location {
	loc, err := time.LoadLocation(s.DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
