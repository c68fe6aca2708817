package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"` // "postgres", "sqlite3" or "memory"
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	Path     string `mapstructure:"path"`
}

type Config struct {
	Port     string         `mapstructure:"port"`
	LogLevel string         `mapstructure:"log_level"`
	DB       DatabaseConfig `mapstructure:"db"`
}

var defaults = map[string]any{
	"port":        "8080",
	"log_level":   "info",
	"db.driver":   "sqlite3",
	"db.host":     "localhost",
	"db.port":     "5432",
	"db.user":     "myday",
	"db.password": "myday",
	"db.name":     "myday",
	"db.path":     "myday.db",
}

// Load reads defaults, an optional config file and the environment, in
// increasing precedence. Each key is read from MYDAY_<KEY> first and then
// from the bare <KEY> name (db.host -> MYDAY_DB_HOST, DB_HOST).
func Load(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
		env := strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, "MYDAY_"+env, env); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DB.Driver {
	case "postgres", "sqlite3", "memory":
		return nil
	default:
		return fmt.Errorf("unsupported database driver: %q", c.DB.Driver)
	}
}

// DSN returns the connection string for the configured driver.
func (db *DatabaseConfig) DSN() string {
	switch db.Driver {
	case "postgres":
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			db.Host, db.Port, db.User, db.Password, db.Name)
	case "sqlite3":
		return fmt.Sprintf("file:%s?_foreign_keys=on", db.Path)
	default:
		return ""
	}
}
