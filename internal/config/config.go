package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Mode selects which variant of the application is served.
type Mode string

const (
	// ModeStore serves the multi-user, database-backed application.
	ModeStore Mode = "store"
	// ModeMemory serves a single anonymous in-memory list with no accounts.
	ModeMemory Mode = "memory"
)

// Supported values for db.driver and session.store.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	SessionStoreCookie = "cookie"
	SessionStoreGorm   = "gorm"
)

const envPrefix = "TODO"

// Config holds the configuration of the todo server.
type Config struct {
	// Mode is either "store" (default) or "memory".
	Mode Mode `mapstructure:"mode"`
	// Port the HTTP server listens on; accepts "8080" or ":8080".
	Port string `mapstructure:"port"`
	// Log holds logger settings.
	Log LogConfig `mapstructure:"log"`
	// DB holds the backing store settings.
	DB DBConfig `mapstructure:"db"`
	// Session holds the login session cookie settings.
	Session SessionConfig `mapstructure:"session"`
	// Auth holds password hashing and API token settings.
	Auth AuthConfig `mapstructure:"auth"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// DBConfig holds the database configuration.
type DBConfig struct {
	// Driver is "sqlite" or "postgres".
	Driver string `mapstructure:"driver"`
	// Path is the SQLite database file (":memory:" allowed).
	Path string `mapstructure:"path"`
	// DSN is the Postgres connection string.
	DSN string `mapstructure:"dsn"`
}

// SessionConfig holds the cookie session configuration.
type SessionConfig struct {
	Name string `mapstructure:"name"`
	// Store is "cookie" (client-side, signed) or "gorm" (server-side rows in the backing store).
	Store  string `mapstructure:"store"`
	Secret string `mapstructure:"secret"`
	// MaxAge is the session lifetime in seconds.
	MaxAge int  `mapstructure:"max_age"`
	Secure bool `mapstructure:"secure"`
}

// AuthConfig holds credential and token settings.
type AuthConfig struct {
	// Hasher is the algorithm used for new passwords: "argon2id" or "bcrypt".
	Hasher      string        `mapstructure:"hasher"`
	TokenSecret string        `mapstructure:"token_secret"`
	TokenTTL    time.Duration `mapstructure:"token_ttl"`
}

// Load reads the configuration from path, or from configs/config.yml and ./config.yml
// when path is empty. A missing config file is not an error: defaults and TODO_*
// environment variables still apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("configs")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	normalize(&c)
	if err := validate(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", string(ModeStore))
	v.SetDefault("port", "8080")
	v.SetDefault("log.level", "info")

	v.SetDefault("db.driver", DriverSQLite)
	v.SetDefault("db.path", "app.db")
	v.SetDefault("db.dsn", "")

	v.SetDefault("session.name", "todo_session")
	v.SetDefault("session.store", SessionStoreCookie)
	v.SetDefault("session.secret", "")
	v.SetDefault("session.max_age", 86400) // 24 hours
	v.SetDefault("session.secure", false)

	v.SetDefault("auth.hasher", "argon2id")
	v.SetDefault("auth.token_secret", "")
	v.SetDefault("auth.token_ttl", time.Hour)
}

func normalize(c *Config) {
	c.Mode = Mode(strings.ToLower(strings.TrimSpace(string(c.Mode))))
	c.DB.Driver = strings.ToLower(strings.TrimSpace(c.DB.Driver))
	c.Session.Store = strings.ToLower(strings.TrimSpace(c.Session.Store))
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
}

func validate(c *Config) error {
	switch c.Mode {
	case ModeStore, ModeMemory:
	default:
		return fmt.Errorf("invalid mode %q: use %q or %q", c.Mode, ModeStore, ModeMemory)
	}
	if c.Mode == ModeMemory {
		return nil
	}

	switch c.DB.Driver {
	case DriverSQLite:
		if c.DB.Path == "" {
			return errors.New("db.path is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.DB.DSN == "" {
			return errors.New("db.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported db.driver %q", c.DB.Driver)
	}

	switch c.Session.Store {
	case SessionStoreCookie, SessionStoreGorm:
	default:
		return fmt.Errorf("unsupported session.store %q", c.Session.Store)
	}
	if len(c.Session.Secret) < 16 {
		return errors.New("session.secret must be at least 16 characters")
	}
	if c.Auth.TokenSecret == "" {
		return errors.New("auth.token_secret is required")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("auth.token_ttl must be positive")
	}
	return nil
}
