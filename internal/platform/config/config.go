// Package config loads the service configuration from flags, environment,
// an optional config file and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"emergy_api/internal/platform/db"
)

// EnvPrefix prefixes every environment variable, e.g. EMERGY_DB_HOST.
const EnvPrefix = "EMERGY"

// Config holds application level configuration.
type Config struct {
	Server struct {
		Addr string
		// Mode is the gin mode: debug, release or test.
		Mode string
	}
	Log struct {
		Level string
	}
	DB struct {
		Host           string
		Port           string
		User           string
		Password       string
		Name           string
		SSLMode        string
		Instance       string
		ConnectTimeout time.Duration
		Migrate        bool
	}
}

// New returns a viper instance with defaults and environment lookup set up.
// Callers may bind command line flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("log.level", "info")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "emergy")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "emergy")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.instance", "")
	v.SetDefault("db.connecttimeout", 60*time.Second)
	v.SetDefault("db.migrate", true)

	v.SetConfigName("config")
	v.AddConfigPath(".")
	return v
}

// Load reads .env (without overriding the environment) and the optional
// config file, then decodes everything v knows into a Config.
func Load(v *viper.Viper) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to read .env: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// Database converts the db section into connection settings.
func (c Config) Database() db.Config {
	return db.Config{
		Host:           c.DB.Host,
		Port:           c.DB.Port,
		User:           c.DB.User,
		Password:       c.DB.Password,
		Name:           c.DB.Name,
		SSLMode:        c.DB.SSLMode,
		InstanceName:   c.DB.Instance,
		ConnectTimeout: c.DB.ConnectTimeout,
	}
}
