// internal/config/config.go
//
// Runtime configuration.
// Precedence: built-in defaults < optional YAML file < environment.
// A .env file in the working directory is loaded into the environment first
// (development convenience; a missing file is not an error).
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port      string `yaml:"port"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"` // json | console

	DB     DBConfig     `yaml:"db"`
	Words  WordsConfig  `yaml:"words"`
	Auth   AuthConfig   `yaml:"auth"`
	Server ServerConfig `yaml:"server"`

	DailySalt string `yaml:"daily_salt"`
}

type DBConfig struct {
	Driver string `yaml:"driver"` // sqlite3 (cgo) | sqlite (pure Go)
	Path   string `yaml:"path"`
}

type WordsConfig struct {
	AnswersFile string `yaml:"answers_file"`
	AllowedFile string `yaml:"allowed_file"`
}

type AuthConfig struct {
	JWTSecret      string `yaml:"jwt_secret"`
	JWTExpiresDays int    `yaml:"jwt_expires_days"`
	CookieName     string `yaml:"cookie_name"`
	SecureCookies  bool   `yaml:"secure_cookies"`
}

type ServerConfig struct {
	ClientOrigin   string `yaml:"client_origin"`
	RequestTimeout int    `yaml:"request_timeout_seconds"`
	SessionTTL     int    `yaml:"session_ttl_minutes"` // idle games are dropped after this
}

// Default returns the development defaults.
func Default() Config {
	return Config{
		Port:      "5175",
		LogLevel:  "info",
		LogFormat: "json",
		DB:        DBConfig{Driver: "sqlite3", Path: "./data/app.db"},
		Auth: AuthConfig{
			JWTSecret:      "dev_secret_change_me",
			JWTExpiresDays: 14,
			CookieName:     "sedecordle_token",
		},
		Server: ServerConfig{
			ClientOrigin:   "http://localhost:5173",
			RequestTimeout: 10,
			SessionTTL:     240,
		},
		DailySalt: "local_dev_salt",
	}
}

// Load builds a Config from defaults, the YAML file at path (if non-empty)
// and the environment.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnvOverrides()
	return cfg, cfg.Validate()
}

func (c *Config) applyEnvOverrides() {
	setStr(&c.Port, "PORT")
	setStr(&c.LogLevel, "LOG_LEVEL")
	setStr(&c.LogFormat, "LOG_FORMAT")
	setStr(&c.DB.Driver, "DB_DRIVER")
	setStr(&c.DB.Path, "DB_PATH")
	setStr(&c.Words.AnswersFile, "WORDS_ANSWERS_FILE")
	setStr(&c.Words.AllowedFile, "WORDS_ALLOWED_FILE")
	setStr(&c.Auth.JWTSecret, "JWT_SECRET")
	setInt(&c.Auth.JWTExpiresDays, "JWT_EXPIRES_DAYS")
	setStr(&c.Auth.CookieName, "COOKIE_NAME")
	setStr(&c.Server.ClientOrigin, "CLIENT_ORIGIN")
	setStr(&c.DailySalt, "DAILY_SALT")
	if os.Getenv("NODE_ENV") == "production" {
		c.Auth.SecureCookies = true
	}
}

// Validate rejects settings the server cannot start with.
func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("config: port is required")
	}
	switch c.DB.Driver {
	case "sqlite3", "sqlite":
	default:
		return fmt.Errorf("config: unknown db driver %q", c.DB.Driver)
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "console":
	default:
		return fmt.Errorf("config: unknown log format %q", c.LogFormat)
	}
	if c.Auth.JWTExpiresDays <= 0 {
		return fmt.Errorf("config: jwt_expires_days must be positive")
	}
	return nil
}

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// setInt ignores values that do not parse.
func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
