package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// DatabaseConfig holds PostgreSQL connection settings used by the postgres session driver.
// URL, when set, replaces the individual connection fields.
type DatabaseConfig struct {
	URL                string `toml:"url"`
	Host               string `toml:"host"`
	Port               string `toml:"port"`
	User               string `toml:"user"`
	Password           string `toml:"password"`
	Name               string `toml:"name"`
	SSLMode            string `toml:"sslmode"`
	MaxOpenConns       int    `toml:"max_open_conns"`
	MaxIdleConns       int    `toml:"max_idle_conns"`
	ConnMaxLifetimeSec int    `toml:"conn_max_lifetime_sec"`
	ConnMaxIdleTimeSec int    `toml:"conn_max_idle_time_sec"`
	ConnectTimeoutSec  int    `toml:"connect_timeout_sec"`
	ApplicationName    string `toml:"application_name"`
}

// RedisConfig holds settings for the redis session driver.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// BackendConfig points at the remote document and Q&A API.
type BackendConfig struct {
	BaseURL    string `toml:"base_url"`
	TimeoutSec int    `toml:"timeout_sec"`
}

// Timeout returns the per-request timeout for backend calls.
func (b BackendConfig) Timeout() time.Duration {
	return time.Duration(b.TimeoutSec) * time.Second
}

// SessionConfig controls where client sessions are persisted and how long
// an idle client keeps its in-memory controller.
type SessionConfig struct {
	Driver         string `toml:"driver"` // memory, redis or postgres
	TTLHours       int    `toml:"ttl_hours"`
	CookieSecure   bool   `toml:"cookie_secure"`
	IdleTimeoutMin int    `toml:"idle_timeout_min"`
}

// TTL returns how long durable session entries are retained.
func (s SessionConfig) TTL() time.Duration {
	return time.Duration(s.TTLHours) * time.Hour
}

// IdleTimeout returns how long an unused client controller stays in memory.
func (s SessionConfig) IdleTimeout() time.Duration {
	return time.Duration(s.IdleTimeoutMin) * time.Minute
}

// QAConfig holds the defaults sent with every question.
type QAConfig struct {
	MaxResults    int `toml:"max_results"`
	SnippetLength int `toml:"snippet_length"`
	PageSize      int `toml:"page_size"`
}

// DevAuthConfig enables the mock login routes used during local development.
type DevAuthConfig struct {
	Enabled   bool   `toml:"enabled"`
	JWTSecret string `toml:"jwt_secret"`
	Email     string `toml:"email"`
	Password  string `toml:"password"`
}

// AppConfig is the centralized configuration struct for the application.
// Values come from defaults, then an optional TOML file, then environment variables.
type AppConfig struct {
	AppHost  string         `toml:"app_host"`
	Port     string         `toml:"port"`
	Env      string         `toml:"env"`
	LogLevel string         `toml:"log_level"`
	Backend  BackendConfig  `toml:"backend"`
	Session  SessionConfig  `toml:"session"`
	Redis    RedisConfig    `toml:"redis"`
	Database DatabaseConfig `toml:"database"`
	QA       QAConfig       `toml:"qa"`
	DevAuth  DevAuthConfig  `toml:"dev_auth"`
}

// IsProduction reports whether the app runs with production settings.
func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// The TOML file named by CONFIG_FILE is optional; real environment variables take precedence.
func Load() (*AppConfig, error) {
	cfg := defaultConfig()

	path := getEnv("CONFIG_FILE", "configs/docportal.toml")
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("decode config file %s: %w", path, err)
		}
	}

	overrideByEnv(cfg)

	if cfg.Backend.BaseURL == "" {
		return nil, fmt.Errorf("backend base url is required")
	}
	switch cfg.Session.Driver {
	case "memory", "redis", "postgres":
	default:
		return nil, fmt.Errorf("unsupported session driver: %s", cfg.Session.Driver)
	}
	return cfg, nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		AppHost:  "localhost:3000",
		Port:     "3000",
		Env:      "development",
		LogLevel: "info",
		Backend: BackendConfig{
			BaseURL:    "http://localhost:8080",
			TimeoutSec: 30,
		},
		Session: SessionConfig{
			Driver:         "memory",
			TTLHours:       24 * 30,
			IdleTimeoutMin: 30,
		},
		Redis: RedisConfig{
			Addr: "127.0.0.1:6379",
		},
		Database: DatabaseConfig{
			Port:               "5432",
			SSLMode:            "disable",
			MaxOpenConns:       10,
			MaxIdleConns:       5,
			ConnMaxLifetimeSec: 300,
			ConnMaxIdleTimeSec: 60,
			ConnectTimeoutSec:  5,
			ApplicationName:    "docportal",
		},
		QA: QAConfig{
			MaxResults:    5,
			SnippetLength: 200,
			PageSize:      10,
		},
		DevAuth: DevAuthConfig{
			JWTSecret: "your-secret-key",
			Email:     "test@example.com",
			Password:  "password",
		},
	}
}

func overrideByEnv(cfg *AppConfig) {
	cfg.AppHost = getEnv("APP_HOST", cfg.AppHost)
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.Env = getEnv("APP_ENV", cfg.Env)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)

	cfg.Backend.BaseURL = getEnv("BACKEND_URL", cfg.Backend.BaseURL)
	cfg.Backend.TimeoutSec = getEnvInt("BACKEND_TIMEOUT_SEC", cfg.Backend.TimeoutSec)

	cfg.Session.Driver = getEnv("SESSION_DRIVER", cfg.Session.Driver)
	cfg.Session.TTLHours = getEnvInt("SESSION_TTL_HOURS", cfg.Session.TTLHours)
	cfg.Session.CookieSecure = getEnvBool("SESSION_COOKIE_SECURE", cfg.Session.CookieSecure)
	cfg.Session.IdleTimeoutMin = getEnvInt("SESSION_IDLE_TIMEOUT_MIN", cfg.Session.IdleTimeoutMin)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = getEnvInt("REDIS_DB", cfg.Redis.DB)

	cfg.Database.URL = getEnv("DATABASE_URL", cfg.Database.URL)
	cfg.Database.Host = getEnv("DB_HOST", cfg.Database.Host)
	cfg.Database.Port = getEnv("DB_PORT", cfg.Database.Port)
	cfg.Database.User = getEnv("DB_USER", cfg.Database.User)
	cfg.Database.Password = getEnv("DB_PASSWORD", cfg.Database.Password)
	cfg.Database.Name = getEnv("DB_NAME", cfg.Database.Name)
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", cfg.Database.SSLMode)
	cfg.Database.MaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", cfg.Database.MaxOpenConns)
	cfg.Database.MaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", cfg.Database.MaxIdleConns)
	cfg.Database.ConnMaxLifetimeSec = getEnvInt("DB_CONN_MAX_LIFETIME_SEC", cfg.Database.ConnMaxLifetimeSec)
	cfg.Database.ConnMaxIdleTimeSec = getEnvInt("DB_CONN_MAX_IDLE_TIME_SEC", cfg.Database.ConnMaxIdleTimeSec)
	cfg.Database.ConnectTimeoutSec = getEnvInt("DB_CONNECT_TIMEOUT_SEC", cfg.Database.ConnectTimeoutSec)
	cfg.Database.ApplicationName = getEnv("DB_APPLICATION_NAME", cfg.Database.ApplicationName)

	cfg.QA.MaxResults = getEnvInt("QA_MAX_RESULTS", cfg.QA.MaxResults)
	cfg.QA.SnippetLength = getEnvInt("QA_SNIPPET_LENGTH", cfg.QA.SnippetLength)
	cfg.QA.PageSize = getEnvInt("QA_PAGE_SIZE", cfg.QA.PageSize)

	cfg.DevAuth.Enabled = getEnvBool("DEV_AUTH_ENABLED", cfg.DevAuth.Enabled)
	cfg.DevAuth.JWTSecret = getEnv("JWT_SECRET", cfg.DevAuth.JWTSecret)
	cfg.DevAuth.Email = getEnv("DEV_AUTH_EMAIL", cfg.DevAuth.Email)
	cfg.DevAuth.Password = getEnv("DEV_AUTH_PASSWORD", cfg.DevAuth.Password)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
