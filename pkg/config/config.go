package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration shared by the api, web and bookctl binaries.
type Config struct {
	ServerPort string `mapstructure:"SERVER_PORT"`
	WebPort    string `mapstructure:"WEB_PORT"`
	LogLevel   string `mapstructure:"LOG_LEVEL"`

	APIURL     string `mapstructure:"API_URL"`
	APITimeout int    `mapstructure:"API_TIMEOUT"` // seconds

	GoogleBooksAPIKey string `mapstructure:"GOOGLE_BOOKS_API_KEY"`
	GoogleBooksURL    string `mapstructure:"GOOGLE_BOOKS_URL"`

	GoogleAPIKey     string `mapstructure:"GOOGLE_API_KEY"`
	GeminiModel      string `mapstructure:"GEMINI_MODEL"`
	GeminiMaxRetries int    `mapstructure:"GEMINI_MAX_RETRIES"`

	PostgresURL string `mapstructure:"POSTGRES_URL"`
	SQLitePath  string `mapstructure:"SQLITE_PATH"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`
	CacheTTL      int    `mapstructure:"CACHE_TTL"` // hours

	ScrapeTimeout     int `mapstructure:"SCRAPE_TIMEOUT"`      // seconds
	ScrapeRenderWait  int `mapstructure:"SCRAPE_RENDER_WAIT"`  // seconds
	ScrapeScrollWait  int `mapstructure:"SCRAPE_SCROLL_WAIT"`  // seconds
	ScrapeConcurrency int `mapstructure:"SCRAPE_CONCURRENCY"`

	RateLimitRPS   float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int     `mapstructure:"RATE_LIMIT_BURST"`

	CoverHosts string `mapstructure:"COVER_HOSTS"`
	SessionTTL int    `mapstructure:"SESSION_TTL"` // minutes
}

var defaults = map[string]any{
	"SERVER_PORT":          "8000",
	"WEB_PORT":             "3000",
	"LOG_LEVEL":            "info",
	"API_URL":              "http://localhost:8000",
	"API_TIMEOUT":          120,
	"GOOGLE_BOOKS_API_KEY": "",
	"GOOGLE_BOOKS_URL":     "https://www.googleapis.com/books/v1/volumes",
	"GOOGLE_API_KEY":       "",
	"GEMINI_MODEL":         "gemini-2.0-flash",
	"GEMINI_MAX_RETRIES":   2,
	"POSTGRES_URL":         "",
	"SQLITE_PATH":          "data/history.db",
	"REDIS_ADDR":           "",
	"REDIS_PASSWORD":       "",
	"REDIS_DB":             0,
	"CACHE_TTL":            48,
	"SCRAPE_TIMEOUT":       30,
	"SCRAPE_RENDER_WAIT":   5,
	"SCRAPE_SCROLL_WAIT":   3,
	"SCRAPE_CONCURRENCY":   2,
	"RATE_LIMIT_RPS":       1.0,
	"RATE_LIMIT_BURST":     3,
	"COVER_HOSTS":          "books.google.com,books.googleusercontent.com",
	"SESSION_TTL":          30,
}

// Load reads configuration from an optional .env file and environment variables.
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit env file path. A missing file is not an error,
// so the service can be configured purely through the environment in production.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	// Defaults double as key registration, without which Unmarshal ignores AutomaticEnv.
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	return &cfg, nil
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

func (c *Config) APITimeoutDuration() time.Duration {
	return time.Duration(c.APITimeout) * time.Second
}

func (c *Config) CacheTTLDuration() time.Duration {
	return time.Duration(c.CacheTTL) * time.Hour
}

func (c *Config) SessionTTLDuration() time.Duration {
	return time.Duration(c.SessionTTL) * time.Minute
}

// CoverHostList splits COVER_HOSTS on commas, dropping blanks.
func (c *Config) CoverHostList() []string {
	var hosts []string
	for _, h := range strings.Split(c.CoverHosts, ",") {
		if h = strings.TrimSpace(h); h != "" {
			hosts = append(hosts, strings.ToLower(h))
		}
	}
	return hosts
}
