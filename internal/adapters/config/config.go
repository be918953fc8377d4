package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config represents application configuration
type Config struct {
	News     NewsConfig     `envconfig:"NEWS"`
	Chart    ChartConfig    `envconfig:"CHART"`
	Server   ServerConfig   `envconfig:"SERVER"`
	Telegram TelegramConfig `envconfig:"TELEGRAM"`
	Logging  LoggingConfig  `envconfig:"LOGGING"`
}

// NewsConfig represents news retrieval configuration
type NewsConfig struct {
	// APIKey is optional; without it only the RSS fallback is used
	APIKey       string        `envconfig:"NEWSAPI_KEY" required:"false"`
	APIURL       string        `envconfig:"NEWSAPI_URL" default:"https://newsapi.org"`
	DefaultQuery string        `envconfig:"NEWS_DEFAULT_QUERY" required:"false"`
	Windows      []int         `envconfig:"NEWS_WINDOWS" default:"7,30,90,180"`
	ResultCap    int           `envconfig:"NEWS_RESULT_CAP" default:"50"`
	PageSize     int           `envconfig:"NEWS_PAGE_SIZE" default:"100"`
	Timeout      time.Duration `envconfig:"NEWS_TIMEOUT" default:"10s"`
	FeedURL      string        `envconfig:"NEWS_FEED_URL" default:"https://news.google.com/rss/search"`
	FeedLanguage string        `envconfig:"NEWS_FEED_LANGUAGE" default:"en"`
	FeedRegion   string        `envconfig:"NEWS_FEED_REGION" default:"IN"`
	FeedTimeout  time.Duration `envconfig:"NEWS_FEED_TIMEOUT" default:"10s"`
}

// ChartConfig represents background chart configuration
type ChartConfig struct {
	Symbol    string        `envconfig:"CHART_SYMBOL" default:"^NSEI"`
	Range     string        `envconfig:"CHART_RANGE" default:"6mo"`
	Interval  string        `envconfig:"CHART_INTERVAL" default:"1d"`
	SMAPeriod int           `envconfig:"CHART_SMA_PERIOD" default:"20"`
	Width     int           `envconfig:"CHART_WIDTH" default:"1000"`
	Height    int           `envconfig:"CHART_HEIGHT" default:"300"`
	URL       string        `envconfig:"CHART_URL" default:"https://query1.finance.yahoo.com"`
	Timeout   time.Duration `envconfig:"CHART_TIMEOUT" default:"10s"`
}

// ServerConfig represents dashboard HTTP server configuration
type ServerConfig struct {
	Port           string  `envconfig:"SERVER_PORT" default:"8080"`
	RateLimitRPS   float64 `envconfig:"SERVER_RATE_LIMIT_RPS" default:"5"`
	RateLimitBurst int     `envconfig:"SERVER_RATE_LIMIT_BURST" default:"20"`
}

// TelegramConfig represents Telegram bot configuration
type TelegramConfig struct {
	BotToken       string        `envconfig:"TELEGRAM_BOT_TOKEN" required:"false"`
	ChatID         int64         `envconfig:"TELEGRAM_CHAT_ID" required:"false"`
	DigestInterval time.Duration `envconfig:"TELEGRAM_DIGEST_INTERVAL" default:"0"`
	DigestDays     int           `envconfig:"TELEGRAM_DIGEST_DAYS" default:"1"`
	DigestSize     int           `envconfig:"TELEGRAM_DIGEST_SIZE" default:"5"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
	File  string `envconfig:"LOG_FILE" required:"false"`
}

// Load reads configuration from .env (if present) and environment variables
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	return FromEnv()
}

// FromEnv reads configuration from environment variables only
func FromEnv() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks if configuration is valid
func (c *Config) Validate() error {
	if c.News.ResultCap <= 0 {
		return fmt.Errorf("result_cap must be positive")
	}
	if c.News.PageSize < 1 || c.News.PageSize > 100 {
		return fmt.Errorf("page_size must be between 1 and 100")
	}
	if len(c.News.Windows) == 0 {
		return fmt.Errorf("at least one news window is required")
	}
	for _, days := range c.News.Windows {
		if days <= 0 {
			return fmt.Errorf("news window must be positive, got %d", days)
		}
	}
	if c.News.Timeout <= 0 || c.News.FeedTimeout <= 0 {
		return fmt.Errorf("news timeouts must be positive")
	}

	if c.Chart.Width <= 0 || c.Chart.Height <= 0 {
		return fmt.Errorf("chart dimensions must be positive")
	}
	if c.Chart.SMAPeriod <= 0 {
		return fmt.Errorf("chart sma_period must be positive")
	}

	if c.Server.RateLimitRPS <= 0 || c.Server.RateLimitBurst <= 0 {
		return fmt.Errorf("rate limit must be positive")
	}

	if c.Telegram.BotToken != "" && c.Telegram.ChatID == 0 {
		return fmt.Errorf("telegram chat_id is required when bot token is set")
	}
	if c.Telegram.DigestInterval < 0 {
		return fmt.Errorf("telegram digest_interval must not be negative")
	}

	return nil
}

// HasNewsAPIKey returns true if the primary news source is configured
func (c *NewsConfig) HasNewsAPIKey() bool {
	return c.APIKey != ""
}

// TelegramEnabled returns true if the Telegram bot should be started
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != ""
}

// DigestEnabled returns true if the periodic Telegram digest should run
func (c *Config) DigestEnabled() bool {
	return c.TelegramEnabled() && c.Telegram.DigestInterval > 0
}
