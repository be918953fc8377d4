package config

import (
	"reflect"
	"testing"
	"time"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("NEWSAPI_KEY", "")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}

	if cfg.News.HasNewsAPIKey() {
		t.Error("NewsAPI key should be absent by default")
	}
	if !reflect.DeepEqual(cfg.News.Windows, []int{7, 30, 90, 180}) {
		t.Errorf("unexpected windows: %v", cfg.News.Windows)
	}
	if cfg.News.ResultCap != 50 {
		t.Errorf("expected result cap 50, got %d", cfg.News.ResultCap)
	}
	if cfg.News.PageSize != 100 {
		t.Errorf("expected page size 100, got %d", cfg.News.PageSize)
	}
	if cfg.News.Timeout != 10*time.Second || cfg.News.FeedTimeout != 10*time.Second {
		t.Errorf("unexpected timeouts: %v / %v", cfg.News.Timeout, cfg.News.FeedTimeout)
	}
	if cfg.News.FeedRegion != "IN" || cfg.News.FeedLanguage != "en" {
		t.Errorf("unexpected feed locale: %s-%s", cfg.News.FeedLanguage, cfg.News.FeedRegion)
	}
	if cfg.Chart.Symbol != "^NSEI" {
		t.Errorf("expected default symbol ^NSEI, got %s", cfg.Chart.Symbol)
	}
	if cfg.TelegramEnabled() || cfg.DigestEnabled() {
		t.Error("telegram should be disabled by default")
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("NEWSAPI_KEY", "secret")
	t.Setenv("NEWS_WINDOWS", "1,14")
	t.Setenv("CHART_SYMBOL", "^NSEBANK")
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("TELEGRAM_CHAT_ID", "42")
	t.Setenv("TELEGRAM_DIGEST_INTERVAL", "6h")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}

	if cfg.News.APIKey != "secret" {
		t.Errorf("expected API key to be read, got %q", cfg.News.APIKey)
	}
	if !reflect.DeepEqual(cfg.News.Windows, []int{1, 14}) {
		t.Errorf("unexpected windows: %v", cfg.News.Windows)
	}
	if cfg.Chart.Symbol != "^NSEBANK" {
		t.Errorf("unexpected symbol: %s", cfg.Chart.Symbol)
	}
	if !cfg.DigestEnabled() {
		t.Error("digest should be enabled")
	}
	if cfg.Telegram.DigestInterval != 6*time.Hour {
		t.Errorf("unexpected digest interval: %v", cfg.Telegram.DigestInterval)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			News: NewsConfig{
				Windows:     []int{7, 30},
				ResultCap:   50,
				PageSize:    100,
				Timeout:     time.Second,
				FeedTimeout: time.Second,
			},
			Chart:  ChartConfig{Width: 100, Height: 30, SMAPeriod: 5},
			Server: ServerConfig{RateLimitRPS: 1, RateLimitBurst: 1},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing api key is fine", func(c *Config) { c.News.APIKey = "" }, false},
		{"zero result cap", func(c *Config) { c.News.ResultCap = 0 }, true},
		{"page size too large", func(c *Config) { c.News.PageSize = 101 }, true},
		{"non-positive window", func(c *Config) { c.News.Windows = []int{7, 0} }, true},
		{"no windows", func(c *Config) { c.News.Windows = nil }, true},
		{"zero feed timeout", func(c *Config) { c.News.FeedTimeout = 0 }, true},
		{"zero chart width", func(c *Config) { c.Chart.Width = 0 }, true},
		{"zero sma period", func(c *Config) { c.Chart.SMAPeriod = 0 }, true},
		{"token without chat", func(c *Config) { c.Telegram.BotToken = "token" }, true},
		{"token with chat", func(c *Config) {
			c.Telegram.BotToken = "token"
			c.Telegram.ChatID = 1
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
