package config

import (
	"time"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Config holds everything the gateway reads from the environment. The Notion
// secrets are optional at startup on purpose: the HR pipeline reports them
// missing per request, and the FX pipeline needs no configuration at all.
type Config struct {
	Address string `env:"ADDRESS" envDefault:":8080"`

	NotionToken string `env:"NOTION_TOKEN"`
	NotionDBID  string `env:"NOTION_DB_ID"`

	CachePath  string        `env:"CACHE_DB_PATH" envDefault:"hrfx-cache.db"`
	FXCacheTTL time.Duration `env:"FX_CACHE_TTL" envDefault:"24h"`
	HRCacheTTL time.Duration `env:"HR_CACHE_TTL" envDefault:"5m"`

	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"15s"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	TelegramToken  string `env:"TELEGRAM_TOKEN"`
	TelegramChatID int64  `env:"TELEGRAM_CHAT_ID"`
}

func LoadConfig() (*Config, error) {
	_ = godotenv.Load()
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
