package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Logging  LoggingConfig  `yaml:"logging"`
	Scraper  ScraperConfig  `yaml:"scraper"`
	Storage  StorageConfig  `yaml:"storage"`
	Telegram TelegramConfig `yaml:"telegram"`
}

type ServerConfig struct {
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

type ScraperConfig struct {
	EnabledScrapers []string        `yaml:"enabled_scrapers"`
	Interval        time.Duration   `yaml:"interval"`
	Timeout         time.Duration   `yaml:"timeout"` // per-fetch timeout
	UserAgent       string          `yaml:"user_agent"`
	DraftKings      BookmakerConfig `yaml:"draftkings"`
	FanDuel         BookmakerConfig `yaml:"fanduel"`
	BetMGM          BookmakerConfig `yaml:"betmgm"`
}

type BookmakerConfig struct {
	BaseURL string `yaml:"base_url"`
}

type StorageConfig struct {
	Backend  string         `yaml:"backend"` // file (default), postgres, redis
	File     FileConfig     `yaml:"file"`
	Postgres PostgresConfig `yaml:"postgres"`
	Redis    RedisConfig    `yaml:"redis"`
}

type FileConfig struct {
	Path string `yaml:"path"`
}

type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type TelegramConfig struct {
	Enabled  bool   `yaml:"enabled"`
	BotToken string `yaml:"bot_token"`
	ChatID   int64  `yaml:"chat_id"`
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads and parses a YAML config file, filling in defaults for anything
// left unset.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port <= 0 {
		c.Server.Port = 8000
	}
	if c.Server.ReadTimeout <= 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	if c.Server.WriteTimeout <= 0 {
		c.Server.WriteTimeout = 15 * time.Second
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if len(c.Scraper.EnabledScrapers) == 0 {
		c.Scraper.EnabledScrapers = []string{"draftkings", "fanduel", "betmgm"}
	}
	if c.Scraper.Interval <= 0 {
		c.Scraper.Interval = 300 * time.Second
	}
	if c.Scraper.Timeout <= 0 {
		c.Scraper.Timeout = 30 * time.Second
	}
	if c.Scraper.UserAgent == "" {
		c.Scraper.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = "file"
	}
	if c.Storage.File.Path == "" {
		c.Storage.File.Path = "data/odds.json"
	}
}
