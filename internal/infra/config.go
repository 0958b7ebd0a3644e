package infra

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the full application configuration. Values loaded from the
// YAML file can be overridden through environment variables.
type Config struct {
	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	Stream struct {
		WSURL     string `yaml:"ws_url"`
		QueueSize int    `yaml:"queue_size"` // Quote persistence queue capacity
		DBPath    string `yaml:"db_path"`    // SQLite file location
	} `yaml:"stream"`

	Exchanges struct {
		Bitfinex struct {
			RestURL string `yaml:"rest_url"`
		} `yaml:"bitfinex"`
		Bitstamp struct {
			RestURL string `yaml:"rest_url"`
		} `yaml:"bitstamp"`
		Kraken struct {
			RestURL string `yaml:"rest_url"`
		} `yaml:"kraken"`
	} `yaml:"exchanges"`

	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// LoadConfig reads and parses the configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	overrideWithEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks configuration validity.
func (c *Config) Validate() error {
	if c.Stream.WSURL == "" ||
		(!strings.HasPrefix(c.Stream.WSURL, "ws://") && !strings.HasPrefix(c.Stream.WSURL, "wss://")) {
		return fmt.Errorf("invalid stream WS URL: %s", c.Stream.WSURL)
	}
	if c.Stream.QueueSize <= 0 {
		return fmt.Errorf("quote queue size must be positive")
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server address is required")
	}
	return nil
}

// overrideWithEnv overrides config values from environment variables when set.
func overrideWithEnv(cfg *Config) {
	if url := os.Getenv("TRADING_STREAM_WS_URL"); url != "" {
		cfg.Stream.WSURL = url
	}
	if path := os.Getenv("TRADING_DB_PATH"); path != "" {
		cfg.Stream.DBPath = path
	}
	if addr := os.Getenv("TRADING_SERVER_ADDR"); addr != "" {
		cfg.Server.Addr = addr
	}
	if level := os.Getenv("TRADING_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
}
