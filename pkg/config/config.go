package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

type ProviderConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout" default:"5s"`
	Retries int           `yaml:"retries" default:"2"`
	Backoff time.Duration `yaml:"backoff" default:"500ms"`
}

type Config struct {
	Environment string `yaml:"environment" default:"development"`
	Server      struct {
		Port            int           `yaml:"port" default:"8080"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"10s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"console"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"log"`
	Data struct {
		Dir             string        `yaml:"dir" default:"data"`
		Symbols         []string      `yaml:"symbols"`
		LookbackYears   int           `yaml:"lookback_years" default:"10"`
		Workers         int           `yaml:"workers" default:"20"`
		RefreshInterval time.Duration `yaml:"refresh_interval"` // 0 disables periodic ingestion
		IngestOnStart   bool          `yaml:"ingest_on_start" default:"true"`
	} `yaml:"data"`
	MarketData struct {
		BaseURL      string        `yaml:"base_url"`
		Timeout      time.Duration `yaml:"timeout" default:"20s"`
		RateCapacity float64       `yaml:"rate_capacity" default:"10"`
		RateRefill   float64       `yaml:"rate_refill_per_sec" default:"5"`
	} `yaml:"market_data"`
	Providers struct {
		Technical ProviderConfig `yaml:"technical"`
		Sentiment ProviderConfig `yaml:"sentiment"`
		OnChain   ProviderConfig `yaml:"onchain"`
		Forecast  ProviderConfig `yaml:"forecast"`
	} `yaml:"providers"`
	Cache struct {
		Backend   string        `yaml:"backend" default:"memory"` // memory or redis
		ReportTTL time.Duration `yaml:"report_ttl" default:"60s"`
		Redis     struct {
			Host     string `yaml:"host" default:"localhost"`
			Port     int    `yaml:"port" default:"6379"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("COINPULSE_DATA_DIR"); v != "" {
		c.Data.Dir = v
	}
	if v := os.Getenv("SYMBOLS"); v != "" {
		c.Data.Symbols = strings.Split(v, ",")
	}
	if v := os.Getenv("MARKET_DATA_URL"); v != "" {
		c.MarketData.BaseURL = v
	}
	if v := os.Getenv("TA_SERVICE_URL"); v != "" {
		c.Providers.Technical.BaseURL = v
	}
	if v := os.Getenv("FA_SERVICE_URL"); v != "" {
		c.Providers.Sentiment.BaseURL = v
		c.Providers.OnChain.BaseURL = v
	}
	if v := os.Getenv("FORECAST_SERVICE_URL"); v != "" {
		c.Providers.Forecast.BaseURL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		host, port, ok := strings.Cut(v, ":")
		c.Cache.Redis.Host = host
		if ok {
			if p, err := strconv.Atoi(port); err == nil {
				c.Cache.Redis.Port = p
			}
		}
	}

	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if len(c.Data.Symbols) == 0 {
		return fmt.Errorf("data.symbols cannot be empty")
	}
	if c.Data.LookbackYears <= 0 {
		return fmt.Errorf("data.lookback_years must be positive")
	}
	if c.Data.Workers <= 0 {
		return fmt.Errorf("data.workers must be positive")
	}
	if c.Cache.Backend != "memory" && c.Cache.Backend != "redis" {
		return fmt.Errorf("cache.backend must be 'memory' or 'redis', got '%s'", c.Cache.Backend)
	}
	return nil
}
