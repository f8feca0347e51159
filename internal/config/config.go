package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"coinextractor/internal/extractor"
)

// JobConfig describes one market range extraction to run.
type JobConfig struct {
	CoinID   string `mapstructure:"coin_id"`
	Currency string `mapstructure:"currency"`
	From     int64  `mapstructure:"from"`
	To       int64  `mapstructure:"to"`
}

// Request converts the job into an extractor request.
func (j JobConfig) Request() extractor.MarketRangeRequest {
	return extractor.MarketRangeRequest{
		CoinID:   j.CoinID,
		Currency: j.Currency,
		From:     j.From,
		To:       j.To,
	}
}

// Config holds all configuration for the coin extractor.
type Config struct {
	// Provider access
	CoinGeckoAPIKey  string `mapstructure:"coingecko_api_key"`
	CoinGeckoBaseURL string `mapstructure:"coingecko_base_url"`

	// Run settings
	AppName        string        `mapstructure:"app_name"`
	RunTimeout     time.Duration `mapstructure:"run_timeout"`
	LogLevel       string        `mapstructure:"log_level"`
	LogDevelopment bool          `mapstructure:"log_development"`
	PushgatewayURL string        `mapstructure:"pushgateway_url"`

	// Items to extract
	Jobs []JobConfig `mapstructure:"jobs"`
}

// Load reads configuration from environment variables and an optional config
// file. Environment variables take precedence over config file values. When
// path is empty, config.yaml is looked up in . and $HOME/.coinextractor.
//
// Expected environment variables:
//   - COINGECKO_API_KEY
//   - COINGECKO_BASE_URL (optional, defaults to production)
//   - LOG_LEVEL, LOG_DEVELOPMENT, RUN_TIMEOUT, PUSHGATEWAY_URL, APP_NAME (optional)
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("coingecko_base_url", "https://api.coingecko.com/api/v3")
	v.SetDefault("app_name", "coinextractor")
	v.SetDefault("run_timeout", 30*time.Second)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_development", false)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.coinextractor")

		// Read config file (ignore if not found)
		_ = v.ReadInConfig()
	}

	v.BindEnv("coingecko_api_key", "COINGECKO_API_KEY")
	v.BindEnv("coingecko_base_url", "COINGECKO_BASE_URL")
	v.BindEnv("app_name", "APP_NAME")
	v.BindEnv("run_timeout", "RUN_TIMEOUT")
	v.BindEnv("log_level", "LOG_LEVEL")
	v.BindEnv("log_development", "LOG_DEVELOPMENT")
	v.BindEnv("pushgateway_url", "PUSHGATEWAY_URL")

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	var missing []string
	if config.CoinGeckoAPIKey == "" {
		missing = append(missing, "COINGECKO_API_KEY")
	}
	if config.CoinGeckoBaseURL == "" {
		missing = append(missing, "COINGECKO_BASE_URL")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	return config, nil
}

// Validate checks the configured jobs
func (c *Config) Validate() error {
	for i, job := range c.Jobs {
		if strings.TrimSpace(job.CoinID) == "" {
			return fmt.Errorf("job %d: coin_id is required", i)
		}
		if strings.TrimSpace(job.Currency) == "" {
			return fmt.Errorf("job %d: currency is required", i)
		}
	}
	if c.RunTimeout < 0 {
		return fmt.Errorf("run_timeout must not be negative")
	}
	return nil
}

// Requests returns the configured jobs as extractor requests
func (c *Config) Requests() []extractor.MarketRangeRequest {
	reqs := make([]extractor.MarketRangeRequest, 0, len(c.Jobs))
	for _, job := range c.Jobs {
		reqs = append(reqs, job.Request())
	}
	return reqs
}
