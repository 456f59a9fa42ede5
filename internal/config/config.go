package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the exchange-rate blog pipeline.
type Config struct {
	// API keys
	DeepSeekAPIKey     string `mapstructure:"deepseek_api_key"`
	AlphaVantageAPIKey string `mapstructure:"alphavantage_api_key"`

	// Blog publishing; posting is log-only when the token is empty
	BlogAccessToken string `mapstructure:"blog_access_token"`

	// Base URLs for API endpoints (configurable for testing)
	DeepSeekBaseURL     string `mapstructure:"deepseek_base_url"`
	AlphaVantageBaseURL string `mapstructure:"alphavantage_base_url"`
	BlogBaseURL         string `mapstructure:"blog_base_url"`

	// Chat model used for commentary and title generation
	DeepSeekModel string `mapstructure:"deepseek_model"`

	// Daily posting slots in KST, "HH:MM"
	PostingTimes []string `mapstructure:"posting_times"`
}

// Load reads configuration from environment variables and optional config file.
// Environment variables take precedence over config file values.
//
// Expected environment variables:
//   - DEEPSEEK_API_KEY (required)
//   - ALPHAVANTAGE_API_KEY (required)
//   - BLOG_ACCESS_TOKEN (optional)
//   - DEEPSEEK_BASE_URL (optional, defaults to production)
//   - ALPHAVANTAGE_BASE_URL (optional, defaults to production)
//   - BLOG_BASE_URL (optional)
//   - DEEPSEEK_MODEL (optional, defaults to deepseek-chat)
func Load() (*Config, error) {
	v := viper.New()

	// Set up environment variable support
	v.SetEnvPrefix("") // No prefix, use full names
	v.AutomaticEnv()

	// Set defaults
	v.SetDefault("deepseek_base_url", "https://api.deepseek.com/v1")
	v.SetDefault("alphavantage_base_url", "https://www.alphavantage.co/query")
	v.SetDefault("blog_base_url", "")
	v.SetDefault("deepseek_model", "deepseek-chat")
	// Eight daily slots, three hours apart, two minutes before the hour
	// so posts land near round clock times.
	v.SetDefault("posting_times", []string{
		"02:58", "05:58", "08:58", "11:58",
		"14:58", "17:58", "20:58", "23:58",
	})

	// Optionally read from config file if it exists
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.fxblog")

	// Read config file (ignore if not found)
	_ = v.ReadInConfig()

	// Bind environment variables
	v.BindEnv("deepseek_api_key", "DEEPSEEK_API_KEY")
	v.BindEnv("alphavantage_api_key", "ALPHAVANTAGE_API_KEY")
	v.BindEnv("blog_access_token", "BLOG_ACCESS_TOKEN")
	v.BindEnv("deepseek_base_url", "DEEPSEEK_BASE_URL")
	v.BindEnv("alphavantage_base_url", "ALPHAVANTAGE_BASE_URL")
	v.BindEnv("blog_base_url", "BLOG_BASE_URL")
	v.BindEnv("deepseek_model", "DEEPSEEK_MODEL")

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate required fields
	var missing []string
	if config.DeepSeekAPIKey == "" {
		missing = append(missing, "DEEPSEEK_API_KEY")
	}
	if config.AlphaVantageAPIKey == "" {
		missing = append(missing, "ALPHAVANTAGE_API_KEY")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	return config, nil
}
