package config

import (
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/steinunnb/vendorwatch/internal/payday"
)

// LoadPaydayConfig loads Payday API configuration from Viper and environment
// variables. It follows this precedence:
// 1. Viper configuration (from config file or VENDORWATCH_ env vars)
// 2. Direct environment variables (PAYDAY_*)
// 3. Default values
func LoadPaydayConfig() (payday.Config, error) {
	config := payday.Config{
		BaseURL:      viper.GetString("payday.base_url"),
		APIVersion:   viper.GetString("payday.api_version"),
		ClientID:     viper.GetString("payday.client_id"),
		ClientSecret: viper.GetString("payday.client_secret"),
		Timeout:      viper.GetDuration("payday.timeout"),
	}

	if config.BaseURL == "" {
		config.BaseURL = os.Getenv("PAYDAY_BASE_URL")
	}
	if config.ClientID == "" {
		config.ClientID = os.Getenv("PAYDAY_CLIENT_ID")
	}
	if config.ClientSecret == "" {
		config.ClientSecret = os.Getenv("PAYDAY_CLIENT_SECRET")
	}

	if err := config.Validate(); err != nil {
		return payday.Config{}, err
	}

	return config, nil
}

// CacheSettings describes the local statement cache.
type CacheSettings struct {
	Enabled bool
	Path    string
	TTL     time.Duration
}

// LoadCacheSettings loads statement cache configuration from Viper.
func LoadCacheSettings() (CacheSettings, error) {
	settings := CacheSettings{
		Enabled: true,
		Path:    ExpandPath(viper.GetString("cache.path")),
		TTL:     viper.GetDuration("cache.ttl"),
	}

	if viper.IsSet("cache.enabled") {
		settings.Enabled = viper.GetBool("cache.enabled")
	}
	if settings.Path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return CacheSettings{}, err
		}
		settings.Path = home + "/.cache/vendorwatch/statements.db"
	}
	if settings.TTL == 0 {
		settings.TTL = 24 * time.Hour
	}

	return settings, nil
}
