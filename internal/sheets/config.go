// Package sheets writes batch review reports to Google Sheets.
package sheets

import (
	"time"

	"github.com/steinunnb/vendorwatch/internal/common"
)

// Config holds the configuration for the Google Sheets writer.
type Config struct {
	ClientID           string
	ClientSecret       string
	RefreshToken       string
	ServiceAccountPath string
	SpreadsheetID      string
	SpreadsheetName    string
	RetryAttempts      int
	RetryDelay         time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		SpreadsheetName: "Vendor Review",
		RetryAttempts:   3,
		RetryDelay:      time.Second,
	}
}

// Validate checks that at least one authentication method is configured.
func (c *Config) Validate() error {
	if c.ServiceAccountPath == "" && (c.ClientID == "" || c.ClientSecret == "" || c.RefreshToken == "") {
		return common.NewUserError(
			"missing Google Sheets authentication: provide either a service account path or OAuth2 credentials",
			common.ErrMissingConfig)
	}
	return nil
}
