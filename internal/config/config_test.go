package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steinunnb/vendorwatch/internal/common"
)

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("VENDORWATCH_TEST_DIR", "/var/data")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain path unchanged",
			in:   "/tmp/statements.db",
			want: "/tmp/statements.db",
		},
		{
			name: "tilde expands to home",
			in:   "~/cache/statements.db",
			want: filepath.Join(home, "cache", "statements.db"),
		},
		{
			name: "bare tilde expands to home",
			in:   "~",
			want: home,
		},
		{
			name: "environment variable expands",
			in:   "$VENDORWATCH_TEST_DIR/statements.db",
			want: "/var/data/statements.db",
		},
		{
			name: "empty stays empty",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}

func TestLoadPaydayConfig(t *testing.T) {
	t.Run("from viper", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)
		viper.Set("payday.client_id", "id-1")
		viper.Set("payday.client_secret", "secret-1")
		viper.Set("payday.timeout", "45s")

		cfg, err := LoadPaydayConfig()
		require.NoError(t, err)
		assert.Equal(t, "id-1", cfg.ClientID)
		assert.Equal(t, "secret-1", cfg.ClientSecret)
		assert.Equal(t, 45*time.Second, cfg.Timeout)
	})

	t.Run("environment fallback", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)
		t.Setenv("PAYDAY_CLIENT_ID", "env-id")
		t.Setenv("PAYDAY_CLIENT_SECRET", "env-secret")

		cfg, err := LoadPaydayConfig()
		require.NoError(t, err)
		assert.Equal(t, "env-id", cfg.ClientID)
		assert.Equal(t, "env-secret", cfg.ClientSecret)
	})

	t.Run("missing credentials", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)
		t.Setenv("PAYDAY_CLIENT_ID", "")
		t.Setenv("PAYDAY_CLIENT_SECRET", "")

		_, err := LoadPaydayConfig()
		assert.ErrorIs(t, err, common.ErrMissingCredentials)
	})
}

func TestLoadCacheSettings(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)
		home := t.TempDir()
		t.Setenv("HOME", home)

		settings, err := LoadCacheSettings()
		require.NoError(t, err)
		assert.True(t, settings.Enabled)
		assert.Equal(t, home+"/.cache/vendorwatch/statements.db", settings.Path)
		assert.Equal(t, 24*time.Hour, settings.TTL)
	})

	t.Run("explicit settings", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)
		viper.Set("cache.enabled", false)
		viper.Set("cache.path", "/tmp/vw.db")
		viper.Set("cache.ttl", "1h")

		settings, err := LoadCacheSettings()
		require.NoError(t, err)
		assert.False(t, settings.Enabled)
		assert.Equal(t, "/tmp/vw.db", settings.Path)
		assert.Equal(t, time.Hour, settings.TTL)
	})
}

func TestLoadSheetsConfig(t *testing.T) {
	t.Run("service account from viper", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)
		viper.Set("sheets.service_account_path", "/etc/vendorwatch/sa.json")

		cfg, err := LoadSheetsConfig()
		require.NoError(t, err)
		assert.Equal(t, "/etc/vendorwatch/sa.json", cfg.ServiceAccountPath)
		assert.Equal(t, "Vendor Review", cfg.SpreadsheetName)
	})

	t.Run("oauth from environment", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)
		t.Setenv("GOOGLE_SHEETS_CLIENT_ID", "cid")
		t.Setenv("GOOGLE_SHEETS_CLIENT_SECRET", "csecret")
		t.Setenv("GOOGLE_SHEETS_REFRESH_TOKEN", "rtok")
		t.Setenv("GOOGLE_SHEETS_SPREADSHEET_NAME", "Q2 Vendors")

		cfg, err := LoadSheetsConfig()
		require.NoError(t, err)
		assert.Equal(t, "cid", cfg.ClientID)
		assert.Equal(t, "Q2 Vendors", cfg.SpreadsheetName)
	})

	t.Run("no credentials fails validation", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)
		t.Setenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "")
		t.Setenv("GOOGLE_SHEETS_CLIENT_ID", "")
		t.Setenv("GOOGLE_SHEETS_CLIENT_SECRET", "")
		t.Setenv("GOOGLE_SHEETS_REFRESH_TOKEN", "")

		_, err := LoadSheetsConfig()
		assert.Error(t, err)
	})
}
