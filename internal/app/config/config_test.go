package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestLoadConfig は環境変数の読み込みと既定値をテーブル駆動テストで検証します。
func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want Config
	}{
		{
			name: "defaults",
			env:  map[string]string{},
			want: Config{
				Port:            "8080",
				CompanyCacheTTL: 30 * time.Second,
				FormSessionTTL:  24 * time.Hour,
				RelayRetry:      5 * time.Second,
				WriteRateLimit:  60,
			},
		},
		{
			name: "custom values",
			env: map[string]string{
				"SERVER_PORT":            "9000",
				"COMPANY_LIST_CACHE_TTL": "1m",
				"FORM_SESSION_TTL":       "2h",
				"CHANGE_RELAY_RETRY":     "10s",
				"COOKIE_SECURE":          "true",
				"WRITE_RATE_LIMIT":       "0",
			},
			want: Config{
				Port:            "9000",
				CompanyCacheTTL: time.Minute,
				FormSessionTTL:  2 * time.Hour,
				RelayRetry:      10 * time.Second,
				SecureCookie:    true,
				WriteRateLimit:  0,
			},
		},
		{
			name: "invalid values fall back to defaults",
			env: map[string]string{
				"COMPANY_LIST_CACHE_TTL": "soon",
				"FORM_SESSION_TTL":       "-1h",
				"COOKIE_SECURE":          "maybe",
				"WRITE_RATE_LIMIT":       "-5",
			},
			want: Config{
				Port:            "8080",
				CompanyCacheTTL: 30 * time.Second,
				FormSessionTTL:  24 * time.Hour,
				RelayRetry:      5 * time.Second,
				WriteRateLimit:  60,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"SERVER_PORT", "COMPANY_LIST_CACHE_TTL", "FORM_SESSION_TTL", "CHANGE_RELAY_RETRY", "COOKIE_SECURE", "WRITE_RATE_LIMIT"} {
				t.Setenv(key, tt.env[key])
			}

			assert.Equal(t, tt.want, LoadConfig())
		})
	}
}
