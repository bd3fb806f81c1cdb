// Package config はサーバーのアプリケーション設定を環境変数から読み込みます。
package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

const (
	defaultPort            = "8080"
	defaultCompanyCacheTTL = 30 * time.Second
	defaultFormSessionTTL  = 24 * time.Hour
	defaultRelayRetry      = 5 * time.Second
	defaultWriteRateLimit  = 60
)

// Config はHTTPサーバーとフィーチャー共通の設定です。
// DB・Redisの接続設定はそれぞれのplatformパッケージが読み込みます。
type Config struct {
	Port            string        // SERVER_PORT
	CompanyCacheTTL time.Duration // COMPANY_LIST_CACHE_TTL
	FormSessionTTL  time.Duration // FORM_SESSION_TTL
	RelayRetry      time.Duration // CHANGE_RELAY_RETRY
	SecureCookie    bool          // COOKIE_SECURE
	WriteRateLimit  int           // WRITE_RATE_LIMIT（1分あたり、0で無制限）
}

// LoadConfig は環境変数から設定を読み込みます。
// 不正な値は警告を出して既定値を使います。
func LoadConfig() Config {
	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = defaultPort
	}

	secure, err := strconv.ParseBool(os.Getenv("COOKIE_SECURE"))
	if err != nil && os.Getenv("COOKIE_SECURE") != "" {
		slog.Warn("invalid COOKIE_SECURE, using false", "value", os.Getenv("COOKIE_SECURE"))
	}

	return Config{
		Port:            port,
		CompanyCacheTTL: durationEnv("COMPANY_LIST_CACHE_TTL", defaultCompanyCacheTTL),
		FormSessionTTL:  durationEnv("FORM_SESSION_TTL", defaultFormSessionTTL),
		RelayRetry:      durationEnv("CHANGE_RELAY_RETRY", defaultRelayRetry),
		SecureCookie:    secure,
		WriteRateLimit:  intEnv("WRITE_RATE_LIMIT", defaultWriteRateLimit),
	}
}

// intEnv は0以上の整数の環境変数を読み込みます。
func intEnv(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		slog.Warn("invalid integer, using default", "key", key, "value", raw, "default", def)
		return def
	}
	return n
}

// durationEnv は "30s" や "24h" 形式の環境変数を読み込みます。
func durationEnv(key string, def time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration, using default", "key", key, "value", raw, "default", def)
		return def
	}
	return d
}
