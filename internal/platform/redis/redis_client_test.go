package redis

import (
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewRedisClient_NotConfigured はREDIS_HOST未設定の場合にErrNotConfiguredを返すことを検証します。
func TestNewRedisClient_NotConfigured(t *testing.T) {
	t.Setenv("REDIS_HOST", "")

	rdb, err := NewRedisClient()

	assert.Nil(t, rdb)
	assert.True(t, errors.Is(err, ErrNotConfigured))
}

// TestNewRedisClient はminiredisへの接続と設定の読み込みを検証します。
func TestNewRedisClient(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	t.Setenv("REDIS_HOST", mr.Host())
	t.Setenv("REDIS_PORT", mr.Port())
	t.Setenv("REDIS_PASSWORD", "")

	rdb, err := NewRedisClient()
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	assert.Equal(t, mr.Addr(), rdb.Options().Addr)
}

// TestNewRedisClient_Unreachable は接続できない場合にエラーを返すことを検証します。
func TestNewRedisClient_Unreachable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	host, port := mr.Host(), mr.Port()
	mr.Close()

	t.Setenv("REDIS_HOST", host)
	t.Setenv("REDIS_PORT", port)

	rdb, err := NewRedisClient()

	assert.Nil(t, rdb)
	assert.Error(t, err)
}

// TestLoadConfigFromEnv_DefaultPort はREDIS_PORTの既定値を検証します。
func TestLoadConfigFromEnv_DefaultPort(t *testing.T) {
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "")

	cfg := LoadConfigFromEnv()

	assert.Equal(t, "cache:6379", cfg.Addr())
}
