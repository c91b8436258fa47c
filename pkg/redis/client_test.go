package redis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_NoHost(t *testing.T) {
	rdb, err := NewClient(&Config{})
	require.NoError(t, err)
	assert.Nil(t, rdb)
}

func TestOptions(t *testing.T) {
	opts := options(&Config{Host: "cache", Port: 6380, DB: 2, PoolSize: 64, Timeout: 2 * time.Second})
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, 64, opts.PoolSize)
	assert.Equal(t, 2*time.Second, opts.DialTimeout)
	assert.Equal(t, 2*time.Second, opts.ReadTimeout)
	assert.Equal(t, 2*time.Second, opts.WriteTimeout)

	opts = options(&Config{Host: "cache", Port: 6379})
	assert.Equal(t, defaultPoolSize, opts.PoolSize)
	assert.Equal(t, defaultTimeout, opts.DialTimeout)
}

func TestNewClient_Unreachable(t *testing.T) {
	// 端口 1 上没有 Redis，PING 失败时返回错误而不是半初始化的客户端
	rdb, err := NewClient(&Config{Host: "127.0.0.1", Port: 1, Timeout: 200 * time.Millisecond})
	assert.Error(t, err)
	assert.Nil(t, rdb)
}
