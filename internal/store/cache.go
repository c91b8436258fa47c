package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "shortlink:"

// CachedLink 重定向所需的最小链接信息
type CachedLink struct {
	ID             uint      `json:"id"`
	DestinationURL string    `json:"destination_url"`
	CreatedAt      time.Time `json:"created_at"`
}

// Cache 短路径到目标地址的 Redis 缓存。未配置 Redis 时所有操作都是空操作。
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewCache 创建缓存，rdb 可以为 nil
func NewCache(rdb *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Cache{rdb: rdb, ttl: ttl}
}

func (c *Cache) enabled() bool {
	return c != nil && c.rdb != nil
}

// Get 读取缓存
func (c *Cache) Get(ctx context.Context, path string) (CachedLink, bool) {
	var link CachedLink
	if !c.enabled() {
		return link, false
	}
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	val, err := c.rdb.Get(ctx, cacheKeyPrefix+path).Bytes()
	if err != nil {
		return link, false
	}
	if err := json.Unmarshal(val, &link); err != nil {
		return link, false
	}
	return link, true
}

// Set 写入缓存
func (c *Cache) Set(ctx context.Context, path string, link CachedLink) error {
	if !c.enabled() {
		return nil
	}
	data, err := json.Marshal(link)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return c.rdb.Set(ctx, cacheKeyPrefix+path, data, c.ttl).Err()
}

// Invalidate 删除缓存，链接被禁用或删除时调用
func (c *Cache) Invalidate(ctx context.Context, path string) error {
	if !c.enabled() {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return c.rdb.Del(ctx, cacheKeyPrefix+path).Err()
}
