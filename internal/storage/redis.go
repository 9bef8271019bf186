package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// RedisBackend 将槽保存为 Redis 字符串键（无过期时间）
type RedisBackend struct {
	client *redis.Client
	prefix string
}

// NewRedisBackend 创建 Redis 后端
func NewRedisBackend(client *redis.Client, prefix string) *RedisBackend {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "qj"
	}
	return &RedisBackend{client: client, prefix: prefix}
}

// Name 后端名称
func (b *RedisBackend) Name() string {
	return "redis"
}

func (b *RedisBackend) redisKey(key string) string {
	return fmt.Sprintf("%s:slot:%s", b.prefix, key)
}

// Get 读取槽内容
func (b *RedisBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	key, err := normalizeKey(key)
	if err != nil {
		return nil, false, wrapError("get", b, key, err)
	}
	if b.client == nil {
		return nil, false, wrapError("get", b, key, errors.New("redis client not initialized"))
	}
	val, err := b.client.Get(ctx, b.redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, wrapError("get", b, key, err)
	}
	return val, true, nil
}

// Set 写入槽内容
func (b *RedisBackend) Set(ctx context.Context, key string, value []byte) error {
	key, err := normalizeKey(key)
	if err != nil {
		return wrapError("set", b, key, err)
	}
	if b.client == nil {
		return wrapError("set", b, key, errors.New("redis client not initialized"))
	}
	return wrapError("set", b, key, b.client.Set(ctx, b.redisKey(key), value, 0).Err())
}
