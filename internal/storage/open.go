package storage

import (
	"fmt"
	"strings"

	"github.com/qingjiang-traffic/internal/config"
	"github.com/qingjiang-traffic/internal/constants"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Open 按配置创建存储后端
func Open(cfg config.StorageConfig, db *gorm.DB, client *redis.Client, redisPrefix string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case constants.StorageBackendMemory:
		return NewMemoryBackend(cfg.MemoryQuota), nil
	case constants.StorageBackendFile:
		return NewFileBackend(cfg.FileDir)
	case "", constants.StorageBackendDatabase:
		if db == nil {
			return nil, fmt.Errorf("storage backend %q requires a database", constants.StorageBackendDatabase)
		}
		return NewGormBackend(db), nil
	case constants.StorageBackendRedis:
		if client == nil {
			return nil, fmt.Errorf("storage backend %q requires redis.enabled", constants.StorageBackendRedis)
		}
		return NewRedisBackend(client, redisPrefix), nil
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", cfg.Backend)
	}
}
