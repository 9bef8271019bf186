package storage

import (
	"context"
	"sync"
)

// MemoryBackend 进程内存储，可设置总容量以模拟浏览器存储配额
type MemoryBackend struct {
	mu    sync.RWMutex
	slots map[string][]byte
	quota int
}

// NewMemoryBackend 创建内存后端，quota<=0 表示不限制
func NewMemoryBackend(quota int) *MemoryBackend {
	return &MemoryBackend{
		slots: make(map[string][]byte),
		quota: quota,
	}
}

// Name 后端名称
func (b *MemoryBackend) Name() string {
	return "memory"
}

// Get 读取槽内容
func (b *MemoryBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	key, err := normalizeKey(key)
	if err != nil {
		return nil, false, wrapError("get", b, key, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, false, wrapError("get", b, key, err)
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	value, ok := b.slots[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

// Set 写入槽内容，超出容量时返回 ErrQuotaExceeded
func (b *MemoryBackend) Set(ctx context.Context, key string, value []byte) error {
	key, err := normalizeKey(key)
	if err != nil {
		return wrapError("set", b, key, err)
	}
	if err := ctx.Err(); err != nil {
		return wrapError("set", b, key, err)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.quota > 0 {
		used := len(key) + len(value)
		for k, v := range b.slots {
			if k == key {
				continue
			}
			used += len(k) + len(v)
		}
		if used > b.quota {
			return wrapError("set", b, key, ErrQuotaExceeded)
		}
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	b.slots[key] = stored
	return nil
}
