package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileBackend 每个槽对应目录下的一个 <key>.json 文件
type FileBackend struct {
	dir string
	mu  sync.Mutex
}

// NewFileBackend 创建文件后端并确保目录存在
func NewFileBackend(dir string) (*FileBackend, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = "data"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir failed: %w", err)
	}
	return &FileBackend{dir: dir}, nil
}

// Name 后端名称
func (b *FileBackend) Name() string {
	return "file"
}

// Path 返回槽对应的文件路径
func (b *FileBackend) Path(key string) string {
	safe := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(strings.TrimSpace(key))
	return filepath.Join(b.dir, safe+".json")
}

// Get 读取槽文件
func (b *FileBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	key, err := normalizeKey(key)
	if err != nil {
		return nil, false, wrapError("get", b, key, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, false, wrapError("get", b, key, err)
	}
	data, err := os.ReadFile(b.Path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, wrapError("get", b, key, err)
	}
	return data, true, nil
}

// Set 先写临时文件再原子替换
func (b *FileBackend) Set(ctx context.Context, key string, value []byte) error {
	key, err := normalizeKey(key)
	if err != nil {
		return wrapError("set", b, key, err)
	}
	if err := ctx.Err(); err != nil {
		return wrapError("set", b, key, err)
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	tmp, err := os.CreateTemp(b.dir, ".slot-*.tmp")
	if err != nil {
		return wrapError("set", b, key, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		cleanup()
		return wrapError("set", b, key, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return wrapError("set", b, key, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return wrapError("set", b, key, err)
	}
	if err := os.Rename(tmpName, b.Path(key)); err != nil {
		cleanup()
		return wrapError("set", b, key, err)
	}
	return nil
}
