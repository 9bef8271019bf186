// Package storage 提供命名存储槽的读写后端。
//
// 每个槽保存一段 UTF-8 文本，读写均为整体替换，不提供追加或事务语义。
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrStorage 所有写入失败都可通过 errors.Is 匹配该错误
	ErrStorage = errors.New("storage error")
	// ErrQuotaExceeded 写入内容超出后端容量限制
	ErrQuotaExceeded = errors.New("storage quota exceeded")
	// ErrInvalidKey 槽名为空
	ErrInvalidKey = errors.New("storage key is empty")
)

// Backend 存储槽后端
type Backend interface {
	// Name 后端名称，用于日志与错误
	Name() string
	// Get 读取槽内容，槽不存在时 found 为 false
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	// Set 整体替换槽内容
	Set(ctx context.Context, key string, value []byte) error
}

// StorageError 存储读写错误
type StorageError struct {
	Op      string
	Backend string
	Key     string
	Err     error
}

func (e *StorageError) Error() string {
	msg := fmt.Sprintf("storage %s %s[%s]", e.Op, e.Backend, e.Key)
	if e.Err == nil {
		return msg
	}
	return msg + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is 使 errors.Is(err, ErrStorage) 对任意 StorageError 成立
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

func wrapError(op string, backend Backend, key string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	name := ""
	if backend != nil {
		name = backend.Name()
	}
	return &StorageError{Op: op, Backend: name, Key: key, Err: err}
}

func normalizeKey(key string) (string, error) {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return "", ErrInvalidKey
	}
	return trimmed, nil
}
