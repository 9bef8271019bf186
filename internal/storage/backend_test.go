package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/qingjiang-traffic/internal/config"
	"github.com/qingjiang-traffic/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newSQLiteBackend(t *testing.T) *GormBackend {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.StorageSlot{}); err != nil {
		t.Fatalf("migrate storage slot failed: %v", err)
	}
	return NewGormBackend(db)
}

func newFileBackend(t *testing.T) *FileBackend {
	t.Helper()
	backend, err := NewFileBackend(t.TempDir())
	if err != nil {
		t.Fatalf("create file backend failed: %v", err)
	}
	return backend
}

func TestBackendsRoundTrip(t *testing.T) {
	cases := []struct {
		name    string
		backend func(t *testing.T) Backend
	}{
		{"memory", func(t *testing.T) Backend { return NewMemoryBackend(0) }},
		{"file", func(t *testing.T) Backend { return newFileBackend(t) }},
		{"database", func(t *testing.T) Backend { return newSQLiteBackend(t) }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			backend := tc.backend(t)

			if _, found, err := backend.Get(ctx, "trafficSubmissions"); err != nil || found {
				t.Fatalf("absent slot want found=false err=nil, got found=%v err=%v", found, err)
			}
			if err := backend.Set(ctx, "trafficSubmissions", []byte(`[{"name":"张三"}]`)); err != nil {
				t.Fatalf("first set failed: %v", err)
			}
			if err := backend.Set(ctx, "trafficSubmissions", []byte(`[{"name":"李四"}]`)); err != nil {
				t.Fatalf("overwrite failed: %v", err)
			}
			got, found, err := backend.Get(ctx, "trafficSubmissions")
			if err != nil || !found {
				t.Fatalf("get after set failed: found=%v err=%v", found, err)
			}
			if string(got) != `[{"name":"李四"}]` {
				t.Fatalf("unexpected slot value: %s", got)
			}
		})
	}
}

func TestMemoryBackendQuota(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend(16)

	if err := backend.Set(ctx, "k", []byte("0123456789")); err != nil {
		t.Fatalf("set within quota failed: %v", err)
	}
	err := backend.Set(ctx, "k", []byte("0123456789abcdefghij"))
	if err == nil {
		t.Fatalf("expected quota error")
	}
	if !errors.Is(err, ErrQuotaExceeded) || !errors.Is(err, ErrStorage) {
		t.Fatalf("quota error should match ErrQuotaExceeded and ErrStorage, got %v", err)
	}
	var se *StorageError
	if !errors.As(err, &se) || se.Op != "set" || se.Backend != "memory" || se.Key != "k" {
		t.Fatalf("unexpected storage error detail: %#v", err)
	}

	got, _, _ := backend.Get(ctx, "k")
	if string(got) != "0123456789" {
		t.Fatalf("rejected write must keep previous value, got %s", got)
	}
}

func TestMemoryBackendReturnsCopies(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend(0)
	value := []byte("abc")
	if err := backend.Set(ctx, "k", value); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	value[0] = 'x'
	got, _, _ := backend.Get(ctx, "k")
	got[1] = 'y'
	again, _, _ := backend.Get(ctx, "k")
	if string(again) != "abc" {
		t.Fatalf("backend should not alias caller buffers, got %s", again)
	}
}

func TestEmptyKeyRejected(t *testing.T) {
	err := NewMemoryBackend(0).Set(context.Background(), "  ", []byte("x"))
	if !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("empty key should be rejected, got %v", err)
	}
}

func TestFileBackendWriteFailureIsStorageError(t *testing.T) {
	backend := newFileBackend(t)
	if err := os.RemoveAll(backend.dir); err != nil {
		t.Fatalf("remove dir failed: %v", err)
	}
	err := backend.Set(context.Background(), "trafficSubmissions", []byte("[]"))
	if !errors.Is(err, ErrStorage) {
		t.Fatalf("write into missing dir should be a storage error, got %v", err)
	}
}

func TestFileBackendPathSanitised(t *testing.T) {
	backend := newFileBackend(t)
	path := backend.Path("../etc/passwd")
	if strings.Contains(strings.TrimPrefix(path, backend.dir), "..") {
		t.Fatalf("path should not escape storage dir: %s", path)
	}
}

func TestRedisBackendWithoutClient(t *testing.T) {
	backend := NewRedisBackend(nil, "")
	if _, _, err := backend.Get(context.Background(), "k"); !errors.Is(err, ErrStorage) {
		t.Fatalf("nil client get should fail with storage error, got %v", err)
	}
	if err := backend.Set(context.Background(), "k", nil); !errors.Is(err, ErrStorage) {
		t.Fatalf("nil client set should fail with storage error, got %v", err)
	}
	if backend.redisKey("k") != "qj:slot:k" {
		t.Fatalf("unexpected redis key: %s", backend.redisKey("k"))
	}
}

func TestOpen(t *testing.T) {
	if _, err := Open(config.StorageConfig{Backend: "memory"}, nil, nil, ""); err != nil {
		t.Fatalf("memory backend should open without deps: %v", err)
	}
	if _, err := Open(config.StorageConfig{Backend: "database"}, nil, nil, ""); err == nil {
		t.Fatalf("database backend without db should fail")
	}
	if _, err := Open(config.StorageConfig{Backend: "redis"}, nil, nil, ""); err == nil {
		t.Fatalf("redis backend without client should fail")
	}
	if _, err := Open(config.StorageConfig{Backend: "s3"}, nil, nil, ""); err == nil {
		t.Fatalf("unknown backend should fail")
	}
	backend, err := Open(config.StorageConfig{Backend: "file", FileDir: t.TempDir()}, nil, nil, "")
	if err != nil || backend.Name() != "file" {
		t.Fatalf("file backend open failed: %v", err)
	}
}
