//go:build integration
// +build integration

package repository

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/qingjiang-traffic/internal/models"
	"github.com/qingjiang-traffic/internal/storage"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := []interface{}{&models.StorageSlot{}, &models.Admin{}}
	_ = db.Migrator().DropTable(cleanupModels...)

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func TestPostgresSlotSubmissionRepository(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	ctx := context.Background()

	repo := NewSubmissionRepository(storage.NewGormBackend(db), testSlotKey, shanghai)
	for i := 0; i < 3; i++ {
		if err := repo.Append(ctx, newRecord(i)); err != nil {
			t.Fatalf("append %d failed: %v", i, err)
		}
	}

	records, err := repo.ReadAll(ctx)
	if err != nil {
		t.Fatalf("read all failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("record count want 3 got %d", len(records))
	}
	for i, record := range records {
		if record.SubmissionID != newRecord(i).SubmissionID {
			t.Fatalf("record %d out of order: %s", i, record.SubmissionID)
		}
	}

	var slots int64
	if err := db.Model(&models.StorageSlot{}).Count(&slots).Error; err != nil {
		t.Fatalf("count slots failed: %v", err)
	}
	if slots != 1 {
		t.Fatalf("all records should live in one slot, got %d rows", slots)
	}
}

func TestPostgresAdminRepository(t *testing.T) {
	db := setupPostgresIntegrationDB(t)

	if err := models.InitDefaultAdmin(db, "admin", "integration-pass-123"); err != nil {
		t.Fatalf("init default admin failed: %v", err)
	}
	admin, err := NewAdminRepository(db).GetByUsername("admin")
	if err != nil {
		t.Fatalf("get admin failed: %v", err)
	}
	if admin == nil {
		t.Fatalf("default admin should exist")
	}
}
