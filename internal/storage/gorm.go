package storage

import (
	"context"
	"errors"
	"time"

	"github.com/qingjiang-traffic/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBackend 使用 storage_slots 表保存槽内容
type GormBackend struct {
	db *gorm.DB
}

// NewGormBackend 创建数据库后端
func NewGormBackend(db *gorm.DB) *GormBackend {
	return &GormBackend{db: db}
}

// Name 后端名称
func (b *GormBackend) Name() string {
	return "database"
}

// Get 读取槽记录
func (b *GormBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	key, err := normalizeKey(key)
	if err != nil {
		return nil, false, wrapError("get", b, key, err)
	}
	if b.db == nil {
		return nil, false, wrapError("get", b, key, errors.New("database not initialized"))
	}
	var slot models.StorageSlot
	if err := b.db.WithContext(ctx).Where("key = ?", key).First(&slot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, wrapError("get", b, key, err)
	}
	return []byte(slot.Value), true, nil
}

// Set 按主键 upsert 槽记录
func (b *GormBackend) Set(ctx context.Context, key string, value []byte) error {
	key, err := normalizeKey(key)
	if err != nil {
		return wrapError("set", b, key, err)
	}
	if b.db == nil {
		return wrapError("set", b, key, errors.New("database not initialized"))
	}
	slot := models.StorageSlot{
		Key:       key,
		Value:     string(value),
		UpdatedAt: time.Now(),
	}
	err = b.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&slot).Error
	return wrapError("set", b, key, err)
}
