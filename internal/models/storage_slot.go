package models

import "time"

// StorageSlot 命名存储槽（键值对，值为序列化文本）
type StorageSlot struct {
	Key       string    `gorm:"primarykey;type:varchar(120)" json:"key"` // 槽名
	Value     string    `gorm:"type:text" json:"value"`                  // UTF-8 文本
	UpdatedAt time.Time `json:"updated_at"`                              // 最后写入时间
}

// TableName 指定表名
func (StorageSlot) TableName() string {
	return "storage_slots"
}
