package models

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	"github.com/qingjiang-traffic/internal/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// InitDefaultAdmin 初始化默认管理员账号，已存在管理员时跳过
func InitDefaultAdmin(db *gorm.DB, username, password string) error {
	if db == nil {
		db = DB
	}
	var count int64
	if err := db.Model(&Admin{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	username = strings.TrimSpace(username)
	if username == "" {
		username = "admin"
	}
	generated := false
	if password == "" {
		buf := make([]byte, 8)
		if _, err := rand.Read(buf); err != nil {
			return err
		}
		password = hex.EncodeToString(buf)
		generated = true
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := Admin{
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	if generated {
		logger.Warnw("default_admin_created_with_generated_password", "username", username, "password", password)
		logger.Warnw("default_admin_password_change_required", "username", username)
	} else {
		logger.Warnw("default_admin_created", "username", username, "password_hidden", true)
	}
	return nil
}
