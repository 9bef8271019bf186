package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/qingjiang-traffic/internal/config"
	"github.com/qingjiang-traffic/internal/logger"
	"github.com/qingjiang-traffic/internal/models"
	"github.com/qingjiang-traffic/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService 后台管理员认证服务
type AuthService struct {
	cfg       *config.Config
	adminRepo repository.AdminRepository
}

// NewAuthService 创建认证服务实例
func NewAuthService(cfg *config.Config, adminRepo repository.AdminRepository) *AuthService {
	return &AuthService{
		cfg:       cfg,
		adminRepo: adminRepo,
	}
}

// HashPassword 使用 bcrypt 加密密码
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword 验证密码
func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// JWTClaims JWT 声明
type JWTClaims struct {
	AdminID      uint   `json:"admin_id"`
	Username     string `json:"username"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

func (s *AuthService) expireAfter() time.Duration {
	hours := s.cfg.JWT.ExpireHours
	if hours <= 0 {
		hours = 12
	}
	return time.Duration(hours) * time.Hour
}

// GenerateJWT 生成 JWT Token
func (s *AuthService) GenerateJWT(admin *models.Admin) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.expireAfter())

	claims := JWTClaims{
		AdminID:      admin.ID,
		Username:     admin.Username,
		TokenVersion: admin.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseJWT 解析 JWT Token
func (s *AuthService) ParseJWT(tokenString string) (*JWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}

// Authenticate 校验 Token 并确认管理员仍然有效
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*JWTClaims, error) {
	claims, err := s.ParseJWT(tokenString)
	if err != nil {
		return nil, ErrInvalidToken
	}
	admin, err := s.adminRepo.GetByID(claims.AdminID)
	if err != nil {
		return nil, err
	}
	if admin == nil || admin.TokenVersion != claims.TokenVersion {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Login 管理员登录
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.Admin, string, time.Time, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	admin, err := s.adminRepo.GetByUsername(username)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if admin == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if err := VerifyPassword(admin.PasswordHash, password); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			logger.Warnw("admin_password_verify_failed", "username", username, "error", err)
		}
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.GenerateJWT(admin)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	now := time.Now()
	admin.LastLoginAt = &now
	if err := s.adminRepo.Update(admin); err != nil {
		return nil, "", time.Time{}, err
	}
	logger.Infow("admin_login", "admin_id", admin.ID, "username", admin.Username)
	return admin, token, expiresAt, nil
}
