package admin

import (
	"errors"
	"time"

	"github.com/qingjiang-traffic/internal/http/response"
	"github.com/qingjiang-traffic/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token     string                 `json:"token"`
	User      map[string]interface{} `json:"user"`
	ExpiresAt string                 `json:"expires_at"`
}

// AdminLogin 管理员登录
func (h *Handler) AdminLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	admin, token, expiresAt, err := h.AuthService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			requestLog(c).Warnw("admin_login_rejected", "username", req.Username, "client_ip", c.ClientIP())
			respondError(c, response.CodeUnauthorized, "error.login_invalid", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.login_failed", err)
		return
	}

	response.Success(c, LoginResponse{
		Token: token,
		User: map[string]interface{}{
			"id":       admin.ID,
			"username": admin.Username,
		},
		ExpiresAt: expiresAt.Format(time.RFC3339),
	})
}

// GetAdminProfile 获取当前管理员信息
func (h *Handler) GetAdminProfile(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	admin, err := h.AdminRepo.GetByID(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	if admin == nil {
		respondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return
	}
	response.Success(c, admin)
}
