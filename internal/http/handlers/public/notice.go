package public

import (
	handlershared "github.com/qingjiang-traffic/internal/http/handlers/shared"
	"github.com/qingjiang-traffic/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetNotice 获取当前客户端的提示消息，已过期时返回 null
func (h *Handler) GetNotice(c *gin.Context) {
	notice, ok := h.NoticeBoard.Current(handlershared.ClientKey(c))
	if !ok {
		response.Success(c, gin.H{"notice": nil})
		return
	}
	response.Success(c, gin.H{"notice": notice})
}

// DismissNotice 立即关闭当前提示消息
func (h *Handler) DismissNotice(c *gin.Context) {
	h.NoticeBoard.Dismiss(handlershared.ClientKey(c))
	response.Success(c, nil)
}
