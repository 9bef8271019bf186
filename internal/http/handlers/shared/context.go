package shared

import (
	"strings"

	"github.com/qingjiang-traffic/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetContextUintWithKeys 从上下文读取 uint 值并统一处理错误响应。
func GetContextUintWithKeys(c *gin.Context, key, invalidKey, typeInvalidKey string) (uint, bool) {
	value, exists := c.Get(key)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, invalidKey, nil)
			return 0, false
		}
		return uint(v), true
	case float64:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, invalidKey, nil)
			return 0, false
		}
		return uint(v), true
	default:
		RespondError(c, response.CodeInternal, typeInvalidKey, nil)
		return 0, false
	}
}

// ClientIDHeader 前端页面标识请求头，用于区分提示消息归属
const ClientIDHeader = "X-Client-ID"

// ClientKey 返回客户端标识，缺省时使用客户端 IP。
func ClientKey(c *gin.Context) string {
	if c == nil {
		return ""
	}
	if id := strings.TrimSpace(c.GetHeader(ClientIDHeader)); id != "" {
		if len(id) > 64 {
			id = id[:64]
		}
		return id
	}
	return c.ClientIP()
}
