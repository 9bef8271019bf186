package public

import (
	"errors"

	handlershared "github.com/qingjiang-traffic/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func matchMappedError(err error, rules []mappedHandlerError) (mappedHandlerError, bool) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			return rule, true
		}
	}
	return mappedHandlerError{}, false
}
