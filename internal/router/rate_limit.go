package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	handlershared "github.com/qingjiang-traffic/internal/http/handlers/shared"
	"github.com/qingjiang-traffic/internal/http/response"
	"github.com/qingjiang-traffic/internal/i18n"
	"github.com/qingjiang-traffic/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitKeyFunc 生成限流 key 的函数
type RateLimitKeyFunc func(*gin.Context) string

// RateLimitRule 固定窗口限流规则
type RateLimitRule struct {
	Prefix        string
	WindowSeconds int
	MaxRequests   int
	MessageKey    string
}

// Enabled 窗口与次数均为正数时生效
func (r RateLimitRule) Enabled() bool {
	return r.WindowSeconds > 0 && r.MaxRequests > 0
}

var rateLimitScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("TTL", KEYS[1])
return {current, ttl}
`)

// RateLimitMiddleware Redis 频率限制中间件，未启用 Redis 时放行
func RateLimitMiddleware(client *redis.Client, rule RateLimitRule, keyFunc RateLimitKeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil || !rule.Enabled() {
			c.Next()
			return
		}

		key := ""
		if keyFunc != nil {
			key = strings.TrimSpace(keyFunc(c))
		}
		if key == "" {
			key = c.ClientIP()
		}
		if rule.Prefix != "" {
			key = fmt.Sprintf("%s:%s", rule.Prefix, key)
		}

		count, ttlSeconds, err := runRateLimit(c, client, key, rule.WindowSeconds)
		if err != nil {
			logger.Warnw("rate_limit_unavailable", "key", key, "error", err)
			msg := i18n.T(i18n.ResolveLocale(c), "error.rate_limit_unavailable")
			response.Error(c, response.CodeInternal, msg)
			c.Abort()
			return
		}
		if count > int64(rule.MaxRequests) {
			msgKey := strings.TrimSpace(rule.MessageKey)
			if msgKey == "" {
				msgKey = "error.rate_limited"
			}
			msg := i18n.Sprintf(i18n.ResolveLocale(c), msgKey, retryAfterSeconds(ttlSeconds, rule.WindowSeconds))
			response.Error(c, response.CodeTooManyRequests, msg)
			c.Abort()
			return
		}

		c.Next()
	}
}

func runRateLimit(c *gin.Context, client *redis.Client, key string, windowSeconds int) (int64, int64, error) {
	values, err := rateLimitScript.Run(c.Request.Context(), client, []string{key}, windowSeconds).Int64Slice()
	if err != nil {
		return 0, 0, err
	}
	if len(values) < 2 {
		return 0, 0, fmt.Errorf("unexpected rate limit reply: %v", values)
	}
	return values[0], values[1], nil
}

func retryAfterSeconds(ttlSeconds int64, windowSeconds int) int {
	wait := int(ttlSeconds)
	if wait < 1 {
		wait = windowSeconds
	}
	if wait < 1 {
		wait = 1
	}
	return wait
}

// KeyByIP 使用 IP 作为限流 key
func KeyByIP(c *gin.Context) string {
	return c.ClientIP()
}

// KeyByClient 使用客户端标识与 IP 作为限流 key
func KeyByClient(c *gin.Context) string {
	client := handlershared.ClientKey(c)
	ip := c.ClientIP()
	if client == "" || client == ip {
		return ip
	}
	return fmt.Sprintf("%s|%s", client, ip)
}

// KeyByIPAndJSONField 使用 IP + JSON 字段作为限流 key
func KeyByIPAndJSONField(field string) RateLimitKeyFunc {
	return func(c *gin.Context) string {
		value := strings.ToLower(strings.TrimSpace(readJSONField(c, field)))
		if value == "" {
			return c.ClientIP()
		}
		return fmt.Sprintf("%s|%s", value, c.ClientIP())
	}
}

func readJSONField(c *gin.Context, field string) string {
	if c == nil || c.Request == nil || c.Request.Body == nil {
		return ""
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return ""
	}
	c.Request.Body = io.NopCloser(bytes.NewBuffer(body))
	if len(body) == 0 {
		return ""
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if text, ok := payload[field].(string); ok {
		return strings.TrimSpace(text)
	}
	return ""
}
