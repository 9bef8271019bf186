// Package i18n 提供接口提示语的多语言文案。
package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	LocaleZH = "zh-CN"
	LocaleTW = "zh-TW"
	LocaleEN = "en-US"

	// DefaultLocale 未识别语言时使用简体中文
	DefaultLocale = LocaleZH
)

// T 返回 key 对应的文案，缺失时依次回退到默认语言与 key 本身
func T(locale, key string) string {
	if table, ok := messages[NormalizeLocale(locale)]; ok {
		if msg, ok := table[key]; ok {
			return msg
		}
	}
	if msg, ok := messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 使用文案作为格式串
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}

// ResolveLocale 依次读取 lang 查询参数与 Accept-Language 请求头
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return DefaultLocale
	}
	if lang := strings.TrimSpace(c.Query("lang")); lang != "" {
		return NormalizeLocale(lang)
	}
	header := c.GetHeader("Accept-Language")
	if header == "" {
		return DefaultLocale
	}
	first := strings.Split(header, ",")[0]
	first = strings.TrimSpace(strings.Split(first, ";")[0])
	return NormalizeLocale(first)
}

// NormalizeLocale 归一化语言标识
func NormalizeLocale(locale string) string {
	l := strings.ToLower(strings.TrimSpace(locale))
	switch {
	case strings.HasPrefix(l, "zh-tw"), strings.HasPrefix(l, "zh-hk"), strings.HasPrefix(l, "zh-mo"), strings.HasPrefix(l, "zh-hant"):
		return LocaleTW
	case strings.HasPrefix(l, "en"):
		return LocaleEN
	default:
		return LocaleZH
	}
}
