package router

import (
	"fmt"

	"github.com/qingjiang-traffic/internal/cache"
	"github.com/qingjiang-traffic/internal/config"
	adminhandlers "github.com/qingjiang-traffic/internal/http/handlers/admin"
	publichandlers "github.com/qingjiang-traffic/internal/http/handlers/public"
	"github.com/qingjiang-traffic/internal/http/response"
	"github.com/qingjiang-traffic/internal/logger"
	"github.com/qingjiang-traffic/internal/provider"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := cache.NormalizePrefix(cfg.Redis.Prefix)
	redisClient := cache.Client()
	submitRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:submit", redisPrefix),
		WindowSeconds: cfg.Security.SubmitRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.SubmitRateLimit.MaxRequests,
	}
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxRequests,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))
	// 导出文件本身已压缩或体积较小，不再二次压缩
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{
		"/metrics",
		"/api/v1/admin/submissions/export",
	})))

	r.GET("/healthz", func(ctx *gin.Context) {
		cacheStatus := "disabled"
		if cache.Enabled() {
			cacheStatus = "ok"
			if err := cache.Ping(ctx.Request.Context()); err != nil {
				cacheStatus = "unavailable"
			}
		}
		response.Success(ctx, gin.H{
			"status":  "ok",
			"storage": c.StorageBackend.Name(),
			"cache":   cacheStatus,
			"queue":   c.QueueClient.Enabled(),
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口（登记表单）
		public := apiV1.Group("/public")
		{
			public.GET("/options", publicHandler.GetOptions)
			public.GET("/statistics", publicHandler.GetStatistics)
			public.POST("/submissions", RateLimitMiddleware(redisClient, submitRule, KeyByClient), publicHandler.Submit)
			public.POST("/images/preview", publicHandler.PreviewImages)
			public.GET("/notice", publicHandler.GetNotice)
			public.DELETE("/notice", publicHandler.DismissNotice)
		}

		// 管理员登录（无需鉴权）
		apiV1.POST("/admin/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIPAndJSONField("username")), adminHandler.AdminLogin)

		// 管理员接口（需鉴权）
		authorized := apiV1.Group("/admin")
		authorized.Use(AdminJWTAuthMiddleware(c.AuthService))
		{
			authorized.GET("/profile", adminHandler.GetAdminProfile)
			authorized.GET("/statistics", adminHandler.GetAdminStatistics)
			authorized.GET("/submissions", adminHandler.GetAdminSubmissions)
			authorized.GET("/submissions/export", adminHandler.ExportSubmissions)
		}
	}

	return r
}
