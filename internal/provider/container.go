package provider

import (
	"time"

	"github.com/qingjiang-traffic/internal/cache"
	"github.com/qingjiang-traffic/internal/config"
	"github.com/qingjiang-traffic/internal/constants"
	"github.com/qingjiang-traffic/internal/logger"
	"github.com/qingjiang-traffic/internal/models"
	"github.com/qingjiang-traffic/internal/queue"
	"github.com/qingjiang-traffic/internal/repository"
	"github.com/qingjiang-traffic/internal/service"
	"github.com/qingjiang-traffic/internal/storage"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	Location    *time.Location

	// Storage
	StorageBackend storage.Backend

	// Repositories
	AdminRepo      repository.AdminRepository
	SubmissionRepo repository.SubmissionRepository

	// Services
	AuthService       *service.AuthService
	SubmissionService *service.SubmissionService
	ImageService      *service.ImageService
	ExportService     *service.ExportService
	NoticeBoard       *service.NoticeBoard
}

// NewContainer 使用全局数据库初始化容器
func NewContainer(cfg *config.Config) *Container {
	c, err := NewContainerWithDB(cfg, models.DB)
	if err != nil {
		logger.Errorw("provider_init_failed", "error", err)
		panic(err)
	}
	return c
}

// NewContainerWithDB 使用指定数据库初始化容器
func NewContainerWithDB(cfg *config.Config, db *gorm.DB) (*Container, error) {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		logger.Errorw("provider_init_queue_client_failed", "error", err)
		queueClient = nil
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
		Location:    cfg.App.Location(),
	}

	// 1. 初始化存储槽
	backend, err := storage.Open(cfg.Storage, db, cache.Client(), cache.Prefix())
	if err != nil {
		return nil, err
	}
	c.StorageBackend = backend

	// 2. 初始化 Repositories
	c.initRepositories(db)

	// 3. 初始化 Services
	c.initServices()

	logger.Infow("provider_initialized",
		"storage_backend", backend.Name(),
		"slot_key", c.slotKey(),
		"timezone", c.Location.String(),
		"queue_enabled", c.QueueClient.Enabled(),
		"cache_enabled", cache.Enabled(),
	)
	return c, nil
}

func (c *Container) slotKey() string {
	if c.Config.Storage.SlotKey == "" {
		return constants.DefaultSubmissionSlotKey
	}
	return c.Config.Storage.SlotKey
}

func (c *Container) initRepositories(db *gorm.DB) {
	c.AdminRepo = repository.NewAdminRepository(db)
	c.SubmissionRepo = repository.NewSubmissionRepository(c.StorageBackend, c.slotKey(), c.Location)
}

func (c *Container) initServices() {
	cfg := c.Config
	previewOpts := service.PreviewOptionsFromConfig(cfg.Upload)

	c.AuthService = service.NewAuthService(cfg, c.AdminRepo)
	c.ImageService = service.NewImageService(previewOpts)
	c.SubmissionService = service.NewSubmissionService(
		c.SubmissionRepo,
		c.QueueClient,
		service.NewIDGenerator(),
		c.Location,
		c.ImageService.MaxImages(),
	)
	c.ExportService = service.NewExportService(c.SubmissionRepo, cfg.Export.CSVEncoding)
	c.NoticeBoard = service.NewNoticeBoard(cfg.Notice.DismissAfter(), nil)
}

// Close 释放容器持有的资源
func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.NoticeBoard != nil {
		c.NoticeBoard.Close()
	}
	return c.QueueClient.Close()
}
