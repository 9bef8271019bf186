package worker

import (
	"context"
	"errors"
	"time"

	"github.com/qingjiang-traffic/internal/cache"
	"github.com/qingjiang-traffic/internal/config"
	"github.com/qingjiang-traffic/internal/logger"
	"github.com/qingjiang-traffic/internal/queue"

	"github.com/hibiken/asynq"
)

const (
	// 统计缓存 TTL 为 30 秒，预热间隔略短于 TTL
	statisticsWarmInterval = 25 * time.Second
)

// Service 异步队列服务
type Service struct {
	name     string
	server   *asynq.Server
	mux      *asynq.ServeMux
	consumer *Consumer
}

// NewService 创建异步队列服务
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		name:     "worker",
		server:   server,
		mux:      mux,
		consumer: consumer,
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.consumer != nil && s.consumer.Container != nil && cache.Enabled() {
		go s.runStatisticsWarmLoop(ctx, statisticsWarmInterval)
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

// runStatisticsWarmLoop 定期重算统计，使前台读取始终命中缓存
func (s *Service) runStatisticsWarmLoop(ctx context.Context, interval time.Duration) {
	if s == nil || s.consumer == nil || s.consumer.SubmissionService == nil {
		return
	}
	runOnce := func() {
		if _, err := s.consumer.SubmissionService.RefreshStatistics(ctx); err != nil {
			logger.Warnw("worker_statistics_warm_failed", "error", err)
		}
	}
	runOnce()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}
