package app

import (
	"errors"
	"fmt"

	"github.com/qingjiang-traffic/internal/config"
	"github.com/qingjiang-traffic/internal/logger"
	"github.com/qingjiang-traffic/internal/provider"
	"github.com/qingjiang-traffic/internal/router"
	"github.com/qingjiang-traffic/internal/worker"
)

// BuildRunner 构建服务运行器
func BuildRunner(cfg *config.Config, mode string) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if !IsValidMode(mode) {
		return nil, fmt.Errorf("unknown mode %q (expected all, api or worker)", mode)
	}
	if err := validateModeStorage(cfg, mode); err != nil {
		return nil, err
	}

	container := provider.NewContainer(cfg)

	var services []Service

	// 初始化 HTTP 服务
	if mode == ModeAll || mode == ModeAPI {
		engine := router.SetupRouter(cfg, container)
		httpService := NewHTTPService(cfg.Server.Addr(), engine)
		services = append(services, httpService)
	}

	// 初始化 Worker 服务，all 模式下未启用队列时只运行 HTTP
	if mode == ModeWorker || (mode == ModeAll && cfg.Queue.Enabled) {
		consumer := worker.NewConsumer(container)
		workerService, err := worker.NewService(&cfg.Queue, consumer)
		if err != nil {
			_ = container.Close()
			return nil, err
		}
		services = append(services, workerService)
	} else if mode == ModeAll {
		logger.Infow("worker_skipped_queue_disabled")
	}

	if len(services) == 0 {
		_ = container.Close()
		return nil, errors.New("no services initialized (check mode and config)")
	}

	runner := NewRunner(services...)
	runner.OnShutdown(container.Close)
	return runner, nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	runner, err := BuildRunner(opts.Config, opts.Mode)
	if err != nil {
		return err
	}

	opts.Logger.Infow("app_start",
		"addr", opts.Config.Server.Addr(),
		"mode", opts.Mode,
		"storage_backend", opts.Config.Storage.Backend,
	)
	return RunWithOptions(runner, opts)
}
