package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/qingjiang-traffic/internal/config"
	"github.com/qingjiang-traffic/internal/constants"
	"github.com/qingjiang-traffic/internal/logger"

	"go.uber.org/zap"
)

// 运行模式
const (
	ModeAll    = "all"
	ModeAPI    = "api"
	ModeWorker = "worker"
)

// Options 应用启动选项
type Options struct {
	Config          *config.Config
	Logger          *zap.SugaredLogger
	Signals         []os.Signal
	ShutdownTimeout time.Duration
	Mode            string
}

// IsValidMode 判断运行模式是否受支持
func IsValidMode(mode string) bool {
	switch mode {
	case ModeAll, ModeAPI, ModeWorker:
		return true
	default:
		return false
	}
}

// validateModeStorage 独立 worker 进程无法看到 API 进程的内存存储
func validateModeStorage(cfg *config.Config, mode string) error {
	backend := strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))
	if mode == ModeWorker && backend == constants.StorageBackendMemory {
		return fmt.Errorf("storage backend %q cannot be shared with a standalone worker, use file, database or redis", backend)
	}
	return nil
}

// normalizeOptions 补齐默认参数
func normalizeOptions(opts Options) Options {
	if opts.Logger == nil {
		opts.Logger = logger.S()
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}
	if opts.Mode == "" {
		opts.Mode = ModeAll
	}
	return opts
}
