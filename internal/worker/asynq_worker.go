package worker

import (
	"context"
	"strings"

	"github.com/qingjiang-traffic/internal/logger"
	"github.com/qingjiang-traffic/internal/provider"
	"github.com/qingjiang-traffic/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskSubmissionCreated, c.handleSubmissionCreated)
}

// handleSubmissionCreated 新登记写入后重算统计并预热缓存
func (c *Consumer) handleSubmissionCreated(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil || c.Container == nil {
		logger.Debugw("worker_submission_created_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseSubmissionCreatedPayload(task)
	if err != nil {
		logger.Warnw("worker_submission_created_unmarshal_failed", "error", err)
		return err
	}
	if strings.TrimSpace(payload.SubmissionID) == "" {
		logger.Debugw("worker_submission_created_skip_invalid_payload")
		return nil
	}

	stats, err := c.SubmissionService.RefreshStatistics(ctx)
	if err != nil {
		logger.Warnw("worker_submission_created_refresh_failed",
			"submission_id", payload.SubmissionID,
			"error", err,
		)
		return err
	}
	logger.Infow("worker_submission_created",
		"submission_id", payload.SubmissionID,
		"vehicle_type", payload.VehicleType,
		"day", payload.Day,
		"today_count", stats.TodayCount,
		"total_count", stats.TotalCount,
	)
	return nil
}
