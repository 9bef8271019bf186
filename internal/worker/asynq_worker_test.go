package worker

import (
	"context"
	"testing"
	"time"

	"github.com/qingjiang-traffic/internal/config"
	"github.com/qingjiang-traffic/internal/provider"
	"github.com/qingjiang-traffic/internal/queue"
	"github.com/qingjiang-traffic/internal/service"

	"github.com/hibiken/asynq"
	"github.com/spf13/viper"
)

func newTestConsumer(t *testing.T) *Consumer {
	t.Helper()
	v := viper.New()
	config.SetDefaults(v)
	cfg, err := config.Unmarshal(v)
	if err != nil {
		t.Fatalf("unmarshal config failed: %v", err)
	}
	cfg.Storage.Backend = "memory"
	container, err := provider.NewContainerWithDB(cfg, nil)
	if err != nil {
		t.Fatalf("build container failed: %v", err)
	}
	t.Cleanup(func() { container.Close() })
	return NewConsumer(container)
}

func TestHandleSubmissionCreated(t *testing.T) {
	consumer := newTestConsumer(t)
	ctx := context.Background()

	if _, err := consumer.SubmissionService.Submit(ctx, service.SubmissionInput{Name: "张三", VehicleType: "摩托车"}); err != nil {
		t.Fatalf("seed submit failed: %v", err)
	}
	task, err := queue.NewSubmissionCreatedTask(queue.SubmissionCreatedPayload{SubmissionID: "S1", VehicleType: "摩托车"})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleSubmissionCreated(ctx, task); err != nil {
		t.Fatalf("handle task failed: %v", err)
	}
}

func TestHandleSubmissionCreatedSkipsInvalid(t *testing.T) {
	consumer := newTestConsumer(t)
	ctx := context.Background()

	if err := consumer.handleSubmissionCreated(ctx, nil); err != nil {
		t.Fatalf("nil task should be skipped, got %v", err)
	}
	empty := asynq.NewTask(queue.TaskSubmissionCreated, []byte(`{}`))
	if err := consumer.handleSubmissionCreated(ctx, empty); err != nil {
		t.Fatalf("payload without id should be skipped, got %v", err)
	}
	broken := asynq.NewTask(queue.TaskSubmissionCreated, []byte(`{`))
	if err := consumer.handleSubmissionCreated(ctx, broken); err == nil {
		t.Fatalf("malformed payload should return an error")
	}
}

func TestStatisticsWarmLoopStopsWithContext(t *testing.T) {
	consumer := newTestConsumer(t)
	svc := &Service{consumer: consumer}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.runStatisticsWarmLoop(ctx, 5*time.Millisecond)
		close(done)
	}()
	time.Sleep(20 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("warm loop did not stop after cancel")
	}
}

func TestNewServiceRequiresQueue(t *testing.T) {
	if _, err := NewService(&config.QueueConfig{Enabled: false}, &Consumer{}); err == nil {
		t.Fatalf("disabled queue should fail")
	}
	if _, err := NewService(&config.QueueConfig{Enabled: true}, nil); err == nil {
		t.Fatalf("nil consumer should fail")
	}
	var svc *Service
	if svc.Name() != "worker" {
		t.Fatalf("nil service should report default name")
	}
}
