package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/qingjiang-traffic/internal/cache"
	"github.com/qingjiang-traffic/internal/constants"
	"github.com/qingjiang-traffic/internal/logger"
	"github.com/qingjiang-traffic/internal/metrics"
	"github.com/qingjiang-traffic/internal/models"
	"github.com/qingjiang-traffic/internal/queue"
	"github.com/qingjiang-traffic/internal/repository"
	"github.com/qingjiang-traffic/internal/storage"
)

// SubmissionInput 表单提交内容
type SubmissionInput struct {
	Name        string   `json:"name" form:"name"`
	Phone       string   `json:"phone" form:"phone"`
	IDCard      string   `json:"idCard" form:"idCard"`
	PlateNumber string   `json:"plateNumber" form:"plateNumber"`
	VehicleType string   `json:"vehicleType" form:"vehicleType"`
	UsageType   string   `json:"usageType" form:"usageType"`
	Registrant  string   `json:"registrant" form:"registrant"`
	Images      []string `json:"images" form:"images"`
}

// SubmissionService 登记提交与统计服务
type SubmissionService struct {
	repo      repository.SubmissionRepository
	queue     *queue.Client
	ids       *IDGenerator
	loc       *time.Location
	maxImages int
	stats     StatisticsCache
	now       func() time.Time
}

// NewSubmissionService 创建登记服务
func NewSubmissionService(repo repository.SubmissionRepository, queueClient *queue.Client, ids *IDGenerator, loc *time.Location, maxImages int) *SubmissionService {
	if ids == nil {
		ids = NewIDGenerator()
	}
	if loc == nil {
		loc = time.Local
	}
	if maxImages <= 0 {
		maxImages = DefaultMaxImages
	}
	return &SubmissionService{
		repo:      repo,
		queue:     queueClient,
		ids:       ids,
		loc:       loc,
		maxImages: maxImages,
		stats:     redisStatisticsCache{},
		now:       time.Now,
	}
}

// Location 统计所用时区
func (s *SubmissionService) Location() *time.Location {
	return s.loc
}

// Submit 校验并保存一次登记
// 写入失败时返回 *storage.StorageError，调用方据此展示错误提示
func (s *SubmissionService) Submit(ctx context.Context, input SubmissionInput) (*models.SubmissionRecord, error) {
	record, err := s.buildRecord(input)
	if err != nil {
		metrics.SubmissionRejections.WithLabelValues(rejectionReason(err)).Inc()
		return nil, err
	}

	if err := s.repo.Append(ctx, *record); err != nil {
		var se *storage.StorageError
		backend := "unknown"
		if errors.As(err, &se) {
			backend = se.Backend
		}
		metrics.StorageWriteFailures.WithLabelValues(backend).Inc()
		metrics.SubmissionRejections.WithLabelValues("storage").Inc()
		logger.Errorw("submission_append_failed",
			"submission_id", record.SubmissionID,
			"backend", backend,
			"error", err,
		)
		return nil, err
	}

	metrics.SubmissionsTotal.WithLabelValues(record.VehicleType).Inc()
	day := DayKey(record.SubmittedAt, s.loc)
	if err := s.stats.Invalidate(ctx, day); err != nil {
		logger.Warnw("statistics_cache_invalidate_failed", "day", day, "error", err)
	}
	if err := s.queue.EnqueueSubmissionCreated(queue.SubmissionCreatedPayload{
		SubmissionID: record.SubmissionID,
		VehicleType:  record.VehicleType,
		Day:          day,
	}); err != nil {
		logger.Warnw("submission_task_enqueue_failed",
			"submission_id", record.SubmissionID,
			"error", err,
		)
	}
	logger.Infow("submission_appended",
		"submission_id", record.SubmissionID,
		"vehicle_type", record.VehicleType,
		"images", len(record.Images),
	)
	return record, nil
}

func (s *SubmissionService) buildRecord(input SubmissionInput) (*models.SubmissionRecord, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	vehicleType := strings.TrimSpace(input.VehicleType)
	if !constants.IsVehicleType(vehicleType) {
		return nil, ErrInvalidVehicleType
	}
	images := make([]string, 0, len(input.Images))
	for _, label := range input.Images {
		label = strings.TrimSpace(label)
		if label != "" {
			images = append(images, label)
		}
	}
	if len(images) > s.maxImages {
		return nil, ErrTooManyImages
	}

	id, now := s.ids.Next()
	return &models.SubmissionRecord{
		Name:           name,
		Phone:          strings.TrimSpace(input.Phone),
		IDCard:         strings.TrimSpace(input.IDCard),
		PlateNumber:    strings.TrimSpace(input.PlateNumber),
		VehicleType:    vehicleType,
		UsageType:      strings.TrimSpace(input.UsageType),
		Registrant:     strings.TrimSpace(input.Registrant),
		Images:         images,
		SubmittedAt:    now.In(s.loc),
		SubmissionDate: models.FormatSubmissionDate(now, s.loc),
		SubmissionID:   id,
	}, nil
}

// Statistics 获取当前统计，优先读取缓存
func (s *SubmissionService) Statistics(ctx context.Context) (Statistics, error) {
	now := s.now()
	day := DayKey(now, s.loc)
	snapshot, hit, err := s.stats.Get(ctx, day)
	if err != nil {
		logger.Warnw("statistics_cache_read_failed", "day", day, "error", err)
	}
	if hit && snapshot != nil {
		return Statistics{
			TodayCount:      snapshot.TodayCount,
			TotalCount:      snapshot.TotalCount,
			CarCount:        snapshot.CarCount,
			MotorcycleCount: snapshot.MotorcycleCount,
		}, nil
	}
	return s.RefreshStatistics(ctx)
}

// RefreshStatistics 全量重算统计并写入缓存
// 重算期间有新提交时放弃写回，下次读取重新计算
func (s *SubmissionService) RefreshStatistics(ctx context.Context) (Statistics, error) {
	now := s.now()
	day := DayKey(now, s.loc)
	generation, genErr := s.stats.Generation(ctx, day)
	if genErr != nil {
		logger.Warnw("statistics_cache_generation_failed", "day", day, "error", genErr)
	}

	records, err := s.repo.ReadAll(ctx)
	if err != nil {
		return Statistics{}, err
	}
	stats := ComputeStatistics(records, now, s.loc)
	if genErr != nil {
		return stats, nil
	}
	stored, err := s.stats.StoreIfGeneration(ctx, &cache.StatisticsSnapshot{
		Day:             day,
		TodayCount:      stats.TodayCount,
		TotalCount:      stats.TotalCount,
		CarCount:        stats.CarCount,
		MotorcycleCount: stats.MotorcycleCount,
		ComputedAt:      now.Unix(),
	}, generation)
	if err != nil {
		logger.Warnw("statistics_cache_write_failed", "day", day, "error", err)
	} else if !stored {
		logger.Debugw("statistics_cache_write_skipped", "day", day, "generation", generation)
	}
	return stats, nil
}

// List 后台分页检索，最新的记录在前
func (s *SubmissionService) List(ctx context.Context, filter repository.SubmissionListFilter) ([]models.SubmissionRecord, int64, error) {
	records, err := s.repo.ReadAll(ctx)
	if err != nil {
		return nil, 0, err
	}
	filter.NewestFirst = true
	items, total := repository.FilterSubmissions(records, filter)
	return items, total, nil
}

// All 返回全部记录（插入顺序）
func (s *SubmissionService) All(ctx context.Context) ([]models.SubmissionRecord, error) {
	return s.repo.ReadAll(ctx)
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrNameRequired):
		return "name_required"
	case errors.Is(err, ErrInvalidVehicleType):
		return "invalid_vehicle_type"
	case errors.Is(err, ErrTooManyImages):
		return "too_many_images"
	default:
		return "other"
	}
}
