package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/qingjiang-traffic/internal/logger"
	"github.com/qingjiang-traffic/internal/models"
	"github.com/qingjiang-traffic/internal/storage"
)

// ErrPayloadUnreadable 槽内容无法解析或版本高于当前程序，追加时拒绝覆盖
var ErrPayloadUnreadable = errors.New("submission payload unreadable")

// SubmissionRepository 登记记录数据访问接口
type SubmissionRepository interface {
	Append(ctx context.Context, record models.SubmissionRecord) error
	ReadAll(ctx context.Context) ([]models.SubmissionRecord, error)
}

// SlotSubmissionRepository 将全部记录序列化后保存在单个存储槽中
type SlotSubmissionRepository struct {
	backend storage.Backend
	key     string
	loc     *time.Location
	mu      sync.Mutex
}

// NewSubmissionRepository 创建登记记录仓库
func NewSubmissionRepository(backend storage.Backend, key string, loc *time.Location) *SlotSubmissionRepository {
	if loc == nil {
		loc = time.Local
	}
	return &SlotSubmissionRepository{backend: backend, key: key, loc: loc}
}

// Append 读取现有记录、追加到末尾并整体写回
// 仅槽不存在时视为空历史；读取失败或内容无法解析时返回 *storage.StorageError，槽内容保持不变
func (r *SlotSubmissionRepository) Append(ctx context.Context, record models.SubmissionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.loadStrict(ctx)
	if err != nil {
		return err
	}
	records = append(records, record)

	payload, err := json.Marshal(models.SubmissionDocument{
		SchemaVersion: models.SubmissionSchemaVersion,
		Records:       records,
	})
	if err != nil {
		return fmt.Errorf("encode submissions failed: %w", err)
	}
	if err := r.backend.Set(ctx, r.key, payload); err != nil {
		return err
	}
	return nil
}

// ReadAll 返回全部记录；槽不存在或内容无法解析时返回空列表
func (r *SlotSubmissionRepository) ReadAll(ctx context.Context) ([]models.SubmissionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx), nil
}

func (r *SlotSubmissionRepository) loadStrict(ctx context.Context) ([]models.SubmissionRecord, error) {
	raw, found, err := r.backend.Get(ctx, r.key)
	if err != nil {
		var se *storage.StorageError
		if errors.As(err, &se) {
			return nil, err
		}
		return nil, &storage.StorageError{Op: "get", Backend: r.backend.Name(), Key: r.key, Err: err}
	}
	if !found {
		return []models.SubmissionRecord{}, nil
	}
	records, err := decodeSubmissions(raw, r.loc)
	if err != nil {
		logger.Warnw("submission_slot_append_refused", "backend", r.backend.Name(), "key", r.key, "error", err)
		return nil, &storage.StorageError{
			Op:      "decode",
			Backend: r.backend.Name(),
			Key:     r.key,
			Err:     fmt.Errorf("%w: %v", ErrPayloadUnreadable, err),
		}
	}
	return records, nil
}

func (r *SlotSubmissionRepository) load(ctx context.Context) []models.SubmissionRecord {
	raw, found, err := r.backend.Get(ctx, r.key)
	if err != nil {
		logger.Warnw("submission_slot_read_failed", "backend", r.backend.Name(), "key", r.key, "error", err)
		return []models.SubmissionRecord{}
	}
	if !found {
		return []models.SubmissionRecord{}
	}
	records, err := decodeSubmissions(raw, r.loc)
	if err != nil {
		logger.Warnw("submission_slot_payload_corrupt", "backend", r.backend.Name(), "key", r.key, "error", err)
		return []models.SubmissionRecord{}
	}
	return records
}

// decodeSubmissions 兼容带版本文档与旧版纯数组两种格式
func decodeSubmissions(raw []byte, loc *time.Location) ([]models.SubmissionRecord, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return []models.SubmissionRecord{}, nil
	}

	var records []models.SubmissionRecord
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, err
		}
	case '{':
		var doc models.SubmissionDocument
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, err
		}
		if doc.SchemaVersion > models.SubmissionSchemaVersion {
			return nil, fmt.Errorf("unsupported schema version %d", doc.SchemaVersion)
		}
		records = doc.Records
	default:
		return nil, fmt.Errorf("unexpected payload prefix %q", trimmed[0])
	}

	if records == nil {
		records = []models.SubmissionRecord{}
	}
	for i := range records {
		if records[i].SubmittedAt.IsZero() {
			if t, ok := models.ParseSubmissionDate(records[i].SubmissionDate, loc); ok {
				records[i].SubmittedAt = t
			}
		}
		if records[i].Images == nil {
			records[i].Images = []string{}
		}
	}
	return records, nil
}
