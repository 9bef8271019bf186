package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"

	"github.com/qingjiang-traffic/internal/config"
	"github.com/qingjiang-traffic/internal/logger"
	"github.com/qingjiang-traffic/internal/metrics"
)

const (
	// DefaultMaxImages 单次登记最多图片数
	DefaultMaxImages = 3
	// ImageLabelPrefix 预览标签前缀
	ImageLabelPrefix = "车辆照片"

	SkipReasonNotImage = "not_image"
	SkipReasonTooLarge = "too_large"
)

// ImageCandidate 待预览的图片
type ImageCandidate struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// SkippedImage 被跳过的候选图片
type SkippedImage struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// PreviewResult 一次预览的结果
type PreviewResult struct {
	Accepted []string       `json:"accepted"`
	Skipped  []SkippedImage `json:"skipped"`
	Labels   []string       `json:"labels"`
}

// PreviewOptions 预览限制
type PreviewOptions struct {
	MaxImages    int
	MaxSize      int64
	AllowedTypes []string
}

// PreviewOptionsFromConfig 由上传配置生成预览限制
func PreviewOptionsFromConfig(cfg config.UploadConfig) PreviewOptions {
	return PreviewOptions{
		MaxImages:    cfg.MaxImages,
		MaxSize:      cfg.MaxSize,
		AllowedTypes: cfg.AllowedTypes,
	}
}

// PreviewSet 有序图片标签集合
type PreviewSet struct {
	mu      sync.Mutex
	max     int
	maxSize int64
	allowed map[string]struct{}
	labels  []string
}

// NewPreviewSet 创建预览集合
func NewPreviewSet(opts PreviewOptions) *PreviewSet {
	max := opts.MaxImages
	if max <= 0 {
		max = DefaultMaxImages
	}
	var allowed map[string]struct{}
	if len(opts.AllowedTypes) > 0 {
		allowed = make(map[string]struct{}, len(opts.AllowedTypes))
		for _, item := range opts.AllowedTypes {
			item = strings.ToLower(strings.TrimSpace(item))
			if item != "" {
				allowed[item] = struct{}{}
			}
		}
	}
	return &PreviewSet{max: max, maxSize: opts.MaxSize, allowed: allowed}
}

// Max 集合容量
func (p *PreviewSet) Max() int {
	return p.max
}

// Accept 接收一批候选图片
// 批次本身超过容量，或加入后超过容量时整批拒绝；非图片逐个跳过
func (p *PreviewSet) Accept(batch []ImageCandidate) (PreviewResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	result := PreviewResult{Accepted: []string{}, Skipped: []SkippedImage{}}
	if len(batch) > p.max {
		result.Labels = p.snapshot()
		return result, ErrTooManyImages
	}

	images := make([]ImageCandidate, 0, len(batch))
	for _, candidate := range batch {
		if reason := p.rejectReason(candidate); reason != "" {
			result.Skipped = append(result.Skipped, SkippedImage{Name: candidate.Name, Reason: reason})
			continue
		}
		images = append(images, candidate)
	}
	if len(p.labels)+len(images) > p.max {
		result.Skipped = []SkippedImage{}
		result.Labels = p.snapshot()
		return result, ErrTooManyImages
	}

	for range images {
		label := imageLabel(len(p.labels) + 1)
		p.labels = append(p.labels, label)
		result.Accepted = append(result.Accepted, label)
	}
	result.Labels = p.snapshot()
	return result, nil
}

// Restore 用已有标签初始化集合，超出容量的部分被丢弃
func (p *PreviewSet) Restore(labels []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.labels = p.labels[:0]
	for _, label := range labels {
		if len(p.labels) >= p.max {
			break
		}
		if strings.TrimSpace(label) == "" {
			continue
		}
		p.labels = append(p.labels, label)
	}
	p.relabel()
}

// Remove 移除标签，剩余图片按位置重新编号
func (p *PreviewSet) Remove(label string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, item := range p.labels {
		if item == label {
			p.labels = append(p.labels[:i], p.labels[i+1:]...)
			p.relabel()
			return true
		}
	}
	return false
}

// Reset 清空集合（表单重置）
func (p *PreviewSet) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.labels = nil
}

// Labels 当前标签
func (p *PreviewSet) Labels() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshot()
}

func (p *PreviewSet) rejectReason(candidate ImageCandidate) string {
	contentType := strings.ToLower(strings.TrimSpace(candidate.ContentType))
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		contentType = strings.TrimSpace(contentType[:idx])
	}
	if !strings.HasPrefix(contentType, "image/") {
		return SkipReasonNotImage
	}
	if p.allowed != nil {
		if _, ok := p.allowed[contentType]; !ok {
			return SkipReasonNotImage
		}
	}
	if p.maxSize > 0 && candidate.Size > p.maxSize {
		return SkipReasonTooLarge
	}
	return ""
}

func (p *PreviewSet) relabel() {
	for i := range p.labels {
		p.labels[i] = imageLabel(i + 1)
	}
}

func (p *PreviewSet) snapshot() []string {
	out := make([]string, len(p.labels))
	copy(out, p.labels)
	return out
}

func imageLabel(position int) string {
	return fmt.Sprintf("%s %d", ImageLabelPrefix, position)
}

// ImageService 图片预览服务，图片内容只用于类型识别，不落盘
type ImageService struct {
	opts PreviewOptions
}

// NewImageService 创建图片预览服务
func NewImageService(opts PreviewOptions) *ImageService {
	return &ImageService{opts: opts}
}

// MaxImages 单次登记最多图片数
func (s *ImageService) MaxImages() int {
	if s.opts.MaxImages <= 0 {
		return DefaultMaxImages
	}
	return s.opts.MaxImages
}

// Preview 在已有标签基础上预览一批上传文件
func (s *ImageService) Preview(_ context.Context, existing []string, files []*multipart.FileHeader) (PreviewResult, error) {
	candidates := make([]ImageCandidate, 0, len(files))
	for _, fh := range files {
		candidate, err := InspectUpload(fh)
		if err != nil {
			return PreviewResult{}, err
		}
		candidates = append(candidates, candidate)
	}

	set := NewPreviewSet(s.opts)
	set.Restore(existing)
	result, err := set.Accept(candidates)
	if err != nil {
		metrics.ImagesPreviewed.WithLabelValues("batch_rejected").Inc()
		logger.Infow("image_preview_rejected",
			"batch", len(candidates),
			"existing", len(existing),
		)
		return result, err
	}
	metrics.ImagesPreviewed.WithLabelValues("accepted").Add(float64(len(result.Accepted)))
	for _, skipped := range result.Skipped {
		metrics.ImagesPreviewed.WithLabelValues(skipped.Reason).Inc()
	}
	return result, nil
}

// InspectUpload 读取文件头部识别真实类型
func InspectUpload(fh *multipart.FileHeader) (ImageCandidate, error) {
	candidate := ImageCandidate{}
	if fh == nil {
		return candidate, nil
	}
	candidate.Name = fh.Filename
	candidate.Size = fh.Size
	file, err := fh.Open()
	if err != nil {
		return candidate, err
	}
	defer file.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return candidate, err
	}
	candidate.ContentType = http.DetectContentType(head[:n])
	return candidate, nil
}
