// Package metrics 定义登记服务的 Prometheus 指标，由 /metrics 暴露。
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SubmissionsTotal 成功写入的登记数，按车辆类型区分
	SubmissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "qingjiang",
		Name:      "submissions_total",
		Help:      "Number of vehicle registrations persisted.",
	}, []string{"vehicle_type"})

	// SubmissionRejections 被拒绝的登记，按原因区分
	SubmissionRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "qingjiang",
		Name:      "submission_rejections_total",
		Help:      "Number of registrations rejected before or during persistence.",
	}, []string{"reason"})

	// ImagesPreviewed 图片预览结果
	ImagesPreviewed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "qingjiang",
		Name:      "images_previewed_total",
		Help:      "Image preview outcomes.",
	}, []string{"outcome"})

	// StorageWriteFailures 存储槽写入失败次数
	StorageWriteFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "qingjiang",
		Name:      "storage_write_failures_total",
		Help:      "Rejected writes to the submission storage slot.",
	}, []string{"backend"})
)
