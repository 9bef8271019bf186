package repository

import (
	"strings"

	"github.com/qingjiang-traffic/internal/models"
)

// FilterSubmissions 在内存中按关键词与车辆类型过滤并分页，返回当前页与过滤后的总数
func FilterSubmissions(records []models.SubmissionRecord, filter SubmissionListFilter) ([]models.SubmissionRecord, int64) {
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	vehicleType := strings.TrimSpace(filter.VehicleType)

	matched := make([]models.SubmissionRecord, 0, len(records))
	for _, record := range records {
		if vehicleType != "" && record.VehicleType != vehicleType {
			continue
		}
		if search != "" && !containsAny(record.SearchText(), search) {
			continue
		}
		matched = append(matched, record)
	}
	if filter.NewestFirst {
		for i, j := 0, len(matched)-1; i < j; i, j = i+1, j-1 {
			matched[i], matched[j] = matched[j], matched[i]
		}
	}

	start, end := pageBounds(len(matched), filter.Page, filter.PageSize)
	return matched[start:end], int64(len(matched))
}

func containsAny(fields []string, needle string) bool {
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
