package service

import (
	"time"

	"github.com/qingjiang-traffic/internal/constants"
	"github.com/qingjiang-traffic/internal/models"
)

// DayKeyLayout 自然日键格式
const DayKeyLayout = "2006-01-02"

// Statistics 登记统计计数
type Statistics struct {
	TodayCount      int `json:"today_count"`
	TotalCount      int `json:"total_count"`
	CarCount        int `json:"car_count"`
	MotorcycleCount int `json:"motorcycle_count"`
}

// ComputeStatistics 全量扫描提交记录并计算四项计数
// 今日按 loc 时区下的年月日与 reference 比较
func ComputeStatistics(records []models.SubmissionRecord, reference time.Time, loc *time.Location) Statistics {
	if loc == nil {
		loc = time.Local
	}
	ref := reference.In(loc)
	stats := Statistics{TotalCount: len(records)}
	for _, record := range records {
		if !record.SubmittedAt.IsZero() && sameDay(record.SubmittedAt.In(loc), ref) {
			stats.TodayCount++
		}
		switch record.VehicleType {
		case constants.VehicleTypeSmallCar:
			stats.CarCount++
		case constants.VehicleTypeMotorcycle:
			stats.MotorcycleCount++
		}
	}
	return stats
}

// DayKey 返回 t 在 loc 时区下的自然日
func DayKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DayKeyLayout)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
