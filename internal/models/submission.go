package models

import (
	"strings"
	"time"
)

// SubmissionSchemaVersion 当前存储槽文档版本
const SubmissionSchemaVersion = 1

// SubmissionDateLayout 提交时间展示格式（与 zh-CN 本地化格式一致）
const SubmissionDateLayout = "2006/1/2 15:04:05"

// SubmissionRecord 单次车辆登记提交
type SubmissionRecord struct {
	Name           string    `json:"name"`           // 姓名
	Phone          string    `json:"phone"`          // 联系电话
	IDCard         string    `json:"idCard"`         // 身份证号
	PlateNumber    string    `json:"plateNumber"`    // 车牌号
	VehicleType    string    `json:"vehicleType"`    // 车辆类型
	UsageType      string    `json:"usageType"`      // 使用性质
	Registrant     string    `json:"registrant"`     // 登记人
	Images         []string  `json:"images"`         // 图片标签，不含图片数据
	SubmittedAt    time.Time `json:"submittedAt"`    // 提交时间
	SubmissionDate string    `json:"submissionDate"` // 展示用提交时间
	SubmissionID   string    `json:"submissionId"`   // 提交编号
}

// SubmissionDocument 存储槽中的完整文档
type SubmissionDocument struct {
	SchemaVersion int                `json:"schemaVersion"`
	Records       []SubmissionRecord `json:"records"`
}

// FormatSubmissionDate 生成展示用提交时间
func FormatSubmissionDate(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(SubmissionDateLayout)
}

// ParseSubmissionDate 解析展示用提交时间，兼容旧版本没有结构化时间的记录
func ParseSubmissionDate(value string, loc *time.Location) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	layouts := []string{
		SubmissionDateLayout,
		"2006-01-02 15:04:05",
		"2006/01/02 15:04:05",
		time.RFC3339,
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SearchText 返回参与关键词检索的字段
func (r SubmissionRecord) SearchText() []string {
	return []string{r.Name, r.PlateNumber, r.IDCard, r.Phone}
}
