package queue

import (
	"encoding/json"

	"github.com/qingjiang-traffic/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskSubmissionCreated 新登记提交后的异步处理任务
	TaskSubmissionCreated = constants.TaskSubmissionCreated
)

// SubmissionCreatedPayload 登记提交任务载荷
type SubmissionCreatedPayload struct {
	SubmissionID string `json:"submission_id"`
	VehicleType  string `json:"vehicle_type"`
	Day          string `json:"day"`
}

// NewSubmissionCreatedTask 创建登记提交任务
func NewSubmissionCreatedTask(payload SubmissionCreatedPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSubmissionCreated, body), nil
}

// ParseSubmissionCreatedPayload 解析登记提交任务载荷
func ParseSubmissionCreatedPayload(task *asynq.Task) (SubmissionCreatedPayload, error) {
	var payload SubmissionCreatedPayload
	if task == nil {
		return payload, nil
	}
	err := json.Unmarshal(task.Payload(), &payload)
	return payload, err
}
