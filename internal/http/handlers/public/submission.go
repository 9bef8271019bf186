package public

import (
	"errors"

	"github.com/qingjiang-traffic/internal/constants"
	handlershared "github.com/qingjiang-traffic/internal/http/handlers/shared"
	"github.com/qingjiang-traffic/internal/http/response"
	"github.com/qingjiang-traffic/internal/i18n"
	"github.com/qingjiang-traffic/internal/models"
	"github.com/qingjiang-traffic/internal/service"
	"github.com/qingjiang-traffic/internal/storage"

	"github.com/gin-gonic/gin"
)

var submitErrorRules = []mappedHandlerError{
	{target: service.ErrNameRequired, code: response.CodeBadRequest, key: "error.name_required"},
	{target: service.ErrInvalidVehicleType, code: response.CodeBadRequest, key: "error.vehicle_type_invalid"},
	{target: service.ErrTooManyImages, code: response.CodeBadRequest, key: "error.too_many_images"},
	{target: storage.ErrStorage, code: response.CodeStorageUnavailable, key: "error.storage_unavailable"},
}

// SubmitResponse 提交成功响应
type SubmitResponse struct {
	Record     *models.SubmissionRecord `json:"record"`
	Statistics service.Statistics       `json:"statistics"`
	Notice     service.Notice           `json:"notice"`
}

// Submit 提交车辆登记
func (h *Handler) Submit(c *gin.Context) {
	locale := i18n.ResolveLocale(c)
	clientKey := handlershared.ClientKey(c)

	var input service.SubmissionInput
	if err := c.ShouldBind(&input); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	record, err := h.SubmissionService.Submit(c.Request.Context(), input)
	if err != nil {
		rule, ok := matchMappedError(err, submitErrorRules)
		if !ok {
			rule = mappedHandlerError{code: response.CodeInternal, key: "error.internal"}
		}
		msg := i18n.T(locale, rule.key)
		if errors.Is(err, service.ErrTooManyImages) {
			msg = i18n.Sprintf(locale, rule.key, h.ImageService.MaxImages())
		}
		if rule.code >= response.CodeInternal {
			requestLog(c).Errorw("submission_failed", "client", clientKey, "error", err)
		}
		notice := h.NoticeBoard.Error(clientKey, msg)
		response.ErrorWithData(c, rule.code, msg, gin.H{"notice": notice})
		return
	}

	stats, err := h.SubmissionService.Statistics(c.Request.Context())
	if err != nil {
		requestLog(c).Warnw("statistics_after_submit_failed", "error", err)
	}
	msg := i18n.T(locale, "submission.success")
	notice := h.NoticeBoard.Success(clientKey, msg)
	response.SuccessWithMsg(c, msg, SubmitResponse{
		Record:     record,
		Statistics: stats,
		Notice:     notice,
	})
}

// GetStatistics 获取登记统计
func (h *Handler) GetStatistics(c *gin.Context) {
	stats, err := h.SubmissionService.Statistics(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.statistics_failed", err)
		return
	}
	response.Success(c, stats)
}

// GetOptions 获取表单下拉选项
func (h *Handler) GetOptions(c *gin.Context) {
	response.Success(c, gin.H{
		"site_name":      h.Config.App.SiteName,
		"vehicle_types":  constants.VehicleTypes,
		"usage_types":    constants.UsageTypes,
		"max_images":     h.ImageService.MaxImages(),
		"notice_dismiss": int(h.NoticeBoard.DismissAfter().Milliseconds()),
		"languages":      []string{i18n.LocaleZH, i18n.LocaleTW, i18n.LocaleEN},
	})
}
