package public

import (
	"errors"
	"net/http"

	handlershared "github.com/qingjiang-traffic/internal/http/handlers/shared"
	"github.com/qingjiang-traffic/internal/http/response"
	"github.com/qingjiang-traffic/internal/i18n"
	"github.com/qingjiang-traffic/internal/service"

	"github.com/gin-gonic/gin"
)

// PreviewResponse 图片预览响应
type PreviewResponse struct {
	service.PreviewResult
	Notice *service.Notice `json:"notice,omitempty"`
}

// PreviewImages 预览上传图片，仅识别类型，不保存图片内容
func (h *Handler) PreviewImages(c *gin.Context) {
	locale := i18n.ResolveLocale(c)
	clientKey := handlershared.ClientKey(c)

	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
			return
		}
		respondError(c, response.CodeBadRequest, "error.upload_invalid", err)
		return
	}
	files := form.File["files"]
	existing := form.Value["existing"]

	result, err := h.ImageService.Preview(c.Request.Context(), existing, files)
	if err != nil {
		if errors.Is(err, service.ErrTooManyImages) {
			msg := i18n.Sprintf(locale, "error.too_many_images", h.ImageService.MaxImages())
			notice := h.NoticeBoard.Error(clientKey, msg)
			response.ErrorWithData(c, response.CodeBadRequest, msg, gin.H{
				"labels": result.Labels,
				"notice": notice,
			})
			return
		}
		respondError(c, response.CodeBadRequest, "error.upload_invalid", err)
		return
	}

	resp := PreviewResponse{PreviewResult: result}
	if len(result.Skipped) > 0 {
		key := "error.not_image"
		for _, skipped := range result.Skipped {
			if skipped.Reason == service.SkipReasonTooLarge {
				key = "error.image_too_large"
				break
			}
		}
		notice := h.NoticeBoard.Error(clientKey, i18n.T(locale, key))
		resp.Notice = &notice
	}
	response.Success(c, resp)
}
