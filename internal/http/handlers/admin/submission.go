package admin

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/qingjiang-traffic/internal/http/response"
	"github.com/qingjiang-traffic/internal/repository"
	"github.com/qingjiang-traffic/internal/service"

	"github.com/gin-gonic/gin"
)

// GetAdminSubmissions 分页检索登记记录，最新的在前
func (h *Handler) GetAdminSubmissions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	items, total, err := h.SubmissionService.List(c.Request.Context(), repository.SubmissionListFilter{
		Page:        page,
		PageSize:    pageSize,
		Search:      strings.TrimSpace(c.Query("search")),
		VehicleType: strings.TrimSpace(c.Query("vehicle_type")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.submission_fetch_failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, items, pagination)
}

// GetAdminStatistics 获取登记统计（不走缓存）
func (h *Handler) GetAdminStatistics(c *gin.Context) {
	stats, err := h.SubmissionService.RefreshStatistics(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.statistics_failed", err)
		return
	}
	response.Success(c, stats)
}

// ExportSubmissions 导出全部登记记录
func (h *Handler) ExportSubmissions(c *gin.Context) {
	file, err := h.ExportService.Export(c.Request.Context(), c.DefaultQuery("format", "csv"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoData):
			respondError(c, response.CodeNotFound, "error.export_no_data", nil)
		case errors.Is(err, service.ErrInvalidExportFormat):
			respondError(c, response.CodeBadRequest, "error.export_format_invalid", nil)
		default:
			respondError(c, response.CodeInternal, "error.export_failed", err)
		}
		return
	}

	requestLog(c).Infow("submissions_exported",
		"filename", file.Filename,
		"bytes", len(file.Data),
	)
	c.Header("Content-Disposition", "attachment; filename=\""+file.Filename+"\"")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
