package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/luyongfugx/timeprint-web/internal/dto"
	"github.com/luyongfugx/timeprint-web/internal/service"
	"github.com/luyongfugx/timeprint-web/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportCheckins 导出打卡统计
// GET /api/checkins/export?dateFrom=&dateTo=&userId=
func (h *ExportHandler) ExportCheckins(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CheckinListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	buf, filename, err := h.exportSvc.ExportCheckins(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Header("Content-Type", xlsxContentType)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotInTeam):
		response.BadRequest(c, service.ErrNotInTeam.Error())
	case errors.Is(err, service.ErrAccessDenied):
		response.Forbidden(c, service.ErrAccessDenied.Error())
	default:
		response.InternalError(c)
	}
}
