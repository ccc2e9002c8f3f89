package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/luyongfugx/timeprint-web/internal/dto"
	"github.com/luyongfugx/timeprint-web/internal/service"
	"github.com/luyongfugx/timeprint-web/pkg/response"
)

// CheckinHandler 打卡模块 HTTP 处理器
type CheckinHandler struct {
	checkinSvc service.CheckinService
}

// NewCheckinHandler 创建 CheckinHandler
func NewCheckinHandler(checkinSvc service.CheckinService) *CheckinHandler {
	return &CheckinHandler{checkinSvc: checkinSvc}
}

// List 查询团队打卡记录
// GET /api/checkins?dateFrom=&dateTo=&userId=
func (h *CheckinHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CheckinListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	records, err := h.checkinSvc.List(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleCheckinError(c, err)
		return
	}
	response.OK(c, gin.H{"records": records})
}

// Create 提交打卡
// POST /api/checkins
func (h *CheckinHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCheckinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Missing required fields")
		return
	}

	rec, err := h.checkinSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleCheckinError(c, err)
		return
	}
	response.OK(c, gin.H{"checkin": rec})
}

// Delete 删除打卡记录
// DELETE /api/checkins/:checkinId
func (h *CheckinHandler) Delete(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.checkinSvc.Delete(c.Request.Context(), userID, c.Param("checkinId")); err != nil {
		h.handleCheckinError(c, err)
		return
	}
	response.OK(c, gin.H{"success": true})
}

// Stats 打卡统计
// GET /api/checkins/stats?dateFrom=&dateTo=&userId=
func (h *CheckinHandler) Stats(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CheckinListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	stats, err := h.checkinSvc.Stats(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleCheckinError(c, err)
		return
	}
	response.OK(c, stats)
}

// handleCheckinError 打卡模块错误映射
func (h *CheckinHandler) handleCheckinError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotInTeam):
		response.BadRequest(c, service.ErrNotInTeam.Error())
	case errors.Is(err, service.ErrAccessDenied):
		response.Forbidden(c, service.ErrAccessDenied.Error())
	default:
		response.InternalError(c)
	}
}
