package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/luyongfugx/timeprint-web/internal/dto"
	"github.com/luyongfugx/timeprint-web/internal/service"
	"github.com/luyongfugx/timeprint-web/pkg/response"
)

// ShareLinkHandler 水印分享链接 HTTP 处理器
// 公开接口：不走认证中间件，外层有限流
type ShareLinkHandler struct {
	shareSvc service.ShareLinkService
}

// NewShareLinkHandler 创建 ShareLinkHandler
func NewShareLinkHandler(shareSvc service.ShareLinkService) *ShareLinkHandler {
	return &ShareLinkHandler{shareSvc: shareSvc}
}

// Create 创建分享链接
// POST /api/applink
func (h *ShareLinkHandler) Create(c *gin.Context) {
	var req dto.CreateShareLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, service.ErrShareLinkMissingFields.Error())
		return
	}

	resp, err := h.shareSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleShareLinkError(c, err)
		return
	}
	response.OK(c, resp)
}

// Get 公开查询分享链接
// GET /api/applink/:shareCode
// 已过期或已下架的记录与不存在同样返回 404
func (h *ShareLinkHandler) Get(c *gin.Context) {
	resp, err := h.shareSvc.GetPublic(c.Request.Context(), c.Param("shareCode"))
	if err != nil {
		h.handleShareLinkError(c, err)
		return
	}
	response.OK(c, resp)
}

// Update 按分享码部分更新
// PUT /api/applink/:shareCode
func (h *ShareLinkHandler) Update(c *gin.Context) {
	var req dto.UpdateShareLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, service.ErrShareLinkNoFields.Error())
		return
	}

	resp, err := h.shareSvc.Update(c.Request.Context(), c.Param("shareCode"), &req)
	if err != nil {
		h.handleShareLinkError(c, err)
		return
	}
	response.OK(c, resp)
}

// Delete 按分享码删除
// DELETE /api/applink/:shareCode
// 删除不存在的记录同样返回成功
func (h *ShareLinkHandler) Delete(c *gin.Context) {
	if err := h.shareSvc.Delete(c.Request.Context(), c.Param("shareCode")); err != nil {
		h.handleShareLinkError(c, err)
		return
	}
	response.OK(c, gin.H{"success": true})
}

// Search 管理端搜索
// POST /api/applink/search
func (h *ShareLinkHandler) Search(c *gin.Context) {
	var req dto.ShareLinkSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid search parameters")
		return
	}

	resp, err := h.shareSvc.Search(c.Request.Context(), &req)
	if err != nil {
		h.handleShareLinkError(c, err)
		return
	}
	response.OK(c, resp)
}

// handleShareLinkError 分享链接模块错误映射
func (h *ShareLinkHandler) handleShareLinkError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrShareLinkMissingFields):
		response.BadRequest(c, service.ErrShareLinkMissingFields.Error())
	case errors.Is(err, service.ErrShareLinkNoFields):
		response.BadRequest(c, service.ErrShareLinkNoFields.Error())
	case errors.Is(err, service.ErrShareLinkNotFound):
		response.NotFound(c, service.ErrShareLinkNotFound.Error())
	default:
		response.InternalError(c)
	}
}
