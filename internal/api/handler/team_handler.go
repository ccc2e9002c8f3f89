package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/luyongfugx/timeprint-web/internal/dto"
	"github.com/luyongfugx/timeprint-web/internal/service"
	"github.com/luyongfugx/timeprint-web/pkg/response"
)

// TeamHandler 团队模块 HTTP 处理器
type TeamHandler struct {
	teamSvc service.TeamService
}

// NewTeamHandler 创建 TeamHandler
func NewTeamHandler(teamSvc service.TeamService) *TeamHandler {
	return &TeamHandler{teamSvc: teamSvc}
}

// CreateTeam 创建团队
// POST /api/teams
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Missing required fields")
		return
	}

	team, err := h.teamSvc.CreateTeam(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleTeamError(c, err)
		return
	}
	response.OK(c, gin.H{"team": team})
}

// GetTeam 查询团队详情
// GET /api/teams/:teamId
func (h *TeamHandler) GetTeam(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	team, err := h.teamSvc.GetTeam(c.Request.Context(), userID, c.Param("teamId"))
	if err != nil {
		h.handleTeamError(c, err)
		return
	}
	response.OK(c, gin.H{"team": team})
}

// UpdateTeam 更新团队信息
// PUT /api/teams/:teamId
func (h *TeamHandler) UpdateTeam(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Missing required fields")
		return
	}

	team, err := h.teamSvc.UpdateTeam(c.Request.Context(), userID, c.Param("teamId"), &req)
	if err != nil {
		h.handleTeamError(c, err)
		return
	}
	response.OK(c, gin.H{"team": team})
}

// GetMembership 查询当前用户的成员关系
// GET /api/teams/membership
// 无成员关系时 teamMember 为 null，状态码 200
func (h *TeamHandler) GetMembership(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	membership, err := h.teamSvc.GetMembership(c.Request.Context(), userID)
	if err != nil {
		h.handleTeamError(c, err)
		return
	}
	response.OK(c, gin.H{"teamMember": membership})
}

// ListMembers 查询团队成员（含用户资料）
// GET /api/teams/:teamId/members
func (h *TeamHandler) ListMembers(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	members, err := h.teamSvc.ListMembers(c.Request.Context(), userID, c.Param("teamId"))
	if err != nil {
		h.handleTeamError(c, err)
		return
	}
	response.OK(c, gin.H{"members": members})
}

// UpdateMemberRole 调整成员角色
// PUT /api/teams/:teamId/members/:memberId
func (h *TeamHandler) UpdateMemberRole(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateMemberRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid role")
		return
	}

	err := h.teamSvc.UpdateMemberRole(c.Request.Context(), userID, c.Param("teamId"), c.Param("memberId"), req.Role)
	if err != nil {
		h.handleTeamError(c, err)
		return
	}
	response.OK(c, gin.H{"success": true})
}

// RemoveMember 移除成员
// DELETE /api/teams/:teamId/members/:memberId
func (h *TeamHandler) RemoveMember(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	err := h.teamSvc.RemoveMember(c.Request.Context(), userID, c.Param("teamId"), c.Param("memberId"))
	if err != nil {
		h.handleTeamError(c, err)
		return
	}
	response.OK(c, gin.H{"success": true})
}

// handleTeamError 团队模块错误映射
func (h *TeamHandler) handleTeamError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotInTeam):
		response.BadRequest(c, service.ErrNotInTeam.Error())
	case errors.Is(err, service.ErrAccessDenied):
		response.Forbidden(c, service.ErrAccessDenied.Error())
	case errors.Is(err, service.ErrTeamNotFound):
		response.NotFound(c, service.ErrTeamNotFound.Error())
	case errors.Is(err, service.ErrMemberNotFound):
		response.NotFound(c, service.ErrMemberNotFound.Error())
	case errors.Is(err, service.ErrInvalidRole):
		response.BadRequest(c, service.ErrInvalidRole.Error())
	case errors.Is(err, service.ErrCannotRemoveCreator):
		response.BadRequest(c, service.ErrCannotRemoveCreator.Error())
	case errors.Is(err, service.ErrCannotChangeCreator):
		response.BadRequest(c, service.ErrCannotChangeCreator.Error())
	case errors.Is(err, service.ErrAlreadyInTeam):
		response.BadRequest(c, service.ErrAlreadyInTeam.Error())
	default:
		response.InternalError(c)
	}
}
