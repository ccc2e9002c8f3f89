package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/luyongfugx/timeprint-web/internal/dto"
	"github.com/luyongfugx/timeprint-web/internal/service"
	"github.com/luyongfugx/timeprint-web/pkg/response"
)

// MobileHandler 移动端镜像接口 HTTP 处理器
// 载荷字段名与 Web 端不同，错误约定统一为 { "error": string }
type MobileHandler struct {
	teamSvc    service.TeamService
	checkinSvc service.CheckinService
}

// NewMobileHandler 创建 MobileHandler
func NewMobileHandler(teamSvc service.TeamService, checkinSvc service.CheckinService) *MobileHandler {
	return &MobileHandler{teamSvc: teamSvc, checkinSvc: checkinSvc}
}

// Home 首页：团队信息 + 当日统计 + 当日打卡
// GET /api/mobile/home
func (h *MobileHandler) Home(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	resp, err := h.checkinSvc.HomeSummary(c.Request.Context(), userID)
	if err != nil {
		h.handleMobileError(c, err)
		return
	}
	response.OK(c, resp)
}

// GetCheckins 团队全部打卡流水
// GET /api/mobile/getcheckins
func (h *MobileHandler) GetCheckins(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	resp, err := h.checkinSvc.TeamFeed(c.Request.Context(), userID)
	if err != nil {
		h.handleMobileError(c, err)
		return
	}
	response.OK(c, resp)
}

// Members 团队成员扁平列表
// GET /api/mobile/members
func (h *MobileHandler) Members(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	members, err := h.checkinSvc.MembersFlat(c.Request.Context(), userID)
	if err != nil {
		h.handleMobileError(c, err)
		return
	}
	response.OK(c, gin.H{"members": members})
}

// User 指定用户的资料与打卡流水
// GET /api/mobile/user?user_id=
func (h *MobileHandler) User(c *gin.Context) {
	if _, ok := MustGetUserID(c); !ok {
		return
	}

	queryUserID := c.Query("user_id")
	if queryUserID == "" {
		response.BadRequest(c, "Missing user_id")
		return
	}

	resp, err := h.checkinSvc.UserFeed(c.Request.Context(), queryUserID)
	if err != nil {
		h.handleMobileError(c, err)
		return
	}
	response.OK(c, resp)
}

// Checkin 提交打卡；团队以调用者成员关系为准
// POST /api/mobile/checkin
func (h *MobileHandler) Checkin(c *gin.Context) {
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
		h.handleMobileError(c, err)
		return
	}
	response.OK(c, rec)
}

// CreateTeam 创建团队（与 Web 端同一套语义）
// POST /api/mobile/teams
func (h *MobileHandler) CreateTeam(c *gin.Context) {
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
		h.handleMobileError(c, err)
		return
	}
	response.OK(c, team)
}

// GetTeamInfo 团队信息（含成员数，不做成员关系校验）
// GET /api/mobile/teams/:teamId
func (h *MobileHandler) GetTeamInfo(c *gin.Context) {
	if _, ok := MustGetUserID(c); !ok {
		return
	}

	team, err := h.teamSvc.GetTeamInfo(c.Request.Context(), c.Param("teamId"))
	if err != nil {
		h.handleMobileError(c, err)
		return
	}
	response.OK(c, team)
}

// JoinTeam 加入团队；已有任意成员关系时拒绝
// GET /api/mobile/teams/join/:teamId
func (h *MobileHandler) JoinTeam(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	membership, err := h.teamSvc.JoinTeam(c.Request.Context(), userID, c.Param("teamId"))
	if err != nil {
		h.handleMobileError(c, err)
		return
	}
	response.OK(c, membership)
}

// handleMobileError 移动端错误映射
// 与 Web 端的差异：未加入团队映射为 404 "No team found"
func (h *MobileHandler) handleMobileError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotInTeam):
		response.NotFound(c, "No team found")
	case errors.Is(err, service.ErrAccessDenied):
		response.Forbidden(c, service.ErrAccessDenied.Error())
	case errors.Is(err, service.ErrTeamNotFound):
		response.NotFound(c, service.ErrTeamNotFound.Error())
	case errors.Is(err, service.ErrAlreadyInTeam):
		response.BadRequest(c, service.ErrAlreadyInTeam.Error())
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, service.ErrUserNotFound.Error())
	default:
		response.InternalError(c)
	}
}
