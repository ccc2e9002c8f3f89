package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/luyongfugx/timeprint-web/internal/dto"
	"github.com/luyongfugx/timeprint-web/internal/service"
	"github.com/luyongfugx/timeprint-web/pkg/response"
)

// AuthHandler 会话模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// GetSession 查询当前会话
// GET /api/auth/session
// 未登录返回 { session: null, user: null }，状态码 200
func (h *AuthHandler) GetSession(c *gin.Context) {
	userID, email, expiresAt, ok := GetIdentity(c)
	if !ok {
		response.OK(c, dto.SessionResponse{})
		return
	}

	resp, err := h.authSvc.GetSession(c.Request.Context(), userID, email, expiresAt)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, resp)
}
