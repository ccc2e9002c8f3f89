package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/luyongfugx/timeprint-web/pkg/response"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果认证中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, "Unauthorized")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, "Unauthorized")
		return "", false
	}
	return s, true
}

// GetIdentity 提取可选身份（AuthOptional 路由用）。
// 未登录时返回 ok=false，不写入响应。
func GetIdentity(c *gin.Context) (userID, email string, expiresAt time.Time, ok bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return "", "", time.Time{}, false
	}
	userID, valid := v.(string)
	if !valid || userID == "" {
		return "", "", time.Time{}, false
	}
	if e, exists := c.Get("email"); exists {
		email, _ = e.(string)
	}
	if exp, exists := c.Get("token_exp"); exists {
		expiresAt, _ = exp.(time.Time)
	}
	return userID, email, expiresAt, true
}
