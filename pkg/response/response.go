package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 统一响应约定（见 DESIGN.md 决策 1）：
// 成功时直接返回业务 JSON；失败时返回 { "error": string } 加 4xx/5xx 状态码。
// Web 端与 /api/mobile/* 共用同一套错误约定。

// ErrorBody 错误响应结构
type ErrorBody struct {
	Error string `json:"error"`
}

// OK 200 成功响应，payload 即响应体
func OK(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, payload)
}

// Error 通用错误响应
func Error(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, ErrorBody{Error: message})
}

// ── 常见快捷方式 ──

// BadRequest 400
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized 401
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// Forbidden 403
func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message)
}

// NotFound 404
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// TooManyRequests 429
func TooManyRequests(c *gin.Context, message string) {
	Error(c, http.StatusTooManyRequests, message)
}

// InternalError 500，统一兜底文案，不透出内部细节
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}
