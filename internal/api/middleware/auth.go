package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/luyongfugx/timeprint-web/pkg/jwt"
	"github.com/luyongfugx/timeprint-web/pkg/response"
)

// extractToken 先取 Authorization: Bearer，再回退到会话 Cookie
func extractToken(c *gin.Context, cookieName string) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}
	if token, err := c.Cookie(cookieName); err == nil {
		return token
	}
	return ""
}

// injectIdentity 将令牌声明写入上下文
func injectIdentity(c *gin.Context, claims *jwt.Claims) {
	c.Set("user_id", claims.UserID)
	c.Set("email", claims.Email)
	if claims.ExpiresAt != nil {
		c.Set("token_exp", claims.ExpiresAt.Time)
	} else {
		c.Set("token_exp", time.Time{})
	}
}

// AuthRequired 认证中间件
// 从 Bearer 头或会话 Cookie 中提取并验证 Access Token，失败时 401
func AuthRequired(jwtMgr *jwt.Manager, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c, cookieName)
		if token == "" {
			response.Unauthorized(c, "Unauthorized")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(token)
		if err != nil || claims.TokenType != "access" {
			response.Unauthorized(c, "Unauthorized")
			c.Abort()
			return
		}

		injectIdentity(c, claims)
		c.Next()
	}
}

// AuthOptional 可选认证中间件
// 令牌缺失或无效时不注入身份、继续放行，由 Handler 按匿名处理
func AuthOptional(jwtMgr *jwt.Manager, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c, cookieName)
		if token != "" {
			if claims, err := jwtMgr.ParseToken(token); err == nil && claims.TokenType == "access" {
				injectIdentity(c, claims)
			}
		}
		c.Next()
	}
}
