package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/luyongfugx/timeprint-web/config"
	"github.com/luyongfugx/timeprint-web/internal/api/handler"
	"github.com/luyongfugx/timeprint-web/internal/api/middleware"
	"github.com/luyongfugx/timeprint-web/pkg/jwt"
	"github.com/luyongfugx/timeprint-web/pkg/redis"
)

// 公开分享接口的限流参数：单 IP 每分钟 60 次
const (
	shareRateLimit  = 60
	shareRateWindow = time.Minute
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		// 会话查询（匿名可访问，未登录返回空会话）
		api.GET("/auth/session", middleware.AuthOptional(jwtMgr, cfg.Auth.CookieName), h.Auth.GetSession)

		// 水印分享链接（公开接口，限流）
		applink := api.Group("/applink")
		applink.Use(middleware.RateLimit(rdb, shareRateLimit, shareRateWindow))
		{
			applink.POST("", h.ShareLink.Create)
			applink.POST("/search", h.ShareLink.Search)
			applink.GET("/:shareCode", h.ShareLink.Get)
			applink.PUT("/:shareCode", h.ShareLink.Update)
			applink.DELETE("/:shareCode", h.ShareLink.Delete)
		}

		// 需要认证的路由
		authorized := api.Group("")
		authorized.Use(middleware.AuthRequired(jwtMgr, cfg.Auth.CookieName))
		{
			// 团队模块
			teams := authorized.Group("/teams")
			{
				teams.POST("", h.Team.CreateTeam)
				teams.GET("/membership", h.Team.GetMembership)
				teams.GET("/:teamId", h.Team.GetTeam)
				teams.PUT("/:teamId", h.Team.UpdateTeam)
				teams.GET("/:teamId/members", h.Team.ListMembers)
				teams.PUT("/:teamId/members/:memberId", h.Team.UpdateMemberRole)
				teams.DELETE("/:teamId/members/:memberId", h.Team.RemoveMember)
			}

			// 打卡模块
			checkins := authorized.Group("/checkins")
			{
				checkins.GET("", h.Checkin.List)
				checkins.POST("", h.Checkin.Create)
				checkins.GET("/stats", h.Checkin.Stats)
				checkins.GET("/export", h.Export.ExportCheckins)
				checkins.DELETE("/:checkinId", h.Checkin.Delete)
			}

			// 移动端镜像接口
			mobile := authorized.Group("/mobile")
			{
				mobile.GET("/home", h.Mobile.Home)
				mobile.GET("/getcheckins", h.Mobile.GetCheckins)
				mobile.GET("/members", h.Mobile.Members)
				mobile.GET("/user", h.Mobile.User)
				mobile.POST("/checkin", h.Mobile.Checkin)
				mobile.POST("/teams", h.Mobile.CreateTeam)
				mobile.GET("/teams/join/:teamId", h.Mobile.JoinTeam)
				mobile.GET("/teams/:teamId", h.Mobile.GetTeamInfo)
			}
		}
	}

	return r
}
