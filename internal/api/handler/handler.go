package handler

import "github.com/luyongfugx/timeprint-web/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth      *AuthHandler
	Team      *TeamHandler
	Checkin   *CheckinHandler
	ShareLink *ShareLinkHandler
	Mobile    *MobileHandler
	Export    *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(svc.Auth),
		Team:      NewTeamHandler(svc.Team),
		Checkin:   NewCheckinHandler(svc.Checkin),
		ShareLink: NewShareLinkHandler(svc.ShareLink),
		Mobile:    NewMobileHandler(svc.Team, svc.Checkin),
		Export:    NewExportHandler(svc.Export),
	}
}
