package service

import (
	"go.uber.org/zap"

	"github.com/luyongfugx/timeprint-web/config"
	"github.com/luyongfugx/timeprint-web/internal/repository"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth      AuthService
	Team      TeamService
	Checkin   CheckinService
	ShareLink ShareLinkService
	Export    ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:      NewAuthService(repo, logger),
		Team:      NewTeamService(repo, logger),
		Checkin:   NewCheckinService(repo, logger),
		ShareLink: NewShareLinkService(cfg, repo, logger),
		Export:    NewExportService(repo, logger),
	}
}
