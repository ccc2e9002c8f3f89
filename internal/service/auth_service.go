package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/luyongfugx/timeprint-web/internal/dto"
	"github.com/luyongfugx/timeprint-web/internal/model"
	"github.com/luyongfugx/timeprint-web/internal/repository"
)

// AuthService 会话业务接口
// 登录由外部身份服务完成，这里只根据已验签的 Token 组装会话信息
type AuthService interface {
	GetSession(ctx context.Context, userID, email string, expiresAt time.Time) (*dto.SessionResponse, error)
}

type authService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(repo *repository.Repository, logger *zap.Logger) AuthService {
	return &authService{repo: repo, logger: logger}
}

func (s *authService) GetSession(ctx context.Context, userID, email string, expiresAt time.Time) (*dto.SessionResponse, error) {
	profile := &dto.UserProfile{ID: userID, Email: email}

	// 用户镜像可能尚未同步，缺行时回退为 Token 内的信息
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询用户镜像失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	if user != nil {
		profile = toUserProfile(user)
	}

	return &dto.SessionResponse{
		Session: &dto.SessionInfo{
			UserID:    userID,
			Email:     profile.Email,
			ExpiresAt: expiresAt.Unix(),
		},
		User: profile,
	}, nil
}

// toUserProfile 用户镜像行转公开资料
func toUserProfile(u *model.AppUser) *dto.UserProfile {
	return &dto.UserProfile{
		ID:    u.ID,
		Email: u.Email,
		UserMetadata: dto.UserMetadata{
			FullName:  u.Metadata.FullName,
			AvatarURL: u.Metadata.AvatarURL,
		},
	}
}
