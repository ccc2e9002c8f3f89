package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/luyongfugx/timeprint-web/internal/model"
)

// TeamRepository 团队数据访问接口
type TeamRepository interface {
	Create(ctx context.Context, team *model.Team) error
	GetByID(ctx context.Context, id string) (*model.Team, error)
	Update(ctx context.Context, team *model.Team) error
}

// teamRepo TeamRepository 的 GORM 实现
type teamRepo struct {
	db *gorm.DB
}

// NewTeamRepo 创建 TeamRepository 实例
func NewTeamRepo(db *gorm.DB) TeamRepository {
	return &teamRepo{db: db}
}

func (r *teamRepo) Create(ctx context.Context, team *model.Team) error {
	return r.db.WithContext(ctx).Create(team).Error
}

func (r *teamRepo) GetByID(ctx context.Context, id string) (*model.Team, error) {
	var team model.Team
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&team).Error
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *teamRepo) Update(ctx context.Context, team *model.Team) error {
	return r.db.WithContext(ctx).Save(team).Error
}
