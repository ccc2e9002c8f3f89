package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/luyongfugx/timeprint-web/internal/model"
)

// TeamMemberRepository 团队成员数据访问接口
// 每个用户至多一条成员记录（库级唯一约束），GetByUser 为单行查询
type TeamMemberRepository interface {
	Create(ctx context.Context, member *model.TeamMember) error
	GetByID(ctx context.Context, id string) (*model.TeamMember, error)
	GetByUser(ctx context.Context, userID string) (*model.TeamMember, error)
	GetByUserAndTeam(ctx context.Context, userID, teamID string) (*model.TeamMember, error)
	ListByTeam(ctx context.Context, teamID string) ([]model.TeamMember, error)
	CountByTeam(ctx context.Context, teamID string) (int64, error)
	UpdateRole(ctx context.Context, id, role string) error
	Delete(ctx context.Context, id string) error
}

// teamMemberRepo TeamMemberRepository 的 GORM 实现
type teamMemberRepo struct {
	db *gorm.DB
}

// NewTeamMemberRepo 创建 TeamMemberRepository 实例
func NewTeamMemberRepo(db *gorm.DB) TeamMemberRepository {
	return &teamMemberRepo{db: db}
}

func (r *teamMemberRepo) Create(ctx context.Context, member *model.TeamMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *teamMemberRepo) GetByID(ctx context.Context, id string) (*model.TeamMember, error) {
	var member model.TeamMember
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *teamMemberRepo) GetByUser(ctx context.Context, userID string) (*model.TeamMember, error) {
	var member model.TeamMember
	err := r.db.WithContext(ctx).
		Preload("Team").
		Where("user_id = ?", userID).
		First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *teamMemberRepo) GetByUserAndTeam(ctx context.Context, userID, teamID string) (*model.TeamMember, error) {
	var member model.TeamMember
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND team_id = ?", userID, teamID).
		First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *teamMemberRepo) ListByTeam(ctx context.Context, teamID string) ([]model.TeamMember, error) {
	var members []model.TeamMember
	err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("joined_at ASC").
		Find(&members).Error
	return members, err
}

func (r *teamMemberRepo) CountByTeam(ctx context.Context, teamID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.TeamMember{}).
		Where("team_id = ?", teamID).
		Count(&count).Error
	return count, err
}

func (r *teamMemberRepo) UpdateRole(ctx context.Context, id, role string) error {
	return r.db.WithContext(ctx).
		Model(&model.TeamMember{}).
		Where("id = ?", id).
		Update("role", role).Error
}

func (r *teamMemberRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.TeamMember{}).Error
}
