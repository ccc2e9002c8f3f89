package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/luyongfugx/timeprint-web/internal/model"
)

// UserRepository 用户镜像数据访问接口（只读）
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*model.AppUser, error)
	// ListByIDs 批量查询用户资料，用于二段式关联（先查业务行，再按 user_id 合并资料）
	ListByIDs(ctx context.Context, ids []string) ([]model.AppUser, error)
}

// userRepo UserRepository 的 GORM 实现
type userRepo struct {
	db *gorm.DB
}

// NewUserRepo 创建 UserRepository 实例
func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.AppUser, error) {
	var user model.AppUser
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) ListByIDs(ctx context.Context, ids []string) ([]model.AppUser, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []model.AppUser
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&users).Error
	return users, err
}
