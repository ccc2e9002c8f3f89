package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/luyongfugx/timeprint-web/internal/model"
)

// CheckinFilter 打卡查询过滤条件
// 时间窗口为半开区间 [From, Before)；UserID 为空或 "all" 时不过滤
type CheckinFilter struct {
	From   *time.Time
	Before *time.Time
	UserID string
}

// CheckinRepository 打卡记录数据访问接口
type CheckinRepository interface {
	Create(ctx context.Context, rec *model.PhotoCheckin) error
	ListByTeam(ctx context.Context, teamID string, f *CheckinFilter) ([]model.PhotoCheckin, error)
	// ListUserIDsByTeam 只取 user_id 列，供统计去重使用
	ListUserIDsByTeam(ctx context.Context, teamID string, f *CheckinFilter) ([]string, error)
	ListByUser(ctx context.Context, userID string) ([]model.PhotoCheckin, error)
	Delete(ctx context.Context, id string) error
}

// checkinRepo CheckinRepository 的 GORM 实现
type checkinRepo struct {
	db *gorm.DB
}

// NewCheckinRepo 创建 CheckinRepository 实例
func NewCheckinRepo(db *gorm.DB) CheckinRepository {
	return &checkinRepo{db: db}
}

func (r *checkinRepo) Create(ctx context.Context, rec *model.PhotoCheckin) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

// applyFilter 拼接时间窗口与用户过滤
func applyFilter(q *gorm.DB, f *CheckinFilter) *gorm.DB {
	if f == nil {
		return q
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.Before != nil {
		q = q.Where("created_at < ?", *f.Before)
	}
	if f.UserID != "" && f.UserID != "all" {
		q = q.Where("user_id = ?", f.UserID)
	}
	return q
}

func (r *checkinRepo) ListByTeam(ctx context.Context, teamID string, f *CheckinFilter) ([]model.PhotoCheckin, error) {
	var records []model.PhotoCheckin
	q := r.db.WithContext(ctx).
		Where("team_id = ?", teamID)
	q = applyFilter(q, f)
	err := q.Order("created_at DESC").Find(&records).Error
	return records, err
}

func (r *checkinRepo) ListUserIDsByTeam(ctx context.Context, teamID string, f *CheckinFilter) ([]string, error) {
	var userIDs []string
	q := r.db.WithContext(ctx).
		Model(&model.PhotoCheckin{}).
		Where("team_id = ?", teamID)
	q = applyFilter(q, f)
	err := q.Pluck("user_id", &userIDs).Error
	return userIDs, err
}

func (r *checkinRepo) ListByUser(ctx context.Context, userID string) ([]model.PhotoCheckin, error) {
	var records []model.PhotoCheckin
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&records).Error
	return records, err
}

func (r *checkinRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.PhotoCheckin{}).Error
}
