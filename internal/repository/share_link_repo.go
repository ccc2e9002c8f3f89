package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/luyongfugx/timeprint-web/internal/model"
)

// ShareLinkRepository 水印分享链接数据访问接口
type ShareLinkRepository interface {
	Create(ctx context.Context, link *model.ShareLink) error
	GetByCode(ctx context.Context, code string) (*model.ShareLink, error)
	// GetActiveByCode 公开查询：status=0 且未过期（expire_time=0 或 > nowSec）
	GetActiveByCode(ctx context.Context, code string, nowSec int64) (*model.ShareLink, error)
	// UpdateByCode 按 share_code 部分更新并返回更新后的记录
	UpdateByCode(ctx context.Context, code string, fields map[string]interface{}) (*model.ShareLink, error)
	DeleteByCode(ctx context.Context, code string) error
	// Search 管理端搜索：含已过期与已下架记录，按创建时间倒序
	Search(ctx context.Context, keyword string, offset, limit int) ([]model.ShareLink, error)
}

// shareLinkRepo ShareLinkRepository 的 GORM 实现
type shareLinkRepo struct {
	db *gorm.DB
}

// NewShareLinkRepo 创建 ShareLinkRepository 实例
func NewShareLinkRepo(db *gorm.DB) ShareLinkRepository {
	return &shareLinkRepo{db: db}
}

func (r *shareLinkRepo) Create(ctx context.Context, link *model.ShareLink) error {
	return r.db.WithContext(ctx).Create(link).Error
}

func (r *shareLinkRepo) GetByCode(ctx context.Context, code string) (*model.ShareLink, error) {
	var link model.ShareLink
	err := r.db.WithContext(ctx).
		Where("share_code = ?", code).
		First(&link).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *shareLinkRepo) GetActiveByCode(ctx context.Context, code string, nowSec int64) (*model.ShareLink, error) {
	var link model.ShareLink
	err := r.db.WithContext(ctx).
		Where("share_code = ? AND status = ?", code, model.ShareLinkActive).
		Where("expire_time = 0 OR expire_time > ?", nowSec).
		First(&link).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *shareLinkRepo) UpdateByCode(ctx context.Context, code string, fields map[string]interface{}) (*model.ShareLink, error) {
	result := r.db.WithContext(ctx).
		Model(&model.ShareLink{}).
		Where("share_code = ?", code).
		Updates(fields)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByCode(ctx, code)
}

func (r *shareLinkRepo) DeleteByCode(ctx context.Context, code string) error {
	return r.db.WithContext(ctx).
		Where("share_code = ?", code).
		Delete(&model.ShareLink{}).Error
}

// escapeLike 转义 ILIKE 通配符，防止关键字注入通配
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (r *shareLinkRepo) Search(ctx context.Context, keyword string, offset, limit int) ([]model.ShareLink, error) {
	var links []model.ShareLink
	q := r.db.WithContext(ctx).Model(&model.ShareLink{})

	if kw := strings.TrimSpace(keyword); kw != "" {
		pattern := "%" + escapeLike(kw) + "%"
		q = q.Where("watermark_name ILIKE ? OR company_name ILIKE ?", pattern, pattern)
	}

	err := q.Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&links).Error
	return links, err
}
