package model

import "time"

// ── 分享链接状态 ──
const (
	ShareLinkActive  = 0  // 有效
	ShareLinkRetired = -1 // 已下架（可恢复）
)

// ShareLink 水印分享链接表 — 对应 watermarks_share_links
// expire_time 为绝对到期秒（0 表示永不过期），过期是读取时的被动判断，不改状态
type ShareLink struct {
	ID              string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	WatermarkName   string    `gorm:"type:text;not null"                             json:"watermark_name"`
	CompanyName     *string   `gorm:"type:text"                                      json:"company_name"`
	CoverImageURL   string    `gorm:"type:text;not null"                             json:"cover_image_url"`
	JSONDownloadURL string    `gorm:"column:json_download_url;type:text;not null"    json:"json_download_url"`
	Status          int       `gorm:"not null;default:0"                             json:"status"`
	ShareCode       string    `gorm:"type:varchar(16);not null;uniqueIndex"          json:"share_code"`
	ExpireTime      int64     `gorm:"not null;default:0"                             json:"expire_time"`
	UserID          string    `gorm:"type:uuid;not null"                             json:"user_id"`
	CreatedAt       time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (ShareLink) TableName() string { return "watermarks_share_links" }

// Expired 是否已过期（expire_time==0 永不过期）
func (l *ShareLink) Expired(now time.Time) bool {
	return l.ExpireTime > 0 && l.ExpireTime <= now.Unix()
}
