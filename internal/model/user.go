package model

import "time"

// AppUser 用户只读镜像表 — 对应 app_users
// 数据归外部身份服务所有，本服务只读
type AppUser struct {
	ID        string       `gorm:"type:uuid;primaryKey"                json:"id"`
	Email     string       `gorm:"type:varchar(255);not null"          json:"email"`
	Metadata  UserMetadata `gorm:"column:user_metadata;type:jsonb"     json:"user_metadata"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"  json:"created_at"`
}

// TableName 指定表名
func (AppUser) TableName() string { return "app_users" }

// DisplayName 展示名，资料缺失时回退占位文案
func (u *AppUser) DisplayName() string {
	if u.Metadata.FullName != "" {
		return u.Metadata.FullName
	}
	return "未知用户"
}
