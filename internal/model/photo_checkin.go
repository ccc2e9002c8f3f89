package model

import "time"

// PhotoCheckin 照片打卡记录表 — 对应 photo_checkins
// 只增不改：仅 creator/admin 可删除，无更新操作
type PhotoCheckin struct {
	ID           string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID       string    `gorm:"type:uuid;not null"                             json:"user_id"`
	TeamID       string    `gorm:"type:uuid;not null"                             json:"team_id"`
	PhotoURL     string    `gorm:"type:text;not null"                             json:"photo_url"`
	Latitude     *float64  `gorm:"type:decimal(10,8)"                             json:"latitude"`
	Longitude    *float64  `gorm:"type:decimal(11,8)"                             json:"longitude"`
	LocationName *string   `gorm:"type:text"                                      json:"location_name"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (PhotoCheckin) TableName() string { return "photo_checkins" }
