package model

import "time"

// Team 团队表 — 对应 teams
type Team struct {
	ID          string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name        string    `gorm:"type:text;not null"                             json:"name"`
	Address     *string   `gorm:"type:text"                                      json:"address"`
	Description *string   `gorm:"type:text"                                      json:"description"`
	UserID      string    `gorm:"type:uuid"                                      json:"user_id"` // 创建者
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (Team) TableName() string { return "teams" }
