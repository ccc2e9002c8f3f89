package model

import "time"

// ── 成员角色 ──
// 角色只存在于成员关系上：creator 唯一且不可变更，admin 受创建者委派，member 普通成员
const (
	RoleCreator = "creator"
	RoleAdmin   = "admin"
	RoleMember  = "member"
)

// TeamMember 团队成员表 — 对应 team_members
// user_id 唯一约束保证每个用户至多属于一个团队
type TeamMember struct {
	ID       string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID   string    `gorm:"type:uuid;not null;uniqueIndex"                 json:"user_id"`
	TeamID   string    `gorm:"type:uuid;not null"                             json:"team_id"`
	Role     string    `gorm:"type:varchar(20);not null;default:'member'"     json:"role"`
	JoinedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"joined_at"`

	// 关联
	Team *Team `gorm:"foreignKey:TeamID;references:ID" json:"teams,omitempty"`
}

// TableName 指定表名
func (TeamMember) TableName() string { return "team_members" }

// CanManage 是否具备管理权限（删除打卡、编辑团队信息、查看成员管理列表）
func (m *TeamMember) CanManage() bool {
	return m.Role == RoleCreator || m.Role == RoleAdmin
}
