package dto

// ── 团队模块 DTO ──

// CreateTeamRequest 创建团队请求
type CreateTeamRequest struct {
	Name        string  `json:"name"        binding:"required,min=1,max=100"`
	Address     *string `json:"address"     binding:"omitempty,max=200"`
	Description *string `json:"description" binding:"omitempty,max=500"`
}

// UpdateTeamRequest 更新团队信息请求
type UpdateTeamRequest struct {
	Name        string  `json:"name"        binding:"required,min=1,max=100"`
	Address     *string `json:"address"     binding:"omitempty,max=200"`
	Description *string `json:"description" binding:"omitempty,max=500"`
}

// TeamResponse 团队信息响应
type TeamResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Address     *string `json:"address"`
	Description *string `json:"description"`
	UserID      string  `json:"user_id"`
	CreatedAt   string  `json:"created_at"`
}

// TeamDetailResponse 团队详情响应（含成员数）
type TeamDetailResponse struct {
	TeamResponse
	MemberCount int64 `json:"member_count"`
}

// MembershipResponse 当前用户的成员关系响应
type MembershipResponse struct {
	TeamID string        `json:"team_id"`
	Role   string        `json:"role"`
	Team   *TeamResponse `json:"teams,omitempty"`
}

// UpdateMemberRoleRequest 调整成员角色请求
// creator 角色不可被指派，也不可被变更
type UpdateMemberRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin member"`
}

// MemberResponse 团队成员响应（已合并用户资料）
type MemberResponse struct {
	ID         string  `json:"id"`
	UserID     string  `json:"user_id"`
	TeamID     string  `json:"team_id"`
	Role       string  `json:"role"`
	JoinedAt   string  `json:"joined_at"`
	UserName   string  `json:"user_name"`
	UserEmail  string  `json:"user_email"`
	UserAvatar *string `json:"user_avatar"`
}
