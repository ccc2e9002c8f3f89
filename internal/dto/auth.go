package dto

// ── 会话模块 DTO ──

// UserMetadata 用户资料元数据（来自身份服务）
type UserMetadata struct {
	FullName  string `json:"full_name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// UserProfile 用户公开资料
type UserProfile struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	UserMetadata UserMetadata `json:"user_metadata"`
}

// SessionInfo 当前会话信息
type SessionInfo struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email,omitempty"`
	ExpiresAt int64  `json:"expires_at"` // epoch 秒
}

// SessionResponse 会话查询响应
// 未登录时 session 与 user 均为 null，状态码仍为 200
type SessionResponse struct {
	Session *SessionInfo `json:"session"`
	User    *UserProfile `json:"user"`
}
