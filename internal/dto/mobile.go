package dto

// ── 移动端镜像接口 DTO ──
// 载荷字段名与 Web 端不同（image_url / location / 毫秒时间戳），错误约定与 Web 端统一

// MobileCheckin 移动端打卡记录
type MobileCheckin struct {
	ID         string  `json:"id"`
	UserID     string  `json:"user_id"`
	CreatedAt  int64   `json:"created_at"` // epoch 毫秒
	ImageURL   string  `json:"image_url"`
	Location   *string `json:"location"`
	UserName   string  `json:"user_name"`
	UserEmail  string  `json:"user_email"`
	UserAvatar *string `json:"user_avatar"`
}

// MobileHomeStats 首页当日统计
type MobileHomeStats struct {
	TotalMembers       int64    `json:"total_members"`
	TodayCheckinCount  int      `json:"today_checkin_count"`
	TodayCheckinUsers  int      `json:"today_checkin_users"`
	TodayCheckinPhotos []string `json:"today_checkin_photos"`
}

// MobileHomeResponse 首页响应
type MobileHomeResponse struct {
	Team          *TeamResponse   `json:"team"`
	Statistics    MobileHomeStats `json:"statistics"`
	TodayCheckins []MobileCheckin `json:"today_checkins"`
}

// MobileCheckinsResponse 团队全部打卡响应
type MobileCheckinsResponse struct {
	Team          *TeamResponse   `json:"team"`
	TodayCheckins []MobileCheckin `json:"today_checkins"`
}

// MobileMember 移动端成员条目
type MobileMember struct {
	ID         string  `json:"id"`
	UserID     string  `json:"user_id"`
	UserName   string  `json:"user_name"`
	UserEmail  string  `json:"user_email"`
	UserAvatar *string `json:"user_avatar"`
}

// MobileUserInfo 移动端用户信息
type MobileUserInfo struct {
	UserID     string  `json:"user_id"`
	UserName   string  `json:"user_name"`
	UserEmail  string  `json:"user_email"`
	UserAvatar *string `json:"user_avatar"`
}

// MobileUserResponse 用户主页响应（用户资料 + 其打卡流水）
type MobileUserResponse struct {
	Checkins []MobileCheckin `json:"checkins"`
	User     MobileUserInfo  `json:"user"`
}
