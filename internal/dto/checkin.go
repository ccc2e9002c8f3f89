package dto

// ── 打卡模块 DTO ──

// CheckinListRequest 打卡查询参数
// dateTo 按日期闭区间处理：查询时向后延一个自然日
type CheckinListRequest struct {
	DateFrom string `form:"dateFrom" binding:"omitempty,datetime=2006-01-02"`
	DateTo   string `form:"dateTo"   binding:"omitempty,datetime=2006-01-02"`
	UserID   string `form:"userId"`
}

// CreateCheckinRequest 提交打卡请求
type CreateCheckinRequest struct {
	PhotoURL     string   `json:"photo_url"     binding:"required"`
	Latitude     *float64 `json:"latitude"      binding:"omitempty,min=-90,max=90"`
	Longitude    *float64 `json:"longitude"     binding:"omitempty,min=-180,max=180"`
	LocationName *string  `json:"location_name" binding:"omitempty,max=200"`
}

// CheckinRecordResponse 打卡记录响应（已合并用户资料）
type CheckinRecordResponse struct {
	ID           string   `json:"id"`
	UserID       string   `json:"user_id"`
	PhotoURL     string   `json:"photo_url"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	LocationName *string  `json:"location_name"`
	CreatedAt    string   `json:"created_at"`
	UserName     string   `json:"user_name"`
	UserAvatar   *string  `json:"user_avatar"`
}

// CheckinStats 打卡统计
type CheckinStats struct {
	TotalUsers        int `json:"totalUsers"`
	TotalCheckins     int `json:"totalCheckins"`
	ActiveUsers       int `json:"activeUsers"`
	ParticipationRate int `json:"participationRate"` // round(activeUsers/totalUsers*100)，totalUsers=0 时为 0
}

// TeamMemberBrief 统计页成员简要信息
type TeamMemberBrief struct {
	UserID     string  `json:"user_id"`
	UserName   string  `json:"user_name"`
	UserAvatar *string `json:"user_avatar"`
}

// CheckinStatsResponse 打卡统计响应
type CheckinStatsResponse struct {
	Stats       CheckinStats      `json:"stats"`
	TeamMembers []TeamMemberBrief `json:"teamMembers"`
}
