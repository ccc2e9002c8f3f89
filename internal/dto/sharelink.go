package dto

// ── 水印分享链接 DTO ──

// 到期类型枚举：0 永久 / 1 三十天 / 2 一天 / 3 一小时
// 存储为绝对到期秒，expire_type 仅在响应中近似还原（见 DESIGN.md 决策 2）

// CreateShareLinkRequest 创建分享链接请求
type CreateShareLinkRequest struct {
	WatermarkName   string `json:"watermarkName"   binding:"required"`
	CompanyName     string `json:"companyName"`
	CoverImageURL   string `json:"coverImageUrl"   binding:"required,url"`
	JSONDownloadURL string `json:"jsonDownloadUrl" binding:"required,url"`
	UserID          string `json:"userId"          binding:"required"`
	ExpireType      int    `json:"expireType"      binding:"omitempty,min=0,max=3"`
}

// CreateShareLinkResponse 创建分享链接响应
type CreateShareLinkResponse struct {
	Success   bool   `json:"success"`
	ShareLink string `json:"shareLink"`
	ShareCode string `json:"shareCode"`
}

// UpdateShareLinkRequest 部分更新请求
// 所有字段可选；若没有任何可识别字段则判为参数错误
type UpdateShareLinkRequest struct {
	WatermarkName   *string `json:"watermarkName"`
	CompanyName     *string `json:"companyName"`
	CoverImageURL   *string `json:"coverImageUrl"   binding:"omitempty,url"`
	JSONDownloadURL *string `json:"jsonDownloadUrl" binding:"omitempty,url"`
	Status          *int    `json:"status"          binding:"omitempty,oneof=0 -1"`
	ExpireType      *int    `json:"expireType"      binding:"omitempty,min=0,max=3"`
}

// ShareLinkResponse 分享链接响应
type ShareLinkResponse struct {
	ID              string  `json:"id"`
	WatermarkName   string  `json:"watermark_name"`
	CompanyName     *string `json:"company_name"`
	CoverImageURL   string  `json:"cover_image_url"`
	JSONDownloadURL string  `json:"json_download_url"`
	Status          int     `json:"status"`
	ShareCode       string  `json:"share_code"`
	ExpireTime      int64   `json:"expire_time"`
	ExpireType      int     `json:"expire_type"`
	UserID          string  `json:"user_id"`
	CreatedAt       string  `json:"created_at"`
}

// GetShareLinkResponse 公开单条查询响应
type GetShareLinkResponse struct {
	ShareLink ShareLinkResponse `json:"shareLink"`
}

// UpdateShareLinkResponse 更新响应
type UpdateShareLinkResponse struct {
	Success bool              `json:"success"`
	Updated ShareLinkResponse `json:"updated"`
}

// ShareLinkSearchRequest 管理端搜索请求
type ShareLinkSearchRequest struct {
	Keyword string `json:"keyword"`
	Page    int    `json:"page"  binding:"omitempty,min=1"`
	Limit   int    `json:"limit" binding:"omitempty,min=1,max=500"`
}

// ShareLinkSearchResponse 管理端搜索响应
// 管理视角包含已过期与已下架的记录
type ShareLinkSearchResponse struct {
	Results []ShareLinkResponse `json:"results"`
	Page    int                 `json:"page"`
	PerPage int                 `json:"perPage"`
}
