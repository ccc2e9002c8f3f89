package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/luyongfugx/timeprint-web/config"
	"github.com/luyongfugx/timeprint-web/internal/dto"
	"github.com/luyongfugx/timeprint-web/internal/model"
	"github.com/luyongfugx/timeprint-web/internal/repository"
)

// ── 分享链接模块业务错误 ──

var (
	ErrShareLinkMissingFields = errors.New("Missing required fields")
	ErrShareLinkNoFields      = errors.New("No valid fields to update")
	ErrShareLinkNotFound      = errors.New("Not found")
)

const (
	shareLinkDefaultLimit = 20
	shareLinkMaxLimit     = 500
)

// ShareLinkService 水印分享链接业务接口
type ShareLinkService interface {
	// Create 创建分享链接，返回完整分享 URL 与 8 位分享码
	Create(ctx context.Context, req *dto.CreateShareLinkRequest) (*dto.CreateShareLinkResponse, error)
	// GetPublic 公开查询：仅返回有效且未过期的记录
	GetPublic(ctx context.Context, code string) (*dto.GetShareLinkResponse, error)
	// Update 按分享码部分更新
	Update(ctx context.Context, code string, req *dto.UpdateShareLinkRequest) (*dto.UpdateShareLinkResponse, error)
	// Delete 按分享码物理删除
	Delete(ctx context.Context, code string) error
	// Search 管理端搜索：含过期与下架记录
	Search(ctx context.Context, req *dto.ShareLinkSearchRequest) (*dto.ShareLinkSearchResponse, error)
}

type shareLinkService struct {
	cfg    *config.ShareConfig
	repo   *repository.Repository
	logger *zap.Logger
}

// NewShareLinkService 创建 ShareLinkService 实例
func NewShareLinkService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) ShareLinkService {
	return &shareLinkService{cfg: &cfg.Share, repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *shareLinkService) Create(ctx context.Context, req *dto.CreateShareLinkRequest) (*dto.CreateShareLinkResponse, error) {
	if strings.TrimSpace(req.WatermarkName) == "" ||
		strings.TrimSpace(req.CoverImageURL) == "" ||
		strings.TrimSpace(req.JSONDownloadURL) == "" ||
		strings.TrimSpace(req.UserID) == "" {
		return nil, ErrShareLinkMissingFields
	}

	code, err := generateShareCode()
	if err != nil {
		s.logger.Error("生成分享码失败", zap.Error(err))
		return nil, err
	}

	link := &model.ShareLink{
		WatermarkName:   req.WatermarkName,
		CoverImageURL:   req.CoverImageURL,
		JSONDownloadURL: req.JSONDownloadURL,
		Status:          model.ShareLinkActive,
		ShareCode:       code,
		ExpireTime:      expireTimeFromType(req.ExpireType, time.Now()),
		UserID:          req.UserID,
	}
	if name := strings.TrimSpace(req.CompanyName); name != "" {
		link.CompanyName = &name
	}

	if err := s.repo.ShareLink.Create(ctx, link); err != nil {
		s.logger.Error("写入分享链接失败", zap.String("share_code", code), zap.Error(err))
		return nil, err
	}

	return &dto.CreateShareLinkResponse{
		Success:   true,
		ShareLink: s.buildShareURL(code),
		ShareCode: code,
	}, nil
}

// generateShareCode 生成 4 字节随机数的大写十六进制分享码
func generateShareCode() (string, error) {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(buf[:])), nil
}

// buildShareURL 拼接分享页地址：<base>/share?code=<code>
func (s *shareLinkService) buildShareURL(code string) string {
	u, err := url.Parse(s.cfg.BaseURL)
	if err != nil {
		return s.cfg.BaseURL + "/share?code=" + code
	}
	u.Path = "/share"
	u.RawQuery = url.Values{"code": {code}}.Encode()
	return u.String()
}

// ────────────────────── GetPublic ──────────────────────

func (s *shareLinkService) GetPublic(ctx context.Context, code string) (*dto.GetShareLinkResponse, error) {
	now := time.Now()
	link, err := s.repo.ShareLink.GetActiveByCode(ctx, code, now.Unix())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShareLinkNotFound
		}
		s.logger.Error("查询分享链接失败", zap.String("share_code", code), zap.Error(err))
		return nil, err
	}
	return &dto.GetShareLinkResponse{ShareLink: toShareLinkResponse(link, now)}, nil
}

// ────────────────────── Update ──────────────────────

func (s *shareLinkService) Update(ctx context.Context, code string, req *dto.UpdateShareLinkRequest) (*dto.UpdateShareLinkResponse, error) {
	fields := map[string]interface{}{}
	if req.WatermarkName != nil {
		fields["watermark_name"] = *req.WatermarkName
	}
	if req.CompanyName != nil {
		fields["company_name"] = *req.CompanyName
	}
	if req.CoverImageURL != nil {
		fields["cover_image_url"] = *req.CoverImageURL
	}
	if req.JSONDownloadURL != nil {
		fields["json_download_url"] = *req.JSONDownloadURL
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.ExpireType != nil {
		fields["expire_time"] = expireTimeFromType(*req.ExpireType, time.Now())
	}
	if len(fields) == 0 {
		return nil, ErrShareLinkNoFields
	}

	link, err := s.repo.ShareLink.UpdateByCode(ctx, code, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShareLinkNotFound
		}
		s.logger.Error("更新分享链接失败", zap.String("share_code", code), zap.Error(err))
		return nil, err
	}

	return &dto.UpdateShareLinkResponse{
		Success: true,
		Updated: toShareLinkResponse(link, time.Now()),
	}, nil
}

// ────────────────────── Delete ──────────────────────

func (s *shareLinkService) Delete(ctx context.Context, code string) error {
	if err := s.repo.ShareLink.DeleteByCode(ctx, code); err != nil {
		s.logger.Error("删除分享链接失败", zap.String("share_code", code), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Search ──────────────────────

func (s *shareLinkService) Search(ctx context.Context, req *dto.ShareLinkSearchRequest) (*dto.ShareLinkSearchResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 {
		limit = shareLinkDefaultLimit
	}
	if limit > shareLinkMaxLimit {
		limit = shareLinkMaxLimit
	}

	links, err := s.repo.ShareLink.Search(ctx, req.Keyword, (page-1)*limit, limit)
	if err != nil {
		s.logger.Error("搜索分享链接失败", zap.String("keyword", req.Keyword), zap.Error(err))
		return nil, err
	}

	now := time.Now()
	results := make([]dto.ShareLinkResponse, 0, len(links))
	for i := range links {
		results = append(results, toShareLinkResponse(&links[i], now))
	}

	return &dto.ShareLinkSearchResponse{
		Results: results,
		Page:    page,
		PerPage: limit,
	}, nil
}

// ── 到期类型换算 ──

// expireTimeFromType 到期类型转绝对到期秒：1 三十天 / 2 一天 / 3 一小时，其余永久
func expireTimeFromType(expireType int, now time.Time) int64 {
	switch expireType {
	case 1:
		return now.AddDate(0, 0, 30).Unix()
	case 2:
		return now.AddDate(0, 0, 1).Unix()
	case 3:
		return now.Unix() + 3600
	default:
		return 0
	}
}

// expireTypeFromTime 由剩余时长近似还原到期类型（有损，取整不可逆）
func expireTypeFromTime(expireTime int64, now time.Time) int {
	if expireTime == 0 {
		return 0
	}
	delta := expireTime - now.Unix()
	switch {
	case delta <= 3600:
		return 3
	case delta <= 86400:
		return 2
	default:
		return 1
	}
}

// toShareLinkResponse 分享链接转响应（附带还原的 expire_type）
func toShareLinkResponse(link *model.ShareLink, now time.Time) dto.ShareLinkResponse {
	return dto.ShareLinkResponse{
		ID:              link.ID,
		WatermarkName:   link.WatermarkName,
		CompanyName:     link.CompanyName,
		CoverImageURL:   link.CoverImageURL,
		JSONDownloadURL: link.JSONDownloadURL,
		Status:          link.Status,
		ShareCode:       link.ShareCode,
		ExpireTime:      link.ExpireTime,
		ExpireType:      expireTypeFromTime(link.ExpireTime, now),
		UserID:          link.UserID,
		CreatedAt:       link.CreatedAt.Format(time.RFC3339),
	}
}
