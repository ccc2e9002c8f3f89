package service

import (
	"context"
	"errors"
	"math"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/luyongfugx/timeprint-web/internal/dto"
	"github.com/luyongfugx/timeprint-web/internal/model"
	"github.com/luyongfugx/timeprint-web/internal/repository"
)

// ── 打卡模块业务错误 ──

var ErrUserNotFound = errors.New("User not found")

// CheckinService 打卡业务接口
type CheckinService interface {
	// List 查询团队打卡记录，时间倒序，已合并用户资料
	List(ctx context.Context, callerID string, req *dto.CheckinListRequest) ([]dto.CheckinRecordResponse, error)
	// Create 提交打卡；团队以调用者成员关系为准
	Create(ctx context.Context, callerID string, req *dto.CreateCheckinRequest) (*model.PhotoCheckin, error)
	// Delete 删除打卡记录；creator/admin
	Delete(ctx context.Context, callerID, checkinID string) error
	// Stats 打卡统计：成员总数、打卡总数、去重打卡人数、参与率
	Stats(ctx context.Context, callerID string, req *dto.CheckinListRequest) (*dto.CheckinStatsResponse, error)

	// ── 移动端 ──

	// HomeSummary 首页：团队信息 + 当日统计 + 当日打卡
	HomeSummary(ctx context.Context, callerID string) (*dto.MobileHomeResponse, error)
	// TeamFeed 团队全部打卡流水
	TeamFeed(ctx context.Context, callerID string) (*dto.MobileCheckinsResponse, error)
	// MembersFlat 团队成员扁平列表
	MembersFlat(ctx context.Context, callerID string) ([]dto.MobileMember, error)
	// UserFeed 指定用户的资料与打卡流水
	UserFeed(ctx context.Context, queryUserID string) (*dto.MobileUserResponse, error)
}

type checkinService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCheckinService 创建 CheckinService 实例
func NewCheckinService(repo *repository.Repository, logger *zap.Logger) CheckinService {
	return &checkinService{repo: repo, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *checkinService) List(ctx context.Context, callerID string, req *dto.CheckinListRequest) ([]dto.CheckinRecordResponse, error) {
	membership, err := s.requireMembership(ctx, callerID)
	if err != nil {
		return nil, err
	}

	filter, err := buildCheckinFilter(req)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.Checkin.ListByTeam(ctx, membership.TeamID, filter)
	if err != nil {
		s.logger.Error("查询打卡记录失败", zap.String("team_id", membership.TeamID), zap.Error(err))
		return nil, err
	}

	userMap, err := s.loadUserMapForCheckins(ctx, records)
	if err != nil {
		return nil, err
	}

	result := make([]dto.CheckinRecordResponse, 0, len(records))
	for i := range records {
		result = append(result, toCheckinResponse(&records[i], userMap))
	}
	return result, nil
}

// ────────────────────── Create ──────────────────────

func (s *checkinService) Create(ctx context.Context, callerID string, req *dto.CreateCheckinRequest) (*model.PhotoCheckin, error) {
	membership, err := s.requireMembership(ctx, callerID)
	if err != nil {
		return nil, err
	}

	rec := &model.PhotoCheckin{
		UserID:       callerID,
		TeamID:       membership.TeamID,
		PhotoURL:     req.PhotoURL,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		LocationName: req.LocationName,
	}
	if err := s.repo.Checkin.Create(ctx, rec); err != nil {
		s.logger.Error("写入打卡记录失败", zap.String("team_id", membership.TeamID), zap.Error(err))
		return nil, err
	}
	return rec, nil
}

// ────────────────────── Delete ──────────────────────

func (s *checkinService) Delete(ctx context.Context, callerID, checkinID string) error {
	membership, err := s.requireMembership(ctx, callerID)
	if err != nil {
		return err
	}
	if !membership.CanManage() {
		return ErrAccessDenied
	}

	if err := s.repo.Checkin.Delete(ctx, checkinID); err != nil {
		s.logger.Error("删除打卡记录失败", zap.String("checkin_id", checkinID), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Stats ──────────────────────

func (s *checkinService) Stats(ctx context.Context, callerID string, req *dto.CheckinListRequest) (*dto.CheckinStatsResponse, error) {
	membership, err := s.requireMembership(ctx, callerID)
	if err != nil {
		return nil, err
	}

	members, err := s.repo.TeamMember.ListByTeam(ctx, membership.TeamID)
	if err != nil {
		s.logger.Error("查询团队成员失败", zap.Error(err))
		return nil, err
	}

	memberIDs := make([]string, 0, len(members))
	for _, m := range members {
		memberIDs = append(memberIDs, m.UserID)
	}
	userMap, err := s.loadUserMap(ctx, memberIDs)
	if err != nil {
		return nil, err
	}

	teamMembers := make([]dto.TeamMemberBrief, 0, len(members))
	for _, m := range members {
		brief := dto.TeamMemberBrief{UserID: m.UserID, UserName: "未知用户"}
		if u, ok := userMap[m.UserID]; ok {
			brief.UserName = u.DisplayName()
			if u.Metadata.AvatarURL != "" {
				avatar := u.Metadata.AvatarURL
				brief.UserAvatar = &avatar
			}
		}
		teamMembers = append(teamMembers, brief)
	}

	filter, err := buildCheckinFilter(req)
	if err != nil {
		return nil, err
	}
	checkinUserIDs, err := s.repo.Checkin.ListUserIDsByTeam(ctx, membership.TeamID, filter)
	if err != nil {
		s.logger.Error("查询打卡统计失败", zap.Error(err))
		return nil, err
	}

	return &dto.CheckinStatsResponse{
		Stats:       computeStats(len(members), checkinUserIDs),
		TeamMembers: teamMembers,
	}, nil
}

// computeStats 统计打卡总数、去重人数与参与率
// participationRate = round(activeUsers/totalUsers*100)，totalUsers 为 0 时定义为 0
func computeStats(totalUsers int, checkinUserIDs []string) dto.CheckinStats {
	distinct := make(map[string]struct{}, len(checkinUserIDs))
	for _, id := range checkinUserIDs {
		distinct[id] = struct{}{}
	}
	activeUsers := len(distinct)

	rate := 0
	if totalUsers > 0 {
		rate = int(math.Round(float64(activeUsers) / float64(totalUsers) * 100))
	}

	return dto.CheckinStats{
		TotalUsers:        totalUsers,
		TotalCheckins:     len(checkinUserIDs),
		ActiveUsers:       activeUsers,
		ParticipationRate: rate,
	}
}

// ────────────────────── 移动端 ──────────────────────

func (s *checkinService) HomeSummary(ctx context.Context, callerID string) (*dto.MobileHomeResponse, error) {
	membership, err := s.requireMembership(ctx, callerID)
	if err != nil {
		return nil, err
	}

	totalMembers, err := s.repo.TeamMember.CountByTeam(ctx, membership.TeamID)
	if err != nil {
		s.logger.Error("统计团队成员数失败", zap.Error(err))
		return nil, err
	}

	// 当日窗口 [今日零点, 明日零点)
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 1)
	filter := &repository.CheckinFilter{From: &start, Before: &end}

	records, err := s.repo.Checkin.ListByTeam(ctx, membership.TeamID, filter)
	if err != nil {
		s.logger.Error("查询当日打卡失败", zap.Error(err))
		return nil, err
	}

	distinct := make(map[string]struct{}, len(records))
	photos := make([]string, 0, len(records))
	for i := range records {
		distinct[records[i].UserID] = struct{}{}
		if records[i].PhotoURL != "" {
			photos = append(photos, records[i].PhotoURL)
		}
	}

	checkins, err := s.toMobileCheckins(ctx, records)
	if err != nil {
		return nil, err
	}

	resp := &dto.MobileHomeResponse{
		Statistics: dto.MobileHomeStats{
			TotalMembers:       totalMembers,
			TodayCheckinCount:  len(records),
			TodayCheckinUsers:  len(distinct),
			TodayCheckinPhotos: photos,
		},
		TodayCheckins: checkins,
	}
	if membership.Team != nil {
		resp.Team = toTeamResponse(membership.Team)
	}
	return resp, nil
}

func (s *checkinService) TeamFeed(ctx context.Context, callerID string) (*dto.MobileCheckinsResponse, error) {
	membership, err := s.requireMembership(ctx, callerID)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.Checkin.ListByTeam(ctx, membership.TeamID, nil)
	if err != nil {
		s.logger.Error("查询团队打卡失败", zap.Error(err))
		return nil, err
	}

	checkins, err := s.toMobileCheckins(ctx, records)
	if err != nil {
		return nil, err
	}

	resp := &dto.MobileCheckinsResponse{TodayCheckins: checkins}
	if membership.Team != nil {
		resp.Team = toTeamResponse(membership.Team)
	}
	return resp, nil
}

func (s *checkinService) MembersFlat(ctx context.Context, callerID string) ([]dto.MobileMember, error) {
	membership, err := s.requireMembership(ctx, callerID)
	if err != nil {
		return nil, err
	}

	members, err := s.repo.TeamMember.ListByTeam(ctx, membership.TeamID)
	if err != nil {
		s.logger.Error("查询团队成员失败", zap.Error(err))
		return nil, err
	}

	memberIDs := make([]string, 0, len(members))
	for _, m := range members {
		memberIDs = append(memberIDs, m.UserID)
	}
	userMap, err := s.loadUserMap(ctx, memberIDs)
	if err != nil {
		return nil, err
	}

	result := make([]dto.MobileMember, 0, len(members))
	for _, m := range members {
		item := dto.MobileMember{ID: m.ID, UserID: m.UserID}
		if u, ok := userMap[m.UserID]; ok {
			item.UserName = u.Metadata.FullName
			item.UserEmail = u.Email
			if u.Metadata.AvatarURL != "" {
				avatar := u.Metadata.AvatarURL
				item.UserAvatar = &avatar
			}
		}
		result = append(result, item)
	}
	return result, nil
}

func (s *checkinService) UserFeed(ctx context.Context, queryUserID string) (*dto.MobileUserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, queryUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("user_id", queryUserID), zap.Error(err))
		return nil, err
	}

	records, err := s.repo.Checkin.ListByUser(ctx, queryUserID)
	if err != nil {
		s.logger.Error("查询用户打卡失败", zap.String("user_id", queryUserID), zap.Error(err))
		return nil, err
	}

	userMap := map[string]*model.AppUser{user.ID: user}
	checkins := make([]dto.MobileCheckin, 0, len(records))
	for i := range records {
		checkins = append(checkins, toMobileCheckin(&records[i], userMap))
	}

	info := dto.MobileUserInfo{
		UserID:    user.ID,
		UserName:  user.DisplayName(),
		UserEmail: user.Email,
	}
	if user.Metadata.AvatarURL != "" {
		avatar := user.Metadata.AvatarURL
		info.UserAvatar = &avatar
	}

	return &dto.MobileUserResponse{Checkins: checkins, User: info}, nil
}

// ── 内部辅助方法 ──

// requireMembership 解析调用者的成员关系，未加入团队时返回 ErrNotInTeam
func (s *checkinService) requireMembership(ctx context.Context, callerID string) (*model.TeamMember, error) {
	membership, err := s.repo.TeamMember.GetByUser(ctx, callerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotInTeam
		}
		s.logger.Error("查询成员关系失败", zap.Error(err))
		return nil, err
	}
	return membership, nil
}

func (s *checkinService) loadUserMap(ctx context.Context, userIDs []string) (map[string]*model.AppUser, error) {
	users, err := s.repo.User.ListByIDs(ctx, userIDs)
	if err != nil {
		s.logger.Error("批量查询用户资料失败", zap.Error(err))
		return nil, err
	}
	userMap := make(map[string]*model.AppUser, len(users))
	for i := range users {
		userMap[users[i].ID] = &users[i]
	}
	return userMap, nil
}

func (s *checkinService) loadUserMapForCheckins(ctx context.Context, records []model.PhotoCheckin) (map[string]*model.AppUser, error) {
	seen := make(map[string]struct{}, len(records))
	userIDs := make([]string, 0, len(records))
	for i := range records {
		if _, ok := seen[records[i].UserID]; ok {
			continue
		}
		seen[records[i].UserID] = struct{}{}
		userIDs = append(userIDs, records[i].UserID)
	}
	return s.loadUserMap(ctx, userIDs)
}

func (s *checkinService) toMobileCheckins(ctx context.Context, records []model.PhotoCheckin) ([]dto.MobileCheckin, error) {
	userMap, err := s.loadUserMapForCheckins(ctx, records)
	if err != nil {
		return nil, err
	}
	result := make([]dto.MobileCheckin, 0, len(records))
	for i := range records {
		result = append(result, toMobileCheckin(&records[i], userMap))
	}
	return result, nil
}

// buildCheckinFilter 解析日期窗口
// dateTo 向后延一个自然日，使同日区间覆盖整天
func buildCheckinFilter(req *dto.CheckinListRequest) (*repository.CheckinFilter, error) {
	filter := &repository.CheckinFilter{UserID: req.UserID}
	if req.DateFrom != "" {
		from, err := time.ParseInLocation("2006-01-02", req.DateFrom, time.Local)
		if err != nil {
			return nil, err
		}
		filter.From = &from
	}
	if req.DateTo != "" {
		to, err := time.ParseInLocation("2006-01-02", req.DateTo, time.Local)
		if err != nil {
			return nil, err
		}
		before := to.AddDate(0, 0, 1)
		filter.Before = &before
	}
	return filter, nil
}

// toCheckinResponse 打卡记录转 Web 端响应
func toCheckinResponse(rec *model.PhotoCheckin, userMap map[string]*model.AppUser) dto.CheckinRecordResponse {
	resp := dto.CheckinRecordResponse{
		ID:           rec.ID,
		UserID:       rec.UserID,
		PhotoURL:     rec.PhotoURL,
		Latitude:     rec.Latitude,
		Longitude:    rec.Longitude,
		LocationName: rec.LocationName,
		CreatedAt:    rec.CreatedAt.Format(time.RFC3339),
		UserName:     "未知用户",
	}
	if u, ok := userMap[rec.UserID]; ok {
		resp.UserName = u.DisplayName()
		if u.Metadata.AvatarURL != "" {
			avatar := u.Metadata.AvatarURL
			resp.UserAvatar = &avatar
		}
	}
	return resp
}

// toMobileCheckin 打卡记录转移动端响应（毫秒时间戳）
func toMobileCheckin(rec *model.PhotoCheckin, userMap map[string]*model.AppUser) dto.MobileCheckin {
	item := dto.MobileCheckin{
		ID:        rec.ID,
		UserID:    rec.UserID,
		CreatedAt: rec.CreatedAt.UnixMilli(),
		ImageURL:  rec.PhotoURL,
		Location:  rec.LocationName,
		UserName:  "未知用户",
	}
	if u, ok := userMap[rec.UserID]; ok {
		item.UserName = u.DisplayName()
		item.UserEmail = u.Email
		if u.Metadata.AvatarURL != "" {
			avatar := u.Metadata.AvatarURL
			item.UserAvatar = &avatar
		}
	}
	return item
}
