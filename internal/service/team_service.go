package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/luyongfugx/timeprint-web/internal/dto"
	"github.com/luyongfugx/timeprint-web/internal/model"
	"github.com/luyongfugx/timeprint-web/internal/repository"
)

// ── 团队模块业务错误 ──
// 错误文案即对外响应文案，与既有客户端约定保持一致

var (
	ErrNotInTeam           = errors.New("User not in any team")
	ErrAccessDenied        = errors.New("Access denied")
	ErrTeamNotFound        = errors.New("Team not found")
	ErrMemberNotFound      = errors.New("Member not found")
	ErrInvalidRole         = errors.New("Invalid role")
	ErrCannotRemoveCreator = errors.New("Cannot remove team creator")
	ErrCannotChangeCreator = errors.New("Cannot change creator role")
	ErrAlreadyInTeam       = errors.New("User already in a team")
)

// TeamService 团队业务接口
type TeamService interface {
	// CreateTeam 创建团队并写入 creator 成员记录（两次独立写入，无事务，见 DESIGN.md 决策 6）
	CreateTeam(ctx context.Context, callerID string, req *dto.CreateTeamRequest) (*dto.TeamResponse, error)
	// GetTeam 查询团队详情；仅该团队成员可见
	GetTeam(ctx context.Context, callerID, teamID string) (*dto.TeamDetailResponse, error)
	// GetTeamInfo 查询团队详情（移动端，无成员身份门槛）
	GetTeamInfo(ctx context.Context, teamID string) (*dto.TeamDetailResponse, error)
	// UpdateTeam 编辑团队信息；creator/admin
	UpdateTeam(ctx context.Context, callerID, teamID string, req *dto.UpdateTeamRequest) (*dto.TeamResponse, error)
	// GetMembership 查询当前用户的成员关系；未加入团队时返回 (nil, nil)
	GetMembership(ctx context.Context, callerID string) (*dto.MembershipResponse, error)
	// ListMembers 管理端成员列表；creator/admin
	ListMembers(ctx context.Context, callerID, teamID string) ([]dto.MemberResponse, error)
	// UpdateMemberRole 调整成员角色；仅 creator，且不可触碰 creator 行
	UpdateMemberRole(ctx context.Context, callerID, teamID, memberID, role string) error
	// RemoveMember 移除成员；仅 creator，creator 行永不可移除
	RemoveMember(ctx context.Context, callerID, teamID, memberID string) error
	// JoinTeam 加入团队（移动端）；已属于任何团队时拒绝
	JoinTeam(ctx context.Context, callerID, teamID string) (*model.TeamMember, error)
}

type teamService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTeamService 创建 TeamService 实例
func NewTeamService(repo *repository.Repository, logger *zap.Logger) TeamService {
	return &teamService{repo: repo, logger: logger}
}

// ────────────────────── CreateTeam ──────────────────────

func (s *teamService) CreateTeam(ctx context.Context, callerID string, req *dto.CreateTeamRequest) (*dto.TeamResponse, error) {
	// 单团队约束：已有成员关系则拒绝
	if _, err := s.repo.TeamMember.GetByUser(ctx, callerID); err == nil {
		return nil, ErrAlreadyInTeam
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询成员关系失败", zap.Error(err))
		return nil, err
	}

	team := &model.Team{
		Name:        req.Name,
		Address:     req.Address,
		Description: req.Description,
		UserID:      callerID,
	}
	if err := s.repo.Team.Create(ctx, team); err != nil {
		s.logger.Error("创建团队失败", zap.Error(err))
		return nil, err
	}

	// creator 成员记录；与上一步无事务包裹，写失败不回滚团队行
	member := &model.TeamMember{
		UserID: callerID,
		TeamID: team.ID,
		Role:   model.RoleCreator,
	}
	if err := s.repo.TeamMember.Create(ctx, member); err != nil {
		s.logger.Error("写入创建者成员记录失败", zap.String("team_id", team.ID), zap.Error(err))
		return nil, err
	}

	return toTeamResponse(team), nil
}

// ────────────────────── GetTeam / GetTeamInfo ──────────────────────

func (s *teamService) GetTeam(ctx context.Context, callerID, teamID string) (*dto.TeamDetailResponse, error) {
	if _, err := s.repo.TeamMember.GetByUserAndTeam(ctx, callerID, teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccessDenied
		}
		s.logger.Error("查询成员关系失败", zap.Error(err))
		return nil, err
	}
	return s.GetTeamInfo(ctx, teamID)
}

func (s *teamService) GetTeamInfo(ctx context.Context, teamID string) (*dto.TeamDetailResponse, error) {
	team, err := s.repo.Team.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		s.logger.Error("查询团队失败", zap.String("team_id", teamID), zap.Error(err))
		return nil, err
	}

	count, err := s.repo.TeamMember.CountByTeam(ctx, teamID)
	if err != nil {
		s.logger.Error("统计团队成员数失败", zap.String("team_id", teamID), zap.Error(err))
		return nil, err
	}

	return &dto.TeamDetailResponse{
		TeamResponse: *toTeamResponse(team),
		MemberCount:  count,
	}, nil
}

// ────────────────────── UpdateTeam ──────────────────────

func (s *teamService) UpdateTeam(ctx context.Context, callerID, teamID string, req *dto.UpdateTeamRequest) (*dto.TeamResponse, error) {
	membership, err := s.repo.TeamMember.GetByUserAndTeam(ctx, callerID, teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccessDenied
		}
		return nil, err
	}
	if !membership.CanManage() {
		return nil, ErrAccessDenied
	}

	team, err := s.repo.Team.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	team.Name = req.Name
	team.Address = req.Address
	team.Description = req.Description

	if err := s.repo.Team.Update(ctx, team); err != nil {
		s.logger.Error("更新团队失败", zap.String("team_id", teamID), zap.Error(err))
		return nil, err
	}

	return toTeamResponse(team), nil
}

// ────────────────────── GetMembership ──────────────────────

func (s *teamService) GetMembership(ctx context.Context, callerID string) (*dto.MembershipResponse, error) {
	member, err := s.repo.TeamMember.GetByUser(ctx, callerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // 未加入团队不是错误
		}
		s.logger.Error("查询成员关系失败", zap.Error(err))
		return nil, err
	}

	resp := &dto.MembershipResponse{
		TeamID: member.TeamID,
		Role:   member.Role,
	}
	if member.Team != nil {
		resp.Team = toTeamResponse(member.Team)
	}
	return resp, nil
}

// ────────────────────── ListMembers ──────────────────────

func (s *teamService) ListMembers(ctx context.Context, callerID, teamID string) ([]dto.MemberResponse, error) {
	membership, err := s.repo.TeamMember.GetByUserAndTeam(ctx, callerID, teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccessDenied
		}
		return nil, err
	}
	if !membership.CanManage() {
		return nil, ErrAccessDenied
	}

	members, err := s.repo.TeamMember.ListByTeam(ctx, teamID)
	if err != nil {
		s.logger.Error("查询团队成员失败", zap.String("team_id", teamID), zap.Error(err))
		return nil, err
	}

	// 二段式关联：先收集 user_id，再批量查资料合并
	userIDs := make([]string, 0, len(members))
	for _, m := range members {
		userIDs = append(userIDs, m.UserID)
	}
	userMap, err := s.loadUserMap(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	result := make([]dto.MemberResponse, 0, len(members))
	for _, m := range members {
		item := dto.MemberResponse{
			ID:       m.ID,
			UserID:   m.UserID,
			TeamID:   m.TeamID,
			Role:     m.Role,
			JoinedAt: m.JoinedAt.Format(time.RFC3339),
			UserName: "未知用户",
		}
		if u, ok := userMap[m.UserID]; ok {
			item.UserName = u.DisplayName()
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

// ────────────────────── UpdateMemberRole ──────────────────────

func (s *teamService) UpdateMemberRole(ctx context.Context, callerID, teamID, memberID, role string) error {
	if role != model.RoleAdmin && role != model.RoleMember {
		return ErrInvalidRole
	}

	if err := s.requireCreator(ctx, callerID, teamID); err != nil {
		return err
	}

	target, err := s.repo.TeamMember.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return err
	}
	if target.TeamID != teamID {
		return ErrMemberNotFound
	}
	// creator 角色不可被变更或转移
	if target.Role == model.RoleCreator {
		return ErrCannotChangeCreator
	}

	if err := s.repo.TeamMember.UpdateRole(ctx, memberID, role); err != nil {
		s.logger.Error("更新成员角色失败", zap.String("member_id", memberID), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── RemoveMember ──────────────────────

func (s *teamService) RemoveMember(ctx context.Context, callerID, teamID, memberID string) error {
	if err := s.requireCreator(ctx, callerID, teamID); err != nil {
		return err
	}

	target, err := s.repo.TeamMember.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return err
	}
	if target.TeamID != teamID {
		return ErrMemberNotFound
	}
	if target.Role == model.RoleCreator {
		return ErrCannotRemoveCreator
	}

	if err := s.repo.TeamMember.Delete(ctx, memberID); err != nil {
		s.logger.Error("移除成员失败", zap.String("member_id", memberID), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── JoinTeam ──────────────────────

func (s *teamService) JoinTeam(ctx context.Context, callerID, teamID string) (*model.TeamMember, error) {
	// 单团队约束对加入同样生效
	if _, err := s.repo.TeamMember.GetByUser(ctx, callerID); err == nil {
		return nil, ErrAlreadyInTeam
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if _, err := s.repo.Team.GetByID(ctx, teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	member := &model.TeamMember{
		UserID: callerID,
		TeamID: teamID,
		Role:   model.RoleMember,
	}
	if err := s.repo.TeamMember.Create(ctx, member); err != nil {
		s.logger.Error("加入团队失败", zap.String("team_id", teamID), zap.Error(err))
		return nil, err
	}
	return member, nil
}

// ── 内部辅助方法 ──

// requireCreator 校验调用者是该团队的 creator
// 校验与后续写入是两次独立调用，存在已知竞态窗口（见 DESIGN.md 决策 6）
func (s *teamService) requireCreator(ctx context.Context, callerID, teamID string) error {
	membership, err := s.repo.TeamMember.GetByUserAndTeam(ctx, callerID, teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccessDenied
		}
		return err
	}
	if membership.Role != model.RoleCreator {
		return ErrAccessDenied
	}
	return nil
}

// loadUserMap 批量加载用户资料
func (s *teamService) loadUserMap(ctx context.Context, userIDs []string) (map[string]*model.AppUser, error) {
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

// toTeamResponse 团队模型转响应
func toTeamResponse(team *model.Team) *dto.TeamResponse {
	return &dto.TeamResponse{
		ID:          team.ID,
		Name:        team.Name,
		Address:     team.Address,
		Description: team.Description,
		UserID:      team.UserID,
		CreatedAt:   team.CreatedAt.Format(time.RFC3339),
	}
}
