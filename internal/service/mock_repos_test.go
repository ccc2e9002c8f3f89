package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/luyongfugx/timeprint-web/internal/model"
	"github.com/luyongfugx/timeprint-web/internal/repository"
)

type repoCheckinFilter = repository.CheckinFilter

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.AppUser
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.AppUser)}
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.AppUser, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ListByIDs(_ context.Context, ids []string) ([]model.AppUser, error) {
	var result []model.AppUser
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			result = append(result, *u)
		}
	}
	return result, nil
}

// ── Mock TeamRepository ──

type mockTeamRepo struct {
	teams map[string]*model.Team
	seq   int
}

func newMockTeamRepo() *mockTeamRepo {
	return &mockTeamRepo{teams: make(map[string]*model.Team)}
}

func (m *mockTeamRepo) Create(_ context.Context, team *model.Team) error {
	if team.ID == "" {
		m.seq++
		team.ID = fmt.Sprintf("team-%03d", m.seq)
	}
	team.CreatedAt = time.Now()
	m.teams[team.ID] = team
	return nil
}

func (m *mockTeamRepo) GetByID(_ context.Context, id string) (*model.Team, error) {
	if t, ok := m.teams[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeamRepo) Update(_ context.Context, team *model.Team) error {
	m.teams[team.ID] = team
	return nil
}

// ── Mock TeamMemberRepository ──

type mockTeamMemberRepo struct {
	members map[string]*model.TeamMember
	teams   *mockTeamRepo // 模拟 Preload("Team")
	seq     int
}

func newMockTeamMemberRepo(teams *mockTeamRepo) *mockTeamMemberRepo {
	return &mockTeamMemberRepo{members: make(map[string]*model.TeamMember), teams: teams}
}

func (m *mockTeamMemberRepo) Create(_ context.Context, member *model.TeamMember) error {
	// 模拟 user_id 唯一约束
	for _, existing := range m.members {
		if existing.UserID == member.UserID {
			return gorm.ErrDuplicatedKey
		}
	}
	if member.ID == "" {
		m.seq++
		member.ID = fmt.Sprintf("member-%03d", m.seq)
	}
	member.JoinedAt = time.Now()
	m.members[member.ID] = member
	return nil
}

func (m *mockTeamMemberRepo) GetByID(_ context.Context, id string) (*model.TeamMember, error) {
	if member, ok := m.members[id]; ok {
		return member, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeamMemberRepo) GetByUser(_ context.Context, userID string) (*model.TeamMember, error) {
	for _, member := range m.members {
		if member.UserID == userID {
			if m.teams != nil {
				if t, ok := m.teams.teams[member.TeamID]; ok {
					member.Team = t
				}
			}
			return member, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeamMemberRepo) GetByUserAndTeam(_ context.Context, userID, teamID string) (*model.TeamMember, error) {
	for _, member := range m.members {
		if member.UserID == userID && member.TeamID == teamID {
			return member, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeamMemberRepo) ListByTeam(_ context.Context, teamID string) ([]model.TeamMember, error) {
	var result []model.TeamMember
	for _, member := range m.members {
		if member.TeamID == teamID {
			result = append(result, *member)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].JoinedAt.Before(result[j].JoinedAt)
	})
	return result, nil
}

func (m *mockTeamMemberRepo) CountByTeam(_ context.Context, teamID string) (int64, error) {
	var count int64
	for _, member := range m.members {
		if member.TeamID == teamID {
			count++
		}
	}
	return count, nil
}

func (m *mockTeamMemberRepo) UpdateRole(_ context.Context, id, role string) error {
	member, ok := m.members[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	member.Role = role
	return nil
}

func (m *mockTeamMemberRepo) Delete(_ context.Context, id string) error {
	delete(m.members, id)
	return nil
}

// ── Mock CheckinRepository ──

type mockCheckinRepo struct {
	checkins map[string]*model.PhotoCheckin
	seq      int
}

func newMockCheckinRepo() *mockCheckinRepo {
	return &mockCheckinRepo{checkins: make(map[string]*model.PhotoCheckin)}
}

func (m *mockCheckinRepo) Create(_ context.Context, rec *model.PhotoCheckin) error {
	if rec.ID == "" {
		m.seq++
		rec.ID = fmt.Sprintf("checkin-%03d", m.seq)
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	m.checkins[rec.ID] = rec
	return nil
}

func (m *mockCheckinRepo) matchFilter(rec *model.PhotoCheckin, f *repoCheckinFilter) bool {
	if f == nil {
		return true
	}
	if f.From != nil && rec.CreatedAt.Before(*f.From) {
		return false
	}
	if f.Before != nil && !rec.CreatedAt.Before(*f.Before) {
		return false
	}
	if f.UserID != "" && f.UserID != "all" && rec.UserID != f.UserID {
		return false
	}
	return true
}

func (m *mockCheckinRepo) ListByTeam(_ context.Context, teamID string, f *repoCheckinFilter) ([]model.PhotoCheckin, error) {
	var result []model.PhotoCheckin
	for _, rec := range m.checkins {
		if rec.TeamID == teamID && m.matchFilter(rec, f) {
			result = append(result, *rec)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *mockCheckinRepo) ListUserIDsByTeam(_ context.Context, teamID string, f *repoCheckinFilter) ([]string, error) {
	var result []string
	for _, rec := range m.checkins {
		if rec.TeamID == teamID && m.matchFilter(rec, f) {
			result = append(result, rec.UserID)
		}
	}
	return result, nil
}

func (m *mockCheckinRepo) ListByUser(_ context.Context, userID string) ([]model.PhotoCheckin, error) {
	var result []model.PhotoCheckin
	for _, rec := range m.checkins {
		if rec.UserID == userID {
			result = append(result, *rec)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *mockCheckinRepo) Delete(_ context.Context, id string) error {
	delete(m.checkins, id)
	return nil
}

// ── Mock ShareLinkRepository ──

type mockShareLinkRepo struct {
	links map[string]*model.ShareLink // share_code → row
	seq   int
}

func newMockShareLinkRepo() *mockShareLinkRepo {
	return &mockShareLinkRepo{links: make(map[string]*model.ShareLink)}
}

func (m *mockShareLinkRepo) Create(_ context.Context, link *model.ShareLink) error {
	if _, exists := m.links[link.ShareCode]; exists {
		return gorm.ErrDuplicatedKey
	}
	if link.ID == "" {
		m.seq++
		link.ID = fmt.Sprintf("link-%03d", m.seq)
	}
	if link.CreatedAt.IsZero() {
		link.CreatedAt = time.Now()
	}
	m.links[link.ShareCode] = link
	return nil
}

func (m *mockShareLinkRepo) GetByCode(_ context.Context, code string) (*model.ShareLink, error) {
	if link, ok := m.links[code]; ok {
		return link, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockShareLinkRepo) GetActiveByCode(_ context.Context, code string, nowSec int64) (*model.ShareLink, error) {
	link, ok := m.links[code]
	if !ok || link.Status != model.ShareLinkActive {
		return nil, gorm.ErrRecordNotFound
	}
	if link.ExpireTime != 0 && link.ExpireTime <= nowSec {
		return nil, gorm.ErrRecordNotFound
	}
	return link, nil
}

func (m *mockShareLinkRepo) UpdateByCode(_ context.Context, code string, fields map[string]interface{}) (*model.ShareLink, error) {
	link, ok := m.links[code]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	for col, v := range fields {
		switch col {
		case "watermark_name":
			link.WatermarkName = v.(string)
		case "company_name":
			name := v.(string)
			link.CompanyName = &name
		case "cover_image_url":
			link.CoverImageURL = v.(string)
		case "json_download_url":
			link.JSONDownloadURL = v.(string)
		case "status":
			link.Status = v.(int)
		case "expire_time":
			link.ExpireTime = v.(int64)
		}
	}
	return link, nil
}

func (m *mockShareLinkRepo) DeleteByCode(_ context.Context, code string) error {
	delete(m.links, code)
	return nil
}

func (m *mockShareLinkRepo) Search(_ context.Context, keyword string, offset, limit int) ([]model.ShareLink, error) {
	var result []model.ShareLink
	kw := strings.ToLower(strings.TrimSpace(keyword))
	for _, link := range m.links {
		if kw != "" {
			name := strings.ToLower(link.WatermarkName)
			company := ""
			if link.CompanyName != nil {
				company = strings.ToLower(*link.CompanyName)
			}
			if !strings.Contains(name, kw) && !strings.Contains(company, kw) {
				continue
			}
		}
		result = append(result, *link)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if offset >= len(result) {
		return nil, nil
	}
	result = result[offset:]
	if limit < len(result) {
		result = result[:limit]
	}
	return result, nil
}
