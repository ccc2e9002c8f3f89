package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/luyongfugx/timeprint-web/internal/dto"
	"github.com/luyongfugx/timeprint-web/internal/model"
	"github.com/luyongfugx/timeprint-web/internal/service"
	"github.com/luyongfugx/timeprint-web/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	sessionResult *dto.SessionResponse
	sessionErr    error
}

func (m *mockAuthService) GetSession(_ context.Context, _, _ string, _ time.Time) (*dto.SessionResponse, error) {
	return m.sessionResult, m.sessionErr
}

// ── Mock TeamService ──

type mockTeamService struct {
	createResult     *dto.TeamResponse
	createErr        error
	getResult        *dto.TeamDetailResponse
	getErr           error
	infoResult       *dto.TeamDetailResponse
	infoErr          error
	updateResult     *dto.TeamResponse
	updateErr        error
	membershipResult *dto.MembershipResponse
	membershipErr    error
	membersResult    []dto.MemberResponse
	membersErr       error
	updateRoleErr    error
	removeErr        error
	joinResult       *model.TeamMember
	joinErr          error
}

func (m *mockTeamService) CreateTeam(_ context.Context, _ string, _ *dto.CreateTeamRequest) (*dto.TeamResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockTeamService) GetTeam(_ context.Context, _, _ string) (*dto.TeamDetailResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockTeamService) GetTeamInfo(_ context.Context, _ string) (*dto.TeamDetailResponse, error) {
	return m.infoResult, m.infoErr
}
func (m *mockTeamService) UpdateTeam(_ context.Context, _, _ string, _ *dto.UpdateTeamRequest) (*dto.TeamResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockTeamService) GetMembership(_ context.Context, _ string) (*dto.MembershipResponse, error) {
	return m.membershipResult, m.membershipErr
}
func (m *mockTeamService) ListMembers(_ context.Context, _, _ string) ([]dto.MemberResponse, error) {
	return m.membersResult, m.membersErr
}
func (m *mockTeamService) UpdateMemberRole(_ context.Context, _, _, _, _ string) error {
	return m.updateRoleErr
}
func (m *mockTeamService) RemoveMember(_ context.Context, _, _, _ string) error {
	return m.removeErr
}
func (m *mockTeamService) JoinTeam(_ context.Context, _, _ string) (*model.TeamMember, error) {
	return m.joinResult, m.joinErr
}

// ── Mock CheckinService ──

type mockCheckinService struct {
	listResult    []dto.CheckinRecordResponse
	listErr       error
	createResult  *model.PhotoCheckin
	createErr     error
	deleteErr     error
	statsResult   *dto.CheckinStatsResponse
	statsErr      error
	homeResult    *dto.MobileHomeResponse
	homeErr       error
	feedResult    *dto.MobileCheckinsResponse
	feedErr       error
	membersResult []dto.MobileMember
	membersErr    error
	userResult    *dto.MobileUserResponse
	userErr       error
}

func (m *mockCheckinService) List(_ context.Context, _ string, _ *dto.CheckinListRequest) ([]dto.CheckinRecordResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockCheckinService) Create(_ context.Context, _ string, _ *dto.CreateCheckinRequest) (*model.PhotoCheckin, error) {
	return m.createResult, m.createErr
}
func (m *mockCheckinService) Delete(_ context.Context, _, _ string) error {
	return m.deleteErr
}
func (m *mockCheckinService) Stats(_ context.Context, _ string, _ *dto.CheckinListRequest) (*dto.CheckinStatsResponse, error) {
	return m.statsResult, m.statsErr
}
func (m *mockCheckinService) HomeSummary(_ context.Context, _ string) (*dto.MobileHomeResponse, error) {
	return m.homeResult, m.homeErr
}
func (m *mockCheckinService) TeamFeed(_ context.Context, _ string) (*dto.MobileCheckinsResponse, error) {
	return m.feedResult, m.feedErr
}
func (m *mockCheckinService) MembersFlat(_ context.Context, _ string) ([]dto.MobileMember, error) {
	return m.membersResult, m.membersErr
}
func (m *mockCheckinService) UserFeed(_ context.Context, _ string) (*dto.MobileUserResponse, error) {
	return m.userResult, m.userErr
}

// ── Mock ShareLinkService ──

type mockShareLinkService struct {
	createResult *dto.CreateShareLinkResponse
	createErr    error
	getResult    *dto.GetShareLinkResponse
	getErr       error
	updateResult *dto.UpdateShareLinkResponse
	updateErr    error
	deleteErr    error
	searchResult *dto.ShareLinkSearchResponse
	searchErr    error
}

func (m *mockShareLinkService) Create(_ context.Context, _ *dto.CreateShareLinkRequest) (*dto.CreateShareLinkResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockShareLinkService) GetPublic(_ context.Context, _ string) (*dto.GetShareLinkResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockShareLinkService) Update(_ context.Context, _ string, _ *dto.UpdateShareLinkRequest) (*dto.UpdateShareLinkResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockShareLinkService) Delete(_ context.Context, _ string) error {
	return m.deleteErr
}
func (m *mockShareLinkService) Search(_ context.Context, _ *dto.ShareLinkSearchRequest) (*dto.ShareLinkSearchResponse, error) {
	return m.searchResult, m.searchErr
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) ExportCheckins(_ context.Context, _ string, _ *dto.CheckinListRequest) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

// authMW 模拟认证中间件注入的上下文
func authMW(c *gin.Context) {
	c.Set("user_id", "test-user-id")
	c.Set("email", "test@example.com")
	c.Set("token_exp", time.Now().Add(time.Hour))
	c.Next()
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseError(w *httptest.ResponseRecorder) response.ErrorBody {
	var body response.ErrorBody
	json.Unmarshal(w.Body.Bytes(), &body)
	return body
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_GetSession_Anonymous(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/auth/session", nil)

	r := gin.New()
	// 不挂 authMW：匿名访问
	r.GET("/api/auth/session", h.GetSession)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	var resp dto.SessionResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Session != nil || resp.User != nil {
		t.Errorf("匿名会话期望 session/user 均为 null，实际=%+v", resp)
	}
}

func TestAuthHandler_GetSession_Authenticated(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{
		sessionResult: &dto.SessionResponse{
			Session: &dto.SessionInfo{UserID: "test-user-id", Email: "test@example.com"},
			User:    &dto.UserProfile{ID: "test-user-id", Email: "test@example.com"},
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/auth/session", nil)

	r := gin.New()
	r.GET("/api/auth/session", authMW, h.GetSession)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	var resp dto.SessionResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Session == nil || resp.Session.UserID != "test-user-id" {
		t.Errorf("期望会话信息，实际=%+v", resp)
	}
}

// ═══════════════════════════════════════════════════════════
// TeamHandler Tests
// ═══════════════════════════════════════════════════════════

func TestTeamHandler_CreateTeam_Success(t *testing.T) {
	h := NewTeamHandler(&mockTeamService{
		createResult: &dto.TeamResponse{ID: "team-001", Name: "研发一组", UserID: "test-user-id"},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/teams", jsonBody(dto.CreateTeamRequest{Name: "研发一组"}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/api/teams", authMW, h.CreateTeam)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Team *dto.TeamResponse `json:"team"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Team == nil || resp.Team.ID != "team-001" {
		t.Errorf("期望 team 字段携带团队信息，实际响应体=%s", w.Body.String())
	}
}

func TestTeamHandler_CreateTeam_Unauthenticated(t *testing.T) {
	h := NewTeamHandler(&mockTeamService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/teams", jsonBody(dto.CreateTeamRequest{Name: "研发一组"}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/api/teams", h.CreateTeam)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestTeamHandler_CreateTeam_MissingName(t *testing.T) {
	h := NewTeamHandler(&mockTeamService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/teams", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/api/teams", authMW, h.CreateTeam)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestTeamHandler_GetMembership_NoneReturnsNull(t *testing.T) {
	h := NewTeamHandler(&mockTeamService{membershipResult: nil})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/teams/membership", nil)

	r := gin.New()
	r.GET("/api/teams/membership", authMW, h.GetMembership)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if body := bytes.TrimSpace(w.Body.Bytes()); string(body) != `{"teamMember":null}` {
		t.Errorf(`无成员关系期望 {"teamMember":null}，实际=%s`, body)
	}
}

func TestTeamHandler_GetMembership_Found(t *testing.T) {
	h := NewTeamHandler(&mockTeamService{
		membershipResult: &dto.MembershipResponse{TeamID: "team-001", Role: "creator"},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/teams/membership", nil)

	r := gin.New()
	r.GET("/api/teams/membership", authMW, h.GetMembership)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	var resp struct {
		TeamMember *dto.MembershipResponse `json:"teamMember"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.TeamMember == nil || resp.TeamMember.TeamID != "team-001" {
		t.Errorf("期望 teamMember 字段携带成员关系，实际响应体=%s", w.Body.String())
	}
}

func TestTeamHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"未加入团队", service.ErrNotInTeam, http.StatusBadRequest, "User not in any team"},
		{"无权限", service.ErrAccessDenied, http.StatusForbidden, "Access denied"},
		{"团队不存在", service.ErrTeamNotFound, http.StatusNotFound, "Team not found"},
		{"成员不存在", service.ErrMemberNotFound, http.StatusNotFound, "Member not found"},
		{"创建者不可移除", service.ErrCannotRemoveCreator, http.StatusBadRequest, "Cannot remove team creator"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewTeamHandler(&mockTeamService{removeErr: tc.err})

			w := httptest.NewRecorder()
			req := httptest.NewRequest("DELETE", "/api/teams/team-001/members/m-001", nil)

			r := gin.New()
			r.DELETE("/api/teams/:teamId/members/:memberId", authMW, h.RemoveMember)
			r.ServeHTTP(w, req)

			if w.Code != tc.status {
				t.Errorf("expected %d, got %d", tc.status, w.Code)
			}
			if body := parseError(w); body.Error != tc.message {
				t.Errorf("expected error %q, got %q", tc.message, body.Error)
			}
		})
	}
}

func TestTeamHandler_UpdateMemberRole_InvalidRoleRejected(t *testing.T) {
	h := NewTeamHandler(&mockTeamService{})

	w := httptest.NewRecorder()
	// creator 角色不在 binding 白名单内
	req := httptest.NewRequest("PUT", "/api/teams/team-001/members/m-001",
		jsonBody(map[string]string{"role": "creator"}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/api/teams/:teamId/members/:memberId", authMW, h.UpdateMemberRole)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if body := parseError(w); body.Error != "Invalid role" {
		t.Errorf("expected Invalid role, got %q", body.Error)
	}
}

// ═══════════════════════════════════════════════════════════
// CheckinHandler Tests
// ═══════════════════════════════════════════════════════════

func TestCheckinHandler_List_Success(t *testing.T) {
	h := NewCheckinHandler(&mockCheckinService{
		listResult: []dto.CheckinRecordResponse{{ID: "c1", UserID: "test-user-id"}},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/checkins?dateFrom=2026-08-01&dateTo=2026-08-30", nil)

	r := gin.New()
	r.GET("/api/checkins", authMW, h.List)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Records []dto.CheckinRecordResponse `json:"records"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Records) != 1 {
		t.Errorf("期望 records 字段含1条记录，实际响应体=%s", w.Body.String())
	}
}

func TestCheckinHandler_Create_Success(t *testing.T) {
	h := NewCheckinHandler(&mockCheckinService{
		createResult: &model.PhotoCheckin{ID: "c1", UserID: "test-user-id", PhotoURL: "https://cdn.example.com/p.jpg"},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/checkins",
		jsonBody(map[string]string{"photo_url": "https://cdn.example.com/p.jpg"}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/api/checkins", authMW, h.Create)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Checkin *model.PhotoCheckin `json:"checkin"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Checkin == nil || resp.Checkin.ID != "c1" {
		t.Errorf("期望 checkin 字段携带打卡记录，实际响应体=%s", w.Body.String())
	}
}

func TestCheckinHandler_List_BadDate(t *testing.T) {
	h := NewCheckinHandler(&mockCheckinService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/checkins?dateFrom=not-a-date", nil)

	r := gin.New()
	r.GET("/api/checkins", authMW, h.List)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestCheckinHandler_Create_MissingPhoto(t *testing.T) {
	h := NewCheckinHandler(&mockCheckinService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/checkins", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/api/checkins", authMW, h.Create)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestCheckinHandler_Delete_Forbidden(t *testing.T) {
	h := NewCheckinHandler(&mockCheckinService{deleteErr: service.ErrAccessDenied})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/api/checkins/c1", nil)

	r := gin.New()
	r.DELETE("/api/checkins/:checkinId", authMW, h.Delete)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

func TestCheckinHandler_Stats_Success(t *testing.T) {
	h := NewCheckinHandler(&mockCheckinService{
		statsResult: &dto.CheckinStatsResponse{
			Stats: dto.CheckinStats{TotalUsers: 2, TotalCheckins: 2, ActiveUsers: 1, ParticipationRate: 50},
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/checkins/stats", nil)

	r := gin.New()
	r.GET("/api/checkins/stats", authMW, h.Stats)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	var resp dto.CheckinStatsResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Stats.ParticipationRate != 50 {
		t.Errorf("期望participationRate=50，实际=%d", resp.Stats.ParticipationRate)
	}
}

// ═══════════════════════════════════════════════════════════
// ShareLinkHandler Tests
// ═══════════════════════════════════════════════════════════

func TestShareLinkHandler_Create_Success(t *testing.T) {
	h := NewShareLinkHandler(&mockShareLinkService{
		createResult: &dto.CreateShareLinkResponse{
			Success:   true,
			ShareLink: "https://share.timeprint.net/share?code=ABCD1234",
			ShareCode: "ABCD1234",
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/applink", jsonBody(dto.CreateShareLinkRequest{
		WatermarkName:   "工程打卡水印",
		CoverImageURL:   "https://cdn.example.com/cover.png",
		JSONDownloadURL: "https://cdn.example.com/wm.json",
		UserID:          "user-001",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/api/applink", h.Create)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	var resp dto.CreateShareLinkResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.ShareCode != "ABCD1234" {
		t.Errorf("期望shareCode=ABCD1234，实际=%s", resp.ShareCode)
	}
}

func TestShareLinkHandler_Create_MissingFields(t *testing.T) {
	h := NewShareLinkHandler(&mockShareLinkService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/applink", bytes.NewReader([]byte(`{"watermarkName":"x"}`)))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/api/applink", h.Create)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if body := parseError(w); body.Error != "Missing required fields" {
		t.Errorf("expected Missing required fields, got %q", body.Error)
	}
}

func TestShareLinkHandler_Get_NotFound(t *testing.T) {
	h := NewShareLinkHandler(&mockShareLinkService{getErr: service.ErrShareLinkNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/applink/MISSING0", nil)

	r := gin.New()
	r.GET("/api/applink/:shareCode", h.Get)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	if body := parseError(w); body.Error != "Not found" {
		t.Errorf("expected Not found, got %q", body.Error)
	}
}

func TestShareLinkHandler_Update_NoFields(t *testing.T) {
	h := NewShareLinkHandler(&mockShareLinkService{updateErr: service.ErrShareLinkNoFields})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/api/applink/ABCD1234", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/api/applink/:shareCode", h.Update)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if body := parseError(w); body.Error != "No valid fields to update" {
		t.Errorf("expected No valid fields to update, got %q", body.Error)
	}
}

func TestShareLinkHandler_Delete_AlwaysSuccess(t *testing.T) {
	h := NewShareLinkHandler(&mockShareLinkService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/api/applink/ABCD1234", nil)

	r := gin.New()
	r.DELETE("/api/applink/:shareCode", h.Delete)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// MobileHandler Tests
// ═══════════════════════════════════════════════════════════

func TestMobileHandler_Home_NoTeamIs404(t *testing.T) {
	h := NewMobileHandler(&mockTeamService{}, &mockCheckinService{homeErr: service.ErrNotInTeam})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/mobile/home", nil)

	r := gin.New()
	r.GET("/api/mobile/home", authMW, h.Home)
	r.ServeHTTP(w, req)

	// 移动端将未加入团队映射为 404，而非 Web 端的 400
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	if body := parseError(w); body.Error != "No team found" {
		t.Errorf("expected No team found, got %q", body.Error)
	}
}

func TestMobileHandler_User_MissingUserID(t *testing.T) {
	h := NewMobileHandler(&mockTeamService{}, &mockCheckinService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/mobile/user", nil)

	r := gin.New()
	r.GET("/api/mobile/user", authMW, h.User)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestMobileHandler_JoinTeam_Success(t *testing.T) {
	h := NewMobileHandler(&mockTeamService{
		joinResult: &model.TeamMember{ID: "m-002", UserID: "test-user-id", TeamID: "team-001", Role: "member"},
	}, &mockCheckinService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/mobile/teams/join/team-001", nil)

	r := gin.New()
	r.GET("/api/mobile/teams/join/:teamId", authMW, h.JoinTeam)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	// 响应体即成员关系行本身，不套外层字段
	var member model.TeamMember
	json.Unmarshal(w.Body.Bytes(), &member)
	if member.ID != "m-002" || member.Role != "member" {
		t.Errorf("期望成员关系行，实际响应体=%s", w.Body.String())
	}
}

func TestMobileHandler_JoinTeam_AlreadyInTeam(t *testing.T) {
	h := NewMobileHandler(&mockTeamService{joinErr: service.ErrAlreadyInTeam}, &mockCheckinService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/mobile/teams/join/team-001", nil)

	r := gin.New()
	r.GET("/api/mobile/teams/join/:teamId", authMW, h.JoinTeam)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_Success(t *testing.T) {
	h := NewExportHandler(&mockExportService{
		buf:      bytes.NewBufferString("fake-xlsx-bytes"),
		filename: "打卡统计_20260830.xlsx",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/checkins/export", nil)

	r := gin.New()
	r.GET("/api/checkins/export", authMW, h.ExportCheckins)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != xlsxContentType {
		t.Errorf("expected xlsx content type, got %s", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd == "" {
		t.Error("expected Content-Disposition header")
	}
}

func TestExportHandler_Forbidden(t *testing.T) {
	h := NewExportHandler(&mockExportService{err: service.ErrAccessDenied})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/checkins/export", nil)

	r := gin.New()
	r.GET("/api/checkins/export", authMW, h.ExportCheckins)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}
