package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/luyongfugx/timeprint-web/internal/dto"
	"github.com/luyongfugx/timeprint-web/internal/model"
	"github.com/luyongfugx/timeprint-web/internal/repository"
)

// ── 导出模块业务错误 ──

var ErrExportGenerateFail = errors.New("生成 Excel 文件失败")

// ExportService 导出业务接口
//
// 设计说明：
//   - 签到统计与明细导出为 Excel (.xlsx)，两个 Sheet：统计概览 + 打卡明细
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
//   - 日期窗口与统计接口同一套解析规则
type ExportService interface {
	// ExportCheckins 导出团队打卡统计为 Excel；creator/admin
	ExportCheckins(ctx context.Context, callerID string, req *dto.CheckinListRequest) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportCheckins — 导出打卡统计为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - Sheet "统计概览"：成员总数 / 打卡总数 / 打卡人数 / 参与率 + 各成员打卡次数
//   - Sheet "打卡明细"：时间倒序的打卡流水（姓名、邮箱、时间、地点、照片链接）
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportCheckins(ctx context.Context, callerID string, req *dto.CheckinListRequest) (*bytes.Buffer, string, error) {
	// 1. 解析成员关系并校验管理权限
	membership, err := s.repo.TeamMember.GetByUser(ctx, callerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrNotInTeam
		}
		s.logger.Error("查询成员关系失败", zap.Error(err))
		return nil, "", err
	}
	if !membership.CanManage() {
		return nil, "", ErrAccessDenied
	}

	// 2. 查询成员与打卡数据
	members, err := s.repo.TeamMember.ListByTeam(ctx, membership.TeamID)
	if err != nil {
		s.logger.Error("查询团队成员失败", zap.Error(err))
		return nil, "", err
	}

	filter, err := buildCheckinFilter(req)
	if err != nil {
		return nil, "", err
	}
	records, err := s.repo.Checkin.ListByTeam(ctx, membership.TeamID, filter)
	if err != nil {
		s.logger.Error("查询打卡记录失败", zap.Error(err))
		return nil, "", err
	}

	// 3. 批量加载用户资料
	userIDs := make([]string, 0, len(members))
	for _, m := range members {
		userIDs = append(userIDs, m.UserID)
	}
	seen := make(map[string]struct{}, len(userIDs))
	for _, id := range userIDs {
		seen[id] = struct{}{}
	}
	for i := range records {
		if _, ok := seen[records[i].UserID]; !ok {
			seen[records[i].UserID] = struct{}{}
			userIDs = append(userIDs, records[i].UserID)
		}
	}
	users, err := s.repo.User.ListByIDs(ctx, userIDs)
	if err != nil {
		s.logger.Error("批量查询用户资料失败", zap.Error(err))
		return nil, "", err
	}
	userMap := make(map[string]*model.AppUser, len(users))
	for i := range users {
		userMap[users[i].ID] = &users[i]
	}

	// 4. 统计各成员打卡次数
	countByUser := make(map[string]int, len(members))
	checkinUserIDs := make([]string, 0, len(records))
	for i := range records {
		countByUser[records[i].UserID]++
		checkinUserIDs = append(checkinUserIDs, records[i].UserID)
	}
	stats := computeStats(len(members), checkinUserIDs)

	// 5. 生成 Excel
	f := excelize.NewFile()
	defer f.Close()

	statsSheet := "统计概览"
	detailSheet := "打卡明细"
	idx, _ := f.NewSheet(statsSheet)
	f.NewSheet(detailSheet)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// ── 统计概览 ──
	f.SetColWidth(statsSheet, "A", "A", 20)
	f.SetColWidth(statsSheet, "B", "B", 16)

	f.SetCellValue(statsSheet, "A1", "指标")
	f.SetCellValue(statsSheet, "B1", "数值")
	f.SetCellStyle(statsSheet, "A1", "B1", headerStyle)

	overview := []struct {
		label string
		value interface{}
	}{
		{"成员总数", stats.TotalUsers},
		{"打卡总数", stats.TotalCheckins},
		{"打卡人数", stats.ActiveUsers},
		{"参与率", fmt.Sprintf("%d%%", stats.ParticipationRate)},
	}
	row := 2
	for _, o := range overview {
		f.SetCellValue(statsSheet, cell("A", row), o.label)
		f.SetCellValue(statsSheet, cell("B", row), o.value)
		row++
	}

	// 各成员打卡次数
	row++
	f.SetCellValue(statsSheet, cell("A", row), "成员")
	f.SetCellValue(statsSheet, cell("B", row), "打卡次数")
	f.SetCellStyle(statsSheet, cell("A", row), cell("B", row), headerStyle)
	row++
	for _, m := range members {
		name := "未知用户"
		if u, ok := userMap[m.UserID]; ok {
			name = u.DisplayName()
		}
		f.SetCellValue(statsSheet, cell("A", row), name)
		f.SetCellValue(statsSheet, cell("B", row), countByUser[m.UserID])
		row++
	}

	// ── 打卡明细 ──
	f.SetColWidth(detailSheet, "A", "A", 14)
	f.SetColWidth(detailSheet, "B", "B", 26)
	f.SetColWidth(detailSheet, "C", "C", 20)
	f.SetColWidth(detailSheet, "D", "D", 24)
	f.SetColWidth(detailSheet, "E", "E", 40)

	detailHeaders := []string{"姓名", "邮箱", "打卡时间", "地点", "照片链接"}
	for i, h := range detailHeaders {
		f.SetCellValue(detailSheet, cell(colName(i), 1), h)
	}
	f.SetCellStyle(detailSheet, "A1", cell(colName(len(detailHeaders)-1), 1), headerStyle)

	row = 2
	for i := range records {
		rec := &records[i]
		name, email := "未知用户", ""
		if u, ok := userMap[rec.UserID]; ok {
			name = u.DisplayName()
			email = u.Email
		}
		location := "-"
		if rec.LocationName != nil && *rec.LocationName != "" {
			location = *rec.LocationName
		}
		f.SetCellValue(detailSheet, cell("A", row), name)
		f.SetCellValue(detailSheet, cell("B", row), email)
		f.SetCellValue(detailSheet, cell("C", row), rec.CreatedAt.Format("2006-01-02 15:04:05"))
		f.SetCellValue(detailSheet, cell("D", row), location)
		f.SetCellValue(detailSheet, cell("E", row), rec.PhotoURL)
		row++
	}

	// 写入 buffer
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("打卡统计_%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
