package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/dto"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/model"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/pkg/kvstore"
)

type exportFixture struct {
	svc      ExportService
	reminder ReminderService
	repos    *testRepos
	planID   string
}

func newExportFixture(t *testing.T) *exportFixture {
	t.Helper()
	repos := newTestRepos()
	plans := NewStudyPlanService(repos.repo, newTestCatalog(t), testPlannerConfig(), zap.NewNop())
	plans.(*studyPlanService).clock.now = fixedNow

	req := planReq("a", "b")
	req.Title = "JEE Sprint"
	created, err := plans.Generate(context.Background(), req, "user-1")
	if err != nil {
		t.Fatalf("Generate 失败: %v", err)
	}

	reminder := NewReminderService(kvstore.NewMemory(), zap.NewNop())
	svc := NewExportService(repos.repo, reminder, zap.NewNop())
	svc.(*exportService).now = fixedNow
	return &exportFixture{svc: svc, reminder: reminder, repos: repos, planID: created.ID}
}

func parseICS(t *testing.T, body string) *ics.Calendar {
	t.Helper()
	cal, err := ics.ParseCalendar(strings.NewReader(body))
	if err != nil {
		t.Fatalf("解析 ICS 失败: %v", err)
	}
	return cal
}

func TestExportService_ICS(t *testing.T) {
	f := newExportFixture(t)

	buf, filename, err := f.svc.ExportICS(context.Background(), f.planID, "user-1", "")
	if err != nil {
		t.Fatalf("ExportICS 失败: %v", err)
	}
	if filename != "JEE_Sprint_2026-05-01.ics" {
		t.Errorf("文件名错误: %s", filename)
	}

	body := buf.String()
	events := parseICS(t, body).Events()
	if len(events) != 2 {
		t.Fatalf("期望 2 个事件，实际 %d", len(events))
	}

	first := events[0]
	if got := first.GetProperty(ics.ComponentPropertySummary).Value; got != "Day 1 · Alpha" {
		t.Errorf("摘要错误: %s", got)
	}
	// 默认 18:00 Asia/Kolkata = 12:30 UTC，时长 4h
	if got := first.GetProperty(ics.ComponentPropertyDtStart).Value; got != "20260501T123000Z" {
		t.Errorf("开始时间错误: %s", got)
	}
	if got := first.GetProperty(ics.ComponentPropertyDtEnd).Value; got != "20260501T163000Z" {
		t.Errorf("结束时间错误: %s", got)
	}
	if strings.Contains(body, "BEGIN:VALARM") {
		t.Error("未开启提醒时不应包含 VALARM")
	}
}

func TestExportService_ICSWithReminderAndOverride(t *testing.T) {
	f := newExportFixture(t)
	ctx := context.Background()

	_, err := f.reminder.Update(ctx, "user-1", &dto.UpdateReminderRequest{
		Enabled:     boolPtr(true),
		LeadMinutes: intPtr(30),
		Timezone:    strPtr("UTC"),
	})
	if err != nil {
		t.Fatalf("更新提醒设置失败: %v", err)
	}

	buf, _, err := f.svc.ExportICS(ctx, f.planID, "user-1", "07:15")
	if err != nil {
		t.Fatalf("ExportICS 失败: %v", err)
	}
	body := buf.String()

	if !strings.Contains(body, "BEGIN:VALARM") || !strings.Contains(body, "TRIGGER:-PT30M") {
		t.Error("开启提醒时应包含提前 30 分钟的 VALARM")
	}
	events := parseICS(t, body).Events()
	if got := events[1].GetProperty(ics.ComponentPropertyDtStart).Value; got != "20260502T071500Z" {
		t.Errorf("query 覆盖的开始时间未生效: %s", got)
	}
}

func TestExportService_ICSErrors(t *testing.T) {
	f := newExportFixture(t)
	ctx := context.Background()

	if _, _, err := f.svc.ExportICS(ctx, f.planID, "user-1", "7pm"); !errors.Is(err, ErrInvalidStartTime) {
		t.Errorf("期望 ErrInvalidStartTime，实际: %v", err)
	}
	if _, _, err := f.svc.ExportICS(ctx, f.planID, "user-2", ""); !errors.Is(err, ErrPlanNotFound) {
		t.Errorf("期望 ErrPlanNotFound，实际: %v", err)
	}

	f.repos.plans.plans[f.planID].Days = nil
	if _, _, err := f.svc.ExportICS(ctx, f.planID, "user-1", ""); !errors.Is(err, ErrExportEmptyPlan) {
		t.Errorf("期望 ErrExportEmptyPlan，实际: %v", err)
	}
}

func TestExportService_XLSX(t *testing.T) {
	f := newExportFixture(t)
	ctx := context.Background()

	_ = f.repos.progress.Upsert(ctx, &model.PlanProgress{PlanID: f.planID, Day: 2, TopicID: "b", Completed: true})

	buf, filename, err := f.svc.ExportXLSX(ctx, f.planID, "user-1")
	if err != nil {
		t.Fatalf("ExportXLSX 失败: %v", err)
	}
	if filename != "JEE_Sprint_2026-05-01.xlsx" {
		t.Errorf("文件名错误: %s", filename)
	}

	x, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("打开 Excel 失败: %v", err)
	}
	defer x.Close()

	sheet := "Study Plan"
	checks := map[string]string{
		"A2": "Day",
		"D3": "Alpha",
		"E3": "4",
		"B4": "2026-05-02",
		"D5": "Beta",
		"E5": "3",
		"F5": "✓",
		"F4": "",
		"D6": "Total",
	}
	for axis, want := range checks {
		got, err := x.GetCellValue(sheet, axis)
		if err != nil {
			t.Fatalf("读取 %s 失败: %v", axis, err)
		}
		if got != want {
			t.Errorf("%s 期望 %q，实际 %q", axis, want, got)
		}
	}
}

func TestExportService_XLSXHeaderStyled(t *testing.T) {
	f := newExportFixture(t)

	buf, _, err := f.svc.ExportXLSX(context.Background(), f.planID, "user-1")
	if err != nil {
		t.Fatalf("ExportXLSX 失败: %v", err)
	}
	x, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("打开 Excel 失败: %v", err)
	}
	defer x.Close()

	for _, c := range []string{"A1", "A2", "F2"} {
		style, err := x.GetCellStyle("Study Plan", c)
		if err != nil {
			t.Fatalf("读取 %s 样式失败: %v", c, err)
		}
		if style == 0 {
			t.Errorf("%s 应带表头样式", c)
		}
	}
}

func TestLayoutPlanSheet_MissingSheet(t *testing.T) {
	x := excelize.NewFile()
	defer x.Close()

	if err := layoutPlanSheet(x, "Study Plan"); err == nil {
		t.Error("工作表不存在时应返回错误")
	}
	if err := layoutPlanSheet(x, "Sheet1"); err != nil {
		t.Errorf("默认工作表应可设置样式: %v", err)
	}
}
