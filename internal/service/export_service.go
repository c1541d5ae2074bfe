package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/model"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportEmptyPlan    = errors.New("计划中没有可导出的学习日")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

const icsProductID = "-//Horizons//Study Planner//EN"

// ExportService 导出业务接口
//
// 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response。
type ExportService interface {
	// ExportICS 每个学习日一个 VEVENT；startOverride 为空时使用提醒设置中的开始时间
	ExportICS(ctx context.Context, planID, userID, startOverride string) (*bytes.Buffer, string, error)
	// ExportXLSX 每个 (day, topic) 条目一行
	ExportXLSX(ctx context.Context, planID, userID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo     *repository.Repository
	reminder ReminderService
	logger   *zap.Logger
	now      func() time.Time
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, reminder ReminderService, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, reminder: reminder, logger: logger, now: time.Now}
}

// ═══════════════════════════════════════════════════════════
// ExportICS 导出为日历订阅文件
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportICS(ctx context.Context, planID, userID, startOverride string) (*bytes.Buffer, string, error) {
	plan, err := loadOwnedPlan(ctx, s.repo, s.logger, planID, userID)
	if err != nil {
		return nil, "", err
	}
	if len(plan.Days) == 0 {
		return nil, "", ErrExportEmptyPlan
	}

	settings, err := s.reminder.Get(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	start := settings.PreferredStart
	if startOverride = strings.TrimSpace(startOverride); startOverride != "" {
		start = startOverride
	}
	offset, err := parseClock(start)
	if err != nil {
		return nil, "", err
	}
	loc, err := time.LoadLocation(settings.Timezone)
	if err != nil {
		loc = time.UTC
	}

	now := s.now().UTC()
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(icsProductID)
	cal.SetXWRCalName(plan.Title)
	cal.SetXWRTimezone(loc.String())

	for _, d := range plan.Days {
		y, m, dd := d.Date.Date()
		begin := time.Date(y, m, dd, 0, 0, 0, 0, loc).Add(offset)
		end := begin.Add(time.Duration(d.TotalHours * float64(time.Hour)))

		event := cal.AddEvent(fmt.Sprintf("%s-day-%d@horizons", plan.PlanID, d.Day))
		event.SetCreatedTime(now)
		event.SetDtStampTime(now)
		event.SetStartAt(begin)
		event.SetEndAt(end)
		event.SetSummary(daySummary(d))
		event.SetDescription(dayDescription(d))

		if settings.Enabled {
			alarm := event.AddAlarm()
			alarm.SetAction(ics.ActionDisplay)
			alarm.SetTrigger(fmt.Sprintf("-PT%dM", settings.LeadMinutes))
			alarm.SetProperty(ics.ComponentPropertyDescription, daySummary(d))
		}
	}

	buf := new(bytes.Buffer)
	if err := cal.SerializeTo(buf); err != nil {
		s.logger.Error("生成 ICS 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	return buf, exportFilename(plan, "ics"), nil
}

// daySummary "Day N · topicA, topicB"
func daySummary(d model.StudyPlanDay) string {
	names := make([]string, 0, len(d.Entries))
	for _, e := range d.Entries {
		names = append(names, e.TopicName)
	}
	return fmt.Sprintf("Day %d · %s", d.Day, strings.Join(names, ", "))
}

func dayDescription(d model.StudyPlanDay) string {
	lines := make([]string, 0, len(d.Entries)+1)
	for _, e := range d.Entries {
		lines = append(lines, fmt.Sprintf("- %s: %s (%sh)", e.Subject, e.TopicName, formatHours(e.Hours)))
	}
	lines = append(lines, fmt.Sprintf("Total: %sh", formatHours(d.TotalHours)))
	return strings.Join(lines, "\n")
}

// ═══════════════════════════════════════════════════════════
// ExportXLSX 导出为 Excel
// ═══════════════════════════════════════════════════════════
//
// 表头: | Day | Date | Subject | Topic | Hours | Done |

func (s *exportService) ExportXLSX(ctx context.Context, planID, userID string) (*bytes.Buffer, string, error) {
	plan, err := loadOwnedPlan(ctx, s.repo, s.logger, planID, userID)
	if err != nil {
		return nil, "", err
	}
	if len(plan.Days) == 0 {
		return nil, "", ErrExportEmptyPlan
	}

	progress, err := s.repo.PlanProgress.ListByPlan(ctx, plan.PlanID)
	if err != nil {
		s.logger.Error("查询计划进度失败", zap.Error(err))
		return nil, "", err
	}
	done := completionIndex(progress)

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Study Plan"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		s.logger.Error("创建 Sheet 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	// 删除默认 Sheet1
	f.DeleteSheet("Sheet1")

	// 标题行 + 表头
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s · %s", plan.Title, plan.ExamName))
	for i, h := range []string{"Day", "Date", "Subject", "Topic", "Hours", "Done"} {
		f.SetCellValue(sheetName, cell(colName(i), 2), h)
	}
	if err := layoutPlanSheet(f, sheetName); err != nil {
		s.logger.Error("设置 Excel 样式失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	// 数据行
	row := 3
	for _, d := range plan.Days {
		for _, e := range d.Entries {
			f.SetCellValue(sheetName, cell("A", row), d.Day)
			f.SetCellValue(sheetName, cell("B", row), d.Date.Format(dateLayout))
			f.SetCellValue(sheetName, cell("C", row), e.Subject)
			f.SetCellValue(sheetName, cell("D", row), e.TopicName)
			f.SetCellValue(sheetName, cell("E", row), roundHours(e.Hours))
			mark := ""
			if done[progressKey{d.Day, e.TopicID}] {
				mark = "✓"
			}
			f.SetCellValue(sheetName, cell("F", row), mark)
			row++
		}
	}

	// 合计
	f.SetCellValue(sheetName, cell("D", row), "Total")
	f.SetCellFormula(sheetName, cell("E", row), fmt.Sprintf("SUM(E3:E%d)", row-1))

	// 写入 buffer
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	return buf, exportFilename(plan, "xlsx"), nil
}

// ── 辅助函数 ──

// layoutPlanSheet 设置列宽、合并标题行并给标题与表头加样式
func layoutPlanSheet(f *excelize.File, sheet string) error {
	widths := []struct {
		from, to string
		width    float64
	}{
		{"A", "A", 8}, {"B", "B", 12}, {"C", "C", 16}, {"D", "D", 36}, {"E", "F", 10},
	}
	for _, w := range widths {
		if err := f.SetColWidth(sheet, w.from, w.to, w.width); err != nil {
			return fmt.Errorf("设置列宽 %s:%s: %w", w.from, w.to, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("创建表头样式: %w", err)
	}

	if err := f.MergeCell(sheet, "A1", "F1"); err != nil {
		return fmt.Errorf("合并标题行: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", "A1", headerStyle); err != nil {
		return fmt.Errorf("设置标题样式: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A2", "F2", headerStyle); err != nil {
		return fmt.Errorf("设置表头样式: %w", err)
	}
	return nil
}

func exportFilename(plan *model.StudyPlan, ext string) string {
	return fmt.Sprintf("%s_%s.%s", strings.ReplaceAll(plan.Title, " ", "_"), plan.StartDate.Format(dateLayout), ext)
}

func formatHours(h float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", h), "0"), ".")
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
