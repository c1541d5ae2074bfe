package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/config"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/catalog"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/dto"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/model"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/planner"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/repository"
)

// ── 学习计划模块业务错误 ──

var (
	ErrPlanNoTopics        = errors.New("请至少选择一个主题")
	ErrPlanNotFound        = errors.New("学习计划不存在")
	ErrInvalidDailyHours   = errors.New("每日学习时长超出允许范围")
	ErrInvalidDaysPerWeek  = errors.New("每周学习天数必须在 1-7 之间")
	ErrPlanInvalidTopicHrs = errors.New("主题预计学时无效")
)

const dateLayout = "2006-01-02"

// StudyPlanService 学习计划业务接口
//
// 计划生成后保存为快照，进度与导出都基于快照，不随目录数据变化重算。
type StudyPlanService interface {
	// Preview 计算每日安排但不保存
	Preview(ctx context.Context, req *dto.GeneratePlanRequest) (*dto.PlanPreviewResponse, error)
	// Generate 计算并在一个事务内保存快照
	Generate(ctx context.Context, req *dto.GeneratePlanRequest, userID string) (*dto.PlanResponse, error)
	Get(ctx context.Context, planID, userID string) (*dto.PlanResponse, error)
	ListMine(ctx context.Context, userID string, req *dto.PlanListRequest) ([]dto.PlanResponse, int64, error)
	Delete(ctx context.Context, planID, userID string) error
}

type studyPlanService struct {
	repo    *repository.Repository
	catalog *catalog.Catalog
	cfg     *config.PlannerConfig
	clock   clock
	logger  *zap.Logger
}

// NewStudyPlanService 创建 StudyPlanService 实例
func NewStudyPlanService(
	repo *repository.Repository,
	cat *catalog.Catalog,
	cfg *config.PlannerConfig,
	logger *zap.Logger,
) StudyPlanService {
	return &studyPlanService{
		repo:    repo,
		catalog: cat,
		cfg:     cfg,
		clock:   newClock(cfg),
		logger:  logger,
	}
}

// computedPlan 一次分配的完整结果
type computedPlan struct {
	exam        catalog.Exam
	dailyHours  float64
	daysPerWeek int
	today       time.Time
	days        []planner.ScheduleDay
	estimate    planner.Estimate
}

// ═══════════════════════════════════════════════════════════
// Preview / Generate
// ═══════════════════════════════════════════════════════════

func (s *studyPlanService) Preview(_ context.Context, req *dto.GeneratePlanRequest) (*dto.PlanPreviewResponse, error) {
	cp, err := s.compute(req)
	if err != nil {
		return nil, err
	}

	resp := &dto.PlanPreviewResponse{
		ExamID:      cp.exam.ID,
		ExamName:    cp.exam.Name,
		DailyHours:  cp.dailyHours,
		DaysPerWeek: cp.daysPerWeek,
		StartDate:   cp.today.Format(dateLayout),
		Estimate:    toEstimateResponse(cp.estimate),
		Days:        make([]dto.PlanDayResponse, 0, len(cp.days)),
	}
	if date, ok := catalog.ParseExamDate(cp.exam.ExamDate); ok {
		resp.ExamDate = date.Format(dateLayout)
		resp.DaysToExam = daysToExam(cp.exam.ExamDate, cp.today)
	}

	for _, d := range cp.days {
		day := dto.PlanDayResponse{
			Day:        d.Day,
			Date:       d.Date.Format(dateLayout),
			TotalHours: roundHours(d.TotalHours),
			Entries:    make([]dto.PlanEntryResponse, 0, len(d.Entries)),
		}
		for _, e := range d.Entries {
			day.Entries = append(day.Entries, dto.PlanEntryResponse{
				TopicID:   e.TopicID,
				TopicName: e.TopicName,
				Subject:   e.Subject,
				Hours:     roundHours(e.Hours),
			})
		}
		resp.Days = append(resp.Days, day)
	}
	return resp, nil
}

func (s *studyPlanService) Generate(ctx context.Context, req *dto.GeneratePlanRequest, userID string) (*dto.PlanResponse, error) {
	cp, err := s.compute(req)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = fmt.Sprintf("%s Study Plan", cp.exam.Name)
	}

	plan := &model.StudyPlan{
		UserID:         userID,
		ExamID:         cp.exam.ID,
		ExamName:       cp.exam.Name,
		Title:          title,
		DailyHours:     cp.dailyHours,
		DaysPerWeek:    cp.daysPerWeek,
		TotalHours:     roundHours(cp.estimate.TotalHours),
		TotalDays:      len(cp.days),
		EstimatedWeeks: cp.estimate.Weeks,
		CalendarDays:   cp.estimate.CalendarDays,
		StartDate:      dateOnly(cp.today),
		Status:         model.PlanStatusActive,
		Days:           make([]model.StudyPlanDay, 0, len(cp.days)),
	}
	if date, ok := catalog.ParseExamDate(cp.exam.ExamDate); ok {
		plan.ExamDate = &date
	}

	for _, d := range cp.days {
		day := model.StudyPlanDay{
			Day:        d.Day,
			Date:       dateOnly(d.Date),
			TotalHours: d.TotalHours,
			Entries:    make([]model.StudyPlanEntry, 0, len(d.Entries)),
		}
		for _, e := range d.Entries {
			day.Entries = append(day.Entries, model.StudyPlanEntry{
				TopicID:   e.TopicID,
				TopicName: e.TopicName,
				Subject:   e.Subject,
				Hours:     e.Hours,
			})
		}
		plan.Days = append(plan.Days, day)
	}

	if err := s.repo.StudyPlan.Create(ctx, plan); err != nil {
		s.logger.Error("保存学习计划失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("学习计划已生成",
		zap.String("plan_id", plan.PlanID),
		zap.String("exam_id", plan.ExamID),
		zap.Int("days", plan.TotalDays),
	)

	resp := toPlanResponse(plan, nil, cp.today)
	return &resp, nil
}

// compute 校验请求、解析主题并执行分配
func (s *studyPlanService) compute(req *dto.GeneratePlanRequest) (*computedPlan, error) {
	if len(req.TopicIDs) == 0 {
		return nil, ErrPlanNoTopics
	}
	if !(req.DailyHours >= s.cfg.MinDailyHours) || req.DailyHours > s.cfg.MaxDailyHours {
		return nil, ErrInvalidDailyHours
	}

	daysPerWeek := req.DaysPerWeek
	if daysPerWeek == 0 {
		daysPerWeek = s.cfg.DefaultDaysPerWeek
	}
	if daysPerWeek < 1 || daysPerWeek > 7 {
		return nil, ErrInvalidDaysPerWeek
	}

	exam, err := s.catalog.GetExam(req.ExamID)
	if err != nil {
		return nil, err
	}
	topics, err := s.catalog.SelectTopics(req.ExamID, req.TopicIDs)
	if err != nil {
		return nil, err
	}

	today := s.clock.today()
	days, err := planner.Allocate(topics, req.DailyHours, today)
	if err != nil {
		switch {
		case errors.Is(err, planner.ErrNoTopics):
			return nil, ErrPlanNoTopics
		case errors.Is(err, planner.ErrInvalidDailyLimit):
			return nil, ErrInvalidDailyHours
		case errors.Is(err, planner.ErrInvalidTopicHours):
			return nil, ErrPlanInvalidTopicHrs
		}
		return nil, err
	}

	return &computedPlan{
		exam:        exam,
		dailyHours:  req.DailyHours,
		daysPerWeek: daysPerWeek,
		today:       today,
		days:        days,
		estimate:    planner.EstimateCompletion(planner.TotalHours(topics), req.DailyHours, daysPerWeek),
	}, nil
}

// ═══════════════════════════════════════════════════════════
// Get / ListMine / Delete
// ═══════════════════════════════════════════════════════════

func (s *studyPlanService) Get(ctx context.Context, planID, userID string) (*dto.PlanResponse, error) {
	plan, err := loadOwnedPlan(ctx, s.repo, s.logger, planID, userID)
	if err != nil {
		return nil, err
	}

	progress, err := s.repo.PlanProgress.ListByPlan(ctx, plan.PlanID)
	if err != nil {
		s.logger.Error("查询计划进度失败", zap.Error(err))
		return nil, err
	}

	resp := toPlanResponse(plan, completionIndex(progress), s.clock.today())
	return &resp, nil
}

func (s *studyPlanService) ListMine(ctx context.Context, userID string, req *dto.PlanListRequest) ([]dto.PlanResponse, int64, error) {
	plans, total, err := s.repo.StudyPlan.ListByUser(ctx, userID, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询学习计划列表失败", zap.Error(err))
		return nil, 0, err
	}

	today := s.clock.today()
	list := make([]dto.PlanResponse, 0, len(plans))
	for i := range plans {
		list = append(list, toPlanResponse(&plans[i], nil, today))
	}
	return list, total, nil
}

func (s *studyPlanService) Delete(ctx context.Context, planID, userID string) error {
	if _, err := loadOwnedPlan(ctx, s.repo, s.logger, planID, userID); err != nil {
		return err
	}
	if err := s.repo.StudyPlan.Delete(ctx, planID); err != nil {
		s.logger.Error("删除学习计划失败", zap.Error(err))
		return err
	}
	return nil
}

// ── 辅助函数 ──

// loadOwnedPlan 查询计划快照；非本人的计划按不存在处理
func loadOwnedPlan(ctx context.Context, repo *repository.Repository, logger *zap.Logger, planID, userID string) (*model.StudyPlan, error) {
	plan, err := repo.StudyPlan.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		logger.Error("查询学习计划失败", zap.Error(err))
		return nil, err
	}
	if plan.UserID != userID {
		return nil, ErrPlanNotFound
	}
	return plan, nil
}

type progressKey struct {
	day     int
	topicID string
}

func completionIndex(list []model.PlanProgress) map[progressKey]bool {
	idx := make(map[progressKey]bool, len(list))
	for _, p := range list {
		if p.Completed {
			idx[progressKey{p.Day, p.TopicID}] = true
		}
	}
	return idx
}

func toPlanResponse(p *model.StudyPlan, done map[progressKey]bool, today time.Time) dto.PlanResponse {
	resp := dto.PlanResponse{
		ID:          p.PlanID,
		Title:       p.Title,
		Status:      p.Status,
		ExamID:      p.ExamID,
		ExamName:    p.ExamName,
		DailyHours:  p.DailyHours,
		DaysPerWeek: p.DaysPerWeek,
		StartDate:   p.StartDate.Format(dateLayout),
		TotalDays:   p.TotalDays,
		Estimate: dto.EstimateResponse{
			TotalHours:   p.TotalHours,
			Weeks:        p.EstimatedWeeks,
			CalendarDays: p.CalendarDays,
		},
	}
	if p.ExamDate != nil {
		resp.ExamDate = p.ExamDate.Format(dateLayout)
		d := catalog.DaysUntil(*p.ExamDate, today)
		resp.DaysToExam = &d
	}
	if !p.CreatedAt.IsZero() {
		resp.CreatedAt = p.CreatedAt.Format(time.RFC3339)
	}

	for _, d := range p.Days {
		day := dto.PlanDayResponse{
			Day:        d.Day,
			Date:       d.Date.Format(dateLayout),
			TotalHours: roundHours(d.TotalHours),
			Entries:    make([]dto.PlanEntryResponse, 0, len(d.Entries)),
		}
		for _, e := range d.Entries {
			day.Entries = append(day.Entries, dto.PlanEntryResponse{
				TopicID:   e.TopicID,
				TopicName: e.TopicName,
				Subject:   e.Subject,
				Hours:     roundHours(e.Hours),
				Completed: done[progressKey{d.Day, e.TopicID}],
			})
		}
		resp.Days = append(resp.Days, day)
	}
	return resp
}

func toEstimateResponse(e planner.Estimate) dto.EstimateResponse {
	return dto.EstimateResponse{
		TotalHours:   roundHours(e.TotalHours),
		Weeks:        e.Weeks,
		CalendarDays: e.CalendarDays,
	}
}

// dateOnly 保留日历日期，按 UTC 零点存储
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func roundHours(h float64) float64 {
	return math.Round(h*100) / 100
}
