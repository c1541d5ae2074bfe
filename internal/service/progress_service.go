package service

import (
	"context"
	"errors"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/dto"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/model"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/repository"
)

var ErrProgressEntryNotFound = errors.New("计划中不存在该天的该主题")

// ProgressService 计划完成进度业务接口
type ProgressService interface {
	// Toggle 标记 (day, topic) 完成状态，返回最新汇总
	Toggle(ctx context.Context, planID, userID string, req *dto.ToggleProgressRequest) (*dto.ProgressSummaryResponse, error)
	Summary(ctx context.Context, planID, userID string) (*dto.ProgressSummaryResponse, error)
}

type progressService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewProgressService 创建 ProgressService 实例
func NewProgressService(repo *repository.Repository, logger *zap.Logger) ProgressService {
	return &progressService{repo: repo, logger: logger, now: time.Now}
}

func (s *progressService) Toggle(ctx context.Context, planID, userID string, req *dto.ToggleProgressRequest) (*dto.ProgressSummaryResponse, error) {
	plan, err := loadOwnedPlan(ctx, s.repo, s.logger, planID, userID)
	if err != nil {
		return nil, err
	}
	if !hasEntry(plan, req.Day, req.TopicID) {
		return nil, ErrProgressEntryNotFound
	}

	completed := req.Completed != nil && *req.Completed
	progress := &model.PlanProgress{
		PlanID:    plan.PlanID,
		Day:       req.Day,
		TopicID:   req.TopicID,
		Completed: completed,
	}
	if completed {
		now := s.now()
		progress.CompletedAt = &now
	}
	if err := s.repo.PlanProgress.Upsert(ctx, progress); err != nil {
		s.logger.Error("更新计划进度失败", zap.Error(err))
		return nil, err
	}

	return s.summarize(ctx, plan)
}

func (s *progressService) Summary(ctx context.Context, planID, userID string) (*dto.ProgressSummaryResponse, error) {
	plan, err := loadOwnedPlan(ctx, s.repo, s.logger, planID, userID)
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, plan)
}

func (s *progressService) summarize(ctx context.Context, plan *model.StudyPlan) (*dto.ProgressSummaryResponse, error) {
	list, err := s.repo.PlanProgress.ListByPlan(ctx, plan.PlanID)
	if err != nil {
		s.logger.Error("查询计划进度失败", zap.Error(err))
		return nil, err
	}
	resp := summarizeProgress(plan, completionIndex(list))
	return &resp, nil
}

// summarizeProgress 汇总完成情况；current_day 为第一个有未完成条目的天，全部完成时为 0
func summarizeProgress(plan *model.StudyPlan, done map[progressKey]bool) dto.ProgressSummaryResponse {
	resp := dto.ProgressSummaryResponse{
		PlanID: plan.PlanID,
		Days:   make([]dto.DayProgress, 0, len(plan.Days)),
	}

	for _, d := range plan.Days {
		dp := dto.DayProgress{
			Day:          d.Day,
			Date:         d.Date.Format(dateLayout),
			TotalEntries: len(d.Entries),
		}
		for _, e := range d.Entries {
			dp.TotalHours += e.Hours
			if done[progressKey{d.Day, e.TopicID}] {
				dp.CompletedCount++
				dp.CompletedHours += e.Hours
			}
		}
		dp.Done = dp.CompletedCount == dp.TotalEntries
		if !dp.Done && resp.CurrentDay == 0 {
			resp.CurrentDay = d.Day
		}

		resp.TotalEntries += dp.TotalEntries
		resp.CompletedEntries += dp.CompletedCount
		resp.TotalHours += dp.TotalHours
		resp.CompletedHours += dp.CompletedHours

		dp.TotalHours = roundHours(dp.TotalHours)
		dp.CompletedHours = roundHours(dp.CompletedHours)
		resp.Days = append(resp.Days, dp)
	}

	if resp.TotalHours > 0 {
		resp.Percent = math.Round(resp.CompletedHours/resp.TotalHours*1000) / 10
	}
	resp.TotalHours = roundHours(resp.TotalHours)
	resp.CompletedHours = roundHours(resp.CompletedHours)
	return resp
}

func hasEntry(plan *model.StudyPlan, day int, topicID string) bool {
	for _, d := range plan.Days {
		if d.Day != day {
			continue
		}
		for _, e := range d.Entries {
			if e.TopicID == topicID {
				return true
			}
		}
	}
	return false
}
