package service

import (
	"context"
	"time"

	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/config"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/catalog"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/dto"
)

// CatalogService 考试目录查询接口（只读，数据来自内嵌 YAML）
type CatalogService interface {
	ListExams(ctx context.Context) []dto.ExamSummary
	GetExam(ctx context.Context, id string) (*dto.ExamDetail, error)
}

type catalogService struct {
	catalog *catalog.Catalog
	clock   clock
}

// NewCatalogService 创建 CatalogService 实例
func NewCatalogService(cat *catalog.Catalog, cfg *config.PlannerConfig) CatalogService {
	return &catalogService{catalog: cat, clock: newClock(cfg)}
}

func (s *catalogService) ListExams(_ context.Context) []dto.ExamSummary {
	exams := s.catalog.ListExams()
	today := s.clock.today()

	list := make([]dto.ExamSummary, 0, len(exams))
	for _, e := range exams {
		list = append(list, toExamSummary(e, today))
	}
	return list
}

func (s *catalogService) GetExam(_ context.Context, id string) (*dto.ExamDetail, error) {
	exam, err := s.catalog.GetExam(id)
	if err != nil {
		return nil, err
	}

	topics := make([]dto.TopicResponse, 0, len(exam.Topics))
	for _, t := range exam.Topics {
		topics = append(topics, dto.TopicResponse{
			ID:             t.ID,
			Name:           t.Name,
			Subject:        t.Subject,
			Effort:         t.Effort,
			ROI:            t.ROI,
			EstimatedHours: t.EstimatedHours,
		})
	}

	return &dto.ExamDetail{
		ExamSummary: toExamSummary(exam, s.clock.today()),
		Description: exam.Description,
		Topics:      topics,
	}, nil
}

func toExamSummary(e catalog.Exam, today time.Time) dto.ExamSummary {
	subjects := e.Subjects
	if subjects == nil {
		subjects = []string{}
	}
	return dto.ExamSummary{
		ID:         e.ID,
		Name:       e.Name,
		Board:      e.Board,
		ExamDate:   e.ExamDate,
		DaysToExam: daysToExam(e.ExamDate, today),
		Subjects:   subjects,
		TopicCount: len(e.Topics),
		TotalHours: roundHours(e.TotalHours()),
	}
}

// daysToExam 考试日期可解析时返回倒计时天数
func daysToExam(raw string, today time.Time) *int {
	date, ok := catalog.ParseExamDate(raw)
	if !ok {
		return nil
	}
	d := catalog.DaysUntil(date, today)
	return &d
}
