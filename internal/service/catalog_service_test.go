package service

import (
	"context"
	"errors"
	"testing"

	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/catalog"
)

func newCatalogFixture(t *testing.T) CatalogService {
	t.Helper()
	svc := NewCatalogService(newTestCatalog(t), testPlannerConfig())
	svc.(*catalogService).clock.now = fixedNow
	return svc
}

func TestCatalogService_ListExams(t *testing.T) {
	svc := newCatalogFixture(t)

	list := svc.ListExams(context.Background())
	if len(list) != 1 {
		t.Fatalf("期望 1 个考试，实际 %d", len(list))
	}
	e := list[0]
	if e.TopicCount != 4 || e.TotalHours != 16.5 {
		t.Errorf("汇总错误: topics=%d hours=%v", e.TopicCount, e.TotalHours)
	}
	if e.DaysToExam == nil || *e.DaysToExam != 31 {
		t.Errorf("期望距考试 31 天，实际 %v", e.DaysToExam)
	}
}

func TestCatalogService_GetExam(t *testing.T) {
	svc := newCatalogFixture(t)

	detail, err := svc.GetExam(context.Background(), "mock-exam")
	if err != nil {
		t.Fatalf("GetExam 失败: %v", err)
	}
	if len(detail.Topics) != 4 || detail.Topics[0].ID != "a" {
		t.Errorf("主题列表错误: %+v", detail.Topics)
	}

	if _, err := svc.GetExam(context.Background(), "nope"); !errors.Is(err, catalog.ErrExamNotFound) {
		t.Errorf("期望 ErrExamNotFound，实际: %v", err)
	}
}
