package service

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"testing/fstest"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/config"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/catalog"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/model"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/repository"
	pkgerrors "github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/pkg/errors"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User // key: user_id
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%d", m.seq)
	}
	if user.Version == 0 {
		user.Version = 1
	}
	user.CreatedAt = time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	cp := *user
	m.users[user.UserID] = &cp
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	stored, ok := m.users[user.UserID]
	if !ok || stored.Version != user.Version {
		return pkgerrors.ErrOptimisticLock
	}
	user.Version++
	cp := *user
	m.users[user.UserID] = &cp
	return nil
}

// ── Mock StudyPlanRepository ──

type mockStudyPlanRepo struct {
	plans map[string]*model.StudyPlan
	order []string
	err   error // 非空时所有操作返回该错误
}

func newMockStudyPlanRepo() *mockStudyPlanRepo {
	return &mockStudyPlanRepo{plans: make(map[string]*model.StudyPlan)}
}

func (m *mockStudyPlanRepo) Create(_ context.Context, plan *model.StudyPlan) error {
	if m.err != nil {
		return m.err
	}
	if plan.PlanID == "" {
		plan.PlanID = fmt.Sprintf("plan-%d", len(m.order)+1)
	}
	plan.Version = 1
	plan.CreatedAt = time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(len(m.order)) * time.Minute)
	for i := range plan.Days {
		plan.Days[i].PlanID = plan.PlanID
		plan.Days[i].DayID = fmt.Sprintf("%s-d%d", plan.PlanID, plan.Days[i].Day)
		for j := range plan.Days[i].Entries {
			plan.Days[i].Entries[j].DayID = plan.Days[i].DayID
			plan.Days[i].Entries[j].Position = j
		}
	}
	m.plans[plan.PlanID] = plan
	m.order = append(m.order, plan.PlanID)
	return nil
}

func (m *mockStudyPlanRepo) GetByID(_ context.Context, id string) (*model.StudyPlan, error) {
	if m.err != nil {
		return nil, m.err
	}
	if p, ok := m.plans[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudyPlanRepo) ListByUser(_ context.Context, userID string, offset, limit int) ([]model.StudyPlan, int64, error) {
	if m.err != nil {
		return nil, 0, m.err
	}
	var mine []model.StudyPlan
	for i := len(m.order) - 1; i >= 0; i-- {
		if p, ok := m.plans[m.order[i]]; ok && p.UserID == userID {
			cp := *p
			cp.Days = nil
			mine = append(mine, cp)
		}
	}
	total := int64(len(mine))
	if offset >= len(mine) {
		return []model.StudyPlan{}, total, nil
	}
	end := offset + limit
	if end > len(mine) {
		end = len(mine)
	}
	return mine[offset:end], total, nil
}

func (m *mockStudyPlanRepo) Delete(_ context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	delete(m.plans, id)
	return nil
}

// ── Mock PlanProgressRepository ──

type mockPlanProgressRepo struct {
	rows map[string]*model.PlanProgress // key: plan_id|day|topic_id
}

func newMockPlanProgressRepo() *mockPlanProgressRepo {
	return &mockPlanProgressRepo{rows: make(map[string]*model.PlanProgress)}
}

func (m *mockPlanProgressRepo) Upsert(_ context.Context, p *model.PlanProgress) error {
	cp := *p
	m.rows[fmt.Sprintf("%s|%d|%s", p.PlanID, p.Day, p.TopicID)] = &cp
	return nil
}

func (m *mockPlanProgressRepo) ListByPlan(_ context.Context, planID string) ([]model.PlanProgress, error) {
	var list []model.PlanProgress
	for _, p := range m.rows {
		if p.PlanID == planID {
			list = append(list, *p)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Day != list[j].Day {
			return list[i].Day < list[j].Day
		}
		return list[i].TopicID < list[j].TopicID
	})
	return list, nil
}

// ── 测试夹具 ──

type testRepos struct {
	repo     *repository.Repository
	users    *mockUserRepo
	plans    *mockStudyPlanRepo
	progress *mockPlanProgressRepo
}

func newTestRepos() *testRepos {
	r := &testRepos{
		users:    newMockUserRepo(),
		plans:    newMockStudyPlanRepo(),
		progress: newMockPlanProgressRepo(),
	}
	r.repo = &repository.Repository{
		User:         r.users,
		StudyPlan:    r.plans,
		PlanProgress: r.progress,
	}
	return r
}

const testCatalogYAML = `
id: mock-exam
name: Mock Exam
board: Test Board
exam_date: "2026-06-01"
subjects: [Physics, Chemistry, Maths]
topics:
  - {id: a, name: Alpha, subject: Physics, effort: low, roi: 5, estimated_hours: 5}
  - {id: b, name: Beta, subject: Chemistry, effort: low, roi: 5, estimated_hours: 3}
  - {id: c, name: Gamma, subject: Maths, effort: high, roi: 2, estimated_hours: 2.5}
  - {id: d, name: Delta, subject: Maths, effort: medium, roi: 4, estimated_hours: 6}
`

func newTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Load(fstest.MapFS{
		"mock.yaml": {Data: []byte(testCatalogYAML)},
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("加载测试目录失败: %v", err)
	}
	return c
}

func testPlannerConfig() *config.PlannerConfig {
	return &config.PlannerConfig{MinDailyHours: 0.5, MaxDailyHours: 16, DefaultDaysPerWeek: 6, Timezone: "UTC"}
}

// fixedNow 2026-05-01 10:00 UTC
func fixedNow() time.Time {
	return time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
}
