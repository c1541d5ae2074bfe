package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/config"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/catalog"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/repository"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/pkg/jwt"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/pkg/kvstore"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth      AuthService
	User      UserService
	Catalog   CatalogService
	StudyPlan StudyPlanService
	Progress  ProgressService
	Reminder  ReminderService
	Export    ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	cat *catalog.Catalog,
	jwtMgr *jwt.Manager,
	store kvstore.Store,
	logger *zap.Logger,
) *Service {
	reminder := NewReminderService(store, logger)
	return &Service{
		Auth:      NewAuthService(cfg, repo, cat, jwtMgr, kvstore.NewBlacklist(store), logger),
		User:      NewUserService(repo, cat, logger),
		Catalog:   NewCatalogService(cat, &cfg.Planner),
		StudyPlan: NewStudyPlanService(repo, cat, &cfg.Planner, logger),
		Progress:  NewProgressService(repo, logger),
		Reminder:  reminder,
		Export:    NewExportService(repo, reminder, logger),
	}
}

// clock 以规划时区返回当前时间，测试中可替换 now
type clock struct {
	now func() time.Time
	loc *time.Location
}

func newClock(cfg *config.PlannerConfig) clock {
	return clock{now: time.Now, loc: cfg.Location()}
}

// today 规划时区下的当前时刻
func (c clock) today() time.Time {
	return c.now().In(c.loc)
}
