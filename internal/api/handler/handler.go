package handler

import "github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth      *AuthHandler
	User      *UserHandler
	Catalog   *CatalogHandler
	StudyPlan *StudyPlanHandler
	Progress  *ProgressHandler
	Reminder  *ReminderHandler
	Export    *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(svc.Auth),
		User:      NewUserHandler(svc.User),
		Catalog:   NewCatalogHandler(svc.Catalog),
		StudyPlan: NewStudyPlanHandler(svc.StudyPlan),
		Progress:  NewProgressHandler(svc.Progress),
		Reminder:  NewReminderHandler(svc.Reminder),
		Export:    NewExportHandler(svc.Export),
	}
}
