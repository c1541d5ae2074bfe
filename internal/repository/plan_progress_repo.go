package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/model"
)

// PlanProgressRepository 计划进度数据访问接口
type PlanProgressRepository interface {
	// Upsert 按 (plan_id, day, topic_id) 写入或更新完成标记
	Upsert(ctx context.Context, progress *model.PlanProgress) error
	ListByPlan(ctx context.Context, planID string) ([]model.PlanProgress, error)
}

type planProgressRepo struct {
	db *gorm.DB
}

// NewPlanProgressRepo 创建 PlanProgressRepository 实例
func NewPlanProgressRepo(db *gorm.DB) PlanProgressRepository {
	return &planProgressRepo{db: db}
}

func (r *planProgressRepo) Upsert(ctx context.Context, progress *model.PlanProgress) error {
	if progress.ProgressID == "" {
		progress.ProgressID = uuid.NewString()
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "plan_id"}, {Name: "day"}, {Name: "topic_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"completed", "completed_at", "updated_at"}),
		}).
		Create(progress).Error
}

func (r *planProgressRepo) ListByPlan(ctx context.Context, planID string) ([]model.PlanProgress, error) {
	var list []model.PlanProgress
	err := r.db.WithContext(ctx).
		Where("plan_id = ?", planID).
		Order("day ASC, topic_id ASC").
		Find(&list).Error
	return list, err
}
