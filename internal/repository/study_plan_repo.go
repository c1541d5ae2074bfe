package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/model"
)

// StudyPlanRepository 学习计划快照数据访问接口
type StudyPlanRepository interface {
	// Create 在一个事务内写入计划、每日安排与条目
	Create(ctx context.Context, plan *model.StudyPlan) error
	// GetByID 查询计划并预加载每日安排与条目
	GetByID(ctx context.Context, id string) (*model.StudyPlan, error)
	ListByUser(ctx context.Context, userID string, offset, limit int) ([]model.StudyPlan, int64, error)
	Delete(ctx context.Context, id string) error
}

type studyPlanRepo struct {
	db *gorm.DB
}

// NewStudyPlanRepo 创建 StudyPlanRepository 实例
func NewStudyPlanRepo(db *gorm.DB) StudyPlanRepository {
	return &studyPlanRepo{db: db}
}

func (r *studyPlanRepo) Create(ctx context.Context, plan *model.StudyPlan) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if plan.PlanID == "" {
			plan.PlanID = uuid.NewString()
		}
		if err := tx.Omit(clause.Associations).Create(plan).Error; err != nil {
			return err
		}

		for i := range plan.Days {
			day := &plan.Days[i]
			if day.DayID == "" {
				day.DayID = uuid.NewString()
			}
			day.PlanID = plan.PlanID
			if err := tx.Omit(clause.Associations).Create(day).Error; err != nil {
				return err
			}

			for j := range day.Entries {
				entry := &day.Entries[j]
				if entry.EntryID == "" {
					entry.EntryID = uuid.NewString()
				}
				entry.DayID = day.DayID
				entry.Position = j
			}
			if len(day.Entries) > 0 {
				if err := tx.CreateInBatches(day.Entries, 100).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (r *studyPlanRepo) GetByID(ctx context.Context, id string) (*model.StudyPlan, error) {
	var plan model.StudyPlan
	err := r.db.WithContext(ctx).
		Preload("Days", func(db *gorm.DB) *gorm.DB {
			return db.Order("day ASC")
		}).
		Preload("Days.Entries", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("plan_id = ?", id).
		First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *studyPlanRepo) ListByUser(ctx context.Context, userID string, offset, limit int) ([]model.StudyPlan, int64, error) {
	var plans []model.StudyPlan
	var total int64

	db := r.db.WithContext(ctx).Model(&model.StudyPlan{}).Where("user_id = ?", userID)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&plans).Error; err != nil {
		return nil, 0, err
	}

	return plans, total, nil
}

func (r *studyPlanRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("plan_id = ?", id).
		Delete(&model.StudyPlan{}).Error
}
