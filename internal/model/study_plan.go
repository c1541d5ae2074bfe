package model

import "time"

// 学习计划状态
const (
	PlanStatusActive   = "active"
	PlanStatusArchived = "archived"
)

// StudyPlan 学习计划快照，对应 study_plans
// 生成后不再重算，进度与导出均基于该快照
type StudyPlan struct {
	PlanID         string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"plan_id"`
	UserID         string     `gorm:"type:uuid;not null;index"                       json:"user_id"`
	ExamID         string     `gorm:"type:varchar(64);not null"                      json:"exam_id"`
	ExamName       string     `gorm:"type:varchar(200);not null"                     json:"exam_name"`
	Title          string     `gorm:"type:varchar(200);not null"                     json:"title"`
	DailyHours     float64    `gorm:"type:numeric(6,2);not null"                     json:"daily_hours"`
	DaysPerWeek    int        `gorm:"type:smallint;not null;default:7"               json:"days_per_week"`
	TotalHours     float64    `gorm:"type:numeric(8,2);not null;default:0"           json:"total_hours"`
	TotalDays      int        `gorm:"not null;default:0"                             json:"total_days"`
	EstimatedWeeks float64    `gorm:"type:numeric(6,1);not null;default:0"           json:"estimated_weeks"`
	CalendarDays   int        `gorm:"not null;default:0"                             json:"calendar_days"`
	StartDate      time.Time  `gorm:"type:date;not null"                             json:"start_date"`
	ExamDate       *time.Time `gorm:"type:date"                                      json:"exam_date,omitempty"`
	Status         string     `gorm:"type:varchar(20);not null;default:'active'"     json:"status"`
	Versioned

	// 关联
	Days []StudyPlanDay `gorm:"foreignKey:PlanID;references:PlanID" json:"days,omitempty"`
}

// TableName 指定表名
func (StudyPlan) TableName() string { return "study_plans" }

// StudyPlanDay 计划中的一天，对应 study_plan_days
type StudyPlanDay struct {
	DayID      string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"day_id"`
	PlanID     string    `gorm:"type:uuid;not null"                             json:"plan_id"`
	Day        int       `gorm:"not null"                                       json:"day"`
	Date       time.Time `gorm:"type:date;not null"                             json:"date"`
	TotalHours float64   `gorm:"type:numeric(6,2);not null;default:0"           json:"total_hours"`

	Entries []StudyPlanEntry `gorm:"foreignKey:DayID;references:DayID" json:"entries,omitempty"`
}

// TableName 指定表名
func (StudyPlanDay) TableName() string { return "study_plan_days" }

// StudyPlanEntry 某天分配给某主题的学时，对应 study_plan_entries
type StudyPlanEntry struct {
	EntryID   string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"entry_id"`
	DayID     string  `gorm:"type:uuid;not null"                             json:"day_id"`
	Position  int     `gorm:"not null;default:0"                             json:"position"`
	TopicID   string  `gorm:"type:varchar(64);not null"                      json:"topic_id"`
	TopicName string  `gorm:"type:varchar(200);not null"                     json:"topic_name"`
	Subject   string  `gorm:"type:varchar(100);not null"                     json:"subject"`
	Hours     float64 `gorm:"type:numeric(6,2);not null"                     json:"hours"`
}

// TableName 指定表名
func (StudyPlanEntry) TableName() string { return "study_plan_entries" }

// PlanProgress 计划条目完成标记，对应 plan_progress
// (plan_id, day, topic_id) 唯一
type PlanProgress struct {
	ProgressID  string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"progress_id"`
	PlanID      string     `gorm:"type:uuid;not null"                             json:"plan_id"`
	Day         int        `gorm:"not null"                                       json:"day"`
	TopicID     string     `gorm:"type:varchar(64);not null"                      json:"topic_id"`
	Completed   bool       `gorm:"not null;default:false"                         json:"completed"`
	CompletedAt *time.Time `                                                      json:"completed_at,omitempty"`
	Timestamps
}

// TableName 指定表名
func (PlanProgress) TableName() string { return "plan_progress" }
