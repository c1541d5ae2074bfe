package dto

// ── 学习计划 DTO ──

// GeneratePlanRequest 生成 / 预览学习计划请求
type GeneratePlanRequest struct {
	ExamID      string   `json:"exam_id"       binding:"required,max=64"`
	TopicIDs    []string `json:"topic_ids"     binding:"required,min=1,dive,required"`
	DailyHours  float64  `json:"daily_hours"   binding:"required,gte=0.5,lte=16"`
	DaysPerWeek int      `json:"days_per_week" binding:"omitempty,min=1,max=7"`
	Title       string   `json:"title"         binding:"omitempty,max=200"`
}

// PlanListRequest 计划列表查询参数
type PlanListRequest struct {
	PaginationRequest
}

// PlanEntryResponse 单个主题在某天的学时
type PlanEntryResponse struct {
	TopicID   string  `json:"topic_id"`
	TopicName string  `json:"topic_name"`
	Subject   string  `json:"subject"`
	Hours     float64 `json:"hours"`
	Completed bool    `json:"completed"`
}

// PlanDayResponse 计划中的一天
type PlanDayResponse struct {
	Day        int                 `json:"day"`
	Date       string              `json:"date"` // YYYY-MM-DD
	TotalHours float64             `json:"total_hours"`
	Entries    []PlanEntryResponse `json:"entries"`
}

// EstimateResponse 完成时间估算
type EstimateResponse struct {
	TotalHours   float64 `json:"total_hours"`
	Weeks        float64 `json:"weeks"`
	CalendarDays int     `json:"calendar_days"`
}

// PlanPreviewResponse 预览结果（未持久化）
type PlanPreviewResponse struct {
	ExamID      string            `json:"exam_id"`
	ExamName    string            `json:"exam_name"`
	DailyHours  float64           `json:"daily_hours"`
	DaysPerWeek int               `json:"days_per_week"`
	StartDate   string            `json:"start_date"`
	ExamDate    string            `json:"exam_date,omitempty"`
	DaysToExam  *int              `json:"days_to_exam,omitempty"`
	Estimate    EstimateResponse  `json:"estimate"`
	Days        []PlanDayResponse `json:"days"`
}

// PlanResponse 已保存的计划
type PlanResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Status      string            `json:"status"`
	ExamID      string            `json:"exam_id"`
	ExamName    string            `json:"exam_name"`
	DailyHours  float64           `json:"daily_hours"`
	DaysPerWeek int               `json:"days_per_week"`
	StartDate   string            `json:"start_date"`
	ExamDate    string            `json:"exam_date,omitempty"`
	DaysToExam  *int              `json:"days_to_exam,omitempty"`
	TotalDays   int               `json:"total_days"`
	Estimate    EstimateResponse  `json:"estimate"`
	Days        []PlanDayResponse `json:"days,omitempty"`
	CreatedAt   string            `json:"created_at"`
}
