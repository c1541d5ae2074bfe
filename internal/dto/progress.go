package dto

// ── 进度 DTO ──

// ToggleProgressRequest 标记某天某主题完成状态
type ToggleProgressRequest struct {
	Day       int    `json:"day"       binding:"required,min=1"`
	TopicID   string `json:"topic_id"  binding:"required,max=64"`
	Completed *bool  `json:"completed" binding:"required"`
}

// DayProgress 单日完成情况
type DayProgress struct {
	Day            int     `json:"day"`
	Date           string  `json:"date"`
	TotalEntries   int     `json:"total_entries"`
	CompletedCount int     `json:"completed_entries"`
	TotalHours     float64 `json:"total_hours"`
	CompletedHours float64 `json:"completed_hours"`
	Done           bool    `json:"done"`
}

// ProgressSummaryResponse 计划整体进度
type ProgressSummaryResponse struct {
	PlanID           string        `json:"plan_id"`
	TotalEntries     int           `json:"total_entries"`
	CompletedEntries int           `json:"completed_entries"`
	TotalHours       float64       `json:"total_hours"`
	CompletedHours   float64       `json:"completed_hours"`
	Percent          float64       `json:"percent"`
	CurrentDay       int           `json:"current_day"` // 0 表示全部完成
	Days             []DayProgress `json:"days"`
}
