package dto

// ── 考试目录 DTO ──

// ExamSummary 考试列表项
type ExamSummary struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Board      string   `json:"board,omitempty"`
	ExamDate   string   `json:"exam_date,omitempty"`
	DaysToExam *int     `json:"days_to_exam,omitempty"`
	Subjects   []string `json:"subjects"`
	TopicCount int      `json:"topic_count"`
	TotalHours float64  `json:"total_hours"`
}

// ExamDetail 考试详情，含全部主题
type ExamDetail struct {
	ExamSummary
	Description string          `json:"description,omitempty"`
	Topics      []TopicResponse `json:"topics"`
}

// TopicResponse 主题信息
type TopicResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Subject        string  `json:"subject"`
	Effort         string  `json:"effort"`
	ROI            int     `json:"roi"`
	EstimatedHours float64 `json:"estimated_hours"`
}
