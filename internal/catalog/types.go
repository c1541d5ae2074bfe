package catalog

import "github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/planner"

// Exam 入学考试及其可选主题
type Exam struct {
	ID          string      `yaml:"id"`
	Name        string      `yaml:"name"`
	Board       string      `yaml:"board"`
	Description string      `yaml:"description"`
	ExamDate    string      `yaml:"exam_date"` // 原始日期文本，见 ParseExamDate
	Subjects    []string    `yaml:"subjects"`
	Topics      []TopicSpec `yaml:"topics"`
}

// TopicSpec 主题参考数据
type TopicSpec struct {
	ID             string  `yaml:"id"`
	Name           string  `yaml:"name"`
	Subject        string  `yaml:"subject"`
	Effort         string  `yaml:"effort"` // low | medium | high
	ROI            int     `yaml:"roi"`    // 1-5
	EstimatedHours float64 `yaml:"estimated_hours"`
}

// ToPlannerTopic 转为分配器输入
func (t TopicSpec) ToPlannerTopic() planner.Topic {
	return planner.Topic{
		ID:             t.ID,
		Name:           t.Name,
		Subject:        t.Subject,
		Effort:         planner.EffortTier(t.Effort),
		ROI:            t.ROI,
		EstimatedHours: t.EstimatedHours,
	}
}

// TotalHours 考试全部主题学时合计
func (e Exam) TotalHours() float64 {
	total := 0.0
	for _, t := range e.Topics {
		total += t.EstimatedHours
	}
	return total
}
