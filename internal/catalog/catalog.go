// Package catalog 考试与主题参考数据，启动时从内嵌 YAML 加载，之后只读。
package catalog

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/planner"
)

//go:embed data/*.yaml
var dataFS embed.FS

var (
	ErrExamNotFound  = errors.New("考试不存在")
	ErrTopicNotFound = errors.New("主题不存在")
	ErrEmptyCatalog  = errors.New("未加载到任何考试数据")
)

// Catalog 只读考试目录（加载完成后不再修改，可并发读取）
type Catalog struct {
	exams map[string]Exam
	order []string // 按名称排序的 exam id
}

// Default 加载内嵌数据
func Default(logger *zap.Logger) (*Catalog, error) {
	sub, err := fs.Sub(dataFS, "data")
	if err != nil {
		return nil, fmt.Errorf("打开内嵌目录失败: %w", err)
	}
	return Load(sub, logger)
}

// Load 从 fsys 根目录读取全部 *.yaml / *.yml 考试文件。
// 无效文件记录告警后跳过；最终一个考试都没有时返回 ErrEmptyCatalog。
func Load(fsys fs.FS, logger *zap.Logger) (*Catalog, error) {
	c := &Catalog{exams: make(map[string]Exam)}

	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !(strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml")) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("读取 %s 失败: %w", path, err)
		}

		var exam Exam
		if err := yaml.Unmarshal(data, &exam); err != nil {
			logger.Warn("跳过无效的考试 YAML", zap.String("path", path), zap.Error(err))
			return nil
		}
		if err := validateExam(exam); err != nil {
			logger.Warn("跳过校验失败的考试", zap.String("path", path), zap.Error(err))
			return nil
		}
		if _, dup := c.exams[exam.ID]; dup {
			logger.Warn("跳过重复的考试 ID", zap.String("path", path), zap.String("exam_id", exam.ID))
			return nil
		}

		c.exams[exam.ID] = exam
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("加载考试目录失败: %w", err)
	}
	if len(c.exams) == 0 {
		return nil, ErrEmptyCatalog
	}

	for id := range c.exams {
		c.order = append(c.order, id)
	}
	sort.Slice(c.order, func(i, j int) bool {
		return c.exams[c.order[i]].Name < c.exams[c.order[j]].Name
	})

	logger.Info("考试目录加载完成", zap.Int("exams", len(c.exams)))
	return c, nil
}

func validateExam(e Exam) error {
	if e.ID == "" || e.Name == "" {
		return errors.New("缺少 id 或 name")
	}
	if len(e.Topics) == 0 {
		return errors.New("没有主题")
	}
	seen := make(map[string]bool, len(e.Topics))
	for _, t := range e.Topics {
		if t.ID == "" || t.Name == "" {
			return fmt.Errorf("主题缺少 id 或 name")
		}
		if seen[t.ID] {
			return fmt.Errorf("主题 ID 重复: %s", t.ID)
		}
		seen[t.ID] = true
		if t.ROI < 1 || t.ROI > 5 {
			return fmt.Errorf("主题 %s 的 roi 必须在 1-5 之间", t.ID)
		}
		if !planner.EffortTier(t.Effort).Valid() {
			return fmt.Errorf("主题 %s 的 effort 无效: %q", t.ID, t.Effort)
		}
		if !(t.EstimatedHours > 0) {
			return fmt.Errorf("主题 %s 的 estimated_hours 必须大于 0", t.ID)
		}
	}
	return nil
}

// ListExams 按名称排序返回全部考试
func (c *Catalog) ListExams() []Exam {
	exams := make([]Exam, 0, len(c.order))
	for _, id := range c.order {
		exams = append(exams, c.exams[id])
	}
	return exams
}

// GetExam 按 ID 查询考试
func (c *Catalog) GetExam(id string) (Exam, error) {
	e, ok := c.exams[id]
	if !ok {
		return Exam{}, ErrExamNotFound
	}
	return e, nil
}

// SelectTopics 按调用方给出的顺序返回所选主题，重复 ID 只保留第一次
func (c *Catalog) SelectTopics(examID string, topicIDs []string) ([]planner.Topic, error) {
	exam, err := c.GetExam(examID)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]TopicSpec, len(exam.Topics))
	for _, t := range exam.Topics {
		byID[t.ID] = t
	}

	picked := make(map[string]bool, len(topicIDs))
	topics := make([]planner.Topic, 0, len(topicIDs))
	for _, id := range topicIDs {
		if picked[id] {
			continue
		}
		spec, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrTopicNotFound, id)
		}
		picked[id] = true
		topics = append(topics, spec.ToPlannerTopic())
	}
	return topics, nil
}
