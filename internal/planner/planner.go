// Package planner 学习计划分配器：把按优先级排序的主题与每日时间预算转换为逐日学习安排。
//
// 纯计算，无 I/O，无共享状态；相同输入（含 today）总是得到相同结果。
package planner

import (
	"errors"
	"math"
	"sort"
	"time"
)

// epsilon 浮点残差阈值，低于此值视为 0
const epsilon = 1e-9

var (
	ErrNoTopics          = errors.New("请至少选择一个主题")
	ErrInvalidDailyLimit = errors.New("每日学习时长必须大于 0")
	ErrInvalidTopicHours = errors.New("主题预计时长不能为负数")
)

// EffortTier 难度档位，仅用于同 ROI 时的排序
type EffortTier string

const (
	EffortLow    EffortTier = "low"
	EffortMedium EffortTier = "medium"
	EffortHigh   EffortTier = "high"
)

// Rank 返回档位序号：low=0 < medium=1 < high=2，未知档位排在最后
func (e EffortTier) Rank() int {
	switch e {
	case EffortLow:
		return 0
	case EffortMedium:
		return 1
	case EffortHigh:
		return 2
	default:
		return 3
	}
}

// Valid 是否为已知档位
func (e EffortTier) Valid() bool {
	return e.Rank() < 3
}

// Topic 学习主题（只读参考数据）
type Topic struct {
	ID             string
	Name           string
	Subject        string
	Effort         EffortTier
	ROI            int // 1-5
	EstimatedHours float64
}

// Entry 某天分配给某主题的学时
type Entry struct {
	TopicID   string
	TopicName string
	Subject   string
	Hours     float64
}

// ScheduleDay 一天的学习安排
type ScheduleDay struct {
	Day        int // 从 1 开始
	Date       time.Time
	Entries    []Entry
	TotalHours float64
}

// Validate 校验分配输入
func Validate(topics []Topic, dailyLimit float64) error {
	if len(topics) == 0 {
		return ErrNoTopics
	}
	// 不超过 epsilon 的上限无法容纳任何学时，分配会无限开新的一天
	if !(dailyLimit > epsilon) || math.IsInf(dailyLimit, 0) {
		return ErrInvalidDailyLimit
	}
	for _, t := range topics {
		if t.EstimatedHours < 0 || math.IsNaN(t.EstimatedHours) || math.IsInf(t.EstimatedHours, 0) {
			return ErrInvalidTopicHours
		}
	}
	return nil
}

// SortByPriority 按 ROI 降序、难度升序排序，其余保持输入顺序。返回副本。
func SortByPriority(topics []Topic) []Topic {
	sorted := make([]Topic, len(topics))
	copy(sorted, topics)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].ROI != sorted[j].ROI {
			return sorted[i].ROI > sorted[j].ROI
		}
		return sorted[i].Effort.Rank() < sorted[j].Effort.Rank()
	})
	return sorted
}

// TotalHours 主题总学时
func TotalHours(topics []Topic) float64 {
	total := 0.0
	for _, t := range topics {
		total += t.EstimatedHours
	}
	return total
}

// ════════════════════════════════════════════════════════════
// Allocate 贪心逐日分配
// ════════════════════════════════════════════════════════════
//
// 游标按优先级顺序遍历主题；每天取 min(主题剩余, 当天剩余容量)，
// 当天容量用完或主题耗尽时收尾，仍有剩余则开新的一天。
// 同一主题在同一天只出现一次（重复进入时合并学时）。

func Allocate(topics []Topic, dailyLimit float64, today time.Time) ([]ScheduleDay, error) {
	if err := Validate(topics, dailyLimit); err != nil {
		return nil, err
	}

	queue := make([]Topic, 0, len(topics))
	for _, t := range SortByPriority(topics) {
		if t.EstimatedHours > epsilon {
			queue = append(queue, t)
		}
	}

	start := midnight(today)
	days := make([]ScheduleDay, 0)

	cursor := 0
	remaining := 0.0
	if len(queue) > 0 {
		remaining = queue[0].EstimatedHours
	}

	for cursor < len(queue) {
		day := ScheduleDay{
			Day:  len(days) + 1,
			Date: start.AddDate(0, 0, len(days)),
		}
		index := make(map[string]int) // topicID → Entries 下标
		capacity := dailyLimit

		for capacity > epsilon && cursor < len(queue) {
			t := queue[cursor]
			take := math.Min(remaining, capacity)

			if i, ok := index[t.ID]; ok {
				day.Entries[i].Hours += take
			} else {
				index[t.ID] = len(day.Entries)
				day.Entries = append(day.Entries, Entry{
					TopicID:   t.ID,
					TopicName: t.Name,
					Subject:   t.Subject,
					Hours:     take,
				})
			}
			day.TotalHours += take
			capacity -= take
			remaining -= take

			if remaining <= epsilon {
				cursor++
				if cursor < len(queue) {
					remaining = queue[cursor].EstimatedHours
				}
			}
		}

		days = append(days, day)
	}

	return days, nil
}

// midnight 截断到 t 所在时区的当天 00:00
func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
