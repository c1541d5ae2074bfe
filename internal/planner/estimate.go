package planner

import "math"

// Estimate 完成时间预估（仅供展示，不参与排程）
type Estimate struct {
	TotalHours   float64
	Weeks        float64
	CalendarDays int
}

// EstimateCompletion 按 总学时 / (每日学时 × 每周天数) 估算周数，日历天数 = ceil(周数 × 7)
func EstimateCompletion(totalHours, dailyLimit float64, daysPerWeek int) Estimate {
	if daysPerWeek < 1 {
		daysPerWeek = 1
	}
	if daysPerWeek > 7 {
		daysPerWeek = 7
	}
	if !(totalHours > 0) || !(dailyLimit > 0) {
		return Estimate{}
	}

	weeks := totalHours / (dailyLimit * float64(daysPerWeek))
	return Estimate{
		TotalHours:   totalHours,
		Weeks:        math.Round(weeks*10) / 10,
		CalendarDays: int(math.Ceil(weeks*7 - epsilon)),
	}
}
