package planner

import "testing"

func TestEstimateCompletion(t *testing.T) {
	tests := []struct {
		name        string
		total       float64
		daily       float64
		daysPerWeek int
		wantWeeks   float64
		wantDays    int
	}{
		{"每天学习", 28, 2, 7, 2, 14},
		{"每周五天", 30, 3, 5, 2, 14},
		{"不足一周", 5, 2, 5, 0.5, 4},
		{"天数越界按 7 处理", 14, 2, 10, 1, 7},
		{"天数为 0 按 1 处理", 4, 2, 0, 2, 14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateCompletion(tt.total, tt.daily, tt.daysPerWeek)
			if got.Weeks != tt.wantWeeks {
				t.Errorf("Weeks 期望 %v，实际 %v", tt.wantWeeks, got.Weeks)
			}
			if got.CalendarDays != tt.wantDays {
				t.Errorf("CalendarDays 期望 %d，实际 %d", tt.wantDays, got.CalendarDays)
			}
		})
	}
}

func TestEstimateCompletion_NonPositive(t *testing.T) {
	if got := EstimateCompletion(0, 2, 5); got != (Estimate{}) {
		t.Errorf("总学时为 0 期望零值，实际 %+v", got)
	}
	if got := EstimateCompletion(10, 0, 5); got != (Estimate{}) {
		t.Errorf("每日学时为 0 期望零值，实际 %+v", got)
	}
}
