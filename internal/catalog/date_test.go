package catalog

import (
	"testing"
	"time"
)

func TestParseExamDate(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Time
		ok   bool
	}{
		{"2026-05-03", date(2026, 5, 3), true},
		{"03-05-2026", date(2026, 5, 3), true},
		{"03/05/2026", date(2026, 5, 3), true},
		{"May 3, 2026", date(2026, 5, 3), true},
		{"Sep 14, 2026", date(2026, 9, 14), true},
		{"3 May 2026", date(2026, 5, 3), true},
		{"  3   May  2026 ", date(2026, 5, 3), true},
		{"May 2026", date(2026, 5, 1), true},
		{"January 22-31, 2027", date(2027, 1, 22), true},
		{"22-31 January 2027", date(2027, 1, 22), true},
		{"TBA", time.Time{}, false},
		{"tbd", time.Time{}, false},
		{"", time.Time{}, false},
		{"sometime next spring", time.Time{}, false},
	}

	for _, tt := range tests {
		got, ok := ParseExamDate(tt.raw)
		if ok != tt.ok {
			t.Errorf("ParseExamDate(%q) ok 期望 %v，实际 %v", tt.raw, tt.ok, ok)
			continue
		}
		if ok && !got.Equal(tt.want) {
			t.Errorf("ParseExamDate(%q) 期望 %v，实际 %v", tt.raw, tt.want, got)
		}
	}
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2026, 4, 30, 23, 59, 0, 0, time.UTC)
	if got := DaysUntil(date(2026, 5, 3), now); got != 3 {
		t.Errorf("期望 3 天，实际 %d", got)
	}
	if got := DaysUntil(date(2026, 4, 28), now); got != -2 {
		t.Errorf("期望 -2 天，实际 %d", got)
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
