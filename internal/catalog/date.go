package catalog

import (
	"math"
	"regexp"
	"strings"
	"time"
)

// 考试日期文本常见格式（按顺序尝试）
var examDateLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"02/01/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"Jan 2 2006",
	"2 January 2006",
	"2 Jan 2006",
}

// 仅到月份的格式，取当月 1 日
var examMonthLayouts = []string{
	"January 2006",
	"Jan 2006",
}

// "May 3-5, 2026" / "3-5 May 2026" 之类的区间写法，只保留起始日
var (
	rangeMonthFirst = regexp.MustCompile(`^([A-Za-z]+)\s+(\d{1,2})\s*[-–]\s*\d{1,2},?\s+(\d{4})$`)
	rangeDayFirst   = regexp.MustCompile(`^(\d{1,2})\s*[-–]\s*\d{1,2}\s+([A-Za-z]+)\s+(\d{4})$`)
	spaces          = regexp.MustCompile(`\s+`)
)

// ParseExamDate 尽力解析考试日期文本。TBA、空串或无法识别时返回 false。
func ParseExamDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(spaces.ReplaceAllString(raw, " "))
	if s == "" {
		return time.Time{}, false
	}
	switch strings.ToUpper(s) {
	case "TBA", "TBD", "N/A":
		return time.Time{}, false
	}

	if m := rangeMonthFirst.FindStringSubmatch(s); m != nil {
		s = m[1] + " " + m[2] + ", " + m[3]
	} else if m := rangeDayFirst.FindStringSubmatch(s); m != nil {
		s = m[1] + " " + m[2] + " " + m[3]
	}

	for _, layout := range examDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	for _, layout := range examMonthLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DaysUntil 从 now 所在日到 date 的日历天数，已过去时为负数
func DaysUntil(date, now time.Time) int {
	y, m, d := now.Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	y, m, d = date.Date()
	to := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return int(math.Round(to.Sub(from).Hours() / 24))
}
