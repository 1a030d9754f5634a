// Package cndate parses Chinese-style calendar dates out of free text.
//
// Inspection reports carry dates in the long form "2025年3月31日" and, in
// dataset date markers, in compact month/day forms like "3.31", "4/4" or
// "4月4日". Every parser here is total: malformed or impossible dates come
// back as "not found", never as an error.
package cndate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"utreport/pkg/contracts/domain"
)

var (
	fullDatePattern = regexp.MustCompile(`(\d{4})年(\d{1,2})月(\d{1,2})日`)
	monthDayPattern = regexp.MustCompile(`(\d{1,2})\s*[./月]\s*(\d{1,2})`)
)

// ParseDate returns the first fully qualified "YYYY年MM月DD日" date in text.
// Text without such a pattern, or with numbers that do not form a real
// calendar day, yields ok=false.
func ParseDate(text string) (domain.Date, bool) {
	m := fullDatePattern.FindStringSubmatch(text)
	if m == nil {
		return domain.Date{}, false
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	return domain.NewDate(year, month, day)
}

// ParseDateRange collects every full date in text, in textual order.
// Zero valid dates yields (nil, nil); exactly one yields (date, nil);
// two or more yields the first two, anything beyond is ignored.
func ParseDateRange(text string) (*domain.Date, *domain.Date) {
	matches := fullDatePattern.FindAllStringSubmatch(text, -1)
	var dates []domain.Date
	for _, m := range matches {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if d, ok := domain.NewDate(year, month, day); ok {
			dates = append(dates, d)
		}
		if len(dates) == 2 {
			break
		}
	}
	switch len(dates) {
	case 0:
		return nil, nil
	case 1:
		return &dates[0], nil
	default:
		return &dates[0], &dates[1]
	}
}

// FirstDateString reduces a noisy "date to date" string to its first full
// date substring, verbatim. Text without a match comes back trimmed.
func FirstDateString(text string) string {
	if m := fullDatePattern.FindString(text); m != "" {
		return m
	}
	return strings.TrimSpace(text)
}

// ParseMonthDay matches a compact "M.D" / "M/D" / "M月D日" marker.
// Full-width periods and the CJK full stop are normalized first; a
// trailing "日" is ignored by the pattern.
func ParseMonthDay(text string) (month, day int, ok bool) {
	normalized := strings.NewReplacer("．", ".", "。", ".").Replace(strings.TrimSpace(text))
	m := monthDayPattern.FindStringSubmatch(normalized)
	if m == nil {
		return 0, 0, false
	}
	month, _ = strconv.Atoi(m[1])
	day, _ = strconv.Atoi(m[2])
	return month, day, true
}

// Format renders a date in the long report form, without zero padding.
func Format(d domain.Date) string {
	return fmt.Sprintf("%d年%d月%d日", d.Year, d.Month, d.Day)
}
