package dataset

import (
	"fmt"
	"strings"
	"time"
)

// Freq selects the time bucket used by the aggregators.
type Freq string

const (
	FreqWeek  Freq = "week"
	FreqMonth Freq = "month"
)

func ParseFreq(s string) (Freq, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "w", "week", "weekly":
		return FreqWeek, nil
	case "m", "month", "monthly":
		return FreqMonth, nil
	}
	return "", fmt.Errorf("invalid period frequency: %q", s)
}

// Period is a half-open time bucket identified by its start date. Weekly
// buckets run Monday through Sunday, monthly buckets cover a calendar month.
type Period struct {
	Freq  Freq
	Start time.Time
}

// PeriodOf buckets t into its containing period.
func PeriodOf(t time.Time, freq Freq) Period {
	t = t.UTC()
	switch freq {
	case FreqMonth:
		start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
		return Period{Freq: FreqMonth, Start: start}
	default:
		// Monday on or before t.
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		offset := (int(day.Weekday()) + 6) % 7
		return Period{Freq: FreqWeek, Start: day.AddDate(0, 0, -offset)}
	}
}

// End returns the last day covered by the period.
func (p Period) End() time.Time {
	if p.Freq == FreqMonth {
		return p.Start.AddDate(0, 1, -1)
	}
	return p.Start.AddDate(0, 0, 6)
}

// Label is the canonical store key: "2024-01" for months,
// "2024-01-01/2024-01-07" for weeks.
func (p Period) Label() string {
	if p.Freq == FreqMonth {
		return p.Start.Format("2006-01")
	}
	return p.Start.Format("2006-01-02") + "/" + p.End().Format("2006-01-02")
}

// StartKey is the zero-padded start date. It sorts chronologically as a
// plain string.
func (p Period) StartKey() string {
	return p.Start.Format("2006-01-02")
}

// Year, calendar month and ISO week of the period start, for filtering.
func (p Period) YearMonthWeek() (int, int, int) {
	_, week := p.Start.ISOWeek()
	return p.Start.Year(), int(p.Start.Month()), week
}

// ParsePeriodStart recovers the start date from a stored label. Both label
// forms are accepted, as is a bare start date.
func ParsePeriodStart(label string) (time.Time, error) {
	s := label
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}
	for _, layout := range []string{"2006-01-02", "2006-01"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable period label: %q", label)
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"02/01/2006",
}

// ParseDate parses a posting date cell. Unparsable dates are reported via
// ok=false and dropped by callers, never treated as errors.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
