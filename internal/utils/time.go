package utils

import (
	"fmt"
	"strings"
	"time"
)

// scheduleLayouts are tried in order; the form sends datetime-local values.
var scheduleLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseSchedule parses a booking time and truncates it to the minute.
// Zone-less layouts are read in loc; RFC3339 input is converted to loc.
func ParseSchedule(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("waktu kosong")
	}
	for _, layout := range scheduleLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.Truncate(time.Minute), nil
		}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc).Truncate(time.Minute), nil
	}
	return time.Time{}, fmt.Errorf("format waktu tidak dikenali: %q", s)
}

// FormatScheduleID renders a booking time for documents, e.g. "05 Jan 2025 14:30".
func FormatScheduleID(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return fmt.Sprintf("%02d %s %d %02d:%02d", t.Day(), MonthShortID(t.Month()), t.Year(), t.Hour(), t.Minute())
}

var monthShortID = [...]string{"Jan", "Feb", "Mar", "Apr", "Mei", "Jun", "Jul", "Agu", "Sep", "Okt", "Nov", "Des"}

var weekdayID = [...]string{"Minggu", "Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu"}

// MonthShortID returns the Indonesian three-letter month name.
func MonthShortID(m time.Month) string {
	return monthShortID[m-1]
}

// WeekdayID returns the Indonesian day name.
func WeekdayID(d time.Weekday) string {
	return weekdayID[d]
}
