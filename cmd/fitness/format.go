// ABOUTME: Shared parsing and formatting helpers for CLI output.
// ABOUTME: Time parsing, weekday names, padding and truncation.
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/harperreed/fitness/internal/models"
)

var faint = color.New(color.Faint)

func parseTime(s string) (time.Time, error) {
	formats := []string{
		"2006-01-02 15:04",
		"2006-01-02T15:04",
		"2006-01-02",
		time.RFC3339,
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time format")
}

// parseWeekday accepts a weekday name, its three-letter abbreviation or 0-6
// with Sunday as 0.
func parseWeekday(s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || s == name[:3] || s == fmt.Sprint(int(d)) {
			return int(d), nil
		}
	}
	return 0, fmt.Errorf("unknown weekday: %s", s)
}

func weekdayLabel(day int) string {
	if day < 0 || day > 6 {
		return "any day"
	}
	return time.Weekday(day).String()
}

func short(id uuid.UUID) string {
	return faint.Sprint(models.ShortID(id))
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func optional(label string, v *float64, unit string) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("  %s %.1f%s", label, *v, unit)
}

func printUnlocked(list []*models.Achievement, points int) {
	if len(list) == 0 {
		return
	}
	for _, a := range list {
		color.Magenta("★ Unlocked %s (+%d)", a.Name, a.PointsAwarded)
	}
	if len(list) > 1 {
		fmt.Printf("  %d points earned\n", points)
	}
}
