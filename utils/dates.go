package utils

import (
	"fmt"
	"strings"
	"time"

	"hotel-booking/policy"
)

const DateLayout = "2006-01-02"

// ParseDate accepts "2006-01-02" or RFC3339 and returns the calendar date.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(DateLayout, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", raw)
	}
	return policy.CalendarDate(t), nil
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format(DateLayout)
}
