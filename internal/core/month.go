package core

import (
	"fmt"
	"strings"
	"time"
)

// monthLayout is the token format used for budget months.
const monthLayout = "2006-01"

// Month is a calendar month token in yyyy-MM form.
type Month string

// MonthOf returns the month token for a date.
func MonthOf(t time.Time) Month {
	return Month(t.Format(monthLayout))
}

// ParseMonth validates a yyyy-MM token.
func ParseMonth(s string) (Month, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: month is empty", ErrInvalidArgument)
	}
	if _, err := time.Parse(monthLayout, s); err != nil {
		return "", fmt.Errorf("%w: month %q is not yyyy-MM", ErrInvalidArgument, s)
	}
	return Month(s), nil
}

// Contains reports whether the date falls inside the month. The match is
// on the yyyy-MM token, not a calendar-aware range.
func (m Month) Contains(t time.Time) bool {
	return MonthOf(t) == m
}

func (m Month) String() string {
	return string(m)
}
