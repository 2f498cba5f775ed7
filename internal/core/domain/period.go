package domain

import (
	"fmt"
	"time"
)

// Period is a year-month selector used to filter the displayed transaction set.
type Period struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// PeriodOf returns the period a date falls in.
func PeriodOf(d Date) Period {
	return Period{Year: d.Year(), Month: d.Month()}
}

// CurrentPeriod returns the period of the current wall-clock month.
func CurrentPeriod() Period {
	now := time.Now()
	return Period{Year: now.Year(), Month: now.Month()}
}

// ParsePeriod parses a period in YYYY-MM form.
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Period{}, fmt.Errorf("invalid period %q: %w", s, err)
	}
	return Period{Year: t.Year(), Month: t.Month()}, nil
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// FirstDay returns the first day of the period's month.
func (p Period) FirstDay() Date {
	return NewDate(p.Year, p.Month, 1)
}

// Contains reports whether the date falls inside the period's year and month.
func (p Period) Contains(d Date) bool {
	return d.Year() == p.Year && d.Month() == p.Month
}

// IsZero reports whether the period is unset.
func (p Period) IsZero() bool {
	return p.Year == 0 && p.Month == 0
}
