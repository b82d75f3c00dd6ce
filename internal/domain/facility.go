package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidScheduleWindow = errors.New("domain: schedule start must be before end")
	ErrInvalidFacilityConfig = errors.New("domain: invalid facility config")
)

// FacilityConfig holds pricing rules and opening hours.
// Exactly one config is active at a time.
type FacilityConfig struct {
	ID                  int64
	MonthlyFee          decimal.Decimal
	IncrementFee        decimal.Decimal
	IncrementMinutes    int
	MaxIncrementMinutes int
	IsActive            bool
	Schedules           []Schedule
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Validate checks fee and increment invariants
func (c *FacilityConfig) Validate() error {
	if c.IncrementMinutes <= 0 || c.MaxIncrementMinutes <= 0 {
		return ErrInvalidFacilityConfig
	}
	if c.MonthlyFee.IsNegative() || c.IncrementFee.IsNegative() {
		return ErrInvalidFacilityConfig
	}
	seen := make(map[time.Weekday]bool, len(c.Schedules))
	for i := range c.Schedules {
		if err := c.Schedules[i].Validate(); err != nil {
			return err
		}
		if seen[c.Schedules[i].Day] {
			return ErrInvalidFacilityConfig
		}
		seen[c.Schedules[i].Day] = true
	}
	return nil
}

// Increments returns how many increments cover durationMinutes (ceiling division)
func (c *FacilityConfig) Increments(durationMinutes int) int {
	if durationMinutes <= 0 {
		return 0
	}
	return (durationMinutes + c.IncrementMinutes - 1) / c.IncrementMinutes
}

// BilledMinutes returns the duration rounded up to whole increments
func (c *FacilityConfig) BilledMinutes(durationMinutes int) int {
	return c.Increments(durationMinutes) * c.IncrementMinutes
}

// IncrementalCost returns the price of n increments
func (c *FacilityConfig) IncrementalCost(increments int) decimal.Decimal {
	return c.IncrementFee.Mul(decimal.NewFromInt(int64(increments)))
}

// ScheduleFor returns the schedule for day or nil
func (c *FacilityConfig) ScheduleFor(day time.Weekday) *Schedule {
	for i := range c.Schedules {
		if c.Schedules[i].Day == day {
			return &c.Schedules[i]
		}
	}
	return nil
}

// AddMonth returns t advanced by one calendar month. When the target month is
// shorter, the day clamps to its last day (Jan 31 -> Feb 28/29).
func AddMonth(t time.Time) time.Time {
	y, m, d := t.Date()
	firstOfNext := time.Date(y, m+1, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	lastDay := firstOfNext.AddDate(0, 1, -1).Day()
	if d > lastDay {
		d = lastDay
	}
	return time.Date(firstOfNext.Year(), firstOfNext.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
