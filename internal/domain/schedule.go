package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-ParkingService/pkg/types"
)

// Schedule is one weekday's opening hours
type Schedule struct {
	ID        int64
	ConfigID  int64
	Day       time.Weekday
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Validate checks that the window is well-formed
func (s *Schedule) Validate() error {
	if s.Day < time.Sunday || s.Day > time.Saturday {
		return fmt.Errorf("%w: weekday %d", ErrUnknownEnum, s.Day)
	}
	if err := s.StartTime.Validate(); err != nil {
		return err
	}
	if err := s.EndTime.Validate(); err != nil {
		return err
	}
	if !s.StartTime.IsBefore(s.EndTime) {
		return ErrInvalidScheduleWindow
	}
	return nil
}

// OpenAt returns the opening instant on date's calendar day
func (s *Schedule) OpenAt(date time.Time) time.Time {
	return s.StartTime.On(date)
}

// CloseAt returns the closing instant on date's calendar day
func (s *Schedule) CloseAt(date time.Time) time.Time {
	return s.EndTime.On(date)
}

// IsOutsideHours reports whether [start, end] falls outside the schedule.
// Both open and close are anchored on start's calendar date, so a range that
// runs past midnight is always outside hours. A nil schedule means closed.
func IsOutsideHours(schedule *Schedule, start, end time.Time) bool {
	if schedule == nil {
		return true
	}
	return start.Before(schedule.OpenAt(start)) || end.After(schedule.CloseAt(start))
}

// ParseWeekday parses an English weekday name ("monday", "Mon") case-insensitively
func ParseWeekday(s string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		full := strings.ToLower(d.String())
		if name == full || (len(name) == 3 && strings.HasPrefix(full, name)) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: weekday %q", ErrUnknownEnum, s)
}
