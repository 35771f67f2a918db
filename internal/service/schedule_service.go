package service

import (
	"time"

	"github.com/velocityrides/template-store/pkg/clock"
)

// ScheduleService decides which calendar dates are legal pickup-date
// selections. Pickups happen every Saturday, plus Fridays and Sundays on
// even-numbered weeks, giving a recurring biweekly Friday/Sunday window.
type ScheduleService struct {
	clock clock.Clock
}

func NewScheduleService(clk clock.Clock) *ScheduleService {
	return &ScheduleService{clock: clk}
}

// IsSelectable reports whether date may be chosen as a pickup date. Dates
// before the current calendar day are never selectable; the comparison is
// date-only, time of day is ignored.
func (s *ScheduleService) IsSelectable(date time.Time) bool {
	today := dateOnly(s.clock.Now())
	d := dateOnly(date)
	if d.Before(today) {
		return false
	}
	return isPickupDay(d)
}

// SelectableDates lists the eligible pickup dates within the next `days`
// calendar days, starting today.
func (s *ScheduleService) SelectableDates(days int) []time.Time {
	start := dateOnly(s.clock.Now())
	var dates []time.Time
	for i := 0; i < days; i++ {
		d := start.AddDate(0, 0, i)
		if isPickupDay(d) {
			dates = append(dates, d)
		}
	}
	return dates
}

func isPickupDay(d time.Time) bool {
	switch d.Weekday() {
	case time.Saturday:
		return true
	case time.Friday, time.Sunday:
		return evenWeek(d)
	default:
		return false
	}
}

// evenWeek classifies the date's week of year. Week 1 starts on Jan 1 and
// weeks advance on the calendar-week boundary Jan 1 falls into:
// week = ceil((dayOfYear + weekday(Jan 1) + 1) / 7) with dayOfYear 0-based.
func evenWeek(d time.Time) bool {
	firstWeekday := int(time.Date(d.Year(), time.January, 1, 0, 0, 0, 0, time.UTC).Weekday())
	dayOfYear := d.YearDay() - 1
	week := (dayOfYear + firstWeekday + 1 + 6) / 7
	return week%2 == 0
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
