// Package schedule decides when posting runs happen. All arithmetic is
// done in KST, the timezone of the blog's audience.
package schedule

import (
	"fmt"
	"sort"
	"time"
)

var kst = time.FixedZone("KST", 9*60*60)

type slot struct {
	hour   int
	minute int
}

// Schedule holds the daily posting slots.
type Schedule struct {
	slots []slot
}

// New parses "HH:MM" slot times into a schedule
func New(times []string) (*Schedule, error) {
	if len(times) == 0 {
		return nil, fmt.Errorf("no posting times configured")
	}

	slots := make([]slot, 0, len(times))
	for _, raw := range times {
		t, err := time.Parse("15:04", raw)
		if err != nil {
			return nil, fmt.Errorf("invalid posting time %q: %w", raw, err)
		}
		slots = append(slots, slot{hour: t.Hour(), minute: t.Minute()})
	}

	sort.Slice(slots, func(i, j int) bool {
		if slots[i].hour != slots[j].hour {
			return slots[i].hour < slots[j].hour
		}
		return slots[i].minute < slots[j].minute
	})

	return &Schedule{slots: slots}, nil
}

// Next returns the first slot time strictly after t
func (s *Schedule) Next(t time.Time) time.Time {
	t = t.In(kst)
	for _, sl := range s.slots {
		candidate := time.Date(t.Year(), t.Month(), t.Day(), sl.hour, sl.minute, 0, 0, kst)
		if candidate.After(t) {
			return candidate
		}
	}
	// All of today's slots have passed; wrap to tomorrow's first slot
	first := s.slots[0]
	tomorrow := t.AddDate(0, 0, 1)
	return time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), first.hour, first.minute, 0, 0, kst)
}

// InQuietPeriod reports whether t falls in the weekend window when the
// FX market is closed and no posts should go out: Saturday 10:00 KST
// through Monday 05:00 KST.
func InQuietPeriod(t time.Time) bool {
	t = t.In(kst)
	switch t.Weekday() {
	case time.Saturday:
		return t.Hour() >= 10
	case time.Sunday:
		return true
	case time.Monday:
		return t.Hour() < 5
	default:
		return false
	}
}
