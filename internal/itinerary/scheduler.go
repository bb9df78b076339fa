package itinerary

import (
	"fmt"
	"time"

	"tripplanner/internal/domain"
)

const (
	defaultDayStartHour        = 9
	defaultTravelBufferMinutes = 15
)

// Clock is a time of day with minute precision.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses an "HH:MM" 24-hour time of day.
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// On returns the instant at this clock time on date's calendar day.
func (c Clock) On(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, c.Hour, c.Minute, 0, 0, date.Location())
}

// NoteFunc produces the note attached to a freshly scheduled slot.
type NoteFunc func(a domain.Attraction) string

// Scheduler lays an ordered list of attractions out on a single day.
// It never looks at geography: the gap between two visits is always TravelBuffer.
type Scheduler struct {
	DayStart     Clock
	TravelBuffer int // minutes between consecutive attractions
}

// DefaultScheduler starts days at 09:00 with 15 minutes between visits.
func DefaultScheduler() Scheduler {
	return Scheduler{
		DayStart:     Clock{Hour: defaultDayStartHour},
		TravelBuffer: defaultTravelBufferMinutes,
	}
}

// Schedule produces one slot per attraction, in the given order.
// The first slot has no travel time; every later slot is preceded by the
// travel buffer. Accumulated time past midnight rolls onto the next calendar
// date rather than wrapping the time of day.
func (s Scheduler) Schedule(date time.Time, attractions []domain.Attraction, note NoteFunc) []domain.TimeSlot {
	slots := make([]domain.TimeSlot, 0, len(attractions))
	clock := s.DayStart.On(date)
	buffer := time.Duration(s.TravelBuffer) * time.Minute

	for i, a := range attractions {
		travel := 0
		if i > 0 {
			travel = s.TravelBuffer
			clock = clock.Add(buffer)
		}
		end := clock.Add(time.Duration(a.DurationMinutes) * time.Minute)

		slot := domain.TimeSlot{
			StartTime:         clock,
			EndTime:           end,
			Attraction:        a,
			TravelTimeMinutes: travel,
		}
		if note != nil {
			slot.Notes = note(a)
		}
		slots = append(slots, slot)
		clock = end
	}

	return slots
}

// Reschedule recomputes the timings of a day's existing slots, keeping their
// order and notes. The returned slice never aliases day.TimeSlots.
func (s Scheduler) Reschedule(day domain.DayItinerary) []domain.TimeSlot {
	attractions := make([]domain.Attraction, len(day.TimeSlots))
	notes := make([]string, len(day.TimeSlots))
	for i, slot := range day.TimeSlots {
		attractions[i] = slot.Attraction
		notes[i] = slot.Notes
	}

	slots := s.Schedule(day.Date, attractions, nil)
	for i := range slots {
		slots[i].Notes = notes[i]
	}
	return slots
}
