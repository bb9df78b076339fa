package itinerary

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"tripplanner/internal/domain"
)

const (
	defaultAttractionsPerDay = 4
	defaultLeadTimeDays      = 7
)

var dayColors = []string{"#3B82F6", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6"}

// Assembler builds a new trip plan from an already ranked list of attractions.
type Assembler struct {
	scheduler Scheduler
	perDay    int
	leadDays  int
	now       func() time.Time
	newID     func() string
}

// AssemblerOption customises an Assembler.
type AssemblerOption func(*Assembler)

// WithAttractionsPerDay sets how many attractions each day receives.
func WithAttractionsPerDay(n int) AssemblerOption {
	return func(a *Assembler) {
		if n > 0 {
			a.perDay = n
		}
	}
}

// WithLeadTimeDays sets how many days after today a new trip starts.
func WithLeadTimeDays(n int) AssemblerOption {
	return func(a *Assembler) {
		if n >= 0 {
			a.leadDays = n
		}
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) AssemblerOption {
	return func(a *Assembler) { a.now = now }
}

// WithIDGenerator replaces the uuid trip id generator.
func WithIDGenerator(newID func() string) AssemblerOption {
	return func(a *Assembler) { a.newID = newID }
}

// NewAssembler creates an Assembler that places 4 attractions per day and
// starts trips a week from now unless overridden.
func NewAssembler(scheduler Scheduler, opts ...AssemblerOption) *Assembler {
	a := &Assembler{
		scheduler: scheduler,
		perDay:    defaultAttractionsPerDay,
		leadDays:  defaultLeadTimeDays,
		now:       time.Now,
		newID:     func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble splits attractions into consecutive chunks, one chunk per day, in
// input order. Days beyond the supply of attractions are left empty.
func (a *Assembler) Assemble(destination string, durationDays int, attractions []domain.Attraction) (*domain.TripPlan, error) {
	if durationDays < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDuration, durationDays)
	}

	now := a.now()
	y, m, d := now.Date()
	startDate := time.Date(y, m, d, 0, 0, 0, 0, now.Location()).AddDate(0, 0, a.leadDays)

	days := make([]domain.DayItinerary, 0, durationDays)
	for i := 0; i < durationDays; i++ {
		date := startDate.AddDate(0, 0, i)
		day := domain.DayItinerary{
			DayNumber: i + 1,
			Date:      date,
			TimeSlots: a.scheduler.Schedule(date, chunk(attractions, i, a.perDay), slotNote),
			ColorCode: dayColors[i%len(dayColors)],
		}
		days = append(days, day)
	}

	trip := &domain.TripPlan{
		ID:          a.newID(),
		Destination: destination,
		StartDate:   startDate,
		EndDate:     startDate.AddDate(0, 0, durationDays-1),
		Days:        days,
		Notes:       fmt.Sprintf("Your personalized %s adventure awaits!", destination),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	AggregateTrip(trip)

	return trip, nil
}

// chunk returns the index-th block of size n, clipped to the list bounds.
func chunk(attractions []domain.Attraction, index, n int) []domain.Attraction {
	start := index * n
	if start >= len(attractions) {
		return nil
	}
	end := start + n
	if end > len(attractions) {
		end = len(attractions)
	}
	return attractions[start:end]
}

func slotNote(a domain.Attraction) string {
	return fmt.Sprintf("Don't miss the %s!", a.Name)
}
