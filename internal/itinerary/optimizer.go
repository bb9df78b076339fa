package itinerary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"tripplanner/internal/catalog"
	"tripplanner/internal/domain"
)

// Action names accepted by Optimizer.Apply.
const (
	ActionReorder  = "reorder"
	ActionRemove   = "remove"
	ActionDiscover = "discover"
	ActionAdd      = "add"
)

// Action is one edit request against a trip.
type Action struct {
	Name         string
	DayNumber    int
	NewOrder     []string // reorder: attraction ids in the desired order
	AttractionID string   // remove, add
	Category     string   // discover
	Location     string   // discover
	Position     *int     // add: zero-based insert index, nil appends
}

// Result is the outcome of an action. Trip is always a fresh copy.
type Result struct {
	Trip       *domain.TripPlan
	Candidates []domain.Attraction
}

// Optimizer applies edit actions to trips. It never modifies the trip it is
// given; every call returns a new, fully recomputed plan.
type Optimizer struct {
	scheduler Scheduler
	catalog   catalog.Catalog
	logger    *zap.Logger
	now       func() time.Time

	maxCandidates int
}

// NewOptimizer creates an Optimizer. The catalog is only consulted by the
// discover and add actions.
func NewOptimizer(scheduler Scheduler, cat catalog.Catalog, logger *zap.Logger) *Optimizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Optimizer{
		scheduler: scheduler,
		catalog:   cat,
		logger:    logger,
		now:       time.Now,
	}
}

// WithMaxCandidates caps the number of attractions discover returns.
// Zero or less means no cap.
func (o *Optimizer) WithMaxCandidates(n int) *Optimizer {
	o.maxCandidates = n
	return o
}

// Apply performs the action on a copy of trip.
func (o *Optimizer) Apply(ctx context.Context, trip *domain.TripPlan, action Action) (*Result, error) {
	if trip == nil {
		return nil, ErrNilTrip
	}

	switch action.Name {
	case ActionReorder:
		return o.reorder(trip, action)
	case ActionRemove:
		return o.remove(trip, action)
	case ActionDiscover:
		return o.discover(ctx, trip, action)
	case ActionAdd:
		return o.add(ctx, trip, action)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, action.Name)
	}
}

func (o *Optimizer) reorder(trip *domain.TripPlan, action Action) (*Result, error) {
	if err := checkDay(trip, action.DayNumber); err != nil {
		return nil, err
	}

	out := trip.Clone()
	day := &out.Days[action.DayNumber-1]

	used := make([]bool, len(day.TimeSlots))
	ordered := make([]domain.TimeSlot, 0, len(day.TimeSlots))
	for _, id := range action.NewOrder {
		idx := firstUnused(day.TimeSlots, used, id)
		if idx < 0 {
			o.logger.Debug("Ignoring attraction not in day",
				zap.String("trip_id", trip.ID),
				zap.Int("day_number", action.DayNumber),
				zap.String("attraction_id", id),
			)
			continue
		}
		used[idx] = true
		ordered = append(ordered, day.TimeSlots[idx])
	}
	for i, slot := range day.TimeSlots {
		if !used[i] {
			ordered = append(ordered, slot)
		}
	}

	day.TimeSlots = ordered
	o.refresh(out, day)
	return &Result{Trip: out}, nil
}

func (o *Optimizer) remove(trip *domain.TripPlan, action Action) (*Result, error) {
	if err := checkDay(trip, action.DayNumber); err != nil {
		return nil, err
	}

	out := trip.Clone()
	day := &out.Days[action.DayNumber-1]

	kept := make([]domain.TimeSlot, 0, len(day.TimeSlots))
	for _, slot := range day.TimeSlots {
		if slot.Attraction.ID != action.AttractionID {
			kept = append(kept, slot)
		}
	}
	if len(kept) == len(day.TimeSlots) {
		o.logger.Debug("Attraction already absent from day",
			zap.String("trip_id", trip.ID),
			zap.Int("day_number", action.DayNumber),
			zap.String("attraction_id", action.AttractionID),
		)
		return &Result{Trip: out}, nil
	}

	day.TimeSlots = kept
	o.refresh(out, day)
	return &Result{Trip: out}, nil
}

// discover looks up candidate attractions for a day without changing the trip.
// Attractions already visited somewhere in the trip are left out.
func (o *Optimizer) discover(ctx context.Context, trip *domain.TripPlan, action Action) (*Result, error) {
	if err := checkDay(trip, action.DayNumber); err != nil {
		return nil, err
	}

	q := catalog.Query{Location: action.Location}
	if action.Category != "" {
		category, err := domain.ParseCategory(action.Category)
		if err != nil {
			return nil, err
		}
		q.Category = category
	}
	if q.Location == "" {
		q.Location = trip.Destination
	}

	found, err := o.catalog.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("discover attractions: %w", err)
	}

	candidates := make([]domain.Attraction, 0, len(found))
	for _, a := range found {
		if !trip.ContainsAttraction(a.ID) {
			candidates = append(candidates, a)
		}
		if o.maxCandidates > 0 && len(candidates) == o.maxCandidates {
			break
		}
	}

	return &Result{Trip: trip.Clone(), Candidates: candidates}, nil
}

func (o *Optimizer) add(ctx context.Context, trip *domain.TripPlan, action Action) (*Result, error) {
	if err := checkDay(trip, action.DayNumber); err != nil {
		return nil, err
	}

	attraction, err := o.catalog.Get(ctx, action.AttractionID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrAttractionNotFound, action.AttractionID)
		}
		return nil, fmt.Errorf("lookup attraction: %w", err)
	}

	out := trip.Clone()
	day := &out.Days[action.DayNumber-1]

	pos := len(day.TimeSlots)
	if action.Position != nil && *action.Position >= 0 && *action.Position < pos {
		pos = *action.Position
	}
	slot := domain.TimeSlot{Attraction: attraction, Notes: slotNote(attraction)}
	day.TimeSlots = append(day.TimeSlots[:pos], append([]domain.TimeSlot{slot}, day.TimeSlots[pos:]...)...)

	o.refresh(out, day)
	return &Result{Trip: out}, nil
}

// refresh re-lays the edited day and brings every total back in line.
func (o *Optimizer) refresh(trip *domain.TripPlan, day *domain.DayItinerary) {
	day.TimeSlots = o.scheduler.Reschedule(*day)
	AggregateTrip(trip)
	trip.UpdatedAt = o.now()
}

func checkDay(trip *domain.TripPlan, dayNumber int) error {
	if dayNumber < 1 || dayNumber > trip.DayCount() {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidDayNumber, dayNumber, trip.DayCount())
	}
	return nil
}

func firstUnused(slots []domain.TimeSlot, used []bool, id string) int {
	for i, slot := range slots {
		if !used[i] && slot.Attraction.ID == id {
			return i
		}
	}
	return -1
}
