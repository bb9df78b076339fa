package itinerary

import (
	"errors"

	"tripplanner/internal/domain"
)

var (
	// ErrInvalidDayNumber is returned when a day number is outside [1, day count].
	ErrInvalidDayNumber = errors.New("invalid day number")

	// ErrUnknownAction is returned when an optimization action is not recognised.
	ErrUnknownAction = errors.New("unknown optimization action")

	// ErrAttractionNotFound is returned when an attraction cannot be resolved from the catalog.
	ErrAttractionNotFound = errors.New("attraction not found")

	// ErrInvalidDuration is returned when a trip is requested with fewer than one day.
	ErrInvalidDuration = errors.New("trip duration must be at least one day")

	// ErrInvalidClock is returned when a time of day cannot be parsed.
	ErrInvalidClock = errors.New("invalid time of day")

	// ErrNilTrip is returned when an action is applied without a trip.
	ErrNilTrip = errors.New("trip is required")

	// ErrUnknownCategory is returned when a discovery query names an unknown category.
	ErrUnknownCategory = domain.ErrUnknownCategory
)
