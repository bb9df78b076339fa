package repository

import (
	"context"

	"tripplanner/internal/domain"
)

// TripPlanRepository defines the durable storage for session trip plans.
// Each chat session owns at most one plan.
type TripPlanRepository interface {
	// Save inserts or replaces the plan for a session.
	Save(ctx context.Context, sessionID string, trip *domain.TripPlan) error

	// GetBySessionID retrieves the plan owned by a session.
	GetBySessionID(ctx context.Context, sessionID string) (*domain.TripPlan, error)

	// GetByID retrieves a plan by its trip ID.
	GetByID(ctx context.Context, tripID string) (*domain.TripPlan, error)

	// List returns the most recently updated plans.
	List(ctx context.Context, limit int) ([]*domain.TripPlan, error)

	// Delete removes the plan owned by a session.
	Delete(ctx context.Context, sessionID string) error
}
