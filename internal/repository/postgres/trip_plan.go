package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"tripplanner/internal/domain"
	"tripplanner/internal/repository"
)

const defaultListLimit = 100

// TripPlanRepository is a PostgreSQL implementation of repository.TripPlanRepository.
// Plans are stored whole as JSONB.
type TripPlanRepository struct {
	q Querier
}

// NewTripPlanRepository creates a new PostgreSQL trip plan repository.
func NewTripPlanRepository(db *sql.DB) *TripPlanRepository {
	return &TripPlanRepository{q: db}
}

// NewTripPlanRepositoryWithTx creates a trip plan repository using a transaction.
func NewTripPlanRepositoryWithTx(tx *sql.Tx) *TripPlanRepository {
	return &TripPlanRepository{q: tx}
}

// Save inserts or replaces the plan for a session.
func (r *TripPlanRepository) Save(ctx context.Context, sessionID string, trip *domain.TripPlan) error {
	query := `
		INSERT INTO trip_plans (session_id, trip_id, destination, plan, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (session_id) DO UPDATE SET
			trip_id = EXCLUDED.trip_id,
			destination = EXCLUDED.destination,
			plan = EXCLUDED.plan,
			updated_at = EXCLUDED.updated_at
	`

	plan, err := json.Marshal(trip)
	if err != nil {
		return fmt.Errorf("encode trip plan: %w", err)
	}

	_, err = r.q.ExecContext(ctx, query,
		sessionID,
		trip.ID,
		trip.Destination,
		plan,
		trip.CreatedAt,
		trip.UpdatedAt,
	)

	return err
}

// GetBySessionID retrieves the plan owned by a session.
func (r *TripPlanRepository) GetBySessionID(ctx context.Context, sessionID string) (*domain.TripPlan, error) {
	query := `SELECT plan FROM trip_plans WHERE session_id = $1`
	return r.getOne(ctx, query, sessionID)
}

// GetByID retrieves a plan by its trip ID.
func (r *TripPlanRepository) GetByID(ctx context.Context, tripID string) (*domain.TripPlan, error) {
	query := `SELECT plan FROM trip_plans WHERE trip_id = $1`
	return r.getOne(ctx, query, tripID)
}

func (r *TripPlanRepository) getOne(ctx context.Context, query string, arg string) (*domain.TripPlan, error) {
	var plan []byte
	err := r.q.QueryRowContext(ctx, query, arg).Scan(&plan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return decodePlan(plan)
}

// List returns the most recently updated plans. A non-positive limit uses 100.
func (r *TripPlanRepository) List(ctx context.Context, limit int) ([]*domain.TripPlan, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	query := `SELECT plan FROM trip_plans ORDER BY updated_at DESC LIMIT $1`

	rows, err := r.q.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []*domain.TripPlan
	for rows.Next() {
		var plan []byte
		if err := rows.Scan(&plan); err != nil {
			return nil, err
		}
		trip, err := decodePlan(plan)
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}

	return trips, rows.Err()
}

// Delete removes the plan owned by a session.
func (r *TripPlanRepository) Delete(ctx context.Context, sessionID string) error {
	query := `DELETE FROM trip_plans WHERE session_id = $1`

	result, err := r.q.ExecContext(ctx, query, sessionID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func decodePlan(data []byte) (*domain.TripPlan, error) {
	var trip domain.TripPlan
	if err := json.Unmarshal(data, &trip); err != nil {
		return nil, fmt.Errorf("decode trip plan: %w", err)
	}
	return &trip, nil
}

var _ repository.TripPlanRepository = (*TripPlanRepository)(nil)
