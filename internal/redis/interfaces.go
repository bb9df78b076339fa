package redis

import (
	"context"
	"time"

	"tripplanner/internal/catalog"
	"tripplanner/internal/domain"
)

// SessionStoreInterface defines the interface for session trip caching.
type SessionStoreInterface interface {
	GetTrip(ctx context.Context, sessionID string) (*domain.TripPlan, error)
	SetTrip(ctx context.Context, sessionID string, trip *domain.TripPlan) error
	DeleteTrip(ctx context.Context, sessionID string) error
}

// LockStoreInterface defines the interface for distributed locking.
type LockStoreInterface interface {
	AcquireSessionLock(ctx context.Context, sessionID string, ttl time.Duration) (string, bool, error)
	ReleaseSessionLock(ctx context.Context, sessionID, token string) error
}

// Ensure concrete types implement interfaces.
var (
	_ SessionStoreInterface = (*SessionStore)(nil)
	_ LockStoreInterface    = (*LockStore)(nil)
	_ catalog.GeoIndex      = (*GeoIndex)(nil)
)
