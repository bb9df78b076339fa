package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"tripplanner/internal/domain"
)

// DefaultSessionTTL keeps an idle session's trip around for a day.
const DefaultSessionTTL = 24 * time.Hour

const sessionTripPrefix = "session:trip:"

// SessionStore caches the current trip plan of each chat session.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore creates a new SessionStore. A non-positive ttl uses DefaultSessionTTL.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{client: client, ttl: ttl}
}

func sessionTripKey(sessionID string) string {
	return sessionTripPrefix + sessionID
}

// GetTrip returns the cached plan for a session, or nil on a cache miss.
func (s *SessionStore) GetTrip(ctx context.Context, sessionID string) (*domain.TripPlan, error) {
	data, err := s.client.Get(ctx, sessionTripKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var trip domain.TripPlan
	if err := json.Unmarshal(data, &trip); err != nil {
		return nil, fmt.Errorf("decode cached trip for session %s: %w", sessionID, err)
	}
	return &trip, nil
}

// SetTrip stores a session's plan and restarts its TTL.
func (s *SessionStore) SetTrip(ctx context.Context, sessionID string, trip *domain.TripPlan) error {
	data, err := json.Marshal(trip)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionTripKey(sessionID), data, s.ttl).Err()
}

// DeleteTrip removes a session's plan from cache.
func (s *SessionStore) DeleteTrip(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionTripKey(sessionID)).Err()
}
