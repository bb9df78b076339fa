package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"tripplanner/internal/domain"
	"tripplanner/internal/redis"
	"tripplanner/internal/repository"
)

// DefaultSessionLockTTL bounds how long one writer may hold a session.
const DefaultSessionLockTTL = 10 * time.Second

// SessionService owns the current trip plan of each chat session. Redis is
// a read-through cache in front of the durable repository. Writers that
// replace or drop a session's trip go through Locked.
type SessionService struct {
	repo    repository.TripPlanRepository
	cache   redis.SessionStoreInterface
	locks   redis.LockStoreInterface
	lockTTL time.Duration
	logger  *zap.Logger
}

// NewSessionService creates a new SessionService. cache may be nil.
func NewSessionService(repo repository.TripPlanRepository, cache redis.SessionStoreInterface, logger *zap.Logger) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// WithLock serialises writers of the same session through locks. Without it
// Locked runs its function unguarded, which only suits a single instance.
func (s *SessionService) WithLock(locks redis.LockStoreInterface, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = DefaultSessionLockTTL
	}
	s.locks = locks
	s.lockTTL = ttl
	return s
}

// Locked runs fn while holding the session's lock. It returns ErrSessionBusy
// without calling fn when another writer holds the lock.
func (s *SessionService) Locked(ctx context.Context, sessionID string, fn func(ctx context.Context) error) error {
	if sessionID == "" {
		return ErrInvalidSessionID
	}
	if s.locks == nil {
		return fn(ctx)
	}

	token, locked, err := s.locks.AcquireSessionLock(ctx, sessionID, s.lockTTL)
	if err != nil {
		return err
	}
	if !locked {
		return ErrSessionBusy
	}
	defer func() {
		if err := s.locks.ReleaseSessionLock(ctx, sessionID, token); err != nil {
			s.logger.Warn("Failed to release session lock", zap.String("session_id", sessionID), zap.Error(err))
		}
	}()

	return fn(ctx)
}

// Load returns the session's trip, checking the cache before the repository.
func (s *SessionService) Load(ctx context.Context, sessionID string) (*domain.TripPlan, error) {
	if sessionID == "" {
		return nil, ErrInvalidSessionID
	}

	if s.cache != nil {
		trip, err := s.cache.GetTrip(ctx, sessionID)
		if err != nil {
			s.logger.Warn("Session cache read failed", zap.String("session_id", sessionID), zap.Error(err))
		} else if trip != nil {
			return trip, nil
		}
	}

	trip, err := s.repo.GetBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoTripForSession
		}
		return nil, err
	}

	s.fillCache(ctx, sessionID, trip)
	return trip, nil
}

// Save persists the session's trip and refreshes the cache.
func (s *SessionService) Save(ctx context.Context, sessionID string, trip *domain.TripPlan) error {
	if sessionID == "" {
		return ErrInvalidSessionID
	}

	if err := s.repo.Save(ctx, sessionID, trip); err != nil {
		return err
	}

	s.fillCache(ctx, sessionID, trip)
	return nil
}

// Delete drops the session's trip from both stores under the session lock.
func (s *SessionService) Delete(ctx context.Context, sessionID string) error {
	return s.Locked(ctx, sessionID, func(ctx context.Context) error {
		return s.delete(ctx, sessionID)
	})
}

func (s *SessionService) delete(ctx context.Context, sessionID string) error {
	if s.cache != nil {
		if err := s.cache.DeleteTrip(ctx, sessionID); err != nil {
			return err
		}
	}

	if err := s.repo.Delete(ctx, sessionID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNoTripForSession
		}
		return err
	}
	return nil
}

// fillCache is best effort; the repository stays the source of truth.
func (s *SessionService) fillCache(ctx context.Context, sessionID string, trip *domain.TripPlan) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetTrip(ctx, sessionID, trip); err != nil {
		s.logger.Warn("Session cache write failed", zap.String("session_id", sessionID), zap.Error(err))
	}
}
