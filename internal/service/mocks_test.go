package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"tripplanner/internal/domain"
	"tripplanner/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK TRIP PLAN REPOSITORY
// ──────────────────────────────────────────────

// MockTripPlanRepository is a mock implementation of TripPlanRepository.
type MockTripPlanRepository struct {
	mu    sync.RWMutex
	plans map[string]*domain.TripPlan

	// Counters for verification
	SaveCallCount   int32
	GetCallCount    int32
	DeleteCallCount int32

	// Error injection
	SaveError error
	GetError  error
}

// NewMockTripPlanRepository creates a new mock trip plan repository.
func NewMockTripPlanRepository() *MockTripPlanRepository {
	return &MockTripPlanRepository{plans: make(map[string]*domain.TripPlan)}
}

func (m *MockTripPlanRepository) Save(ctx context.Context, sessionID string, trip *domain.TripPlan) error {
	atomic.AddInt32(&m.SaveCallCount, 1)
	if m.SaveError != nil {
		return m.SaveError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.plans[sessionID] = trip.Clone()
	return nil
}

func (m *MockTripPlanRepository) GetBySessionID(ctx context.Context, sessionID string) (*domain.TripPlan, error) {
	atomic.AddInt32(&m.GetCallCount, 1)
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	trip, ok := m.plans[sessionID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	return trip.Clone(), nil
}

func (m *MockTripPlanRepository) GetByID(ctx context.Context, tripID string) (*domain.TripPlan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, trip := range m.plans {
		if trip.ID == tripID {
			return trip.Clone(), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockTripPlanRepository) List(ctx context.Context, limit int) ([]*domain.TripPlan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.TripPlan
	for _, trip := range m.plans {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, trip.Clone())
	}
	return out, nil
}

func (m *MockTripPlanRepository) Delete(ctx context.Context, sessionID string) error {
	atomic.AddInt32(&m.DeleteCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.plans[sessionID]; !ok {
		return repository.ErrNotFound
	}
	delete(m.plans, sessionID)
	return nil
}

// Stored returns the plan saved for a session without counting a read.
func (m *MockTripPlanRepository) Stored(sessionID string) *domain.TripPlan {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.plans[sessionID]
}

// ──────────────────────────────────────────────
// MOCK SESSION STORE
// ──────────────────────────────────────────────

// MockSessionStore is a mock implementation of SessionStore.
type MockSessionStore struct {
	mu    sync.Mutex
	trips map[string]*domain.TripPlan

	GetCallCount    int32
	SetCallCount    int32
	DeleteCallCount int32

	GetError error
	SetError error
}

// NewMockSessionStore creates a new mock session store.
func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{trips: make(map[string]*domain.TripPlan)}
}

func (m *MockSessionStore) GetTrip(ctx context.Context, sessionID string) (*domain.TripPlan, error) {
	atomic.AddInt32(&m.GetCallCount, 1)
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	trip, ok := m.trips[sessionID]
	if !ok {
		return nil, nil // Cache miss
	}
	return trip.Clone(), nil
}

func (m *MockSessionStore) SetTrip(ctx context.Context, sessionID string, trip *domain.TripPlan) error {
	atomic.AddInt32(&m.SetCallCount, 1)
	if m.SetError != nil {
		return m.SetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trips[sessionID] = trip.Clone()
	return nil
}

func (m *MockSessionStore) DeleteTrip(ctx context.Context, sessionID string) error {
	atomic.AddInt32(&m.DeleteCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.trips, sessionID)
	return nil
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is a mock implementation of LockStore.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[string]string

	// Counters
	AcquireCallCount int32
	ReleaseCallCount int32

	// Error injection
	AcquireError error

	// Force lock failure
	ForceAcquireFailure bool
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{locks: make(map[string]string)}
}

func (m *MockLockStore) AcquireSessionLock(ctx context.Context, sessionID string, ttl time.Duration) (string, bool, error) {
	n := atomic.AddInt32(&m.AcquireCallCount, 1)
	if m.AcquireError != nil {
		return "", false, m.AcquireError
	}
	if m.ForceAcquireFailure {
		return "", false, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, held := m.locks[sessionID]; held {
		return "", false, nil // Lock still held.
	}
	token := fmt.Sprintf("token-%d", n)
	m.locks[sessionID] = token
	return token, true, nil
}

func (m *MockLockStore) ReleaseSessionLock(ctx context.Context, sessionID, token string) error {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locks[sessionID] == token {
		delete(m.locks, sessionID)
	}
	return nil
}

// Held reports whether the session lock is currently taken.
func (m *MockLockStore) Held(sessionID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.locks[sessionID]
	return ok
}

// ──────────────────────────────────────────────
// MOCK PUBLISHER
// ──────────────────────────────────────────────

// MockPublisher records published events.
type MockPublisher struct {
	mu     sync.Mutex
	Events []domain.Event

	PublishError error
}

func (m *MockPublisher) Publish(ctx context.Context, sessionID string, event domain.Event) error {
	if m.PublishError != nil {
		return m.PublishError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, event)
	return nil
}

// Published returns a snapshot of recorded events.
func (m *MockPublisher) Published() []domain.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Event(nil), m.Events...)
}
