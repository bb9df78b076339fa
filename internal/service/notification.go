package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"tripplanner/internal/domain"
)

// Publisher delivers events to the realtime subscribers of a session.
type Publisher interface {
	Publish(ctx context.Context, sessionID string, event domain.Event) error
}

// NotificationService handles realtime notification delivery.
type NotificationService struct {
	publisher Publisher
	metrics   *Metrics
	logger    *zap.Logger
	now       func() time.Time
}

// NewNotificationService creates a new NotificationService. A nil publisher
// only logs.
func NewNotificationService(publisher Publisher, metrics *Metrics, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
	}
}

// InitialState builds the first event sent to a freshly connected subscriber.
// trip may be nil when the session has not planned anything yet.
func (s *NotificationService) InitialState(sessionID string, trip *domain.TripPlan) domain.Event {
	return domain.Event{
		Type:      domain.EventInitialState,
		SessionID: sessionID,
		TripPlan:  trip,
		Timestamp: s.now(),
	}
}

// NotifyTripUpdated tells a session's subscribers that its plan changed.
func (s *NotificationService) NotifyTripUpdated(ctx context.Context, sessionID, action string, trip *domain.TripPlan) error {
	return s.send(ctx, domain.Event{
		Type:      domain.EventTripUpdate,
		SessionID: sessionID,
		Action:    action,
		TripPlan:  trip,
		Timestamp: s.now(),
	})
}

func (s *NotificationService) send(ctx context.Context, event domain.Event) error {
	s.logger.Debug("Publishing notification",
		zap.String("type", string(event.Type)),
		zap.String("session_id", event.SessionID),
		zap.String("action", event.Action),
	)

	if s.publisher == nil {
		return nil
	}
	if err := s.publisher.Publish(ctx, event.SessionID, event); err != nil {
		return err
	}

	s.metrics.notified(string(event.Type))
	return nil
}
