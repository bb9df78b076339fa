package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"tripplanner/internal/itinerary"
)

// OptimizeRequest is one edit of a session's itinerary.
type OptimizeRequest struct {
	SessionID string
	Action    itinerary.Action
}

// OptimizerService applies itinerary edits to stored sessions. Mutating edits
// run under the session lock held by SessionService.Locked.
type OptimizerService struct {
	optimizer *itinerary.Optimizer
	sessions  *SessionService
	notifier  *NotificationService
	metrics   *Metrics
	logger    *zap.Logger
}

// NewOptimizerService creates a new OptimizerService.
func NewOptimizerService(
	optimizer *itinerary.Optimizer,
	sessions *SessionService,
	notifier *NotificationService,
	metrics *Metrics,
	logger *zap.Logger,
) *OptimizerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OptimizerService{
		optimizer: optimizer,
		sessions:  sessions,
		notifier:  notifier,
		metrics:   metrics,
		logger:    logger,
	}
}

// Optimize loads the session's trip, applies the action and, unless the
// action is discover, stores and publishes the result.
func (s *OptimizerService) Optimize(ctx context.Context, req OptimizeRequest) (*itinerary.Result, error) {
	if req.SessionID == "" {
		return nil, ErrInvalidSessionID
	}

	if req.Action.Name == itinerary.ActionDiscover {
		return s.apply(ctx, req)
	}

	var result *itinerary.Result
	err := s.sessions.Locked(ctx, req.SessionID, func(ctx context.Context) error {
		var err error
		if result, err = s.apply(ctx, req); err != nil {
			return err
		}
		if err := s.sessions.Save(ctx, req.SessionID, result.Trip); err != nil {
			return err
		}
		// Events go out while the lock is held.
		if err := s.notifier.NotifyTripUpdated(ctx, req.SessionID, req.Action.Name, result.Trip); err != nil {
			s.logger.Warn("Failed to publish trip update", zap.String("session_id", req.SessionID), zap.Error(err))
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSessionBusy) {
			s.metrics.lockConflict()
		}
		return nil, err
	}

	s.logger.Info("Trip updated",
		zap.String("session_id", req.SessionID),
		zap.String("action", req.Action.Name),
		zap.Int("day_number", req.Action.DayNumber),
		zap.Float64("total_cost", result.Trip.TotalCost),
	)
	return result, nil
}

func (s *OptimizerService) apply(ctx context.Context, req OptimizeRequest) (*itinerary.Result, error) {
	trip, err := s.sessions.Load(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := s.optimizer.Apply(ctx, trip, req.Action)
	s.metrics.optimized(req.Action.Name, err, time.Since(start))
	return result, err
}
