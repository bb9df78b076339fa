package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tripplanner/internal/catalog"
	"tripplanner/internal/chat"
	"tripplanner/internal/domain"
	"tripplanner/internal/itinerary"
)

var (
	welcomeSuggestions = []string{
		"Plan a 3-day trip to San Francisco",
		"What should I see in San Francisco?",
		"Plan a weekend in SF focused on food",
	}
	tripSuggestions = []string{
		"Reorder the attractions on day 1",
		"Discover restaurants near my itinerary",
		"Remove an attraction I'm not interested in",
	}
)

// PlannerService turns chat messages into trip plans.
type PlannerService struct {
	extractor chat.Extractor
	catalog   catalog.Catalog
	assembler *itinerary.Assembler
	sessions  *SessionService
	notifier  *NotificationService
	metrics   *Metrics
	logger    *zap.Logger
	now       func() time.Time
	newID     func() string
}

// NewPlannerService creates a new PlannerService.
func NewPlannerService(
	extractor chat.Extractor,
	cat catalog.Catalog,
	assembler *itinerary.Assembler,
	sessions *SessionService,
	notifier *NotificationService,
	metrics *Metrics,
	logger *zap.Logger,
) *PlannerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlannerService{
		extractor: extractor,
		catalog:   cat,
		assembler: assembler,
		sessions:  sessions,
		notifier:  notifier,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Chat answers one message. When the message asks for a plan for a known
// destination, a new trip is assembled, stored against the session and
// pushed to its subscribers. A session locked by another writer yields
// ErrSessionBusy.
func (s *PlannerService) Chat(ctx context.Context, req domain.ChatRequest) (*domain.ChatResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, ErrEmptyMessage
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = s.newID()
	}

	reply, err := s.extractor.Extract(ctx, req.Message, req.Context)
	if err != nil {
		return nil, fmt.Errorf("extract preferences: %w", err)
	}

	resp := &domain.ChatResponse{
		Text:        reply.Text,
		SessionID:   sessionID,
		Timestamp:   s.now(),
		Suggestions: welcomeSuggestions,
	}

	if !reply.RequiresPlanning || reply.Preferences == nil {
		return resp, nil
	}

	trip, err := s.plan(ctx, reply.Preferences)
	if err != nil {
		return nil, err
	}

	err = s.sessions.Locked(ctx, sessionID, func(ctx context.Context) error {
		if err := s.sessions.Save(ctx, sessionID, trip); err != nil {
			return fmt.Errorf("save trip: %w", err)
		}
		if err := s.notifier.NotifyTripUpdated(ctx, sessionID, "plan", trip); err != nil {
			s.logger.Warn("Failed to publish new trip", zap.String("session_id", sessionID), zap.Error(err))
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSessionBusy) {
			s.metrics.lockConflict()
		}
		return nil, err
	}

	s.metrics.tripPlanned(trip.Destination)
	s.logger.Info("Trip planned",
		zap.String("session_id", sessionID),
		zap.String("trip_id", trip.ID),
		zap.String("destination", trip.Destination),
		zap.Int("days", trip.DayCount()),
	)

	resp.TripPlan = trip
	resp.Suggestions = tripSuggestions
	return resp, nil
}

func (s *PlannerService) plan(ctx context.Context, prefs *domain.Preferences) (*domain.TripPlan, error) {
	attractions, err := s.catalog.Search(ctx, catalog.Query{Location: prefs.Destination})
	if err != nil {
		return nil, fmt.Errorf("search attractions: %w", err)
	}

	if prefs.Budget != nil {
		attractions = withinBudget(attractions, *prefs.Budget)
	}

	return s.assembler.Assemble(prefs.Destination, prefs.DurationDays, attractions)
}

// withinBudget keeps attractions in order while their running cost stays
// within budget; pricier ones are skipped, not truncated at.
func withinBudget(attractions []domain.Attraction, budget float64) []domain.Attraction {
	kept := make([]domain.Attraction, 0, len(attractions))
	var spent float64
	for _, a := range attractions {
		if spent+a.CostUSD > budget {
			continue
		}
		spent += a.CostUSD
		kept = append(kept, a)
	}
	return kept
}
