package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripplanner/internal/catalog"
	"tripplanner/internal/domain"
	"tripplanner/internal/itinerary"
	"tripplanner/internal/realtime"
	"tripplanner/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakePlanner struct {
	got  domain.ChatRequest
	resp *domain.ChatResponse
	err  error
}

func (f *fakePlanner) Chat(ctx context.Context, req domain.ChatRequest) (*domain.ChatResponse, error) {
	f.got = req
	return f.resp, f.err
}

type fakeOptimizer struct {
	got    service.OptimizeRequest
	result *itinerary.Result
	err    error
}

func (f *fakeOptimizer) Optimize(ctx context.Context, req service.OptimizeRequest) (*itinerary.Result, error) {
	f.got = req
	return f.result, f.err
}

type fakeSessions struct {
	trips map[string]*domain.TripPlan
}

func (f *fakeSessions) Load(ctx context.Context, sessionID string) (*domain.TripPlan, error) {
	if sessionID == "" {
		return nil, service.ErrInvalidSessionID
	}
	trip, ok := f.trips[sessionID]
	if !ok {
		return nil, service.ErrNoTripForSession
	}
	return trip, nil
}

func (f *fakeSessions) Delete(ctx context.Context, sessionID string) error {
	if _, ok := f.trips[sessionID]; !ok {
		return service.ErrNoTripForSession
	}
	delete(f.trips, sessionID)
	return nil
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestChatHandler(t *testing.T) {
	planner := &fakePlanner{resp: &domain.ChatResponse{Text: "hi", SessionID: "s1"}}
	r := gin.New()
	r.POST("/v1/chat", NewChatHandler(planner).Chat)

	w := do(r, http.MethodPost, "/v1/chat", `{"message":"plan a trip to sf","context":{"duration_days":2}}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "plan a trip to sf", planner.got.Message)
	assert.Equal(t, float64(2), planner.got.Context["duration_days"])

	var resp domain.ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "s1", resp.SessionID)

	w = do(r, http.MethodPost, "/v1/chat", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	planner.err = service.ErrEmptyMessage
	w = do(r, http.MethodPost, "/v1/chat", `{"message":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "message is required")
}

func TestOptimizeHandler_MapsRequest(t *testing.T) {
	trip := &domain.TripPlan{ID: "trip-1"}
	opt := &fakeOptimizer{result: &itinerary.Result{Trip: trip, Candidates: []domain.Attraction{{ID: "10"}}}}
	r := gin.New()
	r.POST("/v1/optimize", NewOptimizeHandler(opt).Optimize)

	w := do(r, http.MethodPost, "/v1/optimize", `{
		"session_id": "s1",
		"action": "add",
		"data": {"day_number": 2, "attraction_id": "10", "position": 0, "type": "shopping", "location": "SF", "new_order": ["a"]}
	}`)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "s1", opt.got.SessionID)
	assert.Equal(t, itinerary.ActionAdd, opt.got.Action.Name)
	assert.Equal(t, 2, opt.got.Action.DayNumber)
	assert.Equal(t, "10", opt.got.Action.AttractionID)
	assert.Equal(t, "shopping", opt.got.Action.Category)
	assert.Equal(t, "SF", opt.got.Action.Location)
	assert.Equal(t, []string{"a"}, opt.got.Action.NewOrder)
	require.NotNil(t, opt.got.Action.Position)
	assert.Equal(t, 0, *opt.got.Action.Position)

	var resp OptimizeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "trip-1", resp.TripPlan.ID)
	require.Len(t, resp.Candidates, 1)
}

func TestOptimizeHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("day 9: %w", itinerary.ErrInvalidDayNumber), http.StatusBadRequest},
		{itinerary.ErrUnknownAction, http.StatusBadRequest},
		{itinerary.ErrUnknownCategory, http.StatusBadRequest},
		{service.ErrInvalidSessionID, http.StatusBadRequest},
		{service.ErrNoTripForSession, http.StatusNotFound},
		{itinerary.ErrAttractionNotFound, http.StatusNotFound},
		{service.ErrSessionBusy, http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		r := gin.New()
		r.POST("/v1/optimize", NewOptimizeHandler(&fakeOptimizer{err: tc.err}).Optimize)
		w := do(r, http.MethodPost, "/v1/optimize", `{"session_id":"s1","action":"reorder","data":{"day_number":1}}`)
		assert.Equal(t, tc.code, w.Code, tc.err.Error())
	}
}

func TestSessionHandler(t *testing.T) {
	sessions := &fakeSessions{trips: map[string]*domain.TripPlan{"s1": {ID: "trip-1", Destination: "San Francisco"}}}
	h := NewSessionHandler(sessions)
	r := gin.New()
	r.GET("/v1/sessions/:session_id/trip", h.GetTrip)
	r.DELETE("/v1/sessions/:session_id/trip", h.DeleteTrip)

	w := do(r, http.MethodGet, "/v1/sessions/s1/trip", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"destination":"San Francisco"`)

	w = do(r, http.MethodDelete, "/v1/sessions/s1/trip", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(r, http.MethodGet, "/v1/sessions/s1/trip", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAttractionHandler(t *testing.T) {
	cat, err := catalog.NewMemoryCatalog(nil, catalog.SanFrancisco())
	require.NoError(t, err)
	h := NewAttractionHandler(cat)
	r := gin.New()
	r.GET("/v1/attractions", h.Search)
	r.GET("/v1/attractions/:id", h.Get)

	w := do(r, http.MethodGet, "/v1/attractions?type=Museum&location=SF", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp AttractionsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "6", resp.Attractions[0].ID)

	w = do(r, http.MethodGet, "/v1/attractions?lat=37.8059&lng=-122.4230&radius_km=1&limit=1", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "4", resp.Attractions[0].ID)

	for _, bad := range []string{"?type=zoo", "?lat=1", "?lat=x&lng=1", "?limit=-1"} {
		w = do(r, http.MethodGet, "/v1/attractions"+bad, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, bad)
	}

	w = do(r, http.MethodGet, "/v1/attractions/3", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Alcatraz Island")

	w = do(r, http.MethodGet, "/v1/attractions/999", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWSHandler_SendsInitialStateAndUpdates(t *testing.T) {
	trip := &domain.TripPlan{ID: "trip-1"}
	sessions := &fakeSessions{trips: map[string]*domain.TripPlan{"s1": trip}}
	hub := realtime.NewHub(nil)
	notifier := service.NewNotificationService(hub, nil, nil)

	r := gin.New()
	r.GET("/ws/:session_id", NewWSHandler(sessions, hub, notifier, []string{"http://localhost:3000"}, nil).Subscribe)
	srv := httptest.NewServer(r)
	defer srv.Close()
	base := "ws" + strings.TrimPrefix(srv.URL, "http")

	conn, _, err := websocket.DefaultDialer.Dial(base+"/ws/s1", http.Header{"Origin": {"http://localhost:3000"}})
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev domain.Event
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, domain.EventInitialState, ev.Type)
	require.NotNil(t, ev.TripPlan)
	assert.Equal(t, "trip-1", ev.TripPlan.ID)

	require.NoError(t, notifier.NotifyTripUpdated(context.Background(), "s1", "reorder", trip))
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, domain.EventTripUpdate, ev.Type)
	assert.Equal(t, "reorder", ev.Action)

	// Sessions without a plan still subscribe and get an empty initial state.
	empty, _, err := websocket.DefaultDialer.Dial(base+"/ws/new-session", nil)
	require.NoError(t, err)
	defer empty.Close()
	require.NoError(t, empty.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, empty.ReadJSON(&ev))
	assert.Equal(t, domain.EventInitialState, ev.Type)
	assert.Nil(t, ev.TripPlan)

	_, resp, err := websocket.DefaultDialer.Dial(base+"/ws/s1", http.Header{"Origin": {"https://evil.example"}})
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
