package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (m *memoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *memoryStore) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = data
	return nil
}

func send(r http.Handler, method, path, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader("{}"))
	if key != "" {
		req.Header.Set(idempotencyHeader, key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotency_ReplaysSameKeyOnSameRoute(t *testing.T) {
	var calls int32
	status := http.StatusOK
	r := gin.New()
	r.Use(IdempotencyMiddleware(&memoryStore{data: map[string][]byte{}}, nil))
	handler := func(c *gin.Context) {
		n := atomic.AddInt32(&calls, 1)
		c.JSON(status, gin.H{"call": n})
	}
	r.POST("/v1/optimize", handler)
	r.POST("/v1/chat", handler)

	first := send(r, http.MethodPost, "/v1/optimize", "k1")
	second := send(r, http.MethodPost, "/v1/optimize", "k1")
	assert.Equal(t, `{"call":1}`, first.Body.String())
	assert.Equal(t, `{"call":1}`, second.Body.String())
	assert.Equal(t, "true", second.Header().Get(replayedHeader))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	// Same key on another route is a different request.
	other := send(r, http.MethodPost, "/v1/chat", "k1")
	assert.Equal(t, `{"call":2}`, other.Body.String())

	// No key: always executed.
	send(r, http.MethodPost, "/v1/optimize", "")
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestIdempotency_DoesNotCacheConflicts(t *testing.T) {
	var calls int32
	r := gin.New()
	r.Use(IdempotencyMiddleware(&memoryStore{data: map[string][]byte{}}, nil))
	r.POST("/v1/optimize", func(c *gin.Context) {
		if atomic.AddInt32(&calls, 1) == 1 {
			c.JSON(http.StatusConflict, gin.H{"error": "busy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	assert.Equal(t, http.StatusConflict, send(r, http.MethodPost, "/v1/optimize", "k").Code)
	assert.Equal(t, http.StatusOK, send(r, http.MethodPost, "/v1/optimize", "k").Code)
	assert.Equal(t, http.StatusOK, send(r, http.MethodPost, "/v1/optimize", "k").Code)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestIdempotency_NilStorePassesThrough(t *testing.T) {
	var calls int32
	r := gin.New()
	r.Use(IdempotencyMiddleware(nil, nil))
	r.POST("/x", func(c *gin.Context) { atomic.AddInt32(&calls, 1); c.Status(http.StatusOK) })

	send(r, http.MethodPost, "/x", "k")
	send(r, http.MethodPost, "/x", "k")
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestRateLimiter_PerClient(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	from := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, from("10.0.0.1"))
	assert.Equal(t, http.StatusOK, from("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, from("10.0.0.1"))
	assert.Equal(t, http.StatusOK, from("10.0.0.2"))
}

func TestRateLimiter_ForgetsIdleClients(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.getLimiter("a")
	now = now.Add(visitorIdleTTL + time.Minute)
	rl.getLimiter("b")

	rl.mu.Lock()
	defer rl.mu.Unlock()
	_, hasA := rl.visitors["a"]
	assert.False(t, hasA)
	assert.Len(t, rl.visitors, 1)
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := gin.New()
	r.Use(RequestLogger(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) })

	w := send(r, http.MethodGet, "/ok", "")
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/bad", nil)
	req.Header.Set(requestIDHeader, "req-7")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-7", w.Header().Get(requestIDHeader))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "Request handled", entries[0].Message)
	assert.Equal(t, "Request rejected", entries[1].Message)
	assert.Equal(t, "req-7", entries[1].ContextMap()["request_id"])
	assert.Equal(t, int64(http.StatusBadRequest), entries[1].ContextMap()["status"])
}
