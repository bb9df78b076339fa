package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripplanner/internal/catalog"
	"tripplanner/internal/domain"
)

// testClient connects to REDIS_TEST_ADDR and skips when no server is reachable.
func testClient(t *testing.T) *redis.Client {
	t.Helper()

	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("redis unavailable at %s: %v", addr, err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestSessionStore_RoundTrip(t *testing.T) {
	client := testClient(t)
	store := NewSessionStore(client, time.Minute)
	ctx := context.Background()
	sessionID := uuid.NewString()

	miss, err := store.GetTrip(ctx, sessionID)
	require.NoError(t, err)
	assert.Nil(t, miss)

	trip := &domain.TripPlan{ID: "trip-1", Destination: "San Francisco", TotalCost: 61}
	require.NoError(t, store.SetTrip(ctx, sessionID, trip))

	got, err := store.GetTrip(ctx, sessionID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "trip-1", got.ID)
	assert.Equal(t, 61.0, got.TotalCost)

	ttl, err := client.TTL(ctx, sessionTripKey(sessionID)).Result()
	require.NoError(t, err)
	assert.LessOrEqual(t, ttl, time.Minute)

	require.NoError(t, store.DeleteTrip(ctx, sessionID))
	gone, err := store.GetTrip(ctx, sessionID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestLockStore_TokenGuardsRelease(t *testing.T) {
	client := testClient(t)
	locks := NewLockStore(client)
	ctx := context.Background()
	sessionID := uuid.NewString()

	token, ok, err := locks.AcquireSessionLock(ctx, sessionID, 5*time.Second)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = locks.AcquireSessionLock(ctx, sessionID, 5*time.Second)
	require.NoError(t, err)
	assert.False(t, ok, "second acquire must fail while held")

	require.NoError(t, locks.ReleaseSessionLock(ctx, sessionID, "someone-else"))
	_, ok, err = locks.AcquireSessionLock(ctx, sessionID, 5*time.Second)
	require.NoError(t, err)
	assert.False(t, ok, "foreign token must not release the lock")

	require.NoError(t, locks.ReleaseSessionLock(ctx, sessionID, token))
	_, ok, err = locks.AcquireSessionLock(ctx, sessionID, 5*time.Second)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGeoIndex_Nearby(t *testing.T) {
	client := testClient(t)
	geo := NewGeoIndex(client)
	ctx := context.Background()
	t.Cleanup(func() { client.Del(context.Background(), attractionLocationKey) })

	require.NoError(t, geo.Index(ctx, catalog.SanFrancisco().Attractions))

	// Ghirardelli Square.
	ids, err := geo.Nearby(ctx, 37.8059, -122.4230, 1)
	require.NoError(t, err)
	require.NotEmpty(t, ids)
	assert.Equal(t, "4", ids[0])
	assert.Contains(t, ids, "2")
	assert.NotContains(t, ids, "1")

	require.NoError(t, geo.Remove(ctx, "4"))
	ids, err = geo.Nearby(ctx, 37.8059, -122.4230, 1)
	require.NoError(t, err)
	assert.NotContains(t, ids, "4")
}
