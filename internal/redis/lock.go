package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the lock only if it still holds the caller's token,
// so an expired holder cannot release a lock someone else has since taken.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// LockStore handles distributed locking in Redis.
type LockStore struct {
	client *redis.Client
}

// NewLockStore creates a new LockStore.
func NewLockStore(client *redis.Client) *LockStore {
	return &LockStore{client: client}
}

func sessionLockKey(sessionID string) string {
	return fmt.Sprintf("lock:session:%s", sessionID)
}

// AcquireSessionLock attempts to take the mutation lock for a session.
// It returns the holder token and true when acquired, or "" and false if
// the lock is already held.
func (s *LockStore) AcquireSessionLock(ctx context.Context, sessionID string, ttl time.Duration) (string, bool, error) {
	token := uuid.NewString()

	ok, err := s.client.SetNX(ctx, sessionLockKey(sessionID), token, ttl).Result()
	if err != nil {
		return "", false, err
	}
	if !ok {
		return "", false, nil
	}

	return token, true, nil
}

// ReleaseSessionLock releases the session lock if token still owns it.
func (s *LockStore) ReleaseSessionLock(ctx context.Context, sessionID, token string) error {
	return releaseScript.Run(ctx, s.client, []string{sessionLockKey(sessionID)}, token).Err()
}
