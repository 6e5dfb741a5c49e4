package redis

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/turtacn/stilbar/pkg/errors"
)

const defaultLockTTL = 2 * time.Minute

// ErrLockNotHeld is returned by Unlock when the lock expired or was taken
// over by another owner.
var ErrLockNotHeld = errors.New(errors.CodeConflict, "lock not held by this owner")

var lockReleaseScript = redis.NewScript(`
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("DEL", KEYS[1])
	else
		return 0
	end
`)

var lockExtendScript = redis.NewScript(`
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("PEXPIRE", KEYS[1], ARGV[2])
	else
		return 0
	end
`)

// Lock is a single-owner Redis lock. Workers take one per batch job so that
// a consumer group rebalance mid-job cannot cause two workers to process the
// same job concurrently. The value is a random token; release and extend are
// compare-and-set so an expired lock cannot be released by its old owner.
type Lock struct {
	client *Client
	key    string
	value  string
	ttl    time.Duration
}

// NewLock constructs a lock under the "lock" namespace. ttl <= 0 falls back
// to 2 minutes.
func NewLock(client *Client, name string, ttl time.Duration) *Lock {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &Lock{
		client: client,
		key:    client.Key("lock", name),
		value:  uuid.NewString(),
		ttl:    ttl,
	}
}

// TryLock attempts to take the lock without blocking.
func (l *Lock) TryLock(ctx context.Context) (bool, error) {
	ok, err := l.client.RDB().SetNX(ctx, l.key, l.value, l.ttl).Result()
	if err != nil {
		return false, errors.Wrap(err, errors.CodeCacheError, "failed to acquire lock")
	}
	return ok, nil
}

// Unlock releases the lock if this owner still holds it.
func (l *Lock) Unlock(ctx context.Context) error {
	res, err := lockReleaseScript.Run(ctx, l.client.RDB(), []string{l.key}, l.value).Result()
	if err != nil {
		return errors.Wrap(err, errors.CodeCacheError, "failed to release lock")
	}
	if res.(int64) == 0 {
		return ErrLockNotHeld
	}
	return nil
}

// Extend pushes the expiry out by ttl. Returns false when the lock is no
// longer held by this owner.
func (l *Lock) Extend(ctx context.Context, ttl time.Duration) (bool, error) {
	res, err := lockExtendScript.Run(ctx, l.client.RDB(), []string{l.key}, l.value, ttl.Milliseconds()).Result()
	if err != nil {
		return false, errors.Wrap(err, errors.CodeCacheError, "failed to extend lock")
	}
	return res.(int64) == 1, nil
}
