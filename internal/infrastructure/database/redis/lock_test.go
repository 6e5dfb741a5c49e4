package redis

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLock(t *testing.T) (*Lock, redismock.ClientMock) {
	t.Helper()
	db, mock := redismock.NewClientMock()
	client := NewClientWithRDB(db, "stilbar", nil)
	return NewLock(client, "job:abc123", time.Minute), mock
}

func TestLock_TryLock(t *testing.T) {
	lock, mock := newTestLock(t)

	mock.ExpectSetNX("stilbar:lock:job:abc123", lock.value, time.Minute).SetVal(true)

	ok, err := lock.TryLock(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLock_TryLock_AlreadyHeld(t *testing.T) {
	lock, mock := newTestLock(t)

	mock.ExpectSetNX("stilbar:lock:job:abc123", lock.value, time.Minute).SetVal(false)

	ok, err := lock.TryLock(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLock_Unlock(t *testing.T) {
	lock, mock := newTestLock(t)

	mock.ExpectEvalSha(lockReleaseScript.Hash(),
		[]string{"stilbar:lock:job:abc123"}, lock.value).SetVal(int64(1))

	require.NoError(t, lock.Unlock(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLock_Unlock_NotHeld(t *testing.T) {
	lock, mock := newTestLock(t)

	mock.ExpectEvalSha(lockReleaseScript.Hash(),
		[]string{"stilbar:lock:job:abc123"}, lock.value).SetVal(int64(0))

	err := lock.Unlock(context.Background())
	assert.ErrorIs(t, err, ErrLockNotHeld)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLock_Extend(t *testing.T) {
	lock, mock := newTestLock(t)

	mock.ExpectEvalSha(lockExtendScript.Hash(),
		[]string{"stilbar:lock:job:abc123"}, lock.value, int64(30000)).SetVal(int64(1))

	ok, err := lock.Extend(context.Background(), 30*time.Second)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}
