package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ctypes "github.com/turtacn/stilbar/pkg/types/compound"
)

func newTestCache(t *testing.T) (*ResultCache, redismock.ClientMock) {
	t.Helper()
	db, mock := redismock.NewClientMock()
	client := NewClientWithRDB(db, "stilbar", nil)
	return NewResultCache(client, time.Hour, nil), mock
}

func sampleResult() *ctypes.ConversionResult {
	return &ctypes.ConversionResult{
		Code:       "T|–04r.15r–|H",
		Normalized: "T|–04r.15r–|H",
		SMILES:     "OC(C=C1)=CC=C1[C@H](O2)[C@H](C3=CC(O)=CC(O)=C3)C4=C2C=CC(/C=C/C5=CC(O)=CC(O)=C5)=C4",
		Method:     ctypes.MethodLookup,
		Confidence: 1.0,
	}
}

func TestResultCache_GetHit(t *testing.T) {
	cache, mock := newTestCache(t)
	result := sampleResult()
	data, err := json.Marshal(result)
	require.NoError(t, err)

	mock.ExpectGet("stilbar:conv:" + result.Normalized).SetVal(string(data))

	got, hit, err := cache.Get(context.Background(), result.Normalized)
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, result.SMILES, got.SMILES)
	assert.Equal(t, ctypes.MethodLookup, got.Method)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResultCache_GetMiss(t *testing.T) {
	cache, mock := newTestCache(t)

	mock.ExpectGet("stilbar:conv:H").RedisNil()

	got, hit, err := cache.Get(context.Background(), "H")
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, got)
}

func TestResultCache_GetCorrupt(t *testing.T) {
	cache, mock := newTestCache(t)

	mock.ExpectGet("stilbar:conv:H").SetVal("{not json")
	mock.ExpectDel("stilbar:conv:H").SetVal(1)

	got, hit, err := cache.Get(context.Background(), "H")
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResultCache_Set(t *testing.T) {
	cache, mock := newTestCache(t)
	result := sampleResult()
	data, err := json.Marshal(result)
	require.NoError(t, err)

	mock.ExpectSet("stilbar:conv:"+result.Normalized, data, time.Hour).SetVal("OK")

	require.NoError(t, cache.Set(context.Background(), result.Normalized, result))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResultCache_Invalidate(t *testing.T) {
	cache, mock := newTestCache(t)

	mock.ExpectDel("stilbar:conv:H").SetVal(1)

	require.NoError(t, cache.Invalidate(context.Background(), "H"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
