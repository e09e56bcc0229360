package auth

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T, maxSize int) (*RevocationStore, *TokenManager) {
	t.Helper()
	tm := newTestTokenManager(t)
	return NewRevocationStore(tm, zap.NewNop(), time.Hour, maxSize), tm
}

func TestRevokeIsIdempotent(t *testing.T) {
	store, tm := newTestStore(t, 1000)
	token, _, err := tm.Issue("alumno@tecsup.edu.pe")
	require.NoError(t, err)

	store.Revoke(token)
	store.Revoke(token)

	assert.True(t, store.IsRevoked(token))
	assert.Equal(t, 1, store.Stats().RevokedCount)
}

func TestRevokeIgnoresBlankToken(t *testing.T) {
	store, _ := newTestStore(t, 1000)

	store.Revoke("")
	store.Revoke("   ")

	assert.Equal(t, 0, store.Stats().RevokedCount)
	assert.False(t, store.IsRevoked(""))
}

func TestIsValidRejectsRevokedToken(t *testing.T) {
	store, tm := newTestStore(t, 1000)
	token, _, err := tm.Issue("alumno@tecsup.edu.pe")
	require.NoError(t, err)

	assert.True(t, store.IsValid(token))
	store.Revoke(token)
	assert.False(t, store.IsValid(token))
}

func TestIsValidCachesVerificationFailures(t *testing.T) {
	store, _ := newTestStore(t, 1000)
	dead := signToken(t, testSecret, "alumno@tecsup.edu.pe", time.Now().Add(-time.Minute))

	assert.False(t, store.IsValid(dead))
	assert.Equal(t, 1, store.Stats().ExpiredCacheCount)

	// Replay lands in the cache, the count does not grow.
	assert.False(t, store.IsValid(dead))
	assert.Equal(t, 1, store.Stats().ExpiredCacheCount)
}

func TestSweepKeepsLiveRevocations(t *testing.T) {
	store, tm := newTestStore(t, 1000)
	live, _, err := tm.Issue("alumno@tecsup.edu.pe")
	require.NoError(t, err)
	dead := signToken(t, testSecret, "exalumno@tecsup.edu.pe", time.Now().Add(-time.Minute))

	store.Revoke(live)
	store.Revoke(dead)
	require.Equal(t, 2, store.Stats().RevokedCount)

	store.Sweep()

	assert.True(t, store.IsRevoked(live), "a revoked token stays revoked while it still verifies")
	assert.False(t, store.IsRevoked(dead), "dead tokens no longer need an explicit entry")
	assert.Equal(t, 1, store.Stats().RevokedCount)
}

func TestSweepClearsExpiredCachePastBound(t *testing.T) {
	store, _ := newTestStore(t, 3)

	for i := 0; i < 5; i++ {
		store.IsValid(fmt.Sprintf("not-a-token-%d", i))
	}
	require.Equal(t, 5, store.Stats().ExpiredCacheCount)

	store.Sweep()
	assert.Equal(t, 0, store.Stats().ExpiredCacheCount)
}

func TestSweepKeepsExpiredCacheUnderBound(t *testing.T) {
	store, _ := newTestStore(t, 10)

	store.IsValid("not-a-token")
	require.Equal(t, 1, store.Stats().ExpiredCacheCount)

	store.Sweep()
	assert.Equal(t, 1, store.Stats().ExpiredCacheCount)
}

func TestStoreConcurrentAccess(t *testing.T) {
	store, tm := newTestStore(t, 1000)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			token, _, err := tm.Issue(fmt.Sprintf("user%d@tecsup.edu.pe", n))
			if err != nil {
				t.Error(err)
				return
			}
			store.IsValid(token)
			store.Revoke(token)
			store.IsRevoked(token)
			store.IsValid(fmt.Sprintf("junk-%d", n))
			store.Sweep()
			store.Stats()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 16, store.Stats().RevokedCount)
}
