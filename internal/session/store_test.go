package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/atinyakov/PageGuard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, ttl time.Duration) *Store {
	t.Helper()
	db, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewStore(db, ttl)
}

func TestStore_CreateAndExists(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, time.Hour)

	id, err := s.Create(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	ok, err := s.Exists(ctx, id)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Exists(ctx, "nope")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.Exists(ctx, "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_MarkAndCheckUnlock(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, time.Hour)

	sid, err := s.Create(ctx)
	require.NoError(t, err)

	unlocked, err := s.IsUnlocked(ctx, sid, "42")
	require.NoError(t, err)
	assert.False(t, unlocked)

	require.NoError(t, s.MarkUnlocked(ctx, sid, "42"))
	// idempotent
	require.NoError(t, s.MarkUnlocked(ctx, sid, "42"))

	unlocked, err = s.IsUnlocked(ctx, sid, "42")
	require.NoError(t, err)
	assert.True(t, unlocked)

	unlocked, err = s.IsUnlocked(ctx, sid, "43")
	require.NoError(t, err)
	assert.False(t, unlocked, "unlock must not leak to other items")
}

func TestStore_SessionIsolation(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, time.Hour)

	s1, err := s.Create(ctx)
	require.NoError(t, err)
	s2, err := s.Create(ctx)
	require.NoError(t, err)
	require.NotEqual(t, s1, s2)

	require.NoError(t, s.MarkUnlocked(ctx, s1, "42"))

	unlocked, err := s.IsUnlocked(ctx, s2, "42")
	require.NoError(t, err)
	assert.False(t, unlocked)
}

func TestStore_MarkUnlockedRequiresSession(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, time.Hour)

	assert.ErrorIs(t, s.MarkUnlocked(ctx, "", "42"), models.ErrSessionUnavailable)
	assert.ErrorIs(t, s.MarkUnlocked(ctx, "unknown", "42"), models.ErrSessionUnavailable)

	unlocked, err := s.IsUnlocked(ctx, "", "42")
	require.NoError(t, err)
	assert.False(t, unlocked)
}

func TestStore_End(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, time.Hour)

	s1, err := s.Create(ctx)
	require.NoError(t, err)
	s2, err := s.Create(ctx)
	require.NoError(t, err)

	for _, item := range []string{"1", "2", "a/b"} {
		require.NoError(t, s.MarkUnlocked(ctx, s1, item))
	}
	require.NoError(t, s.MarkUnlocked(ctx, s2, "1"))

	require.NoError(t, s.End(ctx, s1))

	ok, err := s.Exists(ctx, s1)
	require.NoError(t, err)
	assert.False(t, ok)
	for _, item := range []string{"1", "2", "a/b"} {
		unlocked, err := s.IsUnlocked(ctx, s1, item)
		require.NoError(t, err)
		assert.False(t, unlocked, item)
	}

	unlocked, err := s.IsUnlocked(ctx, s2, "1")
	require.NoError(t, err)
	assert.True(t, unlocked, "other sessions are untouched")

	require.NoError(t, s.End(ctx, ""))
}

func TestStore_UnlocksExpireWithSession(t *testing.T) {
	if testing.Short() {
		t.Skip("waits for TTL expiry")
	}
	ctx := context.Background()
	s := newTestStore(t, time.Second)

	sid, err := s.Create(ctx)
	require.NoError(t, err)
	require.NoError(t, s.MarkUnlocked(ctx, sid, "42"))

	time.Sleep(2100 * time.Millisecond)

	ok, err := s.Exists(ctx, sid)
	require.NoError(t, err)
	assert.False(t, ok)

	unlocked, err := s.IsUnlocked(ctx, sid, "42")
	require.NoError(t, err)
	assert.False(t, unlocked)

	assert.ErrorIs(t, s.MarkUnlocked(ctx, sid, "42"), models.ErrSessionUnavailable)
}

func TestStore_ConcurrentUnlocks(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, time.Hour)

	sid, err := s.Create(ctx)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.MarkUnlocked(ctx, sid, "42"))
		}()
	}
	wg.Wait()

	unlocked, err := s.IsUnlocked(ctx, sid, "42")
	require.NoError(t, err)
	assert.True(t, unlocked)
}
