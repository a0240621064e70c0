package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notehq/notehq.go/pkg/models"
)

func entityFixture(kind models.Kind, id models.ID) *models.Entity {
	return &models.Entity{
		ID:         id,
		Kind:       kind,
		Parent:     models.RootParent(),
		Properties: map[string]any{"title": string(id)},
	}
}

func TestGetMissesOnEmptyStore(t *testing.T) {
	store := New(func(context.Context, models.Kind, models.ID) (*models.Entity, error) {
		t.Fatal("Get must not fetch")
		return nil, nil
	})

	_, ok := store.Get(models.KindPage, "p1")
	assert.False(t, ok)
}

func TestPutThenGetIsMonotonic(t *testing.T) {
	var fetches atomic.Int64
	store := New(func(_ context.Context, kind models.Kind, id models.ID) (*models.Entity, error) {
		fetches.Add(1)
		return entityFixture(kind, id), nil
	})

	ent := entityFixture(models.KindPage, "p1")
	store.Put(models.KindPage, ent)

	got, ok := store.Get(models.KindPage, "p1")
	require.True(t, ok)
	assert.Equal(t, ent, got)

	// GetOrFetch is satisfied from cache with no I/O.
	got2, err := store.GetOrFetch(context.Background(), models.KindPage, "p1")
	require.NoError(t, err)
	assert.Equal(t, ent, got2)
	assert.EqualValues(t, 0, fetches.Load())

	store.Invalidate(models.KindPage, "p1")
	_, ok = store.Get(models.KindPage, "p1")
	assert.False(t, ok)
}

func TestGetReturnsSnapshot(t *testing.T) {
	store := New(nil)
	store.Put(models.KindPage, entityFixture(models.KindPage, "p1"))

	got, ok := store.Get(models.KindPage, "p1")
	require.True(t, ok)
	got.Properties["title"] = "mutated by caller"

	fresh, ok := store.Get(models.KindPage, "p1")
	require.True(t, ok)
	assert.Equal(t, "p1", fresh.Properties["title"])
}

func TestGetOrFetchSingleFlight(t *testing.T) {
	const waiters = 50

	var fetches atomic.Int64
	release := make(chan struct{})
	store := New(func(_ context.Context, kind models.Kind, id models.ID) (*models.Entity, error) {
		fetches.Add(1)
		<-release
		return entityFixture(kind, id), nil
	})

	results := make([]*models.Entity, waiters)
	errs := make([]error, waiters)

	var started, done sync.WaitGroup
	started.Add(waiters)
	done.Add(waiters)
	for i := 0; i < waiters; i++ {
		go func(i int) {
			defer done.Done()
			started.Done()
			results[i], errs[i] = store.GetOrFetch(context.Background(), models.KindUser, "u1")
		}(i)
	}

	started.Wait()
	// Give every goroutine a chance to reach the flight before the
	// fetch is allowed to complete.
	time.Sleep(50 * time.Millisecond)
	close(release)
	done.Wait()

	assert.EqualValues(t, 1, fetches.Load())
	for i := 0; i < waiters; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, models.ID("u1"), results[i].ID)
	}
}

func TestGetOrFetchErrorFansOutAndCachesNothing(t *testing.T) {
	boom := errors.New("remote unavailable")
	const waiters = 10

	var fetches atomic.Int64
	release := make(chan struct{})
	store := New(func(context.Context, models.Kind, models.ID) (*models.Entity, error) {
		fetches.Add(1)
		<-release
		return nil, boom
	})

	errs := make([]error, waiters)
	var started, done sync.WaitGroup
	started.Add(waiters)
	done.Add(waiters)
	for i := 0; i < waiters; i++ {
		go func(i int) {
			defer done.Done()
			started.Done()
			_, errs[i] = store.GetOrFetch(context.Background(), models.KindPage, "p1")
		}(i)
	}
	started.Wait()
	time.Sleep(50 * time.Millisecond)
	close(release)
	done.Wait()

	assert.EqualValues(t, 1, fetches.Load())
	for i := 0; i < waiters; i++ {
		assert.ErrorIs(t, errs[i], boom)
	}

	_, ok := store.Get(models.KindPage, "p1")
	assert.False(t, ok)

	// The failed flight is gone: the next call starts a fresh fetch.
	_, err := store.GetOrFetch(context.Background(), models.KindPage, "p1")
	assert.ErrorIs(t, err, boom)
	assert.EqualValues(t, 2, fetches.Load())
}

func TestClearDropsOnlyThatKind(t *testing.T) {
	store := New(nil)
	store.Put(models.KindPage, entityFixture(models.KindPage, "p1"))
	store.Put(models.KindPage, entityFixture(models.KindPage, "p2"))
	store.Put(models.KindUser, entityFixture(models.KindUser, "u1"))

	store.Clear(models.KindPage)

	assert.Equal(t, 0, store.Len(models.KindPage))
	assert.Equal(t, 1, store.Len(models.KindUser))
}

func TestMaxAgeTriggersRefetch(t *testing.T) {
	var fetches atomic.Int64
	store := New(func(_ context.Context, kind models.Kind, id models.ID) (*models.Entity, error) {
		fetches.Add(1)
		return entityFixture(kind, id), nil
	}, WithMaxAge(10*time.Millisecond))

	ctx := context.Background()
	_, err := store.GetOrFetch(ctx, models.KindPage, "p1")
	require.NoError(t, err)
	_, err = store.GetOrFetch(ctx, models.KindPage, "p1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, fetches.Load())

	time.Sleep(15 * time.Millisecond)
	_, err = store.GetOrFetch(ctx, models.KindPage, "p1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, fetches.Load())

	// Get ignores the age entirely.
	_, ok := store.Get(models.KindPage, "p1")
	assert.True(t, ok)
}
