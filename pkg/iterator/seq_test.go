package iterator

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pagedFixture serves n pages of pageSize ints each, counting fetches.
type pagedFixture struct {
	pages    int
	pageSize int
	fetches  int
}

func (f *pagedFixture) fetch(_ context.Context, cursor string) ([]int, string, bool, error) {
	f.fetches++
	page := 0
	if cursor != "" {
		var err error
		page, err = strconv.Atoi(cursor)
		if err != nil {
			return nil, "", false, err
		}
	}
	items := make([]int, f.pageSize)
	for i := range items {
		items[i] = page*f.pageSize + i
	}
	next := page + 1
	return items, strconv.Itoa(next), next < f.pages, nil
}

func TestCollectExhaustsAllPages(t *testing.T) {
	f := &pagedFixture{pages: 3, pageSize: 10}
	seq := New(f.fetch)

	items, err := seq.Collect(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 30)
	assert.Equal(t, 3, f.fetches)

	// Items arrive in remote page order.
	for i, v := range items {
		assert.Equal(t, i, v)
	}
}

func TestLimitStopsMidPage(t *testing.T) {
	f := &pagedFixture{pages: 3, pageSize: 10}
	items, err := New(f.fetch).Limit(25).Collect(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 25)
	assert.Equal(t, 3, f.fetches)
}

func TestLimitWithinFirstPage(t *testing.T) {
	f := &pagedFixture{pages: 3, pageSize: 10}
	items, err := New(f.fetch).Limit(4).Collect(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 4)
	// Only the buffered first page was fetched.
	assert.Equal(t, 1, f.fetches)
}

func TestSeqDefinitionIsRestartable(t *testing.T) {
	f := &pagedFixture{pages: 2, pageSize: 5}
	seq := New(f.fetch)

	first, err := seq.Collect(context.Background())
	require.NoError(t, err)
	second, err := seq.Collect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	// Each pass fetched its own pages.
	assert.Equal(t, 4, f.fetches)
}

func TestIteratorForwardOnly(t *testing.T) {
	seq := FromSlice([]int{1, 2, 3})
	it := seq.Iterate()
	ctx := context.Background()

	v, err := it.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	it.Stop()
	_, err = it.Next(ctx)
	assert.ErrorIs(t, err, ErrDone)
}

func TestBatches(t *testing.T) {
	f := &pagedFixture{pages: 2, pageSize: 5}
	chunks, err := Batches(New(f.fetch), 4).Collect(context.Background())
	require.NoError(t, err)

	require.Len(t, chunks, 3)
	assert.Equal(t, []int{0, 1, 2, 3}, chunks[0])
	assert.Equal(t, []int{4, 5, 6, 7}, chunks[1])
	// Final chunk is short.
	assert.Equal(t, []int{8, 9}, chunks[2])
}

func TestFetchErrorEndsIteration(t *testing.T) {
	boom := errors.New("page fetch failed")
	calls := 0
	seq := New(func(_ context.Context, cursor string) ([]int, string, bool, error) {
		calls++
		if cursor != "" {
			return nil, "", false, boom
		}
		return []int{1, 2}, "next", true, nil
	})

	it := seq.Iterate()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		v, err := it.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, i+1, v)
	}

	_, err := it.Next(ctx)
	assert.ErrorIs(t, err, boom)

	// The iterator stays terminated after the failure.
	_, err = it.Next(ctx)
	assert.ErrorIs(t, err, ErrDone)
	assert.Equal(t, 2, calls)
}

func TestNextHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := FromSlice([]int{1}).Iterate().Next(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConcat(t *testing.T) {
	seq := Concat(
		FromSlice([]string{"a", "b"}),
		FromSlice([]string(nil)),
		FromSlice([]string{"c"}),
	)

	items, err := seq.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, items)

	// Concatenated definitions restart too.
	again, err := seq.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, items, again)
}

func TestForEachStopsOnCallbackError(t *testing.T) {
	stop := fmt.Errorf("enough")
	seen := 0
	err := FromSlice([]int{1, 2, 3, 4}).ForEach(context.Background(), func(int) error {
		seen++
		if seen == 2 {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 2, seen)
}
