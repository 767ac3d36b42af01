package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-api/model"
)

func newTestCache(t *testing.T) (*BorrowedCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewWithClient(rdb), mr
}

func TestGetMissesWhenEmpty(t *testing.T) {
	c, _ := newTestCache(t)

	items, ok, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, items)
}

func TestSetGetRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	want := []model.BorrowedBook{
		{ID: 1, BookID: 2, ReaderID: 3, BorrowDate: time.Now().Truncate(time.Second)},
	}
	require.NoError(t, c.Set(ctx, want))

	got, ok, err := c.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, want[0].ID, got[0].ID)
	assert.Nil(t, got[0].ReturnDate)
}

func TestInvalidateEvicts(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, []model.BorrowedBook{{ID: 1}}))
	require.NoError(t, c.Invalidate(ctx))

	_, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSnapshotExpires(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, []model.BorrowedBook{{ID: 1}}))

	mr.FastForward(599 * time.Second)
	_, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.True(t, ok, "snapshot must live for the full TTL")

	mr.FastForward(2 * time.Second)
	_, ok, err = c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "snapshot must expire after 600 seconds")
}
