package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/gildedrose/internal/inventory"
)

func TestListRuns_CreationOrder(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	runs, err := s.ListRuns(ctx)
	require.NoError(t, err)
	assert.NotNil(t, runs)
	assert.Empty(t, runs)

	recordDays(t, s, "zeta", 1)
	recordDays(t, s, "alpha", 3)

	runs, err = s.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "zeta", runs[0].Token)
	assert.Equal(t, int64(1), runs[0].LastDay)
	assert.Equal(t, "alpha", runs[1].Token)
	assert.Equal(t, "label-alpha", runs[1].Label)
	assert.Equal(t, 3, runs[1].ItemCount)
	assert.Equal(t, int64(3), runs[1].LastDay)
}

func TestGetRun_NotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.GetRun(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestReadSnapshots_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	want := recordDays(t, s, "run-1", 3)
	recordDays(t, s, "run-2", 1)

	got, err := s.ReadSnapshots(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestReadSnapshots_UnknownRun(t *testing.T) {
	s := openTestStore(t)

	_, err := s.ReadSnapshots(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestReadDay(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	want := recordDays(t, s, "run-1", 2)

	got, err := s.ReadDay(ctx, "run-1", 2)
	require.NoError(t, err)
	assert.Equal(t, want[2], got)

	_, err = s.ReadDay(ctx, "run-1", 9)
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestItemHistory(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	recordDays(t, s, "run-1", 2)

	brie, err := s.ItemHistory(ctx, "run-1", inventory.NameAgedBrie)
	require.NoError(t, err)
	require.Len(t, brie, 3)
	assert.Equal(t, HistoryEntry{Day: 0, Position: 1, Name: inventory.NameAgedBrie, SellIn: 2, Quality: 0}, brie[0])
	assert.Equal(t, HistoryEntry{Day: 1, Position: 1, Name: inventory.NameAgedBrie, SellIn: 1, Quality: 1}, brie[1])
	assert.Equal(t, HistoryEntry{Day: 2, Position: 1, Name: inventory.NameAgedBrie, SellIn: 0, Quality: 2}, brie[2])

	all, err := s.ItemHistory(ctx, "run-1", "")
	require.NoError(t, err)
	assert.Len(t, all, 9)
	assert.Equal(t, 0, all[0].Position)
	assert.Equal(t, 2, all[8].Position)

	none, err := s.ItemHistory(ctx, "run-1", "Unknown")
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = s.ItemHistory(ctx, "nope", "")
	assert.ErrorIs(t, err, ErrRunNotFound)
}
