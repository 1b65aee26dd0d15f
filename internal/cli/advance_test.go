package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/gildedrose/internal/inventory"
	"github.com/roach88/gildedrose/internal/store"
)

func TestAdvanceContinuesRecordedRun(t *testing.T) {
	dbPath := recordRun(t, "run-a", []inventory.Item{inventory.NewItem(inventory.NameAgedBrie, 1, 0)}, 1)

	out, _, err := execute(NewAdvanceCommand(testRootOptions()), "--db", dbPath, "--run", "run-a", "--days", "2")
	require.NoError(t, err)

	assert.Contains(t, out, "-------- day 1 --------\nname, sellIn, quality\nAged Brie, 0, 1\n")
	assert.Contains(t, out, "-------- day 3 --------\nname, sellIn, quality\nAged Brie, -2, 5\n")
	assert.NotContains(t, out, "-------- day 0 --------")

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	info, err := st.GetRun(context.Background(), "run-a")
	require.NoError(t, err)
	assert.Equal(t, int64(3), info.LastDay)

	snaps, err := st.ReadSnapshots(context.Background(), "run-a")
	require.NoError(t, err)
	assert.Len(t, snaps, 4)
}

func TestAdvanceThenReplayIsDeterministic(t *testing.T) {
	dbPath := recordRun(t, "run-a", []inventory.Item{
		inventory.NewItem(inventory.NameBackstagePass, 6, 20),
		inventory.NewItem("Foo", 2, 3),
	}, 2)

	_, _, err := execute(NewAdvanceCommand(testRootOptions()), "--db", dbPath, "--run", "run-a", "--days", "4")
	require.NoError(t, err)

	out, _, err := execute(NewReplayCommand(testRootOptions()), "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "6 days")
	assert.Contains(t, out, "✓ All runs verified deterministic")
}

func TestAdvanceErrors(t *testing.T) {
	dbPath := recordRun(t, "run-a", []inventory.Item{inventory.NewItem("Foo", 1, 1)}, 0)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"missing run flag", []string{"--db", dbPath}, "required flag"},
		{"missing db", []string{"--run", "run-a"}, "--db is required"},
		{"unknown run", []string{"--db", dbPath, "--run", "nope"}, "E201: run nope"},
		{"negative days", []string{"--db", dbPath, "--run", "run-a", "--days", "-2"}, "--days must be non-negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(NewAdvanceCommand(testRootOptions()), tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
