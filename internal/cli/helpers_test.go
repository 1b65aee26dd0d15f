package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/roach88/gildedrose/internal/engine"
	"github.com/roach88/gildedrose/internal/inventory"
	"github.com/roach88/gildedrose/internal/store"
)

var _ engine.Recorder = (*store.Store)(nil)

const brieInventory = `label: shop
items:
  - {name: "Aged Brie", sell_in: 1, quality: 0}
  - {name: "Foo", sell_in: 0, quality: 2}
  - {name: "Sulfuras, Hand of Ragnaros", sell_in: -1, quality: 80}
`

// writeFile writes content to name inside a fresh temp directory.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// execute runs cmd with args and returns stdout, stderr and the error.
func execute(cmd *cobra.Command, args ...string) (string, string, error) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

// executeContext is execute with a caller-supplied context.
func executeContext(ctx context.Context, cmd *cobra.Command, args ...string) (string, string, error) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	return out.String(), errOut.String(), err
}

// recordRun simulates items into a database file and returns its path.
func recordRun(t *testing.T, token string, items []inventory.Item, days int) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	sim := engine.New(engine.NewFixedGenerator(token), engine.WithRecorder(st))
	_, err = sim.Simulate(context.Background(), "recorded", items, days)
	require.NoError(t, err)

	return dbPath
}

func testRootOptions() *RootOptions {
	return &RootOptions{Format: "text"}
}
