package compiler

import (
	"os"
	"path/filepath"
	"testing"

	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/gildedrose/internal/inventory"
	"github.com/roach88/gildedrose/internal/testutil"
)

func TestCompileInventoryBasic(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
		label: "shop"
		items: [
			{name: "Aged Brie", sell_in: 2, quality: 0},
			{name: "Foo", sell_in: -3, quality: 60},
		]
	`)
	require.NoError(t, v.Err())

	inv, err := CompileInventory(v)
	require.NoError(t, err)

	assert.Equal(t, "shop", inv.Label)
	require.Len(t, inv.Items, 2)
	assert.Equal(t, inventory.NewItem(inventory.NameAgedBrie, 2, 0), inv.Items[0])
	assert.Equal(t, inventory.Aged, inv.Items[0].Category())
	assert.Equal(t, 60, inv.Items[1].Quality, "out-of-range quality is kept as-is")
}

func TestCompileInventory_EmptyList(t *testing.T) {
	v := cuecontext.New().CompileString(`items: []`)

	inv, err := CompileInventory(v)
	require.NoError(t, err)
	assert.NotNil(t, inv.Items)
	assert.Empty(t, inv.Items)
	assert.Equal(t, "", inv.Label)
}

func TestCompileInventory_Errors(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		wantField string
	}{
		{"missing items", `label: "x"`, "items"},
		{"items not a list", `items: {a: 1}`, "items"},
		{"missing name", `items: [{sell_in: 1, quality: 1}]`, "items[0].name"},
		{"name not string", `items: [{name: 3, sell_in: 1, quality: 1}]`, "items[0].name"},
		{"missing sell_in", `items: [{name: "Foo", quality: 1}]`, "items[0].sell_in"},
		{"sell_in not int", `items: [{name: "Foo", sell_in: "soon", quality: 1}]`, "items[0].sell_in"},
		{"missing quality", `items: [{name: "A", sell_in: 1, quality: 1}, {name: "B", sell_in: 1}]`, "items[1].quality"},
		{"quality float", `items: [{name: "Foo", sell_in: 1, quality: 1.5}]`, "items[0].quality"},
		{"quality huge", `items: [{name: "Foo", sell_in: 1, quality: 99999999999}]`, "items[0].quality"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := cuecontext.New().CompileString(tt.src)
			_, err := CompileInventory(v)
			require.Error(t, err)

			var ce *CompileError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.wantField, ce.Field)
		})
	}
}

func TestCompileInventory_SyntaxErrorHasPosition(t *testing.T) {
	_, err := CompileCUE([]byte("items: [\n  {name: \"Foo\",,}\n]"), "broken.cue")
	require.Error(t, err)

	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.True(t, ce.Pos.IsValid())
	assert.Contains(t, err.Error(), "broken.cue")
}

func TestCompileError_Format(t *testing.T) {
	err := &CompileError{Field: "items", Message: "items is required"}
	assert.Equal(t, "items: items is required", err.Error())
}

func TestLoadInventory_Fixtures(t *testing.T) {
	for _, file := range []string{"texttest.cue", "texttest.yaml"} {
		t.Run(file, func(t *testing.T) {
			inv, err := LoadInventory(filepath.Join("testdata", file))
			require.NoError(t, err)
			assert.Equal(t, "texttest", inv.Label)
			assert.Equal(t, testutil.TexttestItems(), inv.Items)
		})
	}
}

func TestLoadInventory_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0644))

	_, err := LoadInventory(path)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadInventory_MissingFile(t *testing.T) {
	_, err := LoadInventory(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDecodeYAML(t *testing.T) {
	inv, err := DecodeYAML([]byte(`
items:
  - name: Foo
    sell_in: 0
    quality: 0
`))
	require.NoError(t, err)
	assert.Equal(t, []inventory.Item{inventory.NewItem("Foo", 0, 0)}, inv.Items)
}

func TestDecodeYAML_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty document", ``},
		{"no items key", `label: x`},
		{"unknown field", "items:\n  - {name: Foo, sellin: 1, quality: 1}"},
		{"missing name", "items:\n  - {sell_in: 1, quality: 1}"},
		{"missing sell_in", "items:\n  - {name: Foo, quality: 1}"},
		{"missing quality", "items:\n  - {name: Foo, sell_in: 1}"},
		{"bad int", "items:\n  - {name: Foo, sell_in: soon, quality: 1}"},
		{"quality beyond int32", "items:\n  - {name: Foo, sell_in: 1, quality: 3000000000}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeYAML([]byte(tt.src))
			assert.Error(t, err)
		})
	}
}
