package compiler

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/roach88/gildedrose/internal/inventory"
)

// ErrUnsupportedFormat is returned for files that are neither CUE nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported inventory format")

// yamlInventory mirrors the YAML file layout.
// Pointers distinguish a missing field from an explicit zero.
type yamlInventory struct {
	Label string     `yaml:"label"`
	Items []yamlItem `yaml:"items"`
}

type yamlItem struct {
	Name    *string `yaml:"name"`
	SellIn  *int    `yaml:"sell_in"`
	Quality *int    `yaml:"quality"`
}

// LoadInventory reads an inventory file, choosing the format by extension.
func LoadInventory(path string) (*Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read inventory file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".cue":
		return CompileCUE(data, path)
	case ".yaml", ".yml":
		return DecodeYAML(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// CompileCUE compiles CUE source into an Inventory.
// filename is used for error positions only.
func CompileCUE(data []byte, filename string) (*Inventory, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(filename))
	return CompileInventory(v)
}

// DecodeYAML parses YAML source into an Inventory.
// Unknown fields are rejected to catch typos like "sellin:".
func DecodeYAML(data []byte) (*Inventory, error) {
	var raw yamlInventory
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &CompileError{Field: "items", Message: "items is required"}
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if raw.Items == nil {
		return nil, &CompileError{Field: "items", Message: "items is required"}
	}

	inv := &Inventory{Label: raw.Label, Items: make([]inventory.Item, 0, len(raw.Items))}
	for i, it := range raw.Items {
		field := fmt.Sprintf("items[%d]", i)
		switch {
		case it.Name == nil:
			return nil, &CompileError{Field: field + ".name", Message: "name is required"}
		case it.SellIn == nil:
			return nil, &CompileError{Field: field + ".sell_in", Message: "sell_in is required"}
		case it.Quality == nil:
			return nil, &CompileError{Field: field + ".quality", Message: "quality is required"}
		case outOfRange(*it.SellIn):
			return nil, &CompileError{Field: field + ".sell_in", Message: fmt.Sprintf("sell_in out of range: %d", *it.SellIn)}
		case outOfRange(*it.Quality):
			return nil, &CompileError{Field: field + ".quality", Message: fmt.Sprintf("quality out of range: %d", *it.Quality)}
		}
		inv.Items = append(inv.Items, inventory.NewItem(*it.Name, *it.SellIn, *it.Quality))
	}

	return inv, nil
}

func outOfRange(n int) bool {
	return n < math.MinInt32 || n > math.MaxInt32
}
