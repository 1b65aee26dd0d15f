package compiler

import (
	"fmt"
	"math"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/gildedrose/internal/inventory"
)

// Inventory is the parsed content of an inventory file.
type Inventory struct {
	Label string
	Items []inventory.Item
}

// CompileInventory parses a CUE value into an Inventory.
// Uses the CUE SDK's Go API directly.
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`items: [{name: "Foo", sell_in: 1, quality: 2}]`)
//	inv, err := CompileInventory(v)
func CompileInventory(v cue.Value) (*Inventory, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	inv := &Inventory{}

	labelVal := v.LookupPath(cue.ParsePath("label"))
	if labelVal.Exists() {
		label, err := labelVal.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		inv.Label = label
	}

	itemsVal := v.LookupPath(cue.ParsePath("items"))
	if !itemsVal.Exists() {
		return nil, &CompileError{
			Field:   "items",
			Message: "items is required",
			Pos:     v.Pos(),
		}
	}

	iter, err := itemsVal.List()
	if err != nil {
		return nil, &CompileError{
			Field:   "items",
			Message: "items must be a list",
			Pos:     itemsVal.Pos(),
		}
	}

	inv.Items = []inventory.Item{}
	for i := 0; iter.Next(); i++ {
		item, err := compileItem(iter.Value(), fmt.Sprintf("items[%d]", i))
		if err != nil {
			return nil, err
		}
		inv.Items = append(inv.Items, item)
	}

	return inv, nil
}

func compileItem(v cue.Value, field string) (inventory.Item, error) {
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return inventory.Item{}, formatCUEError(err)
	}

	nameVal := v.LookupPath(cue.ParsePath("name"))
	if !nameVal.Exists() {
		return inventory.Item{}, &CompileError{Field: field + ".name", Message: "name is required", Pos: v.Pos()}
	}
	name, err := nameVal.String()
	if err != nil {
		return inventory.Item{}, &CompileError{Field: field + ".name", Message: "name must be a string", Pos: nameVal.Pos()}
	}

	sellIn, err := compileInt(v, field, "sell_in")
	if err != nil {
		return inventory.Item{}, err
	}
	quality, err := compileInt(v, field, "quality")
	if err != nil {
		return inventory.Item{}, err
	}

	return inventory.NewItem(name, sellIn, quality), nil
}

func compileInt(v cue.Value, field, key string) (int, error) {
	val := v.LookupPath(cue.ParsePath(key))
	if !val.Exists() {
		return 0, &CompileError{Field: field + "." + key, Message: key + " is required", Pos: v.Pos()}
	}
	n, err := val.Int64()
	if err != nil {
		return 0, &CompileError{Field: field + "." + key, Message: key + " must be an integer", Pos: val.Pos()}
	}
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, &CompileError{Field: field + "." + key, Message: fmt.Sprintf("%s out of range: %d", key, n), Pos: val.Pos()}
	}
	return int(n), nil
}

// CompileError represents a compilation error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	if positions := errors.Positions(first); len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: first.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
