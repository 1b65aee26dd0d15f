package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"cuelang.org/go/cue/token"

	"github.com/roach88/gildedrose/internal/compiler"
)

// LoadError represents an error that occurred while loading an inventory file.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsCommandError reports whether the error is about the command's input
// (missing or unreadable file) rather than about the inventory it contains.
func (e *LoadError) IsCommandError() bool {
	return e.Code == ErrCodeNotFound || e.Code == ErrCodeUnsupported
}

// LoadInventory reads and compiles an inventory file.
// All failures are returned as *LoadError.
func LoadInventory(path string) (*compiler.Inventory, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("inventory file not found: %s", path)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing inventory file: %v", err)}
	}
	if info.IsDir() {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a file: %s", path)}
	}

	inv, err := compiler.LoadInventory(path)
	if err != nil {
		return nil, convertCompileError(err, path)
	}
	return inv, nil
}

// convertCompileError converts a compiler error to a LoadError with position info.
func convertCompileError(err error, path string) *LoadError {
	if errors.Is(err, compiler.ErrUnsupportedFormat) {
		return &LoadError{
			Code:    ErrCodeUnsupported,
			Message: fmt.Sprintf("unsupported inventory format: %s (want .cue, .yaml or .yml)", path),
		}
	}

	var compileErr *compiler.CompileError
	if errors.As(err, &compileErr) {
		return &LoadError{
			Code:    MapFieldToErrorCode(compileErr.Field),
			Message: fmt.Sprintf("%s: %s", compileErr.Field, compileErr.Message),
			Pos:     compileErr.Pos,
		}
	}
	return &LoadError{
		Code:    ErrCodeLoadFailed,
		Message: fmt.Sprintf("%s: %v", path, err),
	}
}

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeLoadFailed  = "E004" // Inventory could not be parsed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeUnsupported = "E008" // Unknown file extension

	// Inventory content errors
	ErrCodeItemsMissing = "E101" // No items list
	ErrCodeItemInvalid  = "E102" // Item field missing or mistyped

	// Stored run errors
	ErrCodeRunNotFound = "E201" // Run token not in database
	ErrCodeSimulation  = "E202" // Simulation failed or was interrupted
)

// MapFieldToErrorCode maps a compile error field to an error code.
func MapFieldToErrorCode(field string) string {
	switch field {
	case "", "cue":
		return ErrCodeLoadFailed
	case "items":
		return ErrCodeItemsMissing
	default:
		return ErrCodeItemInvalid
	}
}
