package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/gildedrose/internal/compiler"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	Strict bool // treat warnings as failures
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid    bool               `json:"valid"`
	Label    string             `json:"label,omitempty"`
	Items    int                `json:"items"`
	Warnings []compiler.Warning `json:"warnings,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <inventory-file>",
		Short: "Check an inventory file without simulating it",
		Long: `Parse an inventory file and report problems.

Structural errors (missing fields, wrong types) fail validation. Suspicious
but legal data, such as quality above 50, is reported as a warning; the
inventory is never modified. Use --strict to fail on warnings too.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "treat warnings as failures")

	return cmd
}

func runValidate(opts *ValidateOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	inv, err := LoadInventory(path)
	if err != nil {
		var loadErr *LoadError
		if !errors.As(err, &loadErr) {
			return outputValidateError(formatter, ErrCodeGeneric, err.Error(), ExitCommandError)
		}
		if loadErr.IsCommandError() {
			return outputValidateError(formatter, loadErr.Code, loadErr.Message, ExitCommandError)
		}
		return outputValidationFailure(formatter, loadErr)
	}

	formatter.VerboseLog("Loaded %d item(s) from %s", len(inv.Items), path)

	result := ValidationResult{
		Valid:    true,
		Label:    inv.Label,
		Items:    len(inv.Items),
		Warnings: compiler.Inspect(inv.Items),
	}
	if opts.Strict && len(result.Warnings) > 0 {
		result.Valid = false
	}

	return outputValidateResult(formatter, result)
}

// outputValidateResult outputs a parsed inventory and its warnings.
func outputValidateResult(formatter *OutputFormatter, result ValidationResult) error {
	if formatter.Format == "json" {
		if result.Valid {
			return formatter.Success(result)
		}
		if err := json.NewEncoder(formatter.Writer).Encode(CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    result.Warnings[0].Code,
				Message: result.Warnings[0].Message,
			},
		}); err != nil {
			return err
		}
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d warning(s)", len(result.Warnings)))
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(formatter.Writer, "⚠ %s\n", w)
	}

	if !result.Valid {
		fmt.Fprintln(formatter.Writer, "✗ Validation failed (strict)")
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d warning(s)", len(result.Warnings)))
	}

	fmt.Fprintf(formatter.Writer, "✓ Inventory valid (%d items)\n", result.Items)
	return nil
}

// outputValidateError outputs a command-level error such as a missing file.
func outputValidateError(formatter *OutputFormatter, code, message string, exitCode int) error {
	_ = formatter.Error(code, message, nil)
	return NewExitError(exitCode, fmt.Sprintf("%s: %s", code, message))
}

// outputValidationFailure outputs an inventory content error.
func outputValidationFailure(formatter *OutputFormatter, loadErr *LoadError) error {
	if formatter.Format == "json" {
		var details interface{}
		if loadErr.Pos.IsValid() {
			details = map[string]interface{}{
				"file":   loadErr.Pos.Filename(),
				"line":   loadErr.Pos.Line(),
				"column": loadErr.Pos.Column(),
			}
		}
		_ = formatter.Error(loadErr.Code, loadErr.Message, details)
		return NewExitError(ExitFailure, "validation failed")
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)
	if loadErr.Pos.IsValid() {
		fmt.Fprintf(formatter.Writer, "line %d\n", loadErr.Pos.Line())
	}
	fmt.Fprintf(formatter.Writer, "  %s: %s\n", loadErr.Code, loadErr.Message)

	return NewExitError(ExitFailure, "validation failed")
}
