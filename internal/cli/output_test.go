package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputFormatter_JSON(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, f.Success(ValidationResult{Valid: true, Items: 9}))

	var ok struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &ok))
	assert.Equal(t, "ok", ok.Status)
	assert.Equal(t, 9, ok.Data.Items)

	buf.Reset()
	details := map[string]interface{}{"file": "inv.cue", "line": 3}
	require.NoError(t, f.Error(ErrCodeItemInvalid, "items[0].quality: quality is required", details))

	var failed CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &failed))
	assert.Equal(t, "error", failed.Status)
	require.NotNil(t, failed.Error)
	assert.Equal(t, ErrCodeItemInvalid, failed.Error.Code)
	assert.Equal(t, "items[0].quality: quality is required", failed.Error.Message)
	assert.NotNil(t, failed.Error.Details)
}

func TestOutputFormatter_TextError(t *testing.T) {
	tests := []struct {
		name        string
		verbose     bool
		wantDetails bool
	}{
		{"quiet", false, false},
		{"verbose", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			f := &OutputFormatter{Format: "text", Writer: buf, Verbose: tt.verbose}

			require.NoError(t, f.Error(ErrCodeNotFound, "inventory file not found: inv.yaml", map[string]string{"file": "inv.yaml"}))
			assert.Contains(t, buf.String(), "Error [E005]: inventory file not found: inv.yaml")
			if tt.wantDetails {
				assert.Contains(t, buf.String(), "Details:")
			} else {
				assert.NotContains(t, buf.String(), "Details:")
			}
		})
	}
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	f := &OutputFormatter{Format: "json", Writer: out, ErrWriter: errOut, Verbose: true}
	f.VerboseLog("Loaded %d item(s) from %s", 3, "inv.yaml")
	assert.Empty(t, out.String())
	assert.Equal(t, "Loaded 3 item(s) from inv.yaml\n", errOut.String())

	// Without ErrWriter, logs fall back to Writer.
	out.Reset()
	f = &OutputFormatter{Format: "text", Writer: out, Verbose: true}
	f.VerboseLog("day %d", 1)
	assert.Equal(t, "day 1\n", out.String())

	out.Reset()
	f.Verbose = false
	f.VerboseLog("day %d", 2)
	assert.Empty(t, out.String())
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "bad path")))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))

	wrapped := fmt.Errorf("outer: %w", WrapExitError(ExitCommandError, "inner", io.EOF))
	assert.Equal(t, ExitCommandError, GetExitCode(wrapped))
	assert.ErrorIs(t, wrapped, io.EOF)
	assert.Equal(t, "outer: inner: EOF", wrapped.Error())
}
