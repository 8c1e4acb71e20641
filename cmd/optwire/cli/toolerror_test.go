// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"
)

func TestToolErrorUnwrap(t *testing.T) {
	inner := fs.ErrNotExist
	err := fmt.Errorf("replay: %w", &ToolError{Category: CategoryNotFound, Err: inner})

	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("errors.Is should see through ToolError")
	}
	var toolErr *ToolError
	if !errors.As(err, &toolErr) || toolErr.Category != CategoryNotFound {
		t.Errorf("errors.As = %v, want not_found ToolError", toolErr)
	}
	if err.Error() != "replay: file does not exist" {
		t.Errorf("Error() = %q, category should not appear in the message", err.Error())
	}
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation("bad input %d", 1), 2},
		{"wrapped validation", fmt.Errorf("decode: %w", Validation("bad")), 2},
		{"not found", NotFound("no such capture"), 3},
		{"internal", Internal("write: broken pipe"), 1},
		{"plain error", errors.New("plain"), 1},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := StatusCode(test.err); got != test.want {
				t.Errorf("StatusCode(%v) = %d, want %d", test.err, got, test.want)
			}
		})
	}
}

func TestExitError(t *testing.T) {
	var err error = &ExitError{Code: 1}
	coder, ok := err.(interface{ ExitCode() int })
	if !ok || coder.ExitCode() != 1 {
		t.Errorf("ExitError does not report its code")
	}
}

func TestWriteJSONNormalizesNilSlices(t *testing.T) {
	var buffer bytes.Buffer
	var failures []string
	if err := WriteJSON(&buffer, failures); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if got := strings.TrimSpace(buffer.String()); got != "[]" {
		t.Errorf("WriteJSON(nil slice) = %q, want []", got)
	}
}

func TestNewLoggerUsesJSONWhenPiped(t *testing.T) {
	var buffer bytes.Buffer
	logger := NewLogger(&buffer, 0)
	logger.Info("replayed", "records", 3)

	if !strings.HasPrefix(buffer.String(), "{") || !strings.Contains(buffer.String(), `"records":3`) {
		t.Errorf("expected JSON log line, got %q", buffer.String())
	}
}
