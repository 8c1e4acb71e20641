// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package option

import "fmt"

// MissingFieldError reports a required field absent from the wire.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field %q", e.Field)
}

// DuplicateFieldError reports a known field that appears more than
// once in the same option map.
type DuplicateFieldError struct {
	Field string
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("duplicate field %q", e.Field)
}

// InvalidTypeError reports a field whose value has the wrong shape for
// where it appears. Callers can use errors.As to inspect it:
//
//	var invalid *option.InvalidTypeError
//	if errors.As(err, &invalid) && invalid.Field == "value" { ... }
type InvalidTypeError struct {
	// Field is the wire field being read ("name", "type", "value",
	// "options", "focused"), or empty for the option map itself.
	Field string
	// Expected describes what was required, e.g. "channel id".
	Expected string
	// Actual describes what was found, e.g. `string "abc"`.
	Actual string
}

func (e *InvalidTypeError) Error() string {
	return fmt.Sprintf("invalid type: %s, expected %s", e.Actual, e.Expected)
}

// UnrecognizedTypeError reports a "type" discriminant outside the
// known set.
type UnrecognizedTypeError struct {
	Value int64
}

func (e *UnrecognizedTypeError) Error() string {
	return fmt.Sprintf("unrecognized option type %d", e.Value)
}
