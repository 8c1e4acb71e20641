// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"errors"
	"fmt"
)

// ErrSizeMismatch is returned when a container receives a different
// number of entries than was declared when it was opened.
var ErrSizeMismatch = errors.New("declared container size does not match entries written")

// ErrInvalidUTF8 is returned by writers for a key or string that is
// not valid UTF-8. Both formats require it, and writing it anyway
// would substitute U+FFFD in JSON.
var ErrInvalidUTF8 = errors.New("text is not valid UTF-8")

// SyntaxError reports input that is not well-formed in its format.
// Callers can use errors.As to distinguish malformed bytes from
// semantic decode failures:
//
//	var syntaxErr *wire.SyntaxError
//	if errors.As(err, &syntaxErr) { ... }
type SyntaxError struct {
	// Format is the wire format being parsed.
	Format Format
	// Err is the underlying cause.
	Err error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s syntax: %v", e.Format, e.Err)
}

func (e *SyntaxError) Unwrap() error { return e.Err }
