// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package snowflake

import (
	"fmt"
	"strconv"
)

// maxDigits is the length of math.MaxUint64 in decimal.
const maxDigits = 20

// Marker constrains the resource kinds an [ID] can be scoped to.
type Marker interface {
	GenericMarker | AttachmentMarker | ChannelMarker | RoleMarker | UserMarker
	kind() string
}

// GenericMarker scopes an ID whose resource kind is not known, such as
// the target of a mentionable option (a user or a role).
type GenericMarker struct{}

// AttachmentMarker scopes an ID referencing an uploaded attachment.
type AttachmentMarker struct{}

// ChannelMarker scopes an ID referencing a channel.
type ChannelMarker struct{}

// RoleMarker scopes an ID referencing a role.
type RoleMarker struct{}

// UserMarker scopes an ID referencing a user.
type UserMarker struct{}

func (GenericMarker) kind() string    { return "generic" }
func (AttachmentMarker) kind() string { return "attachment" }
func (ChannelMarker) kind() string    { return "channel" }
func (RoleMarker) kind() string       { return "role" }
func (UserMarker) kind() string       { return "user" }

// ID is a non-zero 64-bit identifier scoped to the resource kind M.
type ID[M Marker] struct {
	value uint64
}

// New wraps a raw 64-bit value. Returns an error if value is zero.
func New[M Marker](value uint64) (ID[M], error) {
	if value == 0 {
		var marker M
		return ID[M]{}, fmt.Errorf("%s ID must be non-zero", marker.kind())
	}
	return ID[M]{value: value}, nil
}

// MustNew is like New but panics on error. Use in tests and static
// initialization where the input is known-valid.
func MustNew[M Marker](value uint64) ID[M] {
	id, err := New[M](value)
	if err != nil {
		panic(fmt.Sprintf("snowflake.MustNew(%d): %v", value, err))
	}
	return id
}

// Parse validates canonical decimal text and wraps it as an ID.
// Returns an error for empty input, non-digit characters, a sign, a
// leading zero, zero itself, or a value that overflows 64 bits.
func Parse[M Marker](raw string) (ID[M], error) {
	var marker M
	if raw == "" {
		return ID[M]{}, fmt.Errorf("empty %s ID", marker.kind())
	}
	if len(raw) > maxDigits {
		return ID[M]{}, fmt.Errorf("%s ID %q exceeds %d digits", marker.kind(), raw, maxDigits)
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return ID[M]{}, fmt.Errorf("%s ID %q: invalid character %q at position %d", marker.kind(), raw, raw[i], i)
		}
	}
	if raw[0] == '0' {
		return ID[M]{}, fmt.Errorf("%s ID %q must not start with 0", marker.kind(), raw)
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return ID[M]{}, fmt.Errorf("%s ID %q overflows 64 bits", marker.kind(), raw)
	}
	return ID[M]{value: value}, nil
}

// MustParse is like Parse but panics on error.
func MustParse[M Marker](raw string) ID[M] {
	id, err := Parse[M](raw)
	if err != nil {
		panic(fmt.Sprintf("snowflake.MustParse(%q): %v", raw, err))
	}
	return id
}

// IsCanonical reports whether raw is the canonical decimal text of a
// valid ID. Equivalent to Parse succeeding, without the error value.
func IsCanonical(raw string) bool {
	_, err := Parse[GenericMarker](raw)
	return err == nil
}

// Cast converts an ID between resource scopes. The value is unchanged.
func Cast[To, From Marker](id ID[From]) ID[To] {
	return ID[To]{value: id.value}
}

// Generic widens the ID to the unscoped marker.
func (id ID[M]) Generic() ID[GenericMarker] {
	return ID[GenericMarker]{value: id.value}
}

// Get returns the raw 64-bit value.
func (id ID[M]) Get() uint64 { return id.value }

// Kind returns the name of the resource scope (e.g., "channel").
func (id ID[M]) Kind() string {
	var marker M
	return marker.kind()
}

// String returns the canonical decimal text.
func (id ID[M]) String() string {
	return strconv.FormatUint(id.value, 10)
}

// IsZero reports whether the ID is the zero value (uninitialized).
func (id ID[M]) IsZero() bool { return id.value == 0 }

// MarshalText implements encoding.TextMarshaler. The zero ID marshals
// to empty text.
func (id ID[M]) MarshalText() ([]byte, error) {
	if id.value == 0 {
		return nil, nil
	}
	return strconv.AppendUint(nil, id.value, 10), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Empty input
// produces the zero value.
func (id *ID[M]) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*id = ID[M]{}
		return nil
	}
	parsed, err := Parse[M](string(data))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
