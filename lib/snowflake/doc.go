// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package snowflake provides opaque 64-bit identifiers scoped by the
// kind of resource they reference.
//
// An [ID] is an immutable value type parameterised by a marker
// ([UserMarker], [ChannelMarker], [RoleMarker], [AttachmentMarker], or
// [GenericMarker]). The marker exists purely for compile-time safety:
// a channel ID cannot be passed where a user ID is expected. Converting
// between markers with [Cast] or [ID.Generic] never fails, because the
// underlying value is the same 64-bit handle regardless of scope.
//
// The canonical serialization form is the decimal text of the value
// (e.g., "123456789012345678"). JSON and CBOR marshaling use this form
// via encoding.TextMarshaler. Parsing is strict: only canonical text is
// accepted (ASCII digits, no sign, no leading zero, non-zero, fits in
// 64 bits), so parse-then-render always reproduces the input exactly.
//
// The zero value is not a valid ID; use IsZero to check.
package snowflake
