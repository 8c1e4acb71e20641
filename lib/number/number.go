// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package number provides the floating-point value carried by numeric
// command options.
//
// [Number] wraps a float64 with value equality defined on the bit
// pattern: NaN equals NaN, and 0.0 differs from -0.0. This makes Number
// usable as a map key and keeps equality reflexive, which plain float64
// comparison is not.
//
// Every NaN is stored as the single quiet NaN that CBOR's f97e00
// decodes to. NaN payloads do not survive deterministic CBOR encoding,
// so keeping them would make a NaN unequal to its own round trip.
package number

import (
	"math"
	"strconv"
)

// Number is an immutable float64 with bitwise equality.
type Number struct {
	value float64
}

// canonicalNaN is 0x7ff8000000000000. math.NaN sets a payload bit and
// is not it.
var canonicalNaN = math.Float64frombits(0x7ff8000000000000)

// New wraps f. Any NaN becomes the canonical quiet NaN.
func New(f float64) Number {
	if math.IsNaN(f) {
		f = canonicalNaN
	}
	return Number{value: f}
}

// FromInt widens an integer. Every integer the option wire format
// carries as a number is within ±2^53 in practice; larger magnitudes
// round to the nearest representable float64.
func FromInt(i int64) Number { return Number{value: float64(i)} }

// Float64 returns the wrapped value.
func (n Number) Float64() float64 { return n.value }

// IsFinite reports whether the value is neither infinite nor NaN.
// Non-finite numbers have no JSON representation.
func (n Number) IsFinite() bool {
	return !math.IsInf(n.value, 0) && !math.IsNaN(n.value)
}

// Equal reports whether n and other have the same bit pattern.
func (n Number) Equal(other Number) bool {
	return math.Float64bits(n.value) == math.Float64bits(other.value)
}

// String returns the shortest decimal representation that round-trips.
func (n Number) String() string {
	return strconv.FormatFloat(n.value, 'g', -1, 64)
}
