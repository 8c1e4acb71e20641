// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"fmt"
	"strconv"
)

// Kind is the structural shape of a [Node].
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	// KindInteger is an integer that fits in int64. Integers outside
	// that range are read as KindFloat.
	KindInteger
	KindFloat
	KindString
	KindBytes
	KindArray
	KindMap
	// KindOther covers CBOR items with no JSON counterpart: tags,
	// undefined, and simple values.
	KindOther
)

// String returns the kind name used in diagnostics.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	case KindOther:
		return "other"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// IsScalar reports whether the kind holds a single boolean, number, or
// text value.
func (k Kind) IsScalar() bool {
	switch k {
	case KindBool, KindInteger, KindFloat, KindString:
		return true
	default:
		return false
	}
}

// Node is one parsed wire value. Only the fields matching Kind are
// meaningful.
type Node struct {
	Kind   Kind
	Bool   bool
	Int    int64
	Float  float64
	Text   string
	Bytes  []byte
	Items  []Node
	Fields []Field
}

// Field is one map entry. Key order and duplicates follow the wire.
type Field struct {
	Key   string
	Value Node
}

// Depth returns the container nesting depth of the node: 0 for
// scalars, 1 for a flat map or array, and so on.
func (n Node) Depth() int {
	deepest := 0
	switch n.Kind {
	case KindArray:
		for _, item := range n.Items {
			deepest = max(deepest, item.Depth())
		}
	case KindMap:
		for _, field := range n.Fields {
			deepest = max(deepest, field.Value.Depth())
		}
	default:
		return 0
	}
	return deepest + 1
}

// Describe returns a short human-readable description of the node's
// shape and, for scalars, its value. Used in type-mismatch errors.
func (n Node) Describe() string {
	switch n.Kind {
	case KindNull:
		return "null"
	case KindBool:
		return fmt.Sprintf("boolean `%t`", n.Bool)
	case KindInteger:
		return fmt.Sprintf("integer `%d`", n.Int)
	case KindFloat:
		return fmt.Sprintf("floating point `%s`", strconv.FormatFloat(n.Float, 'g', -1, 64))
	case KindString:
		return "string " + strconv.Quote(n.Text)
	case KindBytes:
		return "byte array"
	case KindArray:
		return "sequence"
	case KindMap:
		return "map"
	default:
		return "unsupported CBOR item"
	}
}
