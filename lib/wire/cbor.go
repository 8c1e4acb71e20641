// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/bureau-foundation/optwire/lib/codec"
)

// CBOR major types for containers (RFC 8949 §3.1). Every other major
// type is decoded as a scalar by lib/codec.
const (
	majorArray = 4
	majorMap   = 5
)

const (
	infoIndefinite = 31
	breakByte      = 0xff
)

// ParseCBOR reads exactly one CBOR data item. Map entries are returned
// in encoded order with duplicates preserved; map keys must be text
// strings. Definite and indefinite-length containers are both accepted.
func ParseCBOR(data []byte) (Node, error) {
	if err := codec.Wellformed(data); err != nil {
		return Node{}, &SyntaxError{Format: FormatCBOR, Err: err}
	}
	node, _, err := readCBORItem(data)
	return node, err
}

func readCBORItem(data []byte) (Node, []byte, error) {
	if len(data) == 0 {
		return Node{}, nil, cborSyntax("unexpected end of input")
	}

	switch data[0] >> 5 {
	case majorArray:
		return readCBORArray(data)
	case majorMap:
		return readCBORMap(data)
	}

	var value any
	rest, err := codec.UnmarshalFirst(data, &value)
	if err != nil {
		return Node{}, nil, &SyntaxError{Format: FormatCBOR, Err: err}
	}
	return scalarNode(value), rest, nil
}

func readCBORArray(data []byte) (Node, []byte, error) {
	count, indefinite, rest, err := readHead(data)
	if err != nil {
		return Node{}, nil, err
	}

	node := Node{Kind: KindArray, Items: make([]Node, 0, capacityHint(count, rest))}
	for index := uint64(0); indefinite || index < count; index++ {
		if indefinite {
			if len(rest) == 0 {
				return Node{}, nil, cborSyntax("unterminated indefinite-length array")
			}
			if rest[0] == breakByte {
				return node, rest[1:], nil
			}
		}
		var item Node
		item, rest, err = readCBORItem(rest)
		if err != nil {
			return Node{}, nil, err
		}
		node.Items = append(node.Items, item)
	}
	return node, rest, nil
}

func readCBORMap(data []byte) (Node, []byte, error) {
	count, indefinite, rest, err := readHead(data)
	if err != nil {
		return Node{}, nil, err
	}

	node := Node{Kind: KindMap, Fields: make([]Field, 0, capacityHint(count, rest))}
	for index := uint64(0); indefinite || index < count; index++ {
		if indefinite {
			if len(rest) == 0 {
				return Node{}, nil, cborSyntax("unterminated indefinite-length map")
			}
			if rest[0] == breakByte {
				return node, rest[1:], nil
			}
		}

		var key Node
		key, rest, err = readCBORItem(rest)
		if err != nil {
			return Node{}, nil, err
		}
		if key.Kind != KindString {
			return Node{}, nil, cborSyntax(fmt.Sprintf("map key must be a text string, got %s", key.Describe()))
		}

		var value Node
		value, rest, err = readCBORItem(rest)
		if err != nil {
			return Node{}, nil, err
		}
		node.Fields = append(node.Fields, Field{Key: key.Text, Value: value})
	}
	return node, rest, nil
}

// readHead decodes the initial byte and argument of a container item.
// For indefinite-length items the returned count is zero.
func readHead(data []byte) (count uint64, indefinite bool, rest []byte, err error) {
	info := data[0] & 0x1f
	rest = data[1:]

	var width int
	switch {
	case info < 24:
		return uint64(info), false, rest, nil
	case info == 24:
		width = 1
	case info == 25:
		width = 2
	case info == 26:
		width = 4
	case info == 27:
		width = 8
	case info == infoIndefinite:
		return 0, true, rest, nil
	default:
		return 0, false, nil, cborSyntax(fmt.Sprintf("reserved additional information %d", info))
	}

	if len(rest) < width {
		return 0, false, nil, cborSyntax("truncated item header")
	}
	switch width {
	case 1:
		count = uint64(rest[0])
	case 2:
		count = uint64(binary.BigEndian.Uint16(rest))
	case 4:
		count = uint64(binary.BigEndian.Uint32(rest))
	case 8:
		count = binary.BigEndian.Uint64(rest)
	}
	return count, false, rest[width:], nil
}

// capacityHint bounds a preallocation by the bytes actually remaining,
// since every entry occupies at least one byte.
func capacityHint(count uint64, rest []byte) int {
	if count > uint64(len(rest)) {
		return len(rest)
	}
	return int(count)
}

// scalarNode converts a value decoded by lib/codec into a Node.
func scalarNode(value any) Node {
	switch typed := value.(type) {
	case nil:
		return Node{Kind: KindNull}
	case bool:
		return Node{Kind: KindBool, Bool: typed}
	case uint64:
		if typed > math.MaxInt64 {
			return Node{Kind: KindFloat, Float: float64(typed)}
		}
		return Node{Kind: KindInteger, Int: int64(typed)}
	case int64:
		return Node{Kind: KindInteger, Int: typed}
	case big.Int:
		float, _ := new(big.Float).SetInt(&typed).Float64()
		return Node{Kind: KindFloat, Float: float}
	case *big.Int:
		float, _ := new(big.Float).SetInt(typed).Float64()
		return Node{Kind: KindFloat, Float: float}
	case float64:
		return Node{Kind: KindFloat, Float: typed}
	case string:
		return Node{Kind: KindString, Text: typed}
	case []byte:
		return Node{Kind: KindBytes, Bytes: typed}
	default:
		return Node{Kind: KindOther}
	}
}

func cborSyntax(message string) error {
	return &SyntaxError{Format: FormatCBOR, Err: errors.New(message)}
}
