// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import "fmt"

// Format names a supported wire format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCBOR Format = "cbor"
)

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatJSON, FormatCBOR:
		return Format(name), nil
	default:
		return "", fmt.Errorf("unknown wire format %q (expected json or cbor)", name)
	}
}

// Parse reads data in the given format.
func Parse(format Format, data []byte) (Node, error) {
	switch format {
	case FormatJSON:
		return ParseJSON(data)
	case FormatCBOR:
		return ParseCBOR(data)
	default:
		return Node{}, fmt.Errorf("unknown wire format %q", format)
	}
}

// NewWriter returns an empty writer for the given format.
func NewWriter(format Format) (BufferWriter, error) {
	switch format {
	case FormatJSON:
		return NewJSONWriter(), nil
	case FormatCBOR:
		return NewCBORWriter(), nil
	default:
		return nil, fmt.Errorf("unknown wire format %q", format)
	}
}
