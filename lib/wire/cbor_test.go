// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"errors"
	"testing"

	"github.com/bureau-foundation/optwire/lib/codec"
	"github.com/bureau-foundation/optwire/lib/testutil"
)

func TestParseCBORPreservesOrderAndDuplicates(t *testing.T) {
	t.Parallel()
	// {"name": "a", "name": "b", "type": 3} with a duplicate key,
	// which no Go map can produce, so it is assembled by hand.
	data := []byte{
		0xa3,
		0x64, 'n', 'a', 'm', 'e', 0x61, 'a',
		0x64, 'n', 'a', 'm', 'e', 0x61, 'b',
		0x64, 't', 'y', 'p', 'e', 0x03,
	}
	node, err := ParseCBOR(data)
	if err != nil {
		t.Fatalf("ParseCBOR: %v", err)
	}
	if node.Kind != KindMap || len(node.Fields) != 3 {
		t.Fatalf("got %+v, want map with 3 fields", node)
	}
	if node.Fields[0].Value.Text != "a" || node.Fields[1].Value.Text != "b" {
		t.Errorf("duplicate values = %q, %q; want a, b", node.Fields[0].Value.Text, node.Fields[1].Value.Text)
	}
	if typ := node.Fields[2].Value; typ.Kind != KindInteger || typ.Int != 3 {
		t.Errorf("type = %+v, want integer 3", typ)
	}
}

func TestParseCBORIndefiniteLength(t *testing.T) {
	t.Parallel()
	// {_ "options": [_ 1, 2]}
	data := testutil.Hex(t, "bf 676f7074696f6e73 9f 01 02 ff ff")
	node, err := ParseCBOR(data)
	if err != nil {
		t.Fatalf("ParseCBOR: %v", err)
	}
	options := node.Fields[0].Value
	if options.Kind != KindArray || len(options.Items) != 2 {
		t.Fatalf("options = %+v, want 2-item array", options)
	}
	if options.Items[1].Int != 2 {
		t.Errorf("second item = %+v, want 2", options.Items[1])
	}
}

func TestParseCBORScalars(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		value any
		want  Node
	}{
		{"bool", true, Node{Kind: KindBool, Bool: true}},
		{"positive", uint64(5), Node{Kind: KindInteger, Int: 5}},
		{"negative", int64(-7), Node{Kind: KindInteger, Int: -7}},
		{"beyond int64", uint64(1 << 63), Node{Kind: KindFloat, Float: 1 << 63}},
		{"float", 2.5, Node{Kind: KindFloat, Float: 2.5}},
		{"integral float", 5.0, Node{Kind: KindFloat, Float: 5}},
		{"text", "hello", Node{Kind: KindString, Text: "hello"}},
		{"null", nil, Node{Kind: KindNull}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			data, err := codec.Marshal(test.value)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			got, err := ParseCBOR(data)
			if err != nil {
				t.Fatalf("ParseCBOR: %v", err)
			}
			if got.Kind != test.want.Kind || got.Bool != test.want.Bool ||
				got.Int != test.want.Int || got.Float != test.want.Float || got.Text != test.want.Text {
				t.Errorf("ParseCBOR(%v) = %+v, want %+v", test.value, got, test.want)
			}
		})
	}
}

func TestParseCBORRejects(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"truncated map", []byte{0xa1, 0x61, 'a'}},
		{"trailing bytes", []byte{0x01, 0x02}},
		{"integer key", []byte{0xa1, 0x01, 0x02}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseCBOR(test.data)
			var syntaxErr *SyntaxError
			if !errors.As(err, &syntaxErr) {
				t.Fatalf("ParseCBOR error = %v, want *SyntaxError", err)
			}
		})
	}
}
