// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/tidwall/gjson"
)

// ParseJSON reads a single JSON value. Object members are returned in
// document order with duplicates preserved. The whole document must be
// valid UTF-8, which gjson alone does not check inside strings.
func ParseJSON(data []byte) (Node, error) {
	if !gjson.ValidBytes(data) {
		return Node{}, &SyntaxError{Format: FormatJSON, Err: errors.New("invalid JSON")}
	}
	if !utf8.Valid(data) {
		return Node{}, &SyntaxError{Format: FormatJSON, Err: errors.New("invalid UTF-8")}
	}
	return fromJSON(gjson.ParseBytes(data))
}

func fromJSON(result gjson.Result) (Node, error) {
	switch result.Type {
	case gjson.Null:
		return Node{Kind: KindNull}, nil
	case gjson.False:
		return Node{Kind: KindBool, Bool: false}, nil
	case gjson.True:
		return Node{Kind: KindBool, Bool: true}, nil
	case gjson.Number:
		return parseJSONNumber(result.Raw)
	case gjson.String:
		return Node{Kind: KindString, Text: result.Str}, nil
	}

	var (
		node     Node
		innerErr error
	)
	switch {
	case result.IsObject():
		node.Kind = KindMap
		node.Fields = []Field{}
		result.ForEach(func(key, value gjson.Result) bool {
			child, err := fromJSON(value)
			if err != nil {
				innerErr = err
				return false
			}
			node.Fields = append(node.Fields, Field{Key: key.Str, Value: child})
			return true
		})
	case result.IsArray():
		node.Kind = KindArray
		node.Items = []Node{}
		result.ForEach(func(_, value gjson.Result) bool {
			child, err := fromJSON(value)
			if err != nil {
				innerErr = err
				return false
			}
			node.Items = append(node.Items, child)
			return true
		})
	default:
		return Node{}, &SyntaxError{Format: FormatJSON, Err: fmt.Errorf("unexpected token %q", result.Raw)}
	}
	if innerErr != nil {
		return Node{}, innerErr
	}
	return node, nil
}

// parseJSONNumber classifies a JSON number literal. Literals without a
// fraction or exponent that fit in int64 are integers; everything else,
// including integers too large for int64 and "-0", is a float.
func parseJSONNumber(literal string) (Node, error) {
	if !strings.ContainsAny(literal, ".eE") && literal != "-0" {
		if value, err := strconv.ParseInt(literal, 10, 64); err == nil {
			return Node{Kind: KindInteger, Int: value}, nil
		}
	}
	value, err := strconv.ParseFloat(literal, 64)
	if err != nil || math.IsInf(value, 0) {
		return Node{}, &SyntaxError{Format: FormatJSON, Err: fmt.Errorf("number %s out of range", literal)}
	}
	return Node{Kind: KindFloat, Float: value}, nil
}
