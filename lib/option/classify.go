// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package option

import (
	"github.com/bureau-foundation/optwire/lib/number"
	"github.com/bureau-foundation/optwire/lib/snowflake"
	"github.com/bureau-foundation/optwire/lib/wire"
)

// category is the shape of a raw "value" payload, before the
// discriminant says what it means.
type category uint8

const (
	categoryBoolean category = iota + 1
	categoryInteger
	categoryFloat
	categoryIdentifier
	categoryString
)

// envelope is a classified "value" payload. Exactly the field matching
// category is set.
type envelope struct {
	category category
	boolean  bool
	integer  int64
	float    float64
	id       snowflake.ID[snowflake.GenericMarker]
	text     string
	// actual describes the wire value for InvalidTypeError.
	actual string
}

// expectedScalar is the InvalidTypeError expectation for a "value"
// that is not a scalar at all.
const expectedScalar = "boolean, integer, float, or string"

// precedence is tried top to bottom; the first rule that matches
// decides the category. Integers beyond int64 already arrive from
// lib/wire as floats, so the float rule covers them. Identifier is
// tried before string: any canonical non-zero uint64 decimal is an
// identifier, and the string coercion below turns it back into text.
var precedence = []func(wire.Node) (envelope, bool){
	func(node wire.Node) (envelope, bool) {
		if node.Kind != wire.KindBool {
			return envelope{}, false
		}
		return envelope{category: categoryBoolean, boolean: node.Bool, actual: node.Describe()}, true
	},
	func(node wire.Node) (envelope, bool) {
		if node.Kind != wire.KindInteger {
			return envelope{}, false
		}
		return envelope{category: categoryInteger, integer: node.Int, actual: node.Describe()}, true
	},
	func(node wire.Node) (envelope, bool) {
		if node.Kind != wire.KindFloat {
			return envelope{}, false
		}
		return envelope{category: categoryFloat, float: node.Float, actual: node.Describe()}, true
	},
	func(node wire.Node) (envelope, bool) {
		if node.Kind != wire.KindString {
			return envelope{}, false
		}
		id, err := snowflake.Parse[snowflake.GenericMarker](node.Text)
		if err != nil {
			return envelope{}, false
		}
		return envelope{category: categoryIdentifier, id: id, actual: "ID"}, true
	},
	func(node wire.Node) (envelope, bool) {
		if node.Kind != wire.KindString {
			return envelope{}, false
		}
		return envelope{category: categoryString, text: node.Text, actual: node.Describe()}, true
	},
}

// classify sorts a scalar "value" into its category. Anything that is
// not a boolean, number, or text string is rejected.
func classify(node wire.Node) (envelope, error) {
	for _, rule := range precedence {
		if classified, ok := rule(node); ok {
			return classified, nil
		}
	}
	return envelope{}, &InvalidTypeError{Field: "value", Expected: expectedScalar, Actual: node.Describe()}
}

// coercion turns a classified payload into the variant for one scalar
// discriminant. expected names what the discriminant accepts.
type coercion struct {
	expected string
	convert  func(envelope) (Value, bool)
}

// coercions covers every scalar discriminant. Sub-command types take
// no value and are handled by the decoder directly.
//
// Number accepts integers, widened to float64. String accepts plain
// text and also identifiers, converted back to their decimal text;
// because identifiers are only recognized in canonical form, that text
// is byte-for-byte what was on the wire.
var coercions = map[Type]coercion{
	TypeAttachment: {"attachment id", func(e envelope) (Value, bool) {
		return AttachmentValue{ID: snowflake.Cast[snowflake.AttachmentMarker](e.id)}, e.category == categoryIdentifier
	}},
	TypeChannel: {"channel id", func(e envelope) (Value, bool) {
		return ChannelValue{ID: snowflake.Cast[snowflake.ChannelMarker](e.id)}, e.category == categoryIdentifier
	}},
	TypeRole: {"role id", func(e envelope) (Value, bool) {
		return RoleValue{ID: snowflake.Cast[snowflake.RoleMarker](e.id)}, e.category == categoryIdentifier
	}},
	TypeUser: {"user id", func(e envelope) (Value, bool) {
		return UserValue{ID: snowflake.Cast[snowflake.UserMarker](e.id)}, e.category == categoryIdentifier
	}},
	TypeMentionable: {"mentionable id", func(e envelope) (Value, bool) {
		return MentionableValue{ID: e.id}, e.category == categoryIdentifier
	}},
	TypeBoolean: {"boolean", func(e envelope) (Value, bool) {
		return BooleanValue(e.boolean), e.category == categoryBoolean
	}},
	TypeInteger: {"integer", func(e envelope) (Value, bool) {
		return IntegerValue(e.integer), e.category == categoryInteger
	}},
	TypeNumber: {"number", func(e envelope) (Value, bool) {
		switch e.category {
		case categoryInteger:
			return NumberValue{Number: number.FromInt(e.integer)}, true
		case categoryFloat:
			return NumberValue{Number: number.New(e.float)}, true
		default:
			return nil, false
		}
	}},
	TypeString: {"string", func(e envelope) (Value, bool) {
		switch e.category {
		case categoryString:
			return StringValue(e.text), true
		case categoryIdentifier:
			return StringValue(e.id.String()), true
		default:
			return nil, false
		}
	}},
}

// coerce resolves a payload under a scalar discriminant.
func coerce(typ Type, classified envelope) (Value, error) {
	rule := coercions[typ]
	value, ok := rule.convert(classified)
	if !ok {
		return nil, &InvalidTypeError{Field: "value", Expected: rule.expected, Actual: classified.actual}
	}
	return value, nil
}
