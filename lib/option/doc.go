// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package option decodes and encodes the options of a slash-command
// invocation.
//
// On the wire an option is a small map:
//
//	{"name": "channel", "type": 7, "value": "123456789012345678"}
//	{"name": "admin", "type": 2, "options": [...]}
//
// The "type" discriminant decides how the loosely typed "value" is
// read. The same JSON string is a [ChannelValue] under type 7 and a
// [StringValue] under type 3; the same integer is an [IntegerValue]
// under type 4 and a [NumberValue] under type 10. In memory an option
// is a [CommandOption] whose [Value] is one of eleven concrete variant
// types, and the discriminant is always derived from the variant.
//
// Decoding is strict about the fields it knows (name, type, value,
// options, focused): a duplicate, a missing required field, or a value
// of the wrong shape is an error. Fields it does not know are skipped.
// See [Decode], [DecodeCBOR], and [Decoder].
//
// Encoding omits "focused" unless it is true and omits "options" when
// a sub-command has none, so that encode(decode(x)) is stable. See
// [Encode], [EncodeCBOR], and [CommandOption.EncodeTo].
//
// Both JSON and CBOR are supported through lib/wire. CommandOption
// implements json.Marshaler, json.Unmarshaler, cbor.Marshaler, and
// cbor.Unmarshaler, so it can be embedded in larger interaction
// payloads handled by encoding/json or lib/codec.
package option
