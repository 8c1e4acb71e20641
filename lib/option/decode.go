// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package option

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/optwire/lib/wire"
)

// Decoder decodes options. The zero value is ready to use; the
// package-level functions use a zero Decoder.
type Decoder struct {
	// Logger, when set, receives a debug record for every unknown
	// field that is skipped.
	Logger *slog.Logger
}

// Decode decodes one JSON option.
func Decode(data []byte) (CommandOption, error) {
	var decoder Decoder
	return decoder.Decode(wire.FormatJSON, data)
}

// DecodeCBOR decodes one CBOR option.
func DecodeCBOR(data []byte) (CommandOption, error) {
	var decoder Decoder
	return decoder.Decode(wire.FormatCBOR, data)
}

// DecodeNode decodes one option from an already parsed map.
func DecodeNode(node wire.Node) (CommandOption, error) {
	var decoder Decoder
	return decoder.DecodeNode(node)
}

// DecodeList decodes a JSON array of options.
func DecodeList(data []byte) ([]CommandOption, error) {
	var decoder Decoder
	return decoder.DecodeList(wire.FormatJSON, data)
}

// DecodeListCBOR decodes a CBOR array of options.
func DecodeListCBOR(data []byte) ([]CommandOption, error) {
	var decoder Decoder
	return decoder.DecodeList(wire.FormatCBOR, data)
}

// UnmarshalJSON implements json.Unmarshaler. Like encoding/json for
// its own types, null leaves o unchanged.
func (o *CommandOption) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		return nil
	}
	decoded, err := Decode(data)
	if err != nil {
		return err
	}
	*o = decoded
	return nil
}

// UnmarshalCBOR implements cbor.Unmarshaler. Null and undefined leave
// o unchanged.
func (o *CommandOption) UnmarshalCBOR(data []byte) error {
	if len(data) == 1 && (data[0] == 0xf6 || data[0] == 0xf7) {
		return nil
	}
	decoded, err := DecodeCBOR(data)
	if err != nil {
		return err
	}
	*o = decoded
	return nil
}

// Decode parses data in the given format and decodes it as one option.
func (d *Decoder) Decode(format wire.Format, data []byte) (CommandOption, error) {
	node, err := wire.Parse(format, data)
	if err != nil {
		return CommandOption{}, err
	}
	return d.DecodeNode(node)
}

// DecodeList parses data in the given format and decodes it as an
// array of options.
func (d *Decoder) DecodeList(format wire.Format, data []byte) ([]CommandOption, error) {
	node, err := wire.Parse(format, data)
	if err != nil {
		return nil, err
	}
	return d.decodeOptions("", node)
}

// DecodeListNode decodes an array of options from a parsed node.
func (d *Decoder) DecodeListNode(node wire.Node) ([]CommandOption, error) {
	return d.decodeOptions("", node)
}

// DecodeNode decodes one option from a parsed map node.
func (d *Decoder) DecodeNode(node wire.Node) (CommandOption, error) {
	if node.Kind != wire.KindMap {
		return CommandOption{}, &InvalidTypeError{Expected: "option map", Actual: node.Describe()}
	}

	var (
		name        string
		nameSeen    bool
		typ         Type
		typeSeen    bool
		options     []CommandOption
		optionsSeen bool
		value       envelope
		valueSeen   bool
		focused     bool
		focusedSeen bool
	)

	for _, field := range node.Fields {
		switch field.Key {
		case "name":
			if nameSeen {
				return CommandOption{}, &DuplicateFieldError{Field: "name"}
			}
			if field.Value.Kind != wire.KindString {
				return CommandOption{}, &InvalidTypeError{Field: "name", Expected: "string", Actual: field.Value.Describe()}
			}
			name, nameSeen = field.Value.Text, true

		case "type":
			if typeSeen {
				return CommandOption{}, &DuplicateFieldError{Field: "type"}
			}
			if field.Value.Kind != wire.KindInteger {
				return CommandOption{}, &InvalidTypeError{Field: "type", Expected: "integer", Actual: field.Value.Describe()}
			}
			parsed, err := typeFromWire(field.Value.Int)
			if err != nil {
				return CommandOption{}, err
			}
			typ, typeSeen = parsed, true

		case "options":
			if optionsSeen {
				return CommandOption{}, &DuplicateFieldError{Field: "options"}
			}
			decoded, err := d.decodeOptions("options", field.Value)
			if err != nil {
				return CommandOption{}, err
			}
			options, optionsSeen = decoded, true

		case "value":
			if valueSeen {
				return CommandOption{}, &DuplicateFieldError{Field: "value"}
			}
			classified, err := classify(field.Value)
			if err != nil {
				return CommandOption{}, err
			}
			value, valueSeen = classified, true

		case "focused":
			if focusedSeen {
				return CommandOption{}, &DuplicateFieldError{Field: "focused"}
			}
			switch field.Value.Kind {
			case wire.KindBool:
				focused = field.Value.Bool
			case wire.KindNull:
			default:
				return CommandOption{}, &InvalidTypeError{Field: "focused", Expected: "boolean", Actual: field.Value.Describe()}
			}
			focusedSeen = true

		default:
			if d.Logger != nil {
				d.Logger.Debug("skipping unknown option field",
					"field", field.Key,
					"kind", field.Value.Kind.String(),
				)
			}
		}
	}

	if !nameSeen {
		return CommandOption{}, &MissingFieldError{Field: "name"}
	}
	if !typeSeen {
		return CommandOption{}, &MissingFieldError{Field: "type"}
	}

	result := CommandOption{Focused: focused, Name: name}
	switch typ {
	case TypeSubCommand:
		result.Value = SubCommandValue(options)
	case TypeSubCommandGroup:
		result.Value = SubCommandGroupValue(options)
	case TypeString, TypeInteger, TypeBoolean, TypeUser, TypeChannel,
		TypeRole, TypeMentionable, TypeNumber, TypeAttachment:
		if !valueSeen {
			return CommandOption{}, &MissingFieldError{Field: "value"}
		}
		resolved, err := coerce(typ, value)
		if err != nil {
			return CommandOption{}, err
		}
		result.Value = resolved
	default:
		// typeFromWire admits only the cases above.
		panic(fmt.Sprintf("option: unhandled type %d", typ))
	}
	return result, nil
}

// decodeOptions decodes an array of option maps. field is the wire
// field holding the array, used to label errors.
func (d *Decoder) decodeOptions(field string, node wire.Node) ([]CommandOption, error) {
	if node.Kind != wire.KindArray {
		return nil, &InvalidTypeError{Field: field, Expected: "sequence of options", Actual: node.Describe()}
	}
	options := make([]CommandOption, 0, len(node.Items))
	for index, item := range node.Items {
		decoded, err := d.DecodeNode(item)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", field, index, err)
		}
		options = append(options, decoded)
	}
	return options, nil
}
