// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package option

import (
	"errors"
	"fmt"

	"github.com/bureau-foundation/optwire/lib/wire"
)

// Encode encodes one option as JSON.
func Encode(option CommandOption) ([]byte, error) {
	return encode(wire.FormatJSON, option.EncodeTo)
}

// EncodeCBOR encodes one option as CBOR.
func EncodeCBOR(option CommandOption) ([]byte, error) {
	return encode(wire.FormatCBOR, option.EncodeTo)
}

// EncodeList encodes options as a JSON array.
func EncodeList(options []CommandOption) ([]byte, error) {
	return encode(wire.FormatJSON, func(w wire.Writer) error {
		return encodeList(w, "", options)
	})
}

// EncodeListCBOR encodes options as a CBOR array.
func EncodeListCBOR(options []CommandOption) ([]byte, error) {
	return encode(wire.FormatCBOR, func(w wire.Writer) error {
		return encodeList(w, "", options)
	})
}

// MarshalJSON implements json.Marshaler.
func (o CommandOption) MarshalJSON() ([]byte, error) {
	return Encode(o)
}

// MarshalCBOR implements cbor.Marshaler.
func (o CommandOption) MarshalCBOR() ([]byte, error) {
	return EncodeCBOR(o)
}

func encode(format wire.Format, emit func(wire.Writer) error) ([]byte, error) {
	writer, err := wire.NewWriter(format)
	if err != nil {
		return nil, err
	}
	if err := emit(writer); err != nil {
		return nil, err
	}
	return writer.Bytes()
}

// EncodeTo writes the option as a single map. Fields are emitted in
// the order focused (only when true), name, type, and then either
// value for scalar types or options for sub-commands with at least
// one nested option.
func (o CommandOption) EncodeTo(w wire.Writer) error {
	if o.Value == nil {
		return fmt.Errorf("option %q: nil value", o.Name)
	}
	typ := o.Value.Type()
	nested := o.Options()

	fields := 2
	if !typ.IsSubGroup() || len(nested) > 0 {
		fields++
	}
	if o.Focused {
		fields++
	}

	if err := w.BeginMap(fields); err != nil {
		return err
	}
	if o.Focused {
		if err := w.Key("focused"); err != nil {
			return err
		}
		if err := w.Bool(true); err != nil {
			return err
		}
	}
	if err := w.Key("name"); err != nil {
		return err
	}
	if err := w.String(o.Name); err != nil {
		return err
	}
	if err := w.Key("type"); err != nil {
		return err
	}
	if err := w.Int(int64(typ)); err != nil {
		return err
	}

	switch {
	case !typ.IsSubGroup():
		if err := w.Key("value"); err != nil {
			return err
		}
		if err := writeScalar(w, o.Value); err != nil {
			return fmt.Errorf("option %q: %w", o.Name, err)
		}
	case len(nested) > 0:
		if err := w.Key("options"); err != nil {
			return err
		}
		if err := encodeList(w, "options", nested); err != nil {
			return err
		}
	}
	return w.End()
}

func encodeList(w wire.Writer, field string, options []CommandOption) error {
	if err := w.BeginArray(len(options)); err != nil {
		return err
	}
	for index, option := range options {
		if err := option.EncodeTo(w); err != nil {
			return fmt.Errorf("%s[%d]: %w", field, index, err)
		}
	}
	return w.End()
}

var errZeroID = errors.New("zero ID")

// writeScalar writes the natural wire form of a scalar variant.
// Identifiers are decimal text.
func writeScalar(w wire.Writer, value Value) error {
	switch value := value.(type) {
	case StringValue:
		return w.String(string(value))
	case IntegerValue:
		return w.Int(int64(value))
	case BooleanValue:
		return w.Bool(bool(value))
	case NumberValue:
		return w.Float(value.Number.Float64())
	case UserValue:
		if value.ID.IsZero() {
			return errZeroID
		}
		return w.String(value.ID.String())
	case ChannelValue:
		if value.ID.IsZero() {
			return errZeroID
		}
		return w.String(value.ID.String())
	case RoleValue:
		if value.ID.IsZero() {
			return errZeroID
		}
		return w.String(value.ID.String())
	case MentionableValue:
		if value.ID.IsZero() {
			return errZeroID
		}
		return w.String(value.ID.String())
	case AttachmentValue:
		if value.ID.IsZero() {
			return errZeroID
		}
		return w.String(value.ID.String())
	default:
		return fmt.Errorf("unsupported value type %T", value)
	}
}
