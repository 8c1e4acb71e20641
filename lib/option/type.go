// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package option

import (
	"fmt"
	"strconv"
)

// Type is the wire discriminant of an option.
type Type uint8

const (
	TypeSubCommand      Type = 1
	TypeSubCommandGroup Type = 2
	TypeString          Type = 3
	TypeInteger         Type = 4
	TypeBoolean         Type = 5
	TypeUser            Type = 6
	TypeChannel         Type = 7
	TypeRole            Type = 8
	TypeMentionable     Type = 9
	TypeNumber          Type = 10
	TypeAttachment      Type = 11
)

var typeNames = map[Type]string{
	TypeSubCommand:      "sub_command",
	TypeSubCommandGroup: "sub_command_group",
	TypeString:          "string",
	TypeInteger:         "integer",
	TypeBoolean:         "boolean",
	TypeUser:            "user",
	TypeChannel:         "channel",
	TypeRole:            "role",
	TypeMentionable:     "mentionable",
	TypeNumber:          "number",
	TypeAttachment:      "attachment",
}

// String returns the lowercase name of the type, or the decimal value
// for a type outside the known set.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return strconv.Itoa(int(t))
}

// IsValid reports whether t is one of the eleven known types.
func (t Type) IsValid() bool {
	_, ok := typeNames[t]
	return ok
}

// IsSubGroup reports whether options of this type carry nested
// options instead of a scalar value.
func (t Type) IsSubGroup() bool {
	return t == TypeSubCommand || t == TypeSubCommandGroup
}

// ParseType accepts a type name ("channel") or its wire number ("7").
func ParseType(raw string) (Type, error) {
	for typ, name := range typeNames {
		if name == raw {
			return typ, nil
		}
	}
	number, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("unknown option type %q", raw)
	}
	return typeFromWire(number)
}

// typeFromWire validates a decoded discriminant.
func typeFromWire(number int64) (Type, error) {
	if number < 0 || number > 255 || !Type(number).IsValid() {
		return 0, &UnrecognizedTypeError{Value: number}
	}
	return Type(number), nil
}
