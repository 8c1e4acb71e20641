// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package option

import (
	"github.com/bureau-foundation/optwire/lib/number"
	"github.com/bureau-foundation/optwire/lib/snowflake"
)

// CommandOption is one option of a command invocation. Sub-command
// options nest further options inside their Value.
type CommandOption struct {
	// Focused marks the option the user is typing into during an
	// autocomplete interaction.
	Focused bool
	Name    string
	Value   Value
}

// Value is the typed payload of an option. The concrete type is one of
// the eleven variants in this file; Type reports the wire
// discriminant it encodes as.
type Value interface {
	Type() Type
	isValue()
}

// SubCommandValue holds the options of a sub-command, in wire order.
type SubCommandValue []CommandOption

// SubCommandGroupValue holds the sub-commands of a sub-command group.
type SubCommandGroupValue []CommandOption

type StringValue string

type IntegerValue int64

type BooleanValue bool

// NumberValue is a floating-point option. Integer wire values are
// widened into it when the discriminant is Number.
type NumberValue struct {
	Number number.Number
}

type UserValue struct {
	ID snowflake.ID[snowflake.UserMarker]
}

type ChannelValue struct {
	ID snowflake.ID[snowflake.ChannelMarker]
}

type RoleValue struct {
	ID snowflake.ID[snowflake.RoleMarker]
}

// MentionableValue references either a user or a role. The wire does
// not say which, so the ID stays unscoped.
type MentionableValue struct {
	ID snowflake.ID[snowflake.GenericMarker]
}

type AttachmentValue struct {
	ID snowflake.ID[snowflake.AttachmentMarker]
}

func (SubCommandValue) Type() Type      { return TypeSubCommand }
func (SubCommandGroupValue) Type() Type { return TypeSubCommandGroup }
func (StringValue) Type() Type          { return TypeString }
func (IntegerValue) Type() Type         { return TypeInteger }
func (BooleanValue) Type() Type         { return TypeBoolean }
func (UserValue) Type() Type            { return TypeUser }
func (ChannelValue) Type() Type         { return TypeChannel }
func (RoleValue) Type() Type            { return TypeRole }
func (MentionableValue) Type() Type     { return TypeMentionable }
func (NumberValue) Type() Type          { return TypeNumber }
func (AttachmentValue) Type() Type      { return TypeAttachment }

func (SubCommandValue) isValue()      {}
func (SubCommandGroupValue) isValue() {}
func (StringValue) isValue()          {}
func (IntegerValue) isValue()         {}
func (BooleanValue) isValue()         {}
func (UserValue) isValue()            {}
func (ChannelValue) isValue()         {}
func (RoleValue) isValue()            {}
func (MentionableValue) isValue()     {}
func (NumberValue) isValue()          {}
func (AttachmentValue) isValue()      {}

// Options returns the nested options of a sub-command or sub-command
// group, and nil for scalar options.
func (o CommandOption) Options() []CommandOption {
	switch value := o.Value.(type) {
	case SubCommandValue:
		return value
	case SubCommandGroupValue:
		return value
	default:
		return nil
	}
}

// Equal reports whether two option trees are structurally identical.
// Numbers compare by bit pattern (see number.Number.Equal), and a nil
// sub-command payload equals an empty one.
func (o CommandOption) Equal(other CommandOption) bool {
	if o.Focused != other.Focused || o.Name != other.Name {
		return false
	}
	return valuesEqual(o.Value, other.Value)
}

func valuesEqual(left, right Value) bool {
	if left == nil || right == nil {
		return left == nil && right == nil
	}
	if left.Type() != right.Type() {
		return false
	}
	switch left := left.(type) {
	case SubCommandValue:
		return optionsEqual(left, right.(SubCommandValue))
	case SubCommandGroupValue:
		return optionsEqual(left, right.(SubCommandGroupValue))
	case NumberValue:
		return left.Number.Equal(right.(NumberValue).Number)
	default:
		// Remaining variants are comparable scalars or IDs.
		return left == right
	}
}

func optionsEqual(left, right []CommandOption) bool {
	if len(left) != len(right) {
		return false
	}
	for i := range left {
		if !left[i].Equal(right[i]) {
			return false
		}
	}
	return true
}
