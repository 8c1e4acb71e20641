// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package option

import (
	"testing"

	"github.com/bureau-foundation/optwire/lib/number"
	"github.com/bureau-foundation/optwire/lib/snowflake"
	"github.com/bureau-foundation/optwire/lib/wire"
)

// formats lists every wire format the codec supports.
var formats = []wire.Format{wire.FormatJSON, wire.FormatCBOR}

// inFormat converts a JSON fixture to the requested format. Duplicate
// keys and field order are carried over, so one fixture exercises both
// readers.
func inFormat(t *testing.T, format wire.Format, document string) []byte {
	t.Helper()
	if format == wire.FormatJSON {
		return []byte(document)
	}
	node, err := wire.ParseJSON([]byte(document))
	if err != nil {
		t.Fatalf("ParseJSON(%s): %v", document, err)
	}
	writer, err := wire.NewWriter(format)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := wire.WriteNode(writer, node); err != nil {
		t.Fatalf("WriteNode: %v", err)
	}
	data, err := writer.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	return data
}

func decodeIn(format wire.Format, data []byte) (CommandOption, error) {
	var decoder Decoder
	return decoder.Decode(format, data)
}

func encodeIn(format wire.Format, option CommandOption) ([]byte, error) {
	if format == wire.FormatCBOR {
		return EncodeCBOR(option)
	}
	return Encode(option)
}

// sampleOptions has one option of every type.
func sampleOptions() []CommandOption {
	return []CommandOption{
		{Name: "text", Value: StringValue("hello")},
		{Name: "digits", Value: StringValue("007")},
		{Name: "count", Value: IntegerValue(-42)},
		{Name: "enabled", Value: BooleanValue(true)},
		{Name: "target", Value: UserValue{ID: snowflake.MustParse[snowflake.UserMarker]("123456789012345678")}},
		{Name: "where", Value: ChannelValue{ID: snowflake.MustNew[snowflake.ChannelMarker](42)}},
		{Name: "role", Value: RoleValue{ID: snowflake.MustNew[snowflake.RoleMarker](18446744073709551615)}},
		{Name: "who", Value: MentionableValue{ID: snowflake.MustNew[snowflake.GenericMarker](7)}},
		{Name: "ratio", Value: NumberValue{Number: number.New(0.25)}},
		{Name: "whole", Value: NumberValue{Number: number.New(5)}},
		{Name: "file", Value: AttachmentValue{ID: snowflake.MustNew[snowflake.AttachmentMarker](900)}},
		{Name: "empty", Value: SubCommandValue(nil)},
		{Name: "admin", Value: SubCommandGroupValue{
			{Name: "ban", Value: SubCommandValue{
				{Name: "user", Value: UserValue{ID: snowflake.MustNew[snowflake.UserMarker](11)}},
				{Focused: true, Name: "reason", Value: StringValue("spa")},
			}},
		}},
	}
}
