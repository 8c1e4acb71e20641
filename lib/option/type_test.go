// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package option

import (
	"errors"
	"testing"
)

func TestParseType(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input string
		want  Type
	}{
		{"sub_command", TypeSubCommand},
		{"1", TypeSubCommand},
		{"channel", TypeChannel},
		{"7", TypeChannel},
		{"attachment", TypeAttachment},
		{"11", TypeAttachment},
	}
	for _, test := range tests {
		got, err := ParseType(test.input)
		if err != nil {
			t.Fatalf("ParseType(%q): %v", test.input, err)
		}
		if got != test.want {
			t.Errorf("ParseType(%q) = %s, want %s", test.input, got, test.want)
		}
	}

	var unrecognized *UnrecognizedTypeError
	if _, err := ParseType("12"); !errors.As(err, &unrecognized) {
		t.Errorf("ParseType(12) error = %v, want *UnrecognizedTypeError", err)
	}
	if _, err := ParseType("channels"); err == nil {
		t.Error("ParseType(channels) succeeded")
	}
}

func TestTypeString(t *testing.T) {
	t.Parallel()
	if got := TypeSubCommandGroup.String(); got != "sub_command_group" {
		t.Errorf("String() = %q", got)
	}
	if got := Type(99).String(); got != "99" {
		t.Errorf("Type(99).String() = %q, want 99", got)
	}
	if Type(0).IsValid() || !TypeNumber.IsValid() {
		t.Error("IsValid disagrees with the known set")
	}
}

func TestValueTypeMatchesDiscriminant(t *testing.T) {
	t.Parallel()
	seen := make(map[Type]bool)
	for _, option := range sampleOptions() {
		seen[option.Value.Type()] = true
	}
	for typ := range typeNames {
		if !seen[typ] {
			t.Errorf("sampleOptions has no %s option", typ)
		}
	}
}
