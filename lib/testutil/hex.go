// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"encoding/hex"
	"strings"
	"testing"
	"unicode"
)

// Hex decodes a hex string, skipping whitespace.
//
//	payload := testutil.Hex(t, "a2 646e616d65 6161 6474797065 03")
func Hex(t testing.TB, s string) []byte {
	t.Helper()
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	decoded, err := hex.DecodeString(cleaned)
	if err != nil {
		t.Fatalf("bad hex fixture %q: %v", s, err)
	}
	return decoded
}
