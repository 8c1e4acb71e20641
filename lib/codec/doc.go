// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides optwire's standard CBOR encoding configuration.
//
// Command options travel in two formats:
//
//   - JSON for the external interface: interaction payloads as the chat
//     platform delivers them, capture files, and CLI output.
//   - CBOR for compact storage and internal transport: capture
//     sequences, fingerprints, and service-to-service relays.
//
// This package provides the shared CBOR encoding and decoding modes so
// that every package encodes identically without duplicating
// configuration. The encoder uses Core Deterministic Encoding (RFC 8949
// §4.2): sorted map keys, smallest integer and float encoding, no
// indefinite-length items.
//
// Encoding is whole-buffer:
//
//	data, err := codec.Marshal(value)
//
// Decoding walks a buffer item by item (the structural reader in
// lib/wire does this to preserve map entry order and duplicate keys):
//
//	rest, err := codec.UnmarshalFirst(data, &value)
//
// NewEncoder and NewDecoder write and read CBOR sequences (RFC 8742),
// the capture file format. Diagnose renders one item in diagnostic
// notation for "optwire decode --format diag".
//
// # Struct Tag Rules
//
// Types that appear in both formats carry `json` tags only;
// fxamacker/cbor falls back to them when `cbor` tags are absent. Types
// that are only ever CBOR carry `cbor` tags. Never put both on a field.
package codec
