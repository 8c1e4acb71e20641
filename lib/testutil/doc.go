// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for optwire packages.
//
// [WriteFile] writes a fixture into a per-test temporary directory and
// returns its path. Commands that read a trailing file argument are
// tested this way rather than through stdin.
//
// [Hex] decodes a hex fixture, ignoring whitespace so that long CBOR
// fixtures can be split by item.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no optwire-internal dependencies.
package testutil
