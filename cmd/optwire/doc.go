// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Optwire decodes, encodes, validates, fingerprints, and replays typed
// command-option payloads in JSON and CBOR.
//
// Usage:
//
//	optwire <command> [flags] [file]
//
// Run "optwire --help" for the command list.
package main
