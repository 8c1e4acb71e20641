// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package wire is the format-neutral structural layer between raw
// bytes and typed decoders.
//
// Reading produces a [Node] tree. Unlike decoding into map[string]any,
// a Node keeps map entries in wire order and keeps duplicate keys, so
// a decoder built on top can reject duplicates by name and skip
// unknown keys without losing information. [ParseJSON] scans JSON with
// tidwall/gjson; [ParseCBOR] walks CBOR containers by hand and hands
// each scalar to lib/codec.
//
// Writing goes through the streaming [Writer] interface. Containers
// declare their size up front ([Writer.BeginMap], [Writer.BeginArray])
// and every writer verifies at [Writer.End] that exactly that many
// entries were emitted, returning [ErrSizeMismatch] otherwise. The CBOR
// writer needs the size for its definite-length headers; the JSON
// writer checks it so that both formats agree on what a correct
// encoder looks like.
//
// Map entries are written in emission order in both formats. CBOR
// output is therefore deterministic for a deterministic encoder but is
// not key-sorted the way lib/codec.Marshal output is.
package wire
