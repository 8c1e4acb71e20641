// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package capture reads and writes recorded option payloads.
//
// A capture is a stream of independent records, each one encoded
// option. JSON captures are JSON Lines: one document per line, with
// comments and trailing commas tolerated (tidwall/jsonc) so captures
// can be annotated by hand. CBOR captures are CBOR sequences (RFC
// 8742): items concatenated with no framing.
//
// Either kind may be compressed as a whole stream with zstd or lz4.
// [Open] picks the compression from the file extension (".zst",
// ".lz4") and the format from the extension beneath it (".jsonl",
// ".cbor") unless the caller names one.
//
// [Replay] decodes every record of a capture and summarizes the
// results by error class, which is how decoder changes are checked
// against traffic recorded from a live platform.
package capture
