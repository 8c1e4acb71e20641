// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"unicode"

	"github.com/tidwall/jsonc"

	"github.com/bureau-foundation/optwire/cmd/optwire/cli"
	"github.com/bureau-foundation/optwire/lib/config"
	"github.com/bureau-foundation/optwire/lib/option"
	"github.com/bureau-foundation/optwire/lib/wire"
)

// inputParams select how the payload is read.
type inputParams struct {
	CBOR bool `json:"cbor" flag:"cbor" desc:"input is CBOR (default: JSON, with comments and trailing commas allowed)"`
	Hex  bool `json:"hex"  flag:"hex,x" desc:"input is hex-encoded; whitespace is ignored"`
}

func (p inputParams) format() wire.Format {
	if p.CBOR {
		return wire.FormatCBOR
	}
	return wire.FormatJSON
}

// readInput resolves input data from the single optional file argument
// or, when there is none or it is "-", from stdin.
//
// When hexMode is true, the raw bytes are treated as hex: whitespace is
// stripped and the hex is decoded to binary.
func readInput(args []string, stdin io.Reader, hexMode bool) ([]byte, error) {
	var data []byte
	var err error

	switch {
	case len(args) > 1:
		return nil, cli.Validation("expected at most one input file, got %d arguments", len(args))
	case len(args) == 1 && args[0] != "-":
		data, err = os.ReadFile(args[0])
		if errors.Is(err, fs.ErrNotExist) {
			return nil, cli.NotFound("input file %s does not exist", args[0])
		}
		if err != nil {
			return nil, cli.Internal("read %s: %w", args[0], err)
		}
	default:
		data, err = io.ReadAll(stdin)
		if err != nil {
			return nil, cli.Internal("read stdin: %w", err)
		}
	}

	if hexMode {
		return decodeHexInput(data)
	}
	return data, nil
}

// decodeHexInput strips whitespace from hex-encoded input and decodes
// it to binary bytes. Whitespace between hex digit pairs is allowed
// (e.g., "a2 64 6e 61 6d 65" or "a2646e616d65").
func decodeHexInput(data []byte) ([]byte, error) {
	cleaned := bytes.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, data)

	if len(cleaned) == 0 {
		return nil, cli.Validation("empty input after stripping whitespace from hex")
	}

	decoded := make([]byte, hex.DecodedLen(len(cleaned)))
	count, err := hex.Decode(decoded, cleaned)
	if err != nil {
		return nil, cli.Validation("decode hex: %w", err)
	}
	return decoded[:count], nil
}

// parsePayload checks data against the configured limits and parses it
// into a wire tree. JSON input is normalized with jsonc first, so
// comments and trailing commas are accepted.
func parsePayload(limits config.LimitsConfig, format wire.Format, data []byte) (wire.Node, error) {
	if len(data) > limits.MaxPayloadBytes {
		return wire.Node{}, cli.Validation("payload is %d bytes, over limits.max_payload_bytes (%d)",
			len(data), limits.MaxPayloadBytes)
	}
	if format == wire.FormatJSON {
		data = jsonc.ToJSON(data)
	}

	node, err := wire.Parse(format, data)
	if err != nil {
		return wire.Node{}, cli.Validation("%w", err)
	}
	if depth := node.Depth(); depth > limits.MaxDepth {
		return wire.Node{}, cli.Validation("payload nests %d levels, over limits.max_depth (%d)",
			depth, limits.MaxDepth)
	}
	return node, nil
}

// decodePayload decodes a parsed payload. A top-level array is a list of
// options; anything else must be a single option map.
func decodePayload(decoder *option.Decoder, node wire.Node) ([]option.CommandOption, bool, error) {
	if node.Kind == wire.KindArray {
		options, err := decoder.DecodeListNode(node)
		return options, true, err
	}
	decoded, err := decoder.DecodeNode(node)
	if err != nil {
		return nil, false, err
	}
	return []option.CommandOption{decoded}, false, nil
}

// load is the shared front half of every payload command: read, limit,
// parse, decode. Decode errors are returned as validation errors.
func load(s *session, input inputParams, args []string, stdin io.Reader) (wire.Node, []option.CommandOption, bool, error) {
	data, err := readInput(args, stdin, input.Hex)
	if err != nil {
		return wire.Node{}, nil, false, err
	}
	return loadData(s, input, data)
}

// loadData is load for a payload already read.
func loadData(s *session, input inputParams, data []byte) (wire.Node, []option.CommandOption, bool, error) {
	node, err := parsePayload(s.config.Limits, input.format(), data)
	if err != nil {
		return wire.Node{}, nil, false, err
	}
	options, list, err := decodePayload(s.decoder(), node)
	if err != nil {
		return node, nil, false, cli.Validation("%w", err)
	}
	s.logger.Debug("payload decoded",
		"format", input.format(),
		"bytes", len(data),
		"depth", node.Depth(),
		"options", len(options),
	)
	if path, focused, ok := option.Focused(options); ok {
		s.logger.Debug("autocomplete focus",
			"path", strings.Join(path, "/"),
			"type", focused.Value.Type().String(),
		)
	}
	return node, options, list, nil
}

// describeCount renders "1 option" or "n options".
func describeCount(count int) string {
	if count == 1 {
		return "1 option"
	}
	return fmt.Sprintf("%d options", count)
}
