// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"encoding/hex"
	"os"

	"github.com/bureau-foundation/optwire/cmd/optwire/cli"
	"github.com/bureau-foundation/optwire/lib/option"
	"github.com/bureau-foundation/optwire/lib/wire"
)

type encodeParams struct {
	globalParams
	Hex    bool   `json:"hex"    flag:"hex,x" desc:"write hex text instead of raw CBOR"`
	Output string `json:"output" flag:"output,o" desc:"write to this file instead of stdout"`
}

func encodeCommand(streams Streams) *cli.Command {
	var params encodeParams

	return &cli.Command{
		Name:    "encode",
		Summary: "Encode a JSON option payload as canonical CBOR",
		Description: `Read a JSON (or JSONC) option or list of options, decode it, and write
the canonical CBOR encoding.

Decoding first means the output is normalized: unknown fields are
dropped, identifiers are decimal text, integers given for a number
option become floats, and "focused": false disappears. Invalid input is
rejected with the decoder's error.

Raw CBOR is refused on a terminal; use --hex or --output.`,
		Usage: "optwire encode [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "Encode an option to hex",
				Command:     `echo '{"name":"n","type":10,"value":2}' | optwire encode --hex`,
			},
			{
				Description: "Write a CBOR fixture",
				Command:     "optwire encode -o fixture.cbor option.jsonc",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string) error {
			s, err := params.open(streams, "encode")
			if err != nil {
				return err
			}
			_, options, list, err := load(s, inputParams{}, args, streams.Stdin)
			if err != nil {
				return err
			}

			encoded, err := encodeOptions(wire.FormatCBOR, options, list)
			if err != nil {
				return err
			}
			if params.Hex {
				encoded = append([]byte(hex.EncodeToString(encoded)), '\n')
			}

			if params.Output != "" {
				if err := os.WriteFile(params.Output, encoded, 0o644); err != nil {
					return cli.Internal("write %s: %w", params.Output, err)
				}
				s.logger.Info("wrote encoded options",
					"path", params.Output,
					"bytes", len(encoded),
					"options", len(options),
				)
				return nil
			}
			if !params.Hex && cli.IsTerminal(streams.Stdout) {
				return cli.Validation("refusing to write binary CBOR to a terminal (use --hex or --output)")
			}
			_, err = streams.Stdout.Write(encoded)
			return err
		},
	}
}

// encodeOptions encodes a single option or, when list is set, the
// options as an array.
func encodeOptions(format wire.Format, options []option.CommandOption, list bool) ([]byte, error) {
	var encoded []byte
	var err error
	switch {
	case format == wire.FormatCBOR && list:
		encoded, err = option.EncodeListCBOR(options)
	case format == wire.FormatCBOR:
		encoded, err = option.EncodeCBOR(options[0])
	case list:
		encoded, err = option.EncodeList(options)
	default:
		encoded, err = option.Encode(options[0])
	}
	if err != nil {
		return nil, cli.Internal("encode: %w", err)
	}
	return encoded, nil
}
