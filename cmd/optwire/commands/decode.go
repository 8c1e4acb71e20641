// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/bureau-foundation/optwire/cmd/optwire/cli"
	"github.com/bureau-foundation/optwire/lib/codec"
)

type decodeParams struct {
	globalParams
	inputParams
	Output outputFlag
	Color  colorFlag
}

func decodeCommand(streams Streams) *cli.Command {
	var params decodeParams

	return &cli.Command{
		Name:    "decode",
		Summary: "Decode an option payload and print it",
		Description: `Decode one command option (a map) or a list of options (an array) and
print the decoded tree.

Input is JSON by default; comments and trailing commas are accepted.
Use --cbor for CBOR, and --hex when the input is hex text rather than
raw bytes.

JSON output is the canonical encoding: fields in wire order, unset
"focused" and empty "options" omitted, numbers float-shaped. YAML output
annotates each type discriminant with its name. Tree output draws the
sub-command structure.

Diag output (CBOR input only) prints the input as received in RFC 8949
diagnostic notation, after checking that it decodes. Unlike the other
formats it preserves the wire representation: integer vs float,
definite vs indefinite length, and field order.`,
		Usage: "optwire decode [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "Canonicalize an option from stdin",
				Command:     `echo '{"type":3,"name":"q","value":"hi",}' | optwire decode`,
			},
			{
				Description: "Show a CBOR payload captured as hex as a tree",
				Command:     "optwire decode --cbor --hex --format tree payload.hex",
			},
			{
				Description: "Inspect the exact CBOR structure of a payload",
				Command:     "optwire decode --cbor --format diag payload.cbor",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string) error {
			s, err := params.open(streams, "decode")
			if err != nil {
				return err
			}
			format := params.Output.Or(s.config.Output.Format)
			if format == "diag" && !params.CBOR {
				return cli.Validation("--format diag requires --cbor input")
			}
			data, err := readInput(args, streams.Stdin, params.Hex)
			if err != nil {
				return err
			}
			_, options, list, err := loadData(s, params.inputParams, data)
			if err != nil {
				return err
			}
			if format == "diag" {
				return renderDiag(streams.Stdout, data)
			}
			return renderOptions(streams.Stdout, options, list, format,
				params.Color.Or(s.config.Output.Color))
		},
	}
}

// renderDiag writes data, one CBOR item, in diagnostic notation.
func renderDiag(w io.Writer, data []byte) error {
	notation, err := codec.Diagnose(data)
	if err != nil {
		return cli.Validation("diagnose CBOR: %w", err)
	}
	_, err = fmt.Fprintln(w, notation)
	return err
}
