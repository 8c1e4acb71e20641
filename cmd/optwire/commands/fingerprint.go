// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"

	"github.com/bureau-foundation/optwire/cmd/optwire/cli"
	"github.com/bureau-foundation/optwire/lib/option"
)

type fingerprintParams struct {
	globalParams
	inputParams
	Short bool `json:"short" flag:"short" desc:"print the 12-character short form"`
}

func fingerprintCommand(streams Streams) *cli.Command {
	var params fingerprintParams

	return &cli.Command{
		Name:    "fingerprint",
		Summary: "Print the content fingerprint of each option",
		Description: `Print a BLAKE3 fingerprint for each decoded top-level option, followed
by its name.

The fingerprint hashes the canonical CBOR encoding, so it ignores
everything decoding normalizes away: field order, unknown fields,
JSON versus CBOR input, and integer versus float spelling of a number
option. Two payloads with the same fingerprint decode to equal options.`,
		Usage: "optwire fingerprint [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "Compare a JSON payload with its CBOR capture",
				Command:     "optwire fingerprint option.json && optwire fingerprint --cbor option.cbor",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string) error {
			s, err := params.open(streams, "fingerprint")
			if err != nil {
				return err
			}
			_, options, _, err := load(s, params.inputParams, args, streams.Stdin)
			if err != nil {
				return err
			}

			for _, opt := range options {
				digest, err := option.Fingerprint(opt)
				if err != nil {
					return cli.Internal("fingerprint %q: %w", opt.Name, err)
				}
				text := digest.String()
				if params.Short {
					text = digest.Short()
				}
				if _, err := fmt.Fprintf(streams.Stdout, "%s  %s\n", text, opt.Name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
