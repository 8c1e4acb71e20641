// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the optwire command tree.
//
// Every command reads its payload from a trailing file argument or
// stdin, applies the configured limits (see [config.LimitsConfig]) to
// the parsed wire tree, and only then runs the option decoder. Output
// goes to [Streams.Stdout]; logs and help go to [Streams.Stderr].
package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/bureau-foundation/optwire/cmd/optwire/cli"
	"github.com/bureau-foundation/optwire/lib/config"
	"github.com/bureau-foundation/optwire/lib/version"
)

// Streams are the standard streams a command tree reads and writes.
type Streams struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// StandardStreams returns the process's stdin, stdout, and stderr.
func StandardStreams() Streams {
	return Streams{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Root builds and returns the complete optwire command tree.
func Root(streams Streams) *cli.Command {
	return &cli.Command{
		Name: "optwire",
		Description: `optwire: codec and tooling for typed command options.

A command option is the self-describing value a chat platform sends for
each argument of a slash command: a name, an integer type discriminant,
and either a scalar value or nested options. optwire decodes, encodes,
validates, and fingerprints these payloads in JSON and CBOR, and
replays recorded captures to summarize decode failures.

Configuration comes from --config, else $` + config.EnvironmentVariable + `, else built-in
defaults.`,
		HelpOutput: streams.Stderr,
		Subcommands: []*cli.Command{
			decodeCommand(streams),
			encodeCommand(streams),
			validateCommand(streams),
			fingerprintCommand(streams),
			replayCommand(streams),
			versionCommand(streams),
		},
	}
}

type versionParams struct {
	globalParams
}

func versionCommand(streams Streams) *cli.Command {
	var params versionParams

	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Params:  func() any { return &params },
		Run: func(_ context.Context, args []string) error {
			if len(args) > 0 {
				return cli.Validation("version takes no arguments, got %q", args[0])
			}
			s, err := params.open(streams, "version")
			if err != nil {
				return err
			}
			s.logger.Debug("build info", "version", version.Info())
			_, err = fmt.Fprintf(streams.Stdout, "optwire %s\n", version.Full())
			return err
		},
	}
}
