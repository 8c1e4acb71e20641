// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"text/tabwriter"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/optwire/cmd/optwire/cli"
	"github.com/bureau-foundation/optwire/lib/capture"
	"github.com/bureau-foundation/optwire/lib/wire"
)

// recordFormatFlag overrides the capture's record format.
type recordFormatFlag struct{ cli.Choice }

func (f *recordFormatFlag) AddFlags(flagSet *pflag.FlagSet) {
	f.Bind(flagSet, "records", "", "record format (default: from the file name, else capture.default_format)", "json", "cbor")
}

// reportFlag selects the summary format.
type reportFlag struct{ cli.Choice }

func (f *reportFlag) AddFlags(flagSet *pflag.FlagSet) {
	f.Bind(flagSet, "report", "r", "summary format", "text", "json", "yaml")
}

type replayParams struct {
	globalParams
	Records recordFormatFlag
	Report  reportFlag
	Fail    bool `json:"fail" flag:"fail" desc:"exit 1 when any record fails to decode"`
}

func replayCommand(streams Streams) *cli.Command {
	var params replayParams

	return &cli.Command{
		Name:    "replay",
		Summary: "Decode every record of a capture and summarize failures",
		Description: `Replay a capture file through the decoder and summarize the outcome:
how many records decoded, how many distinct options they held (by
fingerprint), and for each error class the count and the first failing
record.

A capture is JSON Lines (one option per line; blank lines and comments
are skipped) or a CBOR sequence (".cbor", ".cborseq"). Either may be
compressed with zstd (".zst") or lz4 (".lz4"). Relative paths that do
not exist in the working directory are looked up in capture.directory.

Each record must fit within limits.max_payload_bytes; a larger one stops
the replay. Records nested deeper than limits.max_depth are counted as
too_deep failures.`,
		Usage: "optwire replay [flags] <capture>",
		Examples: []cli.Example{
			{
				Description: "Summarize a compressed JSON Lines capture",
				Command:     "optwire replay interactions.jsonl.zst",
			},
			{
				Description: "Machine-readable summary of a CBOR capture",
				Command:     "optwire replay --report json interactions.cborseq.lz4",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string) error {
			if len(args) != 1 {
				return cli.Validation("replay takes exactly one capture file, got %d arguments", len(args))
			}
			s, err := params.open(streams, "replay")
			if err != nil {
				return err
			}

			path := s.config.CapturePath(args[0])
			format, err := replayFormat(params.Records.Value, path, s.config.Capture.DefaultFormat)
			if err != nil {
				return err
			}
			logger := s.logger.With("capture", path, "format", format)

			reader, err := capture.Open(path, capture.Options{
				Format:         format,
				MaxRecordBytes: s.config.Limits.MaxPayloadBytes,
				MaxDepth:       s.config.Limits.MaxDepth,
			})
			if errors.Is(err, fs.ErrNotExist) {
				return cli.NotFound("capture %s does not exist", path)
			}
			if err != nil {
				return cli.Internal("%w", err)
			}
			defer reader.Close()

			summary, err := capture.Replay(ctx, reader, s.decoder())
			if err != nil {
				return cli.Internal("replay %s after %d records: %w", path, summary.Records, err)
			}
			logger.Info("capture replayed",
				"records", summary.Records,
				"decoded", summary.Decoded,
				"distinct", summary.Distinct,
			)

			if err := writeSummary(streams.Stdout, summary, params.Report.Or("text")); err != nil {
				return err
			}
			if params.Fail && summary.Failed() > 0 {
				return &cli.ExitError{Code: 1}
			}
			return nil
		},
	}
}

// replayFormat picks the record format: an explicit flag wins, then a
// CBOR file extension, then the configured default.
func replayFormat(flag, path, configured string) (wire.Format, error) {
	if flag != "" {
		return wire.ParseFormat(flag)
	}
	_, inner := capture.CompressionFromPath(path)
	if format := capture.FormatFromPath(inner); format == wire.FormatCBOR {
		return format, nil
	}
	format, err := wire.ParseFormat(configured)
	if err != nil {
		return "", cli.Validation("capture.default_format: %w", err)
	}
	return format, nil
}

func writeSummary(w io.Writer, summary capture.Summary, format string) error {
	switch format {
	case "json":
		return cli.WriteJSON(w, summary)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(summary); err != nil {
			return cli.Internal("encode yaml: %w", err)
		}
		return encoder.Close()
	}

	fmt.Fprintf(w, "records:  %d\n", summary.Records)
	fmt.Fprintf(w, "decoded:  %d\n", summary.Decoded)
	fmt.Fprintf(w, "failed:   %d\n", summary.Failed())
	fmt.Fprintf(w, "distinct: %d\n", summary.Distinct)
	if len(summary.Failures) == 0 {
		return nil
	}

	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "CLASS\tCOUNT\tFIRST\n")
	for _, failure := range summary.Failures {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", failure.Class, failure.Count, failure.Message)
	}
	return tw.Flush()
}
