// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bureau-foundation/optwire/cmd/optwire/cli"
	"github.com/bureau-foundation/optwire/lib/option"
	"github.com/bureau-foundation/optwire/lib/wire"
)

type validateParams struct {
	globalParams
	inputParams
	Strict bool `json:"strict" flag:"strict" desc:"also fail on lint findings the decoder tolerates"`
}

func validateCommand(streams Streams) *cli.Command {
	var params validateParams

	return &cli.Command{
		Name:    "validate",
		Summary: "Check that a payload decodes",
		Description: `Decode a payload and report whether it is valid. Exits 0 when it is and
1 when it is not; the report goes to stdout either way.

The decoder tolerates some payloads that are probably mistakes: unknown
fields, "options" on a scalar option, "value" on a sub-command, empty
names, and more than one focused option. These are always listed as
lint findings; with --strict they also fail validation.`,
		Usage: "optwire validate [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "Validate a captured CBOR payload strictly",
				Command:     "optwire validate --cbor --strict payload.cbor",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string) error {
			s, err := params.open(streams, "validate")
			if err != nil {
				return err
			}

			node, options, _, err := load(s, params.inputParams, args, streams.Stdin)
			if err != nil {
				if isPayloadError(err) {
					fmt.Fprintf(streams.Stdout, "invalid: %v\n", err)
					return &cli.ExitError{Code: 1}
				}
				return err
			}

			findings := lint(node, options)
			reportFindings(streams.Stdout, findings)
			if params.Strict && len(findings) > 0 {
				fmt.Fprintf(streams.Stdout, "invalid: %d lint finding(s) in strict mode\n", len(findings))
				return &cli.ExitError{Code: 1}
			}
			fmt.Fprintf(streams.Stdout, "valid: %s\n", describeCount(len(options)))
			return nil
		},
	}
}

// isPayloadError reports whether err says the payload itself is bad,
// as opposed to the file being unreadable.
func isPayloadError(err error) bool {
	var toolErr *cli.ToolError
	return errors.As(err, &toolErr) && toolErr.Category == cli.CategoryValidation
}

// finding is one lint result. Path is the option names from the
// outermost option down, joined with "/".
type finding struct {
	Path    string
	Message string
}

func reportFindings(w io.Writer, findings []finding) {
	for _, f := range findings {
		fmt.Fprintf(w, "lint: %s: %s\n", f.Path, f.Message)
	}
}

// lint inspects a payload that decoded successfully. Most findings need
// the wire tree, since decoding drops exactly what is being reported.
func lint(node wire.Node, options []option.CommandOption) []finding {
	var findings []finding
	if node.Kind == wire.KindArray {
		for _, item := range node.Items {
			findings = lintNode(nil, item, findings)
		}
	} else {
		findings = lintNode(nil, node, findings)
	}

	var focused []string
	_ = option.Walk(options, func(path []string, opt option.CommandOption) error {
		if opt.Focused {
			focused = append(focused, pathText(path))
		}
		return nil
	})
	if len(focused) > 1 {
		findings = append(findings, finding{
			Path:    focused[1],
			Message: fmt.Sprintf("%d options are focused (first %s); autocomplete focuses one", len(focused), focused[0]),
		})
	}
	return findings
}

func lintNode(parent []string, node wire.Node, findings []finding) []finding {
	var (
		name     string
		typ      option.Type
		hasValue bool
		children *wire.Node
		unknown  []string
	)
	for index := range node.Fields {
		field := &node.Fields[index]
		switch field.Key {
		case "name":
			name = field.Value.Text
		case "type":
			typ = option.Type(field.Value.Int)
		case "value":
			hasValue = true
		case "options":
			children = &field.Value
		case "focused":
		default:
			unknown = append(unknown, field.Key)
		}
	}

	path := append(parent[:len(parent):len(parent)], name)
	here := pathText(path)

	if name == "" {
		findings = append(findings, finding{Path: here, Message: "empty name"})
	}
	for _, key := range unknown {
		findings = append(findings, finding{Path: here, Message: fmt.Sprintf("unknown field %q ignored", key)})
	}
	if typ.IsSubGroup() {
		if hasValue {
			findings = append(findings, finding{Path: here, Message: fmt.Sprintf("value ignored on %s", typ)})
		}
		if children != nil {
			for _, child := range children.Items {
				findings = lintNode(path, child, findings)
			}
		}
	} else if children != nil {
		findings = append(findings, finding{Path: here, Message: fmt.Sprintf("options ignored on %s option", typ)})
	}
	return findings
}

func pathText(path []string) string {
	parts := make([]string, len(path))
	for index, name := range path {
		if name == "" {
			name = "(unnamed)"
		}
		parts[index] = name
	}
	return strings.Join(parts, "/")
}
