// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/muesli/termenv"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/optwire/cmd/optwire/cli"
	"github.com/bureau-foundation/optwire/lib/number"
	"github.com/bureau-foundation/optwire/lib/option"
	"github.com/bureau-foundation/optwire/lib/wire"
)

// outputFlag selects decode's output format. Unset falls back to
// output.format in the configuration. "diag" is flag-only since it
// applies to CBOR input alone.
type outputFlag struct{ cli.Choice }

func (f *outputFlag) AddFlags(flagSet *pflag.FlagSet) {
	f.Bind(flagSet, "format", "f", "output format (default: output.format from config)", "json", "yaml", "tree", "diag")
}

// colorFlag overrides output.color for tree output.
type colorFlag struct{ cli.Choice }

func (f *colorFlag) AddFlags(flagSet *pflag.FlagSet) {
	f.Bind(flagSet, "color", "", "color tree output (default: output.color from config)", "auto", "always", "never")
}

// renderOptions writes decoded options to w. list selects whether the
// payload was a top-level array, which JSON and YAML output preserve.
func renderOptions(w io.Writer, options []option.CommandOption, list bool, format, color string) error {
	switch format {
	case "json":
		return renderJSON(w, options, list)
	case "yaml":
		return renderYAML(w, options, list)
	case "tree":
		return renderTree(w, options, color)
	default:
		return cli.Validation("unknown output format %q", format)
	}
}

// renderJSON writes the canonical encoding, indented. Indentation keeps
// number literals as encoded, so Number values stay float-shaped.
func renderJSON(w io.Writer, options []option.CommandOption, list bool) error {
	encoded, err := encodeOptions(wire.FormatJSON, options, list)
	if err != nil {
		return err
	}

	var indented bytes.Buffer
	if err := json.Indent(&indented, encoded, "", "  "); err != nil {
		return cli.Internal("indent: %w", err)
	}
	indented.WriteByte('\n')
	_, err = w.Write(indented.Bytes())
	return err
}

// renderYAML writes options as YAML with fields in wire order. The type
// discriminant is written as its wire integer with the type name as a
// line comment.
func renderYAML(w io.Writer, options []option.CommandOption, list bool) error {
	var document *yaml.Node
	if list {
		document = yamlOptionList(options)
	} else {
		document = yamlOption(options[0])
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(document); err != nil {
		return cli.Internal("encode yaml: %w", err)
	}
	return encoder.Close()
}

func yamlOptionList(options []option.CommandOption) *yaml.Node {
	sequence := &yaml.Node{Kind: yaml.SequenceNode}
	for _, child := range options {
		sequence.Content = append(sequence.Content, yamlOption(child))
	}
	return sequence
}

func yamlOption(opt option.CommandOption) *yaml.Node {
	mapping := &yaml.Node{Kind: yaml.MappingNode}
	add := func(key string, value *yaml.Node) {
		mapping.Content = append(mapping.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}, value)
	}

	if opt.Focused {
		add("focused", yamlScalar("!!bool", "true"))
	}
	add("name", yamlScalar("!!str", opt.Name))

	typ := opt.Value.Type()
	discriminant := yamlScalar("!!int", strconv.Itoa(int(typ)))
	discriminant.LineComment = "# " + typ.String()
	add("type", discriminant)

	if typ.IsSubGroup() {
		if children := opt.Options(); len(children) > 0 {
			add("options", yamlOptionList(children))
		}
		return mapping
	}
	tag, text := scalarText(opt.Value)
	add("value", yamlScalar(tag, text))
	return mapping
}

func yamlScalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

// scalarText returns the YAML tag and plain text of a scalar value.
// Identifiers are strings, as on the wire.
func scalarText(value option.Value) (string, string) {
	switch value := value.(type) {
	case option.StringValue:
		return "!!str", string(value)
	case option.IntegerValue:
		return "!!int", strconv.FormatInt(int64(value), 10)
	case option.BooleanValue:
		return "!!bool", strconv.FormatBool(bool(value))
	case option.NumberValue:
		return "!!float", floatText(value.Number)
	case option.UserValue:
		return "!!str", value.ID.String()
	case option.ChannelValue:
		return "!!str", value.ID.String()
	case option.RoleValue:
		return "!!str", value.ID.String()
	case option.MentionableValue:
		return "!!str", value.ID.String()
	case option.AttachmentValue:
		return "!!str", value.ID.String()
	default:
		return "!!null", "null"
	}
}

// floatText renders a Number the way YAML reads it back as a float.
func floatText(n number.Number) string {
	f := n.Float64()
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	text := n.String()
	if !strings.ContainsAny(text, ".eE") {
		text += ".0"
	}
	return text
}

// treeStyles are the lipgloss styles of tree output.
type treeStyles struct {
	root       lipgloss.Style
	item       lipgloss.Style
	enumerator lipgloss.Style
	focused    lipgloss.Style
	kind       lipgloss.Style
}

// newTreeStyles binds styles to a renderer for w. lipgloss otherwise
// detects the color profile from os.Stdout, so the profile is forced
// from the color mode here.
func newTreeStyles(w io.Writer, color string) treeStyles {
	profile := termenv.Ascii
	switch color {
	case "always":
		profile = termenv.ANSI256
	case "auto":
		if cli.IsTerminal(w) {
			profile = termenv.ANSI256
		}
	}
	renderer := lipgloss.NewRenderer(w, termenv.WithProfile(profile))
	renderer.SetColorProfile(profile)

	return treeStyles{
		root:       renderer.NewStyle().Bold(true),
		item:       renderer.NewStyle(),
		enumerator: renderer.NewStyle().Foreground(lipgloss.Color("240")),
		focused:    renderer.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		kind:       renderer.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// renderTree draws each top-level option as a tree.
func renderTree(w io.Writer, options []option.CommandOption, color string) error {
	styles := newTreeStyles(w, color)
	for _, opt := range options {
		if _, err := fmt.Fprintln(w, styles.build(opt).String()); err != nil {
			return err
		}
	}
	return nil
}

func (s treeStyles) build(opt option.CommandOption) *tree.Tree {
	node := tree.Root(s.label(opt)).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(s.enumerator).
		RootStyle(s.root).
		ItemStyle(s.item)
	for _, child := range opt.Options() {
		if child.Value.Type().IsSubGroup() {
			node.Child(s.build(child))
		} else {
			node.Child(s.label(child))
		}
	}
	return node
}

// label is "name = value (type)" for scalars and "name (type)" for
// sub-groups, with a focused marker when set.
func (s treeStyles) label(opt option.CommandOption) string {
	var builder strings.Builder
	builder.WriteString(opt.Name)
	if !opt.Value.Type().IsSubGroup() {
		builder.WriteString(" = ")
		builder.WriteString(treeValue(opt.Value))
	}
	builder.WriteString(" ")
	builder.WriteString(s.kind.Render("(" + opt.Value.Type().String() + ")"))
	if opt.Focused {
		builder.WriteString(" ")
		builder.WriteString(s.focused.Render("[focused]"))
	}
	return builder.String()
}

func treeValue(value option.Value) string {
	if text, ok := value.(option.StringValue); ok {
		return strconv.Quote(string(text))
	}
	_, text := scalarText(value)
	return text
}
