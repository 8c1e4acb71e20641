// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/pflag"
)

// Choice is a string flag restricted to a fixed set of values. An empty
// Value means "not given on the command line", so callers can fall back
// to configuration. Embed it in a params struct through a named type
// that implements [FlagBinder]:
//
//	type formatFlag struct{ cli.Choice }
//
//	func (f *formatFlag) AddFlags(flagSet *pflag.FlagSet) {
//	    f.Bind(flagSet, "format", "f", "output format", "json", "yaml")
//	}
type Choice struct {
	Value   string
	allowed []string
}

// Bind registers the flag on flagSet.
func (c *Choice) Bind(flagSet *pflag.FlagSet, name, shorthand, description string, allowed ...string) {
	c.allowed = allowed
	flagSet.VarP(c, name, shorthand, fmt.Sprintf("%s (%s)", description, strings.Join(allowed, "|")))
}

// String implements [pflag.Value].
func (c *Choice) String() string { return c.Value }

// Set implements [pflag.Value], rejecting values outside the allowed set.
func (c *Choice) Set(value string) error {
	if !slices.Contains(c.allowed, value) {
		return fmt.Errorf("must be one of %s", strings.Join(c.allowed, ", "))
	}
	c.Value = value
	return nil
}

// Type implements [pflag.Value].
func (c *Choice) Type() string { return "string" }

// Or returns the flag value, or fallback when the flag was not given.
func (c *Choice) Or(fallback string) string {
	if c.Value == "" {
		return fallback
	}
	return c.Value
}
