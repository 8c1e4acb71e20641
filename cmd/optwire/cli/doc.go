// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the optwire tool.
//
// The central type is [Command], which represents a named subcommand with
// optional nested [Command.Subcommands], a flag source (either a
// [pflag.FlagSet] factory or a tagged params struct bound by
// [BindFlags]), and a Run function. Commands are assembled into a tree
// in cmd/optwire/commands and dispatched via [Command.Execute], which
// handles flag parsing, subcommand routing, and structured help output
// with examples.
//
// When a user types an unknown subcommand or flag, the framework computes
// Levenshtein edit distance against all known names and suggests the
// closest match (threshold: distance <= 3). This is implemented in
// suggest.go.
//
// Commands report failures two ways. A [*ToolError] carries a category
// (validation or internal) that main maps to an exit status after
// printing the message. An [*ExitError] carries only an exit code, for
// commands that have already written their own report.
package cli
