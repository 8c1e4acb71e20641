// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for optwire.
//
// Configuration is loaded from a single file specified by either the
// OPTWIRE_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There is no automatic file search. [Resolve] is the
// CLI entry point: an explicit path wins, then OPTWIRE_CONFIG, and
// with neither the built-in [Default] is used.
//
// The configuration file supports environment-specific sections
// (development, staging, production) that override base values when
// [Config].Environment matches. Production defaults are stricter when
// no production section is given: logs drop to warnings and output is
// never colored.
//
// Variable expansion is performed on path fields after loading:
// ${HOME}, ${OPTWIRE_ROOT}, and ${VAR:-default} patterns are expanded.
// No other environment variables override config values.
//
// Key exports:
//
//   - [Config] -- master struct with Limits, Output, Logging, Capture
//   - [Default] -- returns a Config with development defaults
//   - [Load], [LoadFile], and [Resolve] -- the entry points for loading
//
// This package depends on no other optwire packages.
package config
