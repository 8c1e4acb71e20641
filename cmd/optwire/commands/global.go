// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"log/slog"

	"github.com/bureau-foundation/optwire/cmd/optwire/cli"
	"github.com/bureau-foundation/optwire/lib/config"
	"github.com/bureau-foundation/optwire/lib/option"
)

// globalParams are accepted by every command.
type globalParams struct {
	ConfigPath string `json:"-" flag:"config" desc:"configuration file (default: $OPTWIRE_CONFIG, else built-in defaults)"`
	Verbose    bool   `json:"-" flag:"verbose,v" desc:"log at debug level"`
}

// session is the resolved configuration and logger for one command run.
type session struct {
	config *config.Config
	logger *slog.Logger
}

// open resolves configuration and builds the command's logger.
func (g *globalParams) open(streams Streams, command string) (*session, error) {
	cfg, err := config.Resolve(g.ConfigPath)
	if err != nil {
		return nil, cli.Validation("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, cli.Validation("invalid config: %w", err)
	}

	level, _ := cfg.Logging.SlogLevel()
	if g.Verbose {
		level = slog.LevelDebug
	}
	logger := cli.NewLogger(streams.Stderr, level).With("command", command)
	logger.Debug("configuration resolved",
		"environment", cfg.Environment,
		"max_depth", cfg.Limits.MaxDepth,
		"max_payload_bytes", cfg.Limits.MaxPayloadBytes,
	)
	return &session{config: cfg, logger: logger}, nil
}

// decoder returns an option decoder that logs skipped fields.
func (s *session) decoder() *option.Decoder {
	return &option.Decoder{Logger: s.logger}
}
