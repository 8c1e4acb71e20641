// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bureau-foundation/optwire/cmd/optwire/cli"
	"github.com/bureau-foundation/optwire/lib/testutil"
)

const testConfig = `
environment: development
limits:
  max_depth: 8
  max_payload_bytes: 4096
output:
  format: json
  color: never
logging:
  level: warn
`

// nestedOption is a sub-command with a focused leaf and two scalar
// leaves, the shape of an autocomplete interaction.
const nestedOption = `{
  "name": "deploy",
  "type": 1,
  "options": [
    {"name": "region", "type": 3, "value": "us-east", "focused": true},
    {"name": "owner", "type": 6, "value": "123456789012345678"},
    {"name": "replicas", "type": 10, "value": 3}
  ]
}`

type result struct {
	stdout string
	stderr string
	err    error
}

// execute runs the command tree with testConfig. args[0] is the
// subcommand; --config is inserted after it.
func execute(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	return executeWithConfig(t, testConfig, stdin, args...)
}

func executeWithConfig(t *testing.T, configYAML, stdin string, args ...string) result {
	t.Helper()
	configPath := testutil.WriteFile(t, "optwire.yaml", []byte(configYAML))
	full := append([]string{args[0], "--config", configPath}, args[1:]...)

	var stdout, stderr bytes.Buffer
	streams := Streams{Stdin: strings.NewReader(stdin), Stdout: &stdout, Stderr: &stderr}
	err := Root(streams).Execute(context.Background(), full)
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func requireSuccess(t *testing.T, got result) {
	t.Helper()
	if got.err != nil {
		t.Fatalf("Execute: %v\nstderr: %s", got.err, got.stderr)
	}
}

func requireExitCode(t *testing.T, got result, code int) {
	t.Helper()
	var exitErr *cli.ExitError
	if !errors.As(got.err, &exitErr) || exitErr.Code != code {
		t.Fatalf("Execute error = %v, want exit code %d", got.err, code)
	}
}

func TestRootListsCommands(t *testing.T) {
	t.Parallel()

	var stderr bytes.Buffer
	root := Root(Streams{Stdin: strings.NewReader(""), Stdout: &bytes.Buffer{}, Stderr: &stderr})
	if err := root.Execute(context.Background(), []string{"--help"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	for _, name := range []string{"decode", "encode", "validate", "fingerprint", "replay", "version"} {
		if !strings.Contains(stderr.String(), name) {
			t.Errorf("help missing %q:\n%s", name, stderr.String())
		}
	}
}

func TestVersion(t *testing.T) {
	t.Parallel()

	got := execute(t, "", "version")
	requireSuccess(t, got)
	if !strings.HasPrefix(got.stdout, "optwire ") {
		t.Errorf("version output = %q", got.stdout)
	}

	got = execute(t, "", "version", "--verbose")
	requireSuccess(t, got)
	if !strings.Contains(got.stderr, "build info") {
		t.Errorf("verbose stderr = %q, want the build info log", got.stderr)
	}

	got = execute(t, "", "version", "extra")
	if cli.StatusCode(got.err) != 2 {
		t.Errorf("version with an argument: error = %v, want a usage error", got.err)
	}
}

func TestBadConfigIsValidationError(t *testing.T) {
	t.Parallel()

	got := executeWithConfig(t, "output:\n  format: xml\n", `{"name":"a","type":5,"value":true}`, "decode")
	if got.err == nil {
		t.Fatal("expected error for invalid config")
	}
	if !strings.Contains(got.err.Error(), "output.format") {
		t.Errorf("error = %v, want output.format problem", got.err)
	}
	if cli.StatusCode(got.err) != 2 {
		t.Errorf("StatusCode = %d, want 2", cli.StatusCode(got.err))
	}
}
