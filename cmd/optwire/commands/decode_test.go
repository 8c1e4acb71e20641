// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"strings"
	"testing"

	"github.com/bureau-foundation/optwire/cmd/optwire/cli"
	"github.com/bureau-foundation/optwire/lib/testutil"
)

func TestDecodeCanonicalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		args  []string
		want  string
	}{
		{
			name:  "jsonc input, unknown field dropped",
			input: `{"type": 3, /* kind */ "name": "q", "value": "hi", "extra": 1,}`,
			want:  "{\n  \"name\": \"q\",\n  \"type\": 3,\n  \"value\": \"hi\"\n}\n",
		},
		{
			name:  "integer widened for a number option",
			input: `{"name":"n","type":10,"value":2}`,
			want:  "{\n  \"name\": \"n\",\n  \"type\": 10,\n  \"value\": 2.0\n}\n",
		},
		{
			name:  "empty options omitted",
			input: `{"name":"sub","type":1,"options":[]}`,
			want:  "{\n  \"name\": \"sub\",\n  \"type\": 1\n}\n",
		},
		{
			name:  "cbor given as hex",
			input: "a2 646e616d65 63737562 6474797065 01\n",
			args:  []string{"--cbor", "--hex"},
			want:  "{\n  \"name\": \"sub\",\n  \"type\": 1\n}\n",
		},
		{
			name:  "top-level list",
			input: `[{"name":"a","type":5,"value":true},{"name":"b","type":4,"value":7}]`,
			want: "[\n  {\n    \"name\": \"a\",\n    \"type\": 5,\n    \"value\": true\n  },\n" +
				"  {\n    \"name\": \"b\",\n    \"type\": 4,\n    \"value\": 7\n  }\n]\n",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			got := execute(t, test.input, append([]string{"decode"}, test.args...)...)
			requireSuccess(t, got)
			if got.stdout != test.want {
				t.Errorf("decode output:\n%s\nwant:\n%s", got.stdout, test.want)
			}
		})
	}
}

func TestDecodeFromFile(t *testing.T) {
	t.Parallel()

	path := testutil.WriteFile(t, "option.json", []byte(`{"name":"flag","type":5,"value":false}`))
	got := execute(t, "", "decode", path)
	requireSuccess(t, got)
	if !strings.Contains(got.stdout, `"value": false`) {
		t.Errorf("decode output = %q", got.stdout)
	}

	got = execute(t, "", "decode", path+".missing")
	if cli.StatusCode(got.err) != 3 {
		t.Errorf("missing file: error = %v, want not-found status", got.err)
	}

	got = execute(t, "", "decode", path, path)
	if cli.StatusCode(got.err) != 2 {
		t.Errorf("two files: error = %v, want usage status", got.err)
	}
}

func TestDecodeYAML(t *testing.T) {
	t.Parallel()

	got := execute(t, nestedOption, "decode", "--format", "yaml")
	requireSuccess(t, got)

	for _, want := range []string{
		"name: deploy",
		"# sub_command",
		"- focused: true",
		"value: us-east",
		`value: "123456789012345678"`,
		"# user",
		"value: 3.0",
	} {
		if !strings.Contains(got.stdout, want) {
			t.Errorf("yaml output missing %q:\n%s", want, got.stdout)
		}
	}
}

func TestDecodeTree(t *testing.T) {
	t.Parallel()

	got := execute(t, nestedOption, "decode", "-f", "tree", "--color", "never")
	requireSuccess(t, got)

	for _, want := range []string{
		"deploy (sub_command)",
		`region = "us-east" (string) [focused]`,
		"owner = 123456789012345678 (user)",
		"replicas = 3.0 (number)",
	} {
		if !strings.Contains(got.stdout, want) {
			t.Errorf("tree output missing %q:\n%s", want, got.stdout)
		}
	}
	if strings.Contains(got.stdout, "\x1b[") {
		t.Errorf("color never still produced escape sequences:\n%q", got.stdout)
	}
}

func TestDecodeTreeNestedGroups(t *testing.T) {
	t.Parallel()

	input := `{"name":"admin","type":2,"options":[
		{"name":"user","type":1,"options":[{"name":"target","type":6,"value":"42"}]}
	]}`
	got := execute(t, input, "decode", "--format", "tree")
	requireSuccess(t, got)

	lines := strings.Split(strings.TrimSpace(got.stdout), "\n")
	if len(lines) != 3 {
		t.Fatalf("tree has %d lines, want 3:\n%s", len(lines), got.stdout)
	}
	if !strings.HasPrefix(lines[0], "admin (sub_command_group)") {
		t.Errorf("root line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "user (sub_command)") || !strings.Contains(lines[2], "target = 42 (user)") {
		t.Errorf("nested lines = %q", lines[1:])
	}
}

func TestDecodeDiag(t *testing.T) {
	t.Parallel()

	// {"value": 2, "name": "n", "type": 10}: the integer value and the
	// field order survive in diagnostic notation.
	input := "a3 6576616c7565 02 646e616d65 616e 6474797065 0a"
	got := execute(t, input, "decode", "--cbor", "--hex", "--format", "diag")
	requireSuccess(t, got)
	if want := "{\"value\": 2, \"name\": \"n\", \"type\": 10}\n"; got.stdout != want {
		t.Errorf("diag output = %q, want %q", got.stdout, want)
	}

	half := "a3 646e616d65 616e 6474797065 0a 6576616c7565 f93e00"
	got = execute(t, half, "decode", "--cbor", "--hex", "-f", "diag")
	requireSuccess(t, got)
	if want := "{\"name\": \"n\", \"type\": 10, \"value\": 1.5}\n"; got.stdout != want {
		t.Errorf("diag output = %q, want %q", got.stdout, want)
	}

	// The payload must still decode as an option.
	got = execute(t, "a1 646e616d65 616e", "decode", "--cbor", "--hex", "--format", "diag")
	if cli.StatusCode(got.err) != 2 || got.stdout != "" {
		t.Errorf("undecodable payload: status %d, stdout %q", cli.StatusCode(got.err), got.stdout)
	}

	got = execute(t, `{"name":"q","type":3,"value":"hi"}`, "decode", "--format", "diag")
	if cli.StatusCode(got.err) != 2 || !strings.Contains(got.err.Error(), "--cbor") {
		t.Errorf("diag of JSON input: error = %v", got.err)
	}
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "strict mismatch",
			input: `{"name":"b","type":5,"value":"true"}`,
			want:  `invalid type: string "true", expected boolean`,
		},
		{
			name:  "duplicate field",
			input: `{"name":"a","name":"b","type":3,"value":"x"}`,
			want:  `duplicate field "name"`,
		},
		{
			name:  "missing value",
			input: `{"name":"a","type":4}`,
			want:  `missing field "value"`,
		},
		{
			name:  "nested error carries its path",
			input: `{"name":"s","type":1,"options":[{"name":"x","type":99}]}`,
			want:  "options[0]: unrecognized option type 99",
		},
		{
			name:  "malformed json",
			input: `{"name":`,
			want:  "",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			got := execute(t, test.input, "decode")
			if got.err == nil {
				t.Fatalf("expected error, got output %q", got.stdout)
			}
			if !strings.Contains(got.err.Error(), test.want) {
				t.Errorf("error = %q, want substring %q", got.err.Error(), test.want)
			}
			if cli.StatusCode(got.err) != 2 {
				t.Errorf("StatusCode = %d, want 2", cli.StatusCode(got.err))
			}
		})
	}
}

func TestDecodeLimits(t *testing.T) {
	t.Parallel()

	tight := `
limits:
  max_depth: 2
  max_payload_bytes: 64
`
	got := executeWithConfig(t, tight, nestedOption, "decode")
	if got.err == nil || !strings.Contains(got.err.Error(), "limits.max_payload_bytes") {
		t.Errorf("oversized payload: error = %v", got.err)
	}

	deep := `{"name":"s","type":1,"options":[{"name":"x","type":5,"value":true}]}`
	got = executeWithConfig(t, "limits:\n  max_depth: 2\n", deep, "decode")
	if got.err == nil || !strings.Contains(got.err.Error(), "nests 3 levels") {
		t.Errorf("deep payload: error = %v", got.err)
	}

	got = executeWithConfig(t, "limits:\n  max_depth: 3\n", deep, "decode")
	requireSuccess(t, got)
}

func TestDecodeFormatFromConfig(t *testing.T) {
	t.Parallel()

	got := executeWithConfig(t, "output:\n  format: yaml\n", `{"name":"a","type":4,"value":1}`, "decode")
	requireSuccess(t, got)
	if !strings.Contains(got.stdout, "value: 1") || strings.Contains(got.stdout, "{") {
		t.Errorf("expected yaml from config, got:\n%s", got.stdout)
	}

	got = execute(t, `{"name":"a","type":4,"value":1}`, "decode", "--format", "xml")
	if got.err == nil || !strings.Contains(got.err.Error(), "json, yaml, tree") {
		t.Errorf("bad --format: error = %v", got.err)
	}
}

func TestDecodeLogsSkippedFieldsWhenVerbose(t *testing.T) {
	t.Parallel()

	got := execute(t, `{"name":"a","type":5,"value":true,"locale":"en"}`, "decode", "-v")
	requireSuccess(t, got)
	if !strings.Contains(got.stderr, "skipping unknown option field") || !strings.Contains(got.stderr, "locale") {
		t.Errorf("verbose stderr = %q, want skipped-field log", got.stderr)
	}

	got = execute(t, `{"name":"a","type":5,"value":true,"locale":"en"}`, "decode")
	requireSuccess(t, got)
	if got.stderr != "" {
		t.Errorf("quiet stderr = %q, want nothing at warn level", got.stderr)
	}
}

func TestDecodeLogsFocusWhenVerbose(t *testing.T) {
	t.Parallel()

	got := execute(t, nestedOption, "decode", "--verbose")
	requireSuccess(t, got)
	if !strings.Contains(got.stderr, "autocomplete focus") || !strings.Contains(got.stderr, "deploy/region") {
		t.Errorf("verbose stderr = %q, want the focused option path", got.stderr)
	}
}
