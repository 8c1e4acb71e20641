// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/bureau-foundation/optwire/cmd/optwire/cli"
	"github.com/bureau-foundation/optwire/lib/capture"
	"github.com/bureau-foundation/optwire/lib/testutil"
	"github.com/bureau-foundation/optwire/lib/wire"
)

// writeCapture writes records as a zstd-compressed JSON Lines capture
// and returns its path.
func writeCapture(t *testing.T, records ...string) string {
	t.Helper()
	var buffer bytes.Buffer
	writer, err := capture.NewWriter(&buffer, wire.FormatJSON, capture.CompressionZstd)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	for _, record := range records {
		if err := writer.Write([]byte(record)); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return testutil.WriteFile(t, "interactions.jsonl.zst", buffer.Bytes())
}

var mixedCapture = []string{
	`{"name":"ping","type":3,"value":"a"}`,
	`{"type":3,"value":"a","name":"ping","trace":"x"}`,
	`{"name":"ping","type":5,"value":"a"}`,
	`{"name":"ping",`,
}

func TestReplayText(t *testing.T) {
	t.Parallel()

	path := writeCapture(t, mixedCapture...)
	got := execute(t, "", "replay", path)
	requireSuccess(t, got)

	for _, want := range []string{
		"records:  4\n",
		"decoded:  2\n",
		"failed:   2\n",
		"distinct: 1\n",
		"CLASS",
		"invalid_type",
		"line 3: invalid type",
		"syntax",
		"line 4: ",
	} {
		if !strings.Contains(got.stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, got.stdout)
		}
	}
	if strings.Index(got.stdout, "invalid_type") > strings.Index(got.stdout, "syntax") {
		t.Errorf("failures not ordered by first record:\n%s", got.stdout)
	}
}

func TestReplayJSONReport(t *testing.T) {
	t.Parallel()

	path := writeCapture(t, mixedCapture...)
	got := execute(t, "", "replay", "--report", "json", path)
	requireSuccess(t, got)

	var summary capture.Summary
	if err := json.Unmarshal([]byte(got.stdout), &summary); err != nil {
		t.Fatalf("report is not JSON: %v\n%s", err, got.stdout)
	}
	if summary.Records != 4 || summary.Decoded != 2 || summary.Distinct != 1 {
		t.Errorf("summary = %+v", summary)
	}
	if len(summary.Failures) != 2 || summary.Failures[0].Class != capture.ClassInvalidType || summary.Failures[0].Record != 2 {
		t.Errorf("failures = %+v", summary.Failures)
	}
}

func TestReplayFail(t *testing.T) {
	t.Parallel()

	clean := writeCapture(t, mixedCapture[:2]...)
	requireSuccess(t, execute(t, "", "replay", "--fail", clean))

	mixed := writeCapture(t, mixedCapture...)
	got := execute(t, "", "replay", "--fail", mixed)
	requireExitCode(t, got, 1)
	if !strings.Contains(got.stdout, "failed:   2") {
		t.Errorf("summary not written before failing:\n%s", got.stdout)
	}
}

func TestReplayErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		args   []string
		status int
	}{
		{"missing capture", []string{"replay", "/nonexistent/optwire/capture.jsonl"}, 3},
		{"no capture", []string{"replay"}, 2},
		{"two captures", []string{"replay", "a.jsonl", "b.jsonl"}, 2},
		{"bad records flag", []string{"replay", "--records", "xml", "a.jsonl"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := execute(t, "", tt.args...)
			if got.err == nil {
				t.Fatal("expected error")
			}
			if status := cli.StatusCode(got.err); status != tt.status {
				t.Errorf("StatusCode = %d, want %d (error: %v)", status, tt.status, got.err)
			}
		})
	}
}

func TestReplayFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		flag, path, configured string
		want                   wire.Format
	}{
		{"", "capture.jsonl", "json", wire.FormatJSON},
		{"", "capture.jsonl", "cbor", wire.FormatCBOR},
		{"", "capture.cborseq", "json", wire.FormatCBOR},
		{"", "capture.cbor.zst", "json", wire.FormatCBOR},
		{"", "capture.jsonl.lz4", "json", wire.FormatJSON},
		{"json", "capture.cbor", "cbor", wire.FormatJSON},
		{"cbor", "capture.jsonl", "json", wire.FormatCBOR},
	}

	for _, tt := range tests {
		got, err := replayFormat(tt.flag, tt.path, tt.configured)
		if err != nil {
			t.Errorf("replayFormat(%q, %q, %q): %v", tt.flag, tt.path, tt.configured, err)
			continue
		}
		if got != tt.want {
			t.Errorf("replayFormat(%q, %q, %q) = %s, want %s", tt.flag, tt.path, tt.configured, got, tt.want)
		}
	}
}

func TestReplayAppliesDepthLimit(t *testing.T) {
	t.Parallel()

	// Five containers deep, within the configured limit of 8; nine is over it.
	shallow := `{"name":"a","type":1,"options":[{"name":"b","type":1,"options":[{"name":"c","type":5,"value":true}]}]}`
	deep := `{"name":"a","type":1,"options":[{"name":"b","type":2,"options":[{"name":"c","type":1,"options":[{"name":"d","type":1,"options":[{"name":"e","type":5,"value":true}]}]}]}]}`

	got := execute(t, deep, "decode")
	if cli.StatusCode(got.err) != 2 || !strings.Contains(got.err.Error(), "max_depth") {
		t.Fatalf("decode of the deep record: error = %v, want the depth limit", got.err)
	}

	got = execute(t, "", "replay", "--report", "json", writeCapture(t, shallow, deep))
	requireSuccess(t, got)
	var summary capture.Summary
	if err := json.Unmarshal([]byte(got.stdout), &summary); err != nil {
		t.Fatalf("report is not JSON: %v\n%s", err, got.stdout)
	}
	if summary.Decoded != 1 || len(summary.Failures) != 1 || summary.Failures[0].Class != capture.ClassTooDeep {
		t.Errorf("summary = %+v, want the deep record counted as too_deep", summary)
	}
}
