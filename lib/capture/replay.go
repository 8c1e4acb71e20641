// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package capture

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/bureau-foundation/optwire/lib/option"
	"github.com/bureau-foundation/optwire/lib/wire"
)

// Error classes reported by Replay.
const (
	ClassSyntax       = "syntax"
	ClassMissing      = "missing_field"
	ClassDuplicate    = "duplicate_field"
	ClassInvalidType  = "invalid_type"
	ClassUnrecognized = "unrecognized_type"
	ClassTooDeep      = "too_deep"
	ClassOther        = "other"
)

// ClassifyError returns the error class of a decode failure.
func ClassifyError(err error) string {
	var (
		syntaxErr    *wire.SyntaxError
		missing      *option.MissingFieldError
		duplicate    *option.DuplicateFieldError
		invalid      *option.InvalidTypeError
		unrecognized *option.UnrecognizedTypeError
	)
	switch {
	case errors.Is(err, ErrTooDeep):
		return ClassTooDeep
	case errors.As(err, &syntaxErr):
		return ClassSyntax
	case errors.As(err, &missing):
		return ClassMissing
	case errors.As(err, &duplicate):
		return ClassDuplicate
	case errors.As(err, &invalid):
		return ClassInvalidType
	case errors.As(err, &unrecognized):
		return ClassUnrecognized
	default:
		return ClassOther
	}
}

// Failure is the first failing record of an error class.
type Failure struct {
	Class string `json:"class" yaml:"class"`
	Count int    `json:"count" yaml:"count"`
	// Record is the index of the first record in this class.
	Record  int    `json:"first_record" yaml:"first_record"`
	Message string `json:"first_message" yaml:"first_message"`
}

// Summary is the outcome of replaying a capture.
type Summary struct {
	Records int `json:"records" yaml:"records"`
	Decoded int `json:"decoded" yaml:"decoded"`
	// Distinct counts distinct fingerprints among decoded records.
	Distinct int       `json:"distinct" yaml:"distinct"`
	Failures []Failure `json:"failures" yaml:"failures"`
}

// Failed returns the number of records that did not decode.
func (s Summary) Failed() int { return s.Records - s.Decoded }

// Replay decodes every record from reader. Decode failures are counted
// by class rather than returned; only read errors and context
// cancellation stop the replay. A nil decoder decodes without
// logging.
func Replay(ctx context.Context, reader *Reader, decoder *option.Decoder) (Summary, error) {
	if decoder == nil {
		decoder = &option.Decoder{}
	}
	var summary Summary
	failures := make(map[string]*Failure)
	fingerprints := make(map[option.Digest]struct{})

	for {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		record, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return summary, err
		}
		summary.Records++

		decoded, err := decodeRecord(decoder, reader.options, record.Data)
		if err == nil {
			var digest option.Digest
			digest, err = option.Fingerprint(decoded)
			if err == nil {
				summary.Decoded++
				fingerprints[digest] = struct{}{}
				continue
			}
		}

		class := ClassifyError(err)
		failure, ok := failures[class]
		if !ok {
			failure = &Failure{Class: class, Record: record.Index, Message: describeRecord(record, err)}
			failures[class] = failure
		}
		failure.Count++
	}

	summary.Distinct = len(fingerprints)
	for _, failure := range failures {
		summary.Failures = append(summary.Failures, *failure)
	}
	sort.Slice(summary.Failures, func(i, j int) bool {
		return summary.Failures[i].Record < summary.Failures[j].Record
	})
	return summary, nil
}

// ErrTooDeep marks a record nested deeper than Options.MaxDepth.
var ErrTooDeep = errors.New("record nests too deeply")

// decodeRecord parses a record, checks its nesting against the depth
// limit, and decodes it.
func decodeRecord(decoder *option.Decoder, options Options, data []byte) (option.CommandOption, error) {
	node, err := wire.Parse(options.Format, data)
	if err != nil {
		return option.CommandOption{}, err
	}
	if depth := node.Depth(); options.MaxDepth > 0 && depth > options.MaxDepth {
		return option.CommandOption{}, fmt.Errorf("%w: %d levels, limit %d", ErrTooDeep, depth, options.MaxDepth)
	}
	return decoder.DecodeNode(node)
}

func describeRecord(record Record, err error) string {
	if record.Line > 0 {
		return fmt.Sprintf("line %d: %v", record.Line, err)
	}
	return fmt.Sprintf("record %d: %v", record.Index, err)
}
