// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package capture

import (
	"bytes"
	"fmt"
	"io"

	"github.com/bureau-foundation/optwire/lib/codec"
	"github.com/bureau-foundation/optwire/lib/wire"
)

// Writer appends records to a capture stream.
type Writer struct {
	format  wire.Format
	stream  io.WriteCloser
	encoder *codec.Encoder
}

// NewWriter writes a capture to w. Close must be called to flush
// compressed output; it does not close w.
func NewWriter(w io.Writer, format wire.Format, compression Compression) (*Writer, error) {
	if _, err := wire.ParseFormat(string(format)); err != nil {
		return nil, err
	}
	stream, err := compress(w, compression)
	if err != nil {
		return nil, err
	}
	return &Writer{format: format, stream: stream, encoder: codec.NewEncoder(stream)}, nil
}

// Write appends one encoded option. JSON records must not contain a
// newline; the encoder in lib/option never emits one. CBOR records must
// be exactly one well-formed data item.
func (w *Writer) Write(data []byte) error {
	if w.format == wire.FormatJSON {
		if bytes.IndexByte(data, '\n') >= 0 {
			return fmt.Errorf("capture: JSON record contains a newline")
		}
		if _, err := w.stream.Write(append(data[:len(data):len(data)], '\n')); err != nil {
			return fmt.Errorf("capture: %w", err)
		}
		return nil
	}
	if len(data) == 0 {
		return fmt.Errorf("capture: empty CBOR record")
	}
	// The encoder checks that data is exactly one well-formed item, so
	// a bad record cannot desynchronize the sequence.
	if err := w.encoder.Encode(codec.RawMessage(data)); err != nil {
		return fmt.Errorf("capture: %w", err)
	}
	return nil
}

// Close flushes the stream.
func (w *Writer) Close() error {
	return w.stream.Close()
}
