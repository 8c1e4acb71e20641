// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package capture

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/bureau-foundation/optwire/lib/codec"
	"github.com/bureau-foundation/optwire/lib/wire"
)

// Record is one captured payload.
type Record struct {
	// Index is the zero-based position of the record in the capture.
	Index int
	// Line is the one-based source line for JSON captures, zero for
	// CBOR.
	Line int
	// Data is the encoded option in the capture's format. JSON
	// records have comments and trailing commas already stripped.
	Data []byte
}

// Options configures a Reader.
type Options struct {
	Format      wire.Format
	Compression Compression
	// MaxRecordBytes rejects records larger than this many bytes.
	// JSON lines are measured as written, comments included, and a
	// longer line is skipped without being held in memory. Zero means
	// no limit.
	MaxRecordBytes int
	// MaxDepth is the deepest container nesting Replay decodes. Deeper
	// records are counted as ClassTooDeep failures. Zero means no
	// limit.
	MaxDepth int
}

// ErrRecordTooLarge is returned by Reader.Next for a record over
// Options.MaxRecordBytes.
var ErrRecordTooLarge = errors.New("capture record exceeds size limit")

// Reader iterates the records of a capture.
type Reader struct {
	options Options
	release func()
	closer  io.Closer

	lines *bufio.Reader
	cbor  *codec.Decoder

	index int
	line  int
}

// NewReader reads a capture from r. The caller keeps ownership of r;
// Close releases only decompression state.
func NewReader(r io.Reader, options Options) (*Reader, error) {
	source, release, err := decompress(r, options.Compression)
	if err != nil {
		return nil, err
	}
	reader := &Reader{options: options, release: release}
	switch options.Format {
	case wire.FormatJSON:
		reader.lines = bufio.NewReader(source)
	case wire.FormatCBOR:
		reader.cbor = codec.NewDecoder(source)
	default:
		release()
		return nil, fmt.Errorf("unknown capture format %q", options.Format)
	}
	return reader, nil
}

// Open opens a capture file. Compression always comes from the
// extension (".zst", ".lz4") and options.Compression is ignored. An
// empty options.Format is inferred from the extension beneath it:
// ".cbor" and ".cborseq" are CBOR, anything else JSON.
func Open(path string, options Options) (*Reader, error) {
	compression, inner := CompressionFromPath(path)
	options.Compression = compression
	if options.Format == "" {
		options.Format = FormatFromPath(inner)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening capture: %w", err)
	}
	reader, err := NewReader(file, options)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("opening capture %s: %w", path, err)
	}
	reader.closer = file
	return reader, nil
}

// FormatFromPath infers a capture format from an uncompressed file
// name.
func FormatFromPath(path string) wire.Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cbor", ".cborseq":
		return wire.FormatCBOR
	default:
		return wire.FormatJSON
	}
}

// Format returns the format of the records.
func (r *Reader) Format() wire.Format { return r.options.Format }

// Next returns the next record, or io.EOF after the last one.
func (r *Reader) Next() (Record, error) {
	if r.cbor != nil {
		return r.nextCBOR()
	}
	return r.nextJSON()
}

func (r *Reader) nextJSON() (Record, error) {
	for {
		line, consumed, err := r.readLine()
		if !consumed {
			if err == nil || errors.Is(err, io.EOF) {
				return Record{}, io.EOF
			}
			return Record{}, fmt.Errorf("reading capture line %d: %w", r.line+1, err)
		}
		r.line++
		if errors.Is(err, ErrRecordTooLarge) {
			return Record{}, fmt.Errorf("line %d: %w (over %d bytes)", r.line, ErrRecordTooLarge, r.options.MaxRecordBytes)
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return Record{}, fmt.Errorf("reading capture line %d: %w", r.line, err)
		}

		data := bytes.TrimSpace(jsonc.ToJSON(line))
		if len(data) == 0 {
			continue
		}
		record := Record{Index: r.index, Line: r.line, Data: data}
		r.index++
		return record, nil
	}
}

// readLine returns the next line without its newline. consumed is
// false only when no bytes were left. A line over MaxRecordBytes is
// read to its end in buffer-sized chunks and reported as
// ErrRecordTooLarge.
func (r *Reader) readLine() (line []byte, consumed bool, err error) {
	limit := r.options.MaxRecordBytes
	tooLong := false
	for {
		chunk, err := r.lines.ReadSlice('\n')
		if len(chunk) > 0 {
			consumed = true
		}
		content := bytes.TrimSuffix(chunk, []byte{'\n'})
		if !tooLong {
			if limit > 0 && len(line)+len(content) > limit {
				tooLong, line = true, nil
			} else {
				line = append(line, content...)
			}
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if tooLong && (err == nil || errors.Is(err, io.EOF)) {
			return nil, consumed, ErrRecordTooLarge
		}
		return line, consumed, err
	}
}

func (r *Reader) nextCBOR() (Record, error) {
	var raw codec.RawMessage
	if err := r.cbor.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return Record{}, io.EOF
		}
		return Record{}, fmt.Errorf("reading capture record %d: %w", r.index, err)
	}
	if r.options.MaxRecordBytes > 0 && len(raw) > r.options.MaxRecordBytes {
		return Record{}, fmt.Errorf("record %d: %w (%d > %d bytes)", r.index, ErrRecordTooLarge, len(raw), r.options.MaxRecordBytes)
	}
	record := Record{Index: r.index, Data: raw}
	r.index++
	return record, nil
}

// Close releases decompression state and, for readers returned by
// Open, closes the file.
func (r *Reader) Close() error {
	r.release()
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}
