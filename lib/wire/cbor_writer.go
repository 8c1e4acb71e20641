// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/bureau-foundation/optwire/lib/codec"
)

// CBORWriter writes CBOR with definite-length containers in emission
// order. Scalars use lib/codec's Core Deterministic encoding, so
// integers and floats take their shortest form.
type CBORWriter struct {
	tracker
	buffer bytes.Buffer
}

// NewCBORWriter returns an empty CBORWriter.
func NewCBORWriter() *CBORWriter {
	return &CBORWriter{}
}

// Bytes returns the encoded item.
func (w *CBORWriter) Bytes() ([]byte, error) {
	if err := w.finished(); err != nil {
		return nil, err
	}
	return w.buffer.Bytes(), nil
}

func (w *CBORWriter) BeginMap(size int) error {
	if _, err := w.beforeValue(); err != nil {
		return err
	}
	if err := w.open(true, size); err != nil {
		return err
	}
	w.buffer.Write(appendHead(nil, majorMap, uint64(size)))
	return nil
}

func (w *CBORWriter) BeginArray(size int) error {
	if _, err := w.beforeValue(); err != nil {
		return err
	}
	if err := w.open(false, size); err != nil {
		return err
	}
	w.buffer.Write(appendHead(nil, majorArray, uint64(size)))
	return nil
}

func (w *CBORWriter) Key(name string) error {
	if err := checkText(name); err != nil {
		return err
	}
	if _, err := w.beforeKey(); err != nil {
		return err
	}
	return w.marshal(name)
}

func (w *CBORWriter) End() error {
	_, err := w.close()
	return err
}

func (w *CBORWriter) Null() error { return w.scalar(nil) }

func (w *CBORWriter) Bool(value bool) error { return w.scalar(value) }

func (w *CBORWriter) Int(value int64) error { return w.scalar(value) }

func (w *CBORWriter) String(value string) error {
	if err := checkText(value); err != nil {
		return err
	}
	return w.scalar(value)
}

// Float writes value in its shortest lossless float form. Unlike JSON,
// CBOR can carry infinities and NaN.
func (w *CBORWriter) Float(value float64) error { return w.scalar(value) }

func (w *CBORWriter) scalar(value any) error {
	if _, err := w.beforeValue(); err != nil {
		return err
	}
	if err := w.marshal(value); err != nil {
		return err
	}
	w.afterScalar()
	return nil
}

func (w *CBORWriter) marshal(value any) error {
	encoded, err := codec.Marshal(value)
	if err != nil {
		return fmt.Errorf("wire: encode CBOR %T: %w", value, err)
	}
	w.buffer.Write(encoded)
	return nil
}

// appendHead appends the shortest head for a major type and argument
// (RFC 8949 §3).
func appendHead(dst []byte, major byte, argument uint64) []byte {
	initial := major << 5
	switch {
	case argument < 24:
		return append(dst, initial|byte(argument))
	case argument <= math.MaxUint8:
		return append(dst, initial|24, byte(argument))
	case argument <= math.MaxUint16:
		return binary.BigEndian.AppendUint16(append(dst, initial|25), uint16(argument))
	case argument <= math.MaxUint32:
		return binary.BigEndian.AppendUint32(append(dst, initial|26), uint32(argument))
	default:
		return binary.BigEndian.AppendUint64(append(dst, initial|27), argument)
	}
}
