// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// JSONWriter writes compact JSON.
type JSONWriter struct {
	tracker
	buffer bytes.Buffer
}

// NewJSONWriter returns an empty JSONWriter.
func NewJSONWriter() *JSONWriter {
	return &JSONWriter{}
}

// Bytes returns the encoded document.
func (w *JSONWriter) Bytes() ([]byte, error) {
	if err := w.finished(); err != nil {
		return nil, err
	}
	return w.buffer.Bytes(), nil
}

func (w *JSONWriter) value() error {
	separator, err := w.beforeValue()
	if err != nil {
		return err
	}
	if separator {
		w.buffer.WriteByte(',')
	}
	return nil
}

func (w *JSONWriter) BeginMap(size int) error {
	if err := w.value(); err != nil {
		return err
	}
	w.buffer.WriteByte('{')
	return w.open(true, size)
}

func (w *JSONWriter) BeginArray(size int) error {
	if err := w.value(); err != nil {
		return err
	}
	w.buffer.WriteByte('[')
	return w.open(false, size)
}

func (w *JSONWriter) Key(name string) error {
	separator, err := w.beforeKey()
	if err != nil {
		return err
	}
	if separator {
		w.buffer.WriteByte(',')
	}
	if err := w.quote(name); err != nil {
		return err
	}
	w.buffer.WriteByte(':')
	return nil
}

func (w *JSONWriter) End() error {
	closed, err := w.close()
	if err != nil {
		return err
	}
	if closed.isMap {
		w.buffer.WriteByte('}')
	} else {
		w.buffer.WriteByte(']')
	}
	return nil
}

func (w *JSONWriter) Null() error {
	if err := w.value(); err != nil {
		return err
	}
	w.buffer.WriteString("null")
	w.afterScalar()
	return nil
}

func (w *JSONWriter) Bool(value bool) error {
	if err := w.value(); err != nil {
		return err
	}
	w.buffer.WriteString(strconv.FormatBool(value))
	w.afterScalar()
	return nil
}

func (w *JSONWriter) Int(value int64) error {
	if err := w.value(); err != nil {
		return err
	}
	w.buffer.WriteString(strconv.FormatInt(value, 10))
	w.afterScalar()
	return nil
}

// Float writes value so that it always reads back as a float: integral
// values keep a ".0" suffix. Infinities and NaN have no JSON form and
// are rejected.
func (w *JSONWriter) Float(value float64) error {
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return fmt.Errorf("wire: %v has no JSON representation", value)
	}
	if err := w.value(); err != nil {
		return err
	}
	w.buffer.Write(appendJSONFloat(nil, value))
	w.afterScalar()
	return nil
}

func (w *JSONWriter) String(value string) error {
	if err := w.value(); err != nil {
		return err
	}
	if err := w.quote(value); err != nil {
		return err
	}
	w.afterScalar()
	return nil
}

// quote writes s as a JSON string. HTML characters are left unescaped
// to match what chat platforms send.
func (w *JSONWriter) quote(s string) error {
	if err := checkText(s); err != nil {
		return err
	}
	var scratch bytes.Buffer
	encoder := json.NewEncoder(&scratch)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(s); err != nil {
		return fmt.Errorf("wire: encode string: %w", err)
	}
	w.buffer.Write(bytes.TrimSuffix(scratch.Bytes(), []byte{'\n'}))
	return nil
}

// appendJSONFloat formats like encoding/json (plain notation between
// 1e-6 and 1e21, exponent notation outside) and then guarantees a
// fraction or exponent is present.
func appendJSONFloat(dst []byte, value float64) []byte {
	start := len(dst)
	format := byte('f')
	if abs := math.Abs(value); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	dst = strconv.AppendFloat(dst, value, format, -1, 64)
	if format == 'e' {
		// Shorten e-07 to e-7, as encoding/json does.
		n := len(dst)
		if n-start >= 4 && dst[n-4] == 'e' && dst[n-3] == '-' && dst[n-2] == '0' {
			dst[n-2] = dst[n-1]
			dst = dst[:n-1]
		}
		return dst
	}
	if bytes.IndexByte(dst[start:], '.') < 0 {
		dst = append(dst, '.', '0')
	}
	return dst
}
