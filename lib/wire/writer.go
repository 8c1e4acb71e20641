// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Writer is a streaming structural encoder. Calls must form exactly
// one well-nested value: inside a map each value is preceded by Key,
// and every BeginMap or BeginArray is closed by End after exactly the
// declared number of entries.
type Writer interface {
	BeginMap(size int) error
	Key(name string) error
	BeginArray(size int) error
	End() error

	Null() error
	Bool(value bool) error
	Int(value int64) error
	Float(value float64) error
	String(value string) error
}

func checkText(s string) error {
	if !utf8.ValidString(s) {
		return fmt.Errorf("wire: %w: %q", ErrInvalidUTF8, s)
	}
	return nil
}

// BufferWriter is a Writer that accumulates its output in memory.
type BufferWriter interface {
	Writer
	// Bytes returns the encoded value. Fails if no complete value
	// has been written or a container is still open.
	Bytes() ([]byte, error)
}

// frame tracks one open container.
type frame struct {
	isMap    bool
	declared int
	written  int
	// keyed is true between a map Key and its value.
	keyed bool
}

// tracker enforces nesting and declared sizes. Both writers embed it so
// that their structural rules are identical.
type tracker struct {
	stack    []frame
	complete bool
}

// beforeValue validates that a value may be written at this point.
// separator reports whether the value follows an earlier array item.
func (t *tracker) beforeValue() (separator bool, err error) {
	if len(t.stack) == 0 {
		if t.complete {
			return false, errors.New("wire: value written after top-level value was complete")
		}
		return false, nil
	}
	top := &t.stack[len(t.stack)-1]
	if top.isMap {
		if !top.keyed {
			return false, errors.New("wire: map value written without a key")
		}
		top.keyed = false
		return false, nil
	}
	if top.written >= top.declared {
		return false, fmt.Errorf("%w: array declared %d items", ErrSizeMismatch, top.declared)
	}
	top.written++
	return top.written > 1, nil
}

// afterScalar marks the top-level value complete when a scalar is the
// whole document.
func (t *tracker) afterScalar() {
	if len(t.stack) == 0 {
		t.complete = true
	}
}

// beforeKey validates a map key. separator reports whether the key
// follows an earlier field.
func (t *tracker) beforeKey() (separator bool, err error) {
	if len(t.stack) == 0 || !t.stack[len(t.stack)-1].isMap {
		return false, errors.New("wire: key written outside a map")
	}
	top := &t.stack[len(t.stack)-1]
	if top.keyed {
		return false, errors.New("wire: key written while previous key has no value")
	}
	if top.written >= top.declared {
		return false, fmt.Errorf("%w: map declared %d fields", ErrSizeMismatch, top.declared)
	}
	top.keyed = true
	top.written++
	return top.written > 1, nil
}

func (t *tracker) open(isMap bool, size int) error {
	if size < 0 {
		return fmt.Errorf("wire: negative container size %d", size)
	}
	t.stack = append(t.stack, frame{isMap: isMap, declared: size})
	return nil
}

func (t *tracker) close() (frame, error) {
	if len(t.stack) == 0 {
		return frame{}, errors.New("wire: End without an open container")
	}
	top := t.stack[len(t.stack)-1]
	if top.keyed {
		return frame{}, errors.New("wire: map closed after a key with no value")
	}
	if top.written != top.declared {
		kind := "array"
		if top.isMap {
			kind = "map"
		}
		return frame{}, fmt.Errorf("%w: %s declared %d entries, wrote %d", ErrSizeMismatch, kind, top.declared, top.written)
	}
	t.stack = t.stack[:len(t.stack)-1]
	if len(t.stack) == 0 {
		t.complete = true
	}
	return top, nil
}

func (t *tracker) finished() error {
	if len(t.stack) > 0 {
		return fmt.Errorf("wire: %d container(s) still open", len(t.stack))
	}
	if !t.complete {
		return errors.New("wire: nothing written")
	}
	return nil
}

// WriteNode re-emits a parsed node. Map entries keep their order and
// duplicates, so a JSON document can be carried into CBOR unchanged.
// Byte strings and CBOR-only items have no Writer form and are
// rejected.
func WriteNode(w Writer, node Node) error {
	switch node.Kind {
	case KindNull:
		return w.Null()
	case KindBool:
		return w.Bool(node.Bool)
	case KindInteger:
		return w.Int(node.Int)
	case KindFloat:
		return w.Float(node.Float)
	case KindString:
		return w.String(node.Text)
	case KindArray:
		if err := w.BeginArray(len(node.Items)); err != nil {
			return err
		}
		for _, item := range node.Items {
			if err := WriteNode(w, item); err != nil {
				return err
			}
		}
		return w.End()
	case KindMap:
		if err := w.BeginMap(len(node.Fields)); err != nil {
			return err
		}
		for _, field := range node.Fields {
			if err := w.Key(field.Key); err != nil {
				return err
			}
			if err := WriteNode(w, field.Value); err != nil {
				return err
			}
		}
		return w.End()
	default:
		return fmt.Errorf("wire: cannot write %s", node.Describe())
	}
}
