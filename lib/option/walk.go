// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package option

import "errors"

// SkipChildren can be returned by a WalkFunc to skip the nested
// options of the option just visited.
var SkipChildren = errors.New("skip children")

// WalkFunc is called for every option in a tree. path holds the names
// of the enclosing sub-commands, outermost first, followed by the
// option's own name. The slice is reused between calls.
type WalkFunc func(path []string, option CommandOption) error

// Walk visits options depth-first in wire order. A non-nil error other
// than SkipChildren stops the walk and is returned.
func Walk(options []CommandOption, fn WalkFunc) error {
	return walk(nil, options, fn)
}

func walk(path []string, options []CommandOption, fn WalkFunc) error {
	for _, option := range options {
		current := append(path, option.Name)
		err := fn(current, option)
		if errors.Is(err, SkipChildren) {
			continue
		}
		if err != nil {
			return err
		}
		if err := walk(current, option.Options(), fn); err != nil {
			return err
		}
	}
	return nil
}

// Focused returns the focused option of an autocomplete interaction
// and the path to it. Autocomplete marks at most one leaf option; the
// first focused option in walk order is returned.
func Focused(options []CommandOption) ([]string, CommandOption, bool) {
	var (
		foundPath []string
		found     CommandOption
		ok        bool
	)
	errFound := errors.New("found")
	_ = Walk(options, func(path []string, option CommandOption) error {
		if !option.Focused {
			return nil
		}
		foundPath = append([]string(nil), path...)
		found, ok = option, true
		return errFound
	})
	return foundPath, found, ok
}
