// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// FlagBinder is implemented by param fields that register their own
// flags. [BindFlags] calls AddFlags instead of reading struct tags.
// decode's --format and --color are FlagBinders wrapping [Choice], so
// "--format xml" fails during parsing.
type FlagBinder interface {
	AddFlags(flagSet *pflag.FlagSet)
}

// FlagsFromParams returns a [pflag.FlagSet] named name with flags bound
// to the tagged fields of params, a pointer to a struct. It panics on a
// bad tag or field type.
//
// Commands normally set [Command.Params] instead:
//
//	var params fingerprintParams
//	command := &cli.Command{
//	    Name:   "fingerprint",
//	    Params: func() any { return &params },
//	    Run: func(ctx context.Context, args []string) error {
//	        // params.CBOR, params.Hex and the global flags are set here.
//	    },
//	}
func FlagsFromParams(name string, params any) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	if err := BindFlags(params, flagSet); err != nil {
		panic(fmt.Sprintf("cli.FlagsFromParams(%q): %v", name, err))
	}
	return flagSet
}

// BindFlags registers a flag for each tagged field of params, a pointer
// to a struct.
//
// # Struct tags
//
//   - flag:"name" or flag:"name,n" gives the long name and an optional
//     shorthand, as in `flag:"hex,x"`. Untagged fields are skipped.
//   - desc:"help text" is the usage line.
//   - default:"value" is parsed as the field's Go type; without it the
//     zero value is the default.
//
// Field types are string, bool, int, int64, float64, [time.Duration]
// and []string.
//
// # Composition
//
// Embedded structs are bound recursively unless they implement
// [FlagBinder]. That is how every command picks up --config and
// --verbose from globalParams and --cbor and --hex from inputParams.
// Named fields implementing [FlagBinder] are bound through AddFlags.
func BindFlags(params any, flagSet *pflag.FlagSet) error {
	value := reflect.ValueOf(params)
	if value.Kind() != reflect.Ptr || value.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("params must be a pointer to a struct, got %T", params)
	}
	return bindStructFields(value.Elem(), flagSet)
}

// bindStructFields iterates over struct fields and binds them to flagSet.
func bindStructFields(structValue reflect.Value, flagSet *pflag.FlagSet) error {
	structType := structValue.Type()

	for i := range structType.NumField() {
		field := structType.Field(i)
		fieldValue := structValue.Field(i)

		// FlagBinder fields must be exported for Interface() to work.
		if field.Type.Kind() == reflect.Struct && field.IsExported() && fieldValue.CanAddr() {
			if binder, ok := fieldValue.Addr().Interface().(FlagBinder); ok {
				binder.AddFlags(flagSet)
				continue
			}
		}

		// Embedded structs, exported or not.
		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			if err := bindStructFields(fieldValue, flagSet); err != nil {
				return fmt.Errorf("embedded %s: %w", field.Name, err)
			}
			continue
		}

		// Skip fields without a flag tag.
		flagTag := field.Tag.Get("flag")
		if flagTag == "" {
			continue
		}

		name, shorthand := parseFlagTag(flagTag)
		description := field.Tag.Get("desc")
		defaultString := field.Tag.Get("default")

		if !fieldValue.CanAddr() {
			return fmt.Errorf("field %s: not addressable", field.Name)
		}

		if err := bindField(fieldValue, flagSet, name, shorthand, description, defaultString); err != nil {
			return fmt.Errorf("field %s: %w", field.Name, err)
		}
	}

	return nil
}

// parseFlagTag splits "name" into ("name", "") and "name,n" into ("name", "n").
func parseFlagTag(tag string) (string, string) {
	name, shorthand, _ := strings.Cut(tag, ",")
	return name, shorthand
}

// bindField creates a pflag binding for a single struct field.
func bindField(fieldValue reflect.Value, flagSet *pflag.FlagSet, name, shorthand, description, defaultString string) error {
	pointer := fieldValue.Addr().Interface()

	var err error
	switch target := pointer.(type) {
	case *string:
		flagSet.StringVarP(target, name, shorthand, defaultString, description)

	case *bool:
		var defaultValue bool
		if defaultValue, err = parseDefault(defaultString, strconv.ParseBool); err == nil {
			flagSet.BoolVarP(target, name, shorthand, defaultValue, description)
		}

	case *int:
		var defaultValue int
		if defaultValue, err = parseDefault(defaultString, strconv.Atoi); err == nil {
			flagSet.IntVarP(target, name, shorthand, defaultValue, description)
		}

	case *int64:
		var defaultValue int64
		if defaultValue, err = parseDefault(defaultString, parseInt64); err == nil {
			flagSet.Int64VarP(target, name, shorthand, defaultValue, description)
		}

	case *float64:
		var defaultValue float64
		if defaultValue, err = parseDefault(defaultString, parseFloat64); err == nil {
			flagSet.Float64VarP(target, name, shorthand, defaultValue, description)
		}

	case *time.Duration:
		var defaultValue time.Duration
		if defaultValue, err = parseDefault(defaultString, time.ParseDuration); err == nil {
			flagSet.DurationVarP(target, name, shorthand, defaultValue, description)
		}

	case *[]string:
		var defaultValue []string
		if defaultString != "" {
			defaultValue = strings.Split(defaultString, ",")
		}
		flagSet.StringSliceVarP(target, name, shorthand, defaultValue, description)

	default:
		return fmt.Errorf("unsupported type %s for flag --%s", fieldValue.Type(), name)
	}

	if err != nil {
		return fmt.Errorf("default for --%s: %w", name, err)
	}
	return nil
}

// parseDefault returns the zero value for an empty default tag.
func parseDefault[T any](s string, parse func(string) (T, error)) (T, error) {
	if s == "" {
		var zero T
		return zero, nil
	}
	return parse(s)
}

func parseInt64(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) }

func parseFloat64(s string) (float64, error) { return strconv.ParseFloat(s, 64) }
