// Package interpret converts raw strings into typed values.
//
// A Registry maps an exact reflect.Type to a converter function. Optionality
// is expressed with pointer types: *T is the optional form of T, and callers
// unwrap it (see Unwrap) before asking the registry for a conversion.
package interpret

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Interpreter converts a raw string into a value of one specific type.
type Interpreter func(s string) (any, error)

// InterpretError reports that a string could not be converted to the
// requested type. It carries the offending input and the target type so
// callers can build their own diagnostics, and the converter's own error as
// Cause when the converter rejected the input (nil when no converter was
// registered at all).
type InterpretError struct {
	Input string
	Type  reflect.Type
	Cause error
}

func (e *InterpretError) Error() string {
	msg := fmt.Sprintf("could not interpret %q as %s", e.Input, typeName(e.Type))
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *InterpretError) Unwrap() error {
	return e.Cause
}

// Registry maps type identities to converters. The zero value is not usable;
// construct with NewRegistry or Default.
//
// A Registry may be shared across resolution passes, but it has no internal
// locking. Callers must not call Register concurrently with a resolution.
type Registry struct {
	byType map[reflect.Type]Interpreter
}

// NewRegistry returns an empty registry with no converters installed.
func NewRegistry() *Registry {
	return &Registry{byType: make(map[reflect.Type]Interpreter)}
}

// Register installs a converter for an exact type, overwriting any prior
// entry for that type.
func (r *Registry) Register(t reflect.Type, fn Interpreter) {
	r.byType[t] = fn
}

// Contains reports whether a converter is registered for the exact type t.
// Optional wrappers are not unwrapped here.
func (r *Registry) Contains(t reflect.Type) bool {
	_, ok := r.byType[t]
	return ok
}

// Interpret converts s to a value of the exact type t. The returned value's
// dynamic type equals t on success. Fails with *InterpretError when no
// converter is registered for t or when the converter rejects s.
func (r *Registry) Interpret(s string, t reflect.Type) (any, error) {
	fn, ok := r.byType[t]
	if !ok {
		return nil, &InterpretError{Input: s, Type: t}
	}
	v, err := fn(s)
	if err != nil {
		return nil, &InterpretError{Input: s, Type: t, Cause: err}
	}
	return v, nil
}

// IsOptional reports whether t is an optional (pointer) type.
func IsOptional(t reflect.Type) bool {
	return t.Kind() == reflect.Pointer
}

// Unwrap returns the inner type of an optional type, or t itself when t is
// not optional.
func Unwrap(t reflect.Type) reflect.Type {
	if IsOptional(t) {
		return t.Elem()
	}
	return t
}

// TypeName renders t for diagnostics and usage text: the bare type name, or
// Optional[Inner] for pointer types.
func TypeName(t reflect.Type) string {
	if IsOptional(t) {
		return "Optional[" + typeName(t.Elem()) + "]"
	}
	return typeName(t)
}

func typeName(t reflect.Type) string {
	if name := t.Name(); name != "" {
		return name
	}
	return t.String()
}

// Default returns a registry with converters for the common scalar types:
// the integer and float kinds, string, bool, Date, time.Time, and
// time.Duration.
func Default() *Registry {
	r := NewRegistry()
	registerParsed(r, func(s string) (string, error) { return s, nil })
	registerParsed(r, parseBool)
	registerParsed(r, ParseDate)
	registerParsed(r, parseDateTime)
	registerParsed(r, time.ParseDuration)
	registerInt[int](r, strconv.IntSize)
	registerInt[int8](r, 8)
	registerInt[int16](r, 16)
	registerInt[int32](r, 32)
	registerInt[int64](r, 64)
	registerUint[uint](r, strconv.IntSize)
	registerUint[uint8](r, 8)
	registerUint[uint16](r, 16)
	registerUint[uint32](r, 32)
	registerUint[uint64](r, 64)
	registerFloat[float32](r, 32)
	registerFloat[float64](r, 64)
	return r
}

func registerParsed[T any](r *Registry, parse func(string) (T, error)) {
	var zero T
	r.Register(reflect.TypeOf(zero), func(s string) (any, error) {
		return parse(s)
	})
}

func registerInt[T int | int8 | int16 | int32 | int64](r *Registry, bits int) {
	registerParsed(r, func(s string) (T, error) {
		n, err := strconv.ParseInt(s, 10, bits)
		return T(n), err
	})
}

func registerUint[T uint | uint8 | uint16 | uint32 | uint64](r *Registry, bits int) {
	registerParsed(r, func(s string) (T, error) {
		n, err := strconv.ParseUint(s, 10, bits)
		return T(n), err
	})
}

func registerFloat[T float32 | float64](r *Registry, bits int) {
	registerParsed(r, func(s string) (T, error) {
		f, err := strconv.ParseFloat(s, bits)
		return T(f), err
	})
}

// parseBool accepts t/true/yes/y and f/false/no/n, case-insensitive.
// Anything else is an error; in particular "false"-looking non-empty strings
// never coerce to true.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "t", "true", "yes", "y":
		return true, nil
	case "f", "false", "no", "n":
		return false, nil
	}
	return false, fmt.Errorf("not a boolean: %q", s)
}

// datetime layouts, tried in order. Strict ISO-8601: full timestamps with or
// without zone offset, or a bare date at midnight.
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseDateTime(s string) (time.Time, error) {
	for _, layout := range dateTimeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("not an ISO-8601 timestamp: %q", s)
}
