package clifun

import (
	"log/slog"
	"reflect"
	"sort"

	"github.com/aretw0/clifun/interpret"
	"github.com/aretw0/clifun/source"
)

// InvalidValue records a supplied string that failed interpretation against
// its input's declared type.
type InvalidValue struct {
	Name string
	Err  error
}

// Resolution is the outcome of one resolution pass. Every discovered leaf
// has exactly one outcome: a typed value in Values (nil for an absent
// optional), or its name in Missing, or an entry in Invalid.
type Resolution struct {
	// Values maps prefixed names to interpreted values. Optional inputs
	// hold a pointer value; an absent optional is a nil entry.
	Values map[string]any
	// Missing lists required inputs no layer supplied, sorted.
	Missing []string
	// Invalid lists supplied values the interpreter rejected, sorted by
	// name.
	Invalid []InvalidValue
}

// OK reports whether every leaf resolved to a value.
func (r Resolution) OK() bool {
	return len(r.Missing) == 0 && len(r.Invalid) == 0
}

// Resolve looks up and interprets every leaf input against the layered
// source. Absent inputs fall back to their declared default (interpreted by
// the same registry), then to nil when optional, then to the missing set.
// Interpretation failures are collected, not raised, so one pass reports
// every problem at once.
func Resolve(leaves []LeafInput, src *source.Source, reg *interpret.Registry, logger *slog.Logger) Resolution {
	res := Resolution{Values: make(map[string]any, len(leaves))}
	for _, leaf := range leaves {
		name := leaf.PrefixedName()
		raw, ok := src.Get(name)
		if !ok {
			if leaf.HasDefault {
				raw = leaf.Default
			} else if leaf.Optional() {
				res.Values[name] = nil
				logger.Debug("resolved input", "name", name, "value", nil)
				continue
			} else {
				res.Missing = append(res.Missing, name)
				continue
			}
		}
		value, err := interpretLeaf(raw, leaf, reg)
		if err != nil {
			res.Invalid = append(res.Invalid, InvalidValue{Name: name, Err: err})
			continue
		}
		res.Values[name] = value
		logger.Debug("resolved input", "name", name, "value", value)
	}
	sort.Strings(res.Missing)
	sort.Slice(res.Invalid, func(i, j int) bool { return res.Invalid[i].Name < res.Invalid[j].Name })
	return res
}

// interpretLeaf converts raw against the leaf's unwrapped type, re-wrapping
// the result into a pointer when the declared type is optional.
func interpretLeaf(raw string, leaf LeafInput, reg *interpret.Registry) (any, error) {
	base := interpret.Unwrap(leaf.Type)
	value, err := reg.Interpret(raw, base)
	if err != nil {
		return nil, err
	}
	if !leaf.Optional() {
		return value, nil
	}
	ptr := reflect.New(base)
	ptr.Elem().Set(reflect.ValueOf(value))
	return ptr.Interface(), nil
}

// unknownArguments returns every explicitly supplied flag name that matches
// no discovered leaf, sorted.
func unknownArguments(keyword map[string]string, leaves []LeafInput) []string {
	known := make(map[string]bool, len(leaves))
	for _, leaf := range leaves {
		known[leaf.PrefixedName()] = true
	}
	var unknown []string
	for name := range keyword {
		if !known[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	return unknown
}
