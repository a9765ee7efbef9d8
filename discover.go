package clifun

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aretw0/clifun/interpret"
)

// LeafInput describes one terminal, scalar-typed input discovered on a
// struct shape: its external name, the dotted path leading to it, its
// declared type (pointer when optional), and its default, if any.
// Immutable once created.
type LeafInput struct {
	Name       string
	Path       []string
	Type       reflect.Type
	Default    string
	HasDefault bool
}

// PrefixedName is the dotted external key for this input, unique within one
// discovery pass.
func (l LeafInput) PrefixedName() string {
	if len(l.Path) == 0 {
		return l.Name
	}
	return strings.Join(l.Path, ".") + "." + l.Name
}

// Optional reports whether the input's declared type is optional.
func (l LeafInput) Optional() bool {
	return interpret.IsOptional(l.Type)
}

// Discover walks the struct type t and returns its leaf inputs in
// declaration order, expanding composite fields depth-first. A field whose
// unwrapped type is registered in reg becomes a leaf; a struct-typed field
// recurses with its name pushed onto the path prefix; anything else is a
// programming error in the target type, reported immediately.
//
// There is no cycle guard: a structurally recursive type does not terminate.
func Discover(t reflect.Type, reg *interpret.Registry) ([]LeafInput, error) {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("cannot discover inputs of non-struct type %s", t)
	}
	return discoverStruct(t, nil, reg)
}

func discoverStruct(t reflect.Type, prefix []string, reg *interpret.Registry) ([]LeafInput, error) {
	var leaves []LeafInput
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name := externalName(field)
		base := interpret.Unwrap(field.Type)
		if reg.Contains(base) {
			leaf := LeafInput{
				Name: name,
				Path: prefix,
				Type: field.Type,
			}
			leaf.Default, leaf.HasDefault = field.Tag.Lookup("default")
			leaves = append(leaves, leaf)
			continue
		}
		if base.Kind() != reflect.Struct {
			return nil, fmt.Errorf("field %s of %s: no interpreter for type %s and not a composite",
				field.Name, t, field.Type)
		}
		sub, err := discoverStruct(base, append(prefix[:len(prefix):len(prefix)], name), reg)
		if err != nil {
			return nil, err
		}
		leaves = append(leaves, sub...)
	}
	return leaves, nil
}

// externalName is the field's key segment: the arg tag when present,
// otherwise the field name with its first rune lowered.
func externalName(field reflect.StructField) string {
	if tag, ok := field.Tag.Lookup("arg"); ok && tag != "" {
		return tag
	}
	r, size := utf8.DecodeRuneInString(field.Name)
	return string(unicode.ToLower(r)) + field.Name[size:]
}
