package clifun

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// assemble reconstructs the nested target struct from a flat resolved map.
// The flat keys are split on "." into a nested map mirroring the shape
// Discover walked, then decoded into target. Nil entries (absent optionals)
// are omitted so the corresponding pointer fields stay nil.
func assemble(target any, values map[string]any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  target,
		TagName: "arg",
	})
	if err != nil {
		return fmt.Errorf("building decoder: %w", err)
	}
	if err := dec.Decode(unflatten(values)); err != nil {
		return fmt.Errorf("assembling arguments: %w", err)
	}
	return nil
}

// unflatten turns {"f.a": x, "c": y} into {"f": {"a": x}, "c": y}.
func unflatten(values map[string]any) map[string]any {
	nested := make(map[string]any)
	for key, value := range values {
		if value == nil {
			continue
		}
		segs := strings.Split(key, ".")
		node := nested
		for _, seg := range segs[:len(segs)-1] {
			child, ok := node[seg].(map[string]any)
			if !ok {
				child = make(map[string]any)
				node[seg] = child
			}
			node = child
		}
		node[segs[len(segs)-1]] = value
	}
	return nested
}
