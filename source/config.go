package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// loadConfigFile reads one config file into a flat dotted-key string map.
// The format is chosen by extension: .yaml/.yml and .toml are decoded with
// their respective parsers, everything else is treated as JSON. Nested
// objects/tables flatten into dotted keys; scalar values are stringified.
func loadConfigFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("could not find config file %s", path)
		}
		return nil, fmt.Errorf("could not read config file %s: %w", path, err)
	}

	var raw map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("could not parse config file %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("could not parse config file %s: %w", path, err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("could not parse config file %s: %w", path, err)
		}
	}

	flat := make(map[string]string)
	if err := flatten("", raw, flat); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return flat, nil
}

func flatten(prefix string, m map[string]any, out map[string]string) error {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			if err := flatten(key, val, out); err != nil {
				return err
			}
		default:
			s, err := stringify(val)
			if err != nil {
				return fmt.Errorf("key %q: %w", key, err)
			}
			out[key] = s
		}
	}
	return nil
}

// stringify renders a decoded scalar back to the raw string form the
// interpreter registry expects. Collection values are rejected: list and map
// leaves are not supported.
func stringify(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case bool:
		return strconv.FormatBool(val), nil
	case json.Number:
		return val.String(), nil
	case int:
		return strconv.Itoa(val), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case uint64:
		return strconv.FormatUint(val, 10), nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	case time.Time:
		// TOML has a native datetime type.
		return val.Format(time.RFC3339), nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("unsupported value of type %T", v)
	}
}
