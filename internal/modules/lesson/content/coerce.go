package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

func stringFromAny(v any) string {
	if v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	default:
		return fmt.Sprint(v)
	}
}

func intFromAny(v any, def int) int {
	switch t := v.(type) {
	case int:
		return t
	case int64:
		return int(t)
	case float64:
		return int(t)
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return int(i)
		}
		if f, err := t.Float64(); err == nil {
			return int(f)
		}
		return def
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return def
		}
		return i
	default:
		return def
	}
}

func boolFromAny(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		b, _ := strconv.ParseBool(strings.TrimSpace(t))
		return b
	default:
		return intFromAny(v, 0) != 0
	}
}

// stringsFromAny keeps empty entries; table cells and quiz options are
// positional and blank values are meaningful while authoring.
func stringsFromAny(v any) []string {
	switch t := v.(type) {
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out
	case []any:
		out := make([]string, 0, len(t))
		for _, it := range t {
			out = append(out, stringFromAny(it))
		}
		return out
	default:
		return nil
	}
}

func stringMatrixFromAny(v any) [][]string {
	switch t := v.(type) {
	case [][]string:
		out := make([][]string, 0, len(t))
		for _, row := range t {
			out = append(out, stringsFromAny(row))
		}
		return out
	case []any:
		out := make([][]string, 0, len(t))
		for _, row := range t {
			r := stringsFromAny(row)
			if r == nil {
				r = []string{}
			}
			out = append(out, r)
		}
		return out
	default:
		return nil
	}
}

func mapsFromAny(v any) []map[string]any {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(arr))
	for _, it := range arr {
		switch m := it.(type) {
		case map[string]any:
			out = append(out, m)
		case string:
			// legacy lists stored bare strings
			out = append(out, map[string]any{"text": m})
		}
	}
	return out
}

func firstPresent(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func decodeAny(raw []byte) (any, error) {
	var v any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// jsonValue converts a Go value into its generic JSON form (maps, slices,
// json.Number) so it can be merged into a payload map.
func jsonValue(v any) (any, error) {
	switch v.(type) {
	case nil, string, bool, json.Number, map[string]any, []any:
		return v, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return decodeAny(b)
}

func payloadMap(p Payload) map[string]any {
	if u, ok := p.(Unknown); ok {
		out := make(map[string]any, len(u.Raw))
		for k, v := range u.Raw {
			out[k] = v
		}
		return out
	}
	b, err := json.Marshal(p)
	if err != nil {
		return map[string]any{}
	}
	v, err := decodeAny(b)
	if err != nil {
		return map[string]any{}
	}
	m, ok := v.(map[string]any)
	if !ok {
		return map[string]any{}
	}
	return m
}
