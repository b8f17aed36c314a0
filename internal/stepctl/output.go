package stepctl

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatText = "text"
)

// writeValue encodes v as indented JSON or as YAML. YAML goes through the
// JSON encoding first so field names match the API.
func writeValue(w io.Writer, format string, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	switch strings.ToLower(format) {
	case formatJSON, "":
		_, err = fmt.Fprintln(w, string(raw))
		return err
	case formatYAML, "yml":
		var generic any
		if err := json.Unmarshal(raw, &generic); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(generic); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
}

// decodeValue accepts JSON or YAML input into v.
func decodeValue(raw []byte, v any) error {
	if json.Valid(raw) {
		return json.Unmarshal(raw, v)
	}
	var generic any
	if err := yaml.Unmarshal(raw, &generic); err != nil {
		return fmt.Errorf("input is neither JSON nor YAML: %w", err)
	}
	asJSON, err := json.Marshal(generic)
	if err != nil {
		return err
	}
	return json.Unmarshal(asJSON, v)
}
