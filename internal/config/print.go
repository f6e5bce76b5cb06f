package config

import (
	"bytes"
	"encoding/json"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// Formats accepted by Marshal.
var Formats = []string{"yaml", "toml", "json"}

// Marshal encodes cfg in a format Load can read back.
func Marshal(cfg Config, format string) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "yaml", "yml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return nil, errors.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, errors.Errorf("encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	case "toml":
		out, err := toml.Marshal(cfg)
		if err != nil {
			return nil, errors.Errorf("encode toml: %w", err)
		}
		return out, nil
	case "json":
		out, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, errors.Errorf("encode json: %w", err)
		}
		return append(out, '\n'), nil
	default:
		return nil, errors.Errorf("unknown config format: %s (want one of %s)", format, strings.Join(Formats, ", "))
	}
}
