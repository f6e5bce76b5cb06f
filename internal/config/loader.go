package config

import (
	"encoding/json"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	engineopts "github.com/phyten/commentmark/internal/engine/opts"
	"github.com/phyten/commentmark/internal/token"
)

var engineKeyMap = map[string]string{
	"path":             "path",
	"paths":            "path",
	"exclude":          "exclude",
	"excludes":         "exclude",
	"detect_langs":     "detect_langs",
	"detect_languages": "detect_langs",
	"exclude_typical":  "exclude_typical",
	"keywords":         "keywords",
	"truncate":         "truncate",
	"max_file_bytes":   "max_file_bytes",
	"max_bytes":        "max_file_bytes",
	"jobs":             "jobs",
	"repo":             "repo",
	"output":           "output",
	"color":            "color",
}

var plainTextKeys = map[string]struct{}{
	"plain_text":           {},
	"plaintext":            {},
	"plain_text_highlight": {},
}

// Load decodes the yaml, toml or json file at path. An empty path yields an
// empty layer.
func Load(fsys afero.Fs, path string) (Config, error) {
	var cfg Config
	path = strings.TrimSpace(path)
	if path == "" {
		return cfg, nil
	}
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return cfg, errors.Errorf("read config: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(path))
	var raw map[string]any
	switch ext {
	case ".yaml", ".yml":
		if decodeErr := yaml.Unmarshal(data, &raw); decodeErr != nil {
			return cfg, errors.Errorf("parse %s: %w", path, decodeErr)
		}
	case ".toml":
		if decodeErr := toml.Unmarshal(data, &raw); decodeErr != nil {
			return cfg, errors.Errorf("parse %s: %w", path, decodeErr)
		}
	case ".json":
		if decodeErr := json.Unmarshal(data, &raw); decodeErr != nil {
			return cfg, errors.Errorf("parse %s: %w", path, decodeErr)
		}
	default:
		return cfg, errors.Errorf("unsupported config extension: %s", ext)
	}
	if raw == nil {
		return cfg, nil
	}
	decoded, err := decodeConfigMap(raw)
	if err != nil {
		return cfg, errors.Errorf("%s: %w", path, err)
	}
	return decoded, nil
}

func decodeConfigMap(raw map[string]any) (Config, error) {
	var cfg Config
	engineSection := make(map[string]any)

	for key, value := range raw {
		norm := normalizeKey(key)
		switch {
		case norm == "tokens":
			if err := assignTokens(value, &cfg.Tokens); err != nil {
				return cfg, errors.Errorf("tokens: %w", err)
			}
		case norm == "engine":
			sub, err := toStringKeyMap(value)
			if err != nil {
				return cfg, errors.Errorf("engine: %w", err)
			}
			for k, v := range sub {
				canonical, ok := engineKeyMap[normalizeKey(k)]
				if !ok {
					return cfg, errors.Errorf("unknown engine key: %s", k)
				}
				engineSection[canonical] = v
			}
		case isPlainTextKey(norm):
			b, err := expectBool(value, key)
			if err != nil {
				return cfg, err
			}
			cfg.PlainText = &b
		default:
			canonical, ok := engineKeyMap[norm]
			if !ok {
				return cfg, errors.Errorf("unknown config key: %s", key)
			}
			engineSection[canonical] = value
		}
	}

	if err := assignEngine(engineSection, &cfg.Engine); err != nil {
		return cfg, errors.Errorf("engine: %w", err)
	}
	return cfg, nil
}

func isPlainTextKey(norm string) bool {
	_, ok := plainTextKeys[norm]
	return ok
}

// assignTokens reads the category table. Values are a single token or a
// list; tokens are kept verbatim apart from dropping empty ones.
func assignTokens(value any, dst *TokensConfig) error {
	section, err := toStringKeyMap(value)
	if err != nil {
		return err
	}
	for key, v := range section {
		cat, err := token.ParseCategory(key)
		if err != nil {
			return err
		}
		list, err := expectTokenList(v, key)
		if err != nil {
			return err
		}
		dst.Set(cat, list)
	}
	return nil
}

func assignEngine(section map[string]any, dst *EngineConfig) error {
	for key, value := range section {
		switch key {
		case "path", "exclude", "detect_langs":
			list, err := expectStringList(value, key)
			if err != nil {
				return err
			}
			switch key {
			case "path":
				dst.Paths = &list
			case "exclude":
				dst.Excludes = &list
			default:
				dst.DetectLangs = &list
			}
		case "exclude_typical", "keywords":
			b, err := expectBool(value, key)
			if err != nil {
				return err
			}
			if key == "keywords" {
				dst.Keywords = &b
			} else {
				dst.ExcludeTypical = &b
			}
		case "jobs", "max_file_bytes", "truncate":
			n, err := expectInt(value, key)
			if err != nil {
				return err
			}
			switch key {
			case "jobs":
				dst.Jobs = &n
			case "max_file_bytes":
				dst.MaxFileBytes = &n
			default:
				dst.Truncate = &n
			}
		case "repo", "output", "color":
			str, err := expectString(value, key)
			if err != nil {
				return err
			}
			trimmed := strings.TrimSpace(str)
			switch key {
			case "repo":
				dst.Repo = &trimmed
			case "output":
				dst.Output = &trimmed
			default:
				dst.Color = &trimmed
			}
		default:
			return errors.Errorf("unknown key: %s", key)
		}
	}
	return nil
}

func expectString(value any, field string) (string, error) {
	if value == nil {
		return "", errors.Errorf("%s cannot be null", field)
	}
	if s, ok := value.(string); ok {
		return s, nil
	}
	return "", errors.Errorf("expected string for %s, got %T", field, value)
}

func expectBool(value any, field string) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		return engineopts.ParseBool(v, field)
	default:
		return false, errors.Errorf("expected bool for %s, got %T", field, value)
	}
}

func expectInt(value any, field string) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != float64(int(v)) {
			return 0, errors.Errorf("expected integer for %s, got %v", field, value)
		}
		return int(v), nil
	case json.Number:
		n, err := strconv.Atoi(v.String())
		if err != nil {
			return 0, errors.Errorf("invalid integer value for %s: %v", field, value)
		}
		return n, nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, errors.Errorf("invalid integer value for %s: %q", field, v)
		}
		return n, nil
	default:
		return 0, errors.Errorf("expected integer for %s, got %T", field, value)
	}
}

func expectStringList(value any, field string) ([]string, error) {
	switch v := value.(type) {
	case string:
		return engineopts.SplitMulti([]string{v}), nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			str, err := expectString(item, field)
			if err != nil {
				return nil, err
			}
			if trimmed := strings.TrimSpace(str); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out, nil
	default:
		return nil, errors.Errorf("expected string or list for %s, got %T", field, value)
	}
}

// expectTokenList is expectStringList without comma splitting or trimming,
// since "," and " !" are valid tokens.
func expectTokenList(value any, field string) ([]string, error) {
	switch v := value.(type) {
	case string:
		if v == "" {
			return []string{}, nil
		}
		return []string{v}, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			str, err := expectString(item, field)
			if err != nil {
				return nil, err
			}
			if str != "" {
				out = append(out, str)
			}
		}
		return out, nil
	default:
		return nil, errors.Errorf("expected string or list for %s, got %T", field, value)
	}
}

func toStringKeyMap(v any) (map[string]any, error) {
	switch typed := v.(type) {
	case map[string]any:
		return typed, nil
	case map[any]any:
		out := make(map[string]any, len(typed))
		for k, value := range typed {
			key, ok := k.(string)
			if !ok {
				return nil, errors.Errorf("non-string key: %v", k)
			}
			out[key] = value
		}
		return out, nil
	default:
		return nil, errors.Errorf("expected map, got %T", v)
	}
}

func normalizeKey(key string) string {
	norm := strings.ToLower(strings.TrimSpace(key))
	return strings.ReplaceAll(norm, "-", "_")
}
