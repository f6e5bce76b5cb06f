package config

import (
	"math"
	"strings"

	"go.uber.org/multierr"

	engineopts "github.com/phyten/commentmark/internal/engine/opts"
	"github.com/phyten/commentmark/internal/token"
)

const EnvPrefix = "COMMENTMARK_"

// Environment keys read outside FromEnv.
const (
	EnvConfig   = EnvPrefix + "CONFIG"
	EnvLogLevel = EnvPrefix + "LOG_LEVEL"
)

// FromEnv reads the COMMENTMARK_* layer. Every malformed value is reported.
// Token lists are whitespace separated, e.g. COMMENTMARK_TOKENS_CUSTOM_1="@ NOTE".
func FromEnv(getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	var cfg Config
	var errs error

	lookup := func(key string) (string, bool) {
		raw := strings.TrimSpace(getenv(EnvPrefix + key))
		return raw, raw != ""
	}
	setString := func(target **string, key string) {
		if raw, ok := lookup(key); ok {
			*target = &raw
		}
	}
	setList := func(target **[]string, key string) {
		if raw, ok := lookup(key); ok {
			list := engineopts.SplitMulti([]string{raw})
			if list == nil {
				list = []string{}
			}
			*target = &list
		}
	}
	setBool := func(target **bool, key string) {
		raw, ok := lookup(key)
		if !ok {
			return
		}
		v, err := engineopts.ParseBool(raw, EnvPrefix+key)
		if err != nil {
			errs = multierr.Append(errs, err)
			return
		}
		*target = &v
	}
	setInt := func(target **int, key string, min, max int) {
		raw, ok := lookup(key)
		if !ok {
			return
		}
		v, err := engineopts.ParseIntInRange(raw, EnvPrefix+key, min, max)
		if err != nil {
			errs = multierr.Append(errs, err)
			return
		}
		*target = &v
	}

	for _, c := range token.Categories() {
		key := "TOKENS_" + strings.ReplaceAll(c.String(), "-", "_")
		if raw, ok := lookup(key); ok {
			cfg.Tokens.Set(c, strings.Fields(raw))
		}
	}
	setBool(&cfg.PlainText, "PLAIN_TEXT")

	setList(&cfg.Engine.Paths, "PATH")
	setList(&cfg.Engine.Excludes, "EXCLUDE")
	setList(&cfg.Engine.DetectLangs, "DETECT_LANGS")
	setBool(&cfg.Engine.ExcludeTypical, "EXCLUDE_TYPICAL")
	setBool(&cfg.Engine.Keywords, "KEYWORDS")
	// upper bound is checked in Normalize so every layer reports it the same way
	setInt(&cfg.Engine.Jobs, "JOBS", 0, math.MaxInt)
	setInt(&cfg.Engine.MaxFileBytes, "MAX_FILE_BYTES", 0, math.MaxInt)
	setInt(&cfg.Engine.Truncate, "TRUNCATE", 0, math.MaxInt)
	setString(&cfg.Engine.Repo, "REPO")
	setString(&cfg.Engine.Output, "OUTPUT")
	setString(&cfg.Engine.Color, "COLOR")

	return cfg, errs
}
