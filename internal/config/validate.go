package config

import (
	"strings"

	"gitlab.com/tozd/go/errors"
	"go.uber.org/multierr"

	engineopts "github.com/phyten/commentmark/internal/engine/opts"
	"github.com/phyten/commentmark/internal/termcolor"
	"github.com/phyten/commentmark/internal/token"
)

// Normalize canonicalizes s and reports every invalid field at once.
func Normalize(s Settings) (Settings, error) {
	var errs error

	tokens := make(map[token.Category][]string, len(s.Tokens))
	for c, list := range s.Tokens {
		if !c.Valid() {
			errs = multierr.Append(errs, errors.Errorf("unknown token category %d", int(c)))
			continue
		}
		kept := make([]string, 0, len(list))
		for _, tk := range list {
			if strings.TrimSpace(tk) == "" {
				continue
			}
			kept = append(kept, tk)
		}
		tokens[c] = kept
	}
	s.Tokens = tokens

	e := &s.Engine
	if out, err := engineopts.NormalizeOutput(e.Output); err != nil {
		errs = multierr.Append(errs, err)
	} else {
		e.Output = out
	}
	if mode, err := termcolor.ParseMode(e.Color); err != nil {
		errs = multierr.Append(errs, errors.Errorf("color: %w", err))
	} else {
		e.Color = mode.String()
	}
	if e.Truncate < 0 {
		errs = multierr.Append(errs, errors.New("truncate must be >= 0"))
	}
	if e.Jobs < 1 || e.Jobs > engineopts.MaxJobs {
		errs = multierr.Append(errs, errors.Errorf("jobs must be between 1 and %d", engineopts.MaxJobs))
	}
	if e.MaxFileBytes < 0 {
		errs = multierr.Append(errs, errors.New("max_file_bytes must be >= 0"))
	}
	return s, errs
}
