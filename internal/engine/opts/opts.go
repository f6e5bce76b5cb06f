// Package opts holds the option defaults and value parsing shared by the
// CLI flags, the environment layer and config files.
package opts

import (
	"runtime"
	"strconv"
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/phyten/commentmark/internal/detect"
	"github.com/phyten/commentmark/internal/engine"
)

const MaxJobs = 64

var (
	trueLiterals  = map[string]struct{}{"1": {}, "true": {}, "yes": {}, "on": {}}
	falseLiterals = map[string]struct{}{"0": {}, "false": {}, "no": {}, "off": {}}

	outputs = []string{"table", "json", "ndjson", "csv", "markdown"}
)

// Defaults returns the baseline engine options for repoDir.
func Defaults(repoDir string) engine.Options {
	jobs := runtime.NumCPU()
	if jobs < 1 {
		jobs = 1
	}
	if jobs > MaxJobs {
		jobs = MaxJobs
	}
	return engine.Options{
		Jobs:           jobs,
		RepoDir:        repoDir,
		ExcludeTypical: true,
		Keywords:       false,
		MaxFileBytes:   1 << 20,
	}
}

// NormalizeAndValidate puts o into canonical form and checks its ranges.
func NormalizeAndValidate(o *engine.Options) error {
	if o.Jobs < 1 || o.Jobs > MaxJobs {
		return errors.Errorf("jobs must be between 1 and %d", MaxJobs)
	}
	if o.MaxFileBytes < 0 {
		return errors.New("max_file_bytes must be >= 0")
	}
	if strings.TrimSpace(o.RepoDir) == "" {
		o.RepoDir = "."
	}
	o.Paths = trimSlice(o.Paths)
	o.Excludes = trimSlice(o.Excludes)
	o.DetectLangs = detect.CanonicalDetectLangs(trimSlice(o.DetectLangs))
	for _, lang := range o.DetectLangs {
		if !detect.KnownLanguage(lang) {
			return errors.Errorf("unknown language in detect_langs: %s", lang)
		}
	}
	return nil
}

// ParseBool accepts 1/0, true/false, yes/no and on/off in any case.
func ParseBool(raw, key string) (bool, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if _, ok := trueLiterals[v]; ok {
		return true, nil
	}
	if _, ok := falseLiterals[v]; ok {
		return false, nil
	}
	return false, errors.Errorf("invalid value for %s: %q", key, raw)
}

// ParseIntInRange parses raw and checks it lies in [min, max]. If max < min,
// the upper bound is ignored.
func ParseIntInRange(raw, key string, min, max int) (int, error) {
	v := strings.TrimSpace(raw)
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.Errorf("invalid integer value for %s: %q", key, raw)
	}
	if n < min || (max >= min && n > max) {
		if max >= min {
			return 0, errors.Errorf("%s must be between %d and %d", key, min, max)
		}
		return 0, errors.Errorf("%s must be >= %d", key, min)
	}
	return n, nil
}

// NormalizeOutput validates and lower-cases an output format.
func NormalizeOutput(value string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "md" {
		v = "markdown"
	}
	for _, o := range outputs {
		if v == o {
			return v, nil
		}
	}
	return "", errors.Errorf("invalid output: %s (want one of %s)", value, strings.Join(outputs, ", "))
}

// SplitMulti flattens repeated and comma-separated values.
func SplitMulti(vals []string) []string {
	var out []string
	for _, raw := range vals {
		for _, piece := range strings.Split(raw, ",") {
			if part := strings.TrimSpace(piece); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func trimSlice(values []string) []string {
	if len(values) == 0 {
		return values
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
