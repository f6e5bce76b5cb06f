// Package config layers defaults, config files, the environment and flags
// into one set of settings.
package config

import (
	"strings"

	"github.com/phyten/commentmark/internal/engine"
	engineopts "github.com/phyten/commentmark/internal/engine/opts"
	"github.com/phyten/commentmark/internal/token"
)

// TokensConfig holds one optional list per category. A non-nil empty list
// clears the category.
type TokensConfig struct {
	Error   *[]string `yaml:"error,omitempty" toml:"error,omitempty" json:"error,omitempty"`
	Warning *[]string `yaml:"warning,omitempty" toml:"warning,omitempty" json:"warning,omitempty"`
	Info    *[]string `yaml:"info,omitempty" toml:"info,omitempty" json:"info,omitempty"`
	Custom1 *[]string `yaml:"custom-1,omitempty" toml:"custom-1,omitempty" json:"custom-1,omitempty"`
	Custom2 *[]string `yaml:"custom-2,omitempty" toml:"custom-2,omitempty" json:"custom-2,omitempty"`
	Custom3 *[]string `yaml:"custom-3,omitempty" toml:"custom-3,omitempty" json:"custom-3,omitempty"`
}

func (t *TokensConfig) slot(c token.Category) **[]string {
	switch c {
	case token.CategoryError:
		return &t.Error
	case token.CategoryWarning:
		return &t.Warning
	case token.CategoryInfo:
		return &t.Info
	case token.CategoryCustom1:
		return &t.Custom1
	case token.CategoryCustom2:
		return &t.Custom2
	case token.CategoryCustom3:
		return &t.Custom3
	default:
		return nil
	}
}

// Get returns the list configured for c, or nil when the layer leaves it alone.
func (t TokensConfig) Get(c token.Category) *[]string {
	if s := t.slot(c); s != nil {
		return *s
	}
	return nil
}

// Set stores a copy of list under c. Invalid categories are ignored.
func (t *TokensConfig) Set(c token.Category, list []string) {
	s := t.slot(c)
	if s == nil {
		return
	}
	copied := make([]string, len(list))
	copy(copied, list)
	*s = &copied
}

type EngineConfig struct {
	Paths          *[]string `yaml:"path,omitempty" toml:"path,omitempty" json:"path,omitempty"`
	Excludes       *[]string `yaml:"exclude,omitempty" toml:"exclude,omitempty" json:"exclude,omitempty"`
	DetectLangs    *[]string `yaml:"detect_langs,omitempty" toml:"detect_langs,omitempty" json:"detect_langs,omitempty"`
	ExcludeTypical *bool     `yaml:"exclude_typical,omitempty" toml:"exclude_typical,omitempty" json:"exclude_typical,omitempty"`
	Keywords       *bool     `yaml:"keywords,omitempty" toml:"keywords,omitempty" json:"keywords,omitempty"`
	Jobs           *int      `yaml:"jobs,omitempty" toml:"jobs,omitempty" json:"jobs,omitempty"`
	MaxFileBytes   *int      `yaml:"max_file_bytes,omitempty" toml:"max_file_bytes,omitempty" json:"max_file_bytes,omitempty"`
	Truncate       *int      `yaml:"truncate,omitempty" toml:"truncate,omitempty" json:"truncate,omitempty"`
	Repo           *string   `yaml:"repo,omitempty" toml:"repo,omitempty" json:"repo,omitempty"`
	Output         *string   `yaml:"output,omitempty" toml:"output,omitempty" json:"output,omitempty"`
	Color          *string   `yaml:"color,omitempty" toml:"color,omitempty" json:"color,omitempty"`
}

// Config is one layer: a decoded file, the environment or the flags.
type Config struct {
	Tokens    TokensConfig `yaml:"tokens" toml:"tokens" json:"tokens"`
	PlainText *bool        `yaml:"plain_text,omitempty" toml:"plain_text,omitempty" json:"plain_text,omitempty"`
	Engine    EngineConfig `yaml:"engine" toml:"engine" json:"engine"`
}

type EngineSettings struct {
	Paths          []string
	Excludes       []string
	DetectLangs    []string
	ExcludeTypical bool
	Keywords       bool
	Jobs           int
	MaxFileBytes   int
	Truncate       int
	Repo           string
	Output         string
	Color          string
}

// Settings is the merged result of every layer.
type Settings struct {
	Tokens    map[token.Category][]string
	PlainText bool
	Engine    EngineSettings
}

// Defaults returns the built-in settings for repoDir.
func Defaults(repoDir string) Settings {
	def := token.DefaultSnapshot()
	return Settings{
		Tokens:    def.AllTokens(),
		PlainText: def.PlainTextHighlightEnabled(),
		Engine:    EngineSettingsFromOptions(engineopts.Defaults(repoDir)),
	}
}

// Snapshot freezes the token section for the core.
func (s Settings) Snapshot() token.Snapshot {
	return token.NewSnapshot(s.Tokens, s.PlainText)
}

// ToConfig renders s as a fully populated layer, for printing.
func (s Settings) ToConfig() Config {
	var cfg Config
	for _, c := range token.Categories() {
		cfg.Tokens.Set(c, s.Tokens[c])
	}
	cfg.PlainText = &s.PlainText
	e := s.Engine
	cfg.Engine = EngineConfig{
		Paths:          stringsPtr(e.Paths),
		Excludes:       stringsPtr(e.Excludes),
		DetectLangs:    stringsPtr(e.DetectLangs),
		ExcludeTypical: &e.ExcludeTypical,
		Keywords:       &e.Keywords,
		Jobs:           &e.Jobs,
		MaxFileBytes:   &e.MaxFileBytes,
		Truncate:       &e.Truncate,
		Repo:           &e.Repo,
		Output:         &e.Output,
		Color:          &e.Color,
	}
	return cfg
}

func EngineSettingsFromOptions(opts engine.Options) EngineSettings {
	return EngineSettings{
		Paths:          cloneStrings(opts.Paths),
		Excludes:       cloneStrings(opts.Excludes),
		DetectLangs:    cloneStrings(opts.DetectLangs),
		ExcludeTypical: opts.ExcludeTypical,
		Keywords:       opts.Keywords,
		Jobs:           opts.Jobs,
		MaxFileBytes:   opts.MaxFileBytes,
		Repo:           opts.RepoDir,
		Output:         "table",
		Color:          "auto",
	}
}

// ApplyToOptions copies the engine section and the token snapshot into opts.
func (s Settings) ApplyToOptions(opts *engine.Options) {
	if opts == nil {
		return
	}
	e := s.Engine
	opts.Tokens = s.Snapshot()
	opts.Paths = cloneStrings(e.Paths)
	opts.Excludes = cloneStrings(e.Excludes)
	opts.DetectLangs = cloneStrings(e.DetectLangs)
	opts.ExcludeTypical = e.ExcludeTypical
	opts.Keywords = e.Keywords
	opts.Jobs = e.Jobs
	opts.MaxFileBytes = e.MaxFileBytes
	if trimmed := strings.TrimSpace(e.Repo); trimmed != "" {
		opts.RepoDir = trimmed
	}
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func stringsPtr(in []string) *[]string {
	out := make([]string, len(in))
	copy(out, in)
	return &out
}
