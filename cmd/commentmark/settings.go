package main

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"gitlab.com/tozd/go/errors"

	"github.com/phyten/commentmark/internal/config"
	engineopts "github.com/phyten/commentmark/internal/engine/opts"
	"github.com/phyten/commentmark/internal/token"
)

// settings merges defaults, the config file, the environment and flags, in
// that order.
func (a *app) settings(ctx context.Context, flags config.Config) (config.Settings, error) {
	log := zerolog.Ctx(ctx)

	repo := strings.TrimSpace(a.repo)
	if repo == "" {
		repo = strings.TrimSpace(a.getenv(config.EnvPrefix + "REPO"))
	}
	if repo == "" {
		repo = "."
	}

	explicit := a.configPath
	if strings.TrimSpace(explicit) == "" {
		explicit = a.getenv(config.EnvConfig)
	}
	path, source, err := config.Find(a.fs, repo, explicit, a.getenv("XDG_CONFIG_HOME"), a.getenv("HOME"))
	if err != nil {
		return config.Settings{}, err
	}
	fileCfg, err := config.Load(a.fs, path)
	if err != nil {
		return config.Settings{}, err
	}
	if path != "" {
		log.Debug().Str("path", path).Str("source", source).Msg("config loaded")
	}
	envCfg, err := config.FromEnv(a.getenv)
	if err != nil {
		return config.Settings{}, errors.Errorf("environment: %w", err)
	}

	merged := config.Merge(config.Defaults(repo), fileCfg, envCfg, flags)
	return config.Normalize(merged)
}

// engineFlags binds the flags shared by scan, keys and config. Only flags
// the user set end up in the returned layer.
type engineFlags struct {
	paths          []string
	excludes       []string
	detectLangs    []string
	excludeTypical bool
	keywords       bool
	jobs           int
	maxFileBytes   int
	truncate       int
	output         string
	color          string
	plainText      bool
	tokens         []string
}

func (f *engineFlags) bindTokens(fs *pflag.FlagSet) {
	fs.StringArrayVar(&f.tokens, "token", nil, "add a token as category=text, e.g. --token custom-1=NOTE (repeatable)")
	fs.BoolVar(&f.plainText, "plain-text", false, "highlight whole plain-text files")
}

func (f *engineFlags) bindOutput(fs *pflag.FlagSet) {
	fs.StringVarP(&f.output, "output", "o", "table", "table, json, ndjson, csv or markdown")
	fs.StringVar(&f.color, "color", "auto", "auto, always or never")
}

func (f *engineFlags) bindScan(fs *pflag.FlagSet) {
	fs.StringSliceVar(&f.paths, "path", nil, "only scan these paths or globs (repeatable, comma separated)")
	fs.StringSliceVar(&f.excludes, "exclude", nil, "skip these paths or globs (repeatable, comma separated)")
	fs.StringSliceVar(&f.detectLangs, "detect-langs", nil, "only scan these languages, e.g. go,py")
	fs.BoolVar(&f.excludeTypical, "exclude-typical", true, "skip vendor, node_modules, dist, build, target and minified files")
	fs.BoolVar(&f.keywords, "keywords", false, "also report keyword nodes")
	fs.IntVar(&f.jobs, "jobs", 0, "parallel workers, 1-64 (default: CPU count when unset)")
	fs.IntVar(&f.maxFileBytes, "max-file-bytes", 0, "files above this size skip the syntax tree")
	fs.IntVar(&f.truncate, "truncate", 0, "cut table text to this many columns (0: no limit)")
}

func (f *engineFlags) layer(fs *pflag.FlagSet) (config.Config, error) {
	var cfg config.Config
	changed := func(name string) bool {
		fl := fs.Lookup(name)
		return fl != nil && fl.Changed
	}
	if changed("path") {
		cfg.Engine.Paths = strSlice(engineopts.SplitMulti(f.paths))
	}
	if changed("exclude") {
		cfg.Engine.Excludes = strSlice(engineopts.SplitMulti(f.excludes))
	}
	if changed("detect-langs") {
		cfg.Engine.DetectLangs = strSlice(engineopts.SplitMulti(f.detectLangs))
	}
	if changed("exclude-typical") {
		cfg.Engine.ExcludeTypical = &f.excludeTypical
	}
	if changed("keywords") {
		cfg.Engine.Keywords = &f.keywords
	}
	if changed("jobs") {
		cfg.Engine.Jobs = &f.jobs
	}
	if changed("max-file-bytes") {
		cfg.Engine.MaxFileBytes = &f.maxFileBytes
	}
	if changed("truncate") {
		cfg.Engine.Truncate = &f.truncate
	}
	if changed("output") {
		cfg.Engine.Output = &f.output
	}
	if changed("color") {
		cfg.Engine.Color = &f.color
	}
	if changed("plain-text") {
		cfg.PlainText = &f.plainText
	}
	return cfg, nil
}

// addTokens appends --token values to the merged lists.
func (f *engineFlags) addTokens(s config.Settings) (config.Settings, error) {
	for _, raw := range f.tokens {
		name, text, ok := strings.Cut(raw, "=")
		if !ok || text == "" {
			return s, errors.Errorf("invalid --token %q: want category=text", raw)
		}
		c, err := token.ParseCategory(name)
		if err != nil {
			return s, errors.Errorf("invalid --token %q: %w", raw, err)
		}
		s.Tokens[c] = append(s.Tokens[c], text)
	}
	return s, nil
}

func strSlice(in []string) *[]string {
	if in == nil {
		in = []string{}
	}
	return &in
}
