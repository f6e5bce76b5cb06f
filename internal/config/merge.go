package config

import (
	"strings"

	"github.com/phyten/commentmark/internal/token"
)

// Merge applies layers over base in order; later layers win field by field.
func Merge(base Settings, layers ...Config) Settings {
	out := Settings{
		Tokens:    make(map[token.Category][]string, len(base.Tokens)),
		PlainText: base.PlainText,
	}
	for c, list := range base.Tokens {
		out.Tokens[c] = cloneStrings(list)
	}
	engineLayers := make([]EngineConfig, 0, len(layers))
	for _, layer := range layers {
		for _, c := range token.Categories() {
			if list := layer.Tokens.Get(c); list != nil {
				out.Tokens[c] = ResolveStrings(out.Tokens[c], list)
			}
		}
		out.PlainText = ResolveBool(out.PlainText, layer.PlainText)
		engineLayers = append(engineLayers, layer.Engine)
	}
	out.Engine = MergeEngine(base.Engine, engineLayers...)
	return out
}

func MergeEngine(base EngineSettings, layers ...EngineConfig) EngineSettings {
	out := base
	out.Paths = cloneStrings(base.Paths)
	out.Excludes = cloneStrings(base.Excludes)
	out.DetectLangs = cloneStrings(base.DetectLangs)
	for _, layer := range layers {
		out.Paths = ResolveStrings(out.Paths, layer.Paths)
		out.Excludes = ResolveStrings(out.Excludes, layer.Excludes)
		out.DetectLangs = ResolveStrings(out.DetectLangs, layer.DetectLangs)
		out.ExcludeTypical = ResolveBool(out.ExcludeTypical, layer.ExcludeTypical)
		out.Keywords = ResolveBool(out.Keywords, layer.Keywords)
		out.Jobs = ResolveInt(out.Jobs, layer.Jobs)
		out.MaxFileBytes = ResolveInt(out.MaxFileBytes, layer.MaxFileBytes)
		out.Truncate = ResolveInt(out.Truncate, layer.Truncate)
		out.Repo = ResolveAndTrim(out.Repo, layer.Repo)
		out.Output = ResolveAndTrim(out.Output, layer.Output)
		out.Color = ResolveAndTrim(out.Color, layer.Color)
	}
	if strings.TrimSpace(out.Output) == "" {
		out.Output = "table"
	}
	if strings.TrimSpace(out.Color) == "" {
		out.Color = "auto"
	}
	return out
}
