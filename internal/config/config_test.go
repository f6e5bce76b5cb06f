package config

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/phyten/commentmark/internal/engine"
	"github.com/phyten/commentmark/internal/token"
)

func boolPtr(v bool) *bool { return &v }

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

func listPtr(values ...string) *[]string {
	copied := append([]string{}, values...)
	return &copied
}

func TestMergePrecedence(t *testing.T) {
	base := Defaults("/repo")
	base.Engine.Jobs = 2

	var file Config
	file.Tokens.Set(token.CategoryError, []string{"!", "FIXME"})
	file.Tokens.Set(token.CategoryCustom1, []string{"@"})
	file.PlainText = boolPtr(true)
	file.Engine = EngineConfig{Paths: listPtr("file"), Keywords: boolPtr(true), Output: strPtr("json")}

	var env Config
	env.Tokens.Set(token.CategoryError, []string{"!!"})
	env.Engine = EngineConfig{Paths: listPtr("env"), Jobs: intPtr(4)}

	var flags Config
	flags.Tokens.Set(token.CategoryWarning, nil)
	flags.Engine = EngineConfig{Paths: listPtr("flag"), Keywords: boolPtr(false), Color: strPtr(" never ")}

	merged := Merge(base, file, env, flags)

	assert.Equal(t, []string{"!!"}, merged.Tokens[token.CategoryError])
	assert.Empty(t, merged.Tokens[token.CategoryWarning], "an empty list clears the category")
	assert.Equal(t, []string{"*"}, merged.Tokens[token.CategoryInfo])
	assert.Equal(t, []string{"@"}, merged.Tokens[token.CategoryCustom1])
	assert.True(t, merged.PlainText)
	assert.Equal(t, []string{"flag"}, merged.Engine.Paths)
	assert.False(t, merged.Engine.Keywords)
	assert.Equal(t, 4, merged.Engine.Jobs)
	assert.Equal(t, "json", merged.Engine.Output)
	assert.Equal(t, "never", merged.Engine.Color)
	assert.Equal(t, "/repo", merged.Engine.Repo)

	assert.Equal(t, []string{"!"}, base.Tokens[token.CategoryError], "base is not modified")
}

func TestMergeEngineDefaultsOutputAndColor(t *testing.T) {
	merged := MergeEngine(EngineSettings{}, EngineConfig{Output: strPtr(" ")})
	assert.Equal(t, "table", merged.Output)
	assert.Equal(t, "auto", merged.Color)
}

func TestSettingsSnapshotAndOptions(t *testing.T) {
	s := Defaults("/repo")
	s.Tokens[token.CategoryCustom2] = []string{"TODO", "TODO"}
	s.PlainText = true
	s.Engine.Keywords = true
	s.Engine.DetectLangs = []string{"go"}

	snap := s.Snapshot()
	assert.True(t, snap.PlainTextHighlightEnabled())
	assert.Equal(t, []string{"TODO"}, snap.Tokens(token.CategoryCustom2))

	var opts engine.Options
	s.ApplyToOptions(&opts)
	assert.Equal(t, "/repo", opts.RepoDir)
	assert.True(t, opts.Keywords)
	assert.Equal(t, []string{"go"}, opts.DetectLangs)
	require.NotNil(t, opts.Tokens)
	assert.True(t, opts.Tokens.PlainTextHighlightEnabled())

	assert.NotPanics(t, func() { s.ApplyToOptions(nil) })
}

func TestNormalize(t *testing.T) {
	s := Defaults("/repo")
	s.Tokens[token.CategoryInfo] = []string{"*", " ", ""}
	s.Engine.Output = "MD"
	s.Engine.Color = "ALWAYS"

	got, err := Normalize(s)
	require.NoError(t, err)
	assert.Equal(t, []string{"*"}, got.Tokens[token.CategoryInfo])
	assert.Equal(t, "markdown", got.Engine.Output)
	assert.Equal(t, "always", got.Engine.Color)

	s.Engine.Output = "xml"
	s.Engine.Truncate = -1
	s.Engine.Jobs = 0
	_, err = Normalize(s)
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 3)
}

func TestFromEnv(t *testing.T) {
	env := map[string]string{
		"COMMENTMARK_TOKENS_ERROR":    "! FIXME",
		"COMMENTMARK_TOKENS_CUSTOM_1": " @ ",
		"COMMENTMARK_PLAIN_TEXT":      "yes",
		"COMMENTMARK_PATH":            "src,cmd",
		"COMMENTMARK_EXCLUDE":         "vendor, dist",
		"COMMENTMARK_DETECT_LANGS":    "go,py",
		"COMMENTMARK_EXCLUDE_TYPICAL": "0",
		"COMMENTMARK_KEYWORDS":        "on",
		"COMMENTMARK_JOBS":            "128",
		"COMMENTMARK_MAX_FILE_BYTES":  "8192",
		"COMMENTMARK_TRUNCATE":        "80",
		"COMMENTMARK_OUTPUT":          "ndjson",
		"COMMENTMARK_COLOR":           "never",
		"COMMENTMARK_REPO":            "/src/app",
	}
	cfg, err := FromEnv(func(key string) string { return env[key] })
	require.NoError(t, err)

	assert.Equal(t, listPtr("!", "FIXME"), cfg.Tokens.Error)
	assert.Equal(t, listPtr("@"), cfg.Tokens.Custom1)
	assert.Nil(t, cfg.Tokens.Warning)
	assert.Equal(t, boolPtr(true), cfg.PlainText)
	assert.Equal(t, listPtr("src", "cmd"), cfg.Engine.Paths)
	assert.Equal(t, listPtr("vendor", "dist"), cfg.Engine.Excludes)
	assert.Equal(t, listPtr("go", "py"), cfg.Engine.DetectLangs)
	assert.Equal(t, boolPtr(false), cfg.Engine.ExcludeTypical)
	assert.Equal(t, boolPtr(true), cfg.Engine.Keywords)
	assert.Equal(t, intPtr(128), cfg.Engine.Jobs, "range is checked by Normalize")
	assert.Equal(t, intPtr(8192), cfg.Engine.MaxFileBytes)
	assert.Equal(t, intPtr(80), cfg.Engine.Truncate)
	assert.Equal(t, strPtr("ndjson"), cfg.Engine.Output)
	assert.Equal(t, strPtr("never"), cfg.Engine.Color)
	assert.Equal(t, strPtr("/src/app"), cfg.Engine.Repo)
}

func TestFromEnvCollectsErrors(t *testing.T) {
	env := map[string]string{
		"COMMENTMARK_JOBS":     "many",
		"COMMENTMARK_KEYWORDS": "maybe",
		"COMMENTMARK_TRUNCATE": "-1",
	}
	_, err := FromEnv(func(key string) string { return env[key] })
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 3)

	cfg, err := FromEnv(nil)
	require.NoError(t, err)
	assert.Equal(t, Config{}, cfg)
}

func TestLoadFormats(t *testing.T) {
	fs := afero.NewMemMapFs()
	files := map[string]string{
		"/c/config.yaml": "tokens:\n  error: [\"!\", \"FIXME\"]\n  custom_1: \"@\"\n  warning: []\nplain_text: true\nengine:\n  keywords: true\n  max_file_bytes: 2048\njobs: 3\n",
		"/c/config.toml": "plain-text = \"yes\"\npath = \"src, cmd\"\n\n[tokens]\ninfo = [\"*\", \"NOTE\"]\n\"custom-3\" = \"%\"\n\n[engine]\ndetect_langs = [\"go\", \"py\"]\nexclude_typical = false\n",
		"/c/config.json": "{\"engine\": {\"output\": \" md \", \"color\": \"never\"}, \"tokens\": {\"err\": [\"!!\"]}}\n",
	}
	for name, body := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(body), 0o644))
	}

	t.Run("yaml", func(t *testing.T) {
		cfg, err := Load(fs, "/c/config.yaml")
		require.NoError(t, err)
		assert.Equal(t, listPtr("!", "FIXME"), cfg.Tokens.Error)
		assert.Equal(t, listPtr("@"), cfg.Tokens.Custom1)
		assert.Equal(t, listPtr(), cfg.Tokens.Warning)
		assert.Equal(t, boolPtr(true), cfg.PlainText)
		assert.Equal(t, boolPtr(true), cfg.Engine.Keywords)
		assert.Equal(t, intPtr(2048), cfg.Engine.MaxFileBytes)
		assert.Equal(t, intPtr(3), cfg.Engine.Jobs)
	})
	t.Run("toml", func(t *testing.T) {
		cfg, err := Load(fs, "/c/config.toml")
		require.NoError(t, err)
		assert.Equal(t, boolPtr(true), cfg.PlainText)
		assert.Equal(t, listPtr("src", "cmd"), cfg.Engine.Paths)
		assert.Equal(t, listPtr("*", "NOTE"), cfg.Tokens.Info)
		assert.Equal(t, listPtr("%"), cfg.Tokens.Custom3)
		assert.Equal(t, listPtr("go", "py"), cfg.Engine.DetectLangs)
		assert.Equal(t, boolPtr(false), cfg.Engine.ExcludeTypical)
	})
	t.Run("json", func(t *testing.T) {
		cfg, err := Load(fs, "/c/config.json")
		require.NoError(t, err)
		assert.Equal(t, strPtr("md"), cfg.Engine.Output)
		assert.Equal(t, strPtr("never"), cfg.Engine.Color)
		assert.Equal(t, listPtr("!!"), cfg.Tokens.Error)
	})
}

func TestLoadErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	cases := map[string]string{
		"/c/unknown.yaml":  "unknown: value\n",
		"/c/category.yaml": "tokens:\n  fatal: [\"!\"]\n",
		"/c/type.yaml":     "engine:\n  jobs: many\n",
		"/c/engine.yaml":   "engine:\n  colour: always\n",
		"/c/broken.json":   "{",
		"/c/config.ini":    "a=b\n",
	}
	for name, body := range cases {
		require.NoError(t, afero.WriteFile(fs, name, []byte(body), 0o644))
	}
	for name := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(fs, name)
			assert.Error(t, err)
		})
	}

	_, err := Load(fs, "/c/missing.yaml")
	assert.Error(t, err)

	cfg, err := Load(fs, " ")
	require.NoError(t, err)
	assert.Equal(t, Config{}, cfg)
}

func TestMarshalLoadsBack(t *testing.T) {
	want := Defaults("/repo")
	want.Tokens[token.CategoryCustom1] = []string{"@", "NOTE"}
	want.PlainText = true
	want.Engine.Excludes = []string{"docs"}
	want.Engine.Truncate = 60

	for _, format := range Formats {
		t.Run(format, func(t *testing.T) {
			data, err := Marshal(want.ToConfig(), format)
			require.NoError(t, err)

			fs := afero.NewMemMapFs()
			path := "/c/config." + format
			require.NoError(t, afero.WriteFile(fs, path, data, 0o644))
			loaded, err := Load(fs, path)
			require.NoError(t, err)

			got := Merge(Defaults("/elsewhere"), loaded)
			assert.Equal(t, want.ToConfig(), got.ToConfig())
		})
	}

	_, err := Marshal(Config{}, "ini")
	assert.Error(t, err)
}

func TestFindOrder(t *testing.T) {
	fs := afero.NewMemMapFs()
	write := func(path string) {
		require.NoError(t, afero.WriteFile(fs, path, []byte("{}"), 0o644))
	}
	require.NoError(t, fs.MkdirAll("/work/repo/sub/dir", 0o755))

	path, where, err := Find(fs, "/work/repo/sub/dir", "", "", "/home/u")
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Empty(t, where)

	write("/home/u/.commentmark.toml")
	path, where, err = Find(fs, "/work/repo/sub/dir", "", "", "/home/u")
	require.NoError(t, err)
	assert.Equal(t, "/home/u/.commentmark.toml", path)
	assert.Equal(t, SourceHome, where)

	write("/home/u/.config/commentmark/config.json")
	path, where, err = Find(fs, "/work/repo/sub/dir", "", "", "/home/u")
	require.NoError(t, err)
	assert.Equal(t, "/home/u/.config/commentmark/config.json", path)
	assert.Equal(t, SourceXDG, where)

	write("/xdg/commentmark/config.yaml")
	path, where, err = Find(fs, "/work/repo/sub/dir", "", "/xdg", "/home/u")
	require.NoError(t, err)
	assert.Equal(t, "/xdg/commentmark/config.yaml", path)
	assert.Equal(t, SourceXDG, where)

	write("/work/repo/.commentmark.yml")
	path, where, err = Find(fs, "/work/repo/sub/dir", "", "/xdg", "/home/u")
	require.NoError(t, err)
	assert.Equal(t, "/work/repo/.commentmark.yml", path)
	assert.Equal(t, SourceCwdUp, where)

	write("/etc/custom.toml")
	path, where, err = Find(fs, "/work/repo", "/etc/custom.toml", "", "/home/u")
	require.NoError(t, err)
	assert.Equal(t, "/etc/custom.toml", path)
	assert.Equal(t, SourceExplicit, where)

	_, _, err = Find(fs, "/work/repo", "/etc/missing.toml", "", "/home/u")
	assert.Error(t, err)
	_, _, err = Find(fs, "/work/repo", "/work", "", "/home/u")
	assert.Error(t, err)
}
