package engine

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phyten/commentmark/internal/detect"
)

func style(t *testing.T, lang string) detect.Style {
	t.Helper()
	s, ok := detect.StyleFor(lang)
	require.True(t, ok, lang)
	return s
}

func TestStyleComments(t *testing.T) {
	cases := []struct {
		name string
		lang string
		src  string
		want []segment
	}{
		{"line and block on one line", "c", "a /* x */ b // y\nc", []segment{{4, " x "}, {14, " y"}}},
		{"block across lines", "c", "/* a\n b */", []segment{{2, " a\n b "}}},
		{"unterminated block runs to eof", "c", "/* a", []segment{{2, " a"}}},
		{"shebang is not a comment", "shell", "#!/bin/sh\n# x", []segment{{11, " x"}}},
		{"block wins over its own prefix", "lua", "--[[ a ]] -- b", []segment{{4, " a "}, {12, " b"}}},
		{"indented block", "ruby", "=begin\nx\n=end", []segment{{6, "\nx\n"}}},
		{"no comments", "shell", "echo hi\n", nil},
		{"empty", "c", "", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, styleComments([]byte(tc.src), style(t, tc.lang)))
		})
	}
}

func TestLineIndex(t *testing.T) {
	data := []byte("ab\n  cd  \nef")
	li := newLineIndex(data)

	line, col := li.lineCol(0)
	assert.Equal(t, [2]int{1, 1}, [2]int{line, col})
	line, col = li.lineCol(5)
	assert.Equal(t, [2]int{2, 3}, [2]int{line, col})
	line, col = li.lineCol(len(data))
	assert.Equal(t, [2]int{3, 3}, [2]int{line, col})

	assert.Equal(t, "cd", li.lineText(data, 5))
	assert.Equal(t, "ef", li.lineText(data, 10))
	assert.Equal(t, "ab", li.lineText(data, 2))
}

func TestFileFilter(t *testing.T) {
	f, err := newFileFilter(nil, []string{"docs", "*.lock"}, true)
	require.NoError(t, err)
	assert.True(t, f.match("src/a.go"))
	assert.False(t, f.match("vendor/x/y.go"))
	assert.False(t, f.match("web/app.min.js"))
	assert.False(t, f.match("docs/a.md"))
	assert.False(t, f.match("yarn.lock"))

	f, err = newFileFilter([]string{"./src/", "cmd/**/*.go"}, nil, false)
	require.NoError(t, err)
	assert.True(t, f.match("src/a.go"))
	assert.False(t, f.match("srcx/a.go"))
	assert.True(t, f.match("cmd/tool/main.go"))
	assert.False(t, f.match("cmd/tool/README.md"))
	assert.False(t, f.match("vendor/ok.go"))

	_, err = newFileFilter([]string{"a/[b"}, nil, false)
	assert.Error(t, err)
}

func TestListFilesSkipsVCSDirs(t *testing.T) {
	fs := afero.NewMemMapFs()
	for _, name := range []string{"/r/.git/config", "/r/b.go", "/r/a/c.py"} {
		require.NoError(t, afero.WriteFile(fs, name, []byte("x"), 0o644))
	}
	f, err := newFileFilter(nil, nil, false)
	require.NoError(t, err)
	files, err := listFiles(fs, "/r", f)
	require.NoError(t, err)
	assert.Equal(t, []string{"a/c.py", "b.go"}, files)
}
