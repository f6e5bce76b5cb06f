package detect

// Block is a delimited comment such as /* ... */.
type Block struct {
	Start string
	End   string
	// Indented allows the start delimiter only at the beginning of a line,
	// after optional indentation.
	Indented bool
}

// Style describes how comments are written in a language without a grammar.
type Style struct {
	LinePrefixes []string
	Blocks       []Block
}

var (
	styleC = Style{
		LinePrefixes: []string{"//"},
		Blocks:       []Block{{Start: "/*", End: "*/"}},
	}
	styleHash = Style{
		LinePrefixes: []string{"#"},
	}
	styleRuby = Style{
		LinePrefixes: []string{"#"},
		Blocks:       []Block{{Start: "=begin", End: "=end", Indented: true}},
	}
	styleHTML = Style{
		Blocks: []Block{{Start: "<!--", End: "-->"}},
	}
	styleSQL = Style{
		LinePrefixes: []string{"--"},
		Blocks:       []Block{{Start: "/*", End: "*/"}},
	}
	styleCSS = Style{
		Blocks: []Block{{Start: "/*", End: "*/"}},
	}
	styleIni = Style{
		LinePrefixes: []string{";", "#"},
	}
	styleHCL = Style{
		LinePrefixes: []string{"//", "#"},
		Blocks:       []Block{{Start: "/*", End: "*/"}},
	}
	styleLisp = Style{
		LinePrefixes: []string{";"},
	}
	styleHaskell = Style{
		LinePrefixes: []string{"--"},
		Blocks:       []Block{{Start: "{-", End: "-}"}},
	}
	styleLua = Style{
		LinePrefixes: []string{"--"},
		Blocks:       []Block{{Start: "--[[", End: "]]"}},
	}
	stylePowershell = Style{
		LinePrefixes: []string{"#"},
		Blocks:       []Block{{Start: "<#", End: "#>"}},
	}
	styleBatch = Style{
		LinePrefixes: []string{"REM ", "rem ", "::"},
	}
)

var styles = map[string]Style{
	"c":               styleC,
	"cpp":             styleC,
	"go":              styleC,
	"gomod":           styleC,
	"java":            styleC,
	"kotlin":          styleC,
	"csharp":          styleC,
	"scala":           styleC,
	"groovy":          styleC,
	"swift":           styleC,
	"dart":            styleC,
	"rust":            styleC,
	"javascript":      styleC,
	"javascriptreact": styleC,
	"typescript":      styleC,
	"typescriptreact": styleC,
	"php":             styleC,
	"proto":           styleC,
	"python":          styleHash,
	"ruby":            styleRuby,
	"shell":           styleHash,
	"yaml":            styleHash,
	"toml":            styleHash,
	"make":            styleHash,
	"cmake":           styleHash,
	"dockerfile":      styleHash,
	"ini":             styleIni,
	"properties":      styleIni,
	"terraform":       styleHCL,
	"hcl":             styleHCL,
	"html":            styleHTML,
	"xml":             styleHTML,
	"vue":             styleHTML,
	"svelte":          styleHTML,
	"css":             styleCSS,
	"scss":            styleC,
	"less":            styleC,
	"sql":             styleSQL,
	"haskell":         styleHaskell,
	"lua":             styleLua,
	"powershell":      stylePowershell,
	"batch":           styleBatch,
	"common-lisp":     styleLisp,
	"clojure":         styleLisp,
}

// StyleFor returns the comment style of a canonical language id.
func StyleFor(lang string) (Style, bool) {
	s, ok := styles[NormalizeLangName(lang)]
	return s, ok
}
