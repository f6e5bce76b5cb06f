// Package detect maps file paths and contents to canonical language ids.
package detect

import (
	"bytes"
	"path/filepath"
	"strings"
)

// PlainText is the language id of files scanned whole, outside any comment.
const PlainText = "plaintext"

type Info struct {
	Name string
	// Shebang is set when the name came from a "#!" first line.
	Shebang bool
}

// FromPathAndContent tries the path first, then a shebang line. Files without
// an extension or shebang are plain text.
func FromPathAndContent(p string, data []byte) Info {
	if name := detectByPath(p); name != "" {
		return Info{Name: name}
	}
	if name := detectByShebang(data); name != "" {
		return Info{Name: name, Shebang: true}
	}
	if filepath.Ext(filepath.Base(p)) == "" && !bytes.HasPrefix(data, []byte("#!")) {
		return Info{Name: PlainText}
	}
	return Info{}
}

func detectByPath(p string) string {
	base := strings.ToLower(filepath.Base(p))
	if lang, ok := basenameLanguages[base]; ok {
		return lang
	}
	ext := filepath.Ext(base)
	if ext == "" {
		return ""
	}
	if lang, ok := extensionLanguages[ext]; ok {
		return lang
	}
	// foo.sh.in, foo.yaml.tmpl and friends use the inner extension
	stem := strings.TrimSuffix(base, ext)
	if lang, ok := extensionLanguages[filepath.Ext(stem)]; ok {
		return lang
	}
	return ""
}

func detectByShebang(data []byte) string {
	if !bytes.HasPrefix(data, []byte("#!")) {
		return ""
	}
	end := bytes.IndexByte(data, '\n')
	if end == -1 {
		end = len(data)
	}
	fields := strings.Fields(strings.ToLower(string(data[2:end])))
	for i := len(fields) - 1; i >= 0; i-- {
		interp := filepath.Base(fields[i])
		if lang, ok := shebangLanguages[interp]; ok {
			return lang
		}
	}
	return ""
}

func NormalizeLangName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if canon, ok := langAliases[n]; ok {
		return canon
	}
	return n
}

// MatchesLang reports whether info is one of allow. An empty allow list
// matches everything.
func MatchesLang(info Info, allow []string) bool {
	if len(allow) == 0 {
		return true
	}
	detected := NormalizeLangName(info.Name)
	if detected == "" {
		return false
	}
	for _, raw := range allow {
		if NormalizeLangName(raw) == detected {
			return true
		}
	}
	return false
}

// KnownLanguage reports whether name has a comment style or is plain text.
func KnownLanguage(name string) bool {
	n := NormalizeLangName(name)
	if n == PlainText {
		return true
	}
	_, ok := styles[n]
	return ok
}

// CanonicalDetectLangs normalizes and dedupes a language filter list.
func CanonicalDetectLangs(values []string) []string {
	if len(values) == 0 {
		return values
	}
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, raw := range values {
		norm := NormalizeLangName(raw)
		if norm == "" {
			continue
		}
		if _, ok := seen[norm]; ok {
			continue
		}
		seen[norm] = struct{}{}
		out = append(out, norm)
	}
	return out
}

var basenameLanguages = map[string]string{
	"makefile":       "make",
	"gnumakefile":    "make",
	"justfile":       "make",
	"dockerfile":     "dockerfile",
	"cmakelists.txt": "cmake",
	"gemfile":        "ruby",
	"rakefile":       "ruby",
	"jenkinsfile":    "groovy",
	"readme":         PlainText,
	"license":        PlainText,
	"changelog":      PlainText,
	"go.mod":         "gomod",
}

var extensionLanguages = map[string]string{
	".c":          "c",
	".h":          "c",
	".cc":         "cpp",
	".cpp":        "cpp",
	".cxx":        "cpp",
	".hpp":        "cpp",
	".go":         "go",
	".js":         "javascript",
	".mjs":        "javascript",
	".cjs":        "javascript",
	".jsx":        "javascriptreact",
	".ts":         "typescript",
	".mts":        "typescript",
	".cts":        "typescript",
	".tsx":        "typescriptreact",
	".py":         "python",
	".pyi":        "python",
	".rb":         "ruby",
	".php":        "php",
	".cs":         "csharp",
	".java":       "java",
	".kt":         "kotlin",
	".kts":        "kotlin",
	".scala":      "scala",
	".groovy":     "groovy",
	".gradle":     "groovy",
	".swift":      "swift",
	".rs":         "rust",
	".dart":       "dart",
	".hs":         "haskell",
	".lua":        "lua",
	".sh":         "shell",
	".bash":       "shell",
	".zsh":        "shell",
	".ps1":        "powershell",
	".bat":        "batch",
	".cmd":        "batch",
	".sql":        "sql",
	".yaml":       "yaml",
	".yml":        "yaml",
	".toml":       "toml",
	".ini":        "ini",
	".properties": "properties",
	".html":       "html",
	".htm":        "html",
	".xml":        "xml",
	".vue":        "vue",
	".svelte":     "svelte",
	".css":        "css",
	".scss":       "scss",
	".less":       "less",
	".proto":      "proto",
	".tf":         "terraform",
	".hcl":        "hcl",
	".mk":         "make",
	".lisp":       "common-lisp",
	".el":         "common-lisp",
	".clj":        "clojure",
	".txt":        PlainText,
	".text":       PlainText,
}

var langAliases = map[string]string{
	"c#":         "csharp",
	"cs":         "csharp",
	"c++":        "cpp",
	"golang":     "go",
	"js":         "javascript",
	"jsx":        "javascriptreact",
	"ts":         "typescript",
	"tsx":        "typescriptreact",
	"kt":         "kotlin",
	"py":         "python",
	"rb":         "ruby",
	"rs":         "rust",
	"bash":       "shell",
	"sh":         "shell",
	"zsh":        "shell",
	"yml":        "yaml",
	"tf":         "terraform",
	"text":       PlainText,
	"txt":        PlainText,
	"plain":      PlainText,
	"plain-text": PlainText,
}

var shebangLanguages = map[string]string{
	"python":  "python",
	"python3": "python",
	"python2": "python",
	"node":    "javascript",
	"deno":    "typescript",
	"ruby":    "ruby",
	"php":     "php",
	"bash":    "shell",
	"sh":      "shell",
	"zsh":     "shell",
	"pwsh":    "powershell",
	"lua":     "lua",
}
