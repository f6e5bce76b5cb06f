// Package keyword decides whether a syntax node is a keyword and whether that
// keyword belongs to a method or function declaration.
package keyword

import (
	"sort"
	"strings"

	"github.com/phyten/commentmark/internal/syntax"
)

type Classifier interface {
	// IsKeywordElement reports whether n's kind is one of the language's
	// reserved-word or literal token kinds.
	IsKeywordElement(n syntax.Node) bool
	// IsMethodAccessModifierKeyword reports whether n's declaration root is
	// a method or function declaration. Nodes without a root are false.
	IsMethodAccessModifierKeyword(n syntax.Node) bool
}

type Classification struct {
	IsKeyword              bool `json:"is_keyword"`
	IsMethodAccessModifier bool `json:"is_method_access_modifier"`
}

// Classify runs both predicates. The method check only runs for keywords.
func Classify(c Classifier, n syntax.Node) Classification {
	if c == nil || n == nil || !c.IsKeywordElement(n) {
		return Classification{}
	}
	return Classification{IsKeyword: true, IsMethodAccessModifier: c.IsMethodAccessModifierKeyword(n)}
}

var registry = map[string]Classifier{
	"java":            Java,
	"kotlin":          Kotlin,
	"go":              Go,
	"python":          Python,
	"javascript":      JavaScript,
	"javascriptreact": JavaScript,
	"typescript":      TypeScript,
	"typescriptreact": TypeScript,
	"rust":            Rust,
	"csharp":          CSharp,
}

// For returns the classifier registered for a canonical language id.
func For(lang string) (Classifier, bool) {
	c, ok := registry[strings.ToLower(strings.TrimSpace(lang))]
	return c, ok
}

// ForOrNone is For with None as the fallback.
func ForOrNone(lang string) Classifier {
	if c, ok := For(lang); ok {
		return c
	}
	return None
}

// Languages returns the registered language ids, sorted.
func Languages() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// None classifies nothing; it stands in for languages without a kind table.
var None Classifier = noneClassifier{}

type noneClassifier struct{}

func (noneClassifier) IsKeywordElement(syntax.Node) bool              { return false }
func (noneClassifier) IsMethodAccessModifierKeyword(syntax.Node) bool { return false }
