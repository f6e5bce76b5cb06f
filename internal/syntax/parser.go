package syntax

import (
	"context"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"
	golang "github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/kotlin"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/rust"
	tsxlang "github.com/smacker/go-tree-sitter/typescript/tsx"
	tslang "github.com/smacker/go-tree-sitter/typescript/typescript"
	"gitlab.com/tozd/go/errors"
)

var ErrUnsupportedLanguage = errors.Base("unsupported language")

var grammars = map[string]func() *sitter.Language{
	"java":            java.GetLanguage,
	"kotlin":          kotlin.GetLanguage,
	"go":              golang.GetLanguage,
	"python":          python.GetLanguage,
	"javascript":      javascript.GetLanguage,
	"javascriptreact": javascript.GetLanguage,
	"typescript":      tslang.GetLanguage,
	"typescriptreact": tsxlang.GetLanguage,
	"rust":            rust.GetLanguage,
	"csharp":          csharp.GetLanguage,
}

// Supported reports whether lang has a grammar.
func Supported(lang string) bool {
	_, ok := grammars[strings.ToLower(strings.TrimSpace(lang))]
	return ok
}

// Languages returns the language ids with a grammar, sorted.
func Languages() []string {
	out := make([]string, 0, len(grammars))
	for name := range grammars {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Tree is a parsed document. Close releases the native tree.
type Tree struct {
	Lang   string
	Source []byte
	tree   *sitter.Tree
}

func (t *Tree) Root() *sitter.Node {
	if t == nil || t.tree == nil {
		return nil
	}
	return t.tree.RootNode()
}

func (t *Tree) Close() {
	if t == nil || t.tree == nil {
		return
	}
	t.tree.Close()
	t.tree = nil
}

// Parser is not safe for concurrent use; give each worker its own.
type Parser struct {
	p *sitter.Parser
}

func NewParser() *Parser {
	return &Parser{p: sitter.NewParser()}
}

func (p *Parser) Parse(ctx context.Context, lang string, src []byte) (*Tree, error) {
	lang = strings.ToLower(strings.TrimSpace(lang))
	grammar, ok := grammars[lang]
	if !ok {
		return nil, errors.WithDetails(ErrUnsupportedLanguage, "lang", lang)
	}
	p.p.SetLanguage(grammar())
	tree, err := p.p.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, errors.Errorf("parse %s: %w", lang, err)
	}
	if tree == nil {
		return nil, errors.Errorf("parse %s: no tree", lang)
	}
	return &Tree{Lang: lang, Source: src, tree: tree}, nil
}

func (p *Parser) Close() {
	if p == nil || p.p == nil {
		return
	}
	p.p.Close()
}

// Walk visits nodes in document order. Returning false from visit skips the
// node's children. It uses a tree cursor, not recursion.
func Walk(root *sitter.Node, visit func(n *sitter.Node) bool) {
	if root == nil {
		return
	}
	c := sitter.NewTreeCursor(root)
	defer c.Close()
	for {
		if visit(c.CurrentNode()) && c.GoToFirstChild() {
			continue
		}
		for !c.GoToNextSibling() {
			if !c.GoToParent() {
				return
			}
		}
	}
}

// IsComment reports whether a node kind is a comment in any supported
// grammar (comment, line_comment, block_comment, multiline_comment).
func IsComment(kind string) bool {
	return strings.HasSuffix(kind, "comment")
}
