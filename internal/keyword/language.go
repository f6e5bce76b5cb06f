package keyword

import "github.com/phyten/commentmark/internal/syntax"

type kindSet map[string]struct{}

func kinds(groups ...[]string) kindSet {
	out := make(kindSet)
	for _, g := range groups {
		for _, k := range g {
			out[k] = struct{}{}
		}
	}
	return out
}

func (s kindSet) has(kind string) bool {
	_, ok := s[kind]
	return ok
}

// language is a Classifier driven by closed node-kind tables of one grammar.
//
// The declaration root of a node is found by climbing while the parent
// starts at the same byte (the node opens its parent) or while either side is
// a modifier wrapper, so annotations ahead of a modifier list do not hide
// the declaration. Climbing stops at the first method kind reached.
type language struct {
	name     string
	keywords kindSet
	methods  kindSet
	wrappers kindSet
	// scoped kinds are keywords only under the mapped parent kind.
	scoped map[string]string
}

func newLanguage(name string, keywords, methods, wrappers []string) *language {
	return &language{
		name:     name,
		keywords: kinds(keywords),
		methods:  kinds(methods),
		wrappers: kinds(wrappers),
	}
}

// scopedTo marks kinds that the grammar also uses for non-keyword nodes.
func (l *language) scopedTo(parent string, kinds ...string) *language {
	if l.scoped == nil {
		l.scoped = make(map[string]string, len(kinds))
	}
	for _, k := range kinds {
		l.scoped[k] = parent
	}
	return l
}

func (l *language) Name() string {
	return l.name
}

func (l *language) IsKeywordElement(n syntax.Node) bool {
	if n == nil {
		return false
	}
	kind := n.Kind()
	if parent, ok := l.scoped[kind]; ok {
		p := n.Parent()
		return p != nil && p.Kind() == parent
	}
	return l.keywords.has(kind)
}

func (l *language) IsMethodAccessModifierKeyword(n syntax.Node) bool {
	root, depth := l.declarationRoot(n)
	if root == nil || depth == 0 {
		return false
	}
	return l.methods.has(root.Kind())
}

// declarationRoot returns the root and how many parents were climbed to
// reach it.
func (l *language) declarationRoot(n syntax.Node) (syntax.Node, int) {
	depth := 0
	root := syntax.Root(n, func(child, parent syntax.Node) bool {
		if l.methods.has(child.Kind()) {
			return false
		}
		if child.StartByte() != parent.StartByte() && !l.wrappers.has(parent.Kind()) && !l.wrappers.has(child.Kind()) {
			return false
		}
		depth++
		return true
	})
	return root, depth
}

var (
	literalsC = []string{"true", "false"}

	Java = newLanguage("java",
		[]string{
			"abstract", "assert", "break", "case", "catch", "class", "continue", "default", "do",
			"else", "enum", "exports", "extends", "final", "finally", "for", "if", "implements",
			"import", "instanceof", "interface", "module", "native", "new", "non-sealed", "open",
			"opens", "package", "permits", "private", "protected", "provides", "public", "record",
			"requires", "return", "sealed", "static", "strictfp", "switch", "synchronized", "throw",
			"throws", "to", "transient", "transitive", "try", "uses", "volatile", "when", "while",
			"with", "yield",
			"byte", "short", "int", "long", "char", "float", "double", "boolean_type", "void_type",
			"this", "super", "true", "false", "null_literal",
		},
		[]string{"method_declaration", "constructor_declaration", "compact_constructor_declaration"},
		[]string{"modifiers"},
	)

	Kotlin = newLanguage("kotlin",
		append([]string{
			"fun", "val", "var", "class", "interface", "object", "package", "import", "typealias",
			"constructor", "init", "this", "super", "if", "else", "when", "try", "catch", "finally",
			"for", "do", "while", "return", "throw", "break", "continue", "in", "is", "as", "by",
			"where", "get", "set",
			"public", "private", "protected", "internal", "abstract", "final", "open", "override",
			"lateinit", "enum", "sealed", "annotation", "data", "inner", "companion", "inline",
			"infix", "operator", "suspend", "tailrec", "external", "const", "vararg", "noinline",
			"crossinline", "reified", "expect", "actual", "value",
			"null",
		}, literalsC...),
		[]string{"function_declaration", "secondary_constructor", "getter", "setter"},
		[]string{"modifiers", "visibility_modifier", "inheritance_modifier", "member_modifier", "function_modifier", "class_modifier"},
	)

	Go = newLanguage("go",
		[]string{
			"break", "case", "chan", "const", "continue", "default", "defer", "else", "fallthrough",
			"for", "func", "go", "goto", "if", "import", "interface", "map", "package", "range",
			"return", "select", "struct", "switch", "type", "var",
			"true", "false", "nil", "iota",
		},
		[]string{"method_declaration", "function_declaration"},
		nil,
	)

	Python = newLanguage("python",
		[]string{
			"and", "as", "assert", "async", "await", "break", "case", "class", "continue", "def",
			"del", "elif", "else", "except", "exec", "finally", "for", "from", "global", "if",
			"import", "in", "is", "lambda", "match", "nonlocal", "not", "or", "pass", "print",
			"raise", "return", "try", "while", "with", "yield",
			"true", "false", "none",
		},
		[]string{"function_definition"},
		nil,
	)

	jsKeywords = []string{
		"as", "async", "await", "break", "case", "catch", "class", "const", "continue", "debugger",
		"default", "delete", "do", "else", "export", "extends", "finally", "for", "from", "function",
		"get", "if", "import", "in", "instanceof", "let", "new", "of", "return", "set", "static",
		"switch", "target", "throw", "try", "typeof", "var", "void", "while", "with", "yield",
		"true", "false", "null", "undefined", "this", "super",
	}

	JavaScript = newLanguage("javascript",
		jsKeywords,
		[]string{"method_definition", "function_declaration", "generator_function_declaration"},
		nil,
	)

	TypeScript = newLanguage("typescript",
		append([]string{
			"abstract", "declare", "enum", "implements", "interface", "keyof", "namespace", "module",
			"private", "protected", "public", "readonly", "override", "type", "satisfies", "is",
			"infer", "unique", "asserts",
		}, jsKeywords...),
		[]string{
			"method_definition", "method_signature", "abstract_method_signature",
			"function_declaration", "function_signature", "generator_function_declaration",
		},
		[]string{"accessibility_modifier", "override_modifier"},
	).scopedTo("predefined_type",
		"any", "boolean", "number", "string", "symbol", "never", "unknown", "object", "bigint",
	)

	Rust = newLanguage("rust",
		append([]string{
			"as", "async", "await", "break", "const", "continue", "default", "dyn", "else", "enum",
			"extern", "fn", "for", "if", "impl", "in", "let", "loop", "match", "mod", "move", "pub",
			"ref", "return", "static", "struct", "trait", "type", "union", "unsafe", "use", "where",
			"while", "yield",
			"self", "super", "crate", "mutable_specifier",
		}, literalsC...),
		[]string{"function_item", "function_signature_item"},
		[]string{"visibility_modifier", "function_modifiers"},
	)

	CSharp = newLanguage("csharp",
		append([]string{
			"abstract", "as", "async", "await", "base", "break", "case", "catch", "checked", "class",
			"const", "continue", "default", "delegate", "do", "else", "enum", "event", "explicit",
			"extern", "finally", "fixed", "for", "foreach", "get", "goto", "if", "implicit", "in",
			"init", "interface", "internal", "is", "lock", "namespace", "new", "operator", "out",
			"override", "params", "partial", "private", "protected", "public", "readonly", "record",
			"ref", "return", "sealed", "set", "sizeof", "stackalloc", "static", "struct", "switch",
			"this", "throw", "try", "typeof", "unchecked", "unsafe", "using", "var", "virtual", "void",
			"volatile", "where", "while", "yield",
			"this_expression", "base_expression", "predefined_type", "null_literal",
		}, literalsC...),
		[]string{
			"method_declaration", "constructor_declaration", "destructor_declaration",
			"local_function_statement", "operator_declaration",
		},
		[]string{"modifier"},
	)
)
