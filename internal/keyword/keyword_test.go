package keyword

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phyten/commentmark/internal/syntax"
)

type fakeNode struct {
	kind   string
	start  int
	parent *fakeNode
}

func (f *fakeNode) Kind() string   { return f.kind }
func (f *fakeNode) StartByte() int { return f.start }
func (f *fakeNode) Parent() syntax.Node {
	if f.parent == nil {
		return nil
	}
	return f.parent
}

// nodes parses src and returns every node of the given kind in document order.
func nodes(t *testing.T, lang, src, kind string) []syntax.Node {
	t.Helper()
	p := syntax.NewParser()
	t.Cleanup(p.Close)
	tree, err := p.Parse(context.Background(), lang, []byte(src))
	require.NoError(t, err)
	t.Cleanup(tree.Close)

	var out []syntax.Node
	syntax.Walk(tree.Root(), func(n *sitter.Node) bool {
		if n.Type() == kind {
			out = append(out, syntax.Wrap(n))
		}
		return true
	})
	require.NotEmpty(t, out, "no %s node in %q", kind, src)
	return out
}

func TestJavaAnnotatedMethodModifier(t *testing.T) {
	src := "class A {\n  private int x;\n  @Override public String toString() { return null; }\n}\n"

	privs := nodes(t, "java", src, "private")
	assert.True(t, Java.IsKeywordElement(privs[0]))
	assert.False(t, Java.IsMethodAccessModifierKeyword(privs[0]), "field modifier")

	pub := nodes(t, "java", src, "public")[0]
	assert.True(t, Java.IsKeywordElement(pub))
	assert.True(t, Java.IsMethodAccessModifierKeyword(pub))

	ret := nodes(t, "java", src, "return")[0]
	assert.True(t, Java.IsKeywordElement(ret))
	assert.False(t, Java.IsMethodAccessModifierKeyword(ret))

	null := nodes(t, "java", src, "null_literal")[0]
	assert.True(t, Java.IsKeywordElement(null))
	assert.False(t, Java.IsMethodAccessModifierKeyword(null))

	ident := nodes(t, "java", src, "identifier")[0]
	assert.False(t, Java.IsKeywordElement(ident))
}

func TestJavaConstructorModifier(t *testing.T) {
	src := "class A {\n  protected A() {}\n}\n"
	prot := nodes(t, "java", src, "protected")[0]
	assert.Equal(t, Classification{IsKeyword: true, IsMethodAccessModifier: true}, Classify(Java, prot))
}

func TestGoFuncKeyword(t *testing.T) {
	src := "package p\n\ntype T struct{}\n\nfunc (r T) M() bool { return true }\n\nfunc F() {}\n"

	funcs := nodes(t, "go", src, "func")
	require.Len(t, funcs, 2)
	for _, f := range funcs {
		assert.True(t, Go.IsKeywordElement(f))
		assert.True(t, Go.IsMethodAccessModifierKeyword(f))
	}

	ret := nodes(t, "go", src, "return")[0]
	assert.True(t, Go.IsKeywordElement(ret))
	assert.False(t, Go.IsMethodAccessModifierKeyword(ret))

	tr := nodes(t, "go", src, "true")[0]
	assert.Equal(t, Classification{IsKeyword: true}, Classify(Go, tr))

	typ := nodes(t, "go", src, "type")[0]
	assert.False(t, Go.IsMethodAccessModifierKeyword(typ))
}

func TestPythonDef(t *testing.T) {
	src := "def f():\n    return True\n\n@dec\ndef g():\n    return None\n"

	defs := nodes(t, "python", src, "def")
	require.Len(t, defs, 2)
	for _, d := range defs {
		assert.True(t, Python.IsMethodAccessModifierKeyword(d))
	}
	assert.True(t, Python.IsKeywordElement(nodes(t, "python", src, "true")[0]))
	assert.True(t, Python.IsKeywordElement(nodes(t, "python", src, "none")[0]))
	assert.False(t, Python.IsMethodAccessModifierKeyword(nodes(t, "python", src, "return")[0]))
}

func TestJavaScriptStaticMethod(t *testing.T) {
	src := "let x = 1;\nclass A {\n  static m() { return this; }\n}\n"

	static := nodes(t, "javascript", src, "static")[0]
	assert.True(t, JavaScript.IsKeywordElement(static))
	assert.True(t, JavaScript.IsMethodAccessModifierKeyword(static))

	let := nodes(t, "javascript", src, "let")[0]
	assert.True(t, JavaScript.IsKeywordElement(let))
	assert.False(t, JavaScript.IsMethodAccessModifierKeyword(let))
}

func TestTypeScriptTypeNamesOnlyInPredefinedTypes(t *testing.T) {
	src := "const x: number = 42;\nconst s: string = \"s\";\n"

	nums := nodes(t, "typescript", src, "number")
	require.Len(t, nums, 2)
	assert.Equal(t, 9, nums[0].StartByte())
	assert.True(t, TypeScript.IsKeywordElement(nums[0]), "type annotation")
	assert.Equal(t, 18, nums[1].StartByte())
	assert.False(t, TypeScript.IsKeywordElement(nums[1]), "numeric literal")

	strs := nodes(t, "typescript", src, "string")
	require.Len(t, strs, 2)
	assert.True(t, TypeScript.IsKeywordElement(strs[0]))
	assert.False(t, TypeScript.IsKeywordElement(strs[1]))

	assert.True(t, TypeScript.IsKeywordElement(nodes(t, "typescript", src, "const")[0]))

	detached := &fakeNode{kind: "number"}
	assert.False(t, TypeScript.IsKeywordElement(detached))
	assert.True(t, TypeScript.IsKeywordElement(&fakeNode{kind: "any", parent: &fakeNode{kind: "predefined_type"}}))
}

func TestDetachedNodesAreNeverMethodModifiers(t *testing.T) {
	for _, lang := range Languages() {
		c, ok := For(lang)
		require.True(t, ok, lang)
		for _, kind := range []string{"public", "func", "def", "method_declaration", "function_item"} {
			n := &fakeNode{kind: kind, start: 4}
			assert.False(t, c.IsMethodAccessModifierKeyword(n), "%s/%s", lang, kind)
		}
		assert.False(t, c.IsKeywordElement(nil), lang)
		assert.False(t, c.IsMethodAccessModifierKeyword(nil), lang)
	}
}

func TestWrapperChain(t *testing.T) {
	file := &fakeNode{kind: "program"}
	body := &fakeNode{kind: "class_body", start: 8, parent: file}
	method := &fakeNode{kind: "method_declaration", start: 10, parent: body}
	mods := &fakeNode{kind: "modifiers", start: 10, parent: method}
	kw := &fakeNode{kind: "static", start: 20, parent: mods}

	assert.True(t, Java.IsMethodAccessModifierKeyword(kw))

	field := &fakeNode{kind: "field_declaration", start: 10, parent: body}
	fmods := &fakeNode{kind: "modifiers", start: 10, parent: field}
	fkw := &fakeNode{kind: "static", start: 20, parent: fmods}
	assert.False(t, Java.IsMethodAccessModifierKeyword(fkw))
}

func TestDeepTreeTerminates(t *testing.T) {
	n := &fakeNode{kind: "method_declaration"}
	for i := 0; i < syntax.MaxDepth*3; i++ {
		n = &fakeNode{kind: "modifiers", parent: n}
	}
	kw := &fakeNode{kind: "public", parent: n}
	assert.NotPanics(t, func() { Java.IsMethodAccessModifierKeyword(kw) })
}

func TestRegistry(t *testing.T) {
	c, ok := For(" Java ")
	require.True(t, ok)
	assert.Same(t, Java, c)

	_, ok = For("cobol")
	assert.False(t, ok)
	assert.Equal(t, None, ForOrNone("cobol"))
	assert.Equal(t, Classifier(TypeScript), ForOrNone("typescriptreact"))

	langs := Languages()
	assert.IsIncreasing(t, langs)
	for _, l := range langs {
		assert.True(t, syntax.Supported(l), "%s has no grammar", l)
	}
}

func TestNoneAndNilClassify(t *testing.T) {
	kw := &fakeNode{kind: "public"}
	assert.Equal(t, Classification{}, Classify(None, kw))
	assert.Equal(t, Classification{}, Classify(nil, kw))
	assert.Equal(t, Classification{}, Classify(Java, nil))
	assert.Equal(t, Classification{IsKeyword: true}, Classify(Java, kw))
}

func TestNamesAreLowercaseIDs(t *testing.T) {
	for _, l := range []*language{Java, Kotlin, Go, Python, JavaScript, TypeScript, Rust, CSharp} {
		c, ok := For(l.Name())
		require.True(t, ok, l.Name())
		assert.Same(t, l, c)
	}
}
