package token

// Token is one configured literal under a category.
type Token struct {
	Category Category
	Text     string
}

// Reader is the read side of the token configuration consumed by the core.
type Reader interface {
	AllTokens() map[Category][]string
	PlainTextHighlightEnabled() bool
}

// Snapshot is an immutable configuration value. The zero value has no tokens
// and plain-text highlighting disabled.
type Snapshot struct {
	tokens    [categoryCount][]string
	plainText bool
}

var _ Reader = Snapshot{}

// NewSnapshot deep-copies tokens. Empty strings and duplicates within a
// category are dropped, keeping the first occurrence; unknown categories are
// ignored.
func NewSnapshot(tokens map[Category][]string, plainText bool) Snapshot {
	s := Snapshot{plainText: plainText}
	for c, list := range tokens {
		if !c.Valid() {
			continue
		}
		s.tokens[c] = dedupe(list)
	}
	return s
}

// DefaultSnapshot mirrors the built-in marker set.
func DefaultSnapshot() Snapshot {
	return NewSnapshot(map[Category][]string{
		CategoryError:   {"!"},
		CategoryWarning: {"?"},
		CategoryInfo:    {"*"},
	}, false)
}

func (s Snapshot) AllTokens() map[Category][]string {
	out := make(map[Category][]string, categoryCount)
	for c := CategoryError; c < categoryCount; c++ {
		out[c] = cloneStrings(s.tokens[c])
	}
	return out
}

func (s Snapshot) PlainTextHighlightEnabled() bool {
	return s.plainText
}

// Tokens returns a copy of the texts configured for c, in insertion order.
func (s Snapshot) Tokens(c Category) []string {
	if !c.Valid() {
		return nil
	}
	return cloneStrings(s.tokens[c])
}

// Ordered lists every token in priority order, insertion order within a
// category.
func (s Snapshot) Ordered() []Token {
	var out []Token
	for c := CategoryError; c < categoryCount; c++ {
		for _, text := range s.tokens[c] {
			out = append(out, Token{Category: c, Text: text})
		}
	}
	return out
}

func (s Snapshot) Len() int {
	n := 0
	for _, list := range s.tokens {
		n += len(list)
	}
	return n
}

// WithPlainText returns a copy with the plain-text flag replaced.
func (s Snapshot) WithPlainText(enabled bool) Snapshot {
	out := Snapshot{plainText: enabled}
	for c := range s.tokens {
		out.tokens[c] = cloneStrings(s.tokens[c])
	}
	return out
}

// Capture copies any Reader into a Snapshot so a highlighting pass works on a
// value that cannot change underneath it.
func Capture(r Reader) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	if s, ok := r.(Snapshot); ok {
		return s
	}
	return NewSnapshot(r.AllTokens(), r.PlainTextHighlightEnabled())
}

func dedupe(list []string) []string {
	if len(list) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, text := range list {
		if text == "" {
			continue
		}
		if _, ok := seen[text]; ok {
			continue
		}
		seen[text] = struct{}{}
		out = append(out, text)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
