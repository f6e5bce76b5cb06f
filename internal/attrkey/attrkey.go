// Package attrkey derives the display-color keys for configured tokens.
//
// A key is COMMENTMARK_<CATEGORY>.<escaped token>. Category names never
// contain '.', and the token escape is a bijection, so distinct
// (category, token) pairs never share a key.
package attrkey

import (
	"strings"
	"sync"

	"github.com/phyten/commentmark/internal/token"
)

const prefix = "COMMENTMARK_"

const hexDigits = "0123456789ABCDEF"

type Entry struct {
	Category token.Category `json:"category"`
	Token    string         `json:"token"`
	Key      string         `json:"key"`
}

// KeyFor returns the attribute key for a (category, token) pair.
func KeyFor(c token.Category, text string) string {
	var b strings.Builder
	b.Grow(len(prefix) + 10 + len(text)*3)
	b.WriteString(prefix)
	b.WriteString(c.String())
	b.WriteByte('.')
	for i := 0; i < len(text); i++ {
		ch := text[i]
		if keepByte(ch) {
			b.WriteByte(ch)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hexDigits[ch>>4])
		b.WriteByte(hexDigits[ch&0x0f])
	}
	return b.String()
}

func keepByte(ch byte) bool {
	switch {
	case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9':
		return true
	case ch == '_' || ch == '-':
		return true
	default:
		return false
	}
}

// Enumerate lists a key for every configured token, in category priority
// order and insertion order within a category.
func Enumerate(r token.Reader) []Entry {
	ordered := token.Capture(r).Ordered()
	if len(ordered) == 0 {
		return nil
	}
	out := make([]Entry, 0, len(ordered))
	for _, tk := range ordered {
		out = append(out, Entry{Category: tk.Category, Token: tk.Text, Key: KeyFor(tk.Category, tk.Text)})
	}
	return out
}

// Registry stores keys handed to a color-settings surface. Registering a key
// twice is a no-op, so reopening a surface never creates duplicates. A
// surface only sees keys registered before it read Keys; call Register again
// after the configuration changes.
type Registry struct {
	mu      sync.RWMutex
	order   []string
	entries map[string]Entry
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Register adds entries and reports how many were new.
func (r *Registry) Register(entries ...Entry) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.entries == nil {
		r.entries = make(map[string]Entry)
	}
	added := 0
	for _, e := range entries {
		if e.Key == "" {
			e.Key = KeyFor(e.Category, e.Token)
		}
		if _, ok := r.entries[e.Key]; ok {
			continue
		}
		r.entries[e.Key] = e
		r.order = append(r.order, e.Key)
		added++
	}
	return added
}

// Refresh registers every token currently configured in cfg.
func (r *Registry) Refresh(cfg token.Reader) int {
	return r.Register(Enumerate(cfg)...)
}

func (r *Registry) Lookup(key string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[key]
	return e, ok
}

func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Entry, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.entries[key])
	}
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
