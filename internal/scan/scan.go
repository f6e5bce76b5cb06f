// Package scan finds category markers and configured words inside comment
// text and reports them as absolute byte ranges.
package scan

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/phyten/commentmark/internal/attrkey"
	"github.com/phyten/commentmark/internal/token"
)

// Highlight covers text[Start:End] of the scanned document.
type Highlight struct {
	Start    int            `json:"start"`
	End      int            `json:"end"`
	Category token.Category `json:"category"`
	Token    string         `json:"token"`
	Key      string         `json:"key"`
}

func (h Highlight) Len() int {
	return h.End - h.Start
}

type rule struct {
	cat  token.Category
	text string
	key  string
}

// Scanner holds the rules compiled from one configuration snapshot. It is
// read-only after New and safe for concurrent use.
type Scanner struct {
	markers []rule
	words   []rule
}

// New compiles cfg. Markers are single-grapheme tokens without letters or
// digits; every other token is matched as a literal substring.
func New(cfg token.Reader) *Scanner {
	s := &Scanner{}
	for _, tk := range token.Capture(cfg).Ordered() {
		r := rule{cat: tk.Category, text: tk.Text, key: attrkey.KeyFor(tk.Category, tk.Text)}
		if IsMarker(tk.Text) {
			s.markers = append(s.markers, r)
		} else {
			s.words = append(s.words, r)
		}
	}
	return s
}

// Scan is New(cfg).Scan(text, baseOffset).
func Scan(text string, baseOffset int, cfg token.Reader) []Highlight {
	if text == "" {
		return nil
	}
	return New(cfg).Scan(text, baseOffset)
}

// PlainText scans a whole plain-text document, but only when the
// configuration enables plain-text highlighting.
func PlainText(text string, baseOffset int, cfg token.Reader) []Highlight {
	if cfg == nil || !cfg.PlainTextHighlightEnabled() {
		return nil
	}
	return Scan(text, baseOffset, cfg)
}

func (s *Scanner) Empty() bool {
	return s == nil || (len(s.markers) == 0 && len(s.words) == 0)
}

// Scan returns at most one highlight per line of text, sorted by offset.
// baseOffset is the document offset of text[0].
func (s *Scanner) Scan(text string, baseOffset int) []Highlight {
	return s.Append(nil, text, baseOffset)
}

// Append is Scan writing into dst.
func (s *Scanner) Append(dst []Highlight, text string, baseOffset int) []Highlight {
	if s.Empty() || text == "" {
		return dst
	}
	start := 0
	for {
		end := strings.IndexByte(text[start:], '\n')
		last := end < 0
		var line string
		if last {
			line = text[start:]
		} else {
			line = text[start : start+end]
		}
		line = strings.TrimSuffix(line, "\r")
		if h, ok := s.scanLine(line); ok {
			h.Start += baseOffset + start
			h.End += baseOffset + start
			dst = append(dst, h)
		}
		if last {
			break
		}
		start += end + 1
	}
	return dst
}

func (s *Scanner) scanLine(line string) (Highlight, bool) {
	if strings.TrimSpace(line) == "" {
		return Highlight{}, false
	}
	if pos, r, ok := s.matchMarker(line); ok {
		return Highlight{Start: pos, End: pos + len(r.text), Category: r.cat, Token: r.text, Key: r.key}, true
	}
	for _, r := range s.words {
		if idx := strings.Index(line, r.text); idx >= 0 {
			return Highlight{Start: idx, End: idx + len(r.text), Category: r.cat, Token: r.text, Key: r.key}, true
		}
	}
	return Highlight{}, false
}

func (s *Scanner) matchMarker(line string) (int, rule, bool) {
	if len(s.markers) == 0 {
		return 0, rule{}, false
	}
	lo, hi := contentBounds(line)
	if lo >= hi {
		return 0, rule{}, false
	}
	g := firstGrapheme(line[lo:hi])
	if g == continuation {
		if next := skipSpace(line, lo+len(g), hi); next < hi {
			if g2 := firstGrapheme(line[next:hi]); s.isMarker(g2) {
				lo, g = next, g2
			}
		}
	}
	r, ok := s.marker(g)
	if !ok {
		return 0, rule{}, false
	}
	// a line holding nothing but the marker is decoration
	if skipSpace(line, lo+len(g), hi) >= hi {
		return 0, rule{}, false
	}
	return lo, r, true
}

func (s *Scanner) marker(g string) (rule, bool) {
	for _, r := range s.markers {
		if r.text == g {
			return r, true
		}
	}
	return rule{}, false
}

func (s *Scanner) isMarker(g string) bool {
	_, ok := s.marker(g)
	return ok
}

const continuation = "*"

var (
	openers = []string{"<!--", "/**", "/*!", "/*", "///", "//!", "//", "#", "--"}
	closers = []string{"*/", "-->"}
)

// contentBounds returns the span of line left after comment decoration.
func contentBounds(line string) (int, int) {
	lo := skipSpace(line, 0, len(line))
	if strings.HasPrefix(line[lo:], "#!/") {
		return lo, lo
	}
	for _, op := range openers {
		if strings.HasPrefix(line[lo:], op) {
			lo += len(op)
			break
		}
	}
	hi := len(strings.TrimRightFunc(line, unicode.IsSpace))
	if hi < lo {
		return lo, lo
	}
	for _, cl := range closers {
		if strings.HasSuffix(line[lo:hi], cl) {
			hi -= len(cl)
			break
		}
	}
	return skipSpace(line, lo, hi), hi
}

func skipSpace(s string, from, to int) int {
	i := from
	for i < to {
		r, size := utf8.DecodeRuneInString(s[i:to])
		if !unicode.IsSpace(r) {
			break
		}
		i += size
	}
	return i
}

func firstGrapheme(s string) string {
	if s == "" {
		return ""
	}
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(s, -1)
	return cluster
}

// IsMarker reports whether text is matched as a category marker rather than
// as a word: a single grapheme cluster with no letter or digit.
func IsMarker(text string) bool {
	if text == "" || uniseg.GraphemeClusterCount(text) != 1 {
		return false
	}
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
