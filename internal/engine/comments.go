package engine

import (
	"bytes"
	"sort"
	"strings"

	"github.com/phyten/commentmark/internal/detect"
	"github.com/phyten/commentmark/internal/model"
)

// segment is comment text with its absolute byte offset in the file.
type segment struct {
	offset int
	text   string
}

// styleComments finds comments line by line using delimiters only. It does
// not understand strings, so a prefix inside a literal is taken as a comment.
// Delimiters are excluded from the returned text.
func styleComments(data []byte, style detect.Style) []segment {
	if len(data) == 0 {
		return nil
	}
	var out []segment
	var open *detect.Block
	blockStart := 0

	offset := 0
	for offset <= len(data) {
		end := bytes.IndexByte(data[offset:], '\n')
		if end < 0 {
			end = len(data)
		} else {
			end += offset
		}
		line := string(data[offset:end])
		pos := 0
		if offset == 0 && strings.HasPrefix(line, "#!") {
			pos = len(line) + 1
		}

		for pos <= len(line) {
			if open != nil {
				idx := strings.Index(line[pos:], open.End)
				if idx < 0 {
					break
				}
				closeAt := offset + pos + idx
				out = append(out, segment{offset: blockStart, text: string(data[blockStart:closeAt])})
				pos += idx + len(open.End)
				open = nil
				continue
			}
			blockIdx, block := firstBlock(line, pos, style.Blocks)
			lineIdx, prefix := firstPrefix(line, pos, style.LinePrefixes)
			if blockIdx >= 0 && (lineIdx < 0 || blockIdx <= lineIdx) {
				b := block
				open = &b
				pos = blockIdx + len(b.Start)
				blockStart = offset + pos
				continue
			}
			if lineIdx >= 0 {
				start := lineIdx + len(prefix)
				out = append(out, segment{offset: offset + start, text: line[start:]})
			}
			break
		}
		if end >= len(data) {
			break
		}
		offset = end + 1
	}
	if open != nil && blockStart <= len(data) {
		out = append(out, segment{offset: blockStart, text: string(data[blockStart:])})
	}
	return out
}

func firstBlock(line string, from int, blocks []detect.Block) (int, detect.Block) {
	best := -1
	var found detect.Block
	for _, b := range blocks {
		var idx int
		if b.Indented {
			if from > 0 {
				continue
			}
			trimmed := strings.TrimLeft(line, " \t")
			if !strings.HasPrefix(trimmed, b.Start) {
				continue
			}
			idx = len(line) - len(trimmed)
		} else {
			rel := strings.Index(line[from:], b.Start)
			if rel < 0 {
				continue
			}
			idx = from + rel
		}
		if best < 0 || idx < best {
			best, found = idx, b
		}
	}
	return best, found
}

func firstPrefix(line string, from int, prefixes []string) (int, string) {
	best := -1
	var found string
	for _, p := range prefixes {
		rel := strings.Index(line[from:], p)
		if rel < 0 {
			continue
		}
		if idx := from + rel; best < 0 || idx < best || (idx == best && len(p) > len(found)) {
			best, found = idx, p
		}
	}
	return best, found
}

// lineIndex maps byte offsets to 1-based line and column numbers.
type lineIndex []int

func newLineIndex(data []byte) lineIndex {
	offsets := make([]int, 0, bytes.Count(data, []byte{'\n'})+1)
	offsets = append(offsets, 0)
	for i, b := range data {
		if b == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}

func (li lineIndex) lineCol(offset int) (line, col int) {
	idx := sort.Search(len(li), func(i int) bool { return li[i] > offset })
	if idx == 0 {
		return 1, offset + 1
	}
	return idx, offset - li[idx-1] + 1
}

func (li lineIndex) span(start, end int) model.Span {
	sl, sc := li.lineCol(start)
	el, ec := li.lineCol(end)
	return model.Span{StartLine: sl, StartCol: sc, EndLine: el, EndCol: ec, ByteStart: start, ByteEnd: end}
}

// lineText returns the trimmed source line holding offset.
func (li lineIndex) lineText(data []byte, offset int) string {
	line, _ := li.lineCol(offset)
	start := li[line-1]
	end := len(data)
	if line < len(li) {
		end = li[line] - 1
	}
	if start > end {
		return ""
	}
	return strings.TrimSpace(string(data[start:end]))
}
