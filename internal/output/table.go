package output

import (
	"io"
	"strings"

	"github.com/phyten/commentmark/internal/model"
	"github.com/phyten/commentmark/internal/termcolor"
	"github.com/phyten/commentmark/internal/textutil"
	"github.com/phyten/commentmark/internal/token"
)

const ellipsis = "…"

type TableOptions struct {
	Color termcolor.Settings
	// Truncate caps the display width of the text column; 0 disables it.
	Truncate int
}

var tableHeaders = []string{"LOCATION", "CATEGORY", "TOKEN", "TEXT"}

// WriteTable prints one aligned row per item. With color enabled the
// category cell and the matched token inside the text are colored.
func WriteTable(w io.Writer, items []model.Item, opts TableOptions) error {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, tableRow(it, opts))
	}
	header := make([]string, len(tableHeaders))
	for i, h := range tableHeaders {
		header[i] = termcolor.Apply(termcolor.HeaderStyle(), h, opts.Color.Enabled)
	}
	return writeAligned(w, header, rows)
}

func tableRow(it model.Item, opts TableOptions) []string {
	style := itemStyle(it, opts.Color)
	on := opts.Color.Enabled

	category := it.Category
	if category == "" {
		category = string(it.Kind)
		if it.MethodModifier {
			category += " (method)"
		}
	}

	text := it.Text
	if opts.Truncate > 0 {
		text = textutil.TruncateByWidth(text, opts.Truncate, ellipsis)
	}
	if idx := strings.Index(text, it.Token); it.Token != "" && idx >= 0 {
		text = termcolor.ApplyRange(style, text, idx, idx+len(it.Token), on)
	}

	return []string{
		location(it),
		termcolor.Apply(style, category, on),
		termcolor.Apply(style, it.Token, on),
		text,
	}
}

func itemStyle(it model.Item, color termcolor.Settings) termcolor.Style {
	if it.Kind == model.ItemKindKeyword {
		return termcolor.KeywordStyle(it.MethodModifier)
	}
	c, err := token.ParseCategory(it.Category)
	if err != nil {
		return termcolor.Style{}
	}
	return termcolor.CategoryStyle(c, color.Scheme, color.Profile)
}

// writeAligned pads every column but the last to its widest cell, measured
// in display columns with escape sequences ignored.
func writeAligned(w io.Writer, header []string, rows [][]string) error {
	widths := make([]int, len(header))
	for _, row := range append([][]string{header}, rows...) {
		for i, cell := range row {
			if cw := textutil.VisibleWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}
	var b strings.Builder
	for _, row := range append([][]string{header}, rows...) {
		b.Reset()
		for i, cell := range row {
			if i == len(row)-1 {
				b.WriteString(cell)
				break
			}
			b.WriteString(textutil.PadRight(cell, widths[i]))
			b.WriteString("  ")
		}
		b.WriteByte('\n')
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}
