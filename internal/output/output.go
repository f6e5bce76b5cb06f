package output

import (
	"encoding/json"
	"io"

	"gitlab.com/tozd/go/errors"

	"github.com/phyten/commentmark/internal/attrkey"
	"github.com/phyten/commentmark/internal/engine"
	"github.com/phyten/commentmark/internal/termcolor"
)

// Write renders res in one of the formats accepted by opts.NormalizeOutput.
func Write(w io.Writer, format string, res *engine.Result, table TableOptions) error {
	switch format {
	case "table", "":
		return WriteTable(w, res.Items, table)
	case "json":
		return WriteJSON(w, res)
	case "ndjson":
		return WriteNDJSON(w, res.Items)
	case "csv":
		return WriteCSV(w, res.Items)
	case "markdown":
		return WriteMarkdownTable(w, res.Items)
	default:
		return errors.Errorf("unknown output format: %s", format)
	}
}

// WriteKeys lists attribute keys in the same formats as Write.
func WriteKeys(w io.Writer, format string, entries []attrkey.Entry, color termcolor.Settings) error {
	switch format {
	case "table", "":
		header := []string{"CATEGORY", "TOKEN", "KEY"}
		for i, h := range header {
			header[i] = termcolor.Apply(termcolor.HeaderStyle(), h, color.Enabled)
		}
		rows := keyRows(entries)
		for i, e := range entries {
			style := termcolor.CategoryStyle(e.Category, color.Scheme, color.Profile)
			rows[i][0] = termcolor.Apply(style, rows[i][0], color.Enabled)
		}
		return writeAligned(w, header, rows)
	case "json":
		if entries == nil {
			entries = []attrkey.Entry{}
		}
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case "ndjson":
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		for _, e := range entries {
			if err := enc.Encode(e); err != nil {
				return err
			}
		}
		return nil
	case "csv":
		return writeCSVRows(w, keyHeaders, keyRows(entries))
	case "markdown":
		rows := keyRows(entries)
		for _, row := range rows {
			row[1] = codeSpan(row[1])
		}
		return writeMarkdownRows(w, keyHeaders, rows)
	default:
		return errors.Errorf("unknown output format: %s", format)
	}
}
