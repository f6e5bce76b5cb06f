// Package output renders highlight results and attribute keys.
package output

import (
	"strconv"

	"github.com/phyten/commentmark/internal/attrkey"
	"github.com/phyten/commentmark/internal/model"
)

var itemHeaders = []string{"file", "line", "col", "lang", "kind", "category", "token", "key", "method_modifier", "text"}

var keyHeaders = []string{"category", "token", "key"}

func itemRow(it model.Item) []string {
	method := ""
	if it.MethodModifier {
		method = "true"
	}
	return []string{
		it.File,
		strconv.Itoa(it.Span.StartLine),
		strconv.Itoa(it.Span.StartCol),
		it.Lang,
		string(it.Kind),
		it.Category,
		it.Token,
		it.Key,
		method,
		it.Text,
	}
}

func itemRows(items []model.Item) [][]string {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, itemRow(it))
	}
	return rows
}

func keyRows(entries []attrkey.Entry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Category.String(), e.Token, e.Key})
	}
	return rows
}

// location is file:line:col, the form editors jump to.
func location(it model.Item) string {
	return it.File + ":" + strconv.Itoa(it.Span.StartLine) + ":" + strconv.Itoa(it.Span.StartCol)
}
