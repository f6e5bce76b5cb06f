package output

import (
	"encoding/json"
	"io"

	"github.com/phyten/commentmark/internal/engine"
	"github.com/phyten/commentmark/internal/model"
)

// WriteNDJSON streams items as newline-delimited JSON objects.
func WriteNDJSON(w io.Writer, items []model.Item) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, it := range items {
		if err := enc.Encode(it); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON writes the whole result, errors included, as one document.
func WriteJSON(w io.Writer, res *engine.Result) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if res.Items == nil {
		copied := *res
		copied.Items = []model.Item{}
		res = &copied
	}
	return enc.Encode(res)
}
