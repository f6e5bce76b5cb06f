package output

import (
	"encoding/csv"
	"io"

	"github.com/phyten/commentmark/internal/model"
)

// WriteCSV renders items as RFC 4180 CSV with CRLF line endings.
func WriteCSV(w io.Writer, items []model.Item) error {
	return writeCSVRows(w, itemHeaders, itemRows(items))
}

func writeCSVRows(w io.Writer, headers []string, rows [][]string) error {
	writer := csv.NewWriter(w)
	writer.UseCRLF = true
	if err := writer.Write(headers); err != nil {
		return err
	}
	if err := writer.WriteAll(rows); err != nil {
		return err
	}
	return writer.Error()
}
