package dataset

import (
	"encoding/csv"
	"strings"
)

// Document builds an RFC 4180 CSV document (CRLF line endings, quote-escaped
// fields) from a header row and data rows. Free-text fields routinely contain
// commas ("Jan, de Boer") and the occasional quote or newline; a naive
// strings.Join would corrupt the column count, so everything goes through the
// csv writer.
func Document(header []string, rows [][]string) string {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	w.UseCRLF = true

	w.Write(header)
	for _, row := range rows {
		w.Write(row)
	}
	w.Flush()

	return sb.String()
}
