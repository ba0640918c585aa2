package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSVImporter handles CSV files, emitting one markdown table.
type CSVImporter struct{}

func (p *CSVImporter) Import(r io.Reader, filename string) (string, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return "", fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return "", nil
	}

	// First row is headers.
	headers := records[0]

	var out strings.Builder
	writeRow(&out, headers)
	sep := make([]string, len(headers))
	for i := range sep {
		sep[i] = "---"
	}
	writeRow(&out, sep)

	for _, row := range records[1:] {
		cells := make([]string, len(headers))
		for i := range cells {
			if i < len(row) {
				cells[i] = row[i]
			}
		}
		writeRow(&out, cells)
	}

	return out.String(), nil
}

func writeRow(out *strings.Builder, cells []string) {
	out.WriteString("|")
	for _, cell := range cells {
		out.WriteString(" ")
		out.WriteString(strings.ReplaceAll(cell, "|", "\\|"))
		out.WriteString(" |")
	}
	out.WriteString("\n")
}
