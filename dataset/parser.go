package dataset

import (
	"strings"
)

// Row is one parsed record, keyed by header name. Values stay as text; any
// numeric conversion happens at aggregation time.
type Row map[string]string

// ParseTable converts raw delimited text into rows keyed by the header line.
// Fields may be double-quote delimited; a comma inside a quoted field is
// literal data. Every field is trimmed after splitting. Rows with fewer
// fields than headers simply lack the trailing keys; rows with more fields
// drop the extras. Empty input (or a header with no data lines) yields nil.
func ParseTable(raw string) []Row {
	lines := splitLines(raw)
	if len(lines) < 2 {
		return nil
	}

	headers := splitFields(lines[0])
	rows := make([]Row, 0, len(lines)-1)
	for _, line := range lines[1:] {
		fields := splitFields(line)
		row := make(Row, len(headers))
		for i, h := range headers {
			if i < len(fields) {
				row[h] = fields[i]
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func splitLines(raw string) []string {
	var lines []string
	for _, line := range strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// splitFields splits one line on commas, honouring double quotes: a quote
// toggles the in-quotes state and commas inside quotes are kept as data.
// Quote characters themselves are not part of the value.
func splitFields(line string) []string {
	var fields []string
	var field strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(field.String()))
			field.Reset()
		default:
			field.WriteRune(r)
		}
	}
	fields = append(fields, strings.TrimSpace(field.String()))
	return fields
}
