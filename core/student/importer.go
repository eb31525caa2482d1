package student

import (
	"encoding/csv"
	"strings"

	"github.com/trezcool/missingwork/core"
)

type importRow struct {
	line   int
	fields []string
}

func (r importRow) column(i int) string {
	if i >= len(r.fields) {
		return ""
	}
	return core.CleanString(r.fields[i])
}

// parseCSV drops the first line and splits every other non-blank line into fields.
// Line numbers are 1-based, the header being line 1.
func parseCSV(raw string) []importRow {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")

	rows := make([]importRow, 0, len(lines))
	for i, line := range lines {
		if i == 0 || strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, importRow{line: i + 1, fields: splitLine(line)})
	}
	return rows
}

// splitLine reads one line as a csv record so a quoted name may hold a comma.
// A line that is not valid csv is split on every comma, quotes included.
func splitLine(line string) []string {
	r := csv.NewReader(strings.NewReader(line))
	r.FieldsPerRecord = -1
	if rec, err := r.Read(); err == nil {
		return rec
	}
	return strings.Split(line, ",")
}
