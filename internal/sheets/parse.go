package sheets

import (
	"encoding/csv"
	"fmt"
	"strings"
	"vct-tracker/internal/domain"
)

// ParseCSV splits raw CSV text into rows of trimmed cells. Quoting is
// relaxed because sheet cells occasionally carry stray quotes, and rows may
// have uneven lengths. Blank rows in the export arrive as all-empty cells
// and are preserved: the normalizer reads them as section breaks.
// Malformed input is reported as domain.ErrParse.
func ParseCSV(raw string) ([][]string, error) {
	r := csv.NewReader(strings.NewReader(raw))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrParse, err)
	}

	for _, row := range records {
		for i, cell := range row {
			row[i] = strings.TrimSpace(cell)
		}
	}
	return records, nil
}
