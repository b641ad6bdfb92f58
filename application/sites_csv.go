package application

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// ReadSitesCSV reads site URLs from a CSV file with a SiteUrl column.
// Blank cells are skipped; the header match is case-insensitive.
func ReadSitesCSV(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sites csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read sites csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("sites csv is empty")
	}

	col := -1
	for i, name := range records[0] {
		if strings.EqualFold(strings.TrimSpace(name), "SiteUrl") {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("sites csv has no SiteUrl column")
	}

	var sites []string
	for _, row := range records[1:] {
		if col >= len(row) {
			continue
		}
		if site := strings.TrimSpace(row[col]); site != "" {
			sites = append(sites, site)
		}
	}
	return sites, nil
}
