package catalog

import (
	"encoding/csv"
	"fmt"
	"os"
)

var (
	sourceHeader = []string{"product_id", "name", "category", "image_link"}
	ledgerHeader = []string{"product_id", "name", "category", "image_link", "local_path", "status"}
)

// ReadSource parses the source catalog CSV the collector iterates over.
// Source rows carry no download outcome yet.
func ReadSource(path string) ([]Item, error) {
	rows, err := readCSV(path, sourceHeader)
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, Item{
			ID:       row[0],
			Name:     row[1],
			Category: row[2],
			ImageURL: row[3],
		})
	}
	return items, nil
}

// ReadLedger loads the download ledger written by the collector.
func ReadLedger(path string) ([]Item, error) {
	rows, err := readCSV(path, ledgerHeader)
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, Item{
			ID:        row[0],
			Name:      row[1],
			Category:  row[2],
			ImageURL:  row[3],
			LocalPath: row[4],
			Status:    row[5],
		})
	}
	return items, nil
}

// WriteLedger persists one row per download attempt, successes and failures
// alike, in the order the attempts were made.
func WriteLedger(path string, items []Item) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create ledger: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(ledgerHeader); err != nil {
		return fmt.Errorf("failed to write ledger header: %w", err)
	}

	for _, item := range items {
		row := []string{item.ID, item.Name, item.Category, item.ImageURL, item.LocalPath, item.Status}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write ledger row for %s: %w", item.ID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush ledger: %w", err)
	}
	return nil
}

func readCSV(path string, header []string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(header)

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%s is empty, expected a header row", path)
	}

	for i, name := range header {
		if records[0][i] != name {
			return nil, fmt.Errorf("%s has unexpected header %v, want %v", path, records[0], header)
		}
	}

	return records[1:], nil
}
