package captions

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/parquet-go/parquet-go"
)

// Record maps one catalog item to its generated caption and the embedding of
// that caption. Built once by the captioner, read-only everywhere else.
type Record struct {
	ProductID string    `parquet:"product_id" json:"product_id"`
	Caption   string    `parquet:"caption" json:"caption"`
	Embedding []float32 `parquet:"embedding" json:"-"`
}

// Save persists the full caption mapping to a Parquet file in one pass.
func Save(path string, records []Record) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create caption store: %w", err)
	}

	writer := parquet.NewGenericWriter[Record](file)

	if len(records) > 0 {
		if _, err := writer.Write(records); err != nil {
			file.Close()
			return fmt.Errorf("failed to write caption records: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		file.Close()
		return fmt.Errorf("failed to finalize caption store: %w", err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close caption store: %w", err)
	}

	slog.Info("Wrote caption store", "path", path, "records", len(records))
	return nil
}

// Load reads the whole caption store into memory. A missing file is an error;
// the server treats it as a failed startup precondition.
func Load(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open caption store: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat caption store: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	reader := parquet.NewGenericReader[Record](pf)
	defer reader.Close()

	var records []Record
	rows := make([]Record, 64)

	for {
		n, err := reader.Read(rows)
		if n > 0 {
			records = append(records, rows[:n]...)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read caption records: %w", err)
		}
	}

	slog.Debug("Loaded caption store", "path", path, "records", len(records))
	return records, nil
}

// ByProduct indexes records by product id for the server's read-only lookup.
func ByProduct(records []Record) map[string]Record {
	m := make(map[string]Record, len(records))
	for _, r := range records {
		m[r.ProductID] = r
	}
	return m
}
