package collector

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"stylist/internal/catalog"
	"stylist/internal/config"
	"stylist/internal/images"
)

// Run iterates the source catalog, downloads each item's image into the image
// directory, and writes one ledger row per attempt. Per-item download failures
// are recorded as failed rows, never fatal to the run.
func Run(cfg config.Config) error {
	source, err := catalog.ReadSource(cfg.SourceCatalogPath)
	if err != nil {
		return fmt.Errorf("failed to load source catalog: %w", err)
	}

	slog.Info("Loaded source catalog", "path", cfg.SourceCatalogPath, "items", len(source))

	if err := os.MkdirAll(cfg.ImagesDir, 0755); err != nil {
		return fmt.Errorf("failed to create image directory: %w", err)
	}

	fetcher := images.NewFetcher()
	ledger := make([]catalog.Item, 0, len(source))

	for i, item := range source {
		item.LocalPath = filepath.Join(cfg.ImagesDir, item.ID+".jpg")

		if err := fetcher.Download(item.ImageURL, item.LocalPath); err != nil {
			slog.Warn("Failed to download item image", "product_id", item.ID, "url", item.ImageURL, "error", err)
			item.LocalPath = ""
			item.Status = catalog.StatusFailed
		} else {
			slog.Info("Downloaded item image", "product_id", item.ID, "path", item.LocalPath, "index", i+1, "total", len(source))
			item.Status = catalog.StatusOK
		}

		ledger = append(ledger, item)
	}

	if err := catalog.WriteLedger(cfg.LedgerPath, ledger); err != nil {
		return fmt.Errorf("failed to write ledger: %w", err)
	}

	slog.Info("Wrote download ledger", "path", cfg.LedgerPath, "rows", len(ledger))
	fmt.Println(summaryTable(ledger))
	return nil
}

func summaryTable(ledger []catalog.Item) string {
	ok := 0
	for _, item := range ledger {
		if item.Successful() {
			ok++
		}
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Attempted", "Downloaded", "Failed"})
	tw.AppendRow(table.Row{len(ledger), ok, len(ledger) - ok})
	return tw.Render()
}
