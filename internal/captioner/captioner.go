package captioner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"stylist/internal/captions"
	"stylist/internal/catalog"
	"stylist/internal/config"
	"stylist/internal/providers"
)

// captionPrompt asks the vision model for the one-sentence item description
// the catalog UI and the recommender both consume.
const captionPrompt = `The provided image is of a piece of clothing.

Provide a precisely one-sentence-long caption which describes the item.
The description should include color, material, and style.

Be succinct, terse, and direct in the caption.`

// Run reads the download ledger, captions every successfully downloaded item
// image through the provider, embeds each caption, and persists the full
// mapping in one pass. Items the provider fails on are skipped and reported,
// never fatal to the run.
func Run(ctx context.Context, cfg config.Config, provider providers.Provider) error {
	ledger, err := catalog.ReadLedger(cfg.LedgerPath)
	if err != nil {
		return fmt.Errorf("failed to load ledger: %w", err)
	}

	downloaded := catalog.Successful(ledger)
	slog.Info("Loaded ledger", "path", cfg.LedgerPath, "rows", len(ledger), "downloaded", len(downloaded))

	pcfg := providers.Config{
		Model:          cfg.Model,
		EmbeddingModel: cfg.EmbeddingModel,
		Temperature:    cfg.Temperature,
	}

	records := make([]captions.Record, 0, len(downloaded))
	var skipped []string

	for i, item := range downloaded {
		slog.Info("Captioning item", "product_id", item.ID, "index", i+1, "total", len(downloaded))

		caption, err := provider.CaptionImage(ctx, item.LocalPath, captionPrompt, pcfg)
		if err != nil {
			slog.Warn("Failed to caption item, skipping", "product_id", item.ID, "error", err)
			skipped = append(skipped, item.ID)
			continue
		}
		caption = strings.TrimSpace(caption)

		embedding, err := provider.EmbedText(ctx, caption, pcfg)
		if err != nil {
			slog.Warn("Failed to embed caption, skipping", "product_id", item.ID, "error", err)
			skipped = append(skipped, item.ID)
			continue
		}

		records = append(records, captions.Record{
			ProductID: item.ID,
			Caption:   caption,
			Embedding: embedding,
		})
	}

	if err := captions.Save(cfg.CaptionStorePath, records); err != nil {
		return fmt.Errorf("failed to save caption store: %w", err)
	}

	if err := saveReport(cfg, len(ledger), len(downloaded), records, skipped); err != nil {
		// The store is already on disk; a failed report is not fatal.
		slog.Warn("Failed to write caption report", "error", err)
	}

	fmt.Println(summaryTable(len(downloaded), len(records), len(skipped)))
	return nil
}

func summaryTable(downloaded, captioned, skipped int) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Downloaded", "Captioned", "Skipped"})
	tw.AppendRow(table.Row{downloaded, captioned, skipped})
	return tw.Render()
}
