package captioner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"stylist/internal/captions"
	"stylist/internal/catalog"
	"stylist/internal/config"
	"stylist/internal/providers"
)

// fakeProvider captions by file name and counts calls, failing on demand.
type fakeProvider struct {
	captionCalls int
	failOn       map[string]bool
}

func (f *fakeProvider) CaptionImage(ctx context.Context, imagePath, prompt string, config providers.Config) (string, error) {
	f.captionCalls++
	id := strings.TrimSuffix(filepath.Base(imagePath), ".jpg")
	if f.failOn[id] {
		return "", fmt.Errorf("provider rejected %s", id)
	}
	return "caption for " + id, nil
}

func (f *fakeProvider) Complete(ctx context.Context, systemPrompt, userPrompt string, config providers.Config) (string, error) {
	return "", fmt.Errorf("not used")
}

func (f *fakeProvider) EmbedText(ctx context.Context, text string, config providers.Config) ([]float32, error) {
	return []float32{1, 0}, nil
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	return config.Config{
		LedgerPath:        filepath.Join(dir, "downloaded.csv"),
		ImagesDir:         filepath.Join(dir, "images"),
		CaptionStorePath:  filepath.Join(dir, "captions.parquet"),
		CaptionReportPath: filepath.Join(dir, "caption_report.yaml"),
		Provider:          "fake",
	}
}

func writeLedger(t *testing.T, cfg config.Config, items []catalog.Item) {
	t.Helper()
	if err := os.MkdirAll(cfg.ImagesDir, 0755); err != nil {
		t.Fatal(err)
	}
	for i := range items {
		if !items[i].Successful() {
			continue
		}
		items[i].LocalPath = filepath.Join(cfg.ImagesDir, items[i].ID+".jpg")
		if err := os.WriteFile(items[i].LocalPath, []byte("jpegdata"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := catalog.WriteLedger(cfg.LedgerPath, items); err != nil {
		t.Fatal(err)
	}
}

func storeIDs(t *testing.T, path string) []string {
	t.Helper()
	records, err := captions.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ProductID)
	}
	sort.Strings(ids)
	return ids
}

func TestRunCaptionsSuccessfulRowsOnly(t *testing.T) {
	cfg := testConfig(t)
	writeLedger(t, cfg, []catalog.Item{
		{ID: "item-001", Name: "Denim Jacket", Category: "outerwear", Status: catalog.StatusOK},
		{ID: "item-002", Name: "Linen Shirt", Category: "tops", Status: catalog.StatusFailed},
		{ID: "item-003", Name: "Navy Chinos", Category: "bottoms", Status: catalog.StatusOK},
	})

	provider := &fakeProvider{}
	if err := Run(context.Background(), cfg, provider); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	ids := storeIDs(t, cfg.CaptionStorePath)
	want := []string{"item-001", "item-003"}
	if len(ids) != len(want) {
		t.Fatalf("Expected ids %v, got %v", want, ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("Expected ids %v, got %v", want, ids)
			break
		}
	}

	// The failed row must never reach the provider.
	if provider.captionCalls != 2 {
		t.Errorf("Expected 2 caption calls, got %d", provider.captionCalls)
	}

	records, err := captions.Load(cfg.CaptionStorePath)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range records {
		if r.Caption != "caption for "+r.ProductID {
			t.Errorf("Unexpected caption for %s: %q", r.ProductID, r.Caption)
		}
		if len(r.Embedding) == 0 {
			t.Errorf("Expected embedding for %s", r.ProductID)
		}
	}
}

func TestRunFailedOnlyLedger(t *testing.T) {
	cfg := testConfig(t)
	writeLedger(t, cfg, []catalog.Item{
		{ID: "item-001", Name: "Denim Jacket", Category: "outerwear", Status: catalog.StatusFailed},
	})

	provider := &fakeProvider{}
	if err := Run(context.Background(), cfg, provider); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if provider.captionCalls != 0 {
		t.Errorf("Expected no caption calls for failed-only ledger, got %d", provider.captionCalls)
	}

	if ids := storeIDs(t, cfg.CaptionStorePath); len(ids) != 0 {
		t.Errorf("Expected empty caption store, got ids %v", ids)
	}
}

func TestRunSkipsProviderFailures(t *testing.T) {
	cfg := testConfig(t)
	writeLedger(t, cfg, []catalog.Item{
		{ID: "item-001", Name: "Denim Jacket", Category: "outerwear", Status: catalog.StatusOK},
		{ID: "item-002", Name: "Linen Shirt", Category: "tops", Status: catalog.StatusOK},
	})

	provider := &fakeProvider{failOn: map[string]bool{"item-001": true}}
	if err := Run(context.Background(), cfg, provider); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	ids := storeIDs(t, cfg.CaptionStorePath)
	if len(ids) != 1 || ids[0] != "item-002" {
		t.Errorf("Expected only item-002 captioned, got %v", ids)
	}
}

func TestRunIdempotentIDSet(t *testing.T) {
	cfg := testConfig(t)
	writeLedger(t, cfg, []catalog.Item{
		{ID: "item-001", Name: "Denim Jacket", Category: "outerwear", Status: catalog.StatusOK},
		{ID: "item-002", Name: "Linen Shirt", Category: "tops", Status: catalog.StatusOK},
	})

	if err := Run(context.Background(), cfg, &fakeProvider{}); err != nil {
		t.Fatalf("First run failed: %v", err)
	}
	first := storeIDs(t, cfg.CaptionStorePath)

	if err := Run(context.Background(), cfg, &fakeProvider{}); err != nil {
		t.Fatalf("Second run failed: %v", err)
	}
	second := storeIDs(t, cfg.CaptionStorePath)

	if len(first) != len(second) {
		t.Fatalf("ID sets differ between runs: %v vs %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("ID sets differ between runs: %v vs %v", first, second)
			break
		}
	}
}

func TestRunMissingLedger(t *testing.T) {
	cfg := testConfig(t)
	if err := Run(context.Background(), cfg, &fakeProvider{}); err == nil {
		t.Error("Expected error for missing ledger, got nil")
	}
}
