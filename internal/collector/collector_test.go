package collector

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"stylist/internal/catalog"
	"stylist/internal/config"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	return config.Config{
		SourceCatalogPath: filepath.Join(dir, "catalog.csv"),
		LedgerPath:        filepath.Join(dir, "downloaded.csv"),
		ImagesDir:         filepath.Join(dir, "images"),
	}
}

func TestRunRecordsSuccessAndFailure(t *testing.T) {
	imageData := bytes.Repeat([]byte{0xAB}, 4096)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/broken.jpg" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(imageData)
	}))
	defer server.Close()

	cfg := testConfig(t)
	source := fmt.Sprintf("product_id,name,category,image_link\n"+
		"item-001,Denim Jacket,outerwear,%s/1.jpg\n"+
		"item-002,Linen Shirt,tops,%s/broken.jpg\n",
		server.URL, server.URL)
	if err := os.WriteFile(cfg.SourceCatalogPath, []byte(source), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Run(cfg); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	ledger, err := catalog.ReadLedger(cfg.LedgerPath)
	if err != nil {
		t.Fatalf("ReadLedger failed: %v", err)
	}
	if len(ledger) != 2 {
		t.Fatalf("Expected 2 ledger rows, got %d", len(ledger))
	}

	if !ledger[0].Successful() {
		t.Errorf("Expected item-001 to succeed, got status %s", ledger[0].Status)
	}
	if ledger[1].Successful() {
		t.Errorf("Expected item-002 to fail, got status %s", ledger[1].Status)
	}
	if ledger[1].LocalPath != "" {
		t.Errorf("Failed row should record no local path, got %s", ledger[1].LocalPath)
	}

	// Every successful row must point at an image file on disk.
	for _, item := range catalog.Successful(ledger) {
		data, err := os.ReadFile(item.LocalPath)
		if err != nil {
			t.Errorf("Image missing for successful row %s: %v", item.ID, err)
			continue
		}
		if !bytes.Equal(data, imageData) {
			t.Errorf("Image for %s does not match served bytes", item.ID)
		}
	}
}

func TestRunEmptySource(t *testing.T) {
	cfg := testConfig(t)
	if err := os.WriteFile(cfg.SourceCatalogPath, []byte("product_id,name,category,image_link\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Run(cfg); err != nil {
		t.Fatalf("Run failed on empty source: %v", err)
	}

	ledger, err := catalog.ReadLedger(cfg.LedgerPath)
	if err != nil {
		t.Fatalf("ReadLedger failed: %v", err)
	}
	if len(ledger) != 0 {
		t.Errorf("Expected empty ledger, got %d rows", len(ledger))
	}
}

func TestRunMissingSource(t *testing.T) {
	cfg := testConfig(t)
	if err := Run(cfg); err == nil {
		t.Error("Expected error for missing source catalog, got nil")
	}
}
