package captioner

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
	"stylist/internal/captions"
	"stylist/internal/config"
)

// ReportConfig records which provider and models produced a caption run.
type ReportConfig struct {
	Provider       string `yaml:"provider"`
	Model          string `yaml:"model"`
	EmbeddingModel string `yaml:"embeddingmodel"`
	Timestamp      string `yaml:"timestamp"`
}

// Report summarizes a caption run for the operator.
type Report struct {
	Config     ReportConfig `yaml:"config"`
	LedgerRows int          `yaml:"ledgerrows"`
	Downloaded int          `yaml:"downloaded"`
	Captioned  int          `yaml:"captioned"`
	SkippedIDs []string     `yaml:"skippedids,omitempty"`
}

// saveReport writes a YAML run report next to the caption store.
func saveReport(cfg config.Config, ledgerRows, downloaded int, records []captions.Record, skipped []string) error {
	report := Report{
		Config: ReportConfig{
			Provider:       cfg.Provider,
			Model:          cfg.Model,
			EmbeddingModel: cfg.EmbeddingModel,
			Timestamp:      time.Now().Format("2006-01-02_15-04-05"),
		},
		LedgerRows: ledgerRows,
		Downloaded: downloaded,
		Captioned:  len(records),
		SkippedIDs: skipped,
	}

	data, err := yaml.Marshal(&report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := os.WriteFile(cfg.CaptionReportPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return nil
}
