package config

import (
	"os"
	"strings"
)

// Fixed on-disk layout shared by all three stages. The collector writes the
// image directory and ledger, the captioner writes the caption store, and the
// server reads all three.
const (
	DefaultSourceCatalogPath = "Data/catalog.csv"
	DefaultLedgerPath        = "Data/downloaded.csv"
	DefaultImagesDir         = "static/images/clothes"
	DefaultCaptionStorePath  = "Data/captions.parquet"
	DefaultCaptionReportPath = "Data/caption_report.yaml"
	DefaultProfilesPath      = "profiles.yaml"
)

// Config carries the data-layout paths and the external AI provider settings.
// It is resolved once per command and passed explicitly to whichever component
// talks to the provider.
type Config struct {
	SourceCatalogPath string
	LedgerPath        string
	ImagesDir         string
	CaptionStorePath  string
	CaptionReportPath string
	ProfilesPath      string

	Provider       string
	Model          string
	EmbeddingModel string
	Temperature    float64
	APIKey         string

	// LiveQuery controls whether /api/suggest calls the provider per request
	// or ranks against precomputed captions only.
	LiveQuery bool
}

// Load resolves configuration from the environment with defaults suitable for
// running all three stages from the repository root.
func Load() Config {
	provider := os.Getenv("STYLIST_PROVIDER")
	if provider == "" {
		provider = "gemini"
	}

	cfg := Config{
		SourceCatalogPath: DefaultSourceCatalogPath,
		LedgerPath:        DefaultLedgerPath,
		ImagesDir:         DefaultImagesDir,
		CaptionStorePath:  DefaultCaptionStorePath,
		CaptionReportPath: DefaultCaptionReportPath,
		ProfilesPath:      DefaultProfilesPath,
		Provider:          provider,
		Model:             os.Getenv("STYLIST_MODEL"),
		EmbeddingModel:    os.Getenv("STYLIST_EMBEDDING_MODEL"),
		Temperature:       0.2,
		APIKey:            apiKeyFor(provider),
		LiveQuery:         os.Getenv("STYLIST_LIVE_QUERY") != "false",
	}

	if cfg.Model == "" {
		cfg.Model = defaultModel(provider)
	}
	if cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = defaultEmbeddingModel(provider)
	}

	// Live queries need credentials. Without a key the server can still run,
	// ranking against the precomputed captions only.
	if cfg.APIKey == "" && requiresAPIKey(provider) {
		cfg.LiveQuery = false
	}

	return cfg
}

func requiresAPIKey(provider string) bool {
	return strings.ToLower(provider) != "ollama"
}

func apiKeyFor(provider string) string {
	switch strings.ToLower(provider) {
	case "gemini":
		return os.Getenv("GEMINI_API_KEY")
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	default:
		// Ollama authenticates by reachability, not key.
		return ""
	}
}

func defaultModel(provider string) string {
	switch strings.ToLower(provider) {
	case "gemini":
		return "gemini-1.5-flash"
	case "openai":
		return "gpt-4o"
	case "ollama":
		return "mistral-small3.2:24b"
	default:
		return ""
	}
}

func defaultEmbeddingModel(provider string) string {
	switch strings.ToLower(provider) {
	case "gemini":
		return "text-embedding-004"
	case "openai":
		return "text-embedding-3-small"
	case "ollama":
		return "nomic-embed-text"
	default:
		return ""
	}
}
