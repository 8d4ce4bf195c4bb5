package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STYLIST_PROVIDER", "")
	t.Setenv("STYLIST_MODEL", "")
	t.Setenv("STYLIST_EMBEDDING_MODEL", "")
	t.Setenv("STYLIST_LIVE_QUERY", "")
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg := Load()

	if cfg.Provider != "gemini" {
		t.Errorf("Expected default provider gemini, got %s", cfg.Provider)
	}
	if cfg.Model != "gemini-1.5-flash" {
		t.Errorf("Unexpected default model %s", cfg.Model)
	}
	if cfg.EmbeddingModel != "text-embedding-004" {
		t.Errorf("Unexpected default embedding model %s", cfg.EmbeddingModel)
	}
	if cfg.APIKey != "test-key" {
		t.Errorf("Expected API key from GEMINI_API_KEY, got %q", cfg.APIKey)
	}
	if !cfg.LiveQuery {
		t.Error("Expected live queries enabled by default")
	}
	if cfg.LedgerPath != DefaultLedgerPath {
		t.Errorf("Unexpected ledger path %s", cfg.LedgerPath)
	}
}

func TestLoadDisablesLiveQueryWithoutKey(t *testing.T) {
	t.Setenv("STYLIST_PROVIDER", "gemini")
	t.Setenv("STYLIST_LIVE_QUERY", "")
	t.Setenv("GEMINI_API_KEY", "")

	cfg := Load()
	if cfg.LiveQuery {
		t.Error("Expected live queries disabled when GEMINI_API_KEY is unset")
	}

	// Ollama authenticates by reachability, so no key is needed.
	t.Setenv("STYLIST_PROVIDER", "ollama")
	cfg = Load()
	if !cfg.LiveQuery {
		t.Error("Expected live queries to stay enabled for ollama without a key")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STYLIST_PROVIDER", "openai")
	t.Setenv("STYLIST_MODEL", "gpt-4o-mini")
	t.Setenv("STYLIST_EMBEDDING_MODEL", "")
	t.Setenv("STYLIST_LIVE_QUERY", "false")
	t.Setenv("OPENAI_API_KEY", "openai-key")

	cfg := Load()

	if cfg.Provider != "openai" {
		t.Errorf("Expected provider openai, got %s", cfg.Provider)
	}
	if cfg.Model != "gpt-4o-mini" {
		t.Errorf("Expected model override, got %s", cfg.Model)
	}
	if cfg.EmbeddingModel != "text-embedding-3-small" {
		t.Errorf("Expected openai embedding default, got %s", cfg.EmbeddingModel)
	}
	if cfg.APIKey != "openai-key" {
		t.Errorf("Expected API key from OPENAI_API_KEY, got %q", cfg.APIKey)
	}
	if cfg.LiveQuery {
		t.Error("Expected live queries disabled")
	}
}
