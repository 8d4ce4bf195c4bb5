package cmd

import (
	"fmt"

	"stylist/internal/config"
	"stylist/internal/gemini"
	"stylist/internal/ollama"
	"stylist/internal/openai"
	"stylist/internal/providers"
)

// newProvider wires up the configured external AI inference backend.
func newProvider(cfg config.Config) (providers.Provider, error) {
	switch cfg.Provider {
	case "gemini":
		return gemini.New(cfg.APIKey), nil
	case "openai":
		return openai.New(cfg.APIKey), nil
	case "ollama":
		return ollama.New(), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}
}
