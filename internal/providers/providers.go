package providers

import (
	"context"
)

// Config represents the configuration for an LLM provider
type Config struct {
	Model          string
	EmbeddingModel string
	Temperature    float64
}

// Provider defines the interface for the external AI inference service.
type Provider interface {
	// CaptionImage describes the image at imagePath using a vision model.
	CaptionImage(ctx context.Context, imagePath, prompt string, config Config) (string, error)
	// Complete answers a chat-style query.
	Complete(ctx context.Context, systemPrompt, userPrompt string, config Config) (string, error)
	// EmbedText returns a semantic embedding vector for the given text.
	EmbedText(ctx context.Context, text string, config Config) ([]float32, error)
}
