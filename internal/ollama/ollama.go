package ollama

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"stylist/internal/providers"
)

// Ollama is a provider for a locally running Ollama instance.
type Ollama struct{}

// New returns a new Ollama provider
func New() *Ollama {
	return &Ollama{}
}

func baseURL() string {
	ollamaURL := os.Getenv("OLLAMA_URL")
	if ollamaURL == "" {
		ollamaURL = "http://localhost:11434"
	}
	return ollamaURL
}

// CaptionImage describes the image at imagePath using a vision-capable model.
func (o *Ollama) CaptionImage(ctx context.Context, imagePath, prompt string, config providers.Config) (string, error) {
	imageData, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	base64Image := base64.StdEncoding.EncodeToString(imageData)

	body := map[string]interface{}{
		"model":  config.Model,
		"prompt": prompt,
		"images": []string{base64Image},
		"stream": false,
		"options": map[string]interface{}{
			"temperature": config.Temperature,
		},
	}

	return o.generate(ctx, body)
}

// Complete answers a chat-style query.
func (o *Ollama) Complete(ctx context.Context, systemPrompt, userPrompt string, config providers.Config) (string, error) {
	body := map[string]interface{}{
		"model":  config.Model,
		"prompt": userPrompt,
		"system": systemPrompt,
		"stream": false,
		"options": map[string]interface{}{
			"temperature": config.Temperature,
		},
	}

	return o.generate(ctx, body)
}

// EmbedText returns a semantic embedding vector for the given text.
func (o *Ollama) EmbedText(ctx context.Context, text string, config providers.Config) ([]float32, error) {
	body := map[string]interface{}{
		"model":  config.EmbeddingModel,
		"prompt": text,
	}

	respBody, err := post(ctx, baseURL()+"/api/embeddings", body)
	if err != nil {
		return nil, err
	}
	defer respBody.Close()

	var response struct {
		Embedding []float32 `json:"embedding"`
	}
	if err := json.NewDecoder(respBody).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}

	if len(response.Embedding) == 0 {
		return nil, fmt.Errorf("no embedding returned from Ollama")
	}

	return response.Embedding, nil
}

func (o *Ollama) generate(ctx context.Context, body map[string]interface{}) (string, error) {
	respBody, err := post(ctx, baseURL()+"/api/generate", body)
	if err != nil {
		return "", err
	}
	defer respBody.Close()

	var response struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(respBody).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response body: %w", err)
	}

	return response.Response, nil
}

func post(ctx context.Context, url string, body map[string]interface{}) (io.ReadCloser, error) {
	requestBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(requestBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("received non-200 status code: %d - %s", resp.StatusCode, string(body))
	}

	return resp.Body, nil
}
