package openai

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

// OpenAI is a provider for OpenAI
type OpenAI struct {
	apiKey string
}

// New returns a new OpenAI provider
func New(apiKey string) *OpenAI {
	return &OpenAI{apiKey: apiKey}
}

// CaptionImage describes the image at imagePath by sending it inline as a
// data URI to the chat completions endpoint.
func (o *OpenAI) CaptionImage(ctx context.Context, imagePath, prompt string, config providers.Config) (string, error) {
	imageData, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	base64Image := base64.StdEncoding.EncodeToString(imageData)

	body := map[string]interface{}{
		"model": config.Model,
		"messages": []map[string]interface{}{
			{
				"role": "user",
				"content": []map[string]interface{}{
					{
						"type": "text",
						"text": prompt,
					},
					{
						"type": "image_url",
						"image_url": map[string]string{
							"url": "data:image/jpeg;base64," + base64Image,
						},
					},
				},
			},
		},
		"temperature": config.Temperature,
	}

	return o.chatCompletion(ctx, body)
}

// Complete answers a chat-style query.
func (o *OpenAI) Complete(ctx context.Context, systemPrompt, userPrompt string, config providers.Config) (string, error) {
	messages := []map[string]interface{}{}
	if systemPrompt != "" {
		messages = append(messages, map[string]interface{}{
			"role":    "system",
			"content": systemPrompt,
		})
	}
	messages = append(messages, map[string]interface{}{
		"role":    "user",
		"content": userPrompt,
	})

	body := map[string]interface{}{
		"model":       config.Model,
		"messages":    messages,
		"temperature": config.Temperature,
	}

	return o.chatCompletion(ctx, body)
}

// EmbedText returns a semantic embedding vector for the given text.
func (o *OpenAI) EmbedText(ctx context.Context, text string, config providers.Config) ([]float32, error) {
	body := map[string]interface{}{
		"model": config.EmbeddingModel,
		"input": text,
	}

	respBody, err := o.post(ctx, "https://api.openai.com/v1/embeddings", body)
	if err != nil {
		return nil, err
	}
	defer respBody.Close()

	var response struct {
		Data []struct {
			Embedding []float32 `json:"embedding"`
		} `json:"data"`
	}
	if err := json.NewDecoder(respBody).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}

	if len(response.Data) == 0 {
		return nil, fmt.Errorf("no embedding returned from OpenAI")
	}

	return response.Data[0].Embedding, nil
}

func (o *OpenAI) chatCompletion(ctx context.Context, body map[string]interface{}) (string, error) {
	respBody, err := o.post(ctx, "https://api.openai.com/v1/chat/completions", body)
	if err != nil {
		return "", err
	}
	defer respBody.Close()

	var response struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(respBody).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response body: %w", err)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from OpenAI")
	}

	return response.Choices[0].Message.Content, nil
}

func (o *OpenAI) post(ctx context.Context, url string, body map[string]interface{}) (io.ReadCloser, error) {
	if o.apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}

	requestBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(requestBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

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
