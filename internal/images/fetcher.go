package images

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Anything smaller is almost certainly an error page or a CDN placeholder,
// not a product photo.
const minImageBytes = 1000

// Fetcher retrieves catalog item images over HTTP.
type Fetcher struct {
	HTTPClient *http.Client
}

// NewFetcher creates a new image fetcher
func NewFetcher() *Fetcher {
	return &Fetcher{
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Download fetches the image at url and writes it to outputPath.
func (f *Fetcher) Download(url, outputPath string) error {
	resp, err := f.HTTPClient.Get(url)
	if err != nil {
		return fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("image URL returned status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read image data: %w", err)
	}

	if len(imageData) < minImageBytes {
		return fmt.Errorf("image too small (likely placeholder), size: %d bytes", len(imageData))
	}

	if err := os.WriteFile(outputPath, imageData, 0644); err != nil {
		return fmt.Errorf("failed to write image file: %w", err)
	}

	return nil
}
