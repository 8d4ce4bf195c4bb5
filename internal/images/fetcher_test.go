package images

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestDownload(t *testing.T) {
	imageData := bytes.Repeat([]byte{0xFF}, 2048)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/good.jpg":
			_, _ = w.Write(imageData)
		case "/tiny.jpg":
			_, _ = w.Write([]byte("placeholder"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{name: "valid image", path: "/good.jpg", wantErr: false},
		{name: "placeholder rejected", path: "/tiny.jpg", wantErr: true},
		{name: "not found", path: "/missing.jpg", wantErr: true},
	}

	fetcher := NewFetcher()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outputPath := filepath.Join(t.TempDir(), "out.jpg")
			err := fetcher.Download(server.URL+tt.path, outputPath)

			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("Download failed: %v", err)
			}

			got, err := os.ReadFile(outputPath)
			if err != nil {
				t.Fatalf("Failed to read downloaded file: %v", err)
			}
			if !bytes.Equal(got, imageData) {
				t.Errorf("Downloaded data does not match served image (%d vs %d bytes)", len(got), len(imageData))
			}
		})
	}
}

func TestDownloadUnreachable(t *testing.T) {
	fetcher := NewFetcher()
	outputPath := filepath.Join(t.TempDir(), "out.jpg")

	if err := fetcher.Download("http://127.0.0.1:1/unreachable.jpg", outputPath); err == nil {
		t.Error("Expected error for unreachable host, got nil")
	}
}
