package handlers

import (
	"net/http"
	"strings"
)

// HandleStatic serves the browse UI assets from the static directory.
func (h *Handler) HandleStatic(w http.ResponseWriter, r *http.Request) {
	// Assets are reachable both at the root and under /static/.
	filepath := strings.TrimPrefix(r.URL.Path, "/static/")
	filepath = strings.TrimPrefix(filepath, "/")

	if filepath == "" {
		filepath = "index.html"
	}

	// Prevent directory traversal attacks
	if strings.Contains(filepath, "..") {
		http.Error(w, "Invalid file path", http.StatusBadRequest)
		return
	}

	// Set appropriate content type based on file extension
	switch {
	case strings.HasSuffix(filepath, ".css"):
		w.Header().Set("Content-Type", "text/css")
	case strings.HasSuffix(filepath, ".js"):
		w.Header().Set("Content-Type", "application/javascript")
	case strings.HasSuffix(filepath, ".html"):
		w.Header().Set("Content-Type", "text/html")
	}

	http.ServeFile(w, r, "static/"+filepath)
}
