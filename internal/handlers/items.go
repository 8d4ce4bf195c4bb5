package handlers

import (
	"net/http"
	"strings"
)

// ItemResponse is one catalog item with its generated caption, as served to
// the browse UI.
type ItemResponse struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Caption   string `json:"caption,omitempty"`
	ImageURL  string `json:"image_url"`
}

func (h *Handler) itemResponse(id string) ItemResponse {
	item := h.state.Items[id]
	resp := ItemResponse{
		ProductID: item.ID,
		Name:      item.Name,
		Category:  item.Category,
		ImageURL:  "/images/" + item.ID + ".jpg",
	}
	if record, ok := h.state.Captions[id]; ok {
		resp.Caption = record.Caption
	}
	return resp
}

// HandleItems lists the successfully downloaded catalog items in ledger order.
func (h *Handler) HandleItems(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		items := make([]ItemResponse, 0, len(h.state.Order))
		for _, id := range h.state.Order {
			items = append(items, h.itemResponse(id))
		}
		h.writeJSON(w, items)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleItemDetail serves a single item's metadata and caption.
func (h *Handler) HandleItemDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/items/")
	if _, ok := h.state.Items[id]; !ok {
		h.writeError(w, "Item not found", http.StatusNotFound)
		return
	}

	h.writeJSON(w, h.itemResponse(id))
}

// HandleItemImage serves the downloaded image for an item id.
func (h *Handler) HandleItemImage(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/images/")
	id = strings.TrimSuffix(id, ".jpg")

	item, ok := h.state.Items[id]
	if !ok {
		h.writeError(w, "Item not found", http.StatusNotFound)
		return
	}

	http.ServeFile(w, r, item.LocalPath)
}

// HandleProfiles lists the shopper profiles the demo can act as.
func (h *Handler) HandleProfiles(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	list := make([]interface{}, 0, len(h.state.AllNames))
	for _, name := range h.state.AllNames {
		list = append(list, h.state.Profiles[name])
	}
	h.writeJSON(w, list)
}
