package catalog

// Download outcome recorded in the ledger.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Item is one clothing item from the source catalog plus its download outcome.
// Rows are written once by the collector and never mutated afterwards.
type Item struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	ImageURL  string `json:"image_url"`
	LocalPath string `json:"local_path"`
	Status    string `json:"status"`
}

// Successful reports whether the item's image downloaded cleanly.
func (i Item) Successful() bool {
	return i.Status == StatusOK
}

// Successful filters a ledger down to the items whose images exist on disk.
func Successful(items []Item) []Item {
	ok := make([]Item, 0, len(items))
	for _, item := range items {
		if item.Successful() {
			ok = append(ok, item)
		}
	}
	return ok
}
