package handlers

import (
	"fmt"
	"os"

	"stylist/internal/captions"
	"stylist/internal/catalog"
	"stylist/internal/config"
	"stylist/internal/profiles"
	"stylist/internal/stylist"
)

// State is everything the server reads from disk at startup: the successfully
// downloaded catalog items, their captions, and the shopper profiles. It is
// built once before the server accepts requests and never mutated afterwards.
type State struct {
	Items    map[string]catalog.Item
	Order    []string // successful item ids in ledger order
	Captions map[string]captions.Record
	Profiles map[string]profiles.Profile
	AllNames []string // profile names in file order
}

// LoadState verifies the pipeline's persisted artifacts exist and are mutually
// consistent, then loads them wholesale. Any missing artifact or captioned
// item without a ledger row or image file fails the whole startup.
func LoadState(cfg config.Config) (*State, error) {
	info, err := os.Stat(cfg.ImagesDir)
	if err != nil {
		return nil, fmt.Errorf("image directory %s missing, run `stylist collect` first: %w", cfg.ImagesDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("image directory %s is not a directory", cfg.ImagesDir)
	}

	ledger, err := catalog.ReadLedger(cfg.LedgerPath)
	if err != nil {
		return nil, fmt.Errorf("ledger missing or unreadable, run `stylist collect` first: %w", err)
	}

	records, err := captions.Load(cfg.CaptionStorePath)
	if err != nil {
		return nil, fmt.Errorf("caption store missing or unreadable, run `stylist caption` first: %w", err)
	}

	state := &State{
		Items:    make(map[string]catalog.Item),
		Captions: captions.ByProduct(records),
		Profiles: make(map[string]profiles.Profile),
	}

	for _, item := range catalog.Successful(ledger) {
		state.Items[item.ID] = item
		state.Order = append(state.Order, item.ID)
	}

	// Referential consistency: every captioned id must map back to a
	// successful ledger row and an image file on disk.
	for id := range state.Captions {
		item, ok := state.Items[id]
		if !ok {
			return nil, fmt.Errorf("caption store references %s which has no successful ledger row", id)
		}
		if _, err := os.Stat(item.LocalPath); err != nil {
			return nil, fmt.Errorf("caption store references %s but its image %s is missing: %w", id, item.LocalPath, err)
		}
	}

	loaded, err := profiles.Load(cfg.ProfilesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles: %w", err)
	}
	state.Profiles = profiles.ByName(loaded)
	for _, p := range loaded {
		state.AllNames = append(state.AllNames, p.Name)
	}

	return state, nil
}

// Entries converts the loaded state into the recommender's catalog view,
// captioned items only, in ledger order.
func (s *State) Entries() []stylist.Entry {
	entries := make([]stylist.Entry, 0, len(s.Captions))
	for _, id := range s.Order {
		record, ok := s.Captions[id]
		if !ok {
			continue
		}
		entries = append(entries, stylist.Entry{
			Item:      s.Items[id],
			Caption:   record.Caption,
			Embedding: record.Embedding,
		})
	}
	return entries
}
