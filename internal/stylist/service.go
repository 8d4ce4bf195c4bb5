package stylist

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	"stylist/internal/catalog"
	"stylist/internal/profiles"
	"stylist/internal/providers"
)

// preferenceSystemPrompt turns the raw shopper profile into a short natural
// language description of the clothing they would like, which is then embedded
// and matched against the item captions.
const preferenceSystemPrompt = `You're a fashion stylist who's a master at picking out the types of clothes
someone might like.

Taking as input a clothes shopper's profile, give a brief suggestion of what
clothing the shopper may like. Mention colors, materials, fits, and styles.
Respond with the suggestion only.`

// Entry pairs a successfully downloaded catalog item with its generated
// caption and the caption's embedding.
type Entry struct {
	Item      catalog.Item
	Caption   string
	Embedding []float32
}

// Suggestion is one recommended item, scored against a shopper profile.
type Suggestion struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Caption   string  `json:"caption"`
	ImageURL  string  `json:"image_url"`
	Score     float64 `json:"score"`
}

// Service ranks the captioned catalog against shopper profiles. The catalog
// entries are immutable after construction; only the provider is called per
// request, and only when live queries are enabled.
type Service struct {
	entries  []Entry
	provider providers.Provider
	cfg      providers.Config
	live     bool
}

// New creates a recommendation service over the loaded catalog. When live is
// false (or provider is nil) recommendations never call the external service
// and fall back to keyword overlap with the precomputed captions.
func New(entries []Entry, provider providers.Provider, cfg providers.Config, live bool) *Service {
	return &Service{
		entries:  entries,
		provider: provider,
		cfg:      cfg,
		live:     live && provider != nil,
	}
}

// Recommend returns the topN best-matching items per clothing category for the
// given shopper profile.
func (s *Service) Recommend(ctx context.Context, profile profiles.Profile, topN int) (map[string][]Suggestion, error) {
	if topN <= 0 {
		topN = 3
	}

	var scored []Suggestion
	var err error

	if s.live {
		scored, err = s.scoreByEmbedding(ctx, profile)
		if err != nil {
			return nil, err
		}
	} else {
		scored = s.scoreByKeywords(profile)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	grouped := make(map[string][]Suggestion)
	for _, suggestion := range scored {
		if len(grouped[suggestion.Category]) >= topN {
			continue
		}
		grouped[suggestion.Category] = append(grouped[suggestion.Category], suggestion)
	}
	return grouped, nil
}

// scoreByEmbedding asks the LLM for a preference description, embeds it, and
// ranks items by cosine similarity between that embedding and each caption's.
func (s *Service) scoreByEmbedding(ctx context.Context, profile profiles.Profile) ([]Suggestion, error) {
	preference, err := s.provider.Complete(ctx, preferenceSystemPrompt, profile.Describe(), s.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to describe preferences: %w", err)
	}

	slog.Debug("Generated preference description", "profile", profile.Name, "length", len(preference))

	preferenceEmbedding, err := s.provider.EmbedText(ctx, preference, s.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to embed preferences: %w", err)
	}

	suggestions := make([]Suggestion, 0, len(s.entries))
	for _, entry := range s.entries {
		suggestions = append(suggestions, s.suggestion(entry, CosineSimilarity(preferenceEmbedding, entry.Embedding)))
	}
	return suggestions, nil
}

// scoreByKeywords ranks items by overlap between the profile's free-text
// signals and each caption's words. Used when live queries are disabled.
func (s *Service) scoreByKeywords(profile profiles.Profile) []Suggestion {
	terms := profile.Terms()

	suggestions := make([]Suggestion, 0, len(s.entries))
	for _, entry := range s.entries {
		caption := strings.ToLower(entry.Caption)
		matches := 0
		for _, term := range terms {
			if strings.Contains(caption, term) {
				matches++
			}
		}

		score := 0.0
		if len(terms) > 0 {
			score = float64(matches) / float64(len(terms))
		}
		suggestions = append(suggestions, s.suggestion(entry, score))
	}
	return suggestions
}

func (s *Service) suggestion(entry Entry, score float64) Suggestion {
	return Suggestion{
		ProductID: entry.Item.ID,
		Name:      entry.Item.Name,
		Category:  entry.Item.Category,
		Caption:   entry.Caption,
		ImageURL:  "/images/" + entry.Item.ID + ".jpg",
		Score:     score,
	}
}

// CosineSimilarity measures similarity between two vectors within [-1, 1].
// Mismatched or zero-length vectors score 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
