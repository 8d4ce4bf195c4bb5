package profiles

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Purchase is one past order in a shopper's history.
type Purchase struct {
	Item  string `yaml:"item" json:"item"`
	Price int    `yaml:"price" json:"price"`
}

// Profile is a demo shopper whose unstructured shopping data drives the
// outfit recommendations.
type Profile struct {
	Name            string     `yaml:"name" json:"name"`
	Age             int        `yaml:"age" json:"age"`
	Gender          string     `yaml:"gender" json:"gender"`
	Aesthetic       string     `yaml:"aesthetic" json:"aesthetic"`
	Size            string     `yaml:"size" json:"size"`
	Budget          int        `yaml:"budget" json:"budget"`
	EventTypes      []string   `yaml:"event_types" json:"event_types"`
	BrowsingData    []string   `yaml:"browsing_data" json:"browsing_data"`
	PurchaseHistory []Purchase `yaml:"purchase_history" json:"purchase_history"`
	Preferences     []string   `yaml:"preferences" json:"preferences"`
}

// DefaultName is the profile a fresh browsing session starts with.
const DefaultName = "Ava Chen"

// Defaults returns the two built-in demo shoppers.
func Defaults() []Profile {
	return []Profile{
		{
			Name:         "Ava Chen",
			Age:          27,
			Gender:       "female",
			Aesthetic:    "minimalist",
			Size:         "small",
			Budget:       150,
			EventTypes:   []string{"corporate_events", "brunches"},
			BrowsingData: []string{"blazers", "neutral basics", "capsule wardrobe"},
			PurchaseHistory: []Purchase{
				{Item: "wool coat", Price: 210},
				{Item: "silk blouse", Price: 95},
				{Item: "tailored trousers", Price: 180},
			},
			Preferences: []string{"sustainable_fabrics", "neutral_tones"},
		},
		{
			Name:         "Leo Nguyen",
			Age:          29,
			Gender:       "male",
			Aesthetic:    "smart casual",
			Size:         "medium",
			Budget:       120,
			EventTypes:   []string{"work_dinners", "travel"},
			BrowsingData: []string{"polos", "chinos", "travel_blazers"},
			PurchaseHistory: []Purchase{
				{Item: "linen shirt", Price: 65},
				{Item: "navy chinos", Price: 80},
				{Item: "leather belt", Price: 40},
			},
			Preferences: []string{"slim_fits", "navy_white_palette"},
		},
	}
}

// Load returns the profiles from the YAML file at path, falling back to the
// built-in demo shoppers when the file does not exist.
func Load(path string) ([]Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Defaults(), nil
		}
		return nil, fmt.Errorf("failed to read profiles file: %w", err)
	}

	var loaded struct {
		Profiles []Profile `yaml:"profiles"`
	}
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse profiles file: %w", err)
	}

	if len(loaded.Profiles) == 0 {
		return nil, fmt.Errorf("profiles file %s defines no profiles", path)
	}

	return loaded.Profiles, nil
}

// ByName indexes profiles for lookup by display name.
func ByName(ps []Profile) map[string]Profile {
	m := make(map[string]Profile, len(ps))
	for _, p := range ps {
		m[p.Name] = p
	}
	return m
}

// Describe renders the profile as plain-text prompt context for the LLM.
func (p Profile) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", p.Name)
	fmt.Fprintf(&b, "Age: %d\n", p.Age)
	fmt.Fprintf(&b, "Gender: %s\n", p.Gender)
	fmt.Fprintf(&b, "Aesthetic: %s\n", p.Aesthetic)
	fmt.Fprintf(&b, "Size: %s\n", p.Size)
	fmt.Fprintf(&b, "Budget: %d\n", p.Budget)
	fmt.Fprintf(&b, "Shops for: %s\n", strings.Join(p.EventTypes, ", "))
	fmt.Fprintf(&b, "Recently browsed: %s\n", strings.Join(p.BrowsingData, ", "))
	for _, purchase := range p.PurchaseHistory {
		fmt.Fprintf(&b, "Previously bought: %s ($%d)\n", purchase.Item, purchase.Price)
	}
	fmt.Fprintf(&b, "Preferences: %s\n", strings.Join(p.Preferences, ", "))
	return b.String()
}

// Terms flattens the profile's free-text signals into lowercase keywords for
// the no-LLM ranking fallback.
func (p Profile) Terms() []string {
	var terms []string
	add := func(values ...string) {
		for _, v := range values {
			for _, word := range strings.FieldsFunc(strings.ToLower(v), func(r rune) bool {
				return r == ' ' || r == '_' || r == '-'
			}) {
				terms = append(terms, word)
			}
		}
	}

	add(p.Aesthetic)
	add(p.EventTypes...)
	add(p.BrowsingData...)
	add(p.Preferences...)
	for _, purchase := range p.PurchaseHistory {
		add(purchase.Item)
	}
	return terms
}
