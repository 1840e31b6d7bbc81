package model

import "strings"

// Recipe is a single structured search result produced by the generative
// model. The JSON field names match the declared output schema.
type Recipe struct {
	RecipeName   string   `json:"recipeName"`
	Description  string   `json:"description"`
	PrepTime     string   `json:"prepTime"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
}

// SearchMode selects which prompt a search is turned into.
type SearchMode string

const (
	SearchModeIngredients SearchMode = "ingredients"
	SearchModeName        SearchMode = "name"
)

// ParseSearchMode maps raw input to a SearchMode. Empty input selects the
// ingredients mode, which is the default tab.
func ParseSearchMode(s string) (SearchMode, bool) {
	switch SearchMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", SearchModeIngredients:
		return SearchModeIngredients, true
	case SearchModeName:
		return SearchModeName, true
	default:
		return "", false
	}
}

// Pantry is the list of ingredients the user typed in, lower-cased and trimmed.
type Pantry []string

// ParsePantry splits comma separated ingredient text. Blank items are dropped.
func ParsePantry(raw string) Pantry {
	parts := strings.Split(raw, ",")
	pantry := make(Pantry, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			pantry = append(pantry, p)
		}
	}
	return pantry
}

// Has reports whether a recipe ingredient line mentions any pantry item.
// "2 cups of Flour" matches a pantry entry of "flour".
func (p Pantry) Has(ingredient string) bool {
	line := strings.ToLower(ingredient)
	for _, item := range p {
		if strings.Contains(line, item) {
			return true
		}
	}
	return false
}
