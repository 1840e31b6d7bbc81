// Package viewmodel defines presentation-ready structs for templ components.
// View models decouple template rendering from domain model types.
package viewmodel

// AuthPageViewModel holds the login/register form. The secret is never
// echoed back.
type AuthPageViewModel struct {
	IsLogin     bool
	Heading     string
	Subheading  string
	Action      string // POST target for the form
	SubmitLabel string
	ToggleText  string
	ToggleLabel string
	ToggleURL   string
	Email       string
	Error       string
	CSRFToken   string
}

// TabViewModel is one search mode tab.
type TabViewModel struct {
	Label  string
	URL    string
	Active bool
}

// FinderPageViewModel holds everything shown on the recipe finder page.
type FinderPageViewModel struct {
	UserEmail   string
	CSRFToken   string
	Tabs        []TabViewModel
	Mode        string
	Query       string
	Placeholder string
	UseTextArea bool
	Welcome     string

	// Exactly one of Error, the empty message, or Recipes is shown once
	// Searched is true. Before that the welcome text is shown.
	Error        string
	Searched     bool
	EmptyMessage string
	Recipes      []RecipeCardViewModel
}

// RecipeCardViewModel holds presentation-ready data for a single recipe.
type RecipeCardViewModel struct {
	Name             string
	DescriptionHTML  string // sanitized
	PrepTime         string
	Ingredients      []IngredientViewModel
	OwnedCount       int
	InstructionsHTML []string // sanitized, one entry per step
}

// IngredientViewModel is an ingredient line, flagged when the user already
// has it.
type IngredientViewModel struct {
	Text  string
	Owned bool
}
