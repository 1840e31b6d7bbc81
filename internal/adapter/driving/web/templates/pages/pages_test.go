package pages

import (
	"bytes"
	"context"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vm "github.com/ericfisherdev/recipefinder/internal/adapter/driving/web/viewmodel"
)

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestAuthPage_EscapesInput(t *testing.T) {
	out := renderString(t, AuthPage(vm.AuthPageViewModel{
		Heading:     "Recipe Finder",
		Action:      "/login",
		SubmitLabel: "Log in",
		ToggleURL:   "/register",
		Email:       `"><script>x</script>`,
		Error:       "Incorrect email or password.",
		CSRFToken:   "tok",
	}))

	assert.NotContains(t, out, "<script>x</script>")
	assert.Contains(t, out, `value="&#34;&gt;&lt;script&gt;x&lt;/script&gt;"`)
	assert.Contains(t, out, `<p class="error" role="alert">Incorrect email or password.</p>`)
	assert.Contains(t, out, `name="csrf_token" value="tok"`)
}

func TestAuthPage_NoErrorBlock(t *testing.T) {
	out := renderString(t, AuthPage(vm.AuthPageViewModel{Action: "/register"}))

	assert.NotContains(t, out, `class="error"`)
}

func TestFinderPage_States(t *testing.T) {
	base := vm.FinderPageViewModel{
		UserEmail:    "cook@example.com",
		Mode:         "ingredients",
		UseTextArea:  true,
		Welcome:      "List your ingredients.",
		EmptyMessage: "No recipes found.",
	}

	t.Run("welcome", func(t *testing.T) {
		out := renderString(t, FinderPage(base))
		assert.Contains(t, out, "List your ingredients.")
		assert.Contains(t, out, "<textarea")
	})

	t.Run("error", func(t *testing.T) {
		p := base
		p.Searched = true
		p.Error = "Could not fetch recipes. Please try again."
		out := renderString(t, FinderPage(p))
		assert.Contains(t, out, `<div class="error" role="alert">Could not fetch recipes. Please try again.</div>`)
		assert.NotContains(t, out, "List your ingredients.")
	})

	t.Run("empty", func(t *testing.T) {
		p := base
		p.Searched = true
		out := renderString(t, FinderPage(p))
		assert.Contains(t, out, `<div class="empty">No recipes found.</div>`)
	})

	t.Run("cards", func(t *testing.T) {
		p := base
		p.Searched = true
		p.UseTextArea = false
		p.Query = "pan<cakes"
		p.Recipes = []vm.RecipeCardViewModel{{
			Name:             "Pancakes",
			DescriptionHTML:  "<p>Fluffy</p>",
			PrepTime:         "20 minutes",
			Ingredients:      []vm.IngredientViewModel{{Text: "eggs", Owned: true}, {Text: "sugar"}},
			OwnedCount:       1,
			InstructionsHTML: []string{"Whisk", "Fry"},
		}}
		out := renderString(t, FinderPage(p))
		assert.Contains(t, out, `<input type="text" name="query"`)
		assert.Contains(t, out, `value="pan&lt;cakes"`)
		assert.Contains(t, out, "<h2>Pancakes</h2>")
		assert.Contains(t, out, "<p>Fluffy</p>")
		assert.Contains(t, out, `<li class="owned">eggs</li><li>sugar</li>`)
		assert.Contains(t, out, "1 on hand")
		assert.Contains(t, out, "<li>Whisk</li><li>Fry</li>")
	})
}

func TestFinderPage_TabsAndHeader(t *testing.T) {
	out := renderString(t, FinderPage(vm.FinderPageViewModel{
		UserEmail: "cook@example.com",
		CSRFToken: "tok",
		Tabs: []vm.TabViewModel{
			{Label: "By Ingredients", URL: "/?mode=ingredients"},
			{Label: "By Recipe Name", URL: "/?mode=name", Active: true},
		},
		Mode: "name",
	}))

	assert.Contains(t, out, `<a class="tab" href="/?mode=ingredients">By Ingredients</a><a class="tab active" href="/?mode=name">By Recipe Name</a>`)
	assert.Contains(t, out, "<span>cook@example.com</span>")
	assert.Contains(t, out, `<form method="post" action="/logout"><input type="hidden" name="csrf_token" value="tok">`)
	assert.Contains(t, out, `<input type="hidden" name="mode" value="name">`)
}

func TestFinderPage_NoOwnedCountWithoutMatches(t *testing.T) {
	out := renderString(t, FinderPage(vm.FinderPageViewModel{
		Searched: true,
		Recipes: []vm.RecipeCardViewModel{{
			Name:        "Soup",
			Ingredients: []vm.IngredientViewModel{{Text: "water"}},
		}},
	}))

	assert.NotContains(t, out, "owned-count")
	assert.Contains(t, out, "<li>water</li>")
}
