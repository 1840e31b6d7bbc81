package web

import (
	vm "github.com/ericfisherdev/recipefinder/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/recipefinder/internal/domain/model"
)

// EmptyResultMessage is shown when a search succeeds with no recipes.
const EmptyResultMessage = "No recipes found. Try different terms or check the spelling."

// modeText holds the per-tab copy.
type modeText struct {
	label       string
	placeholder string
	welcome     string
}

var modeTexts = map[model.SearchMode]modeText{
	model.SearchModeIngredients: {
		label:       "Search by ingredients",
		placeholder: "Type the ingredients you have, separated by commas...",
		welcome:     "Not sure what to cook? List the ingredients in your kitchen and get recipe suggestions.",
	},
	model.SearchModeName: {
		label:       "Search by recipe name",
		placeholder: "Which recipe would you like to find?",
		welcome:     "Craving something specific? Search by recipe name for the full step-by-step.",
	},
}

// tabOrder fixes the left-to-right order of the tabs.
var tabOrder = []model.SearchMode{model.SearchModeIngredients, model.SearchModeName}

// toAuthPageViewModel builds the login (isLogin) or register form.
func toAuthPageViewModel(isLogin bool, email, errMsg, csrf string) vm.AuthPageViewModel {
	page := vm.AuthPageViewModel{
		IsLogin:   isLogin,
		Heading:   "Recipe Finder",
		Email:     email,
		Error:     errMsg,
		CSRFToken: csrf,
	}

	if isLogin {
		page.Subheading = "Log in to find delicious recipes."
		page.Action = "/login"
		page.SubmitLabel = "Log in"
		page.ToggleText = "Don't have an account?"
		page.ToggleLabel = "Sign up"
		page.ToggleURL = "/register"
	} else {
		page.Subheading = "Create your account to get started."
		page.Action = "/register"
		page.SubmitLabel = "Create account"
		page.ToggleText = "Already have an account?"
		page.ToggleLabel = "Log in"
		page.ToggleURL = "/login"
	}

	return page
}

// toFinderPageViewModel builds the finder page for mode in its initial
// (welcome) state.
func toFinderPageViewModel(email, csrf string, mode model.SearchMode) vm.FinderPageViewModel {
	tabs := make([]vm.TabViewModel, 0, len(tabOrder))
	for _, m := range tabOrder {
		tabs = append(tabs, vm.TabViewModel{
			Label:  modeTexts[m].label,
			URL:    "/?mode=" + string(m),
			Active: m == mode,
		})
	}

	return vm.FinderPageViewModel{
		UserEmail:    email,
		CSRFToken:    csrf,
		Tabs:         tabs,
		Mode:         string(mode),
		Placeholder:  modeTexts[mode].placeholder,
		UseTextArea:  mode == model.SearchModeIngredients,
		Welcome:      modeTexts[mode].welcome,
		EmptyMessage: EmptyResultMessage,
		Recipes:      []vm.RecipeCardViewModel{},
	}
}

// pantryFor returns the owned-ingredient list for highlighting. Only
// ingredient searches have one.
func pantryFor(mode model.SearchMode, query string) model.Pantry {
	if mode != model.SearchModeIngredients {
		return model.Pantry{}
	}
	return model.ParsePantry(query)
}

// toRecipeCardViewModel converts a domain Recipe, flagging ingredient lines
// found in pantry.
func toRecipeCardViewModel(r model.Recipe, pantry model.Pantry) vm.RecipeCardViewModel {
	card := vm.RecipeCardViewModel{
		Name:             r.RecipeName,
		DescriptionHTML:  RenderMarkdown(r.Description),
		PrepTime:         r.PrepTime,
		Ingredients:      make([]vm.IngredientViewModel, 0, len(r.Ingredients)),
		InstructionsHTML: make([]string, 0, len(r.Instructions)),
	}

	for _, ing := range r.Ingredients {
		owned := pantry.Has(ing)
		if owned {
			card.OwnedCount++
		}
		card.Ingredients = append(card.Ingredients, vm.IngredientViewModel{Text: ing, Owned: owned})
	}

	for _, step := range r.Instructions {
		card.InstructionsHTML = append(card.InstructionsHTML, SanitizeText(step))
	}

	return card
}

func toRecipeCardViewModels(recipes []model.Recipe, pantry model.Pantry) []vm.RecipeCardViewModel {
	cards := make([]vm.RecipeCardViewModel, 0, len(recipes))
	for _, r := range recipes {
		cards = append(cards, toRecipeCardViewModel(r, pantry))
	}
	return cards
}
