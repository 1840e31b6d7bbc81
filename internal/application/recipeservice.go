package application

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ericfisherdev/recipefinder/internal/domain/model"
	"github.com/ericfisherdev/recipefinder/internal/domain/port/driven"
)

// MaxRecipes is the number of suggestions each prompt asks for.
const MaxRecipes = 5

// ErrEmptyQuery is returned by Find when the search text is blank. The model
// is not called.
var ErrEmptyQuery = errors.New("empty search query")

// ErrUnknownSearchMode is returned by Find for a mode it cannot dispatch.
var ErrUnknownSearchMode = errors.New("unknown search mode")

// RecipeService turns search intents into model queries and model replies
// into recipe lists. Every call is a single, independent model request.
type RecipeService struct {
	model  driven.RecipeModel
	schema *model.Schema
	logger *slog.Logger
}

// NewRecipeService creates a RecipeService that queries m.
func NewRecipeService(m driven.RecipeModel, logger *slog.Logger) *RecipeService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecipeService{
		model:  m,
		schema: model.RecipeListSchema(),
		logger: logger,
	}
}

// FindByIngredients asks for recipes that can be made from the raw
// ingredient text. The text is embedded verbatim.
func (s *RecipeService) FindByIngredients(ctx context.Context, rawText string) ([]model.Recipe, error) {
	return s.dispatch(ctx, IngredientsPrompt(rawText))
}

// FindByName asks for recipes matching a name or description.
func (s *RecipeService) FindByName(ctx context.Context, query string) ([]model.Recipe, error) {
	return s.dispatch(ctx, NamePrompt(query))
}

// Find routes a search from the UI. Blank text returns ErrEmptyQuery without
// contacting the model.
func (s *RecipeService) Find(ctx context.Context, mode model.SearchMode, text string) ([]model.Recipe, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyQuery
	}

	switch mode {
	case model.SearchModeIngredients:
		return s.FindByIngredients(ctx, text)
	case model.SearchModeName:
		return s.FindByName(ctx, text)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSearchMode, mode)
	}
}

// IngredientsPrompt builds the prompt for an ingredient search.
func IngredientsPrompt(ingredients string) string {
	return fmt.Sprintf(
		"You are a helpful cooking assistant. Based on the following ingredients: %s, suggest up to %d recipes. "+
			"If the ingredients are not enough for a complete meal, suggest simple recipes or side dishes. "+
			"Provide the answer as a JSON array of recipe objects.",
		ingredients, MaxRecipes,
	)
}

// NamePrompt builds the prompt for a recipe name search.
func NamePrompt(query string) string {
	return fmt.Sprintf(
		"You are a helpful cooking assistant. Find up to %d recipes for %q. "+
			"Provide the answer as a JSON array of recipe objects.",
		MaxRecipes, query,
	)
}

func (s *RecipeService) dispatch(ctx context.Context, prompt string) ([]model.Recipe, error) {
	text, err := s.model.Generate(ctx, prompt, s.schema)
	if err != nil {
		s.logger.Error("recipe model request failed", "error", err)
		return nil, &model.QueryError{
			Kind:    model.QueryErrorUpstream,
			Message: model.MsgUpstreamFailure,
			Err:     err,
		}
	}

	reply, err := parseReply(text)
	if err != nil {
		return nil, &model.QueryError{
			Kind:    model.QueryErrorMalformed,
			Message: model.MsgMalformedResponse,
			Err:     err,
		}
	}

	return reply.recipes(), nil
}

// replyKind tags the two reply shapes the model is known to produce.
type replyKind int

const (
	replyList replyKind = iota + 1
	replySingle
)

// recipeReply is the model reply resolved once, right after parsing.
type recipeReply struct {
	kind   replyKind
	list   []model.Recipe
	single model.Recipe
}

// parseReply decodes the reply as either an array of recipes or a single bare
// recipe object. Any other JSON value, or invalid JSON, is an error.
func parseReply(text string) (recipeReply, error) {
	data := bytes.TrimSpace([]byte(text))
	if len(data) == 0 {
		return recipeReply{}, errors.New("empty reply")
	}

	switch data[0] {
	case '[':
		var list []model.Recipe
		if err := json.Unmarshal(data, &list); err != nil {
			return recipeReply{}, fmt.Errorf("decode recipe list: %w", err)
		}
		return recipeReply{kind: replyList, list: list}, nil
	case '{':
		var single model.Recipe
		if err := json.Unmarshal(data, &single); err != nil {
			return recipeReply{}, fmt.Errorf("decode recipe: %w", err)
		}
		return recipeReply{kind: replySingle, single: single}, nil
	default:
		if !json.Valid(data) {
			return recipeReply{}, errors.New("reply is not valid JSON")
		}
		return recipeReply{}, errors.New("reply is neither an array nor an object")
	}
}

func (r recipeReply) recipes() []model.Recipe {
	switch r.kind {
	case replySingle:
		return []model.Recipe{r.single}
	case replyList:
		if r.list == nil {
			return []model.Recipe{}
		}
		return r.list
	default:
		return []model.Recipe{}
	}
}
