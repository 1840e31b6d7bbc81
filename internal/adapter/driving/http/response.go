package httphandler

import (
	"encoding/json"
	"mime"
	"net/http"

	"github.com/ericfisherdev/recipefinder/internal/domain/model"
)

// decodeJSONBody decodes an application/json request body into dst. It
// writes 415 for any other content type and 400 for a malformed body.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		writeError(w, http.StatusUnsupportedMediaType, "content type must be application/json")
		return false
	}

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// CredentialsRequest is the JSON body for the register and login endpoints.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse describes the active session. The secret is never returned.
type SessionResponse struct {
	Email string `json:"email"`
}

// SearchRequest is the JSON body for the recipe search endpoint. An empty
// mode searches by ingredients.
type SearchRequest struct {
	Mode  string `json:"mode"`
	Query string `json:"query"`
}

// RecipeResponse is the JSON representation of a recipe.
type RecipeResponse struct {
	RecipeName   string   `json:"recipeName"`
	Description  string   `json:"description"`
	PrepTime     string   `json:"prepTime"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
}

// SearchResponse wraps the ordered recipe list returned by a search.
type SearchResponse struct {
	Mode    string           `json:"mode"`
	Recipes []RecipeResponse `json:"recipes"`
}

// toRecipeResponse converts a domain Recipe to its JSON representation.
// Missing lists are rendered as empty arrays, not null.
func toRecipeResponse(r model.Recipe) RecipeResponse {
	ingredients := r.Ingredients
	if ingredients == nil {
		ingredients = []string{}
	}
	instructions := r.Instructions
	if instructions == nil {
		instructions = []string{}
	}

	return RecipeResponse{
		RecipeName:   r.RecipeName,
		Description:  r.Description,
		PrepTime:     r.PrepTime,
		Ingredients:  ingredients,
		Instructions: instructions,
	}
}

func toSearchResponse(mode model.SearchMode, recipes []model.Recipe) SearchResponse {
	resp := SearchResponse{
		Mode:    string(mode),
		Recipes: make([]RecipeResponse, 0, len(recipes)),
	}
	for _, r := range recipes {
		resp.Recipes = append(resp.Recipes, toRecipeResponse(r))
	}
	return resp
}
