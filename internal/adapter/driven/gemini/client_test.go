package gemini_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	geminiadapter "github.com/ericfisherdev/recipefinder/internal/adapter/driven/gemini"
	"github.com/ericfisherdev/recipefinder/internal/domain/model"
)

// newTestClient creates a Client backed by the given httptest handler.
func newTestClient(t *testing.T, handler http.Handler) *geminiadapter.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := geminiadapter.NewClientWithHTTPClient(context.Background(), server.Client(), server.URL, "")
	require.NoError(t, err)

	return client
}

// replyJSON builds a generateContent response body with one text part per string.
func replyJSON(parts ...string) string {
	type part struct {
		Text string `json:"text"`
	}
	ps := make([]part, 0, len(parts))
	for _, p := range parts {
		ps = append(ps, part{Text: p})
	}
	body := map[string]any{
		"candidates": []any{
			map[string]any{
				"content":      map[string]any{"role": "model", "parts": ps},
				"finishReason": "STOP",
			},
		},
	}
	data, _ := json.Marshal(body)
	return string(data)
}

func TestGenerate_SendsPromptAndSchema(t *testing.T) {
	var (
		gotPath string
		gotKey  string
		gotBody map[string]any
	)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, replyJSON(`[{"recipeName":"Pancakes"}]`))
	})

	client := newTestClient(t, handler)
	text, err := client.Generate(context.Background(), "suggest pancakes", model.RecipeListSchema())

	require.NoError(t, err)
	assert.Equal(t, `[{"recipeName":"Pancakes"}]`, text)
	assert.Equal(t, "gemini-2.5-flash", client.Model())
	assert.Equal(t, "/v1beta/models/gemini-2.5-flash:generateContent", gotPath)
	assert.NotEmpty(t, gotKey)

	contents := gotBody["contents"].([]any)
	require.Len(t, contents, 1)
	parts := contents[0].(map[string]any)["parts"].([]any)
	assert.Equal(t, "suggest pancakes", parts[0].(map[string]any)["text"])

	cfg := gotBody["generationConfig"].(map[string]any)
	assert.Equal(t, "application/json", cfg["responseMimeType"])

	schema := cfg["responseSchema"].(map[string]any)
	assert.Equal(t, "ARRAY", schema["type"])
	items := schema["items"].(map[string]any)
	assert.Equal(t, "OBJECT", items["type"])
	assert.ElementsMatch(t,
		[]any{"recipeName", "description", "prepTime", "ingredients", "instructions"},
		items["required"],
	)
	props := items["properties"].(map[string]any)
	ingredients := props["ingredients"].(map[string]any)
	assert.Equal(t, "ARRAY", ingredients["type"])
	assert.Equal(t, "STRING", ingredients["items"].(map[string]any)["type"])
}

func TestGenerate_JoinsPartsAndTrims(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, replyJSON("  [{\"recipeName\":", "\"Soup\"}]\n"))
	})

	client := newTestClient(t, handler)
	text, err := client.Generate(context.Background(), "soup", model.RecipeListSchema())

	require.NoError(t, err)
	assert.Equal(t, `[{"recipeName":"Soup"}]`, text)
}

func TestGenerate_ServerError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error":{"code":500,"message":"backend unavailable"}}`)
	})

	client := newTestClient(t, handler)
	_, err := client.Generate(context.Background(), "anything", model.RecipeListSchema())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "generate content with gemini-2.5-flash")

	var apiErr genai.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Code)
	assert.Equal(t, "backend unavailable", apiErr.Message)
}

func TestGenerate_NoCandidates(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"promptFeedback":{"blockReason":"SAFETY"}}`)
	})

	client := newTestClient(t, handler)
	_, err := client.Generate(context.Background(), "anything", model.RecipeListSchema())

	require.ErrorIs(t, err, geminiadapter.ErrEmptyReply)
	assert.Contains(t, err.Error(), "SAFETY")
}

func TestGenerate_CandidateWithoutParts(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[{"finishReason":"MAX_TOKENS"}]}`)
	})

	client := newTestClient(t, handler)
	_, err := client.Generate(context.Background(), "anything", model.RecipeListSchema())

	require.ErrorIs(t, err, geminiadapter.ErrEmptyReply)
	assert.Contains(t, err.Error(), "MAX_TOKENS")
}

func TestGenerate_CustomModelName(t *testing.T) {
	var gotPath string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, replyJSON("[]"))
	})

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := geminiadapter.NewClientWithHTTPClient(context.Background(), server.Client(), server.URL+"/", "models/gemini-2.0-pro")
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), "x", nil)
	require.NoError(t, err)
	assert.Equal(t, "/v1beta/models/gemini-2.0-pro:generateContent", gotPath)
}

func TestGenerate_EmptyTextReply(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, replyJSON("   "))
	})

	client := newTestClient(t, handler)
	_, err := client.Generate(context.Background(), "anything", model.RecipeListSchema())

	require.ErrorIs(t, err, geminiadapter.ErrEmptyReply)
	assert.Contains(t, err.Error(), "STOP")
}
