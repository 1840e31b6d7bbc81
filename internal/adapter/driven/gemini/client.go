// Package gemini implements the RecipeModel port on the Gen AI SDK.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/ericfisherdev/recipefinder/internal/domain/model"
	"github.com/ericfisherdev/recipefinder/internal/domain/port/driven"
)

// DefaultModel is the model identifier used when none is configured.
const DefaultModel = "gemini-2.5-flash"

const jsonMimeType = "application/json"

// testAPIKey satisfies the SDK's key check for clients pointed at a test server.
const testAPIKey = "test-key"

// ErrEmptyReply is returned when the model answers without any candidate text.
var ErrEmptyReply = errors.New("model returned no content")

// Compile-time interface satisfaction check.
var _ driven.RecipeModel = (*Client)(nil)

// Client implements the driven.RecipeModel port.
type Client struct {
	genai *genai.Client
	model string
}

// NewClient creates a Gemini API client authenticated with an API key.
// endpoint overrides the API base URL when non-empty.
func NewClient(ctx context.Context, apiKey, modelName, endpoint string) (*Client, error) {
	return newClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: endpoint},
	}, modelName)
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base URL.
// This constructor is intended for testing, allowing injection of an httptest server.
func NewClientWithHTTPClient(ctx context.Context, httpClient *http.Client, baseURL, modelName string) (*Client, error) {
	return newClient(ctx, &genai.ClientConfig{
		APIKey:      testAPIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  httpClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: baseURL},
	}, modelName)
}

func newClient(ctx context.Context, cfg *genai.ClientConfig, modelName string) (*Client, error) {
	gc, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Client{genai: gc, model: modelOrDefault(modelName)}, nil
}

// Model returns the model identifier requests are sent to.
func (c *Client) Model() string {
	return c.model
}

// Generate sends a single generateContent request with a JSON response
// directive and returns the text of the first candidate.
func (c *Client) Generate(ctx context.Context, prompt string, schema *model.Schema) (string, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: jsonMimeType,
		ResponseSchema:   toSchema(schema),
	}

	resp, err := c.genai.Models.GenerateContent(ctx, c.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("generate content with %s: %w", c.model, err)
	}

	text, err := replyText(resp)
	if err != nil {
		return "", fmt.Errorf("generate content with %s: %w", c.model, err)
	}
	return text, nil
}

// replyText returns the trimmed reply, or ErrEmptyReply annotated with the
// block or finish reason when the model produced no text.
func replyText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", ErrEmptyReply
	}

	if text := strings.TrimSpace(resp.Text()); text != "" {
		return text, nil
	}

	if len(resp.Candidates) == 0 {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("%w: prompt blocked (%s)", ErrEmptyReply, resp.PromptFeedback.BlockReason)
		}
		return "", ErrEmptyReply
	}

	if reason := resp.Candidates[0].FinishReason; reason != "" {
		return "", fmt.Errorf("%w: finish reason %s", ErrEmptyReply, reason)
	}
	return "", ErrEmptyReply
}

// toSchema maps the provider-neutral schema onto the SDK's Schema type.
func toSchema(s *model.Schema) *genai.Schema {
	if s == nil {
		return nil
	}

	out := &genai.Schema{
		Type:        schemaType(s.Type),
		Description: s.Description,
		Required:    s.Required,
		Items:       toSchema(s.Items),
	}

	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			if mapped := toSchema(prop); mapped != nil {
				out.Properties[name] = mapped
			}
		}
	}

	return out
}

func schemaType(t model.SchemaType) genai.Type {
	switch t {
	case model.SchemaTypeArray:
		return genai.TypeArray
	case model.SchemaTypeObject:
		return genai.TypeObject
	case model.SchemaTypeString:
		return genai.TypeString
	default:
		return genai.TypeUnspecified
	}
}

func modelOrDefault(name string) string {
	if strings.TrimSpace(name) == "" {
		return DefaultModel
	}
	return name
}
