package driven

import (
	"context"

	"github.com/ericfisherdev/recipefinder/internal/domain/model"
)

// RecipeModel defines the driven port for the external generative model.
type RecipeModel interface {
	// Generate sends prompt to the model, constraining its reply to JSON that
	// conforms to schema, and returns the raw reply text. Any transport or
	// model failure is returned as an error; the reply is not validated.
	Generate(ctx context.Context, prompt string, schema *model.Schema) (string, error)
}
