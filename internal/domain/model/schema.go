package model

// SchemaType enumerates the value kinds a response schema can declare.
type SchemaType string

const (
	SchemaTypeString SchemaType = "STRING"
	SchemaTypeArray  SchemaType = "ARRAY"
	SchemaTypeObject SchemaType = "OBJECT"
)

// Schema is a provider-neutral description of the JSON document the model
// must produce. Adapters translate it into their wire format.
type Schema struct {
	Type        SchemaType
	Description string
	Properties  map[string]*Schema
	Items       *Schema
	Required    []string
}

// RecipeSchema declares a single recipe object.
func RecipeSchema() *Schema {
	return &Schema{
		Type: SchemaTypeObject,
		Properties: map[string]*Schema{
			"recipeName": {
				Type:        SchemaTypeString,
				Description: "The name of the recipe.",
			},
			"description": {
				Type:        SchemaTypeString,
				Description: "A short, appealing description of the recipe.",
			},
			"prepTime": {
				Type:        SchemaTypeString,
				Description: "Total preparation and cooking time, for example '45 minutes'.",
			},
			"ingredients": {
				Type: SchemaTypeArray,
				Items: &Schema{
					Type:        SchemaTypeString,
					Description: "One required ingredient with its quantity, for example '1 cup of flour'.",
				},
			},
			"instructions": {
				Type: SchemaTypeArray,
				Items: &Schema{
					Type:        SchemaTypeString,
					Description: "A single preparation step.",
				},
			},
		},
		Required: []string{"recipeName", "description", "prepTime", "ingredients", "instructions"},
	}
}

// RecipeListSchema declares the array of recipes every search asks for.
func RecipeListSchema() *Schema {
	return &Schema{
		Type:  SchemaTypeArray,
		Items: RecipeSchema(),
	}
}
