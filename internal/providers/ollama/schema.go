// internal/providers/ollama/schema.go
package ollama

import (
	"fmt"
	"strings"

	"github.com/mwiater/modelbench/internal/providers"
	"github.com/xeipuuv/gojsonschema"
)

// tagsSchema requires every listed model to carry a non-empty name.
var tagsSchema = map[string]any{
	"type":     "object",
	"required": []string{"models"},
	"properties": map[string]any{
		"models": map[string]any{
			"type": []string{"array", "null"},
			"items": map[string]any{
				"type":     "object",
				"required": []string{"name"},
				"properties": map[string]any{
					"name": map[string]any{"type": "string", "minLength": 1},
				},
			},
		},
	},
}

// generateSchema requires a string response field.
var generateSchema = map[string]any{
	"type":     "object",
	"required": []string{"response"},
	"properties": map[string]any{
		"response": map[string]any{"type": "string"},
	},
}

var (
	compiledTags     = mustSchema(tagsSchema)
	compiledGenerate = mustSchema(generateSchema)
)

func mustSchema(def map[string]any) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(def))
	if err != nil {
		panic(fmt.Sprintf("ollama: invalid schema: %v", err))
	}
	return schema
}

func validateTags(body []byte) error {
	return validateBody(compiledTags, "/api/tags", body)
}

func validateGenerate(body []byte) error {
	return validateBody(compiledGenerate, "/api/generate", body)
}

// validateBody checks body against schema and wraps any mismatch in
// providers.ErrInvalidResponse.
func validateBody(schema *gojsonschema.Schema, path string, body []byte) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("%w: %s: %v", providers.ErrInvalidResponse, path, err)
	}
	if result.Valid() {
		return nil
	}
	var details []string
	for _, desc := range result.Errors() {
		details = append(details, desc.String())
	}
	return fmt.Errorf("%w: %s: %s", providers.ErrInvalidResponse, path, strings.Join(details, "; "))
}
