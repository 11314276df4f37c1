package validation

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// CatalogSchema describes the persisted activity catalog document. Catalog
// files are validated against it before any activity is seeded.
var CatalogSchema = map[string]interface{}{
	"type":     "object",
	"required": []string{"version", "activities"},
	"properties": map[string]interface{}{
		"version": map[string]interface{}{
			"type":      "string",
			"minLength": 1,
		},
		"lastUpdated": map[string]interface{}{
			"type": "string",
		},
		"activities": map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type":                 "object",
				"required":             []string{"name", "description", "schedule", "max_participants", "participants"},
				"additionalProperties": false,
				"properties": map[string]interface{}{
					"name": map[string]interface{}{
						"type":      "string",
						"minLength": 1,
					},
					"description": map[string]interface{}{
						"type": "string",
					},
					"schedule": map[string]interface{}{
						"type": "string",
					},
					"max_participants": map[string]interface{}{
						"type":    "integer",
						"minimum": 1,
					},
					"participants": map[string]interface{}{
						"type":        "array",
						"uniqueItems": true,
						"items": map[string]interface{}{
							"type":      "string",
							"minLength": 1,
						},
					},
				},
			},
		},
	},
}

// ValidateCatalog checks a raw catalog document against CatalogSchema.
func ValidateCatalog(raw []byte) error {
	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("catalog is not valid JSON: %w", err)
	}

	schemaLoader := gojsonschema.NewGoLoader(CatalogSchema)
	documentLoader := gojsonschema.NewGoLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("catalog validation failed: %v", errs)
	}

	return nil
}
