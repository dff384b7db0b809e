package itinerary

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// outputSchemaJSON describes the wire shape every AgentOutput must have.
const outputSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["itinerary", "restaurants", "packing_checklist", "meta"],
  "properties": {
    "itinerary": {"type": "array", "items": {"$ref": "#/definitions/day"}},
    "restaurants": {"type": "array", "items": {"$ref": "#/definitions/activity"}},
    "packing_checklist": {"type": "array", "items": {"type": "string"}},
    "meta": {"type": "object"}
  },
  "definitions": {
    "day": {
      "type": "object",
      "required": ["date", "blocks"],
      "properties": {
        "date": {"type": "string", "minLength": 1},
        "blocks": {"type": "array", "minItems": 1, "items": {"$ref": "#/definitions/block"}}
      }
    },
    "block": {
      "type": "object",
      "required": ["block", "activities"],
      "properties": {
        "block": {"enum": ["morning", "afternoon", "evening"]},
        "activities": {"type": "array", "items": {"$ref": "#/definitions/activity"}}
      }
    },
    "activity": {
      "type": "object",
      "required": ["title", "tags"],
      "properties": {
        "title": {"type": "string", "minLength": 1},
        "address": {"type": ["string", "null"]},
        "lat": {"type": ["number", "null"], "minimum": -90, "maximum": 90},
        "lon": {"type": ["number", "null"], "minimum": -180, "maximum": 180},
        "price_tier": {"type": ["string", "null"]},
        "duration_minutes": {"type": ["integer", "null"], "minimum": 0},
        "tags": {"type": "array", "items": {"type": "string"}},
        "wheelchair_friendly": {"type": ["boolean", "null"]},
        "child_friendly": {"type": ["boolean", "null"]},
        "url": {"type": ["string", "null"]}
      }
    }
  }
}`

var outputSchema = mustCompile(outputSchemaJSON)

func mustCompile(s string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(s))
	if err != nil {
		panic(fmt.Sprintf("itinerary: compile output schema: %v", err))
	}
	return schema
}

// ValidateOutput checks out against the AgentOutput JSON schema.
func ValidateOutput(out AgentOutput) error {
	result, err := outputSchema.Validate(gojsonschema.NewGoLoader(out))
	if err != nil {
		return fmt.Errorf("itinerary: validate output: %w", err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("itinerary: output violates schema: %s", strings.Join(msgs, "; "))
}
