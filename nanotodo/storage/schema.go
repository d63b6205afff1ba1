package storage

import (
	"encoding/json"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// stateSchema describes the persisted layout. It has no version field;
// anything that does not match is treated like unreadable data. Only
// structure is checked: priority and sort values the core accepts must
// load back.
const stateSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["todos", "categories", "filter"],
  "properties": {
    "todos": {
      "type": ["array", "null"],
      "items": {"$ref": "#/definitions/todo"}
    },
    "categories": {
      "type": ["array", "null"],
      "items": {"$ref": "#/definitions/category"}
    },
    "filter": {"$ref": "#/definitions/filter"}
  },
  "definitions": {
    "todo": {
      "type": "object",
      "required": ["id", "title", "completed", "priority", "createdAt", "updatedAt"],
      "properties": {
        "id": {"type": "string"},
        "title": {"type": "string"},
        "description": {"type": "string"},
        "completed": {"type": "boolean"},
        "priority": {"type": "string"},
        "dueDate": {"type": "string"},
        "category": {"type": "string"},
        "tags": {"type": ["array", "null"], "items": {"type": "string"}},
        "createdAt": {"type": "string"},
        "updatedAt": {"type": "string"}
      }
    },
    "category": {
      "type": "object",
      "required": ["id", "name"],
      "properties": {
        "id": {"type": "string"},
        "name": {"type": "string"},
        "color": {"type": "string"}
      }
    },
    "filter": {
      "type": "object",
      "required": ["showCompleted", "sortBy"],
      "properties": {
        "searchText": {"type": "string"},
        "category": {"type": "string"},
        "priority": {"type": "string"},
        "showCompleted": {"type": "boolean"},
        "sortBy": {"type": "string"}
      }
    }
  }
}`

var compiledStateSchema = jsonschema.MustCompileString("nanotodo-state.json", stateSchema)

// validateShape checks raw JSON against the persisted layout
func validateShape(data []byte) error {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse JSON: %w", err)
	}
	if err := compiledStateSchema.Validate(doc); err != nil {
		return fmt.Errorf("validate state shape: %w", err)
	}
	return nil
}
