package tools

import "encoding/json"

type prop map[string]any

var (
	idProp      = prop{"type": "string", "minLength": 1}
	optStrProp  = prop{"type": "string"}
	intProp     = prop{"type": "integer"}
	numberProp  = prop{"type": "number"}
	objectProp  = prop{"type": "object"}
	idListProp  = prop{"type": "array", "items": prop{"type": "string", "minLength": 1}, "minItems": 1}
	strListProp = prop{"type": "array", "items": prop{"type": "string"}}
	objListProp = prop{"type": "array", "items": prop{"type": "object"}}
	dateProp    = prop{"type": "string", "pattern": `^\d{4}-\d{2}-\d{2}$`}
	periodProp  = prop{"type": "string", "minLength": 1, "description": "e.g. '1 quarter', '6 months'"}
)

// object renders a closed object schema
func object(props map[string]prop, required ...string) string {
	doc := map[string]any{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": false,
	}
	if len(required) > 0 {
		doc["required"] = required
	}
	b, err := json.Marshal(doc)
	if err != nil {
		panic(err)
	}
	return string(b)
}
