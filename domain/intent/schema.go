package intent

import (
	"fmt"

	"gosupply/domain/core"
)

// Schema returns the JSON schema the arguments of task k must satisfy.
func Schema(k TaskKind) (string, error) {
	s, ok := schemas[k]
	if !ok {
		return "", fmt.Errorf("%w: %q", core.ErrUnsupportedTask, string(k))
	}
	return s, nil
}

var schemas = map[TaskKind]string{
	TaskInventoryTransfer: `{
  "type": "object",
  "properties": {
    "product_id": {"type": "string", "minLength": 1, "description": "Product/model ID to be transferred"},
    "requesting_loc_id": {"type": "string", "minLength": 1, "description": "Receiving location ID (dealer etc.)"},
    "supplying_loc_id": {"type": "string", "minLength": 1, "description": "Sending location ID (plant, hub etc.)"}
  },
  "required": ["product_id", "requesting_loc_id", "supplying_loc_id"],
  "additionalProperties": false
}`,
	TaskProductionFeasibility: `{
  "type": "object",
  "properties": {
    "product_id": {"type": "string", "minLength": 1, "description": "Product/model ID to be produced"},
    "requested_qty": {"type": "integer", "minimum": 1, "description": "Requested production quantity"},
    "due_date": {"type": "string", "pattern": "^\\d{4}-\\d{2}-\\d{2}$", "description": "Requested completion date, YYYY-MM-DD"}
  },
  "required": ["product_id", "requested_qty", "due_date"],
  "additionalProperties": false
}`,
	TaskDemandForecast: `{
  "type": "object",
  "properties": {
    "product_id": {"type": "string", "minLength": 1, "description": "Product/model ID"},
    "target_period": {"type": "string", "pattern": "^\\d{4}-\\d{2}$", "description": "Forecast month, YYYY-MM"},
    "upcoming_campaigns": {"type": "array", "items": {"type": "string"}, "description": "Marketing campaign names active in the period"}
  },
  "required": ["product_id", "target_period"],
  "additionalProperties": false
}`,
	TaskTrimMix: `{
  "type": "object",
  "properties": {
    "base_model": {"type": "string", "minLength": 1, "description": "Base vehicle model whose trims are compared"},
    "period": {"type": "string", "pattern": "(?i)^\\s*\\d+\\s+(quarter|month|year|week|day)s?\\s*$", "description": "Planning horizon such as '1 quarter'"}
  },
  "required": ["base_model", "period"],
  "additionalProperties": false
}`,
	TaskSourcingMitigation: `{
  "type": "object",
  "properties": {
    "component_id": {"type": "string", "minLength": 1, "description": "Component in shortage"},
    "required_qty": {"type": "integer", "minimum": 1, "description": "Quantity that must be covered"}
  },
  "required": ["component_id", "required_qty"],
  "additionalProperties": false
}`,
	TaskRouteOptimization: `{
  "type": "object",
  "properties": {
    "source_loc_id": {"type": "string", "minLength": 1, "description": "Shipping plant"},
    "hub_loc_id": {"type": "string", "minLength": 1, "description": "Candidate cross-dock hub"},
    "dealer_loc_id": {"type": "string", "minLength": 1, "description": "Receiving dealer"}
  },
  "required": ["source_loc_id", "hub_loc_id", "dealer_loc_id"],
  "additionalProperties": false
}`,
	TaskEOLBuy: `{
  "type": "object",
  "properties": {
    "component_id": {"type": "string", "minLength": 1, "description": "Discontinued component"},
    "affected_product_ids": {"type": "array", "minItems": 1, "items": {"type": "string", "minLength": 1}, "description": "Products that use the component"}
  },
  "required": ["component_id", "affected_product_ids"],
  "additionalProperties": false
}`,
}
