package postgres

import (
	"context"
	"fmt"

	"gosupply/domain/core"
	"gosupply/domain/planning"
)

// Product returns the product master row, or nil when it does not exist
func (r *Repository) Product(ctx context.Context, id core.ProductID) (*planning.Product, error) {
	var p planning.Product
	found, err := r.getOptional(ctx, &p, "product", `
		SELECT product_id,
		       COALESCE(product_name, '') AS product_name,
		       COALESCE(base_model, '') AS base_model,
		       COALESCE(trim_level, '') AS trim_level,
		       COALESCE(product_category, '') AS product_category,
		       COALESCE(lifecycle_status, '') AS lifecycle_status,
		       COALESCE(base_price, 0)::float8 AS base_price,
		       COALESCE(currency, '') AS currency,
		       COALESCE(standard_product_cost, 0)::float8 AS standard_product_cost,
		       end_of_service_date,
		       COALESCE(standard_production_time_hours, 0)::float8 AS standard_production_time_hours
		FROM products
		WHERE product_id = $1
	`, id)
	if err != nil || !found {
		return nil, err
	}
	return &p, nil
}

// BillOfMaterials returns the component lines of a product
func (r *Repository) BillOfMaterials(ctx context.Context, productID core.ProductID) ([]planning.BOMLine, error) {
	var lines []planning.BOMLine
	err := r.db.SelectContext(ctx, &lines, `
		SELECT bom_line_id, product_id, component_id, quantity_per_unit,
		       COALESCE(is_critical_in_bom, FALSE) AS is_critical_in_bom
		FROM bill_of_materials
		WHERE product_id = $1
		ORDER BY bom_line_id
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to read bill of materials: %w", err)
	}
	return lines, nil
}

// ComponentStandardCost returns the standard cost, used as the per-unit obsolescence cost
func (r *Repository) ComponentStandardCost(ctx context.Context, id core.ComponentID) (*float64, error) {
	var cost float64
	found, err := r.getOptional(ctx, &cost, "component cost", `
		SELECT COALESCE(standard_cost, 0)::float8 FROM components WHERE component_id = $1
	`, id)
	if err != nil || !found {
		return nil, err
	}
	return &cost, nil
}

// Lane returns the transportation lane between two locations
func (r *Repository) Lane(ctx context.Context, origin, dest core.LocationID) (*planning.Lane, error) {
	var lane planning.Lane
	found, err := r.getOptional(ctx, &lane, "lane", `
		SELECT lane_id,
		       COALESCE(standard_transit_hr, 0)::float8 AS standard_transit_hr,
		       COALESCE(standard_cost_per_shipment, 0)::float8 AS standard_cost_per_shipment
		FROM transportation_lanes
		WHERE origin_loc_id = $1 AND dest_loc_id = $2
		ORDER BY is_primary_route DESC NULLS LAST, lane_id
		LIMIT 1
	`, origin, dest)
	if err != nil || !found {
		return nil, err
	}
	return &lane, nil
}

// HubLocation returns the handling profile of a location
func (r *Repository) HubLocation(ctx context.Context, id core.LocationID) (*planning.HubLocation, error) {
	var hub planning.HubLocation
	found, err := r.getOptional(ctx, &hub, "location", `
		SELECT location_id,
		       COALESCE(avg_handling_hr, 0)::float8 AS avg_handling_hr,
		       COALESCE(handling_cost_per_unit, 0)::float8 AS handling_cost_per_unit
		FROM locations
		WHERE location_id = $1
	`, id)
	if err != nil || !found {
		return nil, err
	}
	return &hub, nil
}
