package postgres

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	"gosupply/domain/core"
	"gosupply/domain/planning"
)

const sourcingRuleColumns = `
	sourcing_id, component_id, partner_id,
	COALESCE(is_primary_supplier, FALSE) AS is_primary_supplier,
	COALESCE(volume_pricing_json, '') AS volume_pricing_json,
	COALESCE(unit_price, 0)::float8 AS unit_price,
	COALESCE(currency, '') AS currency,
	COALESCE(min_order_qty, 0) AS min_order_qty,
	COALESCE(lead_time_days, 0) AS lead_time_days,
	COALESCE(committed_capacity_monthly, 0) AS committed_capacity_monthly,
	COALESCE(max_capacity_monthly, 0) AS max_capacity_monthly`

// SourcingRules returns every sourcing rule of the components
func (r *Repository) SourcingRules(ctx context.Context, componentIDs []core.ComponentID) ([]planning.SourcingRule, error) {
	var rules []planning.SourcingRule
	err := r.db.SelectContext(ctx, &rules, `
		SELECT `+sourcingRuleColumns+`
		FROM sourcing_rules
		WHERE component_id = ANY($1)
		ORDER BY sourcing_id
	`, pq.Array(toStrings(componentIDs)))
	if err != nil {
		return nil, fmt.Errorf("failed to read sourcing rules: %w", err)
	}
	return rules, nil
}

// PrimarySourcingRule returns the primary supplier's rule for a component
func (r *Repository) PrimarySourcingRule(ctx context.Context, componentID core.ComponentID) (*planning.SourcingRule, error) {
	var rule planning.SourcingRule
	found, err := r.getOptional(ctx, &rule, "primary sourcing rule", `
		SELECT `+sourcingRuleColumns+`
		FROM sourcing_rules
		WHERE component_id = $1 AND is_primary_supplier = TRUE
		ORDER BY sourcing_id
		LIMIT 1
	`, componentID)
	if err != nil || !found {
		return nil, err
	}
	return &rule, nil
}

// PrimaryPartners returns the primary supplier of each component
func (r *Repository) PrimaryPartners(ctx context.Context, componentIDs []core.ComponentID) ([]planning.PrimaryPartner, error) {
	var partners []planning.PrimaryPartner
	err := r.db.SelectContext(ctx, &partners, `
		SELECT component_id, partner_id
		FROM sourcing_rules
		WHERE component_id = ANY($1) AND is_primary_supplier = TRUE
		ORDER BY sourcing_id
	`, pq.Array(toStrings(componentIDs)))
	if err != nil {
		return nil, fmt.Errorf("failed to read primary partners: %w", err)
	}
	return partners, nil
}

// AlternativeSuppliers returns every supplier of the component except the primary one
func (r *Repository) AlternativeSuppliers(ctx context.Context, componentID core.ComponentID, primary core.PartnerID) ([]planning.SupplierOption, error) {
	var options []planning.SupplierOption
	err := r.db.SelectContext(ctx, &options, `
		SELECT
			'ALTERNATIVE_SUPPLIER' AS type,
			sr.component_id,
			sr.partner_id AS supplier_id,
			COALESCE(p.partner_name, '') AS supplier_name,
			COALESCE(sr.lead_time_days, 0)::float8 AS lead_time_days,
			COALESCE(sr.unit_price, 0)::float8 AS unit_price,
			COALESCE(p.quality_score, 0)::float8 AS quality_score
		FROM sourcing_rules sr
		JOIN partners p ON sr.partner_id = p.partner_id
		WHERE sr.component_id = $1 AND sr.partner_id != $2
		ORDER BY sr.sourcing_id
	`, componentID, primary)
	if err != nil {
		return nil, fmt.Errorf("failed to search alternative suppliers: %w", err)
	}
	return options, nil
}

// OpenPurchaseOrderLines returns unreceived order lines of the components
func (r *Repository) OpenPurchaseOrderLines(ctx context.Context, componentIDs []core.ComponentID) ([]planning.PurchaseOrderLine, error) {
	var lines []planning.PurchaseOrderLine
	err := r.db.SelectContext(ctx, &lines, `
		SELECT po_line_id, po_id, COALESCE(sourcing_id, 0) AS sourcing_id, component_id,
		       COALESCE(quantity_ordered, 0) AS quantity_ordered,
		       COALESCE(quantity_received, 0) AS quantity_received,
		       COALESCE(unit_price, 0)::float8 AS unit_price,
		       COALESCE(line_total_value, 0)::float8 AS line_total_value,
		       line_status, expected_line_delivery_dt
		FROM purchase_order_lines
		WHERE component_id = ANY($1) AND line_status = 'OPEN'
		ORDER BY po_line_id
	`, pq.Array(toStrings(componentIDs)))
	if err != nil {
		return nil, fmt.Errorf("failed to read purchase order lines: %w", err)
	}
	return lines, nil
}
