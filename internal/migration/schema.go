package migration

import (
	"fmt"
	"strings"
)

// Column is one column of a planning table
type Column struct {
	Name string
	Type string
}

// Table describes a planning table. Tables are ordered so that
// referenced tables come first.
type Table struct {
	Name       string
	PrimaryKey string
	Columns    []Column
}

// ColumnNames returns the table's columns in declaration order
func (t Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// HasColumn reports whether name is a column of the table
func (t Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c.Name == name {
			return true
		}
	}
	return false
}

func (t Table) createSQL() string {
	defs := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		def := c.Name + " " + c.Type
		if c.Name == t.PrimaryKey {
			def += " PRIMARY KEY"
		}
		defs = append(defs, def)
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)", t.Name, strings.Join(defs, ",\n\t"))
}

// Lookup returns the table with the given name
func Lookup(name string) (Table, bool) {
	for _, t := range Tables {
		if t.Name == name {
			return t, true
		}
	}
	return Table{}, false
}

func cols(pairs ...string) []Column {
	out := make([]Column, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, Column{Name: pairs[i], Type: pairs[i+1]})
	}
	return out
}

// Tables is the planning schema: 23 operational tables plus customer_surveys.
var Tables = []Table{
	{Name: "products", PrimaryKey: "product_id", Columns: cols(
		"product_id", "VARCHAR(30)",
		"product_name", "VARCHAR(100)",
		"base_model", "VARCHAR(50)",
		"trim_level", "VARCHAR(50)",
		"product_category", "VARCHAR(30)",
		"lifecycle_status", "VARCHAR(30)",
		"base_price", "NUMERIC(14,2)",
		"currency", "VARCHAR(10)",
		"standard_product_cost", "NUMERIC(14,2)",
		"end_of_service_date", "DATE",
		"standard_production_time_hours", "INT",
	)},
	{Name: "components", PrimaryKey: "component_id", Columns: cols(
		"component_id", "VARCHAR(30)",
		"component_name", "VARCHAR(80)",
		"component_category", "VARCHAR(40)",
		"standard_cost", "NUMERIC(14,2)",
		"currency", "VARCHAR(10)",
		"unit_of_measure", "VARCHAR(10)",
		"is_critical_part", "BOOLEAN",
		"lifecycle_status", "VARCHAR(30)",
		"shelf_life_years", "INT",
	)},
	{Name: "locations", PrimaryKey: "location_id", Columns: cols(
		"location_id", "VARCHAR(30)",
		"location_name", "VARCHAR(100)",
		"location_type", "VARCHAR(30)",
		"address", "VARCHAR(100)",
		"dock_capacity", "INT",
		"operating_hours", "VARCHAR(30)",
		"avg_handling_hr", "NUMERIC(6,2)",
		"handling_cost_per_unit", "NUMERIC(10,2)",
	)},
	{Name: "partners", PrimaryKey: "partner_id", Columns: cols(
		"partner_id", "VARCHAR(10)",
		"partner_name", "VARCHAR(100)",
		"partner_type", "VARCHAR(20)",
		"tier", "INT",
		"address", "VARCHAR(100)",
		"quality_score", "INT",
		"on_time_delivery_pct", "NUMERIC(6,2)",
	)},
	{Name: "production_capacity", PrimaryKey: "capacity_id", Columns: cols(
		"capacity_id", "BIGINT",
		"location_id", "VARCHAR(30)",
		"capacity_date", "DATE",
		"total_capacity_hours", "NUMERIC(5,2)",
		"scheduled_hours", "NUMERIC(5,2)",
		"available_hours", "NUMERIC(5,2)",
	)},
	{Name: "chart_of_accounts", PrimaryKey: "account_id", Columns: cols(
		"account_id", "VARCHAR(30)",
		"account_name", "VARCHAR(50)",
		"parent_account_id", "VARCHAR(30)",
		"display_sequence", "VARCHAR(10)",
		"is_calculated_field", "BOOLEAN",
		"calculation_formula", "VARCHAR(100)",
		"account_type", "VARCHAR(20)",
	)},
	{Name: "incentive_programs", PrimaryKey: "incentive_id", Columns: cols(
		"incentive_id", "VARCHAR(30)",
		"incentive_name", "VARCHAR(100)",
		"incentive_type", "VARCHAR(30)",
		"value_amount", "NUMERIC(14,2)",
		"value_pct", "NUMERIC(6,2)",
		"cost_to_company", "NUMERIC(14,2)",
	)},
	{Name: "bill_of_materials", PrimaryKey: "bom_line_id", Columns: cols(
		"bom_line_id", "INT",
		"product_id", "VARCHAR(30)",
		"component_id", "VARCHAR(30)",
		"quantity_per_unit", "INT",
		"is_critical_in_bom", "BOOLEAN",
	)},
	{Name: "sourcing_rules", PrimaryKey: "sourcing_id", Columns: cols(
		"sourcing_id", "INT",
		"component_id", "VARCHAR(30)",
		"partner_id", "VARCHAR(10)",
		"is_primary_supplier", "BOOLEAN",
		"volume_pricing_json", "TEXT",
		"unit_price", "NUMERIC(14,2)",
		"currency", "VARCHAR(10)",
		"min_order_qty", "INT",
		"lead_time_days", "INT",
		"committed_capacity_monthly", "INT",
		"max_capacity_monthly", "INT",
	)},
	{Name: "transportation_lanes", PrimaryKey: "lane_id", Columns: cols(
		"lane_id", "VARCHAR(50)",
		"origin_loc_id", "VARCHAR(30)",
		"dest_loc_id", "VARCHAR(30)",
		"transport_mode", "VARCHAR(10)",
		"primary_carrier_id", "VARCHAR(10)",
		"distance_km", "INT",
		"standard_transit_hr", "NUMERIC(5,2)",
		"reliability_pct", "NUMERIC(5,2)",
		"standard_cost_per_shipment", "NUMERIC(14,2)",
		"is_primary_route", "BOOLEAN",
	)},
	{Name: "marketing_campaigns", PrimaryKey: "campaign_id", Columns: cols(
		"campaign_id", "VARCHAR(30)",
		"campaign_name", "VARCHAR(100)",
		"target_product_id", "VARCHAR(30)",
		"target_region", "VARCHAR(30)",
		"channel", "VARCHAR(30)",
		"budget", "NUMERIC(14,2)",
		"predicted_uplift_pct", "NUMERIC(5,2)",
	)},
	{Name: "component_substitutes", PrimaryKey: "substitution_id", Columns: cols(
		"substitution_id", "INT",
		"original_component_id", "VARCHAR(30)",
		"substitute_component_id", "VARCHAR(30)",
		"applicable_product_id", "VARCHAR(30)",
		"interchangeability", "VARCHAR(20)",
		"substitution_priority", "INT",
		"approval_status", "VARCHAR(30)",
		"cost_impact_pct", "NUMERIC(6,2)",
	)},
	{Name: "product_substitution_rules", PrimaryKey: "rule_id", Columns: cols(
		"rule_id", "INT",
		"source_product_id", "VARCHAR(30)",
		"target_product_id", "VARCHAR(30)",
		"substitution_rate_pct", "NUMERIC(6,2)",
		"rationale", "VARCHAR(255)",
	)},
	{Name: "sales_history", PrimaryKey: "transaction_id", Columns: cols(
		"transaction_id", "BIGINT",
		"sales_dt", "DATE",
		"product_id", "VARCHAR(30)",
		"location_id", "VARCHAR(30)",
		"units_sold", "INT",
		"selling_price_per_unit", "NUMERIC(14,2)",
		"currency", "VARCHAR(10)",
		"campaign_id", "VARCHAR(30)",
	)},
	{Name: "shipment_history", PrimaryKey: "shipment_id", Columns: cols(
		"shipment_id", "BIGINT",
		"lane_id", "VARCHAR(50)",
		"carrier_id", "VARCHAR(10)",
		"product_id", "VARCHAR(30)",
		"quantity_shipped", "INT",
		"shipped_ts", "TIMESTAMP",
		"delivered_ts", "TIMESTAMP",
		"tracking_status", "VARCHAR(30)",
	)},
	{Name: "inventory_history", PrimaryKey: "snapshot_id", Columns: cols(
		"snapshot_id", "BIGINT",
		"snapshot_ts", "TIMESTAMP",
		"location_id", "VARCHAR(30)",
		"item_id", "VARCHAR(30)",
		"item_type", "VARCHAR(20)",
		"quantity_on_hand", "INT",
		"inventory_status", "VARCHAR(30)",
	)},
	{Name: "production_history", PrimaryKey: "work_order_id", Columns: cols(
		"work_order_id", "VARCHAR(30)",
		"production_dt", "DATE",
		"location_id", "VARCHAR(30)",
		"product_id", "VARCHAR(30)",
		"quantity_produced", "INT",
		"actual_takt_time_sec", "INT",
	)},
	{Name: "quality_incidents", PrimaryKey: "incident_id", Columns: cols(
		"incident_id", "INT",
		"discovery_dt", "DATE",
		"incident_source", "VARCHAR(30)",
		"location_id", "VARCHAR(30)",
		"product_id", "VARCHAR(30)",
		"component_id", "VARCHAR(30)",
		"defect_description", "TEXT",
		"resolution_status", "VARCHAR(30)",
	)},
	{Name: "demand_forecast_log", PrimaryKey: "log_id", Columns: cols(
		"log_id", "INT",
		"log_ts", "TIMESTAMP",
		"target_period", "VARCHAR(10)",
		"product_id", "VARCHAR(30)",
		"forecast_version", "INT",
		"forecast_source", "VARCHAR(30)",
		"forecasted_qty", "INT",
		"rationale", "VARCHAR(255)",
	)},
	{Name: "purchase_order_header", PrimaryKey: "po_id", Columns: cols(
		"po_id", "VARCHAR(30)",
		"partner_id", "VARCHAR(10)",
		"destination_loc_id", "VARCHAR(30)",
		"order_dt", "DATE",
		"expected_delivery_dt", "DATE",
		"actual_receipt_dt", "DATE",
		"order_status", "VARCHAR(30)",
		"total_value", "NUMERIC(14,2)",
		"currency", "VARCHAR(10)",
		"payment_terms", "VARCHAR(30)",
	)},
	{Name: "purchase_order_lines", PrimaryKey: "po_line_id", Columns: cols(
		"po_line_id", "INT",
		"po_id", "VARCHAR(30)",
		"sourcing_id", "INT",
		"component_id", "VARCHAR(30)",
		"quantity_ordered", "INT",
		"quantity_received", "INT",
		"unit_price", "NUMERIC(14,2)",
		"line_total_value", "NUMERIC(14,2)",
		"line_status", "VARCHAR(20)",
		"expected_line_delivery_dt", "DATE",
	)},
	{Name: "internal_transfer_orders", PrimaryKey: "transfer_id", Columns: cols(
		"transfer_id", "VARCHAR(30)",
		"requesting_loc_id", "VARCHAR(30)",
		"supplying_loc_id", "VARCHAR(30)",
		"product_id", "VARCHAR(30)",
		"quantity_requested", "INT",
		"quantity_shipped", "INT",
		"order_status", "VARCHAR(30)",
		"related_shipment_id", "BIGINT",
		"created_ts", "TIMESTAMP",
	)},
	{Name: "sales_incentive_map", PrimaryKey: "map_id", Columns: cols(
		"map_id", "BIGINT",
		"transaction_id", "BIGINT",
		"incentive_id", "VARCHAR(30)",
		"redeemed_ts", "TIMESTAMP",
	)},
	{Name: "customer_surveys", PrimaryKey: "survey_id", Columns: cols(
		"survey_id", "BIGINT",
		"product_id", "VARCHAR(30)",
		"survey_dt", "DATE",
		"survey_score", "NUMERIC(6,2)",
		"response_count", "INT",
	)},
}

// indexes back the hot lookups of the planning reads
var indexes = []string{
	"CREATE INDEX IF NOT EXISTS idx_sales_history_product_dt ON sales_history(product_id, sales_dt)",
	"CREATE INDEX IF NOT EXISTS idx_inventory_history_item_loc_ts ON inventory_history(item_id, location_id, snapshot_ts)",
	"CREATE INDEX IF NOT EXISTS idx_demand_forecast_product_period ON demand_forecast_log(product_id, target_period)",
	"CREATE INDEX IF NOT EXISTS idx_sourcing_rules_component ON sourcing_rules(component_id)",
	"CREATE INDEX IF NOT EXISTS idx_purchase_order_lines_component ON purchase_order_lines(component_id, line_status)",
	"CREATE INDEX IF NOT EXISTS idx_transportation_lanes_od ON transportation_lanes(origin_loc_id, dest_loc_id)",
	"CREATE INDEX IF NOT EXISTS idx_production_capacity_date ON production_capacity(capacity_date)",
	"CREATE INDEX IF NOT EXISTS idx_quality_incidents_component ON quality_incidents(component_id)",
	"CREATE INDEX IF NOT EXISTS idx_customer_surveys_product ON customer_surveys(product_id)",
}
