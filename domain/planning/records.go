package planning

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"gosupply/domain/core"
)

// ============================================================================
// READ CONTRACT (rows returned by the data source, field sets are fixed)
// ============================================================================

// Product is a row of the product master
type Product struct {
	ProductID                   core.ProductID `db:"product_id" json:"product_id"`
	ProductName                 string         `db:"product_name" json:"product_name"`
	BaseModel                   string         `db:"base_model" json:"base_model"`
	TrimLevel                   string         `db:"trim_level" json:"trim_level"`
	ProductCategory             string         `db:"product_category" json:"product_category"`
	LifecycleStatus             string         `db:"lifecycle_status" json:"lifecycle_status"`
	BasePrice                   float64        `db:"base_price" json:"base_price"`
	Currency                    string         `db:"currency" json:"currency"`
	StandardProductCost         float64        `db:"standard_product_cost" json:"standard_product_cost"`
	EndOfServiceDate            *time.Time     `db:"end_of_service_date" json:"end_of_service_date,omitempty"`
	StandardProductionTimeHours float64        `db:"standard_production_time_hours" json:"standard_production_time_hours"`
}

// InventorySnapshot is one point-in-time on-hand quantity
type InventorySnapshot struct {
	SnapshotID      int64           `db:"snapshot_id" json:"snapshot_id"`
	SnapshotTS      time.Time       `db:"snapshot_ts" json:"snapshot_ts"`
	LocationID      core.LocationID `db:"location_id" json:"location_id"`
	ItemID          string          `db:"item_id" json:"item_id"`
	ItemType        string          `db:"item_type" json:"item_type"`
	QuantityOnHand  int64           `db:"quantity_on_hand" json:"quantity_on_hand"`
	InventoryStatus string          `db:"inventory_status" json:"inventory_status"`
}

// BOMLine is a single component requirement of a product
type BOMLine struct {
	BOMLineID       int64            `db:"bom_line_id" json:"bom_line_id"`
	ProductID       core.ProductID   `db:"product_id" json:"product_id"`
	ComponentID     core.ComponentID `db:"component_id" json:"component_id"`
	QuantityPerUnit int64            `db:"quantity_per_unit" json:"quantity_per_unit"`
	IsCriticalInBOM bool             `db:"is_critical_in_bom" json:"is_critical_in_bom"`
}

// PurchaseOrderLine is an open (unreceived) order line
type PurchaseOrderLine struct {
	POLineID               int64            `db:"po_line_id" json:"po_line_id"`
	POID                   string           `db:"po_id" json:"po_id"`
	SourcingID             int64            `db:"sourcing_id" json:"sourcing_id"`
	ComponentID            core.ComponentID `db:"component_id" json:"component_id"`
	QuantityOrdered        int64            `db:"quantity_ordered" json:"quantity_ordered"`
	QuantityReceived       int64            `db:"quantity_received" json:"quantity_received"`
	UnitPrice              float64          `db:"unit_price" json:"unit_price"`
	LineTotalValue         float64          `db:"line_total_value" json:"line_total_value"`
	LineStatus             string           `db:"line_status" json:"line_status"`
	ExpectedLineDeliveryDT *time.Time       `db:"expected_line_delivery_dt" json:"expected_line_delivery_dt,omitempty"`
}

// SourcingRule binds a component to a supplier with commercial terms
type SourcingRule struct {
	SourcingID               int64            `db:"sourcing_id" json:"sourcing_id"`
	ComponentID              core.ComponentID `db:"component_id" json:"component_id"`
	PartnerID                core.PartnerID   `db:"partner_id" json:"partner_id"`
	IsPrimarySupplier        bool             `db:"is_primary_supplier" json:"is_primary_supplier"`
	VolumePricingJSON        string           `db:"volume_pricing_json" json:"volume_pricing_json"`
	UnitPrice                float64          `db:"unit_price" json:"unit_price"`
	Currency                 string           `db:"currency" json:"currency"`
	MinOrderQty              int64            `db:"min_order_qty" json:"min_order_qty"`
	LeadTimeDays             int64            `db:"lead_time_days" json:"lead_time_days"`
	CommittedCapacityMonthly int64            `db:"committed_capacity_monthly" json:"committed_capacity_monthly"`
	MaxCapacityMonthly       int64            `db:"max_capacity_monthly" json:"max_capacity_monthly"`
}

// PrimaryPartner is the primary supplier of a component
type PrimaryPartner struct {
	ComponentID core.ComponentID `db:"component_id" json:"component_id"`
	PartnerID   core.PartnerID   `db:"partner_id" json:"partner_id"`
}

// VolumeTier is one step of a volume-discount price list
type VolumeTier struct {
	MinQty int64   `json:"min_qty"`
	Price  float64 `json:"price"`
}

// ParseVolumePricing decodes the {"tiers": [...]} document stored on sourcing rules.
// A blank document yields no tiers.
func ParseVolumePricing(raw string) ([]VolumeTier, error) {
	if raw == "" {
		return nil, nil
	}
	var doc struct {
		Tiers []VolumeTier `json:"tiers"`
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("%w: volume_pricing_json: %v", core.ErrInvalidArgument, err)
	}
	return doc.Tiers, nil
}

// SortTiersDescending returns a copy of tiers ordered by MinQty, largest first.
func SortTiersDescending(tiers []VolumeTier) []VolumeTier {
	out := make([]VolumeTier, len(tiers))
	copy(out, tiers)
	sort.SliceStable(out, func(i, j int) bool { return out[i].MinQty > out[j].MinQty })
	return out
}

// SupplierOption is an alternative supplier offer for a component
type SupplierOption struct {
	Type         string           `db:"type" json:"type"` // always ALTERNATIVE_SUPPLIER
	ComponentID  core.ComponentID `db:"component_id" json:"component_id"`
	SupplierID   core.PartnerID   `db:"supplier_id" json:"supplier_id"`
	SupplierName string           `db:"supplier_name" json:"supplier_name"`
	LeadTimeDays float64          `db:"lead_time_days" json:"lead_time_days"`
	UnitPrice    float64          `db:"unit_price" json:"unit_price"`
	QualityScore float64          `db:"quality_score" json:"quality_score"` // 0-100
}

// Lane is a transportation lane between two locations
type Lane struct {
	LaneID          string  `db:"lane_id" json:"lane_id"`
	TransitHours    float64 `db:"standard_transit_hr" json:"standard_transit_hr"`
	CostPerShipment float64 `db:"standard_cost_per_shipment" json:"standard_cost_per_shipment"`
}

// HubLocation carries the handling profile of a cross-dock location
type HubLocation struct {
	LocationID    core.LocationID `db:"location_id" json:"location_id"`
	HandlingHours float64         `db:"avg_handling_hr" json:"avg_handling_hr"`
	HandlingCost  float64         `db:"handling_cost_per_unit" json:"handling_cost_per_unit"`
}

// TrimPerformance is the aggregated margin profile of one trim over a period
type TrimPerformance struct {
	ProductID                   core.ProductID `db:"product_id" json:"product_id"`
	StandardProductCost         float64        `db:"standard_product_cost" json:"standard_product_cost"`
	StandardProductionTimeHours float64        `db:"standard_production_time_hours" json:"standard_production_time_hours"`
	UnitMargin                  float64        `db:"unit_margin" json:"unit_margin"`
}

// SalesLine is revenue, variable cost and units of one sales transaction
type SalesLine struct {
	Revenue      float64 `db:"revenue" json:"revenue"`
	VariableCost float64 `db:"variable_cost" json:"variable_cost"`
	Units        float64 `db:"units" json:"units"`
}

// SurveyTotals are summed customer survey results
type SurveyTotals struct {
	ScoreSum      float64 `db:"score_sum" json:"score_sum"`
	ResponseCount float64 `db:"response_count" json:"response_count"`
}

// AffectedProduct is a product impacted by a component discontinuation
type AffectedProduct struct {
	ProductID        core.ProductID `json:"product_id"`
	EndOfServiceDate string         `json:"end_of_service_date,omitempty"`
}

// ComponentSourcingData gathers everything an EOL buy calculation needs
type ComponentSourcingData struct {
	ComponentID             core.ComponentID `json:"component_id"`
	CurrentInventory        int64            `json:"current_inventory"`
	HasSourcingRule         bool             `json:"has_sourcing_rule"`
	MinOrderQty             int64            `json:"min_order_qty"`
	VolumePricing           []VolumeTier     `json:"volume_pricing"`
	ObsolescenceCostPerUnit float64          `json:"obsolescence_cost_per_unit"`
}

// SalesStats is the mean and standard deviation of units sold per transaction.
// Mean is nil when no sales matched.
type SalesStats struct {
	Mean              *float64 `db:"mean" json:"mean"`
	StandardDeviation float64  `db:"standard_deviation" json:"standard_deviation"`
}
