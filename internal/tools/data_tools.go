package tools

import (
	"context"
	stderrors "errors"

	"gosupply/domain/core"
	"gosupply/domain/intent"
	"gosupply/domain/planning"
)

type salesHistoryArgs struct {
	ProductID  string `json:"product_id,omitempty"`
	LocationID string `json:"location_id,omitempty"`
}

type itemLocationArgs struct {
	ItemID     string `json:"item_id"`
	LocationID string `json:"location_id"`
}

type productArgs struct {
	ProductID string `json:"product_id"`
}

type componentArgs struct {
	ComponentID string `json:"component_id"`
}

type componentListArgs struct {
	ComponentIDs []string `json:"component_ids"`
}

type campaignArgs struct {
	ProductID         string   `json:"product_id"`
	UpcomingCampaigns []string `json:"upcoming_campaigns"`
	BaselineForecast  float64  `json:"baseline_forecast"`
}

type campaignUplift struct {
	UpliftPct         float64 `json:"uplift_pct"`
	CampaignUpliftQty int64   `json:"campaign_uplift_qty"`
}

type alternativesArgs struct {
	ComponentID       string `json:"component_id"`
	PrimarySupplierID string `json:"primary_supplier_id,omitempty"`
}

// trimPerformanceArgs is checked by schema only; an unparseable period falls back to one year
type trimPerformanceArgs struct {
	BaseModel string `json:"base_model"`
	Period    string `json:"period"`
}

type shiftArgs struct {
	Least  planning.TrimRef `json:"least_efficient"`
	Most   planning.TrimRef `json:"most_efficient"`
	Period string           `json:"period"`
}

type lifetimeArgs struct {
	AffectedProducts []planning.AffectedProduct `json:"affected_products"`
	ComponentID      string                     `json:"component_id"`
}

type onHand struct {
	QuantityOnHand *int64 `json:"quantity_on_hand"`
}

var trimRefProp = prop{
	"type":       "object",
	"properties": map[string]prop{"product_id": idProp, "production_time": numberProp},
	"required":   []string{"product_id", "production_time"},
}

func registerDataTools(r *Registry, d Deps) error {
	p := d.Planner
	store := p.Store()
	return stderrors.Join(
		Register(r, Spec{Name: "calculate_sales_history", Category: CategoryData,
			Description: "Mean and sample standard deviation of units sold per transaction; blank filters are ignored."},
			object(map[string]prop{"product_id": optStrProp, "location_id": optStrProp}),
			func(ctx context.Context, a salesHistoryArgs) (planning.SalesStats, error) {
				return store.SalesStatistics(ctx, a.ProductID, a.LocationID)
			}),

		Register(r, Spec{Name: "read_inventory_history", Category: CategoryData,
			Description: "Latest on-hand quantity of an item at a location; null when never counted."},
			object(map[string]prop{"item_id": idProp, "location_id": idProp}, "item_id", "location_id"),
			func(ctx context.Context, a itemLocationArgs) (onHand, error) {
				qty, err := store.LatestOnHand(ctx, a.ItemID, a.LocationID)
				return onHand{QuantityOnHand: qty}, err
			}),

		Register(r, Spec{Name: "read_products", Category: CategoryData,
			Description: "Product master record; null when unknown."},
			object(map[string]prop{"product_id": idProp}, "product_id"),
			func(ctx context.Context, a productArgs) (*planning.Product, error) {
				return store.Product(ctx, core.ProductID(a.ProductID))
			}),

		Register(r, Spec{Name: "evaluate_production_capacity", Category: CategoryData,
			Description: "Required against available production hours from today through the due date."},
			taskSchema(intent.TaskProductionFeasibility),
			func(ctx context.Context, a intent.ProductionFeasibilityArgs) (planning.CapacityCheck, error) {
				return p.CapacityCheck(ctx, core.ProductID(a.ProductID), a.RequestedQty, a.DueDate)
			}),

		Register(r, Spec{Name: "read_bill_of_materials", Category: CategoryData,
			Description: "Component lines of a product's bill of materials."},
			object(map[string]prop{"product_id": idProp}, "product_id"),
			func(ctx context.Context, a productArgs) ([]planning.BOMLine, error) {
				return store.BillOfMaterials(ctx, core.ProductID(a.ProductID))
			}),

		Register(r, Spec{Name: "read_inventory_history_by_components", Category: CategoryData,
			Description: "Every inventory snapshot of the given components, oldest first."},
			object(map[string]prop{"component_ids": idListProp}, "component_ids"),
			func(ctx context.Context, a componentListArgs) ([]planning.InventorySnapshot, error) {
				return store.InventoryHistory(ctx, componentIDs(a.ComponentIDs))
			}),

		Register(r, Spec{Name: "read_purchase_order_lines", Category: CategoryData,
			Description: "Open purchase order lines of the given components."},
			object(map[string]prop{"component_ids": idListProp}, "component_ids"),
			func(ctx context.Context, a componentListArgs) ([]planning.PurchaseOrderLine, error) {
				return store.OpenPurchaseOrderLines(ctx, componentIDs(a.ComponentIDs))
			}),

		Register(r, Spec{Name: "read_sourcing_rules", Category: CategoryData,
			Description: "Sourcing rules of the given components."},
			object(map[string]prop{"component_ids": idListProp}, "component_ids"),
			func(ctx context.Context, a componentListArgs) ([]planning.SourcingRule, error) {
				return store.SourcingRules(ctx, componentIDs(a.ComponentIDs))
			}),

		Register(r, Spec{Name: "read_marketing_campaigns", Category: CategoryData,
			Description: "Summed uplift of the named campaigns and the extra units on top of a baseline forecast."},
			object(map[string]prop{
				"product_id":         idProp,
				"upcoming_campaigns": strListProp,
				"baseline_forecast":  prop{"type": "number", "minimum": 0},
			}, "product_id", "upcoming_campaigns", "baseline_forecast"),
			func(ctx context.Context, a campaignArgs) (campaignUplift, error) {
				pct, qty, err := p.CampaignUplift(ctx, core.ProductID(a.ProductID), a.UpcomingCampaigns, a.BaselineForecast)
				return campaignUplift{UpliftPct: pct, CampaignUpliftQty: qty}, err
			}),

		Register(r, Spec{Name: "retrieve_primary_partners", Category: CategoryData,
			Description: "Primary supplier of each given component."},
			object(map[string]prop{"component_ids": idListProp}, "component_ids"),
			func(ctx context.Context, a componentListArgs) ([]planning.PrimaryPartner, error) {
				return store.PrimaryPartners(ctx, componentIDs(a.ComponentIDs))
			}),

		Register(r, Spec{Name: "search_alternative_suppliers", Category: CategoryData,
			Description: "Suppliers of a component other than the primary one, with lead time, price and quality."},
			object(map[string]prop{"component_id": idProp, "primary_supplier_id": optStrProp}, "component_id"),
			func(ctx context.Context, a alternativesArgs) ([]planning.SupplierOption, error) {
				return store.AlternativeSuppliers(ctx, core.ComponentID(a.ComponentID), core.PartnerID(a.PrimarySupplierID))
			}),

		Register(r, Spec{Name: "model_transportation_routes", Category: CategoryData,
			Description: "The direct lane and the hub route between a source and a dealer."},
			taskSchema(intent.TaskRouteOptimization),
			func(ctx context.Context, a intent.RouteOptimizationArgs) (planning.RouteModels, error) {
				return p.ModelRoutes(ctx, core.LocationID(a.SourceLocID), core.LocationID(a.HubLocID), core.LocationID(a.DealerLocID))
			}),

		Register(r, Spec{Name: "aggregate_trim_performance", Category: CategoryData,
			Description: "Unit cost, production time and margin of each trim of a base model over the trailing period."},
			object(map[string]prop{"base_model": idProp, "period": periodProp}, "base_model", "period"),
			func(ctx context.Context, a trimPerformanceArgs) ([]planning.TrimPerformance, error) {
				return p.TrimPerformance(ctx, a.BaseModel, a.Period)
			}),

		Register(r, Spec{Name: "calculate_optimal_shift", Category: CategoryData,
			Description: "Shift from the least to the most efficient trim, bounded by planned demand and capacity over the period ahead."},
			object(map[string]prop{"least_efficient": trimRefProp, "most_efficient": trimRefProp, "period": periodProp},
				"least_efficient", "most_efficient", "period"),
			func(ctx context.Context, a shiftArgs) (planning.ShiftPlan, error) {
				return p.OptimalShift(ctx, a.Least, a.Most, a.Period)
			}),

		Register(r, Spec{Name: "calculate_lifetime_demand", Category: CategoryData,
			Description: "Remaining production and service demand of a component across the products that use it."},
			object(map[string]prop{"affected_products": prop{
				"type": "array",
				"items": prop{
					"type":       "object",
					"properties": map[string]prop{"product_id": idProp, "end_of_service_date": optStrProp},
					"required":   []string{"product_id"},
				},
			}, "component_id": idProp}, "affected_products", "component_id"),
			func(ctx context.Context, a lifetimeArgs) (planning.LifetimeDemand, error) {
				products := make([]core.ProductID, len(a.AffectedProducts))
				for i, ap := range a.AffectedProducts {
					products[i] = ap.ProductID
				}
				return p.LifetimeDemand(ctx, core.ComponentID(a.ComponentID), products)
			}),

		Register(r, Spec{Name: "get_component_sourcing_data", Category: CategoryData,
			Description: "On-hand stock, primary sourcing terms and obsolescence cost of a component."},
			object(map[string]prop{"component_id": idProp}, "component_id"),
			func(ctx context.Context, a componentArgs) (planning.ComponentSourcingData, error) {
				return p.ComponentSourcingData(ctx, core.ComponentID(a.ComponentID))
			}),
	)
}
