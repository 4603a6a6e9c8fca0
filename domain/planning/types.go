package planning

import (
	"time"

	"gosupply/domain/core"
)

// ============================================================================
// METRICS & CONSTRAINTS
// ============================================================================

// MetricRecord is a named numeric result and the keys it was computed for.
// A nil Value means the metric is undefined (null), e.g. a zero denominator.
type MetricRecord struct {
	Name  string            `json:"name"`
	Keys  map[string]string `json:"keys,omitempty"`
	Value *float64          `json:"value"`
}

// NewMetric builds a MetricRecord from alternating key/value pairs.
func NewMetric(name string, value *float64, keyvals ...string) MetricRecord {
	rec := MetricRecord{Name: name, Value: value}
	if len(keyvals) > 1 {
		rec.Keys = make(map[string]string, len(keyvals)/2)
		for i := 0; i+1 < len(keyvals); i += 2 {
			rec.Keys[keyvals[i]] = keyvals[i+1]
		}
	}
	return rec
}

// IsNull reports whether the metric has no defined value
func (m MetricRecord) IsNull() bool { return m.Value == nil }

// Float returns a pointer to v, used for nullable metric values
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v
func Int(v int64) *int64 { return &v }

// Well-known constraint names
const (
	ConstraintMarketDemandQty         = "market_demand_qty"
	ConstraintProductionCapacityHours = "production_capacity_hours"
	ConstraintMinOrderQty             = "min_order_qty"
)

// ConstraintSet maps a constraint name to its numeric bound
type ConstraintSet map[string]float64

// Get returns the bound; absent SUM-style constraints read as zero.
func (c ConstraintSet) Get(name string) float64 {
	if c == nil {
		return 0
	}
	return c[name]
}

// Binding constraint labels
const (
	BindingMarketDemand       = "Market Demand Forecast"
	BindingProductionCapacity = "Production Capacity"
	BindingRequestingShortage = "Requesting Shortfall"
	BindingSupplyingSurplus   = "Supplying Surplus"
)

// ============================================================================
// CANDIDATE PLANS
// ============================================================================

// TrimRef identifies a trim and its unit production time
type TrimRef struct {
	ProductID           core.ProductID `json:"product_id"`
	ProductionTimeHours float64        `json:"production_time"`
}

// QuantityTarget is a product and a whole-unit quantity
type QuantityTarget struct {
	ProductID core.ProductID `json:"product_id"`
	Quantity  int64          `json:"quantity"`
}

// ShiftPlan moves production hours from one trim to another
type ShiftPlan struct {
	Reduce            QuantityTarget `json:"reduce_target"`
	Reallocate        QuantityTarget `json:"reallocate_to"`
	BindingConstraint string         `json:"binding_constraint"`
	MaxProducibleQty  float64        `json:"max_producible_qty"`
	HoursFreed        float64        `json:"hours_freed"`
	Period            core.Period    `json:"period"`
}

// ShiftImpact is the projected margin effect of a ShiftPlan
type ShiftImpact struct {
	LostMargin    float64 `json:"lost_margin"`
	GainedMargin  float64 `json:"gained_margin"`
	NetMarginGain float64 `json:"net_margin_gain"`
}

// CostedQuantity is one evaluated EOL order quantity
type CostedQuantity struct {
	Quantity         int64   `json:"quantity"`
	UnitPrice        float64 `json:"unit_price"`
	PurchaseCost     float64 `json:"purchase_cost"`
	SurplusUnits     int64   `json:"surplus_units"`
	ObsolescenceCost float64 `json:"obsolescence_cost"`
	TotalCost        float64 `json:"total_cost"`
}

// EOLBuyPlan is the minimum total-cost-of-ownership final buy
type EOLBuyPlan struct {
	NetRequired int64            `json:"net_required"`
	Chosen      CostedQuantity   `json:"chosen"`
	Candidates  []CostedQuantity `json:"candidates"`
	Rationale   string           `json:"rationale"`
}

// TransferPlan moves stock between two locations
type TransferPlan struct {
	ProductID         core.ProductID  `json:"product_id"`
	From              core.LocationID `json:"supplying_loc_id"`
	To                core.LocationID `json:"requesting_loc_id"`
	Quantity          int64           `json:"quantity"`
	RequestingTarget  int64           `json:"requesting_target"`
	SupplyingTarget   int64           `json:"supplying_target"`
	Shortfall         int64           `json:"shortfall"`
	Surplus           int64           `json:"surplus"`
	BindingConstraint string          `json:"binding_constraint"`
}

// CapacityCheck answers whether a quantity can be produced by a due date
type CapacityCheck struct {
	ProductID           core.ProductID `json:"product_id"`
	RequestedQty        int64          `json:"requested_qty"`
	RequiredHours       float64        `json:"required_hours"`
	TotalAvailableHours float64        `json:"total_available_hours"`
	IsCapacityAvailable bool           `json:"is_capacity_available"`
}

// LifetimeDemand is the remaining demand for a discontinued component
type LifetimeDemand struct {
	ProductionDemand   int64   `json:"production_demand"`
	ServiceDemand      int64   `json:"service_demand"`
	TotalRequiredUnits int64   `json:"total_required_units"`
	FailureRate        float64 `json:"failure_rate"`
}

// ============================================================================
// SCORED OPTIONS & COMPARISONS
// ============================================================================

// ScoredOption is a supplier alternative annotated with its normalized score
type ScoredOption struct {
	Option       SupplierOption `json:"option"`
	QualityNorm  float64        `json:"quality_norm"`
	LeadTimeNorm float64        `json:"lead_time_norm"`
	CostNorm     float64        `json:"cost_norm"`
	Score        float64        `json:"score"` // [0,1], 4 decimals
}

// Supplier selection outcomes
const (
	SupplierSelected  = "SUPPLIER_SELECTED"
	SupplyUnavailable = "SUPPLY_UNAVAILABLE"
)

// SupplierSelection is the result of scoring alternative suppliers
type SupplierSelection struct {
	Status        string         `json:"status"`
	RequiredQty   int64          `json:"required_qty"`
	Selected      *ScoredOption  `json:"selected,omitempty"`
	Scored        []ScoredOption `json:"scored_options"`
	EstimatedCost *float64       `json:"estimated_cost,omitempty"`
}

// RouteLeg is one lane of a hub route; LaneID is nil when no lane was found
type RouteLeg struct {
	LaneID       *string `json:"lane_id"`
	TransitHours float64 `json:"transit_hr"`
	Cost         float64 `json:"cost"`
}

// Found reports whether the lane exists in the data source
func (l RouteLeg) Found() bool { return l.LaneID != nil }

// HubStop is the handling step at the hub
type HubStop struct {
	LocationID    core.LocationID `json:"location_id"`
	HandlingHours float64         `json:"handling_hr"`
	HandlingCost  float64         `json:"handling_cost"`
	Found         bool            `json:"found"`
}

// DirectRoute is the current plant-to-dealer lane
type DirectRoute struct {
	LaneID            string  `json:"lane_id"`
	TotalTransitHours float64 `json:"total_transit_hr"`
	DirectCost        float64 `json:"direct_cost"`
}

// HubRoute is plant → hub → dealer
type HubRoute struct {
	Leg1 RouteLeg `json:"leg1"`
	Hub  HubStop  `json:"hub"`
	Leg2 RouteLeg `json:"leg2"`
}

// Measurable reports whether any part of the hub route was found
func (h HubRoute) Measurable() bool {
	return h.Leg1.Found() || h.Hub.Found || h.Leg2.Found()
}

// RouteModels pairs the current and the proposed route; Current is nil when
// there is no direct lane
type RouteModels struct {
	Current  *DirectRoute `json:"current_route_model"`
	Proposed HubRoute     `json:"new_route_model"`
}

// Route decisions
const (
	RouteDirect  = "DIRECT_ROUTE"
	RouteHub     = "HUB_ROUTE"
	RouteNoRoute = "NO_ROUTE_FOUND"
)

// RouteComparison is the cost comparison of the two routes
type RouteComparison struct {
	Decision            string   `json:"decision"`
	TimeValuePerHour    float64  `json:"time_value_per_hour"`
	DirectHours         float64  `json:"direct_hours"`
	DirectCost          float64  `json:"direct_cost"`
	DirectEffectiveCost *float64 `json:"direct_effective_cost"`
	HubHours            float64  `json:"hub_hours"`
	HubCost             float64  `json:"hub_cost"`
	HubEffectiveCost    *float64 `json:"hub_effective_cost"`
}

// TrimEfficiency is a trim annotated with margin/cost
type TrimEfficiency struct {
	TrimPerformance
	EfficiencyRatio float64 `json:"efficiency_ratio"`
}

// TrimOutliers are the extremes of a trim line-up by efficiency ratio
type TrimOutliers struct {
	MostEfficient  TrimEfficiency `json:"most_efficient_trim"`
	LeastEfficient TrimEfficiency `json:"least_efficient_trim"`
}

// ============================================================================
// FORECAST & SIMULATION
// ============================================================================

// SimulationKey identifies a simulated demand distribution
type SimulationKey struct {
	Model    string `json:"model"`
	Location string `json:"location"`
}

// SimulationResult summarizes simulated per-period demand
type SimulationResult struct {
	Key  SimulationKey `json:"key"`
	Runs int           `json:"runs"`
	Mean float64       `json:"mean"`
	P10  float64       `json:"p10"`
	P50  float64       `json:"p50"`
	P90  float64       `json:"p90"`
}

// DemandForecast is a baseline forecast adjusted for campaign uplift
type DemandForecast struct {
	ProductID         core.ProductID    `json:"product_id"`
	TargetPeriod      string            `json:"target_period"`
	Baseline          float64           `json:"baseline"`
	UpliftPct         float64           `json:"uplift_pct"`
	CampaignUpliftQty int64             `json:"campaign_uplift_qty"`
	Forecast          float64           `json:"forecast"`
	Simulation        *SimulationResult `json:"simulation,omitempty"`
}

// ============================================================================
// RECOMMENDATIONS
// ============================================================================

// Scenario names a decision pipeline
type Scenario string

const (
	ScenarioTrimMix    Scenario = "TRIM_MIX_REBALANCE"
	ScenarioSourcing   Scenario = "SOURCING_MITIGATION"
	ScenarioRoute      Scenario = "ROUTE_OPTIMIZATION"
	ScenarioEOLBuy     Scenario = "EOL_BUY"
	ScenarioTransfer   Scenario = "INVENTORY_TRANSFER"
	ScenarioProduction Scenario = "PRODUCTION_FEASIBILITY"
	ScenarioForecast   Scenario = "DEMAND_FORECAST"
)

// ActionKind is a verb in a recommendation action list
type ActionKind string

const (
	ActionReduceProduction   ActionKind = "REDUCE_PRODUCTION"
	ActionIncreaseProduction ActionKind = "INCREASE_PRODUCTION"
	ActionPlaceOrder         ActionKind = "PLACE_ORDER"
	ActionSwitchSupplier     ActionKind = "SWITCH_SUPPLIER"
	ActionEscalate           ActionKind = "ESCALATE"
	ActionRerouteShipments   ActionKind = "REROUTE_SHIPMENTS"
	ActionKeepRoute          ActionKind = "KEEP_CURRENT_ROUTE"
	ActionTransferInventory  ActionKind = "TRANSFER_INVENTORY"
	ActionNoAction           ActionKind = "NO_ACTION"
	ActionScheduleProduction ActionKind = "SCHEDULE_PRODUCTION"
	ActionPlanSupply         ActionKind = "PLAN_SUPPLY"
)

// Action is one step the planner should take
type Action struct {
	Kind     ActionKind `json:"kind"`
	Target   string     `json:"target,omitempty"`
	Quantity *int64     `json:"quantity,omitempty"`
	Note     string     `json:"note,omitempty"`
}

// Details is the projected-impact block of a recommendation.
// Only the fields relevant to a scenario are set.
type Details struct {
	ProjectedNetMarginGain *float64       `json:"projected_net_margin_gain,omitempty"`
	ExpectedCostSavings    *float64       `json:"expected_cost_savings,omitempty"`
	ProjectedTotalCost     *float64       `json:"projected_total_cost,omitempty"`
	BaselineCost           *float64       `json:"baseline_cost,omitempty"`
	Quantity               *int64         `json:"quantity,omitempty"`
	Score                  *float64       `json:"score,omitempty"`
	BindingConstraint      string         `json:"binding_constraint,omitempty"`
	Metrics                []MetricRecord `json:"metrics,omitempty"`
}

// RecommendationRecord is the terminal artifact returned to the end user
type RecommendationRecord struct {
	ID            core.ID   `json:"id"`
	Scenario      Scenario  `json:"scenario"`
	Actions       []Action  `json:"actions"`
	Justification string    `json:"justification"`
	Details       Details   `json:"details"`
	CreatedAt     time.Time `json:"created_at"`
}
