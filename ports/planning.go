package ports

import (
	"context"

	"gosupply/domain/core"
	"gosupply/domain/planning"
)

// A missing single record is returned as a nil pointer with a nil error. Callers
// feed the absence into the pipeline as a zero or null value.

// SalesReader reads the sales history
type SalesReader interface {
	// SalesStatistics returns mean and sample std dev of units sold; blank filters are ignored.
	SalesStatistics(ctx context.Context, productID, locationID string) (planning.SalesStats, error)
	SalesLines(ctx context.Context, productID core.ProductID, w core.Window) ([]planning.SalesLine, error)
	UnitsSold(ctx context.Context, productIDs []core.ProductID, w *core.Window) (int64, error)
	BaseModelUnitsSold(ctx context.Context, baseModel string, w core.Window) (int64, error)
	// TrailingUnitsSold sums units over the `days` days ending at the latest sale of the pair.
	TrailingUnitsSold(ctx context.Context, productID, locationID string, days int) (int64, error)
}

// InventoryReader reads inventory snapshots
type InventoryReader interface {
	LatestOnHand(ctx context.Context, itemID, locationID string) (*int64, error)
	LatestTotalOnHand(ctx context.Context, itemID string) (int64, error)
	InventoryHistory(ctx context.Context, itemIDs []core.ComponentID) ([]planning.InventorySnapshot, error)
}

// MasterDataReader reads slowly changing master data
type MasterDataReader interface {
	Product(ctx context.Context, id core.ProductID) (*planning.Product, error)
	BillOfMaterials(ctx context.Context, productID core.ProductID) ([]planning.BOMLine, error)
	ComponentStandardCost(ctx context.Context, id core.ComponentID) (*float64, error)
	Lane(ctx context.Context, origin, dest core.LocationID) (*planning.Lane, error)
	HubLocation(ctx context.Context, id core.LocationID) (*planning.HubLocation, error)
}

// SourcingReader reads sourcing rules, suppliers and open purchase orders
type SourcingReader interface {
	SourcingRules(ctx context.Context, componentIDs []core.ComponentID) ([]planning.SourcingRule, error)
	PrimarySourcingRule(ctx context.Context, componentID core.ComponentID) (*planning.SourcingRule, error)
	PrimaryPartners(ctx context.Context, componentIDs []core.ComponentID) ([]planning.PrimaryPartner, error)
	AlternativeSuppliers(ctx context.Context, componentID core.ComponentID, primary core.PartnerID) ([]planning.SupplierOption, error)
	OpenPurchaseOrderLines(ctx context.Context, componentIDs []core.ComponentID) ([]planning.PurchaseOrderLine, error)
}

// DemandPlanReader reads forecasts, capacity, campaigns and trim performance
type DemandPlanReader interface {
	// FinalPlanForecast sums FINAL_PLAN forecasts with target period in [fromPeriod, toPeriod] (YYYY-MM).
	FinalPlanForecast(ctx context.Context, productID core.ProductID, fromPeriod, toPeriod string) (float64, error)
	// FinalPlanForecastsFrom sums FINAL_PLAN forecasts per product from fromPeriod on.
	FinalPlanForecastsFrom(ctx context.Context, productIDs []core.ProductID, fromPeriod string) (map[core.ProductID]float64, error)
	AvailableHours(ctx context.Context, w core.Window) (float64, error)
	TrimPerformance(ctx context.Context, baseModel string, w core.Window) ([]planning.TrimPerformance, error)
	CampaignUpliftPct(ctx context.Context, productID core.ProductID, campaigns []string) (float64, error)
}

// QualityReader reads quality incidents and customer surveys
type QualityReader interface {
	IncidentCount(ctx context.Context, componentID core.ComponentID, productIDs []core.ProductID) (int64, error)
	SurveyTotals(ctx context.Context, productID core.ProductID) (planning.SurveyTotals, error)
}

// PlanningStore is the complete read contract of the planning database
type PlanningStore interface {
	SalesReader
	InventoryReader
	MasterDataReader
	SourcingReader
	DemandPlanReader
	QualityReader
}
