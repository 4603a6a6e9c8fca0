package testkit

import (
	"time"

	"gosupply/domain/core"
	"gosupply/domain/planning"
)

// FixtureNow is the frozen "today" of the fixture dataset
var FixtureNow = time.Date(2025, time.January, 15, 12, 0, 0, 0, time.UTC)

// Clock returns FixtureNow
func Clock() time.Time { return FixtureNow }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Fixture builds a small dealer network with two sedan trims, an SUV stocked
// at a dealer and a hub, and two components (C-100 in shortage, C-200 going
// end of life). All dates are relative to FixtureNow.
func Fixture() *MemoryStore {
	m := NewMemoryStore()

	m.Products["SEDAN-BASE"] = planning.Product{
		ProductID: "SEDAN-BASE", ProductName: "Sedan Base", BaseModel: "SEDAN", TrimLevel: "BASE",
		LifecycleStatus: "ACTIVE", BasePrice: 22000, Currency: "USD",
		StandardProductCost: 20000, StandardProductionTimeHours: 10,
	}
	m.Products["SEDAN-LUX"] = planning.Product{
		ProductID: "SEDAN-LUX", ProductName: "Sedan Luxury", BaseModel: "SEDAN", TrimLevel: "LUX",
		LifecycleStatus: "ACTIVE", BasePrice: 36000, Currency: "USD",
		StandardProductCost: 30000, StandardProductionTimeHours: 12,
	}
	m.Products["SUV-X"] = planning.Product{
		ProductID: "SUV-X", ProductName: "SUV X", BaseModel: "SUV", TrimLevel: "X",
		LifecycleStatus: "ACTIVE", BasePrice: 40000, Currency: "USD",
		StandardProductCost: 32000, StandardProductionTimeHours: 14,
	}

	m.BOM = []planning.BOMLine{
		{BOMLineID: 1, ProductID: "SEDAN-BASE", ComponentID: "C-200", QuantityPerUnit: 2},
		{BOMLineID: 2, ProductID: "SEDAN-LUX", ComponentID: "C-100", QuantityPerUnit: 4, IsCriticalInBOM: true},
		{BOMLineID: 3, ProductID: "SEDAN-LUX", ComponentID: "C-200", QuantityPerUnit: 1},
	}
	m.ComponentCosts["C-100"] = 95
	m.ComponentCosts["C-200"] = 15

	m.AddLane("PLANT-1", "DLR-1", planning.Lane{LaneID: "L-D", TransitHours: 48, CostPerShipment: 2000})
	m.AddLane("PLANT-1", "HUB-1", planning.Lane{LaneID: "L-1", TransitHours: 20, CostPerShipment: 800})
	m.AddLane("HUB-1", "DLR-1", planning.Lane{LaneID: "L-2", TransitHours: 16, CostPerShipment: 600})
	m.Hubs["HUB-1"] = planning.HubLocation{LocationID: "HUB-1", HandlingHours: 4, HandlingCost: 100}

	m.Partners["S1"] = Partner{Name: "Primary Parts", Quality: 95}
	m.Partners["S2"] = Partner{Name: "Beta Components", Quality: 80}
	m.Partners["S3"] = Partner{Name: "Gamma Supply", Quality: 90}
	m.Rules = []planning.SourcingRule{
		{SourcingID: 1, ComponentID: "C-100", PartnerID: "S1", IsPrimarySupplier: true, UnitPrice: 100, MinOrderQty: 50, LeadTimeDays: 15},
		{SourcingID: 2, ComponentID: "C-100", PartnerID: "S2", UnitPrice: 90, MinOrderQty: 50, LeadTimeDays: 10},
		{SourcingID: 3, ComponentID: "C-100", PartnerID: "S3", UnitPrice: 80, MinOrderQty: 50, LeadTimeDays: 20},
		{
			SourcingID: 4, ComponentID: "C-200", PartnerID: "S1", IsPrimarySupplier: true, UnitPrice: 12,
			MinOrderQty: 100, LeadTimeDays: 30,
			VolumePricingJSON: `{"tiers":[{"min_qty":0,"price":12},{"min_qty":200,"price":10}]}`,
		},
	}
	m.POLines = []planning.PurchaseOrderLine{
		{POLineID: 1, POID: "PO-1", SourcingID: 1, ComponentID: "C-100", QuantityOrdered: 200, QuantityReceived: 50, UnitPrice: 100, LineTotalValue: 20000, LineStatus: "OPEN"},
		{POLineID: 2, POID: "PO-1", SourcingID: 4, ComponentID: "C-200", QuantityOrdered: 100, QuantityReceived: 100, UnitPrice: 12, LineTotalValue: 1200, LineStatus: "CLOSED"},
	}

	m.Sales = []Sale{
		{Date: day(2023, time.June, 1), ProductID: "SEDAN-BASE", LocationID: "DLR-1", Units: 8, Price: 21000},
		{Date: day(2024, time.October, 1), ProductID: "SEDAN-LUX", LocationID: "DLR-1", Units: 4, Price: 35000},
		{Date: day(2024, time.November, 1), ProductID: "SUV-X", LocationID: "DLR-1", Units: 5, Price: 40000},
		{Date: day(2024, time.November, 20), ProductID: "SUV-X", LocationID: "DLR-1", Units: 7, Price: 40000},
		{Date: day(2024, time.December, 1), ProductID: "SUV-X", LocationID: "HUB-1", Units: 10, Price: 40000},
		{Date: day(2025, time.January, 5), ProductID: "SEDAN-BASE", LocationID: "DLR-1", Units: 4, Price: 22000},
		{Date: day(2025, time.January, 8), ProductID: "SEDAN-LUX", LocationID: "DLR-1", Units: 2, Price: 36000},
		{Date: day(2025, time.January, 10), ProductID: "SEDAN-BASE", LocationID: "DLR-1", Units: 6, Price: 22000},
	}

	m.Inventory = []planning.InventorySnapshot{
		{SnapshotID: 1, SnapshotTS: day(2024, time.December, 1), LocationID: "PLANT-1", ItemID: "C-200", ItemType: "COMPONENT", QuantityOnHand: 500},
		{SnapshotID: 2, SnapshotTS: day(2024, time.December, 1), LocationID: "DLR-1", ItemID: "SUV-X", ItemType: "PRODUCT", QuantityOnHand: 10},
		{SnapshotID: 3, SnapshotTS: day(2025, time.January, 10), LocationID: "PLANT-1", ItemID: "C-200", ItemType: "COMPONENT", QuantityOnHand: 100},
		{SnapshotID: 4, SnapshotTS: day(2025, time.January, 10), LocationID: "HUB-1", ItemID: "C-200", ItemType: "COMPONENT", QuantityOnHand: 34},
		{SnapshotID: 5, SnapshotTS: day(2025, time.January, 10), LocationID: "DLR-1", ItemID: "SUV-X", ItemType: "PRODUCT", QuantityOnHand: 2},
		{SnapshotID: 6, SnapshotTS: day(2025, time.January, 10), LocationID: "HUB-1", ItemID: "SUV-X", ItemType: "PRODUCT", QuantityOnHand: 60},
	}

	m.Forecasts = []Forecast{
		{ProductID: "SEDAN-BASE", Period: "2025-01", Source: "FINAL_PLAN", Qty: 40},
		{ProductID: "SEDAN-BASE", Period: "2025-03", Source: "FINAL_PLAN", Qty: 60},
		{ProductID: "SEDAN-BASE", Period: "2025-03", Source: "STATISTICAL", Qty: 75},
		{ProductID: "SEDAN-LUX", Period: "2024-12", Source: "FINAL_PLAN", Qty: 25},
		{ProductID: "SEDAN-LUX", Period: "2025-01", Source: "FINAL_PLAN", Qty: 30},
		{ProductID: "SEDAN-LUX", Period: "2025-02", Source: "FINAL_PLAN", Qty: 30},
		{ProductID: "SEDAN-LUX", Period: "2025-05", Source: "FINAL_PLAN", Qty: 99},
	}

	m.Capacity = []Capacity{
		{Date: day(2025, time.January, 10), Hours: 50},
		{Date: day(2025, time.January, 20), Hours: 400},
		{Date: day(2025, time.February, 10), Hours: 200},
		{Date: day(2025, time.June, 1), Hours: 1000},
	}

	m.Campaigns = []Campaign{
		{ProductID: "SEDAN-LUX", Name: "Spring Launch", UpliftPct: 10},
		{ProductID: "SEDAN-LUX", Name: "Winter Deal", UpliftPct: 5},
		{ProductID: "SEDAN-BASE", Name: "Spring Launch", UpliftPct: 20},
	}

	m.Incidents = []Incident{
		{ComponentID: "C-200", ProductID: "SEDAN-BASE"},
		{ComponentID: "C-200", ProductID: "SEDAN-LUX"},
		{ComponentID: "C-100", ProductID: "SEDAN-LUX"},
	}

	m.Surveys["SEDAN-LUX"] = planning.SurveyTotals{ScoreSum: 870, ResponseCount: 100}

	return m
}

// FixtureProducts lists the product ids of the fixture, sorted
func FixtureProducts() []core.ProductID {
	return []core.ProductID{"SEDAN-BASE", "SEDAN-LUX", "SUV-X"}
}
