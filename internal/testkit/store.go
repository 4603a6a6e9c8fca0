package testkit

import (
	"context"
	"sort"
	"sync"
	"time"

	"gosupply/domain/core"
	"gosupply/domain/planning"
	"gosupply/internal/metrics"
	"gosupply/ports"
)

// Sale is one sales_history row
type Sale struct {
	Date       time.Time
	ProductID  core.ProductID
	LocationID core.LocationID
	Units      int64
	Price      float64
}

// Forecast is one demand_forecast_log row
type Forecast struct {
	ProductID core.ProductID
	Period    string
	Source    string
	Qty       float64
}

// Capacity is one production_capacity row
type Capacity struct {
	Date  time.Time
	Hours float64
}

// Campaign is one marketing_campaigns row
type Campaign struct {
	ProductID core.ProductID
	Name      string
	UpliftPct float64
}

// Incident is one quality_incidents row
type Incident struct {
	ComponentID core.ComponentID
	ProductID   core.ProductID
}

// Partner is one partners row
type Partner struct {
	Name    string
	Quality float64
}

type laneKey struct{ origin, dest core.LocationID }

// MemoryStore is an in-memory planning store with the query semantics of the
// postgres repository. Fields are read-only once the store is in use.
type MemoryStore struct {
	Products       map[core.ProductID]planning.Product
	BOM            []planning.BOMLine
	ComponentCosts map[core.ComponentID]float64
	Hubs           map[core.LocationID]planning.HubLocation
	Partners       map[core.PartnerID]Partner
	Rules          []planning.SourcingRule
	POLines        []planning.PurchaseOrderLine
	Sales          []Sale
	Inventory      []planning.InventorySnapshot
	Forecasts      []Forecast
	Capacity       []Capacity
	Campaigns      []Campaign
	Incidents      []Incident
	Surveys        map[core.ProductID]planning.SurveyTotals

	// Err, when set, is returned by every read
	Err error

	lanes map[laneKey]planning.Lane

	mu    sync.Mutex
	calls map[string]int
}

var _ ports.PlanningStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		Products:       map[core.ProductID]planning.Product{},
		ComponentCosts: map[core.ComponentID]float64{},
		Hubs:           map[core.LocationID]planning.HubLocation{},
		Partners:       map[core.PartnerID]Partner{},
		Surveys:        map[core.ProductID]planning.SurveyTotals{},
		lanes:          map[laneKey]planning.Lane{},
		calls:          map[string]int{},
	}
}

// AddLane registers a lane from origin to dest
func (m *MemoryStore) AddLane(origin, dest core.LocationID, lane planning.Lane) {
	m.lanes[laneKey{origin, dest}] = lane
}

// Calls reports how often a read was made
func (m *MemoryStore) Calls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

func (m *MemoryStore) track(method string) error {
	m.mu.Lock()
	m.calls[method]++
	m.mu.Unlock()
	return m.Err
}

func within(t time.Time, w core.Window) bool {
	return !t.Before(w.From) && !t.After(w.To)
}

func containsProduct(ids []core.ProductID, id core.ProductID) bool {
	for _, p := range ids {
		if p == id {
			return true
		}
	}
	return false
}

// ---- SalesReader ----

func (m *MemoryStore) SalesStatistics(_ context.Context, productID, locationID string) (planning.SalesStats, error) {
	if err := m.track("SalesStatistics"); err != nil {
		return planning.SalesStats{}, err
	}
	var units []float64
	for _, s := range m.Sales {
		if (productID == "" || s.ProductID.String() == productID) && (locationID == "" || s.LocationID.String() == locationID) {
			units = append(units, float64(s.Units))
		}
	}
	sum := metrics.Summarize(units)
	return planning.SalesStats{Mean: sum.Mean, StandardDeviation: sum.StdDev}, nil
}

func (m *MemoryStore) SalesLines(_ context.Context, productID core.ProductID, w core.Window) ([]planning.SalesLine, error) {
	if err := m.track("SalesLines"); err != nil {
		return nil, err
	}
	product, ok := m.Products[productID]
	if !ok {
		return nil, nil
	}
	var lines []planning.SalesLine
	for _, s := range m.Sales {
		if s.ProductID == productID && within(s.Date, w) {
			u := float64(s.Units)
			lines = append(lines, planning.SalesLine{Revenue: u * s.Price, VariableCost: u * product.StandardProductCost, Units: u})
		}
	}
	return lines, nil
}

func (m *MemoryStore) UnitsSold(_ context.Context, productIDs []core.ProductID, w *core.Window) (int64, error) {
	if err := m.track("UnitsSold"); err != nil {
		return 0, err
	}
	var total int64
	for _, s := range m.Sales {
		if containsProduct(productIDs, s.ProductID) && (w == nil || within(s.Date, *w)) {
			total += s.Units
		}
	}
	return total, nil
}

func (m *MemoryStore) BaseModelUnitsSold(_ context.Context, baseModel string, w core.Window) (int64, error) {
	if err := m.track("BaseModelUnitsSold"); err != nil {
		return 0, err
	}
	var total int64
	for _, s := range m.Sales {
		if p, ok := m.Products[s.ProductID]; ok && p.BaseModel == baseModel && within(s.Date, w) {
			total += s.Units
		}
	}
	return total, nil
}

func (m *MemoryStore) TrailingUnitsSold(_ context.Context, productID, locationID string, days int) (int64, error) {
	if err := m.track("TrailingUnitsSold"); err != nil {
		return 0, err
	}
	var latest time.Time
	for _, s := range m.Sales {
		if s.ProductID.String() == productID && s.LocationID.String() == locationID && s.Date.After(latest) {
			latest = s.Date
		}
	}
	if latest.IsZero() {
		return 0, nil
	}
	cutoff := latest.AddDate(0, 0, -days)
	var total int64
	for _, s := range m.Sales {
		if s.ProductID.String() == productID && s.LocationID.String() == locationID && s.Date.After(cutoff) {
			total += s.Units
		}
	}
	return total, nil
}

// ---- InventoryReader ----

func (m *MemoryStore) LatestOnHand(_ context.Context, itemID, locationID string) (*int64, error) {
	if err := m.track("LatestOnHand"); err != nil {
		return nil, err
	}
	var (
		found  bool
		latest planning.InventorySnapshot
	)
	for _, s := range m.Inventory {
		if s.ItemID == itemID && s.LocationID.String() == locationID && (!found || s.SnapshotTS.After(latest.SnapshotTS)) {
			latest, found = s, true
		}
	}
	if !found {
		return nil, nil
	}
	qty := latest.QuantityOnHand
	return &qty, nil
}

func (m *MemoryStore) LatestTotalOnHand(_ context.Context, itemID string) (int64, error) {
	if err := m.track("LatestTotalOnHand"); err != nil {
		return 0, err
	}
	var latest time.Time
	for _, s := range m.Inventory {
		if s.ItemID == itemID && s.SnapshotTS.After(latest) {
			latest = s.SnapshotTS
		}
	}
	var total int64
	for _, s := range m.Inventory {
		if s.ItemID == itemID && s.SnapshotTS.Equal(latest) {
			total += s.QuantityOnHand
		}
	}
	return total, nil
}

func (m *MemoryStore) InventoryHistory(_ context.Context, itemIDs []core.ComponentID) ([]planning.InventorySnapshot, error) {
	if err := m.track("InventoryHistory"); err != nil {
		return nil, err
	}
	var rows []planning.InventorySnapshot
	for _, s := range m.Inventory {
		for _, id := range itemIDs {
			if s.ItemID == id.String() {
				rows = append(rows, s)
				break
			}
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].SnapshotTS.Before(rows[j].SnapshotTS) })
	return rows, nil
}

// ---- MasterDataReader ----

func (m *MemoryStore) Product(_ context.Context, id core.ProductID) (*planning.Product, error) {
	if err := m.track("Product"); err != nil {
		return nil, err
	}
	p, ok := m.Products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *MemoryStore) BillOfMaterials(_ context.Context, productID core.ProductID) ([]planning.BOMLine, error) {
	if err := m.track("BillOfMaterials"); err != nil {
		return nil, err
	}
	var lines []planning.BOMLine
	for _, l := range m.BOM {
		if l.ProductID == productID {
			lines = append(lines, l)
		}
	}
	return lines, nil
}

func (m *MemoryStore) ComponentStandardCost(_ context.Context, id core.ComponentID) (*float64, error) {
	if err := m.track("ComponentStandardCost"); err != nil {
		return nil, err
	}
	c, ok := m.ComponentCosts[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m *MemoryStore) Lane(_ context.Context, origin, dest core.LocationID) (*planning.Lane, error) {
	if err := m.track("Lane"); err != nil {
		return nil, err
	}
	l, ok := m.lanes[laneKey{origin, dest}]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (m *MemoryStore) HubLocation(_ context.Context, id core.LocationID) (*planning.HubLocation, error) {
	if err := m.track("HubLocation"); err != nil {
		return nil, err
	}
	h, ok := m.Hubs[id]
	if !ok {
		return nil, nil
	}
	return &h, nil
}

// ---- SourcingReader ----

func (m *MemoryStore) rulesFor(componentIDs []core.ComponentID, primaryOnly bool) []planning.SourcingRule {
	var out []planning.SourcingRule
	for _, r := range m.Rules {
		if primaryOnly && !r.IsPrimarySupplier {
			continue
		}
		for _, id := range componentIDs {
			if r.ComponentID == id {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

func (m *MemoryStore) SourcingRules(_ context.Context, componentIDs []core.ComponentID) ([]planning.SourcingRule, error) {
	if err := m.track("SourcingRules"); err != nil {
		return nil, err
	}
	return m.rulesFor(componentIDs, false), nil
}

func (m *MemoryStore) PrimarySourcingRule(_ context.Context, componentID core.ComponentID) (*planning.SourcingRule, error) {
	if err := m.track("PrimarySourcingRule"); err != nil {
		return nil, err
	}
	rules := m.rulesFor([]core.ComponentID{componentID}, true)
	if len(rules) == 0 {
		return nil, nil
	}
	return &rules[0], nil
}

func (m *MemoryStore) PrimaryPartners(_ context.Context, componentIDs []core.ComponentID) ([]planning.PrimaryPartner, error) {
	if err := m.track("PrimaryPartners"); err != nil {
		return nil, err
	}
	var out []planning.PrimaryPartner
	for _, r := range m.rulesFor(componentIDs, true) {
		out = append(out, planning.PrimaryPartner{ComponentID: r.ComponentID, PartnerID: r.PartnerID})
	}
	return out, nil
}

func (m *MemoryStore) AlternativeSuppliers(_ context.Context, componentID core.ComponentID, primary core.PartnerID) ([]planning.SupplierOption, error) {
	if err := m.track("AlternativeSuppliers"); err != nil {
		return nil, err
	}
	var out []planning.SupplierOption
	for _, r := range m.rulesFor([]core.ComponentID{componentID}, false) {
		partner, ok := m.Partners[r.PartnerID]
		if !ok || r.PartnerID == primary {
			continue
		}
		out = append(out, planning.SupplierOption{
			Type:         "ALTERNATIVE_SUPPLIER",
			ComponentID:  r.ComponentID,
			SupplierID:   r.PartnerID,
			SupplierName: partner.Name,
			LeadTimeDays: float64(r.LeadTimeDays),
			UnitPrice:    r.UnitPrice,
			QualityScore: partner.Quality,
		})
	}
	return out, nil
}

func (m *MemoryStore) OpenPurchaseOrderLines(_ context.Context, componentIDs []core.ComponentID) ([]planning.PurchaseOrderLine, error) {
	if err := m.track("OpenPurchaseOrderLines"); err != nil {
		return nil, err
	}
	var out []planning.PurchaseOrderLine
	for _, l := range m.POLines {
		if l.LineStatus != "OPEN" {
			continue
		}
		for _, id := range componentIDs {
			if l.ComponentID == id {
				out = append(out, l)
				break
			}
		}
	}
	return out, nil
}

// ---- DemandPlanReader ----

func (m *MemoryStore) FinalPlanForecast(_ context.Context, productID core.ProductID, fromPeriod, toPeriod string) (float64, error) {
	if err := m.track("FinalPlanForecast"); err != nil {
		return 0, err
	}
	var total float64
	for _, f := range m.Forecasts {
		if f.ProductID == productID && f.Source == "FINAL_PLAN" && f.Period >= fromPeriod && f.Period <= toPeriod {
			total += f.Qty
		}
	}
	return total, nil
}

func (m *MemoryStore) FinalPlanForecastsFrom(_ context.Context, productIDs []core.ProductID, fromPeriod string) (map[core.ProductID]float64, error) {
	if err := m.track("FinalPlanForecastsFrom"); err != nil {
		return nil, err
	}
	out := map[core.ProductID]float64{}
	for _, f := range m.Forecasts {
		if containsProduct(productIDs, f.ProductID) && f.Source == "FINAL_PLAN" && f.Period >= fromPeriod {
			out[f.ProductID] += f.Qty
		}
	}
	return out, nil
}

func (m *MemoryStore) AvailableHours(_ context.Context, w core.Window) (float64, error) {
	if err := m.track("AvailableHours"); err != nil {
		return 0, err
	}
	var total float64
	for _, c := range m.Capacity {
		if within(c.Date, w) {
			total += c.Hours
		}
	}
	return total, nil
}

func (m *MemoryStore) TrimPerformance(_ context.Context, baseModel string, w core.Window) ([]planning.TrimPerformance, error) {
	if err := m.track("TrimPerformance"); err != nil {
		return nil, err
	}
	var out []planning.TrimPerformance
	for _, p := range m.Products {
		if p.BaseModel != baseModel {
			continue
		}
		var sum float64
		var n int
		for _, s := range m.Sales {
			if s.ProductID == p.ProductID && within(s.Date, w) {
				sum += s.Price
				n++
			}
		}
		avg := 0.0
		if n > 0 {
			avg = sum / float64(n)
		}
		out = append(out, planning.TrimPerformance{
			ProductID:                   p.ProductID,
			StandardProductCost:         p.StandardProductCost,
			StandardProductionTimeHours: p.StandardProductionTimeHours,
			UnitMargin:                  avg - p.StandardProductCost,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

func (m *MemoryStore) CampaignUpliftPct(_ context.Context, productID core.ProductID, campaigns []string) (float64, error) {
	if err := m.track("CampaignUpliftPct"); err != nil {
		return 0, err
	}
	var total float64
	for _, c := range m.Campaigns {
		if c.ProductID != productID {
			continue
		}
		for _, name := range campaigns {
			if c.Name == name {
				total += c.UpliftPct
				break
			}
		}
	}
	return total, nil
}

// ---- QualityReader ----

func (m *MemoryStore) IncidentCount(_ context.Context, componentID core.ComponentID, productIDs []core.ProductID) (int64, error) {
	if err := m.track("IncidentCount"); err != nil {
		return 0, err
	}
	var n int64
	for _, i := range m.Incidents {
		if i.ComponentID == componentID && containsProduct(productIDs, i.ProductID) {
			n++
		}
	}
	return n, nil
}

func (m *MemoryStore) SurveyTotals(_ context.Context, productID core.ProductID) (planning.SurveyTotals, error) {
	if err := m.track("SurveyTotals"); err != nil {
		return planning.SurveyTotals{}, err
	}
	return m.Surveys[productID], nil
}
