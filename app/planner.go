package app

import (
	"context"
	"fmt"
	"time"

	"gosupply/domain/core"
	"gosupply/domain/planning"
	"gosupply/internal/metrics"
	"gosupply/internal/solver"
	"gosupply/ports"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Planner composes planning-store reads into the inputs of the solvers and
// comparators. It is shared by the scenario services and the tool registry.
type Planner struct {
	store  ports.PlanningStore
	clock  core.Clock
	logger *zap.Logger
}

// NewPlanner creates a planner; a nil clock means the wall clock
func NewPlanner(store ports.PlanningStore, clock core.Clock, logger *zap.Logger) *Planner {
	if clock == nil {
		clock = core.SystemClock
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Planner{store: store, clock: clock, logger: logger.Named("planner")}
}

// Store exposes the underlying read contract
func (p *Planner) Store() ports.PlanningStore { return p.store }

// Now returns the planner's current time
func (p *Planner) Now() time.Time { return p.clock() }

// ModelRoutes reads the direct lane, both hub legs and the hub's handling
// profile. Missing legs are left unfound with zero hours and cost.
func (p *Planner) ModelRoutes(ctx context.Context, source, hub, dealer core.LocationID) (planning.RouteModels, error) {
	var (
		direct, leg1, leg2 *planning.Lane
		hubLoc             *planning.HubLocation
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		direct, err = p.store.Lane(gctx, source, dealer)
		return
	})
	g.Go(func() (err error) {
		leg1, err = p.store.Lane(gctx, source, hub)
		return
	})
	g.Go(func() (err error) {
		hubLoc, err = p.store.HubLocation(gctx, hub)
		return
	})
	g.Go(func() (err error) {
		leg2, err = p.store.Lane(gctx, hub, dealer)
		return
	})
	if err := g.Wait(); err != nil {
		return planning.RouteModels{}, fmt.Errorf("failed to model routes %s -> %s -> %s: %w", source, hub, dealer, err)
	}

	models := planning.RouteModels{
		Proposed: planning.HubRoute{
			Leg1: routeLeg(leg1),
			Hub:  planning.HubStop{LocationID: hub},
			Leg2: routeLeg(leg2),
		},
	}
	if direct != nil {
		models.Current = &planning.DirectRoute{
			LaneID:            direct.LaneID,
			TotalTransitHours: direct.TransitHours,
			DirectCost:        direct.CostPerShipment,
		}
	}
	if hubLoc != nil {
		models.Proposed.Hub = planning.HubStop{
			LocationID:    hubLoc.LocationID,
			HandlingHours: hubLoc.HandlingHours,
			HandlingCost:  hubLoc.HandlingCost,
			Found:         true,
		}
	}
	return models, nil
}

func routeLeg(l *planning.Lane) planning.RouteLeg {
	if l == nil {
		return planning.RouteLeg{}
	}
	id := l.LaneID
	return planning.RouteLeg{LaneID: &id, TransitHours: l.TransitHours, Cost: l.CostPerShipment}
}

// TrimPerformance aggregates the trims of a base model over the period
// ending today. An unparseable period falls back to one year.
func (p *Planner) TrimPerformance(ctx context.Context, baseModel, period string) ([]planning.TrimPerformance, error) {
	per, err := core.ParsePeriod(period)
	if err != nil {
		p.logger.Debug("period not understood, using 1 year", zap.String("period", period))
		per = core.Period{Count: 1, Unit: core.UnitYear}
	}
	trims, err := p.store.TrimPerformance(ctx, baseModel, per.Behind(p.clock()))
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate trim performance of %s: %w", baseModel, err)
	}
	return trims, nil
}

// ShiftConstraints reads the demand and capacity bounds of a production shift
// towards product over the period starting today.
func (p *Planner) ShiftConstraints(ctx context.Context, product core.ProductID, period core.Period) (planning.ConstraintSet, error) {
	w := period.Ahead(p.clock())
	var demand, hours float64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		demand, err = p.store.FinalPlanForecast(gctx, product, core.MonthKey(w.From), core.MonthKey(w.To))
		return
	})
	g.Go(func() (err error) {
		hours, err = p.store.AvailableHours(gctx, w)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to read shift constraints for %s: %w", product, err)
	}
	return planning.ConstraintSet{
		planning.ConstraintMarketDemandQty:         demand,
		planning.ConstraintProductionCapacityHours: hours,
	}, nil
}

// OptimalShift reads the constraints of "to" and solves the shift
func (p *Planner) OptimalShift(ctx context.Context, from, to planning.TrimRef, period string) (planning.ShiftPlan, error) {
	per, err := core.ParsePeriod(period)
	if err != nil {
		return planning.ShiftPlan{}, err
	}
	cs, err := p.ShiftConstraints(ctx, to.ProductID, per)
	if err != nil {
		return planning.ShiftPlan{}, err
	}
	return solver.OptimalShift(from, to, cs, period)
}

// LifetimeDemand gathers forecasts, BOM usage, incidents and sales of the
// affected products and computes the remaining demand for the component.
func (p *Planner) LifetimeDemand(ctx context.Context, componentID core.ComponentID, products []core.ProductID) (planning.LifetimeDemand, error) {
	if len(products) == 0 {
		return planning.LifetimeDemand{}, nil
	}

	in := solver.LifetimeInput{
		Products:        products,
		QuantityPerUnit: make(map[core.ProductID]int64, len(products)),
	}
	boms := make([][]planning.BOMLine, len(products))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		in.Forecasts, err = p.store.FinalPlanForecastsFrom(gctx, products, core.MonthKey(p.clock()))
		return
	})
	g.Go(func() (err error) {
		in.Incidents, err = p.store.IncidentCount(gctx, componentID, products)
		return
	})
	g.Go(func() (err error) {
		in.TotalSales, err = p.store.UnitsSold(gctx, products, nil)
		return
	})
	for i, pid := range products {
		g.Go(func() (err error) {
			boms[i], err = p.store.BillOfMaterials(gctx, pid)
			return
		})
	}
	if err := g.Wait(); err != nil {
		return planning.LifetimeDemand{}, fmt.Errorf("failed to read lifetime demand of %s: %w", componentID, err)
	}

	for i, pid := range products {
		for _, line := range boms[i] {
			if line.ComponentID == componentID {
				in.QuantityPerUnit[pid] = line.QuantityPerUnit
				break
			}
		}
	}
	return solver.LifetimeDemand(in), nil
}

// ComponentSourcingData collects on-hand stock, the primary sourcing terms
// and the obsolescence cost of a component.
func (p *Planner) ComponentSourcingData(ctx context.Context, componentID core.ComponentID) (planning.ComponentSourcingData, error) {
	var (
		onHand int64
		rule   *planning.SourcingRule
		cost   *float64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		onHand, err = p.store.LatestTotalOnHand(gctx, componentID.String())
		return
	})
	g.Go(func() (err error) {
		rule, err = p.store.PrimarySourcingRule(gctx, componentID)
		return
	})
	g.Go(func() (err error) {
		cost, err = p.store.ComponentStandardCost(gctx, componentID)
		return
	})
	if err := g.Wait(); err != nil {
		return planning.ComponentSourcingData{}, fmt.Errorf("failed to read sourcing data of %s: %w", componentID, err)
	}

	data := planning.ComponentSourcingData{ComponentID: componentID, CurrentInventory: onHand}
	if rule != nil {
		tiers, err := planning.ParseVolumePricing(rule.VolumePricingJSON)
		if err != nil {
			return planning.ComponentSourcingData{}, err
		}
		data.HasSourcingRule = true
		data.MinOrderQty = rule.MinOrderQty
		data.VolumePricing = tiers
	}
	if cost != nil {
		data.ObsolescenceCostPerUnit = *cost
	}
	return data, nil
}

// CapacityCheck compares the hours a build needs with the hours available
// from today through the due date.
func (p *Planner) CapacityCheck(ctx context.Context, productID core.ProductID, requestedQty int64, dueDate string) (planning.CapacityCheck, error) {
	due, err := time.ParseInLocation(time.DateOnly, dueDate, p.clock().Location())
	if err != nil {
		return planning.CapacityCheck{}, core.NewInvalidArgument("due_date", "must be YYYY-MM-DD")
	}

	var (
		product *planning.Product
		hours   float64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		product, err = p.store.Product(gctx, productID)
		return
	})
	g.Go(func() (err error) {
		hours, err = p.store.AvailableHours(gctx, core.Window{From: core.Day(p.clock()), To: due})
		return
	})
	if err := g.Wait(); err != nil {
		return planning.CapacityCheck{}, fmt.Errorf("failed to read capacity for %s: %w", productID, err)
	}
	if product == nil {
		return planning.CapacityCheck{}, core.NewNotFoundError("product", productID.String())
	}
	return solver.EvaluateCapacity(productID, product.StandardProductionTimeHours, requestedQty, hours)
}

// CampaignUplift returns the summed uplift percentage of the named campaigns
// and the resulting extra units on top of the baseline.
func (p *Planner) CampaignUplift(ctx context.Context, productID core.ProductID, campaigns []string, baseline float64) (float64, int64, error) {
	if len(campaigns) == 0 {
		return 0, 0, nil
	}
	pct, err := p.store.CampaignUpliftPct(ctx, productID, campaigns)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read campaign uplift for %s: %w", productID, err)
	}
	return pct, metrics.CampaignUplift(baseline, []float64{pct}), nil
}

// LocationStock reads on-hand stock and the sales profile of a product at a
// location. Missing stock or sales count as zero.
func (p *Planner) LocationStock(ctx context.Context, productID core.ProductID, locationID core.LocationID) (solver.LocationStock, error) {
	var (
		onHand *int64
		stats  planning.SalesStats
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		onHand, err = p.store.LatestOnHand(gctx, productID.String(), locationID.String())
		return
	})
	g.Go(func() (err error) {
		stats, err = p.store.SalesStatistics(gctx, productID.String(), locationID.String())
		return
	})
	if err := g.Wait(); err != nil {
		return solver.LocationStock{}, fmt.Errorf("failed to read stock of %s at %s: %w", productID, locationID, err)
	}

	s := solver.LocationStock{LocationID: locationID, DemandStd: stats.StandardDeviation}
	if onHand != nil {
		s.OnHand = *onHand
	}
	if stats.Mean != nil {
		s.DemandMean = *stats.Mean
	}
	return s, nil
}
