package app

import (
	"context"
	"fmt"
	"time"

	"gosupply/domain/core"
	"gosupply/domain/planning"
	"gosupply/internal/metrics"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// MetricService computes single metrics straight from the planning store
type MetricService struct {
	planner *Planner
	logger  *zap.Logger
}

func NewMetricService(planner *Planner, logger *zap.Logger) *MetricService {
	return &MetricService{planner: planner, logger: named(logger, "metrics")}
}

// ContributionMargin over sales dated in [from, to] (YYYY-MM-DD, inclusive).
func (s *MetricService) ContributionMargin(ctx context.Context, productID, from, to string) (planning.MetricRecord, error) {
	w, err := s.dateWindow(from, to)
	if err != nil {
		return planning.MetricRecord{}, err
	}
	lines, err := s.planner.Store().SalesLines(ctx, core.ProductID(productID), w)
	if err != nil {
		return planning.MetricRecord{}, fmt.Errorf("failed to read sales lines of %s: %w", productID, err)
	}
	return metrics.ContributionMarginRecord(productID, lines), nil
}

// DaysOfHold divides the latest stock of an item at a location by its average
// daily sales over the 30 days ending at its latest sale.
func (s *MetricService) DaysOfHold(ctx context.Context, itemID, locationID string) (planning.MetricRecord, error) {
	var (
		onHand *int64
		sold   int64
	)
	store := s.planner.Store()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		onHand, err = store.LatestOnHand(gctx, itemID, locationID)
		return
	})
	g.Go(func() (err error) {
		sold, err = store.TrailingUnitsSold(gctx, itemID, locationID, metrics.TrailingSalesDays)
		return
	})
	if err := g.Wait(); err != nil {
		return planning.MetricRecord{}, fmt.Errorf("failed to read stock and sales of %s at %s: %w", itemID, locationID, err)
	}

	var stock float64
	if onHand != nil {
		stock = float64(*onHand)
	}
	return metrics.DaysOfHoldRecord(itemID, locationID, stock, float64(sold)), nil
}

// AttachRate compares the trim's unit sales with those of its base model over
// the trailing period.
func (s *MetricService) AttachRate(ctx context.Context, trimID, period string) (planning.MetricRecord, error) {
	per, err := core.ParsePeriod(period)
	if err != nil {
		return planning.MetricRecord{}, err
	}
	store := s.planner.Store()
	product, err := store.Product(ctx, core.ProductID(trimID))
	if err != nil {
		return planning.MetricRecord{}, fmt.Errorf("failed to read product %s: %w", trimID, err)
	}
	if product == nil {
		return planning.MetricRecord{}, core.NewNotFoundError("product", trimID)
	}

	w := per.Behind(s.planner.Now())
	var trimUnits, modelUnits int64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		trimUnits, err = store.UnitsSold(gctx, []core.ProductID{product.ProductID}, &w)
		return
	})
	g.Go(func() (err error) {
		modelUnits, err = store.BaseModelUnitsSold(gctx, product.BaseModel, w)
		return
	})
	if err := g.Wait(); err != nil {
		return planning.MetricRecord{}, fmt.Errorf("failed to read unit sales of %s: %w", trimID, err)
	}
	return metrics.AttachRateRecord(trimID, float64(trimUnits), float64(modelUnits)), nil
}

func (s *MetricService) CustomerSatisfaction(ctx context.Context, productID string) (planning.MetricRecord, error) {
	totals, err := s.planner.Store().SurveyTotals(ctx, core.ProductID(productID))
	if err != nil {
		return planning.MetricRecord{}, fmt.Errorf("failed to read surveys of %s: %w", productID, err)
	}
	return metrics.SatisfactionRecord(productID, totals), nil
}

// MarketShare relates the product's trailing unit sales to a segment total
// supplied by the caller.
func (s *MetricService) MarketShare(ctx context.Context, productID string, segmentTotalUnits float64, period string) (planning.MetricRecord, error) {
	per, err := core.ParsePeriod(period)
	if err != nil {
		return planning.MetricRecord{}, err
	}
	w := per.Behind(s.planner.Now())
	units, err := s.planner.Store().UnitsSold(ctx, []core.ProductID{core.ProductID(productID)}, &w)
	if err != nil {
		return planning.MetricRecord{}, fmt.Errorf("failed to read unit sales of %s: %w", productID, err)
	}
	return metrics.MarketShareRecord(productID, float64(units), segmentTotalUnits)
}

func (s *MetricService) dateWindow(from, to string) (core.Window, error) {
	loc := s.planner.Now().Location()
	start, err := time.ParseInLocation(time.DateOnly, from, loc)
	if err != nil {
		return core.Window{}, core.NewInvalidArgument("from", "must be YYYY-MM-DD")
	}
	end, err := time.ParseInLocation(time.DateOnly, to, loc)
	if err != nil {
		return core.Window{}, core.NewInvalidArgument("to", "must be YYYY-MM-DD")
	}
	if end.Before(start) {
		return core.Window{}, core.NewInvalidArgument("to", "must not be before from")
	}
	return core.Window{From: start, To: end}, nil
}
