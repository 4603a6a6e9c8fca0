package app

import (
	"context"
	"fmt"

	"gosupply/domain/core"
	"gosupply/domain/intent"
	"gosupply/domain/planning"
	"gosupply/internal/recommend"
	"gosupply/ports"

	"go.uber.org/zap"
)

// AllLocations keys simulations that cover every location
const AllLocations = "ALL"

// ForecastService adjusts the FINAL_PLAN forecast for marketing campaigns and
// attaches a simulated demand range
type ForecastService struct {
	planner   *Planner
	formatter *recommend.Formatter
	simulator ports.DemandSimulator
	logger    *zap.Logger
}

// NewForecastService creates the service; simulator may be nil
func NewForecastService(planner *Planner, formatter *recommend.Formatter, simulator ports.DemandSimulator, logger *zap.Logger) *ForecastService {
	return &ForecastService{planner: planner, formatter: formatter, simulator: simulator, logger: named(logger, "forecast")}
}

func (s *ForecastService) Forecast(ctx context.Context, args intent.DemandForecastArgs) (planning.RecommendationRecord, error) {
	fc, err := s.Build(ctx, args)
	if err != nil {
		return planning.RecommendationRecord{}, err
	}
	return s.formatter.Forecast(fc), nil
}

// Build computes the adjusted forecast without formatting it. The simulated
// spread follows the product's historical coefficient of variation.
func (s *ForecastService) Build(ctx context.Context, args intent.DemandForecastArgs) (planning.DemandForecast, error) {
	if err := args.Validate(); err != nil {
		return planning.DemandForecast{}, err
	}
	productID := core.ProductID(args.ProductID)
	store := s.planner.Store()

	baseline, err := store.FinalPlanForecast(ctx, productID, args.TargetPeriod, args.TargetPeriod)
	if err != nil {
		return planning.DemandForecast{}, fmt.Errorf("failed to read baseline forecast of %s: %w", productID, err)
	}
	pct, upliftQty, err := s.planner.CampaignUplift(ctx, productID, args.UpcomingCampaigns, baseline)
	if err != nil {
		return planning.DemandForecast{}, err
	}

	fc := planning.DemandForecast{
		ProductID:         productID,
		TargetPeriod:      args.TargetPeriod,
		Baseline:          baseline,
		UpliftPct:         pct,
		CampaignUpliftQty: upliftQty,
		Forecast:          baseline + float64(upliftQty),
	}

	if s.simulator != nil && fc.Forecast > 0 {
		stats, err := store.SalesStatistics(ctx, args.ProductID, "")
		if err != nil {
			return planning.DemandForecast{}, fmt.Errorf("failed to read sales statistics of %s: %w", productID, err)
		}
		var cv float64
		if stats.Mean != nil && *stats.Mean > 0 {
			cv = stats.StandardDeviation / *stats.Mean
		}
		sim, err := s.simulator.Simulate(ctx,
			planning.SimulationKey{Model: args.ProductID, Location: AllLocations},
			fc.Forecast, fc.Forecast*cv)
		if err != nil {
			return planning.DemandForecast{}, err
		}
		fc.Simulation = &sim
	}

	s.logger.Info("forecast built",
		zap.String("product_id", args.ProductID),
		zap.String("period", args.TargetPeriod),
		zap.Float64("baseline", baseline),
		zap.Float64("forecast", fc.Forecast))
	return fc, nil
}
