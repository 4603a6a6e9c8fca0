package app

import (
	"context"
	"fmt"

	"gosupply/domain/core"
	"gosupply/domain/intent"
	"gosupply/domain/planning"
	"gosupply/internal/compare"
	"gosupply/internal/recommend"
	"gosupply/ports"

	"go.uber.org/zap"
)

// ServiceOptions carries the planning policy shared by the scenario services
type ServiceOptions struct {
	SupplierWeights  compare.SupplierWeights
	TimeValuePerHour float64
	ServiceFactor    float64
	Simulator        ports.DemandSimulator
}

// Services bundles the scenario pipelines and the metric service
type Services struct {
	Metrics    *MetricService
	TrimMix    *TrimMixService
	Sourcing   *SourcingService
	Logistics  *LogisticsService
	EOL        *EOLService
	Inventory  *InventoryService
	Production *ProductionService
	Forecast   *ForecastService
}

func NewServices(planner *Planner, formatter *recommend.Formatter, opts ServiceOptions, logger *zap.Logger) *Services {
	return &Services{
		Metrics:    NewMetricService(planner, logger),
		TrimMix:    NewTrimMixService(planner, formatter, logger),
		Sourcing:   NewSourcingService(planner, formatter, opts.SupplierWeights, logger),
		Logistics:  NewLogisticsService(planner, formatter, opts.TimeValuePerHour, logger),
		EOL:        NewEOLService(planner, formatter, logger),
		Inventory:  NewInventoryService(planner, formatter, opts.ServiceFactor, logger),
		Production: NewProductionService(planner, formatter, logger),
		Forecast:   NewForecastService(planner, formatter, opts.Simulator, logger),
	}
}

// Recommend runs the pipeline that matches the type of args
func (s *Services) Recommend(ctx context.Context, args intent.Args) (planning.RecommendationRecord, error) {
	switch a := args.(type) {
	case intent.InventoryTransferArgs:
		return s.Inventory.RecommendTransfer(ctx, a)
	case intent.ProductionFeasibilityArgs:
		return s.Production.CheckFeasibility(ctx, a)
	case intent.DemandForecastArgs:
		return s.Forecast.Forecast(ctx, a)
	case intent.TrimMixArgs:
		return s.TrimMix.Recommend(ctx, a)
	case intent.SourcingMitigationArgs:
		return s.Sourcing.Mitigate(ctx, a)
	case intent.RouteOptimizationArgs:
		return s.Logistics.Recommend(ctx, a)
	case intent.EOLBuyArgs:
		return s.EOL.Recommend(ctx, a)
	}
	return planning.RecommendationRecord{}, fmt.Errorf("%w: %T", core.ErrUnsupportedTask, args)
}
