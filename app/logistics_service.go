package app

import (
	"context"

	"gosupply/domain/core"
	"gosupply/domain/intent"
	"gosupply/domain/planning"
	"gosupply/internal/compare"
	"gosupply/internal/recommend"

	"go.uber.org/zap"
)

// LogisticsService compares the direct lane with a route through a hub
type LogisticsService struct {
	planner          *Planner
	formatter        *recommend.Formatter
	timeValuePerHour float64
	logger           *zap.Logger
}

func NewLogisticsService(planner *Planner, formatter *recommend.Formatter, timeValuePerHour float64, logger *zap.Logger) *LogisticsService {
	return &LogisticsService{planner: planner, formatter: formatter, timeValuePerHour: timeValuePerHour, logger: named(logger, "logistics")}
}

func (s *LogisticsService) Recommend(ctx context.Context, args intent.RouteOptimizationArgs) (planning.RecommendationRecord, error) {
	if err := args.Validate(); err != nil {
		return planning.RecommendationRecord{}, err
	}
	models, err := s.planner.ModelRoutes(ctx,
		core.LocationID(args.SourceLocID), core.LocationID(args.HubLocID), core.LocationID(args.DealerLocID))
	if err != nil {
		return planning.RecommendationRecord{}, err
	}
	cmp, err := compare.CompareRoutes(models, s.timeValuePerHour)
	if err != nil {
		return planning.RecommendationRecord{}, err
	}

	s.logger.Info("routes compared",
		zap.String("source", args.SourceLocID),
		zap.String("hub", args.HubLocID),
		zap.String("dealer", args.DealerLocID),
		zap.String("decision", cmp.Decision))
	return s.formatter.Route(models, cmp), nil
}
