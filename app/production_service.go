package app

import (
	"context"

	"gosupply/domain/core"
	"gosupply/domain/intent"
	"gosupply/domain/planning"
	"gosupply/internal/recommend"

	"go.uber.org/zap"
)

// ProductionService checks whether a build fits the available capacity
type ProductionService struct {
	planner   *Planner
	formatter *recommend.Formatter
	logger    *zap.Logger
}

func NewProductionService(planner *Planner, formatter *recommend.Formatter, logger *zap.Logger) *ProductionService {
	return &ProductionService{planner: planner, formatter: formatter, logger: named(logger, "production")}
}

func (s *ProductionService) CheckFeasibility(ctx context.Context, args intent.ProductionFeasibilityArgs) (planning.RecommendationRecord, error) {
	if err := args.Validate(); err != nil {
		return planning.RecommendationRecord{}, err
	}
	check, err := s.planner.CapacityCheck(ctx, core.ProductID(args.ProductID), args.RequestedQty, args.DueDate)
	if err != nil {
		return planning.RecommendationRecord{}, err
	}

	s.logger.Info("capacity checked",
		zap.String("product_id", args.ProductID),
		zap.Float64("required_hours", check.RequiredHours),
		zap.Float64("available_hours", check.TotalAvailableHours),
		zap.Bool("feasible", check.IsCapacityAvailable))
	return s.formatter.Production(check, args.DueDate), nil
}
