package app

import (
	"context"

	"gosupply/domain/core"
	"gosupply/domain/intent"
	"gosupply/domain/planning"
	"gosupply/internal/compare"
	"gosupply/internal/recommend"
	"gosupply/internal/solver"

	"go.uber.org/zap"
)

// TrimMixService rebalances production between the trims of a base model
type TrimMixService struct {
	planner   *Planner
	formatter *recommend.Formatter
	logger    *zap.Logger
}

func NewTrimMixService(planner *Planner, formatter *recommend.Formatter, logger *zap.Logger) *TrimMixService {
	return &TrimMixService{planner: planner, formatter: formatter, logger: named(logger, "trim_mix")}
}

// Recommend compares the trims' efficiency over the trailing period, then
// shifts production from the least to the most efficient trim for the same
// period ahead.
func (s *TrimMixService) Recommend(ctx context.Context, args intent.TrimMixArgs) (planning.RecommendationRecord, error) {
	if err := args.Validate(); err != nil {
		return planning.RecommendationRecord{}, err
	}

	trims, err := s.planner.TrimPerformance(ctx, args.BaseModel, args.Period)
	if err != nil {
		return planning.RecommendationRecord{}, err
	}
	outliers, err := compare.TrimEfficiencyOutliers(trims)
	if err != nil {
		return planning.RecommendationRecord{}, err
	}
	most, least := outliers.MostEfficient, outliers.LeastEfficient

	if least.ProductID == most.ProductID {
		per, err := core.ParsePeriod(args.Period)
		if err != nil {
			return planning.RecommendationRecord{}, err
		}
		s.logger.Info("single trim, nothing to rebalance",
			zap.String("base_model", args.BaseModel),
			zap.String("trim", most.ProductID.String()))
		plan := planning.ShiftPlan{
			Reduce:     planning.QuantityTarget{ProductID: least.ProductID},
			Reallocate: planning.QuantityTarget{ProductID: most.ProductID},
			Period:     per,
		}
		return s.formatter.TrimMix(outliers, plan, planning.ShiftImpact{}), nil
	}

	plan, err := s.planner.OptimalShift(ctx,
		planning.TrimRef{ProductID: least.ProductID, ProductionTimeHours: least.StandardProductionTimeHours},
		planning.TrimRef{ProductID: most.ProductID, ProductionTimeHours: most.StandardProductionTimeHours},
		args.Period)
	if err != nil {
		return planning.RecommendationRecord{}, err
	}
	impact := solver.ProjectShiftImpact(plan, least.UnitMargin, most.UnitMargin)

	s.logger.Info("trim mix solved",
		zap.String("base_model", args.BaseModel),
		zap.String("from", least.ProductID.String()),
		zap.String("to", most.ProductID.String()),
		zap.Int64("quantity", plan.Reallocate.Quantity),
		zap.String("binding", plan.BindingConstraint))
	return s.formatter.TrimMix(outliers, plan, impact), nil
}

func named(logger *zap.Logger, name string) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger.Named(name)
}
