package app

import (
	"context"
	"fmt"

	"gosupply/domain/core"
	"gosupply/domain/intent"
	"gosupply/domain/planning"
	"gosupply/internal/compare"
	"gosupply/internal/recommend"

	"go.uber.org/zap"
)

// SourcingService finds an alternative supplier for a component in shortage
type SourcingService struct {
	planner   *Planner
	formatter *recommend.Formatter
	weights   compare.SupplierWeights
	logger    *zap.Logger
}

func NewSourcingService(planner *Planner, formatter *recommend.Formatter, weights compare.SupplierWeights, logger *zap.Logger) *SourcingService {
	return &SourcingService{planner: planner, formatter: formatter, weights: weights, logger: named(logger, "sourcing")}
}

// Mitigate scores the suppliers other than the primary one and recommends the
// best, priced against the primary supplier's unit price when there is one.
func (s *SourcingService) Mitigate(ctx context.Context, args intent.SourcingMitigationArgs) (planning.RecommendationRecord, error) {
	if err := args.Validate(); err != nil {
		return planning.RecommendationRecord{}, err
	}
	componentID := core.ComponentID(args.ComponentID)
	store := s.planner.Store()

	rule, err := store.PrimarySourcingRule(ctx, componentID)
	if err != nil {
		return planning.RecommendationRecord{}, fmt.Errorf("failed to read primary sourcing of %s: %w", componentID, err)
	}
	var (
		primary  core.PartnerID
		baseline *float64
	)
	if rule != nil {
		primary = rule.PartnerID
		baseline = planning.Float(rule.UnitPrice)
	}

	options, err := store.AlternativeSuppliers(ctx, componentID, primary)
	if err != nil {
		return planning.RecommendationRecord{}, fmt.Errorf("failed to search alternatives for %s: %w", componentID, err)
	}
	sel, err := compare.SelectSupplier(options, args.RequiredQty, s.weights)
	if err != nil {
		return planning.RecommendationRecord{}, err
	}

	s.logger.Info("supplier selected",
		zap.String("component_id", args.ComponentID),
		zap.String("status", sel.Status),
		zap.Int("alternatives", len(options)))
	return s.formatter.Sourcing(componentID, sel, baseline), nil
}
