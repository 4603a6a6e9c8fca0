package app

import (
	"context"

	"gosupply/domain/core"
	"gosupply/domain/intent"
	"gosupply/domain/planning"
	"gosupply/internal/recommend"
	"gosupply/internal/solver"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// EOLService sizes the final buy of a discontinued component
type EOLService struct {
	planner   *Planner
	formatter *recommend.Formatter
	logger    *zap.Logger
}

func NewEOLService(planner *Planner, formatter *recommend.Formatter, logger *zap.Logger) *EOLService {
	return &EOLService{planner: planner, formatter: formatter, logger: named(logger, "eol")}
}

func (s *EOLService) Recommend(ctx context.Context, args intent.EOLBuyArgs) (planning.RecommendationRecord, error) {
	if err := args.Validate(); err != nil {
		return planning.RecommendationRecord{}, err
	}
	componentID := core.ComponentID(args.ComponentID)
	products := make([]core.ProductID, len(args.ProductIDs))
	for i, p := range args.ProductIDs {
		products[i] = core.ProductID(p)
	}

	var (
		demand planning.LifetimeDemand
		data   planning.ComponentSourcingData
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		demand, err = s.planner.LifetimeDemand(gctx, componentID, products)
		return
	})
	g.Go(func() (err error) {
		data, err = s.planner.ComponentSourcingData(gctx, componentID)
		return
	})
	if err := g.Wait(); err != nil {
		return planning.RecommendationRecord{}, err
	}

	plan, err := solver.EOLBuy(solver.EOLBuyInput{
		RequiredUnits:           demand.TotalRequiredUnits,
		OnHand:                  data.CurrentInventory,
		MinOrderQty:             data.MinOrderQty,
		Tiers:                   data.VolumePricing,
		ObsolescenceCostPerUnit: data.ObsolescenceCostPerUnit,
	})
	if err != nil {
		return planning.RecommendationRecord{}, err
	}

	if plan.Chosen.Quantity > 0 && plan.Chosen.Quantity < plan.NetRequired {
		s.logger.Warn("cheapest final buy leaves demand uncovered",
			zap.String("component_id", args.ComponentID),
			zap.Int64("order", plan.Chosen.Quantity),
			zap.Int64("net_required", plan.NetRequired))
	}
	return s.formatter.EOLBuy(componentID, demand, plan), nil
}
