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

// InventoryService balances stock between two locations
type InventoryService struct {
	planner       *Planner
	formatter     *recommend.Formatter
	serviceFactor float64
	logger        *zap.Logger
}

func NewInventoryService(planner *Planner, formatter *recommend.Formatter, serviceFactor float64, logger *zap.Logger) *InventoryService {
	return &InventoryService{planner: planner, formatter: formatter, serviceFactor: serviceFactor, logger: named(logger, "inventory")}
}

func (s *InventoryService) RecommendTransfer(ctx context.Context, args intent.InventoryTransferArgs) (planning.RecommendationRecord, error) {
	if err := args.Validate(); err != nil {
		return planning.RecommendationRecord{}, err
	}
	productID := core.ProductID(args.ProductID)

	var requesting, supplying solver.LocationStock
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		requesting, err = s.planner.LocationStock(gctx, productID, core.LocationID(args.RequestingLocID))
		return
	})
	g.Go(func() (err error) {
		supplying, err = s.planner.LocationStock(gctx, productID, core.LocationID(args.SupplyingLocID))
		return
	})
	if err := g.Wait(); err != nil {
		return planning.RecommendationRecord{}, err
	}

	plan, err := solver.InventoryTransfer(solver.TransferInput{
		ProductID:     productID,
		Requesting:    requesting,
		Supplying:     supplying,
		ServiceFactor: s.serviceFactor,
	})
	if err != nil {
		return planning.RecommendationRecord{}, err
	}

	s.logger.Info("transfer sized",
		zap.String("product_id", args.ProductID),
		zap.Int64("quantity", plan.Quantity),
		zap.String("binding", plan.BindingConstraint))
	return s.formatter.Transfer(plan), nil
}
