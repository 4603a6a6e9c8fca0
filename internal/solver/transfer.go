package solver

import (
	"gosupply/domain/core"
	"gosupply/domain/planning"
)

// DefaultServiceFactor is the z-value for a ~95% cycle service level.
const DefaultServiceFactor = 1.65

// LocationStock is on-hand inventory and the demand profile at one location
type LocationStock struct {
	LocationID core.LocationID `json:"location_id"`
	OnHand     int64           `json:"on_hand"`
	DemandMean float64         `json:"demand_mean"`
	DemandStd  float64         `json:"demand_std"`
}

// TransferInput describes a candidate stock transfer
type TransferInput struct {
	ProductID     core.ProductID `json:"product_id"`
	Requesting    LocationStock  `json:"requesting"`
	Supplying     LocationStock  `json:"supplying"`
	ServiceFactor float64        `json:"service_factor"`
}

// TargetStock is ceil(mean + z*std).
func TargetStock(s LocationStock, z float64) int64 {
	return roundUp(s.DemandMean + z*s.DemandStd)
}

// InventoryTransfer sizes a transfer as the smaller of the requesting location's
// shortfall and the supplying location's surplus against their target stock.
func InventoryTransfer(in TransferInput) (planning.TransferPlan, error) {
	if in.Requesting.LocationID == in.Supplying.LocationID {
		return planning.TransferPlan{}, core.NewInvalidArgument("supplying_loc_id", "must differ from requesting_loc_id")
	}
	z := in.ServiceFactor
	if z <= 0 {
		z = DefaultServiceFactor
	}

	reqTarget := TargetStock(in.Requesting, z)
	supTarget := TargetStock(in.Supplying, z)
	shortfall := max(0, reqTarget-in.Requesting.OnHand)
	surplus := max(0, in.Supplying.OnHand-supTarget)

	binding := planning.BindingRequestingShortage
	if shortfall > surplus {
		binding = planning.BindingSupplyingSurplus
	}

	return planning.TransferPlan{
		ProductID:         in.ProductID,
		From:              in.Supplying.LocationID,
		To:                in.Requesting.LocationID,
		Quantity:          min(shortfall, surplus),
		RequestingTarget:  reqTarget,
		SupplyingTarget:   supTarget,
		Shortfall:         shortfall,
		Surplus:           surplus,
		BindingConstraint: binding,
	}, nil
}
