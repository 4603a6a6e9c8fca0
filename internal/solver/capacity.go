package solver

import (
	"gosupply/domain/core"
	"gosupply/domain/planning"
)

// EvaluateCapacity checks whether requestedQty units fit into the hours available
// before the due date.
func EvaluateCapacity(productID core.ProductID, unitTimeHours float64, requestedQty int64, availableHours float64) (planning.CapacityCheck, error) {
	if requestedQty < 0 {
		return planning.CapacityCheck{}, core.NewInvalidArgument("requested_qty", "cannot be negative")
	}
	required := unitTimeHours * float64(requestedQty)
	return planning.CapacityCheck{
		ProductID:           productID,
		RequestedQty:        requestedQty,
		RequiredHours:       required,
		TotalAvailableHours: availableHours,
		IsCapacityAvailable: availableHours >= required,
	}, nil
}
