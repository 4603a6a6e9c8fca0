// Package solver combines competing constraints into a feasible or cost-optimal plan.
package solver

import (
	"math"

	"gosupply/domain/core"
	"gosupply/domain/planning"
)

// OptimalShift moves production hours from the least efficient trim ("from") to the
// most efficient one ("to"). The reallocated quantity is the smaller of the demand
// forecast for "to" and what the capacity bound allows; the hours this consumes are
// taken away from "from".
func OptimalShift(from, to planning.TrimRef, constraints planning.ConstraintSet, period string) (planning.ShiftPlan, error) {
	p, err := core.ParsePeriod(period)
	if err != nil {
		return planning.ShiftPlan{}, err
	}

	demand := constraints.Get(planning.ConstraintMarketDemandQty)
	capacity := constraints.Get(planning.ConstraintProductionCapacityHours)

	maxProducible := perUnit(capacity, to.ProductionTimeHours)
	reallocate := math.Min(demand, maxProducible)

	binding := planning.BindingProductionCapacity
	if demand < maxProducible {
		binding = planning.BindingMarketDemand
	}

	hoursFreed := reallocate * to.ProductionTimeHours
	reduce := perUnit(hoursFreed, from.ProductionTimeHours)

	return planning.ShiftPlan{
		Reduce:            planning.QuantityTarget{ProductID: from.ProductID, Quantity: int64(math.Floor(reduce))},
		Reallocate:        planning.QuantityTarget{ProductID: to.ProductID, Quantity: int64(math.Floor(reallocate))},
		BindingConstraint: binding,
		MaxProducibleQty:  maxProducible,
		HoursFreed:        hoursFreed,
		Period:            p,
	}, nil
}

// ProjectShiftImpact prices a ShiftPlan with the unit margins of both trims.
func ProjectShiftImpact(plan planning.ShiftPlan, fromUnitMargin, toUnitMargin float64) planning.ShiftImpact {
	lost := float64(plan.Reduce.Quantity) * fromUnitMargin
	gained := float64(plan.Reallocate.Quantity) * toUnitMargin
	return planning.ShiftImpact{
		LostMargin:    lost,
		GainedMargin:  gained,
		NetMarginGain: gained - lost,
	}
}

func perUnit(hours, unitTime float64) float64 {
	if unitTime <= 0 {
		return 0
	}
	return hours / unitTime
}
