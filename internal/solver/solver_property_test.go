package solver

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"gosupply/domain/planning"
)

func TestOptimalShiftBindingProperty(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("binding constraint follows demand vs. max producible", prop.ForAll(
		func(demand, capacity, unitTime float64) bool {
			plan, err := OptimalShift(leastEfficient,
				planning.TrimRef{ProductID: "B", ProductionTimeHours: unitTime},
				planning.ConstraintSet{
					planning.ConstraintMarketDemandQty:         demand,
					planning.ConstraintProductionCapacityHours: capacity,
				}, "1 quarter")
			if err != nil {
				return false
			}
			if demand < capacity/unitTime {
				return plan.BindingConstraint == planning.BindingMarketDemand
			}
			return plan.BindingConstraint == planning.BindingProductionCapacity
		},
		gen.Float64Range(0, 10000),
		gen.Float64Range(0, 10000),
		gen.Float64Range(0.1, 50),
	))

	properties.Property("reallocated quantity never exceeds either bound", prop.ForAll(
		func(demand, capacity float64) bool {
			plan, err := OptimalShift(leastEfficient, mostEfficient, planning.ConstraintSet{
				planning.ConstraintMarketDemandQty:         demand,
				planning.ConstraintProductionCapacityHours: capacity,
			}, "1 month")
			if err != nil {
				return false
			}
			q := float64(plan.Reallocate.Quantity)
			return q <= demand && q*mostEfficient.ProductionTimeHours <= capacity
		},
		gen.Float64Range(0, 10000),
		gen.Float64Range(0, 10000),
	))

	properties.TestingRun(t)
}

func TestEOLBuyChoosesMinimumProperty(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("chosen candidate has the minimum total cost", prop.ForAll(
		func(required, onHand, minOrder int64, obsolescence float64) bool {
			plan, err := EOLBuy(EOLBuyInput{
				RequiredUnits:           required,
				OnHand:                  onHand,
				MinOrderQty:             minOrder,
				Tiers:                   []planning.VolumeTier{{MinQty: 50, Price: 10}, {MinQty: 200, Price: 7}},
				ObsolescenceCostPerUnit: obsolescence,
			})
			if err != nil || len(plan.Candidates) == 0 {
				return false
			}
			for _, c := range plan.Candidates {
				if c.TotalCost < plan.Chosen.TotalCost {
					return false
				}
			}
			return true
		},
		gen.Int64Range(0, 1000),
		gen.Int64Range(0, 1000),
		gen.Int64Range(0, 300),
		gen.Float64Range(0, 20),
	))

	properties.TestingRun(t)
}
