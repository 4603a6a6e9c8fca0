package tools

import (
	"context"
	stderrors "errors"

	"gosupply/domain/planning"
	"gosupply/internal/compare"
	"gosupply/internal/metrics"
	"gosupply/internal/solver"
)

type trimsArgs struct {
	Trims []planning.TrimPerformance `json:"trims"`
}

type solveShiftArgs struct {
	Least       planning.TrimRef       `json:"least_efficient"`
	Most        planning.TrimRef       `json:"most_efficient"`
	Constraints planning.ConstraintSet `json:"constraints"`
	Period      string                 `json:"period"`
	LeastMargin *float64               `json:"least_unit_margin,omitempty"`
	MostMargin  *float64               `json:"most_unit_margin,omitempty"`
}

type shiftResult struct {
	Plan   planning.ShiftPlan    `json:"plan"`
	Impact *planning.ShiftImpact `json:"impact,omitempty"`
}

type selectSupplierArgs struct {
	Options     []planning.SupplierOption `json:"options"`
	RequiredQty int64                     `json:"required_qty"`
	Weights     *compare.SupplierWeights  `json:"weights,omitempty"`
}

type compareRoutesArgs struct {
	Models           planning.RouteModels `json:"models"`
	TimeValuePerHour *float64             `json:"time_value_per_hour,omitempty"`
}

type profitThresholdArgs struct {
	ProductID        string  `json:"product_id"`
	FixedCost        float64 `json:"fixed_cost"`
	UnitContribution float64 `json:"unit_contribution"`
}

type simulateArgs struct {
	Model    string  `json:"model"`
	Location string  `json:"location"`
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"std_dev"`
}

var trimPerformanceFields = map[string]prop{
	"product_id":                     idProp,
	"standard_product_cost":          numberProp,
	"standard_production_time_hours": numberProp,
	"unit_margin":                    numberProp,
}

var trimPerformanceProp = prop{
	"type":       "object",
	"properties": trimPerformanceFields,
	"required":   []string{"product_id", "standard_product_cost", "unit_margin"},
}

func registerStepTools(r *Registry, d Deps) error {
	errs := []error{
		Register(r, Spec{Name: "calculate_efficiency_ratio", Category: CategoryStep,
			Description: "Unit margin over unit cost of one trim."},
			object(trimPerformanceFields, "product_id", "standard_product_cost", "unit_margin"),
			func(_ context.Context, a planning.TrimPerformance) (planning.MetricRecord, error) {
				return metrics.EfficiencyRecord(a), nil
			}),

		Register(r, Spec{Name: "find_trim_efficiency_outliers", Category: CategoryStep,
			Description: "Most and least efficient trims of a line-up."},
			object(map[string]prop{"trims": {"type": "array", "items": trimPerformanceProp, "minItems": 1}}, "trims"),
			func(_ context.Context, a trimsArgs) (planning.TrimOutliers, error) {
				return compare.TrimEfficiencyOutliers(a.Trims)
			}),

		Register(r, Spec{Name: "solve_optimal_shift", Category: CategoryStep,
			Description: "Shift plan for the given trims and constraints; priced when both unit margins are given."},
			object(map[string]prop{
				"least_efficient":   trimRefProp,
				"most_efficient":    trimRefProp,
				"constraints":       {"type": "object", "additionalProperties": numberProp},
				"period":            periodProp,
				"least_unit_margin": numberProp,
				"most_unit_margin":  numberProp,
			}, "least_efficient", "most_efficient", "constraints", "period"),
			func(_ context.Context, a solveShiftArgs) (shiftResult, error) {
				plan, err := solver.OptimalShift(a.Least, a.Most, a.Constraints, a.Period)
				if err != nil {
					return shiftResult{}, err
				}
				res := shiftResult{Plan: plan}
				if a.LeastMargin != nil && a.MostMargin != nil {
					impact := solver.ProjectShiftImpact(plan, *a.LeastMargin, *a.MostMargin)
					res.Impact = &impact
				}
				return res, nil
			}),

		Register(r, Spec{Name: "solve_eol_buy", Category: CategoryStep,
			Description: "Final buy quantity with the lowest purchase plus obsolescence cost."},
			object(map[string]prop{
				"required_units":             intProp,
				"on_hand":                    intProp,
				"min_order_qty":              intProp,
				"tiers":                      objListProp,
				"obsolescence_cost_per_unit": numberProp,
			}, "required_units"),
			func(_ context.Context, a solver.EOLBuyInput) (planning.EOLBuyPlan, error) {
				return solver.EOLBuy(a)
			}),

		Register(r, Spec{Name: "select_supplier", Category: CategoryStep,
			Description: "Scores alternative suppliers on quality, lead time and price and picks the best."},
			object(map[string]prop{"options": objListProp, "required_qty": intProp, "weights": objectProp}, "options", "required_qty"),
			func(_ context.Context, a selectSupplierArgs) (planning.SupplierSelection, error) {
				w := d.SupplierWeights
				if a.Weights != nil {
					w = *a.Weights
				}
				return compare.SelectSupplier(a.Options, a.RequiredQty, w)
			}),

		Register(r, Spec{Name: "compare_routes", Category: CategoryStep,
			Description: "Compares the direct lane with the hub route on cost plus time value."},
			object(map[string]prop{"models": objectProp, "time_value_per_hour": numberProp}, "models"),
			func(_ context.Context, a compareRoutesArgs) (planning.RouteComparison, error) {
				tv := d.TimeValuePerHour
				if a.TimeValuePerHour != nil {
					tv = *a.TimeValuePerHour
				}
				return compare.CompareRoutes(a.Models, tv)
			}),

		Register(r, Spec{Name: "solve_inventory_transfer", Category: CategoryStep,
			Description: "Transfer quantity from the supplying location's surplus to the requesting location's shortfall."},
			object(map[string]prop{
				"product_id":     idProp,
				"requesting":     objectProp,
				"supplying":      objectProp,
				"service_factor": numberProp,
			}, "product_id", "requesting", "supplying"),
			func(_ context.Context, a solver.TransferInput) (planning.TransferPlan, error) {
				if a.ServiceFactor == 0 {
					a.ServiceFactor = d.ServiceFactor
				}
				return solver.InventoryTransfer(a)
			}),

		Register(r, Spec{Name: "calculate_profit_threshold", Category: CategoryStep,
			Description: "Break-even units; null when each unit does not contribute."},
			object(map[string]prop{"product_id": idProp, "fixed_cost": numberProp, "unit_contribution": numberProp},
				"product_id", "fixed_cost", "unit_contribution"),
			func(_ context.Context, a profitThresholdArgs) (planning.MetricRecord, error) {
				return metrics.ProfitThresholdRecord(a.ProductID, a.FixedCost, a.UnitContribution), nil
			}),
	}

	if d.Simulator != nil {
		errs = append(errs, Register(r, Spec{Name: "simulate_demand", Category: CategoryStep,
			Description: "Monte-Carlo demand percentiles for a model and location."},
			object(map[string]prop{"model": idProp, "location": optStrProp, "mean": numberProp, "std_dev": prop{"type": "number", "minimum": 0}},
				"model", "mean", "std_dev"),
			func(ctx context.Context, a simulateArgs) (planning.SimulationResult, error) {
				return d.Simulator.Simulate(ctx, planning.SimulationKey{Model: a.Model, Location: a.Location}, a.Mean, a.StdDev)
			}))
	}
	return stderrors.Join(errs...)
}
