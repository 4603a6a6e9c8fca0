// Package compare scores competing plans and selects the better one.
package compare

import (
	"math"

	"gosupply/domain/core"
	"gosupply/domain/planning"
)

// SupplierWeights are the composite score weights; they should sum to 1
type SupplierWeights struct {
	Quality  float64 `json:"quality" yaml:"quality"`
	LeadTime float64 `json:"lead_time" yaml:"lead_time"`
	Cost     float64 `json:"cost" yaml:"cost"`
}

// DefaultSupplierWeights favour quality over speed over price.
var DefaultSupplierWeights = SupplierWeights{Quality: 0.60, LeadTime: 0.25, Cost: 0.15}

// Validate rejects negative weights and an all-zero weighting.
func (w SupplierWeights) Validate() error {
	if w.Quality < 0 || w.LeadTime < 0 || w.Cost < 0 {
		return core.NewInvalidArgument("supplier_weights", "cannot be negative")
	}
	if w.Quality+w.LeadTime+w.Cost == 0 {
		return core.NewInvalidArgument("supplier_weights", "cannot all be zero")
	}
	return nil
}

// ScoreSuppliers normalizes each option against the worst lead time and price in the
// set. Output order matches input order.
func ScoreSuppliers(options []planning.SupplierOption, w SupplierWeights) []planning.ScoredOption {
	var maxLead, maxPrice float64
	for _, o := range options {
		maxLead = math.Max(maxLead, o.LeadTimeDays)
		maxPrice = math.Max(maxPrice, o.UnitPrice)
	}

	scored := make([]planning.ScoredOption, 0, len(options))
	for _, o := range options {
		s := planning.ScoredOption{
			Option:       o,
			QualityNorm:  o.QualityScore / 100,
			LeadTimeNorm: inverseNorm(o.LeadTimeDays, maxLead),
			CostNorm:     inverseNorm(o.UnitPrice, maxPrice),
		}
		s.Score = round4(w.Quality*s.QualityNorm + w.LeadTime*s.LeadTimeNorm + w.Cost*s.CostNorm)
		scored = append(scored, s)
	}
	return scored
}

// SelectSupplier picks the highest scoring alternative; the first one wins a tie.
// An empty option set yields SUPPLY_UNAVAILABLE instead of an error.
func SelectSupplier(options []planning.SupplierOption, requiredQty int64, w SupplierWeights) (planning.SupplierSelection, error) {
	if requiredQty < 0 {
		return planning.SupplierSelection{}, core.NewInvalidArgument("required_qty", "cannot be negative")
	}
	if err := w.Validate(); err != nil {
		return planning.SupplierSelection{}, err
	}

	sel := planning.SupplierSelection{
		Status:      planning.SupplyUnavailable,
		RequiredQty: requiredQty,
		Scored:      ScoreSuppliers(options, w),
	}
	if len(sel.Scored) == 0 {
		return sel, nil
	}

	best := 0
	for i, s := range sel.Scored {
		if s.Score > sel.Scored[best].Score {
			best = i
		}
	}
	chosen := sel.Scored[best]
	sel.Status = planning.SupplierSelected
	sel.Selected = &chosen
	sel.EstimatedCost = planning.Float(chosen.Option.UnitPrice * float64(requiredQty))
	return sel, nil
}

func inverseNorm(v, limit float64) float64 {
	if limit == 0 {
		return 0
	}
	return 1 - v/limit
}

func round4(x float64) float64 {
	return math.Round(x*1e4) / 1e4
}
