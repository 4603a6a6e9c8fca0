package solver

import (
	"fmt"
	"math"
	"sort"

	"gosupply/domain/core"
	"gosupply/domain/planning"
)

// EOLBuyInput holds everything needed to size a final buy
type EOLBuyInput struct {
	RequiredUnits           int64                 `json:"required_units"`
	OnHand                  int64                 `json:"on_hand"`
	MinOrderQty             int64                 `json:"min_order_qty"`
	Tiers                   []planning.VolumeTier `json:"tiers"`
	ObsolescenceCostPerUnit float64               `json:"obsolescence_cost_per_unit"`
}

func (in EOLBuyInput) validate() error {
	switch {
	case in.RequiredUnits < 0:
		return core.NewInvalidArgument("required_units", "cannot be negative")
	case in.OnHand < 0:
		return core.NewInvalidArgument("on_hand", "cannot be negative")
	case in.MinOrderQty < 0:
		return core.NewInvalidArgument("min_order_qty", "cannot be negative")
	case in.ObsolescenceCostPerUnit < 0:
		return core.NewInvalidArgument("obsolescence_cost_per_unit", "cannot be negative")
	}
	for i, t := range in.Tiers {
		if t.MinQty < 0 || t.Price < 0 {
			return core.NewInvalidArgument(fmt.Sprintf("tiers[%d]", i), "cannot be negative")
		}
	}
	return nil
}

// EOLBuy picks the order quantity with the lowest total cost of ownership
// (purchase plus disposal of unsold surplus).
//
// Candidates are the net requirement, the minimum order quantity and every tier
// break, keeping only those at or above the minimum order quantity. A candidate
// below the net requirement is still eligible, so the cheapest plan may under-order.
// Zero is a candidate only when nothing is needed. Ties go to the smallest quantity.
func EOLBuy(in EOLBuyInput) (planning.EOLBuyPlan, error) {
	if err := in.validate(); err != nil {
		return planning.EOLBuyPlan{}, err
	}

	net := in.RequiredUnits - in.OnHand
	if net < 0 {
		net = 0
	}
	tiers := planning.SortTiersDescending(in.Tiers)

	plan := planning.EOLBuyPlan{NetRequired: net}
	for i, q := range candidateQuantities(net, in.MinOrderQty, in.Tiers) {
		c := costQuantity(q, net, tiers, in.ObsolescenceCostPerUnit)
		plan.Candidates = append(plan.Candidates, c)
		if i == 0 || c.TotalCost < plan.Chosen.TotalCost {
			plan.Chosen = c
		}
	}
	plan.Rationale = eolRationale(plan)
	return plan, nil
}

func candidateQuantities(net, minOrder int64, tiers []planning.VolumeTier) []int64 {
	seen := map[int64]bool{}
	var out []int64
	add := func(q int64) {
		if seen[q] {
			return
		}
		seen[q] = true
		if q == 0 {
			if net == 0 {
				out = append(out, q)
			}
			return
		}
		if q >= minOrder {
			out = append(out, q)
		}
	}

	add(net)
	add(minOrder)
	for _, t := range tiers {
		add(t.MinQty)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// tierPrice expects tiers sorted by MinQty descending.
func tierPrice(q int64, tiers []planning.VolumeTier) float64 {
	if len(tiers) == 0 {
		return 0
	}
	for _, t := range tiers {
		if t.MinQty <= q {
			return t.Price
		}
	}
	return tiers[len(tiers)-1].Price
}

func costQuantity(q, net int64, tiers []planning.VolumeTier, obsolescence float64) planning.CostedQuantity {
	price := tierPrice(q, tiers)
	surplus := q - net
	if surplus < 0 {
		surplus = 0
	}
	purchase := float64(q) * price
	disposal := float64(surplus) * obsolescence
	return planning.CostedQuantity{
		Quantity:         q,
		UnitPrice:        price,
		PurchaseCost:     purchase,
		SurplusUnits:     surplus,
		ObsolescenceCost: disposal,
		TotalCost:        purchase + disposal,
	}
}

func eolRationale(plan planning.EOLBuyPlan) string {
	c := plan.Chosen
	if c.Quantity == 0 {
		return "On-hand inventory covers the remaining lifetime demand; no purchase needed."
	}
	msg := fmt.Sprintf("Order %d units at unit price %.2f for a total cost of %.2f (purchase %.2f, obsolescence %.2f on %d surplus units).",
		c.Quantity, c.UnitPrice, c.TotalCost, c.PurchaseCost, c.ObsolescenceCost, c.SurplusUnits)
	if c.Quantity < plan.NetRequired {
		msg += fmt.Sprintf(" This covers %d of the %d units still required.", c.Quantity, plan.NetRequired)
	}
	return msg
}

// roundUp returns ceil(x) as an integer quantity.
func roundUp(x float64) int64 {
	return int64(math.Ceil(x))
}
