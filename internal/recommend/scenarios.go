package recommend

import (
	"fmt"
	"math"

	"gosupply/domain/core"
	"gosupply/domain/planning"
	"gosupply/internal/metrics"
)

// TrimMix recommends a production shift between the efficiency outliers.
// Details.ProjectedNetMarginGain is impact.NetMarginGain as computed by the solver.
func (f *Formatter) TrimMix(outliers planning.TrimOutliers, plan planning.ShiftPlan, impact planning.ShiftImpact) planning.RecommendationRecord {
	most, least := outliers.MostEfficient, outliers.LeastEfficient
	details := planning.Details{
		ProjectedNetMarginGain: planning.Float(impact.NetMarginGain),
		Quantity:               planning.Int(plan.Reallocate.Quantity),
		BindingConstraint:      plan.BindingConstraint,
		Metrics: []planning.MetricRecord{
			metrics.EfficiencyRecord(most.TrimPerformance),
			metrics.EfficiencyRecord(least.TrimPerformance),
		},
	}

	if least.ProductID == most.ProductID {
		justification := fmt.Sprintf("%s is the only trim with performance data over %s; there is no mix to rebalance.",
			most.ProductID, plan.Period)
		details.Metrics = details.Metrics[:1]
		return f.record(planning.ScenarioTrimMix,
			[]planning.Action{action(planning.ActionNoAction, most.ProductID.String(), nil, "")},
			justification, details)
	}
	if plan.Reallocate.Quantity == 0 {
		justification := fmt.Sprintf("No shift from %s to %s is possible over %s: the %s allows 0 additional units.",
			least.ProductID, most.ProductID, plan.Period, plan.BindingConstraint)
		return f.record(planning.ScenarioTrimMix,
			[]planning.Action{action(planning.ActionNoAction, most.ProductID.String(), nil, "")},
			justification, details)
	}

	actions := []planning.Action{
		action(planning.ActionReduceProduction, plan.Reduce.ProductID.String(), planning.Int(plan.Reduce.Quantity), ""),
		action(planning.ActionIncreaseProduction, plan.Reallocate.ProductID.String(), planning.Int(plan.Reallocate.Quantity), ""),
	}
	justification := fmt.Sprintf(
		"%s has efficiency ratio %.4f against %.4f for %s. Over %s, reduce %s by %s units and build %s more units of %s; "+
			"the binding constraint is %s. Projected net margin gain: %s.",
		most.ProductID, most.EfficiencyRatio, least.EfficiencyRatio, least.ProductID, plan.Period,
		plan.Reduce.ProductID, f.units(plan.Reduce.Quantity), f.units(plan.Reallocate.Quantity), plan.Reallocate.ProductID,
		plan.BindingConstraint, f.money(impact.NetMarginGain))
	return f.record(planning.ScenarioTrimMix, actions, justification, details)
}

// Sourcing recommends switching a short component to the best alternative supplier.
// baselineUnitPrice is the primary supplier's price, when known.
func (f *Formatter) Sourcing(componentID core.ComponentID, sel planning.SupplierSelection, baselineUnitPrice *float64) planning.RecommendationRecord {
	if sel.Status == planning.SupplyUnavailable || sel.Selected == nil {
		justification := fmt.Sprintf("No alternative supplier exists for %s; %s units remain uncovered. Escalate to procurement.",
			componentID, f.units(sel.RequiredQty))
		return f.record(planning.ScenarioSourcing,
			[]planning.Action{action(planning.ActionEscalate, componentID.String(), planning.Int(sel.RequiredQty), planning.SupplyUnavailable)},
			justification, planning.Details{Quantity: planning.Int(sel.RequiredQty)})
	}

	best := sel.Selected
	opt := best.Option
	details := planning.Details{
		ProjectedTotalCost: sel.EstimatedCost,
		Quantity:           planning.Int(sel.RequiredQty),
		Score:              planning.Float(best.Score),
	}
	if baselineUnitPrice != nil && sel.EstimatedCost != nil {
		baseline := *baselineUnitPrice * float64(sel.RequiredQty)
		details.BaselineCost = planning.Float(baseline)
		details.ExpectedCostSavings = planning.Float(Savings(baseline, *sel.EstimatedCost))
	}

	actions := []planning.Action{
		action(planning.ActionSwitchSupplier, opt.SupplierID.String(), nil, opt.SupplierName),
		action(planning.ActionPlaceOrder, componentID.String(), planning.Int(sel.RequiredQty), opt.SupplierID.String()),
	}
	justification := fmt.Sprintf(
		"%s (%s) scores %.4f of %d alternatives for %s: quality %.0f, lead time %.0f days, unit price %s. Estimated cost for %s units: %s.",
		opt.SupplierName, opt.SupplierID, best.Score, len(sel.Scored), componentID,
		opt.QualityScore, opt.LeadTimeDays, f.money(opt.UnitPrice), f.units(sel.RequiredQty), f.money(*sel.EstimatedCost))
	return f.record(planning.ScenarioSourcing, actions, justification, details)
}

// Route recommends keeping the direct lane or moving to the hub route.
func (f *Formatter) Route(models planning.RouteModels, cmp planning.RouteComparison) planning.RecommendationRecord {
	details := planning.Details{BaselineCost: cmp.DirectEffectiveCost}
	hubID := models.Proposed.Hub.LocationID.String()

	switch cmp.Decision {
	case planning.RouteNoRoute:
		return f.record(planning.ScenarioRoute,
			[]planning.Action{action(planning.ActionEscalate, hubID, nil, planning.RouteNoRoute)},
			"Neither a direct lane nor any leg of the hub route was found; no route can be recommended.", details)

	case planning.RouteHub:
		details.ProjectedTotalCost = cmp.HubEffectiveCost
		if cmp.DirectEffectiveCost != nil {
			details.ExpectedCostSavings = planning.Float(Savings(*cmp.DirectEffectiveCost, *cmp.HubEffectiveCost))
			justification := fmt.Sprintf(
				"Routing via %s costs %s effective (%s + %.1f h x %s/h) against %s for the direct lane (%s + %.1f h). Expected savings: %s per shipment.",
				hubID, f.money(*cmp.HubEffectiveCost), f.money(cmp.HubCost), cmp.HubHours, f.money(cmp.TimeValuePerHour),
				f.money(*cmp.DirectEffectiveCost), f.money(cmp.DirectCost), cmp.DirectHours, f.money(*details.ExpectedCostSavings))
			return f.record(planning.ScenarioRoute,
				[]planning.Action{action(planning.ActionRerouteShipments, hubID, nil, "")}, justification, details)
		}
		justification := fmt.Sprintf("No direct lane exists; the hub route via %s costs %s effective (%s + %.1f h x %s/h).",
			hubID, f.money(*cmp.HubEffectiveCost), f.money(cmp.HubCost), cmp.HubHours, f.money(cmp.TimeValuePerHour))
		return f.record(planning.ScenarioRoute,
			[]planning.Action{action(planning.ActionRerouteShipments, hubID, nil, "")}, justification, details)
	}

	details.ProjectedTotalCost = cmp.DirectEffectiveCost
	details.ExpectedCostSavings = planning.Float(0)
	lane := ""
	if models.Current != nil {
		lane = models.Current.LaneID
	}
	var justification string
	if cmp.HubEffectiveCost == nil {
		justification = fmt.Sprintf("No part of the hub route via %s was found; keep lane %s at %s effective.",
			hubID, lane, f.money(*cmp.DirectEffectiveCost))
	} else {
		justification = fmt.Sprintf(
			"Lane %s costs %s effective (%s + %.1f h x %s/h), not more than %s via %s (%s + %.1f h). Keep the current route.",
			lane, f.money(*cmp.DirectEffectiveCost), f.money(cmp.DirectCost), cmp.DirectHours, f.money(cmp.TimeValuePerHour),
			f.money(*cmp.HubEffectiveCost), hubID, f.money(cmp.HubCost), cmp.HubHours)
	}
	return f.record(planning.ScenarioRoute,
		[]planning.Action{action(planning.ActionKeepRoute, lane, nil, "")}, justification, details)
}

// EOLBuy recommends the final buy for a discontinued component.
func (f *Formatter) EOLBuy(componentID core.ComponentID, demand planning.LifetimeDemand, plan planning.EOLBuyPlan) planning.RecommendationRecord {
	c := plan.Chosen
	details := planning.Details{
		ProjectedTotalCost: planning.Float(c.TotalCost),
		Quantity:           planning.Int(c.Quantity),
	}
	head := fmt.Sprintf("Lifetime demand for %s is %s units (%s production, %s service); %s are still required after on-hand stock. ",
		componentID, f.units(demand.TotalRequiredUnits), f.units(demand.ProductionDemand), f.units(demand.ServiceDemand),
		f.units(plan.NetRequired))

	if c.Quantity == 0 {
		return f.record(planning.ScenarioEOLBuy,
			[]planning.Action{action(planning.ActionNoAction, componentID.String(), nil, "")},
			head+plan.Rationale, details)
	}
	return f.record(planning.ScenarioEOLBuy,
		[]planning.Action{action(planning.ActionPlaceOrder, componentID.String(), planning.Int(c.Quantity), "")},
		head+plan.Rationale, details)
}

// Transfer recommends moving stock between locations.
func (f *Formatter) Transfer(plan planning.TransferPlan) planning.RecommendationRecord {
	details := planning.Details{
		Quantity:          planning.Int(plan.Quantity),
		BindingConstraint: plan.BindingConstraint,
	}
	if plan.Quantity == 0 {
		justification := fmt.Sprintf("No transfer of %s: %s is short %s units against target %s, %s has %s surplus units against target %s.",
			plan.ProductID, plan.To, f.units(plan.Shortfall), f.units(plan.RequestingTarget),
			plan.From, f.units(plan.Surplus), f.units(plan.SupplyingTarget))
		return f.record(planning.ScenarioTransfer,
			[]planning.Action{action(planning.ActionNoAction, plan.ProductID.String(), nil, "")}, justification, details)
	}

	justification := fmt.Sprintf(
		"Transfer %s units of %s from %s to %s. %s is short %s units against target %s; %s holds %s surplus units above target %s. Binding: %s.",
		f.units(plan.Quantity), plan.ProductID, plan.From, plan.To,
		plan.To, f.units(plan.Shortfall), f.units(plan.RequestingTarget),
		plan.From, f.units(plan.Surplus), f.units(plan.SupplyingTarget), plan.BindingConstraint)
	return f.record(planning.ScenarioTransfer,
		[]planning.Action{action(planning.ActionTransferInventory, plan.ProductID.String(), planning.Int(plan.Quantity),
			fmt.Sprintf("%s -> %s", plan.From, plan.To))},
		justification, details)
}

// Production reports whether a requested build fits the available capacity.
func (f *Formatter) Production(check planning.CapacityCheck, dueDate string) planning.RecommendationRecord {
	details := planning.Details{Quantity: planning.Int(check.RequestedQty)}
	if check.IsCapacityAvailable {
		justification := fmt.Sprintf("Building %s units of %s needs %.1f h; %.1f h are available by %s.",
			f.units(check.RequestedQty), check.ProductID, check.RequiredHours, check.TotalAvailableHours, dueDate)
		return f.record(planning.ScenarioProduction,
			[]planning.Action{action(planning.ActionScheduleProduction, check.ProductID.String(), planning.Int(check.RequestedQty), dueDate)},
			justification, details)
	}
	details.BindingConstraint = planning.BindingProductionCapacity
	justification := fmt.Sprintf("Building %s units of %s needs %.1f h but only %.1f h are available by %s (short %.1f h).",
		f.units(check.RequestedQty), check.ProductID, check.RequiredHours, check.TotalAvailableHours, dueDate,
		check.RequiredHours-check.TotalAvailableHours)
	return f.record(planning.ScenarioProduction,
		[]planning.Action{action(planning.ActionEscalate, check.ProductID.String(), planning.Int(check.RequestedQty), planning.BindingProductionCapacity)},
		justification, details)
}

// Forecast turns an uplift-adjusted forecast into a supply planning quantity.
func (f *Formatter) Forecast(fc planning.DemandForecast) planning.RecommendationRecord {
	qty := int64(math.Ceil(fc.Forecast))
	details := planning.Details{Quantity: planning.Int(qty)}
	justification := fmt.Sprintf("Baseline forecast for %s in %s is %.0f units; campaigns add %.1f%% (%s units), for %s units.",
		fc.ProductID, fc.TargetPeriod, fc.Baseline, fc.UpliftPct, f.units(fc.CampaignUpliftQty), f.units(qty))
	if s := fc.Simulation; s != nil {
		justification += fmt.Sprintf(" Simulated demand over %d runs: P10 %.0f, P50 %.0f, P90 %.0f.", s.Runs, s.P10, s.P50, s.P90)
	}
	return f.record(planning.ScenarioForecast,
		[]planning.Action{action(planning.ActionPlanSupply, fc.ProductID.String(), planning.Int(qty), fc.TargetPeriod)},
		justification, details)
}
