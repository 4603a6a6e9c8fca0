package compare

import (
	"gosupply/domain/core"
	"gosupply/domain/planning"
)

// DefaultTimeValuePerHour converts transit hours into cost.
const DefaultTimeValuePerHour = 500.0

// CompareRoutes compares the direct lane with the hub route on effective cost
// (cost + hours * timeValuePerHour).
//
// Missing hub legs count as zero time and cost. The hub route is chosen only when it
// is strictly cheaper, or when there is no direct lane but some part of the hub route
// exists. If neither route was found the decision is NO_ROUTE_FOUND.
func CompareRoutes(models planning.RouteModels, timeValuePerHour float64) (planning.RouteComparison, error) {
	if timeValuePerHour < 0 {
		return planning.RouteComparison{}, core.NewInvalidArgument("time_value_per_hour", "cannot be negative")
	}

	cmp := planning.RouteComparison{TimeValuePerHour: timeValuePerHour}

	hub := models.Proposed
	hubMeasurable := hub.Measurable()
	cmp.HubHours = hub.Leg1.TransitHours + hub.Hub.HandlingHours + hub.Leg2.TransitHours
	cmp.HubCost = hub.Leg1.Cost + hub.Hub.HandlingCost + hub.Leg2.Cost
	if hubMeasurable {
		cmp.HubEffectiveCost = planning.Float(cmp.HubCost + cmp.HubHours*timeValuePerHour)
	}

	direct := models.Current
	if direct != nil {
		cmp.DirectHours = direct.TotalTransitHours
		cmp.DirectCost = direct.DirectCost
		cmp.DirectEffectiveCost = planning.Float(cmp.DirectCost + cmp.DirectHours*timeValuePerHour)
	}

	switch {
	case direct == nil && !hubMeasurable:
		cmp.Decision = planning.RouteNoRoute
	case direct == nil:
		cmp.Decision = planning.RouteHub
	case !hubMeasurable:
		cmp.Decision = planning.RouteDirect
	case *cmp.HubEffectiveCost < *cmp.DirectEffectiveCost:
		cmp.Decision = planning.RouteHub
	default:
		cmp.Decision = planning.RouteDirect
	}
	return cmp, nil
}
