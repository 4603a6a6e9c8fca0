package solver

import (
	"gosupply/domain/core"
	"gosupply/domain/planning"
)

// LifetimeInput is the demand picture of a discontinued component across the
// products that use it
type LifetimeInput struct {
	Products        []core.ProductID           `json:"product_ids"`
	Forecasts       map[core.ProductID]float64 `json:"forecasts"`
	QuantityPerUnit map[core.ProductID]int64   `json:"quantity_per_unit"`
	Incidents       int64                      `json:"incidents"`
	TotalSales      int64                      `json:"total_sales"`
}

// LifetimeDemand sums production demand (forecast x BOM quantity) and service demand
// (historical failure rate x forecast). Missing forecasts or BOM rows count as zero.
func LifetimeDemand(in LifetimeInput) planning.LifetimeDemand {
	var production, forecastTotal float64
	for _, pid := range in.Products {
		f := in.Forecasts[pid]
		forecastTotal += f
		production += f * float64(in.QuantityPerUnit[pid])
	}

	var failureRate, service float64
	if in.TotalSales > 0 {
		failureRate = float64(in.Incidents) / float64(in.TotalSales)
		service = failureRate * forecastTotal
	}

	return planning.LifetimeDemand{
		ProductionDemand:   int64(production),
		ServiceDemand:      int64(service),
		TotalRequiredUnits: int64(production + service),
		FailureRate:        failureRate,
	}
}
