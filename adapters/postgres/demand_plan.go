package postgres

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	"gosupply/domain/core"
	"gosupply/domain/planning"
)

const finalPlanSource = "FINAL_PLAN"

// FinalPlanForecast sums FINAL_PLAN forecasts between two YYYY-MM periods, inclusive
func (r *Repository) FinalPlanForecast(ctx context.Context, productID core.ProductID, fromPeriod, toPeriod string) (float64, error) {
	var total float64
	err := r.db.GetContext(ctx, &total, `
		SELECT COALESCE(SUM(forecasted_qty), 0)::float8
		FROM demand_forecast_log
		WHERE product_id = $1 AND forecast_source = $2 AND target_period BETWEEN $3 AND $4
	`, productID, finalPlanSource, fromPeriod, toPeriod)
	if err != nil {
		return 0, fmt.Errorf("failed to sum forecast: %w", err)
	}
	return total, nil
}

// FinalPlanForecastsFrom sums FINAL_PLAN forecasts per product from a YYYY-MM period on.
// Products without forecasts are absent from the map.
func (r *Repository) FinalPlanForecastsFrom(ctx context.Context, productIDs []core.ProductID, fromPeriod string) (map[core.ProductID]float64, error) {
	var rows []struct {
		ProductID     core.ProductID `db:"product_id"`
		TotalForecast float64        `db:"total_forecast"`
	}
	err := r.db.SelectContext(ctx, &rows, `
		SELECT product_id, COALESCE(SUM(forecasted_qty), 0)::float8 AS total_forecast
		FROM demand_forecast_log
		WHERE product_id = ANY($1) AND forecast_source = $2 AND target_period >= $3
		GROUP BY product_id
	`, pq.Array(toStrings(productIDs)), finalPlanSource, fromPeriod)
	if err != nil {
		return nil, fmt.Errorf("failed to read forecasts: %w", err)
	}

	out := make(map[core.ProductID]float64, len(rows))
	for _, row := range rows {
		out[row.ProductID] = row.TotalForecast
	}
	return out, nil
}

// AvailableHours sums available production hours across plants in the window
func (r *Repository) AvailableHours(ctx context.Context, w core.Window) (float64, error) {
	var hours float64
	err := r.db.GetContext(ctx, &hours, `
		SELECT COALESCE(SUM(available_hours), 0)::float8
		FROM production_capacity
		WHERE capacity_date BETWEEN $1 AND $2
	`, w.From, w.To)
	if err != nil {
		return 0, fmt.Errorf("failed to sum available hours: %w", err)
	}
	return hours, nil
}

// TrimPerformance returns unit margin per trim of a base model. Trims without
// sales in the window have margin -standard_product_cost.
func (r *Repository) TrimPerformance(ctx context.Context, baseModel string, w core.Window) ([]planning.TrimPerformance, error) {
	var rows []planning.TrimPerformance
	err := r.db.SelectContext(ctx, &rows, `
		SELECT
			p.product_id,
			COALESCE(p.standard_product_cost, 0)::float8 AS standard_product_cost,
			COALESCE(p.standard_production_time_hours, 0)::float8 AS standard_production_time_hours,
			(COALESCE(AVG(sh.selling_price_per_unit), 0) - COALESCE(p.standard_product_cost, 0))::float8 AS unit_margin
		FROM products p
		LEFT JOIN sales_history sh
			ON p.product_id = sh.product_id AND sh.sales_dt BETWEEN $1 AND $2
		WHERE p.base_model = $3
		GROUP BY p.product_id, p.standard_product_cost, p.standard_production_time_hours
		ORDER BY p.product_id
	`, w.From, w.To, baseModel)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate trim performance: %w", err)
	}
	return rows, nil
}

// CampaignUpliftPct sums the predicted uplift of the named campaigns for a product
func (r *Repository) CampaignUpliftPct(ctx context.Context, productID core.ProductID, campaigns []string) (float64, error) {
	if len(campaigns) == 0 {
		return 0, nil
	}
	var pct float64
	err := r.db.GetContext(ctx, &pct, `
		SELECT COALESCE(SUM(predicted_uplift_pct), 0)::float8
		FROM marketing_campaigns
		WHERE target_product_id = $1 AND campaign_name = ANY($2)
	`, productID, pq.Array(campaigns))
	if err != nil {
		return 0, fmt.Errorf("failed to sum campaign uplift: %w", err)
	}
	return pct, nil
}
