package postgres

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	"gosupply/domain/core"
	"gosupply/domain/planning"
)

// SalesStatistics returns mean and sample standard deviation of units sold.
// STDDEV of a single row is NULL in postgres and reads as 0.
func (r *Repository) SalesStatistics(ctx context.Context, productID, locationID string) (planning.SalesStats, error) {
	var stats planning.SalesStats
	err := r.db.GetContext(ctx, &stats, `
		SELECT
			AVG(units_sold)::float8 AS mean,
			COALESCE(STDDEV(units_sold), 0)::float8 AS standard_deviation
		FROM sales_history
		WHERE ($1 = '' OR product_id = $1)
		  AND ($2 = '' OR location_id = $2)
	`, productID, locationID)
	if err != nil {
		return planning.SalesStats{}, fmt.Errorf("failed to calculate sales statistics: %w", err)
	}
	return stats, nil
}

// SalesLines returns revenue and variable cost per transaction in the window.
// Variable cost is units times the product's standard cost.
func (r *Repository) SalesLines(ctx context.Context, productID core.ProductID, w core.Window) ([]planning.SalesLine, error) {
	var lines []planning.SalesLine
	err := r.db.SelectContext(ctx, &lines, `
		SELECT
			(sh.units_sold * sh.selling_price_per_unit)::float8 AS revenue,
			(sh.units_sold * p.standard_product_cost)::float8 AS variable_cost,
			sh.units_sold::float8 AS units
		FROM sales_history sh
		JOIN products p ON p.product_id = sh.product_id
		WHERE sh.product_id = $1 AND sh.sales_dt BETWEEN $2 AND $3
		ORDER BY sh.sales_dt, sh.transaction_id
	`, productID, w.From, w.To)
	if err != nil {
		return nil, fmt.Errorf("failed to read sales lines: %w", err)
	}
	return lines, nil
}

// UnitsSold sums units for the products, over all time when w is nil.
func (r *Repository) UnitsSold(ctx context.Context, productIDs []core.ProductID, w *core.Window) (int64, error) {
	var total int64
	var err error
	if w == nil {
		err = r.db.GetContext(ctx, &total, `
			SELECT COALESCE(SUM(units_sold), 0) FROM sales_history WHERE product_id = ANY($1)
		`, pq.Array(toStrings(productIDs)))
	} else {
		err = r.db.GetContext(ctx, &total, `
			SELECT COALESCE(SUM(units_sold), 0) FROM sales_history
			WHERE product_id = ANY($1) AND sales_dt BETWEEN $2 AND $3
		`, pq.Array(toStrings(productIDs)), w.From, w.To)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to sum units sold: %w", err)
	}
	return total, nil
}

// BaseModelUnitsSold sums units over every trim of a base model.
func (r *Repository) BaseModelUnitsSold(ctx context.Context, baseModel string, w core.Window) (int64, error) {
	var total int64
	err := r.db.GetContext(ctx, &total, `
		SELECT COALESCE(SUM(sh.units_sold), 0)
		FROM sales_history sh
		JOIN products p ON p.product_id = sh.product_id
		WHERE p.base_model = $1 AND sh.sales_dt BETWEEN $2 AND $3
	`, baseModel, w.From, w.To)
	if err != nil {
		return 0, fmt.Errorf("failed to sum base model units: %w", err)
	}
	return total, nil
}

// TrailingUnitsSold sums units over the `days` days ending at the pair's latest sale.
func (r *Repository) TrailingUnitsSold(ctx context.Context, productID, locationID string, days int) (int64, error) {
	var total int64
	err := r.db.GetContext(ctx, &total, `
		SELECT COALESCE(SUM(units_sold), 0)
		FROM sales_history
		WHERE product_id = $1 AND location_id = $2
		  AND sales_dt > (
			SELECT MAX(sales_dt) FROM sales_history WHERE product_id = $1 AND location_id = $2
		  ) - $3::int
	`, productID, locationID, days)
	if err != nil {
		return 0, fmt.Errorf("failed to sum trailing units: %w", err)
	}
	return total, nil
}
