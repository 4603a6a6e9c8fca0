package postgres

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	"gosupply/domain/core"
	"gosupply/domain/planning"
)

// IncidentCount counts quality incidents of a component within the given products
func (r *Repository) IncidentCount(ctx context.Context, componentID core.ComponentID, productIDs []core.ProductID) (int64, error) {
	var n int64
	err := r.db.GetContext(ctx, &n, `
		SELECT COUNT(*)
		FROM quality_incidents
		WHERE component_id = $1 AND product_id = ANY($2)
	`, componentID, pq.Array(toStrings(productIDs)))
	if err != nil {
		return 0, fmt.Errorf("failed to count quality incidents: %w", err)
	}
	return n, nil
}

// SurveyTotals sums survey scores and response counts of a product
func (r *Repository) SurveyTotals(ctx context.Context, productID core.ProductID) (planning.SurveyTotals, error) {
	var totals planning.SurveyTotals
	err := r.db.GetContext(ctx, &totals, `
		SELECT
			COALESCE(SUM(survey_score), 0)::float8 AS score_sum,
			COALESCE(SUM(response_count), 0)::float8 AS response_count
		FROM customer_surveys
		WHERE product_id = $1
	`, productID)
	if err != nil {
		return planning.SurveyTotals{}, fmt.Errorf("failed to sum customer surveys: %w", err)
	}
	return totals, nil
}
