package tools

import (
	"context"
	stderrors "errors"

	"gosupply/domain/planning"
)

type marginArgs struct {
	ProductID string `json:"product_id"`
	From      string `json:"from"`
	To        string `json:"to"`
}

type attachRateArgs struct {
	TrimID string `json:"trim_id"`
	Period string `json:"period"`
}

type marketShareArgs struct {
	ProductID         string  `json:"product_id"`
	SegmentTotalUnits float64 `json:"segment_total_units"`
	Period            string  `json:"period"`
}

func registerMetricTools(r *Registry, d Deps) error {
	m := d.Services.Metrics
	return stderrors.Join(
		Register(r, Spec{Name: "calculate_contribution_margin", Category: CategoryMetric,
			Description: "Contribution margin per unit over sales dated in [from, to]; null when nothing sold."},
			object(map[string]prop{"product_id": idProp, "from": dateProp, "to": dateProp}, "product_id", "from", "to"),
			func(ctx context.Context, a marginArgs) (planning.MetricRecord, error) {
				return m.ContributionMargin(ctx, a.ProductID, a.From, a.To)
			}),

		Register(r, Spec{Name: "calculate_inventory_days_of_hold", Category: CategoryMetric,
			Description: "Days the latest stock lasts at the average daily sales of the trailing 30 days."},
			object(map[string]prop{"item_id": idProp, "location_id": idProp}, "item_id", "location_id"),
			func(ctx context.Context, a itemLocationArgs) (planning.MetricRecord, error) {
				return m.DaysOfHold(ctx, a.ItemID, a.LocationID)
			}),

		Register(r, Spec{Name: "calculate_attach_rate", Category: CategoryMetric,
			Description: "Share of the base model's unit sales taken by the trim over the trailing period, in percent."},
			object(map[string]prop{"trim_id": idProp, "period": periodProp}, "trim_id", "period"),
			func(ctx context.Context, a attachRateArgs) (planning.MetricRecord, error) {
				return m.AttachRate(ctx, a.TrimID, a.Period)
			}),

		Register(r, Spec{Name: "calculate_customer_satisfaction", Category: CategoryMetric,
			Description: "Summed survey score per response; null without responses."},
			object(map[string]prop{"product_id": idProp}, "product_id"),
			func(ctx context.Context, a productArgs) (planning.MetricRecord, error) {
				return m.CustomerSatisfaction(ctx, a.ProductID)
			}),

		Register(r, Spec{Name: "calculate_market_share", Category: CategoryMetric,
			Description: "Trailing unit sales as a percentage of the given segment total."},
			object(map[string]prop{
				"product_id":          idProp,
				"segment_total_units": prop{"type": "number", "exclusiveMinimum": 0},
				"period":              periodProp,
			}, "product_id", "segment_total_units", "period"),
			func(ctx context.Context, a marketShareArgs) (planning.MetricRecord, error) {
				return m.MarketShare(ctx, a.ProductID, a.SegmentTotalUnits, a.Period)
			}),
	)
}
