// Package metrics computes single derived business metrics from flat record sets.
// Every function is pure; zero denominators resolve to a documented sentinel.
package metrics

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"

	"gosupply/domain/core"
	"gosupply/domain/planning"
)

// Metric names
const (
	NameMean                 = "mean"
	NameStdDev               = "std_dev"
	NameContributionMargin   = "contribution_margin_per_unit"
	NameInventoryDaysOfHold  = "inventory_days_of_hold"
	NameAttachRate           = "attach_rate_pct"
	NameCustomerSatisfaction = "customer_satisfaction_score"
	NameMarketShare          = "market_share_pct"
	NameEfficiencyRatio      = "efficiency_ratio"
	NameProfitThreshold      = "profit_threshold_units"
)

// TrailingSalesDays is the window used for average daily sales.
const TrailingSalesDays = 30

// SampleSummary is the mean and standard deviation of a numeric sample
type SampleSummary struct {
	Count  int      `json:"count"`
	Mean   *float64 `json:"mean"`
	StdDev float64  `json:"std_dev"`
}

// Summarize returns the sample mean and the sample standard deviation.
// An empty sample has no mean; samples of size 0 or 1 have a standard deviation of 0.
func Summarize(sample []float64) SampleSummary {
	summary := SampleSummary{Count: len(sample)}
	if len(sample) == 0 {
		return summary
	}

	mean, err := stats.Mean(sample)
	if err != nil {
		return summary
	}
	summary.Mean = planning.Float(mean)

	if len(sample) > 1 {
		std, err := stats.StandardDeviationSample(sample)
		if err == nil && !math.IsNaN(std) {
			summary.StdDev = std
		}
	}
	return summary
}

// ContributionMargin is sum(revenue - variable_cost) / sum(units); null when no units were sold.
func ContributionMargin(lines []planning.SalesLine) *float64 {
	margins := make([]float64, len(lines))
	units := make([]float64, len(lines))
	for i, l := range lines {
		margins[i] = l.Revenue - l.VariableCost
		units[i] = l.Units
	}
	return ratio(floats.Sum(margins), floats.Sum(units))
}

// InventoryDaysOfHold is latest inventory divided by the average daily sales over the
// trailing 30 days; null when nothing sold.
func InventoryDaysOfHold(latestInventoryUnits, trailingUnitsSold float64) *float64 {
	avgDaily := trailingUnitsSold / TrailingSalesDays
	return ratio(latestInventoryUnits, avgDaily)
}

// AttachRate is 100 * trim_units / parent_model_units; null when the parent sold nothing.
func AttachRate(trimUnits, parentModelUnits float64) *float64 {
	r := ratio(trimUnits, parentModelUnits)
	if r == nil {
		return nil
	}
	return planning.Float(100 * *r)
}

// CustomerSatisfaction is sum(survey_score) / sum(response_count); null with no responses.
func CustomerSatisfaction(totals planning.SurveyTotals) *float64 {
	return ratio(totals.ScoreSum, totals.ResponseCount)
}

// MarketShare is 100 * own_units / segment_total. The segment total is supplied by
// the caller and must be positive.
func MarketShare(ownUnits, segmentTotalUnits float64) (float64, error) {
	if segmentTotalUnits <= 0 {
		return 0, core.NewInvalidArgument("segment_total_units", "must be positive")
	}
	return 100 * ownUnits / segmentTotalUnits, nil
}

// EfficiencyRatio is unit_margin / unit_cost, floored to 0 when cost <= 0 so that
// the value stays sortable.
func EfficiencyRatio(unitMargin, unitCost float64) float64 {
	if unitCost <= 0 {
		return 0
	}
	return unitMargin / unitCost
}

// CampaignUplift is int(baseline * sum(uplift_pct) / 100), truncated toward zero.
func CampaignUplift(baselineForecast float64, upliftPcts []float64) int64 {
	return int64(baselineForecast * floats.Sum(upliftPcts) / 100)
}

// ProfitThreshold is the break-even unit count ceil(fixed_cost / unit_contribution);
// null when each unit loses money or breaks even.
func ProfitThreshold(fixedCost, unitContribution float64) *int64 {
	if unitContribution <= 0 {
		return nil
	}
	return planning.Int(int64(math.Ceil(fixedCost / unitContribution)))
}

func ratio(num, den float64) *float64 {
	if den == 0 {
		return nil
	}
	return planning.Float(num / den)
}
