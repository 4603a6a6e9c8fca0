package metrics

import (
	"gosupply/domain/planning"
)

// SummaryRecords reports the sample mean and standard deviation.
func SummaryRecords(s SampleSummary, keyvals ...string) []planning.MetricRecord {
	return []planning.MetricRecord{
		planning.NewMetric(NameMean, s.Mean, keyvals...),
		planning.NewMetric(NameStdDev, planning.Float(s.StdDev), keyvals...),
	}
}

// ContributionMarginRecord keys ContributionMargin by product.
func ContributionMarginRecord(productID string, lines []planning.SalesLine) planning.MetricRecord {
	return planning.NewMetric(NameContributionMargin, ContributionMargin(lines), "product_id", productID)
}

// DaysOfHoldRecord keys InventoryDaysOfHold by item and location.
func DaysOfHoldRecord(itemID, locationID string, latestInventoryUnits, trailingUnitsSold float64) planning.MetricRecord {
	return planning.NewMetric(NameInventoryDaysOfHold,
		InventoryDaysOfHold(latestInventoryUnits, trailingUnitsSold),
		"item_id", itemID, "location_id", locationID)
}

// AttachRateRecord keys AttachRate by trim.
func AttachRateRecord(trimID string, trimUnits, parentModelUnits float64) planning.MetricRecord {
	return planning.NewMetric(NameAttachRate, AttachRate(trimUnits, parentModelUnits), "trim_id", trimID)
}

// SatisfactionRecord keys CustomerSatisfaction by product; null without responses.
func SatisfactionRecord(productID string, totals planning.SurveyTotals) planning.MetricRecord {
	return planning.NewMetric(NameCustomerSatisfaction, CustomerSatisfaction(totals), "product_id", productID)
}

// MarketShareRecord keys MarketShare by product. A non-positive segment total is an error.
func MarketShareRecord(productID string, ownUnits, segmentTotalUnits float64) (planning.MetricRecord, error) {
	share, err := MarketShare(ownUnits, segmentTotalUnits)
	if err != nil {
		return planning.MetricRecord{}, err
	}
	return planning.NewMetric(NameMarketShare, planning.Float(share), "product_id", productID), nil
}

// EfficiencyRecord keys a trim's EfficiencyRatio by product.
func EfficiencyRecord(t planning.TrimPerformance) planning.MetricRecord {
	return planning.NewMetric(NameEfficiencyRatio,
		planning.Float(EfficiencyRatio(t.UnitMargin, t.StandardProductCost)),
		"product_id", t.ProductID.String())
}

// ProfitThresholdRecord keys ProfitThreshold by product; null when the unit contribution is not positive.
func ProfitThresholdRecord(productID string, fixedCost, unitContribution float64) planning.MetricRecord {
	var value *float64
	if units := ProfitThreshold(fixedCost, unitContribution); units != nil {
		value = planning.Float(float64(*units))
	}
	return planning.NewMetric(NameProfitThreshold, value, "product_id", productID)
}
