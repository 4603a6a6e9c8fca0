package compare

import (
	"gosupply/domain/core"
	"gosupply/domain/planning"
	"gosupply/internal/metrics"
)

// RankTrimEfficiency annotates each trim with margin/cost, preserving input order.
func RankTrimEfficiency(trims []planning.TrimPerformance) []planning.TrimEfficiency {
	out := make([]planning.TrimEfficiency, len(trims))
	for i, t := range trims {
		out[i] = planning.TrimEfficiency{
			TrimPerformance: t,
			EfficiencyRatio: metrics.EfficiencyRatio(t.UnitMargin, t.StandardProductCost),
		}
	}
	return out
}

// TrimEfficiencyOutliers returns the most and least efficient trims. Ties keep the
// first trim encountered.
func TrimEfficiencyOutliers(trims []planning.TrimPerformance) (planning.TrimOutliers, error) {
	if len(trims) == 0 {
		return planning.TrimOutliers{}, core.NewEmptyInput("trim performance records")
	}

	ranked := RankTrimEfficiency(trims)
	most, least := 0, 0
	for i, t := range ranked {
		if t.EfficiencyRatio > ranked[most].EfficiencyRatio {
			most = i
		}
		if t.EfficiencyRatio < ranked[least].EfficiencyRatio {
			least = i
		}
	}
	return planning.TrimOutliers{
		MostEfficient:  ranked[most],
		LeastEfficient: ranked[least],
	}, nil
}
