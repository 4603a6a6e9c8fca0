package metrics

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestSingletonStdDevIsZero(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("std dev of a one-element sample is 0", prop.ForAll(
		func(x float64) bool {
			s := Summarize([]float64{x})
			return s.StdDev == 0 && s.Mean != nil && *s.Mean == x
		},
		gen.Float64Range(-1e9, 1e9),
	))

	properties.TestingRun(t)
}

func TestEfficiencyRatioFloor(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("ratio is 0 whenever cost <= 0", prop.ForAll(
		func(margin, cost float64) bool {
			return EfficiencyRatio(margin, cost) == 0
		},
		gen.Float64Range(-1e6, 1e6),
		gen.Float64Range(-1e6, 0),
	))

	properties.TestingRun(t)
}
