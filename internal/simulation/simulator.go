// Package simulation draws Monte-Carlo demand scenarios keyed by (model, location).
package simulation

import (
	"context"
	"hash/fnv"
	"math"
	"math/rand/v2"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"gosupply/domain/core"
	"gosupply/domain/planning"
)

// DefaultRuns is the number of draws per simulation
const DefaultRuns = 1000

// Simulator draws normally distributed per-period demand, truncated at zero. The
// same key, base seed and inputs always produce the same result.
type Simulator struct {
	runs int
	seed uint64
}

// NewSimulator creates a simulator; runs <= 0 falls back to DefaultRuns.
func NewSimulator(runs int, seed uint64) *Simulator {
	if runs <= 0 {
		runs = DefaultRuns
	}
	return &Simulator{runs: runs, seed: seed}
}

// Simulate summarizes simulated demand for key with the given mean and std dev.
func (s *Simulator) Simulate(ctx context.Context, key planning.SimulationKey, mean, stdDev float64) (planning.SimulationResult, error) {
	if key.Model == "" {
		return planning.SimulationResult{}, core.NewInvalidArgument("model", "cannot be empty")
	}
	if stdDev < 0 || math.IsNaN(stdDev) || math.IsNaN(mean) {
		return planning.SimulationResult{}, core.NewInvalidArgument("std_dev", "must be a non-negative number")
	}

	draws := make([]float64, s.runs)
	if stdDev == 0 {
		for i := range draws {
			draws[i] = math.Max(0, mean)
		}
	} else {
		dist := distuv.Normal{Mu: mean, Sigma: stdDev, Src: s.stream(key)}
		for i := range draws {
			if i%256 == 0 {
				if err := ctx.Err(); err != nil {
					return planning.SimulationResult{}, err
				}
			}
			draws[i] = math.Max(0, dist.Rand())
		}
	}

	res := planning.SimulationResult{Key: key, Runs: s.runs}
	var err error
	if res.Mean, err = stats.Mean(draws); err != nil {
		return planning.SimulationResult{}, err
	}
	if res.P10, err = stats.Percentile(draws, 10); err != nil {
		return planning.SimulationResult{}, err
	}
	if res.P50, err = stats.Percentile(draws, 50); err != nil {
		return planning.SimulationResult{}, err
	}
	if res.P90, err = stats.Percentile(draws, 90); err != nil {
		return planning.SimulationResult{}, err
	}
	return res, nil
}

// stream derives a deterministic source for one (model, location) pair.
func (s *Simulator) stream(key planning.SimulationKey) rand.Source {
	h := fnv.New64a()
	h.Write([]byte(key.Model))
	h.Write([]byte{0})
	h.Write([]byte(key.Location))
	return rand.NewPCG(s.seed, h.Sum64())
}
