package ports

import (
	"context"

	"gosupply/domain/planning"
)

// DemandSimulator produces a demand distribution for a (model, location) key
type DemandSimulator interface {
	Simulate(ctx context.Context, key planning.SimulationKey, mean, stdDev float64) (planning.SimulationResult, error)
}
