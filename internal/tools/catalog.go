package tools

import (
	stderrors "errors"

	"gosupply/app"
	"gosupply/domain/core"
	"gosupply/domain/intent"
	"gosupply/internal/compare"
	"gosupply/ports"
)

// Deps are the collaborators the built-in tools call into. Simulator and
// Intent are optional; their tools are left out when nil.
type Deps struct {
	Planner   *app.Planner
	Services  *app.Services
	Simulator ports.DemandSimulator
	Intent    ports.IntentParser

	SupplierWeights  compare.SupplierWeights
	TimeValuePerHour float64
	ServiceFactor    float64
}

// RegisterAll registers every built-in tool
func RegisterAll(r *Registry, d Deps) error {
	return stderrors.Join(
		registerDataTools(r, d),
		registerMetricTools(r, d),
		registerStepTools(r, d),
		registerScenarioTools(r, d),
		registerIntentTool(r, d),
	)
}

func taskSchema(k intent.TaskKind) string {
	s, err := intent.Schema(k)
	if err != nil {
		panic(err)
	}
	return s
}

func componentIDs(ids []string) []core.ComponentID {
	out := make([]core.ComponentID, len(ids))
	for i, id := range ids {
		out[i] = core.ComponentID(id)
	}
	return out
}
