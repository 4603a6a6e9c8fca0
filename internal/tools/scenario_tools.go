package tools

import (
	"context"
	stderrors "errors"

	"gosupply/domain/intent"
)

type intentArgs struct {
	Task  string `json:"task"`
	Query string `json:"query"`
}

// ParsedIntent is the answer of user_intent_parser
type ParsedIntent struct {
	Task      intent.TaskKind `json:"task"`
	Arguments intent.Args     `json:"arguments"`
}

func registerScenarioTools(r *Registry, d Deps) error {
	s := d.Services
	return stderrors.Join(
		Register(r, Spec{Name: "recommend_trim_mix", Category: CategoryScenario,
			Description: intent.TaskTrimMix.Describe()},
			taskSchema(intent.TaskTrimMix), s.TrimMix.Recommend),
		Register(r, Spec{Name: "recommend_sourcing", Category: CategoryScenario,
			Description: intent.TaskSourcingMitigation.Describe()},
			taskSchema(intent.TaskSourcingMitigation), s.Sourcing.Mitigate),
		Register(r, Spec{Name: "recommend_route", Category: CategoryScenario,
			Description: intent.TaskRouteOptimization.Describe()},
			taskSchema(intent.TaskRouteOptimization), s.Logistics.Recommend),
		Register(r, Spec{Name: "recommend_eol_buy", Category: CategoryScenario,
			Description: intent.TaskEOLBuy.Describe()},
			taskSchema(intent.TaskEOLBuy), s.EOL.Recommend),
		Register(r, Spec{Name: "recommend_transfer", Category: CategoryScenario,
			Description: intent.TaskInventoryTransfer.Describe()},
			taskSchema(intent.TaskInventoryTransfer), s.Inventory.RecommendTransfer),
		Register(r, Spec{Name: "check_production_feasibility", Category: CategoryScenario,
			Description: intent.TaskProductionFeasibility.Describe()},
			taskSchema(intent.TaskProductionFeasibility), s.Production.CheckFeasibility),
		Register(r, Spec{Name: "forecast_demand", Category: CategoryScenario,
			Description: intent.TaskDemandForecast.Describe()},
			taskSchema(intent.TaskDemandForecast), s.Forecast.Forecast),
	)
}

func registerIntentTool(r *Registry, d Deps) error {
	if d.Intent == nil {
		return nil
	}
	tasks := make([]any, len(intent.AllTasks))
	for i, k := range intent.AllTasks {
		tasks[i] = string(k)
	}
	return Register(r, Spec{Name: "user_intent_parser", Category: CategoryIntent,
		Description: "Extracts the typed arguments of a planning task from a free-text request."},
		object(map[string]prop{"task": {"type": "string", "enum": tasks}, "query": idProp}, "task", "query"),
		func(ctx context.Context, a intentArgs) (ParsedIntent, error) {
			k, err := intent.ParseTaskKind(a.Task)
			if err != nil {
				return ParsedIntent{}, err
			}
			args, err := d.Intent.Parse(ctx, k, a.Query)
			if err != nil {
				return ParsedIntent{}, err
			}
			return ParsedIntent{Task: k, Arguments: args}, nil
		})
}
