package tools

import (
	"context"
	"encoding/json"
	"sort"
	"testing"

	"gosupply/app"
	"gosupply/domain/core"
	"gosupply/domain/intent"
	"gosupply/domain/planning"
	"gosupply/internal/compare"
	apperrors "gosupply/internal/errors"
	"gosupply/internal/recommend"
	"gosupply/internal/simulation"
	"gosupply/internal/solver"
	"gosupply/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type stubParser struct {
	args intent.Args
	err  error
	got  string
}

func (s *stubParser) Parse(_ context.Context, _ intent.TaskKind, query string) (intent.Args, error) {
	s.got = query
	return s.args, s.err
}

func newTestRegistry(t *testing.T, parser *stubParser) *Registry {
	t.Helper()
	logger := zaptest.NewLogger(t)
	planner := app.NewPlanner(testkit.Fixture(), testkit.Clock, logger)
	formatter := recommend.NewFormatter(recommend.WithClock(testkit.Clock))
	sim := simulation.NewSimulator(200, 1)
	opts := app.ServiceOptions{
		SupplierWeights:  compare.DefaultSupplierWeights,
		TimeValuePerHour: compare.DefaultTimeValuePerHour,
		ServiceFactor:    solver.DefaultServiceFactor,
		Simulator:        sim,
	}
	d := Deps{
		Planner:          planner,
		Services:         app.NewServices(planner, formatter, opts, logger),
		Simulator:        sim,
		SupplierWeights:  opts.SupplierWeights,
		TimeValuePerHour: opts.TimeValuePerHour,
		ServiceFactor:    opts.ServiceFactor,
	}
	if parser != nil {
		d.Intent = parser
	}

	r := NewRegistry(logger)
	require.NoError(t, RegisterAll(r, d))
	return r
}

func call[T any](t *testing.T, r *Registry, name, args string) T {
	t.Helper()
	out, err := r.Call(context.Background(), name, json.RawMessage(args))
	require.NoError(t, err)
	v, ok := out.(T)
	require.Truef(t, ok, "unexpected result type %T", out)
	return v
}

func TestRegistry_ListIsSortedAndComplete(t *testing.T) {
	r := newTestRegistry(t, &stubParser{})

	specs := r.List()
	names := make([]string, len(specs))
	for i, s := range specs {
		names[i] = s.Name
		assert.NotEmpty(t, s.Description, s.Name)
		assert.True(t, json.Valid(s.InputSchema), s.Name)
	}
	assert.True(t, sort.StringsAreSorted(names))

	for _, want := range []string{
		"calculate_sales_history", "read_inventory_history", "read_products", "evaluate_production_capacity",
		"read_bill_of_materials", "read_inventory_history_by_components", "read_purchase_order_lines",
		"read_sourcing_rules", "read_marketing_campaigns", "retrieve_primary_partners",
		"search_alternative_suppliers", "model_transportation_routes", "aggregate_trim_performance",
		"calculate_optimal_shift", "calculate_lifetime_demand", "get_component_sourcing_data",
		"calculate_contribution_margin", "calculate_inventory_days_of_hold", "calculate_attach_rate",
		"calculate_customer_satisfaction", "calculate_market_share",
		"calculate_efficiency_ratio", "find_trim_efficiency_outliers", "solve_optimal_shift", "solve_eol_buy",
		"select_supplier", "compare_routes", "solve_inventory_transfer", "calculate_profit_threshold",
		"simulate_demand", "recommend_trim_mix", "recommend_sourcing", "recommend_route", "recommend_eol_buy",
		"recommend_transfer", "check_production_feasibility", "forecast_demand", "user_intent_parser",
	} {
		assert.Contains(t, names, want)
	}
	assert.Len(t, names, 38)
}

func TestRegistry_OptionalToolsLeftOut(t *testing.T) {
	r := newTestRegistry(t, nil)

	_, ok := r.Lookup("user_intent_parser")
	assert.False(t, ok)
	_, ok = r.Lookup("simulate_demand")
	assert.True(t, ok)
}

func TestRegistry_RejectsDuplicates(t *testing.T) {
	r := NewRegistry(nil)
	fn := func(context.Context, productArgs) (string, error) { return "ok", nil }
	schema := object(map[string]prop{"product_id": idProp}, "product_id")

	require.NoError(t, Register(r, Spec{Name: "echo"}, schema, fn))
	assert.ErrorIs(t, Register(r, Spec{Name: "echo"}, schema, fn), ErrToolAlreadyRegistered)
}

func TestRegistry_CallErrors(t *testing.T) {
	r := newTestRegistry(t, nil)
	ctx := context.Background()

	t.Run("unknown tool", func(t *testing.T) {
		_, err := r.Call(ctx, "nope", nil)
		assert.ErrorIs(t, err, core.ErrUnknownTool)
		assert.Equal(t, apperrors.CodeUnknownTool, apperrors.GetCode(err))
	})

	t.Run("not JSON", func(t *testing.T) {
		_, err := r.Call(ctx, "read_products", json.RawMessage(`{`))
		assert.True(t, core.IsInvalidArgument(err))
	})

	t.Run("missing required field", func(t *testing.T) {
		_, err := r.Call(ctx, "read_products", json.RawMessage(`{}`))
		assert.True(t, core.IsInvalidArgument(err))
		assert.Equal(t, apperrors.CodeInvalidArgument, apperrors.GetCode(err))
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := r.Call(ctx, "read_products", json.RawMessage(`{"product_id":"SUV-X","colour":"red"}`))
		assert.True(t, core.IsInvalidArgument(err))
	})

	t.Run("typed validation after schema", func(t *testing.T) {
		_, err := r.Call(ctx, "recommend_transfer",
			json.RawMessage(`{"product_id":"SUV-X","requesting_loc_id":"DLR-1","supplying_loc_id":"DLR-1"}`))
		assert.True(t, core.IsInvalidArgument(err))
	})
}

func TestDataTools(t *testing.T) {
	r := newTestRegistry(t, nil)

	t.Run("sales history without filters", func(t *testing.T) {
		stats := call[planning.SalesStats](t, r, "calculate_sales_history", "")
		require.NotNil(t, stats.Mean)
		assert.InDelta(t, 46.0/8.0, *stats.Mean, 1e-9)
	})

	t.Run("product lookup miss is null", func(t *testing.T) {
		p := call[*planning.Product](t, r, "read_products", `{"product_id":"NOPE"}`)
		assert.Nil(t, p)
	})

	t.Run("marketing campaigns", func(t *testing.T) {
		up := call[campaignUplift](t, r, "read_marketing_campaigns",
			`{"product_id":"SEDAN-LUX","upcoming_campaigns":["Spring Launch","Winter Deal"],"baseline_forecast":30}`)
		assert.Equal(t, campaignUplift{UpliftPct: 15, CampaignUpliftQty: 4}, up)
	})

	t.Run("open purchase order lines only", func(t *testing.T) {
		lines := call[[]planning.PurchaseOrderLine](t, r, "read_purchase_order_lines", `{"component_ids":["C-100","C-200"]}`)
		require.Len(t, lines, 1)
		assert.Equal(t, "PO-1", lines[0].POID)
	})

	t.Run("trim performance tolerates a vague period", func(t *testing.T) {
		trims := call[[]planning.TrimPerformance](t, r, "aggregate_trim_performance", `{"base_model":"SEDAN","period":"lately"}`)
		assert.Len(t, trims, 2)
	})

	t.Run("optimal shift", func(t *testing.T) {
		plan := call[planning.ShiftPlan](t, r, "calculate_optimal_shift", `{
			"least_efficient": {"product_id": "SEDAN-BASE", "production_time": 10},
			"most_efficient": {"product_id": "SEDAN-LUX", "production_time": 12},
			"period": "1 month"}`)
		assert.Equal(t, int64(50), plan.Reallocate.Quantity)
		assert.Equal(t, int64(60), plan.Reduce.Quantity)
	})

	t.Run("lifetime demand", func(t *testing.T) {
		d := call[planning.LifetimeDemand](t, r, "calculate_lifetime_demand",
			`{"component_id":"C-200","affected_products":[{"product_id":"SEDAN-BASE"},{"product_id":"SEDAN-LUX","end_of_service_date":"2030-12-31"}]}`)
		assert.Equal(t, int64(380), d.TotalRequiredUnits)
	})
}

func TestStepTools(t *testing.T) {
	r := newTestRegistry(t, nil)

	t.Run("efficiency ratio", func(t *testing.T) {
		rec := call[planning.MetricRecord](t, r, "calculate_efficiency_ratio",
			`{"product_id":"SEDAN-BASE","standard_product_cost":20000,"unit_margin":2000}`)
		require.NotNil(t, rec.Value)
		assert.InDelta(t, 0.1, *rec.Value, 1e-12)
	})

	t.Run("priced shift", func(t *testing.T) {
		res := call[shiftResult](t, r, "solve_optimal_shift", `{
			"least_efficient": {"product_id": "A", "production_time": 10},
			"most_efficient": {"product_id": "B", "production_time": 12},
			"constraints": {"market_demand_qty": 60, "production_capacity_hours": 600},
			"period": "1 month", "least_unit_margin": 2000, "most_unit_margin": 6000}`)
		require.NotNil(t, res.Impact)
		assert.Equal(t, 180000.0, res.Impact.NetMarginGain)
	})

	t.Run("eol buy", func(t *testing.T) {
		plan := call[planning.EOLBuyPlan](t, r, "solve_eol_buy", `{"required_units":100,"on_hand":100}`)
		assert.Zero(t, plan.Chosen.Quantity)
	})

	t.Run("select supplier with default weights", func(t *testing.T) {
		sel := call[planning.SupplierSelection](t, r, "select_supplier", `{"options":[],"required_qty":5}`)
		assert.Equal(t, planning.SupplyUnavailable, sel.Status)
	})

	t.Run("compare routes with configured time value", func(t *testing.T) {
		cmp := call[planning.RouteComparison](t, r, "compare_routes",
			`{"models":{"current_route_model":{"lane_id":"L","total_transit_hr":2,"direct_cost":100},"new_route_model":{"leg1":{"lane_id":null},"hub":{"location_id":"H"},"leg2":{"lane_id":null}}}}`)
		assert.Equal(t, planning.RouteDirect, cmp.Decision)
		assert.Equal(t, 1100.0, *cmp.DirectEffectiveCost)
	})

	t.Run("profit threshold", func(t *testing.T) {
		rec := call[planning.MetricRecord](t, r, "calculate_profit_threshold",
			`{"product_id":"P","fixed_cost":1000,"unit_contribution":300}`)
		require.NotNil(t, rec.Value)
		assert.Equal(t, 4.0, *rec.Value)
	})

	t.Run("simulate demand", func(t *testing.T) {
		res := call[planning.SimulationResult](t, r, "simulate_demand", `{"model":"SEDAN-LUX","mean":30,"std_dev":0}`)
		assert.Equal(t, 30.0, res.P50)
	})
}

func TestScenarioAndIntentTools(t *testing.T) {
	parser := &stubParser{args: intent.TrimMixArgs{BaseModel: "SEDAN", Period: "1 month"}}
	r := newTestRegistry(t, parser)

	rec := call[planning.RecommendationRecord](t, r, "recommend_trim_mix", `{"base_model":"SEDAN","period":"1 month"}`)
	assert.Equal(t, planning.ScenarioTrimMix, rec.Scenario)
	assert.Equal(t, 180000.0, *rec.Details.ProjectedNetMarginGain)

	parsed := call[ParsedIntent](t, r, "user_intent_parser", `{"task":"t4","query":"rebalance sedan trims next month"}`)
	assert.Equal(t, intent.TaskTrimMix, parsed.Task)
	assert.Equal(t, parser.args, parsed.Arguments)
	assert.Equal(t, "rebalance sedan trims next month", parser.got)

	_, err := r.Call(context.Background(), "user_intent_parser", json.RawMessage(`{"task":"t9","query":"x"}`))
	assert.True(t, core.IsInvalidArgument(err))
}
