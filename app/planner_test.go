package app

import (
	"context"
	"errors"
	"testing"

	"gosupply/domain/core"
	"gosupply/domain/planning"
	"gosupply/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanner_ModelRoutes(t *testing.T) {
	p := newTestPlanner(t, testkit.Fixture())

	models, err := p.ModelRoutes(context.Background(), "PLANT-1", "HUB-1", "DLR-1")
	require.NoError(t, err)

	require.NotNil(t, models.Current)
	assert.Equal(t, "L-D", models.Current.LaneID)
	assert.Equal(t, 48.0, models.Current.TotalTransitHours)
	require.NotNil(t, models.Proposed.Leg1.LaneID)
	assert.Equal(t, "L-1", *models.Proposed.Leg1.LaneID)
	assert.True(t, models.Proposed.Hub.Found)
	assert.Equal(t, 4.0, models.Proposed.Hub.HandlingHours)
	assert.Equal(t, 600.0, models.Proposed.Leg2.Cost)
}

func TestPlanner_ModelRoutesMissingLegs(t *testing.T) {
	p := newTestPlanner(t, testkit.Fixture())

	models, err := p.ModelRoutes(context.Background(), "PLANT-9", "HUB-9", "DLR-9")
	require.NoError(t, err)

	assert.Nil(t, models.Current)
	assert.Nil(t, models.Proposed.Leg1.LaneID)
	assert.False(t, models.Proposed.Hub.Found)
	assert.Equal(t, core.LocationID("HUB-9"), models.Proposed.Hub.LocationID)
}

func TestPlanner_ShiftConstraints(t *testing.T) {
	p := newTestPlanner(t, testkit.Fixture())

	cs, err := p.ShiftConstraints(context.Background(), "SEDAN-LUX", core.Period{Count: 1, Unit: core.UnitMonth})
	require.NoError(t, err)

	// January and February plan, capacity dated 2025-01-20 and 2025-02-10
	assert.Equal(t, 60.0, cs.Get(planning.ConstraintMarketDemandQty))
	assert.Equal(t, 600.0, cs.Get(planning.ConstraintProductionCapacityHours))
}

func TestPlanner_TrimPerformanceFallsBackToOneYear(t *testing.T) {
	p := newTestPlanner(t, testkit.Fixture())

	trims, err := p.TrimPerformance(context.Background(), "SEDAN", "sometime")
	require.NoError(t, err)
	require.Len(t, trims, 2)

	// the October LUX sale at 35000 now counts
	assert.Equal(t, core.ProductID("SEDAN-LUX"), trims[1].ProductID)
	assert.InDelta(t, 5500.0, trims[1].UnitMargin, 1e-9)
}

func TestPlanner_LifetimeDemand(t *testing.T) {
	p := newTestPlanner(t, testkit.Fixture())

	d, err := p.LifetimeDemand(context.Background(), "C-200", []core.ProductID{"SEDAN-BASE", "SEDAN-LUX"})
	require.NoError(t, err)

	// 100 x 2 + 159 x 1 production, 2/24 failures over 259 forecast units
	assert.Equal(t, int64(359), d.ProductionDemand)
	assert.Equal(t, int64(21), d.ServiceDemand)
	assert.Equal(t, int64(380), d.TotalRequiredUnits)
	assert.InDelta(t, 2.0/24.0, d.FailureRate, 1e-12)
}

func TestPlanner_LifetimeDemandNoProducts(t *testing.T) {
	store := testkit.Fixture()
	p := newTestPlanner(t, store)

	d, err := p.LifetimeDemand(context.Background(), "C-200", nil)
	require.NoError(t, err)
	assert.Equal(t, planning.LifetimeDemand{}, d)
	assert.Zero(t, store.Calls("FinalPlanForecastsFrom"))
}

func TestPlanner_ComponentSourcingData(t *testing.T) {
	p := newTestPlanner(t, testkit.Fixture())

	data, err := p.ComponentSourcingData(context.Background(), "C-200")
	require.NoError(t, err)

	assert.Equal(t, int64(134), data.CurrentInventory)
	assert.True(t, data.HasSourcingRule)
	assert.Equal(t, int64(100), data.MinOrderQty)
	assert.Len(t, data.VolumePricing, 2)
	assert.Equal(t, 15.0, data.ObsolescenceCostPerUnit)
}

func TestPlanner_ComponentSourcingDataUnknownComponent(t *testing.T) {
	p := newTestPlanner(t, testkit.Fixture())

	data, err := p.ComponentSourcingData(context.Background(), "C-999")
	require.NoError(t, err)

	assert.False(t, data.HasSourcingRule)
	assert.Zero(t, data.CurrentInventory)
	assert.Zero(t, data.ObsolescenceCostPerUnit)
}

func TestPlanner_CapacityCheck(t *testing.T) {
	p := newTestPlanner(t, testkit.Fixture())
	ctx := context.Background()

	t.Run("feasible", func(t *testing.T) {
		check, err := p.CapacityCheck(ctx, "SEDAN-LUX", 40, "2025-02-28")
		require.NoError(t, err)
		assert.Equal(t, 480.0, check.RequiredHours)
		assert.Equal(t, 600.0, check.TotalAvailableHours)
		assert.True(t, check.IsCapacityAvailable)
	})

	t.Run("bad due date", func(t *testing.T) {
		_, err := p.CapacityCheck(ctx, "SEDAN-LUX", 40, "28/02/2025")
		assert.True(t, core.IsInvalidArgument(err))
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := p.CapacityCheck(ctx, "NOPE", 1, "2025-02-28")
		assert.True(t, core.IsNotFoundError(err))
	})
}

func TestPlanner_LocationStock(t *testing.T) {
	p := newTestPlanner(t, testkit.Fixture())

	s, err := p.LocationStock(context.Background(), "SUV-X", "DLR-1")
	require.NoError(t, err)

	assert.Equal(t, int64(2), s.OnHand)
	assert.Equal(t, 6.0, s.DemandMean)
	assert.InDelta(t, 1.41421356, s.DemandStd, 1e-6)
}

func TestPlanner_StoreErrorIsWrapped(t *testing.T) {
	store := testkit.Fixture()
	store.Err = errors.New("connection refused")
	p := newTestPlanner(t, store)

	_, err := p.ModelRoutes(context.Background(), "PLANT-1", "HUB-1", "DLR-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, store.Err)
	assert.Contains(t, err.Error(), "failed to model routes")
}
