package app

import (
	"context"
	"testing"

	"gosupply/domain/core"
	"gosupply/internal/metrics"
	"gosupply/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricService(t *testing.T) {
	svc := NewMetricService(newTestPlanner(t, testkit.Fixture()), nil)
	ctx := context.Background()

	t.Run("contribution margin", func(t *testing.T) {
		rec, err := svc.ContributionMargin(ctx, "SEDAN-BASE", "2025-01-01", "2025-01-31")
		require.NoError(t, err)
		assert.Equal(t, metrics.NameContributionMargin, rec.Name)
		require.NotNil(t, rec.Value)
		assert.Equal(t, 2000.0, *rec.Value)
	})

	t.Run("contribution margin without sales is null", func(t *testing.T) {
		rec, err := svc.ContributionMargin(ctx, "SEDAN-BASE", "2020-01-01", "2020-12-31")
		require.NoError(t, err)
		assert.Nil(t, rec.Value)
	})

	t.Run("contribution margin rejects reversed window", func(t *testing.T) {
		_, err := svc.ContributionMargin(ctx, "SEDAN-BASE", "2025-02-01", "2025-01-01")
		assert.True(t, core.IsInvalidArgument(err))
	})

	t.Run("days of hold", func(t *testing.T) {
		// 12 units in the 30 days up to 2024-11-20, 2 on hand
		rec, err := svc.DaysOfHold(ctx, "SUV-X", "DLR-1")
		require.NoError(t, err)
		require.NotNil(t, rec.Value)
		assert.InDelta(t, 5.0, *rec.Value, 1e-9)
		assert.Equal(t, map[string]string{"item_id": "SUV-X", "location_id": "DLR-1"}, rec.Keys)
	})

	t.Run("attach rate", func(t *testing.T) {
		rec, err := svc.AttachRate(ctx, "SEDAN-LUX", "1 month")
		require.NoError(t, err)
		require.NotNil(t, rec.Value)
		assert.InDelta(t, 100.0*2/12, *rec.Value, 1e-9)
	})

	t.Run("attach rate of unknown trim", func(t *testing.T) {
		_, err := svc.AttachRate(ctx, "NOPE", "1 month")
		assert.True(t, core.IsNotFoundError(err))
	})

	t.Run("customer satisfaction", func(t *testing.T) {
		rec, err := svc.CustomerSatisfaction(ctx, "SEDAN-LUX")
		require.NoError(t, err)
		require.NotNil(t, rec.Value)
		assert.InDelta(t, 8.7, *rec.Value, 1e-9)

		none, err := svc.CustomerSatisfaction(ctx, "SUV-X")
		require.NoError(t, err)
		assert.Nil(t, none.Value)
	})

	t.Run("market share", func(t *testing.T) {
		rec, err := svc.MarketShare(ctx, "SEDAN-BASE", 100, "1 month")
		require.NoError(t, err)
		require.NotNil(t, rec.Value)
		assert.Equal(t, 10.0, *rec.Value)

		_, err = svc.MarketShare(ctx, "SEDAN-BASE", 0, "1 month")
		assert.True(t, core.IsInvalidArgument(err))
	})
}
