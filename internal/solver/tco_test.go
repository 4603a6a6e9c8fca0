package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gosupply/domain/core"
	"gosupply/domain/planning"
)

func twoTiers() []planning.VolumeTier {
	return []planning.VolumeTier{{MinQty: 50, Price: 10}, {MinQty: 100, Price: 8}}
}

// The cheapest candidate under-orders: 50 units cost less than covering all 80.
func TestEOLBuyKeepsUnderOrderingCandidate(t *testing.T) {
	plan, err := EOLBuy(EOLBuyInput{
		RequiredUnits:           100,
		OnHand:                  20,
		MinOrderQty:             50,
		Tiers:                   twoTiers(),
		ObsolescenceCostPerUnit: 2,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(80), plan.NetRequired)
	require.Len(t, plan.Candidates, 3)
	assert.Equal(t, []int64{50, 80, 100}, []int64{plan.Candidates[0].Quantity, plan.Candidates[1].Quantity, plan.Candidates[2].Quantity})

	assert.Equal(t, 500.0, plan.Candidates[0].TotalCost)
	assert.Equal(t, 800.0, plan.Candidates[1].TotalCost)
	assert.Equal(t, 10.0, plan.Candidates[1].UnitPrice)
	assert.Equal(t, 840.0, plan.Candidates[2].TotalCost)
	assert.Equal(t, int64(20), plan.Candidates[2].SurplusUnits)

	assert.Equal(t, int64(50), plan.Chosen.Quantity)
	assert.Equal(t, 500.0, plan.Chosen.TotalCost)
	assert.Contains(t, plan.Rationale, "10.00")
	assert.Contains(t, plan.Rationale, "500.00")
	assert.Contains(t, plan.Rationale, "covers 50 of the 80")
}

func TestEOLBuyTieGoesToSmallestQuantity(t *testing.T) {
	plan, err := EOLBuy(EOLBuyInput{
		RequiredUnits: 100,
		MinOrderQty:   50,
		Tiers:         []planning.VolumeTier{{MinQty: 50, Price: 8}, {MinQty: 100, Price: 4}},
	})
	require.NoError(t, err)
	// 50*8 == 100*4
	assert.Equal(t, int64(50), plan.Chosen.Quantity)
}

func TestEOLBuyNothingNeeded(t *testing.T) {
	plan, err := EOLBuy(EOLBuyInput{
		RequiredUnits:           30,
		OnHand:                  45,
		MinOrderQty:             50,
		Tiers:                   twoTiers(),
		ObsolescenceCostPerUnit: 2,
	})
	require.NoError(t, err)
	assert.Zero(t, plan.NetRequired)
	assert.Zero(t, plan.Chosen.Quantity)
	assert.Zero(t, plan.Chosen.TotalCost)
	assert.Contains(t, plan.Rationale, "no purchase needed")
}

func TestEOLBuyPriceFallbacks(t *testing.T) {
	// below every tier: lowest tier's price
	assert.Equal(t, 10.0, tierPrice(10, planning.SortTiersDescending(twoTiers())))
	assert.Equal(t, 8.0, tierPrice(250, planning.SortTiersDescending(twoTiers())))
	assert.Zero(t, tierPrice(10, nil))

	plan, err := EOLBuy(EOLBuyInput{RequiredUnits: 30, MinOrderQty: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(10), plan.Chosen.Quantity)
	assert.Zero(t, plan.Chosen.TotalCost)
}

func TestEOLBuyZeroExcludedWhenNeeded(t *testing.T) {
	plan, err := EOLBuy(EOLBuyInput{RequiredUnits: 30, Tiers: []planning.VolumeTier{{MinQty: 0, Price: 5}}})
	require.NoError(t, err)
	for _, c := range plan.Candidates {
		assert.NotZero(t, c.Quantity)
	}
	assert.Equal(t, int64(30), plan.Chosen.Quantity)
}

func TestEOLBuyRejectsNegativeInputs(t *testing.T) {
	cases := []EOLBuyInput{
		{RequiredUnits: -1},
		{OnHand: -1},
		{MinOrderQty: -1},
		{ObsolescenceCostPerUnit: -0.5},
		{Tiers: []planning.VolumeTier{{MinQty: 10, Price: -1}}},
	}
	for _, in := range cases {
		_, err := EOLBuy(in)
		assert.True(t, core.IsInvalidArgument(err), "%+v", in)
	}
}
