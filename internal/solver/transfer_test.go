package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gosupply/domain/core"
	"gosupply/domain/planning"
)

func TestInventoryTransfer(t *testing.T) {
	in := TransferInput{
		ProductID:  "MODEL-A",
		Requesting: LocationStock{LocationID: "DLR-01", OnHand: 5, DemandMean: 20, DemandStd: 4},
		Supplying:  LocationStock{LocationID: "DC-01", OnHand: 60, DemandMean: 30, DemandStd: 2},
	}

	plan, err := InventoryTransfer(in)
	require.NoError(t, err)

	// ceil(20 + 1.65*4) = 27, ceil(30 + 1.65*2) = 34
	assert.Equal(t, int64(27), plan.RequestingTarget)
	assert.Equal(t, int64(34), plan.SupplyingTarget)
	assert.Equal(t, int64(22), plan.Shortfall)
	assert.Equal(t, int64(26), plan.Surplus)
	assert.Equal(t, int64(22), plan.Quantity)
	assert.Equal(t, planning.BindingRequestingShortage, plan.BindingConstraint)
	assert.Equal(t, core.LocationID("DC-01"), plan.From)
	assert.Equal(t, core.LocationID("DLR-01"), plan.To)
}

func TestInventoryTransferSurplusBinds(t *testing.T) {
	in := TransferInput{
		ProductID:     "MODEL-A",
		Requesting:    LocationStock{LocationID: "DLR-01", OnHand: 0, DemandMean: 50},
		Supplying:     LocationStock{LocationID: "DC-01", OnHand: 40, DemandMean: 30},
		ServiceFactor: 2,
	}
	plan, err := InventoryTransfer(in)
	require.NoError(t, err)
	assert.Equal(t, int64(10), plan.Quantity)
	assert.Equal(t, planning.BindingSupplyingSurplus, plan.BindingConstraint)
}

func TestInventoryTransferNoSurplus(t *testing.T) {
	in := TransferInput{
		Requesting: LocationStock{LocationID: "A", OnHand: 0, DemandMean: 10},
		Supplying:  LocationStock{LocationID: "B", OnHand: 5, DemandMean: 10},
	}
	plan, err := InventoryTransfer(in)
	require.NoError(t, err)
	assert.Zero(t, plan.Quantity)
	assert.Zero(t, plan.Surplus)
}

func TestInventoryTransferSameLocation(t *testing.T) {
	_, err := InventoryTransfer(TransferInput{
		Requesting: LocationStock{LocationID: "A"},
		Supplying:  LocationStock{LocationID: "A"},
	})
	assert.True(t, core.IsInvalidArgument(err))
}
