package intent

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gosupply/domain/core"
)

func TestParseTaskKind(t *testing.T) {
	k, err := ParseTaskKind(" T3 ")
	require.NoError(t, err)
	assert.Equal(t, TaskDemandForecast, k)

	for _, bad := range []string{"", "t0", "t8", "forecast"} {
		_, err := ParseTaskKind(bad)
		assert.ErrorIs(t, err, core.ErrUnsupportedTask, bad)
		assert.True(t, core.IsInvalidArgument(err))
	}
}

func TestDecode(t *testing.T) {
	args, err := Decode(TaskInventoryTransfer, []byte(`{"product_id":"MODEL-A","requesting_loc_id":"DLR-01","supplying_loc_id":"DC-01"}`))
	require.NoError(t, err)

	transfer, ok := args.(InventoryTransferArgs)
	require.True(t, ok)
	assert.Equal(t, "DLR-01", transfer.RequestingLocID)
	assert.Equal(t, TaskInventoryTransfer, transfer.Task())
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name string
		task TaskKind
		raw  string
	}{
		{"unknown field", TaskTrimMix, `{"base_model":"MODEL-A","period":"1 quarter","extra":1}`},
		{"bad period", TaskTrimMix, `{"base_model":"MODEL-A","period":"soon"}`},
		{"same locations", TaskInventoryTransfer, `{"product_id":"A","requesting_loc_id":"X","supplying_loc_id":"X"}`},
		{"bad due date", TaskProductionFeasibility, `{"product_id":"A","requested_qty":5,"due_date":"next week"}`},
		{"zero qty", TaskProductionFeasibility, `{"product_id":"A","requested_qty":0,"due_date":"2025-06-30"}`},
		{"bad month", TaskDemandForecast, `{"product_id":"A","target_period":"2025-13"}`},
		{"no products", TaskEOLBuy, `{"component_id":"C","affected_product_ids":[]}`},
		{"blank product", TaskEOLBuy, `{"component_id":"C","affected_product_ids":[" "]}`},
		{"not json", TaskRouteOptimization, `{`},
		{"missing hub", TaskRouteOptimization, `{"source_loc_id":"P","dealer_loc_id":"D"}`},
		{"negative qty", TaskSourcingMitigation, `{"component_id":"C","required_qty":-3}`},
		{"unsupported", TaskKind("t9"), `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.task, []byte(tt.raw))
			assert.True(t, core.IsInvalidArgument(err), "got %v", err)
		})
	}
}

func TestEveryTaskHasAValidSchema(t *testing.T) {
	for _, k := range AllTasks {
		s, err := Schema(k)
		require.NoError(t, err, k)
		assert.True(t, json.Valid([]byte(s)), k)

		args, err := NewArgs(k)
		require.NoError(t, err)
		assert.Equal(t, k, args.Task())
		assert.NotEqual(t, "unknown task", k.Describe())
	}

	_, err := Schema("t42")
	assert.ErrorIs(t, err, core.ErrUnsupportedTask)
}
