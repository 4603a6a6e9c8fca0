package llm

import (
	"context"
	"errors"
	"testing"

	"gosupply/domain/core"
	"gosupply/domain/intent"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCompleter struct {
	answer string
	err    error

	system string
	user   string
}

func (s *stubCompleter) CompleteJSON(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	s.system, s.user = systemPrompt, userPrompt
	return s.answer, s.err
}

func (s *stubCompleter) Provider() string { return "stub" }

func TestIntentParserInventoryTransfer(t *testing.T) {
	stub := &stubCompleter{answer: `{"product_id":"MDL-A","requesting_loc_id":"DLR-7","supplying_loc_id":"HUB-1"}`}
	parser := NewIntentParser(stub, nil)

	args, err := parser.Parse(context.Background(), intent.TaskInventoryTransfer, "Send MDL-A from HUB-1 to DLR-7")
	require.NoError(t, err)
	assert.Equal(t, intent.InventoryTransferArgs{
		ProductID:       "MDL-A",
		RequestingLocID: "DLR-7",
		SupplyingLocID:  "HUB-1",
	}, args)
	assert.Contains(t, stub.system, `"requesting_loc_id"`)
	assert.Equal(t, "Send MDL-A from HUB-1 to DLR-7", stub.user)
}

func TestIntentParserReusesCachedSchema(t *testing.T) {
	stub := &stubCompleter{answer: `{"component_id":"C-100","required_qty":500}`}
	parser := NewIntentParser(stub, nil)
	raw, err := intent.Schema(intent.TaskSourcingMitigation)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err := parser.Parse(context.Background(), intent.TaskSourcingMitigation, "find another source for C-100")
		require.NoError(t, err)
		assert.Contains(t, stub.system, raw)
	}
	assert.Len(t, parser.schemas, 1)
}

func TestIntentParserStripsCodeFences(t *testing.T) {
	stub := &stubCompleter{answer: "```json\n{\"product_id\":\"P1\",\"requested_qty\":120,\"due_date\":\"2025-03-31\"}\n```"}
	parser := NewIntentParser(stub, nil)

	args, err := parser.Parse(context.Background(), intent.TaskProductionFeasibility, "Can we build 120 P1 by March 31?")
	require.NoError(t, err)
	pf, ok := args.(intent.ProductionFeasibilityArgs)
	require.True(t, ok)
	assert.EqualValues(t, 120, pf.RequestedQty)
}

func TestIntentParserRejectsSchemaViolation(t *testing.T) {
	stub := &stubCompleter{answer: `{"product_id":"P1","requesting_loc_id":"D1"}`}
	parser := NewIntentParser(stub, nil)

	_, err := parser.Parse(context.Background(), intent.TaskInventoryTransfer, "move P1 to D1")
	require.Error(t, err)
	assert.True(t, core.IsInvalidArgument(err))
}

func TestIntentParserUnsupportedTask(t *testing.T) {
	parser := NewIntentParser(&stubCompleter{}, nil)

	_, err := parser.Parse(context.Background(), intent.TaskKind("t9"), "anything")
	assert.ErrorIs(t, err, core.ErrUnsupportedTask)
}

func TestIntentParserPropagatesCompleterError(t *testing.T) {
	boom := errors.New("upstream down")
	parser := NewIntentParser(&stubCompleter{err: boom}, nil)

	_, err := parser.Parse(context.Background(), intent.TaskEOLBuy, "EOL buy for C-9")
	assert.ErrorIs(t, err, boom)
}

func TestIntentParserInvalidJSON(t *testing.T) {
	parser := NewIntentParser(&stubCompleter{answer: "sure, here you go"}, nil)

	_, err := parser.Parse(context.Background(), intent.TaskTrimMix, "rebalance trims")
	require.Error(t, err)
	assert.False(t, core.IsInvalidArgument(err))
}

func TestCompileSchemaRejectsBadDocument(t *testing.T) {
	_, err := CompileSchema("bad.json", "{not json")
	assert.Error(t, err)
}
