package app

import (
	"testing"

	"gosupply/domain/core"
	"gosupply/internal/recommend"
	"gosupply/internal/testkit"

	"go.uber.org/zap/zaptest"
)

func newTestPlanner(t *testing.T, store *testkit.MemoryStore) *Planner {
	t.Helper()
	return NewPlanner(store, testkit.Clock, zaptest.NewLogger(t))
}

func newTestFormatter() *recommend.Formatter {
	return recommend.NewFormatter(
		recommend.WithClock(testkit.Clock),
		recommend.WithIDs(func() core.ID { return "rec-1" }),
	)
}
