package container

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"gosupply/domain/planning"
	"gosupply/internal/compare"
	"gosupply/internal/config"
	"gosupply/internal/solver"
	"gosupply/internal/testkit"
)

func testConfig() *config.Config {
	return &config.Config{
		AI: config.AIConfig{Provider: config.ProviderNone},
		Planning: config.PlanningConfig{
			RouteTimeValuePerHour: compare.DefaultTimeValuePerHour,
			SupplierWeights:       compare.DefaultSupplierWeights,
			TransferServiceFactor: solver.DefaultServiceFactor,
			SimulationRuns:        100,
			SimulationSeed:        1,
			MasterDataCacheSize:   16,
		},
	}
}

func TestNew_RejectsNilConfig(t *testing.T) {
	_, err := New(nil, nil)
	assert.Error(t, err)
}

func TestInitWithStore_WiresToolsWithoutIntentProvider(t *testing.T) {
	c, err := New(testConfig(), zaptest.NewLogger(t))
	require.NoError(t, err)

	store := testkit.Fixture()
	require.NoError(t, c.InitWithStore(context.Background(), store))

	assert.Nil(t, c.Intent)
	assert.NotNil(t, c.Services)
	_, ok := c.Tools.Lookup("user_intent_parser")
	assert.False(t, ok)
	_, ok = c.Tools.Lookup("simulate_demand")
	assert.True(t, ok)

	for i := 0; i < 3; i++ {
		out, err := c.Tools.Call(context.Background(), "read_products", json.RawMessage(`{"product_id":"SEDAN-LUX"}`))
		require.NoError(t, err)
		product, ok := out.(*planning.Product)
		require.True(t, ok)
		assert.Equal(t, 30000.0, product.StandardProductCost)
	}
	assert.Equal(t, 1, store.Calls("Product"))
}

func TestInitWithDatabase(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	mock.ExpectPing()
	mock.ExpectClose()

	c, err := New(testConfig(), zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NoError(t, c.InitWithDatabase(context.Background(), sqlx.NewDb(db, "postgres")))
	assert.NotNil(t, c.Store)

	require.NoError(t, c.Shutdown(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInitWithDatabase_RequiresConnection(t *testing.T) {
	c, err := New(testConfig(), nil)
	require.NoError(t, err)
	assert.Error(t, c.InitWithDatabase(context.Background(), nil))
}
