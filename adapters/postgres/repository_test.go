package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gosupply/domain/core"
)

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(sqlx.NewDb(db, "postgres")), mock
}

func TestSalesStatistics(t *testing.T) {
	repo, mock := newMockRepository(t)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta("FROM sales_history")).
		WithArgs("MODEL-A", "").
		WillReturnRows(sqlmock.NewRows([]string{"mean", "standard_deviation"}).AddRow(42.0, 0.0))

	stats, err := repo.SalesStatistics(ctx, "MODEL-A", "")
	require.NoError(t, err)
	require.NotNil(t, stats.Mean)
	assert.Equal(t, 42.0, *stats.Mean)
	assert.Zero(t, stats.StandardDeviation)

	mock.ExpectQuery(regexp.QuoteMeta("FROM sales_history")).
		WithArgs("NOPE", "DLR-01").
		WillReturnRows(sqlmock.NewRows([]string{"mean", "standard_deviation"}).AddRow(nil, 0.0))

	stats, err = repo.SalesStatistics(ctx, "NOPE", "DLR-01")
	require.NoError(t, err)
	assert.Nil(t, stats.Mean)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLatestOnHandMissingIsNil(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM inventory_history")).
		WithArgs("MODEL-A", "DLR-09").
		WillReturnRows(sqlmock.NewRows([]string{"quantity_on_hand"}))

	qty, err := repo.LatestOnHand(context.Background(), "MODEL-A", "DLR-09")
	require.NoError(t, err)
	assert.Nil(t, qty)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLatestOnHandNullIsZero(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(quantity_on_hand, 0)")).
		WithArgs("MODEL-A", "DLR-09").
		WillReturnRows(sqlmock.NewRows([]string{"quantity_on_hand"}).AddRow(nil))

	qty, err := repo.LatestOnHand(context.Background(), "MODEL-A", "DLR-09")
	require.NoError(t, err)
	require.NotNil(t, qty)
	assert.Equal(t, int64(0), *qty)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLaneAndHub(t *testing.T) {
	repo, mock := newMockRepository(t)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta("FROM transportation_lanes")).
		WithArgs("P1_ULSAN", "HUB_DAEGU").
		WillReturnRows(sqlmock.NewRows([]string{"lane_id", "standard_transit_hr", "standard_cost_per_shipment"}).
			AddRow("LN-P1-HUB", 1.5, 400.0))
	mock.ExpectQuery(regexp.QuoteMeta("FROM locations")).
		WithArgs("HUB_DAEGU").
		WillReturnRows(sqlmock.NewRows([]string{"location_id", "avg_handling_hr", "handling_cost_per_unit"}))

	lane, err := repo.Lane(ctx, "P1_ULSAN", "HUB_DAEGU")
	require.NoError(t, err)
	require.NotNil(t, lane)
	assert.Equal(t, "LN-P1-HUB", lane.LaneID)
	assert.Equal(t, 1.5, lane.TransitHours)

	hub, err := repo.HubLocation(ctx, "HUB_DAEGU")
	require.NoError(t, err)
	assert.Nil(t, hub)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAlternativeSuppliers(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("JOIN partners p ON sr.partner_id = p.partner_id")).
		WithArgs("P-404-BAT-LG", "SUP-01").
		WillReturnRows(sqlmock.NewRows([]string{"type", "component_id", "supplier_id", "supplier_name", "lead_time_days", "unit_price", "quality_score"}).
			AddRow("ALTERNATIVE_SUPPLIER", "P-404-BAT-LG", "SUP-02", "Volta", 21.0, 180.0, 88.0).
			AddRow("ALTERNATIVE_SUPPLIER", "P-404-BAT-LG", "SUP-03", "Ampere", 14.0, 210.0, 91.0))

	options, err := repo.AlternativeSuppliers(context.Background(), "P-404-BAT-LG", "SUP-01")
	require.NoError(t, err)
	require.Len(t, options, 2)
	assert.Equal(t, core.PartnerID("SUP-02"), options[0].SupplierID)
	assert.Equal(t, 91.0, options[1].QualityScore)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFinalPlanForecastsFrom(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM demand_forecast_log")).
		WithArgs(pq.Array([]string{"P1", "P2"}), "FINAL_PLAN", "2025-03").
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "total_forecast"}).AddRow("P1", 320.0))

	got, err := repo.FinalPlanForecastsFrom(context.Background(), []core.ProductID{"P1", "P2"}, "2025-03")
	require.NoError(t, err)
	assert.Equal(t, map[core.ProductID]float64{"P1": 320}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailableHours(t *testing.T) {
	repo, mock := newMockRepository(t)
	w := core.Window{
		From: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}

	mock.ExpectQuery(regexp.QuoteMeta("FROM production_capacity")).
		WithArgs(w.From, w.To).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(1840.5))

	hours, err := repo.AvailableHours(context.Background(), w)
	require.NoError(t, err)
	assert.Equal(t, 1840.5, hours)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCampaignUpliftWithoutCampaignsSkipsQuery(t *testing.T) {
	repo, mock := newMockRepository(t)

	pct, err := repo.CampaignUpliftPct(context.Background(), "MODEL-A", nil)
	require.NoError(t, err)
	assert.Zero(t, pct)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryErrorsAreWrapped(t *testing.T) {
	repo, mock := newMockRepository(t)
	boom := errors.New("connection reset")

	mock.ExpectQuery(regexp.QuoteMeta("FROM quality_incidents")).
		WillReturnError(boom)

	_, err := repo.IncidentCount(context.Background(), "C-1", []core.ProductID{"P1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failed to count quality incidents")
	assert.NoError(t, mock.ExpectationsWereMet())
}
