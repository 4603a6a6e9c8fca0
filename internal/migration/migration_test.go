package migration

import (
	"context"
	"errors"
	"regexp"
	"testing"

	apperrors "gosupply/internal/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

func expectSchema(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	for _, tbl := range Tables {
		mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS " + tbl.Name + " (")).
			WillReturnResult(sqlmock.NewResult(0, 0))
	}
	for range indexes {
		mock.ExpectExec("CREATE INDEX IF NOT EXISTS").WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectCommit()
}

func TestSchemaHasTwentyFourTables(t *testing.T) {
	assert.Len(t, Tables, 24)

	seen := map[string]bool{}
	for _, tbl := range Tables {
		assert.False(t, seen[tbl.Name], "duplicate table %s", tbl.Name)
		seen[tbl.Name] = true
		assert.True(t, tbl.HasColumn(tbl.PrimaryKey), "%s primary key", tbl.Name)
	}

	surveys, ok := Lookup("customer_surveys")
	require.True(t, ok)
	assert.Equal(t, []string{"survey_id", "product_id", "survey_dt", "survey_score", "response_count"}, surveys.ColumnNames())

	_, ok = Lookup("users")
	assert.False(t, ok)
}

func TestCreateSQL(t *testing.T) {
	tbl, _ := Lookup("sales_incentive_map")
	assert.Equal(t, "CREATE TABLE IF NOT EXISTS sales_incentive_map (\n"+
		"\tmap_id BIGINT PRIMARY KEY,\n"+
		"\ttransaction_id BIGINT,\n"+
		"\tincentive_id VARCHAR(30),\n"+
		"\tredeemed_ts TIMESTAMP\n)", tbl.createSQL())
}

func TestRunCreatesSchemaInOneTransaction(t *testing.T) {
	db, mock := newMock(t)
	expectSchema(mock)

	require.NoError(t, NewRunner(nil).Run(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunRollsBackOnFailure(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS products (")).
		WillReturnError(errors.New("permission denied"))
	mock.ExpectRollback()

	err := NewRunner(nil).Run(context.Background(), db)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeDatabaseError, apperrors.GetCode(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResetDropsInReverseOrder(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec(regexp.QuoteMeta("DROP TABLE IF EXISTS customer_surveys, sales_incentive_map,")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	expectSchema(mock)

	require.NoError(t, NewRunner(nil).Reset(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}
