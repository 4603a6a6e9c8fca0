package excel

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"gosupply/domain/core"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
}

func TestReadSheetCSV(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "partners.csv", "Partner_ID, partner_name ,quality_score\nS1,Alpha,90\n,,\nS2, Beta \n")

	sheet, err := NewDataReader(filepath.Join(dir, "partners.csv")).ReadSheet()
	require.NoError(t, err)
	assert.Equal(t, []string{"partner_id", "partner_name", "quality_score"}, sheet.Headers)
	assert.Equal(t, [][]string{{"S1", "Alpha", "90"}, {"S2", "Beta", ""}}, sheet.Rows)
}

func TestReadSheetXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locations.xlsx")
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"location_id", "avg_handling_hr"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"HUB-1", "6.5"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	got, err := NewDataReader(path).ReadSheet()
	require.NoError(t, err)
	assert.Equal(t, []string{"location_id", "avg_handling_hr"}, got.Headers)
	assert.Equal(t, [][]string{{"HUB-1", "6.5"}}, got.Rows)
}

func TestReadSheetMissingFile(t *testing.T) {
	_, err := NewDataReader(filepath.Join(t.TempDir(), "nope.csv")).ReadSheet()
	assert.ErrorContains(t, err, "CSV file not found")
}

func TestLoadDirInsertsInOneTransaction(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "products.csv", "product_id,base_model,standard_product_cost\nP1,SEDAN,21000\nP2,SEDAN,\n")
	writeFile(t, dir, "partners.csv", "partner_id,partner_name\nS1,Alpha\n")
	writeFile(t, dir, "notes.txt", "ignored")

	db, mock := newMock(t)
	mock.ExpectBegin()
	insertProducts := regexp.QuoteMeta(`INSERT INTO "products" ("product_id", "base_model", "standard_product_cost") VALUES ($1, $2, $3)`)
	mock.ExpectExec(insertProducts).WithArgs("P1", "SEDAN", "21000").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(insertProducts).WithArgs("P2", "SEDAN", nil).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "partners" ("partner_id", "partner_name") VALUES ($1, $2)`)).
		WithArgs("S1", "Alpha").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	report, err := NewLoader(db, nil).LoadDir(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, []TableLoad{
		{Table: "products", File: "products.csv", Rows: 2},
		{Table: "partners", File: "partners.csv", Rows: 1},
	}, report)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadDirRollsBackOnInsertFailure(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "partners.csv", "partner_id,partner_name\nS1,Alpha\n")

	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO").WillReturnError(errors.New("duplicate key"))
	mock.ExpectRollback()

	_, err := NewLoader(db, nil).LoadDir(context.Background(), dir)
	assert.ErrorContains(t, err, "row 2 of partners.csv")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadDirRejectsUnknownColumn(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "partners.csv", "partner_id,partner_name;drop table\nS1,Alpha\n")

	db, mock := newMock(t)
	_, err := NewLoader(db, nil).LoadDir(context.Background(), dir)
	assert.True(t, core.IsInvalidArgument(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadDirRequiresPrimaryKey(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "partners.csv", "partner_name\nAlpha\n")

	db, _ := newMock(t)
	_, err := NewLoader(db, nil).LoadDir(context.Background(), dir)
	assert.ErrorContains(t, err, "partner_id is required")
}

func TestLoadDirWithoutSeedFiles(t *testing.T) {
	db, _ := newMock(t)
	_, err := NewLoader(db, nil).LoadDir(context.Background(), t.TempDir())
	assert.ErrorIs(t, err, core.ErrEmptyInput)
}
