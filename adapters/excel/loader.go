package excel

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gosupply/domain/core"
	"gosupply/internal/errors"
	"gosupply/internal/migration"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

// TableLoad reports how many rows were inserted into one table
type TableLoad struct {
	Table string `json:"table"`
	File  string `json:"file"`
	Rows  int    `json:"rows"`
}

// Loader bulk-inserts seed files named <table>.csv or <table>.xlsx
type Loader struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewLoader(db *sqlx.DB, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{db: db, logger: logger.Named("loader")}
}

// LoadDir loads every planning table that has a seed file in dir. All
// inserts run in one transaction; any failure rolls back the whole load.
func (l *Loader) LoadDir(ctx context.Context, dir string) ([]TableLoad, error) {
	type pending struct {
		table migration.Table
		file  string
		sheet *Sheet
	}

	var work []pending
	for _, t := range migration.Tables {
		file := findSeedFile(dir, t.Name)
		if file == "" {
			continue
		}
		sheet, err := NewDataReader(file).ReadSheet()
		if err != nil {
			return nil, err
		}
		if err := checkHeaders(t, sheet.Headers); err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(file), err)
		}
		work = append(work, pending{table: t, file: file, sheet: sheet})
	}
	if len(work) == 0 {
		return nil, core.NewEmptyInput("no seed files found in " + dir)
	}

	tx, err := l.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, errors.DatabaseError("failed to begin load", err)
	}
	defer tx.Rollback()

	report := make([]TableLoad, 0, len(work))
	for _, w := range work {
		stmt := insertSQL(w.table.Name, w.sheet.Headers)
		for i, row := range w.sheet.Rows {
			if _, err := tx.ExecContext(ctx, stmt, rowArgs(row)...); err != nil {
				return nil, errors.DatabaseError(fmt.Sprintf("failed to insert row %d of %s", i+2, filepath.Base(w.file)), err)
			}
		}
		report = append(report, TableLoad{Table: w.table.Name, File: filepath.Base(w.file), Rows: len(w.sheet.Rows)})
		l.logger.Info("table loaded", zap.String("table", w.table.Name), zap.Int("rows", len(w.sheet.Rows)))
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.DatabaseError("failed to commit load", err)
	}
	return report, nil
}

func findSeedFile(dir, table string) string {
	for _, ext := range []string{".csv", ".xlsx"} {
		path := filepath.Join(dir, table+ext)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

func checkHeaders(t migration.Table, headers []string) error {
	seen := make(map[string]bool, len(headers))
	for _, h := range headers {
		if !t.HasColumn(h) {
			return core.NewInvalidArgument("column "+h, "is not a column of "+t.Name)
		}
		if seen[h] {
			return core.NewInvalidArgument("column "+h, "appears twice")
		}
		seen[h] = true
	}
	if !seen[t.PrimaryKey] {
		return core.NewInvalidArgument("column "+t.PrimaryKey, "is required")
	}
	return nil
}

func insertSQL(table string, headers []string) string {
	quoted := make([]string, len(headers))
	params := make([]string, len(headers))
	for i, h := range headers {
		quoted[i] = pq.QuoteIdentifier(h)
		params[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		pq.QuoteIdentifier(table), strings.Join(quoted, ", "), strings.Join(params, ", "))
}

// rowArgs maps empty cells to NULL
func rowArgs(row []string) []any {
	args := make([]any, len(row))
	for i, v := range row {
		if v == "" {
			args[i] = nil
			continue
		}
		args[i] = v
	}
	return args
}
