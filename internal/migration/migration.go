package migration

import (
	"context"
	"strings"

	"gosupply/internal/errors"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Reset(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner creates the planning schema
type MigrationRunner struct {
	version string
	logger  *zap.Logger
}

// NewRunner creates a new migration runner
func NewRunner(logger *zap.Logger) *MigrationRunner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MigrationRunner{
		version: "1.0.0",
		logger:  logger.Named("migration"),
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run creates every missing table and index. Existing tables are left as is.
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.DatabaseError("failed to begin migration", err)
	}
	defer tx.Rollback()

	for _, t := range Tables {
		if _, err := tx.ExecContext(ctx, t.createSQL()); err != nil {
			return errors.DatabaseError("failed to create "+t.Name+" table", err)
		}
	}
	for _, stmt := range indexes {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return errors.DatabaseError("failed to create indexes", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.DatabaseError("failed to commit migration", err)
	}

	r.logger.Info("schema ready", zap.Int("tables", len(Tables)), zap.String("version", r.version))
	return nil
}

// Reset drops every planning table and recreates the schema
func (r *MigrationRunner) Reset(ctx context.Context, db *sqlx.DB) error {
	names := make([]string, 0, len(Tables))
	for i := len(Tables) - 1; i >= 0; i-- {
		names = append(names, Tables[i].Name)
	}
	if _, err := db.ExecContext(ctx, "DROP TABLE IF EXISTS "+strings.Join(names, ", ")+" CASCADE"); err != nil {
		return errors.DatabaseError("failed to drop planning tables", err)
	}
	r.logger.Warn("planning tables dropped", zap.Int("tables", len(names)))
	return r.Run(ctx, db)
}
