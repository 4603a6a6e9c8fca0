package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"gosupply/ports"
)

// Repository implements ports.PlanningStore over the planning schema
type Repository struct {
	db *sqlx.DB
}

var _ ports.PlanningStore = (*Repository)(nil)

// NewRepository creates a new planning repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// getOptional runs a single-row query; no row yields found=false and no error.
func (r *Repository) getOptional(ctx context.Context, dest interface{}, what, query string, args ...interface{}) (bool, error) {
	err := r.db.GetContext(ctx, dest, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get %s: %w", what, err)
	}
	return true, nil
}

func toStrings[T ~string](ids []T) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
