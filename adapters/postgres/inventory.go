package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"gosupply/domain/core"
	"gosupply/domain/planning"
)

// LatestOnHand returns the most recent on-hand quantity of an item at a location
func (r *Repository) LatestOnHand(ctx context.Context, itemID, locationID string) (*int64, error) {
	var qty sql.NullInt64
	found, err := r.getOptional(ctx, &qty, "latest inventory", `
		SELECT COALESCE(quantity_on_hand, 0)
		FROM inventory_history
		WHERE item_id = $1 AND location_id = $2
		ORDER BY snapshot_ts DESC
		LIMIT 1
	`, itemID, locationID)
	if err != nil || !found {
		return nil, err
	}
	// a NULL snapshot counts as zero stock
	return &qty.Int64, nil
}

// LatestTotalOnHand sums on-hand quantity across locations at the item's latest snapshot
func (r *Repository) LatestTotalOnHand(ctx context.Context, itemID string) (int64, error) {
	var total int64
	err := r.db.GetContext(ctx, &total, `
		SELECT COALESCE(SUM(quantity_on_hand), 0)
		FROM inventory_history
		WHERE item_id = $1
		  AND snapshot_ts = (SELECT MAX(snapshot_ts) FROM inventory_history WHERE item_id = $1)
	`, itemID)
	if err != nil {
		return 0, fmt.Errorf("failed to sum latest inventory: %w", err)
	}
	return total, nil
}

// InventoryHistory returns every snapshot of the given items
func (r *Repository) InventoryHistory(ctx context.Context, itemIDs []core.ComponentID) ([]planning.InventorySnapshot, error) {
	var rows []planning.InventorySnapshot
	err := r.db.SelectContext(ctx, &rows, `
		SELECT snapshot_id, snapshot_ts, location_id, item_id,
		       COALESCE(item_type, '') AS item_type, COALESCE(quantity_on_hand, 0) AS quantity_on_hand,
		       COALESCE(inventory_status, '') AS inventory_status
		FROM inventory_history
		WHERE item_id = ANY($1)
		ORDER BY snapshot_ts, snapshot_id
	`, pq.Array(toStrings(itemIDs)))
	if err != nil {
		return nil, fmt.Errorf("failed to read inventory history: %w", err)
	}
	return rows, nil
}
