package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// UpsertMenuEntries replaces a store's menu snapshot with entries and
// returns what changed since the previous snapshot. Every touched row gets
// the new run id; rows left with the old run id afterwards are items that
// vanished from the board and are swept as removals. All changes are also
// journaled into menu_changes inside the same transaction.
func (d *DB) UpsertMenuEntries(ctx context.Context, storeID string, entries []MenuEntry) ([]MenuChange, error) {
	now := time.Now().UTC()
	// Nanoseconds so back-to-back snapshots never share a run id.
	runID := time.Now().UnixNano()

	tx, err := d.sql.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	rows, err := tx.QueryContext(ctx, "SELECT spu_id, name, price, available FROM menu_entries WHERE store_id = ?", storeID)
	if err != nil {
		return nil, err
	}
	type existing struct {
		Name      string
		Price     sql.NullFloat64
		Available bool
	}
	existingMap := make(map[string]existing)
	for rows.Next() {
		var (
			spu, name string
			price     sql.NullFloat64
			avail     int
		)
		if err = rows.Scan(&spu, &name, &price, &avail); err != nil {
			rows.Close()
			return nil, err
		}
		existingMap[spu] = existing{Name: name, Price: price, Available: avail == 1}
	}
	if err = rows.Close(); err != nil {
		return nil, err
	}

	var changes []MenuChange
	logChange := func(c MenuChange) error {
		_, ierr := tx.ExecContext(ctx, `INSERT INTO menu_changes(occurred_at, store_id, spu_id, name, change_type, detail) VALUES(CURRENT_TIMESTAMP, ?, ?, ?, ?, ?)`,
			c.StoreID, c.SpuID, c.Name, c.ChangeType, nullIfEmpty(c.Detail))
		if ierr != nil {
			return ierr
		}
		changes = append(changes, c)
		return nil
	}

	for _, e := range entries {
		if e.SpuID == "" {
			continue
		}
		var price interface{}
		if e.HasPrice {
			price = e.Price
		}

		ex, existed := existingMap[e.SpuID]
		if !existed {
			_, err = tx.ExecContext(ctx, `INSERT INTO menu_entries(store_id, spu_id, name, category, price, available, run_id, first_seen_at, last_seen_at) VALUES(?,?,?,?,?,?,?,CURRENT_TIMESTAMP,CURRENT_TIMESTAMP)`,
				storeID, e.SpuID, e.Name, nullIfEmpty(e.Category), price, boolToInt(e.Available), runID)
			if err != nil {
				return nil, err
			}
			if err = logChange(MenuChange{OccurredAt: now, StoreID: storeID, SpuID: e.SpuID, Name: e.Name, ChangeType: "added", Detail: addedDetail(e)}); err != nil {
				return nil, err
			}
			existingMap[e.SpuID] = existing{Name: e.Name, Price: sql.NullFloat64{Float64: e.Price, Valid: e.HasPrice}, Available: e.Available}
			continue
		}

		detail := diffDetail(ex.Price, ex.Available, e)
		_, err = tx.ExecContext(ctx, `UPDATE menu_entries SET name = ?, category = ?, price = ?, available = ?, run_id = ?, last_seen_at = CURRENT_TIMESTAMP WHERE store_id = ? AND spu_id = ?`,
			e.Name, nullIfEmpty(e.Category), price, boolToInt(e.Available), runID, storeID, e.SpuID)
		if err != nil {
			return nil, err
		}
		if detail != "" {
			if err = logChange(MenuChange{OccurredAt: now, StoreID: storeID, SpuID: e.SpuID, Name: e.Name, ChangeType: "updated", Detail: detail}); err != nil {
				return nil, err
			}
		}
	}

	// Sweep: entries not touched in this run fell off the board.
	staleRows, err := tx.QueryContext(ctx, "SELECT spu_id, name FROM menu_entries WHERE store_id = ? AND run_id != ?", storeID, runID)
	if err != nil {
		return nil, err
	}
	type stale struct{ Spu, Name string }
	var toRemove []stale
	for staleRows.Next() {
		var s stale
		if err = staleRows.Scan(&s.Spu, &s.Name); err != nil {
			staleRows.Close()
			return nil, err
		}
		toRemove = append(toRemove, s)
	}
	if err = staleRows.Close(); err != nil {
		return nil, err
	}

	if len(toRemove) > 0 {
		_, err = tx.ExecContext(ctx, `DELETE FROM menu_entries WHERE store_id = ? AND run_id != ?`, storeID, runID)
		if err != nil {
			return nil, err
		}
		for _, s := range toRemove {
			if err = logChange(MenuChange{OccurredAt: now, StoreID: storeID, SpuID: s.Spu, Name: s.Name, ChangeType: "removed"}); err != nil {
				return nil, err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return changes, nil
}

func addedDetail(e MenuEntry) string {
	var parts []string
	if e.HasPrice {
		parts = append(parts, "price "+trimPrice(e.Price))
	}
	if !e.Available {
		parts = append(parts, "sold out")
	}
	return strings.Join(parts, ", ")
}

func diffDetail(oldPrice sql.NullFloat64, oldAvail bool, e MenuEntry) string {
	var parts []string
	switch {
	case e.HasPrice && !oldPrice.Valid:
		parts = append(parts, "price set to "+trimPrice(e.Price))
	case !e.HasPrice && oldPrice.Valid:
		parts = append(parts, "price removed")
	case e.HasPrice && oldPrice.Valid && oldPrice.Float64 != e.Price:
		parts = append(parts, fmt.Sprintf("price %s -> %s", trimPrice(oldPrice.Float64), trimPrice(e.Price)))
	}
	if oldAvail != e.Available {
		if e.Available {
			parts = append(parts, "back on sale")
		} else {
			parts = append(parts, "sold out")
		}
	}
	return strings.Join(parts, ", ")
}

func trimPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

// ListRecentMenuChanges returns the most recent N changes across all stores.
func (d *DB) ListRecentMenuChanges(ctx context.Context, limit int) ([]MenuChange, error) {
	if limit <= 0 {
		limit = 50
	}
	q := "SELECT occurred_at, store_id, spu_id, name, change_type, detail FROM menu_changes ORDER BY occurred_at DESC, id DESC LIMIT ?"
	rows, err := d.sql.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	changes := []MenuChange{}
	for rows.Next() {
		var c MenuChange
		var occurredAtStr string
		var detail sql.NullString
		if err := rows.Scan(&occurredAtStr, &c.StoreID, &c.SpuID, &c.Name, &c.ChangeType, &detail); err != nil {
			return nil, err
		}
		c.OccurredAt = parseTimestamp(occurredAtStr)
		c.Detail = detail.String
		changes = append(changes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return changes, nil
}

type StoreStats struct {
	StoreID        string
	ItemCount      int
	AvailableCount int
}

// Stats aggregates the tracked snapshot per store.
func (d *DB) Stats(ctx context.Context) ([]StoreStats, error) {
	query := `
		SELECT
			store_id,
			COUNT(spu_id),
			SUM(available)
		FROM
			menu_entries
		GROUP BY
			store_id
		ORDER BY
			store_id;
	`
	rows, err := d.sql.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []StoreStats
	for rows.Next() {
		var s StoreStats
		if err := rows.Scan(&s.StoreID, &s.ItemCount, &s.AvailableCount); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stats, nil
}
