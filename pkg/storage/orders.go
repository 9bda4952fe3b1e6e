package storage

import (
	"context"
	"database/sql"
)

// InsertOrder records a placed order.
func (d *DB) InsertOrder(ctx context.Context, o OrderRecord) error {
	var price interface{}
	if o.HasPrice {
		price = o.UnitPrice
	}
	qty := o.Qty
	if qty < 1 {
		qty = 1
	}
	_, err := d.sql.ExecContext(ctx, `INSERT INTO orders(order_no, store_id, spu_id, sku_id, name, variant_text, unit_price, qty, status, created_at) VALUES(?,?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)`,
		o.OrderNo, nullIfEmpty(o.StoreID), nullIfEmpty(o.SpuID), o.SkuID, nullIfEmpty(o.Name), nullIfEmpty(o.VariantText), price, qty, nullIfEmpty(o.Status))
	return err
}

// UpdateOrderStatus stores the latest known status for an order.
func (d *DB) UpdateOrderStatus(ctx context.Context, orderNo, status string) error {
	_, err := d.sql.ExecContext(ctx, `UPDATE orders SET status = ? WHERE order_no = ?`, status, orderNo)
	return err
}

// ListOrders returns the most recent N orders, newest first.
func (d *DB) ListOrders(ctx context.Context, limit int) ([]OrderRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	q := "SELECT order_no, store_id, spu_id, sku_id, name, variant_text, unit_price, qty, status, created_at FROM orders ORDER BY created_at DESC, id DESC LIMIT ?"
	rows, err := d.sql.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OrderRecord
	for rows.Next() {
		var (
			o                         OrderRecord
			store, spu, name, variant sql.NullString
			status                    sql.NullString
			price                     sql.NullFloat64
			createdAtStr              string
		)
		if err := rows.Scan(&o.OrderNo, &store, &spu, &o.SkuID, &name, &variant, &price, &o.Qty, &status, &createdAtStr); err != nil {
			return nil, err
		}
		o.StoreID = store.String
		o.SpuID = spu.String
		o.Name = name.String
		o.VariantText = variant.String
		o.Status = status.String
		if price.Valid {
			o.UnitPrice, o.HasPrice = price.Float64, true
		}
		o.CreatedAt = parseTimestamp(createdAtStr)
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
