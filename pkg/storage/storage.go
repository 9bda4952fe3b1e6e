// Package storage keeps the local sqlite state: the last menu snapshot per
// store (for change tracking) and the orders placed from this machine.
package storage

import (
	"database/sql"
	"time"

	_ "modernc.org/sqlite"
)

type DB struct {
	sql *sql.DB
}

func Open(path string) (*DB, error) {
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	// Ensure schema exists for convenience.
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS menu_entries (
  id            INTEGER PRIMARY KEY,
  store_id      TEXT NOT NULL,
  spu_id        TEXT NOT NULL,
  name          TEXT NOT NULL,
  category      TEXT,
  price         REAL,
  available     INTEGER NOT NULL CHECK (available IN (0,1)),
  run_id        INTEGER NOT NULL DEFAULT 0,
  first_seen_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  last_seen_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(store_id, spu_id)
);
CREATE INDEX IF NOT EXISTS idx_menu_store ON menu_entries(store_id);
CREATE TABLE IF NOT EXISTS menu_changes (
  id          INTEGER PRIMARY KEY,
  occurred_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  store_id    TEXT NOT NULL,
  spu_id      TEXT NOT NULL,
  name        TEXT NOT NULL,
  change_type TEXT NOT NULL CHECK (change_type IN ('added','updated','removed')),
  detail      TEXT
);
CREATE INDEX IF NOT EXISTS idx_menu_changes_time ON menu_changes(occurred_at);
CREATE INDEX IF NOT EXISTS idx_menu_changes_store ON menu_changes(store_id, occurred_at);
CREATE TABLE IF NOT EXISTS orders (
  id           INTEGER PRIMARY KEY,
  order_no     TEXT NOT NULL,
  store_id     TEXT,
  spu_id       TEXT,
  sku_id       TEXT NOT NULL,
  name         TEXT,
  variant_text TEXT,
  unit_price   REAL,
  qty          INTEGER NOT NULL DEFAULT 1,
  status       TEXT,
  created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_orders_time ON orders(created_at);
    `); err != nil {
		return nil, err
	}
	return &DB{sql: db}, nil
}

func (d *DB) Close() error {
	if d == nil || d.sql == nil {
		return nil
	}
	return d.sql.Close()
}

// parseTimestamp reads SQLite CURRENT_TIMESTAMP values, which come back as
// "2006-01-02 15:04:05" or RFC3339 depending on how they were written.
func parseTimestamp(s string) time.Time {
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
