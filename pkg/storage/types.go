package storage

import "time"

// MenuEntry is one board item as last seen for a store.
type MenuEntry struct {
	StoreID   string
	SpuID     string
	Name      string
	Category  string
	Price     float64
	HasPrice  bool
	Available bool
}

// MenuChange captures a single observed menu difference for auditing or
// printing.
type MenuChange struct {
	OccurredAt time.Time
	StoreID    string
	SpuID      string
	Name       string
	ChangeType string // added | updated | removed
	Detail     string
}

// OrderRecord is one order placed from this machine.
type OrderRecord struct {
	OrderNo     string
	StoreID     string
	SpuID       string
	SkuID       string
	Name        string
	VariantText string
	UnitPrice   float64
	HasPrice    bool
	Qty         int
	Status      string
	CreatedAt   time.Time
}
