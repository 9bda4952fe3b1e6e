package menu

// SpecPair is one SKU-level spec axis choice, carried as the raw vendor
// identifiers plus the display name of the chosen value. The identifiers go
// back to the ordering endpoint verbatim.
type SpecPair struct {
	SpecID   string
	OptionID string
	Name     string
}

// AttributeChoice is one selectable value inside an item-level option group.
type AttributeChoice struct {
	ID        string
	Name      string
	IsDefault bool
}

// AttributeGroup is an item-level option group (ice level, sweetness, ...)
// that applies on top of every SKU instead of belonging to one.
type AttributeGroup struct {
	ID      string
	Name    string
	Choices []AttributeChoice
}

// VariantOption is one concretely sellable variant of an item. SkuID is the
// identifier the ordering endpoint accepts; VariantText is the human-readable
// rendering of everything that was chosen to get here.
type VariantOption struct {
	SkuID       string
	Name        string
	Price       float64
	HasPrice    bool
	VariantText string
	SpecPairs   []SpecPair
	AttrIDs     []string
}
