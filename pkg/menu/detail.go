// Package menu resolves the variants a store item can actually be ordered in.
//
// The vendor API is schema-free in practice: field names drift between app
// versions and deployments, envelopes nest differently, and half the flags
// are spelled three ways. Everything here reads payloads through ordered
// candidate field lists and is total: malformed or hostile input yields fewer
// options, never an error.
package menu

import (
	"strings"

	"github.com/tidwall/gjson"
)

// ItemDetail is the canonical detail record for one purchasable item,
// unwrapped from whatever envelope the vendor handed back. The zero value is
// usable and yields no options.
type ItemDetail struct {
	Raw gjson.Result
}

// NormalizeDetail unwraps a vendor envelope into the canonical item record.
// Wrapper fields are tried in priority order; only object-valued candidates
// count. When none matches the envelope itself is the record, so this never
// fails.
func NormalizeDetail(envelope gjson.Result) ItemDetail {
	for _, p := range detailWrapPaths {
		if v := envelope.Get(p); v.IsObject() {
			return ItemDetail{Raw: v}
		}
	}
	return ItemDetail{Raw: envelope}
}

// NormalizeDetailJSON is NormalizeDetail over a raw JSON document.
func NormalizeDetailJSON(body string) ItemDetail {
	return NormalizeDetail(gjson.Parse(body))
}

func (d ItemDetail) SpuID() string {
	return FirstString(d.Raw, spuIDPaths...)
}

func (d ItemDetail) Name() string {
	return FirstString(d.Raw, spuNamePaths...)
}

func (d ItemDetail) SpuType() string {
	return FirstString(d.Raw, spuTypePaths...)
}

// IsCombo reports whether the item is a combo bundle, either declared
// through the type field or implied by combo structure being present.
func (d ItemDetail) IsCombo() bool {
	if strings.EqualFold(d.SpuType(), "combo") {
		return true
	}
	if len(FirstArray(d.Raw, comboGroupListPaths...)) > 0 {
		return true
	}
	return len(FirstArray(d.Raw, comboFixedListPaths...)) > 0
}

// StockLimited reports whether the vendor tracks stock for this item. Items
// without the flag routinely carry a stray stock counter of zero that means
// nothing.
func (d ItemDetail) StockLimited() bool {
	v, ok := FirstBool(d.Raw, stockLimitPaths...)
	return ok && v
}

// PrimarySkuID is the root-level sku id, falling back to the first id in the
// sku list. Combo orders submit this id no matter which components were
// picked.
func (d ItemDetail) PrimarySkuID() string {
	if id := FirstString(d.Raw, rootSkuPaths...); id != "" {
		return id
	}
	for _, sku := range FirstArray(d.Raw, skuListPaths...) {
		if id := FirstString(sku, skuIDPaths...); id != "" {
			return id
		}
	}
	return ""
}

// Price is the root-level price, when the record carries one.
func (d ItemDetail) Price() (float64, bool) {
	return FirstNumber(d.Raw, pricePaths...)
}

// strictStock reports whether a zero stock counter is decisive for this
// item's components.
func (d ItemDetail) strictStock() bool {
	return d.IsCombo() || d.StockLimited()
}
