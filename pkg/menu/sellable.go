package menu

import "github.com/tidwall/gjson"

// Sellable decides whether a raw SKU, combo component or group choice can be
// bought right now. Signals are checked in priority order and only a field
// that is actually present can veto, so records that simply omit a flag pass.
//
// strictStock additionally lets a zero stock counter veto. That is correct
// for combos and stock-limited items, but plain items often carry a stock
// field of 0 that the store UI ignores, so for those the counter is only
// consulted when the item declares itself stock-limited.
func Sellable(rec gjson.Result, strictStock bool) bool {
	if v, ok := FirstBool(rec, saleOutPaths...); ok && v {
		return false
	}
	if v, ok := FirstBool(rec, soldOutPaths...); ok && v {
		return false
	}
	if v, ok := FirstBool(rec, canSellPaths...); ok && !v {
		return false
	}
	if n, ok := FirstNumber(rec, statusPaths...); ok && n <= 0 {
		return false
	}
	if strictStock {
		if n, ok := FirstNumber(rec, stockPaths...); ok && n <= 0 {
			return false
		}
	}
	return true
}
