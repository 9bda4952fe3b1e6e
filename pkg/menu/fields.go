package menu

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Candidate path lists for every concept the vendor payloads spell
// differently across app versions. Order matters: the first present
// field wins and later candidates are never consulted.
var (
	detailWrapPaths = []string{"goodsDetail", "spuDetail", "goodsInfo", "spuInfo", "detail", "data.goodsDetail", "data.spuDetail", "data"}

	spuIDPaths      = []string{"spuId", "goodsId", "id"}
	spuTypePaths    = []string{"spuType", "goodsType", "type"}
	spuNamePaths    = []string{"spuName", "goodsName", "name", "title"}
	rootSkuPaths    = []string{"skuId", "defaultSkuId", "skuCode"}
	pricePaths      = []string{"price", "salePrice", "sellPrice", "skuPrice"}
	stockLimitPaths = []string{"stockLimited", "limitStock", "isLimitStock"}

	skuListPaths = []string{"skuList", "goodsSkuList", "saleSkuList", "skus"}
	skuIDPaths   = []string{"skuId", "skuCode", "id"}
	skuNamePaths = []string{"skuName", "name", "title"}

	specListPaths   = []string{"specList", "skuSpecList", "specs"}
	specIDPaths     = []string{"specId", "id"}
	specOptionPaths = []string{"optionId", "specOptionId", "valueId"}
	specNamePaths   = []string{"optionName", "specOptionName", "name", "value"}

	skuAttrListPaths = []string{"attributeList", "attrList", "attributes"}

	attrGroupListPaths  = []string{"attributeGroupList", "attrGroupList", "propertyList", "attributeGroups"}
	attrGroupIDPaths    = []string{"attrId", "groupId", "id"}
	attrGroupNamePaths  = []string{"attrName", "groupName", "name"}
	attrChoiceListPaths = []string{"attrOptionList", "optionList", "options", "valueList"}
	attrChoiceIDPaths   = []string{"optionId", "attrOptionId", "id"}
	attrChoiceNamePaths = []string{"optionName", "name", "value"}
	attrDefaultPaths    = []string{"isDefault", "default", "checked"}

	comboGroupListPaths = []string{"comboGroupList", "groupList", "comboGroups"}
	comboFixedListPaths = []string{"comboItemList", "comboSkuList"}
	groupNamePaths      = []string{"groupName", "name", "title"}
	groupCountPaths     = []string{"chooseCount", "selectCount", "chooseNum"}
	groupRequiredPaths  = []string{"required", "isRequired", "isMust"}
	groupChoicePaths    = []string{"choices", "itemList", "goodsList", "skuList"}
	comboPricePaths     = []string{"comboPrice", "comboSalePrice"}
	comboQtyPaths       = []string{"num", "count", "quantity"}

	saleOutPaths = []string{"saleOut", "isSaleOut"}
	soldOutPaths = []string{"soldOut", "isSoldOut", "stockOut"}
	canSellPaths = []string{"canSell", "sellable", "available"}
	statusPaths  = []string{"status", "saleStatus", "skuStatus"}
	stockPaths   = []string{"stock", "remainStock", "inventory", "stockNum"}
)

// FirstResult returns the value of the first candidate path present in r.
func FirstResult(r gjson.Result, paths ...string) gjson.Result {
	for _, p := range paths {
		if v := r.Get(p); v.Exists() {
			return v
		}
	}
	return gjson.Result{}
}

// FirstString returns the first candidate that coerces to a non-empty
// string, trimmed.
func FirstString(r gjson.Result, paths ...string) string {
	for _, p := range paths {
		v := r.Get(p)
		if !v.Exists() {
			continue
		}
		if s := strings.TrimSpace(v.String()); s != "" {
			return s
		}
	}
	return ""
}

// FirstNumber returns the first candidate holding a JSON number or a numeric
// string. The bool reports whether any such field was present at all, so
// callers can tell "absent" from zero.
func FirstNumber(r gjson.Result, paths ...string) (float64, bool) {
	for _, p := range paths {
		if n, ok := numeric(r.Get(p)); ok {
			return n, true
		}
	}
	return 0, false
}

// FirstArray returns the first candidate that is a non-empty JSON array.
func FirstArray(r gjson.Result, paths ...string) []gjson.Result {
	for _, p := range paths {
		v := r.Get(p)
		if !v.IsArray() {
			continue
		}
		if arr := v.Array(); len(arr) > 0 {
			return arr
		}
	}
	return nil
}

// FirstBool returns the first candidate carrying a boolean-ish value. Vendors
// spell flags as true/false, 0/1 and "true"/"false" interchangeably.
func FirstBool(r gjson.Result, paths ...string) (val, present bool) {
	for _, p := range paths {
		if b, ok := truthy(r.Get(p)); ok {
			return b, true
		}
	}
	return false, false
}

func numeric(v gjson.Result) (float64, bool) {
	switch v.Type {
	case gjson.Number:
		return v.Num, true
	case gjson.String:
		s := strings.TrimSpace(v.Str)
		if s == "" {
			return 0, false
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

func truthy(v gjson.Result) (val, ok bool) {
	switch v.Type {
	case gjson.True:
		return true, true
	case gjson.False:
		return false, true
	case gjson.Number:
		return v.Num != 0, true
	case gjson.String:
		switch strings.ToLower(strings.TrimSpace(v.Str)) {
		case "true", "1", "yes":
			return true, true
		case "false", "0", "no":
			return false, true
		}
	}
	return false, false
}

func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', 2, 64)
}
