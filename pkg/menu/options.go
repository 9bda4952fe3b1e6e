package menu

import (
	"strings"

	"github.com/tidwall/gjson"
)

// BuildOptions resolves the full sellable variant space of an item. Combo
// bundles go through the bounded group walk, plain items through the sku
// list; either way the item-level attribute groups are cross-applied and the
// result deduplicated. An empty slice means nothing is sellable right now,
// which is a valid answer, not a failure.
func BuildOptions(detail ItemDetail) []VariantOption {
	var opts []VariantOption
	if detail.IsCombo() {
		opts = comboOptions(detail)
	} else {
		opts = simpleOptions(detail)
	}
	opts = ExpandAttributes(detail, opts)
	return Dedupe(opts)
}

// simpleOptions builds one option per sellable SKU of a plain item.
func simpleOptions(detail ItemDetail) []VariantOption {
	strict := detail.strictStock()
	var out []VariantOption
	for _, sku := range FirstArray(detail.Raw, skuListPaths...) {
		if !Sellable(sku, strict) {
			continue
		}
		id := FirstString(sku, skuIDPaths...)
		if id == "" {
			continue
		}
		opt := VariantOption{
			SkuID: id,
			Name:  FirstString(sku, skuNamePaths...),
		}
		if opt.Name == "" {
			opt.Name = detail.Name()
		}
		if p, ok := FirstNumber(sku, pricePaths...); ok {
			opt.Price, opt.HasPrice = p, true
		}
		opt.SpecPairs = parseSpecPairs(sku)
		attrIDs, attrNames := parseSkuAttrs(sku)
		opt.AttrIDs = attrIDs
		opt.VariantText = joinVariantText(opt.SpecPairs, attrNames)
		out = append(out, opt)
	}
	if len(out) == 0 {
		if fb, ok := rootFallback(detail); ok {
			out = append(out, fb)
		}
	}
	return out
}

// rootFallback synthesizes a single option from the detail root for legacy
// payloads that expose exactly one sku at the top level instead of a list.
func rootFallback(detail ItemDetail) (VariantOption, bool) {
	id := FirstString(detail.Raw, rootSkuPaths...)
	if id == "" {
		return VariantOption{}, false
	}
	opt := VariantOption{SkuID: id, Name: detail.Name()}
	if p, ok := detail.Price(); ok {
		opt.Price, opt.HasPrice = p, true
	}
	return opt, true
}

// parseSpecPairs reads a record's spec list. Entries missing identifiers
// still contribute their display name to the variant text, so only fully
// empty entries are dropped.
func parseSpecPairs(rec gjson.Result) []SpecPair {
	var pairs []SpecPair
	for _, s := range FirstArray(rec, specListPaths...) {
		p := SpecPair{
			SpecID:   FirstString(s, specIDPaths...),
			OptionID: FirstString(s, specOptionPaths...),
			Name:     FirstString(s, specNamePaths...),
		}
		if p.SpecID == "" && p.OptionID == "" && p.Name == "" {
			continue
		}
		pairs = append(pairs, p)
	}
	return pairs
}

// parseSkuAttrs reads the attribute entries a sku carries directly.
func parseSkuAttrs(rec gjson.Result) (ids, names []string) {
	for _, a := range FirstArray(rec, skuAttrListPaths...) {
		if id := FirstString(a, attrChoiceIDPaths...); id != "" {
			ids = appendUnique(ids, id)
		}
		if n := FirstString(a, attrChoiceNamePaths...); n != "" {
			names = append(names, n)
		}
	}
	return ids, names
}

// joinVariantText renders the spec display names followed by the sku's own
// attribute names, " + " separated: "Large + Oat Milk".
func joinVariantText(specs []SpecPair, attrNames []string) string {
	var parts []string
	for _, sp := range specs {
		if sp.Name != "" {
			parts = append(parts, sp.Name)
		}
	}
	parts = append(parts, attrNames...)
	return strings.Join(parts, " + ")
}

func appendUnique(list []string, v string) []string {
	for _, e := range list {
		if e == v {
			return list
		}
	}
	return append(list, v)
}
