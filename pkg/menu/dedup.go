package menu

import (
	"sort"
	"strings"
)

// Dedupe collapses options that share the same order identity, keeping the
// first occurrence and preserving order. Identity is the sku, the variant
// text, the sorted spec and attribute identifiers, and the price. The text
// matters: combo selections all submit the bundle's primary sku and differ
// only in what was picked.
func Dedupe(options []VariantOption) []VariantOption {
	if len(options) < 2 {
		return options
	}
	seen := make(map[string]struct{}, len(options))
	out := make([]VariantOption, 0, len(options))
	for _, o := range options {
		k := optionKey(o)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, o)
	}
	return out
}

func optionKey(o VariantOption) string {
	specs := make([]string, 0, len(o.SpecPairs))
	for _, sp := range o.SpecPairs {
		specs = append(specs, sp.SpecID+":"+sp.OptionID)
	}
	sort.Strings(specs)

	attrs := append([]string(nil), o.AttrIDs...)
	sort.Strings(attrs)

	price := ""
	if o.HasPrice {
		price = formatPrice(o.Price)
	}
	return strings.Join([]string{o.SkuID, o.VariantText, strings.Join(specs, ":"), strings.Join(attrs, ","), price}, "\x1f")
}
