package menu

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// maxComboSelections bounds the group cross product. Past it the walk stops
// and whatever accumulated is returned.
const maxComboSelections = 128

// ComboChoice is one sellable component inside a combo bundle.
type ComboChoice struct {
	SkuID         string
	Name          string
	Qty           int
	ComboPrice    float64
	HasComboPrice bool
	Specs         []SpecPair
}

// ComboGroup is one selectable group of a combo bundle. Choices holds only
// the components that survived the sellability check.
type ComboGroup struct {
	Name        string
	Cardinality int
	Required    bool
	Choices     []ComboChoice
}

// comboOptions resolves a combo bundle. Group-based structure wins over a
// fixed component list; a combo-typed item with neither still sells through
// its plain sku list.
func comboOptions(detail ItemDetail) []VariantOption {
	if groups, structured, ok := parseComboGroups(detail); structured {
		if !ok {
			return nil
		}
		return comboGroupOptions(detail, groups)
	}
	if comps, structured, ok := parseFixedBundle(detail); structured {
		if !ok {
			return nil
		}
		return fixedBundleOptions(detail, comps)
	}
	return simpleOptions(detail)
}

// parseComboGroups reads group-based combo structure. structured reports
// whether the payload has a group list at all; ok reports whether every
// required group kept at least one sellable choice.
func parseComboGroups(detail ItemDetail) (groups []ComboGroup, structured, ok bool) {
	raw := FirstArray(detail.Raw, comboGroupListPaths...)
	if len(raw) == 0 {
		return nil, false, false
	}
	ok = true
	for _, rec := range raw {
		g := ComboGroup{
			Name:        FirstString(rec, groupNamePaths...),
			Cardinality: 1,
		}
		if n, present := FirstNumber(rec, groupCountPaths...); present && n > 0 {
			g.Cardinality = int(n)
		}
		if req, present := FirstBool(rec, groupRequiredPaths...); present {
			g.Required = req
		}
		for _, c := range FirstArray(rec, groupChoicePaths...) {
			if Sellable(c, true) {
				g.Choices = append(g.Choices, parseComboChoice(c))
			}
		}
		if g.Required && len(g.Choices) == 0 {
			ok = false
		}
		groups = append(groups, g)
	}
	return groups, true, ok
}

// parseFixedBundle reads a fixed component list. ok reports every listed
// component sellable; a fixed bundle with any component sold out cannot be
// ordered at all.
func parseFixedBundle(detail ItemDetail) (comps []ComboChoice, structured, ok bool) {
	raw := FirstArray(detail.Raw, comboFixedListPaths...)
	if len(raw) == 0 {
		return nil, false, false
	}
	for _, rec := range raw {
		if !Sellable(rec, true) {
			return nil, true, false
		}
		comps = append(comps, parseComboChoice(rec))
	}
	return comps, true, true
}

func parseComboChoice(rec gjson.Result) ComboChoice {
	c := ComboChoice{
		SkuID: FirstString(rec, skuIDPaths...),
		Name:  FirstString(rec, skuNamePaths...),
		Qty:   1,
		Specs: parseSpecPairs(rec),
	}
	if n, ok := FirstNumber(rec, comboQtyPaths...); ok && n > 0 {
		c.Qty = int(n)
	}
	if p, ok := FirstNumber(rec, comboPricePaths...); ok {
		c.ComboPrice, c.HasComboPrice = p, true
	}
	return c
}

// comboGroupOptions cross-multiplies the per-group selections. Groups with
// cardinality above one contribute a single selection of their first
// cardinality sellable choices; pick-one groups contribute each choice as
// its own selection. Optional groups with nothing sellable drop out instead
// of zeroing the product.
func comboGroupOptions(detail ItemDetail, groups []ComboGroup) []VariantOption {
	type groupSels struct {
		group ComboGroup
		sels  [][]ComboChoice
	}
	var gs []groupSels
	for _, g := range groups {
		if len(g.Choices) == 0 {
			continue
		}
		var sels [][]ComboChoice
		if g.Cardinality <= 1 {
			for _, c := range g.Choices {
				sels = append(sels, []ComboChoice{c})
			}
		} else {
			n := g.Cardinality
			if n > len(g.Choices) {
				n = len(g.Choices)
			}
			sels = [][]ComboChoice{g.Choices[:n]}
		}
		gs = append(gs, groupSels{group: g, sels: sels})
	}
	if len(gs) == 0 {
		return nil
	}

	sizes := make([]int, len(gs))
	for i := range gs {
		sizes[i] = len(gs[i].sels)
	}
	var out []VariantOption
	for _, vec := range crossIndexes(sizes, maxComboSelections) {
		var chosen []ComboChoice
		var segments []string
		for i, ci := range vec {
			for _, c := range gs[i].sels[ci] {
				chosen = append(chosen, c)
				segments = append(segments, comboSegment(gs[i].group.Name, c))
			}
		}
		out = append(out, buildComboOption(detail, chosen, segments))
	}
	return out
}

// fixedBundleOptions renders the one orderable shape of a fixed bundle.
func fixedBundleOptions(detail ItemDetail, comps []ComboChoice) []VariantOption {
	var segments []string
	for _, c := range comps {
		if seg := comboSegment("", c); seg != "" {
			segments = append(segments, seg)
		}
	}
	return []VariantOption{buildComboOption(detail, comps, segments)}
}

func comboSegment(groupName string, c ComboChoice) string {
	seg := c.Name
	if groupName != "" && c.Name != "" {
		seg = groupName + ": " + c.Name
	} else if groupName != "" {
		seg = groupName
	}
	if seg != "" && c.Qty > 1 {
		seg += fmt.Sprintf(" x%d", c.Qty)
	}
	return seg
}

// buildComboOption assembles one combo variant. The submitted sku is always
// the bundle's primary sku; the price is the sum of declared component combo
// prices when any component declares one, otherwise the bundle's own price.
// The first component that carries spec pairs lends them to the option so
// its variant (cup size and the like) survives into the order.
func buildComboOption(detail ItemDetail, chosen []ComboChoice, segments []string) VariantOption {
	opt := VariantOption{
		SkuID: detail.PrimarySkuID(),
		Name:  detail.Name(),
	}

	sum, declared := 0.0, false
	for _, c := range chosen {
		if c.HasComboPrice {
			declared = true
			sum += c.ComboPrice
		}
	}
	if declared {
		opt.Price, opt.HasPrice = sum, true
	} else if base, ok := detail.Price(); ok {
		opt.Price, opt.HasPrice = base, true
	}

	for _, c := range chosen {
		if len(c.Specs) == 0 {
			continue
		}
		var names []string
		for _, sp := range c.Specs {
			if sp.Name != "" {
				names = append(names, sp.Name)
			}
		}
		if len(names) > 0 {
			segments = append(segments, "Variant: "+strings.Join(names, " + "))
			opt.SpecPairs = c.Specs
		}
		break
	}

	opt.VariantText = strings.Join(segments, " | ")
	return opt
}
