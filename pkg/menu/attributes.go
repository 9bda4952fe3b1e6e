package menu

import (
	"sort"
	"strings"
)

// maxAttributeCombos bounds the item-level attribute cross product. Above it
// the expansion collapses to each group's default choice, so callers still
// see every base option exactly once instead of a truncated explosion.
const maxAttributeCombos = 512

// ParseAttributeGroups reads the item-level option groups. Within each group
// the default choices sort first, which later makes "collapse to defaults"
// a plain index-zero pick.
func ParseAttributeGroups(detail ItemDetail) []AttributeGroup {
	var out []AttributeGroup
	for _, rec := range FirstArray(detail.Raw, attrGroupListPaths...) {
		g := AttributeGroup{
			ID:   FirstString(rec, attrGroupIDPaths...),
			Name: FirstString(rec, attrGroupNamePaths...),
		}
		for _, c := range FirstArray(rec, attrChoiceListPaths...) {
			choice := AttributeChoice{
				ID:   FirstString(c, attrChoiceIDPaths...),
				Name: FirstString(c, attrChoiceNamePaths...),
			}
			if b, ok := FirstBool(c, attrDefaultPaths...); ok {
				choice.IsDefault = b
			}
			if choice.ID == "" && choice.Name == "" {
				continue
			}
			g.Choices = append(g.Choices, choice)
		}
		if g.Name == "" && len(g.Choices) == 0 {
			continue
		}
		sort.SliceStable(g.Choices, func(i, j int) bool {
			return g.Choices[i].IsDefault && !g.Choices[j].IsDefault
		})
		out = append(out, g)
	}
	return out
}

// ExpandAttributes cross-applies the item-level attribute groups onto the
// built options. Every selection is applied to every input option; the
// blown-up result is deduplicated before returning. If the projected product
// exceeds maxAttributeCombos only the per-group defaults are applied.
func ExpandAttributes(detail ItemDetail, options []VariantOption) []VariantOption {
	groups := ParseAttributeGroups(detail)
	if len(groups) == 0 || len(options) == 0 {
		return options
	}

	total := 1
	for _, g := range groups {
		n := len(g.Choices)
		if n < 1 {
			n = 1
		}
		total *= n
		if total > maxAttributeCombos {
			break
		}
	}

	var selections [][]AttributeChoice
	if total > maxAttributeCombos {
		selections = [][]AttributeChoice{collapsedSelection(groups)}
	} else {
		selections = enumerateSelections(groups, maxAttributeCombos)
	}
	if len(selections) == 0 {
		return options
	}

	out := make([]VariantOption, 0, len(options)*len(selections))
	for _, sel := range selections {
		for _, opt := range options {
			out = append(out, applySelection(opt, groups, sel))
		}
	}
	out = Dedupe(out)
	if len(out) == 0 {
		return options
	}
	return out
}

// enumerateSelections walks every combination depth first. Groups without
// choices occupy an empty slot so they never zero out the product.
func enumerateSelections(groups []AttributeGroup, bound int) [][]AttributeChoice {
	sizes := make([]int, len(groups))
	for i, g := range groups {
		sizes[i] = len(g.Choices)
		if sizes[i] < 1 {
			sizes[i] = 1
		}
	}
	var out [][]AttributeChoice
	for _, vec := range crossIndexes(sizes, bound) {
		sel := make([]AttributeChoice, len(groups))
		for i, ci := range vec {
			if len(groups[i].Choices) > 0 {
				sel[i] = groups[i].Choices[ci]
			}
		}
		out = append(out, sel)
	}
	return out
}

// collapsedSelection picks each group's default choice; defaults already
// sort first, so that is index zero.
func collapsedSelection(groups []AttributeGroup) []AttributeChoice {
	sel := make([]AttributeChoice, len(groups))
	for i, g := range groups {
		if len(g.Choices) > 0 {
			sel[i] = g.Choices[0]
		}
	}
	return sel
}

// applySelection returns a copy of opt with the selection's choice ids
// merged in and its "<group>: <choice>" segments appended to the variant
// text.
func applySelection(opt VariantOption, groups []AttributeGroup, sel []AttributeChoice) VariantOption {
	out := opt
	out.AttrIDs = append([]string(nil), opt.AttrIDs...)
	out.SpecPairs = append([]SpecPair(nil), opt.SpecPairs...)

	var segments []string
	for i, c := range sel {
		if c.ID == "" && c.Name == "" {
			continue
		}
		if c.ID != "" {
			out.AttrIDs = appendUnique(out.AttrIDs, c.ID)
		}
		label := groups[i].Name
		switch {
		case label != "" && c.Name != "":
			segments = append(segments, label+": "+c.Name)
		case c.Name != "":
			segments = append(segments, c.Name)
		case label != "":
			segments = append(segments, label)
		}
	}
	if len(segments) > 0 {
		joined := strings.Join(segments, " | ")
		if out.VariantText != "" {
			out.VariantText += " | " + joined
		} else {
			out.VariantText = joined
		}
	}
	return out
}
