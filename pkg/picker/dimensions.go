// Package picker turns a flat list of sellable variants into a staged,
// dimension-by-dimension selection flow: first the cup, then the ice, then
// the sweetness, until exactly one variant is pinned down.
package picker

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mochacli/mocha/pkg/menu"
)

// Dimension is one selection axis recovered from the options' variant text.
type Dimension struct {
	Key   string
	Label string
}

// ParsedOption pairs an option with its value on every dimension, aligned
// with the dimension slice. An empty value means the option does not
// constrain that axis and acts as a wildcard during staging.
type ParsedOption struct {
	Option menu.VariantOption
	Values []string
}

// dimensionTiers pulls well-known axes to the front: the drink itself first,
// then ice, then sweetness. Everything unrecognized keeps its discovery
// order after those.
var dimensionTiers = []struct {
	tier  int
	words []string
}{
	{0, []string{"size", "milk", "cup", "variant"}},
	{1, []string{"ice"}},
	{2, []string{"sweet", "sugar"}},
}

func tierOf(d Dimension) int {
	probe := strings.ToLower(d.Key + " " + d.Label)
	for _, t := range dimensionTiers {
		for _, w := range t.words {
			if strings.Contains(probe, w) {
				return t.tier
			}
		}
	}
	return 10
}

// ExtractDimensions recovers the labeled axes from every option's variant
// text ("Size: Large | Ice: Less") plus each option's value vector. The
// dimension list is the first-seen union across all options, reordered by
// tier; unlabeled segments become synthetic Variant axes. Options whose text
// yields nothing at all fall back to a single Variant dimension carrying the
// whole text or the option name, so every option stays selectable.
func ExtractDimensions(options []menu.VariantOption) ([]Dimension, []ParsedOption) {
	type segVal struct {
		key, label, value string
	}
	perOption := make([][]segVal, len(options))
	var dims []Dimension
	seen := make(map[string]bool)

	for i, opt := range options {
		unnamed := 0
		for _, raw := range strings.Split(opt.VariantText, "|") {
			seg := strings.TrimSpace(raw)
			if seg == "" {
				continue
			}
			var sv segVal
			if label, value, ok := splitLabeled(seg); ok {
				sv = segVal{key: normalizeKey(label), label: label, value: value}
			} else {
				unnamed++
				label := "Variant"
				if unnamed > 1 {
					label = fmt.Sprintf("Variant %d", unnamed)
				}
				sv = segVal{key: normalizeKey(label), label: label, value: seg}
			}
			perOption[i] = append(perOption[i], sv)
			if !seen[sv.key] {
				seen[sv.key] = true
				dims = append(dims, Dimension{Key: sv.key, Label: sv.label})
			}
		}
	}

	if len(dims) == 0 {
		dims = []Dimension{{Key: "variant", Label: "Variant"}}
		parsed := make([]ParsedOption, len(options))
		for i, opt := range options {
			v := opt.VariantText
			if v == "" {
				v = opt.Name
			}
			parsed[i] = ParsedOption{Option: opt, Values: []string{v}}
		}
		return dims, parsed
	}

	sort.SliceStable(dims, func(i, j int) bool {
		return tierOf(dims[i]) < tierOf(dims[j])
	})

	index := make(map[string]int, len(dims))
	for i, d := range dims {
		index[d.Key] = i
	}
	parsed := make([]ParsedOption, len(options))
	for i, opt := range options {
		values := make([]string, len(dims))
		for _, sv := range perOption[i] {
			if at, ok := index[sv.key]; ok && values[at] == "" {
				values[at] = sv.value
			}
		}
		parsed[i] = ParsedOption{Option: opt, Values: values}
	}
	return dims, parsed
}

// splitLabeled splits a "Label: Value" segment; bare text reports ok false.
func splitLabeled(seg string) (label, value string, ok bool) {
	at := strings.Index(seg, ":")
	if at <= 0 {
		return "", "", false
	}
	label = strings.TrimSpace(seg[:at])
	value = strings.TrimSpace(seg[at+1:])
	if label == "" || value == "" {
		return "", "", false
	}
	return label, value, true
}

func normalizeKey(label string) string {
	return strings.ToLower(strings.Join(strings.Fields(label), " "))
}
