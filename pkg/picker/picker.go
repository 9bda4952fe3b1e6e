package picker

import "github.com/mochacli/mocha/pkg/menu"

// StageChoice is one selectable value at the current stage, with the price
// spread and the number of option combinations still compatible with it.
type StageChoice struct {
	Value    string
	Count    int
	MinPrice float64
	MaxPrice float64
	HasPrice bool
}

// Resolved is the commit tuple handed to the ordering flow once every
// dimension has a value.
type Resolved struct {
	SkuID       string
	Name        string
	Price       float64
	HasPrice    bool
	VariantText string
	Values      []string
	SpecPairs   []menu.SpecPair
	AttrIDs     []string
	Qty         int
}

// Picker walks the recovered dimensions one stage at a time until a single
// option is pinned down. It holds plain state and is driven entirely by its
// caller; nothing here blocks or errs.
type Picker struct {
	dims     []Dimension
	parsed   []ParsedOption
	stage    int
	selected []string
	qty      int
}

// New builds a picker over the options. The initial selection is seeded from
// the option whose sku matches currentSKU, or the first option, so stepping
// through the stages confirming each value reproduces the current variant.
func New(options []menu.VariantOption, currentSKU string) *Picker {
	dims, parsed := ExtractDimensions(options)
	p := &Picker{
		dims:     dims,
		parsed:   parsed,
		selected: make([]string, len(dims)),
		qty:      1,
	}
	if len(parsed) == 0 {
		return p
	}
	seed := 0
	if currentSKU != "" {
		for i, po := range parsed {
			if po.Option.SkuID == currentSKU {
				seed = i
				break
			}
		}
	}
	copy(p.selected, parsed[seed].Values)
	return p
}

// Empty reports whether there is nothing to pick from.
func (p *Picker) Empty() bool { return len(p.parsed) == 0 }

// Stage is the zero-based index of the current stage.
func (p *Picker) Stage() int { return p.stage }

// StageCount is the number of dimensions to walk.
func (p *Picker) StageCount() int { return len(p.dims) }

// Dimension is the axis being decided at the current stage.
func (p *Picker) Dimension() Dimension { return p.dims[p.stage] }

// Dimensions returns all axes in stage order.
func (p *Picker) Dimensions() []Dimension { return p.dims }

// Selected returns the value recorded for stage i, "" when undecided.
func (p *Picker) Selected(i int) string {
	if i < 0 || i >= len(p.selected) {
		return ""
	}
	return p.selected[i]
}

// Qty is the order quantity, never below one.
func (p *Picker) Qty() int { return p.qty }

func (p *Picker) SetQty(q int) {
	if q < 1 {
		q = 1
	}
	p.qty = q
}

// compatible reports whether po agrees with every selection below limit.
// Undecided selections and blank option values both act as wildcards.
func (p *Picker) compatible(po ParsedOption, limit int) bool {
	for i := 0; i < limit && i < len(p.selected); i++ {
		want := p.selected[i]
		if want == "" || po.Values[i] == "" {
			continue
		}
		if po.Values[i] != want {
			return false
		}
	}
	return true
}

// Choices groups the options compatible with the earlier stages by their
// value on the current axis, in first-seen order, aggregating the price
// spread and counting combinations per value. Options that do not constrain
// this axis contribute no choice but stay alive as wildcards.
func (p *Picker) Choices() []StageChoice {
	var out []StageChoice
	at := make(map[string]int)
	for _, po := range p.parsed {
		if !p.compatible(po, p.stage) {
			continue
		}
		v := po.Values[p.stage]
		if v == "" {
			continue
		}
		i, ok := at[v]
		if !ok {
			i = len(out)
			at[v] = i
			out = append(out, StageChoice{Value: v})
		}
		c := &out[i]
		c.Count++
		if po.Option.HasPrice {
			if !c.HasPrice {
				c.MinPrice, c.MaxPrice = po.Option.Price, po.Option.Price
				c.HasPrice = true
			} else {
				if po.Option.Price < c.MinPrice {
					c.MinPrice = po.Option.Price
				}
				if po.Option.Price > c.MaxPrice {
					c.MaxPrice = po.Option.Price
				}
			}
		}
	}
	return out
}

// Cursor is the index of the remembered selection among the current stage's
// choices, for hosts that pre-position their list. Zero when the remembered
// value is gone or nothing was remembered.
func (p *Picker) Cursor() int {
	if p.stage >= len(p.selected) {
		return 0
	}
	v := p.selected[p.stage]
	if v == "" {
		return 0
	}
	for i, c := range p.Choices() {
		if c.Value == v {
			return i
		}
	}
	return 0
}

// Advance records choice i at the current stage and moves forward. Choosing
// a value different from what was recorded invalidates every later
// selection; re-confirming the same value keeps them, which is what lets the
// seeded selection survive stage-by-stage confirmation. On the final stage
// it resolves instead; a nil result there means the stage had nothing valid
// to offer and the picker deliberately stays put.
func (p *Picker) Advance(i int) *Resolved {
	choices := p.Choices()
	if i < 0 || i >= len(choices) {
		return nil
	}
	v := choices[i].Value
	if p.selected[p.stage] != v {
		p.selected[p.stage] = v
		for j := p.stage + 1; j < len(p.selected); j++ {
			p.selected[j] = ""
		}
	}
	if p.stage+1 < len(p.dims) {
		p.stage++
		return nil
	}
	return p.resolve()
}

// Back steps to the previous stage, keeping selections so forward movement
// can confirm them again. False means the picker was already on the first
// stage and should close instead.
func (p *Picker) Back() bool {
	if p.stage == 0 {
		return false
	}
	p.stage--
	return true
}

// resolve pins the final option: an exact value-vector match wins, otherwise
// the first option compatible under wildcard rules. Nil when nothing fits.
func (p *Picker) resolve() *Resolved {
	exact, compat := -1, -1
	for i, po := range p.parsed {
		if exact < 0 && equalValues(po.Values, p.selected) {
			exact = i
		}
		if compat < 0 && p.compatible(po, len(p.dims)) {
			compat = i
		}
		if exact >= 0 {
			break
		}
	}
	pick := exact
	if pick < 0 {
		pick = compat
	}
	if pick < 0 {
		return nil
	}
	po := p.parsed[pick]
	return &Resolved{
		SkuID:       po.Option.SkuID,
		Name:        po.Option.Name,
		Price:       po.Option.Price,
		HasPrice:    po.Option.HasPrice,
		VariantText: po.Option.VariantText,
		Values:      append([]string(nil), po.Values...),
		SpecPairs:   po.Option.SpecPairs,
		AttrIDs:     po.Option.AttrIDs,
		Qty:         p.qty,
	}
}

func equalValues(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
