// Package tui hosts mocha's interactive pieces. The picker model drives
// pkg/picker one stage at a time and hands back the resolved variant.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mochacli/mocha/pkg/menu"
	"github.com/mochacli/mocha/pkg/picker"
)

const (
	phasePick = iota
	phaseConfirm
)

// Outcome is what the user settled on, plus the free-text note for the
// barista.
type Outcome struct {
	Resolved picker.Resolved
	Note     string
}

type pickerModel struct {
	pk       *picker.Picker
	itemName string
	cursor   int
	phase    int
	note     textinput.Model
	resolved *picker.Resolved
	done     bool
	canceled bool
}

func newPickerModel(options []menu.VariantOption, seedSKU, itemName string, qty int) pickerModel {
	ti := textinput.New()
	ti.Placeholder = "note for the barista (optional)"
	ti.CharLimit = 120

	m := pickerModel{
		pk:       picker.New(options, seedSKU),
		itemName: itemName,
		note:     ti,
	}
	m.pk.SetQty(qty)
	m.cursor = m.pk.Cursor()
	return m
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.phase == phaseConfirm {
		return m.updateConfirm(key)
	}
	return m.updatePick(key)
}

func (m pickerModel) updatePick(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	choices := m.pk.Choices()
	switch key.Type {
	case tea.KeyCtrlC:
		m.canceled = true
		return m, tea.Quit
	case tea.KeyEsc, tea.KeyLeft:
		if !m.pk.Back() {
			m.canceled = true
			return m, tea.Quit
		}
		m.cursor = m.pk.Cursor()
	case tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case tea.KeyDown:
		if m.cursor < len(choices)-1 {
			m.cursor++
		}
	case tea.KeyEnter, tea.KeyRight:
		if len(choices) == 0 {
			return m, nil
		}
		if res := m.pk.Advance(m.cursor); res != nil {
			m.resolved = res
			m.phase = phaseConfirm
			m.note.Focus()
			return m, textinput.Blink
		}
		m.cursor = m.pk.Cursor()
	}
	return m, nil
}

func (m pickerModel) updateConfirm(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyCtrlC:
		m.canceled = true
		return m, tea.Quit
	case tea.KeyEsc:
		m.phase = phasePick
		m.note.Blur()
		m.cursor = m.pk.Cursor()
		return m, nil
	case tea.KeyEnter:
		m.resolved.Qty = m.pk.Qty()
		m.done = true
		return m, tea.Quit
	case tea.KeyUp:
		m.pk.SetQty(m.pk.Qty() + 1)
		return m, nil
	case tea.KeyDown:
		m.pk.SetQty(m.pk.Qty() - 1)
		return m, nil
	}
	var cmd tea.Cmd
	m.note, cmd = m.note.Update(key)
	return m, cmd
}

func (m pickerModel) View() string {
	if m.done || m.canceled {
		return ""
	}
	if m.phase == phaseConfirm {
		return m.confirmView()
	}

	var b strings.Builder
	dim := m.pk.Dimension()
	fmt.Fprintf(&b, "%s: pick %s (step %d/%d)\n\n", m.itemName, dim.Label, m.pk.Stage()+1, m.pk.StageCount())
	choices := m.pk.Choices()
	if len(choices) == 0 {
		b.WriteString("  nothing selectable here, esc to go back\n")
	}
	for i, c := range choices {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := cursor + c.Value
		if c.HasPrice {
			line += "  " + priceRange(c.MinPrice, c.MaxPrice)
		}
		if c.Count > 1 {
			line += fmt.Sprintf("  (%d combinations)", c.Count)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n↑/↓ move · enter select · esc back\n")
	return b.String()
}

func (m pickerModel) confirmView() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", m.itemName)
	if m.resolved.VariantText != "" {
		fmt.Fprintf(&b, "%s\n", m.resolved.VariantText)
	}
	if m.resolved.HasPrice {
		fmt.Fprintf(&b, "unit price %s\n", formatAmount(m.resolved.Price))
	}
	fmt.Fprintf(&b, "quantity   %d (↑/↓ to adjust)\n\n", m.pk.Qty())
	fmt.Fprintf(&b, "note: %s\n\n", m.note.View())
	b.WriteString("enter place order · esc change selection\n")
	return b.String()
}

func priceRange(min, max float64) string {
	if min == max {
		return formatAmount(min)
	}
	return formatAmount(min) + "-" + formatAmount(max)
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RunPicker walks the user through the staged selection. ok is false when
// the picker was cancelled or there was nothing to pick.
func RunPicker(options []menu.VariantOption, seedSKU, itemName string, qty int) (Outcome, bool, error) {
	if len(options) == 0 {
		return Outcome{}, false, nil
	}
	m := newPickerModel(options, seedSKU, itemName, qty)
	res, err := tea.NewProgram(m).Run()
	if err != nil {
		return Outcome{}, false, err
	}
	final, ok := res.(pickerModel)
	if !ok || !final.done || final.resolved == nil {
		return Outcome{}, false, nil
	}
	return Outcome{Resolved: *final.resolved, Note: final.note.Value()}, true, nil
}
