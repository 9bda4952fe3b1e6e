package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mochacli/mocha/pkg/menu"
)

func teaOptions() []menu.VariantOption {
	return []menu.VariantOption{
		{SkuID: "S1", Name: "Milk Tea", VariantText: "Size: Large | Sweetness: Less", Price: 21, HasPrice: true},
		{SkuID: "S2", Name: "Milk Tea", VariantText: "Size: Large | Sweetness: No", Price: 21, HasPrice: true},
		{SkuID: "S3", Name: "Milk Tea", VariantText: "Size: Medium | Sweetness: Less", Price: 18, HasPrice: true},
		{SkuID: "S4", Name: "Milk Tea", VariantText: "Size: Medium | Sweetness: No", Price: 18, HasPrice: true},
	}
}

func press(t *testing.T, m pickerModel, k tea.KeyType) pickerModel {
	t.Helper()
	next, _ := m.Update(tea.KeyMsg{Type: k})
	out, ok := next.(pickerModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return out
}

func typeRunes(t *testing.T, m pickerModel, s string) pickerModel {
	t.Helper()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return next.(pickerModel)
}

func TestPickerModelWalkToConfirm(t *testing.T) {
	m := newPickerModel(teaOptions(), "", "Milk Tea", 1)

	view := m.View()
	if !strings.Contains(view, "pick Size (step 1/2)") {
		t.Fatalf("view = %q", view)
	}
	if !strings.Contains(view, "> Large") || !strings.Contains(view, "(2 combinations)") {
		t.Fatalf("view = %q", view)
	}

	m = press(t, m, tea.KeyDown)
	if m.cursor != 1 {
		t.Fatalf("cursor = %d", m.cursor)
	}
	m = press(t, m, tea.KeyEnter)
	if m.phase != phasePick || m.pk.Stage() != 1 {
		t.Fatalf("phase %d stage %d after first enter", m.phase, m.pk.Stage())
	}

	m = press(t, m, tea.KeyEnter)
	if m.phase != phaseConfirm || m.resolved == nil {
		t.Fatalf("phase %d resolved %v", m.phase, m.resolved)
	}
	if m.resolved.SkuID != "S3" {
		t.Fatalf("resolved %+v, want Medium/Less", m.resolved)
	}

	m = press(t, m, tea.KeyUp)
	m = press(t, m, tea.KeyUp)
	m = press(t, m, tea.KeyDown)
	if m.pk.Qty() != 2 {
		t.Fatalf("qty = %d", m.pk.Qty())
	}
	m = typeRunes(t, m, "no straw")
	if m.note.Value() != "no straw" {
		t.Fatalf("note = %q", m.note.Value())
	}

	m = press(t, m, tea.KeyEnter)
	if !m.done || m.resolved.Qty != 2 {
		t.Fatalf("done %v qty %d", m.done, m.resolved.Qty)
	}
}

func TestPickerModelQtyNeverBelowOne(t *testing.T) {
	m := newPickerModel(teaOptions(), "", "Milk Tea", 1)
	m = press(t, m, tea.KeyEnter)
	m = press(t, m, tea.KeyEnter)
	m = press(t, m, tea.KeyDown)
	if m.pk.Qty() != 1 {
		t.Fatalf("qty = %d, want floor of 1", m.pk.Qty())
	}
}

func TestPickerModelEscOnFirstStageCancels(t *testing.T) {
	m := newPickerModel(teaOptions(), "", "Milk Tea", 1)
	m = press(t, m, tea.KeyEsc)
	if !m.canceled {
		t.Fatal("esc on the first stage must cancel")
	}
}

func TestPickerModelEscStepsBack(t *testing.T) {
	m := newPickerModel(teaOptions(), "S4", "Milk Tea", 1)
	m = press(t, m, tea.KeyEnter)
	if m.pk.Stage() != 1 {
		t.Fatalf("stage = %d", m.pk.Stage())
	}
	m = press(t, m, tea.KeyEsc)
	if m.canceled || m.pk.Stage() != 0 {
		t.Fatalf("canceled %v stage %d", m.canceled, m.pk.Stage())
	}
	// Cursor back on the remembered Medium.
	if m.cursor != 1 {
		t.Fatalf("cursor = %d", m.cursor)
	}
}

func TestPickerModelConfirmEscReturnsToPick(t *testing.T) {
	m := newPickerModel(teaOptions(), "S1", "Milk Tea", 1)
	m = press(t, m, tea.KeyEnter)
	m = press(t, m, tea.KeyEnter)
	if m.phase != phaseConfirm {
		t.Fatalf("phase = %d", m.phase)
	}
	m = press(t, m, tea.KeyEsc)
	if m.phase != phasePick || m.done {
		t.Fatalf("phase %d done %v", m.phase, m.done)
	}
	if m.note.Focused() {
		t.Fatal("note still focused after leaving confirm")
	}
}

func TestPickerModelEmptyStageIsInert(t *testing.T) {
	m := newPickerModel([]menu.VariantOption{
		{SkuID: "W1", Name: "Tea", VariantText: "Size: Large | Temp: Hot", Price: 10, HasPrice: true},
		{SkuID: "W2", Name: "Tea", VariantText: "Size: Small", Price: 8, HasPrice: true},
	}, "", "Tea", 1)
	m = press(t, m, tea.KeyDown)
	m = press(t, m, tea.KeyEnter)
	if m.pk.Stage() != 1 {
		t.Fatalf("stage = %d", m.pk.Stage())
	}
	if view := m.View(); !strings.Contains(view, "nothing selectable here") {
		t.Fatalf("view = %q", view)
	}
	m = press(t, m, tea.KeyEnter)
	if m.phase != phasePick || m.done {
		t.Fatalf("empty stage advanced: phase %d done %v", m.phase, m.done)
	}
}

func TestPickerModelIgnoresOtherMessages(t *testing.T) {
	m := newPickerModel(teaOptions(), "", "Milk Tea", 1)
	next, _ := m.Update("not a key")
	if next.(pickerModel).pk.Stage() != 0 {
		t.Fatal("non-key message changed state")
	}
}

func TestRunPickerNoOptions(t *testing.T) {
	_, ok, err := RunPicker(nil, "", "Milk Tea", 1)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("nothing to pick must report ok=false")
	}
}
