package picker

import (
	"testing"
	"time"
)

func TestLayoutChoiceDescription(t *testing.T) {
	one := LayoutChoice{Name: "solo", Panels: 1}
	if got := one.Description(); got != "1 panel" {
		t.Fatalf("Description() = %q", got)
	}
	saved := LayoutChoice{Name: "work", Panels: 3, SavedAt: time.Date(2026, 1, 2, 3, 4, 0, 0, time.Local)}
	if got := saved.Description(); got != "3 panels · saved 2026-01-02 03:04" {
		t.Fatalf("Description() = %q", got)
	}
	if saved.FilterValue() != "work" || saved.Title() != "work" {
		t.Fatalf("title/filter = %q/%q", saved.Title(), saved.FilterValue())
	}
}

func TestNewLayoutPicker(t *testing.T) {
	l := NewLayoutPicker()
	l.SetItems(ChoicesToItems([]LayoutChoice{{Name: "a"}, {Name: "b"}}))
	if len(l.Items()) != 2 {
		t.Fatalf("items = %d, want 2", len(l.Items()))
	}
	selected, ok := l.SelectedItem().(LayoutChoice)
	if !ok || selected.Name != "a" {
		t.Fatalf("selected = %#v", l.SelectedItem())
	}
}
