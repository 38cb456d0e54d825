package selection

import (
	"reflect"
	"testing"
)

func TestToggle(t *testing.T) {
	s := New[string]()
	if !s.Toggle("1") {
		t.Fatalf("first toggle should select")
	}
	if !s.Has("1") || s.Len() != 1 {
		t.Fatalf("expected 1 selected")
	}
	if s.Toggle("1") {
		t.Fatalf("second toggle should deselect")
	}
	if s.Has("1") || s.Len() != 0 {
		t.Fatalf("expected empty selection")
	}
}

func TestNewIgnoresDuplicatesAndKeepsOrder(t *testing.T) {
	s := New(3, 1, 3, 2)
	if got := s.IDs(); !reflect.DeepEqual(got, []int{3, 1, 2}) {
		t.Fatalf("IDs() = %v", got)
	}
	s.Remove(1)
	if got := s.IDs(); !reflect.DeepEqual(got, []int{3, 2}) {
		t.Fatalf("IDs() after remove = %v", got)
	}
}

func TestSetAllOverFilteredRows(t *testing.T) {
	s := New("9")
	filtered := []string{"1", "2"}

	s.SetAll(filtered, true)
	if !s.AllSelected(filtered) {
		t.Fatalf("expected filtered rows selected")
	}
	if !s.Has("9") {
		t.Fatalf("rows outside the filter must stay selected")
	}

	s.SetAll(filtered, false)
	if s.Has("1") || s.Has("2") {
		t.Fatalf("expected filtered rows deselected")
	}
	if s.Len() != 1 {
		t.Fatalf("expected only row 9 left, got %v", s.IDs())
	}
	if s.AllSelected(nil) {
		t.Fatalf("empty row set is never all selected")
	}
}

func TestClearAndIDsCopy(t *testing.T) {
	s := New("a", "b")
	ids := s.IDs()
	ids[0] = "mutated"
	if !s.Has("a") {
		t.Fatalf("IDs must return a copy")
	}
	s.Clear()
	if s.Len() != 0 || s.Has("a") {
		t.Fatalf("expected empty set after Clear")
	}
	s.Add("c")
	if s.Len() != 1 {
		t.Fatalf("set must stay usable after Clear")
	}
}
