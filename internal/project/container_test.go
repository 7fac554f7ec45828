package project

import "testing"

func TestUniqueName(t *testing.T) {
	var c ObjectsContainer
	if got := c.UniqueName("Tree"); got != "Tree" {
		t.Errorf("UniqueName on empty = %q, want Tree", got)
	}

	_ = c.Insert(Object{ID: "1", Name: "Tree", Type: "Sprite"})
	_ = c.Insert(Object{ID: "2", Name: "Tree2", Type: "Sprite"})

	if got := c.UniqueName("Tree"); got != "Tree3" {
		t.Errorf("UniqueName = %q, want Tree3", got)
	}
}

func TestInsert_Validation(t *testing.T) {
	var c ObjectsContainer
	if err := c.Insert(Object{Type: "Sprite"}); err == nil {
		t.Error("expected error for empty name")
	}
	if err := c.Insert(Object{Name: "NoType"}); err == nil {
		t.Error("expected error for empty type")
	}
	if err := c.Insert(Object{ID: "1", Name: "Tree", Type: "Sprite"}); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if err := c.Insert(Object{ID: "2", Name: "Tree", Type: "Sprite"}); err == nil {
		t.Error("expected error for duplicate name")
	}
}

func TestRemove(t *testing.T) {
	var c ObjectsContainer
	_ = c.Insert(Object{ID: "1", Name: "A", Type: "Sprite"})
	_ = c.Insert(Object{ID: "2", Name: "B", Type: "Sprite"})
	_ = c.Insert(Object{ID: "3", Name: "C", Type: "Sprite"})

	if !c.Remove("2") {
		t.Fatal("Remove(2) = false, want true")
	}
	if c.Len() != 2 || c.Has("B") {
		t.Errorf("container after removal = %+v", c)
	}
	if c.Remove("missing") {
		t.Error("Remove(missing) = true, want false")
	}
}
