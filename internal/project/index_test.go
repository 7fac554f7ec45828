package project

import (
	"reflect"
	"testing"
)

func TestEnumerateAssetStoreIDs(t *testing.T) {
	p := New("demo")
	_ = p.Objects.Insert(Object{ID: "1", Name: "Tree", Type: "Sprite", AssetStoreID: "tree01"})
	_ = p.Objects.Insert(Object{ID: "2", Name: "Custom", Type: "Sprite"})
	_ = p.AddLayout("Level1")
	level, _ := p.Container("Level1")
	_ = level.Insert(Object{ID: "3", Name: "Sword", Type: "Sprite", AssetStoreID: "sword02"})

	var extra ObjectsContainer
	_ = extra.Insert(Object{ID: "4", Name: "Rock", Type: "Sprite", AssetStoreID: "rock03"})

	idx := EnumerateAssetStoreIDs(p, &extra)
	want := []string{"rock03", "sword02", "tree01"}
	if got := idx.IDs(); !reflect.DeepEqual(got, want) {
		t.Errorf("IDs() = %v, want %v", got, want)
	}
	if idx.Has("") {
		t.Error("objects without asset id must not be indexed")
	}
}

func TestEnumerateAssetStoreIDs_Recomputed(t *testing.T) {
	p := New("demo")
	before := EnumerateAssetStoreIDs(p, nil)
	if before.Has("tree01") {
		t.Fatal("unexpected tree01 before insert")
	}

	_ = p.Objects.Insert(Object{ID: "1", Name: "Tree", Type: "Sprite", AssetStoreID: "tree01"})

	if !EnumerateAssetStoreIDs(p, nil).Has("tree01") {
		t.Error("expected tree01 after insert")
	}
	if before.Has("tree01") {
		t.Error("earlier index must not observe later inserts")
	}
}
