package asset

import (
	"reflect"
	"testing"
)

func TestRequiredExtensionNames(t *testing.T) {
	b := &Body{
		ID: "knight",
		ObjectAssets: []ObjectAsset{
			{RequiredExtensions: []ExtensionRef{{ExtensionName: "Health"}, {ExtensionName: "Physics"}}},
			{RequiredExtensions: []ExtensionRef{{ExtensionName: "Physics"}, {ExtensionName: ""}, {ExtensionName: "Fire"}}},
		},
	}

	want := []string{"Health", "Physics", "Fire"}
	if got := b.RequiredExtensionNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("RequiredExtensionNames() = %v, want %v", got, want)
	}
}

func TestRequiredExtensionNames_Union(t *testing.T) {
	a := &Body{ObjectAssets: []ObjectAsset{{RequiredExtensions: []ExtensionRef{{ExtensionName: "A"}, {ExtensionName: "B"}}}}}
	b := &Body{ObjectAssets: []ObjectAsset{{RequiredExtensions: []ExtensionRef{{ExtensionName: "B"}, {ExtensionName: "C"}}}}}

	want := []string{"A", "B", "C"}
	if got := RequiredExtensionNames([]*Body{a, nil, b}); !reflect.DeepEqual(got, want) {
		t.Errorf("RequiredExtensionNames() = %v, want %v", got, want)
	}
}

func TestHeaderKind(t *testing.T) {
	if got := (Header{ID: "tree01"}).Kind(); got != KindPublic {
		t.Errorf("Kind() = %q, want %q", got, KindPublic)
	}
	if got := (Header{ID: "sword02", IsPrivate: true}).Kind(); got != KindPrivate {
		t.Errorf("Kind() = %q, want %q", got, KindPrivate)
	}
}

func TestPackInfo(t *testing.T) {
	var nilPack *Pack
	if nilPack.Info() != nil {
		t.Error("Info() on nil pack should be nil")
	}
	p := &Pack{ID: "p1", Name: "Forest", Tag: "forest"}
	if got := p.Info(); got.ID != "p1" || got.Name != "Forest" || got.Tag != "forest" {
		t.Errorf("Info() = %+v", got)
	}
}
