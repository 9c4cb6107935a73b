package domain

import (
	"context"
	"testing"
)

func TestChannelMap(t *testing.T) {
	defaults := []string{"C1", "C2"}
	m := NewChannelMap(map[string]string{
		"general": "C1",
		"random":  "C3",
	}, defaults)

	if id, ok := m.IDByName("general"); !ok || id != "C1" {
		t.Errorf("IDByName(general) = %q, %v", id, ok)
	}
	if name, ok := m.NameByID("C3"); !ok || name != "random" {
		t.Errorf("NameByID(C3) = %q, %v", name, ok)
	}
	if _, ok := m.IDByName("missing"); ok {
		t.Error("expected unknown name to miss")
	}
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}

	defaults[0] = "CX"
	got := m.DefaultChannelIDs()
	if got[0] != "C1" {
		t.Errorf("defaults alias caller slice: %v", got)
	}

	got[1] = "CY"
	if m.DefaultChannelIDs()[1] != "C2" {
		t.Error("DefaultChannelIDs returned the internal slice")
	}
}

func TestStaticDirectory(t *testing.T) {
	lookup := NewChannelMap(map[string]string{"general": "C1"}, nil)
	dir := NewStaticDirectory(lookup)

	for name, fn := range map[string]func(context.Context) (ChannelLookup, error){
		"Lookup":  dir.Lookup,
		"Refresh": dir.Refresh,
	} {
		got, err := fn(context.Background())
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if got != ChannelLookup(lookup) {
			t.Errorf("%s returned a different lookup", name)
		}
	}
}
