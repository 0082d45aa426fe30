package ident

import "testing"

func TestNewNanoID(t *testing.T) {
	gen, err := NewNanoID()
	if err != nil {
		t.Fatalf("NewNanoID() error = %v", err)
	}

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := gen()
		if len(id) != DefaultLength {
			t.Fatalf("expected length %d, got %d (%q)", DefaultLength, len(id), id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q after %d generations", id, i)
		}
		seen[id] = true
	}
}

func TestNewUUID(t *testing.T) {
	gen := NewUUID()
	a, b := gen(), gen()
	if len(a) != 36 || a == b {
		t.Errorf("expected two distinct uuids, got %q and %q", a, b)
	}
}
