package id

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDGenerator_NewID(t *testing.T) {
	g := NewUUIDGenerator()
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		v, err := g.NewID()
		if err != nil {
			t.Fatalf("NewID error: %v", err)
		}
		if _, err := uuid.Parse(v); err != nil {
			t.Fatalf("NewID returned non-uuid %q: %v", v, err)
		}
		if _, dup := seen[v]; dup {
			t.Fatalf("duplicate id %q", v)
		}
		seen[v] = struct{}{}
	}
}

func TestMustNewID_NilGenerator(t *testing.T) {
	if v := MustNewID(nil); v == "" {
		t.Fatalf("expected id from nil generator")
	}
}
