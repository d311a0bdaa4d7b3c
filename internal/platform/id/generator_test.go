package id

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestUUIDGenerator(t *testing.T) {
	plain, err := NewUUIDGenerator("").NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	if _, err := uuid.Parse(plain); err != nil {
		t.Fatalf("expected uuid, got %q: %v", plain, err)
	}

	prefixed, err := NewUUIDGenerator("sq").NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	if !strings.HasPrefix(prefixed, "sq_") {
		t.Fatalf("expected sq_ prefix, got %q", prefixed)
	}
	if prefixed == plain {
		t.Fatalf("expected distinct ids")
	}
}
