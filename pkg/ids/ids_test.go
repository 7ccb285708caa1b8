package ids

import (
	"strings"
	"testing"
)

func TestNewFormat(t *testing.T) {
	id := New(PrefixAlert)
	parts := strings.Split(id, "-")
	if len(parts) != 3 {
		t.Fatalf("expected PREFIX-TS-RAND, got %q", id)
	}
	if parts[0] != PrefixAlert {
		t.Fatalf("wrong prefix in %q", id)
	}
	if len(parts[2]) != randomLen {
		t.Fatalf("random suffix should be %d chars, got %q", randomLen, parts[2])
	}
	if id != strings.ToUpper(id) {
		t.Fatalf("id should be upper case: %q", id)
	}
}

func TestNewUniqueness(t *testing.T) {
	seen := make(map[string]struct{})
	for range 1000 {
		id := New(PrefixVisit)
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id generated: %s", id)
		}
		seen[id] = struct{}{}
	}
}
