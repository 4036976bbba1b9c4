package utils

import (
	"strings"
	"testing"
)

func TestGeneratePlanID(t *testing.T) {
	id := GeneratePlanID()
	if !strings.HasPrefix(id, "plan-") {
		t.Fatalf("expected plan- prefix, got %s", id)
	}
	if id == GeneratePlanID() {
		t.Fatalf("expected unique IDs, got duplicate %s", id)
	}
}
