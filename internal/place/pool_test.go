package place

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

func rawPool(names ...string) []RawCandidate {
	out := make([]RawCandidate, 0, len(names))
	for i, name := range names {
		out = append(out, RawCandidate{
			Name:     name,
			BaseCost: float64(10 + 5*i),
			Rating:   float64(5 + i%5),
		})
	}
	return out
}

func TestParseCategory(t *testing.T) {
	for _, s := range []string{"meal", "nightlife", "lodging"} {
		if _, err := ParseCategory(s); err != nil {
			t.Fatalf("expected %s to parse, got %v", s, err)
		}
	}
	if _, err := ParseCategory("museum"); err == nil {
		t.Fatalf("expected error for unknown category")
	}
}

func TestBuildPool(t *testing.T) {
	pool, err := BuildPool("Varadero", CategoryMeal, rawPool("Casa Juana", "El Rapido"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pool) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(pool))
	}
	for _, c := range pool {
		if c.City != "Varadero" || c.Category != CategoryMeal {
			t.Fatalf("candidate not stamped with city and category: %+v", c)
		}
		if c.Cost == nil {
			t.Fatalf("candidate %s has no cost model", c.Name)
		}
	}
}

func TestBuildPoolRejectsMalformedRecords(t *testing.T) {
	tests := []struct {
		name string
		raw  RawCandidate
		want string
	}{
		{"empty name", RawCandidate{Name: "", BaseCost: 10, Rating: 5}, "name cannot be empty"},
		{"rating too low", RawCandidate{Name: "x", BaseCost: 10, Rating: 0.5}, "rating"},
		{"rating too high", RawCandidate{Name: "x", BaseCost: 10, Rating: 11}, "rating"},
		{"zero cost", RawCandidate{Name: "x", BaseCost: 0, Rating: 5}, "base price"},
		{"negative cost", RawCandidate{Name: "x", BaseCost: -3, Rating: 5}, "base price"},
	}

	for _, tc := range tests {
		_, err := BuildPool("Havana", CategoryMeal, []RawCandidate{tc.raw})
		if err == nil {
			t.Fatalf("%s: expected error, got none", tc.name)
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: expected error mentioning %q, got %v", tc.name, tc.want, err)
		}
	}
}

func TestBuildPoolRejectsUnknownCategory(t *testing.T) {
	if _, err := BuildPool("Havana", Category("museum"), rawPool("x")); err == nil {
		t.Fatalf("expected error for unknown category")
	}
}

func TestPoolsValidate(t *testing.T) {
	pools, err := BuildPools("Havana", rawPool("m1"), rawPool("n1"), rawPool("l1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := pools.Validate(); err != nil {
		t.Fatalf("expected valid pools, got %v", err)
	}

	pools.Nightlife = nil
	if err := pools.Validate(); err == nil {
		t.Fatalf("expected error for empty nightlife pool")
	}
}

func TestPoolsForCategory(t *testing.T) {
	pools, err := BuildPools("Havana", rawPool("m1", "m2"), rawPool("n1"), rawPool("l1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := pools.ForCategory(CategoryMeal); len(got) != 2 {
		t.Fatalf("expected 2 meals, got %d", len(got))
	}
	if got := pools.ForCategory(Category("museum")); got != nil {
		t.Fatalf("expected nil for unknown category, got %v", got)
	}
}

type stubRecommender struct {
	failFor Category
}

func (s *stubRecommender) GetCandidates(_ context.Context, destination string, cat Category) ([]RawCandidate, error) {
	if cat == s.failFor {
		return nil, fmt.Errorf("upstream unavailable")
	}
	return rawPool(string(cat)+"-1", string(cat)+"-2"), nil
}

func TestFetchPools(t *testing.T) {
	pools, err := FetchPools(context.Background(), &stubRecommender{}, "Trinidad")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pools.Meals) != 2 || len(pools.Nightlife) != 2 || len(pools.Lodging) != 2 {
		t.Fatalf("unexpected pool sizes: %+v", pools)
	}

	_, err = FetchPools(context.Background(), &stubRecommender{failFor: CategoryNightlife}, "Trinidad")
	if err == nil {
		t.Fatalf("expected error when a category fetch fails")
	}
	if !strings.Contains(err.Error(), "nightlife") {
		t.Fatalf("expected error to name the failing category, got %v", err)
	}
}
