package place

import (
	"testing"

	"github.com/guidebot/planner-core/pkg/utils"
)

func TestNewStochasticCostDefaults(t *testing.T) {
	cost, err := NewStochasticCost(20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cost.BasePrice != 20 {
		t.Fatalf("expected base price 20, got %f", cost.BasePrice)
	}
	if cost.StdDev != 4 {
		t.Fatalf("expected std dev 4, got %f", cost.StdDev)
	}
	if got := cost.LowerBound(); got < 9.999 || got > 10.001 {
		t.Fatalf("expected lower bound 10, got %f", got)
	}
	if got := cost.UpperBound(); got < 39.999 || got > 40.001 {
		t.Fatalf("expected upper bound 40, got %f", got)
	}
}

func TestNewStochasticCostRejectsBadInput(t *testing.T) {
	if _, err := NewStochasticCost(0); err == nil {
		t.Fatalf("expected error for zero base price")
	}
	if _, err := NewStochasticCost(-5); err == nil {
		t.Fatalf("expected error for negative base price")
	}
	if _, err := NewStochasticCostWithSpread(10, 0, 5, 20); err == nil {
		t.Fatalf("expected error for zero std dev")
	}
	if _, err := NewStochasticCostWithSpread(10, 2, 20, 5); err == nil {
		t.Fatalf("expected error for inverted bounds")
	}
}

func TestSampleStaysWithinBounds(t *testing.T) {
	cost, err := NewStochasticCost(20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rng := utils.NewRandSource(42)
	for i := 0; i < 5000; i++ {
		v := cost.Sample(rng)
		if v < cost.LowerBound()-1e-9 || v > cost.UpperBound()+1e-9 {
			t.Fatalf("sample %f outside [%f, %f]", v, cost.LowerBound(), cost.UpperBound())
		}
	}
}

func TestSampleNeverBelowFloor(t *testing.T) {
	// A tiny base price pushes the truncation window near zero; the
	// floor keeps every draw positive.
	cost, err := NewStochasticCost(0.011)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rng := utils.NewRandSource(3)
	for i := 0; i < 2000; i++ {
		if v := cost.Sample(rng); v < CostFloor {
			t.Fatalf("sample %f below cost floor %f", v, CostFloor)
		}
	}
}

func TestSampleDeterministicForSeed(t *testing.T) {
	cost, err := NewStochasticCost(30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a := utils.NewRandSource(11)
	b := utils.NewRandSource(11)
	for i := 0; i < 100; i++ {
		if cost.Sample(a) != cost.Sample(b) {
			t.Fatalf("same seed diverged at sample %d", i)
		}
	}
}
