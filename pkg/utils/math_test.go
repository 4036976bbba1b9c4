package utils

import "testing"

func TestMin(t *testing.T) {
	if Min(3, 5) != 3 {
		t.Fatalf("Min(3, 5) != 3")
	}
	if Min(5, 3) != 3 {
		t.Fatalf("Min(5, 3) != 3")
	}
}

func TestClampFloat64(t *testing.T) {
	if v := ClampFloat64(5, 0, 10); v != 5 {
		t.Fatalf("expected 5, got %f", v)
	}
	if v := ClampFloat64(-1, 0, 10); v != 0 {
		t.Fatalf("expected 0, got %f", v)
	}
	if v := ClampFloat64(11, 0, 10); v != 10 {
		t.Fatalf("expected 10, got %f", v)
	}
}

func TestMean(t *testing.T) {
	if v := Mean([]float64{1, 2, 3, 4}); v != 2.5 {
		t.Fatalf("expected 2.5, got %f", v)
	}
	if v := Mean(nil); v != 0 {
		t.Fatalf("expected 0 for empty slice, got %f", v)
	}
}

func TestRound(t *testing.T) {
	if v := Round(3.14159, 2); v != 3.14 {
		t.Fatalf("expected 3.14, got %f", v)
	}
	if v := Round2(7.126); v != 7.13 {
		t.Fatalf("expected 7.13, got %f", v)
	}
}
