package rng

import (
	"math"
	"testing"
)

func TestNewDeterministic(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 100; i++ {
		if x, y := a.Float64(), b.Float64(); x != y {
			t.Fatalf("draw %d diverged: %v != %v", i, x, y)
		}
	}
}

func TestUniformBelowRange(t *testing.T) {
	s := New(1)
	for i := 0; i < 1000; i++ {
		v := s.UniformBelow(7)
		if v < 0 || v >= 7 {
			t.Fatalf("UniformBelow(7) returned %d", v)
		}
	}
}

func TestUniformBelowPanicsOnZero(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for n=0")
		}
	}()
	New(1).UniformBelow(0)
}

func TestSampleWeightedRespectsZeroWeights(t *testing.T) {
	s := New(2)
	weights := []float64{0, 0, 1}
	for i := 0; i < 200; i++ {
		if idx := s.SampleWeighted(weights); idx != 2 {
			t.Fatalf("expected index 2 every time, got %d", idx)
		}
	}
}

func TestExponentialMeanApprox(t *testing.T) {
	s := New(7)
	const mean = 100.0
	const n = 20000
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += s.Exponential(mean)
	}
	got := sum / n
	if math.Abs(got-mean) > mean*0.05 {
		t.Fatalf("sample mean %.2f too far from target mean %.2f", got, mean)
	}
}

func TestSampleKWithoutReplacementDistinct(t *testing.T) {
	s := New(3)
	out := s.SampleKWithoutReplacement(10, 5, 0, 1)
	seen := map[int]bool{}
	for _, v := range out {
		if v == 0 || v == 1 {
			t.Fatalf("excluded value %d was sampled", v)
		}
		if seen[v] {
			t.Fatalf("duplicate value %d in without-replacement sample", v)
		}
		seen[v] = true
	}
	if len(out) != 5 {
		t.Fatalf("expected 5 values, got %d", len(out))
	}
}

func TestSampleKWithoutReplacementPanicsWhenPoolTooSmall(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic when pool is too small")
		}
	}()
	New(1).SampleKWithoutReplacement(3, 5)
}

func TestDeriveSubSeedIsDeterministicAndDistinct(t *testing.T) {
	a := DeriveSubSeed(42, "topology")
	b := DeriveSubSeed(42, "topology")
	if a != b {
		t.Fatal("DeriveSubSeed not deterministic")
	}
	c := DeriveSubSeed(42, "bandwidth")
	if a == c {
		t.Fatal("different labels produced the same sub-seed")
	}
}
