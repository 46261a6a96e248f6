package core

import (
	"math/rand"
	"testing"
)

func TestSmootherKnownValues(t *testing.T) {
	s := Smoother{Factor: 0.3}
	cases := []struct {
		old, raw, want uint16
	}{
		{0, 0, 0},
		{65535, 65535, 65535},
		{0, 1000, 700},  // (1-s)*raw
		{1000, 0, 300},  // s*old
		{1000, 1000, 1000},
	}
	for _, c := range cases {
		if got := s.Apply(c.old, c.raw); got != c.want {
			t.Errorf("Apply(%d, %d) = %d, want %d", c.old, c.raw, got, c.want)
		}
	}
}

func TestSmootherConvexity(t *testing.T) {
	s := Smoother{Factor: DefaultSmoothingFactor}
	rng := rand.New(rand.NewSource(1))
	check := func(old, raw uint16) {
		got := s.Apply(old, raw)
		lo, hi := old, raw
		if lo > hi {
			lo, hi = hi, lo
		}
		if got < lo || got > hi {
			t.Fatalf("Apply(%d, %d) = %d outside [%d, %d]", old, raw, got, lo, hi)
		}
	}
	check(0, 65535)
	check(65535, 0)
	check(0, 0)
	check(65535, 65535)
	for i := 0; i < 10000; i++ {
		check(uint16(rng.Intn(65536)), uint16(rng.Intn(65536)))
	}
}

func TestSmootherZeroFactorPassesRawThrough(t *testing.T) {
	s := Smoother{Factor: 0}
	if got := s.Apply(12345, 54321); got != 54321 {
		t.Errorf("Apply with factor 0 = %d, want raw 54321", got)
	}
}
