// Package rng is the deterministic randomness facade used by every
// sampling decision in the simulator. All distributions are built
// directly on math/rand because no statistics library appears
// anywhere in the reference corpus; see DESIGN.md for the
// stdlib-over-library justification.
package rng

import (
	"fmt"
	"math"
	"math/rand"
)

// Source wraps a seeded PRNG with the sampling primitives the
// simulator needs. A Source is not safe for concurrent use; callers
// that need independent streams should derive separate Sources with
// DeriveSubSeed.
type Source struct {
	r *rand.Rand
}

// New returns a Source seeded deterministically from seed. Two
// Sources created with the same seed produce identical sequences.
func New(seed uint64) *Source {
	return &Source{r: rand.New(rand.NewSource(int64(seed)))}
}

// UniformBelow returns a uniform integer in [0, n). Panics if n <= 0.
func (s *Source) UniformBelow(n int) int {
	if n <= 0 {
		panic(fmt.Sprintf("rng: UniformBelow called with n=%d", n))
	}
	return s.r.Intn(n)
}

// Float64 returns a uniform float in [0, 1).
func (s *Source) Float64() float64 {
	return s.r.Float64()
}

// SampleWeighted picks an index into weights proportional to its
// weight. Panics if weights is empty or sums to <= 0.
func (s *Source) SampleWeighted(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if len(weights) == 0 || total <= 0 {
		panic("rng: SampleWeighted called with empty or non-positive distribution")
	}
	target := s.r.Float64() * total
	cum := 0.0
	for i, w := range weights {
		cum += w
		if target < cum {
			return i
		}
	}
	return len(weights) - 1
}

// Exponential samples from an exponential distribution with the given
// mean (not rate). A mean <= 0 is a scenario-construction error.
func (s *Source) Exponential(mean float64) float64 {
	if mean <= 0 {
		panic(fmt.Sprintf("rng: Exponential called with non-positive mean=%g", mean))
	}
	return -mean * math.Log(1-s.r.Float64())
}

// LogNormal samples from a log-normal distribution parameterized by
// its median and the standard deviation of the underlying normal.
func (s *Source) LogNormal(median, sd float64) float64 {
	if median <= 0 {
		panic(fmt.Sprintf("rng: LogNormal called with non-positive median=%g", median))
	}
	mu := math.Log(median)
	z := s.r.NormFloat64()
	return math.Exp(mu + sd*z)
}

// Pareto samples from a Pareto distribution with the given scale
// (minimum value) and shape.
func (s *Source) Pareto(scale, shape float64) float64 {
	if scale <= 0 || shape <= 0 {
		panic(fmt.Sprintf("rng: Pareto called with non-positive scale=%g shape=%g", scale, shape))
	}
	u := s.r.Float64()
	for u == 0 {
		u = s.r.Float64()
	}
	return scale / math.Pow(u, 1/shape)
}

// SampleKWithReplacement draws k indices in [0, poolSize) with
// replacement.
func (s *Source) SampleKWithReplacement(poolSize, k int) []int {
	if poolSize <= 0 {
		panic(fmt.Sprintf("rng: SampleKWithReplacement called with empty pool size=%d", poolSize))
	}
	out := make([]int, k)
	for i := range out {
		out[i] = s.r.Intn(poolSize)
	}
	return out
}

// SampleKWithoutReplacement draws k distinct indices in [0, poolSize),
// excluding any index in exclude. Panics if the pool cannot supply k
// distinct values.
func (s *Source) SampleKWithoutReplacement(poolSize, k int, exclude ...int) []int {
	excluded := make(map[int]bool, len(exclude))
	for _, e := range exclude {
		excluded[e] = true
	}
	available := poolSize - len(excluded)
	if available < k {
		panic(fmt.Sprintf("rng: SampleKWithoutReplacement cannot draw %d distinct values from pool of %d (after exclusions)", k, available))
	}

	perm := s.r.Perm(poolSize)
	out := make([]int, 0, k)
	for _, v := range perm {
		if excluded[v] {
			continue
		}
		out = append(out, v)
		if len(out) == k {
			break
		}
	}
	return out
}
