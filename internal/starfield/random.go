package starfield

import (
	"math/rand"
	"time"
)

// Source is the randomness behind every generator. *rand.Rand satisfies it.
type Source interface {
	Float64() float64
	Intn(n int) int
}

// Rand wraps a Source with the range helpers the generators need.
type Rand struct {
	src Source
}

// NewRand returns a Rand seeded with seed, or with the wall clock when seed is 0.
func NewRand(seed int64) *Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Rand{src: rand.New(rand.NewSource(seed))}
}

// NewRandFrom wraps an existing source.
func NewRandFrom(src Source) *Rand {
	return &Rand{src: src}
}

// Range returns a uniform value in [a, b).
func (r *Rand) Range(a, b float64) float64 {
	return r.src.Float64()*(b-a) + a
}

// Chance reports true with probability p.
func (r *Rand) Chance(p float64) bool {
	return r.src.Float64() < p
}

// Intn returns a uniform int in [0, n). n must be > 0.
func (r *Rand) Intn(n int) int {
	return r.src.Intn(n)
}

// IntRange returns a uniform int in [lo, hi].
func (r *Rand) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.src.Intn(hi-lo+1)
}

// Shuffle permutes n elements uniformly (Fisher-Yates, walking down from the end).
func (r *Rand) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := r.src.Intn(i + 1)
		swap(i, j)
	}
}
