package utils

import (
	"math/rand"
	"time"
)

// RandSource is a seedable random number generator. Every stochastic
// component takes one explicitly so runs are reproducible and
// concurrent runs never share generator state.
type RandSource struct {
	rng *rand.Rand
}

// NewRandSource creates a new random source with the given seed.
// A zero seed selects a time-based seed.
func NewRandSource(seed int64) *RandSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandSource{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Float64 returns a random float64 in [0.0, 1.0)
func (r *RandSource) Float64() float64 {
	return r.rng.Float64()
}

// Intn returns a random int in [0, n)
func (r *RandSource) Intn(n int) int {
	return r.rng.Intn(n)
}

// NormFloat64 returns a normally distributed random number with mean and stddev
func (r *RandSource) NormFloat64(mean, stddev float64) float64 {
	return r.rng.NormFloat64()*stddev + mean
}

// UniformFloat64 returns a uniformly distributed random number in [min, max)
func (r *RandSource) UniformFloat64(min, max float64) float64 {
	return min + r.rng.Float64()*(max-min)
}

// truncNormMaxDraws bounds the rejection loop for truncated normal
// sampling. The truncation windows used by cost models keep well over
// 90% of the mass, so the bound is practically never reached.
const truncNormMaxDraws = 64

// TruncNormFloat64 returns a normally distributed random number with the
// given mean and stddev, truncated to [zLower, zUpper] standard-normal
// z-bounds around the mean. Sampling is by rejection; if the window is
// pathologically narrow the draw is clamped to the nearer bound.
func (r *RandSource) TruncNormFloat64(mean, stddev, zLower, zUpper float64) float64 {
	for i := 0; i < truncNormMaxDraws; i++ {
		z := r.rng.NormFloat64()
		if z >= zLower && z <= zUpper {
			return mean + z*stddev
		}
	}
	z := ClampFloat64(r.rng.NormFloat64(), zLower, zUpper)
	return mean + z*stddev
}

// DeriveSeed returns a new seed drawn from this source. Used to give
// each parallel restart its own independent generator.
func (r *RandSource) DeriveSeed() int64 {
	return r.rng.Int63()
}
