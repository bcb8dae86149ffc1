package testutil

import (
	"bytes"
	"fmt"
	"math/rand"
	"sync"

	"github.com/hupe1980/tfrec/feature"
)

// RNG encapsulates a seeded random number generator.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), //nolint:gosec // deterministic test data
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Bytes returns n random bytes.
func (r *RNG) Bytes(n int) []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	b := make([]byte, n)
	_, _ = r.rand.Read(b)
	return b
}

// FillUniform fills dst with random values in range [0, 1).
// Locks only once per call (preferred over calling Float32 in a loop).
func (r *RNG) FillUniform(dst []float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range dst {
		dst[i] = r.rand.Float32()
	}
}

// Feature returns a feature of a random kind holding up to maxLen elements.
func (r *RNG) Feature(maxLen int) feature.Feature {
	n := r.Intn(maxLen + 1)

	switch feature.Kind(r.Intn(3)) {
	case feature.KindInt64:
		r.mu.Lock()
		defer r.mu.Unlock()
		values := make([]int64, n)
		for i := range values {
			values[i] = r.rand.Int63() - r.rand.Int63()
		}
		return feature.Int64List(values...)

	case feature.KindFloat:
		values := make([]float32, n)
		r.FillUniform(values)
		return feature.FloatList(values...)

	default:
		values := make([][]byte, n)
		for i := range values {
			values[i] = r.Bytes(r.Intn(maxLen + 1))
		}
		return feature.BytesList(values...)
	}
}

// FeatureSet returns a set of fields named f0, f1, ... with random features.
func (r *RNG) FeatureSet(fields, maxLen int) *feature.Set {
	s := feature.NewSet(fields)
	for i := 0; i < fields; i++ {
		s.Set(fmt.Sprintf("f%d", i), r.Feature(maxLen))
	}
	return s
}

// FeatureSets returns n random sets, each with up to maxFields fields.
func (r *RNG) FeatureSets(n, maxFields, maxLen int) []*feature.Set {
	sets := make([]*feature.Set, n)
	for i := range sets {
		sets[i] = r.FeatureSet(r.Intn(maxFields+1), maxLen)
	}
	return sets
}

// FlipBit returns a copy of data with the given bit inverted. Bit 0 is the
// lowest bit of data[0].
func FlipBit(data []byte, bit int) []byte {
	out := bytes.Clone(data)
	out[bit/8] ^= 1 << (bit % 8)
	return out
}
