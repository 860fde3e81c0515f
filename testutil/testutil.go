package testutil

import (
	"math/rand"
	"sync"

	"github.com/hupe1980/voxgo/model"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
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

// Int32Range returns a pseudo-random number in [lo,hi].
func (r *RNG) Int32Range(lo, hi int32) int32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return lo + int32(r.rand.Int63n(int64(hi)-int64(lo)+1))
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// Bytes returns n uniform random bytes.
func (r *RNG) Bytes(n int) []byte {
	b := make([]byte, n)
	r.FillBytes(b)
	return b
}

// FillBytes fills dst with uniform random bytes.
func (r *RNG) FillBytes(dst []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range dst {
		dst[i] = byte(r.rand.Intn(256))
	}
}

// FillRuns fills dst with runs of random length in [1,maxRun] drawn from
// `alphabet` distinct values. Small alphabets with long runs look like
// sparse terrain.
func (r *RNG) FillRuns(dst []byte, alphabet, maxRun int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := 0; i < len(dst); {
		v := byte(r.rand.Intn(alphabet))
		run := 1 + r.rand.Intn(maxRun)
		for j := 0; j < run && i < len(dst); j++ {
			dst[i] = v
			i++
		}
	}
}

// Point returns a random point inside region.
func (r *RNG) Point(region model.Region) model.Vec3 {
	return model.Vec3{
		X: r.Int32Range(region.Lower.X, region.Upper.X),
		Y: r.Int32Range(region.Lower.Y, region.Upper.Y),
		Z: r.Int32Range(region.Lower.Z, region.Upper.Z),
	}
}

// InSphere reports whether p lies within radius of centre.
func InSphere(p, centre model.Vec3, radius int32) bool {
	d := p.Sub(centre)
	dist2 := int64(d.X)*int64(d.X) + int64(d.Y)*int64(d.Y) + int64(d.Z)*int64(d.Z)
	return dist2 <= int64(radius)*int64(radius)
}
