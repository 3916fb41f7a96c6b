// Package trand provides independent pseudo-random streams for
// multithreaded sampling.
//
// A single seed deterministically yields one generator per worker, each
// advanced by a distinct multiple of a jump of 2^128 draws, so that no
// two streams can produce overlapping output sequences for any realistic
// draw length. Sampling from per-worker streams is therefore
// statistically sound without locking, which a single shared generator
// cannot offer.
//
// The streams are handed out as *rand.Rand from golang.org/x/exp/rand,
// the rand layer used throughout the gonum ecosystem.
package trand

import (
	"fmt"
	"math/bits"
	"sync"

	"golang.org/x/exp/rand"

	"github.com/exascience/batchpar/pool"
)

// DefaultSeed is the fixed seed of the process-wide default stream set
// returned by Default.
const DefaultSeed uint64 = 0

// A Source is a xoshiro256** pseudo-random generator. It implements
// rand.Source from golang.org/x/exp/rand, and additionally supports
// Jump, the deterministic jump-ahead used to derive independent streams.
//
// The zero value must be seeded before use. A Source is not safe for
// concurrent use; each stream belongs to exactly one worker.
type Source struct {
	s [4]uint64
}

// NewSource returns a Source seeded with the given value.
func NewSource(seed uint64) *Source {
	src := new(Source)
	src.Seed(seed)
	return src
}

// Seed initializes the generator state from a 64-bit seed, expanded
// through a SplitMix64 sequence as recommended for the xoshiro family.
func (src *Source) Seed(seed uint64) {
	for i := range src.s {
		seed += 0x9e3779b97f4a7c15
		z := seed
		z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
		z = (z ^ (z >> 27)) * 0x94d049bb133111eb
		src.s[i] = z ^ (z >> 31)
	}
}

// Uint64 returns the next value of the xoshiro256** 1.0 sequence.
func (src *Source) Uint64() uint64 {
	result := bits.RotateLeft64(src.s[1]*5, 7) * 9
	t := src.s[1] << 17
	src.s[2] ^= src.s[0]
	src.s[3] ^= src.s[1]
	src.s[1] ^= src.s[2]
	src.s[0] ^= src.s[3]
	src.s[2] ^= t
	src.s[3] = bits.RotateLeft64(src.s[3], 45)
	return result
}

// jumpPoly is the characteristic polynomial of the xoshiro256 jump
// function, from the reference implementation. Applying it advances the
// state by 2^128 steps.
var jumpPoly = [4]uint64{
	0x180ec6d33cfd0aba, 0xd5a61266f0c9392c,
	0xa9582618e03fc9aa, 0x39abdc4529b1661c,
}

// Jump advances the generator by 2^128 draws without materializing them.
// A stream and a copy of it advanced by one Jump cannot produce
// overlapping output sequences for any realistic draw length.
func (src *Source) Jump() {
	var s0, s1, s2, s3 uint64
	for _, m := range jumpPoly {
		for b := 0; b < 64; b++ {
			if m&(1<<uint(b)) != 0 {
				s0 ^= src.s[0]
				s1 ^= src.s[1]
				s2 ^= src.s[2]
				s3 ^= src.s[3]
			}
			src.Uint64()
		}
	}
	src.s = [4]uint64{s0, s1, s2, s3}
}

// NewStreams returns n independent streams derived from the given seed.
//
// Stream i is a copy of the seeded source advanced by i+1 jumps of 2^128
// draws each, so the streams are pairwise non-overlapping by construction
// and share no state after construction. The same seed reproduces the
// same streams.
//
// NewStreams panics if n < 0.
func NewStreams(seed uint64, n int) []*rand.Rand {
	if n < 0 {
		panic(fmt.Sprintf("invalid number of streams: %v", n))
	}
	src := NewSource(seed)
	streams := make([]*rand.Rand, n)
	for i := range streams {
		src.Jump()
		jumped := *src
		streams[i] = rand.New(&jumped)
	}
	return streams
}

var (
	defaultStreams     []*rand.Rand
	defaultStreamsOnce sync.Once
)

// Default returns the process-wide stream set, built once, on first use,
// from DefaultSeed with one stream per worker of the default pool. Index
// it by worker identity:
//
//	streams := trand.Default()
//	pool.Default().Dispatch(func(w *pool.Worker) {
//		r := streams[w.ID()]
//		...
//	})
//
// Each worker must touch only its own slot. Callers needing isolation
// from other users of the default set should construct their own streams
// with NewStreams.
func Default() []*rand.Rand {
	defaultStreamsOnce.Do(func() {
		defaultStreams = NewStreams(DefaultSeed, pool.Default().Size())
	})
	return defaultStreams
}
