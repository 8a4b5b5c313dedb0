package solver

import (
	"math/rand/v2"
	"sync/atomic"

	"lukechampine.com/frand"
)

// RandomSource draws a uniform index in [0, n). It is only called with n >= 1.
type RandomSource interface {
	IntN(n int) int
}

// SourceFactory hands out one RandomSource per rollout worker.
type SourceFactory func() RandomSource

type frandSource struct{}

func (frandSource) IntN(n int) int {
	return frand.Intn(n)
}

// CryptoSources is the production factory; frand is safe for concurrent use
// so every worker shares the same generator.
func CryptoSources() SourceFactory {
	return func() RandomSource {
		return frandSource{}
	}
}

// SeededSources returns reproducible PCG streams. The i-th call to the
// factory always yields the same stream for a given seed.
func SeededSources(seed uint64) SourceFactory {
	var stream atomic.Uint64
	return func() RandomSource {
		return rand.New(rand.NewPCG(seed, stream.Add(1)))
	}
}
