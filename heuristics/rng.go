package heuristics

import "math/rand/v2"

// defaultSeed1 and defaultSeed2 seed the generator used whenever one is constructed without an
// explicit *rand.Rand, so runs without a caller-supplied seed are still
// reproducible rather than varying with wall-clock time.
const defaultSeed1, defaultSeed2 = 0x5ec70cec0c0c, 0x5ec70cec0c0d

func defaultRand() *rand.Rand {
	return rand.New(rand.NewPCG(defaultSeed1, defaultSeed2))
}

func orDefault(r *rand.Rand) *rand.Rand {
	if r != nil {
		return r
	}
	return defaultRand()
}
