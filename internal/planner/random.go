package planner

import "math/rand/v2"

// RandomSource supplies the coin flips and uniform picks the strengthen and
// sprint stages make. Tests pass a scripted source.
type RandomSource interface {
	Float64() float64
	IntN(n int) int
}

type systemRandom struct{}

func (systemRandom) Float64() float64 { return rand.Float64() }
func (systemRandom) IntN(n int) int   { return rand.IntN(n) }

// SystemRandom draws from the process-wide generator.
func SystemRandom() RandomSource { return systemRandom{} }

// SeededRandom returns a reproducible source.
func SeededRandom(seed uint64) RandomSource {
	return rand.New(rand.NewPCG(seed, seed^0x5851f42d4c957f2d))
}
