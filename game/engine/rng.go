package engine

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

// RandomSource is all the entropy the engine needs for tile spawning.
// *math/rand/v2.Rand satisfies it; tests substitute scripted sources to
// assert exact spawn outcomes.
type RandomSource interface {
	IntN(n int) int
	Float64() float64
}

// NewRandomSource returns a ChaCha8 source seeded from crypto/rand.
func NewRandomSource() RandomSource {
	var seed [32]byte
	_, _ = crand.Read(seed[:])
	return rand.New(rand.NewChaCha8(seed))
}

// NewSeededSource returns a deterministic source for a given seed, so the
// same seed always replays the same game.
func NewSeededSource(seed int64) RandomSource {
	var s [32]byte
	binary.LittleEndian.PutUint64(s[:8], uint64(seed))
	return rand.New(rand.NewChaCha8(s))
}

// NewSeed draws a fresh random seed from crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
