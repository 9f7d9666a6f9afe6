package testutil

import (
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
)

// NewTestRNG creates a deterministic random number generator for tests
func NewTestRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// NopLogger returns a no-op logger for tests
func NopLogger() zerolog.Logger {
	return zerolog.Nop()
}

// FixedRandom replays a fixed sequence of picks. Each pick is reduced modulo n
// so the same sequence works for any candidate count. When the sequence runs
// out it keeps returning 0.
type FixedRandom struct {
	picks []int
	next  int
	// Calls records the n passed to every Intn call
	Calls []int
}

// NewFixedRandom creates a fixed-sequence random source
func NewFixedRandom(picks ...int) *FixedRandom {
	return &FixedRandom{picks: picks}
}

// Intn returns the next pick modulo n
func (f *FixedRandom) Intn(n int) int {
	f.Calls = append(f.Calls, n)
	if f.next >= len(f.picks) {
		return 0
	}
	p := f.picks[f.next] % n
	f.next++
	return p
}

// AssertPanic asserts that the given function panics
func AssertPanic(t *testing.T, f func(), msgAndArgs ...interface{}) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected panic but none occurred: %v", msgAndArgs)
		}
	}()
	f()
}
