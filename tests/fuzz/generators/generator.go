// Package generators turns fuzzer byte streams into deterministic
// operation sequences for the runtime fuzz targets.
package generators

import "math/rand"

// RandomSource abstracts the source of randomness.
type RandomSource interface {
	Intn(n int) int
	Float64() float64
}

// RandSource wraps math/rand.
type RandSource struct {
	*rand.Rand
}

// ByteSource uses a byte slice as a source of randomness. Exhausted
// data yields zeros, so a prefix of a crashing input reproduces a
// prefix of its behavior.
type ByteSource struct {
	data []byte
	pos  int
}

func (s *ByteSource) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	if s.pos >= len(s.data) {
		return 0
	}
	v := int(s.data[s.pos])
	s.pos++
	return v % n
}

func (s *ByteSource) Float64() float64 {
	if s.pos >= len(s.data) {
		return 0.0
	}
	v := int(s.data[s.pos])
	s.pos++
	return float64(v) / 255.0
}

// Exhausted reports whether the source has consumed all its bytes.
func (s *ByteSource) Exhausted() bool {
	return s.pos >= len(s.data)
}
