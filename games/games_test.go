package games

import (
	"bucks/models"
)

// scriptRand feeds predetermined samples to a machine under test. Float64
// and Intn each consume from their own queue and fall back to zero when the
// queue runs dry.
type scriptRand struct {
	floats []float64
	ints   []int
}

func (s *scriptRand) Float64() float64 {
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *scriptRand) Intn(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

func evenOdds() models.OddsSnapshot {
	return models.OddsSnapshot{WinProbability: 0.5, Multiplier: 2.0, Boost: 1.0}
}
