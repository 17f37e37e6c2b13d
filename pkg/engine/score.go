package engine

import (
	"fmt"
	"math"
)

// MateValue is the centipawn stand-in for a forced mate when a numeric
// score is needed, e.g. for centipawn-loss arithmetic.
const MateValue = 10000

// Score is a position evaluation from White's perspective. When Mate is
// non-zero a forced mate was found and CP is meaningless: positive means
// White mates in Mate moves, negative means Black mates in -Mate.
type Score struct {
	CP   int `json:"cp"`
	Mate int `json:"mate,omitempty"`
}

// IsMate reports whether the score is a forced mate.
func (s Score) IsMate() bool {
	return s.Mate != 0
}

// Negate flips the score to the opposite perspective.
func (s Score) Negate() Score {
	return Score{CP: -s.CP, Mate: -s.Mate}
}

// Centipawns collapses the score to a single centipawn number, mapping
// mates to +/-MateValue.
func (s Score) Centipawns() int {
	if s.Mate > 0 {
		return MateValue
	}
	if s.Mate < 0 {
		return -MateValue
	}
	return s.CP
}

// Pawns returns the evaluation in pawn units.
func (s Score) Pawns() float64 {
	return float64(s.Centipawns()) / 100
}

func (s Score) String() string {
	if s.Mate != 0 {
		return fmt.Sprintf("#%d", s.Mate)
	}
	return fmt.Sprintf("%+.2f", float64(s.CP)/100)
}

// Description renders the score as a short human-readable verdict.
func (s Score) Description() string {
	if s.Mate > 0 {
		return fmt.Sprintf("White mates in %d", s.Mate)
	}
	if s.Mate < 0 {
		return fmt.Sprintf("Black mates in %d", -s.Mate)
	}

	pawns := s.Pawns()
	abs := math.Abs(pawns)
	switch {
	case abs < 0.3:
		return "Equal position"
	case pawns > 0 && abs < 1:
		return "Slight advantage for White"
	case pawns > 0 && abs < 3:
		return "Clear advantage for White"
	case pawns > 0:
		return "Winning position for White"
	case abs < 1:
		return "Slight advantage for Black"
	case abs < 3:
		return "Clear advantage for Black"
	default:
		return "Winning position for Black"
	}
}
