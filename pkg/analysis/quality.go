package analysis

// Quality classifies a move by its centipawn loss against the engine's
// preferred move.
type Quality string

const (
	Blunder    Quality = "blunder"
	Mistake    Quality = "mistake"
	Inaccuracy Quality = "inaccuracy"
	Good       Quality = "good"
	Excellent  Quality = "excellent"
	Book       Quality = "book"
)

// Centipawn-loss thresholds for the quality buckets.
const (
	BlunderThreshold    = 200
	MistakeThreshold    = 100
	InaccuracyThreshold = 50
)

// Classify buckets a move by centipawn loss. The engine's own choice is
// always Excellent regardless of the measured loss.
func Classify(cpLoss float64, isBest bool) Quality {
	switch {
	case isBest:
		return Excellent
	case cpLoss >= BlunderThreshold:
		return Blunder
	case cpLoss >= MistakeThreshold:
		return Mistake
	case cpLoss >= InaccuracyThreshold:
		return Inaccuracy
	default:
		return Good
	}
}

// IsError reports whether the quality counts against the player.
func (q Quality) IsError() bool {
	return q == Blunder || q == Mistake || q == Inaccuracy
}

// IsAccurate reports whether the quality counts toward accuracy.
func (q Quality) IsAccurate() bool {
	return q == Good || q == Excellent || q == Book
}
