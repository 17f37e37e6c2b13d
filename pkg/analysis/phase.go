// Package analysis derives coaching signals from game state: phase,
// material balance, move quality and position events. Evaluations are
// delegated to the engine; everything here is bookkeeping on top of them.
package analysis

import (
	"github.com/notnil/chess"

	"chesscoach/pkg/engine"
)

// Phase is the stage of the game.
type Phase string

const (
	Opening    Phase = "opening"
	Middlegame Phase = "middlegame"
	Endgame    Phase = "endgame"
)

const (
	// endgameMaterial is the per-side material total (pawn units) at or
	// below which a position counts as an endgame.
	endgameMaterial = 13
	// openingMoves is the last full move that can still count as opening.
	openingMoves = 10
	// minUndevelopedMinors is how many of the eight minor pieces must sit
	// on their home squares for the position to count as opening.
	minUndevelopedMinors = 4
)

// minorHomes maps minor-piece home squares to the piece expected there.
var minorHomes = map[chess.Square]chess.PieceType{
	chess.B1: chess.Knight, chess.G1: chess.Knight,
	chess.C1: chess.Bishop, chess.F1: chess.Bishop,
	chess.B8: chess.Knight, chess.G8: chess.Knight,
	chess.C8: chess.Bishop, chess.F8: chess.Bishop,
}

// GamePhase classifies the current position.
//
// Endgame: queens off or both sides at low material. Opening: early moves
// with most minor pieces undeveloped. Middlegame: everything else.
func GamePhase(g *engine.Game) Phase {
	material := Material(g.Position())

	queensOff := material.White.Queens == 0 && material.Black.Queens == 0
	lowMaterial := material.White.Total() <= endgameMaterial && material.Black.Total() <= endgameMaterial
	if queensOff || lowMaterial {
		return Endgame
	}

	if g.FullMoves() <= openingMoves && undevelopedMinors(g.Position()) >= minUndevelopedMinors {
		return Opening
	}
	return Middlegame
}

func undevelopedMinors(pos *chess.Position) int {
	board := pos.Board()
	count := 0
	for sq, pt := range minorHomes {
		if p := board.Piece(sq); p != chess.NoPiece && p.Type() == pt {
			count++
		}
	}
	return count
}
