package engine

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEngineNotFound indicates that no UCI engine binary could be located.
var ErrEngineNotFound = errors.New("engine binary not found")

// ErrGameOver is returned when a move or search is requested on a finished game.
var ErrGameOver = errors.New("game is over")

// ErrNoMove is returned when the engine reports no best move for a position.
var ErrNoMove = errors.New("engine returned no move")

// IllegalMoveError is returned when a move string cannot be played in the
// current position. Legal holds a sample of playable moves for the error text.
type IllegalMoveError struct {
	Move  string
	Legal []string
}

func (e *IllegalMoveError) Error() string {
	if len(e.Legal) == 0 {
		return fmt.Sprintf("illegal move: %q", e.Move)
	}
	sample := e.Legal
	suffix := ""
	if len(sample) > 5 {
		sample = sample[:5]
		suffix = ", ..."
	}
	return fmt.Sprintf("illegal move: %q (try: %s%s)", e.Move, strings.Join(sample, ", "), suffix)
}
