package analysis

import (
	"github.com/notnil/chess"

	"chesscoach/pkg/engine"
)

// Event marks a notable condition in the current position.
type Event string

const (
	EventCheck            Event = "check"
	EventCheckmate        Event = "checkmate"
	EventStalemate        Event = "stalemate"
	EventDrawInsufficient Event = "draw_insufficient_material"
	EventDrawFiftyMoves   Event = "draw_fifty_move_rule"
	EventDrawThreefold    Event = "draw_threefold_repetition"
	EventDrawFivefold     Event = "draw_fivefold_repetition"
	EventDrawSeventyFive  Event = "draw_seventyfive_moves"
)

// Events reports the notable conditions in the game's current position,
// including draw claims that are merely available.
func Events(g *engine.Game) []Event {
	var events []Event

	if g.InCheck() {
		events = append(events, EventCheck)
	}

	res := g.Result()
	if res.Over {
		switch res.Reason {
		case "checkmate":
			events = append(events, EventCheckmate)
		case "stalemate":
			events = append(events, EventStalemate)
		case "insufficient_material":
			events = append(events, EventDrawInsufficient)
		case "fivefold_repetition":
			events = append(events, EventDrawFivefold)
		case "seventyfive_move_rule":
			events = append(events, EventDrawSeventyFive)
		}
	}

	for _, method := range g.EligibleDraws() {
		switch method {
		case chess.FiftyMoveRule:
			events = append(events, EventDrawFiftyMoves)
		case chess.ThreefoldRepetition:
			events = append(events, EventDrawThreefold)
		}
	}
	return events
}
