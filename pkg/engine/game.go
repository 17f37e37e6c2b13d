package engine

import (
	"fmt"

	"github.com/notnil/chess"
)

// Game tracks the board state of a single game. All rule knowledge (legal
// moves, terminations, notation) comes from notnil/chess; nothing is
// computed locally.
type Game struct {
	game *chess.Game
}

// Result describes a finished (or unfinished) game.
type Result struct {
	Over   bool
	Winner string // "white", "black" or "" for a draw
	Reason string
}

// NewGame returns a game at the standard starting position.
func NewGame() *Game {
	return &Game{game: chess.NewGame(chess.UseNotation(chess.UCINotation{}))}
}

// GameFromFEN returns a game starting from the given position.
func GameFromFEN(gamefen string) (*Game, error) {
	fen, err := chess.FEN(gamefen)
	if err != nil {
		return nil, fmt.Errorf("invalid FEN %q: %w", gamefen, err)
	}
	return &Game{game: chess.NewGame(fen, chess.UseNotation(chess.UCINotation{}))}, nil
}

// Reset puts the game back at the starting position.
func (g *Game) Reset() {
	g.game = chess.NewGame(chess.UseNotation(chess.UCINotation{}))
}

// SetFEN replaces the game with one starting from the given position.
func (g *Game) SetFEN(gamefen string) error {
	ng, err := GameFromFEN(gamefen)
	if err != nil {
		return err
	}
	g.game = ng.game
	return nil
}

// FEN returns the current position in FEN notation.
func (g *Game) FEN() string {
	return g.game.Position().String()
}

// Position returns the current position.
func (g *Game) Position() *chess.Position {
	return g.game.Position()
}

// Turn returns the side to move.
func (g *Game) Turn() chess.Color {
	return g.game.Position().Turn()
}

// FullMoves returns the full move number, which increments after Black moves.
func (g *Game) FullMoves() int {
	return len(g.game.Moves())/2 + 1
}

// LegalMoves returns every legal move in UCI notation.
func (g *Game) LegalMoves() []string {
	pos := g.game.Position()
	valid := g.game.ValidMoves()
	moves := make([]string, len(valid))
	for i, m := range valid {
		moves[i] = chess.UCINotation{}.Encode(pos, m)
	}
	return moves
}

// IsLegal reports whether the move string (UCI or SAN) is playable.
func (g *Game) IsLegal(move string) bool {
	_, err := g.parse(move)
	return err == nil
}

// parse decodes a move string against the current position, trying UCI
// notation first and falling back to SAN. The returned move is the matching
// ValidMoves entry, so its tags (check, capture) are populated.
func (g *Game) parse(move string) (*chess.Move, error) {
	pos := g.game.Position()
	if m, err := (chess.UCINotation{}).Decode(pos, move); err == nil {
		if vm := g.matchValid(m); vm != nil {
			return vm, nil
		}
	}
	m, err := (chess.AlgebraicNotation{}).Decode(pos, move)
	if err == nil {
		if vm := g.matchValid(m); vm != nil {
			return vm, nil
		}
	}
	return nil, &IllegalMoveError{Move: move, Legal: g.LegalMoves()}
}

func (g *Game) matchValid(move *chess.Move) *chess.Move {
	for _, m := range g.game.ValidMoves() {
		if m.S1() == move.S1() && m.S2() == move.S2() && m.Promo() == move.Promo() {
			return m
		}
	}
	return nil
}

// Decode resolves a move string (UCI or SAN) to a legal move without
// playing it.
func (g *Game) Decode(move string) (*chess.Move, error) {
	return g.parse(move)
}

// UCI renders a move string (UCI or SAN) in UCI notation for the current
// position without playing it.
func (g *Game) UCI(move string) (string, error) {
	m, err := g.parse(move)
	if err != nil {
		return "", err
	}
	return chess.UCINotation{}.Encode(g.game.Position(), m), nil
}

// MakeMove plays a move given in UCI or SAN notation and returns it in UCI
// notation. An *IllegalMoveError is returned for unplayable input.
func (g *Game) MakeMove(move string) (string, error) {
	pos := g.game.Position()
	m, err := g.parse(move)
	if err != nil {
		return "", err
	}
	uci := chess.UCINotation{}.Encode(pos, m)
	if err := g.game.Move(m); err != nil {
		return "", &IllegalMoveError{Move: move, Legal: g.LegalMoves()}
	}
	return uci, nil
}

// MakeEngineMove plays a move object returned by the engine.
func (g *Game) MakeEngineMove(m *chess.Move) (string, error) {
	pos := g.game.Position()
	uci := chess.UCINotation{}.Encode(pos, m)
	if err := g.game.Move(m); err != nil {
		return "", fmt.Errorf("engine move %s rejected: %w", uci, err)
	}
	return uci, nil
}

// SAN renders a move string (UCI or SAN) as SAN for the current position
// without playing it.
func (g *Game) SAN(move string) (string, error) {
	m, err := g.parse(move)
	if err != nil {
		return "", err
	}
	return chess.AlgebraicNotation{}.Encode(g.game.Position(), m), nil
}

// LastMove returns the most recently played move, or nil.
func (g *Game) LastMove() *chess.Move {
	moves := g.game.Moves()
	if len(moves) == 0 {
		return nil
	}
	return moves[len(moves)-1]
}

// InCheck reports whether the side to move is in check. The verdict comes
// from the position itself, so it holds for games loaded from FEN too.
func (g *Game) InCheck() bool {
	pos := g.game.Position()
	king := kingSquare(pos.Board(), pos.Turn())
	if king == chess.NoSquare {
		return false
	}
	return attacked(pos.Board(), king, pos.Turn().Other())
}

// History returns the played moves in UCI notation.
func (g *Game) History() []string {
	moves := g.game.Moves()
	positions := g.game.Positions()
	history := make([]string, len(moves))
	for i, m := range moves {
		history[i] = chess.UCINotation{}.Encode(positions[i], m)
	}
	return history
}

// Undo removes the last move and returns it in UCI notation. It reports
// false when there is nothing to undo. notnil/chess has no pop, so the game
// is rebuilt from its move list.
func (g *Game) Undo() (string, bool) {
	moves := g.game.Moves()
	if len(moves) == 0 {
		return "", false
	}
	positions := g.game.Positions()
	undone := chess.UCINotation{}.Encode(positions[len(positions)-2], moves[len(moves)-1])

	root, err := chess.FEN(positions[0].String())
	if err != nil {
		return "", false
	}
	rebuilt := chess.NewGame(root, chess.UseNotation(chess.UCINotation{}))
	for i, m := range moves[:len(moves)-1] {
		if err := rebuilt.MoveStr(chess.UCINotation{}.Encode(positions[i], m)); err != nil {
			return "", false
		}
	}
	g.game = rebuilt
	return undone, true
}

// GameOver reports whether the game has ended.
func (g *Game) GameOver() bool {
	return g.game.Outcome() != chess.NoOutcome
}

// EligibleDraws returns the draw claims available in the current position.
func (g *Game) EligibleDraws() []chess.Method {
	return g.game.EligibleDraws()
}

// ClaimDraw claims a draw by the given method.
func (g *Game) ClaimDraw(method chess.Method) error {
	return g.game.Draw(method)
}

// Resign ends the game as a loss for the given color.
func (g *Game) Resign(color chess.Color) {
	g.game.Resign(color)
}

// Result maps the game outcome onto winner and reason strings.
func (g *Game) Result() Result {
	outcome := g.game.Outcome()
	if outcome == chess.NoOutcome {
		return Result{}
	}

	res := Result{Over: true}
	switch outcome {
	case chess.WhiteWon:
		res.Winner = "white"
	case chess.BlackWon:
		res.Winner = "black"
	}

	switch g.game.Method() {
	case chess.Checkmate:
		res.Reason = "checkmate"
	case chess.Stalemate:
		res.Reason = "stalemate"
	case chess.InsufficientMaterial:
		res.Reason = "insufficient_material"
	case chess.FiftyMoveRule:
		res.Reason = "fifty_move_rule"
	case chess.SeventyFiveMoveRule:
		res.Reason = "seventyfive_move_rule"
	case chess.ThreefoldRepetition:
		res.Reason = "threefold_repetition"
	case chess.FivefoldRepetition:
		res.Reason = "fivefold_repetition"
	case chess.Resignation:
		res.Reason = "resignation"
	case chess.DrawOffer:
		res.Reason = "draw_agreed"
	default:
		res.Reason = "unknown"
	}
	return res
}
