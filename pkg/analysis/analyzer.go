package analysis

import (
	"fmt"

	"github.com/notnil/chess"

	"chesscoach/pkg/engine"
)

// Traits are style signals extracted from a single move.
type Traits struct {
	Attacking bool `json:"attacking"`
	Risky     bool `json:"risky"`
	Active    bool `json:"active"`
}

// MoveAnalysis is the full verdict on a candidate move.
type MoveAnalysis struct {
	Move           string       `json:"move"` // UCI
	SAN            string       `json:"san"`
	Quality        Quality      `json:"quality"`
	Phase          Phase        `json:"phase"`
	EvalBefore     engine.Score `json:"eval_before"` // White's perspective
	EvalAfter      engine.Score `json:"eval_after"`  // White's perspective
	CentipawnLoss  float64      `json:"centipawn_loss"` // from the mover's perspective
	IsBest         bool         `json:"is_best"`
	BestMove       string       `json:"best_move,omitempty"` // UCI, empty when the played move was best
	MaterialChange int          `json:"material_change"` // mover's perspective, pawn units
	IsCapture      bool         `json:"is_capture"`
	IsCheck        bool         `json:"is_check"`
	Traits         Traits       `json:"traits"`
}

// Analyzer grades moves by comparing engine evaluations before and after.
type Analyzer struct {
	adv   engine.Advisor
	depth int
}

// NewAnalyzer returns an analyzer searching to the given depth; depth <= 0
// selects the engine default.
func NewAnalyzer(adv engine.Advisor, depth int) *Analyzer {
	if depth <= 0 {
		depth = engine.DefaultDepth
	}
	return &Analyzer{adv: adv, depth: depth}
}

// EvaluateMove grades a candidate move in the game's current position
// without mutating the game.
func (a *Analyzer) EvaluateMove(g *engine.Game, move string) (MoveAnalysis, error) {
	pos := g.Position()
	mover := pos.Turn()

	parsed, err := g.Decode(move)
	if err != nil {
		return MoveAnalysis{}, err
	}
	moveUCI := chess.UCINotation{}.Encode(pos, parsed)
	moveSAN := chess.AlgebraicNotation{}.Encode(pos, parsed)

	before, err := a.adv.Evaluate(pos, a.depth)
	if err != nil {
		return MoveAnalysis{}, fmt.Errorf("evaluate before %s: %w", moveUCI, err)
	}
	best, err := a.adv.BestMove(pos, engine.Params{Depth: a.depth})
	if err != nil {
		return MoveAnalysis{}, fmt.Errorf("best move: %w", err)
	}
	bestUCI := chess.UCINotation{}.Encode(pos, best)
	isBest := moveUCI == bestUCI

	scratch, err := engine.GameFromFEN(pos.String())
	if err != nil {
		return MoveAnalysis{}, err
	}
	if _, err := scratch.MakeMove(moveUCI); err != nil {
		return MoveAnalysis{}, err
	}
	after, err := a.adv.Evaluate(scratch.Position(), a.depth)
	if err != nil {
		return MoveAnalysis{}, fmt.Errorf("evaluate after %s: %w", moveUCI, err)
	}

	cpLoss := float64(perspective(before, mover) - perspective(after, mover))

	matBefore := Material(pos)
	matAfter := Material(scratch.Position())
	matChange := matAfter.NetFor(mover) - matBefore.NetFor(mover)

	result := MoveAnalysis{
		Move:           moveUCI,
		SAN:            moveSAN,
		Quality:        Classify(cpLoss, isBest),
		Phase:          GamePhase(g),
		EvalBefore:     before,
		EvalAfter:      after,
		CentipawnLoss:  cpLoss,
		IsBest:         isBest,
		MaterialChange: matChange,
		IsCapture:      parsed.HasTag(chess.Capture),
		IsCheck:        parsed.HasTag(chess.Check),
	}
	if !isBest {
		result.BestMove = bestUCI
	}
	result.Traits = classifyTraits(pos, parsed, result)
	return result, nil
}

// perspective folds a White-perspective score into the mover's perspective.
func perspective(s engine.Score, mover chess.Color) int {
	if mover == chess.Black {
		return -s.Centipawns()
	}
	return s.Centipawns()
}

// classifyTraits derives style signals from a graded move. Attacking moves
// create direct threats, risky moves give up material, active moves push
// pieces into the opponent's half.
func classifyTraits(pos *chess.Position, move *chess.Move, ma MoveAnalysis) Traits {
	return Traits{
		Attacking: ma.IsCapture || ma.IsCheck,
		Risky:     ma.MaterialChange < 0,
		Active:    crossesMidline(pos, move),
	}
}

func crossesMidline(pos *chess.Position, move *chess.Move) bool {
	piece := pos.Board().Piece(move.S1())
	if piece == chess.NoPiece || piece.Type() == chess.Pawn || piece.Type() == chess.King {
		return false
	}
	rank := int(move.S2().Rank())
	if piece.Color() == chess.White {
		return rank >= 4 // ranks 5-8
	}
	return rank <= 3 // ranks 1-4
}
