package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/notnil/chess"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chesscoach/pkg/engine"
	"chesscoach/pkg/session"
)

type stubAdvisor struct {
	score engine.Score
}

func (s *stubAdvisor) BestMove(pos *chess.Position, _ engine.Params) (*chess.Move, error) {
	moves := pos.ValidMoves()
	if len(moves) == 0 {
		return nil, engine.ErrNoMove
	}
	return moves[0], nil
}

func (s *stubAdvisor) Evaluate(*chess.Position, int) (engine.Score, error) {
	return s.score, nil
}

func (s *stubAdvisor) SetSkillLevel(int) error { return nil }
func (s *stubAdvisor) NewGame() error          { return nil }
func (s *stubAdvisor) Close() error            { return nil }

func runREPL(t *testing.T, side chess.Color, input string) string {
	t.Helper()
	plainColor(t)

	sess, err := session.New(session.Config{
		Advisor:     &stubAdvisor{score: engine.Score{CP: 35}},
		PlayerColor: side,
	})
	require.NoError(t, err)

	var out bytes.Buffer
	r := NewREPL(sess, strings.NewReader(input), &out)
	require.NoError(t, r.Run())
	return out.String()
}

func TestREPLQuit(t *testing.T) {
	out := runREPL(t, chess.White, "quit\n")
	assert.Contains(t, out, "Chess Coach")
	assert.Contains(t, out, "Playing as White")
	assert.Contains(t, out, "Thanks for playing.")
}

func TestREPLHelp(t *testing.T) {
	out := runREPL(t, chess.White, "help\nquit\n")
	for _, cmd := range []string{"undo", "eval", "fen", "moves", "tip", "flip", "resign"} {
		assert.Contains(t, out, cmd)
	}
}

func TestREPLPlaysMoveAndEngineReplies(t *testing.T) {
	out := runREPL(t, chess.White, "e4\nquit\n")
	assert.Contains(t, out, "You played e4")
	assert.Contains(t, out, "Engine plays")
	assert.Contains(t, out, "1 move at")
}

func TestREPLIllegalMove(t *testing.T) {
	out := runREPL(t, chess.White, "e5\nquit\n")
	assert.Contains(t, out, "Illegal move: e5")
	assert.Contains(t, out, "Try one of:")
}

func TestREPLFen(t *testing.T) {
	out := runREPL(t, chess.White, "fen\nquit\n")
	assert.Contains(t, out, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
}

func TestREPLMoves(t *testing.T) {
	out := runREPL(t, chess.White, "moves\nquit\n")
	assert.Contains(t, out, "Legal moves (20)")
	assert.Contains(t, out, "Nf3")
}

func TestREPLUndo(t *testing.T) {
	out := runREPL(t, chess.White, "e4\nundo\nfen\nquit\n")
	assert.Contains(t, out, "Undid 2 moves.")
	assert.Contains(t, out, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
}

func TestREPLUndoEmpty(t *testing.T) {
	out := runREPL(t, chess.White, "undo\nquit\n")
	assert.Contains(t, out, "Nothing to undo.")
}

func TestREPLFlip(t *testing.T) {
	out := runREPL(t, chess.White, "flip\nquit\n")
	assert.Contains(t, out, "Board flipped.")
	assert.Contains(t, out, "h g f e d c b a")
}

func TestREPLEval(t *testing.T) {
	out := runREPL(t, chess.White, "eval\nquit\n")
	assert.Contains(t, out, "Evaluation: +0.35")
}

func TestREPLStatus(t *testing.T) {
	out := runREPL(t, chess.White, "status\nquit\n")
	assert.Contains(t, out, "Player: default")
	assert.Contains(t, out, "Difficulty: level 10")
}

func TestREPLTip(t *testing.T) {
	out := runREPL(t, chess.White, "tip\nquit\n")
	assert.Contains(t, out, "Thanks for playing.")
}

func TestREPLResignDecline(t *testing.T) {
	out := runREPL(t, chess.White, "resign\nn\n")
	assert.Contains(t, out, "GAME SUMMARY")
	assert.Contains(t, out, "Play again? (y/n)")
	assert.Contains(t, out, "Thanks for playing.")
}

func TestREPLResignPlayAgain(t *testing.T) {
	out := runREPL(t, chess.White, "resign\ny\nquit\n")
	assert.Contains(t, out, "New game. Good luck!")
}

func TestREPLEngineOpensForBlack(t *testing.T) {
	out := runREPL(t, chess.Black, "quit\n")
	assert.Contains(t, out, "Playing as Black")
	assert.Contains(t, out, "Engine plays")
	assert.Contains(t, out, "h g f e d c b a")
}

func TestREPLNewGame(t *testing.T) {
	out := runREPL(t, chess.White, "e4\nnew\nfen\nquit\n")
	assert.Contains(t, out, "New game. Good luck!")
	assert.Contains(t, out, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
}
