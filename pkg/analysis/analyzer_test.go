package analysis

import (
	"testing"

	"github.com/notnil/chess"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chesscoach/pkg/engine"
)

// fakeAdvisor serves canned evaluations keyed by FEN and a fixed best move.
type fakeAdvisor struct {
	evals map[string]engine.Score
	best  string // UCI
}

func (f *fakeAdvisor) BestMove(pos *chess.Position, p engine.Params) (*chess.Move, error) {
	return chess.UCINotation{}.Decode(pos, f.best)
}

func (f *fakeAdvisor) Evaluate(pos *chess.Position, depth int) (engine.Score, error) {
	return f.evals[pos.String()], nil
}

func (f *fakeAdvisor) SetSkillLevel(level int) error { return nil }
func (f *fakeAdvisor) NewGame() error                { return nil }
func (f *fakeAdvisor) Close() error                  { return nil }

func evalAfter(t *testing.T, g *engine.Game, move string) string {
	t.Helper()
	scratch, err := engine.GameFromFEN(g.FEN())
	require.NoError(t, err)
	_, err = scratch.MakeMove(move)
	require.NoError(t, err)
	return scratch.FEN()
}

func TestEvaluateMoveBest(t *testing.T) {
	g := engine.NewGame()
	adv := &fakeAdvisor{
		best: "e2e4",
		evals: map[string]engine.Score{
			g.FEN():                   {CP: 20},
			evalAfter(t, g, "e2e4"):   {CP: 30},
		},
	}
	a := NewAnalyzer(adv, 8)

	ma, err := a.EvaluateMove(g, "e4")
	require.NoError(t, err)

	assert.Equal(t, "e2e4", ma.Move)
	assert.Equal(t, "e4", ma.SAN)
	assert.True(t, ma.IsBest)
	assert.Empty(t, ma.BestMove)
	assert.Equal(t, Excellent, ma.Quality)
	assert.Equal(t, Opening, ma.Phase)
	assert.InDelta(t, -10, ma.CentipawnLoss, 0.01)
	assert.Equal(t, 0, ma.MaterialChange)
	assert.False(t, ma.IsCapture)
	assert.False(t, ma.IsCheck)
}

func TestEvaluateMoveBlunder(t *testing.T) {
	g := engine.NewGame()
	adv := &fakeAdvisor{
		best: "e2e4",
		evals: map[string]engine.Score{
			g.FEN():                   {CP: 20},
			evalAfter(t, g, "g2g4"):   {CP: -250},
		},
	}
	a := NewAnalyzer(adv, 8)

	ma, err := a.EvaluateMove(g, "g2g4")
	require.NoError(t, err)

	assert.False(t, ma.IsBest)
	assert.Equal(t, "e2e4", ma.BestMove)
	assert.Equal(t, Blunder, ma.Quality)
	assert.InDelta(t, 270, ma.CentipawnLoss, 0.01)

	// The game itself must be untouched.
	assert.Equal(t, 0, len(g.History()))
}

func TestEvaluateMoveBlackPerspective(t *testing.T) {
	g := engine.NewGame()
	_, err := g.MakeMove("e2e4")
	require.NoError(t, err)

	// White-perspective eval goes from +30 to +130: Black lost 100 cp.
	adv := &fakeAdvisor{
		best: "e7e5",
		evals: map[string]engine.Score{
			g.FEN():                   {CP: 30},
			evalAfter(t, g, "b8a6"):   {CP: 130},
		},
	}
	a := NewAnalyzer(adv, 8)

	ma, err := a.EvaluateMove(g, "b8a6")
	require.NoError(t, err)

	assert.Equal(t, Mistake, ma.Quality)
	assert.InDelta(t, 100, ma.CentipawnLoss, 0.01)
}

func TestEvaluateMoveCapture(t *testing.T) {
	g := engine.NewGame()
	for _, mv := range []string{"e2e4", "d7d5"} {
		_, err := g.MakeMove(mv)
		require.NoError(t, err)
	}
	adv := &fakeAdvisor{
		best: "e4d5",
		evals: map[string]engine.Score{
			g.FEN():                   {CP: 40},
			evalAfter(t, g, "e4d5"):   {CP: 50},
		},
	}
	a := NewAnalyzer(adv, 8)

	ma, err := a.EvaluateMove(g, "exd5")
	require.NoError(t, err)

	assert.True(t, ma.IsCapture)
	assert.Equal(t, 1, ma.MaterialChange)
	assert.True(t, ma.Traits.Attacking)
	assert.False(t, ma.Traits.Risky)
}

func TestEvaluateMoveIllegal(t *testing.T) {
	g := engine.NewGame()
	adv := &fakeAdvisor{best: "e2e4", evals: map[string]engine.Score{}}
	a := NewAnalyzer(adv, 8)

	_, err := a.EvaluateMove(g, "e2e5")
	require.Error(t, err)

	var illegal *engine.IllegalMoveError
	assert.ErrorAs(t, err, &illegal)
}
