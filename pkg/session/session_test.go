package session

import (
	"testing"

	"github.com/notnil/chess"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chesscoach/pkg/engine"
	"chesscoach/pkg/profile"
)

// stubAdvisor plays the first legal move and scores every position the same.
type stubAdvisor struct {
	score      engine.Score
	skillLevel int
	newGames   int
}

func (a *stubAdvisor) BestMove(pos *chess.Position, p engine.Params) (*chess.Move, error) {
	moves := pos.ValidMoves()
	if len(moves) == 0 {
		return nil, engine.ErrNoMove
	}
	return moves[0], nil
}

func (a *stubAdvisor) Evaluate(pos *chess.Position, depth int) (engine.Score, error) {
	return a.score, nil
}

func (a *stubAdvisor) SetSkillLevel(level int) error {
	a.skillLevel = level
	return nil
}

func (a *stubAdvisor) NewGame() error {
	a.newGames++
	return nil
}

func (a *stubAdvisor) Close() error { return nil }

func newSession(t *testing.T, cfg Config) *Session {
	t.Helper()
	if cfg.Advisor == nil {
		cfg.Advisor = &stubAdvisor{}
	}
	s, err := New(cfg)
	require.NoError(t, err)
	return s
}

func TestNewRequiresAdvisor(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestNewSetsSkillLevel(t *testing.T) {
	adv := &stubAdvisor{}
	newSession(t, Config{Advisor: adv, PlayerID: "ada"})
	assert.Equal(t, 10, adv.skillLevel)
}

func TestProcessPlayerMove(t *testing.T) {
	s := newSession(t, Config{PlayerID: "ada"})

	out, err := s.ProcessPlayerMove("e4")
	require.NoError(t, err)

	assert.Equal(t, "e2e4", out.MoveUCI)
	assert.Equal(t, "e4", out.SAN)
	assert.NotEmpty(t, out.Feedback)
	assert.False(t, out.GameOver)
	assert.Equal(t, []string{"e2e4"}, s.Game.History())
	assert.Equal(t, 1, s.Stats().MoveQuality.TotalMoves)
}

func TestProcessPlayerMoveIllegal(t *testing.T) {
	s := newSession(t, Config{PlayerID: "ada"})

	_, err := s.ProcessPlayerMove("e5")
	require.Error(t, err)

	var illegal *engine.IllegalMoveError
	assert.ErrorAs(t, err, &illegal)
	assert.Empty(t, s.Game.History())
	assert.Equal(t, 0, s.Stats().MoveQuality.TotalMoves)
}

func TestPlayEngineMove(t *testing.T) {
	s := newSession(t, Config{PlayerID: "ada"})

	_, err := s.ProcessPlayerMove("e4")
	require.NoError(t, err)

	out, err := s.PlayEngineMove()
	require.NoError(t, err)
	assert.NotEmpty(t, out.MoveUCI)
	assert.Len(t, s.Game.History(), 2)
	assert.Equal(t, chess.White, s.Game.Turn())
}

func TestCheckmateFinalizesGame(t *testing.T) {
	store, err := profile.OpenStore(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	s := newSession(t, Config{PlayerID: "ada", PlayerColor: chess.Black, Store: store})

	// White walks into the fool's mate; Black (the player) delivers it.
	_, err = s.Game.MakeMove("f2f3")
	require.NoError(t, err)
	_, err = s.ProcessPlayerMove("e7e5")
	require.NoError(t, err)
	_, err = s.Game.MakeMove("g2g4")
	require.NoError(t, err)

	out, err := s.ProcessPlayerMove("d8h4")
	require.NoError(t, err)

	assert.True(t, out.GameOver)
	assert.Equal(t, "win", out.Result)
	assert.Contains(t, out.Summary, "GAME SUMMARY")

	// Profile was updated and persisted.
	assert.Len(t, s.Profile().GameHistory, 1)
	assert.Greater(t, s.Profile().Rating, profile.BaseRating)

	loaded, err := store.LoadProfile("ada")
	require.NoError(t, err)
	assert.Len(t, loaded.GameHistory, 1)

	// Further moves are rejected.
	_, err = s.ProcessPlayerMove("a2a3")
	assert.ErrorIs(t, err, engine.ErrGameOver)
}

func TestResign(t *testing.T) {
	s := newSession(t, Config{PlayerID: "ada", PlayerColor: chess.White})
	summary := s.Resign()

	assert.True(t, s.Game.GameOver())
	assert.Contains(t, summary, "GAME SUMMARY")
	assert.Len(t, s.Profile().GameHistory, 1)
}

func TestUndoPlayerMove(t *testing.T) {
	s := newSession(t, Config{PlayerID: "ada"})
	_, err := s.ProcessPlayerMove("e4")
	require.NoError(t, err)
	_, err = s.PlayEngineMove()
	require.NoError(t, err)

	assert.Equal(t, 2, s.UndoPlayerMove())
	assert.Empty(t, s.Game.History())
	assert.Equal(t, 0, s.UndoPlayerMove())
}

func TestNewRound(t *testing.T) {
	adv := &stubAdvisor{}
	s := newSession(t, Config{Advisor: adv, PlayerID: "ada"})
	_, err := s.ProcessPlayerMove("e4")
	require.NoError(t, err)

	require.NoError(t, s.NewRound())
	assert.Empty(t, s.Game.History())
	assert.Equal(t, 0, s.Stats().MoveQuality.TotalMoves)
	// The engine gets told to drop its game state as well.
	assert.Equal(t, 1, adv.newGames)
}

func TestCoachTipAndStatus(t *testing.T) {
	s := newSession(t, Config{PlayerID: "ada"})

	tip := s.CoachTip()
	assert.NotEmpty(t, tip)

	status := s.Status()
	assert.Equal(t, "ada", status["player"])
	assert.Equal(t, "white", status["turn"])
	assert.Equal(t, false, status["game_over"])
}

func TestEvaluate(t *testing.T) {
	s := newSession(t, Config{PlayerID: "ada", Advisor: &stubAdvisor{score: engine.Score{CP: 42}}})

	score, err := s.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, 42, score.CP)
}

func TestClose(t *testing.T) {
	s := newSession(t, Config{PlayerID: "ada"})
	assert.NoError(t, s.Close())
}
