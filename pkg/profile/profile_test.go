package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chesscoach/pkg/analysis"
)

func TestMoveQualityStats(t *testing.T) {
	var s MoveQualityStats
	assert.Equal(t, 0.0, s.Accuracy())

	s.Record(analysis.Good)
	s.Record(analysis.Excellent)
	s.Record(analysis.Book)
	s.Record(analysis.Blunder)

	assert.Equal(t, 4, s.TotalMoves)
	assert.Equal(t, 75.0, s.Accuracy())
	assert.Equal(t, 25.0, s.ErrorRate())
}

func TestEvalLossIgnoresImprovements(t *testing.T) {
	var s EvalLossStats
	s.Record(40)
	s.Record(-20) // engine disagreed with itself, not a loss
	s.Record(60)

	assert.Equal(t, 3, s.MoveCount)
	assert.InDelta(t, 100.0/3, s.AverageLoss(), 0.01)
}

func TestStyleIndicatorsDefaults(t *testing.T) {
	var s StyleIndicators
	assert.Equal(t, 0.5, s.Aggression())
	assert.Equal(t, 0.5, s.RiskTolerance())
	assert.Equal(t, 0.5, s.PieceActivity())

	s.Record(analysis.Traits{Attacking: true, Active: true})
	s.Record(analysis.Traits{Risky: true})

	assert.Equal(t, 0.5, s.Aggression())
	assert.Equal(t, 0.5, s.RiskTolerance())
	assert.Equal(t, 0.5, s.PieceActivity())
	assert.Equal(t, 2, s.MovesEvaluated)
}

func TestPlayerStatsPhases(t *testing.T) {
	s := NewPlayerStats("ada")
	s.RecordMove(analysis.Excellent, 5, analysis.Opening, analysis.Traits{})
	s.RecordMove(analysis.Good, 20, analysis.Opening, analysis.Traits{})
	s.RecordMove(analysis.Blunder, 300, analysis.Endgame, analysis.Traits{})

	assert.Equal(t, 100.0, s.PhaseAccuracy(analysis.Opening))
	assert.Equal(t, 0.0, s.PhaseAccuracy(analysis.Endgame))
	assert.Equal(t, analysis.Opening, s.StrongestPhase())
	assert.Equal(t, analysis.Endgame, s.WeakestPhase())
}

func TestPlayerStatsMerge(t *testing.T) {
	agg := NewPlayerStats("ada")
	game := NewPlayerStats("ada")
	game.RecordMove(analysis.Good, 10, analysis.Middlegame, analysis.Traits{Attacking: true})
	game.RecordMove(analysis.Blunder, 250, analysis.Middlegame, analysis.Traits{Risky: true})
	game.RecordGameResult("win")

	agg.Merge(game)
	assert.Equal(t, 1, agg.GamesPlayed)
	assert.Equal(t, 1, agg.Wins)
	assert.Equal(t, 2, agg.MoveQuality.TotalMoves)
	assert.Equal(t, 2, agg.Phases[analysis.Middlegame].Moves)
	assert.Equal(t, 1, agg.Style.AttackingMoves)
	assert.Equal(t, 100.0, agg.WinRate())
}

func TestRatingMovesFastEarly(t *testing.T) {
	p := NewPlayerProfile("ada")
	assert.Equal(t, BaseRating, p.Rating)

	// Strong result against a level 12 engine.
	p.UpdateAfterGame(GameSession{Result: "win", Accuracy: 80, Difficulty: 12, MovesPlayed: 40}, nil)

	// perf = 1200 + 200 + 120 = 1520; early weight 0.5 from 1000.
	assert.InDelta(t, 1260, p.Rating, 0.5)
	assert.Len(t, p.RatingHistory, 2)
}

func TestRatingFloor(t *testing.T) {
	p := NewPlayerProfile("ada")
	for i := 0; i < 10; i++ {
		p.UpdateAfterGame(GameSession{Result: "loss", Accuracy: 0, Difficulty: 1}, nil)
	}
	assert.GreaterOrEqual(t, p.Rating, ratingFloor)
}

func TestAnalyzePatterns(t *testing.T) {
	p := NewPlayerProfile("ada")
	game := NewPlayerStats("ada")

	// Strong opening, terrible endgame, plenty of blunders.
	for i := 0; i < 10; i++ {
		game.RecordMove(analysis.Excellent, 5, analysis.Opening, analysis.Traits{Attacking: true, Risky: true})
	}
	for i := 0; i < 10; i++ {
		game.RecordMove(analysis.Blunder, 300, analysis.Endgame, analysis.Traits{Risky: true})
	}
	game.RecordGameResult("loss")

	p.UpdateAfterGame(GameSession{Result: "loss", Accuracy: 50, Difficulty: 10}, game)

	assert.Contains(t, p.Strengths, "Opening Specialist")
	assert.Contains(t, p.Weaknesses, "Poor Endgame")
	assert.Contains(t, p.Weaknesses, "Prone to Blunders")
	assert.Contains(t, p.StyleTags, "Gambler")
}

func TestStoreRoundTrip(t *testing.T) {
	store, err := OpenStore(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	p := NewPlayerProfile("ada")
	p.UpdateAfterGame(GameSession{Result: "win", Accuracy: 85, Difficulty: 10}, nil)
	require.NoError(t, store.SaveProfile(p))

	loaded, err := store.LoadProfile("ada")
	require.NoError(t, err)
	assert.Equal(t, p.PlayerID, loaded.PlayerID)
	assert.InDelta(t, p.Rating, loaded.Rating, 0.01)
	assert.Len(t, loaded.GameHistory, 1)

	// Unknown players get a fresh profile.
	fresh, err := store.LoadProfile("nobody")
	require.NoError(t, err)
	assert.Equal(t, BaseRating, fresh.Rating)

	ids, err := store.Players()
	require.NoError(t, err)
	assert.Equal(t, []string{"ada"}, ids)
}

func TestStoreStats(t *testing.T) {
	store, err := OpenStore(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	s := NewPlayerStats("ada")
	s.RecordMove(analysis.Good, 15, analysis.Opening, analysis.Traits{})
	s.RecordGameResult("draw")
	require.NoError(t, store.SaveStats(s))

	loaded, err := store.LoadStats("ada")
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.GamesPlayed)
	assert.Equal(t, 1, loaded.Draws)
	assert.Equal(t, 100.0, loaded.Accuracy())
	assert.Equal(t, 1, loaded.Phases[analysis.Opening].Moves)
}
