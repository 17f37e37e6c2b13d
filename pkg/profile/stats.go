// Package profile tracks player skill across games: per-move quality
// counters, phase breakdowns, style indicators and a long-term rating.
// Profiles persist as JSON values in a Badger store.
package profile

import (
	"time"

	"chesscoach/pkg/analysis"
)

// MoveQualityStats counts moves per quality bucket.
type MoveQualityStats struct {
	TotalMoves   int `json:"total_moves"`
	Blunders     int `json:"blunders"`
	Mistakes     int `json:"mistakes"`
	Inaccuracies int `json:"inaccuracies"`
	GoodMoves    int `json:"good_moves"`
	Excellent    int `json:"excellent_moves"`
	BookMoves    int `json:"book_moves"`
}

// Record counts one move.
func (s *MoveQualityStats) Record(q analysis.Quality) {
	s.TotalMoves++
	switch q {
	case analysis.Blunder:
		s.Blunders++
	case analysis.Mistake:
		s.Mistakes++
	case analysis.Inaccuracy:
		s.Inaccuracies++
	case analysis.Good:
		s.GoodMoves++
	case analysis.Excellent:
		s.Excellent++
	case analysis.Book:
		s.BookMoves++
	}
}

// Accuracy is the percentage of good, excellent and book moves.
func (s *MoveQualityStats) Accuracy() float64 {
	if s.TotalMoves == 0 {
		return 0
	}
	return float64(s.GoodMoves+s.Excellent+s.BookMoves) / float64(s.TotalMoves) * 100
}

// ErrorRate is the percentage of blunders, mistakes and inaccuracies.
func (s *MoveQualityStats) ErrorRate() float64 {
	if s.TotalMoves == 0 {
		return 0
	}
	return float64(s.Blunders+s.Mistakes+s.Inaccuracies) / float64(s.TotalMoves) * 100
}

// EvalLossStats accumulates centipawn loss per move.
type EvalLossStats struct {
	TotalLoss float64 `json:"total_centipawn_loss"`
	MoveCount int     `json:"move_count"`
}

// Record adds one move's loss. Negative losses (improvements) count the
// move but not the loss.
func (s *EvalLossStats) Record(cpLoss float64) {
	if cpLoss > 0 {
		s.TotalLoss += cpLoss
	}
	s.MoveCount++
}

// AverageLoss is the mean centipawn loss per move.
func (s *EvalLossStats) AverageLoss() float64 {
	if s.MoveCount == 0 {
		return 0
	}
	return s.TotalLoss / float64(s.MoveCount)
}

// PhaseStats tracks move quality within one game phase.
type PhaseStats struct {
	Moves        int     `json:"moves"`
	TotalLoss    float64 `json:"total_centipawn_loss"`
	Blunders     int     `json:"blunders"`
	Mistakes     int     `json:"mistakes"`
	Inaccuracies int     `json:"inaccuracies"`
	GoodMoves    int     `json:"good_moves"`
	Excellent    int     `json:"excellent_moves"`
}

// Record counts one move in this phase.
func (s *PhaseStats) Record(q analysis.Quality, cpLoss float64) {
	s.Moves++
	if cpLoss > 0 {
		s.TotalLoss += cpLoss
	}
	switch q {
	case analysis.Blunder:
		s.Blunders++
	case analysis.Mistake:
		s.Mistakes++
	case analysis.Inaccuracy:
		s.Inaccuracies++
	case analysis.Good:
		s.GoodMoves++
	case analysis.Excellent:
		s.Excellent++
	}
}

// Accuracy is the percentage of good and excellent moves in this phase.
func (s *PhaseStats) Accuracy() float64 {
	if s.Moves == 0 {
		return 0
	}
	return float64(s.GoodMoves+s.Excellent) / float64(s.Moves) * 100
}

// AverageLoss is the mean centipawn loss per move in this phase.
func (s *PhaseStats) AverageLoss() float64 {
	if s.Moves == 0 {
		return 0
	}
	return s.TotalLoss / float64(s.Moves)
}

// StyleIndicators derives play-style scores from move patterns. Scores
// range 0 to 1 and default to 0.5 with no data.
type StyleIndicators struct {
	AttackingMoves int `json:"attacking_moves"`
	MovesEvaluated int `json:"moves_evaluated"`
	RiskyMoves     int `json:"risky_moves"`
	SafeMoves      int `json:"safe_moves"`
	ActiveMoves    int `json:"active_moves"`
	PassiveMoves   int `json:"passive_moves"`
}

// Record counts one move's style signals.
func (s *StyleIndicators) Record(t analysis.Traits) {
	s.MovesEvaluated++
	if t.Attacking {
		s.AttackingMoves++
	}
	if t.Risky {
		s.RiskyMoves++
	} else {
		s.SafeMoves++
	}
	if t.Active {
		s.ActiveMoves++
	} else {
		s.PassiveMoves++
	}
}

// Aggression is the share of attacking moves.
func (s *StyleIndicators) Aggression() float64 {
	if s.MovesEvaluated == 0 {
		return 0.5
	}
	return float64(s.AttackingMoves) / float64(s.MovesEvaluated)
}

// RiskTolerance is the share of risky moves.
func (s *StyleIndicators) RiskTolerance() float64 {
	total := s.RiskyMoves + s.SafeMoves
	if total == 0 {
		return 0.5
	}
	return float64(s.RiskyMoves) / float64(total)
}

// PieceActivity is the share of active piece moves.
func (s *StyleIndicators) PieceActivity() float64 {
	total := s.ActiveMoves + s.PassiveMoves
	if total == 0 {
		return 0.5
	}
	return float64(s.ActiveMoves) / float64(total)
}

// PlayerStats aggregates per-move statistics for one player.
type PlayerStats struct {
	PlayerID    string `json:"player_id"`
	GamesPlayed int    `json:"games_played"`
	Wins        int    `json:"wins"`
	Losses      int    `json:"losses"`
	Draws       int    `json:"draws"`

	MoveQuality MoveQualityStats               `json:"move_quality"`
	EvalLoss    EvalLossStats                  `json:"eval_loss"`
	Phases      map[analysis.Phase]*PhaseStats `json:"phase_stats"`
	Style       StyleIndicators                `json:"style"`

	CreatedAt   time.Time `json:"created_at"`
	LastUpdated time.Time `json:"last_updated"`
}

// NewPlayerStats returns empty stats for a player.
func NewPlayerStats(playerID string) *PlayerStats {
	now := time.Now()
	return &PlayerStats{
		PlayerID: playerID,
		Phases: map[analysis.Phase]*PhaseStats{
			analysis.Opening:    {},
			analysis.Middlegame: {},
			analysis.Endgame:    {},
		},
		CreatedAt:   now,
		LastUpdated: now,
	}
}

func (s *PlayerStats) phase(p analysis.Phase) *PhaseStats {
	if s.Phases == nil {
		s.Phases = map[analysis.Phase]*PhaseStats{}
	}
	ps, ok := s.Phases[p]
	if !ok {
		ps = &PhaseStats{}
		s.Phases[p] = ps
	}
	return ps
}

// RecordMove folds one analyzed move into the stats.
func (s *PlayerStats) RecordMove(q analysis.Quality, cpLoss float64, phase analysis.Phase, traits analysis.Traits) {
	s.MoveQuality.Record(q)
	s.EvalLoss.Record(cpLoss)
	s.phase(phase).Record(q, cpLoss)
	s.Style.Record(traits)
	s.LastUpdated = time.Now()
}

// RecordGameResult counts a finished game. Result is "win", "loss" or "draw".
func (s *PlayerStats) RecordGameResult(result string) {
	s.GamesPlayed++
	switch result {
	case "win":
		s.Wins++
	case "loss":
		s.Losses++
	case "draw":
		s.Draws++
	}
	s.LastUpdated = time.Now()
}

// Accuracy is the overall move accuracy percentage.
func (s *PlayerStats) Accuracy() float64 {
	return s.MoveQuality.Accuracy()
}

// PhaseAccuracy is the accuracy within one phase.
func (s *PlayerStats) PhaseAccuracy(p analysis.Phase) float64 {
	if ps, ok := s.Phases[p]; ok {
		return ps.Accuracy()
	}
	return 0
}

// WinRate is the percentage of games won.
func (s *PlayerStats) WinRate() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.GamesPlayed) * 100
}

// StrongestPhase is the phase with the highest accuracy among phases with
// at least one move.
func (s *PlayerStats) StrongestPhase() analysis.Phase {
	best, bestAcc := analysis.Opening, 0.0
	for _, p := range []analysis.Phase{analysis.Opening, analysis.Middlegame, analysis.Endgame} {
		ps, ok := s.Phases[p]
		if ok && ps.Moves > 0 && ps.Accuracy() > bestAcc {
			best, bestAcc = p, ps.Accuracy()
		}
	}
	return best
}

// WeakestPhase is the phase with the lowest accuracy among phases with at
// least one move.
func (s *PlayerStats) WeakestPhase() analysis.Phase {
	worst, worstAcc := analysis.Opening, 100.0
	for _, p := range []analysis.Phase{analysis.Opening, analysis.Middlegame, analysis.Endgame} {
		ps, ok := s.Phases[p]
		if ok && ps.Moves > 0 && ps.Accuracy() < worstAcc {
			worst, worstAcc = p, ps.Accuracy()
		}
	}
	return worst
}

// Merge folds a single game's stats into this aggregate.
func (s *PlayerStats) Merge(game *PlayerStats) {
	s.GamesPlayed++
	if game.Wins > 0 {
		s.Wins++
	}
	if game.Losses > 0 {
		s.Losses++
	}
	if game.Draws > 0 {
		s.Draws++
	}

	mq, gmq := &s.MoveQuality, &game.MoveQuality
	mq.TotalMoves += gmq.TotalMoves
	mq.Blunders += gmq.Blunders
	mq.Mistakes += gmq.Mistakes
	mq.Inaccuracies += gmq.Inaccuracies
	mq.GoodMoves += gmq.GoodMoves
	mq.Excellent += gmq.Excellent
	mq.BookMoves += gmq.BookMoves

	s.EvalLoss.TotalLoss += game.EvalLoss.TotalLoss
	s.EvalLoss.MoveCount += game.EvalLoss.MoveCount

	for phase, gp := range game.Phases {
		p := s.phase(phase)
		p.Moves += gp.Moves
		p.TotalLoss += gp.TotalLoss
		p.Blunders += gp.Blunders
		p.Mistakes += gp.Mistakes
		p.Inaccuracies += gp.Inaccuracies
		p.GoodMoves += gp.GoodMoves
		p.Excellent += gp.Excellent
	}

	st, gst := &s.Style, &game.Style
	st.MovesEvaluated += gst.MovesEvaluated
	st.AttackingMoves += gst.AttackingMoves
	st.RiskyMoves += gst.RiskyMoves
	st.SafeMoves += gst.SafeMoves
	st.ActiveMoves += gst.ActiveMoves
	st.PassiveMoves += gst.PassiveMoves

	s.LastUpdated = time.Now()
}

// Summary flattens the stats for display and API responses.
func (s *PlayerStats) Summary() map[string]any {
	return map[string]any{
		"player_id":         s.PlayerID,
		"games_played":      s.GamesPlayed,
		"win_rate":          round1(s.WinRate()),
		"overall_accuracy":  round1(s.Accuracy()),
		"average_eval_loss": round1(s.EvalLoss.AverageLoss()),
		"strongest_phase":   string(s.StrongestPhase()),
		"weakest_phase":     string(s.WeakestPhase()),
		"style": map[string]float64{
			"aggression":     s.Style.Aggression(),
			"risk_tolerance": s.Style.RiskTolerance(),
			"piece_activity": s.Style.PieceActivity(),
		},
	}
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
