// Package session orchestrates a coached game: it routes player moves
// through analysis, stats, emotion inference, difficulty adjustment and
// coaching, and drives the engine's replies.
package session

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/notnil/chess"

	"chesscoach/pkg/analysis"
	"chesscoach/pkg/coach"
	"chesscoach/pkg/difficulty"
	"chesscoach/pkg/engine"
	"chesscoach/pkg/profile"
)

// Config assembles a session. Advisor is required; Store is optional and
// enables persistent profiles.
type Config struct {
	Advisor     engine.Advisor
	Store       *profile.Store
	PlayerID    string
	PlayerColor chess.Color
	Depth       int           // analysis depth, 0 for the default
	MoveTime    time.Duration // engine reply budget, 0 for 500ms
}

// MoveOutcome is the result of one processed player move.
type MoveOutcome struct {
	MoveUCI  string                `json:"move"`
	SAN      string                `json:"san"`
	Feedback string                `json:"feedback"`
	Analysis analysis.MoveAnalysis `json:"analysis"`
	GameOver bool                  `json:"game_over"`
	Result   string                `json:"result,omitempty"` // "win", "loss", "draw" from the player's side
	Summary  string                `json:"summary,omitempty"`
}

// EngineOutcome is the result of one engine reply.
type EngineOutcome struct {
	MoveUCI  string `json:"move"`
	SAN      string `json:"san"`
	GameOver bool   `json:"game_over"`
	Result   string `json:"result,omitempty"`
	Comment  string `json:"comment,omitempty"`
}

// Session supervises one player's coached game. Not safe for concurrent
// use; callers serialize access.
type Session struct {
	Game *engine.Game

	adv      engine.Advisor
	analyzer *analysis.Analyzer
	store    *profile.Store
	profile  *profile.PlayerProfile
	stats    *profile.PlayerStats
	diff     *difficulty.Controller
	emotions *coach.EmotionModel
	coach    *coach.Coach

	playerColor chess.Color
	moveTime    time.Duration
	lastMoveAt  time.Time
	finalized   bool
	rng         *rand.Rand
}

// New assembles a session. The player's stored profile seeds the starting
// difficulty; new players start at the default level.
func New(cfg Config) (*Session, error) {
	if cfg.Advisor == nil {
		return nil, fmt.Errorf("session: advisor is required")
	}
	if cfg.PlayerID == "" {
		cfg.PlayerID = "default"
	}
	if cfg.MoveTime <= 0 {
		cfg.MoveTime = 500 * time.Millisecond
	}

	var prof *profile.PlayerProfile
	if cfg.Store != nil {
		loaded, err := cfg.Store.LoadProfile(cfg.PlayerID)
		if err != nil {
			return nil, fmt.Errorf("load profile %s: %w", cfg.PlayerID, err)
		}
		prof = loaded
	} else {
		prof = profile.NewPlayerProfile(cfg.PlayerID)
	}

	var diff *difficulty.Controller
	if len(prof.GameHistory) > 0 {
		diff = difficulty.NewFromRating(prof.Rating)
	} else {
		diff = difficulty.New()
	}

	emotions := coach.NewEmotionModel()
	s := &Session{
		Game:        engine.NewGame(),
		adv:         cfg.Advisor,
		analyzer:    analysis.NewAnalyzer(cfg.Advisor, cfg.Depth),
		store:       cfg.Store,
		profile:     prof,
		stats:       profile.NewPlayerStats(cfg.PlayerID),
		diff:        diff,
		emotions:    emotions,
		coach:       coach.New(emotions),
		playerColor: cfg.PlayerColor,
		moveTime:    cfg.MoveTime,
		lastMoveAt:  time.Now(),
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.adv.SetSkillLevel(diff.EngineParams().SkillLevel); err != nil {
		return nil, fmt.Errorf("set skill level: %w", err)
	}
	return s, nil
}

// Profile returns the player profile backing this session.
func (s *Session) Profile() *profile.PlayerProfile {
	return s.profile
}

// Stats returns the current game's stats.
func (s *Session) Stats() *profile.PlayerStats {
	return s.stats
}

// Difficulty returns the difficulty controller.
func (s *Session) Difficulty() *difficulty.Controller {
	return s.diff
}

// PlayerColor returns the side the player is on.
func (s *Session) PlayerColor() chess.Color {
	return s.playerColor
}

// playerResult maps a finished game onto the player's perspective.
func (s *Session) playerResult(res engine.Result) string {
	if !res.Over {
		return ""
	}
	switch res.Winner {
	case "":
		return "draw"
	case colorName(s.playerColor):
		return "win"
	default:
		return "loss"
	}
}

func colorName(c chess.Color) string {
	if c == chess.Black {
		return "black"
	}
	return "white"
}

// ProcessPlayerMove runs one player move through the full pipeline:
// analysis, execution, stats, emotion, difficulty and coaching feedback.
func (s *Session) ProcessPlayerMove(move string) (MoveOutcome, error) {
	if s.Game.GameOver() {
		return MoveOutcome{}, engine.ErrGameOver
	}

	taken := time.Since(s.lastMoveAt)

	ma, err := s.analyzer.EvaluateMove(s.Game, move)
	if err != nil {
		return MoveOutcome{}, err
	}
	if _, err := s.Game.MakeMove(ma.Move); err != nil {
		return MoveOutcome{}, err
	}

	s.stats.RecordMove(ma.Quality, ma.CentipawnLoss, ma.Phase, ma.Traits)

	isBlunder := ma.Quality == analysis.Blunder
	isGood := ma.Quality == analysis.Good || ma.Quality == analysis.Excellent
	s.emotions.RecordMove(isBlunder, isGood, taken)

	s.diff.RecordMove(ma.Quality)

	feedback := s.coach.CommentOnMove(coach.MoveContext{
		Move:           ma.SAN,
		Quality:        ma.Quality,
		Phase:          ma.Phase,
		CentipawnLoss:  ma.CentipawnLoss,
		MaterialChange: ma.MaterialChange,
		IsCapture:      ma.IsCapture,
		IsCheck:        ma.IsCheck,
		BestMove:       ma.BestMove,
	})

	outcome := MoveOutcome{
		MoveUCI:  ma.Move,
		SAN:      ma.SAN,
		Feedback: feedback,
		Analysis: ma,
	}

	if res := s.Game.Result(); res.Over {
		outcome.GameOver = true
		outcome.Result = s.playerResult(res)
		outcome.Summary = s.finishGame(outcome.Result)
	}

	s.lastMoveAt = time.Now()
	return outcome, nil
}

// PlayEngineMove asks the engine for its reply at the current difficulty
// and plays it.
func (s *Session) PlayEngineMove() (EngineOutcome, error) {
	if s.Game.GameOver() {
		return EngineOutcome{}, engine.ErrGameOver
	}

	params := s.diff.EngineParams()
	if err := s.adv.SetSkillLevel(params.SkillLevel); err != nil {
		return EngineOutcome{}, fmt.Errorf("set skill level: %w", err)
	}

	best, err := s.adv.BestMove(s.Game.Position(), engine.Params{
		Depth:    params.Depth,
		MoveTime: s.moveTime,
	})
	if err != nil {
		return EngineOutcome{}, err
	}

	san := chess.AlgebraicNotation{}.Encode(s.Game.Position(), best)
	uci, err := s.Game.MakeEngineMove(best)
	if err != nil {
		return EngineOutcome{}, err
	}

	outcome := EngineOutcome{MoveUCI: uci, SAN: san}
	if res := s.Game.Result(); res.Over {
		outcome.GameOver = true
		outcome.Result = s.playerResult(res)
		outcome.Comment = s.finishGame(outcome.Result)
	}

	s.lastMoveAt = time.Now()
	return outcome, nil
}

// finishGame updates the persistent profile, the difficulty controller and
// the emotion model, and returns the coach's end-of-game summary.
func (s *Session) finishGame(result string) string {
	if s.finalized {
		return ""
	}
	s.finalized = true

	mq := s.stats.MoveQuality
	s.profile.UpdateAfterGame(profile.GameSession{
		Result:      result,
		Accuracy:    s.stats.Accuracy(),
		Difficulty:  s.diff.Level(),
		MovesPlayed: mq.TotalMoves,
		Blunders:    mq.Blunders,
		Mistakes:    mq.Mistakes,
	}, s.stats)

	if s.store != nil {
		if err := s.store.SaveProfile(s.profile); err != nil {
			// Persistence failures should not hide the game result.
			log.Printf("save profile: %v", err)
		}
	}

	s.emotions.RecordGameResult(result)
	s.diff.RecordGameResult(result)

	summary := s.coach.GameSummary(result, mq.TotalMoves, mq.Blunders, mq.Mistakes, mq.Excellent, s.stats.Accuracy())
	if result == "draw" {
		return s.coach.CommentOnDraw(s.Game.Result().Reason) + "\n\n" + summary
	}
	return s.coach.CommentOnCheckmate(result == "win") + "\n\n" + summary
}

// Evaluate returns the engine's verdict on the current position.
func (s *Session) Evaluate() (engine.Score, error) {
	s.emotions.RecordInteraction()
	return s.adv.Evaluate(s.Game.Position(), 0)
}

// CoachTip returns a standalone tip, mixing profile-based and
// phase-based advice.
func (s *Session) CoachTip() string {
	s.emotions.RecordInteraction()
	if s.Game.GameOver() {
		return ""
	}
	if s.rng.Float64() > 0.5 {
		return s.coach.ProfileTip(s.profile.Strengths, s.profile.Weaknesses)
	}
	return s.coach.PhaseTip(analysis.GamePhase(s.Game))
}

// UndoPlayerMove takes back the player's last move together with the
// engine's reply. It reports how many plies were undone.
func (s *Session) UndoPlayerMove() int {
	s.emotions.RecordInteraction()
	undone := 0
	for i := 0; i < 2; i++ {
		if _, ok := s.Game.Undo(); !ok {
			break
		}
		undone++
	}
	return undone
}

// NewRound starts a fresh game, keeping the profile and the adapted
// difficulty but resetting per-game state.
func (s *Session) NewRound() error {
	s.Game.Reset()
	s.stats = profile.NewPlayerStats(s.profile.PlayerID)
	s.finalized = false
	s.lastMoveAt = time.Now()
	// The engine clears its own game state too.
	if err := s.adv.NewGame(); err != nil {
		return err
	}
	return s.adv.SetSkillLevel(s.diff.EngineParams().SkillLevel)
}

// Resign ends the game as a loss for the player and returns the coach's
// closing summary.
func (s *Session) Resign() string {
	s.Game.Resign(s.playerColor)
	return s.finishGame("loss")
}

// Close shuts down the engine backing this session. Callers that share
// one engine across sessions close it themselves instead.
func (s *Session) Close() error {
	return s.adv.Close()
}

// Status reports the state of every subsystem.
func (s *Session) Status() map[string]any {
	return map[string]any{
		"player":     s.profile.PlayerID,
		"rating":     int(s.profile.Rating),
		"difficulty": s.diff.Status(),
		"emotion":    s.emotions.Status(),
		"fen":        s.Game.FEN(),
		"turn":       colorName(s.Game.Turn()),
		"game_over":  s.Game.GameOver(),
	}
}
