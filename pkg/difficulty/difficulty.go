// Package difficulty adjusts engine playing strength to the player. The
// controller is rule based: move quality nudges the level within a game,
// results move it between games, and every change is bounded and smoothed.
package difficulty

import (
	"math"
	"time"

	"chesscoach/pkg/analysis"
)

// Level bounds.
const (
	MinLevel     = 1
	MaxLevel     = 20
	DefaultLevel = 10
)

const (
	maxChangePerGame = 2.0
	maxChangePerMove = 0.5
	smoothingFactor  = 0.3
	recentWindow     = 10
)

// Trend is the direction difficulty is moving.
type Trend string

const (
	Increasing Trend = "increasing"
	Decreasing Trend = "decreasing"
	Stable     Trend = "stable"
)

// Params is the engine configuration for a difficulty level.
type Params struct {
	Depth      int           `json:"depth"`
	SkillLevel int           `json:"skill_level"` // Stockfish Skill Level, 0-20
	Randomness float64       `json:"randomness"`  // 0 plays best moves, 1 plays loosely
	MoveTime   time.Duration `json:"move_time,omitempty"`
}

// recentMoves is a sliding window of move qualities in the current game.
type recentMoves struct {
	moves []analysis.Quality
}

func (r *recentMoves) record(q analysis.Quality) {
	r.moves = append(r.moves, q)
	if len(r.moves) > recentWindow {
		r.moves = r.moves[1:]
	}
}

func (r *recentMoves) rate(q analysis.Quality) float64 {
	if len(r.moves) == 0 {
		return 0
	}
	n := 0
	for _, m := range r.moves {
		if m == q {
			n++
		}
	}
	return float64(n) / float64(len(r.moves))
}

func (r *recentMoves) accuracy() float64 {
	if len(r.moves) == 0 {
		return 0.5
	}
	n := 0
	for _, m := range r.moves {
		if m.IsAccurate() {
			n++
		}
	}
	return float64(n) / float64(len(r.moves))
}

func (r *recentMoves) clear() {
	r.moves = r.moves[:0]
}

// Controller tracks and adjusts the difficulty level. Levels are floats for
// smooth transitions; callers see rounded values. Not safe for concurrent use.
type Controller struct {
	level     float64
	gameStart float64 // level when the current game began
	minLevel  float64
	maxLevel  float64
	recent    recentMoves
	wins      int
	losses    int
	trend     Trend
}

// New returns a controller at the default level.
func New() *Controller {
	return newAt(DefaultLevel)
}

// NewAtLevel returns a controller pinned to an explicit starting level.
func NewAtLevel(level float64) *Controller {
	return newAt(level)
}

// NewFromRating seeds the starting level from an Elo-style rating.
// 400 maps to level 1, 1500 to about 10, 2500 and up to 20.
func NewFromRating(rating float64) *Controller {
	if rating <= 400 {
		return newAt(MinLevel)
	}
	return newAt((rating-400)/110 + 1)
}

// NewFromStats seeds the starting level from historical play: accuracy and
// win rate as percentages, avgLoss as average centipawn loss per move.
func NewFromStats(accuracy, winRate, avgLoss float64) *Controller {
	level := 5 + accuracy/100*10
	level += (winRate - 50) / 50 * 3

	switch {
	case avgLoss < 20:
		level += 2
	case avgLoss < 50:
		level++
	case avgLoss > 100:
		level -= 2
	case avgLoss > 70:
		level--
	}
	return newAt(level)
}

func newAt(level float64) *Controller {
	c := &Controller{
		minLevel: MinLevel,
		maxLevel: MaxLevel,
		trend:    Stable,
	}
	c.level = c.clamp(level)
	c.gameStart = c.level
	return c
}

func (c *Controller) clamp(level float64) float64 {
	return math.Max(c.minLevel, math.Min(c.maxLevel, level))
}

// Level returns the difficulty level rounded to an int.
func (c *Controller) Level() int {
	return int(math.Round(c.level))
}

// PreciseLevel returns the level with decimal precision.
func (c *Controller) PreciseLevel() float64 {
	return math.Round(c.level*100) / 100
}

// Trend returns the direction of the last within-game adjustment.
func (c *Controller) Trend() Trend {
	return c.trend
}

// RecordMove adjusts the level for one player move. Changes are smoothed
// and bounded relative to the level at game start.
func (c *Controller) RecordMove(quality analysis.Quality) {
	c.recent.record(quality)

	adj := c.moveAdjustment(quality)
	level := c.level + adj*smoothingFactor

	level = math.Max(c.gameStart-maxChangePerGame,
		math.Min(c.gameStart+maxChangePerGame, level))
	c.level = c.clamp(level)

	switch {
	case adj > 0.1:
		c.trend = Increasing
	case adj < -0.1:
		c.trend = Decreasing
	default:
		c.trend = Stable
	}
}

func (c *Controller) moveAdjustment(quality analysis.Quality) float64 {
	var base float64
	switch quality {
	case analysis.Blunder:
		base = -0.5
	case analysis.Mistake:
		base = -0.3
	case analysis.Inaccuracy:
		base = -0.1
	case analysis.Good:
		base = 0.1
	case analysis.Excellent:
		base = 0.3
	case analysis.Book:
		base = 0.2
	}

	// Amplify when a pattern has formed.
	if quality == analysis.Blunder && c.recent.rate(analysis.Blunder) > 0.3 {
		base -= 0.3
	} else if quality == analysis.Excellent && c.recent.rate(analysis.Excellent) > 0.3 {
		base += 0.3
	}

	return math.Max(-maxChangePerMove, math.Min(maxChangePerMove, base))
}

// RecordGameResult adjusts the level after a game ends and resets the
// per-game state. Result is "win", "loss" or "draw" from the player's side.
func (c *Controller) RecordGameResult(result string) {
	switch result {
	case "win":
		c.wins++
		c.losses = 0
	case "loss":
		c.losses++
		c.wins = 0
	default:
		c.wins = 0
		c.losses = 0
	}

	var adj float64
	switch result {
	case "win":
		adj = 1.0
		if c.wins >= 3 {
			adj += 0.5
		}
		if c.wins >= 5 {
			adj += 0.5
		}
	case "loss":
		adj = -1.0
		if c.losses >= 3 {
			adj -= 0.5
		}
		if c.losses >= 5 {
			adj -= 0.5
		}
	default:
		switch c.trend {
		case Increasing:
			adj = 0.3
		case Decreasing:
			adj = -0.3
		}
	}

	c.level = c.clamp(c.level + adj)
	c.gameStart = c.level
	c.recent.clear()
	c.trend = Stable
}

// EngineParams maps the current level onto engine search settings.
func (c *Controller) EngineParams() Params {
	level := c.level
	rounded := int(math.Round(level))

	depth := rounded
	if depth < 1 {
		depth = 1
	} else if depth > 20 {
		depth = 20
	}

	skill := rounded
	if skill < 0 {
		skill = 0
	} else if skill > 20 {
		skill = 20
	}

	// Lower levels play looser.
	var randomness float64
	switch {
	case level <= 5:
		randomness = 0.5 - (level-1)*0.05
	case level <= 10:
		randomness = 0.3 - (level-6)*0.04
	case level <= 15:
		randomness = 0.1 - (level-11)*0.01
	default:
		randomness = 0.05 - (level-16)*0.01
	}
	randomness = math.Max(0, math.Min(1, randomness))

	return Params{Depth: depth, SkillLevel: skill, Randomness: randomness}
}

// SetBounds restricts the allowed level range.
func (c *Controller) SetBounds(min, max int) {
	if min > max {
		min, max = max, min
	}
	c.minLevel = math.Max(MinLevel, float64(min))
	c.maxLevel = math.Min(MaxLevel, float64(max))
	c.level = c.clamp(c.level)
}

// SetLevel pins the level manually.
func (c *Controller) SetLevel(level float64) {
	c.level = c.clamp(level)
	c.gameStart = c.level
}

// Reset puts the controller back to its default state.
func (c *Controller) Reset() {
	c.level = DefaultLevel
	c.gameStart = c.level
	c.recent.clear()
	c.wins = 0
	c.losses = 0
	c.trend = Stable
}

// Status reports the controller state for display and debugging.
func (c *Controller) Status() map[string]any {
	return map[string]any{
		"level":              c.Level(),
		"precise_level":      c.PreciseLevel(),
		"trend":              string(c.trend),
		"consecutive_wins":   c.wins,
		"consecutive_losses": c.losses,
		"recent_accuracy":    math.Round(c.recent.accuracy()*1000) / 10,
		"bounds":             map[string]float64{"min": c.minLevel, "max": c.maxLevel},
	}
}
