package profile

import (
	"math"
	"time"

	"chesscoach/pkg/analysis"
)

// BaseRating is the starting Elo-like rating for new players.
const BaseRating = 1000.0

// ratingWeight is the EMA weight of the latest game; earlyWeight applies
// while the profile has few games so the rating settles quickly.
const (
	ratingWeight = 0.15
	earlyWeight  = 0.5
	earlyGames   = 5
	ratingFloor  = 100.0
)

// GameSession summarizes one finished game.
type GameSession struct {
	Date        time.Time `json:"date"`
	Result      string    `json:"result"`
	Accuracy    float64   `json:"accuracy"`
	Difficulty  int       `json:"difficulty_level"`
	MovesPlayed int       `json:"moves_played"`
	Blunders    int       `json:"blunders"`
	Mistakes    int       `json:"mistakes"`
}

// PlayerProfile is the long-term view of a player: rating, aggregate
// stats, recurring strengths and weaknesses, and style tags.
type PlayerProfile struct {
	PlayerID      string        `json:"player_id"`
	Rating        float64       `json:"rating"`
	RatingHistory []float64     `json:"rating_history"`
	Stats         *PlayerStats  `json:"stats"`
	GameHistory   []GameSession `json:"game_history"`

	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
	StyleTags  []string `json:"style_tags"`

	CreatedAt   time.Time `json:"created_at"`
	LastUpdated time.Time `json:"last_updated"`
}

// NewPlayerProfile returns a fresh profile at the base rating.
func NewPlayerProfile(playerID string) *PlayerProfile {
	now := time.Now()
	return &PlayerProfile{
		PlayerID:      playerID,
		Rating:        BaseRating,
		RatingHistory: []float64{BaseRating},
		Stats:         NewPlayerStats(playerID),
		CreatedAt:     now,
		LastUpdated:   now,
	}
}

// UpdateAfterGame folds one finished game into the profile: session
// history, rating, aggregate stats and tag analysis.
func (p *PlayerProfile) UpdateAfterGame(session GameSession, gameStats *PlayerStats) {
	if session.Date.IsZero() {
		session.Date = time.Now()
	}
	p.GameHistory = append(p.GameHistory, session)

	p.updateRating(session.Result, session.Difficulty, session.Accuracy)

	if gameStats != nil {
		if p.Stats == nil {
			p.Stats = NewPlayerStats(p.PlayerID)
		}
		p.Stats.Merge(gameStats)
	}

	p.analyzePatterns()
	p.LastUpdated = time.Now()
}

// updateRating moves the rating toward a per-game performance estimate:
// difficulty*100, plus or minus 200 for the result, plus 4 points per
// accuracy percent above 50.
func (p *PlayerProfile) updateRating(result string, difficulty int, accuracy float64) {
	perf := float64(difficulty) * 100
	switch result {
	case "win":
		perf += 200
	case "loss":
		perf -= 200
	}
	perf += (accuracy - 50) * 4

	weight := ratingWeight
	if len(p.GameHistory) <= earlyGames {
		weight = earlyWeight
	}

	p.Rating = p.Rating*(1-weight) + perf*weight
	p.Rating = math.Max(ratingFloor, p.Rating)
	p.RatingHistory = append(p.RatingHistory, math.Round(p.Rating*10)/10)
}

// analyzePatterns rebuilds the strength, weakness and style tags from the
// aggregate stats.
func (p *PlayerProfile) analyzePatterns() {
	p.Strengths = p.Strengths[:0]
	p.Weaknesses = p.Weaknesses[:0]
	p.StyleTags = p.StyleTags[:0]
	if p.Stats == nil {
		return
	}

	overall := p.Stats.Accuracy()
	openingAcc := p.Stats.PhaseAccuracy(analysis.Opening)
	endAcc := p.Stats.PhaseAccuracy(analysis.Endgame)

	if openingAcc > overall+5 {
		p.Strengths = append(p.Strengths, "Opening Specialist")
	} else if openingAcc < overall-10 {
		p.Weaknesses = append(p.Weaknesses, "Weak Openings")
	}

	if endAcc > overall+8 {
		p.Strengths = append(p.Strengths, "Endgame Expert")
	} else if endAcc < overall-10 {
		p.Weaknesses = append(p.Weaknesses, "Poor Endgame")
	}

	errorRate := p.Stats.MoveQuality.ErrorRate()
	if errorRate < 5 && p.Stats.GamesPlayed > 2 {
		p.Strengths = append(p.Strengths, "Solid Player")
	} else if errorRate > 20 {
		p.Weaknesses = append(p.Weaknesses, "Prone to Blunders")
	}

	switch aggression := p.Stats.Style.Aggression(); {
	case aggression > 0.6:
		p.StyleTags = append(p.StyleTags, "Aggressive")
	case aggression < 0.3:
		p.StyleTags = append(p.StyleTags, "Passive")
	}

	switch risk := p.Stats.Style.RiskTolerance(); {
	case risk > 0.6:
		p.StyleTags = append(p.StyleTags, "Gambler")
	case risk < 0.3:
		p.StyleTags = append(p.StyleTags, "Conservative")
	}
}

// Summary flattens the profile for display and API responses.
func (p *PlayerProfile) Summary() map[string]any {
	winRate := 0.0
	if p.Stats != nil {
		winRate = round1(p.Stats.WinRate())
	}
	return map[string]any{
		"player_id":    p.PlayerID,
		"rating":       int(p.Rating),
		"games_played": len(p.GameHistory),
		"strengths":    append([]string{}, p.Strengths...),
		"weaknesses":   append([]string{}, p.Weaknesses...),
		"style":        append([]string{}, p.StyleTags...),
		"win_rate":     winRate,
	}
}
