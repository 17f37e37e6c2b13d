// Package coach turns move analysis into conversational feedback. The tone
// adapts to the player's inferred emotional state; the content is template
// based with a contextual reason spliced in.
package coach

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"chesscoach/pkg/analysis"
)

// MoveContext carries everything the coach needs to comment on one move.
type MoveContext struct {
	Move           string // SAN or UCI, used verbatim in output
	Quality        analysis.Quality
	Phase          analysis.Phase
	CentipawnLoss  float64
	MaterialChange int // mover's perspective, pawn units
	IsCapture      bool
	IsCheck        bool
	BestMove       string
}

// Coach generates natural-language feedback. Not safe for concurrent use.
type Coach struct {
	emotions *EmotionModel
	rng      *rand.Rand
}

// New returns a coach. A nil emotion model pins the supportive tone.
func New(emotions *EmotionModel) *Coach {
	return &Coach{
		emotions: emotions,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *Coach) personality() Personality {
	if c.emotions == nil {
		return Supportive
	}
	return c.emotions.Personality()
}

func (c *Coach) pick(options []string) string {
	return options[c.rng.Intn(len(options))]
}

// CommentOnMove generates feedback for a played move: a quality verdict,
// sometimes a phase note, and material commentary for big swings.
func (c *Coach) CommentOnMove(ctx MoveContext) string {
	parts := []string{c.qualityFeedback(ctx)}

	if ctx.Quality == analysis.Good || ctx.Quality == analysis.Excellent {
		if note := c.phaseNote(ctx.Phase); note != "" {
			parts = append(parts, note)
		}
	}

	if ctx.MaterialChange >= 3 {
		parts = append(parts, c.pick(gainedMaterial))
	} else if ctx.MaterialChange <= -3 {
		parts = append(parts, c.pick(lostMaterial))
	}

	return strings.Join(parts, " ")
}

func (c *Coach) qualityFeedback(ctx MoveContext) string {
	reason := c.reason(ctx)

	// Some qualities keep their own templates regardless of tone.
	switch ctx.Quality {
	case analysis.Excellent:
		return render(c.pick(excellentResponses), reason)
	case analysis.Inaccuracy:
		return render(c.pick(inaccuracyResponses), reason)
	case analysis.Book:
		return render(c.pick(bookResponses), reason)
	}

	set := personalityTemplates[c.personality()]
	bucket := "good"
	if ctx.Quality == analysis.Blunder || ctx.Quality == analysis.Mistake {
		bucket = "blunder"
	}
	return render(c.pick(set[bucket]), reason)
}

// reason builds the contextual explanation spliced into a template, with a
// leading space so an empty reason leaves the template clean.
func (c *Coach) reason(ctx MoveContext) string {
	switch ctx.Quality {
	case analysis.Blunder, analysis.Mistake:
		switch {
		case ctx.MaterialChange <= -9:
			return " You lost your queen!"
		case ctx.MaterialChange <= -5:
			return " You lost a rook!"
		case ctx.MaterialChange <= -3:
			return " You lost a piece!"
		case ctx.MaterialChange < 0:
			return " You lost material."
		case ctx.BestMove != "":
			return fmt.Sprintf(" %s was better.", ctx.BestMove)
		}
	case analysis.Good, analysis.Excellent:
		switch {
		case ctx.IsCheck:
			return " Creating threats!"
		case ctx.IsCapture && ctx.MaterialChange > 0:
			return " Nice capture!"
		case ctx.Phase == analysis.Opening:
			return " Developing nicely."
		}
	}
	return ""
}

// phaseNote returns a short aside about half the time, empty otherwise.
func (c *Coach) phaseNote(phase analysis.Phase) string {
	if c.rng.Float64() <= 0.5 {
		return ""
	}
	return c.pick(phaseNotes[phase])
}

// PhaseTip returns a tip appropriate for the given phase.
func (c *Coach) PhaseTip(phase analysis.Phase) string {
	tips, ok := phaseTips[phase]
	if !ok {
		tips = phaseTips[analysis.Middlegame]
	}
	return "Tip: " + c.pick(tips)
}

// CommentOnCheck returns a comment for the player giving check.
func (c *Coach) CommentOnCheck() string {
	return c.pick(checkComments)
}

// CommentOnCheckmate returns a comment for the end of a decisive game.
func (c *Coach) CommentOnCheckmate(playerWon bool) string {
	if playerWon {
		return c.pick(checkmateWin)
	}
	return c.pick(checkmateLoss)
}

// CommentOnDraw returns a comment for a drawn game.
func (c *Coach) CommentOnDraw(reason string) string {
	base := c.pick(drawComments)
	if reason != "" {
		return fmt.Sprintf("%s (%s)", base, reason)
	}
	return base
}

// ProfileTip returns a personalized tip, weaknesses first.
func (c *Coach) ProfileTip(strengths, weaknesses []string) string {
	if len(strengths) == 0 && len(weaknesses) == 0 {
		return c.Encourage()
	}

	if len(weaknesses) > 0 && c.rng.Float64() < 0.7 {
		weakness := weaknesses[c.rng.Intn(len(weaknesses))]
		switch {
		case strings.Contains(weakness, "Opening"):
			return "Coach Tip: " + c.pick(phaseTips[analysis.Opening])
		case strings.Contains(weakness, "Endgame"):
			return "Coach Tip: " + c.pick(phaseTips[analysis.Endgame])
		case strings.Contains(weakness, "Blunders"):
			return "Coach Tip: Take an extra moment to check for hanging pieces before every move."
		case strings.Contains(weakness, "Passive"):
			return "Coach Tip: Look for ways to improve your piece activity. Passive play leads to difficult positions."
		}
	}

	if len(strengths) > 0 {
		strength := strengths[c.rng.Intn(len(strengths))]
		switch {
		case strings.Contains(strength, "Endgame"):
			return "You're strong in the endgame - try to simplify the position!"
		case strings.Contains(strength, "Tactical"):
			return "Look for complex tactical lines - that's where you shine!"
		case strings.Contains(strength, "Opening"):
			return "Your openings are solid. Use that advantage to build a strong middlegame plan."
		}
	}
	return c.Encourage()
}

// GameSummary renders an end-of-game report. Result is "win", "loss" or
// "draw"; accuracy is a percentage.
func (c *Coach) GameSummary(result string, totalMoves, blunders, mistakes, excellent int, accuracy float64) string {
	rule := strings.Repeat("=", 40)
	lines := []string{rule, "GAME SUMMARY", rule}

	switch result {
	case "win":
		lines = append(lines, "Result: Victory!")
	case "loss":
		lines = append(lines, "Result: Defeat")
	default:
		lines = append(lines, "Result: Draw")
	}

	lines = append(lines,
		fmt.Sprintf("Accuracy: %.1f%%", accuracy),
		fmt.Sprintf("Total moves: %d", totalMoves),
		fmt.Sprintf("Excellent moves: %d", excellent),
	)
	if blunders > 0 {
		lines = append(lines, fmt.Sprintf("Blunders: %d", blunders))
	}
	if mistakes > 0 {
		lines = append(lines, fmt.Sprintf("Mistakes: %d", mistakes))
	}

	lines = append(lines, "")
	switch {
	case accuracy >= 90:
		lines = append(lines, "Outstanding performance! You played like a master.")
	case accuracy >= 75:
		lines = append(lines, "Good game! Keep practicing to reduce those small errors.")
	case accuracy >= 60:
		lines = append(lines, "Decent effort. Focus on calculating a bit deeper before each move.")
	default:
		lines = append(lines, "Keep at it! Review your blunders to learn from them.")
	}
	lines = append(lines, rule)

	return strings.Join(lines, "\n")
}

// Encourage returns a random encouragement.
func (c *Coach) Encourage() string {
	return c.pick(encouragements)
}

func render(template, reason string) string {
	return strings.Replace(template, "{reason}", reason, 1)
}
