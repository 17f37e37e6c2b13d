package coach

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"chesscoach/pkg/analysis"
)

func testCoach(emotions *EmotionModel) *Coach {
	c := New(emotions)
	c.rng = rand.New(rand.NewSource(42))
	return c
}

func TestCommentOnBlunderMentionsLoss(t *testing.T) {
	c := testCoach(nil)

	tests := []struct {
		change int
		want   string
	}{
		{-9, "You lost your queen!"},
		{-5, "You lost a rook!"},
		{-3, "You lost a piece!"},
		{-1, "You lost material."},
	}
	for _, tt := range tests {
		got := c.CommentOnMove(MoveContext{
			Move:           "d8h4",
			Quality:        analysis.Blunder,
			Phase:          analysis.Middlegame,
			MaterialChange: tt.change,
		})
		assert.Contains(t, got, tt.want, "change=%d", tt.change)
	}
}

func TestCommentOnMistakeSuggestsBestMove(t *testing.T) {
	c := testCoach(nil)

	got := c.CommentOnMove(MoveContext{
		Move:     "a2a3",
		Quality:  analysis.Mistake,
		Phase:    analysis.Opening,
		BestMove: "e2e4",
	})
	assert.Contains(t, got, "e2e4 was better.")
}

func TestCommentOnGoodMoveReasons(t *testing.T) {
	c := testCoach(nil)

	got := c.CommentOnMove(MoveContext{
		Quality: analysis.Good,
		Phase:   analysis.Middlegame,
		IsCheck: true,
	})
	assert.Contains(t, got, "Creating threats!")

	got = c.CommentOnMove(MoveContext{
		Quality:        analysis.Good,
		Phase:          analysis.Middlegame,
		IsCapture:      true,
		MaterialChange: 1,
	})
	assert.Contains(t, got, "Nice capture!")

	got = c.CommentOnMove(MoveContext{
		Quality: analysis.Excellent,
		Phase:   analysis.Opening,
	})
	assert.Contains(t, got, "Developing nicely.")
}

func TestExcellentMovePraiseEveryTone(t *testing.T) {
	for state, tone := range map[EmotionState]Personality{
		Calm: Supportive, Frustrated: Empathetic,
		Confident: Enthusiastic, Disengaged: Engaging,
	} {
		em := NewEmotionModel()
		em.state = state
		c := testCoach(em)

		for i := 0; i < 20; i++ {
			got := c.qualityFeedback(MoveContext{Quality: analysis.Excellent, Phase: analysis.Middlegame})
			matched := false
			for _, tpl := range excellentResponses {
				if got == render(tpl, "") {
					matched = true
				}
			}
			assert.True(t, matched, "tone %v: %q not an excellent-move template", tone, got)
		}
	}
}

func TestCommentMaterialSwing(t *testing.T) {
	c := testCoach(nil)

	got := c.CommentOnMove(MoveContext{
		Quality:        analysis.Blunder,
		Phase:          analysis.Middlegame,
		MaterialChange: -5,
	})
	// Quality reason plus the material aside.
	assert.Contains(t, got, "You lost a rook!")
	lower := strings.ToLower(got)
	assert.True(t,
		strings.Contains(lower, "exchange") ||
			strings.Contains(lower, "cost you") ||
			strings.Contains(lower, "down material"),
		"missing material aside: %q", got)
}

func TestNoPlaceholderLeaks(t *testing.T) {
	c := testCoach(NewEmotionModel())

	qualities := []analysis.Quality{
		analysis.Blunder, analysis.Mistake, analysis.Inaccuracy,
		analysis.Good, analysis.Excellent, analysis.Book,
	}
	for i := 0; i < 50; i++ {
		for _, q := range qualities {
			got := c.CommentOnMove(MoveContext{Quality: q, Phase: analysis.Middlegame})
			assert.NotContains(t, got, "{reason}")
			assert.NotEmpty(t, got)
		}
	}
}

func TestToneFollowsEmotionModel(t *testing.T) {
	em := NewEmotionModel()
	em.state = Frustrated
	c := testCoach(em)

	found := false
	for i := 0; i < 20; i++ {
		got := c.CommentOnMove(MoveContext{Quality: analysis.Blunder, Phase: analysis.Middlegame})
		for _, tpl := range personalityTemplates[Empathetic]["blunder"] {
			if strings.Contains(got, strings.Replace(tpl, "{reason}", "", 1)) {
				found = true
			}
		}
	}
	assert.True(t, found, "empathetic templates never used")
}

func TestPhaseTip(t *testing.T) {
	c := testCoach(nil)
	for _, phase := range []analysis.Phase{analysis.Opening, analysis.Middlegame, analysis.Endgame} {
		tip := c.PhaseTip(phase)
		assert.True(t, strings.HasPrefix(tip, "Tip: "), tip)
	}
}

func TestProfileTipWeaknessFirst(t *testing.T) {
	c := testCoach(nil)

	// With only a blunder weakness, the tip addresses it or encourages.
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		seen[c.ProfileTip(nil, []string{"Blunders under pressure"})] = true
	}
	hasBlunderTip := false
	for tip := range seen {
		if strings.Contains(tip, "hanging pieces") {
			hasBlunderTip = true
		}
	}
	assert.True(t, hasBlunderTip)
}

func TestGameSummary(t *testing.T) {
	c := testCoach(nil)

	got := c.GameSummary("win", 34, 1, 2, 5, 82.5)
	assert.Contains(t, got, "Result: Victory!")
	assert.Contains(t, got, "Accuracy: 82.5%")
	assert.Contains(t, got, "Blunders: 1")
	assert.Contains(t, got, "Mistakes: 2")
	assert.Contains(t, got, "Good game!")

	clean := c.GameSummary("draw", 60, 0, 0, 10, 95.0)
	assert.Contains(t, clean, "Result: Draw")
	assert.NotContains(t, clean, "Blunders:")
	assert.Contains(t, clean, "Outstanding performance!")
}

func TestEmotionTilt(t *testing.T) {
	m := NewEmotionModel()
	assert.Equal(t, Calm, m.State())
	assert.Equal(t, Supportive, m.Personality())

	// Two fast blunders in a row is tilt.
	m.RecordMove(true, false, 1500*time.Millisecond)
	assert.Equal(t, Calm, m.State())
	m.RecordMove(true, false, time.Second)
	assert.Equal(t, Frustrated, m.State())
	assert.Equal(t, Empathetic, m.Personality())

	// A good move clears the streak.
	m.RecordMove(false, true, 8*time.Second)
	assert.Equal(t, Calm, m.State())
}

func TestEmotionSlowBlundersTilt(t *testing.T) {
	m := NewEmotionModel()
	for i := 0; i < 3; i++ {
		m.RecordMove(true, false, 20*time.Second)
	}
	assert.Equal(t, Frustrated, m.State())
}

func TestEmotionFlow(t *testing.T) {
	m := NewEmotionModel()
	for i := 0; i < 3; i++ {
		m.RecordMove(false, true, 3*time.Second)
	}
	assert.Equal(t, Confident, m.State())
	assert.Equal(t, Enthusiastic, m.Personality())

	m.RecordMove(true, false, 20*time.Second)
	assert.Equal(t, Calm, m.State())
}

func TestEmotionWinStreak(t *testing.T) {
	m := NewEmotionModel()
	m.RecordGameResult("win")
	assert.Equal(t, Calm, m.State())
	m.RecordGameResult("win")
	assert.Equal(t, Confident, m.State())
	m.RecordGameResult("loss")
	assert.Equal(t, Calm, m.State())
}

func TestEmotionDisengaged(t *testing.T) {
	m := NewEmotionModel()
	m.RecordMove(false, false, 150*time.Second)
	assert.Equal(t, Disengaged, m.State())
	assert.Equal(t, Engaging, m.Personality())

	m.RecordInteraction()
	assert.Equal(t, Calm, m.State())
}
