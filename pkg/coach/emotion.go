package coach

import "time"

// EmotionState is the inferred emotional state of the player.
type EmotionState string

const (
	Calm       EmotionState = "calm"
	Frustrated EmotionState = "frustrated" // tilt: rapid blunders
	Confident  EmotionState = "confident"  // flow: streaks of wins or fast good moves
	Disengaged EmotionState = "disengaged" // long silences
)

// Personality selects the coaching tone for a state.
type Personality string

const (
	Supportive   Personality = "supportive"   // calm
	Empathetic   Personality = "empathetic"   // frustrated
	Enthusiastic Personality = "enthusiastic" // confident
	Engaging     Personality = "engaging"     // disengaged
)

// Timing thresholds for emotion inference.
const (
	FastMove     = 2 * time.Second
	FastGoodMove = 10 * time.Second
	VerySlowMove = 120 * time.Second
)

const (
	tiltFastBlunders = 2
	tiltBlunders     = 3
	flowWins         = 2
	flowGoodMoves    = 3
)

// EmotionModel infers the player's state from move timing, blunders and
// streaks. Rule based, no learning. Not safe for concurrent use.
type EmotionModel struct {
	state           EmotionState
	lastInteraction time.Time

	recentBlunders int
	recentWins     int
	fastBlunders   int
	fastGoodMoves  int

	now func() time.Time
}

// NewEmotionModel returns a model starting in the calm state.
func NewEmotionModel() *EmotionModel {
	return &EmotionModel{state: Calm, lastInteraction: time.Now(), now: time.Now}
}

// State returns the current inferred state.
func (m *EmotionModel) State() EmotionState {
	return m.state
}

// Personality maps the current state to a coaching tone.
func (m *EmotionModel) Personality() Personality {
	switch m.state {
	case Frustrated:
		return Empathetic
	case Confident:
		return Enthusiastic
	case Disengaged:
		return Engaging
	default:
		return Supportive
	}
}

// RecordMove feeds one played move into the model.
func (m *EmotionModel) RecordMove(isBlunder, isGood bool, taken time.Duration) {
	m.lastInteraction = m.now()

	if isBlunder {
		m.recentBlunders++
		if taken < FastMove {
			m.fastBlunders++
		} else {
			m.fastBlunders = 0
		}
	} else {
		m.recentBlunders = 0
		m.fastBlunders = 0
	}

	if isGood && taken < FastGoodMove {
		m.fastGoodMoves++
	} else if !isGood {
		m.fastGoodMoves = 0
	}

	m.update(taken)
}

// RecordGameResult feeds a finished game into the model. Result is "win",
// "loss" or "draw".
func (m *EmotionModel) RecordGameResult(result string) {
	m.lastInteraction = m.now()
	if result == "win" {
		m.recentWins++
	} else {
		m.recentWins = 0
	}
	m.update(0)
}

// RecordInteraction notes generic activity (commands, queries). Activity
// wakes the model from disengagement.
func (m *EmotionModel) RecordInteraction() {
	m.lastInteraction = m.now()
	if m.state == Disengaged {
		m.state = Calm
	}
}

// CheckEngagement flips to disengaged after a long silence.
func (m *EmotionModel) CheckEngagement() {
	if m.now().Sub(m.lastInteraction) > VerySlowMove {
		m.state = Disengaged
	}
}

func (m *EmotionModel) update(lastMove time.Duration) {
	switch {
	case lastMove > VerySlowMove:
		m.state = Disengaged
	case m.fastBlunders >= tiltFastBlunders || m.recentBlunders >= tiltBlunders:
		m.state = Frustrated
	case m.recentWins >= flowWins || m.fastGoodMoves >= flowGoodMoves:
		m.state = Confident
	case m.state == Frustrated:
		// Recover once the blundering stops or the player slows down.
		if m.recentBlunders == 0 || lastMove > 5*time.Second {
			m.state = Calm
		}
	case m.state == Confident:
		if m.recentBlunders > 0 {
			m.state = Calm
		}
	case m.state == Disengaged:
		m.state = Calm
	}
}

// Status reports the model internals for debugging surfaces.
func (m *EmotionModel) Status() map[string]any {
	return map[string]any{
		"state":         string(m.state),
		"personality":   string(m.Personality()),
		"blunders":      m.recentBlunders,
		"fast_blunders": m.fastBlunders,
		"wins":          m.recentWins,
	}
}
