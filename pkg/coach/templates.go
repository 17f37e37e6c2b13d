package coach

import "chesscoach/pkg/analysis"

// Feedback templates. A {reason} placeholder marks where the contextual
// explanation is spliced in.

var inaccuracyResponses = []string{
	"Slight inaccuracy.{reason}",
	"There was a stronger move available.{reason}",
	"A minor slip.{reason}",
	"Not quite optimal.{reason}",
	"Close, but not the best.{reason}",
}

var goodResponses = []string{
	"Good move!{reason}",
	"Solid choice.{reason}",
	"Well played.{reason}",
	"That's a nice move.{reason}",
	"Good thinking!{reason}",
}

var excellentResponses = []string{
	"Excellent move!{reason}",
	"Brilliant! That's the top choice.{reason}",
	"Perfect! That's what the engine recommends.{reason}",
	"Outstanding play!{reason}",
	"You found the best move!{reason}",
}

var bookResponses = []string{
	"Standard opening theory.{reason}",
	"A well-known book move.{reason}",
	"Following established opening principles.{reason}",
	"Textbook play.{reason}",
}

// personalityTemplates buckets feedback into "blunder" (blunders and
// mistakes) and "good" per coaching tone. Excellent moves use their own
// templates no matter the tone.
var personalityTemplates = map[Personality]map[string][]string{
	Supportive: {
		"blunder": {
			"Oops, that's a blunder!{reason}",
			"That was a mistake, but we can recover.{reason}",
			"Be careful! That move loses material.{reason}",
		},
		"good": goodResponses,
	},
	Empathetic: {
		"blunder": {
			"That's tough. Take a deep breath.{reason}",
			"It happens to everyone. Let's focus on the next move.{reason}",
			"Don't worry about that mistake. Reset and focus.{reason}",
		},
		"good": {
			"Nice recovery!{reason}",
			"Great, you're back on track.{reason}",
			"Steady play. That helps stabilize things.{reason}",
		},
	},
	Enthusiastic: {
		"blunder": {
			"Whoops! Even champions miss those.{reason}",
			"A rare slip up! You'll get it back.{reason}",
			"Ah! A missed opportunity. Keep the energy up!{reason}",
		},
		"good": {
			"Yes! Crushing it!{reason}",
			"You are on fire!{reason}",
			"Brilliant! Keep attacking!{reason}",
		},
	},
	Engaging: {
		"blunder": {
			"Wait, look closely... see why that's a blunder?{reason}",
			"Hold on, what did we miss there?{reason}",
			"Let's pause. Can you spot the tactical error?{reason}",
		},
		"good": {
			"There we go! You're focused now.{reason}",
			"Nice one. What's your plan after this?{reason}",
			"Good. Now, how do we follow up?{reason}",
		},
	},
}

var phaseTips = map[analysis.Phase][]string{
	analysis.Opening: {
		"Control the center with pawns and pieces.",
		"Develop your knights before bishops.",
		"Castle early to protect your king.",
		"Don't move the same piece twice in the opening.",
		"Connect your rooks by developing all minor pieces.",
		"Don't bring your queen out too early.",
		"Fight for central squares: e4, d4, e5, d5.",
		"Develop with a purpose. Each move should improve your position.",
	},
	analysis.Middlegame: {
		"Look for tactical opportunities: forks, pins, skewers.",
		"Keep your pieces active and coordinated.",
		"Create pressure on your opponent's weaknesses.",
		"Think about pawn structure. It defines the position.",
		"Consider piece exchanges carefully.",
		"Control open files with your rooks.",
		"Knights love outposts, squares where pawns can't attack them.",
		"Look for checks, captures, and threats before each move.",
	},
	analysis.Endgame: {
		"Activate your king! It's a fighting piece in the endgame.",
		"Passed pawns must be pushed.",
		"Rooks belong behind passed pawns.",
		"In king and pawn endgames, opposition is key.",
		"Centralize your king in the endgame.",
		"The side with more active pieces usually wins.",
		"Don't rush. Calculate carefully in the endgame.",
		"Cut off the enemy king from your passed pawns.",
	},
}

// phaseNotes are short asides appended after good moves.
var phaseNotes = map[analysis.Phase][]string{
	analysis.Opening: {
		"Keep developing!",
		"Good opening play.",
		"Fight for the center.",
	},
	analysis.Middlegame: {
		"Look for tactics!",
		"Keep the pressure on.",
		"Stay alert for combinations.",
	},
	analysis.Endgame: {
		"Technique is key now.",
		"Activate your king!",
		"Push those pawns.",
	},
}

var gainedMaterial = []string{
	"Nice! You won material.",
	"Good capture, you're up in material now.",
	"You picked up some material there.",
}

var lostMaterial = []string{
	"You lost material on that exchange.",
	"That cost you some material.",
	"Be careful, you're down material now.",
}

var checkComments = []string{
	"Check!",
	"You're putting pressure on the king.",
	"Nice check!",
}

var checkmateWin = []string{
	"Checkmate! Well played!",
	"That's checkmate! Great game!",
	"You got them! Checkmate!",
}

var checkmateLoss = []string{
	"Checkmate. Better luck next time!",
	"You got checkmated. Let's review what went wrong.",
	"That's checkmate against you. Keep practicing!",
}

var drawComments = []string{
	"The game is a draw. A hard-fought battle!",
	"It's a draw. Neither side could break through.",
	"Draw! Sometimes that's the right result.",
}

var encouragements = []string{
	"You've got this!",
	"Keep thinking ahead.",
	"Stay focused!",
	"Trust your instincts.",
	"Every move is a chance to learn.",
	"Chess is a journey. Enjoy the game!",
}
