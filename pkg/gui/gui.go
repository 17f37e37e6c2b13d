// Package gui is the full screen terminal front end: a tview layout
// with the board on the left, coach commentary on the right and a
// command line below.
package gui

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/notnil/chess"
	"github.com/rivo/tview"

	"chesscoach/pkg/engine"
	"chesscoach/pkg/session"
)

// App runs one coached game full screen.
type App struct {
	app   *tview.Application
	sess  *session.Session
	theme Theme
	flip  bool

	board  *tview.TextView
	coach  *tview.TextView
	status *tview.TextView
	input  *tview.InputField

	thinking bool
}

// NewApp assembles the widgets around a session.
func NewApp(sess *session.Session, theme Theme) *App {
	a := &App{
		app:   tview.NewApplication(),
		sess:  sess,
		theme: theme,
		flip:  sess.PlayerColor() == chess.Black,
	}

	a.board = tview.NewTextView().
		SetScrollable(false).
		SetTextAlign(tview.AlignLeft).
		SetWrap(false).
		SetWordWrap(false)
	a.board.SetDynamicColors(true)

	a.coach = tview.NewTextView().
		SetScrollable(true).
		SetTextAlign(tview.AlignLeft).
		SetWrap(true).
		SetWordWrap(true)
	a.coach.SetDynamicColors(true)
	a.coach.SetBorder(true).SetTitle(" Coach ")

	a.status = tview.NewTextView().
		SetScrollable(false).
		SetTextAlign(tview.AlignLeft).
		SetWrap(false)
	a.status.SetDynamicColors(true)

	a.input = tview.NewInputField().
		SetLabel("> ").
		SetFieldWidth(0).
		SetFieldBackgroundColor(tcell.ColorDefault).
		SetFieldTextColor(tcell.ColorWhite)
	a.input.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		line := strings.TrimSpace(a.input.GetText())
		a.input.SetText("")
		if line != "" {
			a.dispatch(line)
		}
	})

	grid := tview.NewGrid().
		SetBorders(false).
		SetRows(11, 3, -1).
		SetColumns(22, -1).
		AddItem(a.board, 0, 0, 1, 1, 0, 0, false).
		AddItem(a.coach, 0, 1, 2, 1, 0, 0, false).
		AddItem(a.status, 1, 0, 1, 1, 0, 0, false).
		AddItem(a.input, 2, 0, 1, 2, 0, 0, true)

	a.app.SetRoot(grid, true).SetFocus(a.input)
	return a
}

// Run starts the event loop. The engine opens when the player has the
// black pieces.
func (a *App) Run() error {
	a.say("Type a move (e2e4 or Nf3) or 'help' for commands.")
	if a.sess.PlayerColor() == chess.Black && !a.sess.Game.GameOver() {
		a.engineReplyAsync()
	} else {
		a.redraw()
	}
	return a.app.Run()
}

func (a *App) redraw() {
	a.board.SetText(BoardText(a.sess.Game, a.theme, a.flip))
	a.status.SetText(a.statusText())
}

func (a *App) statusText() string {
	st := a.sess.Status()
	turn := "your move"
	if a.thinking {
		turn = "thinking..."
	} else if fmt.Sprint(st["turn"]) != colorName(a.sess.PlayerColor()) {
		turn = "engine to move"
	}
	return fmt.Sprintf("[%s:-]%v (%v)\nlevel %v\n%s[-:-]",
		fmtHex(a.theme.Status.Hex()),
		st["player"], st["rating"],
		st["difficulty"].(map[string]any)["level"],
		turn)
}

func colorName(c chess.Color) string {
	if c == chess.Black {
		return "black"
	}
	return "white"
}

// say appends a line to the coach pane.
func (a *App) say(msg string) {
	fmt.Fprintf(a.coach, "[%s:-]%s[-:-]\n\n", fmtHex(a.theme.Coach.Hex()), tview.Escape(msg))
	a.coach.ScrollToEnd()
}

func (a *App) sayErr(msg string) {
	fmt.Fprintf(a.coach, "[%s:-]%s[-:-]\n\n", fmtHex(a.theme.Msg.Hex()), tview.Escape(msg))
	a.coach.ScrollToEnd()
}

func (a *App) dispatch(line string) {
	cmd := strings.ToLower(line)
	switch cmd {
	case "quit", "exit", "q":
		a.app.Stop()
		return
	case "help", "h", "?":
		a.say("Commands: [move] undo eval fen moves tip status flip new resign quit")
		return
	}

	// Everything below touches the session, which the engine-reply
	// goroutine may still be mutating.
	if a.thinking {
		a.sayErr("The engine is still thinking.")
		return
	}

	switch cmd {
	case "new":
		if err := a.sess.NewRound(); err != nil {
			a.sayErr(err.Error())
			return
		}
		a.say("New game. Good luck!")
		if a.sess.PlayerColor() == chess.Black {
			a.engineReplyAsync()
		} else {
			a.redraw()
		}
	case "undo":
		if undone := a.sess.UndoPlayerMove(); undone == 0 {
			a.sayErr("Nothing to undo.")
		} else {
			a.say(fmt.Sprintf("Took back %d plies.", undone))
		}
		a.redraw()
	case "eval":
		score, err := a.sess.Evaluate()
		if err != nil {
			a.sayErr(fmt.Sprintf("eval failed: %v", err))
			return
		}
		fmt.Fprintf(a.coach, "[%s:-]%s (%s)[-:-]\n\n",
			fmtHex(a.theme.Eval.Hex()), score.String(), score.Description())
		a.coach.ScrollToEnd()
	case "fen":
		a.say(a.sess.Game.FEN())
	case "moves":
		moves := a.sess.Game.LegalMoves()
		sort.Strings(moves)
		a.say(strings.Join(moves, " "))
	case "tip":
		if tip := a.sess.CoachTip(); tip != "" {
			a.say(tip)
		}
	case "status":
		st := a.sess.Status()
		a.say(fmt.Sprintf("difficulty %v, coach sees you as %v",
			st["difficulty"].(map[string]any)["level"],
			st["emotion"].(map[string]any)["state"]))
	case "flip":
		a.flip = !a.flip
		a.redraw()
	case "resign":
		a.say(a.sess.Resign())
		a.redraw()
	default:
		a.playerMove(line)
	}
}

func (a *App) playerMove(move string) {
	out, err := a.sess.ProcessPlayerMove(move)
	if err != nil {
		var illegal *engine.IllegalMoveError
		if errors.As(err, &illegal) {
			a.sayErr(fmt.Sprintf("Illegal move: %s", move))
			return
		}
		if errors.Is(err, engine.ErrGameOver) {
			a.sayErr("The game is over. Type 'new' to start another.")
			return
		}
		a.sayErr(err.Error())
		return
	}

	if out.Feedback != "" {
		a.say(out.Feedback)
	}
	a.redraw()

	if out.GameOver {
		a.say(out.Summary)
		return
	}
	a.engineReplyAsync()
}

// engineReplyAsync plays the engine's move off the UI goroutine so the
// screen stays responsive during search.
func (a *App) engineReplyAsync() {
	a.thinking = true
	a.redraw()
	go func() {
		out, err := a.sess.PlayEngineMove()
		a.app.QueueUpdateDraw(func() {
			a.thinking = false
			if err != nil {
				a.sayErr(err.Error())
				a.redraw()
				return
			}
			a.say(fmt.Sprintf("Engine plays %s", out.SAN))
			if out.GameOver {
				a.say(out.Comment)
			}
			a.redraw()
		})
	}()
}
