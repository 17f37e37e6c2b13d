// Package cli is the interactive terminal front end: a plain
// read-eval-print loop around a coached session, with a colored text
// board for terminals where the full screen UI is overkill.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/notnil/chess"

	"chesscoach/pkg/engine"
	"chesscoach/pkg/session"
)

const legalMoveSamples = 5

var (
	coachText = color.New(color.FgHiGreen)
	errText   = color.New(color.FgHiRed)
	infoText  = color.New(color.FgHiBlue)
	moveText  = color.New(color.FgHiYellow)
)

// REPL drives one coached game over a line-based terminal.
type REPL struct {
	sess *session.Session
	in   *bufio.Scanner
	out  io.Writer
	flip bool
}

// NewREPL wires a session to an input and output stream. The board is
// flipped when the player has the black pieces.
func NewREPL(sess *session.Session, in io.Reader, out io.Writer) *REPL {
	return &REPL{
		sess: sess,
		in:   bufio.NewScanner(in),
		out:  out,
		flip: sess.PlayerColor() == chess.Black,
	}
}

func (r *REPL) printf(format string, a ...any) {
	fmt.Fprintf(r.out, format, a...)
}

func (r *REPL) banner() {
	r.printf("%s\n", infoText.Sprint("Chess Coach"))
	r.printf("Playing as %s against the adaptive engine.\n", colorLabel(r.sess.PlayerColor()))
	r.printf("Type a move in UCI (e2e4) or SAN (Nf3), or 'help' for commands.\n")
}

func (r *REPL) help() {
	r.printf("Commands:\n")
	r.printf("  [move]   play a move (e2e4 or Nf3)\n")
	r.printf("  undo     take back your last move and the reply\n")
	r.printf("  eval     show the engine's evaluation\n")
	r.printf("  fen      print the position as FEN\n")
	r.printf("  moves    list the legal moves\n")
	r.printf("  tip      ask the coach for advice\n")
	r.printf("  status   show difficulty, rating and coach state\n")
	r.printf("  flip     flip the board\n")
	r.printf("  new      start a fresh game\n")
	r.printf("  resign   give up the game\n")
	r.printf("  quit     leave\n")
}

func colorLabel(c chess.Color) string {
	if c == chess.Black {
		return "Black"
	}
	return "White"
}

func (r *REPL) prompt() string {
	return fmt.Sprintf("Move %d (%s) > ", r.sess.Game.FullMoves(), colorLabel(r.sess.Game.Turn()))
}

// Run loops until the player quits or input is exhausted.
func (r *REPL) Run() error {
	r.banner()

	// The engine opens when the player has black.
	if r.sess.PlayerColor() == chess.Black {
		if err := r.engineReply(); err != nil {
			return err
		}
	}

	for {
		r.printf("%s", RenderBoard(r.sess.Game, r.flip))
		r.printf("%s", r.prompt())
		if !r.in.Scan() {
			r.printf("\n")
			return r.in.Err()
		}
		line := strings.TrimSpace(r.in.Text())
		if line == "" {
			continue
		}

		switch strings.ToLower(line) {
		case "quit", "exit", "q":
			mq := r.sess.Stats().MoveQuality
			if mq.TotalMoves > 0 {
				r.printf("You played %d %s at %.1f%% accuracy this game.\n", mq.TotalMoves, plies(mq.TotalMoves), r.sess.Stats().Accuracy())
			}
			r.printf("Thanks for playing.\n")
			return nil
		case "help", "h", "?":
			r.help()
		case "new":
			if err := r.newGame(); err != nil {
				return err
			}
		case "undo":
			r.undo()
		case "eval":
			r.eval()
		case "fen":
			r.printf("%s\n", r.sess.Game.FEN())
		case "moves":
			r.listMoves()
		case "tip":
			if tip := r.sess.CoachTip(); tip != "" {
				r.printf("%s\n", coachText.Sprint(tip))
			}
		case "status":
			r.status()
		case "flip":
			r.flip = !r.flip
			r.printf("Board flipped.\n")
		case "resign":
			r.printf("%s\n", coachText.Sprint(r.sess.Resign()))
			if done, err := r.playAgain(); done || err != nil {
				return err
			}
		default:
			over, err := r.playerMove(line)
			if err != nil {
				return err
			}
			if over {
				if done, err := r.playAgain(); done || err != nil {
					return err
				}
			}
		}
	}
}

// playerMove plays one move and the engine's reply. It reports whether
// the game ended.
func (r *REPL) playerMove(move string) (bool, error) {
	out, err := r.sess.ProcessPlayerMove(move)
	if err != nil {
		var illegal *engine.IllegalMoveError
		if errors.As(err, &illegal) {
			r.printf("%s\n", errText.Sprintf("Illegal move: %s", move))
			r.printMoveSamples()
			return false, nil
		}
		if errors.Is(err, engine.ErrGameOver) {
			r.printf("The game is over. Type 'new' to start another.\n")
			return false, nil
		}
		return false, err
	}

	r.printf("You played %s\n", moveText.Sprint(out.SAN))
	if out.Feedback != "" {
		r.printf("%s\n", coachText.Sprint(out.Feedback))
	}
	if out.GameOver {
		r.printf("%s", RenderBoard(r.sess.Game, r.flip))
		r.printf("%s\n", coachText.Sprint(out.Summary))
		return true, nil
	}
	return r.engineReplyOver()
}

func (r *REPL) engineReplyOver() (bool, error) {
	out, err := r.sess.PlayEngineMove()
	if err != nil {
		return false, err
	}
	r.printf("Engine plays %s\n", moveText.Sprint(out.SAN))
	if out.GameOver {
		r.printf("%s", RenderBoard(r.sess.Game, r.flip))
		r.printf("%s\n", coachText.Sprint(out.Comment))
		return true, nil
	}
	return false, nil
}

func (r *REPL) engineReply() error {
	_, err := r.engineReplyOver()
	return err
}

func (r *REPL) newGame() error {
	if err := r.sess.NewRound(); err != nil {
		return err
	}
	r.printf("New game. Good luck!\n")
	if r.sess.PlayerColor() == chess.Black {
		return r.engineReply()
	}
	return nil
}

// playAgain asks whether to start over after a finished game. It
// reports true when the player is done.
func (r *REPL) playAgain() (bool, error) {
	r.printf("Play again? (y/n) ")
	if !r.in.Scan() {
		return true, r.in.Err()
	}
	answer := strings.ToLower(strings.TrimSpace(r.in.Text()))
	if answer != "y" && answer != "yes" {
		r.printf("Thanks for playing.\n")
		return true, nil
	}
	return false, r.newGame()
}

func (r *REPL) undo() {
	undone := r.sess.UndoPlayerMove()
	if undone == 0 {
		r.printf("Nothing to undo.\n")
		return
	}
	r.printf("Undid %d %s.\n", undone, plies(undone))
}

func plies(n int) string {
	if n == 1 {
		return "move"
	}
	return "moves"
}

func (r *REPL) eval() {
	score, err := r.sess.Evaluate()
	if err != nil {
		r.printf("%s\n", errText.Sprintf("eval failed: %v", err))
		return
	}
	r.printf("Evaluation: %s (%s)\n", infoText.Sprint(score.String()), score.Description())
}

func (r *REPL) listMoves() {
	moves := r.sess.Game.LegalMoves()
	sort.Strings(moves)
	r.printf("Legal moves (%d): %s\n", len(moves), strings.Join(moves, " "))
}

func (r *REPL) printMoveSamples() {
	moves := r.sess.Game.LegalMoves()
	sort.Strings(moves)
	if len(moves) > legalMoveSamples {
		moves = moves[:legalMoveSamples]
	}
	r.printf("Try one of: %s ... (type 'moves' for all)\n", strings.Join(moves, " "))
}

func (r *REPL) status() {
	st := r.sess.Status()
	r.printf("Player: %v (rating %v)\n", st["player"], st["rating"])
	diff := st["difficulty"].(map[string]any)
	r.printf("Difficulty: level %v, trend %v\n", diff["level"], diff["trend"])
	emo := st["emotion"].(map[string]any)
	r.printf("Coach reads you as %v and responds in a %v tone.\n", emo["state"], emo["personality"])
}
