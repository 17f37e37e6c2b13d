// Package engine wraps an external UCI chess engine. Board state and rules
// come from notnil/chess, protocol transport from notnil/chess/uci; the
// wrapper adds binary discovery, score normalization and game bookkeeping.
package engine

import (
	"fmt"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/notnil/chess"
	"github.com/notnil/chess/uci"
)

const (
	// DefaultDepth is the search depth used when none is requested.
	DefaultDepth = 10
	// MaxDepth bounds requested search depths.
	MaxDepth = 30
)

// defaultPaths are common Stockfish install locations, checked in order
// before falling back to $PATH lookup.
var defaultPaths = []string{
	"/usr/local/bin/stockfish",
	"/usr/bin/stockfish",
	"/usr/games/stockfish",
	"/opt/homebrew/bin/stockfish",
	"./stockfish",
}

// Params controls a single engine search.
type Params struct {
	Depth    int
	MoveTime time.Duration // when set, takes precedence over Depth
}

// Advisor is the engine surface the rest of the program depends on.
// *Engine implements it; tests substitute fakes.
type Advisor interface {
	BestMove(pos *chess.Position, p Params) (*chess.Move, error)
	Evaluate(pos *chess.Position, depth int) (Score, error)
	SetSkillLevel(level int) error
	NewGame() error
	Close() error
}

// Engine drives a running UCI engine process.
type Engine struct {
	mu     sync.Mutex
	path   string
	eng    *uci.Engine
	closed bool
}

var _ Advisor = (*Engine)(nil)

// FindBinary resolves the engine binary. An explicit path must exist;
// otherwise the common install locations and $PATH are searched.
func FindBinary(path string) (string, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		return "", fmt.Errorf("%w at %s", ErrEngineNotFound, path)
	}
	for _, p := range defaultPaths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	if p, err := exec.LookPath("stockfish"); err == nil {
		return p, nil
	}
	return "", fmt.Errorf("%w: install Stockfish or pass -engine", ErrEngineNotFound)
}

// New starts the engine process and performs the UCI handshake. An empty
// path triggers auto-discovery.
func New(path string) (*Engine, error) {
	bin, err := FindBinary(path)
	if err != nil {
		return nil, err
	}
	eng, err := uci.New(bin)
	if err != nil {
		return nil, fmt.Errorf("start engine %s: %w", bin, err)
	}
	if err := eng.Run(uci.CmdUCI, uci.CmdIsReady, uci.CmdUCINewGame); err != nil {
		eng.Close()
		return nil, fmt.Errorf("uci handshake with %s: %w", bin, err)
	}
	return &Engine{path: bin, eng: eng}, nil
}

// Path returns the resolved engine binary path.
func (e *Engine) Path() string {
	return e.path
}

// NewGame tells the engine a fresh game is starting.
func (e *Engine) NewGame() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.eng.Run(uci.CmdUCINewGame, uci.CmdIsReady)
}

// SetSkillLevel forwards Stockfish's Skill Level option (0-20).
func (e *Engine) SetSkillLevel(level int) error {
	if level < 0 {
		level = 0
	} else if level > 20 {
		level = 20
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.eng.Run(uci.CmdSetOption{Name: "Skill Level", Value: fmt.Sprint(level)})
}

// SetOption forwards an arbitrary UCI option.
func (e *Engine) SetOption(name, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.eng.Run(uci.CmdSetOption{Name: name, Value: value})
}

func clampDepth(depth int) int {
	if depth < 1 {
		return DefaultDepth
	}
	if depth > MaxDepth {
		return MaxDepth
	}
	return depth
}

func goCmd(p Params) uci.CmdGo {
	if p.MoveTime > 0 {
		return uci.CmdGo{MoveTime: p.MoveTime}
	}
	return uci.CmdGo{Depth: clampDepth(p.Depth)}
}

// BestMove asks the engine for the best move in the given position.
func (e *Engine) BestMove(pos *chess.Position, p Params) (*chess.Move, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.eng.Run(uci.CmdPosition{Position: pos}, goCmd(p)); err != nil {
		return nil, fmt.Errorf("engine search: %w", err)
	}
	best := e.eng.SearchResults().BestMove
	if best == nil {
		return nil, ErrNoMove
	}
	return best, nil
}

// Evaluate searches the position to the given depth and returns the score
// normalized to White's perspective.
func (e *Engine) Evaluate(pos *chess.Position, depth int) (Score, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.eng.Run(uci.CmdPosition{Position: pos}, uci.CmdGo{Depth: clampDepth(depth)}); err != nil {
		return Score{}, fmt.Errorf("engine evaluation: %w", err)
	}
	info := e.eng.SearchResults().Info
	score := Score{CP: info.Score.CP, Mate: info.Score.Mate}
	// UCI scores are from the side to move.
	if pos.Turn() == chess.Black {
		score = score.Negate()
	}
	return score, nil
}

// Close shuts the engine process down. Safe to call more than once.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	return e.eng.Close()
}
