// Package api exposes coached games over HTTP. Each player gets one
// live session, keyed by player id; profiles persist across sessions.
package api

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/notnil/chess"

	"chesscoach/pkg/engine"
	"chesscoach/pkg/profile"
	"chesscoach/pkg/session"
)

// Server routes API requests onto per-player sessions. Each session gets
// its own engine from the factory: Stockfish's Skill Level is global
// engine state, so players cannot share a process.
type Server struct {
	newAdvisor func() (engine.Advisor, error)
	store      *profile.Store
	depth      int
	moveTime   time.Duration

	mu       sync.Mutex
	sessions map[string]*playerSession
}

// playerSession serializes access to one session.
type playerSession struct {
	mu sync.Mutex
	s  *session.Session
}

// NewServer returns an API server. newAdvisor spawns one engine per
// session. The store may be nil; profiles are then in-memory only.
func NewServer(newAdvisor func() (engine.Advisor, error), store *profile.Store, depth int, moveTime time.Duration) *Server {
	return &Server{
		newAdvisor: newAdvisor,
		store:      store,
		depth:      depth,
		moveTime:   moveTime,
		sessions:   make(map[string]*playerSession),
	}
}

// Register mounts the API under /api.
func (srv *Server) Register(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.POST("/game/new", srv.newGame)
		api.POST("/game/move", srv.makeMove)
		api.POST("/game/undo", srv.undoMove)
		api.POST("/game/resign", srv.resign)
		api.GET("/game/eval", srv.evaluate)
		api.GET("/game/moves", srv.legalMoves)
		api.GET("/game/fen", srv.fen)
		api.GET("/game/status", srv.status)
		api.GET("/coach/tip", srv.coachTip)
		api.GET("/profile/:id", srv.profileSummary)
	}
}

func (srv *Server) get(player string) *playerSession {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	return srv.sessions[player]
}

func playerParam(c *gin.Context) string {
	player := c.Query("player")
	if player == "" {
		player = "default"
	}
	return player
}

// lookup fetches an existing session or answers 400.
func (srv *Server) lookup(c *gin.Context, player string) *playerSession {
	ps := srv.get(player)
	if ps == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no active game, POST /api/game/new first"})
		return nil
	}
	return ps
}

func (srv *Server) newGame(c *gin.Context) {
	var req struct {
		Player string `json:"player"`
		Color  string `json:"color"`
	}
	// An empty body is fine, everything defaults.
	_ = c.ShouldBindJSON(&req)
	if req.Player == "" {
		req.Player = "default"
	}
	color := chess.White
	if req.Color == "black" {
		color = chess.Black
	}

	adv, err := srv.newAdvisor()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s, err := session.New(session.Config{
		Advisor:     adv,
		Store:       srv.store,
		PlayerID:    req.Player,
		PlayerColor: color,
		Depth:       srv.depth,
		MoveTime:    srv.moveTime,
	})
	if err != nil {
		adv.Close()
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	srv.mu.Lock()
	old := srv.sessions[req.Player]
	srv.sessions[req.Player] = &playerSession{s: s}
	srv.mu.Unlock()

	// A replaced session's engine process goes away with it.
	if old != nil {
		old.mu.Lock()
		old.s.Close()
		old.mu.Unlock()
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "new game started",
		"player":  req.Player,
		"color":   req.Color,
		"fen":     s.Game.FEN(),
		"rating":  int(s.Profile().Rating),
	})
}

func (srv *Server) makeMove(c *gin.Context) {
	var req struct {
		Player string `json:"player"`
		Move   string `json:"move"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Move == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "move is required"})
		return
	}
	if req.Player == "" {
		req.Player = "default"
	}

	ps := srv.lookup(c, req.Player)
	if ps == nil {
		return
	}
	ps.mu.Lock()
	defer ps.mu.Unlock()

	out, err := ps.s.ProcessPlayerMove(req.Move)
	if err != nil {
		var illegal *engine.IllegalMoveError
		switch {
		case errors.As(err, &illegal):
			c.JSON(http.StatusBadRequest, gin.H{"error": illegal.Error(), "legal_moves": illegal.Legal})
		case errors.Is(err, engine.ErrGameOver):
			c.JSON(http.StatusBadRequest, gin.H{"error": "game is over"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	resp := gin.H{
		"player_move": out,
		"fen":         ps.s.Game.FEN(),
	}
	if !out.GameOver {
		reply, err := ps.s.PlayEngineMove()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		resp["engine_move"] = reply
		resp["fen"] = ps.s.Game.FEN()
	}
	c.JSON(http.StatusOK, resp)
}

func (srv *Server) undoMove(c *gin.Context) {
	var req struct {
		Player string `json:"player"`
	}
	_ = c.ShouldBindJSON(&req)
	if req.Player == "" {
		req.Player = "default"
	}

	ps := srv.lookup(c, req.Player)
	if ps == nil {
		return
	}
	ps.mu.Lock()
	defer ps.mu.Unlock()

	undone := ps.s.UndoPlayerMove()
	if undone == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to undo"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"undone_plies": undone, "fen": ps.s.Game.FEN()})
}

func (srv *Server) resign(c *gin.Context) {
	var req struct {
		Player string `json:"player"`
	}
	_ = c.ShouldBindJSON(&req)
	if req.Player == "" {
		req.Player = "default"
	}

	ps := srv.lookup(c, req.Player)
	if ps == nil {
		return
	}
	ps.mu.Lock()
	defer ps.mu.Unlock()

	summary := ps.s.Resign()
	c.JSON(http.StatusOK, gin.H{"result": "loss", "summary": summary})
}

func (srv *Server) evaluate(c *gin.Context) {
	ps := srv.lookup(c, playerParam(c))
	if ps == nil {
		return
	}
	ps.mu.Lock()
	defer ps.mu.Unlock()

	score, err := ps.s.Evaluate()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"score":       score,
		"display":     score.String(),
		"description": score.Description(),
	})
}

func (srv *Server) legalMoves(c *gin.Context) {
	ps := srv.lookup(c, playerParam(c))
	if ps == nil {
		return
	}
	ps.mu.Lock()
	defer ps.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"moves": ps.s.Game.LegalMoves()})
}

func (srv *Server) fen(c *gin.Context) {
	ps := srv.lookup(c, playerParam(c))
	if ps == nil {
		return
	}
	ps.mu.Lock()
	defer ps.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"fen": ps.s.Game.FEN()})
}

func (srv *Server) status(c *gin.Context) {
	ps := srv.lookup(c, playerParam(c))
	if ps == nil {
		return
	}
	ps.mu.Lock()
	defer ps.mu.Unlock()

	c.JSON(http.StatusOK, ps.s.Status())
}

func (srv *Server) coachTip(c *gin.Context) {
	ps := srv.lookup(c, playerParam(c))
	if ps == nil {
		return
	}
	ps.mu.Lock()
	defer ps.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"tip": ps.s.CoachTip()})
}

func (srv *Server) profileSummary(c *gin.Context) {
	playerID := c.Param("id")

	// Prefer the live session's profile; fall back to the store.
	if ps := srv.get(playerID); ps != nil {
		ps.mu.Lock()
		defer ps.mu.Unlock()
		c.JSON(http.StatusOK, ps.s.Profile().Summary())
		return
	}
	if srv.store == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown player"})
		return
	}
	p, err := srv.store.LoadProfile(playerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, p.Summary())
}
