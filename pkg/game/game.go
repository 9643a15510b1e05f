package game

import (
	"fmt"
	"log"
	"time"

	"github.com/qnkhuat/blockterm/pkg/event"
	"github.com/qnkhuat/blockterm/pkg/mino"
)

const (
	DefaultFallTime  = 600 * time.Millisecond
	DefaultFrameRate = 60

	LineScore     = 100
	SoftDropScore = 1
)

type State int

const (
	StatePlaying State = iota
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "Playing"
	case StateGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

type Config struct {
	Width     int
	Height    int
	FallTime  time.Duration
	FrameRate int
}

func DefaultConfig() Config {
	return Config{
		Width:     mino.DefaultWidth,
		Height:    mino.DefaultHeight,
		FallTime:  DefaultFallTime,
		FrameRate: DefaultFrameRate,
	}
}

func (c Config) validate() error {
	if c.Width < 4 || c.Height < 4 {
		return fmt.Errorf("failed to create game: board %dx%d is too small", c.Width, c.Height)
	}
	if c.FallTime <= 0 {
		return fmt.Errorf("failed to create game: fall time must be positive, got %s", c.FallTime)
	}
	if c.FrameRate <= 0 {
		return fmt.Errorf("failed to create game: frame rate must be positive, got %d", c.FrameRate)
	}

	return nil
}

// Game is a single-player session. It is not safe for concurrent use; the
// tick loop is its only caller.
type Game struct {
	Config

	board  *mino.Board
	p      *mino.Piece
	score  int
	state  State
	quit   bool
	shapes mino.Randomizer

	lastFall time.Time

	Logger   *log.Logger
	LogLevel int
}

func NewGame(cfg Config, shapes mino.Randomizer) (*Game, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if shapes == nil {
		return nil, fmt.Errorf("failed to create game: no randomizer")
	}

	b, err := mino.NewBoard(cfg.Width, cfg.Height)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %s", err)
	}

	g := &Game{
		Config: cfg,
		board:  b,
		state:  StatePlaying,
		shapes: shapes,
	}

	return g, nil
}

// Step advances the game by one tick at time now, applying a when ok is set.
// It reports whether the game is still running.
func (g *Game) Step(now time.Time, a event.GameAction, ok bool) bool {
	if g.state == StateGameOver || g.quit {
		return false
	}

	if g.p == nil {
		if !g.spawn(now) {
			g.setGameOver("no room to spawn")
			return false
		}
	}

	if now.Sub(g.lastFall) >= g.FallTime {
		g.board.MoveDown(g.p)
		g.lastFall = now
	}

	if ok {
		g.ProcessAction(a)
		if g.quit {
			return false
		}
	}

	if g.board.Landed(g.p) {
		if err := g.board.Lock(g.p); err != nil {
			// Transforms keep the piece in bounds, so this is a bug.
			g.Logf(LogStandard, "failed to lock %s: %s", g.p, err)
		} else {
			g.Logf(LogVerbose, "locked %s", g.p)
		}
		g.p = nil
	}

	if lines := g.board.ClearFilled(); lines > 0 {
		g.score += LineScore * lines
		g.Logf(LogDebug, "cleared %d line(s), score %d", lines, g.score)
	}

	center := g.board.W/2 - 1
	if g.board.Occupied(center, 0) || g.board.Occupied(center, 1) {
		g.setGameOver("stack reached the top")
		return false
	}

	return true
}

// ProcessAction applies a single input action to the active piece.
func (g *Game) ProcessAction(a event.GameAction) {
	switch a {
	case event.ActionQuit:
		g.quit = true
		g.Log(LogDebug, "quit requested")
		return
	case event.ActionSoftDrop:
		// Awarded even when the piece is resting on something.
		g.score += SoftDropScore
	}

	if g.p == nil {
		return
	}

	switch a {
	case event.ActionMoveLeft:
		g.board.MoveLeft(g.p)
	case event.ActionMoveRight:
		g.board.MoveRight(g.p)
	case event.ActionSoftDrop:
		g.board.MoveDown(g.p)
	case event.ActionRotateCCW:
		g.board.RotatePiece(g.p)
	}
}

func (g *Game) spawn(now time.Time) bool {
	shape := g.shapes.Shape()

	p := mino.NewPiece(shape)
	if p == nil {
		g.Logf(LogStandard, "failed to spawn unknown shape %d", shape)
		return false
	}

	x := g.board.W/2 - p.Width()/2
	if !g.board.MovePiece(p, x, 0) {
		return false
	}

	g.p = p
	g.lastFall = now

	g.Logf(LogVerbose, "spawned %s at %s", shape, p.PivotPoint())
	return true
}

func (g *Game) setGameOver(reason string) {
	g.state = StateGameOver
	g.Logf(LogStandard, "game over: %s, final score %d", reason, g.score)
}

func (g *Game) Running() bool {
	return g.state == StatePlaying && !g.quit
}

func (g *Game) Board() *mino.Board {
	return g.board
}

// Piece returns the active piece, or nil between a lock and the next spawn.
func (g *Game) Piece() *mino.Piece {
	return g.p
}

func (g *Game) Score() int {
	return g.score
}

func (g *Game) State() State {
	return g.state
}

func (g *Game) GameOver() bool {
	return g.state == StateGameOver
}

func (g *Game) Quit() bool {
	return g.quit
}

// Snapshot copies the state a renderer needs.
func (g *Game) Snapshot() (*mino.Board, *mino.Piece, int, bool) {
	return g.board.Clone(), g.p.Clone(), g.score, g.GameOver()
}
