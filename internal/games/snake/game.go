// Package snake implements the snake game engine: the body movement rule,
// food placement, the tick step and the session state machine.
//
// A Game starts Idle. Start moves it to Running, each Tick advances the
// snake one cell, and a wall or self collision ends the session in GameOver
// (a full board ends it in Win). Restart returns a finished game to Idle.
package snake

import (
	"errors"
	"io"
	"math/rand"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// MaxPlayerNameLen is the longest accepted player name, in runes.
const MaxPlayerNameLen = 20

// HighScoreStore persists the best score across sessions.
type HighScoreStore interface {
	LoadHighScore() (int, error)
	StoreHighScore(score int) error
}

// SessionRecorder receives every finished session.
type SessionRecorder interface {
	RecordSession(r Result) error
}

// Result summarizes a finished session.
type Result struct {
	Player  string
	Level   string
	Score   int
	Length  int
	Outcome GameState
	Reason  EndReason
	Ticks   uint64
}

// StartCommand requests a new session.
type StartCommand struct {
	PlayerName string
	Level      string // Level id or name; empty selects the default level
}

// Option configures a Game.
type Option func(*Game)

// WithRand sets the random source used for food placement.
func WithRand(rng *rand.Rand) Option {
	return func(g *Game) { g.rng = rng }
}

// WithSeed seeds the food placement random source.
func WithSeed(seed int64) Option {
	return func(g *Game) { g.rng = rand.New(rand.NewSource(seed)) }
}

// WithHighScores sets the high score collaborator. It is read once by New.
func WithHighScores(s HighScoreStore) Option {
	return func(g *Game) { g.highScores = s }
}

// WithRecorder sets the finished-session collaborator.
func WithRecorder(r SessionRecorder) Option {
	return func(g *Game) { g.recorder = r }
}

// WithLogger sets the logger. Nil discards output.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// Game is the session state machine. It is safe for concurrent use: input may
// arrive from any goroutine while a single clock drives Tick.
type Game struct {
	mu sync.Mutex

	cfg        config.SnakeConfig
	grid       core.Grid
	rng        *rand.Rand
	highScores HighScoreStore
	recorder   SessionRecorder
	logger     *log.Logger

	state     GameState
	highScore int
	sess      *session // nil while Idle
}

// session holds everything discarded on restart.
type session struct {
	player string
	level  config.Level

	body    *Body
	dir     core.Direction
	pending core.Direction // Latest steering input, coalesced
	steered bool

	food    core.Cell
	hasFood bool
	score   int
	tick    uint64

	reason  EndReason
	newHigh bool
	done    chan struct{} // Closed on the terminal transition
}

// New creates an idle game. The high score is loaded here, once.
func New(cfg config.SnakeConfig, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	grid, err := cfg.Grid()
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:   cfg,
		grid:  grid,
		state: StateIdle,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}

	if g.highScores != nil {
		high, err := g.highScores.LoadHighScore()
		if err != nil {
			g.logger.Warn("could not load high score", "error", err)
		} else {
			g.highScore = max(high, 0)
		}
	}

	return g, nil
}

// Start begins a session from Idle. An invalid command returns a
// *ValidationError and leaves the game Idle. Start on a game that is not
// Idle is ignored.
func (g *Game) Start(cmd StartCommand) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StateIdle {
		g.logger.Debug("start ignored", "state", g.state)
		return nil
	}

	name := strings.TrimSpace(cmd.PlayerName)
	switch {
	case name == "":
		return &ValidationError{Field: "player name", Reason: "must not be empty"}
	case utf8.RuneCountInString(name) > MaxPlayerNameLen:
		return &ValidationError{Field: "player name", Reason: "must be at most 20 characters"}
	}

	level := g.cfg.DefaultLevel()
	if cmd.Level != "" {
		l, ok := g.cfg.FindLevel(cmd.Level)
		if !ok {
			return &ValidationError{Field: "level", Reason: "unknown level " + `"` + cmd.Level + `"`}
		}
		level = l
	}

	cells, err := g.cfg.StartBody()
	if err != nil {
		return err
	}
	body, err := NewBody(cells)
	if err != nil {
		return err
	}
	dir, err := g.cfg.StartDirection()
	if err != nil {
		return err
	}

	food, err := PlaceFood(g.grid, body.Occupied(), g.rng)
	if err != nil {
		return err
	}

	g.sess = &session{
		player:  name,
		level:   level,
		body:    body,
		dir:     dir,
		food:    food,
		hasFood: true,
		done:    make(chan struct{}),
	}
	g.state = StateRunning
	g.logger.Info("session started", "player", name, "level", level.ID, "food", food)
	return nil
}

// Steer buffers a direction for the next tick, replacing any earlier
// unapplied input. A reversal onto a body longer than one segment is dropped.
func (g *Game) Steer(d core.Direction) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StateRunning || !d.Valid() {
		return
	}
	s := g.sess
	if s.body.Len() > 1 && d.IsOpposite(s.dir) {
		return
	}
	s.pending = d
	s.steered = true
}

// Tick advances the running session by one step and returns the resulting
// snapshot. Outside Running it only reports the current state.
func (g *Game) Tick() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StateRunning {
		return g.snapshotLocked()
	}

	s := g.sess
	s.tick++

	if s.steered {
		if s.body.Len() == 1 || !s.pending.IsOpposite(s.dir) {
			s.dir = s.pending
		}
		s.steered = false
	}

	move := s.body.Advance(s.dir)
	switch {
	case !g.grid.Contains(move.Head):
		g.finishLocked(StateGameOver, ReasonWall)
	case move.SelfCollision:
		g.finishLocked(StateGameOver, ReasonSelf)
	case s.hasFood && move.Head == s.food:
		g.commitLocked(move.Head, true)
		s.score += g.cfg.Scoring.Award
		g.replaceFoodLocked()
	default:
		g.commitLocked(move.Head, false)
	}

	return g.snapshotLocked()
}

func (g *Game) commitLocked(head core.Cell, grow bool) {
	if err := g.sess.body.CommitMove(head, grow); err != nil {
		// Advance just validated this head; reaching here is a bug.
		g.logger.Error("commit move", "head", head, "error", err)
	}
}

// replaceFoodLocked places new food after a consumption, or ends the
// session as a win when the snake fills the grid.
func (g *Game) replaceFoodLocked() {
	s := g.sess
	s.hasFood = false
	if s.body.Len() >= g.grid.Area() {
		g.finishLocked(StateWin, ReasonBoardFull)
		return
	}
	food, err := PlaceFood(g.grid, s.body.Occupied(), g.rng)
	if errors.Is(err, ErrBoardFull) {
		g.finishLocked(StateWin, ReasonBoardFull)
		return
	}
	s.food = food
	s.hasFood = true
}

// finishLocked performs the terminal transition: it settles the high score,
// reports the session and releases anything waiting on Done.
func (g *Game) finishLocked(state GameState, reason EndReason) {
	s := g.sess
	g.state = state
	s.reason = reason

	if s.score > g.highScore {
		g.highScore = s.score
		s.newHigh = true
		if g.highScores != nil {
			if err := g.highScores.StoreHighScore(s.score); err != nil {
				g.logger.Warn("could not store high score", "score", s.score, "error", err)
			}
		}
	}

	if g.recorder != nil {
		err := g.recorder.RecordSession(Result{
			Player:  s.player,
			Level:   s.level.ID,
			Score:   s.score,
			Length:  s.body.Len(),
			Outcome: state,
			Reason:  reason,
			Ticks:   s.tick,
		})
		if err != nil {
			g.logger.Warn("could not record session", "error", err)
		}
	}

	close(s.done)
	g.logger.Info("session ended",
		"player", s.player,
		"state", state,
		"reason", reason,
		"score", s.score,
		"length", s.body.Len(),
		"ticks", s.tick,
		"high_score", s.newHigh,
	)
}

// Stop ends a running session immediately as GameOver.
func (g *Game) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state == StateRunning {
		g.finishLocked(StateGameOver, ReasonStopped)
	}
}

// Restart discards a finished session and returns to Idle.
// It does nothing unless the game is in GameOver or Win.
func (g *Game) Restart() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.state.Terminal() {
		return
	}
	g.sess = nil
	g.state = StateIdle
}

// Snapshot returns the current state.
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshotLocked()
}

func (g *Game) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:     g.state,
		Grid:      g.grid,
		HighScore: g.highScore,
	}
	s := g.sess
	if s == nil {
		return snap
	}
	snap.Tick = s.tick
	snap.Reason = s.reason
	snap.Player = s.player
	snap.Level = s.level
	snap.Snake = s.body.Cells()
	snap.Direction = s.dir
	snap.Food = s.food
	snap.HasFood = s.hasFood
	snap.Score = s.score
	snap.NewHighScore = s.newHigh
	return snap
}

// Done returns a channel closed when the current session ends.
// With no session it returns an already closed channel.
func (g *Game) Done() <-chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.sess == nil {
		ch := make(chan struct{})
		close(ch)
		return ch
	}
	return g.sess.done
}

// State returns the current state.
func (g *Game) State() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// HighScore returns the best score known to the game.
func (g *Game) HighScore() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.highScore
}

// TickInterval returns the clock period of the current session's level,
// or of the default level while Idle.
func (g *Game) TickInterval() time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.sess != nil {
		return g.sess.level.TickInterval()
	}
	return g.cfg.DefaultLevel().TickInterval()
}

// Grid returns the playing grid.
func (g *Game) Grid() core.Grid {
	return g.grid
}

// Levels returns the configured difficulty levels.
func (g *Game) Levels() []config.Level {
	out := make([]config.Level, len(g.cfg.Levels))
	copy(out, g.cfg.Levels)
	return out
}
