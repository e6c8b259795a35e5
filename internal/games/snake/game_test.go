package snake

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// memoryScores is an in-memory HighScoreStore.
type memoryScores struct {
	high    int
	loadErr error
	loads   int
	stores  []int
}

func (m *memoryScores) LoadHighScore() (int, error) {
	m.loads++
	return m.high, m.loadErr
}

func (m *memoryScores) StoreHighScore(score int) error {
	m.stores = append(m.stores, score)
	m.high = score
	return nil
}

type memoryRecorder struct {
	results []Result
}

func (m *memoryRecorder) RecordSession(r Result) error {
	m.results = append(m.results, r)
	return nil
}

func newTestGame(t *testing.T, cfg config.SnakeConfig, opts ...Option) *Game {
	t.Helper()
	g, err := New(cfg, append([]Option{WithSeed(42)}, opts...)...)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return g
}

func startTestGame(t *testing.T, g *Game) {
	t.Helper()
	if err := g.Start(StartCommand{PlayerName: "TestPlayer", Level: config.LevelBeginner}); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
}

// placeFoodAt moves the food of the running session, bypassing placement.
func placeFoodAt(g *Game, c core.Cell) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sess.food = c
	g.sess.hasFood = true
}

// setBody replaces the snake of the running session.
func setBody(t *testing.T, g *Game, dir core.Direction, cells ...core.Cell) {
	t.Helper()
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sess.body = mustBody(t, cells...)
	g.sess.dir = dir
}

func assertInvariants(t *testing.T, snap Snapshot) {
	t.Helper()
	seen := make(map[core.Cell]bool, len(snap.Snake))
	for _, c := range snap.Snake {
		if !snap.Grid.Contains(c) {
			t.Fatalf("tick %d: segment %v is out of bounds", snap.Tick, c)
		}
		if seen[c] {
			t.Fatalf("tick %d: segment %v appears twice", snap.Tick, c)
		}
		seen[c] = true
	}
	if snap.HasFood {
		if !snap.Grid.Contains(snap.Food) {
			t.Fatalf("tick %d: food %v is out of bounds", snap.Tick, snap.Food)
		}
		if seen[snap.Food] {
			t.Fatalf("tick %d: food %v is on the snake", snap.Tick, snap.Food)
		}
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultSnakeConfig()
	cfg.Board.TileSize = 0
	if _, err := New(cfg); err == nil {
		t.Error("New() should reject an invalid config")
	}
}

func TestStartInitializesSession(t *testing.T) {
	g := newTestGame(t, config.DefaultSnakeConfig())
	if g.State() != StateIdle {
		t.Fatalf("State() = %v, expected idle", g.State())
	}

	startTestGame(t, g)
	snap := g.Snapshot()

	if snap.State != StateRunning {
		t.Errorf("State = %v, expected running", snap.State)
	}
	if snap.Score != 0 || snap.Tick != 0 {
		t.Errorf("Score = %d, Tick = %d, expected zeroes", snap.Score, snap.Tick)
	}
	expected := []core.Cell{{X: 10, Y: 12}, {X: 9, Y: 12}, {X: 8, Y: 12}}
	if len(snap.Snake) != len(expected) {
		t.Fatalf("Snake = %v, expected %v", snap.Snake, expected)
	}
	for i := range expected {
		if snap.Snake[i] != expected[i] {
			t.Errorf("Snake[%d] = %v, expected %v", i, snap.Snake[i], expected[i])
		}
	}
	if snap.Direction != core.DirRight {
		t.Errorf("Direction = %v, expected right", snap.Direction)
	}
	if snap.Player != "TestPlayer" || snap.Level.ID != config.LevelBeginner {
		t.Errorf("Player/Level = %q/%q", snap.Player, snap.Level.ID)
	}
	if !snap.HasFood {
		t.Error("a session starts with food")
	}
	assertInvariants(t, snap)
}

func TestStartValidation(t *testing.T) {
	tests := []struct {
		name  string
		cmd   StartCommand
		field string
	}{
		{"empty name", StartCommand{PlayerName: ""}, "player name"},
		{"blank name", StartCommand{PlayerName: "   "}, "player name"},
		{"long name", StartCommand{PlayerName: "abcdefghijklmnopqrstu"}, "player name"},
		{"unknown level", StartCommand{PlayerName: "Ann", Level: "nightmare"}, "level"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGame(t, config.DefaultSnakeConfig())
			err := g.Start(tc.cmd)

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Start() error = %v, expected ValidationError", err)
			}
			if verr.Field != tc.field {
				t.Errorf("Field = %q, expected %q", verr.Field, tc.field)
			}
			if g.State() != StateIdle {
				t.Errorf("State() = %v, expected idle after a rejected start", g.State())
			}
		})
	}
}

func TestStartDefaultsLevel(t *testing.T) {
	g := newTestGame(t, config.DefaultSnakeConfig())
	if err := g.Start(StartCommand{PlayerName: "  Ann  "}); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	snap := g.Snapshot()
	if snap.Player != "Ann" {
		t.Errorf("Player = %q, expected trimmed name", snap.Player)
	}
	if snap.Level.ID != config.LevelBeginner {
		t.Errorf("Level = %q, expected beginner", snap.Level.ID)
	}
	if g.TickInterval() != snap.Level.TickInterval() {
		t.Errorf("TickInterval() = %v, expected %v", g.TickInterval(), snap.Level.TickInterval())
	}
}

func TestStartWhileRunningIsNoop(t *testing.T) {
	g := newTestGame(t, config.DefaultSnakeConfig())
	startTestGame(t, g)

	head := g.Snapshot().Snake[0]
	placeFoodAt(g, head.Step(core.DirRight))
	g.Tick()
	before := g.Snapshot()

	if err := g.Start(StartCommand{PlayerName: "Other", Level: config.LevelExpert}); err != nil {
		t.Fatalf("Start() while running = %v, expected nil", err)
	}
	after := g.Snapshot()

	if after.Score != before.Score || after.Food != before.Food || after.Player != before.Player {
		t.Errorf("Start() while running changed the session: %+v -> %+v", before, after)
	}
	if len(after.Snake) != len(before.Snake) || after.Snake[0] != before.Snake[0] {
		t.Errorf("Start() while running changed the snake: %v -> %v", before.Snake, after.Snake)
	}
}

func TestWallCollisionAfterColumnsMinusStartX(t *testing.T) {
	g := newTestGame(t, config.DefaultSnakeConfig())
	startTestGame(t, g)
	placeFoodAt(g, core.Cell{X: 0, Y: 0})

	grid := g.Grid()
	startX := g.Snapshot().Snake[0].X
	ticks := grid.Columns - startX

	for i := 1; i < ticks; i++ {
		snap := g.Tick()
		if snap.State != StateRunning {
			t.Fatalf("tick %d: State = %v, expected running", i, snap.State)
		}
		assertInvariants(t, snap)
	}

	snap := g.Tick()
	if snap.State != StateGameOver || snap.Reason != ReasonWall {
		t.Errorf("after %d ticks State = %v (%v), expected game over by wall", ticks, snap.State, snap.Reason)
	}
	if snap.Snake[0].X != grid.Columns-1 {
		t.Errorf("head = %v, the losing move must not be committed", snap.Snake[0])
	}

	// Further ticks do nothing
	if again := g.Tick(); again.Tick != snap.Tick {
		t.Errorf("Tick() after game over advanced to %d", again.Tick)
	}
}

func TestSelfCollision(t *testing.T) {
	g := newTestGame(t, config.DefaultSnakeConfig())
	startTestGame(t, g)
	setBody(t, g, core.DirRight,
		core.Cell{X: 5, Y: 5},
		core.Cell{X: 5, Y: 6},
		core.Cell{X: 6, Y: 6},
		core.Cell{X: 6, Y: 5},
		core.Cell{X: 6, Y: 4},
	)
	placeFoodAt(g, core.Cell{X: 0, Y: 0})

	snap := g.Tick()
	if snap.State != StateGameOver || snap.Reason != ReasonSelf {
		t.Errorf("State = %v (%v), expected game over by self collision", snap.State, snap.Reason)
	}
}

func TestEatFood(t *testing.T) {
	g := newTestGame(t, config.DefaultSnakeConfig())
	startTestGame(t, g)
	setBody(t, g, core.DirLeft, core.Cell{X: 6, Y: 5}, core.Cell{X: 7, Y: 5}, core.Cell{X: 8, Y: 5})
	placeFoodAt(g, core.Cell{X: 5, Y: 5})

	snap := g.Tick()
	if snap.Score != 10 {
		t.Errorf("Score = %d, expected 10", snap.Score)
	}
	if snap.Snake[0] != (core.Cell{X: 5, Y: 5}) || snap.Length() != 4 {
		t.Errorf("Snake = %v, expected head (5, 5) and length 4", snap.Snake)
	}
	if !snap.HasFood || snap.Food == (core.Cell{X: 5, Y: 5}) {
		t.Errorf("Food = %v, expected a new cell", snap.Food)
	}
	assertInvariants(t, snap)
}

func TestGrowthIsMonotonic(t *testing.T) {
	cfg := config.DefaultSnakeConfig()
	g := newTestGame(t, cfg)
	startTestGame(t, g)

	const meals = 10
	for i := 0; i < meals; i++ {
		// Zigzag right: eat on a right move, then a plain move up or down.
		g.Steer(core.DirRight)
		placeFoodAt(g, g.Snapshot().Snake[0].Step(core.DirRight))
		snap := g.Tick()
		assertInvariants(t, snap)

		placeFoodAt(g, core.Cell{X: 0, Y: 0})
		before := snap.Length()
		if i%2 == 0 {
			g.Steer(core.DirDown)
		} else {
			g.Steer(core.DirUp)
		}
		snap = g.Tick()
		if snap.State != StateRunning || snap.Length() != before {
			t.Fatalf("meal %d: length changed from %d to %d without food", i, before, snap.Length())
		}
	}

	snap := g.Snapshot()
	if snap.Length() != cfg.Snake.InitialLength+meals {
		t.Errorf("Length = %d, expected %d", snap.Length(), cfg.Snake.InitialLength+meals)
	}
	if snap.Score != meals*cfg.Scoring.Award {
		t.Errorf("Score = %d, expected %d", snap.Score, meals*cfg.Scoring.Award)
	}
}

func TestNoImmediateReversal(t *testing.T) {
	g := newTestGame(t, config.DefaultSnakeConfig())
	startTestGame(t, g)
	placeFoodAt(g, core.Cell{X: 0, Y: 0})

	g.Steer(core.DirLeft)
	snap := g.Tick()

	if snap.State != StateRunning {
		t.Fatalf("State = %v, a reversal must not cause a collision", snap.State)
	}
	if snap.Snake[0] != (core.Cell{X: 11, Y: 12}) || snap.Direction != core.DirRight {
		t.Errorf("head = %v dir = %v, expected the snake to keep moving right", snap.Snake[0], snap.Direction)
	}
}

func TestReversalAllowedForSingleSegment(t *testing.T) {
	cfg := config.DefaultSnakeConfig()
	cfg.Snake.InitialLength = 1
	g := newTestGame(t, cfg)
	startTestGame(t, g)
	placeFoodAt(g, core.Cell{X: 0, Y: 0})

	g.Steer(core.DirLeft)
	snap := g.Tick()

	if snap.State != StateRunning || snap.Snake[0] != (core.Cell{X: 9, Y: 12}) {
		t.Errorf("State = %v head = %v, expected running at (9, 12)", snap.State, snap.Snake[0])
	}
}

func TestSteeringIsCoalesced(t *testing.T) {
	g := newTestGame(t, config.DefaultSnakeConfig())
	startTestGame(t, g)
	placeFoodAt(g, core.Cell{X: 0, Y: 0})

	// The latest valid input wins; a reversal does not displace it.
	g.Steer(core.DirUp)
	g.Steer(core.DirDown)
	g.Steer(core.DirLeft)
	snap := g.Tick()

	if snap.Snake[0] != (core.Cell{X: 10, Y: 13}) {
		t.Errorf("head = %v, expected one cell down at (10, 13)", snap.Snake[0])
	}

	// Only one cell per tick no matter how many inputs arrived
	g.Steer(core.DirRight)
	g.Steer(core.DirDown)
	snap = g.Tick()
	if snap.Snake[0] != (core.Cell{X: 10, Y: 14}) {
		t.Errorf("head = %v, expected (10, 14)", snap.Snake[0])
	}
}

func TestSteerIgnoredWhenNotRunning(t *testing.T) {
	g := newTestGame(t, config.DefaultSnakeConfig())
	g.Steer(core.DirUp) // Idle: no session, no panic
	startTestGame(t, g)

	if g.Snapshot().Direction != core.DirRight {
		t.Error("input before start must not carry into the session")
	}
}

func TestWinWhenBoardFills(t *testing.T) {
	cfg := config.DefaultSnakeConfig()
	cfg.Board = config.BoardConfig{CanvasWidth: 3, CanvasHeight: 1, TileSize: 1}
	cfg.Snake = config.StartConfig{StartX: 1, StartY: 0, InitialLength: 2, Direction: "right"}
	rec := &memoryRecorder{}
	g := newTestGame(t, cfg, WithRecorder(rec))
	startTestGame(t, g)

	if food := g.Snapshot().Food; food != (core.Cell{X: 2, Y: 0}) {
		t.Fatalf("Food = %v, expected the only free cell (2, 0)", food)
	}

	snap := g.Tick()
	if snap.State != StateWin || snap.Reason != ReasonBoardFull {
		t.Fatalf("State = %v (%v), expected win", snap.State, snap.Reason)
	}
	if snap.HasFood {
		t.Error("a full board has no food")
	}
	if snap.Length() != 3 || snap.Score != cfg.Scoring.Award {
		t.Errorf("Length = %d Score = %d", snap.Length(), snap.Score)
	}

	select {
	case <-g.Done():
	default:
		t.Error("Done() should be closed after a win")
	}
	if len(rec.results) != 1 || rec.results[0].Outcome != StateWin {
		t.Errorf("recorded %+v, expected one win", rec.results)
	}
}

func TestRestartRoundTrip(t *testing.T) {
	g := newTestGame(t, config.DefaultSnakeConfig())

	g.Restart() // Idle: no-op
	if g.State() != StateIdle {
		t.Fatalf("Restart() from idle changed state to %v", g.State())
	}

	startTestGame(t, g)
	first := g.Snapshot()
	placeFoodAt(g, first.Snake[0].Step(core.DirRight))
	g.Tick()

	g.Restart() // Running: no-op
	if g.State() != StateRunning {
		t.Fatalf("Restart() while running changed state to %v", g.State())
	}

	g.Stop()
	if s := g.Snapshot(); s.State != StateGameOver || s.Reason != ReasonStopped || s.Score != 10 {
		t.Fatalf("after Stop() snapshot = %+v", s)
	}

	if err := g.Start(StartCommand{PlayerName: "TestPlayer"}); err != nil || g.State() != StateGameOver {
		t.Fatalf("Start() from game over = %v, state %v, expected ignored", err, g.State())
	}

	g.Restart()
	idle := g.Snapshot()
	if idle.State != StateIdle || idle.Snake != nil || idle.Score != 0 {
		t.Fatalf("after Restart() snapshot = %+v, expected an empty idle state", idle)
	}

	startTestGame(t, g)
	second := g.Snapshot()
	if second.Score != 0 || second.Tick != 0 || second.State != StateRunning {
		t.Errorf("second session = %+v, expected a fresh session", second)
	}
	for i := range first.Snake {
		if second.Snake[i] != first.Snake[i] {
			t.Errorf("second session snake = %v, expected canonical %v", second.Snake, first.Snake)
			break
		}
	}
	if second.HighScore != 10 {
		t.Errorf("HighScore = %d, expected 10 carried across sessions", second.HighScore)
	}
}

func TestHighScorePersistence(t *testing.T) {
	scores := &memoryScores{high: 5}
	g := newTestGame(t, config.DefaultSnakeConfig(), WithHighScores(scores))

	if g.HighScore() != 5 {
		t.Fatalf("HighScore() = %d, expected loaded 5", g.HighScore())
	}

	// Session beating the record
	startTestGame(t, g)
	placeFoodAt(g, g.Snapshot().Snake[0].Step(core.DirRight))
	g.Tick()
	g.Stop()

	snap := g.Snapshot()
	if !snap.NewHighScore || snap.HighScore != 10 {
		t.Errorf("snapshot = %+v, expected new high score 10", snap)
	}
	if len(scores.stores) != 1 || scores.stores[0] != 10 {
		t.Errorf("stores = %v, expected [10]", scores.stores)
	}

	// Session below the record does not store
	g.Restart()
	startTestGame(t, g)
	g.Stop()
	if len(scores.stores) != 1 {
		t.Errorf("stores = %v, a lower score must not be stored", scores.stores)
	}
	if g.Snapshot().NewHighScore {
		t.Error("NewHighScore should be false for a lower score")
	}
	if scores.loads != 1 {
		t.Errorf("LoadHighScore() called %d times, expected once", scores.loads)
	}
}

func TestHighScoreLoadFailure(t *testing.T) {
	scores := &memoryScores{high: 99, loadErr: errors.New("disk on fire")}
	g := newTestGame(t, config.DefaultSnakeConfig(), WithHighScores(scores))

	if g.HighScore() != 0 {
		t.Errorf("HighScore() = %d, expected 0 when loading fails", g.HighScore())
	}
}

func TestRecorderReceivesResult(t *testing.T) {
	rec := &memoryRecorder{}
	g := newTestGame(t, config.DefaultSnakeConfig(), WithRecorder(rec))
	if err := g.Start(StartCommand{PlayerName: "Ann", Level: "Intermediate"}); err != nil {
		t.Fatal(err)
	}
	placeFoodAt(g, core.Cell{X: 0, Y: 0})
	for g.State() == StateRunning {
		g.Tick()
	}

	if len(rec.results) != 1 {
		t.Fatalf("recorded %d results, expected 1", len(rec.results))
	}
	r := rec.results[0]
	if r.Player != "Ann" || r.Level != config.LevelIntermediate || r.Outcome != StateGameOver || r.Reason != ReasonWall {
		t.Errorf("Result = %+v", r)
	}
	if r.Ticks != 22 || r.Length != 3 {
		t.Errorf("Ticks = %d Length = %d, expected 22 and 3", r.Ticks, r.Length)
	}
}

func TestSnapshotIsIsolated(t *testing.T) {
	g := newTestGame(t, config.DefaultSnakeConfig())
	startTestGame(t, g)

	snap := g.Snapshot()
	snap.Snake[0] = core.Cell{X: 0, Y: 0}

	if g.Snapshot().Snake[0] == (core.Cell{X: 0, Y: 0}) {
		t.Error("mutating a snapshot must not affect the game")
	}
}

func TestDeterminism(t *testing.T) {
	play := func() Snapshot {
		g := newTestGame(t, config.DefaultSnakeConfig())
		startTestGame(t, g)
		snap := g.Snapshot()
		for i := 0; i < 300 && snap.State == StateRunning; i++ {
			g.Steer(Autopilot(snap))
			snap = g.Tick()
		}
		return snap
	}

	a, b := play(), play()
	if a.Tick != b.Tick || a.Score != b.Score || a.Food != b.Food || a.State != b.State {
		t.Errorf("same seed produced different games: %+v vs %+v", a, b)
	}
}

func TestInvariantsHoldEveryTick(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		g, err := New(config.DefaultSnakeConfig(), WithSeed(seed))
		if err != nil {
			t.Fatal(err)
		}
		startTestGame(t, g)

		snap := g.Snapshot()
		length := snap.Length()
		for i := 0; i < 2000 && snap.State == StateRunning; i++ {
			g.Steer(Autopilot(snap))
			snap = g.Tick()
			assertInvariants(t, snap)
			if snap.Length() < length || snap.Length() > length+1 {
				t.Fatalf("seed %d tick %d: length went from %d to %d", seed, snap.Tick, length, snap.Length())
			}
			length = snap.Length()
		}
	}
}
