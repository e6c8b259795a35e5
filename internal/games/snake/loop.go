package snake

import (
	"context"
	"time"
)

// Ticker is the clock source driving a Loop.
type Ticker interface {
	Chan() <-chan time.Time
	Stop()
}

type timeTicker struct {
	*time.Ticker
}

func (t timeTicker) Chan() <-chan time.Time {
	return t.C
}

// NewTimeTicker returns a Ticker backed by time.Ticker.
func NewTimeTicker(d time.Duration) Ticker {
	return timeTicker{time.NewTicker(d)}
}

// Loop drives a running game at a fixed period. Exactly one tick executes at
// a time; Emit sees one snapshot per tick and one for the terminal transition.
type Loop struct {
	Game      *Game
	NewTicker func(time.Duration) Ticker // Defaults to NewTimeTicker
	Emit      func(Snapshot)             // May be nil
}

// NewLoop creates a loop on a real clock.
func NewLoop(g *Game, emit func(Snapshot)) *Loop {
	return &Loop{Game: g, NewTicker: NewTimeTicker, Emit: emit}
}

// Run ticks the current session until it ends and returns the last snapshot.
// The session ends on GameOver or Win, on Stop or Restart from elsewhere, or
// when ctx is cancelled, in which case the session is stopped and ctx.Err()
// is returned. The ticker is stopped on every return path.
func (l *Loop) Run(ctx context.Context) (Snapshot, error) {
	g := l.Game
	if g.State() != StateRunning {
		return g.Snapshot(), ErrNotRunning
	}
	done := g.Done()

	newTicker := l.NewTicker
	if newTicker == nil {
		newTicker = NewTimeTicker
	}
	ticker := newTicker(g.TickInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			g.Stop()
			snap := g.Snapshot()
			l.emit(snap)
			return snap, ctx.Err()

		case <-done:
			snap := g.Snapshot()
			l.emit(snap)
			return snap, nil

		case <-ticker.Chan():
			snap := g.Tick()
			l.emit(snap)
			if snap.State != StateRunning {
				return snap, nil
			}
		}
	}
}

func (l *Loop) emit(s Snapshot) {
	if l.Emit != nil {
		l.Emit(s)
	}
}
