package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// Autopilot picks the next direction for a snapshot: the safe move that gets
// closest to the food, keeping the current heading on ties. It is greedy and
// can trap itself; it exists for demos and soak tests, not to play well.
func Autopilot(s Snapshot) core.Direction {
	head, ok := s.Head()
	if !ok {
		return s.Direction
	}

	body := make(CellSet, len(s.Snake))
	for _, c := range s.Snake[:len(s.Snake)-1] { // Tail vacates this tick
		body[c] = struct{}{}
	}

	best := s.Direction
	bestDist := -1
	for _, d := range core.Directions {
		if len(s.Snake) > 1 && d.IsOpposite(s.Direction) {
			continue
		}
		next := head.Step(d)
		if !s.Grid.Contains(next) || body.Has(next) {
			continue
		}
		dist := 0
		if s.HasFood {
			dist = core.Manhattan(next, s.Food)
		}
		if bestDist < 0 || dist < bestDist || (dist == bestDist && d == s.Direction) {
			best, bestDist = d, dist
		}
	}
	return best
}
