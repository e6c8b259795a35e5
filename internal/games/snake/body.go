package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// CellSet is a set of grid cells.
type CellSet map[core.Cell]struct{}

// Has reports whether c is in the set.
func (s CellSet) Has(c core.Cell) bool {
	_, ok := s[c]
	return ok
}

// Len returns the number of cells in the set.
func (s CellSet) Len() int {
	return len(s)
}

// Move is the outcome of evaluating one step of the snake.
type Move struct {
	Head          core.Cell
	SelfCollision bool
}

// Body is the snake: an ordered sequence of cells, head at index 0.
// Cells never repeat except transiently while a move is being evaluated.
type Body struct {
	cells    []core.Cell
	occupied map[core.Cell]int // counts, so a head entering the vacating tail cell stays tracked

	pending   core.Cell // head validated by the last Advance
	validMove bool
}

// NewBody creates a snake from head-first cells.
func NewBody(cells []core.Cell) (*Body, error) {
	if len(cells) == 0 {
		return nil, &ValidationError{Field: "snake", Reason: "body must have at least one segment"}
	}
	b := &Body{
		cells:    make([]core.Cell, len(cells)),
		occupied: make(map[core.Cell]int, len(cells)),
	}
	copy(b.cells, cells)
	for _, c := range cells {
		if b.occupied[c] > 0 {
			return nil, &ValidationError{Field: "snake", Reason: "segment " + c.String() + " overlaps the body"}
		}
		b.occupied[c]++
	}
	return b, nil
}

// Head returns the first segment.
func (b *Body) Head() core.Cell {
	return b.cells[0]
}

// Tail returns the last segment.
func (b *Body) Tail() core.Cell {
	return b.cells[len(b.cells)-1]
}

// Len returns the number of segments.
func (b *Body) Len() int {
	return len(b.cells)
}

// Cells returns a copy of the segments, head first.
func (b *Body) Cells() []core.Cell {
	out := make([]core.Cell, len(b.cells))
	copy(out, b.cells)
	return out
}

// Occupies reports whether any segment is on c.
func (b *Body) Occupies(c core.Cell) bool {
	return b.occupied[c] > 0
}

// Occupied returns every cell the snake covers.
func (b *Body) Occupied() CellSet {
	set := make(CellSet, len(b.occupied))
	for c, n := range b.occupied {
		if n > 0 {
			set[c] = struct{}{}
		}
	}
	return set
}

// Advance computes the next head one cell away in direction d and checks it
// against the body. The tail is excluded because it vacates this tick unless
// the caller decides to grow. The body is not modified.
func (b *Body) Advance(d core.Direction) Move {
	head := b.Head().Step(d)
	collides := b.Occupies(head) && head != b.Tail()

	b.pending = head
	b.validMove = !collides
	return Move{Head: head, SelfCollision: collides}
}

// CommitMove prepends head and drops the tail unless grow is set.
// head must be the collision-free result of the preceding Advance.
func (b *Body) CommitMove(head core.Cell, grow bool) error {
	if !b.validMove || head != b.pending {
		return ErrUnvalidatedMove
	}
	b.validMove = false

	b.cells = append([]core.Cell{head}, b.cells...)
	b.occupied[head]++

	if !grow {
		tail := b.cells[len(b.cells)-1]
		b.cells = b.cells[:len(b.cells)-1]
		if b.occupied[tail]--; b.occupied[tail] <= 0 {
			delete(b.occupied, tail)
		}
	}
	return nil
}
