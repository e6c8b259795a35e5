// Package core provides fundamental types for the snake engine and its front-ends.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "fmt"

// Cell is an integer grid coordinate. It is the only position unit the engine
// uses; mapping cells to pixels or terminal columns is a rendering concern.
type Cell struct {
	X, Y int
}

// Step returns the neighbouring cell one unit away in direction d.
func (c Cell) Step(d Direction) Cell {
	dx, dy := d.Delta()
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// String formats the cell as "(x, y)".
func (c Cell) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Manhattan returns the taxicab distance between two cells.
func Manhattan(a, b Cell) int {
	return Abs(a.X-b.X) + Abs(a.Y-b.Y)
}
