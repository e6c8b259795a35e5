package core

import "fmt"

// Grid defines the playing field. It is derived once from the drawing surface
// and tile size and never changes during a session.
type Grid struct {
	TileWidth  int
	TileHeight int
	Columns    int
	Rows       int

	// Canvas size the grid was derived from, kept for the debug panel.
	CanvasWidth  int
	CanvasHeight int
}

// NewGrid derives a grid from a canvas and a tile size.
// The canvas must divide evenly into whole tiles.
func NewGrid(canvasW, canvasH, tileW, tileH int) (Grid, error) {
	if canvasW <= 0 || canvasH <= 0 {
		return Grid{}, fmt.Errorf("grid: canvas %dx%d must be positive", canvasW, canvasH)
	}
	if tileW <= 0 || tileH <= 0 {
		return Grid{}, fmt.Errorf("grid: tile %dx%d must be positive", tileW, tileH)
	}
	if canvasW%tileW != 0 || canvasH%tileH != 0 {
		return Grid{}, fmt.Errorf("grid: canvas %dx%d is not a whole number of %dx%d tiles",
			canvasW, canvasH, tileW, tileH)
	}
	return Grid{
		TileWidth:    tileW,
		TileHeight:   tileH,
		Columns:      canvasW / tileW,
		Rows:         canvasH / tileH,
		CanvasWidth:  canvasW,
		CanvasHeight: canvasH,
	}, nil
}

// GridOf builds a grid directly from its cell dimensions with unit tiles.
func GridOf(columns, rows int) Grid {
	return Grid{
		TileWidth:    1,
		TileHeight:   1,
		Columns:      columns,
		Rows:         rows,
		CanvasWidth:  columns,
		CanvasHeight: rows,
	}
}

// Contains reports whether c lies on the grid. It is the single source of
// truth for boundary collision.
func (g Grid) Contains(c Cell) bool {
	return c.X >= 0 && c.X < g.Columns && c.Y >= 0 && c.Y < g.Rows
}

// Area returns the number of cells on the grid.
func (g Grid) Area() int {
	return g.Columns * g.Rows
}

// CellAt maps a linear index in [0, Area) to a cell, row-major.
func (g Grid) CellAt(i int) Cell {
	return Cell{X: i % g.Columns, Y: i / g.Columns}
}

// Center returns the middle cell of the grid.
func (g Grid) Center() Cell {
	return Cell{X: g.Columns / 2, Y: g.Rows / 2}
}

// Info formats the grid size as "32x24 (768 tiles)".
func (g Grid) Info() string {
	return fmt.Sprintf("%dx%d (%d tiles)", g.Columns, g.Rows, g.Area())
}

// Describe returns the canvas, tile and grid dimensions on one line.
func (g Grid) Describe() string {
	return fmt.Sprintf("Canvas: %dx%d | Grid: %dx%d | Tiles: %dx%d",
		g.CanvasWidth, g.CanvasHeight, g.TileWidth, g.TileHeight, g.Columns, g.Rows)
}
