package snake

import (
	"math/rand"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// rejectionRounds bounds uniform resampling before falling back to picking
// directly among the free cells.
const rejectionRounds = 4

// PlaceFood picks a free cell uniformly at random.
//
// Candidates are sampled from the whole grid and resampled while they land on
// an occupied cell. On a crowded board the sampling gives up after a bounded
// number of draws and chooses uniformly among the remaining free cells, so the
// call always terminates. ErrBoardFull is returned when no free cell exists.
func PlaceFood(grid core.Grid, occupied CellSet, rng *rand.Rand) (core.Cell, error) {
	area := grid.Area()

	taken := 0
	for c := range occupied {
		if grid.Contains(c) {
			taken++
		}
	}
	free := area - taken
	if free <= 0 {
		return core.Cell{}, ErrBoardFull
	}

	for range rejectionRounds * area {
		c := grid.CellAt(rng.Intn(area))
		if !occupied.Has(c) {
			return c, nil
		}
	}

	pick := rng.Intn(free)
	for i := range area {
		c := grid.CellAt(i)
		if occupied.Has(c) {
			continue
		}
		if pick == 0 {
			return c, nil
		}
		pick--
	}
	return core.Cell{}, ErrBoardFull
}
