package snake

import (
	"testing"

	"github.com/vovakirdan/tui-snake/internal/core"
)

func TestAutopilot(t *testing.T) {
	grid := core.GridOf(10, 10)

	tests := []struct {
		name     string
		snap     Snapshot
		expected core.Direction
	}{
		{
			name: "heads to food",
			snap: Snapshot{
				Grid: grid, Direction: core.DirRight,
				Snake: []core.Cell{{X: 5, Y: 5}, {X: 4, Y: 5}}, Food: core.Cell{X: 5, Y: 1}, HasFood: true,
			},
			expected: core.DirUp,
		},
		{
			name: "keeps heading on ties",
			snap: Snapshot{
				Grid: grid, Direction: core.DirRight,
				Snake: []core.Cell{{X: 5, Y: 5}, {X: 4, Y: 5}}, Food: core.Cell{X: 6, Y: 6}, HasFood: true,
			},
			expected: core.DirRight,
		},
		{
			name: "avoids the wall",
			snap: Snapshot{
				Grid: grid, Direction: core.DirRight,
				Snake: []core.Cell{{X: 9, Y: 5}, {X: 8, Y: 5}}, Food: core.Cell{X: 9, Y: 9}, HasFood: true,
			},
			expected: core.DirDown,
		},
		{
			name: "avoids its body",
			snap: Snapshot{
				Grid: grid, Direction: core.DirUp,
				Snake: []core.Cell{{X: 5, Y: 5}, {X: 5, Y: 6}, {X: 4, Y: 6}, {X: 4, Y: 5}, {X: 4, Y: 4}, {X: 4, Y: 3}},
				Food:  core.Cell{X: 0, Y: 5}, HasFood: true,
			},
			expected: core.DirUp,
		},
		{
			name: "may chase its tail",
			snap: Snapshot{
				Grid: grid, Direction: core.DirUp,
				Snake: []core.Cell{{X: 5, Y: 5}, {X: 6, Y: 5}, {X: 6, Y: 6}, {X: 5, Y: 6}, {X: 4, Y: 6}, {X: 4, Y: 5}},
				Food:  core.Cell{X: 0, Y: 5}, HasFood: true,
			},
			expected: core.DirLeft,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Autopilot(tc.snap); got != tc.expected {
				t.Errorf("Autopilot() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestAutopilotEmptySnapshot(t *testing.T) {
	if got := Autopilot(Snapshot{Direction: core.DirLeft}); got != core.DirLeft {
		t.Errorf("Autopilot() = %v, expected the current direction", got)
	}
}
