package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the default snake configuration.
// An 800x600 canvas with 25px tiles gives a 32x24 grid.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Board: BoardConfig{
			CanvasWidth:  800,
			CanvasHeight: 600,
			TileSize:     25,
		},
		Snake: StartConfig{
			StartX:        10,
			StartY:        12,
			InitialLength: 3,
			Direction:     "right",
		},
		Scoring: ScoringConfig{
			Award: 10,
		},
		Levels: []Level{
			{ID: LevelBeginner, Name: "Beginner", TickMS: 150},
			{ID: LevelIntermediate, Name: "Intermediate", TickMS: 100},
			{ID: LevelExpert, Name: "Expert", TickMS: 70},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultSnakeYAML
}
