package config

import "strings"

// Built-in level identifiers.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelExpert       = "expert"
)

// FindLevel looks up a level by id or display name, case-insensitively.
func (c SnakeConfig) FindLevel(name string) (Level, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, l := range c.Levels {
		if strings.ToLower(l.ID) == key || strings.ToLower(l.Name) == key {
			return l, true
		}
	}
	return Level{}, false
}

// DefaultLevel returns the first configured level, the slowest by convention.
func (c SnakeConfig) DefaultLevel() Level {
	if len(c.Levels) == 0 {
		return Level{}
	}
	return c.Levels[0]
}

// LevelIDs returns the configured level ids in order.
func (c SnakeConfig) LevelIDs() []string {
	ids := make([]string, len(c.Levels))
	for i, l := range c.Levels {
		ids[i] = l.ID
	}
	return ids
}
