package config

import (
	"errors"
	"fmt"
)

// WorldConfig is the root config for world.json
type WorldConfig struct {
	Display    DisplayConfig `json:"display"`
	TileSize   float64       `json:"tileSize"`
	StartLevel int           `json:"startLevel"`
	Seed       int64         `json:"seed"` // 0 = time based
	Levels     []LevelConfig `json:"levels"`
}

type DisplayConfig struct {
	ScreenWidth  int    `json:"screenWidth"`
	ScreenHeight int    `json:"screenHeight"`
	Scale        int    `json:"scale"`
	Framerate    int    `json:"framerate"`
	Title        string `json:"title"`
}

// LevelConfig names the four map layers of one level
type LevelConfig struct {
	Name           string `json:"name"`
	Terrain        string `json:"terrain"`
	TerrainMask    string `json:"terrainMask"`
	Decoration     string `json:"decoration"`
	DecorationMask string `json:"decorationMask"`
}

// LevelFiles is the raw content of a level's four map layers
type LevelFiles struct {
	Name           string
	Terrain        []byte
	TerrainMask    []byte
	Decoration     []byte
	DecorationMask []byte
}

// Validate checks the manifest for values the loader cannot work with
func (w *WorldConfig) Validate() error {
	if w.TileSize <= 0 {
		return fmt.Errorf("tileSize must be positive, got %v", w.TileSize)
	}
	if len(w.Levels) == 0 {
		return errors.New("no levels")
	}
	if w.StartLevel < 0 || w.StartLevel >= len(w.Levels) {
		return fmt.Errorf("startLevel %d out of range [0, %d)", w.StartLevel, len(w.Levels))
	}
	for i, lvl := range w.Levels {
		if lvl.Terrain == "" || lvl.TerrainMask == "" || lvl.Decoration == "" || lvl.DecorationMask == "" {
			return fmt.Errorf("level %d (%s) is missing a map layer", i, lvl.Name)
		}
	}
	return nil
}

// Level returns the level at index
func (w *WorldConfig) Level(index int) (LevelConfig, bool) {
	if index < 0 || index >= len(w.Levels) {
		return LevelConfig{}, false
	}
	return w.Levels[index], true
}
