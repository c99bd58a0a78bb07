package system

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/younwookim/tilegrid/internal/domain/entity"
	"github.com/younwookim/tilegrid/internal/infrastructure/config"
	"github.com/younwookim/tilegrid/internal/infrastructure/env"
)

var (
	ErrEmptyMap     = errors.New("map is empty")
	ErrEmptyRow     = errors.New("map has an empty row")
	ErrRaggedRow    = errors.New("map row length differs from the first row")
	ErrSizeMismatch = errors.New("map layers differ in size")
	ErrDirection    = errors.New("invalid entry direction")
)

var layerNames = [4]string{"terrain", "terrain mask", "decoration", "decoration mask"}

// arrival is the fixed marker table for one entry direction
type arrival struct {
	player byte // becomes the player start
	entry  bool // 'Y' becomes the entry portal
	clear  byte // replaced by floor, position dropped
}

var arrivals = map[entity.Direction]arrival{
	entity.DirStart:    {player: entity.CodePlayer, entry: false, clear: entity.CodeAltPlayer},
	entity.DirForward:  {player: entity.CodePlayer, entry: true, clear: entity.CodeAltPlayer},
	entity.DirBackward: {player: entity.CodeAltPlayer, entry: true, clear: entity.CodePlayer},
}

// ParseMap builds a fully classified and consolidated level from raw layers
func ParseMap(files *config.LevelFiles, dir entity.Direction, tileSize float64) (*entity.Level, error) {
	lvl, err := buildLevel(files, dir, tileSize)
	if err != nil {
		return nil, err
	}
	ClassifyGrid(lvl.Grid)
	lvl.Walls = Consolidate(lvl.Grid)
	return lvl, nil
}

// buildLevel validates the layers, fills the grid and resolves markers.
// Variants are left as authored.
func buildLevel(files *config.LevelFiles, dir entity.Direction, tileSize float64) (*entity.Level, error) {
	arr, ok := arrivals[dir]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrDirection, dir)
	}

	// sizes are compared as stored, so CRLF and LF layers never mix
	layers := [4][]byte{files.Terrain, files.TerrainMask, files.Decoration, files.DecorationMask}
	for i := 1; i < len(layers); i++ {
		if len(layers[i]) != len(layers[0]) {
			return nil, fmt.Errorf("%w: %s has %d bytes, %s has %d",
				ErrSizeMismatch, layerNames[0], len(layers[0]), layerNames[i], len(layers[i]))
		}
	}
	for i := range layers {
		layers[i] = stripCR(layers[i])
	}

	var rows [4][][]byte
	for i, buf := range layers {
		r, err := splitRows(buf)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", layerNames[i], err)
		}
		rows[i] = r
	}

	height, width := len(rows[0]), len(rows[0][0])
	for i := 1; i < len(rows); i++ {
		if len(rows[i]) != height || len(rows[i][0]) != width {
			return nil, fmt.Errorf("%w: %s is %dx%d, %s is %dx%d",
				ErrSizeMismatch, layerNames[0], width, height, layerNames[i], len(rows[i][0]), len(rows[i]))
		}
	}

	grid := entity.NewGrid(width, height, tileSize)
	lvl := &entity.Level{
		Name:      files.Name,
		Direction: dir,
		Grid:      grid,
	}

	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			c := rows[0][row][col]
			cell := entity.Cell{
				Terrain:           c,
				TerrainVariant:    entity.VariantFromMask(rows[1][row][col]),
				Decoration:        rows[2][row][col],
				DecorationVariant: entity.VariantFromMask(rows[3][row][col]),
			}
			pos := grid.CellCenter(row, col)

			if kind, ok := entity.SpawnKindForCode(c); ok {
				cell.Terrain = entity.CodeFloor
				lvl.Spawns = append(lvl.Spawns, entity.SpawnPoint{Kind: kind, Pos: pos, Row: row, Col: col})
			}

			switch {
			case c == arr.player:
				cell.Terrain = entity.CodeFloor
				lvl.Player, lvl.HasPlayer = pos, true
			case c == entity.CodeExit:
				cell.Terrain = entity.CodeFloor
				lvl.Exit, lvl.HasExit = pos, true
			case c == entity.CodeEntry && arr.entry:
				cell.Terrain = entity.CodeFloor
				lvl.Entry, lvl.HasEntry = pos, true
			case c == arr.clear:
				cell.Terrain = entity.CodeFloor
			}

			grid.Set(row, col, cell)
		}
	}

	return lvl, nil
}

// stripCR drops carriage returns so CRLF maps load like LF maps
func stripCR(buf []byte) []byte {
	if bytes.IndexByte(buf, '\r') < 0 {
		return buf
	}
	return bytes.ReplaceAll(buf, []byte{'\r'}, nil)
}

// splitRows splits on '\n'. A final terminator is optional.
func splitRows(buf []byte) ([][]byte, error) {
	buf = bytes.TrimSuffix(buf, []byte{'\n'})
	if len(buf) == 0 {
		return nil, ErrEmptyMap
	}

	lines := bytes.Split(buf, []byte{'\n'})
	width := len(lines[0])
	for i, line := range lines {
		if len(line) == 0 {
			return nil, fmt.Errorf("%w: line %d", ErrEmptyRow, i+1)
		}
		if len(line) != width {
			return nil, fmt.Errorf("%w: line %d has %d cells, want %d", ErrRaggedRow, i+1, len(line), width)
		}
	}
	return lines, nil
}

// LevelReader reads the raw layers of a level
type LevelReader interface {
	ReadLevel(level config.LevelConfig) (*config.LevelFiles, error)
}

// MapLoader owns the world state and the current level. Load errors are
// fatal and go through the context's abort hook.
type MapLoader struct {
	ctx        *env.Context
	reader     LevelReader
	world      *config.WorldConfig
	classifier *Classifier

	state entity.WorldState
	level *entity.Level
}

// NewMapLoader creates a loader for the levels listed in world
func NewMapLoader(ctx *env.Context, reader LevelReader, world *config.WorldConfig) *MapLoader {
	return &MapLoader{
		ctx:        ctx,
		reader:     reader,
		world:      world,
		classifier: NewClassifier(ctx),
		state:      entity.WorldState{TileSize: world.TileSize},
	}
}

// LoadMap builds a level from raw layers, keeping the current map index
func (l *MapLoader) LoadMap(files *config.LevelFiles, dir entity.Direction) *entity.Level {
	return l.load(files, dir, l.state.MapIndex)
}

// LoadLevel reads and builds the level at index
func (l *MapLoader) LoadLevel(index int, dir entity.Direction) *entity.Level {
	cfg, ok := l.world.Level(index)
	if !ok {
		l.ctx.Abort("level index %d out of range (%d levels)", index, len(l.world.Levels))
		return nil
	}

	files, err := l.reader.ReadLevel(cfg)
	if err != nil {
		l.ctx.Abort("%v", err)
		return nil
	}

	return l.load(files, dir, index)
}

func (l *MapLoader) load(files *config.LevelFiles, dir entity.Direction, index int) *entity.Level {
	// Drop the previous generation before building the next one.
	l.level = nil

	lvl, err := buildLevel(files, dir, l.world.TileSize)
	if err != nil {
		l.ctx.Abort("failed to load map %s: %v", files.Name, err)
		return nil
	}
	lvl.Index = index

	l.classifier.ClassifyGrid(lvl.Grid)
	lvl.Walls = Consolidate(lvl.Grid)

	l.level = lvl
	l.state = entity.WorldState{
		TileSize:  l.world.TileSize,
		WorldSize: lvl.Grid.WorldSize(),
		MapIndex:  index,
	}

	l.ctx.Printf("loaded %s (%dx%d, %s): %d spawns, %d wall boxes",
		lvl.Name, lvl.Grid.Width, lvl.Grid.Height, dir, len(lvl.Spawns), lvl.Walls.Len())
	l.ctx.Debugf("wall boxes: %d horizontal, %d vertical, %d orphan",
		lvl.Walls.Count(entity.PassHorizontal), lvl.Walls.Count(entity.PassVertical), lvl.Walls.Count(entity.PassOrphan))

	return lvl
}

// State returns the current world state
func (l *MapLoader) State() entity.WorldState {
	return l.state
}

// Level returns the most recently loaded level, or nil
func (l *MapLoader) Level() *entity.Level {
	return l.level
}

// LevelCount returns how many levels the manifest lists
func (l *MapLoader) LevelCount() int {
	return len(l.world.Levels)
}
