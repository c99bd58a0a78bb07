package entity

import (
	"math"

	"github.com/younwookim/tilegrid/internal/domain/geom"
)

// Grid is the parsed level, stored top-down (row 0 is the first line of the
// map file) in a single row-major buffer. World coordinates put the origin at
// the bottom-left corner with Y up.
type Grid struct {
	Width    int
	Height   int
	TileSize float64
	cells    []Cell
}

// NewGrid allocates a width x height grid of zero cells
func NewGrid(width, height int, tileSize float64) *Grid {
	return &Grid{
		Width:    width,
		Height:   height,
		TileSize: tileSize,
		cells:    make([]Cell, width*height),
	}
}

// InBounds reports whether (row, col) addresses a cell
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.Height && col >= 0 && col < g.Width
}

// OnBorder reports whether (row, col) is in the outermost ring
func (g *Grid) OnBorder(row, col int) bool {
	return row == 0 || col == 0 || row == g.Height-1 || col == g.Width-1
}

// At returns the cell at (row, col). Out of bounds reads as void.
func (g *Grid) At(row, col int) Cell {
	if !g.InBounds(row, col) {
		return Cell{Terrain: CodeVoid, Decoration: CodeNone}
	}
	return g.cells[row*g.Width+col]
}

// Ref returns a pointer into the buffer for in-place edits during loading
func (g *Grid) Ref(row, col int) *Cell {
	return &g.cells[row*g.Width+col]
}

func (g *Grid) Set(row, col int, c Cell) {
	g.cells[row*g.Width+col] = c
}

// IsSolid checks the terrain at (row, col). Out of bounds is solid.
func (g *Grid) IsSolid(row, col int) bool {
	return g.At(row, col).Solid()
}

// CellCenter returns the world position of a cell's center
func (g *Grid) CellCenter(row, col int) geom.Vec2 {
	return geom.Vec2{
		X: g.TileSize * (float64(col) + 0.5),
		Y: g.TileSize * (float64(g.Height-row) - 0.5),
	}
}

// CellBox returns the world-space footprint of a cell
func (g *Grid) CellBox(row, col int) geom.Box {
	left := float64(col) * g.TileSize
	bottom := float64(g.Height-row-1) * g.TileSize
	return geom.NewBox(left, bottom, left+g.TileSize, bottom+g.TileSize)
}

// CellAt maps a world position to (row, col). The result may be out of bounds.
func (g *Grid) CellAt(p geom.Vec2) (int, int) {
	col := int(math.Floor(p.X / g.TileSize))
	row := g.Height - 1 - int(math.Floor(p.Y/g.TileSize))
	return row, col
}

// WorldSize returns the level extent in world units
func (g *Grid) WorldSize() geom.Vec2 {
	return geom.Vec2{X: float64(g.Width) * g.TileSize, Y: float64(g.Height) * g.TileSize}
}

// SolidCount returns the number of solid cells
func (g *Grid) SolidCount() int {
	n := 0
	for _, c := range g.cells {
		if c.Solid() {
			n++
		}
	}
	return n
}
