package system

import (
	"github.com/younwookim/tilegrid/internal/domain/entity"
	"github.com/younwookim/tilegrid/internal/infrastructure/env"
)

// Neighbors is the 8-neighborhood of a cell as a bitmask.
// Rows grow downward, so E is the cell above and D the cell below:
//
//	C E H
//	B . G
//	A D F
type Neighbors uint8

const (
	NA Neighbors = 1 << iota
	NB
	NC
	ND
	NE
	NF
	NG
	NH
)

// neighborOffsets lists (drow, dcol) per bit, in bit order
var neighborOffsets = [8][2]int{
	{1, -1},  // A
	{0, -1},  // B
	{-1, -1}, // C
	{1, 0},   // D
	{-1, 0},  // E
	{1, 1},   // F
	{0, 1},   // G
	{-1, 1},  // H
}

// Has reports whether every bit in m is set
func (n Neighbors) Has(m Neighbors) bool { return n&m == m }

// Shape selects a pattern table
type Shape int

const (
	ShapeWall Shape = iota
	ShapeFloor
	ShapeRail
)

// Classify returns the variant for a neighborhood. Pure: same input, same output.
func Classify(shape Shape, n Neighbors) entity.Variant {
	switch shape {
	case ShapeWall:
		return ClassifyWall(n)
	case ShapeFloor:
		return ClassifyFloor(n)
	case ShapeRail:
		return ClassifyRail(n)
	default:
		return entity.VariantUnset
	}
}

// ClassifyWall uses all eight neighbors. Rules overlap; the first match wins.
func ClassifyWall(n Neighbors) entity.Variant {
	a, b, c, d := n.Has(NA), n.Has(NB), n.Has(NC), n.Has(ND)
	e, f, g, h := n.Has(NE), n.Has(NF), n.Has(NG), n.Has(NH)

	switch {
	case b && d && !e && g: // top edge
		return 2
	case !b && d && e && g: // left edge
		return 4
	case b && d && e && !g: // right edge
		return 6
	case b && !d && e && g: // bottom edge
		return 8
	case b && c && !d && e && !f && !g: // bottom right corner
		return 9
	case a && b && d && !e && !g && !h: // top right corner
		return 3
	case !b && !c && d && !e && f && g: // top left corner
		return 1
	case !a && !b && !d && e && g && h: // bottom left corner
		return 7
	case b && !c && d && e && g: // inner corner, bottom right
		return 11
	case b && d && e && g && !h: // inner corner, bottom left
		return 10
	case !a && b && d && e && g:
		return 12
	case b && d && e && !f && g:
		return 13
	case b && d && e && g: // fully enclosed
		return 5
	}
	return entity.VariantUnset
}

// ClassifyFloor only looks at the four cardinal neighbors
func ClassifyFloor(n Neighbors) entity.Variant {
	b, d, e, g := n.Has(NB), n.Has(ND), n.Has(NE), n.Has(NG)

	switch {
	case !b && d && !e && g:
		return 1
	case b && d && !e && g:
		return 2
	case b && d && !e && !g:
		return 3
	case !b && d && e && g:
		return 4
	case b && d && e && g:
		return 5
	case b && d && e && !g:
		return 6
	case !b && !d && e && g:
		return 7
	case b && !d && e && g:
		return 8
	case b && !d && e && !g:
		return 9
	}
	return entity.VariantUnset
}

// ClassifyRail only looks at the four cardinal neighbors
func ClassifyRail(n Neighbors) entity.Variant {
	b, d, e, g := n.Has(NB), n.Has(ND), n.Has(NE), n.Has(NG)

	switch {
	case !d && e && !b && !g:
		return 4
	case b && e:
		return 10
	case e && g:
		return 9
	case b && d:
		return 3
	case b && g:
		return 2
	case d && g:
		return 1
	case d || e:
		return 4
	}
	return entity.VariantUnset
}

// Neighborhood gathers the mask of neighbors matching pred. Callers must not
// pass border cells.
func Neighborhood(g *entity.Grid, row, col int, pred func(entity.Cell) bool) Neighbors {
	var n Neighbors
	for bit, off := range neighborOffsets {
		if pred(g.At(row+off[0], col+off[1])) {
			n |= 1 << bit
		}
	}
	return n
}

// ClassifyStats counts derived variants per table
type ClassifyStats struct {
	Walls  int
	Floors int
	Rails  int
}

// ClassifyGrid derives every unset variant in place. Border cells keep theirs.
func ClassifyGrid(g *entity.Grid) ClassifyStats {
	var stats ClassifyStats
	for row := 1; row < g.Height-1; row++ {
		for col := 1; col < g.Width-1; col++ {
			cell := g.Ref(row, col)

			if cell.TerrainVariant == entity.VariantUnset {
				switch {
				case cell.Terrain == entity.CodeWall:
					cell.TerrainVariant = ClassifyWall(Neighborhood(g, row, col, entity.Cell.Solid))
					stats.Walls++
				case entity.IsSmartFloor(cell.Terrain):
					code := cell.Terrain
					cell.TerrainVariant = ClassifyFloor(Neighborhood(g, row, col, func(c entity.Cell) bool {
						return c.Terrain == code
					}))
					stats.Floors++
				}
			}

			if cell.Decoration == entity.CodeRail && cell.DecorationVariant == entity.VariantUnset {
				cell.DecorationVariant = ClassifyRail(Neighborhood(g, row, col, func(c entity.Cell) bool {
					return c.Decoration == entity.CodeRail
				}))
				stats.Rails++
			}
		}
	}
	return stats
}

// Classifier runs ClassifyGrid with diagnostics
type Classifier struct {
	ctx *env.Context
}

// NewClassifier creates a classifier reporting through ctx
func NewClassifier(ctx *env.Context) *Classifier {
	return &Classifier{ctx: ctx}
}

// ClassifyGrid derives unset variants and logs the counts
func (c *Classifier) ClassifyGrid(g *entity.Grid) ClassifyStats {
	stats := ClassifyGrid(g)
	c.ctx.Debugf("classified %d walls, %d floors, %d rails", stats.Walls, stats.Floors, stats.Rails)
	return stats
}
