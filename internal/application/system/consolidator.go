package system

import (
	"github.com/younwookim/tilegrid/internal/domain/entity"
	"github.com/younwookim/tilegrid/internal/domain/geom"
)

// Consolidate merges solid cells into wall boxes in three independent passes:
//  1. each row, left to right: runs of two or more solid cells
//  2. each column, top to bottom: runs of two or more solid cells
//  3. solid cells with no solid cardinal neighbor
//
// Boxes from passes 1 and 2 may overlap. Both are kept.
func Consolidate(g *entity.Grid) *entity.WallSet {
	var boxes []geom.Box
	var passes []entity.MergePass

	emit := func(b geom.Box, p entity.MergePass) {
		boxes = append(boxes, b)
		passes = append(passes, p)
	}

	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; {
			if !g.IsSolid(row, col) {
				col++
				continue
			}
			end := col
			for end+1 < g.Width && g.IsSolid(row, end+1) {
				end++
			}
			if end > col {
				emit(g.CellBox(row, col).Union(g.CellBox(row, end)), entity.PassHorizontal)
			}
			col = end + 1
		}
	}

	for col := 0; col < g.Width; col++ {
		for row := 0; row < g.Height; {
			if !g.IsSolid(row, col) {
				row++
				continue
			}
			end := row
			for end+1 < g.Height && g.IsSolid(end+1, col) {
				end++
			}
			if end > row {
				emit(g.CellBox(row, col).Union(g.CellBox(end, col)), entity.PassVertical)
			}
			row = end + 1
		}
	}

	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			if g.IsSolid(row, col) && isOrphan(g, row, col) {
				emit(g.CellBox(row, col), entity.PassOrphan)
			}
		}
	}

	return entity.NewWallSet(boxes, passes)
}

// isOrphan treats the outside of the grid as open
func isOrphan(g *entity.Grid, row, col int) bool {
	for _, off := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		r, c := row+off[0], col+off[1]
		if g.InBounds(r, c) && g.IsSolid(r, c) {
			return false
		}
	}
	return true
}
