package system

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/tilegrid/internal/domain/entity"
	"github.com/younwookim/tilegrid/internal/domain/geom"
)

// rasterize marks every cell whose center lies in some wall box
func rasterize(g *entity.Grid, walls *entity.WallSet) [][]bool {
	covered := make([][]bool, g.Height)
	for row := range covered {
		covered[row] = make([]bool, g.Width)
		for col := range covered[row] {
			center := g.CellCenter(row, col)
			for _, b := range walls.Boxes() {
				if b.Contains(center) {
					covered[row][col] = true
					break
				}
			}
		}
	}
	return covered
}

func assertExactCover(t *testing.T, g *entity.Grid, walls *entity.WallSet) {
	t.Helper()
	covered := rasterize(g, walls)
	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			if g.IsSolid(row, col) {
				assert.True(t, covered[row][col], "solid cell (%d,%d) is not covered", row, col)
			} else {
				assert.False(t, covered[row][col], "open cell (%d,%d) is covered", row, col)
			}
		}
	}

	// Boxes snap to the tile lattice.
	for _, b := range walls.Boxes() {
		for _, v := range []float64{b.Min.X, b.Min.Y, b.Max.X, b.Max.Y} {
			assert.Zero(t, v-float64(int(v/g.TileSize))*g.TileSize, "box %+v is off the lattice", b)
		}
	}
}

func TestConsolidate_SingleCell(t *testing.T) {
	g := gridFrom(t, []string{
		"FFF",
		"FWF",
		"FFF",
	}, nil)

	walls := Consolidate(g)

	require.Equal(t, 1, walls.Len())
	assert.Equal(t, 1, walls.Count(entity.PassOrphan))
	assert.Equal(t, 0, walls.Count(entity.PassHorizontal))
	assert.Equal(t, 0, walls.Count(entity.PassVertical))
	assert.Equal(t, g.CellBox(1, 1), walls.Boxes()[0])
}

func TestConsolidate_HorizontalRun(t *testing.T) {
	g := gridFrom(t, []string{
		"FFFFFFF",
		"FWWWWWF",
		"FFFFFFF",
	}, nil)

	walls := Consolidate(g)

	require.Equal(t, 1, walls.Len())
	assert.Equal(t, entity.PassHorizontal, walls.Pass(0))
	assert.Equal(t, geom.NewBox(16, 16, 96, 32), walls.Boxes()[0])
}

func TestConsolidate_VerticalRun(t *testing.T) {
	g := gridFrom(t, []string{
		"FFF",
		"FXF",
		"FWF",
		"FWF",
		"FFF",
	}, nil)

	walls := Consolidate(g)

	require.Equal(t, 1, walls.Len())
	assert.Equal(t, entity.PassVertical, walls.Pass(0))
	assert.Equal(t, geom.NewBox(16, 16, 32, 64), walls.Boxes()[0])
}

func TestConsolidate_OverlappingPassesAreKept(t *testing.T) {
	// A plus sign: the center cell is covered by both merge passes.
	g := gridFrom(t, []string{
		"FFFFF",
		"FFWFF",
		"FWWWF",
		"FFWFF",
		"FFFFF",
	}, nil)

	walls := Consolidate(g)

	assert.Equal(t, 1, walls.Count(entity.PassHorizontal))
	assert.Equal(t, 1, walls.Count(entity.PassVertical))
	assert.Equal(t, 0, walls.Count(entity.PassOrphan))
	assert.True(t, walls.Boxes()[0].Overlaps(walls.Boxes()[1]))
	assertExactCover(t, g, walls)
}

func TestConsolidate_GridEdgeIsOpen(t *testing.T) {
	g := gridFrom(t, []string{
		"WFFW",
		"FFFF",
		"WFFF",
	}, nil)

	walls := Consolidate(g)

	assert.Equal(t, 3, walls.Count(entity.PassOrphan))
	assert.Equal(t, 3, walls.Len())
	assertExactCover(t, g, walls)
}

func TestConsolidate_BorderedRoom(t *testing.T) {
	g := gridFrom(t, []string{
		"WWWWWW",
		"WFFFFW",
		"WFWFFW",
		"WFFFFW",
		"WWWWWW",
	}, nil)

	walls := Consolidate(g)

	// top and bottom rows, left and right columns, one free-standing pillar
	assert.Equal(t, 2, walls.Count(entity.PassHorizontal))
	assert.Equal(t, 2, walls.Count(entity.PassVertical))
	assert.Equal(t, 1, walls.Count(entity.PassOrphan))
	assertExactCover(t, g, walls)
}

func TestConsolidate_RandomCoverage(t *testing.T) {
	rng := rand.New(rand.NewSource(2024))
	codes := []byte{entity.CodeWall, entity.CodeVoid, entity.CodeFloor, entity.CodeFloorBrown}

	for i := 0; i < 50; i++ {
		w, h := 1+rng.Intn(20), 1+rng.Intn(20)
		g := entity.NewGrid(w, h, 32)
		for row := 0; row < h; row++ {
			for col := 0; col < w; col++ {
				g.Set(row, col, entity.Cell{Terrain: codes[rng.Intn(len(codes))]})
			}
		}

		walls := Consolidate(g)
		assertExactCover(t, g, walls)

		for j := 0; j < walls.Len(); j++ {
			b := walls.Boxes()[j]
			cells := int(b.Width()/g.TileSize) * int(b.Height()/g.TileSize)
			if walls.Pass(j) == entity.PassOrphan {
				assert.Equal(t, 1, cells)
			} else {
				assert.GreaterOrEqual(t, cells, 2)
			}
		}
	}
}

func TestConsolidate_Empty(t *testing.T) {
	g := gridFrom(t, []string{"FF", "FF"}, nil)
	walls := Consolidate(g)
	assert.Equal(t, 0, walls.Len())
}

func BenchmarkConsolidate(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	g := entity.NewGrid(128, 96, 32)
	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			c := entity.CodeFloor
			if row == 0 || col == 0 || row == g.Height-1 || col == g.Width-1 || rng.Intn(4) == 0 {
				c = entity.CodeWall
			}
			g.Set(row, col, entity.Cell{Terrain: c})
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Consolidate(g)
	}
}
