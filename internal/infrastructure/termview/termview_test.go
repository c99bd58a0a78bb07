package termview

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/tilegrid/internal/application/system"
	"github.com/younwookim/tilegrid/internal/domain/entity"
	"github.com/younwookim/tilegrid/internal/infrastructure/config"
)

var hall = []string{
	"WWWWW",
	"WPFlW",
	"WFBBW",
	"WFYOW",
	"WWWWW",
}

func layer(rows []string, fill string) []byte {
	out := make([]string, len(rows))
	for i, r := range rows {
		if fill == "" {
			out[i] = r
			continue
		}
		out[i] = strings.Repeat(fill, len(r))
	}
	return []byte(strings.Join(out, "\n") + "\n")
}

func loadHall(t *testing.T) *entity.Level {
	t.Helper()
	lvl, err := system.ParseMap(&config.LevelFiles{
		Name:           "hall",
		Terrain:        layer(hall, ""),
		TerrainMask:    layer(hall, "0"),
		Decoration:     layer(hall, "."),
		DecorationMask: layer(hall, "0"),
	}, entity.DirStart, 16)
	require.NoError(t, err)
	lvl.Name = "hall"
	return lvl
}

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("failed to init simulation screen: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func TestGlyph(t *testing.T) {
	tests := []struct {
		name string
		cell entity.Cell
		want rune
	}{
		{"wall", entity.Cell{Terrain: entity.CodeWall}, '#'},
		{"void", entity.Cell{Terrain: entity.CodeVoid}, ' '},
		{"floor", entity.Cell{Terrain: entity.CodeFloor, Decoration: entity.CodeNone}, '.'},
		{"moss", entity.Cell{Terrain: entity.CodeFloorMoss}, 'm'},
		{"rail", entity.Cell{Terrain: entity.CodeFloor, Decoration: entity.CodeRail}, '='},
		{"dormant entry", entity.Cell{Terrain: entity.CodeEntry}, 'y'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := Glyph(tt.cell)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestText_Terrain(t *testing.T) {
	want := strings.Join([]string{
		"#####",
		"#@.l#",
		"#.bb#",
		"#.yO#",
		"#####",
	}, "\n") + "\n"

	assert.Equal(t, want, Text(loadHall(t), ModeTerrain))
}

func TestText_Walls(t *testing.T) {
	lines := strings.Split(strings.TrimSuffix(Text(loadHall(t), ModeWalls), "\n"), "\n")
	require.Len(t, lines, 5)

	for _, line := range lines {
		assert.NotContains(t, line, "?", "every solid cell is covered by a box")
	}
	for _, r := range lines[0] {
		assert.Contains(t, "-|+", string(r))
	}
	assert.Equal(t, "   ", lines[2][1:4], "open cells stay blank")
}

func TestText_Variants(t *testing.T) {
	lines := strings.Split(strings.TrimSuffix(Text(loadHall(t), ModeVariant), "\n"), "\n")
	require.Len(t, lines, 5)

	for _, line := range lines {
		assert.Len(t, line, 5)
	}
	assert.Contains(t, "0123456789abcdef", lines[0][:1])
}

func TestViewer_Draw(t *testing.T) {
	screen := newScreen(t, 30, 8)
	v := New(screen)
	v.SetLevel(loadHall(t))
	v.Draw()

	mainc, _, _, _ := screen.GetContent(0, 0)
	assert.Equal(t, '#', mainc)
	mainc, _, _, _ = screen.GetContent(1, 1)
	assert.Equal(t, '@', mainc)
	mainc, _, style, _ := screen.GetContent(3, 1)
	assert.Equal(t, 'l', mainc)
	assert.Equal(t, styleSpawn, style)

	mainc, _, style, _ = screen.GetContent(1, 7)
	assert.Equal(t, 'h', mainc, "status line names the level")
	assert.Equal(t, styleStatus, style)
}

func TestViewer_DrawEmpty(t *testing.T) {
	screen := newScreen(t, 20, 4)
	v := New(screen)
	v.Draw()

	mainc, _, _, _ := screen.GetContent(0, 3)
	assert.Equal(t, 'n', mainc)
}

func TestViewer_Scroll(t *testing.T) {
	screen := newScreen(t, 30, 8)
	v := New(screen)
	v.SetLevel(loadHall(t))

	assert.Equal(t, ActionNone, v.HandleKey(tcell.KeyRight, 0))
	v.Draw()
	mainc, _, _, _ := screen.GetContent(0, 1)
	assert.Equal(t, '@', mainc)

	v.Scroll(100, 100)
	assert.Equal(t, 4, v.offX)
	assert.Equal(t, 4, v.offY)

	v.Scroll(-100, -100)
	assert.Zero(t, v.offX)
	assert.Zero(t, v.offY)

	v.Scroll(2, 0)
	v.SetLevel(loadHall(t))
	assert.Zero(t, v.offX, "a new level resets scrolling")
}

func TestViewer_HandleKey(t *testing.T) {
	v := New(newScreen(t, 10, 4))
	v.SetLevel(loadHall(t))

	assert.Equal(t, ActionQuit, v.HandleKey(tcell.KeyRune, 'q'))
	assert.Equal(t, ActionQuit, v.HandleKey(tcell.KeyEscape, 0))
	assert.Equal(t, ActionNext, v.HandleKey(tcell.KeyRune, 'n'))
	assert.Equal(t, ActionPrev, v.HandleKey(tcell.KeyRune, 'p'))

	require.Equal(t, ModeTerrain, v.Mode())
	v.HandleKey(tcell.KeyRune, 'm')
	assert.Equal(t, ModeVariant, v.Mode())
	v.HandleKey(tcell.KeyRune, 'm')
	assert.Equal(t, ModeWalls, v.Mode())
	v.HandleKey(tcell.KeyRune, 'm')
	assert.Equal(t, ModeTerrain, v.Mode())
}
