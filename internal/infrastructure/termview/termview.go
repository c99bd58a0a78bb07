// Package termview draws a loaded level into a terminal, one character per tile.
package termview

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/younwookim/tilegrid/internal/domain/entity"
	"github.com/younwookim/tilegrid/internal/domain/geom"
)

// Mode selects what the terrain layer shows
type Mode int

const (
	ModeTerrain Mode = iota // glyph per terrain code
	ModeVariant             // variant digit per cell
	ModeWalls               // consolidated boxes by merge pass
)

func (m Mode) String() string {
	switch m {
	case ModeVariant:
		return "variants"
	case ModeWalls:
		return "walls"
	default:
		return "terrain"
	}
}

var (
	styleDefault = tcell.StyleDefault
	styleWall    = tcell.StyleDefault.Foreground(tcell.ColorSlateGray)
	styleFloor   = tcell.StyleDefault.Foreground(tcell.ColorDimGray)
	styleSmart   = tcell.StyleDefault.Foreground(tcell.ColorOliveDrab)
	styleRail    = tcell.StyleDefault.Foreground(tcell.ColorPeru)
	styleMarker  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleSpawn   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleStatus  = tcell.StyleDefault.Reverse(true)
)

var passGlyphs = map[entity.MergePass]rune{
	entity.PassHorizontal: '-',
	entity.PassVertical:   '|',
	entity.PassOrphan:     '+',
}

// Glyph returns the character and style for one cell in terrain mode
func Glyph(c entity.Cell) (rune, tcell.Style) {
	switch {
	case c.Terrain == entity.CodeVoid:
		return ' ', styleDefault
	case c.Terrain == entity.CodeWall:
		return '#', styleWall
	case entity.IsSmartFloor(c.Terrain):
		return rune(c.Terrain | 0x20), styleSmart // lower case
	case c.Decoration == entity.CodeRail:
		return '=', styleRail
	case c.Terrain == entity.CodeEntry:
		return 'y', styleFloor // dormant entry portal
	default:
		return '.', styleFloor
	}
}

// variantGlyph shows variants 0..15 as one hex digit
func variantGlyph(v entity.Variant) rune {
	return rune("0123456789abcdef"[v&0xf])
}

// Viewer renders one level at a time and scrolls over it
type Viewer struct {
	screen tcell.Screen
	level  *entity.Level
	mode   Mode
	offX   int
	offY   int
}

// New creates a viewer on an initialized screen
func New(screen tcell.Screen) *Viewer {
	return &Viewer{screen: screen}
}

// SetLevel replaces the level and resets scrolling
func (v *Viewer) SetLevel(lvl *entity.Level) {
	v.level = lvl
	v.offX, v.offY = 0, 0
}

// Mode returns the current display mode
func (v *Viewer) Mode() Mode {
	return v.mode
}

// CycleMode switches terrain -> variants -> walls -> terrain
func (v *Viewer) CycleMode() {
	v.mode = (v.mode + 1) % 3
}

// Scroll moves the view by whole tiles, keeping at least one row and column visible
func (v *Viewer) Scroll(dx, dy int) {
	if v.level == nil {
		return
	}
	v.offX = clamp(v.offX+dx, 0, v.level.Grid.Width-1)
	v.offY = clamp(v.offY+dy, 0, v.level.Grid.Height-1)
}

func clamp(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Draw renders the level and a status line, then shows the screen
func (v *Viewer) Draw() {
	v.screen.Clear()
	w, h := v.screen.Size()

	if v.level != nil {
		grid := v.level.Grid
		walls := v.wallPasses()
		markers := v.markers()

		for y := 0; y < h-1; y++ {
			row := y + v.offY
			if row >= grid.Height {
				break
			}
			for x := 0; x < w; x++ {
				col := x + v.offX
				if col >= grid.Width {
					break
				}
				r, st := v.cell(grid, row, col, walls, markers)
				v.screen.SetContent(x, y, r, nil, st)
			}
		}
	}

	v.drawStatus(w, h)
	v.screen.Show()
}

type marker struct {
	glyph rune
	style tcell.Style
}

func (v *Viewer) cell(grid *entity.Grid, row, col int, walls map[[2]int]entity.MergePass, markers map[[2]int]marker) (rune, tcell.Style) {
	if m, ok := markers[[2]int{row, col}]; ok {
		return m.glyph, m.style
	}

	c := grid.At(row, col)
	switch v.mode {
	case ModeVariant:
		if c.Terrain == entity.CodeVoid {
			return ' ', styleDefault
		}
		_, st := Glyph(c)
		return variantGlyph(c.TerrainVariant), st
	case ModeWalls:
		if p, ok := walls[[2]int{row, col}]; ok {
			return passGlyphs[p], styleWall
		}
		if c.Solid() {
			return '?', styleSpawn // solid cell not covered by any box
		}
		return ' ', styleDefault
	}
	return Glyph(c)
}

// wallPasses maps every cell covered by a wall box to the pass that emitted it
func (v *Viewer) wallPasses() map[[2]int]entity.MergePass {
	if v.mode != ModeWalls || v.level.Walls == nil {
		return nil
	}
	grid := v.level.Grid
	ts := grid.TileSize
	out := make(map[[2]int]entity.MergePass)
	for i, b := range v.level.Walls.Boxes() {
		c0, c1 := int(b.Min.X/ts), int(b.Max.X/ts)
		r0, r1 := grid.Height-int(b.Max.Y/ts), grid.Height-int(b.Min.Y/ts)
		for row := r0; row < r1; row++ {
			for col := c0; col < c1; col++ {
				out[[2]int{row, col}] = v.level.Walls.Pass(i)
			}
		}
	}
	return out
}

// markers places the player, portals and unconsumed spawn points
func (v *Viewer) markers() map[[2]int]marker {
	lvl := v.level
	grid := lvl.Grid
	out := make(map[[2]int]marker)
	at := func(pos [2]int, m marker) { out[pos] = m }
	cellOf := func(p geom.Vec2) [2]int {
		row, col := grid.CellAt(p)
		return [2]int{row, col}
	}

	for _, sp := range lvl.Spawns {
		at([2]int{sp.Row, sp.Col}, marker{rune(sp.Kind.Code()), styleSpawn})
	}
	if lvl.HasExit {
		at(cellOf(lvl.Exit), marker{'O', styleMarker})
	}
	if lvl.HasEntry {
		at(cellOf(lvl.Entry), marker{'Y', styleMarker})
	}
	if lvl.HasPlayer {
		at(cellOf(lvl.Player), marker{'@', styleMarker})
	}
	return out
}

func (v *Viewer) drawStatus(w, h int) {
	status := "no level"
	if lvl := v.level; lvl != nil && lvl.Walls != nil {
		status = fmt.Sprintf(" %s [%d] %dx%d %s | boxes h%d v%d o%d | mode %s (m) | arrows scroll | n/p level | q quit",
			lvl.Name, lvl.Index, lvl.Grid.Width, lvl.Grid.Height, lvl.Direction,
			lvl.Walls.Count(entity.PassHorizontal), lvl.Walls.Count(entity.PassVertical), lvl.Walls.Count(entity.PassOrphan),
			v.mode)
	}
	x := 0
	for _, r := range status {
		if x >= w {
			break
		}
		v.screen.SetContent(x, h-1, r, nil, styleStatus)
		x++
	}
	for ; x < w; x++ {
		v.screen.SetContent(x, h-1, ' ', nil, styleStatus)
	}
}

// Text renders the level as plain lines in the given mode, without a screen
func Text(lvl *entity.Level, mode Mode) string {
	v := &Viewer{level: lvl, mode: mode}
	walls := v.wallPasses()
	markers := v.markers()

	var b strings.Builder
	for row := 0; row < lvl.Grid.Height; row++ {
		for col := 0; col < lvl.Grid.Width; col++ {
			r, _ := v.cell(lvl.Grid, row, col, walls, markers)
			b.WriteRune(r)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Action is what a key asks the caller to do beyond redrawing
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionNext
	ActionPrev
)

// HandleEvent applies navigation keys to the view and reports level or quit requests
func (v *Viewer) HandleEvent(ev tcell.Event) Action {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return v.HandleKey(ev.Key(), ev.Rune())
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return ActionNone
}

// HandleKey is HandleEvent for a decoded key
func (v *Viewer) HandleKey(key tcell.Key, r rune) Action {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyUp:
		v.Scroll(0, -1)
	case tcell.KeyDown:
		v.Scroll(0, 1)
	case tcell.KeyLeft:
		v.Scroll(-1, 0)
	case tcell.KeyRight:
		v.Scroll(1, 0)
	case tcell.KeyRune:
		switch r {
		case 'q':
			return ActionQuit
		case 'm':
			v.CycleMode()
		case 'n':
			return ActionNext
		case 'p':
			return ActionPrev
		}
	}
	return ActionNone
}
