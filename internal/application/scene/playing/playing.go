// Package playing provides the main gameplay scene.
package playing

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/younwookim/tilegrid/internal/application/replay"
	"github.com/younwookim/tilegrid/internal/application/scene"
	"github.com/younwookim/tilegrid/internal/application/session"
	"github.com/younwookim/tilegrid/internal/application/state"
	"github.com/younwookim/tilegrid/internal/application/system"
	"github.com/younwookim/tilegrid/internal/domain/entity"
	"github.com/younwookim/tilegrid/internal/domain/geom"
	"github.com/younwookim/tilegrid/internal/ecs"
)

// Colors for rendering
var (
	colorBG       = color.RGBA{26, 26, 46, 255}
	colorWall     = color.RGBA{80, 80, 100, 255}
	colorFloor    = color.RGBA{44, 44, 60, 255}
	colorBrown    = color.RGBA{90, 64, 40, 255}
	colorMoss     = color.RGBA{50, 80, 50, 255}
	colorGrass    = color.RGBA{60, 110, 50, 255}
	colorCobble   = color.RGBA{90, 90, 90, 255}
	colorRail     = color.RGBA{150, 120, 70, 255}
	colorBoxH     = color.RGBA{255, 200, 0, 255}
	colorBoxV     = color.RGBA{0, 200, 255, 255}
	colorBoxO     = color.RGBA{255, 0, 200, 255}
	colorPlayer   = color.RGBA{100, 200, 100, 255}
	colorEnemy    = color.RGBA{200, 100, 100, 255}
	colorHazard   = color.RGBA{200, 50, 50, 255}
	colorBullet   = color.RGBA{255, 100, 100, 255}
	colorSword    = color.RGBA{220, 220, 255, 255}
	colorPotion   = color.RGBA{255, 80, 160, 255}
	colorExit     = color.RGBA{255, 215, 0, 255}
	colorEntry    = color.RGBA{120, 160, 255, 255}
	colorHealthBG = color.RGBA{60, 60, 60, 255}
	colorHealthFG = color.RGBA{100, 200, 100, 255}
)

// Options configures a Playing scene
type Options struct {
	// RecordPath enables input recording. Saved on game over, clear and F5.
	RecordPath string
	// Replay plays recorded input instead of reading the keyboard
	Replay *replay.ReplayData
	// Keys overrides the keyboard (tests)
	Keys system.KeySource
	// ShowWalls starts with the wall box overlay on (F1 toggles it)
	ShowWalls bool
}

// Playing is the main gameplay scene
type Playing struct {
	session     *session.Session
	state       state.GameState
	keys        system.KeySource
	inputSystem *system.InputSystem
	screenW     int
	screenH     int
	startLevel  int
	showWalls   bool
	last        session.StepResult

	// Input recording and playback
	recorder       *replay.Recorder
	recordFilename string
	replayData     *replay.ReplayData
	replayer       *replay.Replayer
}

// New creates a Playing scene and starts the session on startLevel.
// A replay starts on its recorded level instead.
func New(s *session.Session, screenW, screenH, startLevel int, opts Options) (*Playing, error) {
	keys := opts.Keys
	if keys == nil {
		keys = system.Keyboard()
	}

	p := &Playing{
		session:        s,
		state:          state.StatePlaying,
		keys:           keys,
		inputSystem:    system.NewInputSystemWithKeys(keys, system.DefaultKeyBindings()),
		screenW:        screenW,
		screenH:        screenH,
		startLevel:     startLevel,
		showWalls:      opts.ShowWalls,
		recordFilename: opts.RecordPath,
		replayData:     opts.Replay,
	}
	if opts.Replay != nil {
		p.startLevel = opts.Replay.Level
	}

	if err := p.start(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Playing) start() error {
	if err := p.session.Start(p.startLevel); err != nil {
		return err
	}
	p.state = state.StatePlaying
	p.last = session.StepResult{Level: p.startLevel}

	if p.replayData != nil {
		p.replayer = replay.NewReplayer(*p.replayData)
	}
	if p.recordFilename != "" {
		p.recorder = replay.NewRecorder(p.session.Seed(), p.startLevel)
		log.Printf("Recording enabled: %s (seed: %d)", p.recordFilename, p.session.Seed())
	}
	return nil
}

// OnEnter is called when the scene becomes active
func (p *Playing) OnEnter() {
	lvl := p.session.Level()
	log.Printf("Playing %s (level %d, %d wall boxes)", lvl.Name, lvl.Index, lvl.Walls.Len())
}

// OnExit is called when leaving the scene
func (p *Playing) OnExit() {
	p.saveRecording()
}

// Update proceeds the game state (implements scene.Scene)
func (p *Playing) Update(dt float64) (scene.Scene, error) {
	if p.keys.IsKeyJustPressed(ebiten.KeyF1) {
		p.showWalls = !p.showWalls
	}

	// Q quits from any screen that is not mid-game
	if p.state != state.StatePlaying && p.keys.IsKeyJustPressed(ebiten.KeyQ) {
		return nil, scene.ErrQuit
	}

	switch p.state {
	case state.StatePlaying:
		p.updatePlaying(dt)
	case state.StatePaused:
		if p.keys.IsKeyJustPressed(ebiten.KeyEscape) {
			p.state = state.StatePlaying
		}
	case state.StateGameOver, state.StateCleared, state.StateReplayDone:
		if p.keys.IsKeyJustPressed(ebiten.KeyZ) || p.keys.IsKeyJustPressed(ebiten.KeySpace) {
			if err := p.restart(); err != nil {
				return nil, err
			}
		}
	}

	return nil, nil // nil = stay on this scene
}

func (p *Playing) updatePlaying(dt float64) {
	if p.keys.IsKeyJustPressed(ebiten.KeyEscape) {
		p.state = state.StatePaused
		return
	}

	// F5: Save recording manually
	if p.keys.IsKeyJustPressed(ebiten.KeyF5) && p.recorder != nil {
		p.saveRecording()
	}

	var input system.InputState
	if p.replayer != nil {
		in, ok := p.replayer.GetInput()
		if !ok {
			p.state = state.StateReplayDone
			log.Printf("Replay finished after %d ticks", p.replayer.TotalFrames())
			return
		}
		input = in
	} else {
		input = p.inputSystem.GetInput()
	}

	if p.recorder != nil {
		p.recorder.RecordFrame(input)
	}

	p.last = p.session.Step(input, dt)

	switch {
	case p.last.GameOver:
		p.state = state.StateGameOver
		p.saveRecording()
	case p.last.Cleared:
		p.state = state.StateCleared
		p.saveRecording()
	}
}

// saveRecording saves the current recording to file
func (p *Playing) saveRecording() {
	if p.recorder == nil || p.recorder.FrameCount() == 0 {
		return
	}

	filename := p.recordFilename
	if filename == "" {
		filename = replay.GenerateFilename()
	}

	if err := p.recorder.Save(filename); err != nil {
		log.Printf("Failed to save recording: %v", err)
	} else {
		log.Printf("Recording saved: %s (%d frames)", filename, p.recorder.FrameCount())
	}
}

func (p *Playing) restart() error {
	p.saveRecording()
	return p.start()
}

// State returns the scene's current state
func (p *Playing) State() state.GameState {
	return p.state
}

// Session returns the simulation the scene drives
func (p *Playing) Session() *session.Session {
	return p.session
}

// Draw renders the game screen
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	lvl := p.session.Level()
	w := p.session.World()
	if lvl == nil || w == nil {
		return
	}

	focus, ok := w.GetPlayerPosition()
	if !ok {
		focus = lvl.Player
	}
	view := newView(focus, lvl.Grid.WorldSize(), p.screenW, p.screenH)

	p.drawTiles(screen, lvl.Grid, view)
	if p.showWalls {
		p.drawWalls(screen, lvl.Walls, view)
	}
	p.drawEntities(screen, w, view)
	p.drawUI(screen, w)

	switch p.state {
	case state.StatePaused:
		p.drawOverlay(screen, color.RGBA{0, 0, 0, 128}, "PAUSED\n\nPress ESC to resume, Q to quit")
	case state.StateGameOver:
		p.drawOverlay(screen, color.RGBA{100, 0, 0, 180}, "GAME OVER\n\nPress Z to restart, Q to quit")
	case state.StateCleared:
		p.drawOverlay(screen, color.RGBA{0, 60, 0, 180}, "ALL LEVELS CLEARED\n\nPress Z to restart, Q to quit")
	case state.StateReplayDone:
		p.drawOverlay(screen, color.RGBA{0, 0, 60, 180}, "REPLAY FINISHED\n\nPress Z to watch again, Q to quit")
	}
}

func (p *Playing) drawTiles(screen *ebiten.Image, g *entity.Grid, v view) {
	ts := float32(g.TileSize)
	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			cell := g.At(row, col)
			box := g.CellBox(row, col)
			x, y := v.toScreen(geom.V(box.Min.X, box.Max.Y))
			if x+ts < 0 || y+ts < 0 || x > float32(p.screenW) || y > float32(p.screenH) {
				continue
			}

			if c, ok := terrainColor(cell); ok {
				vector.DrawFilledRect(screen, x, y, ts, ts, c, false)
			}
			if cell.Decoration == entity.CodeRail {
				vector.DrawFilledRect(screen, x, y+ts/2-1, ts, 2, colorRail, false)
			}
		}
	}
}

// terrainColor picks the fill of a cell. Voids are never drawn.
func terrainColor(cell entity.Cell) (color.RGBA, bool) {
	var c color.RGBA
	switch cell.Terrain {
	case entity.CodeVoid:
		return color.RGBA{}, false
	case entity.CodeWall:
		c = colorWall
	case entity.CodeFloorBrown:
		c = colorBrown
	case entity.CodeFloorMoss:
		c = colorMoss
	case entity.CodeFloorGrass:
		c = colorGrass
	case entity.CodeFloorCobble:
		c = colorCobble
	default:
		c = colorFloor
	}
	return shade(c, cell.TerrainVariant), true
}

// shade brightens a color a little per variant so edge pieces are visible
func shade(c color.RGBA, v entity.Variant) color.RGBA {
	lift := func(x uint8) uint8 {
		n := int(x) + int(v)*5
		if n > 255 {
			return 255
		}
		return uint8(n)
	}
	return color.RGBA{lift(c.R), lift(c.G), lift(c.B), c.A}
}

func (p *Playing) drawWalls(screen *ebiten.Image, walls *entity.WallSet, v view) {
	for i, b := range walls.Boxes() {
		x, y := v.toScreen(geom.V(b.Min.X, b.Max.Y))
		c := colorBoxO
		switch walls.Pass(i) {
		case entity.PassHorizontal:
			c = colorBoxH
		case entity.PassVertical:
			c = colorBoxV
		}
		vector.StrokeRect(screen, x, y, float32(b.Width()), float32(b.Height()), 1, c, false)
	}
}

func (p *Playing) drawEntities(screen *ebiten.Image, w *ecs.World, v view) {
	for _, id := range w.Entities() {
		col, ok := w.Collider[id]
		if !ok {
			continue
		}
		x, y := v.toScreen(w.Position[id])
		c := kindColor(w.Kind[id])

		// Blink while invulnerable
		if h, ok := w.Health[id]; ok && h.Iframe > 0 && h.Iframe%8 < 4 {
			c.A = 96
		}

		r := float32(col.Radius)
		if w.Kind[id].IsPortal() {
			vector.StrokeCircle(screen, x, y, r, 2, c, false)
			continue
		}
		vector.DrawFilledCircle(screen, x, y, r, c, false)
	}
}

func kindColor(k ecs.Kind) color.RGBA {
	switch {
	case k == ecs.KindPlayer:
		return colorPlayer
	case k == ecs.KindSpikes:
		return colorHazard
	case k.IsEnemy():
		return colorEnemy
	case k == ecs.KindBullet:
		return colorBullet
	case k == ecs.KindSword:
		return colorSword
	case k == ecs.KindHealthPotion:
		return colorPotion
	case k == ecs.KindExitPortal:
		return colorExit
	case k == ecs.KindEntryPortal:
		return colorEntry
	}
	return colorFloor
}

func (p *Playing) drawUI(screen *ebiten.Image, w *ecs.World) {
	// Health bar
	barX := float32(10)
	barY := float32(p.screenH - 20)
	barW := float32(100)
	barH := float32(10)

	vector.DrawFilledRect(screen, barX, barY, barW, barH, colorHealthBG, false)
	if h, ok := w.Health[w.PlayerID]; ok && h.Max > 0 {
		ratio := float32(h.Current) / float32(h.Max)
		if ratio < 0 {
			ratio = 0
		}
		vector.DrawFilledRect(screen, barX, barY, barW*ratio, barH, colorHealthFG, false)
	}

	st := p.session.State()
	status := fmt.Sprintf("Level %d  Tick %d  Enemies %d", st.MapIndex, p.session.Tick(), w.CountEnemies())
	ebitenutil.DebugPrintAt(screen, status, 10, p.screenH-35)

	help := "WASD/Arrows: Move | Space/J: Attack | F1: Walls | ESC: Pause"
	if p.replayer != nil {
		help = fmt.Sprintf("REPLAY %d/%d", p.replayer.CurrentFrame(), p.replayer.TotalFrames())
	}
	ebitenutil.DebugPrint(screen, help)
}

func (p *Playing) drawOverlay(screen *ebiten.Image, c color.RGBA, text string) {
	vector.DrawFilledRect(screen, 0, 0, float32(p.screenW), float32(p.screenH), c, false)
	ebitenutil.DebugPrintAt(screen, text, p.screenW/2-60, p.screenH/2-30)
}
