// Package game adapts a Scene stack to ebiten.Game.
package game

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/tilegrid/internal/application/scene"
)

// Game implements ebiten.Game and manages Scene transitions.
type Game struct {
	current scene.Scene
	screenW int
	screenH int
	dt      float64
	frames  int
	closed  bool
}

// New creates a Game and enters the initial scene
func New(initialScene scene.Scene, screenW, screenH int) *Game {
	g := &Game{
		current: initialScene,
		screenW: screenW,
		screenH: screenH,
		dt:      1.0 / 60.0,
	}
	g.current.OnEnter()
	return g
}

// Update runs one frame of the current scene and applies a scene change.
// scene.ErrQuit closes the game and stops ebiten without an error.
func (g *Game) Update() error {
	if g.closed {
		return ebiten.Termination
	}

	next, err := g.current.Update(g.dt)
	g.frames++
	if errors.Is(err, scene.ErrQuit) {
		g.Close()
		return ebiten.Termination
	}
	if err != nil {
		return err
	}

	if next != nil {
		g.current.OnExit()
		g.current = next
		g.current.OnEnter()
	}
	return nil
}

// Draw renders the current scene
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout returns the logical screen size whatever the window size
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}

// SetDT sets the fixed timestep handed to scenes, normally 1/framerate
func (g *Game) SetDT(dt float64) {
	g.dt = dt
}

// Frames returns how many updates have run
func (g *Game) Frames() int {
	return g.frames
}

// Close exits the current scene once. Safe to call after a quit.
func (g *Game) Close() {
	if g.closed {
		return
	}
	g.closed = true
	g.current.OnExit()
}
