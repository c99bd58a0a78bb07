// Package scene defines the Scene interface for game screens.
package scene

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrQuit is returned by Update to end the game loop normally
var ErrQuit = errors.New("quit")

// Scene is one screen of the game. The game loop delegates Update and Draw
// to the current scene.
type Scene interface {
	// Update advances the scene by dt seconds. A non-nil next scene replaces
	// this one. Any error other than ErrQuit terminates the game with that error.
	Update(dt float64) (next Scene, err error)

	Draw(screen *ebiten.Image)

	// OnEnter is called every time the scene becomes current
	OnEnter()

	// OnExit is called when the scene is replaced or the game closes
	OnExit()
}
