package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/tilegrid/internal/domain/geom"
)

// KeySource reports keyboard state
type KeySource interface {
	IsKeyPressed(key ebiten.Key) bool
	IsKeyJustPressed(key ebiten.Key) bool
}

// ebitenKeys reads the live keyboard
type ebitenKeys struct{}

func (ebitenKeys) IsKeyPressed(key ebiten.Key) bool     { return ebiten.IsKeyPressed(key) }
func (ebitenKeys) IsKeyJustPressed(key ebiten.Key) bool { return inpututil.IsKeyJustPressed(key) }

// Keyboard returns the live keyboard as a key source
func Keyboard() KeySource { return ebitenKeys{} }

// KeyBindings maps actions to keys. Any key of a list triggers the action.
type KeyBindings struct {
	Up     []ebiten.Key
	Down   []ebiten.Key
	Left   []ebiten.Key
	Right  []ebiten.Key
	Attack []ebiten.Key
}

// DefaultKeyBindings uses WASD and the arrow keys, space or J to attack
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		Up:     []ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp},
		Down:   []ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown},
		Left:   []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft},
		Right:  []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight},
		Attack: []ebiten.Key{ebiten.KeySpace, ebiten.KeyJ},
	}
}

// InputSystem handles player input
type InputSystem struct {
	keys     KeySource
	bindings KeyBindings
}

// NewInputSystem creates an input system reading the keyboard
func NewInputSystem() *InputSystem {
	return NewInputSystemWithKeys(Keyboard(), DefaultKeyBindings())
}

// NewInputSystemWithKeys creates an input system over any key source
func NewInputSystemWithKeys(keys KeySource, bindings KeyBindings) *InputSystem {
	return &InputSystem{keys: keys, bindings: bindings}
}

// InputState holds the input for one tick
type InputState struct {
	Up     bool `json:"u,omitempty"`
	Down   bool `json:"d,omitempty"`
	Left   bool `json:"l,omitempty"`
	Right  bool `json:"r,omitempty"`
	Attack bool `json:"a,omitempty"`
}

// GetInput reads the current input state
func (s *InputSystem) GetInput() InputState {
	return InputState{
		Up:     s.anyKey(s.bindings.Up, s.keys.IsKeyPressed),
		Down:   s.anyKey(s.bindings.Down, s.keys.IsKeyPressed),
		Left:   s.anyKey(s.bindings.Left, s.keys.IsKeyPressed),
		Right:  s.anyKey(s.bindings.Right, s.keys.IsKeyPressed),
		Attack: s.anyKey(s.bindings.Attack, s.keys.IsKeyJustPressed),
	}
}

func (s *InputSystem) anyKey(keys []ebiten.Key, test func(ebiten.Key) bool) bool {
	for _, k := range keys {
		if test(k) {
			return true
		}
	}
	return false
}

// Direction returns the movement direction in world space (y up).
// Opposite keys cancel. The result is not normalized.
func (in InputState) Direction() geom.Vec2 {
	var d geom.Vec2
	if in.Left {
		d.X--
	}
	if in.Right {
		d.X++
	}
	if in.Up {
		d.Y++
	}
	if in.Down {
		d.Y--
	}
	return d
}

// IsZero reports whether nothing is pressed
func (in InputState) IsZero() bool {
	return in == InputState{}
}
