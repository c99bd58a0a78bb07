package system

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/tilegrid/internal/domain/geom"
)

// mockKeys reports a fixed set of held and freshly pressed keys
type mockKeys struct {
	held    map[ebiten.Key]bool
	pressed map[ebiten.Key]bool
}

func (m mockKeys) IsKeyPressed(k ebiten.Key) bool     { return m.held[k] }
func (m mockKeys) IsKeyJustPressed(k ebiten.Key) bool { return m.pressed[k] }

func TestNewInputSystem(t *testing.T) {
	sys := NewInputSystem()

	require.NotNil(t, sys)
	assert.Equal(t, DefaultKeyBindings(), sys.bindings)
}

func TestInputSystem_GetInput(t *testing.T) {
	tests := []struct {
		name    string
		held    []ebiten.Key
		pressed []ebiten.Key
		want    InputState
	}{
		{"nothing", nil, nil, InputState{}},
		{"wasd", []ebiten.Key{ebiten.KeyW, ebiten.KeyD}, nil, InputState{Up: true, Right: true}},
		{"arrows", []ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyArrowLeft}, nil, InputState{Down: true, Left: true}},
		{"attack needs a fresh press", []ebiten.Key{ebiten.KeySpace}, nil, InputState{}},
		{"attack", nil, []ebiten.Key{ebiten.KeyJ}, InputState{Attack: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keys := mockKeys{held: map[ebiten.Key]bool{}, pressed: map[ebiten.Key]bool{}}
			for _, k := range tt.held {
				keys.held[k] = true
			}
			for _, k := range tt.pressed {
				keys.pressed[k] = true
			}

			sys := NewInputSystemWithKeys(keys, DefaultKeyBindings())
			assert.Equal(t, tt.want, sys.GetInput())
		})
	}
}

func TestInputState_Direction(t *testing.T) {
	tests := []struct {
		in   InputState
		want geom.Vec2
	}{
		{InputState{}, geom.V(0, 0)},
		{InputState{Up: true}, geom.V(0, 1)},
		{InputState{Down: true, Right: true}, geom.V(1, -1)},
		{InputState{Left: true, Right: true}, geom.V(0, 0)},
		{InputState{Up: true, Down: true, Left: true}, geom.V(-1, 0)},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.in.Direction(), "%+v", tt.in)
	}
	assert.True(t, InputState{}.IsZero())
	assert.False(t, InputState{Attack: true}.IsZero())
}
