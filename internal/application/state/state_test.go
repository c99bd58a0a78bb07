package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGameState_String(t *testing.T) {
	tests := []struct {
		state    GameState
		expected string
	}{
		{StatePlaying, "Playing"},
		{StatePaused, "Paused"},
		{StateGameOver, "GameOver"},
		{StateCleared, "Cleared"},
		{StateReplayDone, "ReplayDone"},
		{GameState(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.state.String())
		})
	}
}

func TestGameState_Finished(t *testing.T) {
	assert.False(t, StatePlaying.Finished())
	assert.False(t, StatePaused.Finished())
	assert.True(t, StateGameOver.Finished())
	assert.True(t, StateCleared.Finished())
	assert.True(t, StateReplayDone.Finished())
}
