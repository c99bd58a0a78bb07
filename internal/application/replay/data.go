package replay

import "github.com/younwookim/tilegrid/internal/application/system"

// Version is written into every recording
const Version = "1.0"

// FrameInput records input state for a single tick
type FrameInput struct {
	F int  `json:"f"`           // Tick number
	L bool `json:"l,omitempty"` // Left
	R bool `json:"r,omitempty"` // Right
	U bool `json:"u,omitempty"` // Up
	D bool `json:"d,omitempty"` // Down
	A bool `json:"a,omitempty"` // Attack
}

// ReplayData contains all data needed to replay a session
type ReplayData struct {
	Version   string       `json:"version"`
	Seed      int64        `json:"seed"`
	Level     int          `json:"level"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}

// NewFrame converts one tick of input into its recorded form
func NewFrame(tick int, in system.InputState) FrameInput {
	return FrameInput{F: tick, L: in.Left, R: in.Right, U: in.Up, D: in.Down, A: in.Attack}
}

// Input converts a recorded tick back into input
func (f FrameInput) Input() system.InputState {
	return system.InputState{Left: f.L, Right: f.R, Up: f.U, Down: f.D, Attack: f.A}
}
