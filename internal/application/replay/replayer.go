package replay

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/younwookim/tilegrid/internal/application/system"
)

// Replayer feeds recorded input back one tick at a time
type Replayer struct {
	data  ReplayData
	frame int
}

func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{data: data}
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return DecodeReplay(file)
}

// DecodeReplay reads replay data from r. Frames must hold exactly one input
// per tick, numbered from 0.
func DecodeReplay(r io.Reader) (*ReplayData, error) {
	var data ReplayData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}
	if data.Version != Version {
		return nil, fmt.Errorf("unsupported replay version %q", data.Version)
	}
	for i, f := range data.Frames {
		if f.F != i {
			return nil, fmt.Errorf("frame %d is numbered %d: ticks must be consecutive from 0", i, f.F)
		}
	}
	return &data, nil
}

// GetInput returns the next tick's input. false once the recording is exhausted.
func (r *Replayer) GetInput() (system.InputState, bool) {
	if r.frame >= len(r.data.Frames) {
		return system.InputState{}, false
	}

	fi := r.data.Frames[r.frame]
	r.frame++
	return fi.Input(), true
}

// CurrentFrame returns how many ticks have been played back
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the recording length in ticks
func (r *Replayer) TotalFrames() int {
	return len(r.data.Frames)
}

// Seed returns the drop generator seed the recording was made with
func (r *Replayer) Seed() int64 {
	return r.data.Seed
}

// Level returns the level the recording started on
func (r *Replayer) Level() int {
	return r.data.Level
}

// Reset rewinds to the first tick
func (r *Replayer) Reset() {
	r.frame = 0
}

// CreateTestReplayData builds a recording that holds in for every tick
func CreateTestReplayData(frames int, in system.InputState) ReplayData {
	data := ReplayData{
		Version:   Version,
		Seed:      12345,
		Level:     0,
		StartTime: time.Now().Format(time.RFC3339),
		Frames:    make([]FrameInput, frames),
	}

	for i := 0; i < frames; i++ {
		data.Frames[i] = NewFrame(i, in)
	}

	return data
}
