package main

import (
	"fmt"
	"io"

	"github.com/younwookim/tilegrid/internal/application/replay"
	"github.com/younwookim/tilegrid/internal/application/session"
)

// runHeadless plays a recording through s without a window and writes a
// summary to out
func runHeadless(out io.Writer, s *session.Session, data *replay.ReplayData, framerate int) error {
	if framerate <= 0 {
		return fmt.Errorf("invalid framerate %d", framerate)
	}

	sum, err := replay.Run(s, *data, 1.0/float64(framerate))
	if err != nil {
		return err
	}

	outcome := "running"
	switch {
	case sum.Cleared:
		outcome = "cleared"
	case sum.GameOver:
		outcome = "game over"
	}

	_, err = fmt.Fprintf(out, "ticks=%d/%d level=%d transitions=%d health=%d outcome=%s wall_contacts=%d entity_contacts=%d\n",
		sum.Ticks, len(data.Frames), sum.Level, sum.Transitions, sum.Health, outcome, sum.WallContacts, sum.EntityContacts)
	return err
}
