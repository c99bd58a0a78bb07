package replay

import (
	"fmt"

	"github.com/younwookim/tilegrid/internal/application/session"
	"github.com/younwookim/tilegrid/internal/ecs"
)

// Summary is what a headless replay run ends with
type Summary struct {
	Ticks          int
	Transitions    int
	Level          int
	Cleared        bool
	GameOver       bool
	Health         int
	WallContacts   int
	EntityContacts int
}

// Run plays data through s from the recorded level. The session must have
// been created with the recording's seed.
func Run(s *session.Session, data ReplayData, dt float64) (Summary, error) {
	if s.Seed() != data.Seed {
		return Summary{}, fmt.Errorf("session seed %d does not match replay seed %d", s.Seed(), data.Seed)
	}
	if err := s.Start(data.Level); err != nil {
		return Summary{}, fmt.Errorf("failed to start replay: %w", err)
	}

	var sum Summary
	r := NewReplayer(data)
	for {
		in, ok := r.GetInput()
		if !ok {
			break
		}
		res := s.Step(in, dt)
		if res.Transition {
			sum.Transitions++
		}
		sum.WallContacts += res.Collisions.WallContacts
		sum.EntityContacts += res.Collisions.EntityContacts
		if res.Cleared || res.GameOver {
			break
		}
	}

	sum.Ticks = s.Tick()
	sum.Level = s.State().MapIndex
	sum.Cleared = s.Cleared()
	sum.GameOver = s.GameOver()
	if w := s.World(); w != nil {
		if h, ok := w.Health[w.PlayerID]; ok && w.PlayerID != 0 {
			sum.Health = h.Current
		}
	}
	return sum, nil
}

// Snapshot lists entity positions in registration order
func Snapshot(w *ecs.World) []string {
	ids := w.Entities()
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		p := w.Position[id]
		out = append(out, fmt.Sprintf("%d %s (%.3f, %.3f)", id, w.Kind[id], p.X, p.Y))
	}
	return out
}
