package entity

import "github.com/younwookim/tilegrid/internal/domain/geom"

// Level is everything one map load produces
type Level struct {
	Name      string
	Index     int
	Direction Direction

	Grid   *Grid
	Walls  *WallSet
	Spawns []SpawnPoint

	Player geom.Vec2
	Entry  geom.Vec2
	Exit   geom.Vec2

	HasPlayer bool
	HasEntry  bool
	HasExit   bool
}

// SpawnsOf returns the spawn points of one kind in map order
func (l *Level) SpawnsOf(kind SpawnKind) []SpawnPoint {
	var out []SpawnPoint
	for _, sp := range l.Spawns {
		if sp.Kind == kind {
			out = append(out, sp)
		}
	}
	return out
}

// WorldState is the session-wide geometry of the loaded level.
// It is replaced wholesale on every level transition.
type WorldState struct {
	TileSize  float64
	WorldSize geom.Vec2
	MapIndex  int
}
