package entity

import (
	"fmt"

	"github.com/younwookim/tilegrid/internal/domain/geom"
)

// SpawnKind identifies what a spawn marker creates
type SpawnKind int

const (
	SpawnTurret SpawnKind = iota
	SpawnSpikes
	SpawnBigSlime
	SpawnSlime
	SpawnKingSlime
	SpawnOakSeed
	SpawnRabite
)

// spawnCodes maps terrain markers to the kind they spawn
var spawnCodes = map[byte]SpawnKind{
	'T': SpawnTurret,
	's': SpawnSpikes,
	'L': SpawnBigSlime,
	'l': SpawnSlime,
	'I': SpawnKingSlime,
	'K': SpawnOakSeed,
	'R': SpawnRabite,
}

// SpawnKindForCode returns the kind for an entity marker
func SpawnKindForCode(c byte) (SpawnKind, bool) {
	k, ok := spawnCodes[c]
	return k, ok
}

// Code returns the map marker that spawns k
func (k SpawnKind) Code() byte {
	for c, kind := range spawnCodes {
		if kind == k {
			return c
		}
	}
	return '?'
}

// String returns the name used in archetype tables
func (k SpawnKind) String() string {
	switch k {
	case SpawnTurret:
		return "turret"
	case SpawnSpikes:
		return "spikes"
	case SpawnBigSlime:
		return "bigSlime"
	case SpawnSlime:
		return "slime"
	case SpawnKingSlime:
		return "kingSlime"
	case SpawnOakSeed:
		return "oakSeed"
	case SpawnRabite:
		return "rabite"
	default:
		return "unknown"
	}
}

// SpawnPoint is a marker extracted at load time. Consumed once by entity creation.
type SpawnPoint struct {
	Kind SpawnKind
	Pos  geom.Vec2
	Row  int
	Col  int
}

// Direction records how a level was entered
type Direction int

const (
	DirBackward Direction = -1 // came back through the previous level's entry portal
	DirStart    Direction = 0  // first load
	DirForward  Direction = 1  // came through the previous level's exit portal
)

// Valid reports whether d is one of the three directions
func (d Direction) Valid() bool {
	return d >= DirBackward && d <= DirForward
}

// ParseDirection accepts the String form of a direction
func ParseDirection(s string) (Direction, error) {
	for _, d := range []Direction{DirBackward, DirStart, DirForward} {
		if d.String() == s {
			return d, nil
		}
	}
	return DirStart, fmt.Errorf("unknown direction %q (want start, forward or backward)", s)
}

func (d Direction) String() string {
	switch d {
	case DirBackward:
		return "backward"
	case DirStart:
		return "start"
	case DirForward:
		return "forward"
	default:
		return "invalid"
	}
}
