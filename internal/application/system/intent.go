package system

import "github.com/younwookim/tilegrid/internal/domain/geom"

// Intent represents an action the player wants to perform this tick
type Intent interface {
	isIntent()
}

// MoveIntent sets the player's heading. A zero Dir means stop.
type MoveIntent struct {
	Dir geom.Vec2
}

func (MoveIntent) isIntent() {}

// AttackIntent swings the sword towards the player's facing
type AttackIntent struct{}

func (AttackIntent) isIntent() {}

// Intents turns one tick of input into player intents. Movement always comes
// first so an attack uses the new facing.
func Intents(in InputState) []Intent {
	intents := []Intent{MoveIntent{Dir: in.Direction()}}
	if in.Attack {
		intents = append(intents, AttackIntent{})
	}
	return intents
}
