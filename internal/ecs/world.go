package ecs

import (
	"github.com/younwookim/tilegrid/internal/domain/entity"
	"github.com/younwookim/tilegrid/internal/domain/geom"
)

// EntityID is a unique identifier for an entity (never recycled)
type EntityID uint64

// Transition is a level change requested by a portal during the tick
type Transition struct {
	Pending   bool
	Direction entity.Direction
}

// World holds all component maps and the registration order
type World struct {
	nextID EntityID
	order  []EntityID

	// Components
	Kind     map[EntityID]Kind
	Position map[EntityID]geom.Vec2
	Velocity map[EntityID]geom.Vec2
	Collider map[EntityID]Collider
	Health   map[EntityID]Health
	Combat   map[EntityID]Combat
	Mover    map[EntityID]Mover
	Chaser   map[EntityID]Chaser
	Turret   map[EntityID]Turret
	Lifetime map[EntityID]Lifetime
	Pickup   map[EntityID]Pickup
	Drop     map[EntityID]Drop
	Split    map[EntityID]Split
	Facing   map[EntityID]Facing

	// Tags
	Dead map[EntityID]struct{}

	// Singleton references
	PlayerID   EntityID
	Transition Transition
}

// NewWorld creates a new empty world
func NewWorld() *World {
	return &World{
		nextID:   1, // 0 is "nil" (the wall partner)
		Kind:     make(map[EntityID]Kind),
		Position: make(map[EntityID]geom.Vec2),
		Velocity: make(map[EntityID]geom.Vec2),
		Collider: make(map[EntityID]Collider),
		Health:   make(map[EntityID]Health),
		Combat:   make(map[EntityID]Combat),
		Mover:    make(map[EntityID]Mover),
		Chaser:   make(map[EntityID]Chaser),
		Turret:   make(map[EntityID]Turret),
		Lifetime: make(map[EntityID]Lifetime),
		Pickup:   make(map[EntityID]Pickup),
		Drop:     make(map[EntityID]Drop),
		Split:    make(map[EntityID]Split),
		Facing:   make(map[EntityID]Facing),
		Dead:     make(map[EntityID]struct{}),
	}
}

// NewEntity returns a new unique entity ID and registers it
func (w *World) NewEntity(kind Kind) EntityID {
	id := w.nextID
	w.nextID++
	w.order = append(w.order, id)
	w.Kind[id] = kind
	return id
}

// DestroyEntity removes all components for an entity
func (w *World) DestroyEntity(id EntityID) {
	if _, ok := w.Kind[id]; !ok {
		return
	}
	delete(w.Kind, id)
	delete(w.Position, id)
	delete(w.Velocity, id)
	delete(w.Collider, id)
	delete(w.Health, id)
	delete(w.Combat, id)
	delete(w.Mover, id)
	delete(w.Chaser, id)
	delete(w.Turret, id)
	delete(w.Lifetime, id)
	delete(w.Pickup, id)
	delete(w.Drop, id)
	delete(w.Split, id)
	delete(w.Facing, id)
	delete(w.Dead, id)

	for i, e := range w.order {
		if e == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	if w.PlayerID == id {
		w.PlayerID = 0
	}
}

// Exists checks if an entity is registered
func (w *World) Exists(id EntityID) bool {
	_, ok := w.Kind[id]
	return ok
}

// Kill marks an entity dead. It is skipped from the next collision pass on
// and removed by SweepDead.
func (w *World) Kill(id EntityID) {
	if w.Exists(id) {
		w.Dead[id] = struct{}{}
	}
}

// IsDead reports whether an entity has been marked dead
func (w *World) IsDead(id EntityID) bool {
	_, ok := w.Dead[id]
	return ok
}

// Entities returns the registered entities in registration order.
// Callers must not modify it.
func (w *World) Entities() []EntityID {
	return w.order
}

// Live returns a snapshot of the entities not marked dead, in registration order
func (w *World) Live() []EntityID {
	live := make([]EntityID, 0, len(w.order))
	for _, id := range w.order {
		if !w.IsDead(id) {
			live = append(live, id)
		}
	}
	return live
}

// Circle returns the bounding circle of an entity
func (w *World) Circle(id EntityID) geom.Circle {
	return geom.Circle{Center: w.Position[id], Radius: w.Collider[id].Radius}
}

// GetPlayerPosition returns the player's position
func (w *World) GetPlayerPosition() (geom.Vec2, bool) {
	if w.PlayerID == 0 || w.IsDead(w.PlayerID) {
		return geom.Vec2{}, false
	}
	pos, ok := w.Position[w.PlayerID]
	return pos, ok
}

// CountKind returns the number of live entities of a kind
func (w *World) CountKind(kind Kind) int {
	n := 0
	for _, id := range w.order {
		if w.Kind[id] == kind && !w.IsDead(id) {
			n++
		}
	}
	return n
}

// CountEnemies returns the number of live enemies
func (w *World) CountEnemies() int {
	n := 0
	for _, id := range w.order {
		if w.Kind[id].IsEnemy() && !w.IsDead(id) {
			n++
		}
	}
	return n
}

// RequestTransition records a portal hit. The first request in a tick wins.
func (w *World) RequestTransition(dir entity.Direction) {
	if w.Transition.Pending {
		return
	}
	w.Transition = Transition{Pending: true, Direction: dir}
}

// TakeTransition returns and clears the pending transition
func (w *World) TakeTransition() (Transition, bool) {
	t := w.Transition
	w.Transition = Transition{}
	return t, t.Pending
}
