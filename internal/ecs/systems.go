package ecs

import "github.com/younwookim/tilegrid/internal/domain/geom"

// Sight answers line-of-sight queries against the level geometry
type Sight interface {
	IsVisible(observer, target geom.Vec2, radius float64) bool
}

// SteerPlayer sets the player's velocity from a movement direction.
// A stunned player keeps its knockback.
func SteerPlayer(w *World, dir geom.Vec2) {
	id := w.PlayerID
	if id == 0 || w.IsDead(id) || w.Stunned(id) {
		return
	}

	dir = dir.Normalize()
	w.Velocity[id] = dir.Scale(w.Mover[id].Speed)
	if !dir.IsZero() {
		w.Facing[id] = Facing{Dir: dir}
	}
}

// UpdateChasers walks every chaser towards the player while it is in range
// and in sight, and stops it otherwise
func UpdateChasers(w *World, sight Sight) {
	target, ok := w.GetPlayerPosition()
	radius := w.Collider[w.PlayerID].Radius

	for _, id := range w.Live() {
		chaser, isChaser := w.Chaser[id]
		if !isChaser || w.Stunned(id) {
			continue
		}

		pos := w.Position[id]
		to := target.Sub(pos)
		if !ok || to.Len() > chaser.SightRange || !sight.IsVisible(pos, target, radius) {
			w.Velocity[id] = geom.Vec2{}
			continue
		}

		dir := to.Normalize()
		w.Velocity[id] = dir.Scale(w.Mover[id].Speed)
		if !dir.IsZero() {
			w.Facing[id] = Facing{Dir: dir}
		}
	}
}

// UpdateTurrets counts down every turret and fires a bullet at the player
// when the timer is up and the player is in sight. Returns the new bullets.
func UpdateTurrets(w *World, sight Sight, bullet Archetype) []EntityID {
	target, ok := w.GetPlayerPosition()
	radius := w.Collider[w.PlayerID].Radius

	var fired []EntityID
	for _, id := range w.Live() {
		turret, isTurret := w.Turret[id]
		if !isTurret {
			continue
		}
		if turret.Timer > 0 {
			turret.Timer--
		}

		pos := w.Position[id]
		to := target.Sub(pos)
		inRange := turret.SightRange <= 0 || to.Len() <= turret.SightRange
		if ok && turret.Timer == 0 && inRange && !to.IsZero() && sight.IsVisible(pos, target, radius) {
			dir := to.Normalize()
			muzzle := pos.Add(dir.Scale(w.Collider[id].Radius + bullet.Radius + 1))
			fired = append(fired, w.Launch(bullet, muzzle, dir))
			w.Facing[id] = Facing{Dir: dir}
			turret.Timer = turret.Cooldown
		}
		w.Turret[id] = turret
	}
	return fired
}

// Integrate moves every live dynamic entity by its velocity
func Integrate(w *World, dt float64) {
	for _, id := range w.order {
		if w.IsDead(id) || w.Collider[id].Static {
			continue
		}
		if vel := w.Velocity[id]; !vel.IsZero() {
			w.Position[id] = w.Position[id].Add(vel.Scale(dt))
		}
	}
}

// UpdateTimers decrements all tick-based timers and expires lifetimes
func UpdateTimers(w *World) {
	for id, h := range w.Health {
		if h.Iframe > 0 {
			h.Iframe--
			w.Health[id] = h
		}
	}

	for id, lt := range w.Lifetime {
		if lt.Ticks > 0 {
			lt.Ticks--
			w.Lifetime[id] = lt
		}
		if lt.Ticks == 0 {
			w.Kill(id)
		}
	}
}

// Corpse is what SweepDead reports about a removed entity
type Corpse struct {
	ID           EntityID
	Kind         Kind
	Position     geom.Vec2
	PotionChance float64
	Split        Split
}

// SweepDead destroys every entity marked dead, in registration order
func SweepDead(w *World) []Corpse {
	if len(w.Dead) == 0 {
		return nil
	}

	corpses := make([]Corpse, 0, len(w.Dead))
	for _, id := range w.order {
		if w.IsDead(id) {
			corpses = append(corpses, Corpse{
				ID:           id,
				Kind:         w.Kind[id],
				Position:     w.Position[id],
				PotionChance: w.Drop[id].PotionChance,
				Split:        w.Split[id],
			})
		}
	}
	for _, c := range corpses {
		w.DestroyEntity(c.ID)
	}
	return corpses
}

// SpawnDrops leaves a potion where a corpse fell when roll comes in under
// its drop chance. roll must return values in [0, 1).
func SpawnDrops(w *World, corpses []Corpse, roll func() float64, potion Archetype) []EntityID {
	var drops []EntityID
	for _, c := range corpses {
		if c.PotionChance <= 0 {
			continue
		}
		if roll() < c.PotionChance {
			drops = append(drops, w.Spawn(potion, c.Position))
		}
	}
	return drops
}

// SpawnSplits puts the fragments of every splitting corpse where it fell,
// side by side along X one fragment diameter apart. Kinds missing from
// archetypes do not split.
func SpawnSplits(w *World, corpses []Corpse, archetypes map[Kind]Archetype) []EntityID {
	var spawned []EntityID
	for _, c := range corpses {
		if c.Split.Count <= 0 {
			continue
		}
		a, ok := archetypes[c.Split.Into]
		if !ok {
			continue
		}
		gap := 2 * a.Radius
		first := -gap * float64(c.Split.Count-1) / 2
		for i := 0; i < c.Split.Count; i++ {
			pos := c.Position.Add(geom.V(first+gap*float64(i), 0))
			spawned = append(spawned, w.Spawn(a, pos))
		}
	}
	return spawned
}
