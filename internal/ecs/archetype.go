package ecs

import "github.com/younwookim/tilegrid/internal/domain/geom"

// Archetype holds everything needed to create one kind of entity.
// Speeds are world units per second; timers are ticks.
type Archetype struct {
	Kind          Kind
	Radius        float64
	Static        bool
	Passive       bool
	MaxHealth     int
	Iframes       int
	ContactDamage int
	Knockback     float64
	Speed         float64
	SightRange    float64
	FireCooldown  int
	Lifetime      int
	Heal          int
	PotionChance  float64
	SplitInto     Kind
	SplitCount    int
}

// Spawn creates an entity from an archetype at pos
func (w *World) Spawn(a Archetype, pos geom.Vec2) EntityID {
	id := w.NewEntity(a.Kind)

	w.Position[id] = pos
	w.Velocity[id] = geom.Vec2{}
	w.Collider[id] = Collider{Radius: a.Radius, Static: a.Static, Passive: a.Passive}
	w.Facing[id] = Facing{Dir: geom.V(1, 0)}

	if a.MaxHealth > 0 {
		w.Health[id] = Health{Current: a.MaxHealth, Max: a.MaxHealth}
	}
	if a.ContactDamage > 0 || a.Iframes > 0 || a.Knockback > 0 {
		w.Combat[id] = Combat{ContactDamage: a.ContactDamage, Iframes: a.Iframes, Knockback: a.Knockback}
	}
	if a.Speed > 0 {
		w.Mover[id] = Mover{Speed: a.Speed}
	}
	if a.FireCooldown > 0 {
		w.Turret[id] = Turret{SightRange: a.SightRange, Cooldown: a.FireCooldown, Timer: a.FireCooldown}
	} else if a.SightRange > 0 && a.Speed > 0 {
		w.Chaser[id] = Chaser{SightRange: a.SightRange}
	}
	if a.Lifetime > 0 {
		w.Lifetime[id] = Lifetime{Ticks: a.Lifetime}
	}
	if a.Heal > 0 {
		w.Pickup[id] = Pickup{Heal: a.Heal}
	}
	if a.PotionChance > 0 {
		w.Drop[id] = Drop{PotionChance: a.PotionChance}
	}

	if a.SplitCount > 0 && a.SplitInto > KindWall {
		w.Split[id] = Split{Into: a.SplitInto, Count: a.SplitCount}
	}

	if a.Kind == KindPlayer {
		w.PlayerID = id
	}
	return id
}

// Launch spawns a moving entity (bullet, sword) heading along dir
func (w *World) Launch(a Archetype, pos, dir geom.Vec2) EntityID {
	id := w.Spawn(a, pos)
	dir = dir.Normalize()
	w.Velocity[id] = dir.Scale(a.Speed)
	if !dir.IsZero() {
		w.Facing[id] = Facing{Dir: dir}
	}
	return id
}
