package ecs

import (
	"github.com/younwookim/tilegrid/internal/domain/entity"
	"github.com/younwookim/tilegrid/internal/domain/geom"
)

// Contact is one side of a collision, seen from Self
type Contact struct {
	World     *World
	Self      EntityID
	Other     EntityID // 0 for walls
	OtherKind Kind     // KindWall for walls
	Normal    geom.Vec2
	Depth     float64
}

// Wall reports whether the partner is static geometry
func (c Contact) Wall() bool {
	return c.Other == 0
}

// ResponseFunc reacts to one side of a collision
type ResponseFunc func(c Contact)

type responseKey struct {
	self, other Kind
}

// ResponseTable maps (self kind, partner kind) to a response.
// Lookups fall back to (self, KindAny), then (KindAny, partner), then
// DefaultResponse.
type ResponseTable struct {
	rules map[responseKey]ResponseFunc
}

// NewResponseTable creates an empty table; every lookup yields DefaultResponse
func NewResponseTable() *ResponseTable {
	return &ResponseTable{rules: make(map[responseKey]ResponseFunc)}
}

// Register sets the response for a pair. Either side may be KindAny.
func (t *ResponseTable) Register(self, other Kind, fn ResponseFunc) {
	t.rules[responseKey{self, other}] = fn
}

// Lookup returns the response for self colliding with other
func (t *ResponseTable) Lookup(self, other Kind) ResponseFunc {
	if fn, ok := t.rules[responseKey{self, other}]; ok {
		return fn
	}
	if fn, ok := t.rules[responseKey{self, KindAny}]; ok {
		return fn
	}
	if fn, ok := t.rules[responseKey{KindAny, other}]; ok {
		return fn
	}
	return DefaultResponse
}

// DefaultResponse backs Self off along the normal: half the overlap when both
// sides are dynamic, all of it against a static partner or a wall, nothing
// when Self is static. Passive partners are ignored.
func DefaultResponse(c Contact) {
	w := c.World
	if w.IsDead(c.Self) {
		return
	}
	col := w.Collider[c.Self]
	if col.Static {
		return
	}

	otherStatic := true
	if !c.Wall() {
		other := w.Collider[c.Other]
		if other.Passive {
			return
		}
		otherStatic = other.Static
	}

	shift := c.Normal.Scale(c.Depth)
	if !otherStatic {
		shift = shift.Scale(0.5)
	}
	w.Position[c.Self] = w.Position[c.Self].Add(shift)
}

// Ignore is a response that does nothing
func Ignore(Contact) {}

// DefaultResponses returns the table with every gameplay rule registered
func DefaultResponses() *ResponseTable {
	t := NewResponseTable()

	t.Register(KindPlayer, KindAny, playerResponse)
	for _, k := range []Kind{KindSlime, KindBigSlime, KindKingSlime, KindRabite, KindOakSeed} {
		t.Register(k, KindAny, creatureResponse)
	}
	t.Register(KindTurret, KindAny, turretResponse)
	t.Register(KindBullet, KindAny, bulletResponse)
	t.Register(KindSword, KindAny, swordResponse)

	t.Register(KindHealthPotion, KindAny, Ignore)
	t.Register(KindHealthPotion, KindPlayer, potionResponse)
	t.Register(KindExitPortal, KindAny, Ignore)
	t.Register(KindExitPortal, KindPlayer, portalResponse(entity.DirForward))
	t.Register(KindEntryPortal, KindAny, Ignore)
	t.Register(KindEntryPortal, KindPlayer, portalResponse(entity.DirBackward))

	return t
}

// playerResponse takes damage from enemies, bullets and spikes and is knocked
// back. Moving attackers do not push; static ones (turrets, spikes) still do,
// hit or not. Pickups and portals resolve on their own side.
func playerResponse(c Contact) {
	w := c.World
	if w.IsDead(c.Self) {
		return
	}

	switch {
	case c.Wall():
		DefaultResponse(c)
	case c.OtherKind.IsEnemy(), c.OtherKind == KindBullet, c.OtherKind == KindSpikes:
		if !w.IsDead(c.Other) {
			takeHit(w, c.Self, c.Other, c.Normal)
		}
		if w.Collider[c.Other].Static {
			DefaultResponse(c)
		}
	case c.OtherKind == KindHealthPotion, c.OtherKind == KindSword, c.OtherKind.IsPortal():
	default:
		DefaultResponse(c)
	}
}

// creatureResponse is shared by every walking enemy. Only bullets and swords
// hurt. Walls, other enemies and static entities push.
func creatureResponse(c Contact) {
	w := c.World
	if w.IsDead(c.Self) {
		return
	}

	switch {
	case c.OtherKind == KindBullet, c.OtherKind == KindSword:
		takeHit(w, c.Self, c.Other, c.Normal)
	case c.Wall(), c.OtherKind.IsEnemy(), w.Collider[c.Other].Static:
		DefaultResponse(c)
	}
}

func turretResponse(c Contact) {
	w := c.World
	if w.IsDead(c.Self) {
		return
	}
	if c.OtherKind == KindBullet || c.OtherKind == KindSword {
		takeHit(w, c.Self, c.Other, c.Normal)
	}
}

// bulletResponse: bullets die on walls and on anything they can hit
func bulletResponse(c Contact) {
	w := c.World
	if w.IsDead(c.Self) {
		return
	}
	if c.Wall() || c.OtherKind == KindPlayer || c.OtherKind.IsEnemy() || c.OtherKind == KindBullet {
		w.Kill(c.Self)
	}
}

func swordResponse(c Contact) {
	w := c.World
	if w.IsDead(c.Self) {
		return
	}
	if c.Wall() || c.OtherKind.IsEnemy() || c.OtherKind == KindBullet {
		w.Kill(c.Self)
	}
}

// potionResponse heals a hurt player and is used up. A player at full health
// leaves it where it is.
func potionResponse(c Contact) {
	w := c.World
	if w.IsDead(c.Self) || w.IsDead(c.Other) {
		return
	}
	h, ok := w.Health[c.Other]
	if !ok || !h.Hurt() {
		return
	}
	h.Heal(w.Pickup[c.Self].Heal)
	w.Health[c.Other] = h
	w.Kill(c.Self)
}

// portalResponse asks for a level change. The portal stays: the session
// replaces the world when the move is taken and keeps it when it is not.
func portalResponse(dir entity.Direction) ResponseFunc {
	return func(c Contact) {
		w := c.World
		if w.IsDead(c.Self) || w.IsDead(c.Other) {
			return
		}
		w.RequestTransition(dir)
	}
}

// takeHit applies the attacker's contact damage to id, starts its
// invulnerability window and knocks it away along normal
func takeHit(w *World, id, attacker EntityID, normal geom.Vec2) {
	h, ok := w.Health[id]
	if !ok || h.Iframe > 0 {
		return
	}

	damage := w.Combat[attacker].ContactDamage
	if damage <= 0 {
		damage = 1
	}
	dead := h.TakeDamage(damage)

	cb := w.Combat[id]
	h.Iframe = cb.Iframes
	w.Health[id] = h

	if cb.Knockback > 0 && !w.Collider[id].Static {
		w.Velocity[id] = normal.Scale(cb.Knockback)
	}
	if dead {
		w.Kill(id)
	}
}

// Stunned reports whether id is in the first half of its invulnerability
// window. Stunned entities keep their knockback velocity.
func (w *World) Stunned(id EntityID) bool {
	h, ok := w.Health[id]
	if !ok || h.Iframe == 0 {
		return false
	}
	return h.Iframe > w.Combat[id].Iframes/2
}
