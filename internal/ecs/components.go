package ecs

import "github.com/younwookim/tilegrid/internal/domain/geom"

// Kind tags what an entity is. Collision responses dispatch on (self, partner).
type Kind uint8

const (
	KindAny Kind = iota // wildcard in response tables, never assigned
	KindWall            // partner kind for static geometry
	KindPlayer
	KindSlime
	KindBigSlime
	KindKingSlime
	KindRabite
	KindOakSeed
	KindTurret
	KindSpikes
	KindBullet
	KindSword
	KindHealthPotion
	KindExitPortal
	KindEntryPortal
)

var kindNames = [...]string{
	KindAny:          "any",
	KindWall:         "wall",
	KindPlayer:       "player",
	KindSlime:        "slime",
	KindBigSlime:     "bigSlime",
	KindKingSlime:    "kingSlime",
	KindRabite:       "rabite",
	KindOakSeed:      "oakSeed",
	KindTurret:       "turret",
	KindSpikes:       "spikes",
	KindBullet:       "bullet",
	KindSword:        "sword",
	KindHealthPotion: "healthPotion",
	KindExitPortal:   "exitPortal",
	KindEntryPortal:  "entryPortal",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// KindByName looks up a kind by its archetype name
func KindByName(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name && Kind(k) > KindWall {
			return Kind(k), true
		}
	}
	return KindAny, false
}

// IsEnemy reports whether the kind hurts the player on contact and can be killed
func (k Kind) IsEnemy() bool {
	switch k {
	case KindSlime, KindBigSlime, KindKingSlime, KindRabite, KindOakSeed, KindTurret:
		return true
	}
	return false
}

// IsPortal reports whether the kind moves the player between levels
func (k Kind) IsPortal() bool {
	return k == KindExitPortal || k == KindEntryPortal
}

// Collider is the bounding circle of an entity.
// Static entities never move during collision response. Passive entities are
// ignored by the default response of their partners.
type Collider struct {
	Radius  float64
	Static  bool
	Passive bool
}

// Health represents entity health with iframe
type Health struct {
	Current int
	Max     int
	Iframe  int // Invincibility ticks (0 = can be hit)
}

// TakeDamage applies damage if not invincible, returns true if dead
func (h *Health) TakeDamage(amount int) bool {
	if h.Iframe > 0 {
		return false
	}
	h.Current -= amount
	return h.Current <= 0
}

// IsAlive returns true if health > 0
func (h *Health) IsAlive() bool {
	return h.Current > 0
}

// Heal restores health up to max
func (h *Health) Heal(amount int) {
	h.Current += amount
	if h.Current > h.Max {
		h.Current = h.Max
	}
}

// Hurt reports whether health is below max
func (h *Health) Hurt() bool {
	return h.Current < h.Max
}

// Combat holds what an entity deals on contact and how long it stays
// untouchable after being hit
type Combat struct {
	ContactDamage int
	Iframes       int     // ticks granted after taking damage
	Knockback     float64 // speed applied away from the attacker
}

// Mover is the top speed of a self-propelled entity
type Mover struct {
	Speed float64
}

// Chaser walks towards the player while it can see it
type Chaser struct {
	SightRange float64
}

// Turret fires bullets at the player while it can see it.
// A zero SightRange means unlimited range.
type Turret struct {
	SightRange float64
	Cooldown   int // ticks between shots
	Timer      int // ticks until the next shot
}

// Lifetime removes an entity when it reaches zero
type Lifetime struct {
	Ticks int
}

// Pickup restores health to the player
type Pickup struct {
	Heal int
}

// Drop is the chance an entity leaves a health potion behind
type Drop struct {
	PotionChance float64
}

// Split is what an entity breaks into when it dies
type Split struct {
	Into  Kind
	Count int
}

// Facing is the last non-zero movement direction (unit length)
type Facing struct {
	Dir geom.Vec2
}
