package ecs

import (
	"github.com/younwookim/tilegrid/internal/domain/geom"
	"github.com/younwookim/tilegrid/internal/infrastructure/env"
)

// WallSlots is how many wall contacts one entity may resolve per tick
const WallSlots = 2

// WallCollider finds the wall box a circle touches
type WallCollider interface {
	CollideCircle(c geom.Circle) (bool, geom.Vec2, float64)
}

// TickStats counts the callbacks fired by one ResolveTick
type TickStats struct {
	WallContacts   int
	EntityContacts int
}

// CollisionDriver runs the world and entity collision phases once per tick
type CollisionDriver struct {
	ctx   *env.Context
	table *ResponseTable
}

// NewCollisionDriver creates a driver dispatching through table.
// A nil table uses DefaultResponse for everything.
func NewCollisionDriver(ctx *env.Context, table *ResponseTable) *CollisionDriver {
	if table == nil {
		table = NewResponseTable()
	}
	return &CollisionDriver{ctx: ctx, table: table}
}

// Responses returns the dispatch table
func (d *CollisionDriver) Responses() *ResponseTable {
	return d.table
}

// ResolveTick tests every live entity against the walls, then every pair of
// live entities against each other, and fires the responses.
//
// Liveness is sampled once at the start: an entity killed by a response
// still takes part in the rest of this tick. Pairs are visited in
// registration order and each test sees the positions left by earlier
// responses.
func (d *CollisionDriver) ResolveTick(w *World, walls WallCollider) TickStats {
	var stats TickStats
	live := w.Live()

	if walls != nil {
		for _, id := range live {
			col, ok := w.Collider[id]
			if !ok || col.Static {
				continue
			}
			for slot := 0; slot < WallSlots; slot++ {
				hit, normal, depth := walls.CollideCircle(w.Circle(id))
				if !hit {
					break
				}
				d.respond(Contact{World: w, Self: id, OtherKind: KindWall, Normal: normal, Depth: depth})
				stats.WallContacts++
			}
		}
	}

	for i := 0; i < len(live); i++ {
		a := live[i]
		if _, ok := w.Collider[a]; !ok {
			continue
		}
		for j := i + 1; j < len(live); j++ {
			b := live[j]
			if _, ok := w.Collider[b]; !ok {
				continue
			}

			hit, normal, depth := geom.QueryCircleCircle(w.Circle(a), w.Circle(b))
			if !hit {
				continue
			}
			if normal.IsZero() {
				normal = geom.V(1, 0)
			}

			ka, kb := w.Kind[a], w.Kind[b]
			d.respond(Contact{World: w, Self: a, Other: b, OtherKind: kb, Normal: normal, Depth: depth})
			d.respond(Contact{World: w, Self: b, Other: a, OtherKind: ka, Normal: normal.Neg(), Depth: depth})
			stats.EntityContacts++
		}
	}

	if stats.WallContacts+stats.EntityContacts > 0 {
		d.ctx.Debugf("collisions: %d wall, %d entity", stats.WallContacts, stats.EntityContacts)
	}
	return stats
}

func (d *CollisionDriver) respond(c Contact) {
	d.table.Lookup(c.World.Kind[c.Self], c.OtherKind)(c)
}
