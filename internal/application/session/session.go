// Package session runs the simulation: one world, one level, one tick at a time.
package session

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/younwookim/tilegrid/internal/application/system"
	"github.com/younwookim/tilegrid/internal/domain/entity"
	"github.com/younwookim/tilegrid/internal/domain/geom"
	"github.com/younwookim/tilegrid/internal/ecs"
	"github.com/younwookim/tilegrid/internal/infrastructure/config"
	"github.com/younwookim/tilegrid/internal/infrastructure/env"
)

// required lists the archetypes the session creates on its own
var required = []string{"player", "bullet", "sword", "healthPotion", "exitPortal", "entryPortal"}

// StepResult reports what happened during one tick
type StepResult struct {
	Tick       int
	Transition bool
	Direction  entity.Direction
	Level      int
	Cleared    bool
	GameOver   bool
	Collisions ecs.TickStats
}

// Session owns the loader, the entity world and the collision driver
type Session struct {
	ctx        *env.Context
	loader     *system.MapLoader
	driver     *ecs.CollisionDriver
	archetypes map[ecs.Kind]ecs.Archetype
	reach      float64
	rng        *rand.Rand
	seed       int64

	world    *ecs.World
	level    *entity.Level
	tick     int
	cleared  bool
	gameOver bool
	held     bool // standing on a portal that leads nowhere
}

// New creates a session. Every spawnable kind must have an archetype.
func New(ctx *env.Context, loader *system.MapLoader, archetypes *config.ArchetypesConfig, seed int64) (*Session, error) {
	if loader == nil || archetypes == nil {
		return nil, errors.New("session needs a loader and archetypes")
	}

	table := make(map[ecs.Kind]ecs.Archetype, len(archetypes.Archetypes))
	for name, a := range archetypes.Archetypes {
		kind, ok := ecs.KindByName(name)
		if !ok {
			return nil, fmt.Errorf("unknown archetype %q", name)
		}
		arch := toArchetype(kind, a)
		if a.SplitInto != "" {
			into, ok := ecs.KindByName(a.SplitInto)
			if !ok {
				return nil, fmt.Errorf("archetype %q splits into unknown %q", name, a.SplitInto)
			}
			arch.SplitInto = into
		}
		table[kind] = arch
	}
	for _, name := range required {
		kind, _ := ecs.KindByName(name)
		if _, ok := table[kind]; !ok {
			return nil, fmt.Errorf("missing archetype %q", name)
		}
	}

	sword, _ := archetypes.Get("sword")

	return &Session{
		ctx:        ctx,
		loader:     loader,
		driver:     ecs.NewCollisionDriver(ctx, ecs.DefaultResponses()),
		archetypes: table,
		reach:      sword.Reach,
		rng:        rand.New(rand.NewSource(seed)),
		seed:       seed,
	}, nil
}

func toArchetype(kind ecs.Kind, a config.ArchetypeConfig) ecs.Archetype {
	return ecs.Archetype{
		Kind:          kind,
		Radius:        a.Radius,
		Static:        a.Static,
		Passive:       a.Passive,
		MaxHealth:     a.MaxHealth,
		Iframes:       a.Iframes,
		ContactDamage: a.ContactDamage,
		Knockback:     a.Knockback,
		Speed:         a.Speed,
		SightRange:    a.SightRange,
		FireCooldown:  a.FireCooldown,
		Lifetime:      a.Lifetime,
		Heal:          a.Heal,
		PotionChance:  a.PotionChance,
		SplitCount:    a.SplitCount,
	}
}

// Start loads the level at index as a fresh start and populates it.
// The drop generator is reseeded so every start replays the same way.
func (s *Session) Start(index int) error {
	lvl := s.loader.LoadLevel(index, entity.DirStart)
	if lvl == nil {
		return fmt.Errorf("failed to load level %d", index)
	}

	s.world = ecs.NewWorld()
	s.rng = rand.New(rand.NewSource(s.seed))
	s.tick = 0
	s.cleared = false
	s.gameOver = false
	s.held = false
	s.populate(lvl, 0)
	return nil
}

// populate creates the entities of a freshly loaded level. Spawn points are
// consumed. A positive health carries the player's health over.
func (s *Session) populate(lvl *entity.Level, health int) {
	s.level = lvl

	p := s.world.Spawn(s.archetypes[ecs.KindPlayer], lvl.Player)
	if health > 0 {
		h := s.world.Health[p]
		h.Current = min(health, h.Max)
		s.world.Health[p] = h
	}

	if lvl.HasExit {
		s.world.Spawn(s.archetypes[ecs.KindExitPortal], lvl.Exit)
	}
	if lvl.HasEntry {
		s.world.Spawn(s.archetypes[ecs.KindEntryPortal], lvl.Entry)
	}

	for _, sp := range lvl.Spawns {
		kind, ok := ecs.KindByName(sp.Kind.String())
		if !ok {
			s.ctx.Printf("no entity kind for spawn %s at (%d, %d)", sp.Kind, sp.Row, sp.Col)
			continue
		}
		a, ok := s.archetypes[kind]
		if !ok {
			s.ctx.Printf("no archetype for %s, skipping spawn at (%d, %d)", kind, sp.Row, sp.Col)
			continue
		}
		s.world.Spawn(a, sp.Pos)
	}
	lvl.Spawns = nil
}

// Step advances the simulation by one tick
func (s *Session) Step(in system.InputState, dt float64) StepResult {
	res := StepResult{Tick: s.tick, Level: s.loader.State().MapIndex}
	if s.world == nil || s.cleared || s.gameOver {
		res.Cleared = s.cleared
		res.GameOver = s.gameOver
		return res
	}

	w := s.world
	for _, intent := range system.Intents(in) {
		switch it := intent.(type) {
		case system.MoveIntent:
			ecs.SteerPlayer(w, it.Dir)
		case system.AttackIntent:
			s.swing()
		}
	}

	ecs.UpdateChasers(w, s.level.Walls)
	ecs.UpdateTurrets(w, s.level.Walls, s.archetypes[ecs.KindBullet])
	ecs.Integrate(w, dt)
	ecs.UpdateTimers(w)
	res.Collisions = s.driver.ResolveTick(w, s.level.Walls)

	corpses := ecs.SweepDead(w)
	ecs.SpawnSplits(w, corpses, s.archetypes)
	ecs.SpawnDrops(w, corpses, s.rng.Float64, s.archetypes[ecs.KindHealthPotion])
	for _, c := range corpses {
		if c.Kind == ecs.KindPlayer {
			s.gameOver = true
			s.ctx.Printf("player died on level %d at tick %d", res.Level, s.tick)
		}
	}

	if tr, ok := w.TakeTransition(); ok && !s.gameOver {
		res.Transition = s.transition(tr.Direction)
		if res.Transition {
			res.Direction = tr.Direction
			res.Level = s.loader.State().MapIndex
		}
	} else {
		s.held = false
	}

	s.tick++
	res.Cleared = s.cleared
	res.GameOver = s.gameOver
	return res
}

// swing places a sword in front of the player. One sword at a time.
func (s *Session) swing() {
	w := s.world
	pos, ok := w.GetPlayerPosition()
	if !ok || w.IsDead(w.PlayerID) || w.CountKind(ecs.KindSword) > 0 {
		return
	}
	dir := w.Facing[w.PlayerID].Dir
	if dir.IsZero() {
		dir = geom.V(1, 0)
	}
	w.Launch(s.archetypes[ecs.KindSword], pos.Add(dir.Scale(s.reach)), dir)
}

// transition replaces the level and the world. The player keeps its health.
// It reports false when there is no level to go to; the world, portal
// included, is left as it was.
func (s *Session) transition(dir entity.Direction) bool {
	from := s.loader.State().MapIndex
	next := from + int(dir)
	if next >= s.loader.LevelCount() {
		s.cleared = true
		s.ctx.Printf("cleared the last level at tick %d", s.tick)
		return true
	}
	if next < 0 {
		if !s.held {
			s.ctx.Printf("no level before %d, staying", from)
		}
		s.held = true
		return false
	}

	health := s.world.Health[s.world.PlayerID].Current
	lvl := s.loader.LoadLevel(next, dir)
	if lvl == nil {
		return false
	}
	s.world = ecs.NewWorld()
	s.populate(lvl, health)
	s.held = false
	s.ctx.Printf("level %d -> %d (%s) at tick %d", from, next, dir, s.tick)
	return true
}

// World returns the entity world of the current level
func (s *Session) World() *ecs.World { return s.world }

// Level returns the current level
func (s *Session) Level() *entity.Level { return s.level }

// State returns the loader's world state
func (s *Session) State() entity.WorldState { return s.loader.State() }

// Tick returns the number of completed ticks
func (s *Session) Tick() int { return s.tick }

// Seed returns the seed of the drop generator
func (s *Session) Seed() int64 { return s.seed }

// Cleared reports whether the player left through the last exit portal
func (s *Session) Cleared() bool { return s.cleared }

// GameOver reports whether the player died
func (s *Session) GameOver() bool { return s.gameOver }

// Archetype returns the archetype used for kind
func (s *Session) Archetype(kind ecs.Kind) (ecs.Archetype, bool) {
	a, ok := s.archetypes[kind]
	return a, ok
}
