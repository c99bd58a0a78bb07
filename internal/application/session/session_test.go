package session

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/tilegrid/internal/application/system"
	"github.com/younwookim/tilegrid/internal/domain/entity"
	"github.com/younwookim/tilegrid/internal/domain/geom"
	"github.com/younwookim/tilegrid/internal/ecs"
	"github.com/younwookim/tilegrid/internal/infrastructure/config"
	"github.com/younwookim/tilegrid/internal/infrastructure/env"
)

const dt = 1.0 / 60

// P at (24, 56), O at (120, 56), Y at (24, 24), A at (120, 24)
var corridor = []string{
	"WWWWWWWWW",
	"WPFFFFFOW",
	"WFFFFFFFW",
	"WYFFFFFAW",
	"WWWWWWWWW",
}

var arena = []string{
	"WWWWWWWWW",
	"WPFFFFFOW",
	"WFFFFFFFW",
	"WFFFFFlFW",
	"WWWWWWWWW",
}

func layers(name string, rows []string) fstest.MapFS {
	blank := func(c string) []byte {
		out := make([]string, len(rows))
		for i, r := range rows {
			out[i] = strings.Repeat(c, len(r))
		}
		return []byte(strings.Join(out, "\n") + "\n")
	}
	return fstest.MapFS{
		"maps/" + name + ".txt":      {Data: []byte(strings.Join(rows, "\n") + "\n")},
		"maps/" + name + "_mask.txt": {Data: blank("0")},
		"maps/" + name + "_deco.txt": {Data: blank(".")},
	}
}

func levelConfig(name string) config.LevelConfig {
	return config.LevelConfig{
		Name:           name,
		Terrain:        name + ".txt",
		TerrainMask:    name + "_mask.txt",
		Decoration:     name + "_deco.txt",
		DecorationMask: name + "_mask.txt",
	}
}

func testArchetypes() *config.ArchetypesConfig {
	return &config.ArchetypesConfig{Archetypes: map[string]config.ArchetypeConfig{
		"player":       {Radius: 6, MaxHealth: 6, Iframes: 40, Knockback: 120, Speed: 60},
		"slime":        {Radius: 6, MaxHealth: 1, Iframes: 20, ContactDamage: 1, Knockback: 60, Speed: 30, SightRange: 100, PotionChance: 1},
		"bigSlime":     {Radius: 7, MaxHealth: 1, Iframes: 20, ContactDamage: 1, Speed: 24, SightRange: 100, SplitInto: "slime", SplitCount: 2},
		"bullet":       {Radius: 2, ContactDamage: 1, Speed: 120, Lifetime: 90},
		"sword":        {Radius: 6, Passive: true, ContactDamage: 1, Lifetime: 8, Reach: 10},
		"healthPotion": {Radius: 4, Static: true, Passive: true, Heal: 2},
		"exitPortal":   {Radius: 6, Static: true, Passive: true},
		"entryPortal":  {Radius: 6, Static: true, Passive: true},
	}}
}

// newSession builds a session over the named levels, all defined in maps
func newSession(t *testing.T, maps map[string][]string, names ...string) *Session {
	t.Helper()

	fsys := fstest.MapFS{}
	for name, rows := range maps {
		for k, v := range layers(name, rows) {
			fsys[k] = v
		}
	}
	world := &config.WorldConfig{TileSize: 16}
	for _, n := range names {
		world.Levels = append(world.Levels, levelConfig(n))
	}

	ctx, rec := env.Capture()
	loader := system.NewMapLoader(ctx, config.NewFSLoader(fsys, "test"), world)
	s, err := New(ctx, loader, testArchetypes(), 7)
	require.NoError(t, err)
	require.NoError(t, s.Start(0))
	require.False(t, rec.Failed())
	return s
}

// walk steps with the same input until a transition or the tick limit
func walk(s *Session, in system.InputState, limit int) (StepResult, bool) {
	for i := 0; i < limit; i++ {
		res := s.Step(in, dt)
		if res.Transition || res.Cleared || res.GameOver {
			return res, true
		}
	}
	return StepResult{}, false
}

func TestNew_Errors(t *testing.T) {
	ctx, _ := env.Capture()
	loader := system.NewMapLoader(ctx, nil, &config.WorldConfig{TileSize: 16})

	_, err := New(ctx, nil, testArchetypes(), 1)
	assert.Error(t, err)

	missing := testArchetypes()
	delete(missing.Archetypes, "sword")
	_, err = New(ctx, loader, missing, 1)
	assert.ErrorContains(t, err, `missing archetype "sword"`)

	unknown := testArchetypes()
	unknown.Archetypes["dragon"] = config.ArchetypeConfig{Radius: 1}
	_, err = New(ctx, loader, unknown, 1)
	assert.ErrorContains(t, err, `unknown archetype "dragon"`)

	badSplit := testArchetypes()
	badSplit.Archetypes["bigSlime"] = config.ArchetypeConfig{Radius: 7, SplitInto: "dragon", SplitCount: 2}
	_, err = New(ctx, loader, badSplit, 1)
	assert.ErrorContains(t, err, `splits into unknown "dragon"`)
}

func TestSession_Start(t *testing.T) {
	s := newSession(t, map[string][]string{"arena": arena}, "arena")
	w := s.World()

	pos, ok := w.GetPlayerPosition()
	require.True(t, ok)
	assert.Equal(t, geom.V(24, 56), pos)
	assert.Equal(t, 1, w.CountKind(ecs.KindExitPortal))
	assert.Equal(t, 0, w.CountKind(ecs.KindEntryPortal))
	assert.Equal(t, 1, w.CountKind(ecs.KindSlime))
	assert.Nil(t, s.Level().Spawns, "spawn points are consumed")
	assert.Equal(t, entity.WorldState{TileSize: 16, WorldSize: geom.V(144, 80), MapIndex: 0}, s.State())
	assert.Equal(t, 0, s.Tick())
	assert.Equal(t, int64(7), s.Seed())
}

func TestSession_Transitions(t *testing.T) {
	s := newSession(t, map[string][]string{"corridor": corridor}, "corridor", "corridor")

	h := s.World().Health[s.World().PlayerID]
	h.Current = 3
	s.World().Health[s.World().PlayerID] = h

	res, ok := walk(s, system.InputState{Right: true}, 200)
	require.True(t, ok, "player reaches the exit")
	require.True(t, res.Transition)
	assert.Equal(t, entity.DirForward, res.Direction)
	assert.Equal(t, 1, res.Level)
	assert.Equal(t, 1, s.State().MapIndex)

	w := s.World()
	pos, _ := w.GetPlayerPosition()
	assert.Equal(t, geom.V(24, 56), pos, "forward arrival uses P")
	assert.Equal(t, 1, w.CountKind(ecs.KindEntryPortal))
	assert.Equal(t, 3, w.Health[w.PlayerID].Current, "health carries over")

	res, ok = walk(s, system.InputState{Down: true}, 200)
	require.True(t, ok, "player reaches the entry portal")
	assert.Equal(t, entity.DirBackward, res.Direction)
	assert.Equal(t, 0, res.Level)

	pos, _ = s.World().GetPlayerPosition()
	assert.Equal(t, geom.V(120, 24), pos, "backward arrival uses A")
}

func TestSession_EntryOnFirstLevelStays(t *testing.T) {
	s := newSession(t, map[string][]string{"corridor": corridor}, "corridor", "corridor")

	_, ok := walk(s, system.InputState{Right: true}, 200)
	require.True(t, ok)
	res, ok := walk(s, system.InputState{Down: true}, 200)
	require.True(t, ok)
	require.Equal(t, 0, res.Level)
	require.Equal(t, 1, s.World().CountKind(ecs.KindEntryPortal))

	_, ok = walk(s, system.InputState{Left: true}, 200)
	assert.False(t, ok, "there is no level before the first")
	assert.Equal(t, 0, s.State().MapIndex)

	pos, _ := s.World().GetPlayerPosition()
	assert.Less(t, pos.X, 36.0, "the player stands on the portal")
	assert.Equal(t, 1, s.World().CountKind(ecs.KindEntryPortal), "the portal is still there")
}

func TestSession_Cleared(t *testing.T) {
	s := newSession(t, map[string][]string{"corridor": corridor}, "corridor")

	res, ok := walk(s, system.InputState{Right: true}, 200)
	require.True(t, ok)
	assert.True(t, res.Cleared)
	assert.True(t, s.Cleared())

	tick := s.Tick()
	res = s.Step(system.InputState{Left: true}, dt)
	assert.True(t, res.Cleared)
	assert.Equal(t, tick, s.Tick(), "a finished session does not advance")
}

func TestSession_GameOver(t *testing.T) {
	s := newSession(t, map[string][]string{"corridor": corridor}, "corridor")
	w := s.World()
	h := w.Health[w.PlayerID]
	h.Current = 1
	w.Health[w.PlayerID] = h

	slime, ok := s.Archetype(ecs.KindSlime)
	require.True(t, ok)
	w.Spawn(slime, geom.V(34, 56))

	res := s.Step(system.InputState{}, dt)

	assert.True(t, res.GameOver)
	assert.True(t, s.GameOver())
	_, alive := w.GetPlayerPosition()
	assert.False(t, alive)
}

func TestSession_Attack(t *testing.T) {
	s := newSession(t, map[string][]string{"corridor": corridor}, "corridor")
	w := s.World()

	s.Step(system.InputState{Attack: true}, dt)
	require.Equal(t, 1, w.CountKind(ecs.KindSword))

	s.Step(system.InputState{Attack: true}, dt)
	assert.Equal(t, 1, w.CountKind(ecs.KindSword), "one sword at a time")

	for i := 0; i < 10; i++ {
		s.Step(system.InputState{}, dt)
	}
	assert.Equal(t, 0, w.CountKind(ecs.KindSword), "sword expires")
}

func TestSession_KillDropsPotion(t *testing.T) {
	s := newSession(t, map[string][]string{"corridor": corridor}, "corridor")
	w := s.World()

	slime, _ := s.Archetype(ecs.KindSlime)
	w.Spawn(slime, geom.V(40, 56))

	res := s.Step(system.InputState{Attack: true}, dt)

	assert.False(t, res.GameOver)
	assert.Equal(t, 0, w.CountKind(ecs.KindSlime))
	assert.Equal(t, 1, w.CountKind(ecs.KindHealthPotion))
}

func TestSession_Deterministic(t *testing.T) {
	inputs := []system.InputState{
		{Right: true}, {Right: true, Attack: true}, {Down: true}, {}, {Left: true, Up: true},
	}
	run := func() []geom.Vec2 {
		s := newSession(t, map[string][]string{"arena": arena}, "arena")
		var trace []geom.Vec2
		for i := 0; i < 120; i++ {
			s.Step(inputs[i%len(inputs)], dt)
			w := s.World()
			for _, id := range w.Entities() {
				trace = append(trace, w.Position[id])
			}
		}
		return trace
	}

	assert.Equal(t, run(), run())
}

func TestSession_KillSplits(t *testing.T) {
	s := newSession(t, map[string][]string{"corridor": corridor}, "corridor")
	w := s.World()

	big, ok := s.Archetype(ecs.KindBigSlime)
	require.True(t, ok)
	assert.Equal(t, ecs.KindSlime, big.SplitInto)
	w.Spawn(big, geom.V(40, 56))

	s.Step(system.InputState{Attack: true}, dt)

	assert.Equal(t, 0, w.CountKind(ecs.KindBigSlime))
	assert.Equal(t, 2, w.CountKind(ecs.KindSlime))
	assert.Equal(t, 0, w.CountKind(ecs.KindHealthPotion))
}
