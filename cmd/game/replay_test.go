package main

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/tilegrid/internal/application/replay"
	"github.com/younwookim/tilegrid/internal/application/system"
	"github.com/younwookim/tilegrid/internal/domain/entity"
	"github.com/younwookim/tilegrid/internal/domain/geom"
	"github.com/younwookim/tilegrid/internal/infrastructure/config"
	"github.com/younwookim/tilegrid/internal/infrastructure/env"
)

func loadEmbedded(t *testing.T) (*config.Loader, *config.GameConfig) {
	t.Helper()
	loader, err := openLoader("")
	require.NoError(t, err)
	cfg, err := loader.LoadAll()
	require.NoError(t, err)
	return loader, cfg
}

// tiles returns the distance between two world points in tiles
func tiles(a, b geom.Vec2, tileSize float64) float64 {
	return math.Floor(a.Sub(b).Len()/tileSize*100) / 100
}

func TestEmbeddedLevels(t *testing.T) {
	loader, cfg := loadEmbedded(t)
	require.Len(t, cfg.World.Levels, 3)
	last := len(cfg.World.Levels) - 1

	for i, lc := range cfg.World.Levels {
		t.Run(lc.Name, func(t *testing.T) {
			ctx, rec := env.Capture()
			maps := system.NewMapLoader(ctx, loader, cfg.World)

			start := maps.LoadLevel(i, entity.DirStart)
			require.NotNil(t, start)
			require.False(t, rec.Failed(), "%v", rec.Messages)
			assert.True(t, start.HasPlayer)
			assert.True(t, start.HasExit)
			assert.Positive(t, start.Walls.Len())

			if i > 0 {
				fwd := maps.LoadLevel(i, entity.DirForward)
				require.NotNil(t, fwd)
				require.True(t, fwd.HasEntry, "levels after the first have an entry portal")
				assert.GreaterOrEqual(t, tiles(fwd.Player, fwd.Entry, cfg.World.TileSize), 2.0,
					"arriving forward must not touch the entry portal")
			}

			if i < last {
				back := maps.LoadLevel(i, entity.DirBackward)
				require.NotNil(t, back)
				require.True(t, back.HasPlayer, "levels before the last have an alternate arrival")
				assert.GreaterOrEqual(t, tiles(back.Player, back.Exit, cfg.World.TileSize), 2.0,
					"arriving backward must not touch the exit portal")
			}
		})
	}
}

func TestEmbeddedArchetypes(t *testing.T) {
	loader, cfg := loadEmbedded(t)
	ctx, _ := env.Capture()

	s, err := newSession(ctx, loader, cfg, 1)
	require.NoError(t, err)
	require.NoError(t, s.Start(cfg.World.StartLevel))

	assert.Positive(t, s.World().CountEnemies())
	assert.Nil(t, s.Level().Spawns)
}

func TestRunHeadless(t *testing.T) {
	loader, cfg := loadEmbedded(t)
	data := replay.CreateTestReplayData(120, system.InputState{})

	run := func() string {
		ctx, _ := env.Capture()
		s, err := newSession(ctx, loader, cfg, data.Seed)
		require.NoError(t, err)

		var out bytes.Buffer
		require.NoError(t, runHeadless(&out, s, &data, 60))
		return out.String()
	}

	first := run()
	assert.Contains(t, first, "ticks=120/120")
	assert.Contains(t, first, "level=0")
	assert.Contains(t, first, "outcome=running")
	assert.Equal(t, first, run(), "replays are deterministic")
}

func TestRunHeadless_Errors(t *testing.T) {
	loader, cfg := loadEmbedded(t)
	ctx, _ := env.Capture()
	data := replay.CreateTestReplayData(1, system.InputState{})

	s, err := newSession(ctx, loader, cfg, data.Seed)
	require.NoError(t, err)
	assert.Error(t, runHeadless(&bytes.Buffer{}, s, &data, 0))

	other, err := newSession(ctx, loader, cfg, data.Seed+1)
	require.NoError(t, err)
	assert.ErrorContains(t, runHeadless(&bytes.Buffer{}, other, &data, 60), "seed")
}

func TestPickSeed(t *testing.T) {
	data := &replay.ReplayData{Seed: 7}

	assert.Equal(t, int64(7), pickSeed(&config.WorldConfig{Seed: 3}, data))
	assert.Equal(t, int64(3), pickSeed(&config.WorldConfig{Seed: 3}, nil))
	assert.NotZero(t, pickSeed(&config.WorldConfig{}, nil))
}
