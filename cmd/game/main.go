package main

import (
	"flag"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/tilegrid/internal/application/game"
	"github.com/younwookim/tilegrid/internal/application/replay"
	"github.com/younwookim/tilegrid/internal/application/scene/playing"
	"github.com/younwookim/tilegrid/internal/application/session"
	"github.com/younwookim/tilegrid/internal/application/system"
	"github.com/younwookim/tilegrid/internal/infrastructure/config"
	"github.com/younwookim/tilegrid/internal/infrastructure/env"
)

func main() {
	// Parse command line flags
	configDir := flag.String("config", "", "Load configs from a directory instead of the embedded ones")
	levelFlag := flag.Int("level", -1, "Start level (default: startLevel from world.json)")
	recordFlag := flag.String("record", "", "Record input to file (e.g., -record replay.json)")
	replayFlag := flag.String("replay", "", "Play back a recorded input file")
	headless := flag.Bool("headless", false, "With -replay: run without a window and print a summary")
	walls := flag.Bool("walls", false, "Show consolidated wall boxes (F1 toggles)")
	verbose := flag.Bool("v", false, "Log per-level geometry diagnostics")
	flag.Parse()

	ctx := env.Default()
	ctx.Verbose = *verbose

	loader, err := openLoader(*configDir)
	if err != nil {
		log.Fatalf("Failed to open configs: %v", err)
	}
	cfg, err := loader.LoadAll()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var data *replay.ReplayData
	if *replayFlag != "" {
		data, err = replay.LoadReplay(*replayFlag)
		if err != nil {
			log.Fatalf("Failed to load replay: %v", err)
		}
	}

	startLevel := cfg.World.StartLevel
	if *levelFlag >= 0 {
		startLevel = *levelFlag
	}

	s, err := newSession(ctx, loader, cfg, pickSeed(cfg.World, data))
	if err != nil {
		log.Fatalf("Failed to create session: %v", err)
	}

	if *headless {
		if data == nil {
			log.Fatalf("-headless needs -replay")
		}
		if err := runHeadless(os.Stdout, s, data, cfg.World.Display.Framerate); err != nil {
			log.Fatalf("Replay failed: %v", err)
		}
		return
	}

	scene, err := playing.New(s, cfg.World.Display.ScreenWidth, cfg.World.Display.ScreenHeight, startLevel, playing.Options{
		RecordPath: *recordFlag,
		Replay:     data,
		ShowWalls:  *walls,
	})
	if err != nil {
		log.Fatalf("Failed to start level %d: %v", startLevel, err)
	}

	g := game.New(scene, cfg.World.Display.ScreenWidth, cfg.World.Display.ScreenHeight)
	g.SetDT(1.0 / float64(cfg.World.Display.Framerate))

	// Set up ebiten
	ebiten.SetWindowSize(cfg.World.Display.ScreenWidth*cfg.World.Display.Scale,
		cfg.World.Display.ScreenHeight*cfg.World.Display.Scale)
	ebiten.SetWindowTitle(cfg.World.Display.Title)
	ebiten.SetTPS(cfg.World.Display.Framerate)

	err = ebiten.RunGame(g)
	g.Close()
	if err != nil {
		log.Fatal(err)
	}
}

// openLoader reads configs from dir, or from the embedded copy when dir is empty
func openLoader(dir string) (*config.Loader, error) {
	if dir != "" {
		return config.NewLoader(dir), nil
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, err
	}
	return config.NewFSLoader(fsys, "configs"), nil
}

func newSession(ctx *env.Context, loader *config.Loader, cfg *config.GameConfig, seed int64) (*session.Session, error) {
	maps := system.NewMapLoader(ctx, loader, cfg.World)
	return session.New(ctx, maps, cfg.Archetypes, seed)
}

// pickSeed prefers the replay's seed, then the configured one, then the clock
func pickSeed(world *config.WorldConfig, data *replay.ReplayData) int64 {
	switch {
	case data != nil:
		return data.Seed
	case world.Seed != 0:
		return world.Seed
	default:
		return time.Now().UnixNano()
	}
}
