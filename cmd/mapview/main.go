// Command mapview shows how the loader sees a level: terrain, derived
// variants and consolidated wall boxes, in a terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/younwookim/tilegrid/internal/application/system"
	"github.com/younwookim/tilegrid/internal/domain/entity"
	"github.com/younwookim/tilegrid/internal/infrastructure/config"
	"github.com/younwookim/tilegrid/internal/infrastructure/env"
	"github.com/younwookim/tilegrid/internal/infrastructure/termview"
)

var modes = map[string]termview.Mode{
	"terrain":  termview.ModeTerrain,
	"variants": termview.ModeVariant,
	"walls":    termview.ModeWalls,
}

func main() {
	configDir := flag.String("config", "cmd/game/configs", "Config directory containing world.json")
	levelFlag := flag.Int("level", 0, "Level index")
	dirFlag := flag.String("dir", "start", "Entry direction: start, forward or backward")
	dump := flag.Bool("dump", false, "Print the level to stdout instead of opening the viewer")
	modeFlag := flag.String("mode", "terrain", "With -dump: terrain, variants or walls")
	check := flag.Bool("check", false, "Build every level in every direction and report problems")
	flag.Parse()

	dir, err := entity.ParseDirection(*dirFlag)
	if err != nil {
		log.Fatalf("Invalid -dir: %v", err)
	}

	loader := config.NewLoader(*configDir)
	world, err := loader.LoadWorld()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *check {
		reports, err := checkLevels(context.Background(), loader, world)
		if err != nil {
			log.Fatalf("Check failed: %v", err)
		}
		if printReports(os.Stdout, reports) {
			os.Exit(1)
		}
		return
	}

	if *dump {
		mode, ok := modes[*modeFlag]
		if !ok {
			log.Fatalf("Invalid -mode %q", *modeFlag)
		}
		maps := system.NewMapLoader(env.Default(), loader, world)
		if err := dumpLevel(os.Stdout, maps, *levelFlag, dir, mode); err != nil {
			log.Fatal(err)
		}
		return
	}

	// Loader diagnostics would scribble over the screen
	maps := system.NewMapLoader(env.Discard(), loader, world)
	if err := view(maps, *levelFlag, dir); err != nil {
		log.Fatal(err)
	}
}

func dumpLevel(out io.Writer, maps *system.MapLoader, index int, dir entity.Direction, mode termview.Mode) error {
	lvl := maps.LoadLevel(index, dir)
	if lvl == nil {
		return fmt.Errorf("failed to load level %d", index)
	}
	fmt.Fprintf(out, "%s [%d] %dx%d %s, %d wall boxes\n", lvl.Name, lvl.Index, lvl.Grid.Width, lvl.Grid.Height, dir, lvl.Walls.Len())
	_, err := io.WriteString(out, termview.Text(lvl, mode))
	return err
}

func view(maps *system.MapLoader, index int, dir entity.Direction) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	defer screen.Fini()

	v := termview.New(screen)
	load := func(i int) bool {
		lvl := maps.LoadLevel(i, dir)
		if lvl == nil {
			return false
		}
		index = i
		v.SetLevel(lvl)
		return true
	}
	if !load(index) {
		return fmt.Errorf("failed to load level %d", index)
	}

	for {
		v.Draw()
		switch v.HandleEvent(screen.PollEvent()) {
		case termview.ActionQuit:
			return nil
		case termview.ActionNext:
			if index+1 < maps.LevelCount() {
				load(index + 1)
			}
		case termview.ActionPrev:
			if index > 0 {
				load(index - 1)
			}
		}
	}
}
