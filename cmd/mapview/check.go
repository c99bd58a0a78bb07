package main

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/younwookim/tilegrid/internal/application/system"
	"github.com/younwookim/tilegrid/internal/domain/entity"
	"github.com/younwookim/tilegrid/internal/infrastructure/config"
)

// report is the result of building one level in one direction
type report struct {
	Name      string
	Index     int
	Direction entity.Direction
	Width     int
	Height    int
	Spawns    int
	Boxes     [3]int // horizontal, vertical, orphan
	Problems  []string
}

var directions = []entity.Direction{entity.DirStart, entity.DirForward, entity.DirBackward}

// checkLevels parses every level of the manifest in every direction. Levels
// are independent, so they are built in parallel. A level that fails to parse
// cancels the rest.
func checkLevels(ctx context.Context, loader *config.Loader, world *config.WorldConfig) ([]report, error) {
	reports := make([]report, len(world.Levels)*len(directions))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, lc := range world.Levels {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			files, err := loader.ReadLevel(lc)
			if err != nil {
				return err
			}
			for j, dir := range directions {
				lvl, err := system.ParseMap(files, dir, world.TileSize)
				if err != nil {
					return fmt.Errorf("level %d (%s) %s: %w", i, lc.Name, dir, err)
				}
				lvl.Index = i
				reports[i*len(directions)+j] = inspect(lvl, i, len(world.Levels))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// inspect records the shape of a built level and anything that would stop
// a session from playing it
func inspect(lvl *entity.Level, index, count int) report {
	r := report{
		Name:      lvl.Name,
		Index:     index,
		Direction: lvl.Direction,
		Width:     lvl.Grid.Width,
		Height:    lvl.Grid.Height,
		Spawns:    len(lvl.Spawns),
		Boxes: [3]int{
			lvl.Walls.Count(entity.PassHorizontal),
			lvl.Walls.Count(entity.PassVertical),
			lvl.Walls.Count(entity.PassOrphan),
		},
	}

	problem := func(format string, args ...any) {
		r.Problems = append(r.Problems, fmt.Sprintf(format, args...))
	}

	if !lvl.HasExit {
		problem("no exit portal")
	}
	switch lvl.Direction {
	case entity.DirStart:
		if !lvl.HasPlayer {
			problem("no player start")
		}
	case entity.DirForward:
		// only reachable through the previous level's exit
		if index > 0 && !lvl.HasPlayer {
			problem("no player start")
		}
		if index > 0 && !lvl.HasEntry {
			problem("no entry portal")
		}
	case entity.DirBackward:
		// only reachable through the next level's entry
		if index < count-1 && !lvl.HasPlayer {
			problem("no arrival point for backward entry")
		}
	}
	if lvl.HasPlayer {
		row, col := lvl.Grid.CellAt(lvl.Player)
		if lvl.Grid.IsSolid(row, col) {
			problem("player starts inside a wall")
		}
	}
	return r
}

func printReports(out io.Writer, reports []report) (failed bool) {
	for _, r := range reports {
		status := "ok"
		if len(r.Problems) > 0 {
			status = fmt.Sprintf("%v", r.Problems)
			failed = true
		}
		fmt.Fprintf(out, "%-10s [%d] %-8s %dx%d spawns=%d boxes=%d/%d/%d %s\n",
			r.Name, r.Index, r.Direction, r.Width, r.Height, r.Spawns, r.Boxes[0], r.Boxes[1], r.Boxes[2], status)
	}
	return failed
}
