// Command skirmish-tui plays the match in a terminal. Arrow keys move the
// goal cursor, space holds it down so the swarm follows.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	golog "github.com/tochemey/goakt/v3/log"

	"github.com/lao-tseu-is-alive/go-swarm-skirmish/internal/engine"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/internal/tui"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/simulation"
)

const frameInterval = time.Second / 60

func main() {
	var (
		configPath string
		seed       uint64
	)
	flag.StringVar(&configPath, "config", "", "match settings file (.toml or .json)")
	flag.Uint64Var(&seed, "seed", 0, "RNG seed, 0 picks one from the clock")
	flag.Parse()

	if err := run(configPath, seed); err != nil {
		fmt.Fprintf(os.Stderr, "skirmish-tui: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, seed uint64) error {
	cfg := simulation.DefaultConfig()
	if configPath != "" {
		loaded, err := simulation.LoadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	var opts []simulation.Option
	if seed != 0 {
		opts = append(opts, simulation.WithSeed(seed))
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	// Restore the terminal even if the match panics
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			panic(r)
		}
	}()
	defer screen.Fini()
	screen.HideCursor()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The actor logs would scribble over the screen
	host, err := engine.Start(ctx, golog.DiscardLogger, cfg, cfg.Width, cfg.Height, opts...)
	if err != nil {
		return err
	}
	defer host.Stop(context.Background())

	cols, rows := screen.Size()
	view := tui.NewViewport(cols, rows, cfg.Width, cfg.Height)
	ctrl := tui.NewController(view, cfg.AutoPilot)

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	last := time.Now()
	var snap *simulation.Snapshot

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				msgs, quit := ctrl.HandleKey(ev)
				if quit {
					return nil
				}
				for _, msg := range msgs {
					if err := host.Send(ctx, msg); err != nil {
						return err
					}
				}
			case *tcell.EventResize:
				cols, rows := ev.Size()
				view = tui.NewViewport(cols, rows, cfg.Width, cfg.Height)
				ctrl.Resize(view)
				screen.Sync()
			}
		case now := <-ticker.C:
			if err := host.Tick(ctx, now.Sub(last)); err != nil {
				return err
			}
			last = now
		case f := <-host.Frames:
			snap = f.Snapshot
			tui.Draw(screen, snap, ctrl.X, ctrl.Y, ctrl.Holding)
			screen.Show()
		}
	}
}
