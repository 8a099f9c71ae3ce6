// Command skirmish is the windowed game: steer the cyan swarm with the mouse
// or a finger, raid the magenta store and keep your own topped up.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	golog "github.com/tochemey/goakt/v3/log"

	"github.com/lao-tseu-is-alive/go-swarm-skirmish/internal/engine"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/internal/sound"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/simulation"
)

func main() {
	var (
		configPath string
		seed       uint64
		width      int
		height     int
		volume     float64
		mute       bool
		verbose    bool
	)
	flag.StringVar(&configPath, "config", "", "match settings file (.toml or .json)")
	flag.Uint64Var(&seed, "seed", 0, "RNG seed, 0 picks one from the clock")
	flag.IntVar(&width, "width", 0, "window width, 0 uses the config")
	flag.IntVar(&height, "height", 0, "window height, 0 uses the config")
	flag.Float64Var(&volume, "volume", 0.6, "master volume between 0 and 1")
	flag.BoolVar(&mute, "mute", false, "start with sound off")
	flag.BoolVar(&verbose, "verbose", false, "log actor and match activity to stderr")
	flag.Parse()

	cfg := simulation.DefaultConfig()
	if configPath != "" {
		loaded, err := simulation.LoadConfig(configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}
	if width > 0 {
		cfg.Width = float64(width)
	}
	if height > 0 {
		cfg.Height = float64(height)
	}
	var opts []simulation.Option
	if seed != 0 {
		opts = append(opts, simulation.WithSeed(seed))
	}

	logger := golog.DiscardLogger
	if verbose {
		logger = golog.New(golog.InfoLevel, os.Stderr)
	}

	ctx := context.Background()
	host, err := engine.Start(ctx, logger, cfg, cfg.Width, cfg.Height, opts...)
	if err != nil {
		log.Fatal(err)
	}
	defer host.Stop(ctx)

	snd := sound.NewManager(volume)
	if err := snd.Initialize(); err != nil {
		log.Printf("sound disabled: %v", err)
	}
	defer snd.Cleanup()
	snd.SetMuted(mute)

	game := newGame(ctx, host, cfg, snd, logger)
	game.widgetSound.Value = !mute

	ebiten.SetWindowSize(int(cfg.Width), int(cfg.Height))
	ebiten.SetWindowTitle("Swarm Skirmish")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
