// Command pingpong is a small paddle game built on warpcore: a player paddle,
// an AI paddle, a Lua-scripted ball and a retry screen.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/profile"
	"github.com/plus3/warpcore/config"
	"github.com/plus3/warpcore/debugui"
	debugui_ebiten "github.com/plus3/warpcore/debugui/ebiten"
	"github.com/plus3/warpcore/engine"
	"github.com/plus3/warpcore/platform"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		path = os.Getenv("WARPCORE_CONFIG")
	}
	if path == "" {
		cfg := config.Default()
		cfg.Window.Title = "pingpong"
		return cfg, nil
	}
	return config.Load(path)
}

func run() error {
	cfgPath := flag.String("config", "", "Path to a TOML config file. Defaults to $WARPCORE_CONFIG.")
	sound := flag.String("sound", "", "Path to a wav/ogg/mp3 played on every return.")
	debug := flag.Bool("debug", false, "Show the ImGui debug overlay.")
	cpuProfile := flag.Bool("cpuprofile", false, "Write a CPU profile to the working directory.")
	flag.Parse()

	if *cpuProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	}

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	renderer := platform.NewRenderer(log)
	opts := []engine.Option{
		engine.WithLogger(log),
		engine.WithRenderer(renderer),
	}
	if *sound != "" {
		opts = append(opts, engine.WithAudio(platform.NewAudioPlayer(log)))
	}

	e := engine.New(cfg, opts...)
	if err := setupScenes(e, gameOptions{Sound: *sound}); err != nil {
		return fmt.Errorf("setup scenes: %w", err)
	}

	gameOpts := []platform.Option{platform.WithQuitKey(ebiten.KeyEscape)}
	if *debug {
		overlay := debugui_ebiten.NewOverlay(debugui.New(e), cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)
		gameOpts = append(gameOpts, platform.WithOverlay(overlay))
	}

	log.Info("starting", zap.String("scene", e.ActiveScene().Name()), zap.Bool("debug", *debug))
	if err := platform.Run(platform.NewGame(e, renderer, gameOpts...), cfg.Window); err != nil {
		return fmt.Errorf("run: %w", err)
	}

	stats := e.Stats()
	log.Info("stopped",
		zap.Uint64("frames", stats.Frames),
		zap.Uint64("physics_steps", stats.PhysicsSteps),
		zap.Uint64("skipped_entities", stats.SkippedEntities))
	return nil
}
