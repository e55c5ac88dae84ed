// Command asteroids plays an asteroids-style arcade game built on the ecs
// package. Pass -debug to open the ImGui inspector windows over the game.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/plus3/maskecs/ecs"
	"github.com/plus3/maskecs/ecs/debugui"
	debugui_ebiten "github.com/plus3/maskecs/ecs/debugui/ebiten"
	"github.com/plus3/maskecs/internal/config"
	"github.com/plus3/maskecs/internal/game"
	"github.com/plus3/maskecs/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "asteroids:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "Path to a TOML config file. Defaults are used when empty.")
	debug := flag.Bool("debug", false, "Show the ImGui debug windows.")
	seed := flag.Uint64("seed", 0, "Random seed. Overrides the config file when non-zero.")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *debug {
		cfg.Debug.Imgui = true
	}
	if *seed != 0 {
		cfg.Game.Seed = *seed
	}

	log, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer log.Sync()

	waves := game.DefaultWaves()
	if cfg.Game.WavesFile != "" {
		if waves, err = game.LoadWaves(cfg.Game.WavesFile); err != nil {
			return err
		}
	}

	g := game.New(cfg.Game, waves, log)
	app := &App{
		game: g,
		dt:   cfg.Game.TickRate.Seconds(),
	}

	if cfg.Debug.Imgui {
		app.imgui = debugui_ebiten.NewImguiBackend("Asteroids", cfg.Game.Width, cfg.Game.Height)
		handles := debugui.RegisterDebugUIComponents(g.World)
		app.imguiInput = ecs.NewSingleton[debugui.ImguiInputState](g.World)
		debugui.SpawnDebugUI(g.World, handles)
		g.World.Register(&debugui.ImguiSystem{Items: handles.Item})
	} else {
		ebiten.SetWindowSize(cfg.Game.Width, cfg.Game.Height)
		ebiten.SetWindowTitle("Asteroids")
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(int(time.Second / cfg.Game.TickRate))

	log.Info("starting",
		zap.Duration("tick_rate", cfg.Game.TickRate),
		zap.Bool("imgui", cfg.Debug.Imgui),
	)

	if err := ebiten.RunGame(app); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run game: %w", err)
	}
	log.Info("finished",
		zap.Uint64("ticks", g.World.Tick()),
		zap.Int("score", g.Session().Score),
	)
	return nil
}
