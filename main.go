package main

import (
	"errors"
	"flag"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/iburimskiy/galaxy-generator/internal/audio"
	"github.com/iburimskiy/galaxy-generator/internal/config"
	"github.com/iburimskiy/galaxy-generator/internal/galaxy"
	"github.com/iburimskiy/galaxy-generator/internal/game"
	"github.com/iburimskiy/galaxy-generator/internal/viewer"
)

func main() {
	var (
		configPath = flag.String("config", "galaxy.yaml", "path to config.yaml (optional)")
		initConfig = flag.Bool("init-config", false, "write the default config to -config and exit")
		seed       = flag.Uint64("seed", 0, "random seed, 0 for time-based (overrides config)")
		count      = flag.Int("count", 0, "particle count (overrides config)")
		logLevel   = flag.String("log-level", "info", "trace | debug | info | warn | error")
		noAudio    = flag.Bool("no-audio", false, "disable feedback chimes")
	)
	flag.Parse()

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	if lvl, err := zerolog.ParseLevel(*logLevel); err != nil {
		log.Warn().Err(err).Str("level", *logLevel).Msg("unknown log level; using info")
	} else {
		zerolog.SetGlobalLevel(lvl)
	}

	if *initConfig {
		if err := config.Save(*configPath, config.Default()); err != nil {
			log.Fatal().Err(err).Str("path", *configPath).Msg("write config")
		}
		log.Info().Str("path", *configPath).Msg("default config written")
		return
	}

	// ---- Load config (optional) ----
	cfg, err := config.Load(*configPath)
	switch {
	case err == nil:
		log.Info().Str("path", *configPath).Msg("config loaded")
	case errors.Is(err, os.ErrNotExist):
		log.Warn().Str("path", *configPath).Msg("no config file; using defaults")
		cfg = config.Default()
	default:
		log.Fatal().Err(err).Msg("invalid config")
	}

	// ---- Flags override config ----
	if *count > 0 {
		cfg.Galaxy.Count = *count
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	params, err := cfg.Parameters()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid galaxy parameters")
	}

	// ---- Feedback ----
	observers := []viewer.Observer{game.NewNotifier("Galaxy Generator")}
	if cfg.Audio.Enabled && !*noAudio {
		player, err := audio.NewPlayer(cfg.Audio.Volume)
		if err != nil {
			log.Warn().Err(err).Msg("audio unavailable; chimes disabled")
		}
		defer player.Close()
		observers = append(observers, player)
	}

	state := viewer.New(viewer.Options{
		Params:          params,
		Random:          galaxy.NewRandomSource(cfg.Seed),
		AngularVelocity: cfg.RotationSpeed,
		MaxPixelRatio:   cfg.MaxPixelRatio,
		FovY:            cfg.Camera.Fov,
		Near:            cfg.Camera.Near,
		Far:             cfg.Camera.Far,
		CameraPosition:  mgl64.Vec3(cfg.Camera.Position),
		DampingFactor:   cfg.Camera.Damping,
	})
	g := game.New(state, game.Options{
		Observers:     observers,
		StatsInterval: cfg.StatsInterval,
	})
	defer g.Close()

	log.Info().
		Uint64("seed", cfg.Seed).
		Int("count", params.Count).
		Int("branches", params.Branches).
		Msg("starting")

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Error().Err(err).Msg("run")
		os.Exit(1)
	}
}
