package main

import (
	"context"
	"flag"
	"math/rand"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"chosenoffset.com/shapesort/internal/audio"
	"chosenoffset.com/shapesort/internal/config"
	"chosenoffset.com/shapesort/internal/game"
	"chosenoffset.com/shapesort/internal/input/landmarkfeed"
	"chosenoffset.com/shapesort/internal/logging"
	ebitenrender "chosenoffset.com/shapesort/internal/render/ebiten"
)

func main() {
	configPath := flag.String("config", "shapesort.yaml", "YAML or JSON config file; missing means defaults")
	flag.Parse()

	boot, err := logging.New("info", false)
	if err != nil {
		panic(err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		boot.Fatal("failed to load config", zap.String("path", *configPath), zap.Error(err))
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		boot.Fatal("failed to build logger", zap.Error(err))
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("config loaded",
		zap.String("path", *configPath),
		zap.Int("round_seconds", cfg.Game.RoundDurationSeconds),
		zap.Int("shapes", cfg.Game.ShapesPerRound),
		zap.String("input", cfg.Input.Mode),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	// Hand tracking is optional; without it the pointer stays in charge.
	var feed *landmarkfeed.Server
	if cfg.Gesture.Enabled {
		feed = landmarkfeed.NewServer(cfg.Gesture.ListenAddr, logger)
		if err := feed.Listen(); err != nil {
			logger.Warn("hand tracking disabled", zap.Error(err))
			feed = nil
		} else {
			g.Go(func() error { return feed.Serve(gctx) })
		}
	}

	player := audio.NewPlayer(cfg.Audio, logger)
	if err := player.Init(); err != nil {
		logger.Warn("audio disabled", zap.Error(err))
	}
	defer player.Close()

	opts := game.Options{
		Config:   cfg,
		Renderer: ebitenrender.NewRenderer(),
		Input:    ebitenrender.NewInputManager(),
		Effects:  player,
		Rand:     rand.New(rand.NewSource(time.Now().UnixNano())),
		Logger:   logger,
	}
	if feed != nil {
		opts.Frames = feed.Frames()
	}
	manager := game.NewManager(opts)

	engine := ebitenrender.NewEngine()
	engine.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	engine.SetWindowTitle(cfg.Window.Title)
	engine.SetWindowResizable(true)
	engine.SetTPS(cfg.Window.TPS)

	logger.Info("starting game")
	runErr := engine.RunGame(manager)

	cancel()
	if err := g.Wait(); err != nil {
		logger.Error("hand tracker feed stopped with error", zap.Error(err))
	}
	if runErr != nil {
		logger.Fatal("game loop failed", zap.Error(runErr))
	}
}
