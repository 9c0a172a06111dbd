package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

func main() {
	rulesName := flag.String("rules", "extended", "rule set to play under (classic or extended)")
	difficulty := flag.String("difficulty", "", "opponent difficulty (easy, normal, hard; default from prefabs)")
	scriptPath := flag.String("script", "", "opponent policy script in prefabs/scripts/ (overrides prefabs)")
	twoPlayer := flag.Bool("2p", false, "second human controls the right fighter instead of the AI")
	debug := flag.Bool("debug", false, "enable debug overlay, prefab hot reload and state snapshots")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	logger, err := buildLogger(*debug)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(1280, 720)
	ebiten.SetWindowTitle("ringside")

	game, err := NewGame(GameOptions{
		Rules:      *rulesName,
		Difficulty: *difficulty,
		Script:     *scriptPath,
		TwoPlayer:  *twoPlayer,
		Debug:      *debug,
		Logger:     logger,
	})
	if err != nil {
		logger.Fatal("game setup failed", zap.Error(err))
	}

	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal("game loop exited", zap.Error(err))
	}
}

func buildLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.DisableStacktrace = true
	return cfg.Build()
}
