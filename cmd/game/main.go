package main

import (
	"flag"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Stealth-Sense/internal/audio"
	"github.com/Garsondee/Stealth-Sense/internal/config"
	"github.com/Garsondee/Stealth-Sense/internal/game"
	"github.com/Garsondee/Stealth-Sense/internal/logger"
	"github.com/Garsondee/Stealth-Sense/internal/scores"
	"github.com/Garsondee/Stealth-Sense/internal/view"
)

func main() {
	var cfgPath string
	var mute bool
	flag.StringVar(&cfgPath, "config", "config.yaml", "settings file (missing file uses defaults)")
	flag.BoolVar(&mute, "mute", false, "disable audio")
	flag.Parse()

	logger.Init()
	log := logger.Component("main")

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.WithError(err).Fatal("could not load config")
	}
	levels, err := cfg.Levels()
	if err != nil {
		log.WithError(err).Fatal("could not load levels")
	}

	store, err := scores.Open(cfg.ScoreBackend, cfg.ScorePath)
	if err != nil {
		log.WithError(err).Warn("high scores disabled")
		store = nil
	}
	player := audio.NewPlayer(cfg.Audio && !mute)
	defer player.Close()

	run, err := game.NewRun(levels, cfg.Tuning(),
		game.WithLogger(logger.Component("run")),
		game.WithStartDifficulty(cfg.Difficulty),
	)
	if err != nil {
		log.WithError(err).Fatal("could not start run")
	}

	g, err := view.New(run, levels, view.Options{Store: store, Audio: player, Log: logger.Component("view")})
	if err != nil {
		log.WithError(err).Fatal("could not build view")
	}
	if store != nil {
		defer store.Close()
	}

	w, h := g.WindowSize()
	ebiten.SetWindowTitle("Stealth Sense")
	ebiten.SetWindowSize(w, h)
	ebiten.SetTPS(cfg.TickRate)
	if err := ebiten.RunGame(g); err != nil {
		log.WithError(err).Error("game exited with error")
	}
}
