package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Stealth-Sense/internal/audio"
	"github.com/Garsondee/Stealth-Sense/internal/config"
	"github.com/Garsondee/Stealth-Sense/internal/game"
	"github.com/Garsondee/Stealth-Sense/internal/logger"
	"github.com/Garsondee/Stealth-Sense/internal/scores"
	"github.com/Garsondee/Stealth-Sense/internal/term"
)

func main() {
	var cfgPath string
	var logPath string
	var mute bool
	flag.StringVar(&cfgPath, "config", "config.yaml", "settings file (missing file uses defaults)")
	flag.StringVar(&logPath, "log", "term-heist.log", "log file (the terminal is busy drawing)")
	flag.BoolVar(&mute, "mute", false, "disable audio")
	flag.Parse()

	if err := run(cfgPath, logPath, mute); err != nil {
		fmt.Fprintln(os.Stderr, "term-heist:", err)
		os.Exit(1)
	}
}

func run(cfgPath, logPath string, mute bool) error {
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logFile.Close()
	logger.InitTo(logFile)
	log := logger.Component("main")

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	levels, err := cfg.Levels()
	if err != nil {
		return err
	}

	store, err := scores.Open(cfg.ScoreBackend, cfg.ScorePath)
	if err != nil {
		log.WithError(err).Warn("high scores disabled")
		store = nil
	} else {
		defer store.Close()
	}
	player := audio.NewPlayer(cfg.Audio && !mute)
	defer player.Close()

	r, err := game.NewRun(levels, cfg.Tuning(),
		game.WithLogger(logger.Component("run")),
		game.WithStartDifficulty(cfg.Difficulty),
	)
	if err != nil {
		return fmt.Errorf("start run: %w", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	screen.Clear()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := term.New(screen, r, term.Options{
		Store:    store,
		Audio:    player,
		Log:      logger.Component("term"),
		TickRate: cfg.TickRate,
	})
	if err := app.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	log.WithField("total", r.Total()).Info("session ended")
	return nil
}
