package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-trainer/internal/config"
	"github.com/lox/holdem-trainer/internal/game"
	"github.com/lox/holdem-trainer/internal/phh"
	"github.com/lox/holdem-trainer/internal/sessionid"
	"github.com/lox/holdem-trainer/internal/trainer"
	"github.com/lox/holdem-trainer/internal/tui"
)

// PracticeCmd opens the practice table.
type PracticeCmd struct {
	HeroSeat      int    `default:"0" help:"Seat the hero sits in (0-5)"`
	HistoryDir    string `type:"path" help:"Write finished hands to this directory (overrides history_dir)"`
	HistoryFormat string `help:"Hand history format: text or phh (overrides history_format)"`
}

func (c *PracticeCmd) Run(env *Env) error {
	if c.HeroSeat < 0 || c.HeroSeat >= game.NumSeats {
		return fmt.Errorf("hero seat must be between 0 and %d", game.NumSeats-1)
	}

	// The full screen UI owns the terminal, so logs only go to a file.
	logger := log.New(io.Discard)
	if env.logFile != nil {
		logger = env.Logger("practice")
	}

	session, err := c.session(env, logger)
	if err != nil {
		return err
	}
	logger.Info("Starting practice session", "session", session.ID(), "seed", session.Seed(), "hero_seat", c.HeroSeat)

	ctx, stop := signalContext(logger)
	defer stop()
	return tui.Run(ctx, session, logger)
}

func (c *PracticeCmd) session(env *Env, logger *log.Logger) (*trainer.Session, error) {
	cfg := env.Config
	botCfg, err := cfg.BotConfig()
	if err != nil {
		return nil, err
	}

	id := sessionid.Generate()
	opts := []trainer.Option{
		trainer.WithID(id),
		trainer.WithSeed(env.Seed),
		trainer.WithRules(cfg.Rules()),
		trainer.WithHeroSeat(c.HeroSeat),
		trainer.WithBotConfig(botCfg),
		trainer.WithLogger(logger),
		trainer.WithSimulator(env.Simulator(logger, 0), cfg.Equity.Iterations),
	}

	dir := cfg.HistoryDir
	if c.HistoryDir != "" {
		dir = c.HistoryDir
	}
	if dir != "" {
		format := cfg.HistoryFormat
		if c.HistoryFormat != "" {
			format = c.HistoryFormat
		}
		if format != config.HistoryText && format != config.HistoryPHH {
			return nil, fmt.Errorf("unknown history format %q", format)
		}
		// Hand numbers restart every session, so each one gets its own directory.
		dir = filepath.Join(dir, id)
		var w game.HistoryWriter = game.NewFileHistoryWriter(dir)
		if format == config.HistoryPHH {
			w = phh.NewFileWriter(dir, id, nil)
		}
		opts = append(opts, trainer.WithHistoryWriter(w))
	}
	return trainer.New(opts...), nil
}
