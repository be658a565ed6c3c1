package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-trainer/internal/config"
	"github.com/lox/holdem-trainer/internal/randutil"
	"github.com/lox/holdem-trainer/internal/tui"
	"github.com/lox/holdem-trainer/sdk/analysis"
)

const defaultConfig = config.DefaultFilename

// Globals are the flags shared by every command.
type Globals struct {
	Config   string `short:"c" type:"path" default:"${default_config}" env:"HOLDEM_TRAINER_CONFIG" help:"HCL config file"`
	LogLevel string `env:"HOLDEM_TRAINER_LOG_LEVEL" help:"Override the configured log level"`
	NoColor  bool   `help:"Disable colored output"`
	Seed     *int64 `env:"HOLDEM_TRAINER_SEED" help:"Deterministic RNG seed (optional)"`
}

// Env is what every command runs with, built once from the globals and the
// config file.
type Env struct {
	Config  *config.Config
	Seed    int64
	Seeded  bool
	Out     io.Writer
	logOut  io.Writer
	logFile *os.File
	level   log.Level
}

// Setup loads the config file and applies the global flags on top of it.
func (g *Globals) Setup(out, errOut io.Writer) (*Env, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if g.LogLevel != "" {
		cfg.LogLevel = g.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	level, _ := cfg.Level()

	if g.NoColor || os.Getenv("NO_COLOR") != "" {
		tui.DisableColor()
	}

	env := &Env{Config: cfg, Out: out, logOut: errOut, level: level}
	switch {
	case g.Seed != nil:
		env.Seed, env.Seeded = *g.Seed, true
	case cfg.Seed != 0:
		env.Seed, env.Seeded = cfg.Seed, true
	default:
		env.Seed = randutil.Seed()
	}

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		env.logFile = f
		env.logOut = f
	}
	return env, nil
}

// Logger returns a logger with the configured level and output.
func (e *Env) Logger(prefix string) *log.Logger {
	return log.NewWithOptions(e.logOut, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          prefix,
		Level:           e.level,
	})
}

// Simulator builds an equity simulator from the config. It is reproducible
// only when a seed was given.
func (e *Env) Simulator(logger *log.Logger, workers int) *analysis.Simulator {
	if workers == 0 {
		workers = e.Config.Equity.Workers
	}
	opts := []analysis.Option{analysis.WithWorkers(workers), analysis.WithLogger(logger)}
	if e.Seeded {
		opts = append(opts, analysis.WithSeed(e.Seed))
	}
	return analysis.NewSimulator(opts...)
}

// Close releases the log file, if any.
func (e *Env) Close() {
	if e.logFile != nil {
		_ = e.logFile.Close()
	}
}
