// Package config loads the trainer configuration from an HCL file.
//
//	table {
//	  small_blind    = 1
//	  big_blind      = 2
//	  starting_stack = 200
//	}
//
//	bots {
//	  open_frequency = { UTG = 0.18, BTN = 0.42 }
//	  reraise_score  = 50
//	}
//
//	equity {
//	  iterations = 5000
//	  workers    = 4
//	}
//
//	log_level      = "info"
//	history_dir    = "hands"
//	history_format = "phh"
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/holdem-trainer/internal/game"
	"github.com/lox/holdem-trainer/sdk/analysis"
)

// DefaultFilename is looked up in the working directory when no path is given.
const DefaultFilename = "holdem-trainer.hcl"

// Hand history formats.
const (
	HistoryText = "text"
	HistoryPHH  = "phh"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the complete trainer configuration.
type Config struct {
	Table         *TableConfig  `hcl:"table,block"`
	Bots          *BotsConfig   `hcl:"bots,block"`
	Equity        *EquityConfig `hcl:"equity,block"`
	LogLevel      string        `hcl:"log_level,optional"`
	LogFile       string        `hcl:"log_file,optional"`
	HistoryDir    string        `hcl:"history_dir,optional"`
	HistoryFormat string        `hcl:"history_format,optional"`
	Seed          int64         `hcl:"seed,optional"`
}

// TableConfig sets the stakes of the practice table.
type TableConfig struct {
	SmallBlind    int `hcl:"small_blind,optional"`
	BigBlind      int `hcl:"big_blind,optional"`
	StartingStack int `hcl:"starting_stack,optional"`
}

// BotsConfig overrides the bot policy. Unset values keep the defaults.
type BotsConfig struct {
	OpenFrequency map[string]float64 `hcl:"open_frequency,optional"`
	OpenTo        int                `hcl:"open_to,optional"`
	ReraiseScore  int                `hcl:"reraise_score,optional"`
	ReraiseProb   *float64           `hcl:"reraise_prob,optional"`
	CallScore     int                `hcl:"call_score,optional"`
	CallProb      *float64           `hcl:"call_prob,optional"`
	CBetProb      *float64           `hcl:"cbet_prob,optional"`
	CallBetProb   *float64           `hcl:"call_bet_prob,optional"`
}

// EquityConfig sets simulator defaults. Zero workers means one per CPU.
type EquityConfig struct {
	Iterations int `hcl:"iterations,optional"`
	Workers    int `hcl:"workers,optional"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads filename. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	return decode(file.Body)
}

// Parse decodes configuration from HCL source held in memory.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	return decode(file.Body)
}

func decode(body hcl.Body) (*Config, error) {
	var config Config
	if diags := gohcl.DecodeBody(body, nil, &config); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	rules := game.DefaultRules()
	if c.Table == nil {
		c.Table = &TableConfig{}
	}
	if c.Table.SmallBlind == 0 {
		c.Table.SmallBlind = rules.SmallBlind
	}
	if c.Table.BigBlind == 0 {
		c.Table.BigBlind = rules.BigBlind
	}
	if c.Table.StartingStack == 0 {
		c.Table.StartingStack = rules.StartingStack
	}
	if c.Bots == nil {
		c.Bots = &BotsConfig{}
	}
	if c.Equity == nil {
		c.Equity = &EquityConfig{}
	}
	if c.Equity.Iterations == 0 {
		c.Equity.Iterations = analysis.DefaultIterations
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.HistoryFormat == "" {
		c.HistoryFormat = HistoryText
	}
}

// Validate checks the configuration for values the table cannot play with.
func (c *Config) Validate() error {
	t := c.Table
	if t.SmallBlind <= 0 {
		return fmt.Errorf("%w: small blind must be positive", ErrInvalid)
	}
	if t.BigBlind <= t.SmallBlind {
		return fmt.Errorf("%w: big blind must be greater than small blind", ErrInvalid)
	}
	if t.StartingStack <= t.BigBlind {
		return fmt.Errorf("%w: starting stack must cover the big blind", ErrInvalid)
	}
	if c.Equity.Iterations <= 0 {
		return fmt.Errorf("%w: equity iterations must be positive", ErrInvalid)
	}
	if c.Equity.Workers < 0 {
		return fmt.Errorf("%w: equity workers cannot be negative", ErrInvalid)
	}
	if c.HistoryFormat != HistoryText && c.HistoryFormat != HistoryPHH {
		return fmt.Errorf("%w: history format must be %q or %q", ErrInvalid, HistoryText, HistoryPHH)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if _, err := c.BotConfig(); err != nil {
		return err
	}
	return nil
}

// Rules returns the table stakes.
func (c *Config) Rules() game.Rules {
	return game.Rules{
		SmallBlind:    c.Table.SmallBlind,
		BigBlind:      c.Table.BigBlind,
		StartingStack: c.Table.StartingStack,
	}
}

// Level parses the configured log level.
func (c *Config) Level() (log.Level, error) {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return level, nil
}

// BotConfig applies the overrides to the default bot policy.
func (c *Config) BotConfig() (game.BotConfig, error) {
	cfg := game.DefaultBotConfig()
	b := c.Bots

	for name, freq := range b.OpenFrequency {
		pos, ok := parsePosition(name)
		if !ok {
			return cfg, fmt.Errorf("%w: unknown position %q in open_frequency", ErrInvalid, name)
		}
		if freq < 0 || freq > 1 {
			return cfg, fmt.Errorf("%w: open_frequency for %s must be within [0,1]", ErrInvalid, pos)
		}
		cfg.OpenFrequency[pos] = freq
	}
	if b.OpenTo != 0 {
		cfg.OpenTo = b.OpenTo
	}
	if b.ReraiseScore != 0 {
		cfg.ReraiseScore = b.ReraiseScore
	}
	if b.CallScore != 0 {
		cfg.CallScore = b.CallScore
	}

	probs := []struct {
		name string
		src  *float64
		dst  *float64
	}{
		{"reraise_prob", b.ReraiseProb, &cfg.ReraiseProb},
		{"call_prob", b.CallProb, &cfg.CallProb},
		{"cbet_prob", b.CBetProb, &cfg.CBetProb},
		{"call_bet_prob", b.CallBetProb, &cfg.CallBetProb},
	}
	for _, p := range probs {
		if p.src == nil {
			continue
		}
		if *p.src < 0 || *p.src > 1 {
			return cfg, fmt.Errorf("%w: %s must be within [0,1]", ErrInvalid, p.name)
		}
		*p.dst = *p.src
	}
	return cfg, nil
}

func parsePosition(name string) (game.Position, bool) {
	for pos := game.UTG; pos <= game.BB; pos++ {
		if strings.EqualFold(pos.String(), name) {
			return pos, true
		}
	}
	return 0, false
}
