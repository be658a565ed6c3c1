package game

import (
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-trainer/poker"
)

// BotConfig tunes the heuristic bot. Probabilities are in [0,1]; scores are
// poker.HoleScore values.
type BotConfig struct {
	// OpenFrequency is the chance of opening an unraised pot, by position.
	OpenFrequency map[Position]float64
	OpenTo        int     // open raise total
	OpenBumpProb  float64 // chance of opening one chip bigger
	ReraiseScore  int     // minimum score to re-raise a raise
	ReraiseProb   float64
	ReraiseBy     int // re-raise to the current bet plus this
	CallScore     int // minimum score to call a raise
	CallProb      float64
	CBetProb      float64 // chance of betting when checked to postflop
	CBetDivisor   int     // postflop bet is pot / CBetDivisor
	MinBet        int
	CallBetProb   float64 // chance of calling a postflop bet
}

// DefaultBotConfig returns the standard practice table opponents.
func DefaultBotConfig() BotConfig {
	return BotConfig{
		OpenFrequency: map[Position]float64{
			UTG: 0.18,
			HJ:  0.22,
			CO:  0.28,
			BTN: 0.42,
			SB:  0.38,
			BB:  0,
		},
		OpenTo:       5,
		OpenBumpProb: 0.2,
		ReraiseScore: poker.PremiumScore,
		ReraiseProb:  0.55,
		ReraiseBy:    8,
		CallScore:    poker.StrongScore,
		CallProb:     0.7,
		CBetProb:     0.25,
		CBetDivisor:  3,
		MinBet:       2,
		CallBetProb:  0.55,
	}
}

// Bot is a coarse heuristic opponent. It is not a solver; the only promise is
// that Decide always returns an action that is legal for the seat.
type Bot struct {
	rng    *rand.Rand
	cfg    BotConfig
	logger *log.Logger
}

// NewBot creates a bot. A nil logger discards output.
func NewBot(rng *rand.Rand, cfg BotConfig, logger *log.Logger) *Bot {
	if rng == nil {
		panic("rng is required for bot decisions")
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Bot{rng: rng, cfg: cfg, logger: logger}
}

// BotAction decides for seat with the default configuration.
func BotAction(t *Table, seat int, rng *rand.Rand) Action {
	return NewBot(rng, DefaultBotConfig(), nil).Decide(t, seat)
}

// Decide picks an action for the seat. The table is not modified.
func (b *Bot) Decide(t *Table, seat int) Action {
	want := b.decide(t, seat)
	got := Legalize(t, seat, want)
	b.logger.Debug("bot decision",
		"hand", t.HandID,
		"seat", seat,
		"position", t.Seats[seat].Position,
		"street", t.Street,
		"wanted", want,
		"action", got)
	return got
}

func (b *Bot) decide(t *Table, seat int) Action {
	s := &t.Seats[seat]
	owed := s.Owed(t.CurrentBet)

	if t.Street == Preflop {
		if len(s.Hole) != 2 {
			return Action{Type: Check}
		}
		score := poker.HoleScore(s.Hole[0], s.Hole[1])

		// Nobody has raised the big blind yet.
		bbSeat := (t.Dealer + 2) % NumSeats
		if owed > 0 && t.CurrentBet == t.Rules.BigBlind && t.LastAggressor == bbSeat {
			if b.rng.Float64() < b.cfg.OpenFrequency[s.Position] {
				to := b.cfg.OpenTo
				if b.rng.Float64() < b.cfg.OpenBumpProb {
					to++
				}
				return RaiseTo(to)
			}
			return Action{Type: Fold}
		}

		if owed > 0 {
			if score >= b.cfg.ReraiseScore && b.rng.Float64() < b.cfg.ReraiseProb {
				return RaiseTo(t.CurrentBet + b.cfg.ReraiseBy)
			}
			if score >= b.cfg.CallScore && b.rng.Float64() < b.cfg.CallProb {
				return Action{Type: Call}
			}
			return Action{Type: Fold}
		}
		return Action{Type: Check}
	}

	if t.CurrentBet == 0 {
		if b.rng.Float64() < b.cfg.CBetProb {
			divisor := max(1, b.cfg.CBetDivisor)
			return RaiseTo(max(b.cfg.MinBet, t.Pot/divisor))
		}
		return Action{Type: Check}
	}

	if owed > 0 {
		if b.rng.Float64() < b.cfg.CallBetProb {
			return Action{Type: Call}
		}
		return Action{Type: Fold}
	}
	return Action{Type: Check}
}

// Legalize turns a wanted action into the closest legal one for the seat:
// a free fold becomes a check, an illegal check folds, a call with nothing
// owed checks, and raise sizes are clamped to [MinRaiseTo, all-in]. A raise
// that cannot be made falls back to a call or check.
func Legalize(t *Table, seat int, a Action) Action {
	l := LegalActions(t, seat)
	switch a.Type {
	case Fold:
		if l.Check {
			return Action{Type: Check}
		}
		return a
	case Check:
		if l.Check {
			return a
		}
		return Action{Type: Fold}
	case Call:
		if l.Call {
			return a
		}
		if l.Check {
			return Action{Type: Check}
		}
		return Action{Type: Fold}
	case Raise:
		if l.Raise {
			return RaiseTo(min(max(a.To, l.MinRaiseTo), l.MaxRaiseTo))
		}
		if l.Call {
			return Action{Type: Call}
		}
		if l.Check {
			return Action{Type: Check}
		}
		return Action{Type: Fold}
	}
	if l.Check {
		return Action{Type: Check}
	}
	return Action{Type: Fold}
}
