package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-trainer/internal/randutil"
)

func TestBotsPlayLegalHands(t *testing.T) {
	t.Parallel()
	rng := randutil.New(99)
	bot := NewBot(rng, DefaultBotConfig(), nil)

	table := NewTable(WithHeroSeat(-1))
	for hand := 0; hand < 300; hand++ {
		table = StartHand(rng, table.Dealer, WithHeroSeat(-1), WithHandID(hand+1))
		for steps := 0; table.Phase == PhasePlaying; steps++ {
			require.Less(t, steps, 200, "hand %d did not finish", hand)
			seat := table.ToAct
			a := bot.Decide(table, seat)
			next, err := ApplyAction(table, seat, a)
			require.NoError(t, err, "hand %d seat %d chose %s on %s", hand, seat, a, table)
			table = next
			requireConserved(t, table)
		}
		require.NotNil(t, table.Result)
		assert.NotEmpty(t, table.Result.Winners)
	}
}

func TestBotOpenFrequency(t *testing.T) {
	t.Parallel()
	rng := randutil.New(7)
	bot := NewBot(randutil.New(8), DefaultBotConfig(), nil)

	const hands = 5000
	opens := 0
	for range hands {
		table := StartHand(rng, DefaultDealer)
		require.Equal(t, UTG, table.Seats[table.ToAct].Position)
		a := bot.Decide(table, table.ToAct)
		if a.Type == Raise {
			opens++
			assert.Contains(t, []int{5, 6}, a.To)
		} else {
			assert.Equal(t, Fold, a.Type)
		}
	}
	assert.InDelta(t, 0.18, float64(opens)/hands, 0.03)
}

func TestBotFacingRaise(t *testing.T) {
	t.Parallel()

	t.Run("premium re-raises about half the time", func(t *testing.T) {
		t.Parallel()
		table := newHand(t, [NumSeats]string{2: "AsAc"}, "")
		table = play(t, table, RaiseTo(5))
		require.Equal(t, 2, table.ToAct)
		bot := NewBot(randutil.New(21), DefaultBotConfig(), nil)

		const trials = 4000
		counts := map[ActionType]int{}
		for range trials {
			a := bot.Decide(table, 2)
			counts[a.Type]++
			if a.Type == Raise {
				assert.Equal(t, 13, a.To)
			}
		}
		assert.InDelta(t, 0.55, float64(counts[Raise])/trials, 0.04)
		assert.InDelta(t, 0.45*0.7, float64(counts[Call])/trials, 0.04)
	})

	t.Run("trash always folds", func(t *testing.T) {
		t.Parallel()
		table := newHand(t, [NumSeats]string{2: "7c2h"}, "")
		table = play(t, table, RaiseTo(5))
		bot := NewBot(randutil.New(22), DefaultBotConfig(), nil)

		for range 500 {
			require.Equal(t, Action{Type: Fold}, bot.Decide(table, 2))
		}
	})
}

func TestBotPostflopBetting(t *testing.T) {
	t.Parallel()
	table := newHand(t, [NumSeats]string{}, "")
	table = play(t, table, call, fold, fold, fold, fold, check)
	require.Equal(t, Flop, table.Street)
	require.Equal(t, 0, table.ToAct)
	bot := NewBot(randutil.New(31), DefaultBotConfig(), nil)

	const trials = 4000
	bets := 0
	for range trials {
		switch a := bot.Decide(table, 0); a.Type {
		case Raise:
			bets++
			// Pot of 5 is below the minimum bet of 2 at a third.
			assert.Equal(t, 2, a.To)
		default:
			assert.Equal(t, Check, a.Type)
		}
	}
	assert.InDelta(t, 0.25, float64(bets)/trials, 0.03)

	facing := play(t, table, RaiseTo(4))
	calls := 0
	for range trials {
		a := bot.Decide(facing, 1)
		require.Contains(t, []ActionType{Call, Fold}, a.Type)
		if a.Type == Call {
			calls++
		}
	}
	assert.InDelta(t, 0.55, float64(calls)/trials, 0.03)
}

func TestBotConfigOverrides(t *testing.T) {
	t.Parallel()
	cfg := DefaultBotConfig()
	cfg.OpenFrequency[UTG] = 1
	cfg.OpenBumpProb = 0
	cfg.OpenTo = 7
	bot := NewBot(randutil.New(5), cfg, nil)

	table := StartHand(randutil.New(6), DefaultDealer)
	for range 50 {
		assert.Equal(t, RaiseTo(7), bot.Decide(table, table.ToAct))
	}
}

func TestBotDecideDoesNotMutate(t *testing.T) {
	t.Parallel()
	table := StartHand(randutil.New(40), DefaultDealer)
	before := table.Clone()
	BotAction(table, table.ToAct, randutil.New(41))
	assert.Equal(t, before, table)
}

func TestNewBotRequiresRand(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { NewBot(nil, DefaultBotConfig(), nil) })
}

func TestLegalize(t *testing.T) {
	t.Parallel()
	preflop := StartHand(randutil.New(50), DefaultDealer)
	limped := play(t, preflop, call, call, call, call, call)
	raised := play(t, preflop, RaiseTo(10))
	short := raised.Clone()
	short.Seats[2].Stack = 5
	underRaise := raised.Clone()
	underRaise.Seats[2].Stack = 12

	tests := []struct {
		name  string
		table *Table
		seat  int
		want  Action
		got   Action
	}{
		{"free fold checks", limped, 0, fold, check},
		{"fold facing a bet", preflop, 1, fold, fold},
		{"check facing a bet folds", preflop, 1, check, fold},
		{"call with nothing owed checks", limped, 0, call, check},
		{"call facing a bet", preflop, 1, call, call},
		{"raise below minimum is clamped", preflop, 1, RaiseTo(3), RaiseTo(4)},
		{"raise above stack goes all-in", preflop, 1, RaiseTo(500), RaiseTo(200)},
		{"raise when covered calls", short, 2, RaiseTo(30), call},
		{"raise short of a full raise calls", underRaise, 2, RaiseTo(12), call},
		{"unknown action checks", limped, 0, Action{Type: ActionType(9)}, check},
		{"unknown action facing a bet folds", preflop, 1, Action{Type: ActionType(9)}, fold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Legalize(tt.table, tt.seat, tt.want)
			assert.Equal(t, tt.got, got)
			if tt.table.Phase == PhasePlaying && tt.table.TotalChips() == NumSeats*DefaultStartingStack {
				_, err := ApplyAction(tt.table, tt.seat, got)
				assert.NoError(t, err)
			}
		})
	}
}
