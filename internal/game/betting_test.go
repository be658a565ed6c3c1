package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-trainer/internal/randutil"
)

func TestRaiseSizing(t *testing.T) {
	t.Parallel()
	table := StartHand(randutil.New(10), DefaultDealer)

	_, err := ApplyAction(table, 1, RaiseTo(3))
	require.ErrorIs(t, err, ErrSizeTooSmall)

	table = play(t, table, RaiseTo(4))
	assert.Equal(t, 4, table.CurrentBet)
	assert.Equal(t, 6, table.MinRaiseTo)
	assert.Equal(t, 1, table.LastAggressor)
	assert.Equal(t, 2, table.ToAct)
	for i := range table.Seats {
		if i != 1 {
			assert.False(t, table.Seats[i].Acted, "seat %d", i)
		}
	}

	_, err = ApplyAction(table, 2, RaiseTo(5))
	require.ErrorIs(t, err, ErrSizeTooSmall)
	_, err = ApplyAction(table, 2, RaiseTo(4))
	require.ErrorIs(t, err, ErrBelowCurrentBet)
	_, err = ApplyAction(table, 2, RaiseTo(201))
	require.ErrorIs(t, err, ErrInsufficientStack)

	table = play(t, table, RaiseTo(10))
	assert.Equal(t, 16, table.MinRaiseTo)
	assert.False(t, table.Seats[1].Acted)
	requireConserved(t, table)
}

func TestRaiseReopensAction(t *testing.T) {
	t.Parallel()
	table := StartHand(randutil.New(11), DefaultDealer)
	// UTG, HJ, CO, BTN and SB limp; BB raises, so everyone acts again.
	table = play(t, table, call, call, call, call, call)
	require.Equal(t, 0, table.ToAct)
	table = play(t, table, RaiseTo(8))

	assert.Equal(t, Preflop, table.Street)
	assert.Equal(t, 1, table.ToAct)
	for i := 1; i < NumSeats; i++ {
		assert.False(t, table.Seats[i].Acted)
	}
	table = play(t, table, call, call, call, call, call)
	assert.Equal(t, Flop, table.Street)
	assert.Equal(t, 48, table.Pot)
}

func TestCheckAndCallLegality(t *testing.T) {
	t.Parallel()
	table := StartHand(randutil.New(12), DefaultDealer)

	_, err := ApplyAction(table, 1, check)
	require.ErrorIs(t, err, ErrIllegalCheck)

	table = play(t, table, call, call, call, call, call)
	require.Equal(t, 0, table.ToAct)

	_, err = ApplyAction(table, 0, call)
	require.ErrorIs(t, err, ErrNothingToCall)

	// The big blind closes the action by checking its option.
	table = play(t, table, check)
	assert.Equal(t, Flop, table.Street)
	assert.Len(t, table.Board, 3)
	assert.Equal(t, 12, table.Pot)
	assert.Zero(t, table.CurrentBet)
	assert.Zero(t, table.MinRaiseTo)
	assert.Equal(t, -1, table.LastAggressor)
	// The small blind acts first after the flop.
	assert.Equal(t, 5, table.ToAct)
}

func TestTurnOrderErrors(t *testing.T) {
	t.Parallel()
	table := StartHand(randutil.New(13), DefaultDealer)

	_, err := ApplyAction(table, 3, fold)
	require.ErrorIs(t, err, ErrOutOfTurn)

	_, err = ApplyAction(NewTable(), 0, fold)
	require.ErrorIs(t, err, ErrHandComplete)

	_, err = ApplyAction(table, 1, Action{Type: ActionType(42)})
	require.ErrorIs(t, err, ErrUnknownAction)
}

func TestApplyActionDoesNotMutateInput(t *testing.T) {
	t.Parallel()
	table := StartHand(randutil.New(14), DefaultDealer)
	before := table.Clone()

	_, err := ApplyAction(table, 1, RaiseTo(3))
	require.Error(t, err)
	require.Equal(t, before, table)

	next, err := ApplyAction(table, 1, RaiseTo(6))
	require.NoError(t, err)
	require.Equal(t, before, table)
	assert.NotEqual(t, table.Pot, next.Pot)

	advanced := AdvanceIfRoundComplete(table)
	require.Equal(t, before, table)
	assert.Equal(t, table, advanced)
}

func TestFoldsEndTheHand(t *testing.T) {
	t.Parallel()
	table := StartHand(randutil.New(15), DefaultDealer)
	table = play(t, table, fold, fold, fold, fold, fold)

	assert.Equal(t, PhaseComplete, table.Phase)
	assert.Equal(t, -1, table.ToAct)
	require.NotNil(t, table.Result)
	assert.True(t, table.Result.Uncontested)
	assert.Equal(t, []int{0}, table.Result.Winners)
	assert.Equal(t, 3, table.Result.Pot)
	assert.Equal(t, 201, table.Seats[0].Stack)
	assert.Equal(t, 199, table.Seats[5].Stack)
	assert.Zero(t, table.Pot)
	assert.Contains(t, table.Log, "BB wins 3 (everyone folded)")
	requireConserved(t, table)

	_, err := ApplyAction(table, 0, check)
	require.ErrorIs(t, err, ErrHandComplete)
}

func TestPostflopFoldToBet(t *testing.T) {
	t.Parallel()
	table := StartHand(randutil.New(16), DefaultDealer)
	table = play(t, table, RaiseTo(5), fold, fold, fold, fold, call)
	require.Equal(t, Flop, table.Street)
	require.Equal(t, 0, table.ToAct)

	_, err := ApplyAction(table, 0, RaiseTo(0))
	require.ErrorIs(t, err, ErrSizeTooSmall)

	table = play(t, table, RaiseTo(1))
	assert.Equal(t, 2, table.MinRaiseTo)
	table = play(t, table, fold)

	assert.Equal(t, PhaseComplete, table.Phase)
	assert.Equal(t, []int{0}, table.Result.Winners)
	assert.Equal(t, 206, table.Seats[0].Stack)
	requireConserved(t, table)
}

func TestShortAllInCannotRaise(t *testing.T) {
	t.Parallel()
	fresh := StartHand(randutil.New(17), DefaultDealer)
	tiny := fresh.Clone()
	tiny.Seats[1].Stack = 3

	_, err := ApplyAction(tiny, 1, RaiseTo(3))
	require.ErrorIs(t, err, ErrSizeTooSmall)
	assert.False(t, LegalActions(tiny, 1).Raise)

	table := play(t, fresh, RaiseTo(10))
	require.Equal(t, 18, table.MinRaiseTo)

	short := table.Clone()
	short.Seats[2].Stack = 12

	for _, to := range []int{11, 12} {
		_, err := ApplyAction(short, 2, RaiseTo(to))
		require.ErrorIs(t, err, ErrSizeTooSmall, "raise to %d", to)
	}
	l := LegalActions(short, 2)
	assert.False(t, l.Raise)
	assert.True(t, l.Call)

	next, err := ApplyAction(short, 2, call)
	require.NoError(t, err)
	assert.Equal(t, 10, next.CurrentBet)
	assert.Equal(t, 18, next.MinRaiseTo)
	assert.Equal(t, 2, next.Seats[2].Stack)
	assert.Equal(t, 3, next.ToAct)

	exact := table.Clone()
	exact.Seats[2].Stack = 18
	next, err = ApplyAction(exact, 2, RaiseTo(18))
	require.NoError(t, err)
	assert.Equal(t, 26, next.MinRaiseTo)
	assert.Zero(t, next.Seats[2].Stack)
}

func TestAllInRunsOutTheBoard(t *testing.T) {
	t.Parallel()
	table := newHand(t, [NumSeats]string{"AhAd", "KhKd"}, "2c7h9sJd3c")
	table = play(t, table, RaiseTo(200), fold, fold, fold, fold, call)

	assert.Equal(t, PhaseComplete, table.Phase)
	assert.Equal(t, Showdown, table.Street)
	assert.Len(t, table.Board, 5)
	assert.Equal(t, []int{0}, table.Result.Winners)
	assert.Equal(t, 401, table.Seats[0].Stack)
	assert.Zero(t, table.Seats[1].Stack)
	requireConserved(t, table)
}

func TestAllInCallWithOthersBehind(t *testing.T) {
	t.Parallel()
	table := StartHand(randutil.New(18), DefaultDealer)
	// UTG shoves and HJ calls; the rest must still get to act.
	table = play(t, table, RaiseTo(200), call)
	assert.Equal(t, Preflop, table.Street)
	assert.Equal(t, 3, table.ToAct)

	table = play(t, table, fold, fold, fold, fold)
	assert.Equal(t, PhaseComplete, table.Phase)
	assert.Len(t, table.Board, 5)
	requireConserved(t, table)
}

func TestLegalActions(t *testing.T) {
	t.Parallel()
	table := StartHand(randutil.New(19), DefaultDealer)

	l := LegalActions(table, 1)
	assert.True(t, l.Fold)
	assert.False(t, l.Check)
	assert.True(t, l.Call)
	assert.Equal(t, 2, l.CallAmount)
	assert.True(t, l.Raise)
	assert.Equal(t, 4, l.MinRaiseTo)
	assert.Equal(t, 200, l.MaxRaiseTo)

	assert.Equal(t, Legal{}, LegalActions(table, 2))

	table = play(t, table, call, call, call, call, call)
	l = LegalActions(table, 0)
	assert.True(t, l.Check)
	assert.False(t, l.Call)
	assert.Equal(t, 4, l.MinRaiseTo)

	table = play(t, table, check)
	l = LegalActions(table, table.ToAct)
	assert.Equal(t, 1, l.MinRaiseTo)
	assert.Equal(t, 198, l.MaxRaiseTo)
}

func TestParseAction(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input string
		want  Action
		err   error
	}{
		{"fold", fold, nil},
		{"  CHECK ", check, nil},
		{"call", call, nil},
		{"bet 6", RaiseTo(6), nil},
		{"Raise 20", RaiseTo(20), nil},
		{"raise", Action{}, ErrUnknownAction},
		{"raise lots", Action{}, ErrSizeTooSmall},
		{"call 5", Action{}, ErrUnknownAction},
		{"shove", Action{}, ErrUnknownAction},
		{"", Action{}, ErrUnknownAction},
	}

	for _, tt := range tests {
		got, err := ParseAction(tt.input)
		if tt.err != nil {
			assert.ErrorIs(t, err, tt.err, tt.input)
			continue
		}
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}
	assert.Equal(t, "raise to 6", RaiseTo(6).String())
}
