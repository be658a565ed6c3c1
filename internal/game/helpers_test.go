package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-trainer/poker"
)

// stackedDeck builds a deck that deals the given hole cards to seats 0..5 and
// then the board. Missing holes or board cards come from the rest of the deck
// in canonical order.
func stackedDeck(t *testing.T, holes [NumSeats]string, board string) poker.Deck {
	t.Helper()
	var used poker.Hand
	take := func(text string) []poker.Card {
		cards := poker.MustParseHand(text)
		for _, c := range cards {
			require.False(t, used.HasCard(c), "card %s used twice", c)
			used.AddCard(c)
		}
		return cards
	}

	holeCards := make([][]poker.Card, NumSeats)
	for i, h := range holes {
		holeCards[i] = take(h)
	}
	boardCards := take(board)
	rest := poker.NewDeck().Remove(used).Cards()

	fill := func(cards []poker.Card, n int) []poker.Card {
		for len(cards) < n {
			cards = append(cards, rest[0])
			rest = rest[1:]
		}
		return cards
	}

	var order []poker.Card
	for _, h := range holeCards {
		order = append(order, fill(h, 2)...)
	}
	order = append(order, fill(boardCards, 5)...)
	order = append(order, rest...)
	return poker.DeckOf(order)
}

// newHand deals hand #1 with the dealer on seat 4: SB seat 5, BB seat 0 and
// UTG seat 1 to act.
func newHand(t *testing.T, holes [NumSeats]string, board string, opts ...HandOption) *Table {
	t.Helper()
	opts = append([]HandOption{WithDeck(stackedDeck(t, holes, board))}, opts...)
	return StartHand(nil, DefaultDealer, opts...)
}

// play applies a sequence of actions, each by the seat to act.
func play(t *testing.T, table *Table, actions ...Action) *Table {
	t.Helper()
	for _, a := range actions {
		next, err := ApplyAction(table, table.ToAct, a)
		require.NoError(t, err, "applying %s for seat %d on %s", a, table.ToAct, table)
		table = next
	}
	return table
}

var (
	fold  = Action{Type: Fold}
	check = Action{Type: Check}
	call  = Action{Type: Call}
)

func requireConserved(t *testing.T, table *Table) {
	t.Helper()
	require.Equal(t, NumSeats*table.Rules.StartingStack, table.TotalChips())

	committed := 0
	for i := range table.Seats {
		committed += table.Seats[i].Committed
	}
	if table.Phase == PhasePlaying {
		require.Equal(t, committed, table.Pot)
	}
}
