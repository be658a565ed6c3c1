package phh

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lox/holdem-trainer/internal/game"
	"github.com/lox/holdem-trainer/poker"
)

// Variant is the PHH code for no-limit Texas hold'em.
const Variant = "NT"

// ErrIncomplete is returned when converting a hand that has not finished.
var ErrIncomplete = errors.New("phh: hand is not complete")

// Encode writes the hand history to w in PHH TOML format.
func Encode(w io.Writer, hand *HandHistory) error {
	if hand == nil {
		return fmt.Errorf("phh: hand history is nil")
	}
	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(hand)
}

// Decode reads one hand from r.
func Decode(r io.Reader) (*HandHistory, error) {
	var hand HandHistory
	if _, err := toml.NewDecoder(r).Decode(&hand); err != nil {
		return nil, fmt.Errorf("phh: %w", err)
	}
	if hand.Variant != Variant {
		return nil, fmt.Errorf("phh: unsupported variant %q", hand.Variant)
	}
	return &hand, nil
}

// FormatAction converts a table action to its PHH form for player p (1-based).
func FormatAction(p int, a game.Action) string {
	switch a.Type {
	case game.Fold:
		return fmt.Sprintf("p%d f", p)
	case game.Check, game.Call:
		return fmt.Sprintf("p%d cc", p)
	default:
		return fmt.Sprintf("p%d cbr %d", p, a.To)
	}
}

// FromTable converts a finished hand. table names the session the hand
// belongs to and at stamps the record.
func FromTable(t *game.Table, table string, at time.Time) (*HandHistory, error) {
	if t.Phase != game.PhaseComplete || t.Result == nil {
		return nil, ErrIncomplete
	}

	// order[i] is the table seat of player i+1.
	var order, player [game.NumSeats]int
	for i := range order {
		order[i] = (t.Dealer + 1 + i) % game.NumSeats
		player[order[i]] = i + 1
	}

	zone, _ := at.Zone()
	h := &HandHistory{
		Variant:           Variant,
		Table:             table,
		SeatCount:         game.NumSeats,
		Antes:             make([]int, game.NumSeats),
		BlindsOrStraddles: make([]int, game.NumSeats),
		MinBet:            t.Rules.BigBlind,
		HandID:            fmt.Sprint(t.HandID),
		Time:              at.Format(time.TimeOnly),
		TimeZone:          zone,
		Day:               at.Day(),
		Month:             int(at.Month()),
		Year:              at.Year(),
	}
	h.BlindsOrStraddles[0] = t.Rules.SmallBlind
	h.BlindsOrStraddles[1] = t.Rules.BigBlind

	for _, seat := range order {
		s := &t.Seats[seat]
		won := t.Result.Payouts[seat]
		h.Seats = append(h.Seats, seat+1)
		h.Players = append(h.Players, s.Name)
		h.StartingStacks = append(h.StartingStacks, s.Stack+s.Committed-won)
		h.FinishingStacks = append(h.FinishingStacks, s.Stack)
		h.Winnings = append(h.Winnings, won)
		h.Actions = append(h.Actions, fmt.Sprintf("d dh p%d %s", player[seat], cards(s.Hole)))
	}

	street := game.Preflop
	for _, rec := range t.Actions {
		for street < rec.Street {
			street++
			h.Actions = append(h.Actions, "d db "+cards(boardFor(t.Board, street)))
		}
		h.Actions = append(h.Actions, FormatAction(player[rec.Seat], rec.Action))
	}
	for street < game.River && len(boardFor(t.Board, street+1)) > 0 {
		street++
		h.Actions = append(h.Actions, "d db "+cards(boardFor(t.Board, street)))
	}

	for _, shown := range t.Result.Shown {
		h.Actions = append(h.Actions, fmt.Sprintf("p%d sm %s", player[shown.Seat], cards(t.Seats[shown.Seat].Hole)))
	}
	return h, nil
}

// boardFor returns the cards dealt on street, or nil if it was not reached.
func boardFor(board []poker.Card, street game.Street) []poker.Card {
	lo, hi := 0, 0
	switch street {
	case game.Flop:
		lo, hi = 0, 3
	case game.Turn:
		lo, hi = 3, 4
	case game.River:
		lo, hi = 4, 5
	}
	if hi == 0 || len(board) < hi {
		return nil
	}
	return board[lo:hi]
}

func cards(cs []poker.Card) string {
	return poker.FormatCards(cs, "")
}
