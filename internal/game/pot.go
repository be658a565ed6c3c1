package game

import (
	"slices"
	"strings"

	"github.com/lox/holdem-trainer/poker"
)

// ShownHand is one seat's hand at showdown.
type ShownHand struct {
	Seat  int
	Value poker.HandValue
}

// Result is how a finished hand was settled.
type Result struct {
	Pot         int
	Winners     []int // seats, first seat left of the dealer first
	Payouts     [NumSeats]int
	Shown       []ShownHand
	Uncontested bool // everyone else folded
}

func (r Result) clone() Result {
	r.Winners = slices.Clone(r.Winners)
	r.Shown = slices.Clone(r.Shown)
	return r
}

// awardUncontested gives the whole pot to the last seat standing.
func (t *Table) awardUncontested() {
	for _, seat := range t.seatsFromDealer() {
		s := &t.Seats[seat]
		if !s.InHand {
			continue
		}
		r := &Result{Pot: t.Pot, Winners: []int{seat}, Uncontested: true}
		r.Payouts[seat] = t.Pot
		s.Stack += t.Pot
		t.logf("%s wins %d (everyone folded)", s.Position, t.Pot)
		t.finish(r)
		return
	}
}

// showdown compares the best seven-card hand of every seat still in and
// splits the pot between the strongest. Chips that do not divide evenly go
// to the first winner left of the dealer.
func (t *Table) showdown() {
	t.Street = Showdown
	r := &Result{Pot: t.Pot}

	var best poker.HandValue
	for _, seat := range t.seatsFromDealer() {
		s := &t.Seats[seat]
		if !s.InHand {
			continue
		}
		v := poker.Evaluate(append(slices.Clone(s.Hole), t.Board...)...)
		r.Shown = append(r.Shown, ShownHand{Seat: seat, Value: v})
		t.logf("%s shows %s (%s)", s.Position, poker.FormatCards(s.Hole, " "), v)

		switch {
		case len(r.Winners) == 0 || v.Beats(best):
			best = v
			r.Winners = []int{seat}
		case v.Compare(best) == 0:
			r.Winners = append(r.Winners, seat)
		}
	}

	share := t.Pot / len(r.Winners)
	for _, seat := range r.Winners {
		r.Payouts[seat] = share
	}
	r.Payouts[r.Winners[0]] += t.Pot % len(r.Winners)

	names := make([]string, len(r.Winners))
	for i, seat := range r.Winners {
		t.Seats[seat].Stack += r.Payouts[seat]
		names[i] = t.Seats[seat].Position.String()
	}
	if len(r.Winners) == 1 {
		t.logf("%s wins %d with %s", names[0], t.Pot, best)
	} else {
		t.logf("%s split %d with %s", strings.Join(names, ", "), t.Pot, best)
	}
	t.finish(r)
}

func (t *Table) finish(r *Result) {
	t.Result = r
	t.Pot = 0
	t.Phase = PhaseComplete
	t.ToAct = -1
}

// seatsFromDealer lists the seats starting left of the dealer and ending on
// the dealer.
func (t *Table) seatsFromDealer() []int {
	seats := make([]int, NumSeats)
	for i := range seats {
		seats[i] = (t.Dealer + 1 + i) % NumSeats
	}
	return seats
}

// Winnings returns the net chips each seat won or lost over the hand. Only
// meaningful once the hand is complete.
func (t *Table) Winnings() [NumSeats]int {
	var out [NumSeats]int
	for i := range t.Seats {
		out[i] = -t.Seats[i].Committed
		if t.Result != nil {
			out[i] += t.Result.Payouts[i]
		}
	}
	return out
}
