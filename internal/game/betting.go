package game

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/holdem-trainer/poker"
)

// ActionType is what a seat chooses to do.
type ActionType int

const (
	Fold ActionType = iota
	Check
	Call
	Raise // bet or raise to Action.To
)

func (a ActionType) String() string {
	return [...]string{"fold", "check", "call", "raise"}[a]
}

// Action is a decision for the seat to act. For Raise, To is the total the
// seat's street bet is raised to, not the increment.
type Action struct {
	Type ActionType
	To   int
}

// RaiseTo returns a bet or raise to the given total.
func RaiseTo(amount int) Action {
	return Action{Type: Raise, To: amount}
}

func (a Action) String() string {
	if a.Type == Raise {
		return fmt.Sprintf("raise to %d", a.To)
	}
	return a.Type.String()
}

// ParseAction reads a typed command: "fold", "check", "call", "bet N" or
// "raise N". Case and surrounding space are ignored.
func ParseAction(text string) (Action, error) {
	fields := strings.Fields(strings.ToLower(text))
	if len(fields) == 0 {
		return Action{}, fmt.Errorf("%w: empty command", ErrUnknownAction)
	}

	switch cmd := fields[0]; cmd {
	case "fold", "check", "call":
		if len(fields) != 1 {
			return Action{}, fmt.Errorf("%w: %s takes no amount", ErrUnknownAction, cmd)
		}
		return Action{Type: map[string]ActionType{"fold": Fold, "check": Check, "call": Call}[cmd]}, nil
	case "bet", "raise":
		if len(fields) != 2 {
			return Action{}, fmt.Errorf("%w: %s needs an amount", ErrUnknownAction, cmd)
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			return Action{}, fmt.Errorf("%w: bad amount %q", ErrSizeTooSmall, fields[1])
		}
		return RaiseTo(n), nil
	default:
		return Action{}, fmt.Errorf("%w: %q", ErrUnknownAction, cmd)
	}
}

// Legal describes what a seat may do right now.
type Legal struct {
	Fold       bool
	Check      bool
	Call       bool
	CallAmount int
	Raise      bool
	MinRaiseTo int
	MaxRaiseTo int // all-in total
}

// LegalActions reports the options of a seat. Everything is false unless it
// is that seat's turn in a live hand.
func LegalActions(t *Table, seat int) Legal {
	if t.Phase != PhasePlaying || seat != t.ToAct {
		return Legal{}
	}
	s := &t.Seats[seat]
	owed := s.Owed(t.CurrentBet)
	allIn := s.Bet + s.Stack

	l := Legal{
		Fold:       true,
		Check:      owed == 0,
		Call:       owed > 0 && s.Stack > 0,
		CallAmount: min(owed, s.Stack),
		MaxRaiseTo: allIn,
	}
	switch {
	case t.CurrentBet == 0 && allIn > 0:
		l.Raise = true
		l.MinRaiseTo = min(max(t.MinRaiseTo, 1), allIn)
	case t.CurrentBet > 0 && allIn >= t.MinRaiseTo:
		// A stack that cannot reach a full raise may only call.
		l.Raise = true
		l.MinRaiseTo = t.MinRaiseTo
	}
	return l
}

// ApplyAction applies one action for the seat to act and returns the
// resulting table. The input table is never modified. On success the turn
// passes on and the street advances once its betting is complete; the hand
// may finish, in which case Result is set.
func ApplyAction(t *Table, seat int, a Action) (*Table, error) {
	if t.Phase != PhasePlaying {
		return nil, ErrHandComplete
	}
	if seat != t.ToAct {
		return nil, fmt.Errorf("%w: seat %d acted but seat %d is to act", ErrOutOfTurn, seat, t.ToAct)
	}

	next := t.Clone()
	s := &next.Seats[seat]
	owed := s.Owed(next.CurrentBet)

	switch a.Type {
	case Fold:
		s.InHand = false
		s.Acted = true
		next.logf("%s folds", s.Position)

	case Check:
		if owed > 0 {
			return nil, fmt.Errorf("%w: %d to call", ErrIllegalCheck, owed)
		}
		s.Acted = true
		next.logf("%s checks", s.Position)

	case Call:
		if owed == 0 || s.Stack == 0 {
			return nil, ErrNothingToCall
		}
		paid := next.commit(seat, owed)
		s.Acted = true
		next.logf("%s calls %d", s.Position, paid)

	case Raise:
		if err := next.raiseTo(seat, a.To); err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownAction, a.Type)
	}
	next.Actions = append(next.Actions, ActionRecord{Seat: seat, Street: t.Street, Action: a})

	next.ToAct = next.nextActor(seat)
	next.advance()
	return next, nil
}

// raiseTo validates and applies a bet (no bet yet this street) or a raise.
func (t *Table) raiseTo(seat, target int) error {
	s := &t.Seats[seat]
	allIn := s.Bet + s.Stack
	opening := t.CurrentBet == 0

	if target < 1 {
		return fmt.Errorf("%w: %d", ErrSizeTooSmall, target)
	}
	if target <= t.CurrentBet {
		return fmt.Errorf("%w: %d is not above %d", ErrBelowCurrentBet, target, t.CurrentBet)
	}
	if target > allIn {
		return fmt.Errorf("%w: raising to %d needs %d, stack is %d", ErrInsufficientStack, target, target-s.Bet, s.Stack)
	}
	if !opening && target < t.MinRaiseTo {
		return fmt.Errorf("%w: min raise-to is %d", ErrSizeTooSmall, t.MinRaiseTo)
	}

	t.commit(seat, target-s.Bet)

	t.MinRaiseTo = target + (target - t.CurrentBet)
	t.CurrentBet = target
	t.LastAggressor = seat

	for i := range t.Seats {
		if i != seat && t.Seats[i].InHand {
			t.Seats[i].Acted = false
		}
	}
	s.Acted = true

	verb := "raises"
	if opening {
		verb = "bets"
	}
	if s.Stack == 0 {
		t.logf("%s %s to %d (all-in)", s.Position, verb, target)
	} else {
		t.logf("%s %s to %d", s.Position, verb, target)
	}
	return nil
}

// roundComplete reports whether the current street's betting is closed: one
// seat left, or every seat that can act has acted and matched the bet. When
// at most one seat can act and nobody owes chips, nobody is left to bet.
func (t *Table) roundComplete() bool {
	if t.InHandCount() <= 1 {
		return true
	}
	actors := 0
	for i := range t.Seats {
		s := &t.Seats[i]
		if !s.CanAct() {
			continue
		}
		actors++
		if s.Bet < t.CurrentBet {
			return false
		}
	}
	if actors <= 1 {
		return true
	}
	for i := range t.Seats {
		s := &t.Seats[i]
		if s.CanAct() && !s.Acted {
			return false
		}
	}
	return true
}

// AdvanceIfRoundComplete ends the hand if only one seat is left, otherwise
// moves to the next street when the current betting round is closed. A table
// that is not ready is returned unchanged. The input is never modified.
func AdvanceIfRoundComplete(t *Table) *Table {
	next := t.Clone()
	next.advance()
	return next
}

func (t *Table) advance() {
	if t.Phase != PhasePlaying {
		return
	}
	if t.InHandCount() <= 1 {
		t.awardUncontested()
		return
	}
	if !t.roundComplete() {
		return
	}

	for {
		if t.Street >= River {
			t.showdown()
			return
		}
		t.nextStreet()
		// With nobody left to bet, run the board out.
		if t.actorCount() > 1 {
			t.ToAct = t.firstActorFrom((t.Dealer + 1) % NumSeats)
			return
		}
	}
}

func (t *Table) nextStreet() {
	for i := range t.Seats {
		t.Seats[i].Bet = 0
		t.Seats[i].Acted = false
	}
	t.CurrentBet = 0
	t.MinRaiseTo = 0
	t.LastAggressor = -1
	t.ToAct = -1

	n := 1
	if t.Street == Preflop {
		n = 3
	}
	t.Street++

	var cards []poker.Card
	cards, t.Deck = t.Deck.Deal(n)
	t.Board = append(t.Board, cards...)
	t.logf("%s: %s", strings.ToUpper(t.Street.String()), poker.FormatCards(t.Board, " "))
}
