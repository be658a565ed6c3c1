package game

import (
	"fmt"
	"slices"

	"github.com/lox/holdem-trainer/poker"
)

// NumSeats is the fixed table size.
const NumSeats = 6

// Default stakes: 1/2 blinds with 100 big blind stacks.
const (
	DefaultSmallBlind    = 1
	DefaultBigBlind      = 2
	DefaultStartingStack = 200
	// DefaultDealer is the dealer seat of a fresh table; the first hand
	// rotates it to seat 4.
	DefaultDealer = 3
)

// Phase is the hand lifecycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePlaying
	PhaseComplete
)

func (p Phase) String() string {
	return [...]string{"idle", "playing", "complete"}[p]
}

// Street represents the betting round
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
	Showdown
)

func (s Street) String() string {
	return [...]string{"preflop", "flop", "turn", "river", "showdown"}[s]
}

// Position is a seat's label relative to the dealer button.
type Position int

const (
	UTG Position = iota
	HJ
	CO
	BTN
	SB
	BB
)

func (p Position) String() string {
	return [...]string{"UTG", "HJ", "CO", "BTN", "SB", "BB"}[p]
}

// PositionOf labels a seat given the dealer seat.
func PositionOf(seat, dealer int) Position {
	switch (seat - dealer + NumSeats) % NumSeats {
	case 0:
		return BTN
	case 1:
		return SB
	case 2:
		return BB
	case 3:
		return UTG
	case 4:
		return HJ
	default:
		return CO
	}
}

// Rules are the stakes a hand is played at.
type Rules struct {
	SmallBlind    int
	BigBlind      int
	StartingStack int
}

// DefaultRules returns 1/2 blinds with 200 chip stacks.
func DefaultRules() Rules {
	return Rules{
		SmallBlind:    DefaultSmallBlind,
		BigBlind:      DefaultBigBlind,
		StartingStack: DefaultStartingStack,
	}
}

// Seat is one player's state within a hand.
type Seat struct {
	Index     int
	Name      string
	Position  Position
	IsHero    bool
	Stack     int
	Bet       int // chips committed on the current street
	Committed int // chips committed over the whole hand
	InHand    bool
	Acted     bool
	Hole      []poker.Card
}

// CanAct reports whether the seat still makes decisions: in the hand and
// not all-in.
func (s *Seat) CanAct() bool {
	return s.InHand && s.Stack > 0
}

// Owed returns how much the seat must add to match the current bet.
func (s *Seat) Owed(currentBet int) int {
	return max(0, currentBet-s.Bet)
}

// Table is a snapshot of one hand. Treat values returned by this package as
// immutable; use Clone before changing anything by hand.
type Table struct {
	HandID        int
	Phase         Phase
	Street        Street
	Rules         Rules
	Seats         [NumSeats]Seat
	Dealer        int
	ToAct         int // -1 when nobody is to act
	Pot           int
	CurrentBet    int
	MinRaiseTo    int
	LastAggressor int // -1 when the street has no bet
	Board         []poker.Card
	Deck          poker.Deck
	Result        *Result
	Actions       []ActionRecord
	Log           []string
}

// ActionRecord is one accepted action, in the order it was taken.
type ActionRecord struct {
	Seat   int
	Street Street
	Action Action
}

// NewTable returns an idle table with the dealer on seat 3. Seat 0 is the
// hero unless WithHeroSeat says otherwise.
func NewTable(opts ...HandOption) *Table {
	cfg := newHandConfig(opts)
	t := &Table{
		Phase:         PhaseIdle,
		Rules:         cfg.rules,
		Dealer:        DefaultDealer,
		ToAct:         -1,
		LastAggressor: -1,
	}
	t.seatPlayers(cfg)
	return t
}

func (t *Table) seatPlayers(cfg *handConfig) {
	for i := range t.Seats {
		name := fmt.Sprintf("Bot %d", i)
		if i == cfg.heroSeat {
			name = "You"
		}
		if cfg.names[i] != "" {
			name = cfg.names[i]
		}
		t.Seats[i] = Seat{
			Index:    i,
			Name:     name,
			Position: PositionOf(i, t.Dealer),
			IsHero:   i == cfg.heroSeat,
			Stack:    cfg.rules.StartingStack,
			InHand:   true,
		}
	}
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	c := *t
	c.Board = slices.Clone(t.Board)
	c.Actions = slices.Clone(t.Actions)
	c.Log = slices.Clone(t.Log)
	for i := range c.Seats {
		c.Seats[i].Hole = slices.Clone(t.Seats[i].Hole)
	}
	if t.Result != nil {
		r := t.Result.clone()
		c.Result = &r
	}
	return &c
}

// Hero returns the hero's seat, or nil if the table has none.
func (t *Table) Hero() *Seat {
	for i := range t.Seats {
		if t.Seats[i].IsHero {
			return &t.Seats[i]
		}
	}
	return nil
}

// InHandCount returns how many seats have not folded.
func (t *Table) InHandCount() int {
	n := 0
	for i := range t.Seats {
		if t.Seats[i].InHand {
			n++
		}
	}
	return n
}

// actorCount returns how many seats can still make decisions.
func (t *Table) actorCount() int {
	n := 0
	for i := range t.Seats {
		if t.Seats[i].CanAct() {
			n++
		}
	}
	return n
}

// TotalChips returns stacks plus pot. It is constant for the life of a hand.
func (t *Table) TotalChips() int {
	total := t.Pot
	for i := range t.Seats {
		total += t.Seats[i].Stack
	}
	return total
}

// nextActor walks forward from seat and returns the first seat that can
// still act, or -1 if there is none.
func (t *Table) nextActor(from int) int {
	for i := 1; i <= NumSeats; i++ {
		s := (from + i) % NumSeats
		if t.Seats[s].CanAct() {
			return s
		}
	}
	return -1
}

// firstActorFrom returns the first seat at or after seat that can act.
func (t *Table) firstActorFrom(seat int) int {
	return t.nextActor((seat - 1 + NumSeats) % NumSeats)
}

func (t *Table) logf(format string, args ...any) {
	t.Log = append(t.Log, fmt.Sprintf(format, args...))
}

// String summarises the table on one line.
func (t *Table) String() string {
	toAct := "none"
	if t.ToAct >= 0 {
		toAct = t.Seats[t.ToAct].Position.String()
	}
	return fmt.Sprintf("hand #%d %s %s pot=%d bet=%d to-act=%s board=[%s]",
		t.HandID, t.Phase, t.Street, t.Pot, t.CurrentBet, toAct, poker.FormatCards(t.Board, " "))
}
