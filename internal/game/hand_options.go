package game

import (
	"math/rand/v2"

	"github.com/lox/holdem-trainer/poker"
)

// HandOption configures a table or hand during creation.
type HandOption func(*handConfig)

// handConfig holds all configuration for creating a hand.
type handConfig struct {
	rules    Rules
	heroSeat int // -1 for an all-bot table
	names    [NumSeats]string
	deck     *poker.Deck // pre-ordered deck, overrides the rng shuffle
	handID   int
}

func newHandConfig(opts []HandOption) *handConfig {
	cfg := &handConfig{
		rules:  DefaultRules(),
		handID: 1,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// StartHand deals a new hand. The dealer button moves one seat on from
// previousDealer, every stack is reset to the starting stack, hole cards are
// dealt and the blinds posted. The first seat after the big blind acts first.
//
// The RNG is required unless WithDeck supplies the card order:
//
//	rng := randutil.New(42)
//	t := StartHand(rng, t.Dealer, WithHandID(t.HandID+1))
func StartHand(rng *rand.Rand, previousDealer int, opts ...HandOption) *Table {
	cfg := newHandConfig(opts)
	if rng == nil && cfg.deck == nil {
		panic("rng is required to deal a hand")
	}

	t := &Table{
		HandID:        cfg.handID,
		Phase:         PhasePlaying,
		Street:        Preflop,
		Rules:         cfg.rules,
		Dealer:        (previousDealer + 1) % NumSeats,
		ToAct:         -1,
		LastAggressor: -1,
	}
	t.seatPlayers(cfg)

	if cfg.deck != nil {
		t.Deck = *cfg.deck
	} else {
		t.Deck = poker.NewDeck().Shuffle(rng)
	}
	for i := range t.Seats {
		t.Seats[i].Hole, t.Deck = t.Deck.Deal(2)
	}

	sbSeat := (t.Dealer + 1) % NumSeats
	bbSeat := (t.Dealer + 2) % NumSeats
	t.commit(sbSeat, cfg.rules.SmallBlind)
	t.commit(bbSeat, cfg.rules.BigBlind)

	t.CurrentBet = t.Seats[bbSeat].Bet
	t.MinRaiseTo = 2 * cfg.rules.BigBlind
	t.LastAggressor = bbSeat
	t.ToAct = t.nextActor(bbSeat)

	t.logf("Hand #%d | Dealer: %s", t.HandID, t.Seats[t.Dealer].Name)
	t.logf("Blinds: SB %d, BB %d", cfg.rules.SmallBlind, cfg.rules.BigBlind)
	return t
}

// NextHand deals the following hand at the same table: same seats and
// stakes, button moved on and the hand number increased.
func (t *Table) NextHand(rng *rand.Rand, opts ...HandOption) *Table {
	base := []HandOption{
		WithRules(t.Rules),
		WithHandID(t.HandID + 1),
		WithHeroSeat(-1),
	}
	for i := range t.Seats {
		if t.Seats[i].IsHero {
			base = append(base, WithHeroSeat(i))
		}
		base = append(base, WithSeatName(i, t.Seats[i].Name))
	}
	return StartHand(rng, t.Dealer, append(base, opts...)...)
}

// commit moves up to amount chips from a seat's stack into the pot.
func (t *Table) commit(seat, amount int) int {
	s := &t.Seats[seat]
	amount = min(amount, s.Stack)
	s.Stack -= amount
	s.Bet += amount
	s.Committed += amount
	t.Pot += amount
	return amount
}

// Option Functions

// WithRules sets blinds and starting stack together.
func WithRules(rules Rules) HandOption {
	return func(c *handConfig) {
		c.rules = rules
	}
}

// WithBlinds sets the small and big blind.
func WithBlinds(small, big int) HandOption {
	return func(c *handConfig) {
		c.rules.SmallBlind = small
		c.rules.BigBlind = big
	}
}

// WithStartingStack sets the stack every seat starts the hand with.
func WithStartingStack(chips int) HandOption {
	return func(c *handConfig) {
		c.rules.StartingStack = chips
	}
}

// WithHeroSeat marks which seat the human plays. Use -1 for no hero.
func WithHeroSeat(seat int) HandOption {
	return func(c *handConfig) {
		c.heroSeat = seat
	}
}

// WithSeatName overrides the display name of one seat.
func WithSeatName(seat int, name string) HandOption {
	return func(c *handConfig) {
		if seat >= 0 && seat < NumSeats {
			c.names[seat] = name
		}
	}
}

// WithDeck sets a specific pre-ordered deck. Hole cards are dealt two at a
// time from seat 0 upwards, then the board.
func WithDeck(deck poker.Deck) HandOption {
	return func(c *handConfig) {
		c.deck = &deck
	}
}

// WithHandID sets the hand number.
func WithHandID(id int) HandOption {
	return func(c *handConfig) {
		c.handID = id
	}
}
