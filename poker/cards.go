// Package poker provides the card model, deck handling and hand evaluation
// used by the rest of the trainer.
//
// Cards are single bits in a uint64 (bit = suit*13 + rank) so that sets of
// cards, dead-card exclusion and evaluation all reduce to mask arithmetic.
package poker

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
	"unicode"
)

// ErrInvalidInput is returned (wrapped) for malformed card, hand or range text.
var ErrInvalidInput = errors.New("invalid input")

// Ranks, 0-based from deuce.
const (
	Two uint8 = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// Suits.
const (
	Clubs uint8 = iota
	Diamonds
	Hearts
	Spades
)

const (
	rankChars   = "23456789TJQKA"
	suitChars   = "cdhs"
	suitSymbols = "♣♦♥♠"
)

// Card is a single playing card encoded as one bit.
type Card uint64

// NewCard creates a card from a 0-based rank and a suit.
func NewCard(rank, suit uint8) Card {
	return Card(1) << (uint(suit)*13 + uint(rank))
}

func (c Card) index() int {
	return bits.TrailingZeros64(uint64(c))
}

// Rank returns the 0-based rank (Two=0 .. Ace=12).
func (c Card) Rank() uint8 {
	return uint8(c.index() % 13)
}

// Suit returns the suit of the card.
func (c Card) Suit() uint8 {
	return uint8(c.index() / 13)
}

// Value returns the numeric rank value used for ordering, 2..14.
func (c Card) Value() int {
	return int(c.Rank()) + 2
}

// Valid reports whether c is exactly one of the 52 cards.
func (c Card) Valid() bool {
	return c != 0 && c&(c-1) == 0 && c.index() < 52
}

// String returns the two character form, e.g. "As".
func (c Card) String() string {
	if !c.Valid() {
		return "??"
	}
	return string(rankChars[c.Rank()]) + string(suitChars[c.Suit()])
}

// Symbol returns the rank followed by a suit glyph, e.g. "A♠".
func (c Card) Symbol() string {
	if !c.Valid() {
		return "??"
	}
	return string(rankChars[c.Rank()]) + string([]rune(suitSymbols)[c.Suit()])
}

// RankChar returns the rank symbol for a 0-based rank.
func RankChar(rank uint8) byte {
	if rank > Ace {
		return '?'
	}
	return rankChars[rank]
}

// ParseRank converts a rank symbol (case-insensitive) to a 0-based rank.
func ParseRank(b byte) (uint8, bool) {
	i := strings.IndexByte(rankChars, byte(unicode.ToUpper(rune(b))))
	if i < 0 {
		return 0, false
	}
	return uint8(i), true
}

// ParseCard parses a card such as "As", "td" or "9C".
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("%w: card %q must be 2 characters", ErrInvalidInput, s)
	}
	rank, ok := ParseRank(s[0])
	if !ok {
		return 0, fmt.Errorf("%w: unknown rank %q in %q", ErrInvalidInput, s[0], s)
	}
	suit := strings.IndexByte(suitChars, byte(unicode.ToLower(rune(s[1]))))
	if suit < 0 {
		return 0, fmt.Errorf("%w: unknown suit %q in %q", ErrInvalidInput, s[1], s)
	}
	return NewCard(rank, uint8(suit)), nil
}

// MustParseCard parses a card and panics on error. Intended for tests.
func MustParseCard(s string) Card {
	c, err := ParseCard(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseHand parses a concatenated list of cards such as "AhKd" or "Td 7s 8h".
// Whitespace is ignored. Any invalid or repeated card invalidates the result.
func ParseHand(s string) ([]Card, error) {
	s = strings.Join(strings.Fields(s), "")
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("%w: card string %q has odd length", ErrInvalidInput, s)
	}

	cards := make([]Card, 0, len(s)/2)
	var seen Hand
	for i := 0; i < len(s); i += 2 {
		c, err := ParseCard(s[i : i+2])
		if err != nil {
			return nil, err
		}
		if seen.HasCard(c) {
			return nil, fmt.Errorf("%w: duplicate card %s", ErrInvalidInput, c)
		}
		seen.AddCard(c)
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseHand parses cards and panics on error. Intended for tests.
func MustParseHand(s string) []Card {
	cards, err := ParseHand(s)
	if err != nil {
		panic(err)
	}
	return cards
}

// FormatCards joins cards with a separator.
func FormatCards(cards []Card, sep string) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, sep)
}

// Hand is a set of cards stored as a bitset.
type Hand uint64

// NewHand builds a hand from cards.
func NewHand(cards ...Card) Hand {
	var h Hand
	for _, c := range cards {
		h |= Hand(c)
	}
	return h
}

// AddCard adds a card to the hand.
func (h *Hand) AddCard(c Card) {
	*h |= Hand(c)
}

// RemoveCard removes a card from the hand.
func (h *Hand) RemoveCard(c Card) {
	*h &^= Hand(c)
}

// HasCard reports whether the card is in the hand.
func (h Hand) HasCard(c Card) bool {
	return h&Hand(c) != 0
}

// CountCards returns the number of cards in the hand.
func (h Hand) CountCards() int {
	return bits.OnesCount64(uint64(h))
}

// GetSuitMask returns the 13-bit rank mask for one suit.
func (h Hand) GetSuitMask(suit uint8) uint16 {
	return uint16(uint64(h)>>(uint(suit)*13)) & 0x1FFF
}

// RankMask returns the union of ranks present in any suit.
func (h Hand) RankMask() uint16 {
	return h.GetSuitMask(Clubs) | h.GetSuitMask(Diamonds) | h.GetSuitMask(Hearts) | h.GetSuitMask(Spades)
}

// Cards returns the cards in the hand in canonical deck order.
func (h Hand) Cards() []Card {
	cards := make([]Card, 0, h.CountCards())
	for rank := Two; rank <= Ace; rank++ {
		for suit := Clubs; suit <= Spades; suit++ {
			if c := NewCard(rank, suit); h.HasCard(c) {
				cards = append(cards, c)
			}
		}
	}
	return cards
}

// String returns the cards in the hand, e.g. "2c7dAs".
func (h Hand) String() string {
	return FormatCards(h.Cards(), "")
}
