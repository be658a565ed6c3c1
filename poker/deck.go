package poker

import (
	"math/rand/v2"
)

// Deck is an ordered sequence of distinct cards. Deck values are never
// modified in place: Remove, Shuffle and Deal all return new decks.
type Deck struct {
	cards []Card
}

// NewDeck returns the canonical 52-card deck in rank-major, suit-minor order
// (2c 2d 2h 2s 3c ... As).
func NewDeck() Deck {
	cards := make([]Card, 0, 52)
	for rank := Two; rank <= Ace; rank++ {
		for suit := Clubs; suit <= Spades; suit++ {
			cards = append(cards, NewCard(rank, suit))
		}
	}
	return Deck{cards: cards}
}

// DeckOf builds a deck from the given cards, dropping repeats.
func DeckOf(cards []Card) Deck {
	out := make([]Card, 0, len(cards))
	var seen Hand
	for _, c := range cards {
		if seen.HasCard(c) {
			continue
		}
		seen.AddCard(c)
		out = append(out, c)
	}
	return Deck{cards: out}
}

// Remove returns a deck without any card present in the dead sets.
func (d Deck) Remove(dead ...Hand) Deck {
	var mask Hand
	for _, h := range dead {
		mask |= h
	}
	out := make([]Card, 0, len(d.cards))
	for _, c := range d.cards {
		if !mask.HasCard(c) {
			out = append(out, c)
		}
	}
	return Deck{cards: out}
}

// Shuffle returns a uniformly permuted copy of the deck (Fisher-Yates).
func (d Deck) Shuffle(rng *rand.Rand) Deck {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return Deck{cards: out}
}

// Deal takes n cards from the top of the deck and returns them together with
// the remaining deck. It returns nil cards if the deck is too short.
func (d Deck) Deal(n int) ([]Card, Deck) {
	if n < 0 || n > len(d.cards) {
		return nil, d
	}
	dealt := make([]Card, n)
	copy(dealt, d.cards[:n])
	rest := make([]Card, len(d.cards)-n)
	copy(rest, d.cards[n:])
	return dealt, Deck{cards: rest}
}

// Len returns the number of cards in the deck.
func (d Deck) Len() int {
	return len(d.cards)
}

// Cards returns a copy of the cards in deck order.
func (d Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// Mask returns the deck as a card set.
func (d Deck) Mask() Hand {
	return NewHand(d.cards...)
}
