package poker

import (
	"fmt"
	"math/bits"
)

// Category enumerates hand classes ordered from weakest to strongest.
type Category uint8

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// Categories lists every category from strongest to weakest.
var Categories = []Category{
	RoyalFlush, StraightFlush, FourOfAKind, FullHouse, Flush,
	Straight, ThreeOfAKind, TwoPair, Pair, HighCard,
}

func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// HandValue is the result of evaluating a hand. Values compare by Category
// first and then by Strength; equal pairs are exact ties.
//
// Strength packs the deciding rank values (2..14) as base-16 digits, most
// significant first. A full house of 2s over 7s is 0x27, a wheel is 0x5.
type HandValue struct {
	Category Category
	Strength uint32
}

// Compare returns 1 if v beats other, -1 if other beats v and 0 on a tie.
func (v HandValue) Compare(other HandValue) int {
	switch {
	case v.Category > other.Category:
		return 1
	case v.Category < other.Category:
		return -1
	case v.Strength > other.Strength:
		return 1
	case v.Strength < other.Strength:
		return -1
	}
	return 0
}

// Beats reports whether v is strictly stronger than other.
func (v HandValue) Beats(other HandValue) bool {
	return v.Compare(other) > 0
}

// digit returns the i-th packed rank value counting from the most
// significant position, for a strength holding n digits.
func (v HandValue) digit(i, n int) int {
	return int(v.Strength>>(uint(n-1-i)*4)) & 0xF
}

// String returns a human-readable description such as "Full House, 2s full of 7s".
func (v HandValue) String() string {
	switch v.Category {
	case RoyalFlush:
		return "Royal Flush"
	case StraightFlush:
		return fmt.Sprintf("Straight Flush, %s high", rankName(v.digit(0, 1)))
	case FourOfAKind:
		return fmt.Sprintf("Four of a Kind, %s", rankPlural(v.digit(0, 2)))
	case FullHouse:
		return fmt.Sprintf("Full House, %s full of %s", rankPlural(v.digit(0, 2)), rankPlural(v.digit(1, 2)))
	case Flush:
		return fmt.Sprintf("Flush, %s high", rankName(v.digit(0, 5)))
	case Straight:
		return fmt.Sprintf("Straight, %s high", rankName(v.digit(0, 1)))
	case ThreeOfAKind:
		return fmt.Sprintf("Three of a Kind, %s", rankPlural(v.digit(0, 3)))
	case TwoPair:
		return fmt.Sprintf("Two Pair, %s and %s", rankPlural(v.digit(0, 3)), rankPlural(v.digit(1, 3)))
	case Pair:
		return fmt.Sprintf("Pair of %s", rankPlural(v.digit(0, 4)))
	default:
		return fmt.Sprintf("High Card, %s", rankName(int(v.Strength>>(uint(highCardDigits(v.Strength)-1)*4))&0xF))
	}
}

func highCardDigits(strength uint32) int {
	n := (bits.Len32(strength) + 3) / 4
	if n == 0 {
		return 1
	}
	return n
}

var rankNames = [...]string{"Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine", "Ten", "Jack", "Queen", "King", "Ace"}

func rankName(value int) string {
	if value < 2 || value > 14 {
		return "?"
	}
	return rankNames[value-2]
}

func rankPlural(value int) string {
	if value == 6 {
		return "Sixes"
	}
	return rankName(value) + "s"
}

// Evaluate scores the best five-card hand available from the cards.
// It is intended for 5 to 7 cards. With fewer than five cards the result is
// always HighCard over the cards present.
func Evaluate(cards ...Card) HandValue {
	return EvaluateHand(NewHand(cards...))
}

// EvaluateHand scores a hand given as a card set.
func EvaluateHand(h Hand) HandValue {
	var suitMasks [4]uint16
	var rankMask uint16
	for suit := Clubs; suit <= Spades; suit++ {
		suitMasks[suit] = h.GetSuitMask(suit)
		rankMask |= suitMasks[suit]
	}

	if h.CountCards() < 5 {
		return HandValue{Category: HighCard, Strength: packCards(h)}
	}

	return valueFromMasks(suitMasks, rankMask)
}

func valueFromMasks(suitMasks [4]uint16, rankMask uint16) HandValue {
	// Straight flush and flush: at most one suit can hold five of seven cards,
	// but keep the best in case more cards are supplied.
	var flush HandValue
	flushFound := false
	for _, suitMask := range suitMasks {
		if bits.OnesCount16(suitMask) < 5 {
			continue
		}
		if high := straightHigh(suitMask); high > 0 {
			if high == 14 {
				return HandValue{Category: RoyalFlush, Strength: 14}
			}
			sf := HandValue{Category: StraightFlush, Strength: uint32(high)}
			if !flushFound || sf.Beats(flush) {
				flush = sf
				flushFound = true
			}
			continue
		}
		fl := HandValue{Category: Flush, Strength: pack(topRanks(suitMask, 5)...)}
		if !flushFound || fl.Beats(flush) {
			flush = fl
			flushFound = true
		}
	}
	if flushFound && flush.Category == StraightFlush {
		return flush
	}

	s0, s1, s2, s3 := suitMasks[0], suitMasks[1], suitMasks[2], suitMasks[3]
	quadsMask := s0 & s1 & s2 & s3
	tripsMask := ((s0 & s1 & s2) | (s0 & s1 & s3) | (s0 & s2 & s3) | (s1 & s2 & s3)) &^ quadsMask
	pairsMask := ((s0 & s1) | (s0 & s2) | (s0 & s3) | (s1 & s2) | (s1 & s3) | (s2 & s3)) &^ (tripsMask | quadsMask)

	if quad := highestRank(quadsMask); quad >= 0 {
		kicker := topRanks(rankMask&^(1<<quad), 1)
		return HandValue{Category: FourOfAKind, Strength: pack(append([]int{quad + 2}, kicker...)...)}
	}

	if trip := highestRank(tripsMask); trip >= 0 {
		if pair := highestRank((tripsMask &^ (1 << trip)) | pairsMask); pair >= 0 {
			return HandValue{Category: FullHouse, Strength: pack(trip+2, pair+2)}
		}
	}

	if flushFound {
		return flush
	}

	if high := straightHigh(rankMask); high > 0 {
		return HandValue{Category: Straight, Strength: uint32(high)}
	}

	if trip := highestRank(tripsMask); trip >= 0 {
		kickers := topRanks(rankMask&^(1<<trip), 2)
		return HandValue{Category: ThreeOfAKind, Strength: pack(append([]int{trip + 2}, kickers...)...)}
	}

	if high := highestRank(pairsMask); high >= 0 {
		if low := highestRank(pairsMask &^ (1 << high)); low >= 0 {
			kicker := topRanks(rankMask&^(1<<high|1<<low), 1)
			return HandValue{Category: TwoPair, Strength: pack(append([]int{high + 2, low + 2}, kicker...)...)}
		}
		kickers := topRanks(rankMask&^(1<<high), 3)
		return HandValue{Category: Pair, Strength: pack(append([]int{high + 2}, kickers...)...)}
	}

	return HandValue{Category: HighCard, Strength: pack(topRanks(rankMask, 5)...)}
}

// straightHigh returns the value (5..14) of the highest straight in the rank
// mask, or 0 if there is none. Windows are scanned from ace-high downwards and
// the wheel (A-2-3-4-5) is checked last, playing the ace low.
func straightHigh(mask uint16) int {
	for high := int(Ace); high >= int(Six); high-- {
		window := uint16(0x1F) << uint(high-4)
		if mask&window == window {
			return high + 2
		}
	}
	const wheel = 0x100F
	if mask&wheel == wheel {
		return 5
	}
	return 0
}

// highestRank returns the highest 0-based rank in the mask, or -1 when empty.
func highestRank(mask uint16) int {
	if mask == 0 {
		return -1
	}
	return bits.Len16(mask) - 1
}

// topRanks returns up to n rank values (2..14) from the mask, highest first.
func topRanks(mask uint16, n int) []int {
	values := make([]int, 0, n)
	for len(values) < n && mask != 0 {
		top := highestRank(mask)
		values = append(values, top+2)
		mask &^= 1 << top
	}
	return values
}

func pack(values ...int) uint32 {
	var s uint32
	for _, v := range values {
		s = s<<4 | uint32(v)
	}
	return s
}

// packCards packs the values of every card, highest first, including repeats.
func packCards(h Hand) uint32 {
	cards := h.Cards()
	values := make([]int, 0, len(cards))
	for i := len(cards) - 1; i >= 0; i-- {
		values = append(values, cards[i].Value())
	}
	return pack(values...)
}
