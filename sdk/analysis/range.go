// Package analysis provides range parsing and Monte Carlo equity estimation
// on top of the poker package.
package analysis

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/lox/holdem-trainer/poker"
)

// Kind distinguishes the three shapes a starting hand class can take.
type Kind uint8

const (
	PairKind Kind = iota
	SuitedKind
	OffsuitKind
)

// Notation is one starting hand class such as "77", "AKs" or "T9o".
// High is never below Low; for pairs they are equal.
type Notation struct {
	High uint8
	Low  uint8
	Kind Kind
}

// String returns the canonical shorthand for the class.
func (n Notation) String() string {
	s := string(poker.RankChar(n.High)) + string(poker.RankChar(n.Low))
	switch n.Kind {
	case SuitedKind:
		return s + "s"
	case OffsuitKind:
		return s + "o"
	}
	return s
}

// Size returns the number of combos in the class with a full deck.
func (n Notation) Size() int {
	switch n.Kind {
	case PairKind:
		return 6
	case SuitedKind:
		return 4
	}
	return 12
}

// Range is a deduplicated set of notations, ordered strongest first.
type Range []Notation

// String joins the notations with commas.
func (r Range) String() string {
	parts := make([]string, len(r))
	for i, n := range r {
		parts[i] = n.String()
	}
	return strings.Join(parts, ",")
}

// Size returns the number of combos in the range with a full deck.
func (r Range) Size() int {
	total := 0
	for _, n := range r {
		total += n.Size()
	}
	return total
}

// Combos expands the range against the cards still available.
func (r Range) Combos(available poker.Deck) []Combo {
	return Combos(r, available)
}

// ParseRange parses comma separated range shorthand such as
// "22+, A2s+, KTo-K8o, JT". Tokens are case-insensitive. "+" climbs a pair
// ladder to aces or raises the kicker up to one below the high card; "-"
// spans pairs or kickers under a shared high card, inclusive and in either
// order. A bare unpaired token covers both suited and offsuit combos.
// Empty input yields an empty range.
func ParseRange(text string) (Range, error) {
	seen := make(map[Notation]struct{})
	for token := range strings.SplitSeq(text, ",") {
		token = strings.ToUpper(strings.Join(strings.Fields(token), ""))
		if token == "" {
			continue
		}

		notations, err := parseToken(token)
		if err != nil {
			return nil, fmt.Errorf("%w: range token %q: %v", poker.ErrInvalidInput, token, err)
		}
		for _, n := range notations {
			seen[n] = struct{}{}
		}
	}

	out := make(Range, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	slices.SortFunc(out, compareNotations)
	return out, nil
}

// MustParseRange parses a range and panics on error. Intended for tests.
func MustParseRange(text string) Range {
	r, err := ParseRange(text)
	if err != nil {
		panic(err)
	}
	return r
}

// compareNotations orders pairs first, then by high card, kicker and kind.
func compareNotations(a, b Notation) int {
	if ap, bp := a.Kind == PairKind, b.Kind == PairKind; ap != bp {
		if ap {
			return -1
		}
		return 1
	}
	if c := cmp.Compare(b.High, a.High); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Low, a.Low); c != 0 {
		return c
	}
	return cmp.Compare(a.Kind, b.Kind)
}

// handClass is a parsed literal token before kinds are expanded.
type handClass struct {
	high, low       uint8
	suited, offsuit bool
	modifier        byte
}

func (h handClass) pair() bool {
	return h.high == h.low
}

func (h handClass) notations(low uint8) []Notation {
	if h.high == low {
		return []Notation{{High: low, Low: low, Kind: PairKind}}
	}
	var out []Notation
	if h.suited {
		out = append(out, Notation{High: h.high, Low: low, Kind: SuitedKind})
	}
	if h.offsuit {
		out = append(out, Notation{High: h.high, Low: low, Kind: OffsuitKind})
	}
	return out
}

func parseClass(s string) (handClass, error) {
	if len(s) < 2 || len(s) > 3 {
		return handClass{}, fmt.Errorf("expected 2 or 3 characters, got %q", s)
	}
	r1, ok1 := poker.ParseRank(s[0])
	r2, ok2 := poker.ParseRank(s[1])
	if !ok1 || !ok2 {
		return handClass{}, fmt.Errorf("invalid rank in %q", s)
	}

	h := handClass{high: max(r1, r2), low: min(r1, r2)}
	if len(s) == 2 {
		h.suited, h.offsuit = true, true
		return h, nil
	}

	if h.pair() {
		return handClass{}, fmt.Errorf("pair %q cannot be suited or offsuit", s)
	}
	h.modifier = s[2]
	switch s[2] {
	case 'S':
		h.suited = true
	case 'O':
		h.offsuit = true
	default:
		return handClass{}, fmt.Errorf("invalid modifier %q", s[2])
	}
	return h, nil
}

func parseToken(token string) ([]Notation, error) {
	switch {
	case strings.Contains(token, "+"):
		return parsePlus(token)
	case strings.Contains(token, "-"):
		return parseDash(token)
	}
	h, err := parseClass(token)
	if err != nil {
		return nil, err
	}
	return h.notations(h.low), nil
}

func parsePlus(token string) ([]Notation, error) {
	base, rest, _ := strings.Cut(token, "+")
	if rest != "" {
		return nil, fmt.Errorf("unexpected text after +")
	}
	h, err := parseClass(base)
	if err != nil {
		return nil, err
	}

	var out []Notation
	if h.pair() {
		for rank := h.low; rank <= poker.Ace; rank++ {
			out = append(out, Notation{High: rank, Low: rank, Kind: PairKind})
		}
		return out, nil
	}
	for low := h.low; low < h.high; low++ {
		out = append(out, h.notations(low)...)
	}
	return out, nil
}

func parseDash(token string) ([]Notation, error) {
	left, right, _ := strings.Cut(token, "-")
	start, err := parseClass(left)
	if err != nil {
		return nil, err
	}
	end, err := parseClass(right)
	if err != nil {
		return nil, err
	}

	var out []Notation
	switch {
	case start.pair() && end.pair():
		for rank := min(start.low, end.low); rank <= max(start.low, end.low); rank++ {
			out = append(out, Notation{High: rank, Low: rank, Kind: PairKind})
		}
	case !start.pair() && !end.pair() && start.high == end.high && start.modifier == end.modifier:
		for low := min(start.low, end.low); low <= max(start.low, end.low); low++ {
			out = append(out, start.notations(low)...)
		}
	default:
		return nil, fmt.Errorf("span must join two pairs or share a high card and suitedness")
	}
	return out, nil
}

// Combo is an unordered pair of distinct cards, stored high card first.
type Combo struct {
	First  poker.Card
	Second poker.Card
}

// NewCombo orders two cards into a combo. It fails when the cards are
// invalid or identical.
func NewCombo(a, b poker.Card) (Combo, error) {
	if !a.Valid() || !b.Valid() || a == b {
		return Combo{}, fmt.Errorf("%w: combo needs two distinct cards", poker.ErrInvalidInput)
	}
	if cardLess(a, b) {
		a, b = b, a
	}
	return Combo{First: a, Second: b}, nil
}

// ParseCombo parses exactly two cards such as "AhKd".
func ParseCombo(text string) (Combo, error) {
	cards, err := poker.ParseHand(text)
	if err != nil {
		return Combo{}, err
	}
	if len(cards) != 2 {
		return Combo{}, fmt.Errorf("%w: combo %q must have 2 cards, got %d", poker.ErrInvalidInput, text, len(cards))
	}
	return NewCombo(cards[0], cards[1])
}

// Hand returns the combo as a card set.
func (c Combo) Hand() poker.Hand {
	return poker.NewHand(c.First, c.Second)
}

// Cards returns the two cards, high card first.
func (c Combo) Cards() []poker.Card {
	return []poker.Card{c.First, c.Second}
}

// Notation returns the hand class the combo belongs to.
func (c Combo) Notation() Notation {
	n := Notation{High: c.First.Rank(), Low: c.Second.Rank(), Kind: OffsuitKind}
	switch {
	case n.High == n.Low:
		n.Kind = PairKind
	case c.First.Suit() == c.Second.Suit():
		n.Kind = SuitedKind
	}
	return n
}

func (c Combo) String() string {
	return c.First.String() + c.Second.String()
}

func cardLess(a, b poker.Card) bool {
	if a.Rank() != b.Rank() {
		return a.Rank() < b.Rank()
	}
	return a.Suit() < b.Suit()
}

// Combos enumerates every concrete combo of the notations that uses only
// cards still in the available deck. Hero and board cards are excluded by
// removing them from the deck first. The result holds no duplicates.
func Combos(notations []Notation, available poker.Deck) []Combo {
	live := available.Mask()
	seen := make(map[poker.Hand]struct{})
	var out []Combo

	add := func(a, b poker.Card) {
		if !live.HasCard(a) || !live.HasCard(b) {
			return
		}
		combo, err := NewCombo(a, b)
		if err != nil {
			return
		}
		if _, dup := seen[combo.Hand()]; dup {
			return
		}
		seen[combo.Hand()] = struct{}{}
		out = append(out, combo)
	}

	for _, n := range notations {
		switch n.Kind {
		case PairKind:
			for s1 := range uint8(4) {
				for s2 := s1 + 1; s2 < 4; s2++ {
					add(poker.NewCard(n.High, s1), poker.NewCard(n.High, s2))
				}
			}
		case SuitedKind:
			for s := range uint8(4) {
				add(poker.NewCard(n.High, s), poker.NewCard(n.Low, s))
			}
		case OffsuitKind:
			for s1 := range uint8(4) {
				for s2 := range uint8(4) {
					if s1 != s2 {
						add(poker.NewCard(n.High, s1), poker.NewCard(n.Low, s2))
					}
				}
			}
		}
	}
	return out
}
