package poker

import (
	"errors"
	"testing"

	"github.com/lox/holdem-trainer/internal/randutil"
)

func TestCardCreation(t *testing.T) {
	t.Parallel()
	aceSpades := NewCard(Ace, Spades)
	if aceSpades.Rank() != Ace {
		t.Errorf("Expected rank Ace, got %d", aceSpades.Rank())
	}
	if aceSpades.Suit() != Spades {
		t.Errorf("Expected suit Spades, got %d", aceSpades.Suit())
	}
	if aceSpades.Value() != 14 {
		t.Errorf("Expected value 14, got %d", aceSpades.Value())
	}
	if aceSpades.String() != "As" {
		t.Errorf("Expected 'As', got %s", aceSpades.String())
	}
	if aceSpades.Symbol() != "A♠" {
		t.Errorf("Expected 'A♠', got %s", aceSpades.Symbol())
	}

	twoClubs := NewCard(Two, Clubs)
	if twoClubs.String() != "2c" || twoClubs.Value() != 2 {
		t.Errorf("Expected '2c' with value 2, got %s (%d)", twoClubs, twoClubs.Value())
	}
}

func TestParseCard(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		input    string
		wantCard Card
		wantErr  bool
	}{
		{name: "ace of spades", input: "As", wantCard: NewCard(Ace, Spades)},
		{name: "two of hearts", input: "2h", wantCard: NewCard(Two, Hearts)},
		{name: "lowercase rank", input: "kd", wantCard: NewCard(King, Diamonds)},
		{name: "uppercase suit", input: "TC", wantCard: NewCard(Ten, Clubs)},
		{name: "nine of spades", input: "9s", wantCard: NewCard(Nine, Spades)},
		{name: "invalid rank", input: "Xs", wantErr: true},
		{name: "invalid suit", input: "Ax", wantErr: true},
		{name: "ten as digits", input: "10h", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
		{name: "too short", input: "A", wantErr: true},
		{name: "too long", input: "Asd", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			card, err := ParseCard(tc.input)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("ParseCard(%q) error = %v, want ErrInvalidInput", tc.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCard(%q) unexpected error: %v", tc.input, err)
			}
			if card != tc.wantCard {
				t.Errorf("ParseCard(%q) = %v, want %v", tc.input, card, tc.wantCard)
			}
		})
	}
}

func TestParseHand(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "AhKd", want: "AhKd"},
		{input: "td 7s 8H", want: "Td7s8h"},
		{input: "", want: ""},
		{input: "AhK", wantErr: true},
		{input: "AhZz", wantErr: true},
		{input: "AhAh", wantErr: true},
	}

	for _, tc := range tests {
		cards, err := ParseHand(tc.input)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("ParseHand(%q) error = %v, want ErrInvalidInput", tc.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseHand(%q) unexpected error: %v", tc.input, err)
			continue
		}
		if got := FormatCards(cards, ""); got != tc.want {
			t.Errorf("ParseHand(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestAll52Cards(t *testing.T) {
	t.Parallel()
	var all Hand
	for rank := Two; rank <= Ace; rank++ {
		for suit := Clubs; suit <= Spades; suit++ {
			card := NewCard(rank, suit)
			if !card.Valid() {
				t.Fatalf("card %d/%d not valid", rank, suit)
			}
			parsed, err := ParseCard(card.String())
			if err != nil || parsed != card {
				t.Errorf("round trip of %s failed: %v %v", card, parsed, err)
			}
			if all.HasCard(card) {
				t.Errorf("duplicate encoding for %s", card)
			}
			all.AddCard(card)
		}
	}
	if all.CountCards() != 52 {
		t.Errorf("expected 52 distinct cards, got %d", all.CountCards())
	}
}

func TestHandOperations(t *testing.T) {
	t.Parallel()
	h := NewHand(MustParseHand("AsKs2c")...)
	if h.CountCards() != 3 {
		t.Errorf("Expected 3 cards, got %d", h.CountCards())
	}
	if !h.HasCard(MustParseCard("Ks")) {
		t.Error("Expected hand to contain Ks")
	}
	h.RemoveCard(MustParseCard("Ks"))
	if h.HasCard(MustParseCard("Ks")) {
		t.Error("Expected Ks to be removed")
	}
	if h.String() != "2cAs" {
		t.Errorf("Expected '2cAs', got %q", h.String())
	}
	if mask := h.GetSuitMask(Spades); mask != 1<<Ace {
		t.Errorf("Expected spade mask with only the ace, got %b", mask)
	}
	if mask := h.RankMask(); mask != 1<<Ace|1<<Two {
		t.Errorf("Unexpected rank mask %b", mask)
	}
}

func TestDeck(t *testing.T) {
	t.Parallel()
	d := NewDeck()
	if d.Len() != 52 {
		t.Fatalf("Expected 52 cards, got %d", d.Len())
	}
	cards := d.Cards()
	if cards[0].String() != "2c" || cards[1].String() != "2d" || cards[51].String() != "As" {
		t.Errorf("Unexpected canonical order: %s %s ... %s", cards[0], cards[1], cards[51])
	}
	if d.Mask().CountCards() != 52 {
		t.Error("Deck contains duplicate cards")
	}
}

func TestDeckRemove(t *testing.T) {
	t.Parallel()
	hero := NewHand(MustParseHand("AhKh")...)
	board := NewHand(MustParseHand("AhQs2c")...) // Ah repeated on purpose

	d := NewDeck().Remove(hero, board, hero)
	if d.Len() != 48 {
		t.Fatalf("Expected 48 cards after removing 4 distinct cards, got %d", d.Len())
	}
	for _, c := range MustParseHand("AhKhQs2c") {
		if d.Mask().HasCard(c) {
			t.Errorf("Deck still contains dead card %s", c)
		}
	}
}

func TestDeckShuffleDoesNotMutate(t *testing.T) {
	t.Parallel()
	d := NewDeck()
	before := d.Cards()

	shuffled := d.Shuffle(randutil.New(7))
	if shuffled.Len() != 52 || shuffled.Mask() != d.Mask() {
		t.Fatal("Shuffle changed the set of cards")
	}
	after := d.Cards()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("Shuffle mutated the input deck at %d", i)
		}
	}
	if FormatCards(shuffled.Cards(), "") == FormatCards(before, "") {
		t.Error("Shuffle returned the canonical order")
	}
}

func TestDeckShuffleDeterministic(t *testing.T) {
	t.Parallel()
	a := NewDeck().Shuffle(randutil.New(42))
	b := NewDeck().Shuffle(randutil.New(42))
	if FormatCards(a.Cards(), "") != FormatCards(b.Cards(), "") {
		t.Error("Same seed produced different shuffles")
	}
}

func TestDeckDeal(t *testing.T) {
	t.Parallel()
	d := NewDeck()
	dealt, rest := d.Deal(3)
	if FormatCards(dealt, "") != "2c2d2h" {
		t.Errorf("Expected 2c2d2h, got %s", FormatCards(dealt, ""))
	}
	if rest.Len() != 49 || d.Len() != 52 {
		t.Errorf("Unexpected lengths after deal: rest=%d original=%d", rest.Len(), d.Len())
	}
	if cards, same := rest.Deal(50); cards != nil || same.Len() != 49 {
		t.Error("Dealing more cards than remain should fail without changes")
	}
}

func BenchmarkParseCard(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = ParseCard("As")
	}
}
