package poker

// HoleCardCategory represents the strength category of hole cards
type HoleCardCategory string

const (
	CategoryPremium HoleCardCategory = "Premium"
	CategoryStrong  HoleCardCategory = "Strong"
	CategoryMedium  HoleCardCategory = "Medium"
	CategoryWeak    HoleCardCategory = "Weak"
	CategoryTrash   HoleCardCategory = "Trash"
	CategoryUnknown HoleCardCategory = "Unknown"
)

// Score thresholds used to bucket HoleScore results.
const (
	PremiumScore = 50
	StrongScore  = 42
	MediumScore  = 34
	WeakScore    = 26
)

// HoleScore is a crude preflop strength score: twice the high card value
// plus the low card value, with bonuses for pairs (+20), suited cards (+3),
// connectors (+2) and a queen-or-better high card (+2).
// AA scores 64, TT 50, AKs 48, 72o 16.
func HoleScore(card1, card2 Card) int {
	v1, v2 := card1.Value(), card2.Value()
	hi, lo := max(v1, v2), min(v1, v2)

	score := hi*2 + lo
	if hi == lo {
		score += 20
	}
	if card1.Suit() == card2.Suit() {
		score += 3
	}
	if hi-lo == 1 {
		score += 2
	}
	if hi >= 12 {
		score += 2
	}
	return score
}

// CategorizeHoleCards buckets hole cards by HoleScore.
func CategorizeHoleCards(card1, card2 Card) HoleCardCategory {
	if !card1.Valid() || !card2.Valid() || card1 == card2 {
		return CategoryUnknown
	}

	switch score := HoleScore(card1, card2); {
	case score >= PremiumScore:
		return CategoryPremium
	case score >= StrongScore:
		return CategoryStrong
	case score >= MediumScore:
		return CategoryMedium
	case score >= WeakScore:
		return CategoryWeak
	default:
		return CategoryTrash
	}
}

// CategorizeHoleCardsFromStrings categorizes hole cards given as text, e.g. "AhKh".
func CategorizeHoleCardsFromStrings(hole string) HoleCardCategory {
	cards, err := ParseHand(hole)
	if err != nil || len(cards) != 2 {
		return CategoryUnknown
	}
	return CategorizeHoleCards(cards[0], cards[1])
}
