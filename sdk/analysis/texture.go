package analysis

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/lox/holdem-trainer/poker"
)

// Texture grades how coordinated a board is, from dry to very wet.
type Texture int

const (
	Dry Texture = iota
	SemiWet
	Wet
	VeryWet
)

func (t Texture) String() string {
	switch t {
	case Dry:
		return "dry"
	case SemiWet:
		return "semi-wet"
	case Wet:
		return "wet"
	case VeryWet:
		return "very wet"
	default:
		return "unknown"
	}
}

const (
	wheelMask    = uint16(1)<<poker.Ace | 0xF
	broadwayMask = uint16(0x1F) << poker.Ten
)

// straightWindows holds the ten five-rank straights, wheel first.
var straightWindows = func() [10]uint16 {
	var w [10]uint16
	w[0] = wheelMask
	for i := 1; i < 10; i++ {
		w[i] = uint16(0x1F) << (i - 1)
	}
	return w
}()

// AnalyzeTexture scores flush and straight potential, pairing and high card
// density on a flop, turn or river. Fewer than three cards is always dry.
func AnalyzeTexture(board poker.Hand) Texture {
	n := board.CountCards()
	if n < 3 {
		return Dry
	}

	var wetness int
	switch suited := maxSuitCount(board); {
	case suited == n || suited >= 4:
		wetness += 4
	case suited == 3:
		wetness += 3
	case suited == 2:
		wetness++
	}

	ranks := board.RankMask()
	var connected int
	for _, w := range straightWindows {
		connected = max(connected, bits.OnesCount16(ranks&w))
	}
	switch {
	case connected >= 4:
		wetness += 4
	case connected == 3:
		wetness += 3
	case connected == 2:
		wetness++
	}

	if bits.OnesCount16(ranks) < n {
		wetness++
	}
	if bits.OnesCount16(ranks&broadwayMask) >= 3 {
		wetness++
	}

	switch {
	case wetness == 0:
		return Dry
	case wetness <= 3:
		return SemiWet
	case wetness <= 5:
		return Wet
	default:
		return VeryWet
	}
}

func maxSuitCount(h poker.Hand) int {
	var n int
	for suit := poker.Clubs; suit <= poker.Spades; suit++ {
		n = max(n, bits.OnesCount16(h.GetSuitMask(suit)))
	}
	return n
}

func hasStraight(ranks uint16) bool {
	for _, w := range straightWindows {
		if ranks&w == w {
			return true
		}
	}
	return false
}

// Draw is an unmade hand that one more card can complete.
type Draw int

const (
	FlushDraw Draw = iota
	StraightDraw
	Gutshot
)

func (d Draw) String() string {
	switch d {
	case FlushDraw:
		return "flush draw"
	case StraightDraw:
		return "straight draw"
	case Gutshot:
		return "gutshot"
	default:
		return "unknown"
	}
}

// DrawInfo lists a hand's draws and the number of unseen cards that
// complete at least one of them.
type DrawInfo struct {
	Draws []Draw
	Outs  int
}

func (d DrawInfo) String() string {
	if len(d.Draws) == 0 {
		return "no draw"
	}
	names := make([]string, len(d.Draws))
	for i, draw := range d.Draws {
		names[i] = draw.String()
	}
	return fmt.Sprintf("%s (%d outs)", strings.Join(names, " + "), d.Outs)
}

// DetectDraws finds flush and straight draws that use at least one hole
// card. Draws only exist on the flop and turn.
func DetectDraws(hole, board poker.Hand) DrawInfo {
	var info DrawInfo
	if n := board.CountCards(); n < 3 || n > 4 {
		return info
	}
	all := hole | board

	flushSuit := -1
	for suit := poker.Clubs; suit <= poker.Spades; suit++ {
		if bits.OnesCount16(all.GetSuitMask(suit)) == 4 && hole.GetSuitMask(suit) != 0 {
			flushSuit = int(suit)
			info.Draws = append(info.Draws, FlushDraw)
			info.Outs += 9
		}
	}
	if maxSuitCount(all) >= 5 {
		return DrawInfo{}
	}

	ranks, holeRanks := all.RankMask(), hole.RankMask()
	if hasStraight(ranks) {
		return info
	}
	var outRanks int
	for r := poker.Two; r <= poker.Ace; r++ {
		bit := uint16(1) << r
		if ranks&bit != 0 {
			continue
		}
		for _, w := range straightWindows {
			if w&bit != 0 && (ranks|bit)&w == w && holeRanks&w != 0 {
				outRanks++
				break
			}
		}
	}
	switch {
	case outRanks >= 2:
		info.Draws = append(info.Draws, StraightDraw)
	case outRanks == 1:
		info.Draws = append(info.Draws, Gutshot)
	}
	info.Outs += 4 * outRanks
	if flushSuit >= 0 {
		// One card of each straight rank is also a flush out.
		info.Outs -= outRanks
	}
	return info
}
