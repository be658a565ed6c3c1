// Package statistics summarizes a player's results across hands in big blinds.
package statistics

import (
	"fmt"
	"math"
	"slices"

	"github.com/lox/holdem-trainer/internal/game"
)

// HandResult is one finished hand from the tracked player's point of view.
type HandResult struct {
	HandID         int
	NetBB          float64
	Position       game.Position
	WentToShowdown bool
	PotBB          float64
}

// PositionStats accumulates results for one table position.
type PositionStats struct {
	Hands int
	SumBB float64
}

// Mean returns the average result in big blinds per hand.
func (p PositionStats) Mean() float64 {
	if p.Hands == 0 {
		return 0
	}
	return p.SumBB / float64(p.Hands)
}

// Statistics tracks running totals over a series of hands.
type Statistics struct {
	Hands  int
	SumBB  float64
	SumBB2 float64
	Values []float64

	ShowdownWins    int
	NonShowdownWins int
	ShowdownBB      float64
	NonShowdownBB   float64

	Positions [game.NumSeats]PositionStats

	MaxPotBB float64
}

// Add incorporates a hand result.
func (s *Statistics) Add(r HandResult) {
	s.Hands++
	s.SumBB += r.NetBB
	s.SumBB2 += r.NetBB * r.NetBB
	s.Values = append(s.Values, r.NetBB)

	if r.WentToShowdown {
		s.ShowdownBB += r.NetBB
		if r.NetBB > 0 {
			s.ShowdownWins++
		}
	} else {
		s.NonShowdownBB += r.NetBB
		if r.NetBB > 0 {
			s.NonShowdownWins++
		}
	}

	if r.Position >= 0 && int(r.Position) < game.NumSeats {
		s.Positions[r.Position].Hands++
		s.Positions[r.Position].SumBB += r.NetBB
	}
	s.MaxPotBB = max(s.MaxPotBB, r.PotBB)
}

// Mean returns the average result in big blinds per hand.
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.SumBB / float64(s.Hands)
}

// Variance returns the sample variance.
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumBB2 - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
}

// StdDev returns the sample standard deviation.
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean.
func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean.
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// BBPer100 returns the win rate in big blinds per hundred hands.
func (s *Statistics) BBPer100() float64 {
	return s.Mean() * 100
}

// Median returns the median result.
func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := slices.Clone(s.Values)
	slices.Sort(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Summary is a one line description for display.
func (s *Statistics) Summary() string {
	if s.Hands == 0 {
		return "No hands played"
	}
	return fmt.Sprintf("%d hands, %+.1f BB (%+.1f BB/100), showdown %+.1f, non-showdown %+.1f",
		s.Hands, s.SumBB, s.BBPer100(), s.ShowdownBB, s.NonShowdownBB)
}

// Validate checks that the running totals agree with each other.
func (s *Statistics) Validate() error {
	if math.Abs(s.SumBB-s.ShowdownBB-s.NonShowdownBB) > 1e-6 {
		return fmt.Errorf("ledger mismatch: total=%.6f, showdown=%.6f, non-showdown=%.6f",
			s.SumBB, s.ShowdownBB, s.NonShowdownBB)
	}
	if len(s.Values) != s.Hands {
		return fmt.Errorf("values length (%d) does not match hands count (%d)", len(s.Values), s.Hands)
	}
	if wins := s.ShowdownWins + s.NonShowdownWins; wins > s.Hands {
		return fmt.Errorf("total wins (%d) exceeds total hands (%d)", wins, s.Hands)
	}
	positioned := 0
	for _, p := range s.Positions {
		positioned += p.Hands
	}
	if positioned != s.Hands {
		return fmt.Errorf("position hands total (%d) does not match total hands (%d)", positioned, s.Hands)
	}
	return nil
}
