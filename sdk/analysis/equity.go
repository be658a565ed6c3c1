package analysis

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	rand "math/rand/v2"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem-trainer/internal/randutil"
	"github.com/lox/holdem-trainer/poker"
)

var (
	// ErrInvalidHero is returned when the hero is not exactly two valid
	// cards or shares a card with the board.
	ErrInvalidHero = errors.New("invalid hero hand")
	// ErrEmptyRange is returned when no opponent combo survives card removal.
	ErrEmptyRange = errors.New("opponent range has no live combos")
)

// DefaultIterations matches the trainer's default simulation count.
const DefaultIterations = 5000

// minPerWorker keeps tiny simulations on a single goroutine.
const minPerWorker = 1000

// EquityResult holds aggregate heads-up simulation statistics.
type EquityResult struct {
	Equity         float64 // percent, (wins + ties/2) / iterations * 100
	Wins           int
	Losses         int
	Ties           int
	Iterations     int
	Duration       time.Duration
	HeroCategories map[poker.Category]int
}

// WinRate returns the fraction of iterations hero won outright (0..1).
func (e EquityResult) WinRate() float64 {
	if e.Iterations == 0 {
		return 0
	}
	return float64(e.Wins) / float64(e.Iterations)
}

// TieRate returns the fraction of iterations that split (0..1).
func (e EquityResult) TieRate() float64 {
	if e.Iterations == 0 {
		return 0
	}
	return float64(e.Ties) / float64(e.Iterations)
}

// LossRate returns the fraction of iterations hero lost (0..1).
func (e EquityResult) LossRate() float64 {
	if e.Iterations == 0 {
		return 0
	}
	return float64(e.Losses) / float64(e.Iterations)
}

// ConfidenceInterval returns the 95% confidence interval for Equity, in percent.
func (e EquityResult) ConfidenceInterval() (lower, upper float64) {
	if e.Iterations == 0 {
		return 0, 0
	}
	p := e.Equity / 100
	se := math.Sqrt(p * (1 - p) / float64(e.Iterations))
	margin := 1.96 * se

	lower = math.Max(0, p-margin) * 100
	upper = math.Min(1, p+margin) * 100
	return lower, upper
}

// Simulator estimates hero equity against an opponent combo or range by
// Monte Carlo sampling. A Simulator is safe for concurrent use when it was
// built with WithSeed or without a random source.
type Simulator struct {
	rng     *rand.Rand
	seed    int64
	seeded  bool
	workers int
	clock   quartz.Clock
	logger  *log.Logger
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithRand draws each run's seed from rng. Not safe for concurrent Simulate calls.
func WithRand(rng *rand.Rand) Option {
	return func(s *Simulator) { s.rng = rng }
}

// WithSeed makes every run reproducible for a fixed seed and worker count.
func WithSeed(seed int64) Option {
	return func(s *Simulator) {
		s.seed = seed
		s.seeded = true
	}
}

// WithWorkers sets the number of goroutines sharing the iterations.
func WithWorkers(n int) Option {
	return func(s *Simulator) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithClock sets the clock used to time runs.
func WithClock(clock quartz.Clock) Option {
	return func(s *Simulator) { s.clock = clock }
}

// WithLogger sets the logger for run summaries.
func WithLogger(logger *log.Logger) Option {
	return func(s *Simulator) { s.logger = logger }
}

// NewSimulator creates a simulator. By default it uses one worker per CPU,
// the real clock, a discard logger and a fresh seed per run.
func NewSimulator(opts ...Option) *Simulator {
	s := &Simulator{
		workers: runtime.GOMAXPROCS(0),
		clock:   quartz.NewReal(),
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Simulator) runSeed() int64 {
	switch {
	case s.seeded:
		return s.seed
	case s.rng != nil:
		return s.rng.Int64()
	default:
		return randutil.Seed()
	}
}

// Simulate runs iterations of heads-up run-outs. Each iteration picks an
// opponent combo uniformly at random, completes the board from the cards left
// and compares both best hands. Opponent combos that collide with the hero or
// board are discarded before sampling.
func (s *Simulator) Simulate(ctx context.Context, hero Combo, opponents []Combo, board []poker.Card, iterations int) (EquityResult, error) {
	if iterations <= 0 {
		return EquityResult{}, fmt.Errorf("%w: iterations must be positive, got %d", poker.ErrInvalidInput, iterations)
	}
	if len(board) > 5 {
		return EquityResult{}, fmt.Errorf("%w: board has %d cards, at most 5 allowed", poker.ErrInvalidInput, len(board))
	}
	boardMask := poker.NewHand(board...)
	if boardMask.CountCards() != len(board) {
		return EquityResult{}, fmt.Errorf("%w: board repeats a card", poker.ErrInvalidInput)
	}
	heroMask := hero.Hand()
	if heroMask.CountCards() != 2 || heroMask&boardMask != 0 {
		return EquityResult{}, ErrInvalidHero
	}

	dead := heroMask | boardMask
	live := make([]Combo, 0, len(opponents))
	for _, c := range opponents {
		if c.Hand().CountCards() == 2 && c.Hand()&dead == 0 {
			live = append(live, c)
		}
	}
	if len(live) == 0 {
		return EquityResult{}, ErrEmptyRange
	}

	start := s.clock.Now()
	seed := s.runSeed()
	remaining := poker.NewDeck().Remove(dead).Cards()

	workers := min(s.workers, max(1, iterations/minPerWorker))
	tallies := make([]tally, workers)

	g, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		n := iterations / workers
		if w < iterations%workers {
			n++
		}
		g.Go(func() error {
			job := run{
				hero:      heroMask,
				board:     boardMask,
				need:      5 - len(board),
				opponents: live,
				remaining: remaining,
				rng:       randutil.Stream(seed, w),
			}
			return job.simulate(ctx, n, &tallies[w])
		})
	}
	if err := g.Wait(); err != nil {
		return EquityResult{}, err
	}

	var total tally
	for i := range tallies {
		total.add(&tallies[i])
	}

	result := total.result(iterations)
	result.Duration = s.clock.Since(start)

	s.logger.Debug("equity simulation complete",
		"hero", hero,
		"combos", len(live),
		"board", poker.FormatCards(board, ""),
		"iterations", iterations,
		"workers", workers,
		"equity", fmt.Sprintf("%.2f", result.Equity),
		"duration", result.Duration)

	return result, nil
}

// SimulateEquity is the text boundary: hero is two cards, opponent is either
// exactly two cards or range shorthand, board is zero to five cards.
func SimulateEquity(heroText, opponentText, boardText string, iterations int, opts ...Option) (EquityResult, error) {
	hero, err := ParseCombo(heroText)
	if err != nil {
		return EquityResult{}, fmt.Errorf("%w: %v", ErrInvalidHero, err)
	}
	board, err := poker.ParseHand(boardText)
	if err != nil {
		return EquityResult{}, err
	}

	opponents, err := ParseOpponents(opponentText, poker.NewDeck().Remove(hero.Hand(), poker.NewHand(board...)))
	if err != nil {
		return EquityResult{}, err
	}

	return NewSimulator(opts...).Simulate(context.Background(), hero, opponents, board, iterations)
}

// ParseOpponents reads opponent text as a single combo when it is exactly two
// cards and as range shorthand otherwise, expanded against available.
func ParseOpponents(text string, available poker.Deck) ([]Combo, error) {
	if cards, err := poker.ParseHand(text); err == nil && len(cards) == 2 {
		combo, err := NewCombo(cards[0], cards[1])
		if err != nil {
			return nil, err
		}
		return []Combo{combo}, nil
	}
	r, err := ParseRange(text)
	if err != nil {
		return nil, err
	}
	return r.Combos(available), nil
}

type tally struct {
	wins, losses, ties int
	categories         [poker.RoyalFlush + 1]int
}

func (t *tally) add(o *tally) {
	t.wins += o.wins
	t.losses += o.losses
	t.ties += o.ties
	for i, n := range o.categories {
		t.categories[i] += n
	}
}

func (t *tally) result(iterations int) EquityResult {
	cats := make(map[poker.Category]int)
	for i, n := range t.categories {
		if n > 0 {
			cats[poker.Category(i)] = n
		}
	}
	return EquityResult{
		Equity:         (float64(t.wins) + float64(t.ties)/2) / float64(iterations) * 100,
		Wins:           t.wins,
		Losses:         t.losses,
		Ties:           t.ties,
		Iterations:     iterations,
		HeroCategories: cats,
	}
}

// run is one worker's view of a simulation. Shared slices are read only.
type run struct {
	hero, board poker.Hand
	need        int
	opponents   []Combo
	remaining   []poker.Card
	rng         *rand.Rand
}

func (r run) simulate(ctx context.Context, n int, out *tally) error {
	scratch := make([]poker.Card, 0, len(r.remaining))

	for i := range n {
		if i&1023 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		opp := r.opponents[r.rng.IntN(len(r.opponents))]
		oppMask := opp.Hand()

		scratch = scratch[:0]
		for _, c := range r.remaining {
			if !oppMask.HasCard(c) {
				scratch = append(scratch, c)
			}
		}

		// Partial Fisher-Yates: only the cards we deal need shuffling.
		final := r.board
		for k := 0; k < r.need; k++ {
			j := k + r.rng.IntN(len(scratch)-k)
			scratch[k], scratch[j] = scratch[j], scratch[k]
			final.AddCard(scratch[k])
		}

		heroValue := poker.EvaluateHand(r.hero | final)
		oppValue := poker.EvaluateHand(oppMask | final)
		out.categories[heroValue.Category]++

		switch heroValue.Compare(oppValue) {
		case 1:
			out.wins++
		case -1:
			out.losses++
		default:
			out.ties++
		}
	}
	return nil
}
