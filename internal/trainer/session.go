// Package trainer drives a practice table: the hero acts through typed
// commands, bots fill the other seats and every hero action can be undone.
package trainer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-trainer/internal/game"
	"github.com/lox/holdem-trainer/internal/randutil"
	"github.com/lox/holdem-trainer/internal/sessionid"
	"github.com/lox/holdem-trainer/internal/statistics"
	"github.com/lox/holdem-trainer/poker"
	"github.com/lox/holdem-trainer/sdk/analysis"
)

// MaxUndo bounds the snapshot stack.
const MaxUndo = 200

var (
	ErrNotHeroTurn    = errors.New("not the hero's turn")
	ErrNothingToUndo  = errors.New("nothing to undo")
	ErrUnknownCommand = errors.New("unknown command")
)

// Session is one hero's practice run. It is not safe for concurrent use.
type Session struct {
	id       string
	table    *game.Table
	undo     []*game.Table
	rng      *rand.Rand
	seed     int64
	bot      *game.Bot
	botCfg   game.BotConfig
	rules    game.Rules
	heroSeat int
	results  map[int]statistics.HandResult

	history    game.HistoryWriter
	logger     *log.Logger
	simulator  *analysis.Simulator
	iterations int
}

// Option configures a Session.
type Option func(*Session)

// WithID sets the session identifier. By default one is generated.
func WithID(id string) Option {
	return func(s *Session) {
		s.id = id
	}
}

// WithSeed makes dealing and bot decisions reproducible.
func WithSeed(seed int64) Option {
	return func(s *Session) {
		s.seed = seed
	}
}

// WithRules sets the table stakes.
func WithRules(rules game.Rules) Option {
	return func(s *Session) {
		s.rules = rules
	}
}

// WithHeroSeat moves the hero away from seat 0.
func WithHeroSeat(seat int) Option {
	return func(s *Session) {
		s.heroSeat = seat
	}
}

// WithBotConfig replaces the default bot policy.
func WithBotConfig(cfg game.BotConfig) Option {
	return func(s *Session) {
		s.botCfg = cfg
	}
}

// WithHistoryWriter stores every finished hand.
func WithHistoryWriter(w game.HistoryWriter) Option {
	return func(s *Session) {
		s.history = w
	}
}

// WithLogger sets the session logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithSimulator sets the simulator used by Equity and its iteration count.
func WithSimulator(sim *analysis.Simulator, iterations int) Option {
	return func(s *Session) {
		s.simulator = sim
		s.iterations = iterations
	}
}

// New creates a session and deals the first hand. Bots act until the hero is
// to act or the hand ends.
func New(opts ...Option) *Session {
	s := &Session{
		seed:       randutil.Seed(),
		rules:      game.DefaultRules(),
		history:    game.NoOpHistoryWriter{},
		logger:     log.New(io.Discard),
		iterations: analysis.DefaultIterations,
		botCfg:     game.DefaultBotConfig(),
		results:    map[int]statistics.HandResult{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.id == "" {
		s.id = sessionid.Generate()
	}
	s.rng = randutil.New(s.seed)
	s.bot = game.NewBot(s.rng, s.botCfg, s.logger)
	if s.simulator == nil {
		s.simulator = analysis.NewSimulator(analysis.WithSeed(s.seed), analysis.WithLogger(s.logger))
	}

	s.table = game.NewTable(s.handOptions(1)...)
	s.deal(game.DefaultDealer, 1)
	return s
}

func (s *Session) handOptions(handID int) []game.HandOption {
	return []game.HandOption{
		game.WithRules(s.rules),
		game.WithHeroSeat(s.heroSeat),
		game.WithHandID(handID),
	}
}

func (s *Session) deal(previousDealer, handID int) {
	s.table = game.StartHand(s.rng, previousDealer, s.handOptions(handID)...)
	s.dealt()
}

func (s *Session) dealt() {
	handID := s.table.HandID
	s.logger.Info("dealt hand", "session", s.id, "hand", handID, "dealer", s.table.Dealer, "seed", s.seed)
	s.runBots()
}

// Table returns the current table snapshot.
func (s *Session) Table() *game.Table {
	return s.table
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Seed returns the seed the session was created with.
func (s *Session) Seed() int64 {
	return s.seed
}

// HeroToAct reports whether the session is waiting on the hero.
func (s *Session) HeroToAct() bool {
	return s.table.Phase == game.PhasePlaying && s.table.ToAct == s.heroSeat
}

// UndoDepth returns how many snapshots can be restored.
func (s *Session) UndoDepth() int {
	return len(s.undo)
}

// Act applies a hero action and then lets the bots play until the hero must
// act again. A rejected action leaves the session unchanged.
func (s *Session) Act(a game.Action) error {
	if !s.HeroToAct() {
		return ErrNotHeroTurn
	}
	next, err := game.ApplyAction(s.table, s.heroSeat, a)
	if err != nil {
		return err
	}
	s.push()
	s.table = next
	s.logger.Debug("hero action", "hand", s.table.HandID, "action", a)
	s.runBots()
	return nil
}

// Undo restores the table to before the last hero action or new hand.
func (s *Session) Undo() error {
	if len(s.undo) == 0 {
		return ErrNothingToUndo
	}
	s.table = s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	return nil
}

// NextHand deals the following hand. The finished or abandoned hand can be
// restored with Undo.
func (s *Session) NextHand() {
	s.push()
	s.table = s.table.NextHand(s.rng)
	s.dealt()
}

// Reset discards the undo stack and starts again from hand one.
func (s *Session) Reset() {
	s.undo = nil
	clear(s.results)
	s.table = game.NewTable(s.handOptions(1)...)
	s.deal(game.DefaultDealer, 1)
}

func (s *Session) push() {
	s.undo = append(s.undo, s.table)
	if len(s.undo) > MaxUndo {
		s.undo = s.undo[1:]
	}
}

// runBots plays bot seats until the hero is to act or the hand is over.
func (s *Session) runBots() {
	for s.table.Phase == game.PhasePlaying && s.table.ToAct != s.heroSeat {
		seat := s.table.ToAct
		a := s.bot.Decide(s.table, seat)
		next, err := game.ApplyAction(s.table, seat, a)
		if err != nil {
			// The bot legalizes every decision, so this is a bug.
			panic(fmt.Sprintf("bot action %s rejected for seat %d: %v", a, seat, err))
		}
		s.table = next
	}
	if s.table.Phase == game.PhaseComplete {
		s.finish()
	}
}

func (s *Session) finish() {
	r := s.table.Result
	s.logger.Info("hand complete", "hand", s.table.HandID, "pot", r.Pot, "winners", r.Winners)

	hero := s.table.Seats[s.heroSeat]
	bb := float64(s.rules.BigBlind)
	s.results[s.table.HandID] = statistics.HandResult{
		HandID:         s.table.HandID,
		NetBB:          float64(s.table.Winnings()[s.heroSeat]) / bb,
		Position:       hero.Position,
		WentToShowdown: !r.Uncontested && hero.InHand,
		PotBB:          float64(r.Pot) / bb,
	}
	if err := s.history.WriteHistory(s.table); err != nil {
		s.logger.Error("failed to write hand history", "hand", s.table.HandID, "error", err)
	}
}

// Stats summarizes the hero's finished hands. A hand replayed after an undo
// counts once, with its latest result.
func (s *Session) Stats() *statistics.Statistics {
	stats := &statistics.Statistics{}
	for _, id := range slices.Sorted(maps.Keys(s.results)) {
		stats.Add(s.results[id])
	}
	return stats
}

// Equity estimates the hero's equity against an opponent range or hand on
// the current board.
func (s *Session) Equity(ctx context.Context, opponent string) (analysis.EquityResult, error) {
	hero := s.table.Seats[s.heroSeat]
	combo, err := analysis.NewCombo(hero.Hole[0], hero.Hole[1])
	if err != nil {
		return analysis.EquityResult{}, err
	}

	available := poker.NewDeck().Remove(poker.NewHand(hero.Hole...), poker.NewHand(s.table.Board...))
	opponents, err := analysis.ParseOpponents(opponent, available)
	if err != nil {
		return analysis.EquityResult{}, err
	}
	return s.simulator.Simulate(ctx, combo, opponents, s.table.Board, s.iterations)
}

// Snapshot is the JSON export of a session.
type Snapshot struct {
	SessionID string      `json:"session_id"`
	Seed      int64       `json:"seed"`
	HandID    int         `json:"hand_id"`
	Phase     string      `json:"phase"`
	Street    string      `json:"street"`
	Pot       int         `json:"pot"`
	Board     string      `json:"board"`
	Seats     []SeatState `json:"seats"`
	Log       []string    `json:"log"`
}

// SeatState is one seat in a Snapshot.
type SeatState struct {
	Seat     int    `json:"seat"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Stack    int    `json:"stack"`
	Bet      int    `json:"bet"`
	InHand   bool   `json:"in_hand"`
	Hole     string `json:"hole"`
	Hero     bool   `json:"hero,omitempty"`
}

// Export writes the current hand as indented JSON.
func (s *Session) Export(w io.Writer) error {
	t := s.table
	snap := Snapshot{
		SessionID: s.id,
		Seed:      s.seed,
		HandID:    t.HandID,
		Phase:     t.Phase.String(),
		Street:    t.Street.String(),
		Pot:       t.Pot,
		Board:     poker.FormatCards(t.Board, " "),
		Log:       t.Log,
	}
	for _, seat := range t.Seats {
		snap.Seats = append(snap.Seats, SeatState{
			Seat:     seat.Index,
			Name:     seat.Name,
			Position: seat.Position.String(),
			Stack:    seat.Stack,
			Bet:      seat.Bet,
			InHand:   seat.InHand,
			Hole:     poker.FormatCards(seat.Hole, " "),
			Hero:     seat.IsHero,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}

// Execute runs one typed command and returns a short reply for display.
// Besides the betting actions it understands undo, next, reset, log, stats
// and "equity <range or hand>".
func (s *Session) Execute(ctx context.Context, command string) (string, error) {
	fields := strings.Fields(strings.ToLower(command))
	if len(fields) == 0 {
		return "", fmt.Errorf("%w: empty command", ErrUnknownCommand)
	}

	switch fields[0] {
	case "fold", "check", "call", "bet", "raise":
		a, err := game.ParseAction(command)
		if err != nil {
			return "", err
		}
		if err := s.Act(a); err != nil {
			return "", err
		}
		return "You " + a.String(), nil

	case "undo":
		if err := s.Undo(); err != nil {
			return "", err
		}
		return "Undone", nil

	case "next":
		s.NextHand()
		return fmt.Sprintf("Hand #%d", s.table.HandID), nil

	case "reset":
		s.Reset()
		return "Table reset", nil

	case "log":
		return strings.Join(s.table.Log, "\n"), nil

	case "stats":
		return s.Stats().Summary(), nil

	case "equity":
		opponent := strings.Join(strings.Fields(command)[1:], "")
		if opponent == "" {
			return "", fmt.Errorf("%w: equity needs a range or hand", ErrUnknownCommand)
		}
		res, err := s.Equity(ctx, opponent)
		if err != nil {
			return "", err
		}
		lo, hi := res.ConfidenceInterval()
		return fmt.Sprintf("Equity vs %s: %.1f%% (95%% CI %.1f-%.1f) over %d runs", opponent, res.Equity, lo, hi, res.Iterations), nil

	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCommand, fields[0])
	}
}
